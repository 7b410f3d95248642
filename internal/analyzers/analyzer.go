// Package analyzers implements the scoring strategies behind stock
// recommendations. Each analyzer scores one signal family: it starts
// from a neutral baseline, applies additive rule adjustments with a
// reasoning clause per rule, and clamps the result to [0,1]. The
// composite combines all active analyzers into a weighted consensus.
package analyzers

import (
	"fmt"
	"strings"
	"time"

	"github.com/jwhittle/stockscout/internal/models"
)

const (
	defaultScore      = 0.5
	defaultConfidence = 0.5

	targetPriceMultiplier = 1.10
)

// tally accumulates additive score adjustments and reasoning clauses
type tally struct {
	score   float64
	reasons []string
}

func newTally() *tally {
	return &tally{score: defaultScore}
}

// adjust shifts the score and records the reason for the shift
func (t *tally) adjust(delta float64, format string, args ...any) {
	t.score += delta
	t.note(format, args...)
}

// note records a reasoning clause without changing the score
func (t *tally) note(format string, args ...any) {
	t.reasons = append(t.reasons, fmt.Sprintf(format, args...))
}

// noteFirst prepends a reasoning clause ahead of those already recorded
func (t *tally) noteFirst(format string, args ...any) {
	t.reasons = append([]string{fmt.Sprintf(format, args...)}, t.reasons...)
}

// result builds the final analysis result, clamping the score.
// fallback is used as reasoning when no rule recorded a clause.
func (t *tally) result(symbol, analyzer string, confidence float64, fallback string) *models.AnalysisResult {
	reasoning := fallback
	if len(t.reasons) > 0 {
		reasoning = strings.Join(t.reasons, "; ")
	}
	return &models.AnalysisResult{
		Symbol:     symbol,
		Analyzer:   analyzer,
		Score:      clamp01(t.score),
		Confidence: confidence,
		Reasoning:  reasoning,
		AnalyzedAt: time.Now(),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// CreateRecommendation converts an analysis result into a recommendation.
// Individual analyzer reasoning is prefixed with the analyzer name; the
// composite already names each contributor so it is left unprefixed. A
// target price is set only for the buy tiers.
func CreateRecommendation(stock *models.Stock, result *models.AnalysisResult) *models.Recommendation {
	action := models.RecommendationTypeForScore(result.Score)

	reasoning := result.Reasoning
	if result.Analyzer != compositeAnalyzerName {
		reasoning = fmt.Sprintf("[%s] %s", result.Analyzer, reasoning)
	}

	rec := models.NewRecommendation(stock.Symbol, action, result.Score, result.Confidence, reasoning)
	rec.Articles = result.Articles
	if action == models.Buy || action == models.StrongBuy {
		target := stock.CurrentPrice * targetPriceMultiplier
		rec.TargetPrice = &target
	}
	return rec
}
