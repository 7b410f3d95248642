package sentiment

import (
	"fmt"
	"strings"
	"time"

	"github.com/jwhittle/stockscout/internal/models"
)

// aggregate folds one result per successful provider into a single
// verdict. Providers and results are parallel slices in completion
// order; at least one entry is required.
func aggregate(symbol string, providers []string, results []*providerResult, articleCount int) *models.SentimentResult {
	if len(results) == 1 {
		r := results[0]
		return &models.SentimentResult{
			Symbol:         symbol,
			Sentiment:      r.Sentiment,
			SentimentScore: clamp01(r.SentimentScore),
			Confidence:     clamp01(r.Confidence),
			Impact:         r.Impact,
			KeyThemes:      r.Themes,
			Summary:        r.Summary,
			Method:         "llm-" + providers[0],
			ArticleCount:   articleCount,
			AnalyzedAt:     time.Now(),
		}
	}

	var scoreSum, confSum float64
	var positives, negatives, neutrals int
	var bullish, bearish, neutralImpact int
	var allThemes []string
	var summaries []string

	for _, r := range results {
		scoreSum += r.SentimentScore
		confSum += r.Confidence

		switch r.Sentiment {
		case models.SentimentPositive:
			positives++
		case models.SentimentNegative:
			negatives++
		default:
			neutrals++
		}

		switch r.Impact {
		case models.ImpactBullish:
			bullish++
		case models.ImpactBearish:
			bearish++
		default:
			neutralImpact++
		}

		allThemes = append(allThemes, r.Themes...)
		if r.Summary != "" {
			summaries = append(summaries, r.Summary)
		}
	}

	n := len(results)
	avgScore := scoreSum / float64(n)

	// Sentiment: majority vote, with mean-score tiebreak
	var sentiment string
	switch {
	case positives > negatives && positives > neutrals:
		sentiment = models.SentimentPositive
	case negatives > positives && negatives > neutrals:
		sentiment = models.SentimentNegative
	case avgScore > 0.6:
		sentiment = models.SentimentPositive
	case avgScore < 0.4:
		sentiment = models.SentimentNegative
	default:
		sentiment = models.SentimentNeutral
	}

	// Impact: majority vote only, ties fall to neutral
	var impact string
	switch {
	case bullish > bearish && bullish > neutralImpact:
		impact = models.ImpactBullish
	case bearish > bullish && bearish > neutralImpact:
		impact = models.ImpactBearish
	default:
		impact = models.ImpactNeutral
	}

	// Confidence: mean, boosted per additional agreeing provider
	confidence := confSum/float64(n) + 0.05*float64(n-1)

	// Summary: the longest one, annotated with the consensus size
	summary := ""
	for _, s := range summaries {
		if len(s) > len(summary) {
			summary = s
		}
	}
	if summary == "" {
		summary = fmt.Sprintf("Analysis from %d providers", n)
	} else {
		summary += fmt.Sprintf(" (Consensus from %d providers)", n)
	}

	return &models.SentimentResult{
		Symbol:         symbol,
		Sentiment:      sentiment,
		SentimentScore: clamp01(avgScore),
		Confidence:     clamp01(confidence),
		Impact:         impact,
		KeyThemes:      uniqueThemes(allThemes, 10),
		Summary:        summary,
		Method:         "llm-" + strings.Join(providers, "+"),
		ArticleCount:   articleCount,
		AnalyzedAt:     time.Now(),
	}
}

// uniqueThemes deduplicates preserving first-seen order, capped at max
func uniqueThemes(themes []string, max int) []string {
	seen := make(map[string]struct{}, len(themes))
	var out []string
	for _, theme := range themes {
		key := strings.ToLower(strings.TrimSpace(theme))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, theme)
		if len(out) >= max {
			break
		}
	}
	return out
}
