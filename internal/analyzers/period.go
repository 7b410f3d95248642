package analyzers

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwhittle/stockscout/internal/interfaces"
	"github.com/jwhittle/stockscout/internal/models"
	"github.com/jwhittle/stockscout/internal/signals"
)

const periodAnalyzerName = "Period-Based Analysis"

// periodWindow is one evaluation horizon for the period analyzer
type periodWindow struct {
	name   string
	days   int
	weight float64
}

// periodWindows are evaluated oldest bar count first; weights favor the
// medium horizons over the very short and very long ends.
var periodWindows = []periodWindow{
	{name: "1 Week", days: 5, weight: 0.2},
	{name: "1 Month", days: 21, weight: 0.3},
	{name: "3 Months", days: 63, weight: 0.3},
	{name: "6 Months", days: 126, weight: 0.2},
}

const (
	periodChangeStrongPositive = 10.0 // percent
	periodChangePositive       = 3.0
	periodChangeNegative       = -3.0
	periodChangeStrongNegative = -10.0

	periodScoreStrongPositive   = 0.8
	periodScorePositive         = 0.65
	periodScoreSlightlyPositive = 0.55
	periodScoreSlightlyNegative = 0.45
	periodScoreNegative         = 0.35
	periodScoreStrongNegative   = 0.2

	periodRecBuy  = "Buy"
	periodRecHold = "Hold"
	periodRecSell = "Sell"

	consensusBuyCountStrong  = 3
	consensusBuyCountModest  = 2
	consensusSellCountStrong = 3
	consensusSellCountModest = 2

	consensusScoreStrongBuy  = 0.8
	consensusScoreBuy        = 0.7
	consensusScoreStrongSell = 0.2
	consensusScoreSell       = 0.3

	periodConfidence             = 0.7
	periodConfidenceInsufficient = 0.3
)

// PeriodAnalyzer scores performance across multiple horizons and looks
// for a buy or sell consensus among them.
type PeriodAnalyzer struct {
	weight float64
}

var _ interfaces.Analyzer = (*PeriodAnalyzer)(nil)

func NewPeriodAnalyzer(weight float64) *PeriodAnalyzer {
	return &PeriodAnalyzer{weight: weight}
}

func (a *PeriodAnalyzer) Name() string    { return periodAnalyzerName }
func (a *PeriodAnalyzer) Weight() float64 { return a.weight }

func (a *PeriodAnalyzer) Analyze(ctx context.Context, stock *models.Stock) (*models.AnalysisResult, error) {
	t := newTally()

	var (
		weightedScore float64
		totalWeight   float64
		periodRecs    []string
		buyCount      int
		holdCount     int
		sellCount     int
	)

	for _, window := range periodWindows {
		if len(stock.History) < window.days+1 {
			continue
		}
		change := signals.Momentum(stock.History, window.days)

		var periodScore float64
		var rec string
		switch {
		case change > periodChangeStrongPositive:
			periodScore, rec = periodScoreStrongPositive, periodRecBuy
		case change > periodChangePositive:
			periodScore, rec = periodScorePositive, periodRecBuy
		case change > 0:
			periodScore, rec = periodScoreSlightlyPositive, periodRecHold
		case change > periodChangeNegative:
			periodScore, rec = periodScoreSlightlyNegative, periodRecHold
		case change > periodChangeStrongNegative:
			periodScore, rec = periodScoreNegative, periodRecSell
		default:
			periodScore, rec = periodScoreStrongNegative, periodRecSell
		}

		weightedScore += periodScore * window.weight
		totalWeight += window.weight

		switch rec {
		case periodRecBuy:
			buyCount++
		case periodRecHold:
			holdCount++
		case periodRecSell:
			sellCount++
		}

		periodRecs = append(periodRecs, window.name+": "+rec+" ("+signedPercent(change)+")")
		t.note("%s: %s change", window.name, signedPercent(change))
	}

	if totalWeight == 0 {
		t.note("Insufficient history for period analysis")
		return t.result(stock.Symbol, periodAnalyzerName, periodConfidenceInsufficient, "No period-based indicators"), nil
	}

	t.score = weightedScore / totalWeight

	switch {
	case buyCount >= consensusBuyCountStrong:
		if t.score < consensusScoreStrongBuy {
			t.score = consensusScoreStrongBuy
		}
		t.note("Strong buy consensus across periods (%d buy, %d hold, %d sell)", buyCount, holdCount, sellCount)
	case buyCount >= consensusBuyCountModest && sellCount == 0:
		if t.score < consensusScoreBuy {
			t.score = consensusScoreBuy
		}
		t.note("Buy consensus (%d buy, %d hold)", buyCount, holdCount)
	case sellCount >= consensusSellCountStrong:
		if t.score > consensusScoreStrongSell {
			t.score = consensusScoreStrongSell
		}
		t.note("Strong sell consensus (%d buy, %d hold, %d sell)", buyCount, holdCount, sellCount)
	case sellCount >= consensusSellCountModest && buyCount == 0:
		if t.score > consensusScoreSell {
			t.score = consensusScoreSell
		}
		t.note("Sell consensus (%d hold, %d sell)", holdCount, sellCount)
	}

	t.noteFirst("Period Recommendations: %s", strings.Join(periodRecs, ", "))

	return t.result(stock.Symbol, periodAnalyzerName, periodConfidence, "No period-based indicators"), nil
}

// signedPercent formats a percent change with an explicit sign
func signedPercent(change float64) string {
	return fmt.Sprintf("%+.2f%%", change)
}
