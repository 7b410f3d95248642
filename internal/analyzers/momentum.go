package analyzers

import (
	"context"

	"github.com/jwhittle/stockscout/internal/interfaces"
	"github.com/jwhittle/stockscout/internal/models"
	"github.com/jwhittle/stockscout/internal/signals"
)

const momentumAnalyzerName = "Momentum Analysis"

const (
	momentumShortPeriod  = 5
	momentumMediumPeriod = 20
	momentumLongPeriod   = 60

	momentumMinBars = 21

	momentumShortStrong  = 5.0 // percent
	momentumShortMild    = 2.0
	momentumMediumStrong = 10.0
	momentumMediumMild   = 5.0
	momentumLongStrong   = 20.0
	momentumLongMild     = 10.0

	momentumScoreStrong = 0.1
	momentumScoreMild   = 0.05

	momentumScoreConsistent   = 0.1
	momentumScoreAccelerating = 0.05

	momentumConfidence             = 0.7
	momentumConfidenceInsufficient = 0.3
)

// MomentumAnalyzer scores price momentum across short, medium and long windows
type MomentumAnalyzer struct {
	weight float64
}

var _ interfaces.Analyzer = (*MomentumAnalyzer)(nil)

func NewMomentumAnalyzer(weight float64) *MomentumAnalyzer {
	return &MomentumAnalyzer{weight: weight}
}

func (a *MomentumAnalyzer) Name() string    { return momentumAnalyzerName }
func (a *MomentumAnalyzer) Weight() float64 { return a.weight }

func (a *MomentumAnalyzer) Analyze(ctx context.Context, stock *models.Stock) (*models.AnalysisResult, error) {
	t := newTally()

	if len(stock.History) < momentumMinBars {
		t.note("Insufficient data for momentum analysis")
		return t.result(stock.Symbol, momentumAnalyzerName, momentumConfidenceInsufficient, "No momentum indicators"), nil
	}

	m5 := signals.Momentum(stock.History, momentumShortPeriod)
	m20 := signals.Momentum(stock.History, momentumMediumPeriod)
	m60 := signals.Momentum(stock.History, momentumLongPeriod)

	scoreWindow(t, m5, momentumShortStrong, momentumShortMild, "short-term", momentumShortPeriod)
	scoreWindow(t, m20, momentumMediumStrong, momentumMediumMild, "medium-term", momentumMediumPeriod)
	scoreWindow(t, m60, momentumLongStrong, momentumLongMild, "long-term", momentumLongPeriod)

	if m5 > 0 && m20 > 0 && m60 > 0 {
		t.adjust(momentumScoreConsistent, "Consistent positive momentum across all timeframes")
	} else if m5 < 0 && m20 < 0 && m60 < 0 {
		t.adjust(-momentumScoreConsistent, "Consistent negative momentum across all timeframes")
	}

	if m5 > m20 && m20 > m60 {
		t.adjust(momentumScoreAccelerating, "Momentum accelerating - bullish signal")
	} else if m5 < m20 && m20 < m60 {
		t.adjust(-momentumScoreAccelerating, "Momentum decelerating - bearish signal")
	}

	return t.result(stock.Symbol, momentumAnalyzerName, momentumConfidence, "No momentum indicators"), nil
}

// scoreWindow applies the strong/mild momentum bands for one window
func scoreWindow(t *tally, momentum, strong, mild float64, label string, days int) {
	switch {
	case momentum > strong:
		t.adjust(momentumScoreStrong, "Strong %s momentum (+%.2f%% in %d days)", label, momentum, days)
	case momentum > mild:
		t.adjust(momentumScoreMild, "Positive %s momentum (+%.2f%% in %d days)", label, momentum, days)
	case momentum < -strong:
		t.adjust(-momentumScoreStrong, "Negative %s momentum (%.2f%% in %d days)", label, momentum, days)
	case momentum < -mild:
		t.adjust(-momentumScoreMild, "Weak %s momentum (%.2f%% in %d days)", label, momentum, days)
	}
}
