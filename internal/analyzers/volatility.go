package analyzers

import (
	"context"

	"github.com/jwhittle/stockscout/internal/interfaces"
	"github.com/jwhittle/stockscout/internal/models"
	"github.com/jwhittle/stockscout/internal/signals"
)

const volatilityAnalyzerName = "Volatility Analysis"

const (
	volatilityMinBars      = 20
	volatilityRecentPeriod = 20
	volatilityTrendBars    = 40

	volatilityLowThreshold  = 20.0 // annualized percent
	volatilityHighThreshold = 50.0

	volatilityScoreLow  = 0.1
	volatilityScoreHigh = -0.1

	volatilityTrendDecreasing = 0.8
	volatilityTrendIncreasing = 1.2
	volatilityScoreDecreasing = 0.05
	volatilityScoreIncreasing = -0.05

	volatilityRangeTight = 10.0 // percent of average price
	volatilityRangeWide  = 30.0
	volatilityScoreTight = 0.05
	volatilityScoreWide  = -0.05

	volatilityConfidence             = 0.65
	volatilityConfidenceInsufficient = 0.3
)

// VolatilityAnalyzer scores risk from realized volatility and price range
type VolatilityAnalyzer struct {
	weight float64
}

var _ interfaces.Analyzer = (*VolatilityAnalyzer)(nil)

func NewVolatilityAnalyzer(weight float64) *VolatilityAnalyzer {
	return &VolatilityAnalyzer{weight: weight}
}

func (a *VolatilityAnalyzer) Name() string    { return volatilityAnalyzerName }
func (a *VolatilityAnalyzer) Weight() float64 { return a.weight }

func (a *VolatilityAnalyzer) Analyze(ctx context.Context, stock *models.Stock) (*models.AnalysisResult, error) {
	t := newTally()

	bars := stock.History
	if len(bars) < volatilityMinBars {
		t.note("Insufficient data for volatility analysis")
		return t.result(stock.Symbol, volatilityAnalyzerName, volatilityConfidenceInsufficient, "No volatility indicators"), nil
	}

	vol := signals.AnnualizedVolatility(bars, len(bars)-1)
	switch {
	case vol < volatilityLowThreshold:
		t.adjust(volatilityScoreLow, "Low volatility (%.2f%%) - stable price action, lower risk", vol)
	case vol > volatilityHighThreshold:
		t.adjust(volatilityScoreHigh, "High volatility (%.2f%%) - increased risk, potential for large swings", vol)
	default:
		t.note("Moderate volatility (%.2f%%) - balanced risk/reward", vol)
	}

	if len(bars) >= volatilityTrendBars {
		recentVol := signals.AnnualizedVolatility(bars, volatilityRecentPeriod)
		earlierVol := signals.AnnualizedVolatility(bars[:len(bars)-volatilityRecentPeriod], volatilityRecentPeriod)
		if earlierVol > 0 {
			if recentVol < earlierVol*volatilityTrendDecreasing {
				t.adjust(volatilityScoreDecreasing, "Volatility decreasing - stabilizing trend")
			} else if recentVol > earlierVol*volatilityTrendIncreasing {
				t.adjust(volatilityScoreIncreasing, "Volatility increasing - uncertainty rising")
			}
		}
	}

	low, high, sum := bars[0].Close, bars[0].Close, 0.0
	for _, bar := range bars {
		if bar.Close < low {
			low = bar.Close
		}
		if bar.Close > high {
			high = bar.Close
		}
		sum += bar.Close
	}
	if avg := sum / float64(len(bars)); avg > 0 {
		rangePct := (high - low) / avg * 100
		if rangePct < volatilityRangeTight {
			t.adjust(volatilityScoreTight, "Tight trading range (%.2f%%) - consolidation", rangePct)
		} else if rangePct > volatilityRangeWide {
			t.adjust(volatilityScoreWide, "Wide trading range (%.2f%%) - high uncertainty", rangePct)
		}
	}

	return t.result(stock.Symbol, volatilityAnalyzerName, volatilityConfidence, "No volatility indicators"), nil
}
