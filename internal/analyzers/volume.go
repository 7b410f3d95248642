package analyzers

import (
	"context"

	"github.com/jwhittle/stockscout/internal/interfaces"
	"github.com/jwhittle/stockscout/internal/models"
	"github.com/jwhittle/stockscout/internal/signals"
)

const volumeAnalyzerName = "Volume Analysis"

const (
	volumeVeryHighThreshold = 10_000_000
	volumeHighThreshold     = 1_000_000
	volumeLowThreshold      = 100_000

	volumeScoreVeryHigh = 0.15
	volumeScoreHigh     = 0.1
	volumeScoreLow      = -0.1

	volumePriceChangeThreshold = 1.0 // percent
	volumeScoreBullishSignal   = 0.1
	volumeScoreBearishSignal   = -0.1

	volumeRatioPeriod     = 20
	volumeScoreRatioSpike = 0.05
	volumeScoreRatioLow   = -0.05

	volumeConfidence = 0.6
)

// VolumeAnalyzer scores trading volume and volume-price confirmation
type VolumeAnalyzer struct {
	weight float64
}

var _ interfaces.Analyzer = (*VolumeAnalyzer)(nil)

func NewVolumeAnalyzer(weight float64) *VolumeAnalyzer {
	return &VolumeAnalyzer{weight: weight}
}

func (a *VolumeAnalyzer) Name() string    { return volumeAnalyzerName }
func (a *VolumeAnalyzer) Weight() float64 { return a.weight }

func (a *VolumeAnalyzer) Analyze(ctx context.Context, stock *models.Stock) (*models.AnalysisResult, error) {
	t := newTally()

	volume := stock.Volume
	switch {
	case volume >= volumeVeryHighThreshold:
		t.adjust(volumeScoreVeryHigh, "Very high trading volume (%d) - strong market interest", volume)
	case volume >= volumeHighThreshold:
		t.adjust(volumeScoreHigh, "High trading volume (%d) - good liquidity", volume)
	case volume < volumeLowThreshold:
		t.adjust(volumeScoreLow, "Low trading volume (%d) - limited liquidity", volume)
	default:
		t.note("Moderate trading volume (%d)", volume)
	}

	// Volume confirms a move only when it comes with a meaningful price change
	if volume >= volumeHighThreshold {
		changePct := stock.PriceChangePercent()
		if changePct > volumePriceChangeThreshold {
			t.adjust(volumeScoreBullishSignal, "High volume with price increase - bullish signal")
		} else if changePct < -volumePriceChangeThreshold {
			t.adjust(volumeScoreBearishSignal, "High volume with price decrease - bearish signal")
		}
	}

	if len(stock.History) >= volumeRatioPeriod {
		ratio := signals.VolumeRatio(volume, stock.History, volumeRatioPeriod)
		switch signals.ClassifyVolume(ratio) {
		case "spike":
			t.adjust(volumeScoreRatioSpike, "Volume spike (%.1fx %d-day average)", ratio, volumeRatioPeriod)
		case "low":
			t.adjust(volumeScoreRatioLow, "Volume below average (%.1fx %d-day average)", ratio, volumeRatioPeriod)
		}
	}

	return t.result(stock.Symbol, volumeAnalyzerName, volumeConfidence, "No volume indicators"), nil
}
