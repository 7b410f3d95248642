package analyzers

import (
	"context"

	"github.com/jwhittle/stockscout/internal/interfaces"
	"github.com/jwhittle/stockscout/internal/models"
	"github.com/jwhittle/stockscout/internal/signals"
)

const technicalAnalyzerName = "Technical Strategy Analysis"

const (
	technicalRSIPeriod    = 14
	technicalSMAShort     = 20
	technicalSMALong      = 50
	technicalRecentPeriod = 20
	technicalMinBars      = technicalRSIPeriod + 1

	technicalRSINeutralLow  = 40.0
	technicalRSINeutralHigh = 60.0

	technicalScoreOversold   = 0.15
	technicalScoreOverbought = -0.15
	technicalScoreNeutralRSI = 0.05

	technicalScoreGoldenCross = 0.1
	technicalScoreDeathCross  = -0.1
	technicalScoreFreshCross  = 0.05
	technicalScoreAboveMAs    = 0.1
	technicalScoreBelowMAs    = -0.1

	technicalScoreNearHighs = 0.05
	technicalScoreNearLows  = -0.05

	technicalConfidence             = 0.7
	technicalConfidenceInsufficient = 0.3
)

// TechnicalAnalyzer scores RSI, moving average and range position signals
type TechnicalAnalyzer struct {
	weight float64
}

var _ interfaces.Analyzer = (*TechnicalAnalyzer)(nil)

func NewTechnicalAnalyzer(weight float64) *TechnicalAnalyzer {
	return &TechnicalAnalyzer{weight: weight}
}

func (a *TechnicalAnalyzer) Name() string    { return technicalAnalyzerName }
func (a *TechnicalAnalyzer) Weight() float64 { return a.weight }

func (a *TechnicalAnalyzer) Analyze(ctx context.Context, stock *models.Stock) (*models.AnalysisResult, error) {
	t := newTally()

	bars := stock.History
	if len(bars) < technicalMinBars {
		t.note("Insufficient historical data for technical analysis")
		return t.result(stock.Symbol, technicalAnalyzerName, technicalConfidenceInsufficient, "No technical indicators"), nil
	}

	rsi := signals.RSI(bars, technicalRSIPeriod)
	switch signals.ClassifyRSI(rsi) {
	case "oversold":
		t.adjust(technicalScoreOversold, "Oversold condition (RSI: %.2f) - potential buy signal", rsi)
	case "overbought":
		t.adjust(technicalScoreOverbought, "Overbought condition (RSI: %.2f) - potential sell signal", rsi)
	default:
		if rsi >= technicalRSINeutralLow && rsi <= technicalRSINeutralHigh {
			t.adjust(technicalScoreNeutralRSI, "Neutral RSI (%.2f) - stable momentum", rsi)
		} else {
			t.note("RSI: %.2f", rsi)
		}
	}

	currentPrice := bars[len(bars)-1].Close
	if len(bars) >= technicalSMALong {
		smaShort := signals.SMA(bars, technicalSMAShort)
		smaLong := signals.SMA(bars, technicalSMALong)

		if smaShort > smaLong {
			t.adjust(technicalScoreGoldenCross, "Golden Cross (SMA%d > SMA%d) - bullish trend", technicalSMAShort, technicalSMALong)
		} else if smaShort < smaLong {
			t.adjust(technicalScoreDeathCross, "Death Cross (SMA%d < SMA%d) - bearish trend", technicalSMAShort, technicalSMALong)
		}

		switch signals.DetectCrossover(bars, technicalSMAShort, technicalSMALong) {
		case "golden_cross":
			t.adjust(technicalScoreFreshCross, "Fresh golden cross this session")
		case "death_cross":
			t.adjust(-technicalScoreFreshCross, "Fresh death cross this session")
		}

		if currentPrice > smaShort && smaShort > smaLong {
			t.adjust(technicalScoreAboveMAs, "Price above both moving averages (%.2f%% over SMA%d) - strong uptrend",
				signals.DistanceToSMA(currentPrice, smaShort), technicalSMAShort)
		} else if currentPrice < smaShort && smaShort < smaLong {
			t.adjust(technicalScoreBelowMAs, "Price below both moving averages (%.2f%% under SMA%d) - strong downtrend",
				-signals.DistanceToSMA(currentPrice, smaShort), technicalSMAShort)
		}
	}

	recent := bars
	if len(recent) > technicalRecentPeriod {
		recent = recent[len(recent)-technicalRecentPeriod:]
	}
	low, high := recent[0].Close, recent[0].Close
	for _, bar := range recent {
		if bar.Close < low {
			low = bar.Close
		}
		if bar.Close > high {
			high = bar.Close
		}
	}
	midpoint := (high + low) / 2
	if currentPrice > midpoint {
		t.adjust(technicalScoreNearHighs, "Price near recent highs - bullish momentum")
	} else if currentPrice < midpoint {
		t.adjust(technicalScoreNearLows, "Price near recent lows - bearish pressure")
	}

	return t.result(stock.Symbol, technicalAnalyzerName, technicalConfidence, "No technical indicators"), nil
}
