package analyzers

import (
	"context"

	"github.com/jwhittle/stockscout/internal/interfaces"
	"github.com/jwhittle/stockscout/internal/models"
)

const priceAnalyzerName = "Price Analysis"

// Session momentum and valuation bands
const (
	priceStrongMoveThreshold = 2.0 // percent
	priceMoveThreshold       = 0.5

	priceScoreStrongPositive = 0.2
	priceScorePositive       = 0.1
	priceScoreStrongNegative = -0.2
	priceScoreNegative       = -0.1

	pricePEMin  = 10.0
	pricePEMax  = 25.0
	pricePEHigh = 40.0

	priceScoreReasonableValuation = 0.1
	priceScoreUndervalued         = 0.05
	priceScoreOvervalued          = -0.1

	priceGapUpMultiplier   = 1.05
	priceGapDownMultiplier = 0.95
	priceScoreGapUp        = 0.1
	priceScoreGapDown      = -0.1

	priceConfidence = 0.8
)

// PriceAnalyzer scores session price action and basic valuation
type PriceAnalyzer struct {
	weight float64
}

var _ interfaces.Analyzer = (*PriceAnalyzer)(nil)

func NewPriceAnalyzer(weight float64) *PriceAnalyzer {
	return &PriceAnalyzer{weight: weight}
}

func (a *PriceAnalyzer) Name() string    { return priceAnalyzerName }
func (a *PriceAnalyzer) Weight() float64 { return a.weight }

func (a *PriceAnalyzer) Analyze(ctx context.Context, stock *models.Stock) (*models.AnalysisResult, error) {
	t := newTally()

	changePct := stock.PriceChangePercent()
	switch {
	case changePct > priceStrongMoveThreshold:
		t.adjust(priceScoreStrongPositive, "Strong positive momentum (+%.2f%%)", changePct)
	case changePct > priceMoveThreshold:
		t.adjust(priceScorePositive, "Positive momentum (+%.2f%%)", changePct)
	case changePct < -priceStrongMoveThreshold:
		t.adjust(priceScoreStrongNegative, "Strong negative momentum (%.2f%%)", changePct)
	case changePct < -priceMoveThreshold:
		t.adjust(priceScoreNegative, "Negative momentum (%.2f%%)", changePct)
	default:
		t.note("Price stability")
	}

	if pe := stock.Fundamentals.PERatio; pe > 0 {
		switch {
		case pe >= pricePEMin && pe <= pricePEMax:
			t.adjust(priceScoreReasonableValuation, "Reasonable valuation (P/E: %.2f)", pe)
		case pe < pricePEMin:
			t.adjust(priceScoreUndervalued, "Undervalued (P/E: %.2f)", pe)
		case pe > pricePEHigh:
			t.adjust(priceScoreOvervalued, "Overvalued (P/E: %.2f)", pe)
		default:
			t.note("Moderate valuation (P/E: %.2f)", pe)
		}
	}

	if prev := stock.PreviousClose; prev > 0 {
		if stock.CurrentPrice > prev*priceGapUpMultiplier {
			t.adjust(priceScoreGapUp, "Significant price increase from previous close")
		} else if stock.CurrentPrice < prev*priceGapDownMultiplier {
			t.adjust(priceScoreGapDown, "Significant price decrease from previous close")
		}
	}

	return t.result(stock.Symbol, priceAnalyzerName, priceConfidence, "No price indicators"), nil
}
