package analyzers

import (
	"context"

	"github.com/jwhittle/stockscout/internal/interfaces"
	"github.com/jwhittle/stockscout/internal/models"
	"github.com/jwhittle/stockscout/internal/signals"
)

const fundamentalAnalyzerName = "Fundamental Analysis"

const (
	fundamentalPEMin  = 10.0
	fundamentalPEMax  = 25.0
	fundamentalPEHigh = 40.0

	fundamentalScorePEAttractive = 0.1
	fundamentalScorePEVeryLow    = 0.05
	fundamentalScorePEHigh       = -0.1

	fundamentalPBLow       = 1.0
	fundamentalPBHigh      = 10.0
	fundamentalScorePBLow  = 0.05
	fundamentalScorePBHigh = -0.05

	fundamentalDebtLow       = 0.5
	fundamentalDebtHigh      = 2.0
	fundamentalScoreDebtLow  = 0.05
	fundamentalScoreDebtHigh = -0.1

	fundamentalMarginStrong        = 0.20
	fundamentalMarginGood          = 0.10
	fundamentalScoreMarginStrong   = 0.1
	fundamentalScoreMarginGood     = 0.05
	fundamentalScoreMarginNegative = -0.1

	fundamentalGrowthStrong         = 0.20
	fundamentalGrowthGood           = 0.05
	fundamentalGrowthDeclining      = -0.05
	fundamentalScoreGrowthStrong    = 0.1
	fundamentalScoreGrowthGood      = 0.05
	fundamentalScoreGrowthDeclining = -0.1

	fundamentalDividendAttractive      = 0.04
	fundamentalDividendModerate        = 0.02
	fundamentalScoreDividendAttractive = 0.05
	fundamentalScoreDividendModerate   = 0.03

	fundamentalBetaHigh      = 1.5
	fundamentalScoreBetaHigh = -0.03

	fundamentalMarketCapLarge = 10_000_000_000
	fundamentalScoreLargeCap  = 0.05

	fundamentalRangeLowFraction  = 0.2
	fundamentalRangeHighFraction = 0.9
	fundamentalScoreNearYearLow  = 0.05
	fundamentalScoreNearYearHigh = -0.05

	fundamentalConfidence       = 0.7
	fundamentalConfidenceNoData = 0.4
)

// FundamentalAnalyzer scores valuation, profitability and growth metrics
type FundamentalAnalyzer struct {
	weight float64
}

var _ interfaces.Analyzer = (*FundamentalAnalyzer)(nil)

func NewFundamentalAnalyzer(weight float64) *FundamentalAnalyzer {
	return &FundamentalAnalyzer{weight: weight}
}

func (a *FundamentalAnalyzer) Name() string    { return fundamentalAnalyzerName }
func (a *FundamentalAnalyzer) Weight() float64 { return a.weight }

func (a *FundamentalAnalyzer) Analyze(ctx context.Context, stock *models.Stock) (*models.AnalysisResult, error) {
	t := newTally()
	f := stock.Fundamentals

	if f == (models.Fundamentals{}) {
		t.note("No fundamental data available")
		return t.result(stock.Symbol, fundamentalAnalyzerName, fundamentalConfidenceNoData, "No fundamental indicators"), nil
	}

	pe := f.PERatio
	if pe == 0 {
		pe = f.ForwardPE
	}
	if pe > 0 {
		switch {
		case pe >= fundamentalPEMin && pe <= fundamentalPEMax:
			t.adjust(fundamentalScorePEAttractive, "Attractive P/E ratio (%.2f)", pe)
		case pe < fundamentalPEMin:
			t.adjust(fundamentalScorePEVeryLow, "Very low P/E ratio (%.2f) - potentially undervalued", pe)
		case pe > fundamentalPEHigh:
			t.adjust(fundamentalScorePEHigh, "High P/E ratio (%.2f) - potentially overvalued", pe)
		}
	}

	if pb := f.PriceToBook; pb > 0 {
		if pb < fundamentalPBLow {
			t.adjust(fundamentalScorePBLow, "Trading below book value (P/B %.2f)", pb)
		} else if pb > fundamentalPBHigh {
			t.adjust(fundamentalScorePBHigh, "High price-to-book ratio (%.2f)", pb)
		}
	}

	if de := f.DebtToEquity; de > 0 {
		if de < fundamentalDebtLow {
			t.adjust(fundamentalScoreDebtLow, "Low debt-to-equity ratio (%.2f)", de)
		} else if de > fundamentalDebtHigh {
			t.adjust(fundamentalScoreDebtHigh, "Highly leveraged balance sheet (D/E %.2f)", de)
		}
	}

	if margin := f.ProfitMargin; margin != 0 {
		switch {
		case margin > fundamentalMarginStrong:
			t.adjust(fundamentalScoreMarginStrong, "Strong profit margin (%.2f%%)", margin*100)
		case margin > fundamentalMarginGood:
			t.adjust(fundamentalScoreMarginGood, "Good profit margin (%.2f%%)", margin*100)
		case margin < 0:
			t.adjust(fundamentalScoreMarginNegative, "Negative profit margin (%.2f%%)", margin*100)
		}
	}

	if growth := f.RevenueGrowth; growth != 0 {
		switch {
		case growth > fundamentalGrowthStrong:
			t.adjust(fundamentalScoreGrowthStrong, "Strong revenue growth (%.2f%%)", growth*100)
		case growth > fundamentalGrowthGood:
			t.adjust(fundamentalScoreGrowthGood, "Good revenue growth (%.2f%%)", growth*100)
		case growth < fundamentalGrowthDeclining:
			t.adjust(fundamentalScoreGrowthDeclining, "Declining revenue (%.2f%%)", growth*100)
		}
	}

	if growth := f.EarningsGrowth; growth != 0 {
		switch {
		case growth > fundamentalGrowthStrong:
			t.adjust(fundamentalScoreGrowthStrong, "Strong earnings growth (%.2f%%)", growth*100)
		case growth > fundamentalGrowthGood:
			t.adjust(fundamentalScoreGrowthGood, "Positive earnings growth (%.2f%%)", growth*100)
		case growth < fundamentalGrowthDeclining:
			t.adjust(fundamentalScoreGrowthDeclining, "Declining earnings (%.2f%%)", growth*100)
		}
	}

	if yield := f.DividendYield; yield > 0 {
		if yield > fundamentalDividendAttractive {
			t.adjust(fundamentalScoreDividendAttractive, "Attractive dividend yield (%.2f%%)", yield*100)
		} else if yield > fundamentalDividendModerate {
			t.adjust(fundamentalScoreDividendModerate, "Moderate dividend yield (%.2f%%)", yield*100)
		}
	}

	if f.Beta > fundamentalBetaHigh {
		t.adjust(fundamentalScoreBetaHigh, "High beta (%.2f) - volatile relative to the market", f.Beta)
	}

	if f.MarketCap > fundamentalMarketCapLarge {
		t.adjust(fundamentalScoreLargeCap, "Large-cap stock - established company")
	}

	if f.WeekLow52 > 0 && f.WeekHigh52 > f.WeekLow52 {
		position := signals.RangePercent(stock.CurrentPrice, f.WeekLow52, f.WeekHigh52)
		if position < fundamentalRangeLowFraction {
			t.adjust(fundamentalScoreNearYearLow, "Trading near 52-week low (%.0f%% of range)", position*100)
		} else if position > fundamentalRangeHighFraction {
			t.adjust(fundamentalScoreNearYearHigh, "Trading near 52-week high (%.0f%% of range)", position*100)
		}
	}

	return t.result(stock.Symbol, fundamentalAnalyzerName, fundamentalConfidence, "No fundamental indicators"), nil
}
