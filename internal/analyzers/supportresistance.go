package analyzers

import (
	"context"

	"github.com/jwhittle/stockscout/internal/interfaces"
	"github.com/jwhittle/stockscout/internal/models"
	"github.com/jwhittle/stockscout/internal/signals"
)

const supportResistanceAnalyzerName = "Support/Resistance Analysis"

const (
	srMinBars   = 30
	srTolerance = 0.02 // fraction of price for level clustering

	srDistanceVeryClose = 2.0 // percent
	srDistanceClose     = 5.0
	srDistanceNear      = 10.0

	srScoreSupportVeryClose    = 0.15
	srScoreSupportClose        = 0.1
	srScoreResistanceVeryClose = -0.15
	srScoreResistanceClose     = -0.1
	srScoreSupportNear         = 0.1
	srScoreResistanceNear      = -0.1

	srRiskRewardFavorable = 2.0
	srRiskRewardPoor      = 0.5
	srScoreFavorableRR    = 0.1
	srScorePoorRR         = -0.1

	srConfidence             = 0.65
	srConfidenceInsufficient = 0.3
	srConfidenceNoLevels     = 0.4
)

// SupportResistanceAnalyzer scores price position against historical levels
type SupportResistanceAnalyzer struct {
	weight float64
}

var _ interfaces.Analyzer = (*SupportResistanceAnalyzer)(nil)

func NewSupportResistanceAnalyzer(weight float64) *SupportResistanceAnalyzer {
	return &SupportResistanceAnalyzer{weight: weight}
}

func (a *SupportResistanceAnalyzer) Name() string    { return supportResistanceAnalyzerName }
func (a *SupportResistanceAnalyzer) Weight() float64 { return a.weight }

func (a *SupportResistanceAnalyzer) Analyze(ctx context.Context, stock *models.Stock) (*models.AnalysisResult, error) {
	t := newTally()

	if len(stock.History) < srMinBars {
		t.note("Insufficient historical data for S/R analysis")
		return t.result(stock.Symbol, supportResistanceAnalyzerName, srConfidenceInsufficient, "No S/R indicators"), nil
	}

	currentPrice := stock.CurrentPrice
	support, resistance := signals.DetectSupportResistance(stock.History, currentPrice, srTolerance)

	confidence := srConfidence
	switch {
	case support > 0 && resistance > 0:
		supportDist := (currentPrice - support) / support * 100
		resistanceDist := (resistance - currentPrice) / currentPrice * 100

		if supportDist < srDistanceVeryClose {
			t.adjust(srScoreSupportVeryClose, "Near strong support at $%.2f (%.2f%% away) - potential bounce", support, supportDist)
		} else if supportDist < srDistanceClose {
			t.adjust(srScoreSupportClose, "Approaching support at $%.2f (%.2f%% away)", support, supportDist)
		}

		if resistanceDist < srDistanceVeryClose {
			t.adjust(srScoreResistanceVeryClose, "Near strong resistance at $%.2f (%.2f%% away) - potential rejection", resistance, resistanceDist)
		} else if resistanceDist < srDistanceClose {
			t.adjust(srScoreResistanceClose, "Approaching resistance at $%.2f (%.2f%% away)", resistance, resistanceDist)
		}

		if risk := currentPrice - support; risk > 0 {
			ratio := (resistance - currentPrice) / risk
			if ratio > srRiskRewardFavorable {
				t.adjust(srScoreFavorableRR, "Favorable risk/reward ratio (%.2f:1)", ratio)
			} else if ratio < srRiskRewardPoor {
				t.adjust(srScorePoorRR, "Poor risk/reward ratio (%.2f:1)", ratio)
			}
		}

		t.noteFirst("Support: $%.2f | Resistance: $%.2f | Current: $%.2f", support, resistance, currentPrice)

	case support > 0:
		supportDist := (currentPrice - support) / support * 100
		if supportDist < srDistanceNear {
			t.adjust(srScoreSupportNear, "Near support at $%.2f - potential bounce", support)
		}
		t.noteFirst("Support: $%.2f | Current: $%.2f", support, currentPrice)

	case resistance > 0:
		resistanceDist := (resistance - currentPrice) / currentPrice * 100
		if resistanceDist < srDistanceNear {
			t.adjust(srScoreResistanceNear, "Near resistance at $%.2f - potential rejection", resistance)
		}
		t.noteFirst("Resistance: $%.2f | Current: $%.2f", resistance, currentPrice)

	default:
		t.note("No clear support/resistance levels identified")
		confidence = srConfidenceNoLevels
	}

	return t.result(stock.Symbol, supportResistanceAnalyzerName, confidence, "No S/R indicators"), nil
}
