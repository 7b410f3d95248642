package models

import (
	"time"

	"github.com/google/uuid"
)

// RecommendationType is the five level action scale produced from a score
type RecommendationType string

const (
	StrongBuy  RecommendationType = "STRONG_BUY"
	Buy        RecommendationType = "BUY"
	Hold       RecommendationType = "HOLD"
	Sell       RecommendationType = "SELL"
	StrongSell RecommendationType = "STRONG_SELL"
)

// RecommendationTypeForScore maps a score in [0,1] onto the action scale.
// Bands: >= 0.80 strong buy, >= 0.65 buy, >= 0.45 hold, >= 0.30 sell.
func RecommendationTypeForScore(score float64) RecommendationType {
	switch {
	case score >= 0.80:
		return StrongBuy
	case score >= 0.65:
		return Buy
	case score >= 0.45:
		return Hold
	case score >= 0.30:
		return Sell
	default:
		return StrongSell
	}
}

// AnalysisResult is one analyzer's verdict on one stock
type AnalysisResult struct {
	Symbol     string         `json:"symbol"`
	Analyzer   string         `json:"analyzer"`
	Score      float64        `json:"score"` // 0.0 bearish to 1.0 bullish
	Confidence float64        `json:"confidence"`
	Reasoning  string         `json:"reasoning"`
	Articles   []*NewsArticle `json:"articles,omitempty"`
	AnalyzedAt time.Time      `json:"analyzed_at"`
}

// Recommendation is the final composite verdict for one stock
type Recommendation struct {
	ID          string             `json:"id"`
	Symbol      string             `json:"symbol"`
	Action      RecommendationType `json:"action"`
	Score       float64            `json:"score"`
	Confidence  float64            `json:"confidence"`
	Reasoning   string             `json:"reasoning"`
	TargetPrice *float64           `json:"target_price,omitempty"`
	Articles    []*NewsArticle     `json:"articles,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// NewRecommendation builds a recommendation with a fresh ID
func NewRecommendation(symbol string, action RecommendationType, score, confidence float64, reasoning string) *Recommendation {
	return &Recommendation{
		ID:         uuid.New().String(),
		Symbol:     symbol,
		Action:     action,
		Score:      score,
		Confidence: confidence,
		Reasoning:  reasoning,
		CreatedAt:  time.Now(),
	}
}
