package models

import "time"

// Sentiment labels
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Impact labels
const (
	ImpactBullish = "bullish"
	ImpactBearish = "bearish"
	ImpactNeutral = "neutral"
)

// SentimentResult is the outcome of sentiment analysis over a set of
// articles. Method records how it was produced: "llm-<provider>" for a
// single backend, "llm-a+b" for a multi-provider consensus, or
// "keyword" for the lexicon fallback.
type SentimentResult struct {
	Symbol         string    `json:"symbol"`
	Sentiment      string    `json:"sentiment"` // positive, negative or neutral
	SentimentScore float64   `json:"sentiment_score"`
	Confidence     float64   `json:"confidence"`
	Impact         string    `json:"impact"` // bullish, bearish or neutral
	KeyThemes      []string  `json:"key_themes,omitempty"`
	Summary        string    `json:"summary"`
	Method         string    `json:"method"`
	ArticleCount   int       `json:"article_count"`
	AnalyzedAt     time.Time `json:"analyzed_at"`
}
