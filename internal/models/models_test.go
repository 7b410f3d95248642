package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStock_PriceChangeFromPreviousClose(t *testing.T) {
	// session open must not influence the change calculation
	stock := &Stock{CurrentPrice: 110, PreviousClose: 100, OpenPrice: 105}
	assert.InDelta(t, 10.0, stock.PriceChange(), 0.0001)
	assert.InDelta(t, 10.0, stock.PriceChangePercent(), 0.0001)

	stock = &Stock{CurrentPrice: 95, PreviousClose: 100}
	assert.InDelta(t, -5.0, stock.PriceChangePercent(), 0.0001)

	stock = &Stock{CurrentPrice: 100, PreviousClose: 0, OpenPrice: 100}
	assert.Equal(t, 0.0, stock.PriceChange())
	assert.Equal(t, 0.0, stock.PriceChangePercent())
}

func TestRecommendationTypeForScore(t *testing.T) {
	tests := []struct {
		score    float64
		expected RecommendationType
	}{
		{1.0, StrongBuy},
		{0.80, StrongBuy},
		{0.79, Buy},
		{0.65, Buy},
		{0.64, Hold},
		{0.45, Hold},
		{0.44, Sell},
		{0.30, Sell},
		{0.29, StrongSell},
		{0.0, StrongSell},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, RecommendationTypeForScore(tt.score), "score %.2f", tt.score)
	}
}

func TestNewsArticle_DedupKey(t *testing.T) {
	withTitle := &NewsArticle{Title: "Apple Beats Earnings", URL: "https://a.example/1"}
	assert.Equal(t, "apple beats earnings", withTitle.DedupKey())

	urlOnly := &NewsArticle{URL: "https://a.example/2", Source: "Reuters"}
	assert.Equal(t, "https://a.example/2", urlOnly.DedupKey())

	long := strings.Repeat("x", 80)
	summaryOnly := &NewsArticle{Source: "Reuters", Summary: long}
	assert.Equal(t, "Reuters_"+long[:50], summaryOnly.DedupKey())
}

func TestNewRecommendation(t *testing.T) {
	rec := NewRecommendation("AAPL", Buy, 0.7, 0.8, "price: uptrend")
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "AAPL", rec.Symbol)
	assert.Equal(t, Buy, rec.Action)
	assert.Nil(t, rec.TargetPrice)
	assert.False(t, rec.CreatedAt.IsZero())
}
