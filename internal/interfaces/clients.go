// Package interfaces defines service contracts for Stockscout
package interfaces

import (
	"context"
	"time"

	"github.com/jwhittle/stockscout/internal/models"
)

// MarketDataClient provides access to market data for a symbol
type MarketDataClient interface {
	// GetQuote retrieves the latest quote snapshot
	GetQuote(ctx context.Context, symbol string) (*models.Stock, error)

	// GetHistory retrieves OHLCV bars covering the given lookback, oldest first
	GetHistory(ctx context.Context, symbol string, lookback time.Duration) ([]models.Bar, error)

	// GetFundamentals retrieves fundamental data
	GetFundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error)
}

// ProfileClient resolves company identity details for a symbol
type ProfileClient interface {
	// GetProfile retrieves the company name, sector and industry
	GetProfile(ctx context.Context, symbol string) (name, sector, industry string, err error)
}

// NewsSourceClient fetches recent articles about a symbol from one source.
// Implementations return what they can; a source that fails entirely
// returns an error and the aggregator carries on without it.
type NewsSourceClient interface {
	// Name identifies the source in logs and article attribution
	Name() string

	// FetchRecent retrieves up to maxArticles published within daysBack days
	FetchRecent(ctx context.Context, symbol string, maxArticles, daysBack int) ([]*models.NewsArticle, error)
}

// KeywordNewsClient is a news source that can also search by free-form
// keywords, used for related market context (sector, macro).
type KeywordNewsClient interface {
	NewsSourceClient

	// FetchByKeywords retrieves articles matching any of the keywords
	FetchByKeywords(ctx context.Context, keywords []string, maxArticles, daysBack int) ([]*models.NewsArticle, error)
}

// SentimentClient is one LLM backend in the sentiment provider chain
type SentimentClient interface {
	// Name identifies the provider, used in the result method tag
	Name() string

	// Infer sends the prompt and returns the raw model response text
	Infer(ctx context.Context, prompt string) (string, error)
}
