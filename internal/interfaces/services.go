package interfaces

import (
	"context"

	"github.com/jwhittle/stockscout/internal/models"
)

// Analyzer scores one stock on a single dimension
type Analyzer interface {
	// Name identifies the analyzer in reasoning text and configuration
	Name() string

	// Weight is this analyzer's contribution to the composite score
	Weight() float64

	// Analyze produces a score in [0,1] with reasoning for the stock
	Analyze(ctx context.Context, stock *models.Stock) (*models.AnalysisResult, error)
}

// NewsAggregator collects deduplicated articles for a symbol across sources
type NewsAggregator interface {
	FetchNews(ctx context.Context, symbol, sector string) ([]*models.NewsArticle, error)
}

// SentimentAnalyzer turns a set of articles into a sentiment verdict.
// It never fails: with no usable LLM backend it falls back to keyword
// scoring, and with no articles it returns a neutral result.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, symbol string, articles []*models.NewsArticle) *models.SentimentResult
}

// AdvisorService runs the full pipeline for one or more stocks
type AdvisorService interface {
	AnalyzeStock(ctx context.Context, symbol string) (*models.Recommendation, error)
	AnalyzeStocks(ctx context.Context, symbols []string) ([]*models.Recommendation, error)
}
