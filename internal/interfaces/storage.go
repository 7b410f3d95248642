package interfaces

import (
	"time"

	"github.com/jwhittle/stockscout/internal/models"
)

// MarketStore caches market data between runs so repeated analysis of
// the same symbol does not hammer the upstream APIs.
type MarketStore interface {
	// GetQuote returns the cached quote and when it was stored
	GetQuote(symbol string) (*models.Stock, time.Time, error)
	PutQuote(symbol string, stock *models.Stock) error

	// GetHistory returns cached bars for a symbol and lookback key
	GetHistory(symbol, period string) ([]models.Bar, time.Time, error)
	PutHistory(symbol, period string, bars []models.Bar) error

	// GetFundamentals returns cached fundamentals
	GetFundamentals(symbol string) (*models.Fundamentals, time.Time, error)
	PutFundamentals(symbol string, f *models.Fundamentals) error

	// GetNews returns cached articles for a symbol
	GetNews(symbol string) ([]*models.NewsArticle, time.Time, error)
	PutNews(symbol string, articles []*models.NewsArticle) error

	// SaveRecommendation persists a composite verdict
	SaveRecommendation(rec *models.Recommendation) error
	// ListRecommendations returns stored verdicts for a symbol, newest first
	ListRecommendations(symbol string, limit int) ([]*models.Recommendation, error)

	Close() error
}
