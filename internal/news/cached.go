package news

import (
	"context"
	"time"

	"github.com/jwhittle/stockscout/internal/common"
	"github.com/jwhittle/stockscout/internal/interfaces"
	"github.com/jwhittle/stockscout/internal/models"
)

// NewsStore is the slice of the market store the cache needs
type NewsStore interface {
	GetNews(symbol string) ([]*models.NewsArticle, time.Time, error)
	PutNews(symbol string, articles []*models.NewsArticle) error
}

// CachedAggregator wraps an aggregator with a freshness-aware article
// cache so repeated runs within the news TTL skip the source round trip.
type CachedAggregator struct {
	upstream interfaces.NewsAggregator
	store    NewsStore
	logger   *common.Logger
}

// NewCachedAggregator creates a caching wrapper around upstream
func NewCachedAggregator(upstream interfaces.NewsAggregator, store NewsStore, logger *common.Logger) *CachedAggregator {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &CachedAggregator{upstream: upstream, store: store, logger: logger}
}

var _ interfaces.NewsAggregator = (*CachedAggregator)(nil)

// FetchNews returns cached articles when fresh, otherwise fetches and stores
func (c *CachedAggregator) FetchNews(ctx context.Context, symbol, sector string) ([]*models.NewsArticle, error) {
	if articles, updated, err := c.store.GetNews(symbol); err == nil && common.IsFresh(updated, common.FreshnessNews) {
		c.logger.Debug().Str("symbol", symbol).Int("articles", len(articles)).Msg("News cache hit")
		return articles, nil
	}

	articles, err := c.upstream.FetchNews(ctx, symbol, sector)
	if err != nil {
		return nil, err
	}

	if err := c.store.PutNews(symbol, articles); err != nil {
		c.logger.Warn().Str("symbol", symbol).Err(err).Msg("Failed to cache news")
	}

	return articles, nil
}
