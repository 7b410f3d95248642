// Package cached decorates a market data client with a freshness-aware
// local cache so repeated runs do not re-fetch slow-moving data.
package cached

import (
	"context"
	"fmt"
	"time"

	"github.com/jwhittle/stockscout/internal/common"
	"github.com/jwhittle/stockscout/internal/interfaces"
	"github.com/jwhittle/stockscout/internal/models"
)

// Client wraps a MarketDataClient with a MarketStore
type Client struct {
	upstream interfaces.MarketDataClient
	store    interfaces.MarketStore
	logger   *common.Logger
}

// NewClient creates a caching wrapper around upstream
func NewClient(upstream interfaces.MarketDataClient, store interfaces.MarketStore, logger *common.Logger) *Client {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Client{upstream: upstream, store: store, logger: logger}
}

var _ interfaces.MarketDataClient = (*Client)(nil)

// GetQuote returns a cached quote when fresh, otherwise fetches and stores
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.Stock, error) {
	if stock, updated, err := c.store.GetQuote(symbol); err == nil && common.IsFresh(updated, common.FreshnessQuote) {
		c.logger.Debug().Str("symbol", symbol).Msg("Quote cache hit")
		return stock, nil
	}

	stock, err := c.upstream.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if err := c.store.PutQuote(symbol, stock); err != nil {
		c.logger.Warn().Str("symbol", symbol).Err(err).Msg("Failed to cache quote")
	}

	return stock, nil
}

// GetHistory returns cached bars when fresh, otherwise fetches and stores
func (c *Client) GetHistory(ctx context.Context, symbol string, lookback time.Duration) ([]models.Bar, error) {
	period := periodKey(lookback)

	if bars, updated, err := c.store.GetHistory(symbol, period); err == nil && common.IsFresh(updated, common.FreshnessHistory) {
		c.logger.Debug().Str("symbol", symbol).Str("period", period).Msg("History cache hit")
		return bars, nil
	}

	bars, err := c.upstream.GetHistory(ctx, symbol, lookback)
	if err != nil {
		return nil, err
	}

	if err := c.store.PutHistory(symbol, period, bars); err != nil {
		c.logger.Warn().Str("symbol", symbol).Err(err).Msg("Failed to cache history")
	}

	return bars, nil
}

// GetFundamentals returns cached fundamentals when fresh, otherwise
// fetches and stores
func (c *Client) GetFundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error) {
	if f, updated, err := c.store.GetFundamentals(symbol); err == nil && common.IsFresh(updated, common.FreshnessFundamentals) {
		c.logger.Debug().Str("symbol", symbol).Msg("Fundamentals cache hit")
		return f, nil
	}

	f, err := c.upstream.GetFundamentals(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if err := c.store.PutFundamentals(symbol, f); err != nil {
		c.logger.Warn().Str("symbol", symbol).Err(err).Msg("Failed to cache fundamentals")
	}

	return f, nil
}

// periodKey buckets a lookback duration into a stable cache key
func periodKey(lookback time.Duration) string {
	days := int(lookback.Hours() / 24)
	if days < 1 {
		days = 1
	}
	return fmt.Sprintf("%dd", days)
}
