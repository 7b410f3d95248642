// Package news aggregates stock news from multiple sources
package news

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jwhittle/stockscout/internal/common"
	"github.com/jwhittle/stockscout/internal/interfaces"
	"github.com/jwhittle/stockscout/internal/models"
)

// Aggregator fans out to every configured source concurrently, merges
// the survivors and removes near-duplicate stories. Source failures are
// logged and skipped; the aggregator only fails when the context dies.
type Aggregator struct {
	sources        []interfaces.NewsSourceClient
	keywordSource  interfaces.KeywordNewsClient
	maxPerSource   int
	lookbackDays   int
	sourceTimeout  time.Duration
	includeRelated bool
	logger         *common.Logger
}

// AggregatorOption configures the aggregator
type AggregatorOption func(*Aggregator)

// WithMaxPerSource caps articles taken from each source
func WithMaxPerSource(n int) AggregatorOption {
	return func(a *Aggregator) {
		a.maxPerSource = n
	}
}

// WithLookbackDays sets how far back to fetch
func WithLookbackDays(days int) AggregatorOption {
	return func(a *Aggregator) {
		a.lookbackDays = days
	}
}

// WithSourceTimeout bounds each source fetch
func WithSourceTimeout(d time.Duration) AggregatorOption {
	return func(a *Aggregator) {
		a.sourceTimeout = d
	}
}

// WithRelatedMarketNews enables sector keyword queries through source
func WithRelatedMarketNews(source interfaces.KeywordNewsClient) AggregatorOption {
	return func(a *Aggregator) {
		a.keywordSource = source
		a.includeRelated = source != nil
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) AggregatorOption {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

// NewAggregator creates an aggregator over the given sources
func NewAggregator(sources []interfaces.NewsSourceClient, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		sources:       sources,
		maxPerSource:  50,
		lookbackDays:  30,
		sourceTimeout: 15 * time.Second,
		logger:        common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

var _ interfaces.NewsAggregator = (*Aggregator)(nil)

// FetchNews collects deduplicated articles for a symbol across all
// sources, newest first. Sector is used for related market context when
// a keyword source is configured; pass "" to skip it.
func (a *Aggregator) FetchNews(ctx context.Context, symbol, sector string) ([]*models.NewsArticle, error) {
	var mu sync.Mutex
	var collected []*models.NewsArticle

	g, gctx := errgroup.WithContext(ctx)

	for _, source := range a.sources {
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(gctx, a.sourceTimeout)
			defer cancel()

			articles, err := source.FetchRecent(fetchCtx, symbol, a.maxPerSource, a.lookbackDays)
			if err != nil {
				// Non-critical: skip failed sources
				a.logger.Warn().Str("source", source.Name()).Str("symbol", symbol).Err(err).Msg("News source failed")
				return nil
			}

			mu.Lock()
			collected = append(collected, articles...)
			mu.Unlock()
			return nil
		})
	}

	if a.includeRelated && sector != "" {
		if keywords := RelatedMarketKeywords(sector); len(keywords) > 0 {
			g.Go(func() error {
				fetchCtx, cancel := context.WithTimeout(gctx, a.sourceTimeout)
				defer cancel()

				articles, err := a.keywordSource.FetchByKeywords(fetchCtx, keywords, a.maxPerSource, a.lookbackDays)
				if err != nil {
					a.logger.Warn().Str("sector", sector).Err(err).Msg("Related market news failed")
					return nil
				}

				mu.Lock()
				collected = append(collected, articles...)
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := time.Now()
	for _, article := range collected {
		if article.PublishedAt.IsZero() {
			article.PublishedAt = now
		}
	}

	// Stable order before dedup so the kept copy of a story does not
	// depend on source completion order
	sort.SliceStable(collected, func(i, j int) bool {
		return collected[i].PublishedAt.After(collected[j].PublishedAt)
	})

	deduped := Dedupe(collected)

	a.logger.Info().
		Str("symbol", symbol).
		Int("fetched", len(collected)).
		Int("unique", len(deduped)).
		Msg("News aggregated")

	return deduped, nil
}
