// Package advisor assembles market data into a Stock snapshot, runs the
// composite analysis and persists the resulting recommendation.
package advisor

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jwhittle/stockscout/internal/analyzers"
	"github.com/jwhittle/stockscout/internal/common"
	"github.com/jwhittle/stockscout/internal/interfaces"
	"github.com/jwhittle/stockscout/internal/models"
)

const (
	defaultLookbackDays  = 180
	defaultMaxConcurrent = 4
)

// Service runs the full analysis pipeline for one or more stocks
type Service struct {
	market        interfaces.MarketDataClient
	composite     interfaces.Analyzer
	store         interfaces.MarketStore
	profiles      interfaces.ProfileClient
	lookbackDays  int
	maxConcurrent int
	logger        *common.Logger
}

var _ interfaces.AdvisorService = (*Service)(nil)

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithLogger sets the service logger
func WithLogger(logger *common.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithProfileClient sets an optional company profile resolver. Without
// one, sector stays empty and related market news is skipped.
func WithProfileClient(profiles interfaces.ProfileClient) ServiceOption {
	return func(s *Service) {
		s.profiles = profiles
	}
}

// WithLookbackDays sets how much history is fetched for analysis
func WithLookbackDays(days int) ServiceOption {
	return func(s *Service) {
		if days > 0 {
			s.lookbackDays = days
		}
	}
}

// WithMaxConcurrent bounds the per-stock worker pool
func WithMaxConcurrent(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.maxConcurrent = n
		}
	}
}

// NewService creates an advisor service
func NewService(market interfaces.MarketDataClient, composite interfaces.Analyzer, store interfaces.MarketStore, opts ...ServiceOption) *Service {
	s := &Service{
		market:        market,
		composite:     composite,
		store:         store,
		lookbackDays:  defaultLookbackDays,
		maxConcurrent: defaultMaxConcurrent,
		logger:        common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeStock assembles the stock snapshot, runs the composite and
// saves the recommendation. The quote is required; history,
// fundamentals and profile degrade to empty on failure so one flaky
// upstream does not block the analysis.
func (s *Service) AnalyzeStock(ctx context.Context, symbol string) (*models.Recommendation, error) {
	stock, err := s.buildStock(ctx, symbol)
	if err != nil {
		return nil, err
	}

	result, err := s.composite.Analyze(ctx, stock)
	if err != nil {
		return nil, fmt.Errorf("analysis failed for %s: %w", symbol, err)
	}

	rec := analyzers.CreateRecommendation(stock, result)

	if err := s.store.SaveRecommendation(rec); err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("failed to persist recommendation")
	}

	s.logger.Info().
		Str("symbol", symbol).
		Str("action", string(rec.Action)).
		Float64("score", rec.Score).
		Float64("confidence", rec.Confidence).
		Msg("analysis complete")

	return rec, nil
}

// AnalyzeStocks analyzes symbols through a bounded worker pool and
// returns the successful recommendations ordered by confidence. A
// failed symbol is logged and dropped; it never fails the batch.
func (s *Service) AnalyzeStocks(ctx context.Context, symbols []string) ([]*models.Recommendation, error) {
	results := make([]*models.Recommendation, len(symbols))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for i, symbol := range symbols {
		g.Go(func() error {
			rec, err := s.AnalyzeStock(gctx, symbol)
			if err != nil {
				s.logger.Error().Err(err).Str("symbol", symbol).Msg("stock analysis failed")
				return nil
			}
			mu.Lock()
			results[i] = rec
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recs := make([]*models.Recommendation, 0, len(results))
	for _, rec := range results {
		if rec != nil {
			recs = append(recs, rec)
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})

	return recs, nil
}

// buildStock fetches quote, history, fundamentals and profile for one symbol
func (s *Service) buildStock(ctx context.Context, symbol string) (*models.Stock, error) {
	stock, err := s.market.GetQuote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote for %s: %w", symbol, err)
	}

	lookback := time.Duration(s.lookbackDays) * 24 * time.Hour
	if bars, err := s.market.GetHistory(ctx, symbol, lookback); err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("history unavailable")
	} else {
		stock.History = bars
	}

	if f, err := s.market.GetFundamentals(ctx, symbol); err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("fundamentals unavailable")
	} else if f != nil {
		stock.Fundamentals = *f
	}

	if s.profiles != nil {
		if name, sector, industry, err := s.profiles.GetProfile(ctx, symbol); err != nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("profile unavailable")
		} else {
			stock.Name = name
			stock.Sector = sector
			stock.Industry = industry
		}
	}

	return stock, nil
}
