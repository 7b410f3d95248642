// Package marketstore caches market data and recommendations in Badger
package marketstore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/jwhittle/stockscout/internal/common"
	"github.com/jwhittle/stockscout/internal/interfaces"
	"github.com/jwhittle/stockscout/internal/models"
)

// ErrNotFound is returned when no cached record exists
var ErrNotFound = badgerhold.ErrNotFound

// Store implements the MarketStore interface on badgerhold
type Store struct {
	store  *badgerhold.Store
	logger *common.Logger
}

// NewStore opens (creating if needed) the cache database at path
func NewStore(path string, logger *common.Logger) (*Store, error) {
	if logger == nil {
		logger = common.NewSilentLogger()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	logger.Debug().Str("path", path).Msg("Market store opened")

	return &Store{store: store, logger: logger}, nil
}

var _ interfaces.MarketStore = (*Store)(nil)

// quoteRecord wraps a quote with its storage timestamp
type quoteRecord struct {
	Symbol    string `badgerhold:"key"`
	Stock     *models.Stock
	UpdatedAt time.Time
}

// historyRecord wraps bars with their storage timestamp
type historyRecord struct {
	Key       string `badgerhold:"key"` // symbol + ":" + period
	Bars      []models.Bar
	UpdatedAt time.Time
}

// fundamentalsRecord wraps fundamentals with their storage timestamp
type fundamentalsRecord struct {
	Symbol       string `badgerhold:"key"`
	Fundamentals *models.Fundamentals
	UpdatedAt    time.Time
}

// newsRecord wraps cached articles with their storage timestamp
type newsRecord struct {
	Symbol    string `badgerhold:"key"`
	Articles  []*models.NewsArticle
	UpdatedAt time.Time
}

// GetQuote returns the cached quote and when it was stored
func (s *Store) GetQuote(symbol string) (*models.Stock, time.Time, error) {
	var rec quoteRecord
	if err := s.store.Get(symbol, &rec); err != nil {
		return nil, time.Time{}, err
	}
	return rec.Stock, rec.UpdatedAt, nil
}

// PutQuote stores a quote snapshot
func (s *Store) PutQuote(symbol string, stock *models.Stock) error {
	rec := quoteRecord{Symbol: symbol, Stock: stock, UpdatedAt: time.Now()}
	return s.store.Upsert(symbol, &rec)
}

// GetHistory returns cached bars for a symbol and lookback key
func (s *Store) GetHistory(symbol, period string) ([]models.Bar, time.Time, error) {
	key := symbol + ":" + period
	var rec historyRecord
	if err := s.store.Get(key, &rec); err != nil {
		return nil, time.Time{}, err
	}
	return rec.Bars, rec.UpdatedAt, nil
}

// PutHistory stores bars for a symbol and lookback key
func (s *Store) PutHistory(symbol, period string, bars []models.Bar) error {
	key := symbol + ":" + period
	rec := historyRecord{Key: key, Bars: bars, UpdatedAt: time.Now()}
	return s.store.Upsert(key, &rec)
}

// GetFundamentals returns cached fundamentals
func (s *Store) GetFundamentals(symbol string) (*models.Fundamentals, time.Time, error) {
	var rec fundamentalsRecord
	if err := s.store.Get(symbol, &rec); err != nil {
		return nil, time.Time{}, err
	}
	return rec.Fundamentals, rec.UpdatedAt, nil
}

// PutFundamentals stores fundamentals
func (s *Store) PutFundamentals(symbol string, f *models.Fundamentals) error {
	rec := fundamentalsRecord{Symbol: symbol, Fundamentals: f, UpdatedAt: time.Now()}
	return s.store.Upsert(symbol, &rec)
}

// GetNews returns cached articles for a symbol
func (s *Store) GetNews(symbol string) ([]*models.NewsArticle, time.Time, error) {
	var rec newsRecord
	if err := s.store.Get(symbol, &rec); err != nil {
		return nil, time.Time{}, err
	}
	return rec.Articles, rec.UpdatedAt, nil
}

// PutNews stores articles for a symbol
func (s *Store) PutNews(symbol string, articles []*models.NewsArticle) error {
	rec := newsRecord{Symbol: symbol, Articles: articles, UpdatedAt: time.Now()}
	return s.store.Upsert(symbol, &rec)
}

// SaveRecommendation persists a composite verdict
func (s *Store) SaveRecommendation(rec *models.Recommendation) error {
	return s.store.Insert(rec.ID, rec)
}

// ListRecommendations returns stored verdicts for a symbol, newest first
func (s *Store) ListRecommendations(symbol string, limit int) ([]*models.Recommendation, error) {
	var recs []*models.Recommendation
	query := badgerhold.Where("Symbol").Eq(symbol).SortBy("CreatedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := s.store.Find(&recs, query); err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	return recs, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
