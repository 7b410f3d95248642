package cached

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhittle/stockscout/internal/models"
)

// fakeUpstream counts calls so cache hits are observable
type fakeUpstream struct {
	quoteCalls   int
	historyCalls int
	fundCalls    int
	err          error
}

func (f *fakeUpstream) GetQuote(ctx context.Context, symbol string) (*models.Stock, error) {
	f.quoteCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.Stock{Symbol: symbol, CurrentPrice: 100}, nil
}

func (f *fakeUpstream) GetHistory(ctx context.Context, symbol string, lookback time.Duration) ([]models.Bar, error) {
	f.historyCalls++
	if f.err != nil {
		return nil, f.err
	}
	return []models.Bar{{Close: 100}}, nil
}

func (f *fakeUpstream) GetFundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error) {
	f.fundCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.Fundamentals{PERatio: 20}, nil
}

// memStore is an in-memory MarketStore for tests
type memStore struct {
	quotes    map[string]*models.Stock
	histories map[string][]models.Bar
	funds     map[string]*models.Fundamentals
	updated   map[string]time.Time
}

func newMemStore() *memStore {
	return &memStore{
		quotes:    map[string]*models.Stock{},
		histories: map[string][]models.Bar{},
		funds:     map[string]*models.Fundamentals{},
		updated:   map[string]time.Time{},
	}
}

var errMiss = errors.New("not found")

func (m *memStore) GetQuote(symbol string) (*models.Stock, time.Time, error) {
	s, ok := m.quotes[symbol]
	if !ok {
		return nil, time.Time{}, errMiss
	}
	return s, m.updated["q:"+symbol], nil
}

func (m *memStore) PutQuote(symbol string, stock *models.Stock) error {
	m.quotes[symbol] = stock
	m.updated["q:"+symbol] = time.Now()
	return nil
}

func (m *memStore) GetHistory(symbol, period string) ([]models.Bar, time.Time, error) {
	b, ok := m.histories[symbol+":"+period]
	if !ok {
		return nil, time.Time{}, errMiss
	}
	return b, m.updated["h:"+symbol+":"+period], nil
}

func (m *memStore) PutHistory(symbol, period string, bars []models.Bar) error {
	m.histories[symbol+":"+period] = bars
	m.updated["h:"+symbol+":"+period] = time.Now()
	return nil
}

func (m *memStore) GetFundamentals(symbol string) (*models.Fundamentals, time.Time, error) {
	f, ok := m.funds[symbol]
	if !ok {
		return nil, time.Time{}, errMiss
	}
	return f, m.updated["f:"+symbol], nil
}

func (m *memStore) PutFundamentals(symbol string, f *models.Fundamentals) error {
	m.funds[symbol] = f
	m.updated["f:"+symbol] = time.Now()
	return nil
}

func (m *memStore) GetNews(symbol string) ([]*models.NewsArticle, time.Time, error) {
	return nil, time.Time{}, errMiss
}
func (m *memStore) PutNews(symbol string, articles []*models.NewsArticle) error { return nil }
func (m *memStore) SaveRecommendation(rec *models.Recommendation) error         { return nil }
func (m *memStore) ListRecommendations(symbol string, limit int) ([]*models.Recommendation, error) {
	return nil, nil
}
func (m *memStore) Close() error { return nil }

func TestGetQuote_SecondCallHitsCache(t *testing.T) {
	upstream := &fakeUpstream{}
	client := NewClient(upstream, newMemStore(), nil)

	_, err := client.GetQuote(context.Background(), "AAPL.US")
	require.NoError(t, err)
	_, err = client.GetQuote(context.Background(), "AAPL.US")
	require.NoError(t, err)

	assert.Equal(t, 1, upstream.quoteCalls)
}

func TestGetQuote_StaleCacheRefetches(t *testing.T) {
	upstream := &fakeUpstream{}
	store := newMemStore()
	client := NewClient(upstream, store, nil)

	_, err := client.GetQuote(context.Background(), "AAPL.US")
	require.NoError(t, err)

	// Age the cache entry beyond the quote TTL
	store.updated["q:AAPL.US"] = time.Now().Add(-time.Hour)

	_, err = client.GetQuote(context.Background(), "AAPL.US")
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.quoteCalls)
}

func TestGetHistory_CachedPerPeriod(t *testing.T) {
	upstream := &fakeUpstream{}
	client := NewClient(upstream, newMemStore(), nil)

	_, err := client.GetHistory(context.Background(), "AAPL.US", 90*24*time.Hour)
	require.NoError(t, err)
	_, err = client.GetHistory(context.Background(), "AAPL.US", 90*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, upstream.historyCalls)

	// Different lookback is a different cache key
	_, err = client.GetHistory(context.Background(), "AAPL.US", 365*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.historyCalls)
}

func TestGetFundamentals_UpstreamErrorPropagates(t *testing.T) {
	upstream := &fakeUpstream{err: errors.New("api down")}
	client := NewClient(upstream, newMemStore(), nil)

	_, err := client.GetFundamentals(context.Background(), "AAPL.US")
	assert.Error(t, err)
}

func TestPeriodKey(t *testing.T) {
	assert.Equal(t, "90d", periodKey(90*24*time.Hour))
	assert.Equal(t, "1d", periodKey(time.Hour))
}
