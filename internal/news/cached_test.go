package news

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhittle/stockscout/internal/models"
)

type fakeNewsStore struct {
	articles []*models.NewsArticle
	updated  time.Time
	getErr   error
	put      [][]*models.NewsArticle
}

func (s *fakeNewsStore) GetNews(symbol string) ([]*models.NewsArticle, time.Time, error) {
	if s.getErr != nil {
		return nil, time.Time{}, s.getErr
	}
	return s.articles, s.updated, nil
}

func (s *fakeNewsStore) PutNews(symbol string, articles []*models.NewsArticle) error {
	s.put = append(s.put, articles)
	return nil
}

type countingAggregator struct {
	articles []*models.NewsArticle
	err      error
	calls    int
}

func (a *countingAggregator) FetchNews(ctx context.Context, symbol, sector string) ([]*models.NewsArticle, error) {
	a.calls++
	return a.articles, a.err
}

func TestCachedAggregatorFreshHitSkipsUpstream(t *testing.T) {
	cachedArticles := []*models.NewsArticle{{Title: "Apple beats estimates"}}
	store := &fakeNewsStore{articles: cachedArticles, updated: time.Now()}
	upstream := &countingAggregator{}

	agg := NewCachedAggregator(upstream, store, nil)

	articles, err := agg.FetchNews(context.Background(), "AAPL.US", "Technology")
	require.NoError(t, err)
	assert.Equal(t, cachedArticles, articles)
	assert.Zero(t, upstream.calls)
}

func TestCachedAggregatorStaleEntryRefetches(t *testing.T) {
	fetched := []*models.NewsArticle{{Title: "Apple ships new product"}}
	store := &fakeNewsStore{
		articles: []*models.NewsArticle{{Title: "Old story"}},
		updated:  time.Now().Add(-7 * time.Hour),
	}
	upstream := &countingAggregator{articles: fetched}

	agg := NewCachedAggregator(upstream, store, nil)

	articles, err := agg.FetchNews(context.Background(), "AAPL.US", "Technology")
	require.NoError(t, err)
	assert.Equal(t, fetched, articles)
	assert.Equal(t, 1, upstream.calls)

	require.Len(t, store.put, 1)
	assert.Equal(t, fetched, store.put[0])
}

func TestCachedAggregatorMissFetchesAndStores(t *testing.T) {
	fetched := []*models.NewsArticle{{Title: "Tesla misses earnings"}}
	store := &fakeNewsStore{getErr: errors.New("not found")}
	upstream := &countingAggregator{articles: fetched}

	agg := NewCachedAggregator(upstream, store, nil)

	articles, err := agg.FetchNews(context.Background(), "TSLA.US", "")
	require.NoError(t, err)
	assert.Equal(t, fetched, articles)
	require.Len(t, store.put, 1)
}

func TestCachedAggregatorUpstreamErrorPropagates(t *testing.T) {
	store := &fakeNewsStore{getErr: errors.New("not found")}
	upstream := &countingAggregator{err: errors.New("all sources down")}

	agg := NewCachedAggregator(upstream, store, nil)

	_, err := agg.FetchNews(context.Background(), "AAPL.US", "")
	require.Error(t, err)
	assert.Empty(t, store.put)
}
