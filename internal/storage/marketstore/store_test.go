package marketstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhittle/stockscout/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "market"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestQuoteRoundTrip(t *testing.T) {
	store := newTestStore(t)

	stock := &models.Stock{Symbol: "AAPL.US", CurrentPrice: 244.25, Volume: 5000000}
	require.NoError(t, store.PutQuote("AAPL.US", stock))

	got, updated, err := store.GetQuote("AAPL.US")
	require.NoError(t, err)
	assert.Equal(t, 244.25, got.CurrentPrice)
	assert.WithinDuration(t, time.Now(), updated, 5*time.Second)
}

func TestQuote_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, _, err := store.GetQuote("MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryRoundTrip_KeyedByPeriod(t *testing.T) {
	store := newTestStore(t)

	daily := []models.Bar{{Close: 100}, {Close: 101}}
	weekly := []models.Bar{{Close: 99}}
	require.NoError(t, store.PutHistory("AAPL.US", "90d", daily))
	require.NoError(t, store.PutHistory("AAPL.US", "365d", weekly))

	got, _, err := store.GetHistory("AAPL.US", "90d")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, _, err = store.GetHistory("AAPL.US", "365d")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestNewsRoundTrip(t *testing.T) {
	store := newTestStore(t)

	articles := []*models.NewsArticle{
		{Title: "Apple hits new high", Source: "Yahoo Finance"},
	}
	require.NoError(t, store.PutNews("AAPL.US", articles))

	got, _, err := store.GetNews("AAPL.US")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Apple hits new high", got[0].Title)
}

func TestListRecommendations_NewestFirst(t *testing.T) {
	store := newTestStore(t)

	old := models.NewRecommendation("AAPL.US", models.Hold, 0.5, 0.5, "flat")
	old.CreatedAt = time.Now().Add(-time.Hour)
	recent := models.NewRecommendation("AAPL.US", models.Buy, 0.7, 0.8, "uptrend")
	other := models.NewRecommendation("MSFT.US", models.Sell, 0.35, 0.6, "downtrend")

	require.NoError(t, store.SaveRecommendation(old))
	require.NoError(t, store.SaveRecommendation(recent))
	require.NoError(t, store.SaveRecommendation(other))

	recs, err := store.ListRecommendations("AAPL.US", 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, models.Buy, recs[0].Action)
	assert.Equal(t, models.Hold, recs[1].Action)

	limited, err := store.ListRecommendations("AAPL.US", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
