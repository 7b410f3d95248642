package news

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwhittle/stockscout/internal/models"
)

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "apple beats q3 earnings", NormalizeTitle("Apple Beats Q3 Earnings!"))
	assert.Equal(t, "apple beats earnings", NormalizeTitle("  Apple,  Beats:   Earnings  "))
	assert.Equal(t, "", NormalizeTitle("..."))
}

func TestTitleSimilarity(t *testing.T) {
	// Identical word sets regardless of punctuation and case
	assert.InDelta(t, 1.0, TitleSimilarity("Apple Beats Earnings", "apple beats earnings!"), 0.0001)

	// Completely different
	assert.InDelta(t, 0.0, TitleSimilarity("Apple Beats Earnings", "Oil prices surge"), 0.0001)

	// Partial overlap: {apple, beats, earnings} vs {apple, misses, earnings}
	// intersection 2, union 4
	assert.InDelta(t, 0.5, TitleSimilarity("Apple Beats Earnings", "Apple Misses Earnings"), 0.0001)

	// Empty titles never match
	assert.Equal(t, 0.0, TitleSimilarity("", "Apple Beats Earnings"))
}

func TestDedupe_RemovesNearDuplicates(t *testing.T) {
	articles := []*models.NewsArticle{
		{Title: "Apple announces record Q3 earnings results today", Source: "Yahoo Finance"},
		{Title: "Apple announces record Q3 earnings results today!", Source: "Google News"},
		{Title: "Oil prices surge on supply fears", Source: "NewsAPI"},
	}

	deduped := Dedupe(articles)
	assert.Len(t, deduped, 2)
	// First occurrence wins
	assert.Equal(t, "Yahoo Finance", deduped[0].Source)
}

func TestDedupe_KeepsDistinctStories(t *testing.T) {
	articles := []*models.NewsArticle{
		{Title: "Apple Beats Earnings"},
		{Title: "Apple Misses Earnings"}, // 0.5 similarity, below threshold
	}

	assert.Len(t, Dedupe(articles), 2)
}

func TestDedupe_Idempotent(t *testing.T) {
	articles := []*models.NewsArticle{
		{Title: "Apple announces record earnings"},
		{Title: "Apple announces record earnings today"},
		{Title: "Fed holds interest rates steady"},
	}

	once := Dedupe(articles)
	twice := Dedupe(once)
	assert.Equal(t, once, twice)
}

func TestDedupe_UntitledArticlesKept(t *testing.T) {
	articles := []*models.NewsArticle{
		{Title: "", Summary: "first"},
		{Title: "", Summary: "second"},
	}

	assert.Len(t, Dedupe(articles), 2)
}
