package analyzers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhittle/stockscout/internal/interfaces"
	"github.com/jwhittle/stockscout/internal/models"
)

// stubAnalyzer returns a fixed result or error
type stubAnalyzer struct {
	name     string
	weight   float64
	score    float64
	conf     float64
	articles []*models.NewsArticle
	err      error
	delay    time.Duration
}

func (s *stubAnalyzer) Name() string    { return s.name }
func (s *stubAnalyzer) Weight() float64 { return s.weight }

func (s *stubAnalyzer) Analyze(ctx context.Context, stock *models.Stock) (*models.AnalysisResult, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	return &models.AnalysisResult{
		Symbol:     stock.Symbol,
		Analyzer:   s.name,
		Score:      s.score,
		Confidence: s.conf,
		Reasoning:  "stub reasoning",
		Articles:   s.articles,
		AnalyzedAt: time.Now(),
	}, nil
}

func TestCompositeWeightedFold(t *testing.T) {
	c := NewComposite([]interfaces.Analyzer{
		&stubAnalyzer{name: "A", weight: 1, score: 0.8, conf: 0.6},
		&stubAnalyzer{name: "B", weight: 3, score: 0.4, conf: 0.8},
	})

	result, err := c.Analyze(context.Background(), &models.Stock{Symbol: "T.US"})
	require.NoError(t, err)

	assert.InDelta(t, 0.5, result.Score, 1e-9)
	assert.InDelta(t, 0.75, result.Confidence, 1e-9)
	assert.Equal(t, "A: stub reasoning | B: stub reasoning", result.Reasoning)
	assert.Equal(t, "Composite Analysis", result.Analyzer)
}

func TestCompositeWeightMovesScoreMonotonically(t *testing.T) {
	base := func(weight float64) float64 {
		c := NewComposite([]interfaces.Analyzer{
			&stubAnalyzer{name: "bull", weight: weight, score: 0.9, conf: 0.7},
			&stubAnalyzer{name: "bear", weight: 1, score: 0.2, conf: 0.7},
		})
		result, err := c.Analyze(context.Background(), &models.Stock{Symbol: "T.US"})
		require.NoError(t, err)
		return result.Score
	}

	assert.Greater(t, base(2), base(1))
	assert.Greater(t, base(4), base(2))
}

func TestCompositeAnalyzerErrorStaysNeutralAndWeighted(t *testing.T) {
	c := NewComposite([]interfaces.Analyzer{
		&stubAnalyzer{name: "A", weight: 1, score: 0.8, conf: 0.6},
		&stubAnalyzer{name: "B", weight: 3, err: errors.New("boom")},
	})

	result, err := c.Analyze(context.Background(), &models.Stock{Symbol: "T.US"})
	require.NoError(t, err)

	// the failed analyzer contributes 0.5 at its full weight
	assert.InDelta(t, (0.8*1+0.5*3)/4, result.Score, 1e-9)
	assert.Contains(t, result.Reasoning, "B: Error - boom")
	assert.Contains(t, result.Reasoning, "A: stub reasoning")
}

func TestCompositeErrorDoesNotCancelSiblings(t *testing.T) {
	c := NewComposite([]interfaces.Analyzer{
		&stubAnalyzer{name: "fast-fail", weight: 1, err: errors.New("down")},
		&stubAnalyzer{name: "slow", weight: 1, score: 0.9, conf: 0.8, delay: 50 * time.Millisecond},
	})

	result, err := c.Analyze(context.Background(), &models.Stock{Symbol: "T.US"})
	require.NoError(t, err)

	assert.Contains(t, result.Reasoning, "slow: stub reasoning")
	assert.InDelta(t, (0.5+0.9)/2, result.Score, 1e-9)
}

func TestCompositeNoAnalyzers(t *testing.T) {
	c := NewComposite(nil)

	result, err := c.Analyze(context.Background(), &models.Stock{Symbol: "T.US"})
	require.NoError(t, err)

	assert.Equal(t, 0.5, result.Score)
	assert.Equal(t, 0.3, result.Confidence)
	assert.Equal(t, "No analyzers configured", result.Reasoning)
	assert.Equal(t, 0, c.AnalyzerCount())
}

func TestCompositeMergesAndDedupesArticles(t *testing.T) {
	shared := &models.NewsArticle{Title: "Apple beats estimates", Source: "rss"}
	duplicate := &models.NewsArticle{Title: "APPLE BEATS ESTIMATES", Source: "newsapi"}
	other := &models.NewsArticle{Title: "New product line", Source: "rss"}

	c := NewComposite([]interfaces.Analyzer{
		&stubAnalyzer{name: "A", weight: 1, score: 0.6, conf: 0.6, articles: []*models.NewsArticle{shared, other}},
		&stubAnalyzer{name: "B", weight: 1, score: 0.6, conf: 0.6, articles: []*models.NewsArticle{duplicate}},
	})

	result, err := c.Analyze(context.Background(), &models.Stock{Symbol: "AAPL.US"})
	require.NoError(t, err)

	require.Len(t, result.Articles, 2)
	assert.Equal(t, "Apple beats estimates", result.Articles[0].Title)
	assert.Equal(t, "New product line", result.Articles[1].Title)
}

func TestCompositeReasoningInRegistrationOrder(t *testing.T) {
	c := NewComposite([]interfaces.Analyzer{
		&stubAnalyzer{name: "first", weight: 1, score: 0.5, conf: 0.5, delay: 30 * time.Millisecond},
		&stubAnalyzer{name: "second", weight: 1, score: 0.5, conf: 0.5},
	})

	result, err := c.Analyze(context.Background(), &models.Stock{Symbol: "T.US"})
	require.NoError(t, err)

	assert.Equal(t, "first: stub reasoning | second: stub reasoning", result.Reasoning)
}
