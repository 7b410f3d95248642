package analyzers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jwhittle/stockscout/internal/common"
	"github.com/jwhittle/stockscout/internal/interfaces"
	"github.com/jwhittle/stockscout/internal/models"
)

const compositeAnalyzerName = "Composite Analysis"

const (
	compositeNoAnalyzersReasoning = "No analyzers configured"
	compositeNoAnalyzersScore     = 0.5
	compositeNoAnalyzersConf      = 0.3
)

// contribution is one analyzer's share of the composite fold
type contribution struct {
	score      float64
	confidence float64
	weight     float64
	reasoning  string
	articles   []*models.NewsArticle
}

// Composite runs all registered analyzers concurrently and folds their
// results into a weighted consensus. A failed analyzer still counts at
// a neutral score with its weight applied, so one broken signal family
// dampens rather than distorts the consensus.
type Composite struct {
	analyzers []interfaces.Analyzer
	logger    *common.Logger
}

var _ interfaces.Analyzer = (*Composite)(nil)

// CompositeOption configures a Composite
type CompositeOption func(*Composite)

// WithCompositeLogger sets the logger for the composite
func WithCompositeLogger(logger *common.Logger) CompositeOption {
	return func(c *Composite) {
		c.logger = logger
	}
}

func NewComposite(analyzers []interfaces.Analyzer, opts ...CompositeOption) *Composite {
	c := &Composite{
		analyzers: analyzers,
		logger:    common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Composite) Name() string    { return compositeAnalyzerName }
func (c *Composite) Weight() float64 { return 1.0 }

// AnalyzerCount returns the number of registered analyzers
func (c *Composite) AnalyzerCount() int {
	return len(c.analyzers)
}

func (c *Composite) Analyze(ctx context.Context, stock *models.Stock) (*models.AnalysisResult, error) {
	if len(c.analyzers) == 0 {
		return &models.AnalysisResult{
			Symbol:     stock.Symbol,
			Analyzer:   compositeAnalyzerName,
			Score:      compositeNoAnalyzersScore,
			Confidence: compositeNoAnalyzersConf,
			Reasoning:  compositeNoAnalyzersReasoning,
			AnalyzedAt: time.Now(),
		}, nil
	}

	// Indexed slice keeps contributions in registration order
	contributions := make([]contribution, len(c.analyzers))

	var wg sync.WaitGroup
	for i, analyzer := range c.analyzers {
		wg.Add(1)
		go func(i int, analyzer interfaces.Analyzer) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error().
						Str("symbol", stock.Symbol).
						Str("analyzer", analyzer.Name()).
						Interface("panic", r).
						Msg("analyzer panicked, counting as neutral")
					contributions[i] = contribution{
						score:      defaultScore,
						confidence: defaultConfidence,
						weight:     analyzer.Weight(),
						reasoning:  fmt.Sprintf("%s: Error - %v", analyzer.Name(), r),
					}
				}
			}()

			result, err := analyzer.Analyze(ctx, stock)
			if err != nil {
				c.logger.Warn().
					Err(err).
					Str("symbol", stock.Symbol).
					Str("analyzer", analyzer.Name()).
					Msg("analyzer failed, counting as neutral")
				contributions[i] = contribution{
					score:      defaultScore,
					confidence: defaultConfidence,
					weight:     analyzer.Weight(),
					reasoning:  fmt.Sprintf("%s: Error - %s", analyzer.Name(), err.Error()),
				}
				return
			}

			contributions[i] = contribution{
				score:      result.Score,
				confidence: result.Confidence,
				weight:     analyzer.Weight(),
				reasoning:  fmt.Sprintf("%s: %s", analyzer.Name(), result.Reasoning),
				articles:   result.Articles,
			}
		}(i, analyzer)
	}
	wg.Wait()

	var (
		weightedScore float64
		weightedConf  float64
		totalWeight   float64
		reasons       []string
		allArticles   []*models.NewsArticle
	)
	for _, contrib := range contributions {
		weightedScore += contrib.score * contrib.weight
		weightedConf += contrib.confidence * contrib.weight
		totalWeight += contrib.weight
		reasons = append(reasons, contrib.reasoning)
		allArticles = append(allArticles, contrib.articles...)
	}

	finalScore := compositeNoAnalyzersScore
	finalConf := compositeNoAnalyzersConf
	if totalWeight > 0 {
		finalScore = weightedScore / totalWeight
		finalConf = weightedConf / totalWeight
	}

	c.logger.Info().
		Str("symbol", stock.Symbol).
		Int("analyzers", len(c.analyzers)).
		Float64("score", finalScore).
		Float64("confidence", finalConf).
		Msg("composite analysis complete")

	return &models.AnalysisResult{
		Symbol:     stock.Symbol,
		Analyzer:   compositeAnalyzerName,
		Score:      finalScore,
		Confidence: finalConf,
		Reasoning:  strings.Join(reasons, " | "),
		Articles:   dedupeArticles(allArticles),
		AnalyzedAt: time.Now(),
	}, nil
}

// dedupeArticles removes exact duplicates by article identity key,
// keeping the first occurrence. This is a strict match, unlike the
// fuzzy title similarity pass the aggregator runs per source set.
func dedupeArticles(articles []*models.NewsArticle) []*models.NewsArticle {
	if len(articles) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(articles))
	unique := make([]*models.NewsArticle, 0, len(articles))
	for _, article := range articles {
		key := article.DedupKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, article)
	}
	return unique
}
