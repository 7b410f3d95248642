package sentiment

import (
	"context"
	"sync"
	"time"

	"github.com/jwhittle/stockscout/internal/common"
	"github.com/jwhittle/stockscout/internal/interfaces"
	"github.com/jwhittle/stockscout/internal/models"
)

// Chain queries every configured LLM provider concurrently and merges
// the successes into one verdict. When every provider fails, or none is
// configured, it falls back to keyword scoring. Analyze never fails.
type Chain struct {
	providers   []interfaces.SentimentClient
	timeout     time.Duration
	maxArticles int
	logger      *common.Logger
}

// ChainOption configures the chain
type ChainOption func(*Chain)

// WithTimeout bounds the whole provider round
func WithTimeout(d time.Duration) ChainOption {
	return func(c *Chain) {
		c.timeout = d
	}
}

// WithMaxArticles caps how many articles are sent to the providers.
// Articles arrive newest first, so the cap keeps the most recent.
func WithMaxArticles(n int) ChainOption {
	return func(c *Chain) {
		if n > 0 {
			c.maxArticles = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ChainOption {
	return func(c *Chain) {
		c.logger = logger
	}
}

// NewChain creates a provider chain. Providers are queried in parallel;
// the slice order is only used for the method tag when several succeed.
func NewChain(providers []interfaces.SentimentClient, opts ...ChainOption) *Chain {
	c := &Chain{
		providers: providers,
		timeout:   60 * time.Second,
		logger:    common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var _ interfaces.SentimentAnalyzer = (*Chain)(nil)

// ProviderNames returns the configured provider names in chain order
func (c *Chain) ProviderNames() []string {
	names := make([]string, len(c.providers))
	for i, provider := range c.providers {
		names[i] = provider.Name()
	}
	return names
}

// Analyze produces a sentiment verdict for the articles
func (c *Chain) Analyze(ctx context.Context, symbol string, articles []*models.NewsArticle) *models.SentimentResult {
	if len(articles) == 0 || len(c.providers) == 0 {
		return keywordFallback(symbol, articles)
	}

	if c.maxArticles > 0 && len(articles) > c.maxArticles {
		articles = articles[:c.maxArticles]
	}

	prompt := BuildPrompt(articles)

	roundCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	type outcome struct {
		provider string
		result   *providerResult
	}

	var mu sync.Mutex
	var outcomes []outcome
	var wg sync.WaitGroup

	for _, provider := range c.providers {
		wg.Add(1)
		go func(p interfaces.SentimentClient) {
			defer wg.Done()

			raw, err := p.Infer(roundCtx, prompt)
			if err != nil {
				c.logger.Warn().Str("provider", p.Name()).Str("symbol", symbol).Err(err).Msg("Sentiment provider failed")
				return
			}

			result, err := parseResponse(raw)
			if err != nil {
				c.logger.Warn().Str("provider", p.Name()).Str("symbol", symbol).Err(err).Msg("Sentiment response unparseable")
				return
			}

			mu.Lock()
			outcomes = append(outcomes, outcome{provider: p.Name(), result: result})
			mu.Unlock()
		}(provider)
	}

	wg.Wait()

	if len(outcomes) == 0 {
		c.logger.Info().Str("symbol", symbol).Int("providers", len(c.providers)).Msg("All sentiment providers failed, using keyword fallback")
		return keywordFallback(symbol, articles)
	}

	// Keep configuration order in the method tag
	var providers []string
	var results []*providerResult
	for _, p := range c.providers {
		for _, o := range outcomes {
			if o.provider == p.Name() {
				providers = append(providers, o.provider)
				results = append(results, o.result)
				break
			}
		}
	}

	verdict := aggregate(symbol, providers, results, len(articles))

	c.logger.Info().
		Str("symbol", symbol).
		Str("sentiment", verdict.Sentiment).
		Float64("score", verdict.SentimentScore).
		Str("method", verdict.Method).
		Msg("Sentiment analyzed")

	return verdict
}
