// Package app wires configuration, clients, storage and services into a
// runnable Stockscout instance shared by the command entry points.
package app

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jwhittle/stockscout/internal/analyzers"
	"github.com/jwhittle/stockscout/internal/clients/cached"
	"github.com/jwhittle/stockscout/internal/clients/claude"
	"github.com/jwhittle/stockscout/internal/clients/eodhd"
	"github.com/jwhittle/stockscout/internal/clients/gemini"
	"github.com/jwhittle/stockscout/internal/clients/newsapi"
	"github.com/jwhittle/stockscout/internal/clients/openai"
	"github.com/jwhittle/stockscout/internal/clients/rss"
	"github.com/jwhittle/stockscout/internal/common"
	"github.com/jwhittle/stockscout/internal/interfaces"
	"github.com/jwhittle/stockscout/internal/news"
	"github.com/jwhittle/stockscout/internal/sentiment"
	"github.com/jwhittle/stockscout/internal/services/advisor"
	"github.com/jwhittle/stockscout/internal/storage/marketstore"
)

// App holds the initialized services and clients
type App struct {
	Config  *common.Config
	Logger  *common.Logger
	Store   interfaces.MarketStore
	Market  interfaces.MarketDataClient
	Advisor interfaces.AdvisorService
}

// NewApp initializes storage, clients and services from configuration.
// configPath may be empty, in which case defaults and environment
// overrides apply.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	if config.Clients.EODHD.APIKey == "" {
		return nil, fmt.Errorf("EODHD API key not configured (set STOCKSCOUT_EODHD_API_KEY)")
	}

	store, err := marketstore.NewStore(config.Storage.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open market store: %w", err)
	}

	eodhdClient := eodhd.NewClient(config.Clients.EODHD.APIKey,
		eodhd.WithBaseURL(config.Clients.EODHD.BaseURL),
		eodhd.WithRateLimit(config.Clients.EODHD.RateLimit),
		eodhd.WithTimeout(config.Clients.EODHD.GetTimeout()),
		eodhd.WithLogger(logger),
	)
	market := cached.NewClient(eodhdClient, store, logger)

	aggregator := news.NewCachedAggregator(buildAggregator(config, eodhdClient, logger), store, logger)
	chain, err := buildSentimentChain(ctx, config, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	composite := analyzers.NewComposite(
		buildAnalyzers(config, aggregator, chain, logger),
		analyzers.WithCompositeLogger(logger),
	)

	advisorService := advisor.NewService(market, composite, store,
		advisor.WithProfileClient(eodhdClient),
		advisor.WithMaxConcurrent(config.Advisor.MaxConcurrent),
		advisor.WithLogger(logger),
	)

	return &App{
		Config:  config,
		Logger:  logger,
		Store:   store,
		Market:  market,
		Advisor: advisorService,
	}, nil
}

// Close releases held resources
func (a *App) Close() {
	if err := a.Store.Close(); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to close market store")
	}
}

// buildAggregator assembles the configured news sources
func buildAggregator(config *common.Config, eodhdClient *eodhd.Client, logger *common.Logger) *news.Aggregator {
	var sources []interfaces.NewsSourceClient

	sources = append(sources, eodhdClient)

	if config.Clients.RSS.Enabled {
		rssOpts := []rss.ClientOption{rss.WithLogger(logger)}
		if len(config.Clients.RSS.Feeds) > 0 {
			feeds := make([]rss.Feed, 0, len(config.Clients.RSS.Feeds))
			for _, template := range config.Clients.RSS.Feeds {
				feeds = append(feeds, rss.Feed{Name: feedName(template), URL: template})
			}
			rssOpts = append(rssOpts, rss.WithFeeds(feeds))
		}
		sources = append(sources, rss.NewClient(rssOpts...))
	}

	aggOpts := []news.AggregatorOption{
		news.WithMaxPerSource(config.News.MaxPerSource),
		news.WithLookbackDays(config.News.LookbackDays),
		news.WithSourceTimeout(config.News.GetSourceTimeout()),
		news.WithLogger(logger),
	}

	if config.Clients.NewsAPI.APIKey != "" {
		newsapiClient := newsapi.NewClient(config.Clients.NewsAPI.APIKey,
			newsapi.WithBaseURL(config.Clients.NewsAPI.BaseURL),
			newsapi.WithRateLimit(config.Clients.NewsAPI.RateLimit),
			newsapi.WithTimeout(config.Clients.NewsAPI.GetTimeout()),
			newsapi.WithLogger(logger),
		)
		sources = append(sources, newsapiClient)
		if config.News.IncludeRelatedMarket {
			aggOpts = append(aggOpts, news.WithRelatedMarketNews(newsapiClient))
		}
	}

	return news.NewAggregator(sources, aggOpts...)
}

// buildSentimentChain assembles every LLM provider with a configured
// key. A named provider is moved to the front of the chain and the rest
// stay as fallbacks; "auto" keeps the configuration order.
func buildSentimentChain(ctx context.Context, config *common.Config, logger *common.Logger) (*sentiment.Chain, error) {
	var providers []interfaces.SentimentClient

	if config.Clients.Gemini.APIKey != "" {
		client, err := gemini.NewClient(ctx, config.Clients.Gemini.APIKey,
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		providers = append(providers, client)
	}

	if config.Clients.OpenAI.APIKey != "" {
		providers = append(providers, openai.NewClient(config.Clients.OpenAI.APIKey,
			openai.WithModel(config.Clients.OpenAI.Model),
			openai.WithLogger(logger),
		))
	}

	if config.Clients.Claude.APIKey != "" {
		providers = append(providers, claude.NewClient(config.Clients.Claude.APIKey,
			claude.WithModel(config.Clients.Claude.Model),
			claude.WithMaxTokens(config.Clients.Claude.MaxTokens),
			claude.WithLogger(logger),
		))
	}

	if selected := config.Sentiment.Provider; selected != "" && selected != "auto" {
		for i, provider := range providers {
			if provider.Name() != selected {
				continue
			}
			if i > 0 {
				providers = append(providers[:i], providers[i+1:]...)
				providers = append([]interfaces.SentimentClient{provider}, providers...)
			}
			break
		}
	}

	if len(providers) == 0 {
		logger.Warn().Msg("No LLM providers configured, sentiment will use keyword fallback")
	}

	return sentiment.NewChain(providers,
		sentiment.WithTimeout(config.Sentiment.GetTimeout()),
		sentiment.WithMaxArticles(config.Sentiment.MaxArticles),
		sentiment.WithLogger(logger),
	), nil
}

// buildAnalyzers constructs the enabled analyzers with configured weights
func buildAnalyzers(config *common.Config, aggregator interfaces.NewsAggregator, chain interfaces.SentimentAnalyzer, logger *common.Logger) []interfaces.Analyzer {
	cfg := config.Analyzers

	var active []interfaces.Analyzer
	add := func(enabled bool, analyzer interfaces.Analyzer) {
		if enabled {
			active = append(active, analyzer)
		}
	}

	add(cfg.Price.Enabled, analyzers.NewPriceAnalyzer(cfg.Price.Weight))
	add(cfg.Volume.Enabled, analyzers.NewVolumeAnalyzer(cfg.Volume.Weight))
	add(cfg.Momentum.Enabled, analyzers.NewMomentumAnalyzer(cfg.Momentum.Weight))
	add(cfg.Volatility.Enabled, analyzers.NewVolatilityAnalyzer(cfg.Volatility.Weight))
	add(cfg.Technical.Enabled, analyzers.NewTechnicalAnalyzer(cfg.Technical.Weight))
	add(cfg.SupportResistance.Enabled, analyzers.NewSupportResistanceAnalyzer(cfg.SupportResistance.Weight))
	add(cfg.Fundamental.Enabled, analyzers.NewFundamentalAnalyzer(cfg.Fundamental.Weight))
	add(cfg.Period.Enabled, analyzers.NewPeriodAnalyzer(cfg.Period.Weight))
	add(cfg.News.Enabled, analyzers.NewNewsAnalyzer(cfg.News.Weight, aggregator, chain,
		analyzers.WithNewsLogger(logger)))

	return active
}

// feedName derives a display name for a custom feed from its host
func feedName(template string) string {
	if u, err := url.Parse(template); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	return "Custom Feed"
}
