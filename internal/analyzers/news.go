package analyzers

import (
	"context"
	"strings"

	"github.com/jwhittle/stockscout/internal/common"
	"github.com/jwhittle/stockscout/internal/interfaces"
	"github.com/jwhittle/stockscout/internal/models"
)

const newsAnalyzerName = "News Analysis"

const (
	newsCountThreshold     = 5
	newsScoreHighActivity  = 0.1
	newsScorePositive      = 0.15
	newsScoreNegative      = -0.15
	newsConfidenceBase     = 0.5
	newsConfidenceMax      = 0.8
	newsConfidenceNoNews   = 0.3
	newsConfidenceError    = 0.2
	newsConfidenceDivisor  = 50.0
	newsLLMConfidenceBoost = 0.15
	newsThemesShown        = 3
	newsSummaryShown       = 100
)

// NewsAnalyzer scores news flow and sentiment. It drives the aggregator
// for articles and the sentiment analyzer for the verdict, and attaches
// the fetched articles to its result for downstream merging.
type NewsAnalyzer struct {
	weight     float64
	aggregator interfaces.NewsAggregator
	sentiment  interfaces.SentimentAnalyzer
	logger     *common.Logger
}

var _ interfaces.Analyzer = (*NewsAnalyzer)(nil)

// NewsAnalyzerOption configures a NewsAnalyzer
type NewsAnalyzerOption func(*NewsAnalyzer)

// WithNewsLogger sets the logger for the news analyzer
func WithNewsLogger(logger *common.Logger) NewsAnalyzerOption {
	return func(a *NewsAnalyzer) {
		a.logger = logger
	}
}

func NewNewsAnalyzer(weight float64, aggregator interfaces.NewsAggregator, sentiment interfaces.SentimentAnalyzer, opts ...NewsAnalyzerOption) *NewsAnalyzer {
	a := &NewsAnalyzer{
		weight:     weight,
		aggregator: aggregator,
		sentiment:  sentiment,
		logger:     common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *NewsAnalyzer) Name() string    { return newsAnalyzerName }
func (a *NewsAnalyzer) Weight() float64 { return a.weight }

func (a *NewsAnalyzer) Analyze(ctx context.Context, stock *models.Stock) (*models.AnalysisResult, error) {
	t := newTally()

	articles, err := a.aggregator.FetchNews(ctx, stock.Symbol, stock.Sector)
	if err != nil {
		a.logger.Warn().Err(err).Str("symbol", stock.Symbol).Msg("news fetch failed")
		t.note("Error fetching news: %s", err.Error())
		return t.result(stock.Symbol, newsAnalyzerName, newsConfidenceError, "No news indicators"), nil
	}

	if len(articles) == 0 {
		t.note("No recent news available from any source")
		return t.result(stock.Symbol, newsAnalyzerName, newsConfidenceNoNews, "No news indicators"), nil
	}

	newsCount := len(articles)
	if newsCount >= newsCountThreshold {
		t.adjust(newsScoreHighActivity, "High news activity (%d articles from multiple sources)", newsCount)
	} else {
		t.note("Moderate news activity (%d articles)", newsCount)
	}

	sources := make(map[string]struct{})
	for _, article := range articles {
		sources[article.Source] = struct{}{}
	}
	t.note("Sources: %d different sources", len(sources))

	verdict := a.sentiment.Analyze(ctx, stock.Symbol, articles)

	switch {
	case verdict.Sentiment == models.SentimentPositive || verdict.Impact == models.ImpactBullish:
		t.adjust(newsScorePositive, "Positive news sentiment (%s analysis)", verdict.Method)
	case verdict.Sentiment == models.SentimentNegative || verdict.Impact == models.ImpactBearish:
		t.adjust(newsScoreNegative, "Negative news sentiment (%s analysis)", verdict.Method)
	default:
		t.note("Neutral news sentiment (%s analysis)", verdict.Method)
	}

	if len(verdict.KeyThemes) > 0 {
		themes := verdict.KeyThemes
		if len(themes) > newsThemesShown {
			themes = themes[:newsThemesShown]
		}
		t.note("Key themes: %s", strings.Join(themes, ", "))
	}

	if verdict.Summary != "" {
		summary := verdict.Summary
		if len(summary) > newsSummaryShown {
			summary = summary[:newsSummaryShown]
		}
		t.note("Summary: %s", summary)
	}

	confidence := newsConfidenceBase + float64(newsCount)/newsConfidenceDivisor
	if confidence > newsConfidenceMax {
		confidence = newsConfidenceMax
	}
	if strings.HasPrefix(verdict.Method, "llm") {
		providerCount := strings.Count(verdict.Method, "+") + 1
		boost := newsLLMConfidenceBoost * (1 + 0.1*float64(providerCount-1))
		confidence += boost
	}
	if len(sources) > 1 {
		confidence += 0.05
	}
	if confidence > newsConfidenceMax {
		confidence = newsConfidenceMax
	}

	result := t.result(stock.Symbol, newsAnalyzerName, confidence, "No news indicators")
	result.Articles = articles
	return result, nil
}
