// Package rss fetches stock news from public RSS feeds
package rss

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/jwhittle/stockscout/internal/common"
	"github.com/jwhittle/stockscout/internal/interfaces"
	"github.com/jwhittle/stockscout/internal/models"
)

// Feed is one RSS feed template. URL contains a %s placeholder for the
// (URL-escaped) symbol.
type Feed struct {
	Name string
	URL  string
}

// DefaultFeeds lists the public per-symbol news feeds
var DefaultFeeds = []Feed{
	{
		Name: "Yahoo Finance",
		URL:  "https://feeds.finance.yahoo.com/rss/2.0/headline?s=%s&region=US&lang=en-US",
	},
	{
		Name: "Google News",
		URL:  "https://news.google.com/rss/search?q=%s+stock&hl=en-US&gl=US&ceid=US:en",
	},
}

// Client implements NewsSourceClient over a set of RSS feeds
type Client struct {
	feeds  []Feed
	parser *gofeed.Parser
	logger *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithFeeds replaces the default feed list
func WithFeeds(feeds []Feed) ClientOption {
	return func(c *Client) {
		c.feeds = feeds
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new RSS news client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		feeds:  DefaultFeeds,
		parser: gofeed.NewParser(),
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var _ interfaces.NewsSourceClient = (*Client)(nil)

// Name identifies this client as a news source
func (c *Client) Name() string {
	return "rss"
}

// FetchRecent retrieves recent articles from all feeds for a symbol.
// A feed that fails to parse is skipped; an error is returned only when
// every feed fails.
func (c *Client) FetchRecent(ctx context.Context, symbol string, maxArticles, daysBack int) ([]*models.NewsArticle, error) {
	cutoff := time.Now().AddDate(0, 0, -daysBack)
	base := strings.TrimSuffix(symbol, ".US") // feeds want the plain ticker

	var articles []*models.NewsArticle
	failures := 0

	for _, feed := range c.feeds {
		feedURL := fmt.Sprintf(feed.URL, base)

		parsed, err := c.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			c.logger.Warn().Str("feed", feed.Name).Err(err).Msg("RSS feed fetch failed")
			failures++
			continue
		}

		count := 0
		for _, item := range parsed.Items {
			if maxArticles > 0 && count >= maxArticles {
				break
			}

			published := time.Now()
			if item.PublishedParsed != nil {
				published = *item.PublishedParsed
			}
			if published.Before(cutoff) {
				continue
			}

			title, source := splitPublisher(item.Title, feed.Name)
			articles = append(articles, &models.NewsArticle{
				Title:       title,
				Summary:     item.Description,
				URL:         item.Link,
				Source:      source,
				PublishedAt: published,
				Symbol:      symbol,
			})
			count++
		}
	}

	if failures == len(c.feeds) {
		return nil, fmt.Errorf("all %d RSS feeds failed for %s", failures, symbol)
	}

	c.logger.Debug().Str("symbol", symbol).Int("count", len(articles)).Msg("RSS news fetched")

	return articles, nil
}

// splitPublisher extracts the publisher from aggregator feed titles.
// Google News titles end in " - Publisher"; the publisher is credited
// as "Publisher (via <feed>)" and dropped from the title.
func splitPublisher(title, feedName string) (string, string) {
	idx := strings.LastIndex(title, " - ")
	if idx <= 0 || idx >= len(title)-3 {
		return title, feedName
	}

	publisher := strings.TrimSpace(title[idx+3:])
	if publisher == "" || len(publisher) > 60 {
		return title, feedName
	}

	return strings.TrimSpace(title[:idx]), fmt.Sprintf("%s (via %s)", publisher, feedName)
}
