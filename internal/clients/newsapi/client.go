// Package newsapi provides a client for the NewsAPI.org service
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jwhittle/stockscout/internal/common"
	"github.com/jwhittle/stockscout/internal/interfaces"
	"github.com/jwhittle/stockscout/internal/models"
)

const (
	DefaultBaseURL   = "https://newsapi.org/v2"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the KeywordNewsClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new NewsAPI client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var _ interfaces.KeywordNewsClient = (*Client)(nil)

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("NewsAPI error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

type articleResponse struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

type everythingResponse struct {
	Status       string            `json:"status"`
	TotalResults int               `json:"totalResults"`
	Articles     []articleResponse `json:"articles"`
}

// Name identifies this client as a news source
func (c *Client) Name() string {
	return "newsapi"
}

// FetchRecent retrieves recent articles mentioning a symbol
func (c *Client) FetchRecent(ctx context.Context, symbol string, maxArticles, daysBack int) ([]*models.NewsArticle, error) {
	query := strings.TrimSuffix(symbol, ".US") + " stock"
	articles, err := c.search(ctx, query, maxArticles, daysBack)
	if err != nil {
		return nil, err
	}
	for _, a := range articles {
		a.Symbol = symbol
	}
	return articles, nil
}

// FetchByKeywords retrieves articles matching any of the keywords
func (c *Client) FetchByKeywords(ctx context.Context, keywords []string, maxArticles, daysBack int) ([]*models.NewsArticle, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	query := strings.Join(keywords, " OR ")
	return c.search(ctx, query, maxArticles, daysBack)
}

func (c *Client) search(ctx context.Context, query string, maxArticles, daysBack int) ([]*models.NewsArticle, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(maxArticles))
	params.Set("from", time.Now().AddDate(0, 0, -daysBack).Format("2006-01-02"))
	params.Set("apiKey", c.apiKey)

	reqURL := fmt.Sprintf("%s/everything?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("query", query).Msg("NewsAPI request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   "/everything",
		}
	}

	var payload everythingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	articles := make([]*models.NewsArticle, 0, len(payload.Articles))
	for _, item := range payload.Articles {
		published, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			published = time.Now()
		}
		source := item.Source.Name
		if source == "" {
			source = "NewsAPI"
		} else {
			source = fmt.Sprintf("%s (via NewsAPI)", source)
		}
		articles = append(articles, &models.NewsArticle{
			Title:       item.Title,
			Summary:     item.Description,
			URL:         item.URL,
			Source:      source,
			PublishedAt: published,
		})
	}

	return articles, nil
}
