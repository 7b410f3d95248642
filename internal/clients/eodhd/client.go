// Package eodhd provides a client for the EODHD market data API
package eodhd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/jwhittle/stockscout/internal/common"
	"github.com/jwhittle/stockscout/internal/interfaces"
	"github.com/jwhittle/stockscout/internal/models"
)

// flexFloat64 handles JSON values that may be either a number or a string.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "N/A" || s == "NA" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

const (
	DefaultBaseURL   = "https://eodhd.com/api"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// Client implements the MarketDataClient and NewsSourceClient interfaces
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

// NewClient creates a new EODHD client
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

var (
	_ interfaces.MarketDataClient = (*Client)(nil)
	_ interfaces.NewsSourceClient = (*Client)(nil)
)

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("EODHD API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.apiKey)
	params.Set("fmt", "json")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("EODHD API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// quoteResponse represents the real-time quote payload
type quoteResponse struct {
	Code          string      `json:"code"`
	Timestamp     int64       `json:"timestamp"`
	Open          flexFloat64 `json:"open"`
	High          flexFloat64 `json:"high"`
	Low           flexFloat64 `json:"low"`
	Close         flexFloat64 `json:"close"`
	PreviousClose flexFloat64 `json:"previousClose"`
	Volume        int64       `json:"volume"`
}

// GetQuote retrieves the latest quote snapshot
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.Stock, error) {
	path := fmt.Sprintf("/real-time/%s", symbol)

	var resp quoteResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	asOf := time.Now()
	if resp.Timestamp > 0 {
		asOf = time.Unix(resp.Timestamp, 0)
	}

	stock := &models.Stock{
		Symbol:        symbol,
		CurrentPrice:  float64(resp.Close),
		OpenPrice:     float64(resp.Open),
		HighPrice:     float64(resp.High),
		LowPrice:      float64(resp.Low),
		PreviousClose: float64(resp.PreviousClose),
		Volume:        resp.Volume,
		AsOf:          asOf,
	}
	if stock.OpenPrice == 0 {
		stock.OpenPrice = float64(resp.PreviousClose)
	}

	return stock, nil
}

// eodBarResponse represents the API response for EOD data
type eodBarResponse struct {
	Date          string      `json:"date"`
	Open          flexFloat64 `json:"open"`
	High          flexFloat64 `json:"high"`
	Low           flexFloat64 `json:"low"`
	Close         flexFloat64 `json:"close"`
	AdjustedClose flexFloat64 `json:"adjusted_close"`
	Volume        int64       `json:"volume"`
}

// GetHistory retrieves daily OHLCV bars covering the lookback, oldest first
func (c *Client) GetHistory(ctx context.Context, symbol string, lookback time.Duration) ([]models.Bar, error) {
	from := time.Now().Add(-lookback)

	params := url.Values{}
	params.Set("period", "d")
	params.Set("order", "a")
	params.Set("from", from.Format("2006-01-02"))

	path := fmt.Sprintf("/eod/%s", symbol)

	var raw []eodBarResponse
	if err := c.get(ctx, path, params, &raw); err != nil {
		return nil, err
	}

	bars := make([]models.Bar, len(raw))
	for i, bar := range raw {
		date, _ := time.Parse("2006-01-02", bar.Date)
		bars[i] = models.Bar{
			Date:     date,
			Open:     float64(bar.Open),
			High:     float64(bar.High),
			Low:      float64(bar.Low),
			Close:    float64(bar.Close),
			AdjClose: float64(bar.AdjustedClose),
			Volume:   bar.Volume,
		}
	}

	return bars, nil
}

// fundamentalsResponse represents the subset of fundamentals we use
type fundamentalsResponse struct {
	General struct {
		Name     string `json:"Name"`
		Sector   string `json:"Sector"`
		Industry string `json:"Industry"`
	} `json:"General"`
	Highlights struct {
		MarketCapitalization       flexFloat64 `json:"MarketCapitalization"`
		PERatio                    flexFloat64 `json:"PERatio"`
		EarningsShare              flexFloat64 `json:"EarningsShare"`
		DividendYield              flexFloat64 `json:"DividendYield"`
		ProfitMargin               flexFloat64 `json:"ProfitMargin"`
		QuarterlyRevenueGrowthYOY  flexFloat64 `json:"QuarterlyRevenueGrowthYOY"`
		QuarterlyEarningsGrowthYOY flexFloat64 `json:"QuarterlyEarningsGrowthYOY"`
	} `json:"Highlights"`
	Valuation struct {
		ForwardPE    flexFloat64 `json:"ForwardPE"`
		PriceBookMRQ flexFloat64 `json:"PriceBookMRQ"`
	} `json:"Valuation"`
	Financials struct {
		DebtToEquity flexFloat64 `json:"DebtToEquity"`
	} `json:"Financials"`
	Technicals struct {
		Beta       flexFloat64 `json:"Beta"`
		WeekHigh52 flexFloat64 `json:"52WeekHigh"`
		WeekLow52  flexFloat64 `json:"52WeekLow"`
	} `json:"Technicals"`
}

// GetFundamentals retrieves fundamental data
func (c *Client) GetFundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error) {
	path := fmt.Sprintf("/fundamentals/%s", symbol)

	var resp fundamentalsResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	return &models.Fundamentals{
		MarketCap:      float64(resp.Highlights.MarketCapitalization),
		PERatio:        float64(resp.Highlights.PERatio),
		ForwardPE:      float64(resp.Valuation.ForwardPE),
		PriceToBook:    float64(resp.Valuation.PriceBookMRQ),
		DebtToEquity:   float64(resp.Financials.DebtToEquity),
		EPS:            float64(resp.Highlights.EarningsShare),
		DividendYield:  float64(resp.Highlights.DividendYield),
		Beta:           float64(resp.Technicals.Beta),
		WeekHigh52:     float64(resp.Technicals.WeekHigh52),
		WeekLow52:      float64(resp.Technicals.WeekLow52),
		ProfitMargin:   float64(resp.Highlights.ProfitMargin),
		RevenueGrowth:  float64(resp.Highlights.QuarterlyRevenueGrowthYOY),
		EarningsGrowth: float64(resp.Highlights.QuarterlyEarningsGrowthYOY),
	}, nil
}

// GetProfile retrieves the company name, sector and industry
func (c *Client) GetProfile(ctx context.Context, symbol string) (name, sector, industry string, err error) {
	path := fmt.Sprintf("/fundamentals/%s", symbol)

	var resp fundamentalsResponse
	if err := c.get(ctx, path, url.Values{"filter": []string{"General"}}, &resp.General); err != nil {
		return "", "", "", err
	}

	return resp.General.Name, resp.General.Sector, resp.General.Industry, nil
}

// newsItemResponse represents one item from the news endpoint
type newsItemResponse struct {
	Date    string `json:"date"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Link    string `json:"link"`
}

// Name identifies this client as a news source
func (c *Client) Name() string {
	return "eodhd"
}

// FetchRecent retrieves recent news articles for a symbol
func (c *Client) FetchRecent(ctx context.Context, symbol string, maxArticles, daysBack int) ([]*models.NewsArticle, error) {
	params := url.Values{}
	params.Set("s", symbol)
	params.Set("limit", strconv.Itoa(maxArticles))
	params.Set("from", time.Now().AddDate(0, 0, -daysBack).Format("2006-01-02"))

	var raw []newsItemResponse
	if err := c.get(ctx, "/news", params, &raw); err != nil {
		return nil, err
	}

	articles := make([]*models.NewsArticle, 0, len(raw))
	for _, item := range raw {
		published, err := time.Parse(time.RFC3339, item.Date)
		if err != nil {
			published = time.Now()
		}
		summary := item.Content
		if len(summary) > 500 {
			summary = summary[:500]
		}
		articles = append(articles, &models.NewsArticle{
			Title:       item.Title,
			Summary:     summary,
			URL:         item.Link,
			Source:      "EODHD",
			PublishedAt: published,
			Symbol:      symbol,
		})
	}

	c.logger.Debug().Str("symbol", symbol).Int("count", len(articles)).Msg("EODHD news fetched")

	return articles, nil
}
