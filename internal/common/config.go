package common

import (
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Stockscout
type Config struct {
	Environment string          `toml:"environment"`
	Symbols     []string        `toml:"symbols"`
	Advisor     AdvisorConfig   `toml:"advisor"`
	Analyzers   AnalyzersConfig `toml:"analyzers"`
	News        NewsConfig      `toml:"news"`
	Sentiment   SentimentConfig `toml:"sentiment"`
	Clients     ClientsConfig   `toml:"clients"`
	Storage     StorageConfig   `toml:"storage"`
	Logging     LoggingConfig   `toml:"logging"`
}

// AdvisorConfig controls batch analysis behaviour
type AdvisorConfig struct {
	MaxConcurrent int `toml:"max_concurrent"` // worker pool size across stocks
}

// AnalyzerConfig holds the enable flag and composite weight for one analyzer
type AnalyzerConfig struct {
	Enabled bool    `toml:"enabled"`
	Weight  float64 `toml:"weight"`
}

// AnalyzersConfig holds per-analyzer configuration
type AnalyzersConfig struct {
	Price             AnalyzerConfig `toml:"price"`
	Volume            AnalyzerConfig `toml:"volume"`
	News              AnalyzerConfig `toml:"news"`
	Technical         AnalyzerConfig `toml:"technical"`
	Period            AnalyzerConfig `toml:"period"`
	SupportResistance AnalyzerConfig `toml:"support_resistance"`
	Fundamental       AnalyzerConfig `toml:"fundamental"`
	Momentum          AnalyzerConfig `toml:"momentum"`
	Volatility        AnalyzerConfig `toml:"volatility"`
}

// NewsConfig controls news aggregation
type NewsConfig struct {
	MaxPerSource         int    `toml:"max_per_source"`
	LookbackDays         int    `toml:"lookback_days"`
	IncludeRelatedMarket bool   `toml:"include_related_market"`
	SourceTimeout        string `toml:"source_timeout"`
}

// GetSourceTimeout parses and returns the per-source fetch timeout
func (c *NewsConfig) GetSourceTimeout() time.Duration {
	d, err := time.ParseDuration(c.SourceTimeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// SentimentConfig controls the sentiment provider chain
type SentimentConfig struct {
	Provider    string `toml:"provider"` // "auto" or a specific provider name
	Timeout     string `toml:"timeout"`
	MaxArticles int    `toml:"max_articles"`
}

// GetTimeout parses and returns the chain deadline
func (c *SentimentConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	EODHD   EODHDConfig   `toml:"eodhd"`
	NewsAPI NewsAPIConfig `toml:"newsapi"`
	RSS     RSSConfig     `toml:"rss"`
	Gemini  GeminiConfig  `toml:"gemini"`
	OpenAI  OpenAIConfig  `toml:"openai"`
	Claude  ClaudeConfig  `toml:"claude"`
}

// EODHDConfig holds EODHD API configuration
type EODHDConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *EODHDConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// NewsAPIConfig holds NewsAPI configuration
type NewsAPIConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *NewsAPIConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// RSSConfig holds RSS news source configuration
type RSSConfig struct {
	Enabled bool     `toml:"enabled"`
	Feeds   []string `toml:"feeds"` // templates with %s for the symbol; empty uses defaults
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// ClaudeConfig holds Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`
	MaxTokens int    `toml:"max_tokens"`
}

// StorageConfig holds the market data cache location
type StorageConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Symbols:     []string{"AAPL", "MSFT", "GOOGL", "TSLA", "AMZN", "META", "NVDA"},
		Advisor: AdvisorConfig{
			MaxConcurrent: 4,
		},
		Analyzers: AnalyzersConfig{
			Price:             AnalyzerConfig{Enabled: true, Weight: 1.0},
			Volume:            AnalyzerConfig{Enabled: true, Weight: 1.0},
			News:              AnalyzerConfig{Enabled: true, Weight: 1.0},
			Technical:         AnalyzerConfig{Enabled: true, Weight: 1.0},
			Period:            AnalyzerConfig{Enabled: true, Weight: 1.2},
			SupportResistance: AnalyzerConfig{Enabled: true, Weight: 1.1},
			Fundamental:       AnalyzerConfig{Enabled: true, Weight: 1.0},
			Momentum:          AnalyzerConfig{Enabled: true, Weight: 1.0},
			Volatility:        AnalyzerConfig{Enabled: true, Weight: 0.8},
		},
		News: NewsConfig{
			MaxPerSource:         50,
			LookbackDays:         30,
			IncludeRelatedMarket: true,
			SourceTimeout:        "15s",
		},
		Sentiment: SentimentConfig{
			Provider:    "auto",
			Timeout:     "60s",
			MaxArticles: 100,
		},
		Clients: ClientsConfig{
			EODHD: EODHDConfig{
				BaseURL:   "https://eodhd.com/api",
				RateLimit: 10,
				Timeout:   "30s",
			},
			NewsAPI: NewsAPIConfig{
				BaseURL:   "https://newsapi.org/v2",
				RateLimit: 5,
				Timeout:   "10s",
			},
			RSS: RSSConfig{Enabled: true},
			Gemini: GeminiConfig{
				Model: "gemini-3-flash-preview",
			},
			OpenAI: OpenAIConfig{
				Model: "gpt-4o-mini",
			},
			Claude: ClaudeConfig{
				Model:     "claude-sonnet-4-20250514",
				MaxTokens: 1024,
			},
		},
		Storage: StorageConfig{Path: "data/marketstore"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// LoadConfig loads configuration from a TOML file, applying defaults and
// environment overrides for credentials.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides lets credentials come from the environment so they
// never have to live in the config file.
func applyEnvOverrides(config *Config) {
	overrides := []struct {
		env    string
		target *string
	}{
		{"STOCKSCOUT_EODHD_API_KEY", &config.Clients.EODHD.APIKey},
		{"STOCKSCOUT_NEWSAPI_KEY", &config.Clients.NewsAPI.APIKey},
		{"STOCKSCOUT_GEMINI_API_KEY", &config.Clients.Gemini.APIKey},
		{"STOCKSCOUT_OPENAI_API_KEY", &config.Clients.OpenAI.APIKey},
		{"STOCKSCOUT_ANTHROPIC_API_KEY", &config.Clients.Claude.APIKey},
		{"STOCKSCOUT_LOG_LEVEL", &config.Logging.Level},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}
}
