package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.NotEmpty(t, config.Symbols)
	assert.Equal(t, 4, config.Advisor.MaxConcurrent)

	assert.True(t, config.Analyzers.Price.Enabled)
	assert.Equal(t, 1.0, config.Analyzers.Price.Weight)
	assert.Equal(t, 1.2, config.Analyzers.Period.Weight)
	assert.Equal(t, 1.1, config.Analyzers.SupportResistance.Weight)
	assert.Equal(t, 0.8, config.Analyzers.Volatility.Weight)

	assert.Equal(t, "auto", config.Sentiment.Provider)
	assert.Equal(t, 100, config.Sentiment.MaxArticles)
	assert.Equal(t, 30, config.News.LookbackDays)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "https://eodhd.com/api", config.Clients.EODHD.BaseURL)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	content := `
environment = "production"
symbols = ["BHP.AX", "CBA.AX"]

[advisor]
max_concurrent = 8

[analyzers.volatility]
enabled = false
weight = 0.5

[sentiment]
provider = "gemini"
timeout = "90s"

[clients.eodhd]
api_key = "test-key"
timeout = "45s"
`
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, []string{"BHP.AX", "CBA.AX"}, config.Symbols)
	assert.Equal(t, 8, config.Advisor.MaxConcurrent)
	assert.False(t, config.Analyzers.Volatility.Enabled)
	assert.Equal(t, 0.5, config.Analyzers.Volatility.Weight)
	assert.Equal(t, "gemini", config.Sentiment.Provider)
	assert.Equal(t, 90*time.Second, config.Sentiment.GetTimeout())
	assert.Equal(t, "test-key", config.Clients.EODHD.APIKey)
	assert.Equal(t, 45*time.Second, config.Clients.EODHD.GetTimeout())
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STOCKSCOUT_EODHD_API_KEY", "env-key")
	t.Setenv("STOCKSCOUT_LOG_LEVEL", "debug")

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "env-key", config.Clients.EODHD.APIKey)
	assert.Equal(t, "debug", config.Logging.Level)
}

func TestTimeoutFallbacks(t *testing.T) {
	news := NewsConfig{SourceTimeout: "bogus"}
	assert.Equal(t, 15*time.Second, news.GetSourceTimeout())

	sentiment := SentimentConfig{}
	assert.Equal(t, 60*time.Second, sentiment.GetTimeout())
}

func TestIsFresh(t *testing.T) {
	now := time.Now()
	assert.True(t, IsFresh(now.Add(-5*time.Minute), FreshnessQuote))
	assert.False(t, IsFresh(now.Add(-20*time.Minute), FreshnessQuote))
	assert.False(t, IsFresh(time.Time{}, FreshnessQuote))
}
