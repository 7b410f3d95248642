package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhittle/stockscout/internal/common"
)

func chainConfig(provider string) *common.Config {
	config := common.DefaultConfig()
	config.Clients.OpenAI.APIKey = "test-openai-key"
	config.Clients.Claude.APIKey = "test-claude-key"
	config.Sentiment.Provider = provider
	return config
}

func TestBuildSentimentChainAutoKeepsConfigurationOrder(t *testing.T) {
	chain, err := buildSentimentChain(context.Background(), chainConfig("auto"), common.NewSilentLogger())
	require.NoError(t, err)

	assert.Equal(t, []string{"openai", "claude"}, chain.ProviderNames())
}

func TestBuildSentimentChainNamedProviderKeepsFallbacks(t *testing.T) {
	chain, err := buildSentimentChain(context.Background(), chainConfig("claude"), common.NewSilentLogger())
	require.NoError(t, err)

	// the named provider moves to the front, the rest stay as fallbacks
	assert.Equal(t, []string{"claude", "openai"}, chain.ProviderNames())
}

func TestBuildSentimentChainNamedProviderAlreadyFirst(t *testing.T) {
	chain, err := buildSentimentChain(context.Background(), chainConfig("openai"), common.NewSilentLogger())
	require.NoError(t, err)

	assert.Equal(t, []string{"openai", "claude"}, chain.ProviderNames())
}

func TestBuildSentimentChainUnconfiguredNameLeavesChainIntact(t *testing.T) {
	chain, err := buildSentimentChain(context.Background(), chainConfig("gemini"), common.NewSilentLogger())
	require.NoError(t, err)

	assert.Equal(t, []string{"openai", "claude"}, chain.ProviderNames())
}
