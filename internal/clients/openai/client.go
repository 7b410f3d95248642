// Package openai provides a sentiment backend using the OpenAI API
package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/jwhittle/stockscout/internal/common"
	"github.com/jwhittle/stockscout/internal/interfaces"
)

const DefaultModel = "gpt-4o-mini"

// chatClient is the narrow slice of the OpenAI SDK we use, extracted so
// tests can stub completions.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// Client implements the SentimentClient interface
type Client struct {
	client chatClient
	model  string
	logger *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if strings.TrimSpace(model) != "" {
			c.model = model
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// withChatClient replaces the SDK client, for tests
func withChatClient(cc chatClient) ClientOption {
	return func(c *Client) {
		c.client = cc
	}
}

// NewClient creates a new OpenAI client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		client: &sdkClient{client: openai.NewClient(option.WithAPIKey(apiKey))},
		model:  DefaultModel,
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var _ interfaces.SentimentClient = (*Client)(nil)

// Name identifies this provider in result method tags
func (c *Client) Name() string {
	return "openai"
}

const systemPrompt = "You are a financial sentiment analyst. Respond with ONLY the JSON object requested, no markdown."

// Infer sends the prompt and returns the raw model response text
func (c *Client) Infer(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug().Str("model", c.model).Msg("Requesting chat completion")

	completion, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("empty completion")
	}

	return completion.Choices[0].Message.Content, nil
}

type sdkClient struct {
	client openai.Client
}

func (c *sdkClient) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
