package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/openai/openai-go"
)

type stubChatClient struct {
	response *openai.ChatCompletion
	err      error
	captured openai.ChatCompletionNewParams
}

func (s *stubChatClient) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	s.captured = params
	return s.response, s.err
}

func TestInfer_ReturnsContent(t *testing.T) {
	stub := &stubChatClient{
		response: &openai.ChatCompletion{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: `{"sentiment":"positive"}`}},
			},
		},
	}

	client := NewClient("test-key", WithModel("gpt-4o-mini"), withChatClient(stub))
	out, err := client.Infer(context.Background(), "analyze this")
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	if out != `{"sentiment":"positive"}` {
		t.Errorf("unexpected output: %s", out)
	}
	if stub.captured.Model != "gpt-4o-mini" {
		t.Errorf("unexpected model: %s", stub.captured.Model)
	}
	if len(stub.captured.Messages) != 2 {
		t.Errorf("expected system + user messages, got %d", len(stub.captured.Messages))
	}
}

func TestInfer_EmptyChoices(t *testing.T) {
	stub := &stubChatClient{response: &openai.ChatCompletion{}}

	client := NewClient("test-key", withChatClient(stub))
	_, err := client.Infer(context.Background(), "analyze this")
	if err == nil {
		t.Fatal("expected error on empty choices")
	}
}

func TestInfer_PropagatesError(t *testing.T) {
	stub := &stubChatClient{err: errors.New("rate limited")}

	client := NewClient("test-key", withChatClient(stub))
	_, err := client.Infer(context.Background(), "analyze this")
	if err == nil {
		t.Fatal("expected error")
	}
}
