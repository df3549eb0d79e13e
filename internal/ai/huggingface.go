package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
)

const (
	// HuggingFaceRouterURL routes OpenAI-compatible chat calls through the "together" provider.
	HuggingFaceRouterURL = "https://router.huggingface.co/together/v1"

	huggingFaceModel = "meta-llama/Llama-4-Scout-17B-16E-Instruct"
)

// HuggingFaceBackend calls the Hugging Face inference router, which speaks the
// OpenAI chat-completions protocol.
type HuggingFaceBackend struct {
	baseURL    string
	httpClient *http.Client
}

var _ Backend = (*HuggingFaceBackend)(nil)

// NewHuggingFaceBackend uses HuggingFaceRouterURL when baseURL is empty.
func NewHuggingFaceBackend(baseURL string) *HuggingFaceBackend {
	if baseURL == "" {
		baseURL = HuggingFaceRouterURL
	}
	// The client timeout guards stalled connections; callers still bound the call with ctx.
	return &HuggingFaceBackend{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (b *HuggingFaceBackend) Name() string         { return "huggingface" }
func (b *HuggingFaceBackend) DefaultModel() string { return huggingFaceModel }

func (b *HuggingFaceBackend) ChatCompletion(ctx context.Context, apiKey string, req ChatRequest) (string, error) {
	cfg := goopenai.DefaultConfig(apiKey)
	cfg.BaseURL = b.baseURL
	cfg.HTTPClient = b.httpClient
	client := goopenai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: req.System},
			{Role: goopenai.ChatMessageRoleUser, Content: req.User},
		},
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("huggingface: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("huggingface: API returned empty choices array")
	}
	return resp.Choices[0].Message.Content, nil
}
