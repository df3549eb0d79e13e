package ai

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicModel = "claude-sonnet-4-5-20250929"

// AnthropicBackend implements Backend using the Anthropic Messages API.
type AnthropicBackend struct {
	baseURL string
}

var _ Backend = (*AnthropicBackend)(nil)

// NewAnthropicBackend uses the SDK default endpoint when baseURL is empty.
func NewAnthropicBackend(baseURL string) *AnthropicBackend {
	return &AnthropicBackend{baseURL: baseURL}
}

func (b *AnthropicBackend) Name() string         { return "anthropic" }
func (b *AnthropicBackend) DefaultModel() string { return anthropicModel }

func (b *AnthropicBackend) ChatCompletion(ctx context.Context, apiKey string, req ChatRequest) (string, error) {
	// Retries are disabled: a failed call is reported, never repeated.
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if b.baseURL != "" {
		opts = append(opts, option.WithBaseURL(b.baseURL))
	}
	client := anthropic.NewClient(opts...)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: int64(req.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic: completion failed: %w", err)
	}

	var content string
	for _, block := range msg.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			content += variant.Text
		}
	}
	return content, nil
}
