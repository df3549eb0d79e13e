package ai

import (
	"context"
)

// Completer turns a prompt packet into text.
// Implementations report problems through the Result, never through a panic or error return.
type Completer interface {
	Run(ctx context.Context, packet Packet) Result
}

// ChatRequest is the provider-neutral shape of a single chat completion call.
type ChatRequest struct {
	Model     string
	System    string
	User      string
	MaxTokens int
}

// Backend performs one chat completion against a hosted model.
// This interface allows swapping providers (Hugging Face, Gemini, Anthropic).
type Backend interface {
	// Name identifies the provider in logs.
	Name() string

	// DefaultModel is used when no model override is configured.
	DefaultModel() string

	// ChatCompletion sends the system and user messages authenticated with apiKey
	// and returns the first choice's text.
	ChatCompletion(ctx context.Context, apiKey string, req ChatRequest) (string, error)
}
