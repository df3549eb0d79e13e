package ai

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderGemini      = "gemini"
	ProviderAnthropic   = "anthropic"
)

var ErrUnknownProvider = errors.New("unknown AI provider")

// NewBackend builds the backend named by provider. baseURL overrides the
// provider endpoint where the SDK supports it.
func NewBackend(provider, baseURL string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderHuggingFace:
		return NewHuggingFaceBackend(baseURL), nil
	case ProviderGemini:
		return NewGeminiBackend(), nil
	case ProviderAnthropic:
		return NewAnthropicBackend(baseURL), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
}
