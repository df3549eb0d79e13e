package ai

import (
	"context"
	"errors"
	"strings"
)

// DefaultMaxTokens is the output budget for every remote completion.
const DefaultMaxTokens = 2048

var (
	ErrNoCredential  = errors.New("no API credential available")
	ErrEmptyResponse = errors.New("model returned an empty response")
)

// Remote runs packets against a hosted model through a Backend.
type Remote struct {
	backend   Backend
	apiKey    string
	model     string
	maxTokens int
}

var _ Completer = (*Remote)(nil)

// NewRemote binds a backend to one resolved credential. Zero model and maxTokens pick defaults.
func NewRemote(backend Backend, apiKey, model string, maxTokens int) *Remote {
	if model == "" {
		model = backend.DefaultModel()
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Remote{backend: backend, apiKey: apiKey, model: model, maxTokens: maxTokens}
}

// Run issues exactly one completion call. A missing credential fails before any I/O.
func (r *Remote) Run(ctx context.Context, packet Packet) Result {
	if strings.TrimSpace(r.apiKey) == "" {
		return Failure(NoCredential, ErrNoCredential.Error())
	}

	text, err := r.backend.ChatCompletion(ctx, r.apiKey, ChatRequest{
		Model:     r.model,
		System:    packet.SystemMessage(),
		User:      packet.UserPrompt,
		MaxTokens: r.maxTokens,
	})
	if err != nil {
		return Failure(RemoteUnavailable, err.Error())
	}
	if strings.TrimSpace(text) == "" {
		return Failure(RemoteUnavailable, ErrEmptyResponse.Error())
	}
	return Success(text)
}

// Model returns the model id sent with each request.
func (r *Remote) Model() string { return r.model }
