package ai

import (
	"os"
	"strings"
)

const (
	// DefaultCredentialEnv is the environment variable holding the default API key.
	DefaultCredentialEnv = "HF_API_KEY"

	// PlaceholderCredential is the sentinel some deployments ship instead of a real key.
	PlaceholderCredential = "hf_demo_fallback"
)

// Resolver picks the API key for a call. A session override always wins over the
// environment default. The environment is read on every call.
type Resolver struct {
	envVar string
	lookup func(string) string
}

// NewResolver reads the default key from envVar; an empty name means DefaultCredentialEnv.
func NewResolver(envVar string) *Resolver {
	if envVar == "" {
		envVar = DefaultCredentialEnv
	}
	return &Resolver{envVar: envVar, lookup: os.Getenv}
}

// Resolve returns the usable credential and whether one exists.
func (r *Resolver) Resolve(sessionOverride string) (string, bool) {
	key := strings.TrimSpace(sessionOverride)
	if key == "" {
		key = strings.TrimSpace(r.lookup(r.envVar))
	}
	if key == "" || key == PlaceholderCredential {
		return "", false
	}
	return key, true
}

// Available is the "AI mode available" signal.
func (r *Resolver) Available(sessionOverride string) bool {
	_, ok := r.Resolve(sessionOverride)
	return ok
}
