// README: Per-session state owned by a presentation layer.
package session

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("session not found")
	ErrForbidden = errors.New("session belongs to another caller")
)

// DefaultTTL is how long an idle session survives.
const DefaultTTL = 24 * time.Hour

// State holds one user's session. Research and Itinerary are replaced, never appended,
// by each successful operation.
type State struct {
	ID    string `json:"id"`
	Owner string `json:"owner,omitempty"`
	// Credential is the API key the user entered for this session only.
	Credential        string    `json:"credential,omitempty"`
	Research          string    `json:"research,omitempty"`
	Itinerary         string    `json:"itinerary,omitempty"`
	ItineraryFilename string    `json:"itinerary_filename,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Store persists session state. Implementations must keep sessions isolated from each other.
type Store interface {
	Get(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, s *State) error
	Delete(ctx context.Context, id string) error

	// Lock blocks until the caller holds the session's operation lock or ctx ends.
	Lock(ctx context.Context, id string) (unlock func(), err error)
}
