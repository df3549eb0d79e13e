package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service manages session lifecycle and serialized updates.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a Service backed by the given Store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Create starts an empty session. owner may be empty for anonymous callers.
func (s *Service) Create(ctx context.Context, owner string) (*State, error) {
	now := s.now().UTC()
	st := &State{
		ID:        strings.ReplaceAll(uuid.NewString(), "-", ""),
		Owner:     owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Get loads a session the caller is allowed to see.
func (s *Service) Get(ctx context.Context, id, caller string) (*State, error) {
	st, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canAccess(st, caller) {
		return nil, ErrForbidden
	}
	return st, nil
}

// SetCredential stores or, when key is blank, clears the session's API key override.
func (s *Service) SetCredential(ctx context.Context, id, caller, key string) (*State, error) {
	return s.Update(ctx, id, caller, func(st *State) (bool, error) {
		st.Credential = strings.TrimSpace(key)
		return true, nil
	})
}

// End deletes the session and everything it holds.
func (s *Service) End(ctx context.Context, id, caller string) error {
	unlock, err := s.store.Lock(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	if _, err := s.Get(ctx, id, caller); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// Update runs fn while holding the session lock, so operations on one session never interleave.
// The state is saved only when fn reports a change and returns no error.
func (s *Service) Update(ctx context.Context, id, caller string, fn func(st *State) (bool, error)) (*State, error) {
	unlock, err := s.store.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	st, err := s.Get(ctx, id, caller)
	if err != nil {
		return nil, err
	}
	changed, err := fn(st)
	if err != nil {
		return nil, err
	}
	if !changed {
		return st, nil
	}
	st.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Anonymous sessions are reachable by anyone holding the id.
func canAccess(st *State, caller string) bool {
	return st.Owner == "" || st.Owner == caller
}
