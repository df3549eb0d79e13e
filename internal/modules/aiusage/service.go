package aiusage

import (
	"context"
	"errors"
	"time"
)

// Service meters remote AI generations.
type Service struct {
	store     *Store
	allowance int
	now       func() time.Time
}

// NewService creates a Service backed by the given Store. A non-positive allowance means DefaultTokens.
func NewService(store *Store, allowance int) *Service {
	if allowance <= 0 {
		allowance = DefaultTokens
	}
	return &Service{store: store, allowance: allowance, now: time.Now}
}

// UseToken deducts one generation from the owner's monthly allowance.
// If the owner row does not exist yet it is initialised and the token is immediately consumed.
// Returns ErrInsufficientTokens when the quota for the current month is exhausted.
func (s *Service) UseToken(ctx context.Context, owner string) error {
	now := s.now()
	err := s.store.UseToken(ctx, owner, s.allowance, now)
	if !errors.Is(err, ErrInsufficientTokens) {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureOwner(ctx, owner, s.allowance, now); initErr != nil {
		return initErr
	}
	return s.store.UseToken(ctx, owner, s.allowance, now)
}

// Remaining reports how many remote generations the owner has left this month.
func (s *Service) Remaining(ctx context.Context, owner string) (int, error) {
	return s.store.Remaining(ctx, owner, s.allowance, s.now())
}
