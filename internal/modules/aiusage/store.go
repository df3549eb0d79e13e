package aiusage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles ai_usage persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// UseToken atomically checks the monthly quota and deducts one generation.
// It resets the counter to allowance when last_reset_month is behind the current month.
// Returns ErrInsufficientTokens when 0 rows are updated (quota exhausted or caller absent).
func (s *Store) UseToken(ctx context.Context, owner string, allowance int, now time.Time) error {
	month := now.UTC().Format("2006-01")

	tag, err := s.db.Exec(ctx, `
		UPDATE ai_usage SET
			tokens_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE tokens_remaining - 1 END,
			last_reset_month = $1
		WHERE owner = $3 AND (last_reset_month < $1 OR tokens_remaining > 0)
	`, month, allowance, owner)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientTokens
	}
	return nil
}

// EnsureOwner inserts a new ai_usage row with the full allowance.
// Existing rows are left alone (ON CONFLICT DO NOTHING).
func (s *Store) EnsureOwner(ctx context.Context, owner string, allowance int, now time.Time) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ai_usage (owner, tokens_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner) DO NOTHING
	`, owner, allowance, now.UTC().Format("2006-01"))
	return err
}

// Remaining reports the generations left this month; unknown owners have the full allowance.
func (s *Store) Remaining(ctx context.Context, owner string, allowance int, now time.Time) (int, error) {
	var remaining int
	err := s.db.QueryRow(ctx, `
		SELECT CASE WHEN last_reset_month != $2 THEN $3 ELSE tokens_remaining END
		FROM ai_usage WHERE owner = $1
	`, owner, now.UTC().Format("2006-01"), allowance).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return allowance, nil
		}
		return 0, err
	}
	return remaining, nil
}
