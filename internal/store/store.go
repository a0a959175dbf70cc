package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// InitSchema creates the tables if they don't exist. Safe to run on every
// startup.
func (s *Store) InitSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			journaling_goals TEXT NOT NULL DEFAULT '',
			onboarding_completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS user_interests (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id TEXT NOT NULL,
			interest TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE(user_id, interest)
		)`,

		`CREATE TABLE IF NOT EXISTS user_habits (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id TEXT NOT NULL,
			description TEXT NOT NULL,
			habit_type TEXT NOT NULL DEFAULT '',
			time_preference TEXT NOT NULL DEFAULT '',
			location_preference TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS journal_entries (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id TEXT NOT NULL,
			entry_date DATE NOT NULL,
			entry_text TEXT NOT NULL,
			mood TEXT NOT NULL DEFAULT '',
			response TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS mood_signatures (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id TEXT NOT NULL,
			phrase TEXT NOT NULL,
			associated_mood TEXT NOT NULL,
			confidence_score INTEGER NOT NULL DEFAULT 1,
			last_seen_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE(user_id, phrase)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_journal_entries_user_date
			ON journal_entries (user_id, entry_date DESC)`,

		`CREATE INDEX IF NOT EXISTS idx_mood_signatures_user_confidence
			ON mood_signatures (user_id, confidence_score DESC)`,
	}

	for _, q := range queries {
		if _, err := s.pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
