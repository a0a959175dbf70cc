package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type Profile struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	JournalingGoals     string `json:"journaling_goals"`
	OnboardingCompleted bool   `json:"onboarding_completed"`
}

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// GetProfile fetches a user's profile.
func (s *Store) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, journaling_goals, onboarding_completed
		FROM profiles WHERE id = $1`,
		userID,
	)

	var p Profile
	err := row.Scan(&p.ID, &p.Name, &p.JournalingGoals, &p.OnboardingCompleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// UpsertProfile creates or updates a user's profile.
func (s *Store) UpsertProfile(ctx context.Context, p Profile) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO profiles (id, name, journaling_goals, onboarding_completed, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (id)
		DO UPDATE SET
			name = $2,
			journaling_goals = $3,
			onboarding_completed = $4,
			updated_at = now()`,
		p.ID, p.Name, p.JournalingGoals, p.OnboardingCompleted,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
