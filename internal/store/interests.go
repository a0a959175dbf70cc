package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Habit struct {
	ID                 uuid.UUID `json:"id"`
	UserID             string    `json:"user_id"`
	Description        string    `json:"description"`
	HabitType          string    `json:"habit_type"`
	TimePreference     string    `json:"time_preference"`
	LocationPreference string    `json:"location_preference"`
}

// ReplaceInterests overwrites the user's interest list.
func (s *Store) ReplaceInterests(ctx context.Context, userID string, interests []string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM user_interests WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear interests: %w", err)
	}
	for _, interest := range interests {
		if _, err := tx.Exec(ctx, `
			INSERT INTO user_interests (id, user_id, interest) VALUES ($1, $2, $3)
			ON CONFLICT (user_id, interest) DO NOTHING`,
			uuid.New(), userID, interest,
		); err != nil {
			return fmt.Errorf("insert interest: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// ListInterests returns the user's interests in insertion order.
func (s *Store) ListInterests(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT interest FROM user_interests
		WHERE user_id = $1
		ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query interests: %w", err)
	}
	defer rows.Close()

	var interests []string
	for rows.Next() {
		var interest string
		if err := rows.Scan(&interest); err != nil {
			return nil, fmt.Errorf("scan interest: %w", err)
		}
		interests = append(interests, interest)
	}
	return interests, rows.Err()
}

// AddHabit records one mood-lifting habit.
func (s *Store) AddHabit(ctx context.Context, h Habit) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_habits (id, user_id, description, habit_type, time_preference, location_preference)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, h.UserID, h.Description, h.HabitType, h.TimePreference, h.LocationPreference,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert habit: %w", err)
	}
	return id, nil
}

// ListHabits returns the user's habits in insertion order.
func (s *Store) ListHabits(ctx context.Context, userID string) ([]Habit, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, description, habit_type, time_preference, location_preference
		FROM user_habits
		WHERE user_id = $1
		ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query habits: %w", err)
	}
	defer rows.Close()

	var habits []Habit
	for rows.Next() {
		var h Habit
		if err := rows.Scan(&h.ID, &h.UserID, &h.Description, &h.HabitType, &h.TimePreference, &h.LocationPreference); err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// DeleteHabit removes a habit owned by the user.
func (s *Store) DeleteHabit(ctx context.Context, userID string, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM user_habits WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return nil
}
