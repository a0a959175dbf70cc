package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Entry struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	EntryDate string    `json:"entry_date"`
	EntryText string    `json:"entry_text"`
	Mood      string    `json:"mood"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateEntry inserts a journal entry and returns its ID.
func (s *Store) CreateEntry(ctx context.Context, userID, entryDate, entryText, mood, response string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO journal_entries (id, user_id, entry_date, entry_text, mood, response)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, userID, entryDate, entryText, mood, response,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert entry: %w", err)
	}
	return id, nil
}

// ListEntries returns the user's entries, newest first.
func (s *Store) ListEntries(ctx context.Context, userID string, limit int) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, to_char(entry_date, 'YYYY-MM-DD'), entry_text, mood, response, created_at
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListEntriesSince returns entries dated on or after the given date,
// newest first.
func (s *Store) ListEntriesSince(ctx context.Context, userID, sinceDate string) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, to_char(entry_date, 'YYYY-MM-DD'), entry_text, mood, response, created_at
		FROM journal_entries
		WHERE user_id = $1 AND entry_date >= $2
		ORDER BY entry_date DESC, created_at DESC`,
		userID, sinceDate,
	)
	if err != nil {
		return nil, fmt.Errorf("query entries since: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// DeleteEntry removes an entry owned by the user.
func (s *Store) DeleteEntry(ctx context.Context, userID string, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

func scanEntries(rows pgx.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.EntryDate, &e.EntryText, &e.Mood, &e.Response, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
