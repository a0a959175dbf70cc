package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Signature struct {
	ID         uuid.UUID
	UserID     string
	Phrase     string
	Mood       string
	Confidence int
}

// UpsertSignature records one sighting of a phrase. A repeat sighting always
// increments confidence and moves the associated mood to the latest
// classification, in a single statement so concurrent writers never lose an
// increment.
func (s *Store) UpsertSignature(ctx context.Context, userID, phrase, mood string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO mood_signatures (id, user_id, phrase, associated_mood, confidence_score, last_seen_at)
		VALUES ($1, $2, $3, $4, 1, now())
		ON CONFLICT (user_id, phrase)
		DO UPDATE SET
			associated_mood = $4,
			confidence_score = mood_signatures.confidence_score + 1,
			last_seen_at = now()`,
		uuid.New(), userID, phrase, mood,
	)
	if err != nil {
		return fmt.Errorf("upsert signature: %w", err)
	}
	return nil
}

// TopSignatures returns the user's strongest phrase-mood associations,
// highest confidence first.
func (s *Store) TopSignatures(ctx context.Context, userID string, limit int) ([]Signature, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, phrase, associated_mood, confidence_score
		FROM mood_signatures
		WHERE user_id = $1
		ORDER BY confidence_score DESC, last_seen_at DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query signatures: %w", err)
	}
	defer rows.Close()

	var sigs []Signature
	for rows.Next() {
		var sig Signature
		if err := rows.Scan(&sig.ID, &sig.UserID, &sig.Phrase, &sig.Mood, &sig.Confidence); err != nil {
			return nil, fmt.Errorf("scan signature: %w", err)
		}
		sigs = append(sigs, sig)
	}
	return sigs, rows.Err()
}
