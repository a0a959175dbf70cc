package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/mindmirror-app/mindmirror/internal/classifier"
)

const topSignatureLimit = 20

// PersonalizationContext assembles everything known about a user for prompt
// personalization. A missing profile yields an empty (not nil) context so the
// caller falls back to the base prompt.
func (s *Store) PersonalizationContext(ctx context.Context, userID string) (*classifier.Personalization, error) {
	p := &classifier.Personalization{}

	profile, err := s.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("personalization profile: %w", err)
	}
	if profile != nil {
		p.Name = profile.Name
	}

	interests, err := s.ListInterests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("personalization interests: %w", err)
	}
	p.Interests = interests

	habits, err := s.ListHabits(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("personalization habits: %w", err)
	}
	for _, h := range habits {
		p.Habits = append(p.Habits, h.Description)
	}

	sigs, err := s.TopSignatures(ctx, userID, topSignatureLimit)
	if err != nil {
		return nil, fmt.Errorf("personalization signatures: %w", err)
	}
	for _, sig := range sigs {
		p.Signatures = append(p.Signatures, classifier.Signature{
			Phrase:     sig.Phrase,
			Mood:       sig.Mood,
			Confidence: sig.Confidence,
		})
	}

	return p, nil
}
