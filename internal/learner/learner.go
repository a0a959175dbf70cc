package learner

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/mindmirror-app/mindmirror/internal/events"
)

const (
	minPhraseLen = 4  // fragments of 3 characters or fewer are noise
	maxPhraseLen = 49 // fragments of 50 characters or more are sentences, not signatures
	maxPhrases   = 5
)

// SignatureStore persists phrase->mood associations. The upsert must be
// atomic: insert with confidence 1, or overwrite the mood and increment the
// confidence counter when the (user, phrase) row already exists.
type SignatureStore interface {
	UpsertSignature(ctx context.Context, userID, phrase, mood string) error
}

// Learner updates per-user mood signatures after successful classifications.
// It is a fire-and-forget side channel: failures are logged and never reach
// the primary save flow.
type Learner struct {
	store  SignatureStore
	logger *slog.Logger
}

func New(store SignatureStore, logger *slog.Logger) *Learner {
	return &Learner{store: store, logger: logger}
}

// ExtractPhrases splits journal text into candidate signature phrases:
// lowercased, split on sentence delimiters, trimmed, length-bounded, capped
// at the first five in occurrence order.
func ExtractPhrases(text string) []string {
	parts := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		switch r {
		case '.', ',', '!', '?', ';', ':', '\n':
			return true
		}
		return false
	})

	var phrases []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) < minPhraseLen || len(p) > maxPhraseLen {
			continue
		}
		phrases = append(phrases, p)
		if len(phrases) == maxPhrases {
			break
		}
	}
	return phrases
}

// Learn extracts phrases from the entry and upserts one signature per phrase.
// A failed phrase is logged and the rest still run.
func (l *Learner) Learn(ctx context.Context, userID, journalText, mood string) {
	phrases := ExtractPhrases(journalText)
	if len(phrases) == 0 {
		return
	}

	l.logger.Info("learning mood signatures",
		"user_id", userID,
		"mood", mood,
		"phrases", len(phrases),
	)

	for _, phrase := range phrases {
		if err := l.store.UpsertSignature(ctx, userID, phrase, mood); err != nil {
			l.logger.Warn("signature upsert failed",
				"user_id", userID,
				"phrase", phrase,
				"error", err,
			)
		}
	}
}

// HandleEntryAnalyzed is the NATS handler for mindmirror.entry.analyzed.
func (l *Learner) HandleEntryAnalyzed(subject string, data []byte) {
	var evt events.EntryAnalyzed
	if err := json.Unmarshal(data, &evt); err != nil {
		l.logger.Error("failed to parse entry analyzed event", "error", err)
		return
	}
	if evt.UserID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	l.Learn(ctx, evt.UserID, evt.JournalText, evt.Mood)
}
