package learner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/mindmirror-app/mindmirror/internal/events"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type upsertCall struct {
	userID string
	phrase string
	mood   string
}

// memStore mimics the documented upsert semantics: insert with confidence 1,
// or last-write-wins on mood with a confidence increment.
type memStore struct {
	calls      []upsertCall
	moods      map[string]string
	confidence map[string]int
	failOn     string
}

func newMemStore() *memStore {
	return &memStore{moods: map[string]string{}, confidence: map[string]int{}}
}

func (m *memStore) UpsertSignature(_ context.Context, userID, phrase, mood string) error {
	m.calls = append(m.calls, upsertCall{userID, phrase, mood})
	if phrase == m.failOn {
		return fmt.Errorf("simulated upsert failure")
	}
	key := userID + "|" + phrase
	m.moods[key] = mood
	m.confidence[key]++
	return nil
}

func TestExtractPhrases_LengthBoundaries(t *testing.T) {
	cases := []struct {
		fragment string
		kept     bool
	}{
		{"abc", false},                   // exactly 3: excluded
		{"abcd", true},                   // exactly 4: included
		{strings.Repeat("a", 49), true},  // exactly 49: included
		{strings.Repeat("a", 50), false}, // exactly 50: excluded
	}

	for _, tc := range cases {
		got := ExtractPhrases(tc.fragment)
		if tc.kept && len(got) != 1 {
			t.Errorf("fragment of length %d should be kept", len(tc.fragment))
		}
		if !tc.kept && len(got) != 0 {
			t.Errorf("fragment of length %d should be excluded", len(tc.fragment))
		}
	}
}

func TestExtractPhrases_SplitsOnDelimiters(t *testing.T) {
	text := "Had a fight with Sam. Feeling low, honestly! What now? Nothing; just tired: very\nlong day again"

	got := ExtractPhrases(text)
	want := []string{"had a fight with sam", "feeling low", "honestly", "what now", "nothing"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractPhrases_CapsAtFiveInOccurrenceOrder(t *testing.T) {
	text := "one one one, two two two, three three, four four, five five, six six, seven seven"

	got := ExtractPhrases(text)
	if len(got) != 5 {
		t.Fatalf("expected 5 phrases, got %d: %v", len(got), got)
	}
	if got[0] != "one one one" || got[4] != "five five" {
		t.Errorf("expected first-occurrence order, got %v", got)
	}
}

func TestExtractPhrases_Lowercases(t *testing.T) {
	got := ExtractPhrases("Went To The Park")
	if len(got) != 1 || got[0] != "went to the park" {
		t.Errorf("expected lowercased phrase, got %v", got)
	}
}

func TestLearn_UpsertsEachPhrase(t *testing.T) {
	store := newMemStore()
	l := New(store, discardLogger())

	l.Learn(context.Background(), "user-1", "went to the park, had ice cream", "happy")

	if len(store.calls) != 2 {
		t.Fatalf("expected 2 upserts, got %d", len(store.calls))
	}
	if store.calls[0].phrase != "went to the park" || store.calls[0].mood != "happy" {
		t.Errorf("unexpected first upsert: %+v", store.calls[0])
	}
}

func TestLearn_SignatureRoundTrip(t *testing.T) {
	store := newMemStore()
	l := New(store, discardLogger())

	// First seen as sad, re-seen as happy: last-write-wins on the label,
	// monotonic increment on confidence.
	l.Learn(context.Background(), "user-1", "had a fight with sam", "sad")
	l.Learn(context.Background(), "user-1", "had a fight with sam", "happy")

	key := "user-1|had a fight with sam"
	if store.moods[key] != "happy" {
		t.Errorf("expected mood happy after re-seen, got %q", store.moods[key])
	}
	if store.confidence[key] != 2 {
		t.Errorf("expected confidence 2, got %d", store.confidence[key])
	}
}

func TestLearn_FailureDoesNotStopRemainingPhrases(t *testing.T) {
	store := newMemStore()
	store.failOn = "went to the park"
	l := New(store, discardLogger())

	l.Learn(context.Background(), "user-1", "went to the park, had ice cream", "happy")

	if len(store.calls) != 2 {
		t.Fatalf("expected both phrases attempted, got %d", len(store.calls))
	}
	if store.confidence["user-1|had ice cream"] != 1 {
		t.Error("expected the second phrase to be stored despite the first failing")
	}
}

func TestHandleEntryAnalyzed(t *testing.T) {
	store := newMemStore()
	l := New(store, discardLogger())

	data, _ := json.Marshal(events.EntryAnalyzed{
		UserID:      "user-9",
		JournalText: "long day at work today",
		Mood:        "nervous",
	})
	l.HandleEntryAnalyzed(events.SubjectEntryAnalyzed, data)

	if store.confidence["user-9|long day at work today"] != 1 {
		t.Error("expected signature learned from event")
	}
}

func TestHandleEntryAnalyzed_IgnoresAnonymous(t *testing.T) {
	store := newMemStore()
	l := New(store, discardLogger())

	data, _ := json.Marshal(events.EntryAnalyzed{JournalText: "some text here", Mood: "happy"})
	l.HandleEntryAnalyzed(events.SubjectEntryAnalyzed, data)

	if len(store.calls) != 0 {
		t.Errorf("expected no upserts for an event without a user id, got %d", len(store.calls))
	}
}
