//go:build integration

package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	if err := s.InitSchema(ctx); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestIntegration_SignatureUpsertIncrementsConfidence(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	userID := "integration-test-" + uuid.New().String()[:8]

	if err := s.UpsertSignature(ctx, userID, "didn't sleep well", "sad"); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := s.UpsertSignature(ctx, userID, "didn't sleep well", "happy"); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	sigs, err := s.TopSignatures(ctx, userID, 10)
	if err != nil {
		t.Fatalf("TopSignatures failed: %v", err)
	}
	if len(sigs) != 1 {
		t.Fatalf("expected 1 signature, got %d", len(sigs))
	}
	if sigs[0].Mood != "happy" {
		t.Errorf("expected latest mood happy, got %q", sigs[0].Mood)
	}
	if sigs[0].Confidence != 2 {
		t.Errorf("expected confidence 2, got %d", sigs[0].Confidence)
	}
}

func TestIntegration_TopSignaturesOrdering(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	userID := "integration-test-" + uuid.New().String()[:8]

	for i := 0; i < 3; i++ {
		if err := s.UpsertSignature(ctx, userID, "great workout", "happy"); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}
	if err := s.UpsertSignature(ctx, userID, "long commute", "sad"); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	sigs, err := s.TopSignatures(ctx, userID, 10)
	if err != nil {
		t.Fatalf("TopSignatures failed: %v", err)
	}
	if len(sigs) != 2 {
		t.Fatalf("expected 2 signatures, got %d", len(sigs))
	}
	if sigs[0].Phrase != "great workout" || sigs[0].Confidence != 3 {
		t.Errorf("expected strongest signature first, got %+v", sigs[0])
	}
}

func TestIntegration_EntryLifecycle(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	userID := "integration-test-" + uuid.New().String()[:8]

	id, err := s.CreateEntry(ctx, userID, "2025-06-14", "Great walk in the park", "happy", "Sounds lovely!")
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("expected non-nil entry ID")
	}

	entries, err := s.ListEntries(ctx, userID, 10)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].EntryDate != "2025-06-14" || entries[0].Mood != "happy" {
		t.Errorf("unexpected entry: %+v", entries[0])
	}

	if err := s.DeleteEntry(ctx, userID, id); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	entries, err = s.ListEntries(ctx, userID, 10)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected entry deleted, got %d", len(entries))
	}
}

func TestIntegration_PersonalizationContext(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	userID := "integration-test-" + uuid.New().String()[:8]

	err := s.UpsertProfile(ctx, Profile{ID: userID, Name: "Shreya", OnboardingCompleted: true})
	if err != nil {
		t.Fatalf("UpsertProfile failed: %v", err)
	}
	if err := s.ReplaceInterests(ctx, userID, []string{"painting", "cricket"}); err != nil {
		t.Fatalf("ReplaceInterests failed: %v", err)
	}
	if _, err := s.AddHabit(ctx, Habit{UserID: userID, Description: "evening walk"}); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if err := s.UpsertSignature(ctx, userID, "didn't sleep well", "sad"); err != nil {
		t.Fatalf("UpsertSignature failed: %v", err)
	}

	p, err := s.PersonalizationContext(ctx, userID)
	if err != nil {
		t.Fatalf("PersonalizationContext failed: %v", err)
	}
	if p.Name != "Shreya" {
		t.Errorf("expected name Shreya, got %q", p.Name)
	}
	if len(p.Interests) != 2 {
		t.Errorf("expected 2 interests, got %v", p.Interests)
	}
	if len(p.Habits) != 1 || p.Habits[0] != "evening walk" {
		t.Errorf("unexpected habits: %v", p.Habits)
	}
	if len(p.Signatures) != 1 || p.Signatures[0].Phrase != "didn't sleep well" {
		t.Errorf("unexpected signatures: %+v", p.Signatures)
	}
	if p.Empty() {
		t.Error("populated context must not be empty")
	}
}

func TestIntegration_PersonalizationContextUnknownUser(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	p, err := s.PersonalizationContext(ctx, "integration-nobody-"+uuid.New().String()[:8])
	if err != nil {
		t.Fatalf("PersonalizationContext failed: %v", err)
	}
	if !p.Empty() {
		t.Errorf("expected empty context for unknown user, got %+v", p)
	}
}
