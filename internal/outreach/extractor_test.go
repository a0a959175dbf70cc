package outreach

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mindmirror-app/mindmirror/internal/llm"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func completionServer(t *testing.T, content string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		})
	}))
}

func TestExtractNamesIntent_CrisisShortCircuit(t *testing.T) {
	var calls atomic.Int32
	server := completionServer(t, `{"people":["Sam"],"intent":"share"}`, &calls)
	defer server.Close()

	e := New(llm.NewClient(server.URL, "test-key", "test-model"), discardLogger())

	result := e.ExtractNamesIntent(context.Background(), "I want to die. Nothing matters anymore.")

	if !result.IsCrisis {
		t.Fatal("expected isCrisis true")
	}
	if len(result.People) != 0 {
		t.Errorf("expected empty people, got %v", result.People)
	}
	if result.Intent != "none" {
		t.Errorf("expected intent none, got %q", result.Intent)
	}
	if calls.Load() != 0 {
		t.Errorf("crisis path must never reach the model, got %d calls", calls.Load())
	}
}

func TestExtractNamesIntent_Success(t *testing.T) {
	server := completionServer(t, `{"people":["Shreya","Alex"],"intent":"apologize"}`, nil)
	defer server.Close()

	e := New(llm.NewClient(server.URL, "test-key", "test-model"), discardLogger())

	result := e.ExtractNamesIntent(context.Background(), "Me and Shreya fought again, Alex saw everything.")

	if len(result.People) != 2 || result.People[0] != "Shreya" {
		t.Errorf("unexpected people: %v", result.People)
	}
	if result.Intent != "apologize" {
		t.Errorf("expected apologize, got %q", result.Intent)
	}
	if result.IsCrisis {
		t.Error("expected isCrisis false")
	}
}

func TestExtractNamesIntent_CapsAtThreeNames(t *testing.T) {
	server := completionServer(t, `{"people":["Ana","Ben","Cleo","Dev","Esha"],"intent":"share"}`, nil)
	defer server.Close()

	e := New(llm.NewClient(server.URL, "test-key", "test-model"), discardLogger())

	result := e.ExtractNamesIntent(context.Background(), "Hung out with Ana Ben Cleo Dev Esha, what fun")

	if len(result.People) != 3 {
		t.Errorf("expected at most 3 names, got %d: %v", len(result.People), result.People)
	}
}

func TestExtractNamesIntent_NonJSONFallsBackToHeuristic(t *testing.T) {
	server := completionServer(t, "Shreya seems to be mentioned here", nil)
	defer server.Close()

	e := New(llm.NewClient(server.URL, "test-key", "test-model"), discardLogger())

	result := e.ExtractNamesIntent(context.Background(), "Went shopping with Rishika and it was so much fun!")

	if len(result.People) != 1 || result.People[0] != "Rishika" {
		t.Errorf("expected heuristic to find Rishika, got %v", result.People)
	}
	if result.Intent != "share" {
		t.Errorf("expected share intent from heuristic, got %q", result.Intent)
	}
}

func TestExtractNamesIntent_GatewayErrorFallsBackToHeuristic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	e := New(llm.NewClient(server.URL, "test-key", "test-model"), discardLogger())

	result := e.ExtractNamesIntent(context.Background(), "I had a fight with Chirag today.")

	if len(result.People) != 1 || result.People[0] != "Chirag" {
		t.Errorf("expected heuristic extraction, got %v", result.People)
	}
	if result.Intent != "apologize" {
		t.Errorf("expected apologize intent, got %q", result.Intent)
	}
}

func TestExtractNamesIntent_InvalidShapeFallsBackToHeuristic(t *testing.T) {
	// Valid JSON, wrong shape: no people array.
	server := completionServer(t, `{"intent":"share"}`, nil)
	defer server.Close()

	e := New(llm.NewClient(server.URL, "test-key", "test-model"), discardLogger())

	result := e.ExtractNamesIntent(context.Background(), "Hung out with Aarav today, had the best laugh.")

	if len(result.People) != 1 || result.People[0] != "Aarav" {
		t.Errorf("expected heuristic extraction, got %v", result.People)
	}
}

func TestDetectConflict_CrisisShortCircuit(t *testing.T) {
	var calls atomic.Int32
	server := completionServer(t, `{"hasConflict":true}`, &calls)
	defer server.Close()

	e := New(llm.NewClient(server.URL, "test-key", "test-model"), discardLogger())

	result, err := e.DetectConflict(context.Background(), "thinking about self harm again")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Crisis {
		t.Fatal("expected crisis flag")
	}
	if result.HasConflict || result.HasPositive || result.Message != "" {
		t.Errorf("crisis result must carry no outreach payload: %+v", result)
	}
	if calls.Load() != 0 {
		t.Errorf("crisis path must never reach the model, got %d calls", calls.Load())
	}
}

func TestDetectConflict_ConflictWithShareURL(t *testing.T) {
	content := "```json\n{\"hasConflict\":true,\"hasPositive\":false,\"personName\":\"Chirag\",\"conflictType\":\"fight\",\"message\":\"Hey Chirag. I'm sorry about today.\"}\n```"
	server := completionServer(t, content, nil)
	defer server.Close()

	e := New(llm.NewClient(server.URL, "test-key", "test-model"), discardLogger())

	result, err := e.DetectConflict(context.Background(), "I had a fight with Chirag.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.HasConflict || result.PersonName != "Chirag" || result.ConflictType != "fight" {
		t.Errorf("unexpected result: %+v", result)
	}
	if !strings.HasPrefix(result.ShareURL, "https://wa.me/?text=") {
		t.Errorf("expected share url for drafted message, got %q", result.ShareURL)
	}
}

func TestDetectConflict_MissingMessageGetsLocalDraft(t *testing.T) {
	server := completionServer(t, `{"hasConflict":true,"hasPositive":false,"personName":"Neha","conflictType":"tension"}`, nil)
	defer server.Close()

	e := New(llm.NewClient(server.URL, "test-key", "test-model"), discardLogger())

	result, err := e.DetectConflict(context.Background(), "Things felt off with Neha all day.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Message == "" {
		t.Fatal("expected a locally drafted message")
	}
	if !strings.HasPrefix(result.Message, "Hey Neha") || !strings.Contains(result.Message, "sorry") {
		t.Errorf("expected an apologetic draft addressed to Neha, got %q", result.Message)
	}
	if result.ShareURL == "" {
		t.Error("expected share url for the drafted message")
	}
}

func TestDetectConflict_UnparsableDegradesToNoConflict(t *testing.T) {
	server := completionServer(t, "not json at all", nil)
	defer server.Close()

	e := New(llm.NewClient(server.URL, "test-key", "test-model"), discardLogger())

	result, err := e.DetectConflict(context.Background(), "quiet day, nothing happened")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HasConflict || result.HasPositive {
		t.Errorf("expected neutral result, got %+v", result)
	}
}

func TestDetectConflict_RateLimitPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	e := New(llm.NewClient(server.URL, "test-key", "test-model"), discardLogger())

	_, err := e.DetectConflict(context.Background(), "I had a fight with Chirag.")
	if !errors.Is(err, llm.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestResolutionMessage(t *testing.T) {
	server := completionServer(t, "Hey Neha, I'm really sorry about earlier.", nil)
	defer server.Close()

	e := New(llm.NewClient(server.URL, "test-key", "test-model"), discardLogger())

	msg, err := e.ResolutionMessage(context.Background(), "Draft an apology to Neha about the argument.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "Hey Neha, I'm really sorry about earlier." {
		t.Errorf("unexpected message: %q", msg)
	}
}
