package outreach

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mindmirror-app/mindmirror/internal/classifier"
	"github.com/mindmirror-app/mindmirror/internal/llm"
	"github.com/mindmirror-app/mindmirror/internal/share"
)

// Extraction favors determinism over creative variance; message generation is
// the opposite.
const (
	extractTemperature    = 0.2
	detectTemperature     = 0.3
	resolutionTemperature = 0.8
)

const maxNames = 3

// NamesIntent is the name+intent extraction result used to decide whether to
// offer a "send a note" flow.
type NamesIntent struct {
	People   []string `json:"people"`
	Intent   string   `json:"intent"`
	IsCrisis bool     `json:"isCrisis"`
}

// ConflictResult is the combined conflict/positive-moment detection result
// with an AI-drafted outreach message.
type ConflictResult struct {
	HasConflict  bool   `json:"hasConflict"`
	HasPositive  bool   `json:"hasPositive"`
	PersonName   string `json:"personName,omitempty"`
	ConflictType string `json:"conflictType,omitempty"`
	Message      string `json:"message,omitempty"`
	ShareURL     string `json:"shareUrl,omitempty"`
	Crisis       bool   `json:"crisis,omitempty"`
}

// Extractor is the single extraction primitive behind both the
// name+intent endpoint and the conflict-detection endpoint.
type Extractor struct {
	llm    *llm.Client
	logger *slog.Logger
}

func New(client *llm.Client, logger *slog.Logger) *Extractor {
	return &Extractor{llm: client, logger: logger}
}

// ExtractNamesIntent returns at most 3 person names and an outreach intent.
// Crisis language short-circuits before any model call; model failures fall
// back to the local heuristic. This path never errors.
func (e *Extractor) ExtractNamesIntent(ctx context.Context, journalText string) NamesIntent {
	if ContainsCrisisLanguage(journalText) {
		e.logger.Info("crisis language detected, skipping extraction")
		return NamesIntent{People: []string{}, Intent: "none", IsCrisis: true}
	}

	raw, err := e.llm.Complete(ctx, []llm.Message{
		{Role: "system", Content: namesIntentSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("ENTRY:\n\"\"\"%s\"\"\"", journalText)},
	}, extractTemperature)
	if err != nil {
		e.logger.Warn("extraction call failed, using heuristic", "error", err)
		return heuristicExtraction(journalText)
	}

	var parsed struct {
		People []string `json:"people"`
		Intent string   `json:"intent"`
	}
	if err := json.Unmarshal([]byte(classifier.StripFences(raw)), &parsed); err != nil {
		e.logger.Warn("extraction output unparsable, using heuristic", "raw", raw)
		return heuristicExtraction(journalText)
	}
	if parsed.People == nil || !validIntent(parsed.Intent) {
		e.logger.Warn("extraction output failed shape validation, using heuristic", "raw", raw)
		return heuristicExtraction(journalText)
	}

	if len(parsed.People) > maxNames {
		parsed.People = parsed.People[:maxNames]
	}
	return NamesIntent{People: parsed.People, Intent: parsed.Intent}
}

func validIntent(intent string) bool {
	switch intent {
	case "share", "apologize", "none":
		return true
	}
	return false
}

// DetectConflict classifies the entry as conflict, positive interaction, or
// neither, and drafts an outreach message. Crisis language short-circuits
// before any model call. Gateway errors propagate so the serving layer can
// map capacity errors; unparsable output degrades to "no conflict".
func (e *Extractor) DetectConflict(ctx context.Context, journalText string) (ConflictResult, error) {
	if ContainsCrisisLanguage(journalText) {
		e.logger.Info("crisis language detected, skipping conflict detection")
		return ConflictResult{Crisis: true}, nil
	}

	raw, err := e.llm.Complete(ctx, []llm.Message{
		{Role: "user", Content: fmt.Sprintf(conflictDetectionPrompt, journalText)},
	}, detectTemperature)
	if err != nil {
		return ConflictResult{}, err
	}

	var result ConflictResult
	if err := json.Unmarshal([]byte(classifier.StripFences(raw)), &result); err != nil {
		e.logger.Warn("conflict detection output unparsable", "raw", raw)
		return ConflictResult{}, nil
	}

	// The model sometimes names a person but omits the drafted message;
	// a local draft keeps the outreach flow usable.
	if result.Message == "" && result.PersonName != "" && (result.HasConflict || result.HasPositive) {
		intent := "share"
		if result.HasConflict {
			intent = "apologize"
		}
		result.Message = share.ComposeDraft(result.PersonName, intent, "")
	}

	if result.Message != "" {
		result.ShareURL = share.WhatsAppDeeplink(result.Message)
	}
	return result, nil
}

// ResolutionMessage generates a fresh outreach draft from a caller-supplied
// prompt (used when the user asks to redo the suggested message).
func (e *Extractor) ResolutionMessage(ctx context.Context, prompt string) (string, error) {
	raw, err := e.llm.Complete(ctx, []llm.Message{
		{Role: "user", Content: prompt},
	}, resolutionTemperature)
	if err != nil {
		return "", err
	}
	return classifier.StripFences(raw), nil
}
