// Package weekly generates the weekly reflection summary from recent entries.
package weekly

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mindmirror-app/mindmirror/internal/classifier"
	"github.com/mindmirror-app/mindmirror/internal/llm"
)

const summaryTemperature = 0.7

const summarySystemPrompt = `You are a supportive life coach analyzing a week of journal entries. Write a warm, encouraging 2-3 sentence summary of the person's week based on their entries. Mention mood patterns you notice and include one actionable insight. Return ONLY valid JSON in this exact format: {"summary": "your summary here"}`

// Entry is one journal entry as fed to the summarizer. The wire shape matches
// the entries API, so stored entries can be posted back verbatim.
type Entry struct {
	Date string `json:"entry_date"`
	Text string `json:"entry_text"`
	Mood string `json:"mood"`
}

// Summarizer turns a week of entries into a short coaching summary.
type Summarizer struct {
	llm    *llm.Client
	logger *slog.Logger
}

func New(client *llm.Client, logger *slog.Logger) *Summarizer {
	return &Summarizer{llm: client, logger: logger}
}

// FilterLastWeek keeps entries dated within the seven days before now.
// Entries with unparsable dates are dropped.
func FilterLastWeek(entries []Entry, now time.Time) []Entry {
	y, m, d := now.Date()
	cutoff := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -7)
	var recent []Entry
	for _, e := range entries {
		d, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			continue
		}
		if !d.Before(cutoff) {
			recent = append(recent, e)
		}
	}
	return recent
}

// Summarize generates the weekly summary. An empty slice returns an empty
// summary without a model call.
func (s *Summarizer) Summarize(ctx context.Context, entries []Entry) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s: %s (Mood: %s)", e.Date, e.Text, e.Mood))
	}
	corpus := strings.Join(lines, "\n\n")

	raw, err := s.llm.Complete(ctx, []llm.Message{
		{Role: "system", Content: summarySystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Here are my journal entries from this week:\n\n%s", corpus)},
	}, summaryTemperature)
	if err != nil {
		return "", fmt.Errorf("weekly summary: %w", err)
	}

	var parsed struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(classifier.StripFences(raw)), &parsed); err != nil {
		s.logger.Warn("weekly summary output unparsable, returning raw text", "raw", raw)
		return classifier.StripFences(raw), nil
	}
	return parsed.Summary, nil
}
