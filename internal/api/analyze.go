package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mindmirror-app/mindmirror/internal/classifier"
	"github.com/mindmirror-app/mindmirror/internal/events"
	"github.com/mindmirror-app/mindmirror/internal/llm"
	"github.com/mindmirror-app/mindmirror/internal/weekly"
)

// analyzeRequest is the single request shape behind /functions/analyze-mood.
// Type selects the operation; the zero value means mood classification.
type analyzeRequest struct {
	Type        string         `json:"type"`
	JournalText string         `json:"journalText"`
	UserID      string         `json:"userId"`
	Entries     []weekly.Entry `json:"entries"`
	Prompt      string         `json:"prompt"`
}

func (s *Server) analyzeMood(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Type {
	case "", "analyze-mood":
		s.handleClassify(w, r, req)
	case "weekly-reflection":
		s.handleWeekly(w, r, req)
	case "conflict-detection":
		s.handleConflictDetection(w, r, req)
	case "conflict-resolution":
		s.handleConflictResolution(w, r, req)
	default:
		writeError(w, http.StatusBadRequest, "unknown type")
	}
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request, req analyzeRequest) {
	if req.JournalText == "" {
		writeError(w, http.StatusBadRequest, "journalText is required")
		return
	}

	result, err := s.classifier.Analyze(r.Context(), req.JournalText, req.UserID)
	if err != nil {
		s.writeAIError(w, err)
		return
	}

	s.dispatchLearning(req.UserID, req.JournalText, result)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request, req analyzeRequest) {
	recent := weekly.FilterLastWeek(req.Entries, time.Now())
	summary, err := s.weekly.Summarize(r.Context(), recent)
	if err != nil {
		s.writeAIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (s *Server) handleConflictDetection(w http.ResponseWriter, r *http.Request, req analyzeRequest) {
	if req.JournalText == "" {
		writeError(w, http.StatusBadRequest, "journalText is required")
		return
	}

	result, err := s.extractor.DetectConflict(r.Context(), req.JournalText)
	if err != nil {
		s.writeAIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleConflictResolution(w http.ResponseWriter, r *http.Request, req analyzeRequest) {
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	msg, err := s.extractor.ResolutionMessage(r.Context(), req.Prompt)
	if err != nil {
		s.writeAIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// writeAIError maps gateway failures to distinct statuses so the client can
// tell capacity problems apart from real errors. These must never be
// disguised as a successful fallback classification.
func (s *Server) writeAIError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, llm.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again in a moment.")
	case errors.Is(err, llm.ErrQuotaExceeded):
		writeError(w, http.StatusPaymentRequired, "AI usage limit reached. Please add credits to continue.")
	case errors.Is(err, llm.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "AI gateway is not configured")
	default:
		s.logger.Error("AI call failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// dispatchLearning hands a successful classification to the signature
// learner without blocking the response. Anonymous entries and fallback
// classifications are skipped.
func (s *Server) dispatchLearning(userID, journalText string, result classifier.Result) {
	if userID == "" || result.Fallback {
		return
	}

	if s.events != nil {
		evt := events.EntryAnalyzed{
			UserID:      userID,
			JournalText: journalText,
			Mood:        result.Mood,
			AnalyzedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.events.Publish(events.SubjectEntryAnalyzed, evt); err != nil {
			s.logger.Warn("failed to publish entry analyzed event", "error", err)
		}
		return
	}

	if s.learner == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		s.learner.Learn(ctx, userID, journalText, result.Mood)
	}()
}
