package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mindmirror-app/mindmirror/internal/store"
)

const defaultEntryLimit = 50

func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "X-User-ID header is required")
		return
	}

	limit := defaultEntryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	var err error
	var entries []store.Entry
	if since := r.URL.Query().Get("since"); since != "" {
		entries, err = s.store.ListEntriesSince(r.Context(), uid, since)
	} else {
		entries, err = s.store.ListEntries(r.Context(), uid, limit)
	}
	if err != nil {
		s.logger.Error("list entries failed", "user_id", uid, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if entries == nil {
		entries = []store.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

type createEntryRequest struct {
	EntryDate string `json:"entry_date"`
	EntryText string `json:"entry_text"`
	Mood      string `json:"mood"`
	Response  string `json:"response"`
}

func (s *Server) createEntry(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "X-User-ID header is required")
		return
	}

	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EntryDate == "" || req.EntryText == "" {
		writeError(w, http.StatusBadRequest, "entry_date and entry_text are required")
		return
	}

	id, err := s.store.CreateEntry(r.Context(), uid, req.EntryDate, req.EntryText, req.Mood, req.Response)
	if err != nil {
		s.logger.Error("create entry failed", "user_id", uid, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "X-User-ID header is required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	if err := s.store.DeleteEntry(r.Context(), uid, id); err != nil {
		s.logger.Error("delete entry failed", "user_id", uid, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listSignatures(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "X-User-ID header is required")
		return
	}

	sigs, err := s.store.TopSignatures(r.Context(), uid, 20)
	if err != nil {
		s.logger.Error("list signatures failed", "user_id", uid, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	type signatureView struct {
		Phrase     string `json:"phrase"`
		Mood       string `json:"mood"`
		Confidence int    `json:"confidence"`
	}
	views := make([]signatureView, 0, len(sigs))
	for _, sig := range sigs {
		views = append(views, signatureView{Phrase: sig.Phrase, Mood: sig.Mood, Confidence: sig.Confidence})
	}
	writeJSON(w, http.StatusOK, views)
}
