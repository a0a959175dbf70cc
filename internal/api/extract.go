package api

import (
	"encoding/json"
	"net/http"
)

type extractRequest struct {
	JournalText string `json:"journalText"`
}

// extractNamesIntent never returns an AI error status: the extractor degrades
// to its local heuristic on any model failure.
func (s *Server) extractNamesIntent(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.JournalText == "" {
		writeError(w, http.StatusBadRequest, "journalText is required")
		return
	}

	result := s.extractor.ExtractNamesIntent(r.Context(), req.JournalText)
	writeJSON(w, http.StatusOK, result)
}
