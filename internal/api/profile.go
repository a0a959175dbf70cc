package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mindmirror-app/mindmirror/internal/store"
)

type profileView struct {
	Name                string   `json:"name"`
	JournalingGoals     string   `json:"journaling_goals"`
	OnboardingCompleted bool     `json:"onboarding_completed"`
	Interests           []string `json:"interests"`
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "X-User-ID header is required")
		return
	}

	profile, err := s.store.GetProfile(r.Context(), uid)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		s.logger.Error("get profile failed", "user_id", uid, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	interests, err := s.store.ListInterests(r.Context(), uid)
	if err != nil {
		s.logger.Error("list interests failed", "user_id", uid, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if interests == nil {
		interests = []string{}
	}

	writeJSON(w, http.StatusOK, profileView{
		Name:                profile.Name,
		JournalingGoals:     profile.JournalingGoals,
		OnboardingCompleted: profile.OnboardingCompleted,
		Interests:           interests,
	})
}

type putProfileRequest struct {
	Name                string    `json:"name"`
	JournalingGoals     string    `json:"journaling_goals"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	Interests           *[]string `json:"interests"`
}

func (s *Server) putProfile(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "X-User-ID header is required")
		return
	}

	var req putProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.store.UpsertProfile(r.Context(), store.Profile{
		ID:                  uid,
		Name:                req.Name,
		JournalingGoals:     req.JournalingGoals,
		OnboardingCompleted: req.OnboardingCompleted,
	})
	if err != nil {
		s.logger.Error("upsert profile failed", "user_id", uid, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// Interests are replaced only when the field is present; omitting it
	// leaves the stored list untouched.
	if req.Interests != nil {
		if err := s.store.ReplaceInterests(r.Context(), uid, *req.Interests); err != nil {
			s.logger.Error("replace interests failed", "user_id", uid, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type addHabitRequest struct {
	Description        string `json:"description"`
	HabitType          string `json:"habit_type"`
	TimePreference     string `json:"time_preference"`
	LocationPreference string `json:"location_preference"`
}

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "X-User-ID header is required")
		return
	}

	habits, err := s.store.ListHabits(r.Context(), uid)
	if err != nil {
		s.logger.Error("list habits failed", "user_id", uid, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if habits == nil {
		habits = []store.Habit{}
	}
	writeJSON(w, http.StatusOK, habits)
}

func (s *Server) addHabit(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "X-User-ID header is required")
		return
	}

	var req addHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Description == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}

	id, err := s.store.AddHabit(r.Context(), store.Habit{
		UserID:             uid,
		Description:        req.Description,
		HabitType:          req.HabitType,
		TimePreference:     req.TimePreference,
		LocationPreference: req.LocationPreference,
	})
	if err != nil {
		s.logger.Error("add habit failed", "user_id", uid, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) deleteHabit(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "X-User-ID header is required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid habit id")
		return
	}

	if err := s.store.DeleteHabit(r.Context(), uid, id); err != nil {
		s.logger.Error("delete habit failed", "user_id", uid, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
