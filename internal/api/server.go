package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mindmirror-app/mindmirror/internal/classifier"
	"github.com/mindmirror-app/mindmirror/internal/events"
	"github.com/mindmirror-app/mindmirror/internal/learner"
	"github.com/mindmirror-app/mindmirror/internal/outreach"
	"github.com/mindmirror-app/mindmirror/internal/store"
	"github.com/mindmirror-app/mindmirror/internal/weekly"
)

type Server struct {
	router     *chi.Mux
	port       int
	classifier *classifier.Classifier
	extractor  *outreach.Extractor
	weekly     *weekly.Summarizer
	learner    *learner.Learner
	store      *store.Store
	events     *events.Client
	limiter    *rateLimiter
	logger     *slog.Logger
}

// Deps carries the server's collaborators. Events may be nil; learning then
// runs in-process instead of over the bus.
type Deps struct {
	Classifier *classifier.Classifier
	Extractor  *outreach.Extractor
	Weekly     *weekly.Summarizer
	Learner    *learner.Learner
	Store      *store.Store
	Events     *events.Client
	Logger     *slog.Logger
}

func NewServer(port int, deps Deps) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type", "X-User-ID"},
	}))

	s := &Server{
		router:     router,
		port:       port,
		classifier: deps.Classifier,
		extractor:  deps.Extractor,
		weekly:     deps.Weekly,
		learner:    deps.Learner,
		store:      deps.Store,
		events:     deps.Events,
		limiter:    newRateLimiter(),
		logger:     deps.Logger,
	}

	router.Get("/health", s.health)

	// Only the model-backed endpoints are rate limited.
	router.Route("/functions", func(r chi.Router) {
		r.Use(s.limiter.middleware)
		r.Post("/analyze-mood", s.analyzeMood)
		r.Post("/extract-names-intent", s.extractNamesIntent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/entries", s.listEntries)
		r.Post("/entries", s.createEntry)
		r.Delete("/entries/{id}", s.deleteEntry)
		r.Get("/profile", s.getProfile)
		r.Put("/profile", s.putProfile)
		r.Get("/habits", s.listHabits)
		r.Post("/habits", s.addHabit)
		r.Delete("/habits/{id}", s.deleteHabit)
		r.Get("/signatures", s.listSignatures)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// userID identifies the caller. Identity comes from the app's auth proxy, so
// a bare header is enough here.
func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}
