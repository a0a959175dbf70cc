package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mindmirror-app/mindmirror/internal/api"
	"github.com/mindmirror-app/mindmirror/internal/classifier"
	"github.com/mindmirror-app/mindmirror/internal/config"
	"github.com/mindmirror-app/mindmirror/internal/events"
	"github.com/mindmirror-app/mindmirror/internal/learner"
	"github.com/mindmirror-app/mindmirror/internal/llm"
	"github.com/mindmirror-app/mindmirror/internal/outreach"
	"github.com/mindmirror-app/mindmirror/internal/store"
	"github.com/mindmirror-app/mindmirror/internal/weekly"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("mindmirror starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	db, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.InitSchema(ctx); err != nil {
		slog.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}
	slog.Info("database connected")

	// AI gateway client. A missing key is not fatal: requests that need the
	// model get a 503 until the key is configured.
	if cfg.AIAPIKey == "" {
		slog.Warn("AI_GATEWAY_API_KEY not set — model calls will be rejected")
	}
	client := llm.NewClient(cfg.AIGatewayURL, cfg.AIAPIKey, cfg.AIModel)
	slog.Info("AI gateway client ready", "model", cfg.AIModel)

	learn := learner.New(db, slog.Default())

	// NATS (optional — without it learning runs in-process)
	var eventBus *events.Client
	if cfg.NatsURL != "" {
		eventBus, err = events.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer eventBus.Close()
		if err := eventBus.Subscribe(events.SubjectEntryAnalyzed, learn.HandleEntryAnalyzed); err != nil {
			slog.Error("failed to subscribe to entry events", "error", err)
			os.Exit(1)
		}
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured — running without event bus")
	}

	srv := api.NewServer(cfg.Port, api.Deps{
		Classifier: classifier.New(client, db, slog.Default()),
		Extractor:  outreach.New(client, slog.Default()),
		Weekly:     weekly.New(client, slog.Default()),
		Learner:    learn,
		Store:      db,
		Events:     eventBus,
		Logger:     slog.Default(),
	})
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("mindmirror ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("mindmirror stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
