package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	LogLevel     string
	NatsURL      string
	NatsToken    string
	AIGatewayURL string
	AIAPIKey     string
	AIModel      string
}

func Load() Config {
	return Config{
		Port:         envInt("MINDMIRROR_PORT", 8760),
		DatabaseURL:  envStr("DATABASE_URL", ""),
		LogLevel:     envStr("LOG_LEVEL", "info"),
		NatsURL:      envStr("NATS_URL", ""),
		NatsToken:    envStr("NATS_TOKEN", ""),
		AIGatewayURL: envStr("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1/chat/completions"),
		AIAPIKey:     envStr("AI_GATEWAY_API_KEY", ""),
		AIModel:      envStr("MINDMIRROR_MODEL", "google/gemini-2.5-flash"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
