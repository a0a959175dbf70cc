package api

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Per-IP limits sized for a single journaling user: bursts absorb page loads,
// the steady rate blocks scripted abuse. Only the AI endpoints are limited;
// health checks and CRUD stay unthrottled.
const (
	limiterRPS   = 5
	limiterBurst = 30
	limiterTTL   = 30 * time.Minute
)

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

// rateLimiter holds per-IP limiters for one server instance.
type rateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{entries: make(map[string]*limiterEntry)}
}

func (rl *rateLimiter) get(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, ok := rl.entries[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(limiterRPS), limiterBurst)}
		rl.entries[ip] = e

		// Stale entries are swept opportunistically on insert.
		for k, v := range rl.entries {
			if time.Since(v.lastUse) > limiterTTL && k != ip {
				delete(rl.entries, k)
			}
		}
	}
	e.lastUse = time.Now()
	return e.limiter
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.get(ip).Allow() {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
