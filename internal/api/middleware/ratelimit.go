package middleware

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter is a fixed-window, in-memory limiter keyed by client IP. One
// instance guards the whole API; stricter instances guard the auth endpoints
// where OAuth state minting and token exchange make abuse cheap.
type RateLimiter struct {
	clients  map[string]*clientWindow
	requests int
	window   time.Duration
	mu       sync.Mutex
}

type clientWindow struct {
	resetAt time.Time
	count   int
}

// NewRateLimiter creates a limiter allowing requests per window per client.
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients:  make(map[string]*clientWindow),
		requests: requests,
		window:   window,
	}
	go rl.evictLoop()
	return rl
}

// Middleware enforces the limit and answers 429 when exceeded.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now().UTC()
	win, ok := rl.clients[client]
	if !ok || now.After(win.resetAt) {
		rl.clients[client] = &clientWindow{count: 1, resetAt: now.Add(rl.window)}
		return true
	}
	if win.count < rl.requests {
		win.count++
		return true
	}
	return false
}

// evictLoop drops expired windows so idle clients don't accumulate.
func (rl *RateLimiter) evictLoop() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now().UTC()
		for client, win := range rl.clients {
			if now.After(win.resetAt) {
				delete(rl.clients, client)
			}
		}
		rl.mu.Unlock()
	}
}

// clientIP prefers proxy headers and falls back to the socket address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}
	return r.RemoteAddr
}
