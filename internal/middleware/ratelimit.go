package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lumenfide/lumen/internal/cache"
	"github.com/lumenfide/lumen/internal/httputil"
)

// Limiter decides whether one more request from key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Limit() int
}

// RateLimiter tracks request counts per IP address in memory
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int           // Max requests allowed
	window   time.Duration // Time window for rate limiting
	now      func() time.Time
}

// NewRateLimiter creates a new in-memory rate limiter. Stop the cleanup loop by cancelling ctx.
func NewRateLimiter(ctx context.Context, limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}

	// Start cleanup goroutine to prevent memory leak
	go rl.cleanupLoop(ctx)

	return rl
}

func (rl *RateLimiter) Limit() int {
	return rl.limit
}

// Allow checks if request from key should be allowed
func (rl *RateLimiter) Allow(_ context.Context, key string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.window)

	// Remove old requests outside time window
	valid := rl.requests[key][:0]
	for _, reqTime := range rl.requests[key] {
		if reqTime.After(cutoff) {
			valid = append(valid, reqTime)
		}
	}

	// Check if limit exceeded
	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return false, nil
	}

	rl.requests[key] = append(valid, now)
	return true, nil
}

// cleanupLoop periodically removes old entries to prevent memory leak
func (rl *RateLimiter) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

// cleanup removes keys with no recent requests
func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.window)
	for key, requests := range rl.requests {
		if len(requests) == 0 || !requests[len(requests)-1].After(cutoff) {
			delete(rl.requests, key)
		}
	}
}

// StoreLimiter counts requests in a shared cache so limits hold across instances.
type StoreLimiter struct {
	store  cache.Store
	limit  int
	window time.Duration
}

func NewStoreLimiter(store cache.Store, limit int, window time.Duration) *StoreLimiter {
	return &StoreLimiter{store: store, limit: limit, window: window}
}

func (l *StoreLimiter) Limit() int {
	return l.limit
}

func (l *StoreLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.store.Increment(ctx, "rate_limit:"+key, l.window)
	if err != nil {
		return true, err
	}
	return count <= int64(l.limit), nil
}

// RateLimit limits requests per client IP. Limiter errors let the request through.
func RateLimit(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Get real IP (handle proxies)
			ip := getClientIP(r)

			allowed, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				slog.Warn("rate limiter unavailable", "error", err, "ip", ip)
			}

			if !allowed {
				slog.Warn("rate limit exceeded",
					"ip", ip,
					"path", r.URL.Path,
				)
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
				httputil.RespondError(w, http.StatusTooManyRequests, "too many requests, please try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts real client IP from request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (proxy/load balancer)
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		// Take first IP in list
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	// Check X-Real-IP header
	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fallback to RemoteAddr
	ip := r.RemoteAddr
	// Remove port if present
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}

	return ip
}
