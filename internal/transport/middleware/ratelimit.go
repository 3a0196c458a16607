package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/heartmarshall/karmafeed-backend/pkg/ctxutil"
)

// RateLimiter implements per-client token bucket rate limiting. Buckets
// live in a bounded LRU so an address scan cannot grow memory without
// limit; idle buckets expire after the configured TTL.
type RateLimiter struct {
	mu      sync.Mutex
	buckets *expirable.LRU[string, *bucket]
	now     func() time.Time
}

type bucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// NewRateLimiter creates a rate limiter that tracks at most maxClients
// buckets.
func NewRateLimiter(maxClients int, ttl time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets: expirable.NewLRU[string, *bucket](maxClients, nil, ttl),
		now:     time.Now,
	}
}

// Limit returns middleware that rate-limits requests to maxPerMinute per
// client within the given scope. Scopes keep separate budgets, so a
// client can spend its like budget without starving reads.
func (rl *RateLimiter) Limit(scope string, maxPerMinute int) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ctxutil.ClientIPFromCtx(r.Context())
			if ip == "" {
				ip = clientIP(r, false)
			}

			if !rl.allow(scope+"|"+ip, maxPerMinute) {
				retryAfter := 60.0 / float64(maxPerMinute)
				w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter)+1))
				writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) allow(key string, maxPerMinute int) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets.Get(key)
	if !ok {
		b = &bucket{
			tokens:     float64(maxPerMinute),
			maxTokens:  float64(maxPerMinute),
			refillRate: float64(maxPerMinute) / 60.0,
			lastRefill: now,
		}
	}
	// Re-adding refreshes the expiry.
	rl.buckets.Add(key, b)

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * b.refillRate
	if b.tokens > b.maxTokens {
		b.tokens = b.maxTokens
	}
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Clients reports how many buckets are currently tracked.
func (rl *RateLimiter) Clients() int {
	return rl.buckets.Len()
}
