package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "github.com/allisson/soulbound/internal/errors"
	"github.com/allisson/soulbound/internal/httputil"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTimeout     = time.Hour
)

// limiterStore holds keyed token bucket limiters. Idle limiters are evicted lazily while
// serving requests, so no background goroutine outlives the router.
type limiterStore struct {
	limiters    sync.Map // map[string]*limiterEntry
	rps         float64
	burst       int
	mu          sync.Mutex
	lastCleanup time.Time
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

func newLimiterStore(rps float64, burst int) *limiterStore {
	return &limiterStore{rps: rps, burst: burst, lastCleanup: time.Now()}
}

func (s *limiterStore) getLimiter(key string) *rate.Limiter {
	now := time.Now()
	s.maybeCleanup(now)

	if val, ok := s.limiters.Load(key); ok {
		entry := val.(*limiterEntry)
		entry.mu.Lock()
		entry.lastAccess = now
		entry.mu.Unlock()
		return entry.limiter
	}

	entry := &limiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: now,
	}
	actual, _ := s.limiters.LoadOrStore(key, entry)
	return actual.(*limiterEntry).limiter
}

func (s *limiterStore) maybeCleanup(now time.Time) {
	s.mu.Lock()
	if now.Sub(s.lastCleanup) < limiterCleanupInterval {
		s.mu.Unlock()
		return
	}
	s.lastCleanup = now
	s.mu.Unlock()

	threshold := now.Add(-limiterIdleTimeout)
	s.limiters.Range(func(key, value interface{}) bool {
		entry := value.(*limiterEntry)
		entry.mu.Lock()
		stale := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()
		if stale {
			s.limiters.Delete(key)
		}
		return true
	})
}

// allow reports whether the request keyed by key may proceed. When it may not, the 429
// response has already been written.
func (s *limiterStore) allow(c *gin.Context, key, message string, logger *slog.Logger) bool {
	limiter := s.getLimiter(key)
	if limiter.Allow() {
		return true
	}

	reservation := limiter.Reserve()
	retryAfter := int(reservation.Delay().Seconds())
	reservation.Cancel()
	if retryAfter < 1 {
		retryAfter = 1
	}

	logger.Debug("rate limit exceeded", slog.String("key", key), slog.Int("retry_after", retryAfter))

	c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error":   "rate_limit_exceeded",
		"message": message,
	})
	c.Abort()
	return false
}

// RateLimitMiddleware enforces per-caller rate limiting on authenticated requests.
//
// MUST be used after AuthenticationMiddleware. Each caller identity gets an independent
// token bucket (golang.org/x/time/rate) with the given rate and burst. Exceeding it yields
// 429 Too Many Requests with a Retry-After header.
func RateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newLimiterStore(rps, burst)

	return func(c *gin.Context) {
		caller, ok := GetCaller(c.Request.Context())
		if !ok {
			logger.Error("rate limit middleware: no authenticated caller in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !store.allow(c, caller.Identity, "Too many requests. Please retry after the specified delay.", logger) {
			return
		}
		c.Next()
	}
}

// IPRateLimitMiddleware enforces per-IP rate limiting. It guards the self-service claim
// endpoint, where a single client may hold many identities.
//
// Uses c.ClientIP(), which honors X-Forwarded-For and X-Real-IP when the engine trusts
// the proxy.
func IPRateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newLimiterStore(rps, burst)

	return func(c *gin.Context) {
		if !store.allow(c, c.ClientIP(), "Too many requests from this IP. Please retry after the specified delay.", logger) {
			return
		}
		c.Next()
	}
}
