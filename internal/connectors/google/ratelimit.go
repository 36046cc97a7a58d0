package google

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/gwcli/internal/core/domain"
)

// defaultBackoff applies when a 429 response carries no Retry-After.
const defaultBackoff = 30 * time.Second

// RateLimiter provides rate limiting for Google API requests.
// It uses a token bucket algorithm with optional backoff for 429 responses.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a rate limiter with the given limit.
// Non-positive values fall back to the drive defaults.
func NewRateLimiter(limit domain.RateLimit) *RateLimiter {
	if limit.RequestsPerSecond <= 0 || limit.Burst <= 0 {
		limit = domain.DefaultRateLimits()[domain.SurfaceDrive]
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(limit.RequestsPerSecond), limit.Burst),
	}
}

// NewSurfaceRateLimiter creates the limiter for surface from settings.
// A nil settings value uses the defaults.
func NewSurfaceRateLimiter(surface domain.Surface, settings *domain.AppSettings) *RateLimiter {
	limits := domain.DefaultRateLimits()
	if settings != nil {
		if limit, ok := settings.RateLimits[surface]; ok {
			return NewRateLimiter(limit)
		}
	}
	return NewRateLimiter(limits[surface])
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff period set by RecordRateLimitError.
// A nil limiter never blocks.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil {
		return ctx.Err()
	}

	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRateLimitError sets a backoff period after a 429 response.
func (r *RateLimiter) RecordRateLimitError(retryAfter time.Duration) {
	if r == nil {
		return
	}
	if retryAfter <= 0 {
		retryAfter = defaultBackoff
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.retryAt = time.Now().Add(retryAfter)
}
