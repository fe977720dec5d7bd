package http

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter throttles outgoing requests with a token bucket. It is safe for
// concurrent use.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter allows ratePerSecond sustained requests with bursts of up to
// burst requests. A burst below one is raised to one.
func NewRateLimiter(ratePerSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}

	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

// Wait blocks until a request is allowed or the context is canceled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}

// Allow reports whether a request may be sent now, consuming a token if so.
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}
