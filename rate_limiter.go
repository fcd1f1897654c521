// rate_limiter.go
// ----------------
// RateLimiter keeps the rate limit state the API reports in X-Ratelimit-*
// headers, keyed by base URL, and optionally paces outgoing calls. It never
// retries: at most it delays the single request a dispatch makes.
package falconbridge

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/opengovern/falcon-bridge/internal"
)

type RateLimiter struct {
	mu          sync.Mutex
	limits      map[string]*NormalizedRateLimitInfo
	pacer       *rate.Limiter
	honorLimits bool
}

// NewRateLimiter returns a limiter. A positive requestsPerSecond paces calls
// client side; honorLimits delays a call until the reported reset time when
// the API says no requests remain.
func NewRateLimiter(requestsPerSecond float64, honorLimits bool) *RateLimiter {
	r := &RateLimiter{
		limits:      make(map[string]*NormalizedRateLimitInfo),
		honorLimits: honorLimits,
	}
	if requestsPerSecond > 0 {
		burst := int(requestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		r.pacer = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
	return r
}

// Wait blocks until a call to key may be sent or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context, key string) error {
	if r == nil {
		return nil
	}
	if r.pacer != nil {
		if err := r.pacer.Wait(ctx); err != nil {
			return err
		}
	}
	if !r.honorLimits {
		return nil
	}
	delay := r.delayBeforeNextRequest(key)
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Record stores the rate limit headers of a response, if it carried any.
func (r *RateLimiter) Record(key string, headers map[string]string) {
	if r == nil {
		return
	}
	info := ParseRateLimitHeaders(headers)
	if info == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.limits[key] = info
}

// GetRateLimitInfo returns a copy of the last state recorded for key.
func (r *RateLimiter) GetRateLimitInfo(key string) *NormalizedRateLimitInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	if info, ok := r.limits[key]; ok {
		copyInfo := *info
		return &copyInfo
	}
	return nil
}

func (r *RateLimiter) delayBeforeNextRequest(key string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, ok := r.limits[key]
	if !ok || info == nil {
		return 0
	}
	if info.RemainingRequests != nil && *info.RemainingRequests <= 0 && info.ResetRequestsAt != nil {
		if internal.IsInFuture(*info.ResetRequestsAt) {
			return time.Duration(*info.ResetRequestsAt-time.Now().UnixMilli()) * time.Millisecond
		}
	}
	return 0
}

// ParseRateLimitHeaders reads X-Ratelimit-Limit, X-Ratelimit-Remaining and
// X-Ratelimit-Retryafter. It returns nil when none are present.
func ParseRateLimitHeaders(headers map[string]string) *NormalizedRateLimitInfo {
	info := &NormalizedRateLimitInfo{}
	found := false
	if v, ok := headers["X-Ratelimit-Limit"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			info.MaxRequests = &n
			found = true
		}
	}
	if v, ok := headers["X-Ratelimit-Remaining"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			info.RemainingRequests = &n
			found = true
		}
	}
	if v, ok := headers["X-Ratelimit-Retryafter"]; ok {
		if ms := internal.ParseResetAt(v); ms > 0 {
			info.ResetRequestsAt = &ms
			found = true
		}
	}
	if !found {
		return nil
	}
	return info
}
