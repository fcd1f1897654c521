package falconbridge

import (
	"context"
	"strconv"
	"testing"
	"time"
)

func TestParseRateLimitHeaders(t *testing.T) {
	reset := time.Now().Add(time.Minute).Unix()
	info := ParseRateLimitHeaders(map[string]string{
		"X-Ratelimit-Limit":      "6000",
		"X-Ratelimit-Remaining":  "5999",
		"X-Ratelimit-Retryafter": strconv.FormatInt(reset, 10),
	})
	if info == nil {
		t.Fatal("ParseRateLimitHeaders() = nil")
	}
	if *info.MaxRequests != 6000 || *info.RemainingRequests != 5999 {
		t.Errorf("limits = %d, %d", *info.MaxRequests, *info.RemainingRequests)
	}
	if *info.ResetRequestsAt != reset*1000 {
		t.Errorf("ResetRequestsAt = %d, want %d", *info.ResetRequestsAt, reset*1000)
	}

	if got := ParseRateLimitHeaders(map[string]string{"Content-Type": "application/json"}); got != nil {
		t.Errorf("ParseRateLimitHeaders(no limits) = %+v, want nil", got)
	}
}

func TestRateLimiterRecord(t *testing.T) {
	r := NewRateLimiter(0, false)
	r.Record("api.test", map[string]string{"X-Ratelimit-Remaining": "10"})

	info := r.GetRateLimitInfo("api.test")
	if info == nil || *info.RemainingRequests != 10 {
		t.Fatalf("GetRateLimitInfo() = %+v", info)
	}
	if r.GetRateLimitInfo("other.test") != nil {
		t.Error("GetRateLimitInfo(other) != nil")
	}

	// a response without limit headers keeps the previous state
	r.Record("api.test", map[string]string{})
	if info := r.GetRateLimitInfo("api.test"); info == nil {
		t.Error("state dropped by a response without headers")
	}
}

func TestRateLimiterHonorLimits(t *testing.T) {
	reset := strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10)
	headers := map[string]string{"X-Ratelimit-Remaining": "0", "X-Ratelimit-Retryafter": reset}

	// Without honorLimits the reported state never delays a call.
	passive := NewRateLimiter(0, false)
	passive.Record("api.test", headers)
	if err := passive.Wait(context.Background(), "api.test"); err != nil {
		t.Errorf("Wait() error = %v", err)
	}

	active := NewRateLimiter(0, true)
	active.Record("api.test", headers)
	if d := active.delayBeforeNextRequest("api.test"); d <= 0 {
		t.Errorf("delayBeforeNextRequest() = %v, want > 0", d)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := active.Wait(ctx, "api.test"); err == nil {
		t.Error("Wait() error = nil, want deadline exceeded")
	}
}

func TestRateLimiterNil(t *testing.T) {
	var r *RateLimiter
	if err := r.Wait(context.Background(), "x"); err != nil {
		t.Errorf("nil Wait() error = %v", err)
	}
	r.Record("x", map[string]string{"X-Ratelimit-Limit": "1"})
}

func TestRateLimiterPacing(t *testing.T) {
	r := NewRateLimiter(50, false)
	start := time.Now()
	for i := 0; i < 52; i++ {
		if err := r.Wait(context.Background(), "api.test"); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("52 calls at 50/s took %v", elapsed)
	}
}
