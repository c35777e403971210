package security

import (
	"errors"
	"testing"
	"time"
)

func newTestLimiter(cfg RateLimitConfig) (*RateLimiter, *time.Time) {
	rl := NewRateLimiter(cfg)
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return current }
	return rl, &current
}

func TestRateLimiterEnforcesWindow(t *testing.T) {
	t.Parallel()

	rl, _ := newTestLimiter(RateLimitConfig{ToolCallsPerMin: 3})

	for i := 0; i < 3; i++ {
		if err := rl.Allow(BucketToolCall); err != nil {
			t.Fatalf("call %d rejected: %v", i, err)
		}
	}
	if err := rl.Allow(BucketToolCall); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestRateLimiterSlidingWindow(t *testing.T) {
	t.Parallel()

	rl, now := newTestLimiter(RateLimitConfig{ToolCallsPerMin: 2})

	if err := rl.Allow(BucketToolCall); err != nil {
		t.Fatalf("first call rejected: %v", err)
	}
	if err := rl.Allow(BucketToolCall); err != nil {
		t.Fatalf("second call rejected: %v", err)
	}
	if err := rl.Allow(BucketToolCall); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	// After the window slides past the first event, a slot opens.
	*now = now.Add(61 * time.Second)
	if err := rl.Allow(BucketToolCall); err != nil {
		t.Fatalf("call after window rejected: %v", err)
	}
}

func TestRateLimiterBucketsAreIndependent(t *testing.T) {
	t.Parallel()

	rl, _ := newTestLimiter(RateLimitConfig{ToolCallsPerMin: 1, SessionsPerMin: 1})

	if err := rl.Allow(BucketToolCall); err != nil {
		t.Fatalf("tool call rejected: %v", err)
	}
	if err := rl.Allow(BucketToolCall); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected tool bucket exhausted, got %v", err)
	}
	if err := rl.Allow(BucketSession); err != nil {
		t.Fatalf("session bucket should be untouched: %v", err)
	}
}

func TestRateLimiterDisabledBucket(t *testing.T) {
	t.Parallel()

	rl, _ := newTestLimiter(RateLimitConfig{ToolCallsPerMin: -1, SessionsPerMin: 1})

	for i := 0; i < 100; i++ {
		if err := rl.Allow(BucketToolCall); err != nil {
			t.Fatalf("disabled bucket rejected call %d: %v", i, err)
		}
	}
}

func TestRateLimiterUnknownBucketAllows(t *testing.T) {
	t.Parallel()

	rl, _ := newTestLimiter(RateLimitConfig{})
	if err := rl.Allow("no_such_bucket"); err != nil {
		t.Fatalf("unknown bucket should allow: %v", err)
	}
}

func TestRateLimiterNilSafe(t *testing.T) {
	t.Parallel()

	var rl *RateLimiter
	if err := rl.Allow(BucketToolCall); err != nil {
		t.Fatalf("nil limiter should allow: %v", err)
	}
}
