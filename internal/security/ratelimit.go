package security

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrRateLimited is returned when a request exceeds the rate limit.
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimitConfig holds configurable rate limits. Zero values fall back
// to defaults; a negative value disables the bucket.
type RateLimitConfig struct {
	ToolCallsPerMin int `yaml:"tool_calls_per_min"`
	SessionsPerMin  int `yaml:"sessions_per_min"`
}

func rateLimitDefaults() RateLimitConfig {
	return RateLimitConfig{
		ToolCallsPerMin: 600,
		SessionsPerMin:  30,
	}
}

// RateLimiter implements sliding window rate limiting using stdlib only.
// Each bucket tracks timestamps of recent events within its window.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

type bucket struct {
	window time.Duration
	limit  int
	events []time.Time
}

// Bucket names accepted by Allow.
const (
	BucketToolCall = "tool_call"
	BucketSession  = "session"
)

// NewRateLimiter creates a rate limiter with the given config.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	defaults := rateLimitDefaults()
	if cfg.ToolCallsPerMin == 0 {
		cfg.ToolCallsPerMin = defaults.ToolCallsPerMin
	}
	if cfg.SessionsPerMin == 0 {
		cfg.SessionsPerMin = defaults.SessionsPerMin
	}

	buckets := make(map[string]*bucket)
	if cfg.ToolCallsPerMin > 0 {
		buckets[BucketToolCall] = &bucket{window: time.Minute, limit: cfg.ToolCallsPerMin}
	}
	if cfg.SessionsPerMin > 0 {
		buckets[BucketSession] = &bucket{window: time.Minute, limit: cfg.SessionsPerMin}
	}

	return &RateLimiter{
		buckets: buckets,
		now:     time.Now,
	}
}

// Allow records one event in the named bucket, or returns ErrRateLimited
// when the window is full. Unknown buckets always allow.
func (rl *RateLimiter) Allow(name string) error {
	if rl == nil {
		return nil
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[name]
	if !ok {
		return nil
	}

	now := rl.now()
	cutoff := now.Add(-b.window)

	// Drop events outside the window.
	kept := b.events[:0]
	for _, ts := range b.events {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	b.events = kept

	if len(b.events) >= b.limit {
		return fmt.Errorf("%w: %s (%d per %s)", ErrRateLimited, name, b.limit, b.window)
	}

	b.events = append(b.events, now)
	return nil
}
