package routes

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestRateLimiterAllowsBurstThenThrottles(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	limiter := rl.limiterFor("10.0.0.1")
	if !limiter.Allow() || !limiter.Allow() {
		t.Fatal("burst requests must be allowed")
	}
	if limiter.Allow() {
		t.Fatal("request beyond the burst must be throttled")
	}
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	stale := time.Now().Add(-2 * limiterIdleTTL)
	rl.limiters["10.0.0.1"] = &clientLimiter{
		limiter:  rate.NewLimiter(rl.rps, rl.burst),
		lastSeen: stale,
	}
	rl.limiters["10.0.0.2"] = &clientLimiter{
		limiter:  rate.NewLimiter(rl.rps, rl.burst),
		lastSeen: time.Now(),
	}
	rl.lastSweep = stale

	rl.limiterFor("10.0.0.3")

	if _, ok := rl.limiters["10.0.0.1"]; ok {
		t.Fatal("idle client must be evicted on sweep")
	}
	if _, ok := rl.limiters["10.0.0.2"]; !ok {
		t.Fatal("active client must survive the sweep")
	}
	if _, ok := rl.limiters["10.0.0.3"]; !ok {
		t.Fatal("new client must be tracked")
	}
}

func TestRateLimiterRefreshesLastSeen(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	before := time.Now().Add(-limiterIdleTTL / 2)
	rl.limiters["10.0.0.1"] = &clientLimiter{
		limiter:  rate.NewLimiter(rl.rps, rl.burst),
		lastSeen: before,
	}

	rl.limiterFor("10.0.0.1")

	if !rl.limiters["10.0.0.1"].lastSeen.After(before) {
		t.Fatal("a request must refresh the client's lastSeen")
	}
}
