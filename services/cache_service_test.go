package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCacheKeyDeterministic(t *testing.T) {
	f1 := map[string]string{"resource": "comments", "tweetId": "T123"}
	f2 := map[string]string{"tweetId": "T123", "resource": "comments"}
	if CacheKey(f1) != CacheKey(f2) {
		t.Fatal("logically equal filters must map to the same cache key")
	}

	f3 := map[string]string{"resource": "comments", "tweetId": "T124"}
	if CacheKey(f1) == CacheKey(f3) {
		t.Fatal("different filters must not collide")
	}

	// A struct and a map describing the same filter hash identically.
	type filter struct {
		Resource string `json:"resource"`
		TweetID  string `json:"tweetId"`
	}
	if CacheKey(filter{Resource: "comments", TweetID: "T123"}) != CacheKey(f1) {
		t.Fatal("struct and map forms of the same filter must map to the same key")
	}
}

func TestCacheAsideColdAndWarm(t *testing.T) {
	cache := &CacheService{Backend: NewMemoryCache()}
	filter := map[string]string{"resource": "comments", "tweetId": "T1"}

	calls := 0
	loader := func(ctx context.Context) (interface{}, error) {
		calls++
		return []string{"first", "second"}, nil
	}

	var got []string
	if err := cache.Fetch(context.Background(), filter, time.Minute, &got, loader); err != nil {
		t.Fatalf("cold fetch failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("cold cache must call loader exactly once, got %d", calls)
	}
	if len(got) != 2 || got[0] != "first" {
		t.Fatalf("unexpected loaded value: %v", got)
	}

	var warm []string
	if err := cache.Fetch(context.Background(), filter, time.Minute, &warm, loader); err != nil {
		t.Fatalf("warm fetch failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("warm cache must not call loader, calls=%d", calls)
	}
	if len(warm) != 2 || warm[1] != "second" {
		t.Fatalf("unexpected cached value: %v", warm)
	}
}

func TestCacheAsideTTLExpiry(t *testing.T) {
	cache := &CacheService{Backend: NewMemoryCache()}
	filter := map[string]string{"resource": "search", "term": "go"}

	calls := 0
	loader := func(ctx context.Context) (interface{}, error) {
		calls++
		return "result", nil
	}

	var got string
	if err := cache.Fetch(context.Background(), filter, 20*time.Millisecond, &got, loader); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if err := cache.Fetch(context.Background(), filter, 20*time.Millisecond, &got, loader); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("entry should still be live, calls=%d", calls)
	}

	time.Sleep(30 * time.Millisecond)
	if err := cache.Fetch(context.Background(), filter, 20*time.Millisecond, &got, loader); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expired entry must miss and reload, calls=%d", calls)
	}
}

func TestCacheInvalidate(t *testing.T) {
	cache := &CacheService{Backend: NewMemoryCache()}
	filter := map[string]string{"resource": "notifications", "recipientId": "u1"}

	calls := 0
	loader := func(ctx context.Context) (interface{}, error) {
		calls++
		return calls, nil
	}

	var got int
	_ = cache.Fetch(context.Background(), filter, time.Minute, &got, loader)
	cache.Invalidate(context.Background(), filter)
	_ = cache.Fetch(context.Background(), filter, time.Minute, &got, loader)

	if calls != 2 {
		t.Fatalf("invalidate must force a reload, calls=%d", calls)
	}
	if got != 2 {
		t.Fatalf("expected reloaded value 2, got %d", got)
	}
}

type brokenBackend struct{}

func (brokenBackend) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}
func (brokenBackend) SetEx(context.Context, string, time.Duration, []byte) error {
	return errors.New("connection refused")
}
func (brokenBackend) Delete(context.Context, string) error {
	return errors.New("connection refused")
}

func TestCacheOutageDegradesToLoader(t *testing.T) {
	cache := &CacheService{Backend: brokenBackend{}}

	calls := 0
	loader := func(ctx context.Context) (interface{}, error) {
		calls++
		return "live", nil
	}

	var got string
	for i := 0; i < 3; i++ {
		if err := cache.Fetch(context.Background(), map[string]string{"k": "v"}, time.Minute, &got, loader); err != nil {
			t.Fatalf("cache outage must not surface errors: %v", err)
		}
	}
	if got != "live" || calls != 3 {
		t.Fatalf("every read must fall back to the store, got=%q calls=%d", got, calls)
	}
}

func TestCacheLoaderErrorPropagates(t *testing.T) {
	cache := &CacheService{Backend: NewMemoryCache()}

	wantErr := errors.New("store down")
	var got string
	err := cache.Fetch(context.Background(), map[string]string{"k": "v"}, time.Minute, &got,
		func(ctx context.Context) (interface{}, error) { return nil, wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("loader errors must propagate, got %v", err)
	}
}
