package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLimiterDeniesOverBudget(t *testing.T) {
	ctx := context.Background()
	limiter := NewLimiter(NewMemoryStore(), 5, time.Minute)
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if !limiter.Allow(ctx, "10.0.0.1", now) {
			t.Fatalf("call %d unexpectedly denied", i+1)
		}
	}

	if limiter.Allow(ctx, "10.0.0.1", now) {
		t.Error("6th call within window should be denied")
	}
}

func TestLimiterResetsAfterWindow(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	limiter := NewLimiter(store, 5, time.Minute)
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 6; i++ {
		limiter.Allow(ctx, "10.0.0.1", now)
	}

	later := now.Add(time.Minute + time.Second)
	if !limiter.Allow(ctx, "10.0.0.1", later) {
		t.Fatal("call after window elapsed should be allowed")
	}

	window, err := store.Get(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window == nil || window.Count != 1 {
		t.Errorf("expected counter reset to 1, got %+v", window)
	}
	if want := later.Add(time.Minute); !window.ResetAt.Equal(want) {
		t.Errorf("expected reset time %v, got %v", want, window.ResetAt)
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	limiter := NewLimiter(NewMemoryStore(), 1, time.Minute)
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	if !limiter.Allow(ctx, "caller-a", now) {
		t.Fatal("first call for caller-a should be allowed")
	}
	if limiter.Allow(ctx, "caller-a", now) {
		t.Error("second call for caller-a should be denied")
	}
	if !limiter.Allow(ctx, "caller-b", now) {
		t.Error("caller-b should have its own budget")
	}
}

func TestLimiterZeroBudgetDisablesLimiting(t *testing.T) {
	ctx := context.Background()
	limiter := NewLimiter(NewMemoryStore(), 0, time.Minute)
	now := time.Now()

	for i := 0; i < 100; i++ {
		if !limiter.Allow(ctx, "anyone", now) {
			t.Fatal("limiter with no budget configured must allow everything")
		}
	}
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (*Window, error) {
	return nil, errors.New("store unavailable")
}

func (failingStore) Put(context.Context, string, Window, time.Duration) error {
	return errors.New("store unavailable")
}

func (failingStore) Reset(context.Context, string) error {
	return errors.New("store unavailable")
}

func TestLimiterFailsOpenOnStoreErrors(t *testing.T) {
	limiter := NewLimiter(failingStore{}, 1, time.Minute)

	for i := 0; i < 3; i++ {
		if !limiter.Allow(context.Background(), "10.0.0.1", time.Now()) {
			t.Fatal("limiter must allow when the store is unreachable")
		}
	}
}
