package ratelimitstore

import (
	"context"
	"testing"
	"time"

	"github.com/complyline/deadline-service/internal/service/ratelimit"
	"github.com/complyline/deadline-service/internal/testutil"
)

func TestRedisStoreRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	store := NewRedisStore(client)

	resetAt := time.Date(2024, 7, 10, 12, 1, 0, 0, time.UTC)
	window := ratelimit.Window{Count: 3, ResetAt: resetAt}

	if err := store.Put(ctx, "10.0.0.1", window, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected a window, got nil")
	}
	if got.Count != 3 {
		t.Errorf("count = %d, want 3", got.Count)
	}
	if !got.ResetAt.Equal(resetAt) {
		t.Errorf("reset_at = %v, want %v", got.ResetAt, resetAt)
	}
}

func TestRedisStoreMissingKey(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	store := NewRedisStore(client)

	got, err := store.Get(ctx, "never-seen")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil window for missing key, got %+v", got)
	}
}

func TestRedisStoreReset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	store := NewRedisStore(client)

	window := ratelimit.Window{Count: 1, ResetAt: time.Now().Add(time.Minute)}
	if err := store.Put(ctx, "10.0.0.2", window, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Reset(ctx, "10.0.0.2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(ctx, "10.0.0.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected window cleared after reset, got %+v", got)
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	store := NewRedisStore(client)

	window := ratelimit.Window{Count: 5, ResetAt: time.Now().Add(time.Second)}
	if err := store.Put(ctx, "10.0.0.3", window, time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(1500 * time.Millisecond)

	got, err := store.Get(ctx, "10.0.0.3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected window expired with its TTL, got %+v", got)
	}
}
