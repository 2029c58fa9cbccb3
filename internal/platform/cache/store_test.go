package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_SharesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore[[]string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) ([]string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return []string{"Spoho Mensa", "BluePIT Lövenich"}, nil
	}

	const workers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "location:site:Köln", loader)
			if err != nil {
				errCh <- err
				return
			}
			if len(v) != 2 {
				errCh <- fmt.Errorf("unexpected loaded value %v", v)
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "", errors.New("db down")
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err == nil {
		t.Fatalf("expected first load to fail")
	}
	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if v != "ok" {
		t.Fatalf("unexpected value %v", v)
	}
}

func TestStore_ExpiresEntries(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "draft:p-1", "value")
	if _, ok := store.Get(context.Background(), "draft:p-1"); !ok {
		t.Fatalf("expected entry before expiry")
	}

	now = now.Add(time.Minute)
	if _, ok := store.Get(context.Background(), "draft:p-1"); ok {
		t.Fatalf("expected entry to expire after ttl")
	}
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	store := NewStore[int](0)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", 1)
	now = now.Add(24 * time.Hour)
	if v, ok := store.Get(context.Background(), "k"); !ok || v != 1 {
		t.Fatalf("expected entry without ttl to survive, got %v %v", v, ok)
	}
}

func TestStore_SweepsExpiredEntries(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < sweepInterval-1; i++ {
		store.Set(ctx, fmt.Sprintf("old:%d", i), i)
	}
	now = now.Add(2 * time.Minute)
	store.Set(ctx, "fresh", 1)

	if got := store.Len(); got != 1 {
		t.Fatalf("expected only the fresh entry after sweep, got %d", got)
	}
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	store := NewStore[int](0)
	ctx := context.Background()
	store.Set(ctx, "draft:p-1", 1)
	store.Delete(ctx, "draft:p-1")

	if _, ok := store.Get(ctx, "draft:p-1"); ok {
		t.Fatalf("expected entry to be removed")
	}
}
