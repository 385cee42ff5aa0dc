package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStore_GetOrLoad_CachesValue(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	loads := 0

	for i := 0; i < 3; i++ {
		got, err := store.GetOrLoad(ctx, "standings:2025", func(context.Context) (any, error) {
			loads++
			return "snapshot", nil
		})
		if err != nil {
			t.Fatalf("GetOrLoad: %v", err)
		}
		if got != "snapshot" {
			t.Fatalf("unexpected value: %v", got)
		}
	}

	if loads != 1 {
		t.Fatalf("expected one load, got %d", loads)
	}
}

func TestStore_GetOrLoad_ErrorIsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	loads := 0

	_, err := store.GetOrLoad(ctx, "k", func(context.Context) (any, error) {
		loads++
		return nil, errors.New("fetch failed")
	})
	if err == nil {
		t.Fatalf("expected error")
	}

	got, err := store.GetOrLoad(ctx, "k", func(context.Context) (any, error) {
		loads++
		return 7, nil
	})
	if err != nil {
		t.Fatalf("GetOrLoad after failure: %v", err)
	}
	if got != 7 || loads != 2 {
		t.Fatalf("expected reload after failure, got=%v loads=%d", got, loads)
	}
}

func TestStore_ExpiredEntryIsReloaded(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Nanosecond)
	ctx := context.Background()

	store.Set(ctx, "k", 1)
	time.Sleep(time.Millisecond)

	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatalf("expected entry to be expired")
	}
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "k", 1)
	store.Delete(ctx, "k")
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatalf("expected entry to be deleted")
	}
}
