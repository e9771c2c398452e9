package repository_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/blog-engagement-api/internal/repository"
	"github.com/blog-engagement-api/internal/repository/storetest"
)

func TestContract_MemoryStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) (repository.Store, func()) {
		t.Helper()
		return repository.NewMemoryStore(), nil
	})
}

func TestMemoryStore_LRangeReturnsCopies(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()

	value := json.RawMessage(`"original"`)
	if err := store.LPush(ctx, "k", value); err != nil {
		t.Fatalf("LPush failed: %v", err)
	}
	value[1] = 'X'

	got, _ := store.LRange(ctx, "k", 0, -1)
	got[0][1] = 'Y'

	again, _ := store.LRange(ctx, "k", 0, -1)
	if string(again[0]) != `"original"` {
		t.Errorf("Expected stored value to be isolated, got %s", again[0])
	}
}

func TestMemoryStore_PingHonoursContext(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Ping(ctx); err == nil {
		t.Error("Expected error from cancelled context")
	}
}
