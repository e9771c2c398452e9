// Package storetest holds the behavioural contract every repository.Store
// implementation must satisfy. Adapters run it from their own tests.
package storetest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/blog-engagement-api/internal/repository"
)

// StoreFactory returns a fresh, empty store and an optional cleanup func
type StoreFactory func(t *testing.T) (repository.Store, func())

// Run executes the full contract against stores built by newStore
func Run(t *testing.T, newStore StoreFactory) {
	t.Helper()

	t.Run("counter", func(t *testing.T) { runCounter(t, newStore) })
	t.Run("set", func(t *testing.T) { runSet(t, newStore) })
	t.Run("list", func(t *testing.T) { runList(t, newStore) })
	t.Run("list_negative_indices", func(t *testing.T) { runListNegative(t, newStore) })
	t.Run("concurrent_primitives", func(t *testing.T) { runConcurrent(t, newStore) })
}

func open(t *testing.T, newStore StoreFactory) repository.Store {
	t.Helper()
	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}
	return store
}

func runCounter(t *testing.T, newStore StoreFactory) {
	ctx := context.Background()
	store := open(t, newStore)

	got, err := store.Get(ctx, "likes:count:missing")
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0 for missing counter, got %d", got)
	}

	for want := int64(1); want <= 3; want++ {
		n, err := store.Incr(ctx, "likes:count:a")
		if err != nil {
			t.Fatalf("Incr: %v", err)
		}
		if n != want {
			t.Fatalf("Incr returned %d, want %d", n, want)
		}
	}

	got, err = store.Get(ctx, "likes:count:a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}

	other, _ := store.Get(ctx, "likes:count:b")
	if other != 0 {
		t.Fatalf("counters must be independent per key, got %d", other)
	}
}

func runSet(t *testing.T, newStore StoreFactory) {
	ctx := context.Background()
	store := open(t, newStore)

	added, err := store.SAdd(ctx, "likes:set:a", "fp-1")
	if err != nil {
		t.Fatalf("SAdd: %v", err)
	}
	if !added {
		t.Fatal("first SAdd should report added")
	}

	added, err = store.SAdd(ctx, "likes:set:a", "fp-1")
	if err != nil {
		t.Fatalf("SAdd duplicate: %v", err)
	}
	if added {
		t.Fatal("duplicate SAdd should not report added")
	}

	added, _ = store.SAdd(ctx, "likes:set:b", "fp-1")
	if !added {
		t.Fatal("same member under another key should be added")
	}
}

func push(t *testing.T, store repository.Store, key string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		value, _ := json.Marshal(fmt.Sprintf("v%d", i))
		if err := store.LPush(context.Background(), key, value); err != nil {
			t.Fatalf("LPush: %v", err)
		}
	}
}

func decode(t *testing.T, raw []json.RawMessage) []string {
	t.Helper()
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err != nil {
			t.Fatalf("stored value %q is not a JSON string: %v", string(r), err)
		}
		out = append(out, s)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func runList(t *testing.T, newStore StoreFactory) {
	ctx := context.Background()
	store := open(t, newStore)

	empty, err := store.LRange(ctx, "comments:list:none", 0, -1)
	if err != nil {
		t.Fatalf("LRange empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(empty))
	}

	push(t, store, "comments:list:a", 5)

	all, err := store.LRange(ctx, "comments:list:a", 0, -1)
	if err != nil {
		t.Fatalf("LRange: %v", err)
	}
	if got := decode(t, all); !equal(got, []string{"v4", "v3", "v2", "v1", "v0"}) {
		t.Fatalf("expected newest first, got %v", got)
	}

	window, _ := store.LRange(ctx, "comments:list:a", 1, 2)
	if got := decode(t, window); !equal(got, []string{"v3", "v2"}) {
		t.Fatalf("unexpected window: %v", got)
	}

	beyond, _ := store.LRange(ctx, "comments:list:a", 10, 20)
	if len(beyond) != 0 {
		t.Fatalf("expected empty window past the tail, got %d", len(beyond))
	}

	if err := store.LTrim(ctx, "comments:list:a", 0, 2); err != nil {
		t.Fatalf("LTrim: %v", err)
	}
	trimmed, _ := store.LRange(ctx, "comments:list:a", 0, -1)
	if got := decode(t, trimmed); !equal(got, []string{"v4", "v3", "v2"}) {
		t.Fatalf("LTrim should keep the head, got %v", got)
	}

	// Objects are stored as-is, not coerced to strings.
	if err := store.LPush(ctx, "comments:list:obj", json.RawMessage(`{"id":"1"}`)); err != nil {
		t.Fatalf("LPush object: %v", err)
	}
	objs, _ := store.LRange(ctx, "comments:list:obj", 0, -1)
	if len(objs) != 1 {
		t.Fatalf("expected 1 object entry, got %d", len(objs))
	}
	var obj map[string]string
	if err := json.Unmarshal(objs[0], &obj); err != nil || obj["id"] != "1" {
		t.Fatalf("object entry did not round-trip: %s (%v)", string(objs[0]), err)
	}
}

func runListNegative(t *testing.T, newStore StoreFactory) {
	ctx := context.Background()
	store := open(t, newStore)
	push(t, store, "comments:list:n", 4)

	tail, err := store.LRange(ctx, "comments:list:n", -2, -1)
	if err != nil {
		t.Fatalf("LRange: %v", err)
	}
	if got := decode(t, tail); !equal(got, []string{"v1", "v0"}) {
		t.Fatalf("unexpected tail window: %v", got)
	}

	if err := store.LTrim(ctx, "comments:list:n", 1, -2); err != nil {
		t.Fatalf("LTrim: %v", err)
	}
	mid, _ := store.LRange(ctx, "comments:list:n", 0, -1)
	if got := decode(t, mid); !equal(got, []string{"v2", "v1"}) {
		t.Fatalf("unexpected list after trim: %v", got)
	}

	if err := store.LTrim(ctx, "comments:list:n", 5, 10); err != nil {
		t.Fatalf("LTrim empty window: %v", err)
	}
	gone, _ := store.LRange(ctx, "comments:list:n", 0, -1)
	if len(gone) != 0 {
		t.Fatalf("empty trim window should clear the list, got %d", len(gone))
	}
}

func runConcurrent(t *testing.T, newStore StoreFactory) {
	ctx := context.Background()
	store := open(t, newStore)

	const workers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	added := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Half the workers race on the same member.
			member := fmt.Sprintf("fp-%d", i)
			if i%2 == 0 {
				member = "shared"
			}
			ok, err := store.SAdd(ctx, "likes:set:c", member)
			if err != nil {
				t.Errorf("SAdd: %v", err)
				return
			}
			if ok {
				mu.Lock()
				added++
				mu.Unlock()
			}
			if _, err := store.Incr(ctx, "likes:count:c"); err != nil {
				t.Errorf("Incr: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if want := workers/2 + 1; added != want {
		t.Fatalf("expected %d newly added members, got %d", want, added)
	}
	n, err := store.Get(ctx, "likes:count:c")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if n != workers {
		t.Fatalf("expected counter %d, got %d", workers, n)
	}
}
