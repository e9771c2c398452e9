package repository

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is an in-process Store. It is safe for concurrent use and is
// meant for local development and tests; state is lost on restart.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]int64
	sets     map[string]map[string]struct{}
	lists    map[string][]json.RawMessage
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		counters: make(map[string]int64),
		sets:     make(map[string]map[string]struct{}),
		lists:    make(map[string][]json.RawMessage),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[key], nil
}

func (s *MemoryStore) Incr(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key]++
	return s.counters[key], nil
}

func (s *MemoryStore) SAdd(ctx context.Context, key, member string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets[key]
	if !ok {
		set = make(map[string]struct{})
		s.sets[key] = set
	}
	if _, exists := set[member]; exists {
		return false, nil
	}
	set[member] = struct{}{}
	return true, nil
}

func (s *MemoryStore) LPush(ctx context.Context, key string, value json.RawMessage) error {
	entry := make(json.RawMessage, len(value))
	copy(entry, value)

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.lists[key]
	updated := make([]json.RawMessage, 0, len(list)+1)
	updated = append(updated, entry)
	s.lists[key] = append(updated, list...)
	return nil
}

func (s *MemoryStore) LRange(ctx context.Context, key string, start, stop int) ([]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.lists[key]
	offset, limit := ListWindow(start, stop, len(list))

	out := make([]json.RawMessage, 0, limit)
	for _, entry := range list[offset : offset+limit] {
		cp := make(json.RawMessage, len(entry))
		copy(cp, entry)
		out = append(out, cp)
	}
	return out, nil
}

func (s *MemoryStore) LTrim(ctx context.Context, key string, start, stop int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.lists[key]
	if !ok {
		return nil
	}
	offset, limit := ListWindow(start, stop, len(list))
	if limit == 0 {
		delete(s.lists, key)
		return nil
	}
	kept := make([]json.RawMessage, limit)
	copy(kept, list[offset:offset+limit])
	s.lists[key] = kept
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Close() error {
	return nil
}
