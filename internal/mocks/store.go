package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/blog-engagement-api/internal/repository"
)

// MockStore is a repository.Store backed by a MemoryStore with injectable
// failures and per-operation call counters.
type MockStore struct {
	*repository.MemoryStore

	// Err fails every data operation when set
	Err error
	// FailOn fails a single operation by name ("get", "incr", "sadd",
	// "lpush", "lrange", "ltrim")
	FailOn  map[string]error
	PingErr error

	mu    sync.Mutex
	calls map[string]int
}

func NewMockStore() *MockStore {
	return &MockStore{
		MemoryStore: repository.NewMemoryStore(),
		FailOn:      make(map[string]error),
		calls:       make(map[string]int),
	}
}

// Calls returns how many times op was invoked
func (m *MockStore) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// TotalCalls returns the number of data operations invoked
func (m *MockStore) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

func (m *MockStore) record(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[op]++
	if err, ok := m.FailOn[op]; ok && err != nil {
		return err
	}
	return m.Err
}

func (m *MockStore) Get(ctx context.Context, key string) (int64, error) {
	if err := m.record("get"); err != nil {
		return 0, err
	}
	return m.MemoryStore.Get(ctx, key)
}

func (m *MockStore) Incr(ctx context.Context, key string) (int64, error) {
	if err := m.record("incr"); err != nil {
		return 0, err
	}
	return m.MemoryStore.Incr(ctx, key)
}

func (m *MockStore) SAdd(ctx context.Context, key, member string) (bool, error) {
	if err := m.record("sadd"); err != nil {
		return false, err
	}
	return m.MemoryStore.SAdd(ctx, key, member)
}

func (m *MockStore) LPush(ctx context.Context, key string, value json.RawMessage) error {
	if err := m.record("lpush"); err != nil {
		return err
	}
	return m.MemoryStore.LPush(ctx, key, value)
}

func (m *MockStore) LRange(ctx context.Context, key string, start, stop int) ([]json.RawMessage, error) {
	if err := m.record("lrange"); err != nil {
		return nil, err
	}
	return m.MemoryStore.LRange(ctx, key, start, stop)
}

func (m *MockStore) LTrim(ctx context.Context, key string, start, stop int) error {
	if err := m.record("ltrim"); err != nil {
		return err
	}
	return m.MemoryStore.LTrim(ctx, key, start, stop)
}

func (m *MockStore) Ping(ctx context.Context) error {
	if m.PingErr != nil {
		return m.PingErr
	}
	return m.MemoryStore.Ping(ctx)
}

var _ repository.Store = (*MockStore)(nil)
