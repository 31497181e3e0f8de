package cache

import (
	"context"
	"sync"
	"time"

	"github.com/dshills/qfscore/internal/trust"
)

type memoryEntry struct {
	result    trust.Result
	expiresAt time.Time
}

// Memory is an in-process ResultCache.
type Memory struct {
	mu    sync.Mutex
	items map[string]memoryEntry
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		items: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) (trust.Result, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[key]
	if !ok {
		return trust.Result{}, false, nil
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		delete(m.items, key)
		return trust.Result{}, false, nil
	}
	return e.result, true, nil
}

// Set stores r. A non-positive ttl keeps the entry until overwritten.
func (m *Memory) Set(_ context.Context, key string, r trust.Result, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := memoryEntry{result: r}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.items[key] = e
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
