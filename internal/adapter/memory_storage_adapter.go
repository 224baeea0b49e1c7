package adapter

import (
	"context"
	"sync"
	"time"

	"interview-assistant/internal/domain"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStorageAdapter keeps records in process memory. It backs tests and
// the degraded mode used when the configured backend is unreachable.
type MemoryStorageAdapter struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStorageAdapter creates an empty in-memory storage.
func NewMemoryStorageAdapter() *MemoryStorageAdapter {
	return &MemoryStorageAdapter{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryStorageAdapter) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok || (!e.expiresAt.IsZero() && m.now().After(e.expiresAt)) {
		return "", domain.ErrStorageMiss
	}
	return e.value, nil
}

func (m *MemoryStorageAdapter) Set(_ context.Context, key string, value string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := memoryEntry{value: value}
	if expiration > 0 {
		e.expiresAt = m.now().Add(expiration)
	}
	m.entries[key] = e
	return nil
}

func (m *MemoryStorageAdapter) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MemoryStorageAdapter) Ping(context.Context) error {
	return nil
}

// Len is the number of stored records, expired ones included.
func (m *MemoryStorageAdapter) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
