package session

import (
	"context"
	"sync"

	"interview-assistant/internal/domain"
	"interview-assistant/internal/util"

	"go.uber.org/zap"
)

// Manager hosts the live sessions of the process. Stores are created on
// demand and restored lazily from storage.
type Manager struct {
	storage domain.SessionStorage
	opts    Options
	newID   func() string
	log     *zap.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager creates a manager over storage.
func NewManager(storage domain.SessionStorage, opts Options) *Manager {
	opts = opts.withDefaults()
	return &Manager{
		storage: storage,
		opts:    opts,
		newID:   util.NewULID,
		log:     opts.Logger,
		stores:  make(map[string]*Store),
	}
}

// Create starts a new empty session.
func (m *Manager) Create(ctx context.Context) *Store {
	st := NewStore(m.newID(), m.storage, m.opts)
	m.mu.Lock()
	m.stores[st.ID()] = st
	m.mu.Unlock()

	// Persist right away so the session survives a restart before its
	// first edit.
	if err := st.Persist(ctx); err != nil {
		m.log.Warn("New session not persisted", zap.String("session_id", st.ID()), zap.Error(err))
	}
	return st
}

// Get returns the live store for id, restoring it from storage if needed.
// A session with no persisted record is not found. Unreadable storage yields
// a fresh degraded store so the interviewer can keep working.
func (m *Manager) Get(ctx context.Context, id string) (*Store, RestoreResult, error) {
	m.mu.Lock()
	if st, ok := m.stores[id]; ok {
		m.mu.Unlock()
		return st, RestoreResult{Outcome: RestoreLoaded}, nil
	}
	m.mu.Unlock()

	st := NewStore(id, m.storage, m.opts)
	res := st.Restore(ctx)
	if res.Outcome == RestoreAbsent {
		st.Close()
		return nil, res, domain.NewSessionNotFoundError(id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.stores[id]; ok {
		// Lost a race with a concurrent Get.
		st.Close()
		return existing, RestoreResult{Outcome: RestoreLoaded}, nil
	}
	m.stores[id] = st
	m.log.Debug("Session restored", zap.String("session_id", id), zap.String("outcome", string(res.Outcome)))
	return st, res, nil
}

// Clear resets a session and removes its persisted record. The live store
// stays registered so the id keeps working.
func (m *Manager) Clear(ctx context.Context, id string) error {
	st, _, err := m.Get(ctx, id)
	if err != nil {
		return err
	}
	st.Clear(ctx)
	return nil
}

// Len is the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stores)
}

// Ping checks the storage backend.
func (m *Manager) Ping(ctx context.Context) error {
	return m.storage.Ping(ctx)
}

// Degraded reports whether storage is a fallback or any live session failed
// its last storage call.
func (m *Manager) Degraded() bool {
	if m.opts.Fallback != "" {
		return true
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, st := range m.stores {
		if st.Status().Health == HealthDegraded {
			return true
		}
	}
	return false
}

// Close flushes pending writes of every session and stops their timers.
func (m *Manager) Close() {
	m.mu.Lock()
	stores := make([]*Store, 0, len(m.stores))
	for _, st := range m.stores {
		stores = append(stores, st)
	}
	m.stores = make(map[string]*Store)
	m.mu.Unlock()

	for _, st := range stores {
		st.Flush()
		st.Close()
	}
	m.log.Info("Session manager closed", zap.Int("sessions", len(stores)))
}
