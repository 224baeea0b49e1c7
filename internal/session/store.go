package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"interview-assistant/internal/cache"
	"interview-assistant/internal/domain"

	"go.uber.org/zap"
)

// Health of a store's persistence path.
type Health string

const (
	HealthOK       Health = "ok"
	HealthDegraded Health = "degraded"
)

// RestoreOutcome describes what Restore found in storage.
type RestoreOutcome string

const (
	RestoreLoaded      RestoreOutcome = "loaded"
	RestoreAbsent      RestoreOutcome = "absent"
	RestoreMalformed   RestoreOutcome = "malformed"
	RestoreUnavailable RestoreOutcome = "unavailable"
)

// RestoreResult is returned by Restore. Warning is set for malformed records
// and version mismatches.
type RestoreResult struct {
	Outcome         RestoreOutcome
	VersionMismatch bool
	StoredVersion   string
	Warning         string
}

// Status is a point-in-time view of the store's persistence.
type Status struct {
	Health          Health    `json:"health"`
	LastError       string    `json:"last_error,omitempty"`
	LastPersistedAt time.Time `json:"last_persisted_at,omitempty"`
	PendingWrite    bool      `json:"pending_write"`
	VersionMismatch bool      `json:"version_mismatch"`
}

// Options configure a Store.
type Options struct {
	Debounce     time.Duration
	WriteTimeout time.Duration
	TTL          time.Duration
	Language     string
	Now          func() time.Time
	Logger       *zap.Logger
	// Fallback is set when the configured backend was unreachable and
	// storage is standing in for it. Stores then start degraded.
	Fallback string
}

func (o Options) withDefaults() Options {
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 3 * time.Second
	}
	if o.Language == "" {
		o.Language = "en"
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Store owns one interviewer session. Mutations apply in memory immediately
// and are persisted as a single record after a quiet period.
type Store struct {
	id      string
	key     string
	storage domain.SessionStorage
	opts    Options
	log     *zap.Logger

	mu     sync.RWMutex
	state  domain.SessionState
	status Status
	closed bool

	// writeMu orders storage writes with Clear so a write that started
	// before a Clear cannot land after its delete.
	writeMu sync.Mutex

	debouncer *Debouncer
}

// NewStore creates a store with fresh state. Call Restore to load the
// persisted record.
func NewStore(id string, storage domain.SessionStorage, opts Options) *Store {
	opts = opts.withDefaults()
	s := &Store{
		id:      id,
		key:     cache.SessionStateKey(id),
		storage: storage,
		opts:    opts,
		log:     opts.Logger.With(zap.String("session_id", id)),
		state:   domain.NewSessionState(opts.Language),
		status:  Status{Health: HealthOK},
	}
	if opts.Fallback != "" {
		s.status = Status{Health: HealthDegraded, LastError: opts.Fallback}
	}
	s.debouncer = NewDebouncer(opts.Debounce, s.persistPending)
	return s
}

func (s *Store) ID() string { return s.id }

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Status reports persistence health.
func (s *Store) Status() Status {
	s.mu.RLock()
	st := s.status
	s.mu.RUnlock()
	st.PendingWrite = s.debouncer.Pending()
	return st
}

// mutate applies fn to a copy of the state and schedules a write when fn
// reports a change.
func (s *Store) mutate(fn func(*domain.SessionState) bool) bool {
	s.mu.Lock()
	next := s.state.Clone()
	changed := fn(&next)
	if changed {
		s.state = next
	}
	s.mu.Unlock()

	if changed {
		s.debouncer.Schedule()
	}
	return changed
}

// Update merges a partial state. Nested maps are merged key by key.
func (s *Store) Update(p domain.StatePatch) bool {
	return s.mutate(func(st *domain.SessionState) bool {
		changed := false
		if p.SelectedLanguage != nil && *p.SelectedLanguage != st.SelectedLanguage {
			st.SelectedLanguage = *p.SelectedLanguage
			changed = true
		}
		if p.ClearCurrentQuestion {
			if st.CurrentQuestion != nil {
				st.CurrentQuestion = nil
				changed = true
			}
		} else if p.CurrentQuestion != nil && !sameQuestion(st.CurrentQuestion, p.CurrentQuestion) {
			q := *p.CurrentQuestion
			st.CurrentQuestion = &q
			changed = true
		}
		if mergeInto(st.NotesMap, p.NotesMap) {
			changed = true
		}
		if mergeInto(st.GradesMap, p.GradesMap) {
			changed = true
		}
		for qid, points := range p.SelectedAnswerPointsMap {
			inner := st.SelectedAnswerPointsMap[qid]
			if inner == nil {
				inner = map[string]bool{}
				st.SelectedAnswerPointsMap[qid] = inner
				if len(points) == 0 {
					changed = true
				}
			}
			if mergeInto(inner, points) {
				changed = true
			}
		}
		return changed
	})
}

// SetNote stores the note text for a question.
func (s *Store) SetNote(questionID, text string) bool {
	return s.mutate(func(st *domain.SessionState) bool {
		if old, ok := st.NotesMap[questionID]; ok && old == text {
			return false
		}
		st.NotesMap[questionID] = text
		return true
	})
}

// SetGrade stores a 1-5 rating for a question.
func (s *Store) SetGrade(questionID string, rating int) (bool, error) {
	if rating < domain.MinGrade || rating > domain.MaxGrade {
		return false, domain.NewInvalidInputError("rating must be between 1 and 5").
			WithContext("rating", rating)
	}
	return s.mutate(func(st *domain.SessionState) bool {
		if st.GradesMap[questionID] == rating {
			return false
		}
		st.GradesMap[questionID] = rating
		return true
	}), nil
}

// TogglePoint flips the selection of one answer point and returns the new
// selection value.
func (s *Store) TogglePoint(questionID string, categoryIndex, pointIndex int) bool {
	key := domain.PointKey(categoryIndex, pointIndex)
	var selected bool
	s.mutate(func(st *domain.SessionState) bool {
		points := st.SelectedAnswerPointsMap[questionID]
		if points == nil {
			points = map[string]bool{}
			st.SelectedAnswerPointsMap[questionID] = points
		}
		selected = !points[key]
		points[key] = selected
		return true
	})
	return selected
}

// Restore replaces in-memory state with the persisted record. Absent,
// malformed or unreadable records leave a fresh state behind.
func (s *Store) Restore(ctx context.Context) RestoreResult {
	ctx, cancel := context.WithTimeout(ctx, s.opts.WriteTimeout)
	defer cancel()

	raw, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, domain.ErrStorageMiss) {
			return RestoreResult{Outcome: RestoreAbsent}
		}
		s.markDegraded(err)
		s.log.Warn("Failed to read persisted session, starting fresh", zap.Error(err))
		return RestoreResult{Outcome: RestoreUnavailable, Warning: err.Error()}
	}

	var record domain.PersistedRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		s.log.Warn("Discarding malformed session record", zap.Error(err))
		return RestoreResult{Outcome: RestoreMalformed, Warning: "stored session could not be parsed and was ignored"}
	}

	res := RestoreResult{Outcome: RestoreLoaded, StoredVersion: record.Version}
	if record.Version != domain.StateVersion {
		res.VersionMismatch = true
		res.Warning = "stored session was written by version " + record.Version
		s.log.Warn("Session record version mismatch",
			zap.String("stored_version", record.Version),
			zap.String("current_version", domain.StateVersion))
	}

	state := record.Data
	state.Normalize()
	if state.SelectedLanguage == "" {
		state.SelectedLanguage = s.opts.Language
	}

	s.mu.Lock()
	s.state = state
	s.status.VersionMismatch = res.VersionMismatch
	s.mu.Unlock()
	return res
}

// Persist writes the current state immediately and drops any pending
// debounced write.
func (s *Store) Persist(ctx context.Context) error {
	s.debouncer.Cancel()
	return s.write(ctx)
}

// Flush writes now if a debounced write is pending.
func (s *Store) Flush() {
	s.debouncer.Flush()
}

// Cancel drops a pending debounced write.
func (s *Store) Cancel() {
	s.debouncer.Cancel()
}

// Close stops the debounce timer. Nothing is written after Close returns.
func (s *Store) Close() {
	s.debouncer.Close()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *Store) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Clear deletes the persisted record and resets the in-memory state. A
// storage failure leaves the store degraded but the reset still happens.
func (s *Store) Clear(ctx context.Context) {
	s.debouncer.Cancel()
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.state = domain.NewSessionState(s.opts.Language)
	s.status.VersionMismatch = false
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.opts.WriteTimeout)
	defer cancel()
	if err := s.storage.Delete(ctx, s.key); err != nil {
		s.markDegraded(err)
		s.log.Warn("Failed to delete persisted session", zap.Error(err))
		return
	}
	s.markHealthy(time.Time{})
}

func (s *Store) persistPending() {
	_ = s.write(context.Background())
}

func (s *Store) write(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.isClosed() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.WriteTimeout)
	defer cancel()

	now := s.opts.Now()
	payload, err := json.Marshal(domain.NewPersistedRecord(s.Snapshot(), now))
	if err != nil {
		s.log.Error("Failed to encode session record", zap.Error(err))
		return domain.NewInternalError("failed to encode session record", err)
	}
	if err := s.storage.Set(ctx, s.key, string(payload), s.opts.TTL); err != nil {
		s.markDegraded(err)
		s.log.Warn("Failed to persist session, keeping state in memory", zap.Error(err))
		return domain.NewStorageUnavailableError(err)
	}
	s.markHealthy(now)
	return nil
}

func (s *Store) markDegraded(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Health = HealthDegraded
	s.status.LastError = err.Error()
}

func (s *Store) markHealthy(persistedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Health = HealthOK
	s.status.LastError = ""
	if !persistedAt.IsZero() {
		s.status.LastPersistedAt = persistedAt
	}
}

func mergeInto[V comparable](dst, src map[string]V) bool {
	changed := false
	for k, v := range src {
		if old, ok := dst[k]; ok && old == v {
			continue
		}
		dst[k] = v
		changed = true
	}
	return changed
}

func sameQuestion(a, b *domain.Question) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID && a.Question == b.Question && a.DisplayTitle() == b.DisplayTitle()
}
