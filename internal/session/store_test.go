package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"interview-assistant/internal/adapter"
	"interview-assistant/internal/cache"
	"interview-assistant/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSessionID = "01J9ZQ4W5E6R7T8Y9V0A1B2C3D"

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func testOptions() Options {
	return Options{
		Debounce: time.Hour, // tests flush explicitly
		Language: "en",
		Now:      func() time.Time { return fixedNow },
	}
}

func TestStore_PersistRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := adapter.NewMemoryStorageAdapter()

	st := NewStore(testSessionID, storage, testOptions())
	st.SetNote("q1", "Knows volatile semantics")
	_, err := st.SetGrade("q1", 4)
	require.NoError(t, err)
	assert.True(t, st.TogglePoint("q1", 0, 2))
	lang := "de"
	st.Update(domain.StatePatch{SelectedLanguage: &lang})
	st.Flush()

	raw, err := storage.Get(ctx, cache.SessionStateKey(testSessionID))
	require.NoError(t, err)

	var record domain.PersistedRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &record))
	assert.Equal(t, domain.StateVersion, record.Version)
	assert.Equal(t, "2026-10-14T09:30:00.000Z", record.Timestamp)

	restored := NewStore(testSessionID, storage, testOptions())
	res := restored.Restore(ctx)
	assert.Equal(t, RestoreLoaded, res.Outcome)
	assert.False(t, res.VersionMismatch)
	assert.Equal(t, st.Snapshot(), restored.Snapshot())
}

func TestStore_UnchangedGradeDoesNotPersistAgain(t *testing.T) {
	storage := new(MockSessionStorage)
	storage.On("Set", mock.Anything, cache.SessionStateKey(testSessionID), mock.Anything, time.Duration(0)).Return(nil)

	st := NewStore(testSessionID, storage, testOptions())

	changed, err := st.SetGrade("q1", 4)
	require.NoError(t, err)
	assert.True(t, changed)
	st.Flush()

	changed, err = st.SetGrade("q1", 4)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.False(t, st.Status().PendingWrite)
	st.Flush()

	storage.AssertNumberOfCalls(t, "Set", 1)
}

func TestStore_SetGradeRejectsOutOfRange(t *testing.T) {
	st := NewStore(testSessionID, adapter.NewMemoryStorageAdapter(), testOptions())

	for _, rating := range []int{0, 6, -1} {
		changed, err := st.SetGrade("q1", rating)
		assert.False(t, changed)
		assert.True(t, domain.HasCode(err, domain.CodeInvalidInput), "rating %d", rating)
	}
	assert.Empty(t, st.Snapshot().GradesMap)
}

func TestStore_NoOpMutators(t *testing.T) {
	st := NewStore(testSessionID, adapter.NewMemoryStorageAdapter(), testOptions())

	assert.True(t, st.SetNote("q1", "text"))
	assert.False(t, st.SetNote("q1", "text"))

	lang := "en"
	assert.False(t, st.Update(domain.StatePatch{SelectedLanguage: &lang}))
	assert.False(t, st.Update(domain.StatePatch{NotesMap: map[string]string{"q1": "text"}}))
	assert.False(t, st.Update(domain.StatePatch{ClearCurrentQuestion: true}))
}

func TestStore_UpdateMergesNestedMaps(t *testing.T) {
	st := NewStore(testSessionID, adapter.NewMemoryStorageAdapter(), testOptions())
	st.SetNote("q1", "first")
	st.TogglePoint("q1", 0, 0)

	changed := st.Update(domain.StatePatch{
		NotesMap:                map[string]string{"q2": "second"},
		SelectedAnswerPointsMap: map[string]map[string]bool{"q1": {"1-0": true}},
	})
	assert.True(t, changed)

	snap := st.Snapshot()
	assert.Equal(t, map[string]string{"q1": "first", "q2": "second"}, snap.NotesMap)
	assert.Equal(t, map[string]bool{"0-0": true, "1-0": true}, snap.SelectedAnswerPointsMap["q1"])
}

func TestStore_CurrentQuestion(t *testing.T) {
	st := NewStore(testSessionID, adapter.NewMemoryStorageAdapter(), testOptions())
	q := &domain.Question{ID: "q1", Question: "Explain synchronization"}

	assert.True(t, st.Update(domain.StatePatch{CurrentQuestion: q}))
	assert.False(t, st.Update(domain.StatePatch{CurrentQuestion: q}))
	require.NotNil(t, st.Snapshot().CurrentQuestion)
	assert.Equal(t, "q1", st.Snapshot().CurrentQuestion.ID)

	assert.True(t, st.Update(domain.StatePatch{ClearCurrentQuestion: true}))
	assert.Nil(t, st.Snapshot().CurrentQuestion)
}

func TestStore_TogglePointTwiceDeselects(t *testing.T) {
	st := NewStore(testSessionID, adapter.NewMemoryStorageAdapter(), testOptions())

	assert.True(t, st.TogglePoint("q1", 1, 0))
	assert.False(t, st.TogglePoint("q1", 1, 0))
	snap := st.Snapshot()
	assert.False(t, snap.IsSelected("q1", 1, 0))
	assert.False(t, snap.HasContent("q1"))
}

func TestStore_Restore(t *testing.T) {
	ctx := context.Background()
	key := cache.SessionStateKey(testSessionID)

	t.Run("Absent", func(t *testing.T) {
		st := NewStore(testSessionID, adapter.NewMemoryStorageAdapter(), testOptions())
		res := st.Restore(ctx)
		assert.Equal(t, RestoreAbsent, res.Outcome)
		assert.Equal(t, domain.NewSessionState("en"), st.Snapshot())
		assert.Equal(t, HealthOK, st.Status().Health)
	})

	t.Run("Malformed", func(t *testing.T) {
		storage := adapter.NewMemoryStorageAdapter()
		require.NoError(t, storage.Set(ctx, key, "{not json", 0))

		st := NewStore(testSessionID, storage, testOptions())
		res := st.Restore(ctx)
		assert.Equal(t, RestoreMalformed, res.Outcome)
		assert.NotEmpty(t, res.Warning)
		assert.Equal(t, domain.NewSessionState("en"), st.Snapshot())
	})

	t.Run("VersionMismatchStillLoads", func(t *testing.T) {
		storage := adapter.NewMemoryStorageAdapter()
		record := `{"version":"0.9.0","timestamp":"2025-01-01T00:00:00.000Z","data":{"selectedLanguage":"fr","notesMap":{"q1":"kept"}}}`
		require.NoError(t, storage.Set(ctx, key, record, 0))

		st := NewStore(testSessionID, storage, testOptions())
		res := st.Restore(ctx)
		assert.Equal(t, RestoreLoaded, res.Outcome)
		assert.True(t, res.VersionMismatch)
		assert.Equal(t, "0.9.0", res.StoredVersion)
		assert.True(t, st.Status().VersionMismatch)

		snap := st.Snapshot()
		assert.Equal(t, "fr", snap.SelectedLanguage)
		assert.Equal(t, "kept", snap.NotesMap["q1"])
		assert.NotNil(t, snap.GradesMap)
	})

	t.Run("StorageUnavailable", func(t *testing.T) {
		storage := new(MockSessionStorage)
		storage.On("Get", mock.Anything, key).Return("", errors.New("connection refused"))

		st := NewStore(testSessionID, storage, testOptions())
		res := st.Restore(ctx)
		assert.Equal(t, RestoreUnavailable, res.Outcome)
		assert.Equal(t, HealthDegraded, st.Status().Health)
	})
}

func TestStore_DegradedStorageKeepsWorking(t *testing.T) {
	storage := new(MockSessionStorage)
	key := cache.SessionStateKey(testSessionID)
	storage.On("Set", mock.Anything, key, mock.Anything, time.Duration(0)).Return(errors.New("quota exceeded")).Once()
	storage.On("Set", mock.Anything, key, mock.Anything, time.Duration(0)).Return(nil).Once()

	st := NewStore(testSessionID, storage, testOptions())
	st.SetNote("q1", "still here")
	st.Flush()

	status := st.Status()
	assert.Equal(t, HealthDegraded, status.Health)
	assert.Contains(t, status.LastError, "quota exceeded")
	assert.Equal(t, "still here", st.Snapshot().NotesMap["q1"])

	st.SetNote("q1", "recovered")
	st.Flush()
	status = st.Status()
	assert.Equal(t, HealthOK, status.Health)
	assert.Empty(t, status.LastError)
	assert.Equal(t, fixedNow, status.LastPersistedAt)
	storage.AssertExpectations(t)
}

func TestStore_PersistReturnsStorageError(t *testing.T) {
	storage := new(MockSessionStorage)
	storage.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	st := NewStore(testSessionID, storage, testOptions())
	err := st.Persist(context.Background())
	assert.True(t, domain.HasCode(err, domain.CodeStorageUnavailable))
}

func TestStore_DebouncedWrite(t *testing.T) {
	storage := adapter.NewMemoryStorageAdapter()
	opts := testOptions()
	opts.Debounce = 10 * time.Millisecond

	st := NewStore(testSessionID, storage, opts)
	st.SetNote("q1", "a")
	st.SetNote("q1", "ab")
	st.SetNote("q1", "abc")

	assert.Eventually(t, func() bool {
		raw, err := storage.Get(context.Background(), cache.SessionStateKey(testSessionID))
		if err != nil {
			return false
		}
		var record domain.PersistedRecord
		return json.Unmarshal([]byte(raw), &record) == nil && record.Data.NotesMap["q1"] == "abc"
	}, time.Second, 5*time.Millisecond)
}

func TestStore_NoWriteAfterClose(t *testing.T) {
	storage := new(MockSessionStorage)
	opts := testOptions()
	opts.Debounce = 5 * time.Millisecond

	st := NewStore(testSessionID, storage, opts)
	st.SetNote("q1", "pending")
	st.Close()
	st.SetNote("q1", "after close")
	time.Sleep(30 * time.Millisecond)
	st.Flush()
	assert.NoError(t, st.Persist(context.Background()))

	storage.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	storage := adapter.NewMemoryStorageAdapter()

	st := NewStore(testSessionID, storage, testOptions())
	st.SetNote("q1", "note")
	st.Flush()
	require.Equal(t, 1, storage.Len())

	st.SetNote("q1", "unsaved")
	st.Clear(ctx)

	assert.Equal(t, 0, storage.Len())
	assert.Equal(t, domain.NewSessionState("en"), st.Snapshot())
	assert.False(t, st.Status().PendingWrite)
}

func TestStore_ClearWithFailingStorageStillResets(t *testing.T) {
	storage := new(MockSessionStorage)
	storage.On("Delete", mock.Anything, cache.SessionStateKey(testSessionID)).Return(errors.New("READONLY"))

	st := NewStore(testSessionID, storage, testOptions())
	st.SetNote("q1", "note")
	st.Clear(context.Background())

	assert.Empty(t, st.Snapshot().NotesMap)
	assert.Equal(t, HealthDegraded, st.Status().Health)
}

// blockingStorage holds every Set until release is closed.
type blockingStorage struct {
	*adapter.MemoryStorageAdapter
	entered chan struct{}
	release chan struct{}
}

func newBlockingStorage() *blockingStorage {
	return &blockingStorage{
		MemoryStorageAdapter: adapter.NewMemoryStorageAdapter(),
		entered:              make(chan struct{}, 1),
		release:              make(chan struct{}),
	}
}

func (b *blockingStorage) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	select {
	case b.entered <- struct{}{}:
	default:
	}
	<-b.release
	return b.MemoryStorageAdapter.Set(ctx, key, value, expiration)
}

func TestStore_ClearWaitsForInFlightWrite(t *testing.T) {
	ctx := context.Background()
	storage := newBlockingStorage()
	opts := testOptions()
	opts.Debounce = time.Millisecond

	st := NewStore(testSessionID, storage, opts)
	st.SetNote("q1", "secret")

	select {
	case <-storage.entered:
	case <-time.After(time.Second):
		t.Fatal("debounced write never started")
	}

	cleared := make(chan struct{})
	go func() {
		st.Clear(ctx)
		close(cleared)
	}()

	select {
	case <-cleared:
		t.Fatal("Clear returned while a write was still in flight")
	case <-time.After(20 * time.Millisecond):
	}

	close(storage.release)
	select {
	case <-cleared:
	case <-time.After(time.Second):
		t.Fatal("Clear did not finish after the write completed")
	}

	_, err := storage.Get(ctx, cache.SessionStateKey(testSessionID))
	assert.ErrorIs(t, err, domain.ErrStorageMiss)
	assert.Empty(t, st.Snapshot().NotesMap)
}

func TestStore_RestoreNullPointMap(t *testing.T) {
	ctx := context.Background()
	storage := adapter.NewMemoryStorageAdapter()
	record := `{"version":"1.0.0","timestamp":"2026-10-14T09:30:00.000Z","data":{"selectedAnswerPointsMap":{"q1":null,"q2":null}}}`
	require.NoError(t, storage.Set(ctx, cache.SessionStateKey(testSessionID), record, 0))

	st := NewStore(testSessionID, storage, testOptions())
	res := st.Restore(ctx)
	require.Equal(t, RestoreLoaded, res.Outcome)
	assert.NotNil(t, st.Snapshot().SelectedAnswerPointsMap["q1"])

	assert.NotPanics(t, func() {
		assert.True(t, st.TogglePoint("q1", 0, 0))
		st.Update(domain.StatePatch{SelectedAnswerPointsMap: map[string]map[string]bool{"q2": {"1-0": true}}})
	})
	snap := st.Snapshot()
	assert.True(t, snap.IsSelected("q1", 0, 0))
	assert.True(t, snap.IsSelected("q2", 1, 0))
}
