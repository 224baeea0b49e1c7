package adapter

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"interview-assistant/internal/database"
	"interview-assistant/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockSQLStorage(t *testing.T, now time.Time) (*SQLStorageAdapter, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlite")
	return &SQLStorageAdapter{db: db, now: func() time.Time { return now }}, mock
}

func TestSQLStorageAdapter_Get(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta(`SELECT value, expires_at FROM session_records WHERE record_key = ?`)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		storage, mock := newMockSQLStorage(t, now)
		mock.ExpectQuery(query).WithArgs("k1").
			WillReturnRows(sqlmock.NewRows([]string{"value", "expires_at"}).AddRow(sampleRecord, nil))

		val, err := storage.Get(ctx, "k1")
		assert.NoError(t, err)
		assert.Equal(t, sampleRecord, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NoRowIsMiss", func(t *testing.T) {
		storage, mock := newMockSQLStorage(t, now)
		mock.ExpectQuery(query).WithArgs("k1").
			WillReturnRows(sqlmock.NewRows([]string{"value", "expires_at"}))

		_, err := storage.Get(ctx, "k1")
		assert.ErrorIs(t, err, domain.ErrStorageMiss)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ExpiredRowIsMiss", func(t *testing.T) {
		storage, mock := newMockSQLStorage(t, now)
		mock.ExpectQuery(query).WithArgs("k1").
			WillReturnRows(sqlmock.NewRows([]string{"value", "expires_at"}).AddRow(sampleRecord, now.Add(-time.Minute)))

		_, err := storage.Get(ctx, "k1")
		assert.ErrorIs(t, err, domain.ErrStorageMiss)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("QueryFailure", func(t *testing.T) {
		storage, mock := newMockSQLStorage(t, now)
		dbErr := errors.New("database is locked")
		mock.ExpectQuery(query).WithArgs("k1").WillReturnError(dbErr)

		_, err := storage.Get(ctx, "k1")
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSQLStorageAdapter_Set(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()
	upsert := regexp.QuoteMeta(`INSERT INTO session_records (record_key, value, expires_at, updated_at)`)

	t.Run("Upsert", func(t *testing.T) {
		storage, mock := newMockSQLStorage(t, now)
		mock.ExpectExec(upsert).
			WithArgs("k1", sampleRecord, sqlmock.AnyArg(), now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, storage.Set(ctx, "k1", sampleRecord, 0))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ExecFailure", func(t *testing.T) {
		storage, mock := newMockSQLStorage(t, now)
		dbErr := errors.New("disk I/O error")
		mock.ExpectExec(upsert).WillReturnError(dbErr)

		assert.ErrorIs(t, storage.Set(ctx, "k1", sampleRecord, time.Hour), dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSQLStorageAdapter_Delete(t *testing.T) {
	storage, mock := newMockSQLStorage(t, time.Now())
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM session_records WHERE record_key = ?`)).
		WithArgs("k1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, storage.Delete(context.Background(), "k1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStorageAdapter_MigratedDatabase(t *testing.T) {
	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.RunMigrations(db.DB))

	ctx := context.Background()
	storage := NewSQLStorageAdapter(db)
	require.NoError(t, storage.Ping(ctx))

	_, err = storage.Get(ctx, "k1")
	assert.ErrorIs(t, err, domain.ErrStorageMiss)

	require.NoError(t, storage.Set(ctx, "k1", sampleRecord, time.Hour))
	require.NoError(t, storage.Set(ctx, "k1", `{"version":"1.0.0"}`, 0))
	val, err := storage.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, `{"version":"1.0.0"}`, val, "set replaces the whole record")

	require.NoError(t, storage.Delete(ctx, "k1"))
	_, err = storage.Get(ctx, "k1")
	assert.ErrorIs(t, err, domain.ErrStorageMiss)
}
