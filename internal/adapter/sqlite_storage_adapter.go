package adapter

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"interview-assistant/internal/domain"
	"interview-assistant/internal/util"

	"github.com/jmoiron/sqlx"
)

type sessionRecordRow struct {
	Value     string       `db:"value"`
	ExpiresAt sql.NullTime `db:"expires_at"`
}

// SQLStorageAdapter implements domain.SessionStorage on the session_records
// table. Each key is one row; Set replaces the whole value.
type SQLStorageAdapter struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLStorageAdapter expects a migrated database.
func NewSQLStorageAdapter(db *sqlx.DB) domain.SessionStorage {
	return &SQLStorageAdapter{db: db, now: time.Now}
}

func (a *SQLStorageAdapter) Get(ctx context.Context, key string) (string, error) {
	var row sessionRecordRow
	query := a.db.Rebind(`SELECT value, expires_at FROM session_records WHERE record_key = ?`)
	if err := a.db.GetContext(ctx, &row, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrStorageMiss
		}
		return "", err
	}
	if row.ExpiresAt.Valid && a.now().After(row.ExpiresAt.Time) {
		return "", domain.ErrStorageMiss
	}
	return row.Value, nil
}

func (a *SQLStorageAdapter) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	now := a.now().UTC()
	query := a.db.Rebind(`INSERT INTO session_records (record_key, value, expires_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(record_key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`)
	_, err := a.db.ExecContext(ctx, query, key, value, util.TimeToNullTime(util.ExpiryFrom(now, expiration)), now)
	return err
}

func (a *SQLStorageAdapter) Delete(ctx context.Context, key string) error {
	_, err := a.db.ExecContext(ctx, a.db.Rebind(`DELETE FROM session_records WHERE record_key = ?`), key)
	return err
}

func (a *SQLStorageAdapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}
