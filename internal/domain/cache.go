package domain

import (
	"context"
	"time"
)

// StorageError represents an error originating from session storage.
type StorageError string

func (e StorageError) Error() string {
	return string(e)
}

// ErrStorageMiss is returned when a key is not found in storage.
const ErrStorageMiss = StorageError("storage: key not found")

// SessionStorage is the port the session store persists through. One key holds
// one complete serialized record; writes replace the whole value.
type SessionStorage interface {
	// Get retrieves the value stored under key.
	// It returns ErrStorageMiss if the key is not found.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	// If expiration is 0 the value is kept until deleted.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Delete removes key. It does not return an error if the key is not found.
	Delete(ctx context.Context, key string) error

	// Ping checks the health of the storage backend.
	Ping(ctx context.Context) error
}
