package session

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// --- MockSessionStorage ---
type MockSessionStorage struct {
	mock.Mock
}

func (m *MockSessionStorage) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStorage) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockSessionStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockSessionStorage) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
