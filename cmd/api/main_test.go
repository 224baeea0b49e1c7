package main

import (
	"testing"
	"time"

	"interview-assistant/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSessionOptions_TTLFollowsSessionConfig(t *testing.T) {
	for _, backend := range []string{config.StorageRedis, config.StorageSQLite, config.StorageMemory} {
		t.Run(backend, func(t *testing.T) {
			cfg := &config.Config{
				Storage: config.StorageConfig{Backend: backend},
				Session: config.SessionConfig{
					Debounce:     250 * time.Millisecond,
					WriteTimeout: 2 * time.Second,
					Language:     "de",
					TTL:          48 * time.Hour,
				},
			}

			opts := sessionOptions(cfg, zap.NewNop(), "")
			assert.Equal(t, 48*time.Hour, opts.TTL)
			assert.Equal(t, 250*time.Millisecond, opts.Debounce)
			assert.Equal(t, 2*time.Second, opts.WriteTimeout)
			assert.Equal(t, "de", opts.Language)
			assert.Empty(t, opts.Fallback)
		})
	}
}

func TestSessionOptions_CarriesFallbackReason(t *testing.T) {
	opts := sessionOptions(&config.Config{}, zap.NewNop(), "redis storage unavailable at startup")
	assert.Equal(t, "redis storage unavailable at startup", opts.Fallback)
}
