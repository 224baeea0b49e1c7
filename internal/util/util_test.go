package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewULID_IsMonotonic(t *testing.T) {
	prev := NewULID()
	for i := 0; i < 100; i++ {
		next := NewULID()
		assert.Len(t, next, 26)
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 4.0, Mean([]int{4}))
	assert.InDelta(t, 3.6667, Mean([]int{3, 4, 4}), 0.0001)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 3.67, Round(3.6666, 2))
	assert.Equal(t, 4.0, Round(4, 1))
}

func TestTimeToNullTime(t *testing.T) {
	assert.False(t, TimeToNullTime(time.Time{}).Valid)
	now := time.Now()
	nt := TimeToNullTime(now)
	assert.True(t, nt.Valid)
	assert.Equal(t, now, nt.Time)
}

func TestExpiryFrom(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	assert.True(t, ExpiryFrom(now, 0).IsZero())
	assert.Equal(t, now.Add(time.Hour), ExpiryFrom(now, time.Hour))
}
