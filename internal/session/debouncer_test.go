package session

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { runs.Add(1) })

	for i := 0; i < 5; i++ {
		d.Schedule()
	}
	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())
	assert.False(t, d.Pending())
}

func TestDebouncer_FlushRunsPending(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(time.Hour, func() { runs.Add(1) })

	assert.False(t, d.Flush(), "nothing pending")
	d.Schedule()
	assert.True(t, d.Pending())
	assert.True(t, d.Flush())
	assert.Equal(t, int32(1), runs.Load())
	assert.False(t, d.Flush())
}

func TestDebouncer_CancelDropsPending(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(10*time.Millisecond, func() { runs.Add(1) })

	d.Schedule()
	d.Cancel()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load())
}

func TestDebouncer_NoRunAfterClose(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(10*time.Millisecond, func() { runs.Add(1) })

	d.Schedule()
	d.Close()
	d.Schedule()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load())
	assert.False(t, d.Flush())
}
