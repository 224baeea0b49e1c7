package session

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of Schedule calls into one run of fn after delay
// has passed without another call. Flush and Cancel make teardown explicit.
type Debouncer struct {
	delay time.Duration
	fn    func()

	runMu sync.Mutex // serializes runs of fn

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	closed  bool
}

func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Schedule (re)starts the quiet period. It is a no-op after Close.
func (d *Debouncer) Schedule() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.runMu.Lock()
	defer d.runMu.Unlock()
	if !d.take() {
		return
	}
	d.fn()
}

// take clears the pending flag and reports whether a run was due.
func (d *Debouncer) take() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.pending || d.closed {
		return false
	}
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	return true
}

// Flush runs fn now if a run is pending and waits for any in-flight run.
// It reports whether fn was run by this call.
func (d *Debouncer) Flush() bool {
	d.runMu.Lock()
	defer d.runMu.Unlock()
	if !d.take() {
		return false
	}
	d.fn()
	return true
}

// Cancel drops a pending run without executing it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a run is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Close cancels any pending run and ignores later Schedule calls. It waits
// for an in-flight run to finish.
func (d *Debouncer) Close() {
	d.Cancel()
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.runMu.Lock()
	d.runMu.Unlock()
}
