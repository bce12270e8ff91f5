package state

import (
	"sync"
	"time"
)

// DefaultDebounce is the inactivity window for free-text saves: one request
// per 500ms of keyboard silence, coalescing rapid keystrokes into the
// last-written value.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer schedules a deferred action and cancels-and-reschedules it on
// repeated triggers within the window. Only the most recently triggered
// action ever runs.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	fn    func()
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Trigger replaces any pending action with fn and restarts the window.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	d.fn = fn
	if d.timer == nil {
		d.timer = time.AfterFunc(d.delay, d.fire)
		d.mu.Unlock()
		return
	}
	d.timer.Reset(d.delay)
	d.mu.Unlock()
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.fn
	d.fn = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Flush runs the pending action immediately, if any. Used on teardown so an
// in-window edit is not silently dropped, and by tests.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.fn
	d.fn = nil
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Stop discards the pending action without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.fn = nil
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
}
