package dataset

import (
	"context"
	"sync"
	"time"
)

// Debouncer coalesces a burst of Trigger calls into a single run of fn once
// the burst has been quiet for the configured period. Runs receive the
// context of the Trigger that scheduled them. Stop waits for a run already
// in progress, so nothing runs after Stop returns.
type Debouncer struct {
	quiet time.Duration
	fn    func(context.Context)

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	running sync.WaitGroup
}

// NewDebouncer returns a Debouncer that runs fn after quiet.
func NewDebouncer(quiet time.Duration, fn func(context.Context)) *Debouncer {
	return &Debouncer{quiet: quiet, fn: fn}
}

// Trigger (re)arms the timer, replacing any pending run. It is a no-op after
// Stop or once ctx is done.
func (d *Debouncer) Trigger(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped || ctx.Err() != nil {
		return
	}
	d.disarmLocked()

	d.running.Add(1)
	d.timer = time.AfterFunc(d.quiet, func() {
		defer d.running.Done()

		d.mu.Lock()
		stopped := d.stopped
		d.mu.Unlock()
		if stopped || ctx.Err() != nil {
			return
		}
		d.fn(ctx)
	})
}

// Stop drops a pending run and blocks until an in-flight run returns.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.disarmLocked()
	d.mu.Unlock()

	d.running.Wait()
}

// disarmLocked stops the pending timer. A timer stopped before it fired
// never runs its func, so its slot in running is released here.
func (d *Debouncer) disarmLocked() {
	if d.timer != nil && d.timer.Stop() {
		d.running.Done()
	}
	d.timer = nil
}
