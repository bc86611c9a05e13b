package state

import (
	"context"
	"sync"
	"time"
)

// Scheduler decides when a cell's persistence write runs. Writes for the
// same key may be coalesced; only the last one scheduled must run.
type Scheduler interface {
	Schedule(key string, write func())
}

// Immediate runs every write inline, before Set returns.
type Immediate struct{}

func (Immediate) Schedule(_ string, write func()) { write() }

// Deferred queues writes until Flush. Pending writes are coalesced per key,
// so a burst of updates to one cell costs a single write.
type Deferred struct {
	mu      sync.Mutex
	order   []string
	pending map[string]func()
}

// NewDeferred creates an empty deferred scheduler.
func NewDeferred() *Deferred {
	return &Deferred{pending: make(map[string]func())}
}

func (d *Deferred) Schedule(key string, write func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, queued := d.pending[key]; !queued {
		d.order = append(d.order, key)
	}
	d.pending[key] = write
}

// Pending returns the number of keys waiting to be written.
func (d *Deferred) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Flush runs all pending writes in first-scheduled order.
func (d *Deferred) Flush() {
	d.mu.Lock()
	order, pending := d.order, d.pending
	d.order = nil
	d.pending = make(map[string]func())
	d.mu.Unlock()

	// Writes run outside the lock so they may schedule again.
	for _, key := range order {
		pending[key]()
	}
}

// Run flushes every interval until ctx is cancelled, then flushes once more.
// A non-positive interval only flushes on cancel.
func (d *Deferred) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		<-ctx.Done()
		d.Flush()
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.Flush()
			return
		case <-ticker.C:
			d.Flush()
		}
	}
}
