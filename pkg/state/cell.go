// Package state binds live values to named slots in durable storage.
//
// A Cell hydrates from its storage key once, when it is created, and
// persists every later update through a Scheduler. Reads always see the
// latest Set immediately; whether the write has reached the medium yet
// depends on the scheduler. Persistence failures never roll back the
// in-memory value.
package state

import (
	"sync"

	"github.com/entrhq/kindred/pkg/storage"
)

// Option configures a Cell.
type Option[T any] func(*Cell[T])

// WithScheduler sets when writes run. The default is Immediate.
func WithScheduler[T any](s Scheduler) Option[T] {
	return func(c *Cell[T]) { c.scheduler = s }
}

// OmitWhen removes the storage key instead of writing when empty(v) holds.
func OmitWhen[T any](empty func(T) bool) Option[T] {
	return func(c *Cell[T]) { c.omit = empty }
}

// OmitZero removes the storage key whenever the value is T's zero value.
func OmitZero[T comparable]() Option[T] {
	var zero T
	return OmitWhen(func(v T) bool { return v == zero })
}

// Cell is a value of type T mirrored to one storage key.
type Cell[T any] struct {
	key       string
	adapter   *storage.Adapter
	scheduler Scheduler
	omit      func(T) bool

	mu       sync.RWMutex
	value    T
	hydrated bool

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(T)
}

// New creates a cell for key starting from the stored value, or initial
// when nothing usable is stored.
func New[T any](adapter *storage.Adapter, key string, initial T, opts ...Option[T]) *Cell[T] {
	return NewFunc(adapter, key, func() T { return initial }, opts...)
}

// NewFunc is New with a lazily evaluated initial value. init runs at most
// once, and only when hydration finds nothing usable.
func NewFunc[T any](adapter *storage.Adapter, key string, init func() T, opts ...Option[T]) *Cell[T] {
	c := &Cell[T]{
		key:       key,
		adapter:   adapter,
		scheduler: Immediate{},
		subs:      make(map[int]func(T)),
	}
	for _, opt := range opts {
		opt(c)
	}

	if v, ok := storage.Lookup[T](adapter, key); ok {
		c.value = v
		c.hydrated = true
	} else {
		c.value = init()
	}
	return c
}

// Key returns the storage key the cell is bound to.
func (c *Cell[T]) Key() string {
	return c.key
}

// Hydrated reports whether the starting value came from storage.
func (c *Cell[T]) Hydrated() bool {
	return c.hydrated
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set replaces the value, notifies subscribers and schedules a write.
// Writes are scheduled under the cell's lock, so storage sees concurrent
// updates in the same order as readers do.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	c.value = v
	c.persist(v)
	c.mu.Unlock()

	c.notify(v)
}

// Update replaces the value with fn(previous). fn runs under the cell's
// lock, so concurrent updates do not lose each other's changes.
func (c *Cell[T]) Update(fn func(prev T) T) T {
	c.mu.Lock()
	next := fn(c.value)
	c.value = next
	c.persist(next)
	c.mu.Unlock()

	c.notify(next)
	return next
}

// Subscribe registers fn to be called with every new value. The returned
// function removes the subscription.
func (c *Cell[T]) Subscribe(fn func(T)) (cancel func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	id := c.nextID
	c.nextID++
	c.subs[id] = fn

	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

// persist must be called with c.mu held.
func (c *Cell[T]) persist(v T) {
	omit := c.omit != nil && c.omit(v)
	c.scheduler.Schedule(c.key, func() {
		if omit {
			c.adapter.Remove(c.key)
			return
		}
		c.adapter.Write(c.key, v)
	})
}

func (c *Cell[T]) notify(v T) {
	c.subMu.Lock()
	subs := make([]func(T), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.subMu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}
