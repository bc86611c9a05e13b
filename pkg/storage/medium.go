package storage

import (
	"errors"
	"sync"
)

// ErrClosed is returned by media used after Close.
var ErrClosed = errors.New("storage: medium closed")

// Medium is a persistent string key/value store.
type Medium interface {
	// Probe reports whether the medium can be used at all.
	Probe() error

	// Get returns the stored text for key and whether it exists.
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
}

// Volatile is implemented by media that may lose their contents when the
// process exits. Media that do not implement it are treated as durable.
type Volatile interface {
	Durable() bool
}

// MemoryMedium keeps values in a map. Nothing survives the process.
type MemoryMedium struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryMedium creates an empty in-memory medium.
func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{items: make(map[string]string)}
}

func (m *MemoryMedium) Probe() error { return nil }

// Durable is always false: nothing outlives the process.
func (m *MemoryMedium) Durable() bool { return false }

func (m *MemoryMedium) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryMedium) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = value
	return nil
}

func (m *MemoryMedium) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

// Len returns the number of stored keys.
func (m *MemoryMedium) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
