package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const fileFormatVersion = "1"

// fileDocument is the on-disk layout of a FileMedium.
type fileDocument struct {
	Version string            `json:"version"`
	Items   map[string]string `json:"items"`
}

// FileMedium implements Medium with a single JSON file. Every Set and
// Remove rewrites the file atomically.
type FileMedium struct {
	path    string
	items   map[string]string
	mu      sync.RWMutex
	loadErr error
	closed  bool
}

// OpenFileMedium opens or creates the file medium at path.
//
// A missing file starts empty. A file that cannot be decoded also starts
// empty and is replaced by the next write; the decode error is kept in
// LoadError so callers can report it.
func OpenFileMedium(path string) (*FileMedium, error) {
	if path == "" {
		return nil, fmt.Errorf("storage: file medium path is empty")
	}

	m := &FileMedium{
		path:  path,
		items: make(map[string]string),
	}

	if err := m.load(); err != nil {
		var decodeErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &decodeErr) || errors.As(err, &typeErr) || errors.Is(err, errEmptyDocument) {
			m.loadErr = err
			return m, nil
		}
		return nil, err
	}

	return m, nil
}

var errEmptyDocument = errors.New("storage: empty document")

func (m *FileMedium) load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("storage: read %s: %w", m.path, err)
	}
	if len(data) == 0 {
		return errEmptyDocument
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("storage: decode %s: %w", m.path, err)
	}
	if doc.Items != nil {
		m.items = doc.Items
	}
	return nil
}

// save writes all items to a temp file and renames it over the target.
// Callers must hold m.mu.
func (m *FileMedium) save() error {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("storage: create directory: %w", err)
	}

	data, err := json.MarshalIndent(fileDocument{Version: fileFormatVersion, Items: m.items}, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode: %w", err)
	}

	tempPath := m.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("storage: write temp file: %w", err)
	}
	if err := os.Rename(tempPath, m.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("storage: rename temp file: %w", err)
	}
	return nil
}

// Probe checks that the directory exists and accepts new files.
func (m *FileMedium) Probe() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrClosed
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("storage: probe directory: %w", err)
	}
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return fmt.Errorf("storage: probe write: %w", err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

func (m *FileMedium) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.items[key]
	return v, ok, nil
}

// Set stores value and rewrites the file. On a failed write the previous
// value is restored so memory and disk agree.
func (m *FileMedium) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	prev, existed := m.items[key]
	m.items[key] = value
	if err := m.save(); err != nil {
		if existed {
			m.items[key] = prev
		} else {
			delete(m.items, key)
		}
		return err
	}
	return nil
}

func (m *FileMedium) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	prev, existed := m.items[key]
	if !existed {
		return nil
	}
	delete(m.items, key)
	if err := m.save(); err != nil {
		m.items[key] = prev
		return err
	}
	return nil
}

// LoadError returns the decode error hit while opening, if any.
func (m *FileMedium) LoadError() error {
	return m.loadErr
}

// Path returns the file path of the medium.
func (m *FileMedium) Path() string {
	return m.path
}

// Close marks the medium closed. Data is already on disk.
func (m *FileMedium) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
