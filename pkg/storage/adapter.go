package storage

import (
	"encoding/json"
	"strings"

	"github.com/entrhq/kindred/pkg/logging"
)

// Adapter gives total, JSON-typed access to a Medium.
type Adapter struct {
	medium  Medium
	usable  bool
	durable bool
	log     *logging.Logger
}

// New wraps medium. The medium is probed once; a nil medium or a failed
// probe makes every operation a no-op. A medium reporting Durable() false
// still works but the adapter is not Available.
func New(medium Medium, log *logging.Logger) *Adapter {
	if log == nil {
		log = logging.NewNop()
	}
	a := &Adapter{medium: medium, log: log}

	if medium == nil {
		log.Debugf("no medium configured, running in memory")
		return a
	}
	if err := medium.Probe(); err != nil {
		log.Warnf("storage unavailable, running in memory: %v", err)
		return a
	}
	a.usable = true
	a.durable = true
	if v, ok := medium.(Volatile); ok && !v.Durable() {
		a.durable = false
		log.Debugf("medium is not durable, values last for this process only")
	}
	return a
}

// Available reports whether values written now can be read after a restart.
func (a *Adapter) Available() bool {
	return a.ok() && a.durable
}

func (a *Adapter) ok() bool {
	return a != nil && a.usable
}

// Read decodes the value stored under key into a T. It returns def when
// the adapter is unavailable, the key is missing, the medium fails, or the
// stored text does not decode as a T.
func Read[T any](a *Adapter, key string, def T) T {
	v, ok := Lookup[T](a, key)
	if !ok {
		return def
	}
	return v
}

// Lookup is Read with an explicit found flag instead of a default.
func Lookup[T any](a *Adapter, key string) (T, bool) {
	var zero T
	if !a.ok() {
		return zero, false
	}

	raw, ok, err := a.medium.Get(key)
	if err != nil {
		a.log.Debugf("read %s failed: %v", key, err)
		return zero, false
	}
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" || raw == "undefined" || raw == "null" {
		return zero, false
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		a.log.Debugf("discarding malformed value under %s: %v", key, err)
		return zero, false
	}
	return v, true
}

// Write encodes value as JSON and stores it under key. Failures are logged
// and otherwise ignored.
func (a *Adapter) Write(key string, value any) {
	if !a.ok() {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		a.log.Debugf("encode %s failed: %v", key, err)
		return
	}
	if err := a.medium.Set(key, string(data)); err != nil {
		a.log.Debugf("write %s failed: %v", key, err)
	}
}

// Remove deletes key. Failures are logged and otherwise ignored.
func (a *Adapter) Remove(key string) {
	if !a.ok() {
		return
	}
	if err := a.medium.Remove(key); err != nil {
		a.log.Debugf("remove %s failed: %v", key, err)
	}
}
