// Package keeper composes kindred's store: the journal database, the
// active person, the search query and the sparkles toggle, each mirrored
// to durable storage through a state.Cell.
//
// A Keeper is the read/write surface every collaborator uses. Each write
// operation runs under one lock, derives a new journal.Database, updates
// every cell it touches and then notifies subscribers once.
package keeper

import (
	"fmt"
	"sync"
	"time"

	"github.com/entrhq/kindred/pkg/journal"
	"github.com/entrhq/kindred/pkg/logging"
	"github.com/entrhq/kindred/pkg/state"
	"github.com/entrhq/kindred/pkg/storage"
	"github.com/entrhq/kindred/pkg/views"
)

// DefaultNamespace prefixes storage keys when no namespace is configured.
const DefaultNamespace = "kindred"

// Storage slots. The persisted key is "<namespace>-<slot>".
const (
	SlotDatabase = "db-v1"
	SlotActive   = "active"
	SlotSparkles = "sparkles"
)

// Snapshot is a consistent view of the store after one operation.
type Snapshot struct {
	People   []*journal.Person `json:"people"`
	Active   *journal.Person   `json:"active,omitempty"`
	Query    string            `json:"query,omitempty"`
	Sparkles bool              `json:"sparkles"`
	Results  []views.Hit       `json:"results,omitempty"`
}

// Option configures a Keeper.
type Option func(*options)

type options struct {
	namespace string
	scheduler state.Scheduler
	now       func() time.Time
}

// WithNamespace sets the prefix of every storage key.
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// WithScheduler sets when cell writes reach storage.
func WithScheduler(s state.Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// WithClock replaces time.Now, used to seed the demo journal and stamp
// memories.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Keeper owns the store's cells.
type Keeper struct {
	log     *logging.Logger
	now     func() time.Time
	durable bool

	mu       sync.Mutex
	db       *state.Cell[journal.Database]
	active   *state.Cell[string]
	sparkles *state.Cell[bool]
	query    string

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Snapshot)

	// set by Open
	deferred  *state.Deferred
	stopFlush func()
	closeFn   func() error
	closeOnce sync.Once
}

// New builds a Keeper on adapter. Nothing stored yields the demo journal
// with its first person active.
func New(adapter *storage.Adapter, log *logging.Logger, opts ...Option) *Keeper {
	o := options{namespace: DefaultNamespace, scheduler: state.Immediate{}, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if log == nil {
		log = logging.NewNop()
	}
	key := func(slot string) string { return o.namespace + "-" + slot }

	k := &Keeper{log: log, now: o.now, durable: adapter.Available(), subs: make(map[int]func(Snapshot))}
	k.db = state.NewFunc(adapter, key(SlotDatabase),
		func() journal.Database { return journal.Demo(o.now()) },
		state.WithScheduler[journal.Database](o.scheduler))
	k.active = state.NewFunc(adapter, key(SlotActive),
		func() string { return firstID(k.db.Get()) },
		state.WithScheduler[string](o.scheduler), state.OmitZero[string]())
	k.sparkles = state.New(adapter, key(SlotSparkles), true,
		state.WithScheduler[bool](o.scheduler))

	// A stored active id may point at a person that is gone.
	k.repointActive(k.db.Get())

	log.Debugf("store ready: %d people, active %q", k.db.Get().Len(), k.active.Get())
	return k
}

func firstID(db journal.Database) string {
	if db.Len() == 0 {
		return ""
	}
	return db.People[0].ID
}

// repointActive keeps the active id present in db. It must be called with
// k.mu held, or before k is shared.
func (k *Keeper) repointActive(db journal.Database) {
	id := k.active.Get()
	if id != "" && db.Find(id) != nil {
		return
	}
	if next := firstID(db); next != id {
		k.active.Set(next)
	}
}

// People returns every person in stored order.
func (k *Keeper) People() []*journal.Person {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.db.Get().People
}

// Active returns the selected person, nil when the journal is empty.
func (k *Keeper) Active() *journal.Person {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.activeLocked(k.db.Get())
}

func (k *Keeper) activeLocked(db journal.Database) *journal.Person {
	if p := db.Find(k.active.Get()); p != nil {
		return p
	}
	if db.Len() > 0 {
		return db.People[0]
	}
	return nil
}

// Query returns the current search query. The query is not persisted.
func (k *Keeper) Query() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.query
}

// Sparkles reports whether the visual effect is enabled.
func (k *Keeper) Sparkles() bool {
	return k.sparkles.Get()
}

// SearchResults runs the current query against the active person.
func (k *Keeper) SearchResults() []views.Hit {
	return k.Snapshot().Results
}

// Snapshot returns the current state of the store.
func (k *Keeper) Snapshot() Snapshot {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.snapshotLocked()
}

func (k *Keeper) snapshotLocked() Snapshot {
	db := k.db.Get()
	active := k.activeLocked(db)
	return Snapshot{
		People:   db.People,
		Active:   active,
		Query:    k.query,
		Sparkles: k.sparkles.Get(),
		Results:  views.Search(active, k.query),
	}
}

// Find returns the person with id, or nil.
func (k *Keeper) Find(id string) *journal.Person {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.db.Get().Find(id)
}

// AddPerson creates a person from draft and appends it. The new person is
// selected only when nobody was active.
func (k *Keeper) AddPerson(draft journal.PersonDraft) (*journal.Person, error) {
	p, err := journal.NewPerson(draft)
	if err != nil {
		return nil, err
	}
	err = k.commit(func(db journal.Database) (journal.Database, error) {
		return db.Add(p), nil
	})
	if err != nil {
		return nil, err
	}
	k.log.Infof("added person %s", p.ID)
	return p, nil
}

// Import appends a person read from an export. The person with all links,
// preferences and events must pass journal.ValidatePerson; otherwise
// nothing is applied. A missing or clashing id is replaced with a fresh
// one, as are missing preference and event ids.
func (k *Keeper) Import(p *journal.Person) (*journal.Person, error) {
	if p == nil {
		return nil, journal.ErrEmptyName
	}
	imported := *p
	imported.Normalize()
	if err := journal.ValidatePerson(&imported); err != nil {
		return nil, fmt.Errorf("import rejected: %w", err)
	}
	imported.Links = append([]journal.Link{}, imported.Links...)
	imported.Preferences = append([]journal.Preference{}, imported.Preferences...)
	imported.Events = append([]journal.Event{}, imported.Events...)
	for i := range imported.Preferences {
		if imported.Preferences[i].ID == "" {
			imported.Preferences[i].ID = journal.NewID()
		}
	}
	for i := range imported.Events {
		if imported.Events[i].ID == "" {
			imported.Events[i].ID = journal.NewID()
		}
	}

	err := k.commit(func(db journal.Database) (journal.Database, error) {
		if imported.ID == "" || db.Find(imported.ID) != nil {
			imported.ID = journal.NewID()
		}
		return db.Add(&imported), nil
	})
	if err != nil {
		return nil, err
	}
	k.log.Infof("imported person %s", imported.ID)
	return &imported, nil
}

// RemovePerson deletes a person with all their preferences and events.
// When the active person is removed the first remaining person becomes
// active.
func (k *Keeper) RemovePerson(id string) error {
	err := k.commit(func(db journal.Database) (journal.Database, error) {
		if db.Find(id) == nil {
			return db, fmt.Errorf("%w: %s", journal.ErrPersonNotFound, id)
		}
		return db.Remove(id), nil
	})
	if err == nil {
		k.log.Infof("removed person %s", id)
	}
	return err
}

// Select makes the person with id active.
func (k *Keeper) Select(id string) error {
	k.mu.Lock()
	if k.db.Get().Find(id) == nil {
		k.mu.Unlock()
		return fmt.Errorf("%w: %s", journal.ErrPersonNotFound, id)
	}
	k.active.Set(id)
	snap := k.snapshotLocked()
	k.mu.Unlock()

	k.notify(snap)
	return nil
}

// Update applies m to the person with id.
func (k *Keeper) Update(id string, m journal.Mutation) error {
	return k.commit(func(db journal.Database) (journal.Database, error) {
		return db.Update(id, m)
	})
}

// UpdateActive applies m to the active person.
func (k *Keeper) UpdateActive(m journal.Mutation) error {
	return k.commit(func(db journal.Database) (journal.Database, error) {
		active := k.activeLocked(db)
		if active == nil {
			return db, journal.ErrPersonNotFound
		}
		return db.Update(active.ID, m)
	})
}

// SetQuery replaces the search query.
func (k *Keeper) SetQuery(q string) {
	k.mu.Lock()
	k.query = q
	snap := k.snapshotLocked()
	k.mu.Unlock()

	k.notify(snap)
}

// SetSparkles toggles the visual effect.
func (k *Keeper) SetSparkles(on bool) {
	k.mu.Lock()
	k.sparkles.Set(on)
	snap := k.snapshotLocked()
	k.mu.Unlock()

	k.notify(snap)
}

// Durable reports whether changes survive a restart. It is false for the
// memory medium and after a fallback to it.
func (k *Keeper) Durable() bool {
	return k.durable
}

// Now returns the keeper's clock reading.
func (k *Keeper) Now() time.Time {
	return k.now()
}

// commit runs fn on the current database and stores the result together
// with a repaired active id. When fn fails nothing changes.
func (k *Keeper) commit(fn func(journal.Database) (journal.Database, error)) error {
	k.mu.Lock()
	next, err := fn(k.db.Get())
	if err != nil {
		k.mu.Unlock()
		k.log.Debugf("update rejected: %v", err)
		return err
	}
	k.db.Set(next)
	k.repointActive(next)
	snap := k.snapshotLocked()
	k.mu.Unlock()

	k.notify(snap)
	return nil
}

// Subscribe registers fn to receive a snapshot after every operation.
func (k *Keeper) Subscribe(fn func(Snapshot)) (cancel func()) {
	k.subMu.Lock()
	defer k.subMu.Unlock()
	id := k.nextID
	k.nextID++
	k.subs[id] = fn
	return func() {
		k.subMu.Lock()
		defer k.subMu.Unlock()
		delete(k.subs, id)
	}
}

func (k *Keeper) notify(snap Snapshot) {
	k.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(k.subs))
	for _, fn := range k.subs {
		fns = append(fns, fn)
	}
	k.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
