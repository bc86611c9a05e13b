package journal

import "fmt"

// Database is the whole journal: every person in insertion order.
//
// A Database is treated as an immutable value. Add, Remove and Update
// return a new Database; people that were not touched keep their pointers,
// so callers can compare them by identity to find what changed.
type Database struct {
	People []*Person `json:"people"`
}

// Len returns the number of people.
func (db Database) Len() int {
	return len(db.People)
}

// Index returns the position of the person with id, or -1.
func (db Database) Index(id string) int {
	for i, p := range db.People {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the person with id, or nil.
func (db Database) Find(id string) *Person {
	if i := db.Index(id); i >= 0 {
		return db.People[i]
	}
	return nil
}

// IDs returns the ids of every person in order.
func (db Database) IDs() []string {
	ids := make([]string, len(db.People))
	for i, p := range db.People {
		ids[i] = p.ID
	}
	return ids
}

// Add returns a database with p appended.
func (db Database) Add(p *Person) Database {
	people := make([]*Person, 0, len(db.People)+1)
	people = append(people, db.People...)
	return Database{People: append(people, p)}
}

// Remove returns a database without the person with id. Preferences and
// events go with the person. Removing an unknown id is a no-op.
func (db Database) Remove(id string) Database {
	people := make([]*Person, 0, len(db.People))
	for _, p := range db.People {
		if p.ID != id {
			people = append(people, p)
		}
	}
	return Database{People: people}
}

// Update applies m to the person with id and returns a database in which
// exactly that person is replaced. On error db is returned unchanged.
func (db Database) Update(id string, m Mutation) (Database, error) {
	i := db.Index(id)
	if i < 0 {
		return db, fmt.Errorf("%w: %s", ErrPersonNotFound, id)
	}

	next, err := Apply(db.People[i], m)
	if err != nil {
		return db, err
	}

	people := make([]*Person, len(db.People))
	copy(people, db.People)
	people[i] = next
	return Database{People: people}, nil
}
