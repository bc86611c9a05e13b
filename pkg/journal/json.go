package journal

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// photoPrefixes mark glyph values that are really photo references. Older
// data kept the photo in the emoji field.
var photoPrefixes = []string{"data:", "http://", "https://", "blob:"}

func looksLikePhoto(s string) bool {
	for _, prefix := range photoPrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

type personAlias Person

// personJSON reads the dates raw so one unreadable date does not fail the
// whole person.
type personJSON struct {
	personAlias
	Birthday      json.RawMessage `json:"birthday,omitempty"`
	TogetherSince json.RawMessage `json:"togetherSince,omitempty"`
}

func (p *Person) UnmarshalJSON(data []byte) error {
	var raw personJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Person(raw.personAlias)
	p.Birthday = lenientDate(raw.Birthday)
	p.TogetherSince = lenientDate(raw.TogetherSince)
	p.Normalize()
	return nil
}

// lenientDate decodes an optional date. Missing, empty and unreadable
// values all become nil.
func lenientDate(data json.RawMessage) *Date {
	if len(data) == 0 {
		return nil
	}
	var d Date
	if err := json.Unmarshal(data, &d); err != nil {
		return nil
	}
	return &d
}

// Normalize repairs decoded data: a photo reference stored as the glyph
// moves to Photo, and missing lists become empty lists.
func (p *Person) Normalize() {
	if looksLikePhoto(p.Glyph) {
		if p.Photo == "" {
			p.Photo = p.Glyph
		}
		p.Glyph = ""
	}
	if p.Links == nil {
		p.Links = []Link{}
	}
	if p.Preferences == nil {
		p.Preferences = []Preference{}
	}
	if p.Events == nil {
		p.Events = []Event{}
	}
}

type eventAlias Event

type eventJSON struct {
	eventAlias
	When string `json:"when"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	when := e.rawWhen
	if !e.When.IsZero() {
		when = e.When.UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(eventJSON{
		eventAlias: eventAlias(e),
		When:       when,
	})
}

// UnmarshalJSON keeps an event whose time cannot be parsed. When is left
// zero and the stored text is kept for UnreadableWhen and re-encoding.
func (e *Event) UnmarshalJSON(data []byte) error {
	var raw eventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Event(raw.eventAlias)
	when, err := ParseWhen(raw.When, time.Local)
	if err != nil {
		e.When = time.Time{}
		e.rawWhen = raw.When
		return nil
	}
	e.When = when
	e.rawWhen = ""
	return nil
}

func (db *Database) UnmarshalJSON(data []byte) error {
	var raw struct {
		People []*Person `json:"people"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	people := make([]*Person, 0, len(raw.People))
	for _, p := range raw.People {
		if p != nil {
			people = append(people, p)
		}
	}
	db.People = people
	return nil
}

// MarshalSnapshot renders p as indented JSON, suitable for copying.
func MarshalSnapshot(p *Person) ([]byte, error) {
	if p == nil {
		return nil, ErrPersonNotFound
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal person: %w", err)
	}
	return data, nil
}
