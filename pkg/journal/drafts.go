package journal

import (
	"strings"
	"time"
)

// DefaultMemoryTitle is used when a memory's first line is blank.
const DefaultMemoryTitle = "Memory"

const maxMemoryTitle = 50

// PersonDraft holds the user-supplied fields of a new person.
type PersonDraft struct {
	Name          string
	Glyph         string
	Photo         string
	Birthday      *Date
	TogetherSince *Date
	Links         []Link
}

// NewPerson validates d and returns a person with a fresh id and empty
// preference and event lists.
func NewPerson(d PersonDraft) (*Person, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	links := make([]Link, 0, len(d.Links))
	for _, l := range d.Links {
		link, err := NewLink(l.Label, l.URL)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}

	return &Person{
		ID:            NewID(),
		Name:          name,
		Glyph:         strings.TrimSpace(d.Glyph),
		Photo:         strings.TrimSpace(d.Photo),
		Birthday:      d.Birthday,
		TogetherSince: d.TogetherSince,
		Links:         links,
		Preferences:   []Preference{},
		Events:        []Event{},
	}, nil
}

// NewLink validates a link. A blank label defaults to the URL.
func NewLink(label, url string) (Link, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Link{}, ErrEmptyURL
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = url
	}
	return Link{Label: label, URL: url}, nil
}

// PreferenceDraft holds the user-supplied fields of a new preference.
type PreferenceDraft struct {
	Category   Category
	Label      string
	Note       string
	Importance int
	Polarity   Polarity
}

// NewPreference validates d and returns a preference with a fresh id.
// Importance outside [MinImportance, MaxImportance] is rejected.
func NewPreference(d PreferenceDraft) (Preference, error) {
	pref := Preference{
		Category:   d.Category,
		Label:      strings.TrimSpace(d.Label),
		Note:       strings.TrimSpace(d.Note),
		Importance: d.Importance,
		Polarity:   d.Polarity,
	}
	if err := pref.Validate(); err != nil {
		return Preference{}, err
	}
	pref.ID = NewID()
	return pref, nil
}

// EventDraft holds the user-supplied fields of a new event.
type EventDraft struct {
	Type  EventType
	Title string
	When  time.Time
	Place string
	Note  string
}

// NewEvent validates d and returns an event with a fresh id. When is
// stored in UTC.
func NewEvent(d EventDraft) (Event, error) {
	ev := Event{
		Type:  d.Type,
		Title: strings.TrimSpace(d.Title),
		When:  d.When.UTC().Round(0),
		Place: strings.TrimSpace(d.Place),
		Note:  strings.TrimSpace(d.Note),
	}
	if err := ev.Validate(); err != nil {
		return Event{}, err
	}
	ev.ID = NewID()
	return ev, nil
}

// NewMemory turns free text into a memory event at now. The title is the
// first line, cut to 50 characters; the note keeps the full text.
func NewMemory(text string, now time.Time) (Event, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Event{}, ErrEmptyMemory
	}
	return NewEvent(EventDraft{
		Type:  EventMemory,
		Title: memoryTitle(text),
		When:  now,
		Note:  text,
	})
}

func memoryTitle(text string) string {
	first, _, _ := strings.Cut(text, "\n")
	first = strings.TrimSpace(first)
	if r := []rune(first); len(r) > maxMemoryTitle {
		first = strings.TrimSpace(string(r[:maxMemoryTitle]))
	}
	if first == "" {
		return DefaultMemoryTitle
	}
	return first
}
