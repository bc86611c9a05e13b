package views

import (
	"strings"

	"github.com/entrhq/kindred/pkg/journal"
)

// HitKind tells which entity a search hit points at.
type HitKind string

const (
	HitPreference HitKind = "preference"
	HitEvent      HitKind = "event"
)

// Hit is one search result. Exactly one of Preference and Event is set,
// according to Kind.
type Hit struct {
	Kind       HitKind             `json:"kind"`
	Preference *journal.Preference `json:"preference,omitempty"`
	Event      *journal.Event      `json:"event,omitempty"`
}

// Title returns the preference label or event title.
func (h Hit) Title() string {
	if h.Kind == HitPreference && h.Preference != nil {
		return h.Preference.Label
	}
	if h.Event != nil {
		return h.Event.Title
	}
	return ""
}

// Note returns the note of the matched entity.
func (h Hit) Note() string {
	if h.Kind == HitPreference && h.Preference != nil {
		return h.Preference.Note
	}
	if h.Event != nil {
		return h.Event.Note
	}
	return ""
}

// Search finds the preferences and events of p that contain query,
// ignoring case. Preferences are matched on label, note and category;
// events on title, note, place and type. Preference hits come first, each
// group in stored order. A blank query or nil person yields no hits.
func Search(p *journal.Person, query string) []Hit {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || p == nil {
		return nil
	}

	var hits []Hit
	for i := range p.Preferences {
		pref := p.Preferences[i]
		if matches(q, pref.Label, pref.Note, string(pref.Category)) {
			hits = append(hits, Hit{Kind: HitPreference, Preference: &pref})
		}
	}
	for i := range p.Events {
		ev := p.Events[i]
		if matches(q, ev.Title, ev.Note, ev.Place, string(ev.Type)) {
			hits = append(hits, Hit{Kind: HitEvent, Event: &ev})
		}
	}
	return hits
}

func matches(q string, fields ...string) bool {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Contains(strings.ToLower(strings.Join(parts, " ")), q)
}
