package journal

import (
	"fmt"
	"strings"
	"time"
)

// The updaters below are the edits every surface performs on a person.
// Each one builds fresh slices so the previous person stays intact.

// Rename sets the person's name.
func Rename(name string) Updater {
	return func(*Person) (PersonPatch, error) {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return PersonPatch{}, ErrEmptyName
		}
		return PersonPatch{Name: Some(trimmed)}, nil
	}
}

// SetGlyph sets the glyph and clears any photo.
func SetGlyph(glyph string) Updater {
	return func(*Person) (PersonPatch, error) {
		return PersonPatch{Glyph: Some(strings.TrimSpace(glyph)), Photo: Some("")}, nil
	}
}

// SetPhoto sets the photo reference and clears the glyph.
func SetPhoto(ref string) Updater {
	return func(*Person) (PersonPatch, error) {
		trimmed := strings.TrimSpace(ref)
		if trimmed == "" {
			return PersonPatch{}, ErrEmptyURL
		}
		return PersonPatch{Photo: Some(trimmed), Glyph: Some("")}, nil
	}
}

// SetBirthday sets or, with nil, clears the birthday.
func SetBirthday(d *Date) Updater {
	return func(*Person) (PersonPatch, error) {
		return PersonPatch{Birthday: Some(d)}, nil
	}
}

// SetTogetherSince sets or, with nil, clears the together-since date.
func SetTogetherSince(d *Date) Updater {
	return func(*Person) (PersonPatch, error) {
		return PersonPatch{TogetherSince: Some(d)}, nil
	}
}

// AddLink appends a link.
func AddLink(label, url string) Updater {
	return func(p *Person) (PersonPatch, error) {
		link, err := NewLink(label, url)
		if err != nil {
			return PersonPatch{}, err
		}
		links := make([]Link, 0, len(p.Links)+1)
		links = append(links, p.Links...)
		return PersonPatch{Links: Some(append(links, link))}, nil
	}
}

// RemoveLink removes the link at index.
func RemoveLink(index int) Updater {
	return func(p *Person) (PersonPatch, error) {
		if index < 0 || index >= len(p.Links) {
			return PersonPatch{}, fmt.Errorf("%w: index %d", ErrLinkNotFound, index)
		}
		links := make([]Link, 0, len(p.Links)-1)
		links = append(links, p.Links[:index]...)
		links = append(links, p.Links[index+1:]...)
		return PersonPatch{Links: Some(links)}, nil
	}
}

// AddPreference appends a new preference built from d.
func AddPreference(d PreferenceDraft) Updater {
	return func(p *Person) (PersonPatch, error) {
		pref, err := NewPreference(d)
		if err != nil {
			return PersonPatch{}, err
		}
		prefs := make([]Preference, 0, len(p.Preferences)+1)
		prefs = append(prefs, p.Preferences...)
		return PersonPatch{Preferences: Some(append(prefs, pref))}, nil
	}
}

// RemovePreference removes the preference with id.
func RemovePreference(id string) Updater {
	return func(p *Person) (PersonPatch, error) {
		if p.FindPreference(id) == nil {
			return PersonPatch{}, fmt.Errorf("%w: %s", ErrPreferenceNotFound, id)
		}
		prefs := make([]Preference, 0, len(p.Preferences)-1)
		for _, pref := range p.Preferences {
			if pref.ID != id {
				prefs = append(prefs, pref)
			}
		}
		return PersonPatch{Preferences: Some(prefs)}, nil
	}
}

// AddEvent puts a new event built from d at the front of the list.
func AddEvent(d EventDraft) Updater {
	return func(p *Person) (PersonPatch, error) {
		ev, err := NewEvent(d)
		if err != nil {
			return PersonPatch{}, err
		}
		return prependEvent(p, ev), nil
	}
}

// AddMemory records text as a memory at now, at the front of the list.
func AddMemory(text string, now time.Time) Updater {
	return func(p *Person) (PersonPatch, error) {
		ev, err := NewMemory(text, now)
		if err != nil {
			return PersonPatch{}, err
		}
		return prependEvent(p, ev), nil
	}
}

func prependEvent(p *Person, ev Event) PersonPatch {
	events := make([]Event, 0, len(p.Events)+1)
	events = append(events, ev)
	events = append(events, p.Events...)
	return PersonPatch{Events: Some(events)}
}

// RemoveEvent removes the event with id.
func RemoveEvent(id string) Updater {
	return func(p *Person) (PersonPatch, error) {
		if p.FindEvent(id) == nil {
			return PersonPatch{}, fmt.Errorf("%w: %s", ErrEventNotFound, id)
		}
		events := make([]Event, 0, len(p.Events)-1)
		for _, ev := range p.Events {
			if ev.ID != id {
				events = append(events, ev)
			}
		}
		return PersonPatch{Events: Some(events)}, nil
	}
}
