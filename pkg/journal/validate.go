package journal

import (
	"fmt"
	"strings"
)

// Validate applies the rules NewPreference enforces to a preference that
// did not come from a draft.
func (pref Preference) Validate() error {
	switch {
	case strings.TrimSpace(pref.Label) == "":
		return ErrEmptyLabel
	case !pref.Category.Valid():
		return fmt.Errorf("%w: %q", ErrUnknownCategory, pref.Category)
	case pref.Importance < MinImportance || pref.Importance > MaxImportance:
		return fmt.Errorf("%w: %d", ErrImportanceOutOfRange, pref.Importance)
	case !pref.Polarity.Valid():
		return fmt.Errorf("%w: %q", ErrUnknownPolarity, pref.Polarity)
	}
	return nil
}

// Validate applies the rules NewEvent enforces. An event whose stored time
// could not be parsed fails with ErrMissingTime.
func (e Event) Validate() error {
	switch {
	case strings.TrimSpace(e.Title) == "":
		return ErrEmptyTitle
	case !e.Type.Valid():
		return fmt.Errorf("%w: %q", ErrUnknownEventType, e.Type)
	case e.When.IsZero() && e.rawWhen != "":
		return fmt.Errorf("%w: unreadable %q", ErrMissingTime, e.rawWhen)
	case e.When.IsZero():
		return ErrMissingTime
	}
	return nil
}

// ValidatePerson checks a person built outside the drafts, such as one read
// from an export, against the same rules. The first failure is returned
// wrapped with the offending entry; the sentinel stays reachable through
// errors.Is.
func ValidatePerson(p *Person) error {
	if p == nil {
		return ErrPersonNotFound
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	for i, l := range p.Links {
		if strings.TrimSpace(l.URL) == "" {
			return fmt.Errorf("link %d: %w", i+1, ErrEmptyURL)
		}
	}
	for _, pref := range p.Preferences {
		if err := pref.Validate(); err != nil {
			return fmt.Errorf("preference %q: %w", pref.Label, err)
		}
	}
	for _, ev := range p.Events {
		if err := ev.Validate(); err != nil {
			return fmt.Errorf("event %q: %w", ev.Title, err)
		}
	}
	return nil
}
