package journal

import (
	"fmt"
	"strings"
)

// Opt is an optional patch field. A zero Opt leaves the field untouched.
type Opt[T any] struct {
	Set   bool
	Value T
}

// Some returns an Opt that sets the field to v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{Set: true, Value: v}
}

func (o Opt[T]) apply(dst *T) {
	if o.Set {
		*dst = o.Value
	}
}

// PersonPatch is a partial Person. Only fields that are Set are merged.
// A set Birthday or TogetherSince of nil clears the date.
type PersonPatch struct {
	Name          Opt[string]
	Glyph         Opt[string]
	Photo         Opt[string]
	Birthday      Opt[*Date]
	TogetherSince Opt[*Date]
	Links         Opt[[]Link]
	Preferences   Opt[[]Preference]
	Events        Opt[[]Event]
}

// Validate checks the fields the patch sets.
func (pp PersonPatch) Validate() error {
	if pp.Name.Set && strings.TrimSpace(pp.Name.Value) == "" {
		return ErrEmptyName
	}
	return nil
}

// Merge returns a new Person holding p's fields overlaid with the set
// fields of the patch. p is never modified.
func (pp PersonPatch) Merge(p *Person) *Person {
	next := *p
	pp.Name.apply(&next.Name)
	pp.Glyph.apply(&next.Glyph)
	pp.Photo.apply(&next.Photo)
	pp.Birthday.apply(&next.Birthday)
	pp.TogetherSince.apply(&next.TogetherSince)
	pp.Links.apply(&next.Links)
	pp.Preferences.apply(&next.Preferences)
	pp.Events.apply(&next.Events)
	return &next
}

// Resolve makes a PersonPatch a Mutation that ignores the current person.
func (pp PersonPatch) Resolve(*Person) (PersonPatch, error) {
	return pp, nil
}

// Mutation produces the patch to apply to a person. It is either a fixed
// PersonPatch or an Updater computed from the person's current state.
type Mutation interface {
	Resolve(p *Person) (PersonPatch, error)
}

// Updater computes a patch from the current person. It must not modify p.
type Updater func(p *Person) (PersonPatch, error)

func (u Updater) Resolve(p *Person) (PersonPatch, error) {
	return u(p)
}

// Apply resolves m against p and returns the merged person. On error p is
// returned unchanged alongside the error.
func Apply(p *Person, m Mutation) (*Person, error) {
	if m == nil {
		return p, nil
	}
	patch, err := m.Resolve(p)
	if err != nil {
		return p, err
	}
	if err := patch.Validate(); err != nil {
		return p, fmt.Errorf("invalid patch for %s: %w", p.ID, err)
	}
	return patch.Merge(p), nil
}

// Overlay returns pp with every field that next sets replaced by next's.
func (pp PersonPatch) Overlay(next PersonPatch) PersonPatch {
	overlay(&pp.Name, next.Name)
	overlay(&pp.Glyph, next.Glyph)
	overlay(&pp.Photo, next.Photo)
	overlay(&pp.Birthday, next.Birthday)
	overlay(&pp.TogetherSince, next.TogetherSince)
	overlay(&pp.Links, next.Links)
	overlay(&pp.Preferences, next.Preferences)
	overlay(&pp.Events, next.Events)
	return pp
}

func overlay[T any](dst *Opt[T], next Opt[T]) {
	if next.Set {
		*dst = next
	}
}

// Chain combines mutations into one. Each mutation sees the person as
// left by the ones before it; the first error aborts the whole chain.
func Chain(ms ...Mutation) Updater {
	return func(p *Person) (PersonPatch, error) {
		var combined PersonPatch
		cur := p
		for _, m := range ms {
			patch, err := m.Resolve(cur)
			if err != nil {
				return PersonPatch{}, err
			}
			if err := patch.Validate(); err != nil {
				return PersonPatch{}, err
			}
			combined = combined.Overlay(patch)
			cur = patch.Merge(cur)
		}
		return combined, nil
	}
}
