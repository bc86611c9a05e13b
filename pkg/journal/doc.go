// Package journal defines kindred's entity model and the patch protocol
// used to change it.
//
// A Database is an ordered list of People. Each Person owns its Links,
// Preferences and Events; removing a Person removes them with it.
//
// Values are never changed in place. Every edit resolves a Mutation (a
// PersonPatch, or an Updater computing one from the current Person) and
// produces a new Person and a new Database. People that an edit does not
// touch keep their pointer identity, so callers can compare snapshots with ==.
//
// Constructors (NewPerson, NewPreference, NewEvent, NewMemory) and patch
// resolution reject invalid input with the sentinel errors in errors.go.
// A rejected edit changes nothing.
package journal
