package views

import "github.com/entrhq/kindred/pkg/journal"

// Group is the preferences of one category.
type Group struct {
	Category    journal.Category     `json:"category"`
	Label       string               `json:"label"`
	Preferences []journal.Preference `json:"preferences"`
}

// GroupPreferences returns one group per category in journal.Categories
// order, including empty groups. Preferences keep their stored order.
// Preferences with an unknown category are left out.
func GroupPreferences(prefs []journal.Preference) []Group {
	index := make(map[journal.Category]int, len(journal.Categories))
	groups := make([]Group, len(journal.Categories))
	for i, c := range journal.Categories {
		index[c] = i
		groups[i] = Group{Category: c, Label: c.Label(), Preferences: []journal.Preference{}}
	}

	for _, pref := range prefs {
		if i, ok := index[pref.Category]; ok {
			groups[i].Preferences = append(groups[i].Preferences, pref)
		}
	}
	return groups
}

// NonEmpty drops groups without preferences.
func NonEmpty(groups []Group) []Group {
	var out []Group
	for _, g := range groups {
		if len(g.Preferences) > 0 {
			out = append(out, g)
		}
	}
	return out
}
