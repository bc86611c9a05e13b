package views

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/entrhq/kindred/pkg/journal"
)

// MatchPeople returns the people whose name matches pattern, ignoring
// case, in stored order. The pattern is a glob; one without wildcards
// matches anywhere in the name. An empty pattern matches everyone.
func MatchPeople(people []*journal.Person, pattern string) ([]*journal.Person, error) {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		out := make([]*journal.Person, len(people))
		copy(out, people)
		return out, nil
	}
	if !strings.ContainsAny(pattern, "*?[{") {
		pattern = "*" + pattern + "*"
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid name pattern '%s': %w", pattern, err)
	}

	out := make([]*journal.Person, 0, len(people))
	for _, p := range people {
		if g.Match(strings.ToLower(p.Name)) {
			out = append(out, p)
		}
	}
	return out, nil
}
