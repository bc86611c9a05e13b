package views

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/entrhq/kindred/pkg/journal"
)

const (
	frontMatterDelimiter = "---"
	cardVersion          = 1
)

var (
	ErrMissingFrontMatter  = errors.New("views: missing front-matter delimiter")
	ErrUnclosedFrontMatter = errors.New("views: unclosed front-matter block")
	ErrUnsupportedCard     = errors.New("views: unsupported card version")
)

// cardMeta is the front-matter of a person card. It carries the complete
// person so a card can be imported again.
type cardMeta struct {
	Version int             `yaml:"version"`
	Person  *journal.Person `yaml:"person"`
}

// RenderMarkdown renders p as a Markdown card: YAML front-matter holding
// the full person, followed by the readable body from RenderCard.
func RenderMarkdown(p *journal.Person, now time.Time) ([]byte, error) {
	if p == nil {
		return nil, journal.ErrPersonNotFound
	}
	yamlBytes, err := yaml.Marshal(&cardMeta{Version: cardVersion, Person: p})
	if err != nil {
		return nil, fmt.Errorf("views: serialize error: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(frontMatterDelimiter + "\n")
	sb.Write(yamlBytes)
	sb.WriteString(frontMatterDelimiter + "\n\n")
	sb.WriteString(RenderCard(p, now))
	return []byte(sb.String()), nil
}

// ParseMarkdown reads the person back from a card produced by
// RenderMarkdown. The body is ignored.
func ParseMarkdown(raw []byte) (*journal.Person, error) {
	s := string(raw)
	if !strings.HasPrefix(s, frontMatterDelimiter) {
		return nil, ErrMissingFrontMatter
	}
	rest := s[len(frontMatterDelimiter):]
	idx := strings.Index(rest, "\n"+frontMatterDelimiter)
	if idx == -1 {
		return nil, ErrUnclosedFrontMatter
	}

	var meta cardMeta
	if err := yaml.Unmarshal([]byte(rest[:idx]), &meta); err != nil {
		return nil, fmt.Errorf("views: front-matter parse error: %w", err)
	}
	if meta.Version != cardVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedCard, meta.Version)
	}
	if meta.Person == nil || strings.TrimSpace(meta.Person.Name) == "" {
		return nil, journal.ErrEmptyName
	}
	meta.Person.Normalize()
	return meta.Person, nil
}

// RenderCard renders the readable Markdown body for p: facts, preferences
// by category and the timeline.
func RenderCard(p *journal.Person, now time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s %s\n", p.DisplayGlyph(), p.Name)
	if p.Photo != "" {
		fmt.Fprintf(&sb, "\n![%s](%s)\n", p.Name, p.Photo)
	}

	if lines := PersonalFacts(p, now).Lines(); len(lines) > 0 {
		sb.WriteString("\n")
		for _, f := range lines {
			fmt.Fprintf(&sb, "- **%s:** %s\n", f.Label, f.Value)
		}
	}

	if len(p.Links) > 0 {
		sb.WriteString("\n## Links\n\n")
		for _, l := range p.Links {
			fmt.Fprintf(&sb, "- [%s](%s)\n", l.Label, l.URL)
		}
	}

	if groups := NonEmpty(GroupPreferences(p.Preferences)); len(groups) > 0 {
		sb.WriteString("\n## Preferences\n")
		for _, g := range groups {
			fmt.Fprintf(&sb, "\n### %s\n\n", g.Label)
			for _, pref := range g.Preferences {
				sb.WriteString("- " + preferenceLine(pref) + "\n")
			}
		}
	}

	if events := Timeline(p.Events); len(events) > 0 {
		sb.WriteString("\n## Timeline\n\n")
		for _, ev := range events {
			sb.WriteString("- " + eventLine(ev, now.Location()) + "\n")
			if ev.Note != "" && ev.Note != ev.Title {
				for _, line := range strings.Split(ev.Note, "\n") {
					sb.WriteString("  " + line + "\n")
				}
			}
		}
	}

	return sb.String()
}

// Stars renders importance as five filled or empty stars.
func Stars(importance int) string {
	n := min(max(importance, 0), journal.MaxImportance)
	return strings.Repeat("★", n) + strings.Repeat("☆", journal.MaxImportance-n)
}

func preferenceLine(pref journal.Preference) string {
	line := pref.Label + " " + Stars(pref.Importance)
	if pref.Polarity == journal.PolarityDislike {
		line += " (dislike)"
	}
	if pref.Note != "" {
		line += " · " + pref.Note
	}
	return line
}

func eventLine(ev journal.Event, loc *time.Location) string {
	date := "unknown date"
	if !ev.When.IsZero() {
		date = ev.When.In(loc).Format("2006-01-02")
	}
	line := fmt.Sprintf("%s · %s · %s", date, ev.Type.Label(), ev.Title)
	if ev.Place != "" {
		line += " @ " + ev.Place
	}
	return line
}
