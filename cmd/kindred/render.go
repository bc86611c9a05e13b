package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/kindred/pkg/journal"
	"github.com/entrhq/kindred/pkg/views"
)

const dateTimeLayout = "2006-01-02 15:04"

func renderPeople(w io.Writer, people []*journal.Person, activeID string) {
	if len(people) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("Add your first person to start remembering ✨"))
		return
	}
	for _, p := range people {
		marker := "  "
		name := p.Name
		if p.ID == activeID {
			marker = activeStyle.Render("● ")
			name = activeStyle.Render(name)
		}
		line := fmt.Sprintf("%s%s %s  %s", marker, p.DisplayGlyph(), name, mutedStyle.Render(p.ID))
		if p.TogetherSince != nil {
			line += mutedStyle.Render("  together since " + p.TogetherSince.String())
		}
		fmt.Fprintln(w, line)
	}
}

func renderHero(w io.Writer, p *journal.Person, now time.Time) {
	var lines []string
	lines = append(lines, titleStyle.Render(p.DisplayGlyph()+" "+p.Name))
	if p.Photo != "" {
		lines = append(lines, mutedStyle.Render("photo: "+truncate(p.Photo, 48)))
	}
	if p.TogetherSince != nil {
		days := views.DaysTogether(p.TogetherSince, now)
		lines = append(lines, fmt.Sprintf("Together %s days", successStyle.Render(fmt.Sprint(days))))
	}
	for _, l := range p.Links {
		lines = append(lines, mutedStyle.Render("🔗 "+l.Label+" "+l.URL))
	}
	fmt.Fprintln(w, cardStyle.Render(strings.Join(lines, "\n")))
}

func renderFacts(w io.Writer, facts views.Facts) {
	lines := facts.Lines()
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w, sectionStyle.Render("About"))
	for _, f := range lines {
		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(f.Label), f.Value))
	}
}

func renderOverview(w io.Writer, ov views.Overview, now time.Time) {
	fmt.Fprintln(w, sectionStyle.Render("Recent memories"))
	if len(ov.RecentMemories) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No memories yet. Record a small, warm detail with `kindred memory add` ✨"))
	}
	for _, ev := range ov.RecentMemories {
		fmt.Fprintf(w, "%s  %s\n", mutedStyle.Render(whenText(ev, now, "2006-01-02")), ev.Title)
	}

	fmt.Fprintln(w, sectionStyle.Render("Upcoming"))
	if len(ov.Upcoming) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("Nothing planned."))
	}
	for _, ev := range ov.Upcoming {
		fmt.Fprintln(w, eventLine(ev, now))
	}

	fmt.Fprintln(w, sectionStyle.Render("Recently"))
	if len(ov.RecentPast) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No past events."))
	}
	for _, ev := range ov.RecentPast {
		fmt.Fprintf(w, "%s  %s\n", eventLine(ev, now), mutedStyle.Render(fmt.Sprintf("%d days ago", views.DaysAgo(ev, now))))
	}
}

func renderGroups(w io.Writer, groups []views.Group) {
	if len(groups) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No preferences recorded."))
		return
	}
	for _, g := range groups {
		fmt.Fprintln(w, sectionStyle.Render(g.Label))
		for _, pref := range g.Preferences {
			fmt.Fprintln(w, preferenceLine(pref))
		}
	}
}

func preferenceLine(pref journal.Preference) string {
	line := fmt.Sprintf("  %s %s", pref.Label, successStyle.Render(views.Stars(pref.Importance)))
	if pref.Polarity == journal.PolarityDislike {
		line += errorStyle.Render(" (dislike)")
	}
	if pref.Note != "" {
		line += mutedStyle.Render(" · " + pref.Note)
	}
	return line + mutedStyle.Render("  "+pref.ID)
}

func renderEvents(w io.Writer, events []journal.Event, now time.Time) {
	if len(events) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No events recorded."))
		return
	}
	for _, ev := range events {
		fmt.Fprintln(w, eventLine(ev, now)+mutedStyle.Render("  "+ev.ID))
		if ev.Note != "" && ev.Note != ev.Title {
			for _, line := range strings.Split(ev.Note, "\n") {
				fmt.Fprintln(w, mutedStyle.Render("    "+line))
			}
		}
	}
}

// whenText formats ev.When in now's zone. A time that could not be read
// from storage shows as unknown.
func whenText(ev journal.Event, now time.Time, layout string) string {
	if ev.When.IsZero() {
		return "unknown date"
	}
	return ev.When.In(now.Location()).Format(layout)
}

func eventLine(ev journal.Event, now time.Time) string {
	line := fmt.Sprintf("  %s  %s  %s",
		mutedStyle.Render(whenText(ev, now, dateTimeLayout)),
		labelStyle.Width(12).Render(ev.Type.Label()),
		ev.Title)
	if ev.Place != "" {
		line += mutedStyle.Render(" @ " + ev.Place)
	}
	return line
}

func renderHits(w io.Writer, hits []views.Hit) {
	if len(hits) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No matches."))
		return
	}
	for _, h := range hits {
		kind := labelStyle.Width(12).Render(string(h.Kind))
		line := fmt.Sprintf("  %s %s", kind, h.Title())
		if note := h.Note(); note != "" {
			line += mutedStyle.Render(" · " + firstLine(note))
		}
		fmt.Fprintln(w, line)
	}
}

func firstLine(s string) string {
	first, _, _ := strings.Cut(s, "\n")
	return first
}

func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n]) + "…"
	}
	return s
}
