package views

import (
	"slices"
	"time"

	"github.com/entrhq/kindred/pkg/journal"
)

// DefaultLimit is the number of entries per overview list.
const DefaultLimit = 3

// Overview is the at-a-glance partition of a person's events.
type Overview struct {
	// Upcoming holds events at or after now, soonest first.
	Upcoming []journal.Event `json:"upcoming"`
	// RecentPast holds non-memory events before now, latest first.
	RecentPast []journal.Event `json:"recentPast"`
	// RecentMemories holds memories regardless of time, latest first.
	RecentMemories []journal.Event `json:"recentMemories"`
}

// Partition splits events into the overview lists, each cut to limit
// entries. A limit below one means DefaultLimit.
func Partition(events []journal.Event, now time.Time, limit int) Overview {
	if limit < 1 {
		limit = DefaultLimit
	}

	var ov Overview
	for _, ev := range events {
		if !ev.When.Before(now) {
			ov.Upcoming = append(ov.Upcoming, ev)
		} else if !ev.IsMemory() {
			ov.RecentPast = append(ov.RecentPast, ev)
		}
		if ev.IsMemory() {
			ov.RecentMemories = append(ov.RecentMemories, ev)
		}
	}

	slices.SortStableFunc(ov.Upcoming, ascending)
	slices.SortStableFunc(ov.RecentPast, descending)
	slices.SortStableFunc(ov.RecentMemories, descending)

	ov.Upcoming = head(ov.Upcoming, limit)
	ov.RecentPast = head(ov.RecentPast, limit)
	ov.RecentMemories = head(ov.RecentMemories, limit)
	return ov
}

// Timeline returns every event, latest first.
func Timeline(events []journal.Event) []journal.Event {
	out := slices.Clone(events)
	slices.SortStableFunc(out, descending)
	return out
}

// MemoryFeed returns memories and milestones, latest first.
func MemoryFeed(events []journal.Event) []journal.Event {
	var out []journal.Event
	for _, ev := range events {
		if ev.Type == journal.EventMemory || ev.Type == journal.EventMilestone {
			out = append(out, ev)
		}
	}
	slices.SortStableFunc(out, descending)
	return out
}

// DaysAgo returns the whole days from ev to now, zero for future events.
func DaysAgo(ev journal.Event, now time.Time) int {
	return DaysBetween(ev.When.In(now.Location()), now)
}

func ascending(a, b journal.Event) int {
	return a.When.Compare(b.When)
}

func descending(a, b journal.Event) int {
	return b.When.Compare(a.When)
}

func head(events []journal.Event, n int) []journal.Event {
	if len(events) > n {
		return events[:n]
	}
	return events
}
