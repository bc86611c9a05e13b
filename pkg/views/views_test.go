package views

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/kindred/pkg/journal"
)

var now = time.Date(2024, time.May, 14, 12, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) *journal.Date {
	v := journal.NewDate(y, m, d)
	return &v
}

func event(id string, typ journal.EventType, title string, when time.Time) journal.Event {
	return journal.Event{ID: id, Type: typ, Title: title, When: when}
}

func samplePerson() *journal.Person {
	return &journal.Person{
		ID:            "p1",
		Name:          "Ivy",
		Glyph:         "🌿",
		Birthday:      date(1995, time.May, 15),
		TogetherSince: date(2024, time.January, 1),
		Links:         []journal.Link{{Label: "WeChat", URL: "https://weixin.qq.com/"}},
		Preferences: []journal.Preference{
			{ID: "a", Category: journal.CategoryFood, Label: "Sushi", Note: "Especially salmon", Importance: 4},
			{ID: "b", Category: journal.CategoryDrink, Label: "Oat latte", Note: "No sugar", Importance: 5},
			{ID: "c", Category: journal.CategoryFood, Label: "Cilantro", Importance: 2, Polarity: journal.PolarityDislike},
		},
		Events: []journal.Event{
			{ID: "e1", Type: journal.EventDate, Title: "First walk in the rain", When: time.Date(2024, 5, 9, 10, 0, 0, 0, time.UTC), Place: "Riverside park", Note: "Shared one umbrella"},
			{ID: "e2", Type: journal.EventMemory, Title: "Stargazing", When: time.Date(2024, 5, 12, 20, 0, 0, 0, time.UTC), Note: "Stargazing\nCounted twelve meteors"},
			{ID: "e3", Type: journal.EventAnniversary, Title: "Six months", When: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func hitIDs(hits []Hit) []string {
	var ids []string
	for _, h := range hits {
		if h.Kind == HitPreference {
			ids = append(ids, h.Preference.ID)
		} else {
			ids = append(ids, h.Event.ID)
		}
	}
	return ids
}

func TestSearch(t *testing.T) {
	p := samplePerson()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "blank query", query: "   ", want: nil},
		{name: "label ignoring case", query: "SUSHI", want: []string{"a"}},
		{name: "preference note", query: "salmon", want: []string{"a"}},
		{name: "category", query: "drink", want: []string{"b"}},
		{name: "event place", query: "riverside", want: []string{"e1"}},
		{name: "event type", query: "anniversary", want: []string{"e3"}},
		{name: "preferences before events", query: "s", want: []string{"a", "b", "e1", "e2", "e3"}},
		{name: "no match", query: "karaoke", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hitIDs(Search(p, tt.query)))
		})
	}

	assert.Empty(t, Search(nil, "sushi"))
}

func TestHitAccessors(t *testing.T) {
	hits := Search(samplePerson(), "rain")
	require.Len(t, hits, 1)
	assert.Equal(t, "First walk in the rain", hits[0].Title())
	assert.Equal(t, "Shared one umbrella", hits[0].Note())

	hits = Search(samplePerson(), "salmon")
	require.Len(t, hits, 1)
	assert.Equal(t, "Sushi", hits[0].Title())
	assert.Equal(t, "Especially salmon", hits[0].Note())
}

func TestPartition(t *testing.T) {
	day := 24 * time.Hour
	events := []journal.Event{
		event("minus5", journal.EventDate, "a", now.Add(-5*day)),
		event("plus3", journal.EventGift, "b", now.Add(3*day)),
		event("minus1", journal.EventMilestone, "c", now.Add(-1*day)),
		event("memory", journal.EventMemory, "d", now.Add(-2*day)),
	}

	ov := Partition(events, now, DefaultLimit)

	assert.Equal(t, []string{"plus3"}, ids(ov.Upcoming))
	assert.Equal(t, []string{"minus1", "minus5"}, ids(ov.RecentPast))
	assert.Equal(t, []string{"memory"}, ids(ov.RecentMemories))
}

func TestPartitionLimitAndBoundary(t *testing.T) {
	var events []journal.Event
	for i := 0; i < 5; i++ {
		events = append(events, event(string(rune('a'+i)), journal.EventDate, "x", now.Add(time.Duration(i)*time.Hour)))
	}

	ov := Partition(events, now, 0)
	assert.Equal(t, []string{"a", "b", "c"}, ids(ov.Upcoming), "an event exactly at now is upcoming")

	ov = Partition(events, now, 10)
	assert.Len(t, ov.Upcoming, 5)
}

func TestTimelineAndMemoryFeed(t *testing.T) {
	p := samplePerson()

	assert.Equal(t, []string{"e3", "e2", "e1"}, ids(Timeline(p.Events)))
	assert.Equal(t, []string{"e1", "e2", "e3"}, ids(p.Events), "input is not reordered")

	withMilestone := append(p.Events, event("m", journal.EventMilestone, "Moved in", now.Add(-time.Hour)))
	assert.Equal(t, []string{"m", "e2"}, ids(MemoryFeed(withMilestone)))
}

func TestGroupPreferences(t *testing.T) {
	p := samplePerson()

	groups := GroupPreferences(p.Preferences)
	require.Len(t, groups, len(journal.Categories))
	for i, c := range journal.Categories {
		assert.Equal(t, c, groups[i].Category)
	}
	assert.Equal(t, "Sushi", groups[0].Preferences[0].Label)
	assert.Equal(t, "Cilantro", groups[0].Preferences[1].Label)
	assert.Empty(t, groups[len(groups)-1].Preferences)

	// Grouping is idempotent.
	var flat []journal.Preference
	for _, g := range groups {
		flat = append(flat, g.Preferences...)
	}
	assert.Equal(t, groups, GroupPreferences(flat))

	assert.Len(t, NonEmpty(groups), 2)
}

func TestAge(t *testing.T) {
	bday := journal.NewDate(1995, time.May, 15)
	assert.Equal(t, 28, Age(bday, time.Date(2024, 5, 14, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, 29, Age(bday, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)))
}

func TestWesternZodiac(t *testing.T) {
	tests := []struct {
		month time.Month
		day   int
		want  string
	}{
		{time.February, 19, "Pisces"},
		{time.February, 18, "Aquarius"},
		{time.January, 19, "Capricorn"},
		{time.January, 20, "Aquarius"},
		{time.March, 20, "Pisces"},
		{time.March, 21, "Aries"},
		{time.May, 15, "Taurus"},
		{time.July, 22, "Cancer"},
		{time.November, 22, "Sagittarius"},
		{time.December, 21, "Sagittarius"},
		{time.December, 22, "Capricorn"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, WesternZodiac(journal.NewDate(2000, tt.month, tt.day)))
		})
	}
}

func TestChineseZodiac(t *testing.T) {
	assert.Equal(t, "Dragon", ChineseZodiac(2000))
	assert.Equal(t, "Pig", ChineseZodiac(1995))
	assert.Equal(t, "Rat", ChineseZodiac(4))
	assert.Equal(t, "Pig", ChineseZodiac(3))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 10, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, 9, DaysBetween(a, b))
	assert.Equal(t, 0, DaysBetween(b, a))
	assert.Equal(t, 9, DaysTogether(date(2024, time.January, 1), b))
	assert.Equal(t, 0, DaysTogether(nil, b))
}

func TestPersonalFacts(t *testing.T) {
	f := PersonalFacts(samplePerson(), now)
	require.NotNil(t, f.Age)
	assert.Equal(t, 28, *f.Age)
	assert.Equal(t, "Taurus", f.WesternZodiac)
	assert.Equal(t, "Pig", f.ChineseZodiac)
	require.NotNil(t, f.DaysTogether)
	assert.Equal(t, 134, *f.DaysTogether)

	empty := PersonalFacts(&journal.Person{Name: "x"}, now)
	assert.Nil(t, empty.Age)
	assert.Nil(t, empty.DaysTogether)
	assert.Empty(t, empty.Lines())
}

func TestMatchPeople(t *testing.T) {
	people := []*journal.Person{{ID: "1", Name: "Ivy"}, {ID: "2", Name: "Ada"}, {ID: "3", Name: "Adam"}}

	tests := []struct {
		pattern string
		want    []string
	}{
		{pattern: "", want: []string{"1", "2", "3"}},
		{pattern: "ad*", want: []string{"2", "3"}},
		{pattern: "AD?", want: []string{"2"}},
		{pattern: "iv", want: []string{"1"}},
		{pattern: "{ivy,adam}", want: []string{"1", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := MatchPeople(people, tt.pattern)
			require.NoError(t, err)
			var gotIDs []string
			for _, p := range got {
				gotIDs = append(gotIDs, p.ID)
			}
			assert.Equal(t, tt.want, gotIDs)
		})
	}

	_, err := MatchPeople(people, "[")
	assert.Error(t, err)
}

func TestRenderCardGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "card", []byte(RenderCard(samplePerson(), now)))
}

func TestMarkdownRoundTrip(t *testing.T) {
	p := samplePerson()

	data, err := RenderMarkdown(p, now)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# 🌿 Ivy\n")

	got, err := ParseMarkdown(data)
	require.NoError(t, err)

	want, err := json.Marshal(p)
	require.NoError(t, err)
	have, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(have))
}

func TestParseMarkdownErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "no front-matter", raw: "# Ivy\n", wantErr: ErrMissingFrontMatter},
		{name: "unclosed", raw: "---\nversion: 1\n", wantErr: ErrUnclosedFrontMatter},
		{name: "wrong version", raw: "---\nversion: 7\nperson:\n  name: Ivy\n---\n", wantErr: ErrUnsupportedCard},
		{name: "no name", raw: "---\nversion: 1\nperson:\n  id: x\n---\n", wantErr: journal.ErrEmptyName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMarkdown([]byte(tt.raw))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func ids(events []journal.Event) []string {
	var out []string
	for _, ev := range events {
		out = append(out, ev.ID)
	}
	return out
}
