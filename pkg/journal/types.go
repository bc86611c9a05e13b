package journal

import (
	"strings"
	"time"
)

// Category classifies a Preference.
type Category string

const (
	CategoryFood      Category = "food"
	CategoryDrink     Category = "drink"
	CategoryDessert   Category = "dessert"
	CategoryFashion   Category = "fashion"
	CategoryFragrance Category = "fragrance"
	CategoryMusic     Category = "music"
	CategoryActivity  Category = "activity"
	CategoryPlace     Category = "place"
	CategoryMovie     Category = "movie"
	CategoryBook      Category = "book"
	CategoryColor     Category = "color"
	CategoryOther     Category = "other"
)

// Categories lists every Category in display order.
var Categories = []Category{
	CategoryFood, CategoryDrink, CategoryDessert, CategoryFashion,
	CategoryFragrance, CategoryMusic, CategoryActivity, CategoryPlace,
	CategoryMovie, CategoryBook, CategoryColor, CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryFood:      "Food",
	CategoryDrink:     "Drinks",
	CategoryDessert:   "Desserts",
	CategoryFashion:   "Fashion",
	CategoryFragrance: "Fragrance",
	CategoryMusic:     "Music",
	CategoryActivity:  "Activities",
	CategoryPlace:     "Places",
	CategoryMovie:     "Movies",
	CategoryBook:      "Books",
	CategoryColor:     "Colors",
	CategoryOther:     "Other",
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display name of c.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// EventType classifies an Event.
type EventType string

const (
	EventDate        EventType = "date"
	EventGift        EventType = "gift"
	EventMemory      EventType = "memory"
	EventMilestone   EventType = "milestone"
	EventAnniversary EventType = "anniversary"
)

// EventTypes lists every EventType in display order.
var EventTypes = []EventType{EventDate, EventGift, EventMemory, EventMilestone, EventAnniversary}

var eventTypeLabels = map[EventType]string{
	EventDate:        "Date",
	EventGift:        "Gift",
	EventMemory:      "Memory",
	EventMilestone:   "Milestone",
	EventAnniversary: "Anniversary",
}

// Valid reports whether t is one of EventTypes.
func (t EventType) Valid() bool {
	_, ok := eventTypeLabels[t]
	return ok
}

// Label returns the display name of t.
func (t EventType) Label() string {
	if l, ok := eventTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Polarity records whether a preference is a like or a dislike.
type Polarity string

const (
	PolarityUnset   Polarity = ""
	PolarityLike    Polarity = "like"
	PolarityDislike Polarity = "dislike"
)

// Valid reports whether p is unset, like or dislike.
func (p Polarity) Valid() bool {
	return p == PolarityUnset || p == PolarityLike || p == PolarityDislike
}

const (
	MinImportance = 1
	MaxImportance = 5

	// DefaultGlyph is shown for a person without a glyph.
	DefaultGlyph = "💞"
)

// Link is a labelled URL attached to a person.
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// Preference is something a person likes or dislikes.
type Preference struct {
	ID         string   `json:"id" yaml:"id"`
	Category   Category `json:"category" yaml:"category"`
	Label      string   `json:"label" yaml:"label"`
	Note       string   `json:"note,omitempty" yaml:"note,omitempty"`
	Importance int      `json:"importance" yaml:"importance"`
	Polarity   Polarity `json:"polarity,omitempty" yaml:"polarity,omitempty"`
}

// Event is a dated entry: a date, gift, memory, milestone or anniversary.
type Event struct {
	ID    string    `json:"id" yaml:"id"`
	Type  EventType `json:"type" yaml:"type"`
	Title string    `json:"title" yaml:"title"`
	When  time.Time `json:"when" yaml:"when"`
	Place string    `json:"place,omitempty" yaml:"place,omitempty"`
	Note  string    `json:"note,omitempty" yaml:"note,omitempty"`

	// rawWhen keeps a stored time that could not be parsed so it is
	// written back unchanged.
	rawWhen string
}

// UnreadableWhen returns the stored time text when it could not be parsed.
// When is zero in that case.
func (e Event) UnreadableWhen() string {
	if !e.When.IsZero() {
		return ""
	}
	return e.rawWhen
}

// IsMemory reports whether e is a free-text memory.
func (e Event) IsMemory() bool {
	return e.Type == EventMemory
}

// Person is someone the journal keeps facts about.
type Person struct {
	ID            string       `json:"id" yaml:"id"`
	Name          string       `json:"name" yaml:"name"`
	Glyph         string       `json:"emoji" yaml:"emoji,omitempty"`
	Photo         string       `json:"photo,omitempty" yaml:"photo,omitempty"`
	Birthday      *Date        `json:"birthday,omitempty" yaml:"birthday,omitempty"`
	TogetherSince *Date        `json:"togetherSince,omitempty" yaml:"together_since,omitempty"`
	Links         []Link       `json:"links" yaml:"links,omitempty"`
	Preferences   []Preference `json:"preferences" yaml:"preferences,omitempty"`
	Events        []Event      `json:"events" yaml:"events,omitempty"`
}

// DisplayGlyph returns the glyph to show for p, substituting DefaultGlyph
// when none is set.
func (p *Person) DisplayGlyph() string {
	if g := strings.TrimSpace(p.Glyph); g != "" {
		return g
	}
	return DefaultGlyph
}

// Avatar returns the photo reference when set, else DisplayGlyph. A photo
// takes precedence when both are stored.
func (p *Person) Avatar() string {
	if p.Photo != "" {
		return p.Photo
	}
	return p.DisplayGlyph()
}

// FindPreference returns the preference with id, or nil.
func (p *Person) FindPreference(id string) *Preference {
	for i := range p.Preferences {
		if p.Preferences[i].ID == id {
			return &p.Preferences[i]
		}
	}
	return nil
}

// FindEvent returns the event with id, or nil.
func (p *Person) FindEvent(id string) *Event {
	for i := range p.Events {
		if p.Events[i].ID == id {
			return &p.Events[i]
		}
	}
	return nil
}
