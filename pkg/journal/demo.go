package journal

import "time"

// Demo returns the sample journal shown before anything has been saved.
// Its dates are relative to now.
func Demo(now time.Time) Database {
	birthday := NewDate(1995, time.May, 15)
	since := DateOf(now)
	when := now.UTC().Round(0)

	return Database{People: []*Person{{
		ID:            "demo-1",
		Name:          "Ivy",
		Glyph:         "🌿",
		Birthday:      &birthday,
		TogetherSince: &since,
		Links:         []Link{{Label: "WeChat", URL: "https://weixin.qq.com/"}},
		Preferences: []Preference{
			{ID: "pref-1", Category: CategoryFood, Label: "Sushi", Note: "Especially salmon", Importance: 4},
			{ID: "pref-2", Category: CategoryDrink, Label: "Oat latte", Note: "No sugar", Importance: 5},
			{ID: "pref-3", Category: CategoryFragrance, Label: "Wood Sage & Sea Salt", Note: "Everyday scent", Importance: 3},
		},
		Events: []Event{
			{ID: "event-1", Type: EventDate, Title: "First walk in the rain", When: when, Place: "Riverside park", Note: "Shared one umbrella, laughed the whole way"},
			{ID: "event-2", Type: EventGift, Title: "Handwritten postcard", When: when, Note: "Kept inside a favourite book"},
		},
	}}}
}
