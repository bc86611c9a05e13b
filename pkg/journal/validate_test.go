package journal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePerson(t *testing.T) {
	pref := Preference{ID: "pref-1", Category: CategoryFood, Label: "Sushi", Importance: 4}
	ev := Event{ID: "event-1", Type: EventDate, Title: "Walk", When: testNow}

	tests := []struct {
		name    string
		mutate  func(p *Person)
		wantErr error
		wantMsg string
	}{
		{name: "valid", mutate: func(*Person) {}},
		{name: "demo person", mutate: func(p *Person) { *p = *Demo(testNow).People[0] }},
		{name: "blank name", mutate: func(p *Person) { p.Name = "\t" }, wantErr: ErrEmptyName},
		{name: "empty link", mutate: func(p *Person) { p.Links = []Link{{Label: "x", URL: " "}} }, wantErr: ErrEmptyURL, wantMsg: "link 1"},
		{
			name:    "importance too high",
			mutate:  func(p *Person) { p.Preferences = append(p.Preferences, Preference{Category: CategoryOther, Label: "Mug", Importance: 9}) },
			wantErr: ErrImportanceOutOfRange,
			wantMsg: `preference "Mug"`,
		},
		{
			name:    "importance zero",
			mutate:  func(p *Person) { p.Preferences[0].Importance = 0 },
			wantErr: ErrImportanceOutOfRange,
		},
		{name: "unknown category", mutate: func(p *Person) { p.Preferences[0].Category = "nonsense" }, wantErr: ErrUnknownCategory},
		{name: "unknown event type", mutate: func(p *Person) { p.Events[0].Type = "bogus" }, wantErr: ErrUnknownEventType, wantMsg: `event "Walk"`},
		{name: "zero time", mutate: func(p *Person) { p.Events[0].When = time.Time{} }, wantErr: ErrMissingTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Person{
				ID:          "p",
				Name:        "Ivy",
				Links:       []Link{{Label: "Blog", URL: "https://example.com"}},
				Preferences: []Preference{pref},
				Events:      []Event{ev},
			}
			tt.mutate(p)

			err := ValidatePerson(p)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}

	assert.ErrorIs(t, ValidatePerson(nil), ErrPersonNotFound)
}

func TestValidateReportsUnreadableTime(t *testing.T) {
	var ev Event
	require.NoError(t, json.Unmarshal([]byte(`{"id":"e","type":"date","title":"Walk","when":"next tuesday"}`), &ev))

	err := ev.Validate()
	assert.ErrorIs(t, err, ErrMissingTime)
	assert.Contains(t, err.Error(), `"next tuesday"`)
}
