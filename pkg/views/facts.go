package views

import (
	"strconv"
	"time"

	"github.com/entrhq/kindred/pkg/journal"
)

// Age returns the completed years between birthday and now.
func Age(birthday journal.Date, now time.Time) int {
	y, m, d := now.Date()
	age := y - birthday.Year
	if m < birthday.Month || (m == birthday.Month && d < birthday.Day) {
		age--
	}
	return age
}

type sign struct {
	name  string
	month time.Month
	day   int // first day of the sign
}

// Signs in calendar order of their start date.
var westernSigns = []sign{
	{"Capricorn", time.January, 1},
	{"Aquarius", time.January, 20},
	{"Pisces", time.February, 19},
	{"Aries", time.March, 21},
	{"Taurus", time.April, 20},
	{"Gemini", time.May, 21},
	{"Cancer", time.June, 21},
	{"Leo", time.July, 23},
	{"Virgo", time.August, 23},
	{"Libra", time.September, 23},
	{"Scorpio", time.October, 23},
	{"Sagittarius", time.November, 22},
	{"Capricorn", time.December, 22},
}

// WesternZodiac returns the sun sign for the month and day of d.
func WesternZodiac(d journal.Date) string {
	name := westernSigns[0].name
	for _, s := range westernSigns {
		if d.Month > s.month || (d.Month == s.month && d.Day >= s.day) {
			name = s.name
		}
	}
	return name
}

var chineseAnimals = [12]string{
	"Rat", "Ox", "Tiger", "Rabbit", "Dragon", "Snake",
	"Horse", "Goat", "Monkey", "Rooster", "Dog", "Pig",
}

// ChineseZodiac returns the animal of year. The cycle is anchored on 4 AD
// and follows calendar years, not lunar new year.
func ChineseZodiac(year int) string {
	i := (year - 4) % 12
	if i < 0 {
		i += 12
	}
	return chineseAnimals[i]
}

// DaysBetween returns the whole calendar days from a to b, each taken at
// midnight in its own location. It is zero when b is before a.
func DaysBetween(a, b time.Time) int {
	d1 := journal.DateOf(a).In(time.UTC)
	d2 := journal.DateOf(b).In(time.UTC)
	days := int(d2.Sub(d1).Hours() / 24)
	return max(days, 0)
}

// DaysTogether returns the days from since to now, zero when since is nil.
func DaysTogether(since *journal.Date, now time.Time) int {
	if since == nil {
		return 0
	}
	return DaysBetween(since.In(now.Location()), now)
}

// Facts are the personal details shown alongside a person.
type Facts struct {
	Birthday      *journal.Date `json:"birthday,omitempty"`
	Age           *int          `json:"age,omitempty"`
	WesternZodiac string        `json:"westernZodiac,omitempty"`
	ChineseZodiac string        `json:"chineseZodiac,omitempty"`
	TogetherSince *journal.Date `json:"togetherSince,omitempty"`
	DaysTogether  *int          `json:"daysTogether,omitempty"`
}

// PersonalFacts derives Facts for p. Fields depending on a missing date
// are left unset.
func PersonalFacts(p *journal.Person, now time.Time) Facts {
	var f Facts
	if p == nil {
		return f
	}
	if b := p.Birthday; b != nil {
		age := Age(*b, now)
		f.Birthday = b
		f.Age = &age
		f.WesternZodiac = WesternZodiac(*b)
		f.ChineseZodiac = ChineseZodiac(b.Year)
	}
	if s := p.TogetherSince; s != nil {
		days := DaysTogether(s, now)
		f.TogetherSince = s
		f.DaysTogether = &days
	}
	return f
}

// Fact is one labelled line of Facts.
type Fact struct {
	Label string
	Value string
}

// Lines flattens f into labelled values in display order.
func (f Facts) Lines() []Fact {
	var out []Fact
	if f.Birthday != nil {
		out = append(out, Fact{"Birthday", f.Birthday.String()})
		if f.Age != nil {
			out = append(out, Fact{"Age", strconv.Itoa(*f.Age)})
		}
		out = append(out,
			Fact{"Zodiac", f.WesternZodiac},
			Fact{"Chinese zodiac", f.ChineseZodiac},
		)
	}
	if f.TogetherSince != nil {
		out = append(out, Fact{"Together since", f.TogetherSince.String()})
		if f.DaysTogether != nil {
			out = append(out, Fact{"Days together", strconv.Itoa(*f.DaysTogether)})
		}
	}
	return out
}
