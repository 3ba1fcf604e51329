package duedate

import (
	"strconv"
	"strings"
	"time"
)

// civilDate is a calendar date with no time or zone.
type civilDate struct {
	year  int
	month time.Month
	day   int
}

func civilDateOf(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{year: y, month: m, day: d}
}

// addDays does calendar arithmetic in UTC so zone transitions cannot shift the
// result by a day.
func (d civilDate) addDays(n int) civilDate {
	return civilDateOf(time.Date(d.year, d.month, d.day+n, 0, 0, 0, 0, time.UTC))
}

func (d civilDate) weekday() time.Weekday {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC).Weekday()
}

type dayKind int

const (
	dayInvalid dayKind = iota
	dayToday
	dayTomorrow
	dayExplicitDate
	dayWeekday
)

// dayToken is the classified first token of a phrase.
type dayToken struct {
	kind     dayKind
	weekday  time.Weekday // dayWeekday
	explicit []string     // dayExplicitDate: the numeric groups
}

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// classifyDay assigns a lowercased token to exactly one kind, in priority
// order: today, tomorrow, explicit date, weekday name.
func classifyDay(tok string) dayToken {
	switch tok {
	case "today":
		return dayToken{kind: dayToday}
	case "tomorrow":
		return dayToken{kind: dayTomorrow}
	}
	if groups, ok := matchDateTemplate(tok); ok {
		return dayToken{kind: dayExplicitDate, explicit: groups}
	}
	if wd, ok := weekdayNames[tok]; ok {
		return dayToken{kind: dayWeekday, weekday: wd}
	}
	return dayToken{kind: dayInvalid}
}

// resolve maps the token to a calendar date relative to today.
func (t dayToken) resolve(today civilDate) (civilDate, bool) {
	switch t.kind {
	case dayToday:
		return today, true
	case dayTomorrow:
		return today.addDays(1), true
	case dayExplicitDate:
		return bindDateTemplate(t.explicit)
	case dayWeekday:
		// Strictly after today: naming today's weekday means a week from now.
		ahead := (int(t.weekday) - int(today.weekday()) + 7) % 7
		if ahead == 0 {
			ahead = 7
		}
		return today.addDays(ahead), true
	default:
		return civilDate{}, false
	}
}

type dateField int

const (
	fieldDay dateField = iota
	fieldMonth
	fieldYear
)

// dateTemplate is the numeric template for explicit dates, "%d-%d-%Y":
// two day-of-month groups and a four-digit year joined by literal dashes.
// Both leading groups bind the day field and nothing binds the month, so a
// token that matches the shape still cannot form a complete date.
var dateTemplate = []dateField{fieldDay, fieldDay, fieldYear}

var fieldWidth = map[dateField]struct{ min, max int }{
	fieldDay:   {1, 2},
	fieldMonth: {1, 2},
	fieldYear:  {4, 4},
}

// matchDateTemplate reports whether tok has the template's shape and returns
// its numeric groups.
func matchDateTemplate(tok string) ([]string, bool) {
	groups := strings.Split(tok, "-")
	if len(groups) != len(dateTemplate) {
		return nil, false
	}
	for i, g := range groups {
		w := fieldWidth[dateTemplate[i]]
		if len(g) < w.min || len(g) > w.max || !isDigits(g) {
			return nil, false
		}
	}
	return groups, true
}

// bindDateTemplate assigns each group to its template field. A field bound
// twice with different values, a field never bound, or a date that does not
// exist on the calendar all fail.
func bindDateTemplate(groups []string) (civilDate, bool) {
	var values [3]int
	var bound [3]bool
	for i, g := range groups {
		n, err := strconv.Atoi(g)
		if err != nil {
			return civilDate{}, false
		}
		f := dateTemplate[i]
		if bound[f] && values[f] != n {
			return civilDate{}, false
		}
		values[f], bound[f] = n, true
	}
	if !bound[fieldDay] || !bound[fieldMonth] || !bound[fieldYear] {
		return civilDate{}, false
	}

	d := civilDate{year: values[fieldYear], month: time.Month(values[fieldMonth]), day: values[fieldDay]}
	if d.addDays(0) != d {
		return civilDate{}, false
	}
	return d, true
}
