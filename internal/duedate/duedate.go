// Package duedate resolves short due-date phrases such as "friday 16:00" or
// "tomorrow 9:30" into absolute UTC instants.
//
// A phrase is exactly two whitespace-separated tokens: a day token and a
// 24-hour time token. Relative day tokens are resolved against a caller-supplied
// anchor, never the process clock, so resolution is a pure function of its
// inputs.
package duedate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFormat is returned for every phrase that cannot be resolved.
var ErrInvalidFormat = errors.New("invalid due date format")

// Resolve converts phrase into a UTC instant.
//
// now is the resolution anchor: its calendar date and weekday resolve the
// relative day tokens, and its Location is the zone the wall-clock reading is
// interpreted in. The zone offset applied is the one in effect on the resolved
// date, not on now.
func Resolve(phrase string, now time.Time) (time.Time, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(phrase)))
	if len(fields) != 2 {
		return time.Time{}, invalid(phrase)
	}

	hour, minute, ok := parseClock(fields[1])
	if !ok {
		return time.Time{}, invalid(phrase)
	}

	date, ok := classifyDay(fields[0]).resolve(civilDateOf(now))
	if !ok {
		return time.Time{}, invalid(phrase)
	}

	local := time.Date(date.year, date.month, date.day, hour, minute, 0, 0, now.Location())
	return local.UTC(), nil
}

// ResolveRFC3339 is Resolve with the result formatted as RFC 3339.
func ResolveRFC3339(phrase string, now time.Time) (string, error) {
	t, err := Resolve(phrase, now)
	if err != nil {
		return "", err
	}
	return t.Format(time.RFC3339), nil
}

func invalid(phrase string) error {
	return fmt.Errorf("%w: %q", ErrInvalidFormat, phrase)
}

// parseClock parses "H:MM" or "HH:MM" on a 24-hour clock.
func parseClock(s string) (hour, minute int, ok bool) {
	h, m, found := strings.Cut(s, ":")
	if !found {
		return 0, 0, false
	}
	hour, ok = parseBounded(h, 2, 23)
	if !ok {
		return 0, 0, false
	}
	minute, ok = parseBounded(m, 2, 59)
	if !ok {
		return 0, 0, false
	}
	return hour, minute, true
}

// parseBounded parses 1..maxDigits ASCII digits with a value no greater than limit.
func parseBounded(s string, maxDigits, limit int) (int, bool) {
	if s == "" || len(s) > maxDigits || !isDigits(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > limit {
		return 0, false
	}
	return n, true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
