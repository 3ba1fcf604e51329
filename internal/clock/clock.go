// Package clock abstracts the current time so date-relative behaviour can be
// tested against a fixed anchor.
package clock

import "time"

// Clock supplies the current local time.
type Clock interface {
	Now() time.Time
}

// System is the production clock.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time {
	return time.Now()
}

// Fixed always returns the same instant.
type Fixed time.Time

// Now returns the fixed instant.
func (f Fixed) Now() time.Time {
	return time.Time(f)
}
