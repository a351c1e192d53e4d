// Package timeutil provides comparison and duration arithmetic over
// "HH:MM" wall-clock strings as they appear in schedules and period
// tables. Zero-padded clock strings sort the same lexicographically as
// they do numerically, which keeps the overlap test allocation free.
package timeutil

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrInvalidClock is returned for values that are not well-formed
	// zero-padded "HH:MM" strings.
	ErrInvalidClock = errors.New("invalid clock value")

	// ErrReversedRange is returned when a range ends before it starts.
	ErrReversedRange = errors.New("time range ends before it starts")
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// Clock is a minute-of-day representation of an "HH:MM" value.
type Clock struct {
	Hour   int
	Minute int
}

// Minutes returns the clock value as minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// String formats the clock back to zero-padded "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClock parses a zero-padded "HH:MM" string.
func ParseClock(s string) (Clock, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	// The pattern guarantees two digits each, so manual conversion is safe.
	return Clock{
		Hour:   int(s[0]-'0')*10 + int(s[1]-'0'),
		Minute: int(s[3]-'0')*10 + int(s[4]-'0'),
	}, nil
}

// IsValidClock reports whether s is a well-formed "HH:MM" value.
func IsValidClock(s string) bool {
	return clockPattern.MatchString(s)
}

// Overlaps reports whether the half-open intervals [start1,end1) and
// [start2,end2) intersect. Touching intervals do not overlap.
//
// Inputs must be well-formed "HH:MM" strings; validate with IsValidClock
// upstream, the comparison here is plain lexicographic ordering.
func Overlaps(start1, end1, start2, end2 string) bool {
	return start1 < end2 && end1 > start2
}

// DurationMinutes returns the number of minutes between two clock values
// on the same day. A range that ends before it starts is rejected rather
// than silently producing a negative duration.
func DurationMinutes(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	if e.Minutes() < s.Minutes() {
		return 0, fmt.Errorf("%w: %s-%s", ErrReversedRange, start, end)
	}
	return e.Minutes() - s.Minutes(), nil
}
