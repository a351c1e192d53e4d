package timeutil

import (
	"errors"
	"testing"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		start1, end1, start2, end2 string
		want                       bool
	}{
		{"touching intervals do not overlap", "08:00", "09:00", "09:00", "10:00", false},
		{"containment overlaps", "08:00", "10:00", "09:00", "09:30", true},
		{"identical intervals overlap", "08:00", "09:00", "08:00", "09:00", true},
		{"partial overlap", "08:30", "09:30", "09:00", "10:00", true},
		{"disjoint intervals", "08:00", "09:00", "10:00", "11:00", false},
		{"touching the other way", "09:00", "10:00", "08:00", "09:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.start1, tt.end1, tt.start2, tt.end2); got != tt.want {
				t.Errorf("Overlaps(%s,%s,%s,%s) = %v, want %v",
					tt.start1, tt.end1, tt.start2, tt.end2, got, tt.want)
			}
		})
	}
}

func TestDurationMinutes(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"08:00", "09:30", 90},
		{"08:00", "08:00", 0},
		{"00:00", "23:59", 1439},
		{"12:15", "13:00", 45},
	}

	for _, tt := range tests {
		got, err := DurationMinutes(tt.start, tt.end)
		if err != nil {
			t.Fatalf("DurationMinutes(%s,%s) returned error: %v", tt.start, tt.end, err)
		}
		if got != tt.want {
			t.Errorf("DurationMinutes(%s,%s) = %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestDurationMinutesReversedRange(t *testing.T) {
	_, err := DurationMinutes("10:00", "09:00")
	if !errors.Is(err, ErrReversedRange) {
		t.Errorf("expected ErrReversedRange, got %v", err)
	}
}

func TestDurationMinutesMalformed(t *testing.T) {
	for _, s := range []string{"8:00", "25:00", "08:60", "0800", "", "ab:cd"} {
		if _, err := DurationMinutes(s, "09:00"); !errors.Is(err, ErrInvalidClock) {
			t.Errorf("DurationMinutes(%q, ...) expected ErrInvalidClock, got %v", s, err)
		}
	}
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("13:45")
	if err != nil {
		t.Fatalf("ParseClock returned error: %v", err)
	}
	if c.Hour != 13 || c.Minute != 45 {
		t.Errorf("ParseClock(13:45) = %+v", c)
	}
	if c.Minutes() != 13*60+45 {
		t.Errorf("Minutes() = %d", c.Minutes())
	}
	if c.String() != "13:45" {
		t.Errorf("String() = %q", c.String())
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "08:00", "23:59"}
	invalid := []string{"24:00", "8:00", "08:5", "08-00"}

	for _, s := range valid {
		if !IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}
