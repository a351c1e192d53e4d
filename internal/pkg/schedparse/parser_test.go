package schedparse

import (
	"strings"
	"testing"

	"github.com/peiyu/classmeet/internal/app/models"
)

func TestParseDayHeaderThenCourseLine(t *testing.T) {
	text := "星期一\n08:00-09:00 Calculus"

	result := Parse(text)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Courses) != 1 {
		t.Fatalf("expected 1 course, got %d", len(result.Courses))
	}
	course := result.Courses[0]
	if course.Name != "Calculus" {
		t.Errorf("name = %q, want Calculus", course.Name)
	}
	if course.Day != models.Monday {
		t.Errorf("day = %q, want monday", course.Day)
	}
	if course.StartTime != "08:00" || course.EndTime != "09:00" {
		t.Errorf("time range = %s-%s, want 08:00-09:00", course.StartTime, course.EndTime)
	}
	if course.Period != "Period 1" {
		t.Errorf("period = %q, want Period 1", course.Period)
	}
}

func TestParseEnglishDayTokensAndPadding(t *testing.T) {
	text := strings.Join([]string{
		"Monday",
		"8:00-9:00 Linear Algebra",
		"Tue",
		"10:00~11:30 Data Structures",
	}, "\n")

	result := Parse(text)

	if len(result.Courses) != 2 {
		t.Fatalf("expected 2 courses, got %d: %+v", len(result.Courses), result.Courses)
	}
	first := result.Courses[0]
	if first.Day != models.Monday || first.StartTime != "08:00" || first.EndTime != "09:00" {
		t.Errorf("first course = %+v", first)
	}
	second := result.Courses[1]
	if second.Day != models.Tuesday || second.StartTime != "10:00" || second.Period != "Period 3" {
		t.Errorf("second course = %+v", second)
	}
}

func TestParseNameOnSeparateLine(t *testing.T) {
	// The time line falls through to name extraction, but a bare time
	// range leaves nothing after stripping. The name arrives on the
	// next line with the rolling state still set.
	text := "週三\n13:00-14:00\n普通物理學"

	result := Parse(text)

	if len(result.Courses) != 1 {
		t.Fatalf("expected 1 course, got %d", len(result.Courses))
	}
	course := result.Courses[0]
	if course.Name != "普通物理學" || course.Day != models.Wednesday || course.Period != "Period 6" {
		t.Errorf("course = %+v", course)
	}
}

func TestParseSkipsNumericAndShortRemainders(t *testing.T) {
	text := strings.Join([]string{
		"星期五",
		"09:00-10:00 12345", // purely numeric remainder
		"09:00-10:00 ab",    // too short after trimming
	}, "\n")

	result := Parse(text)

	if len(result.Courses) != 0 {
		t.Fatalf("expected no courses, got %+v", result.Courses)
	}
}

func TestParseUnrecognizableTextYieldsDiagnostic(t *testing.T) {
	result := Parse("lunch menu\nsoup of the day\n42")

	if len(result.Courses) != 0 {
		t.Fatalf("expected no courses, got %+v", result.Courses)
	}
	if len(result.Errors) == 0 {
		t.Fatal("expected a diagnostic in Errors")
	}
}

func TestParseOffHourStartUsesComputedLabel(t *testing.T) {
	result := Parse("星期二\n14:10-16:00 Organic Chemistry")

	if len(result.Courses) != 1 {
		t.Fatalf("expected 1 course, got %d", len(result.Courses))
	}
	if got := result.Courses[0].Period; got != "Period 7" {
		t.Errorf("period = %q, want approximate Period 7", got)
	}
}

func TestParseStartOutsideSchoolDayFailsLoudly(t *testing.T) {
	result := Parse("星期二\n06:30-07:30 Early Lap Swim")

	if len(result.Courses) != 1 {
		t.Fatalf("expected 1 course, got %d", len(result.Courses))
	}
	if result.Courses[0].Period != "" {
		t.Errorf("period = %q, want empty for unlabelable start", result.Courses[0].Period)
	}
	if len(result.Errors) == 0 {
		t.Error("expected a diagnostic for the unlabelable start time")
	}
}

func TestPeriodName(t *testing.T) {
	tests := []struct {
		start string
		want  string
	}{
		{"08:00", "Period 1"},
		{"12:00", "Period 5"},
		{"22:00", "Period 15"},
		{"08:10", "Period 1"},
		{"15:30", "Period 8"},
	}
	for _, tt := range tests {
		got, err := PeriodName(tt.start)
		if err != nil {
			t.Fatalf("PeriodName(%s) error: %v", tt.start, err)
		}
		if got != tt.want {
			t.Errorf("PeriodName(%s) = %q, want %q", tt.start, got, tt.want)
		}
	}

	for _, start := range []string{"07:59", "23:00", "junk"} {
		if _, err := PeriodName(start); err == nil {
			t.Errorf("PeriodName(%s) expected error", start)
		}
	}
}
