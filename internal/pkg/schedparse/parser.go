// Package schedparse turns raw OCR text from a timetable photo into
// structured course entries.
//
// OCR output is too noisy for a grammar, so the parser is a stateful
// line scanner: the only structural assumption that holds across common
// timetable layouts is that a day header precedes one or more time+name
// lines. Two pieces of rolling state (current day, current time range)
// are carried across lines.
package schedparse

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/peiyu/classmeet/internal/app/models"
)

// ParsedSchedule is the transient parse result. It is never persisted
// directly; the caller decides whether to merge the courses into a
// stored schedule. A failed parse is signalled by an empty course list
// plus a diagnostic in Errors, not by an error return.
type ParsedSchedule struct {
	Courses []models.Course `json:"courses"`
	Errors  []string        `json:"errors"`
}

var (
	// Time ranges like 08:00-09:00, 8:00-9:00 or 08:00~09:00.
	timeRangePattern = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*[-~]\s*(\d{1,2}):(\d{2})`)

	// Day headers in either script: 星期一, 週一, 周一, Mon, Monday.
	dayPattern = regexp.MustCompile(`(?:星期|週|周)([一二三四五六日天])|(Mon|Tue|Wed|Thu|Fri|Sat|Sun)`)

	// Lines that are nothing but digits are table noise, not names.
	numericPattern = regexp.MustCompile(`^\d+$`)
)

var dayTokens = map[string]models.Day{
	"一": models.Monday, "二": models.Tuesday, "三": models.Wednesday,
	"四": models.Thursday, "五": models.Friday, "六": models.Saturday,
	"日": models.Sunday, "天": models.Sunday,
	"Mon": models.Monday, "Tue": models.Tuesday, "Wed": models.Wednesday,
	"Thu": models.Thursday, "Fri": models.Friday, "Sat": models.Saturday,
	"Sun": models.Sunday,
}

type timeRange struct {
	start string
	end   string
}

// Parse scans recognized timetable text line by line and extracts course
// entries. See the package comment for the structural assumptions.
func Parse(text string) *ParsedSchedule {
	result := &ParsedSchedule{
		Courses: []models.Course{},
		Errors:  []string{},
	}

	var currentDay models.Day
	var currentTime *timeRange

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		// A day header carries no course name, consume it outright.
		if day, ok := matchDay(line); ok {
			currentDay = day
			continue
		}

		// A time range does NOT consume the line: the course name is
		// commonly on the same physical line as its times.
		if m := timeRangePattern.FindStringSubmatch(line); m != nil {
			currentTime = &timeRange{
				start: padHour(m[1]) + ":" + m[2],
				end:   padHour(m[3]) + ":" + m[4],
			}
		}

		if currentDay == "" || currentTime == nil {
			continue
		}

		name := strings.TrimSpace(timeRangePattern.ReplaceAllString(line, ""))
		if utf8.RuneCountInString(name) <= 2 || numericPattern.MatchString(name) {
			continue
		}

		course := models.Course{
			Name:      name,
			Day:       currentDay,
			StartTime: currentTime.start,
			EndTime:   currentTime.end,
		}
		period, err := PeriodName(currentTime.start)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("course %q: %v", name, err))
		} else {
			course.Period = period
		}
		result.Courses = append(result.Courses, course)
	}

	if len(result.Courses) == 0 {
		result.Errors = append(result.Errors,
			"no timetable could be recognized from the image; make sure the photo is sharp and shows the complete timetable")
	}

	return result
}

// matchDay tests whether the line denotes a day-of-week header.
func matchDay(line string) (models.Day, bool) {
	m := dayPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return dayTokens[m[1]], true
	}
	return dayTokens[m[2]], true
}

func padHour(h string) string {
	if len(h) == 1 {
		return "0" + h
	}
	return h
}
