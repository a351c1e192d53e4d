// Package freetime computes the periods in which every member of a
// user group is simultaneously free, evaluated against a school's
// period table.
package freetime

import (
	"github.com/peiyu/classmeet/internal/app/models"
	"github.com/peiyu/classmeet/internal/pkg/timeutil"
)

// Slot is one common-free period on a given day.
type Slot struct {
	Period    string `json:"period" example:"Period 1"`
	StartTime string `json:"startTime" example:"08:00"`
	EndTime   string `json:"endTime" example:"09:00"`
	Duration  int    `json:"duration" example:"60"` // minutes
}

// Report maps every canonical day to its common-free slots, in period
// table order. All seven days are present even when their lists are
// empty.
type Report map[models.Day][]Slot

// CommonFree returns the periods of the table in which no user in
// schedules has a course or busy block. A user with an empty schedule
// contributes no exclusions; with zero participants every period is
// vacuously free. Every call recomputes from scratch, the inputs are
// small (one school week, a handful of users).
//
// Periods are processed in table order; the table is assumed
// pre-ordered and non-overlapping per the school invariant.
func CommonFree(schedules map[int64]*models.Schedule, periods []models.Period) Report {
	report := make(Report, len(models.Week))

	for _, day := range models.Week {
		slots := []Slot{}
		for _, period := range periods {
			if !allFree(schedules, day, period) {
				continue
			}
			duration, err := timeutil.DurationMinutes(period.Start, period.End)
			if err != nil {
				// Malformed periods are rejected at school
				// create/update time and cannot reach here.
				continue
			}
			slots = append(slots, Slot{
				Period:    period.Name,
				StartTime: period.Start,
				EndTime:   period.End,
				Duration:  duration,
			})
		}
		report[day] = slots
	}

	return report
}

// allFree reports whether no schedule has an entry on day overlapping
// the period. Overlap is strict half-open interval overlap, not
// containment: a period partially covered by a course still counts as
// busy.
func allFree(schedules map[int64]*models.Schedule, day models.Day, period models.Period) bool {
	for _, schedule := range schedules {
		if schedule == nil {
			continue
		}
		for _, course := range schedule.Courses {
			if course.Day == day && timeutil.Overlaps(course.StartTime, course.EndTime, period.Start, period.End) {
				return false
			}
		}
		for _, busy := range schedule.BusyTimes {
			if busy.Day == day && timeutil.Overlaps(busy.StartTime, busy.EndTime, period.Start, period.End) {
				return false
			}
		}
	}
	return true
}
