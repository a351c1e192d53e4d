package freetime

import (
	"testing"

	"github.com/peiyu/classmeet/internal/app/models"
)

var onePeriod = []models.Period{
	{Name: "Period 1", Start: "08:00", End: "09:00"},
}

func TestCommonFreeExcludesPeriodWhenAnyUserBusy(t *testing.T) {
	schedules := map[int64]*models.Schedule{
		1: {Courses: []models.Course{
			{Name: "Calculus", Day: models.Monday, StartTime: "08:00", EndTime: "09:00"},
		}},
		2: {}, // user B has nothing that day
	}

	report := CommonFree(schedules, onePeriod)

	if len(report[models.Monday]) != 0 {
		t.Errorf("monday should exclude Period 1, got %+v", report[models.Monday])
	}
	// The course only blocks monday; every other day keeps the period.
	if len(report[models.Tuesday]) != 1 {
		t.Errorf("tuesday should include Period 1, got %+v", report[models.Tuesday])
	}
}

func TestCommonFreeIncludesPeriodWithDuration(t *testing.T) {
	schedules := map[int64]*models.Schedule{
		1: {},
		2: {},
	}

	report := CommonFree(schedules, onePeriod)

	slots := report[models.Monday]
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %+v", slots)
	}
	if slots[0].Period != "Period 1" || slots[0].Duration != 60 {
		t.Errorf("slot = %+v, want Period 1 with duration 60", slots[0])
	}
}

func TestCommonFreeEmptyUserSetIsVacuouslyFree(t *testing.T) {
	report := CommonFree(map[int64]*models.Schedule{}, models.DefaultPeriods)

	if len(report) != 7 {
		t.Fatalf("report should cover all 7 days, got %d", len(report))
	}
	for day, slots := range report {
		if len(slots) != len(models.DefaultPeriods) {
			t.Errorf("%s: expected %d free periods, got %d", day, len(models.DefaultPeriods), len(slots))
		}
	}
}

func TestCommonFreePartialOverlapCountsAsBusy(t *testing.T) {
	schedules := map[int64]*models.Schedule{
		1: {BusyTimes: []models.BusyTime{
			{Name: "Shift", Day: models.Friday, StartTime: "08:30", EndTime: "10:00", Type: models.BusyWork},
		}},
	}

	report := CommonFree(schedules, onePeriod)

	if len(report[models.Friday]) != 0 {
		t.Errorf("partially overlapped period must count as busy, got %+v", report[models.Friday])
	}
}

func TestCommonFreeTouchingIntervalDoesNotBlock(t *testing.T) {
	schedules := map[int64]*models.Schedule{
		1: {Courses: []models.Course{
			{Name: "Seminar", Day: models.Monday, StartTime: "09:00", EndTime: "10:00"},
		}},
	}

	report := CommonFree(schedules, onePeriod)

	if len(report[models.Monday]) != 1 {
		t.Errorf("course touching 09:00 must not block [08:00,09:00), got %+v", report[models.Monday])
	}
}

func TestCommonFreePreservesPeriodTableOrder(t *testing.T) {
	report := CommonFree(nil, models.DefaultPeriods)

	slots := report[models.Wednesday]
	for i, slot := range slots {
		if slot.Period != models.DefaultPeriods[i].Name {
			t.Fatalf("slot %d = %q, want table order %q", i, slot.Period, models.DefaultPeriods[i].Name)
		}
	}
}
