package models

import "time"

// Period is a named wall-clock slot in a school's daily timetable,
// e.g. "Period 3" from 10:00 to 11:00. Periods are immutable once the
// school's table is defined; within one table they must be
// non-overlapping and ordered by start time.
type Period struct {
	Name  string `json:"name" db:"name" example:"Period 1"`
	Start string `json:"start" db:"start" example:"08:00"`
	End   string `json:"end" db:"end" example:"09:00"`
}

// SchoolSchedule is a school's ordered period table.
type SchoolSchedule struct {
	Periods []Period `json:"periods"`
}

// School defines the school model based on the 'schools' table.
// The period table is stored as a JSONB document.
type School struct {
	ID        int64          `json:"id" db:"id" example:"1"`
	Name      string         `json:"name" db:"name" example:"National Taiwan University"`
	Schedule  SchoolSchedule `json:"schedule" db:"schedule"`
	CreatedBy int64          `json:"createdBy" db:"created_by"`
	IsActive  bool           `json:"isActive" db:"is_active"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`
}

// DefaultPeriods is the period table seeded for schools that have not
// configured their own: fifteen one-hour slots from 08:00 to 23:00.
var DefaultPeriods = []Period{
	{Name: "Period 1", Start: "08:00", End: "09:00"},
	{Name: "Period 2", Start: "09:00", End: "10:00"},
	{Name: "Period 3", Start: "10:00", End: "11:00"},
	{Name: "Period 4", Start: "11:00", End: "12:00"},
	{Name: "Period 5", Start: "12:00", End: "13:00"},
	{Name: "Period 6", Start: "13:00", End: "14:00"},
	{Name: "Period 7", Start: "14:00", End: "15:00"},
	{Name: "Period 8", Start: "15:00", End: "16:00"},
	{Name: "Period 9", Start: "16:00", End: "17:00"},
	{Name: "Period 10", Start: "17:00", End: "18:00"},
	{Name: "Period 11", Start: "18:00", End: "19:00"},
	{Name: "Period 12", Start: "19:00", End: "20:00"},
	{Name: "Period 13", Start: "20:00", End: "21:00"},
	{Name: "Period 14", Start: "21:00", End: "22:00"},
	{Name: "Period 15", Start: "22:00", End: "23:00"},
}
