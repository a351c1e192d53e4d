package models

import "time"

// BusyTimeType categorizes a user-declared non-course commitment.
type BusyTimeType string

const (
	BusyWork  BusyTimeType = "work"
	BusyStudy BusyTimeType = "study"
	BusyOther BusyTimeType = "other"
)

// Course is a single course entry in a user's schedule.
type Course struct {
	ID         string  `json:"id,omitempty"`
	Name       string  `json:"name" example:"Calculus"`
	Day        Day     `json:"day" example:"monday"`
	Period     string  `json:"period,omitempty" example:"Period 1"`
	StartTime  string  `json:"startTime" example:"08:00"`
	EndTime    string  `json:"endTime" example:"09:00"`
	Location   string  `json:"location,omitempty"`
	Instructor string  `json:"instructor,omitempty"`
	Credits    float64 `json:"credits,omitempty"`
}

// BusyTime blocks a time range with a non-course commitment.
type BusyTime struct {
	ID          string       `json:"id,omitempty"`
	Name        string       `json:"name" example:"Part-time job"`
	Day         Day          `json:"day" example:"friday"`
	StartTime   string       `json:"startTime" example:"18:00"`
	EndTime     string       `json:"endTime" example:"21:00"`
	Type        BusyTimeType `json:"type" example:"work"`
	Description string       `json:"description,omitempty"`
}

// Schedule is one user's weekly schedule, created lazily on first write
// and overwritten on every update. Courses and busy times are stored as
// JSONB documents on the 'schedules' row.
type Schedule struct {
	UserID      int64      `json:"userId,omitempty" db:"user_id"`
	Courses     []Course   `json:"courses"`
	BusyTimes   []BusyTime `json:"busyTimes"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty" db:"last_updated"`
}

// EmptySchedule returns the zero schedule served for users that have
// never written one. An empty schedule contributes no exclusions to
// free-time queries.
func EmptySchedule(userID int64) *Schedule {
	return &Schedule{
		UserID:    userID,
		Courses:   []Course{},
		BusyTimes: []BusyTime{},
	}
}
