package dto

import (
	"github.com/peiyu/classmeet/internal/app/models"
	"github.com/peiyu/classmeet/internal/pkg/freetime"
)

// UpdateScheduleRequest is the payload for overwriting a user's
// schedule. Missing lists are treated as empty.
type UpdateScheduleRequest struct {
	Courses   []models.Course   `json:"courses"`
	BusyTimes []models.BusyTime `json:"busyTimes"`
}

// BatchSchedulesRequest asks for several users' schedules at once.
type BatchSchedulesRequest struct {
	UserIDs []int64 `json:"userIds" binding:"required,min=1"`
}

// CommonFreeRequest asks for the common free periods of a user group,
// evaluated against a school's period table.
type CommonFreeRequest struct {
	UserIDs  []int64 `json:"userIds" binding:"required,min=1"`
	SchoolID int64   `json:"schoolId" binding:"required"`
}

// CommonFreeResponse is the result of a common-free-time query.
type CommonFreeResponse struct {
	CommonFreeTimes freetime.Report       `json:"commonFreeTimes"`
	SchoolSchedule  models.SchoolSchedule `json:"schoolSchedule"`
	Participants    int                   `json:"participants"`
}
