package dto

import "github.com/peiyu/classmeet/internal/app/models"

// CreateSchoolRequest is the payload for creating a school. The first
// user of an institution defines its period table.
type CreateSchoolRequest struct {
	Name     string                `json:"name" binding:"required,min=2,max=200"`
	Schedule models.SchoolSchedule `json:"schedule" binding:"required"`
}

// UpdatePeriodsRequest is the payload for replacing a school's period
// table. Only the school's creator may do this.
type UpdatePeriodsRequest struct {
	Schedule models.SchoolSchedule `json:"schedule" binding:"required"`
}
