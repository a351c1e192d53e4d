package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/peiyu/classmeet/internal/app/models/dto"
	"github.com/peiyu/classmeet/internal/app/services"
	"github.com/peiyu/classmeet/internal/middleware"
	"github.com/peiyu/classmeet/internal/pkg/apperrors"
)

// ScheduleController handles schedule related operations
type ScheduleController struct {
	scheduleService *services.ScheduleService
	logger          zerolog.Logger
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(scheduleService *services.ScheduleService, logger zerolog.Logger) *ScheduleController {
	return &ScheduleController{
		scheduleService: scheduleService,
		logger:          logger,
	}
}

// GetUserSchedule returns a user's schedule, subject to that user's
// privacy setting. Owners always see their own schedule.
// @Summary Get a user's schedule
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=models.Schedule}
// @Failure 403 {object} dto.ErrorResponse "Schedule is not visible to the caller"
// @Router /schedules/{userId} [get]
func (c *ScheduleController) GetUserSchedule(ctx *gin.Context) {
	viewerID, _ := middleware.GetUserID(ctx)

	ownerID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	schedule, err := c.scheduleService.GetScheduleForViewer(ctx.Request.Context(), viewerID, ownerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: schedule, Timestamp: time.Now()})
}

// UpdateUserSchedule overwrites a schedule. Users may only replace
// their own.
// @Summary Replace a user's schedule
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param request body dto.UpdateScheduleRequest true "Full schedule"
// @Success 200 {object} dto.APIResponse{data=models.Schedule}
// @Failure 403 {object} dto.ErrorResponse "Not the schedule owner"
// @Router /schedules/{userId} [put]
func (c *ScheduleController) UpdateUserSchedule(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	ownerID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}
	if ownerID != userID {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.UpdateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	schedule, err := c.scheduleService.UpdateSchedule(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: schedule, Timestamp: time.Now()})
}

// DeleteUserSchedule clears a schedule. Users may only delete their
// own.
// @Summary Delete a user's schedule
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the schedule owner"
// @Router /schedules/{userId} [delete]
func (c *ScheduleController) DeleteUserSchedule(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	ownerID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}
	if ownerID != userID {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	if err := c.scheduleService.DeleteSchedule(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Schedule deleted"},
		Timestamp: time.Now(),
	})
}

// GetBatchSchedules returns several users' schedules at once
// @Summary Get schedules for a group of users
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BatchSchedulesRequest true "User IDs"
// @Success 200 {object} dto.APIResponse{data=map[int64]models.Schedule}
// @Failure 403 {object} dto.ErrorResponse "A listed user is not a friend"
// @Router /schedules/batch [post]
func (c *ScheduleController) GetBatchSchedules(ctx *gin.Context) {
	callerID, _ := middleware.GetUserID(ctx)

	var req dto.BatchSchedulesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	schedules, err := c.scheduleService.GetBatchSchedules(ctx.Request.Context(), callerID, req.UserIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: schedules, Timestamp: time.Now()})
}

// GetCommonFreeTime computes the common free periods of a user group
// @Summary Find common free time
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CommonFreeRequest true "Group and school"
// @Success 200 {object} dto.APIResponse{data=dto.CommonFreeResponse}
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Router /schedules/common-free [post]
func (c *ScheduleController) GetCommonFreeTime(ctx *gin.Context) {
	callerID, _ := middleware.GetUserID(ctx)

	var req dto.CommonFreeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	result, err := c.scheduleService.GetCommonFreeTime(ctx.Request.Context(), callerID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: result, Timestamp: time.Now()})
}
