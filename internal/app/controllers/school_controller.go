package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/peiyu/classmeet/internal/app/models/dto"
	"github.com/peiyu/classmeet/internal/app/services"
	"github.com/peiyu/classmeet/internal/middleware"
	"github.com/peiyu/classmeet/internal/pkg/helpers"
)

// SchoolController handles school related operations
type SchoolController struct {
	schoolService *services.SchoolService
	logger        zerolog.Logger
}

// NewSchoolController creates a new SchoolController
func NewSchoolController(schoolService *services.SchoolService, logger zerolog.Logger) *SchoolController {
	return &SchoolController{
		schoolService: schoolService,
		logger:        logger,
	}
}

// GetSchools lists all active schools
// @Summary List schools
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.School}
// @Router /schools [get]
func (c *SchoolController) GetSchools(ctx *gin.Context) {
	schools, err := c.schoolService.GetAllSchools(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: schools, Timestamp: time.Now()})
}

// SearchSchools searches active schools by name
// @Summary Search schools
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Param query path string true "Search query"
// @Success 200 {object} dto.APIResponse{data=[]models.School}
// @Router /schools/search/{query} [get]
func (c *SchoolController) SearchSchools(ctx *gin.Context) {
	query := ctx.Param("query")

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	schools, err := c.schoolService.SearchSchools(ctx.Request.Context(), query, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: schools, Timestamp: time.Now()})
}

// GetSchool retrieves one school with its period table
// @Summary Get a school
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Param id path int true "School ID"
// @Success 200 {object} dto.APIResponse{data=models.School}
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Router /schools/{id} [get]
func (c *SchoolController) GetSchool(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	school, err := c.schoolService.GetSchoolByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: school, Timestamp: time.Now()})
}

// CreateSchool creates a school with its period table
// @Summary Create a school
// @Tags schools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSchoolRequest true "School definition"
// @Success 201 {object} dto.APIResponse{data=models.School}
// @Failure 409 {object} dto.ErrorResponse "School name already taken"
// @Router /schools [post]
func (c *SchoolController) CreateSchool(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.CreateSchoolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	school, err := c.schoolService.CreateSchool(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: school, Timestamp: time.Now()})
}

// UpdatePeriods replaces a school's period table
// @Summary Update a school's period table
// @Tags schools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "School ID"
// @Param request body dto.UpdatePeriodsRequest true "New period table"
// @Success 200 {object} dto.APIResponse{data=models.School}
// @Failure 403 {object} dto.ErrorResponse "Only the creator may update the table"
// @Router /schools/{id}/periods [put]
func (c *SchoolController) UpdatePeriods(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePeriodsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	school, err := c.schoolService.UpdatePeriods(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: school, Timestamp: time.Now()})
}

// parseIDParam reads a positive integer path parameter, answering the
// request itself when the value is malformed.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter").WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
