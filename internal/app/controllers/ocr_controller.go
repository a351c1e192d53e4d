package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/peiyu/classmeet/internal/app/models/dto"
	"github.com/peiyu/classmeet/internal/app/services"
	"github.com/peiyu/classmeet/internal/middleware"
)

// maxImageSize caps uploaded timetable photos at 10 MB.
const maxImageSize = 10 << 20

// OCRController handles timetable photo recognition
type OCRController struct {
	ocrService *services.OCRService
	logger     zerolog.Logger
}

// NewOCRController creates a new OCRController
func NewOCRController(ocrService *services.OCRService, logger zerolog.Logger) *OCRController {
	return &OCRController{
		ocrService: ocrService,
		logger:     logger,
	}
}

// ProcessImage recognizes and parses a timetable photo
// @Summary Extract courses from a timetable photo
// @Tags ocr
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Timetable photo"
// @Success 200 {object} dto.APIResponse{data=dto.OCRResultResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing or non-image file"
// @Failure 502 {object} dto.ErrorResponse "Recognition service unavailable"
// @Router /ocr/process [post]
func (c *OCRController) ProcessImage(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Image file is required").WithField("image")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if fileHeader.Size > maxImageSize {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Image exceeds the 10MB limit").WithField("image")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.ocrService.ProcessImage(ctx.Request.Context(), fileHeader)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Timetable image processing failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: result, Timestamp: time.Now()})
}

// GetTips returns photo-taking advice
// @Summary Get tips for recognizable timetable photos
// @Tags ocr
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.OCRTipsResponse}
// @Router /ocr/tips [get]
func (c *OCRController) GetTips(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: c.ocrService.Tips(), Timestamp: time.Now()})
}
