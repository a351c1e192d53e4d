package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/peiyu/classmeet/internal/app/models/dto"
	"github.com/peiyu/classmeet/internal/pkg/apperrors"
	"github.com/peiyu/classmeet/internal/pkg/filestorage"
	"github.com/peiyu/classmeet/internal/pkg/ocr"
	"github.com/peiyu/classmeet/internal/pkg/schedparse"
)

// OCRService turns timetable photos into structured schedule data.
type OCRService struct {
	storage    filestorage.FileStorage
	recognizer ocr.Recognizer
	logger     zerolog.Logger
}

// NewOCRService creates a new OCRService
func NewOCRService(storage filestorage.FileStorage, recognizer ocr.Recognizer, logger zerolog.Logger) *OCRService {
	return &OCRService{
		storage:    storage,
		recognizer: recognizer,
		logger:     logger,
	}
}

// ProcessImage stores an uploaded timetable photo, runs text
// recognition on it and parses the raw text into course entries. A
// photo that yields no courses is still a success; the parse
// diagnostics tell the user what went wrong. The stored file is
// removed once recognition is done.
func (s *OCRService) ProcessImage(ctx context.Context, fileHeader *multipart.FileHeader) (*dto.OCRResultResponse, error) {
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperrors.ErrNotAnImage
	}

	fileURL, err := s.storage.SaveFileWithPath(fileHeader, "ocr")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := s.storage.DeleteFile(fileURL); err != nil {
			s.logger.Warn().Err(err).Str("file", fileURL).Msg("Failed to remove processed image")
		}
	}()

	text, err := s.recognizer.Recognize(ctx, s.storage.GetFullPath(fileURL))
	if err != nil {
		return nil, err
	}

	parsed := schedparse.Parse(text)

	s.logger.Info().
		Int("courses", len(parsed.Courses)).
		Int("diagnostics", len(parsed.Errors)).
		Msg("Timetable image processed")

	return &dto.OCRResultResponse{
		OriginalText:   text,
		ParsedSchedule: parsed,
		Success:        true,
	}, nil
}

// Tips returns advice for taking recognizable timetable photos.
func (s *OCRService) Tips() *dto.OCRTipsResponse {
	return &dto.OCRTipsResponse{
		Tips: []string{
			"Photograph the timetable straight on, without tilt",
			"Use even lighting and avoid glare on the screen or paper",
			"Make sure day headers and time ranges are readable",
			"Crop the photo to the timetable itself",
			"Prefer the original screenshot over a photo of a screen",
		},
		SupportedFormats: []string{"image/jpeg", "image/png", "image/webp"},
		MaxFileSize:      "10MB",
	}
}
