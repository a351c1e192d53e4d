package dto

import "github.com/peiyu/classmeet/internal/pkg/schedparse"

// OCRResultResponse is the outcome of processing a timetable image.
// A parse that finds no courses is a soft failure: Success stays true
// and the diagnostics live in ParsedSchedule.Errors.
type OCRResultResponse struct {
	OriginalText   string                     `json:"originalText"`
	ParsedSchedule *schedparse.ParsedSchedule `json:"parsedSchedule"`
	Success        bool                       `json:"success"`
}

// OCRTipsResponse lists advice for taking recognizable timetable photos
type OCRTipsResponse struct {
	Tips             []string `json:"tips"`
	SupportedFormats []string `json:"supportedFormats"`
	MaxFileSize      string   `json:"maxFileSize"`
}
