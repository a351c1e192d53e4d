// Package ocr talks to the external text-recognition service that
// turns uploaded timetable photos into raw text. The service handles
// image preprocessing and recognition; this package only transports
// bytes and surfaces failures opaquely.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/peiyu/classmeet/internal/pkg/apperrors"
)

// Recognizer yields raw multi-line text for a stored image file.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// HTTPRecognizer calls a recognition HTTP endpoint (a tesseract server
// configured for Traditional Chinese plus English).
type HTTPRecognizer struct {
	endpoint  string
	languages string
	client    *http.Client
}

// Config holds recognizer settings.
type Config struct {
	Endpoint  string
	Languages string
	Timeout   time.Duration
}

// NewHTTPRecognizer creates a recognizer client for the given endpoint.
func NewHTTPRecognizer(cfg Config) *HTTPRecognizer {
	languages := cfg.Languages
	if languages == "" {
		languages = "chi_tra+eng"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &HTTPRecognizer{
		endpoint:  cfg.Endpoint,
		languages: languages,
		client:    &http.Client{Timeout: timeout},
	}
}

// recognitionResponse is the wire shape returned by the service.
type recognitionResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// Recognize uploads the image file and returns the recognized text.
// Failures are opaque to callers; there is no retry or fallback.
func (r *HTTPRecognizer) Recognize(ctx context.Context, imagePath string) (string, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("%w: open image: %v", apperrors.ErrRecognitionFailed, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filepath.Base(imagePath))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", apperrors.ErrRecognitionFailed, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("%w: read image: %v", apperrors.ErrRecognitionFailed, err)
	}
	if err := writer.WriteField("languages", r.languages); err != nil {
		return "", fmt.Errorf("%w: build request: %v", apperrors.ErrRecognitionFailed, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%w: build request: %v", apperrors.ErrRecognitionFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrRecognitionFailed, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrRecognitionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: service returned status %d", apperrors.ErrRecognitionFailed, resp.StatusCode)
	}

	var result recognitionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", apperrors.ErrRecognitionFailed, err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("%w: %s", apperrors.ErrRecognitionFailed, result.Error)
	}

	return result.Text, nil
}
