package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for storing uploaded files. The
// only uploads in this application are timetable photos headed for
// text recognition.
type FileStorage interface {
	// SaveFile saves an uploaded file and returns its public URL path.
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath saves an uploaded file under a subdirectory.
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a stored file given its URL path.
	DeleteFile(fileURL string) error

	// GetFullPath returns the filesystem path for a stored file URL.
	GetFullPath(fileURL string) string
}
