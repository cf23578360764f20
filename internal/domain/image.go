package domain

import (
	"errors"
	"strings"
)

// MaxImageSize is the default upload limit (10 MiB)
const MaxImageSize int64 = 10 * 1024 * 1024

// Upload validation errors. Handlers map them to 400 responses.
var (
	ErrNoImage          = errors.New("image: no image provided")
	ErrInvalidImageType = errors.New("image: declared type is not an image")
	ErrImageTooLarge    = errors.New("image: file exceeds size limit")
)

// ImageInput is the uploaded image for a single analysis request
type ImageInput struct {
	Data     []byte
	MIMEType string
	Size     int64
	Filename string
}

// GeoCoordinates locates the plant for weather lookups
type GeoCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ValidateUpload checks the declared type and size of an upload before its
// bytes are read.
func ValidateUpload(mimeType string, size, maxSize int64) error {
	if !strings.HasPrefix(mimeType, "image/") {
		return ErrInvalidImageType
	}
	if maxSize <= 0 {
		maxSize = MaxImageSize
	}
	if size > maxSize {
		return ErrImageTooLarge
	}
	return nil
}

// Validate re-checks an assembled input against the upload invariants.
func (i ImageInput) Validate(maxSize int64) error {
	if len(i.Data) == 0 {
		return ErrNoImage
	}
	return ValidateUpload(i.MIMEType, i.Size, maxSize)
}
