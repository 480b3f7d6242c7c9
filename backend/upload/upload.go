package upload

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"
	"vincit.fi/collector/api"
	"vincit.fi/collector/common/logger"
)

const (
	MaxFileSize      = 10 * 1024 * 1024
	DefaultThumbSize = 320

	fileTooLargeMessage = "File is too large. Maximum size is 10MB."
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// FileError is a user facing reason for rejecting a file.
type FileError struct {
	Message string
}

func (s *FileError) Error() string {
	return s.Message
}

func unsupportedType(mimeType string) *FileError {
	return &FileError{Message: fmt.Sprintf("Unsupported file type: %s. Please use JPEG, PNG, GIF or WebP.", mimeType)}
}

// PrepareFile reads and validates a file from disk.
func PrepareFile(path string) (*api.FileUpload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if info.Size() > MaxFileSize {
		return nil, &FileError{Message: fileTooLargeMessage}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Prepare(filepath.Base(path), data)
}

// Prepare checks the size and the content type of the data. The type is
// detected from the content, not from the file name.
func Prepare(fileName string, data []byte) (*api.FileUpload, error) {
	if len(data) > MaxFileSize {
		return nil, &FileError{Message: fileTooLargeMessage}
	}

	detected := mimetype.Detect(data)
	mimeType, _, _ := strings.Cut(detected.String(), ";")
	if !isAllowed(detected) {
		logger.Debug.Printf("Rejected '%s' of type %s", fileName, mimeType)
		return nil, unsupportedType(mimeType)
	}

	return &api.FileUpload{
		FileName:    fileName,
		ContentType: mimeType,
		Data:        data,
	}, nil
}

func isAllowed(detected *mimetype.MIME) bool {
	for m := detected; m != nil; m = m.Parent() {
		if allowedTypes[m.String()] {
			return true
		}
	}
	return false
}

// Preview decodes the upload and returns an upright thumbnail that fits in
// size x size.
func Preview(upload *api.FileUpload, size int) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(upload.Data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", upload.FileName, err)
	}

	img = rotate(img, readOrientation(upload.Data))
	bounds := img.Bounds()
	if bounds.Dx() <= size && bounds.Dy() <= size {
		return img, nil
	}
	return imaging.Fit(img, size, size, imaging.Linear), nil
}
