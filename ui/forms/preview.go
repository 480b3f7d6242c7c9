package forms

import (
	"image"
	"sync"

	"vincit.fi/collector/api"
	"vincit.fi/collector/backend/upload"
	"vincit.fi/collector/common/logger"
)

// filePreview reads the chosen file and keeps an upright thumbnail of it to
// show next to the form.
type filePreview struct {
	mux     sync.Mutex
	preview image.Image
}

// prepare validates the file. A file that passes the checks but cannot be
// decoded is still sent, only without a preview.
func (s *filePreview) prepare(path string) (*api.FileUpload, error) {
	s.setPreview(nil)
	file, err := upload.PrepareFile(path)
	if err != nil {
		return nil, err
	}
	thumbnail, err := upload.Preview(file, upload.DefaultThumbSize)
	if err != nil {
		logger.Warn.Printf("No preview for '%s': %s", file.FileName, err)
		return file, nil
	}
	s.setPreview(thumbnail)
	return file, nil
}

func (s *filePreview) setPreview(preview image.Image) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.preview = preview
}

// Preview is the thumbnail of the last chosen file or nil.
func (s *filePreview) Preview() image.Image {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.preview
}
