package imageapi

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
)

// LoadFile reads a local image and stages it for upload. The content type
// is detected from the bytes, not the extension. Files over the size limit
// are rejected without being read.
func LoadFile(path string) (*domain.StagedImage, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat image: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrMissingImage, path)
	}
	if info.Size() > domain.MaxImageBytes {
		return nil, domain.ErrImageTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	image := &domain.StagedImage{
		Filename:    filepath.Base(path),
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}
	if err := image.Validate(); err != nil {
		return nil, err
	}
	return image, nil
}
