package imageapi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func TestLoadFile_DetectsTypeFromContent(t *testing.T) {
	// Misleading extension; the bytes are a PNG.
	path := writeFile(t, "listing.txt", pngBytes)

	image, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, "listing.txt", image.Filename)
	assert.Equal(t, "image/png", image.ContentType)
	assert.Equal(t, pngBytes, image.Data)
}

func TestLoadFile_RejectsNonImage(t *testing.T) {
	path := writeFile(t, "photo.jpg", []byte("plain text, not a photo"))

	_, err := LoadFile(path)

	assert.ErrorIs(t, err, domain.ErrNotAnImage)
}

func TestLoadFile_RejectsOversize(t *testing.T) {
	data := make([]byte, domain.MaxImageBytes+1)
	copy(data, pngBytes)
	path := writeFile(t, "big.png", data)

	_, err := LoadFile(path)

	assert.ErrorIs(t, err, domain.ErrImageTooLarge)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.png"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile_Directory(t *testing.T) {
	_, err := LoadFile(t.TempDir())

	assert.ErrorIs(t, err, domain.ErrMissingImage)
}
