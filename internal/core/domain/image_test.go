package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStagedImage_Validate(t *testing.T) {
	tests := []struct {
		name  string
		image *StagedImage
		want  error
	}{
		{"nil", nil, ErrMissingImage},
		{"empty", &StagedImage{ContentType: "image/png"}, ErrMissingImage},
		{"six megabytes", &StagedImage{ContentType: "image/jpeg", Data: make([]byte, 6*1024*1024)}, ErrImageTooLarge},
		{"pdf", &StagedImage{ContentType: "application/pdf", Data: []byte("%PDF")}, ErrNotAnImage},
		{"exactly the limit", &StagedImage{ContentType: "image/jpeg", Data: make([]byte, MaxImageBytes)}, nil},
		{"upper case type", &StagedImage{ContentType: "IMAGE/PNG", Data: []byte{1}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.image.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestStagedImage_Size(t *testing.T) {
	var nilImage *StagedImage
	assert.Zero(t, nilImage.Size())
	assert.Equal(t, 3, (&StagedImage{Data: []byte("abc")}).Size())
}

func TestUploadResult_ThumbnailReady(t *testing.T) {
	var nilResult *UploadResult
	assert.False(t, nilResult.ThumbnailReady())
	assert.False(t, (&UploadResult{Success: true}).ThumbnailReady())
	assert.True(t, (&UploadResult{Success: true, ThumbnailURL: "/uploads/x_thumb.jpg"}).ThumbnailReady())
}

func TestPropertyImage_PrefersInlineData(t *testing.T) {
	img := PropertyImage{
		HasImage:     true,
		ImageBase64:  "data:image/jpeg;base64,AAA",
		ImageURL:     "/uploads/x.jpg",
		ThumbnailURL: "/uploads/x_thumb.jpg",
	}

	assert.Equal(t, "data:image/jpeg;base64,AAA", img.Image())
	assert.Equal(t, "/uploads/x_thumb.jpg", img.Thumbnail())
	assert.True(t, img.HasThumbnail())
	assert.False(t, (&PropertyImage{}).HasThumbnail())
}
