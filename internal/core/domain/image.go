package domain

import "strings"

// MaxImageBytes is the largest image the property service accepts.
const MaxImageBytes = 5 * 1024 * 1024

// StagedImage is an image chosen locally but not yet uploaded.
// It is not tied to a property until the upload call names one.
type StagedImage struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Size returns the image size in bytes.
func (i *StagedImage) Size() int {
	if i == nil {
		return 0
	}
	return len(i.Data)
}

// Validate checks the image locally so that oversize or non-image files
// never reach the network.
func (i *StagedImage) Validate() error {
	switch {
	case i == nil || len(i.Data) == 0:
		return ErrMissingImage
	case len(i.Data) > MaxImageBytes:
		return ErrImageTooLarge
	case !strings.HasPrefix(strings.ToLower(i.ContentType), "image/"):
		return ErrNotAnImage
	default:
		return nil
	}
}

// UploadResult acknowledges an image upload.
type UploadResult struct {
	Success      bool   `json:"success"`
	FileID       string `json:"file_id"`
	Filename     string `json:"filename"`
	ImageURL     string `json:"image_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// ThumbnailReady reports whether the acknowledgement already names a
// generated thumbnail.
func (r *UploadResult) ThumbnailReady() bool {
	return r != nil && r.Success && r.ThumbnailURL != ""
}

// PropertyImage describes the image linked to a property, if any.
type PropertyImage struct {
	HasImage        bool   `json:"has_image"`
	FileID          string `json:"file_id,omitempty"`
	Filename        string `json:"filename,omitempty"`
	ImageBase64     string `json:"image_base64,omitempty"`
	ThumbnailBase64 string `json:"thumbnail_base64,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
}

// Image returns the inline data URI when present, else the URL path.
func (p *PropertyImage) Image() string {
	if p.ImageBase64 != "" {
		return p.ImageBase64
	}
	return p.ImageURL
}

// Thumbnail returns the inline thumbnail data URI when present, else its URL path.
func (p *PropertyImage) Thumbnail() string {
	if p.ThumbnailBase64 != "" {
		return p.ThumbnailBase64
	}
	return p.ThumbnailURL
}

// HasThumbnail reports whether a thumbnail is available.
func (p *PropertyImage) HasThumbnail() bool {
	return p != nil && p.HasImage && p.Thumbnail() != ""
}
