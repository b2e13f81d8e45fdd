// Package imageapi provides the HTTP image channel of the property service.
// It is configured separately from the property gateway so that images
// can be served from another host.
package imageapi

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driven/propertyapi"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/ports/driven"
)

// Ensure Channel implements the interface.
var _ driven.ImageChannel = (*Channel)(nil)

// FormField is the multipart field the upload endpoint reads.
const FormField = "file"

// Endpoint paths, each followed by the property id.
const (
	pathUpload = "/api/upload-image/"
	pathImages = "/api/property-images/"
)

// Channel implements driven.ImageChannel.
type Channel struct {
	client *propertyapi.Client
}

// NewChannel creates a new image channel.
func NewChannel(cfg propertyapi.Config) *Channel {
	return &Channel{client: propertyapi.NewClient(cfg)}
}

// SetBaseURL retargets the channel.
func (c *Channel) SetBaseURL(baseURL string) {
	c.client.SetBaseURL(baseURL)
}

// BaseURL returns the current image service root.
func (c *Channel) BaseURL() string {
	return c.client.BaseURL()
}

// Fetch returns the image info for a property.
func (c *Channel) Fetch(ctx context.Context, propertyID string) (*domain.PropertyImage, error) {
	req, err := c.client.NewRequest(ctx, http.MethodGet, pathImages+url.PathEscape(propertyID), nil, nil)
	if err != nil {
		return nil, err
	}
	var info domain.PropertyImage
	if err := c.client.Do(req, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Upload sends the staged image as multipart/form-data.
func (c *Channel) Upload(ctx context.Context, propertyID string, image *domain.StagedImage) (*domain.UploadResult, error) {
	body, contentType, err := encodeForm(image)
	if err != nil {
		return nil, err
	}

	req, err := c.client.NewRequest(ctx, http.MethodPost, pathUpload+url.PathEscape(propertyID), nil, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var res domain.UploadResult
	if err := c.client.Do(req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Delete removes the property's image.
func (c *Channel) Delete(ctx context.Context, propertyID string) error {
	req, err := c.client.NewRequest(ctx, http.MethodDelete, pathImages+url.PathEscape(propertyID), nil, nil)
	if err != nil {
		return err
	}
	var ack domain.Ack
	return c.client.Do(req, &ack)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeForm writes the image as the single file part, keeping its
// declared content type.
func encodeForm(image *domain.StagedImage) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	filename := image.Filename
	if filename == "" {
		filename = "image"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FormField, quoteEscaper.Replace(filename)))
	header.Set("Content-Type", image.ContentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(image.Data); err != nil {
		return nil, "", fmt.Errorf("write form part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
