package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrDuplicate", ErrDuplicate},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnavailable", ErrUnavailable},
		{"ErrThumbnailPending", ErrThumbnailPending},
		{"ErrEmptyMessage", ErrEmptyMessage},
		{"ErrMissingPropertyID", ErrMissingPropertyID},
		{"ErrMissingImage", ErrMissingImage},
		{"ErrImageTooLarge", ErrImageTooLarge},
		{"ErrNotAnImage", ErrNotAnImage},
		{"ErrInvalidField", ErrInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestValidationErrors_WrapInvalidInput(t *testing.T) {
	for _, err := range []error{ErrEmptyMessage, ErrMissingPropertyID, ErrMissingImage, ErrImageTooLarge, ErrNotAnImage, ErrInvalidField} {
		assert.True(t, errors.Is(err, ErrInvalidInput), err.Error())
	}
	assert.False(t, errors.Is(ErrDuplicate, ErrInvalidInput))
}

type detailErr struct{ detail string }

func (e *detailErr) Error() string      { return "api error: " + e.detail }
func (e *detailErr) UserDetail() string { return e.detail }

// rejectedErr is a service-side 4xx: it carries a detail and unwraps to a
// validation sentinel.
type rejectedErr struct{ detail string }

func (e *rejectedErr) Error() string      { return "status 422: " + e.detail }
func (e *rejectedErr) UserDetail() string { return e.detail }
func (e *rejectedErr) Unwrap() error      { return ErrInvalidInput }

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"duplicate", fmt.Errorf("create property: %w", ErrDuplicate), MsgDuplicate},
		{"too large", ErrImageTooLarge, "File size exceeds 5MB limit"},
		{"wrong type", ErrNotAnImage, "Please select a valid image file"},
		{"no id", ErrMissingPropertyID, MsgSaveFirst},
		{"other validation", ErrEmptyMessage, ErrEmptyMessage.Error()},
		{"transport", errors.New("connection refused"), MsgSaveFailed},
		{"service rejection", fmt.Errorf("save property: %w", &rejectedErr{"raw_message: field required"}), MsgSaveFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err, MsgSaveFailed))
		})
	}
}

func TestUploadMessage(t *testing.T) {
	assert.Empty(t, UploadMessage(nil))
	assert.Equal(t, "Invalid image format", UploadMessage(fmt.Errorf("upload: %w", &detailErr{"Invalid image format"})))
	assert.Equal(t, MsgUploadFailed, UploadMessage(&detailErr{}))
	assert.Equal(t, MsgUploadFailed, UploadMessage(errors.New("boom")))
	assert.Equal(t, "File size exceeds 5MB limit", UploadMessage(ErrImageTooLarge))
}
