package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested property or image does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates the property service rejected a save because
	// an equivalent listing already exists (HTTP 409).
	ErrDuplicate = errors.New("duplicate property")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable indicates the property service could not be reached.
	ErrUnavailable = errors.New("property service unavailable")

	// ErrNoImage indicates the property exists but has no stored image.
	ErrNoImage = fmt.Errorf("%w: no image found for this property", ErrNotFound)

	// ErrThumbnailPending indicates an uploaded image has no thumbnail yet
	// after the configured number of polls.
	ErrThumbnailPending = errors.New("thumbnail not ready")

	// Validation errors. All of these wrap ErrInvalidInput.

	// ErrEmptyMessage indicates an extraction was requested for blank text.
	ErrEmptyMessage = fmt.Errorf("%w: message is empty", ErrInvalidInput)

	// ErrMissingPropertyID indicates an operation needs a saved property id.
	ErrMissingPropertyID = fmt.Errorf("%w: property id is required", ErrInvalidInput)

	// ErrMissingImage indicates no image bytes were staged.
	ErrMissingImage = fmt.Errorf("%w: no image selected", ErrInvalidInput)

	// ErrImageTooLarge indicates a staged image exceeds MaxImageBytes.
	ErrImageTooLarge = fmt.Errorf("%w: file size exceeds 5MB limit", ErrInvalidInput)

	// ErrNotAnImage indicates the staged file's content type is not image/*.
	ErrNotAnImage = fmt.Errorf("%w: please select a valid image file", ErrInvalidInput)

	// ErrInvalidField indicates an unknown, read-only or out-of-range draft field.
	ErrInvalidField = fmt.Errorf("%w: invalid field", ErrInvalidInput)
)

// User-facing messages shown by the input form and list.
const (
	MsgExtractFailed = "Failed to extract property details. Please try again."
	MsgDuplicate     = "Duplicate property detected! This property might already exist."
	MsgSaveFailed    = "Failed to save property. Please try again."
	MsgSaved         = "✓ Property saved successfully!"
	MsgUploadFailed  = "Upload failed"
	MsgSaveFirst     = "Please save the property first"
	MsgUploaded      = "Image uploaded successfully! Auto thumbnail created."
)

// DetailedError is implemented by errors that carry a server-supplied
// explanation suitable for showing to the user.
type DetailedError interface {
	error
	UserDetail() string
}

// UserMessage maps err onto the message a broker should see.
// Local validation errors are shown as-is, duplicates get the duplicate
// message, and anything else falls back to fallback, including requests
// the service itself rejected. A nil err yields "".
func UserMessage(err error, fallback string) string {
	var detailed DetailedError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDuplicate):
		return MsgDuplicate
	case errors.As(err, &detailed):
		return fallback
	case errors.Is(err, ErrImageTooLarge):
		return "File size exceeds 5MB limit"
	case errors.Is(err, ErrNotAnImage):
		return "Please select a valid image file"
	case errors.Is(err, ErrMissingPropertyID):
		return MsgSaveFirst
	case errors.Is(err, ErrInvalidInput):
		return err.Error()
	default:
		return fallback
	}
}

// UploadMessage returns the server's explanation for a failed upload,
// or MsgUploadFailed when none was given.
func UploadMessage(err error) string {
	if err == nil {
		return ""
	}
	var detailed DetailedError
	if errors.As(err, &detailed) && detailed.UserDetail() != "" {
		return detailed.UserDetail()
	}
	if errors.Is(err, ErrInvalidInput) {
		return UserMessage(err, MsgUploadFailed)
	}
	return MsgUploadFailed
}
