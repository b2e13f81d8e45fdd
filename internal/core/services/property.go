package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/ports/driven"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/ports/driving"
	"github.com/Prerna-lily/EstateFlow-AI/internal/logger"
)

// Ensure PropertyService implements the interface.
var _ driving.PropertyService = (*PropertyService)(nil)

// PropertyService coordinates extraction, review and persistence of listings.
type PropertyService struct {
	gateway  driven.PropertyGateway
	images   driving.ImageService
	validate *validator.Validate
}

// NewPropertyService creates a new property service. images may be nil,
// in which case staged images are reported as not uploaded.
func NewPropertyService(gateway driven.PropertyGateway, images driving.ImageService) *PropertyService {
	return &PropertyService{
		gateway:  gateway,
		images:   images,
		validate: newDraftValidator(),
	}
}

// newDraftValidator reports fields by their wire names.
func newDraftValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Extract turns free text into a draft.
func (s *PropertyService) Extract(ctx context.Context, message string) (*domain.Draft, error) {
	if strings.TrimSpace(message) == "" {
		return nil, domain.ErrEmptyMessage
	}

	logger.Section("Extract")
	logger.Debug("message: %d chars", len(message))

	draft, err := s.gateway.Extract(ctx, message)
	if err != nil {
		logger.Warn("extract failed: %v", err)
		return nil, fmt.Errorf("extract property: %w", err)
	}
	if draft.RawMessage == "" {
		draft.RawMessage = message
	}
	logger.Debug("extracted with confidence %.0f", draft.Confidence())
	return draft, nil
}

// Save validates and persists a draft, then uploads the staged image.
func (s *PropertyService) Save(ctx context.Context, draft *domain.Draft, image *domain.StagedImage) (*driving.SaveOutcome, error) {
	if err := s.validateDraft(draft); err != nil {
		return nil, err
	}
	if image != nil {
		if err := image.Validate(); err != nil {
			return nil, err
		}
	}

	res, err := s.gateway.Create(ctx, draft)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			logger.Info("save rejected as duplicate")
		} else {
			logger.Warn("save failed: %v", err)
		}
		return nil, fmt.Errorf("save property: %w", err)
	}
	logger.Info("saved property %s", res.ID)

	outcome := &driving.SaveOutcome{ID: res.ID, Message: res.Message}
	if image == nil {
		return outcome, nil
	}

	if s.images == nil {
		outcome.ImageErr = errors.New("image upload not configured")
		return outcome, nil
	}
	ack, err := s.images.Upload(ctx, res.ID, image)
	if err != nil {
		logger.Warn("image upload after save of %s failed: %v", res.ID, err)
		outcome.ImageErr = err
		return outcome, nil
	}
	outcome.Image = ack
	return outcome, nil
}

// List returns properties matching the criteria.
func (s *PropertyService) List(ctx context.Context, criteria domain.FilterCriteria) ([]domain.Property, error) {
	logger.Debug("list properties: %v", criteria.Query().Encode())
	props, err := s.gateway.List(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return props, nil
}

// Get retrieves a property by ID.
func (s *PropertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	p, err := s.gateway.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get property %s: %w", id, err)
	}
	return p, nil
}

// Update validates and applies a draft to a saved property.
func (s *PropertyService) Update(ctx context.Context, id string, draft *domain.Draft) (*domain.Property, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := s.validateDraft(draft); err != nil {
		return nil, err
	}
	p, err := s.gateway.Update(ctx, id, draft)
	if err != nil {
		return nil, fmt.Errorf("update property %s: %w", id, err)
	}
	return p, nil
}

// Delete removes a property.
func (s *PropertyService) Delete(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.gateway.Delete(ctx, id); err != nil {
		logger.Warn("delete %s failed: %v", id, err)
		return fmt.Errorf("delete property %s: %w", id, err)
	}
	logger.Info("deleted property %s", id)
	return nil
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (s *PropertyService) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	if err := requireID(id); err != nil {
		return false, err
	}
	res, err := s.gateway.ToggleFavorite(ctx, id)
	if err != nil {
		logger.Warn("toggle favorite %s failed: %v", id, err)
		return false, fmt.Errorf("toggle favorite %s: %w", id, err)
	}
	return res.IsFavorite, nil
}

// SetTags replaces the tag list. Tags are trimmed and blanks dropped.
func (s *PropertyService) SetTags(ctx context.Context, id string, tags []string) ([]string, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	res, err := s.gateway.UpdateTags(ctx, id, cleaned)
	if err != nil {
		return nil, fmt.Errorf("update tags %s: %w", id, err)
	}
	return res.Tags, nil
}

// Stats returns the dashboard snapshot.
func (s *PropertyService) Stats(ctx context.Context) (*domain.Stats, error) {
	stats, err := s.gateway.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return stats, nil
}

// validateDraft checks enum fields and the message the draft came from.
func (s *PropertyService) validateDraft(draft *domain.Draft) error {
	if draft == nil {
		return fmt.Errorf("%w: draft is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(draft.RawMessage) == "" {
		return fmt.Errorf("%w: raw_message is required", domain.ErrInvalidInput)
	}
	if err := s.validate.Struct(draft); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			if fe.Tag() == "oneof" {
				return fmt.Errorf("%w: %s must be one of [%s]", domain.ErrInvalidField, fe.Field(), fe.Param())
			}
			return fmt.Errorf("%w: %s failed on %s", domain.ErrInvalidField, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrMissingPropertyID
	}
	return nil
}
