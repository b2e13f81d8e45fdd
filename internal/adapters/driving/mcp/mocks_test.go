package mcp

import (
	"context"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/ports/driving"
)

// mockPropertyService is a mock implementation of driving.PropertyService.
type mockPropertyService struct {
	draft      *domain.Draft
	properties []domain.Property
	property   *domain.Property
	stats      *domain.Stats
	err        error
	saveErr    error

	saved    *domain.Draft
	criteria domain.FilterCriteria
}

func (m *mockPropertyService) Extract(_ context.Context, message string) (*domain.Draft, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.draft != nil {
		d := *m.draft
		return &d, nil
	}
	return &domain.Draft{RawMessage: message}, nil
}

func (m *mockPropertyService) Save(_ context.Context, draft *domain.Draft, _ *domain.StagedImage) (*driving.SaveOutcome, error) {
	m.saved = draft
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	return &driving.SaveOutcome{ID: "p1", Message: "Property saved successfully"}, nil
}

func (m *mockPropertyService) List(_ context.Context, criteria domain.FilterCriteria) ([]domain.Property, error) {
	m.criteria = criteria
	return m.properties, m.err
}

func (m *mockPropertyService) Get(_ context.Context, _ string) (*domain.Property, error) {
	return m.property, m.err
}

func (m *mockPropertyService) Update(_ context.Context, _ string, _ *domain.Draft) (*domain.Property, error) {
	return nil, m.err
}

func (m *mockPropertyService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockPropertyService) ToggleFavorite(_ context.Context, _ string) (bool, error) {
	return false, m.err
}

func (m *mockPropertyService) SetTags(_ context.Context, _ string, tags []string) ([]string, error) {
	return tags, m.err
}

func (m *mockPropertyService) Stats(_ context.Context) (*domain.Stats, error) {
	return m.stats, m.err
}
