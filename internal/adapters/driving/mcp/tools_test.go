package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
)

func newTestServer(t *testing.T, props *mockPropertyService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Properties: props})
	require.NoError(t, err)
	return server
}

func TestServer_handleExtract(t *testing.T) {
	ctx := context.Background()

	t.Run("returns extracted fields", func(t *testing.T) {
		score := 82.0
		server := newTestServer(t, &mockPropertyService{draft: &domain.Draft{
			BHK:             "2BHK",
			Location:        "Andheri West",
			TransactionType: domain.TransactionRent,
			ConfidenceScore: &score,
		}})

		_, output, err := server.handleExtract(ctx, nil, ExtractInput{Message: "2bhk andheri rent"})

		require.NoError(t, err)
		assert.Equal(t, "2BHK", output.Fields[domain.FieldBHK])
		assert.Equal(t, "Rent", output.Fields[domain.FieldTransactionType])
		assert.NotContains(t, output.Fields, domain.FieldPrice)
		assert.Equal(t, 82.0, output.Confidence)
		assert.Equal(t, "high", output.Level)
	})

	t.Run("returns error on extract failure", func(t *testing.T) {
		server := newTestServer(t, &mockPropertyService{err: domain.ErrEmptyMessage})

		_, _, err := server.handleExtract(ctx, nil, ExtractInput{})

		assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	})
}

func TestServer_handleSave(t *testing.T) {
	ctx := context.Background()

	t.Run("applies overrides before saving", func(t *testing.T) {
		props := &mockPropertyService{draft: &domain.Draft{Location: "Andheri"}}
		server := newTestServer(t, props)

		_, output, err := server.handleSave(ctx, nil, SaveInput{
			Message:   "flat in andheri",
			Overrides: map[string]string{"location": "Bandra", "price": "50000"},
		})

		require.NoError(t, err)
		assert.Equal(t, "p1", output.ID)
		require.NotNil(t, props.saved)
		assert.Equal(t, "Bandra", props.saved.Location)
		assert.Equal(t, "50000", output.Fields[domain.FieldPrice])
	})

	t.Run("rejects an invalid override", func(t *testing.T) {
		props := &mockPropertyService{}
		server := newTestServer(t, props)

		_, _, err := server.handleSave(ctx, nil, SaveInput{
			Message:   "flat",
			Overrides: map[string]string{"transaction_type": "Lease"},
		})

		require.ErrorIs(t, err, domain.ErrInvalidField)
		assert.Nil(t, props.saved)
	})

	t.Run("returns duplicate error", func(t *testing.T) {
		server := newTestServer(t, &mockPropertyService{saveErr: domain.ErrDuplicate})

		_, _, err := server.handleSave(ctx, nil, SaveInput{Message: "flat"})

		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})
}

func TestServer_handleList(t *testing.T) {
	ctx := context.Background()

	t.Run("passes criteria and summarises", func(t *testing.T) {
		props := &mockPropertyService{properties: []domain.Property{
			{ID: "p1", IsFavorite: true, ImageID: "img", Draft: domain.Draft{BHK: "2BHK", Location: "Andheri"}},
		}}
		server := newTestServer(t, props)

		_, output, err := server.handleList(ctx, nil, ListInput{BHK: "2BHK", Location: "Andheri"})

		require.NoError(t, err)
		assert.Equal(t, domain.FilterCriteria{BHK: "2BHK", Location: "Andheri"}, props.criteria)
		require.Equal(t, 1, output.Count)
		assert.Equal(t, "estateflow://properties/p1", output.Properties[0].URI)
		assert.True(t, output.Properties[0].IsFavorite)
		assert.True(t, output.Properties[0].HasImage)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		server := newTestServer(t, &mockPropertyService{err: errors.New("unreachable")})

		_, _, err := server.handleList(ctx, nil, ListInput{})

		assert.Error(t, err)
	})
}

func TestServer_handleStats(t *testing.T) {
	server := newTestServer(t, &mockPropertyService{stats: &domain.Stats{
		TotalProperties: 2,
		Favorites:       1,
		ByTransaction:   map[string]int{"Rent": 2},
		ByType:          map[string]int{"Residential": 2},
		Recent:          []domain.Property{{ID: "p2"}},
	}})

	_, output, err := server.handleStats(context.Background(), nil, StatsInput{})

	require.NoError(t, err)
	assert.Equal(t, 2, output.Total)
	assert.Equal(t, 1, output.Favorites)
	assert.Equal(t, 2, output.ByTransaction["Rent"])
	require.Len(t, output.Recent, 1)
	assert.Equal(t, "p2", output.Recent[0].ID)
}

func TestServer_handleStats_EmptyCollection(t *testing.T) {
	server := newTestServer(t, &mockPropertyService{stats: &domain.Stats{}})

	_, output, err := server.handleStats(context.Background(), nil, StatsInput{})

	require.NoError(t, err)
	assert.Equal(t, 0, output.Total)
	assert.NotNil(t, output.ByTransaction)
	assert.NotNil(t, output.ByType)
	assert.NotNil(t, output.Recent)
}
