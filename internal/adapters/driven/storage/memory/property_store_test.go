package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
)

func TestPropertyStore_Extract(t *testing.T) {
	store := NewPropertyStore()

	draft, err := store.Extract(context.Background(),
		"2 BHK semi-furnished flat for rent in Andheri West, 45k, 650 sqft. Call 9876543210")

	require.NoError(t, err)
	assert.Equal(t, "2BHK", draft.BHK)
	assert.Equal(t, domain.PropertyTypeResidential, draft.PropertyType)
	assert.Equal(t, domain.TransactionRent, draft.TransactionType)
	assert.Equal(t, domain.FurnishingSemi, draft.Furnishing)
	assert.Equal(t, "Andheri West", draft.Location)
	assert.Equal(t, "45k", draft.Price)
	assert.Equal(t, "650 sqft", draft.CarpetArea)
	assert.Equal(t, "9876543210", draft.ContactNumber)
	assert.NotEmpty(t, draft.RawMessage)
	require.NotNil(t, draft.ConfidenceScore)
	assert.Greater(t, *draft.ConfidenceScore, 70.0)
	assert.Equal(t, 1, store.Calls(OpExtract))
}

func TestPropertyStore_Extract_Empty(t *testing.T) {
	store := NewPropertyStore()

	_, err := store.Extract(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
}

func TestPropertyStore_CreateAndDuplicate(t *testing.T) {
	store := NewPropertyStore()
	ctx := context.Background()

	res, err := store.Create(ctx, &domain.Draft{RawMessage: "Shop for sale in Dadar", Location: "Dadar"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)

	_, err = store.Create(ctx, &domain.Draft{RawMessage: "shop  for SALE in dadar"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = store.Create(ctx, &domain.Draft{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := store.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dadar", p.Location)
	assert.False(t, p.IsFavorite)
	assert.Empty(t, p.Tags)
	assert.NotEmpty(t, p.CreatedAt)
}

func TestPropertyStore_List_Filters(t *testing.T) {
	store := NewPropertyStore()
	ctx := context.Background()
	store.Seed(domain.Property{ID: "a", CreatedAt: "2024-01-01T00:00:00", Draft: domain.Draft{
		PropertyType: domain.PropertyTypeResidential, TransactionType: domain.TransactionRent,
		BHK: "2BHK", Location: "Kandivali West", RawMessage: "nice flat", ContactNumber: "9000000001",
	}})
	store.Seed(domain.Property{ID: "b", CreatedAt: "2024-01-02T00:00:00", Draft: domain.Draft{
		PropertyType: domain.PropertyTypeCommercial, TransactionType: domain.TransactionSale,
		BHK: "Shop", Location: "Dadar", RawMessage: "corner shop",
	}})

	tests := []struct {
		name     string
		criteria domain.FilterCriteria
		want     []string
	}{
		{"none", domain.FilterCriteria{}, []string{"b", "a"}},
		{"type", domain.FilterCriteria{PropertyType: "Residential"}, []string{"a"}},
		{"transaction", domain.FilterCriteria{TransactionType: "Sale"}, []string{"b"}},
		{"bhk", domain.FilterCriteria{BHK: "Shop"}, []string{"b"}},
		{"location substring", domain.FilterCriteria{Location: "kandivali"}, []string{"a"}},
		{"search message", domain.FilterCriteria{Search: "CORNER"}, []string{"b"}},
		{"search contact", domain.FilterCriteria{Search: "0001"}, []string{"a"}},
		{"no match", domain.FilterCriteria{PropertyType: "Land"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props, err := store.List(ctx, tt.criteria)
			require.NoError(t, err)
			ids := make([]string, 0, len(props))
			for _, p := range props {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestPropertyStore_FavoriteAndTags(t *testing.T) {
	store := NewPropertyStore()
	ctx := context.Background()
	id := store.Seed(domain.Property{Draft: domain.Draft{RawMessage: "m"}})

	fav, err := store.ToggleFavorite(ctx, id)
	require.NoError(t, err)
	assert.True(t, fav.IsFavorite)

	tags, err := store.UpdateTags(ctx, id, []string{"hot"})
	require.NoError(t, err)
	assert.Equal(t, []string{"hot"}, tags.Tags)

	p, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, p.IsFavorite)
	assert.Equal(t, []string{"hot"}, p.Tags)

	_, err = store.ToggleFavorite(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPropertyStore_UpdateAndDelete(t *testing.T) {
	store := NewPropertyStore()
	ctx := context.Background()
	id := store.Seed(domain.Property{Draft: domain.Draft{RawMessage: "m", Location: "Old"}})

	updated, err := store.Update(ctx, id, &domain.Draft{RawMessage: "m", Location: "New"})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Location)
	assert.NotEmpty(t, updated.UpdatedAt)

	updated, err = store.Update(ctx, id, &domain.Draft{Price: "40L"})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Location)
	assert.Equal(t, "40L", updated.Price)
	assert.Equal(t, "m", updated.RawMessage)

	require.NoError(t, store.Delete(ctx, id))
	assert.ErrorIs(t, store.Delete(ctx, id), domain.ErrNotFound)
	_, err = store.Update(ctx, id, &domain.Draft{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPropertyStore_Stats(t *testing.T) {
	store := NewPropertyStore()
	ctx := context.Background()

	empty, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.True(t, empty.Empty())
	assert.NotNil(t, empty.Recent)

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		store.Seed(domain.Property{
			IsFavorite: i%2 == 0,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour).Format("2006-01-02T15:04:05"),
			Draft: domain.Draft{
				PropertyType:    domain.PropertyTypeResidential,
				TransactionType: domain.TransactionRent,
				RawMessage:      fmt.Sprintf("m%d", i),
			},
		})
	}
	store.Seed(domain.Property{CreatedAt: "2023-01-01T00:00:00", Draft: domain.Draft{RawMessage: "untyped"}})

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, stats.TotalProperties)
	assert.Equal(t, 4, stats.Favorites)
	assert.Equal(t, 7, stats.ByType["Residential"])
	assert.Equal(t, 1, stats.ByType["Unknown"])
	assert.Equal(t, 7, stats.ForRent())
	require.Len(t, stats.Recent, 5)
	assert.Equal(t, "m6", stats.Recent[0].RawMessage)
}

func TestPropertyStore_FailNext(t *testing.T) {
	store := NewPropertyStore()
	boom := errors.New("boom")
	store.FailNext(OpList, boom)

	_, err := store.List(context.Background(), domain.FilterCriteria{})
	assert.ErrorIs(t, err, boom)

	_, err = store.List(context.Background(), domain.FilterCriteria{})
	assert.NoError(t, err)
	assert.Equal(t, 2, store.Calls(OpList))
	assert.Equal(t, 2, store.TotalCalls())
}

func TestImageStore_UploadFetchDelete(t *testing.T) {
	store := NewPropertyStore()
	images := store.Images()
	ctx := context.Background()
	id := store.Seed(domain.Property{Draft: domain.Draft{RawMessage: "m"}})

	info, err := images.Fetch(ctx, id)
	require.NoError(t, err)
	assert.False(t, info.HasImage)

	ack, err := images.Upload(ctx, id, &domain.StagedImage{Filename: "flat.png", ContentType: "image/png", Data: []byte{1, 2}})
	require.NoError(t, err)
	assert.True(t, ack.ThumbnailReady())

	info, err = images.Fetch(ctx, id)
	require.NoError(t, err)
	assert.True(t, info.HasThumbnail())
	assert.Equal(t, "flat.png", info.Filename)

	p, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, ack.FileID, p.ImageID)

	require.NoError(t, images.Delete(ctx, id))
	assert.ErrorIs(t, images.Delete(ctx, id), domain.ErrNotFound)
}

func TestImageStore_ThumbnailLag(t *testing.T) {
	store := NewPropertyStore()
	store.SetThumbnailLag(2)
	images := store.Images()
	ctx := context.Background()
	id := store.Seed(domain.Property{Draft: domain.Draft{RawMessage: "m"}})

	ack, err := images.Upload(ctx, id, &domain.StagedImage{Filename: "a.jpg", ContentType: "image/jpeg", Data: []byte{1}})
	require.NoError(t, err)
	assert.False(t, ack.ThumbnailReady())

	for i := 0; i < 2; i++ {
		info, err := images.Fetch(ctx, id)
		require.NoError(t, err)
		assert.True(t, info.HasImage)
		assert.False(t, info.HasThumbnail())
	}
	info, err := images.Fetch(ctx, id)
	require.NoError(t, err)
	assert.True(t, info.HasThumbnail())
}

func TestImageStore_InlineImages(t *testing.T) {
	store := NewPropertyStore()
	store.SetInlineImages(true)
	images := store.Images()
	ctx := context.Background()
	id := store.Seed(domain.Property{Draft: domain.Draft{RawMessage: "m"}})

	_, err := images.Upload(ctx, id, &domain.StagedImage{Filename: "a.png", ContentType: "image/png", Data: []byte("hi")})
	require.NoError(t, err)

	info, err := images.Fetch(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGk=", info.Image())
	assert.Equal(t, "data:image/png;base64,aGk=", info.Thumbnail())
	assert.NotEmpty(t, info.ImageURL)
}

func TestImageStore_UploadRejectsInvalid(t *testing.T) {
	store := NewPropertyStore()
	id := store.Seed(domain.Property{Draft: domain.Draft{RawMessage: "m"}})

	_, err := store.Images().Upload(context.Background(), id, &domain.StagedImage{ContentType: "text/plain", Data: []byte("x")})
	assert.ErrorIs(t, err, domain.ErrNotAnImage)

	_, err = store.Images().Upload(context.Background(), "missing", &domain.StagedImage{ContentType: "image/png", Data: []byte("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
