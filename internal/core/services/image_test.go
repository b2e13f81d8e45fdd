package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driven/storage/memory"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
)

func newImageFixture(t *testing.T, attempts int) (*ImageService, *memory.PropertyStore, string) {
	t.Helper()
	store := memory.NewPropertyStore()
	id := store.Seed(domain.Property{Draft: domain.Draft{RawMessage: "m"}})
	return NewImageService(store.Images(), ThumbnailPolicy{Attempts: attempts, Delay: time.Millisecond}), store, id
}

func TestNewImageService_Defaults(t *testing.T) {
	svc := NewImageService(memory.NewPropertyStore().Images(), ThumbnailPolicy{})

	assert.Equal(t, DefaultThumbnailPolicy(), svc.policy)
}

func TestImageService_Upload_LocalValidation(t *testing.T) {
	svc, store, id := newImageFixture(t, 1)
	ctx := context.Background()

	tests := []struct {
		name  string
		id    string
		image *domain.StagedImage
		want  error
	}{
		{"six megabytes", id, pngImage(6 * 1024 * 1024), domain.ErrImageTooLarge},
		{"not an image", id, &domain.StagedImage{ContentType: "application/pdf", Data: []byte("%PDF")}, domain.ErrNotAnImage},
		{"nothing staged", id, nil, domain.ErrMissingImage},
		{"unsaved property", "", pngImage(10), domain.ErrMissingPropertyID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(ctx, tt.id, tt.image)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, store.Calls(memory.OpImageUpload))
}

func TestImageService_UploadAndFetch(t *testing.T) {
	svc, _, id := newImageFixture(t, 1)
	ctx := context.Background()

	ack, err := svc.Upload(ctx, id, pngImage(100))
	require.NoError(t, err)
	assert.True(t, ack.Success)

	info, err := svc.Fetch(ctx, id)
	require.NoError(t, err)
	assert.True(t, info.HasImage)
}

func TestImageService_AwaitThumbnail_AckSignalsReady(t *testing.T) {
	svc, store, id := newImageFixture(t, 3)
	ctx := context.Background()

	ack, err := svc.Upload(ctx, id, pngImage(100))
	require.NoError(t, err)

	info, err := svc.AwaitThumbnail(ctx, id, ack)

	require.NoError(t, err)
	assert.True(t, info.HasThumbnail())
	assert.Zero(t, store.Calls(memory.OpImageFetch))
}

func TestImageService_AwaitThumbnail_PollsUntilReady(t *testing.T) {
	svc, store, id := newImageFixture(t, 5)
	store.SetThumbnailLag(2)
	ctx := context.Background()

	ack, err := svc.Upload(ctx, id, pngImage(100))
	require.NoError(t, err)
	require.False(t, ack.ThumbnailReady())

	info, err := svc.AwaitThumbnail(ctx, id, ack)

	require.NoError(t, err)
	assert.True(t, info.HasThumbnail())
	assert.Equal(t, 3, store.Calls(memory.OpImageFetch))
}

func TestImageService_AwaitThumbnail_GivesUp(t *testing.T) {
	svc, store, id := newImageFixture(t, 2)
	store.SetThumbnailLag(10)
	ctx := context.Background()

	ack, err := svc.Upload(ctx, id, pngImage(100))
	require.NoError(t, err)

	info, err := svc.AwaitThumbnail(ctx, id, ack)

	assert.ErrorIs(t, err, domain.ErrThumbnailPending)
	require.NotNil(t, info)
	assert.True(t, info.HasImage)
	assert.Equal(t, 2, store.Calls(memory.OpImageFetch))
}

func TestImageService_AwaitThumbnail_ToleratesFetchErrors(t *testing.T) {
	svc, store, id := newImageFixture(t, 3)
	ctx := context.Background()

	_, err := svc.Upload(ctx, id, pngImage(100))
	require.NoError(t, err)
	store.FailNext(memory.OpImageFetch, errors.New("timeout"))

	info, err := svc.AwaitThumbnail(ctx, id, &domain.UploadResult{Success: true})

	require.NoError(t, err)
	assert.True(t, info.HasThumbnail())
	assert.Equal(t, 2, store.Calls(memory.OpImageFetch))
}

func TestImageService_AwaitThumbnail_Cancelled(t *testing.T) {
	store := memory.NewPropertyStore()
	id := store.Seed(domain.Property{Draft: domain.Draft{RawMessage: "m"}})
	svc := NewImageService(store.Images(), ThumbnailPolicy{Attempts: 3, Delay: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.AwaitThumbnail(ctx, id, &domain.UploadResult{Success: true})

	assert.Error(t, err)
	assert.Zero(t, store.Calls(memory.OpImageFetch))
}

func TestNextDelay(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"zero stays zero", 0, 0},
		{"doubles", 500 * time.Millisecond, time.Second},
		{"doubles up to the cap", 15 * time.Second, maxPollDelay},
		{"clamped near the cap", 20 * time.Second, maxPollDelay},
		{"stays at the cap", maxPollDelay, maxPollDelay},
		{"no overflow", time.Duration(1 << 62), maxPollDelay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextDelay(tt.in))
		})
	}
}

func TestNextDelay_ManyAttemptsStayBounded(t *testing.T) {
	d := 3 * time.Second
	for i := 0; i < 64; i++ {
		d = nextDelay(d)
		require.Positive(t, d)
		require.LessOrEqual(t, d, maxPollDelay)
	}
	assert.Equal(t, maxPollDelay, d)
}

func TestImageService_Delete(t *testing.T) {
	svc, _, id := newImageFixture(t, 1)
	ctx := context.Background()

	_, err := svc.Upload(ctx, id, pngImage(100))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, id))
	assert.ErrorIs(t, svc.Delete(ctx, id), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, ""), domain.ErrMissingPropertyID)
}
