package propertyapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driven/storage/memory"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/sandbox"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
)

func newSandboxGateway(t *testing.T) (*Gateway, *memory.PropertyStore) {
	t.Helper()
	store := memory.NewPropertyStore()
	srv, err := sandbox.NewServer(store, store.Images(), "test")
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return NewGateway(Config{BaseURL: ts.URL}), store
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{})
	assert.Equal(t, domain.DefaultBaseURL, c.BaseURL())

	c.SetBaseURL("http://example.test:9000/")
	assert.Equal(t, "http://example.test:9000", c.BaseURL())
}

func TestGateway_SaveThenList(t *testing.T) {
	g, _ := newSandboxGateway(t)
	ctx := context.Background()

	draft, err := g.Extract(ctx, "2 BHK semi furnished flat for rent in Bandra West")
	require.NoError(t, err)
	assert.Equal(t, domain.FurnishingSemi, draft.Furnishing)

	res, err := g.Create(ctx, draft)
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)

	props, err := g.List(ctx, domain.FilterCriteria{TransactionType: "Rent"})
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, res.ID, props[0].ID)

	props, err = g.List(ctx, domain.FilterCriteria{TransactionType: "Sale"})
	require.NoError(t, err)
	assert.Empty(t, props)
}

func TestGateway_DuplicateSave(t *testing.T) {
	g, _ := newSandboxGateway(t)
	ctx := context.Background()
	draft := &domain.Draft{RawMessage: "Shop for sale near Station Road"}

	_, err := g.Create(ctx, draft)
	require.NoError(t, err)

	_, err = g.Create(ctx, draft)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, domain.MsgDuplicate, domain.UserMessage(err, domain.MsgSaveFailed))
}

func TestGateway_GetUpdateDelete(t *testing.T) {
	g, store := newSandboxGateway(t)
	ctx := context.Background()
	id := store.Seed(domain.Property{Draft: domain.Draft{RawMessage: "x", Location: "Powai"}})

	p, err := g.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Powai", p.Location)

	updated, err := g.Update(ctx, id, &domain.Draft{RawMessage: "x", Price: "1.2 Cr"})
	require.NoError(t, err)
	assert.Equal(t, "1.2 Cr", updated.Price)
	assert.Equal(t, "Powai", updated.Location)

	require.NoError(t, g.Delete(ctx, id))
	_, err = g.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGateway_FavoriteTagsStats(t *testing.T) {
	g, store := newSandboxGateway(t)
	ctx := context.Background()
	id := store.Seed(domain.Property{Draft: domain.Draft{RawMessage: "x", TransactionType: domain.TransactionSale}})

	fav, err := g.ToggleFavorite(ctx, id)
	require.NoError(t, err)
	assert.True(t, fav.IsFavorite)

	tags, err := g.UpdateTags(ctx, id, nil)
	require.NoError(t, err)
	assert.Empty(t, tags.Tags)

	stats, err := g.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalProperties)
	assert.Equal(t, 1, stats.Favorites)
	assert.Equal(t, 1, stats.ForSale())
}

func TestGateway_RequestShape(t *testing.T) {
	var got struct {
		method, path, query, contentType, accept, requestID string
		body                                                []byte
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.EscapedPath()
		got.query = r.URL.RawQuery
		got.contentType = r.Header.Get("Content-Type")
		got.accept = r.Header.Get("Accept")
		got.requestID = r.Header.Get(RequestIDHeader)
		got.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/properties":
			_, _ = w.Write([]byte(`[]`))
		default:
			_, _ = w.Write([]byte(`{"message":"Tags updated","tags":["a"]}`))
		}
	}))
	defer ts.Close()
	g := NewGateway(Config{BaseURL: ts.URL + "/"})
	ctx := context.Background()

	_, err := g.List(ctx, domain.FilterCriteria{Location: " Andheri ", BHK: "  "})
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "location=Andheri", got.query)
	assert.Equal(t, "application/json", got.accept)
	assert.Len(t, got.requestID, 36)

	_, err = g.List(ctx, domain.FilterCriteria{})
	require.NoError(t, err)
	assert.Empty(t, got.query)

	_, err = g.UpdateTags(ctx, "a/b", []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, got.method)
	assert.Equal(t, "/api/properties/a%2Fb/tags", got.path)
	assert.Equal(t, "application/json", got.contentType)
	assert.JSONEq(t, `["a"]`, string(got.body))
}

func TestGateway_ToggleFavoriteSendsNoBody(t *testing.T) {
	var bodyLen atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		bodyLen.Store(int64(len(data)))
		_ = json.NewEncoder(w).Encode(domain.FavoriteResult{Message: "Favorite status updated", IsFavorite: true})
	}))
	defer ts.Close()

	res, err := NewGateway(Config{BaseURL: ts.URL}).ToggleFavorite(context.Background(), "p1")

	require.NoError(t, err)
	assert.True(t, res.IsFavorite)
	assert.Zero(t, bodyLen.Load())
}

func TestGateway_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := NewGateway(Config{BaseURL: url}).Stats(context.Background())

	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestGateway_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewGateway(Config{BaseURL: ts.URL}).Stats(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGateway_EmptySuccessBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	_, err := NewGateway(Config{BaseURL: ts.URL}).Stats(context.Background())

	assert.ErrorContains(t, err, "empty body")
}

func TestGateway_SetBaseURLRetargets(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"total_properties":0}`))
	}))
	defer ts.Close()

	g := NewGateway(Config{BaseURL: "http://127.0.0.1:1"})
	g.SetBaseURL(ts.URL)
	_, err := g.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}
