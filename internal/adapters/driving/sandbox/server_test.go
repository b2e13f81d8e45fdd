package sandbox

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driven/storage/memory"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func newTestHandler(t *testing.T) (http.Handler, *memory.PropertyStore) {
	t.Helper()
	store := memory.NewPropertyStore()
	srv, err := NewServer(store, store.Images(), "test")
	require.NoError(t, err)
	return srv.Handler(), store
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func uploadRequest(t *testing.T, path, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestNewServer_RequiresPorts(t *testing.T) {
	store := memory.NewPropertyStore()

	_, err := NewServer(nil, store.Images(), "")
	assert.Error(t, err)
	_, err = NewServer(store, nil, "")
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, http.MethodGet, RouteHealth, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "healthy", body["status"])
}

func TestExtract(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, http.MethodPost, RouteExtract, `{"message":"2 BHK flat for rent in Andheri West, 25000/month"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var draft domain.Draft
	decode(t, w, &draft)
	assert.Equal(t, "2BHK", draft.BHK)
	assert.Equal(t, domain.TransactionRent, draft.TransactionType)
	assert.Contains(t, draft.RawMessage, "Andheri")
}

func TestExtract_MissingMessage(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, http.MethodPost, RouteExtract, `{}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreate_DuplicateIsConflict(t *testing.T) {
	h, _ := newTestHandler(t)
	body := `{"raw_message":"3 BHK for sale in Powai","bhk":"3"}`

	first := do(t, h, http.MethodPost, RouteProperties, body)
	require.Equal(t, http.StatusOK, first.Code)
	var saved domain.SaveResult
	decode(t, first, &saved)
	assert.NotEmpty(t, saved.ID)

	second := do(t, h, http.MethodPost, RouteProperties, body)
	assert.Equal(t, http.StatusConflict, second.Code)
	var detail map[string]string
	decode(t, second, &detail)
	assert.Equal(t, "Duplicate property detected", detail["detail"])
}

func TestCreate_RequiresRawMessage(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, http.MethodPost, RouteProperties, `{"bhk":"2"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestList_Filters(t *testing.T) {
	h, store := newTestHandler(t)
	store.Seed(domain.Property{Draft: domain.Draft{RawMessage: "a", Location: "Andheri West", TransactionType: domain.TransactionRent}})
	store.Seed(domain.Property{Draft: domain.Draft{RawMessage: "b", Location: "Powai", TransactionType: domain.TransactionSale}})

	w := do(t, h, http.MethodGet, RouteProperties+"?location=andheri", "")

	require.Equal(t, http.StatusOK, w.Code)
	var props []domain.Property
	decode(t, w, &props)
	require.Len(t, props, 1)
	assert.Equal(t, "Andheri West", props[0].Location)
}

func TestGet_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/api/properties/missing", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var detail map[string]string
	decode(t, w, &detail)
	assert.Equal(t, "Property not found", detail["detail"])
}

func TestFavoriteAndTags(t *testing.T) {
	h, store := newTestHandler(t)
	id := store.Seed(domain.Property{Draft: domain.Draft{RawMessage: "x"}})

	w := do(t, h, http.MethodPatch, "/api/properties/"+id+"/favorite", "")
	require.Equal(t, http.StatusOK, w.Code)
	var fav domain.FavoriteResult
	decode(t, w, &fav)
	assert.True(t, fav.IsFavorite)

	w = do(t, h, http.MethodPatch, "/api/properties/"+id+"/tags", `["sea view","parking"]`)
	require.Equal(t, http.StatusOK, w.Code)
	var tags domain.TagsResult
	decode(t, w, &tags)
	assert.Equal(t, []string{"sea view", "parking"}, tags.Tags)
}

func TestTags_RejectsObjectBody(t *testing.T) {
	h, store := newTestHandler(t)
	id := store.Seed(domain.Property{Draft: domain.Draft{RawMessage: "x"}})

	w := do(t, h, http.MethodPatch, "/api/properties/"+id+"/tags", `{"tags":["a"]}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDelete(t *testing.T) {
	h, store := newTestHandler(t)
	id := store.Seed(domain.Property{Draft: domain.Draft{RawMessage: "x"}})

	w := do(t, h, http.MethodDelete, "/api/properties/"+id, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodDelete, "/api/properties/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStats(t *testing.T) {
	h, store := newTestHandler(t)
	store.Seed(domain.Property{Draft: domain.Draft{RawMessage: "x", TransactionType: domain.TransactionRent}})

	w := do(t, h, http.MethodGet, RouteStats, "")

	require.Equal(t, http.StatusOK, w.Code)
	var stats domain.Stats
	decode(t, w, &stats)
	assert.Equal(t, 1, stats.TotalProperties)
	assert.Equal(t, 1, stats.ForRent())
}

func TestImageLifecycle(t *testing.T) {
	h, store := newTestHandler(t)
	id := store.Seed(domain.Property{Draft: domain.Draft{RawMessage: "x"}})

	w := do(t, h, http.MethodGet, "/api/property-images/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"has_image":false,"images":[]}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, uploadRequest(t, "/api/upload-image/"+id, "flat.png", pngHeader))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var ack domain.UploadResult
	decode(t, w, &ack)
	assert.True(t, ack.Success)
	assert.Equal(t, "/uploads/"+ack.FileID+"_thumb.jpg", ack.ThumbnailURL)

	w = do(t, h, http.MethodGet, "/api/property-images/"+id, "")
	var info domain.PropertyImage
	decode(t, w, &info)
	assert.True(t, info.HasImage)
	assert.True(t, info.HasThumbnail())

	w = do(t, h, http.MethodDelete, "/api/property-images/"+id, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodDelete, "/api/property-images/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	var detail map[string]string
	decode(t, w, &detail)
	assert.Equal(t, "No image found for this property", detail["detail"])
}

func TestUpload_RejectsNonImage(t *testing.T) {
	h, store := newTestHandler(t)
	id := store.Seed(domain.Property{Draft: domain.Draft{RawMessage: "x"}})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, uploadRequest(t, "/api/upload-image/"+id, "notes.png", []byte("just some text")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, store.Calls(memory.OpImageUpload))
}

func TestCORS_Preflight(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, RouteProperties, nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/api/nope", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var detail map[string]string
	decode(t, w, &detail)
	assert.Equal(t, "Not Found", detail["detail"])
}
