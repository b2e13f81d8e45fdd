// Package sandbox serves a local stand-in for the property service over
// HTTP. It exposes the same routes and payloads as the real service so
// the CLI and TUI can be tried, and tested, without a backend.
package sandbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/ports/driven"
	"github.com/Prerna-lily/EstateFlow-AI/internal/logger"
)

// Routes served by the sandbox.
const (
	RouteRoot       = "/"
	RouteHealth     = "/health"
	RouteExtract    = "/api/extract"
	RouteProperties = "/api/properties"
	RouteProperty   = "/api/properties/{id}"
	RouteFavorite   = "/api/properties/{id}/favorite"
	RouteTags       = "/api/properties/{id}/tags"
	RouteStats      = "/api/stats"
	RouteUpload     = "/api/upload-image/{id}"
	RouteImages     = "/api/property-images/{id}"
)

// maxUploadBytes leaves room for multipart framing around a maximal image.
const maxUploadBytes = domain.MaxImageBytes + 1<<20

// Server handles property service requests against driven ports.
type Server struct {
	gateway driven.PropertyGateway
	images  driven.ImageChannel
	version string
}

// NewServer creates a sandbox server.
func NewServer(gateway driven.PropertyGateway, images driven.ImageChannel, version string) (*Server, error) {
	if gateway == nil {
		return nil, errors.New("sandbox: property gateway is required")
	}
	if images == nil {
		return nil, errors.New("sandbox: image channel is required")
	}
	return &Server{gateway: gateway, images: images, version: version}, nil
}

// Handler returns the routed handler with permissive CORS.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc(RouteRoot, s.handleRoot).Methods(http.MethodGet)
	r.HandleFunc(RouteHealth, s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc(RouteExtract, s.handleExtract).Methods(http.MethodPost)
	r.HandleFunc(RouteProperties, s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc(RouteProperties, s.handleList).Methods(http.MethodGet)
	r.HandleFunc(RouteProperty, s.handleGet).Methods(http.MethodGet)
	r.HandleFunc(RouteProperty, s.handleUpdate).Methods(http.MethodPut)
	r.HandleFunc(RouteProperty, s.handleDelete).Methods(http.MethodDelete)
	r.HandleFunc(RouteFavorite, s.handleFavorite).Methods(http.MethodPatch)
	r.HandleFunc(RouteTags, s.handleTags).Methods(http.MethodPatch)
	r.HandleFunc(RouteStats, s.handleStats).Methods(http.MethodGet)
	r.HandleFunc(RouteUpload, s.handleUpload).Methods(http.MethodPost)
	r.HandleFunc(RouteImages, s.handleImage).Methods(http.MethodGet)
	r.HandleFunc(RouteImages, s.handleImageDelete).Methods(http.MethodDelete)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "EstateFlow sandbox",
		"version": s.version,
		"status":  "running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Message *string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Message == nil {
		respondDetail(w, http.StatusUnprocessableEntity, "message: field required")
		return
	}
	draft, err := s.gateway.Extract(r.Context(), *in.Message)
	if err != nil {
		respondDetail(w, http.StatusInternalServerError, "Extraction failed: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, draft)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeDraft(w, r, true)
	if !ok {
		return
	}
	res, err := s.gateway.Create(r.Context(), draft)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var criteria domain.FilterCriteria
	for _, key := range domain.FilterKeys() {
		criteria = criteria.With(key, q.Get(key))
	}
	props, err := s.gateway.List(r.Context(), criteria)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, props)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	p, err := s.gateway.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeDraft(w, r, false)
	if !ok {
		return
	}
	p, err := s.gateway.Update(r.Context(), mux.Vars(r)["id"], draft)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.gateway.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.Ack{Message: "Property deleted successfully"})
}

func (s *Server) handleFavorite(w http.ResponseWriter, r *http.Request) {
	res, err := s.gateway.ToggleFavorite(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	var tags []string
	if err := json.NewDecoder(r.Body).Decode(&tags); err != nil {
		respondDetail(w, http.StatusUnprocessableEntity, "body: expected a list of strings")
		return
	}
	res, err := s.gateway.UpdateTags(r.Context(), mux.Vars(r)["id"], tags)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.gateway.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondDetail(w, http.StatusBadRequest, "File size exceeds 5MB limit")
			return
		}
		respondDetail(w, http.StatusUnprocessableEntity, "file: field required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "Could not read upload")
		return
	}

	// Trust the bytes over the declared type.
	contentType := mimetype.Detect(data).String()
	image := &domain.StagedImage{Filename: header.Filename, ContentType: contentType, Data: data}
	if err := image.Validate(); err != nil {
		respondDetail(w, http.StatusBadRequest, domain.UploadMessage(err))
		return
	}

	res, err := s.images.Upload(r.Context(), mux.Vars(r)["id"], image)
	if err != nil {
		respondError(w, err)
		return
	}
	logger.Debug("sandbox: stored %s (%s, %d bytes)", header.Filename, contentType, len(data))
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	info, err := s.images.Fetch(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	if !info.HasImage {
		respondJSON(w, http.StatusOK, map[string]any{"has_image": false, "images": []string{}})
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleImageDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.images.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, domain.ErrNoImage) {
			respondDetail(w, http.StatusNotFound, "No image found for this property")
			return
		}
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Image deleted successfully"})
}

// decodeDraft reads a draft body. Creates must carry raw_message; updates
// may send any subset of fields.
func decodeDraft(w http.ResponseWriter, r *http.Request, requireMessage bool) (*domain.Draft, bool) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "Could not read body")
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		respondDetail(w, http.StatusUnprocessableEntity, "body: invalid JSON")
		return nil, false
	}
	if _, ok := fields["raw_message"]; requireMessage && !ok {
		respondDetail(w, http.StatusUnprocessableEntity, "raw_message: field required")
		return nil, false
	}
	var draft domain.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		respondDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("body: %v", err))
		return nil, false
	}
	return &draft, true
}

// respondError maps domain errors onto status codes.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		respondDetail(w, http.StatusConflict, "Duplicate property detected")
	case errors.Is(err, domain.ErrNotFound):
		respondDetail(w, http.StatusNotFound, "Property not found")
	case errors.Is(err, domain.ErrInvalidInput):
		respondDetail(w, http.StatusBadRequest, err.Error())
	default:
		logger.Warn("sandbox: %v", err)
		respondDetail(w, http.StatusInternalServerError, err.Error())
	}
}

func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
