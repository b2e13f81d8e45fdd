// Package propertyapi provides the HTTP gateway to the property service.
package propertyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
	"github.com/Prerna-lily/EstateFlow-AI/internal/logger"
)

// RequestIDHeader carries a per-request id for correlating logs.
const RequestIDHeader = "X-Request-ID"

// Config holds configuration for an HTTP client of the property service.
type Config struct {
	// BaseURL is the service root (default: http://localhost:8000).
	BaseURL string

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client sends JSON requests to a retargetable base URL.
type Client struct {
	http *http.Client

	mu      sync.RWMutex
	baseURL string
}

// NewClient creates a new client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		http:    hc,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// BaseURL returns the current service root.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL retargets subsequent requests.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// NewRequest builds a request for path under the base URL, tagged with a
// fresh request id.
func (c *Client) NewRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.BaseURL() + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	return req, nil
}

// Do sends req and decodes a 2xx JSON body into out (if non-nil).
// Non-2xx responses become *APIError.
func (c *Client) Do(req *http.Request, out any) error {
	start := time.Now()
	id := req.Header.Get(RequestIDHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		logger.Warn("%s %s [%s] failed: %v", req.Method, req.URL.Path, id, err)
		return fmt.Errorf("%w: %s %s: %w", domain.ErrUnavailable, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	logger.Debug("%s %s [%s] -> %d in %s", req.Method, req.URL.Path, id, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return DecodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("decode response: empty body")
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// doJSON marshals in (if non-nil) as the request body and decodes the
// response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.NewRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.Do(req, out)
}
