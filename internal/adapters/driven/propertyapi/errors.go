package propertyapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// APIError represents a non-2xx response from the property service.
type APIError struct {
	StatusCode int
	Detail     string
	Method     string
	Path       string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("property service: %s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("property service: %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Detail)
}

// Unwrap maps the status code onto a domain error so callers can use
// errors.Is without knowing about HTTP.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrDuplicate
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusRequestEntityTooLarge:
		return domain.ErrInvalidInput
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return domain.ErrUnavailable
	default:
		return nil
	}
}

// UserDetail returns the server's explanation.
func (e *APIError) UserDetail() string {
	return e.Detail
}

// DecodeError builds an APIError from a failed response. The body is
// expected to carry {"detail": ...}, where detail is a string or a list
// of validation errors.
func DecodeError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if resp.Request != nil {
		apiErr.Method = resp.Request.Method
		apiErr.Path = resp.Request.URL.Path
		apiErr.RequestID = resp.Request.Header.Get(RequestIDHeader)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return apiErr
	}
	apiErr.Detail = parseDetail(body)
	return apiErr
}

// validationItem is one entry of a 422 detail list.
type validationItem struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return truncate(strings.TrimSpace(string(body)), 200)
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return text
	}

	var items []validationItem
	if err := json.Unmarshal(envelope.Detail, &items); err == nil && len(items) > 0 {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if len(item.Loc) > 0 {
				msgs = append(msgs, fmt.Sprintf("%v: %s", item.Loc[len(item.Loc)-1], item.Msg))
			} else {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return truncate(string(envelope.Detail), 200)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
