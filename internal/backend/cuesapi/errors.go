package cuesapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"cues/internal/service"
)

// APIError is a request the service answered without the expected payload.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap maps the status code onto the service sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return service.ErrUnauthorized
	case http.StatusNotFound:
		return service.ErrNotFound
	}
	if e.StatusCode >= 400 && e.StatusCode < 500 {
		return service.ErrRejected
	}
	return nil
}

// newAPIError builds an APIError from a response envelope, preferring the
// service's "message" field, then "error", then the status text.
func newAPIError(status int, fields map[string]json.RawMessage) *APIError {
	for _, key := range []string{"message", "error"} {
		var msg string
		if raw, ok := fields[key]; ok && json.Unmarshal(raw, &msg) == nil && msg != "" {
			return &APIError{StatusCode: status, Message: msg}
		}
	}
	if status >= 400 {
		return &APIError{StatusCode: status, Message: strings.ToLower(http.StatusText(status))}
	}
	return &APIError{StatusCode: status, Message: "unexpected response from server"}
}

// wrapError rewrites transport errors into user-facing ones. The request URL
// added by net/http is dropped.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.New("request timed out")
	}
	return err
}
