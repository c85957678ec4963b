package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Error is a non-success backend response. Detail carries the backend's
// {detail} text verbatim when present, otherwise a bounded drain of the body.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Detail)
}

// Unauthorized reports whether the backend rejected the bearer token. A CRUD
// action hitting this with a token present is treated as session expiry.
func (e *Error) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// AsError unwraps err into *Error when possible.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a backend auth rejection.
func IsUnauthorized(err error) bool {
	if apiErr, ok := AsError(err); ok {
		return apiErr.Unauthorized()
	}
	return false
}

// newStatusError builds an *Error from a non-success response body.
func newStatusError(status int, body io.Reader) *Error {
	raw := drain(body)
	detail := raw
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err == nil && strings.TrimSpace(payload.Detail) != "" {
		detail = strings.TrimSpace(payload.Detail)
	}
	return &Error{Status: status, Detail: detail}
}

func drain(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	return strings.TrimSpace(string(b))
}
