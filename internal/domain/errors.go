package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Session errors.
var (
	ErrNoSession            = errors.New("no session")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrUnknownRole          = errors.New("unknown role")
)

// Authorization errors. These never invalidate the session: the caller may
// still be validly authenticated for a different surface.
var (
	ErrNotAuthorized = errors.New("not authorized")
)

// Upstream errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrUpstream    = errors.New("upstream server error")
	ErrUnavailable = errors.New("upstream unavailable")
)

// Rate limiting errors.
var (
	ErrRateLimited = errors.New("rate limit exceeded")
)

// FieldError is one field-level validation failure, either produced locally
// or decoded from a 422 response body.
type FieldError struct {
	Loc string `json:"loc"`
	Msg string `json:"msg"`
}

// ValidationError carries per-field validation failures. It is always
// recovered locally and never mutates the session.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Loc, f.Msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-field validation error.
func NewValidationError(loc, msg string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Loc: loc, Msg: msg}}}
}
