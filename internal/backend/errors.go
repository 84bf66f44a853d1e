package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors matched with errors.Is against a *StatusError.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrLocked       = errors.New("level locked")
	ErrInvalidLevel = errors.New("invalid level")
	ErrNotFound     = errors.New("not found")
)

// StatusError is a non-2xx response from the game backend.
type StatusError struct {
	Op     string // Request that failed, e.g. "get level data"
	Code   int
	Detail string // Server supplied detail, may be empty
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend: %s: %d %s: %s", e.Op, e.Code, http.StatusText(e.Code), e.Detail)
	}
	return fmt.Sprintf("backend: %s: %d %s", e.Op, e.Code, http.StatusText(e.Code))
}

// Unwrap maps the status code onto a sentinel.
func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrLocked
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrInvalidLevel
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}
