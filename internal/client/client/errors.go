package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrTransport = errors.New("transport error")
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid id")
)

// FetchError describes a failed request. StatusCode is zero when no
// response was received. Err carries the original cause.
type FetchError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is makes every FetchError match ErrTransport, and 404s match ErrNotFound.
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return true
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}
