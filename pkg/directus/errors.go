package directus

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized matches every *UnauthorizedRequestError.
	ErrUnauthorized = errors.New("unauthorized request")

	// ErrValidation matches errors about missing or malformed attributes.
	ErrValidation = errors.New("validation failed")
)

// UnauthorizedRequestError is returned when the server answers 401.
type UnauthorizedRequestError struct {
	Method string
	URL    string
}

func (e *UnauthorizedRequestError) Error() string {
	return fmt.Sprintf("Unauthorized %s Request to %s", e.Method, e.URL)
}

// Is makes errors.Is(err, ErrUnauthorized) hold.
func (e *UnauthorizedRequestError) Is(target error) bool {
	return target == ErrUnauthorized
}

// HTTPError is returned for any other non-2xx answer.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// IsUnauthorized reports whether err is, or wraps, an unauthorized error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	if errors.Is(err, ErrUnauthorized) {
		return 401
	}
	return 0
}
