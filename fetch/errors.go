package fetch

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError reports a fetch that reached its source but was refused.
// Filesystem sources reuse HTTP status codes, so a missing mirror file
// and a remote 404 fail the same way.
type StatusError struct {
	// URL is the URL that was requested.
	URL string

	// StatusCode is the HTTP status code, or the equivalent for
	// filesystem sources.
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.URL)
}

// IsNotFound reports whether err means the URL does not exist at the
// source. Mux uses this to distinguish a miss from infrastructure
// trouble, though it falls back either way.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// notFound builds the StatusError for a missing URL.
func notFound(url string) *StatusError {
	return &StatusError{URL: url, StatusCode: http.StatusNotFound}
}
