package fetch

import (
	"context"
	"errors"
)

// Compile-time interface compliance checks
var (
	_ Fetcher = Static{}
	_ Fetcher = (*Failing)(nil)
)

// Static serves fixed content keyed by exact URL. Useful for tests and
// examples that must not touch the network.
type Static map[string]string

// Fetch returns the stored content, or a not-found StatusError.
func (s Static) Fetch(_ context.Context, url string) (string, error) {
	text, ok := s[url]
	if !ok {
		return "", notFound(url)
	}
	return text, nil
}

// Failing is a source that always returns an error.
// Useful for testing fallback and error handling paths.
type Failing struct {
	Err error
}

// Fetch always fails.
func (f Failing) Fetch(context.Context, string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	return "", errors.New("fetch failed")
}
