package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// Fetcher is the contract all sources in this package implement. It
// matches the preprocessor's fetcher interface, so any source here can
// be passed to the preprocessor directly.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Compile-time interface compliance checks
var (
	_ Fetcher = (*HTTP)(nil)
	_ Fetcher = (*File)(nil)
	_ Fetcher = (*Dir)(nil)
	_ Fetcher = (*Mux)(nil)
)

// Mux tries sources in order and remembers which source serves each
// host. Once a host is served by a source, all later URLs for that
// host go to the same source, so a mirror that carries one file from a
// CDN is expected to carry them all.
//
// A source is skipped on ANY error, not just a missing URL: a mirror
// miss, a TLS failure, and a server error all fall through to the next
// source. The error is reported only when every source has failed.
type Mux struct {
	sources []Fetcher

	// pinned maps a URL host to the index of the source that first
	// served it.
	pinned   map[string]int
	pinnedMu sync.RWMutex
}

// NewMux chains sources in lookup order.
// Returns an error if no sources are provided.
func NewMux(sources ...Fetcher) (*Mux, error) {
	if len(sources) == 0 {
		return nil, errors.New("no fetch sources provided")
	}
	return &Mux{
		sources: sources,
		pinned:  make(map[string]int),
	}, nil
}

// Fetch resolves a URL through the chain.
func (m *Mux) Fetch(ctx context.Context, rawURL string) (string, error) {
	host := hostKey(rawURL)

	m.pinnedMu.RLock()
	idx, found := m.pinned[host]
	m.pinnedMu.RUnlock()

	if found {
		return m.sources[idx].Fetch(ctx, rawURL)
	}

	var attempts []string
	for i, src := range m.sources {
		text, err := src.Fetch(ctx, rawURL)
		if err == nil {
			m.pinnedMu.Lock()
			if _, exists := m.pinned[host]; !exists {
				m.pinned[host] = i
			}
			m.pinnedMu.Unlock()
			return text, nil
		}
		attempts = append(attempts, err.Error())
	}

	if len(attempts) == 1 {
		return "", fmt.Errorf("fetch %s: %s", rawURL, attempts[0])
	}
	return "", fmt.Errorf("fetch %s: no source succeeded:\n  %s",
		rawURL, strings.Join(attempts, "\n  "))
}

// hostKey extracts the pinning key for a URL. URLs without a host,
// like file:// URLs, pin individually by their full text.
func hostKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
