package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2"
)

// Client configuration defaults.
const (
	DefaultMaxIdleConns        = 50
	DefaultMaxIdleConnsPerHost = 20
	DefaultIdleConnTimeout     = 90 * time.Second
	DefaultRequestTimeout      = 15 * time.Second
	DefaultCacheEntries        = 128
)

// HTTP fetches http:// and https:// URLs with pooled connections and
// an LRU cache of fetched bodies. External sources are fetched once
// per tag per run in the common case, but measurement and repeated
// builds hit the same URLs, so caching pays for itself quickly.
type HTTP struct {
	client *http.Client
	cache  *lru.Cache[string, string]
}

// HTTPOption configures an HTTP fetcher.
type HTTPOption func(*HTTP)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(h *HTTP) {
		h.client = client
	}
}

// WithTimeout sets a custom request timeout.
// Zero or negative values fall back to DefaultRequestTimeout.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(h *HTTP) {
		if timeout > 0 {
			h.client.Timeout = timeout
		} else {
			h.client.Timeout = DefaultRequestTimeout
		}
	}
}

// WithCacheEntries sizes the response cache. Zero or negative values
// disable caching entirely.
func WithCacheEntries(n int) HTTPOption {
	return func(h *HTTP) {
		if n <= 0 {
			h.cache = nil
			return
		}
		cache, err := lru.New[string, string](n)
		if err != nil {
			return
		}
		h.cache = cache
	}
}

// NewHTTP creates an HTTP fetcher with pooled transport settings and a
// response cache of DefaultCacheEntries entries.
func NewHTTP(opts ...HTTPOption) *HTTP {
	transport := &http.Transport{
		MaxIdleConns:        DefaultMaxIdleConns,
		MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
		IdleConnTimeout:     DefaultIdleConnTimeout,
		DisableCompression:  false,
	}

	cache, _ := lru.New[string, string](DefaultCacheEntries)

	h := &HTTP{
		client: &http.Client{
			Timeout:   DefaultRequestTimeout,
			Transport: transport,
		},
		cache: cache,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Fetch performs an HTTP GET and returns the response body. Responses
// are cached by URL; a cached body is returned without touching the
// network.
func (h *HTTP) Fetch(ctx context.Context, url string) (string, error) {
	if h.cache != nil {
		if text, ok := h.cache.Get(url); ok {
			return text, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	text := string(data)
	if h.cache != nil {
		h.cache.Add(url, text)
	}
	return text, nil
}

// ClearCache drops all cached responses.
func (h *HTTP) ClearCache() {
	if h.cache != nil {
		h.cache.Purge()
	}
}

// CachedURLs returns the URLs currently held in the cache, most
// recently used last. Mainly useful in tests and diagnostics.
func (h *HTTP) CachedURLs() []string {
	if h.cache == nil {
		return nil
	}
	return h.cache.Keys()
}
