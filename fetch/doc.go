// Package fetch provides sources for externally linked tag content.
//
// Tags can link their implementation to a URL instead of carrying it
// inline. This package implements the fetchers the preprocessor uses
// to load those URLs:
//
//   - HTTP fetches http:// and https:// URLs with connection pooling
//     and an LRU response cache
//   - File reads file:// URLs from the local filesystem
//   - Dir serves URLs from a local mirror directory for offline and
//     airgap workflows
//   - Mux chains several sources with per-host fallback
//
// # Mirror Structure
//
// A mirror directory holds pre-downloaded sources laid out by URL:
//
//	mirror/
//	└── cdn.example.com/
//	    └── widgets/
//	        ├── charts.js
//	        └── gauges.js
//
// so https://cdn.example.com/widgets/charts.js resolves to
// mirror/cdn.example.com/widgets/charts.js.
//
// # Usage
//
// Fetch over HTTP with a vendor-first fallback:
//
//	mirror, err := fetch.NewDir("third_party/mirror")
//	if err != nil {
//	    // mirror directory missing
//	}
//	src, err := fetch.NewMux(mirror, fetch.NewHTTP())
//	p, err := utag.New(utag.WithFetcher(src))
package fetch
