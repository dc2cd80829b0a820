package utag

import "errors"

// Sentinel errors for missing or misconfigured collaborators.
var (
	// ErrNoFetcher indicates LoadExternal found linked tags but no
	// fetcher was configured.
	ErrNoFetcher = errors.New("no fetcher configured")

	// ErrNoMinifier indicates Compile was asked to minify but no
	// minifier was configured.
	ErrNoMinifier = errors.New("no minifier configured")

	// ErrNoFormatter indicates Compile was asked to format but no
	// formatter was configured.
	ErrNoFormatter = errors.New("no formatter configured")

	// ErrTagNotFound indicates a lookup for a tag name the registry
	// does not define.
	ErrTagNotFound = errors.New("tag not found")
)
