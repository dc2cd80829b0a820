package utag

import (
	"context"
	"errors"
	"log/slog"
)

// Option configures a Preprocessor.
type Option func(*config) error

// config holds all preprocessor configuration.
type config struct {
	dialect        Dialect
	fetcher        Fetcher
	minify         MinifyFunc
	format         FormatFunc
	maxConcurrency int

	// logger is the structured logger for diagnostics.
	// If nil, logging is disabled (silent mode).
	logger *slog.Logger
}

// DefaultOptions returns options with safe defaults. New applies these
// before the caller's options.
func DefaultOptions() []Option {
	return []Option{
		WithDialect(DefaultDialect),
		WithMaxConcurrency(defaultMaxConcurrency),
	}
}

// WithDialect sets the comment dialect used to split code from
// comments and to re-emit trailing comments.
func WithDialect(d Dialect) Option {
	return func(c *config) error {
		c.dialect = d
		return nil
	}
}

// WithFetcher sets the fetcher LoadExternal uses for linked tags.
func WithFetcher(f Fetcher) Option {
	return func(c *config) error {
		c.fetcher = f
		return nil
	}
}

// WithMinifier sets the minifier Compile applies when asked to minify.
func WithMinifier(fn MinifyFunc) Option {
	return func(c *config) error {
		c.minify = fn
		return nil
	}
}

// WithFormatter sets the formatter Compile applies when asked to
// format.
func WithFormatter(fn FormatFunc) Option {
	return func(c *config) error {
		c.format = fn
		return nil
	}
}

// WithMaxConcurrency bounds how many external sources LoadExternal
// fetches at once.
func WithMaxConcurrency(n int) Option {
	return func(c *config) error {
		c.maxConcurrency = n
		return nil
	}
}

// WithLogger sets a structured logger for processing diagnostics.
// If not set, logging is disabled (silent mode).
//
// The library uses log/slog, so any backend can be plugged in via a
// handler.
//
// Example:
//
//	p, err := utag.New(utag.WithLogger(slog.Default()))
func WithLogger(l *slog.Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

// validate checks the configuration for logical consistency.
func (c *config) validate() error {
	if c.dialect.Line == "" && c.dialect.BlockOpen == "" {
		return errors.New("dialect has no comment markers")
	}
	if c.dialect.BlockOpen != "" && c.dialect.BlockClose == "" {
		return errors.New("dialect has a block open marker but no close marker")
	}
	if c.maxConcurrency < 1 {
		return errors.New("max concurrency must be at least 1")
	}
	return nil
}

// log returns the configured logger, or a no-op logger if none was
// set. Internal code can call logging methods without nil checks.
//
// Libraries should be silent by default; users opt in via WithLogger.
func (c *config) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(discardHandler{})
}

// discardHandler is a slog.Handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// newConfig creates a preprocessor configuration by applying the
// defaults, then the given options, and validating the result.
func newConfig(opts ...Option) (*config, error) {
	c := &config{}

	for _, opt := range DefaultOptions() {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}
