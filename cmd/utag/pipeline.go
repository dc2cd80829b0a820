package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/tagware/go-utag"
	"github.com/tagware/go-utag/fetch"
	"github.com/tagware/go-utag/report"
	"github.com/tagware/go-utag/transform"
)

// pipeline bundles the preprocessor a command drives with the fetcher
// and dialect it was built from. Commands keep the fetcher so report
// hashing can reuse its cache.
type pipeline struct {
	p       *utag.Preprocessor
	fetcher fetch.Fetcher
	dialect utag.Dialect
	log     *slog.Logger
}

func newPipeline(st *settings, sourcePath string, logger *slog.Logger) (*pipeline, error) {
	dialect, err := pickDialect(st.dialect, sourcePath)
	if err != nil {
		return nil, err
	}

	fetcher, err := buildFetcher(st.mirror)
	if err != nil {
		return nil, err
	}

	opts := []utag.Option{
		utag.WithDialect(dialect),
		utag.WithFetcher(fetcher),
		utag.WithLogger(logger),
	}
	if transform.CanMinify(dialect.MediaType) {
		minify, err := transform.Minifier(dialect.MediaType)
		if err != nil {
			return nil, fmt.Errorf("failed to build minifier for %s: %w", dialect.Name, err)
		}
		opts = append(opts, utag.WithMinifier(minify))
	}
	if dialect.Name == "starlark" {
		opts = append(opts, utag.WithFormatter(transform.StarlarkFormatter()))
	}

	p, err := utag.New(opts...)
	if err != nil {
		return nil, err
	}

	return &pipeline{p: p, fetcher: fetcher, dialect: dialect, log: logger}, nil
}

func pickDialect(name, sourcePath string) (utag.Dialect, error) {
	if name == "" {
		return utag.DialectForFile(sourcePath), nil
	}
	d, ok := utag.DialectByName(name)
	if !ok {
		return utag.Dialect{}, &exitError{code: 2, message: fmt.Sprintf("unknown dialect %q", name)}
	}
	return d, nil
}

// buildFetcher assembles the external source chain: the mirror
// directory when configured, then HTTP, then local files.
func buildFetcher(mirror string) (fetch.Fetcher, error) {
	var sources []fetch.Fetcher
	if mirror != "" {
		dir, err := fetch.NewDir(mirror)
		if err != nil {
			return nil, fmt.Errorf("failed to open mirror directory: %w", err)
		}
		sources = append(sources, dir)
	}
	sources = append(sources, fetch.NewHTTP(), fetch.NewFile())
	return fetch.NewMux(sources...)
}

// load parses the source and runs it through the loading and tagging
// stages. Fetch failures degrade to warnings; the affected tags
// simply contribute no external lines.
func (pl *pipeline) load(ctx context.Context, path string, fetchExternal bool) (*utag.Script, error) {
	s, err := pl.p.ParseFile(path)
	if err != nil {
		return nil, err
	}

	if fetchExternal {
		loaded, err := pl.p.LoadExternal(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("load external sources: %w", err)
		}
		for _, f := range loaded.Failed {
			pl.log.Warn("external source failed", "tag", f.Tag, "url", f.URL, "err", f.Err)
		}
		if len(loaded.Spliced) > 0 {
			pl.log.Debug("spliced external sources", "tags", loaded.Spliced)
		}
	}

	pl.p.TagLines(s)
	return s, nil
}

// collectMeasurements converts the script's registry into report
// measurements. Linked sources are refetched so their content can be
// hashed; pass a nil fetcher to skip hashing.
func collectMeasurements(ctx context.Context, s *utag.Script, fetcher fetch.Fetcher, logger *slog.Logger) []report.TagMeasurement {
	tags := s.Registry.Tags()
	out := make([]report.TagMeasurement, 0, len(tags))
	for _, tag := range tags {
		m := report.TagMeasurement{
			Name:        tag.Name,
			Description: tag.Description,
			Requires:    slices.Clone(tag.Requires),
			Link:        tag.Link,
			Size:        tag.Size,
		}
		if tag.Link != "" && fetcher != nil {
			content, err := fetcher.Fetch(ctx, tag.Link)
			if err != nil {
				logger.Warn("could not hash external source", "tag", tag.Name, "url", tag.Link, "err", err)
			} else {
				m.LinkedContent = []byte(content)
			}
		}
		out = append(out, m)
	}
	return out
}

// writeOutput writes text to a file, or to stdout when path is empty
// or "-". A missing trailing newline is added.
func writeOutput(path, text string, stdout io.Writer) error {
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if path == "" || path == "-" {
		_, err := io.WriteString(stdout, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
