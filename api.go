// Package utag implements a conditional-compilation preprocessor for
// sources annotated with tag directives embedded in ordinary comments.
//
// A tag is a named optional feature. Directives define tags, declare
// requirements between them, and mark which lines belong to which
// tags. Compiling a script against a chosen tag set produces a
// filtered output containing only the lines those tags need.
//
// # Overview
//
// The package provides five main operations:
//
//   - Parse: splits source into code/comment word streams and scans
//     tag definitions into a registry
//   - LoadExternal: fetches and splices externally linked tag sources
//   - TagLines: assigns (tag, mode) associations to every line
//   - Compile: renders the lines selected by an included tag set,
//     optionally minified and formatted
//   - MeasureTags: computes every tag's byte cost by differential
//     compilation
//
// # Quick Start
//
//	p, err := utag.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	script := p.Parse(src)
//	p.TagLines(script)
//	out, err := p.Compile(script, []string{"GREETER"}, false, false)
//
// Or run the whole pipeline in one call:
//
//	script, err := utag.Process(ctx, src, utag.ProcessOptions{MeasureSizes: true})
//
// # Directive Grammar
//
// Directives live inside comments of the host language:
//
//	UTAGDEF DESC <tag> <description text...>
//	UTAGDEF REQU <tag> <required-tag-name>
//	UTAGDEF LINK <tag> <url>
//	UTAGSET LINE  <tag> <AND|OR>
//	UTAGSET START <tag> <AND|OR>
//	UTAGSET END   <tag> <AND|OR>
//
// A tag literally named REQUIRED is implicitly required by every
// other tag.
//
// # Thread Safety
//
// A Preprocessor is immutable after New and safe for concurrent use.
// Compile only reads its script; MeasureTags writes tag sizes and
// LoadExternal appends lines, so neither may race other calls on the
// same script.
package utag

import (
	"context"
	"fmt"
)

// Preprocessor parses, tags, and compiles annotated sources.
type Preprocessor struct {
	cfg *config
}

// New creates a Preprocessor. The given options are applied over
// DefaultOptions.
func New(opts ...Option) (*Preprocessor, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("configure preprocessor: %w", err)
	}
	return &Preprocessor{cfg: cfg}, nil
}

// diag records a recoverable problem on the script and logs it.
func (p *Preprocessor) diag(s *Script, d Diagnostic) {
	s.Diagnostics = append(s.Diagnostics, d)
	p.cfg.log().Warn(d.Message,
		"kind", d.Kind.String(),
		"line", d.Line,
		"tag", d.Tag)
}

// Process runs the full pipeline on text: parse, optionally load
// external sources, tag lines, and optionally measure tag sizes.
//
// This is the recommended entry point when the intermediate stages are
// not needed individually.
func Process(ctx context.Context, text string, opts ProcessOptions) (*Script, error) {
	p, err := New(opts.Options...)
	if err != nil {
		return nil, err
	}
	script := p.Parse(text)
	return p.finish(ctx, script, opts)
}

// ProcessFile runs the full pipeline on a file, picking the comment
// dialect from the file extension.
func ProcessFile(ctx context.Context, path string, opts ProcessOptions) (*Script, error) {
	p, err := New(opts.Options...)
	if err != nil {
		return nil, err
	}
	script, err := p.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return p.finish(ctx, script, opts)
}

// finish applies the post-parse pipeline stages in order: external
// loading must settle before tagging, and tagging must complete before
// measurement.
func (p *Preprocessor) finish(ctx context.Context, script *Script, opts ProcessOptions) (*Script, error) {
	if opts.LoadExternal {
		if _, err := p.LoadExternal(ctx, script); err != nil {
			return nil, fmt.Errorf("load external sources: %w", err)
		}
	}
	p.TagLines(script)
	if opts.MeasureSizes {
		p.MeasureTags(script)
	}
	return script, nil
}
