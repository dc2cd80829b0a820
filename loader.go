package utag

import (
	"context"
	"strings"
	"sync"

	"github.com/tagware/go-utag/directive"
)

const defaultMaxConcurrency = 5

// LoadExternal fetches the external source linked by every tag that
// carries one and splices the fetched lines into s, each block wrapped
// in a synthetic OR block for its tag. Fetches run concurrently,
// bounded by WithMaxConcurrency, and the call returns only after every
// fetch has settled.
//
// A failed fetch is reported, logged, and contributes zero lines; it
// never aborts sibling fetches. Lines spliced from successful fetches
// remain even when siblings fail. LoadExternal must complete before
// TagLines runs on the same script.
//
// The returned error is ErrNoFetcher when linked tags exist but no
// fetcher is configured, or the context's error when it was canceled.
// Per-tag failures live in the report, not the error.
func (p *Preprocessor) LoadExternal(ctx context.Context, s *Script) (*LoadReport, error) {
	var linked []*Tag
	for _, tag := range s.Registry.Tags() {
		if tag.Link != "" {
			linked = append(linked, tag)
		}
	}

	report := &LoadReport{}
	if len(linked) == 0 {
		return report, nil
	}
	if p.cfg.fetcher == nil {
		return nil, ErrNoFetcher
	}

	type outcome struct {
		text string
		err  error
	}

	outcomes := make([]outcome, len(linked))
	sem := make(chan struct{}, p.cfg.maxConcurrency)
	var wg sync.WaitGroup

	for i, tag := range linked {
		wg.Add(1)
		go func(i int, tag *Tag) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			text, err := p.cfg.fetcher.Fetch(ctx, tag.Link)
			outcomes[i] = outcome{text: text, err: err}
		}(i, tag)
	}
	wg.Wait()

	for i, tag := range linked {
		if err := outcomes[i].err; err != nil {
			failure := &FetchError{Tag: tag.Name, URL: tag.Link, Err: err}
			report.Failed = append(report.Failed, failure)
			p.diag(s, Diagnostic{
				Kind:    DiagFetchFailure,
				Tag:     tag.Name,
				Message: failure.Error(),
			})
			continue
		}
		p.splice(s, tag, outcomes[i].text)
		report.Spliced = append(report.Spliced, tag.Name)
	}

	return report, ctx.Err()
}

// splice parses text as an independent script and appends its lines to
// s wrapped in a synthetic OR block for the tag. The external script's
// own tag definitions are discarded; only its lines matter.
func (p *Preprocessor) splice(s *Script, tag *Tag, text string) {
	external := p.parseText(text, s.Dialect, tag.Link)

	s.Lines = append(s.Lines, syntheticMark(directive.PropStart, tag.Name))
	s.Lines = append(s.Lines, external.Lines...)
	s.Lines = append(s.Lines, syntheticMark(directive.PropEnd, tag.Name))

	p.cfg.log().Debug("spliced external source",
		"tag", tag.Name,
		"url", tag.Link,
		"lines", len(external.Lines))
}

// syntheticMark fabricates a comment-only marking directive line.
func syntheticMark(property, tag string) *Line {
	words := []string{directive.OpMark, property, tag, directive.ModeOr.String()}
	return &Line{Comment: strings.Join(words, " ")}
}
