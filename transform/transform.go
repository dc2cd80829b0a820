// Package transform provides the minify and format hooks Compile
// applies to its output.
//
// Minification goes through github.com/tdewolff/minify, keyed by the
// dialect's media type. Formatting is available for Starlark sources
// through the buildtools printer. Both return plain func values so
// they plug straight into the preprocessor's WithMinifier and
// WithFormatter options:
//
//	min, err := transform.Minifier(utag.DialectJS.MediaType)
//	if err != nil {
//	    // dialect has no minifier
//	}
//	p, err := utag.New(utag.WithMinifier(min))
package transform

import (
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// Func rewrites compiled output. It aliases the plain function shape
// so values pass directly into the preprocessor's transform options.
// A Func must be deterministic: the size measurer assumes equal input
// produces equal output.
type Func = func(string) (string, error)

// mediaTypes lists the media types Minifier supports.
var mediaTypes = map[string]bool{
	"application/javascript": true,
	"text/css":               true,
	"text/html":              true,
}

// Minifier returns a minifying Func for the given media type, as
// carried by a dialect's MediaType field. Returns an error for media
// types without a minifier, including the empty string.
func Minifier(mediaType string) (Func, error) {
	if !mediaTypes[mediaType] {
		return nil, fmt.Errorf("no minifier for media type %q", mediaType)
	}

	m := minify.New()
	m.AddFunc("application/javascript", js.Minify)
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)

	return func(text string) (string, error) {
		out, err := m.String(mediaType, text)
		if err != nil {
			return "", fmt.Errorf("minify %s: %w", mediaType, err)
		}
		return out, nil
	}, nil
}

// CanMinify reports whether Minifier supports the media type.
func CanMinify(mediaType string) bool {
	return mediaTypes[mediaType]
}
