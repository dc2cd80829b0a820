package utag

import (
	"path/filepath"
	"slices"
)

// Dialect describes how a source language writes comments. The parser
// uses the markers to split lines into code and comment words; Compile
// uses them to re-emit trailing comments.
type Dialect struct {
	// Name identifies the dialect in configuration and logs.
	Name string

	// Line is the line-comment marker. Empty when the dialect has
	// none.
	Line string

	// BlockOpen and BlockClose delimit block comments. Both empty
	// when the dialect has none.
	BlockOpen  string
	BlockClose string

	// Extensions lists the file extensions, dot included, this
	// dialect covers.
	Extensions []string

	// MediaType is the minifier media type for sources in this
	// dialect. Empty when no minifier applies.
	MediaType string
}

// Known dialects.
var (
	// DialectJS covers JavaScript and TypeScript sources.
	DialectJS = Dialect{
		Name:       "js",
		Line:       "//",
		BlockOpen:  "/*",
		BlockClose: "*/",
		Extensions: []string{".js", ".mjs", ".cjs", ".ts"},
		MediaType:  "application/javascript",
	}

	// DialectGo covers Go and other C-notation sources.
	DialectGo = Dialect{
		Name:       "go",
		Line:       "//",
		BlockOpen:  "/*",
		BlockClose: "*/",
		Extensions: []string{".go", ".c", ".h", ".java"},
	}

	// DialectStarlark covers Starlark, Python, and shell sources.
	DialectStarlark = Dialect{
		Name:       "starlark",
		Line:       "#",
		Extensions: []string{".bzl", ".star", ".bazel", ".py", ".sh"},
	}

	// DialectCSS covers CSS, which has block comments only.
	DialectCSS = Dialect{
		Name:       "css",
		BlockOpen:  "/*",
		BlockClose: "*/",
		Extensions: []string{".css"},
		MediaType:  "text/css",
	}

	// DialectHTML covers HTML, which has block comments only.
	DialectHTML = Dialect{
		Name:       "html",
		BlockOpen:  "<!--",
		BlockClose: "-->",
		Extensions: []string{".html", ".htm"},
		MediaType:  "text/html",
	}
)

// DefaultDialect is used when no dialect is configured and no file
// extension matches.
var DefaultDialect = DialectJS

// dialects is the closed table of known dialects.
var dialects = []Dialect{DialectJS, DialectGo, DialectStarlark, DialectCSS, DialectHTML}

// Dialects returns the known dialects.
func Dialects() []Dialect {
	return slices.Clone(dialects)
}

// DialectByName returns the named dialect.
func DialectByName(name string) (Dialect, bool) {
	for _, d := range dialects {
		if d.Name == name {
			return d, true
		}
	}
	return Dialect{}, false
}

// DialectForFile picks the dialect for a file by extension. Unknown
// extensions fall back to the closest known extension by shared
// prefix, then to DefaultDialect.
func DialectForFile(path string) Dialect {
	if d, ok := dialectForExtension(filepath.Ext(path)); ok {
		return d
	}
	return DefaultDialect
}

// dialectForExtension resolves an extension against the dialect table.
// An exact match wins; otherwise the known extension sharing the
// longest prefix is chosen when at least two characters past the dot
// match, so ".jsx" resolves to the ".js" dialect.
func dialectForExtension(ext string) (Dialect, bool) {
	if ext == "" {
		return Dialect{}, false
	}
	for _, d := range dialects {
		if slices.Contains(d.Extensions, ext) {
			return d, true
		}
	}

	best := -1
	var closest Dialect
	for _, d := range dialects {
		for _, known := range d.Extensions {
			if n := sharedPrefix(known, ext); n > best {
				best = n
				closest = d
			}
		}
	}
	if best >= 3 {
		return closest, true
	}
	return Dialect{}, false
}

func sharedPrefix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// renderComment re-emits comment text in this dialect.
func (d Dialect) renderComment(text string) string {
	if d.Line != "" {
		return d.Line + " " + text
	}
	return d.BlockOpen + " " + text + " " + d.BlockClose
}
