// Command tagdoc generates a Markdown reference of every tag a source
// file defines.
//
// It runs the full pipeline (parse, optional external loading, tag,
// measure) and renders one table row per tag: name, measured size,
// requirements, link, and description. The output is suitable for a
// project's feature documentation.
//
// Usage:
//
//	go run ./tools/tagdoc -source app.js > TAGS.md
//	go run ./tools/tagdoc -source app.js -load -out docs/TAGS.md
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	utag "github.com/tagware/go-utag"
	"github.com/tagware/go-utag/fetch"
	"github.com/tagware/go-utag/internal/natsort"
)

const docTemplate = `# Tag Reference

Source: ` + "`{{.Source}}`" + `

| Tag | Size (bytes) | Requires | Description |
|-----|--------------|----------|-------------|
{{range .Tags -}}
| {{.Name}}{{if .Link}} ([external]({{.Link}})){{end}} | {{.Size}} | {{.Requires}} | {{.Description}} |
{{end}}`

// tagRow is one rendered table row.
type tagRow struct {
	Name        string
	Size        int
	Requires    string
	Link        string
	Description string
}

type docData struct {
	Source string
	Tags   []tagRow
}

func main() {
	source := flag.String("source", "", "annotated source file to document")
	out := flag.String("out", "", "output file (default stdout)")
	load := flag.Bool("load", false, "fetch and splice external tag sources before measuring")
	flag.Parse()

	if *source == "" {
		fmt.Fprintln(os.Stderr, "Error: -source is required")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(*source, *out, *load); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(source, out string, load bool) error {
	opts := utag.ProcessOptions{
		LoadExternal: load,
		MeasureSizes: true,
	}
	if load {
		mux, err := fetch.NewMux(fetch.NewHTTP(), fetch.NewFile())
		if err != nil {
			return err
		}
		opts.Options = append(opts.Options, utag.WithFetcher(mux))
	}

	script, err := utag.ProcessFile(context.Background(), source, opts)
	if err != nil {
		return err
	}

	for _, d := range script.Diagnostics {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", d)
	}

	data := docData{Source: source}
	for _, name := range natsort.Sorted(script.Registry.Names()) {
		tag, ok := script.Registry.Lookup(name)
		if !ok {
			continue
		}
		requires := "(none)"
		if len(tag.Requires) > 0 {
			requires = strings.Join(tag.Requires, ", ")
		}
		data.Tags = append(data.Tags, tagRow{
			Name:        tag.Name,
			Size:        tag.Size,
			Requires:    requires,
			Link:        tag.Link,
			Description: tag.Description,
		})
	}

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	tmpl, err := template.New("tagdoc").Parse(docTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, data)
}
