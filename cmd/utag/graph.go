package main

import (
	"context"
	"flag"
	"fmt"
	"io"
)

func runGraph(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("graph", flag.ContinueOnError)
	fs.SetOutput(stderr)

	common := &commonFlags{}
	common.register(fs)
	format := fs.String("format", "text", "output format: text, dot, or json")
	explain := fs.String("explain", "", "explain why this tag ends up included")
	sizes := fs.Bool("sizes", false, "measure tag sizes before rendering")
	mirror := fs.String("mirror", "", "directory of mirrored external sources, tried before the network")
	noFetch := fs.Bool("no-fetch", false, "skip fetching external sources")
	dialect := fs.String("dialect", "", "source dialect: js, go, starlark, css, html (default by extension)")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: utag graph [options] <source>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return flagError(err)
	}

	st, logger, err := common.setup(stderr)
	if err != nil {
		return err
	}

	if *mirror != "" {
		st.mirror = *mirror
	}
	if *dialect != "" {
		st.dialect = *dialect
	}

	source := fs.Arg(0)
	if source == "" {
		source = st.source
	}
	if source == "" {
		return &exitError{code: 2, message: "no source file given"}
	}

	pl, err := newPipeline(st, source, logger)
	if err != nil {
		return err
	}

	s, err := pl.load(context.Background(), source, !*noFetch)
	if err != nil {
		return err
	}

	if *sizes {
		pl.p.MeasureTags(s)
	}
	g := pl.p.RequirementGraph(s)

	if *explain != "" {
		text, err := g.ToExplainText(*explain)
		if err != nil {
			return err
		}
		return writeOutput("", text, stdout)
	}

	switch *format {
	case "text":
		return writeOutput("", g.ToText(), stdout)
	case "dot":
		return writeOutput("", g.ToDOT(), stdout)
	case "json":
		data, err := g.ToJSON()
		if err != nil {
			return err
		}
		return writeOutput("", string(data), stdout)
	default:
		return &exitError{code: 2, message: fmt.Sprintf("invalid format %q: must be 'text', 'dot', or 'json'", *format)}
	}
}
