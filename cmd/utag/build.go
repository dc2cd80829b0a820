package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/tagware/go-utag/transform"
)

func runBuild(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(stderr)

	common := &commonFlags{}
	common.register(fs)
	include := fs.String("include", "", "comma-separated tags to compile in")
	output := fs.String("o", "", "output file (default stdout)")
	minify := fs.Bool("minify", false, "minify the compiled output")
	format := fs.Bool("format", false, "format the compiled output")
	mirror := fs.String("mirror", "", "directory of mirrored external sources, tried before the network")
	noFetch := fs.Bool("no-fetch", false, "skip fetching external sources")
	dialect := fs.String("dialect", "", "source dialect: js, go, starlark, css, html (default by extension)")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: utag build [options] <source>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return flagError(err)
	}

	st, logger, err := common.setup(stderr)
	if err != nil {
		return err
	}

	set := setFlagNames(fs)
	if *include != "" {
		st.include = splitList(*include)
	}
	if *output != "" {
		st.output = *output
	}
	if set["minify"] {
		st.minify = *minify
	}
	if set["format"] {
		st.format = *format
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
	if st.minify && !transform.CanMinify(pl.dialect.MediaType) {
		return &exitError{code: 2, message: fmt.Sprintf("dialect %q has no minifier", pl.dialect.Name)}
	}
	if st.format && pl.dialect.Name != "starlark" {
		return &exitError{code: 2, message: fmt.Sprintf("dialect %q has no formatter", pl.dialect.Name)}
	}

	ctx := context.Background()
	s, err := pl.load(ctx, source, !*noFetch)
	if err != nil {
		return err
	}

	sel := pl.p.EffectiveTags(s, st.include)
	for _, name := range sel.Unknown {
		logger.Warn("requested tag is not defined", "tag", name)
	}

	compiled, err := pl.p.Compile(s, sel.Included, st.minify, st.format)
	if err != nil {
		return fmt.Errorf("failed to compile %s: %w", source, err)
	}

	logger.Info("compiled", "source", source, "tags", len(sel.Included), "bytes", len(compiled))
	return writeOutput(st.output, compiled, stdout)
}
