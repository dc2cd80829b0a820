package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/tagware/go-utag"
	"github.com/tagware/go-utag/report"
)

func runTags(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tags", flag.ContinueOnError)
	fs.SetOutput(stderr)

	common := &commonFlags{}
	common.register(fs)
	jsonOut := fs.Bool("json", false, "emit the size report as JSON instead of a table")
	sizes := fs.Bool("sizes", false, "measure the byte cost of each tag")
	reportPath := fs.String("report", "", "write a size report to this file")
	check := fs.Bool("check", false, "lint tag definitions and exit non-zero on issues")
	mirror := fs.String("mirror", "", "directory of mirrored external sources, tried before the network")
	noFetch := fs.Bool("no-fetch", false, "skip fetching external sources")
	dialect := fs.String("dialect", "", "source dialect: js, go, starlark, css, html (default by extension)")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: utag tags [options] <source>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return flagError(err)
	}

	st, logger, err := common.setup(stderr)
	if err != nil {
		return err
	}

	if *reportPath != "" {
		st.report = *reportPath
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

	ctx := context.Background()
	s, err := pl.load(ctx, source, !*noFetch)
	if err != nil {
		return err
	}

	if *check {
		issues := utag.CheckTags(s)
		for _, issue := range issues {
			fmt.Fprintln(stdout, issue)
		}
		if len(issues) > 0 {
			return &exitError{code: 1, message: fmt.Sprintf("%d tag issues", len(issues))}
		}
		return nil
	}

	measured := *sizes || *jsonOut || st.report != ""
	if measured {
		pl.p.MeasureTags(s)
	}

	if st.report != "" || *jsonOut {
		hashFetcher := pl.fetcher
		if *noFetch {
			hashFetcher = nil
		}
		rep := report.FromMeasurements(collectMeasurements(ctx, s, hashFetcher, logger))
		rep.Meta["source"] = source
		rep.Meta["dialect"] = pl.dialect.Name

		if st.report != "" {
			if err := rep.WriteFile(st.report); err != nil {
				return err
			}
			logger.Info("wrote size report", "path", st.report, "tags", s.Registry.Len())
		}
		if *jsonOut {
			_, err := rep.WriteTo(stdout)
			return err
		}
	}

	return printTagTable(stdout, s, measured)
}

func printTagTable(w io.Writer, s *utag.Script, measured bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tREQUIRES\tLINK\tDESCRIPTION")
	for _, tag := range s.Registry.Tags() {
		size := "-"
		if measured {
			size = strconv.Itoa(tag.Size)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			tag.Name,
			size,
			orDash(strings.Join(tag.Requires, ",")),
			orDash(tag.Link),
			orDash(tag.Description),
		)
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
