package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/tagware/go-utag/report"
)

func runDiff(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	fs.SetOutput(stderr)

	common := &commonFlags{}
	common.register(fs)
	jsonOut := fs.Bool("json", false, "emit the diff as JSON")
	failOnChange := fs.Bool("fail-on-change", false, "exit non-zero when the reports differ")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: utag diff [options] <old.json> <new.json>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return flagError(err)
	}

	_, logger, err := common.setup(stderr)
	if err != nil {
		return err
	}

	oldPath, newPath := fs.Arg(0), fs.Arg(1)
	if oldPath == "" || newPath == "" {
		return &exitError{code: 2, message: "diff needs two report files: utag diff <old.json> <new.json>"}
	}

	oldRep, err := report.ReadFile(oldPath)
	if err != nil {
		return err
	}
	newRep, err := report.ReadFile(newPath)
	if err != nil {
		return err
	}
	if !oldRep.IsCompatible() {
		logger.Warn("old report has an unsupported version", "path", oldPath, "version", oldRep.Version)
	}
	if !newRep.IsCompatible() {
		logger.Warn("new report has an unsupported version", "path", newPath, "version", newRep.Version)
	}

	d := report.Compare(oldRep, newRep)

	if *jsonOut {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return err
		}
	} else if err := writeOutput("", d.Summary(), stdout); err != nil {
		return err
	}

	if *failOnChange && !d.IsEmpty() {
		return &exitError{code: 1, message: "size report changed"}
	}
	return nil
}
