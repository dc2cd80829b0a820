// utag compiles conditionally tagged sources, inspects their tag
// registries, and tracks the size cost of every feature tag.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if exitErr.message != "" {
				fmt.Fprintln(os.Stderr, exitErr.message)
			}
			os.Exit(exitErr.code)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return &exitError{code: 2, message: "no command given"}
	}

	switch args[0] {
	case "build":
		return runBuild(args[1:], stdout, stderr)
	case "tags":
		return runTags(args[1:], stdout, stderr)
	case "graph":
		return runGraph(args[1:], stdout, stderr)
	case "diff":
		return runDiff(args[1:], stdout, stderr)
	case "version", "-V", "-version", "--version":
		fmt.Fprintf(stdout, "utag %s\n", version)
		return nil
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return &exitError{code: 2, message: fmt.Sprintf("unknown command %q", args[0])}
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `utag - conditional compilation for tagged sources.

Usage:
  utag <command> [options] [arguments]

Commands:
  build    Compile a source file with a chosen tag set
  tags     List a source file's tags, optionally with measured sizes
  graph    Render the tag requirement graph
  diff     Compare two size reports
  version  Print the version and exit

Run 'utag <command> -h' for command options.
`)
}

// exitError carries a specific process exit code.
type exitError struct {
	code    int
	message string
}

func (e *exitError) Error() string {
	return e.message
}

// flagError normalizes flag.Parse failures: -h prints usage and exits
// cleanly, anything else is a usage error.
func flagError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return &exitError{code: 2, message: err.Error()}
}

// commonFlags are accepted by every subcommand.
type commonFlags struct {
	logLevel  string
	logFormat string
	envFile   string
	config    string
	profile   string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error (default info)")
	fs.StringVar(&c.logFormat, "log-format", "", "log output format: text or json (default text)")
	fs.StringVar(&c.envFile, "env-file", "", "load environment variables from this file")
	fs.StringVar(&c.config, "config", "", "HCL config file (default utag.hcl when present)")
	fs.StringVar(&c.profile, "profile", "", "named profile from the config file")
}

// setup loads the environment, resolves the config file and profile,
// and builds the logger. Flag values layer on top of the returned
// settings in each command.
func (c *commonFlags) setup(stderr io.Writer) (*settings, *slog.Logger, error) {
	if err := loadEnv(c.envFile); err != nil {
		return nil, nil, err
	}

	level := firstNonEmpty(c.logLevel, os.Getenv("UTAG_LOG_LEVEL"), "info")
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return nil, nil, &exitError{code: 2, message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	format := firstNonEmpty(c.logFormat, os.Getenv("UTAG_LOG_FORMAT"), "text")
	if format != "text" && format != "json" {
		return nil, nil, &exitError{code: 2, message: "invalid log-format: must be 'text' or 'json'"}
	}

	logger := newLogger(level, format, stderr)

	cfg, err := findConfig(c.config)
	if err != nil {
		return nil, nil, err
	}
	if cfg != nil {
		logger.Debug("loaded config file", "path", cfg.Path, "profiles", len(cfg.Profiles))
	}

	st, err := cfg.resolve(c.profile)
	if err != nil {
		return nil, nil, err
	}
	return st, logger, nil
}

// newLogger creates a configured slog.Logger. It does not touch the
// global logger, so tests can run commands with isolated output.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if formatStr == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(handler)
}

// loadEnv loads variables from an env file without overriding the
// existing environment. A missing default .env is fine; a missing
// explicitly named file is an error.
func loadEnv(path string) error {
	if path == "" {
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// splitList parses a comma-separated flag value.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// setFlagNames reports which flags were given explicitly, so boolean
// flags can override profile values only when actually present.
func setFlagNames(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}
