package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

const defaultConfigName = "utag.hcl"

// configFile is the HCL schema: an optional defaults block plus any
// number of named profiles.
//
//	defaults {
//	  dialect = "js"
//	  minify  = true
//	}
//
//	profile "release" {
//	  include = ["CORE", "GEO"]
//	  output  = "${env.BUILD_DIR}/app.js"
//	}
type configFile struct {
	Defaults *settingsBlock  `hcl:"defaults,block"`
	Profiles []*profileBlock `hcl:"profile,block"`
}

type settingsBlock struct {
	Source  string   `hcl:"source,optional"`
	Output  string   `hcl:"output,optional"`
	Include []string `hcl:"include,optional"`
	Dialect string   `hcl:"dialect,optional"`
	Minify  *bool    `hcl:"minify,optional"`
	Format  *bool    `hcl:"format,optional"`
	Mirror  string   `hcl:"mirror,optional"`
	Report  string   `hcl:"report,optional"`
}

// profileBlock repeats the settings fields instead of embedding
// settingsBlock because gohcl does not flatten embedded structs.
type profileBlock struct {
	Name    string   `hcl:"name,label"`
	Source  string   `hcl:"source,optional"`
	Output  string   `hcl:"output,optional"`
	Include []string `hcl:"include,optional"`
	Dialect string   `hcl:"dialect,optional"`
	Minify  *bool    `hcl:"minify,optional"`
	Format  *bool    `hcl:"format,optional"`
	Mirror  string   `hcl:"mirror,optional"`
	Report  string   `hcl:"report,optional"`
}

func (p *profileBlock) block() *settingsBlock {
	return &settingsBlock{
		Source:  p.Source,
		Output:  p.Output,
		Include: p.Include,
		Dialect: p.Dialect,
		Minify:  p.Minify,
		Format:  p.Format,
		Mirror:  p.Mirror,
		Report:  p.Report,
	}
}

// Config is a parsed config file.
type Config struct {
	Path     string
	Defaults *settingsBlock
	Profiles []*profileBlock
}

// findConfig locates and parses the config file. Order: the explicit
// -config flag, then UTAG_CONFIG, then utag.hcl in the working
// directory. No file anywhere is not an error.
func findConfig(explicit string) (*Config, error) {
	path := firstNonEmpty(explicit, os.Getenv("UTAG_CONFIG"))
	if path == "" {
		if _, err := os.Stat(defaultConfigName); err != nil {
			return nil, nil
		}
		path = defaultConfigName
	}
	return loadConfig(path)
}

func loadConfig(path string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, diags)
	}

	var root configFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, diags)
	}

	seen := make(map[string]bool)
	for _, p := range root.Profiles {
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate profile %q in %s", p.Name, path)
		}
		seen[p.Name] = true
	}

	return &Config{Path: path, Defaults: root.Defaults, Profiles: root.Profiles}, nil
}

// evalContext exposes the process environment to HCL expressions as
// an "env" object, so configs can write "${env.BUILD_DIR}/app.js".
func evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
	}
}

// resolve layers the defaults block and the requested profile into a
// flat settings value. A nil Config resolves to empty settings unless
// a profile was requested.
func (c *Config) resolve(profileName string) (*settings, error) {
	st := &settings{}
	if c == nil {
		if profileName != "" {
			return nil, &exitError{code: 2, message: fmt.Sprintf("profile %q requested but no config file was found", profileName)}
		}
		return st, nil
	}

	st.apply(c.Defaults)
	if profileName == "" {
		return st, nil
	}

	for _, p := range c.Profiles {
		if p.Name == profileName {
			st.apply(p.block())
			return st, nil
		}
	}
	return nil, &exitError{code: 2, message: fmt.Sprintf("profile %q not found in %s", profileName, c.Path)}
}

// settings is the flattened configuration a command starts from.
// Command-line flags override individual fields afterwards.
type settings struct {
	source  string
	output  string
	include []string
	dialect string
	minify  bool
	format  bool
	mirror  string
	report  string
}

func (s *settings) apply(b *settingsBlock) {
	if b == nil {
		return
	}
	if b.Source != "" {
		s.source = b.Source
	}
	if b.Output != "" {
		s.output = b.Output
	}
	if len(b.Include) > 0 {
		s.include = b.Include
	}
	if b.Dialect != "" {
		s.dialect = b.Dialect
	}
	if b.Minify != nil {
		s.minify = *b.Minify
	}
	if b.Format != nil {
		s.format = *b.Format
	}
	if b.Mirror != "" {
		s.mirror = b.Mirror
	}
	if b.Report != "" {
		s.report = b.Report
	}
}
