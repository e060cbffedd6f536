// Package config holds parser options, their defaults and presets, and the
// command-line configuration.
package config

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/imdario/mergo"
)

// Config holds the command-line configuration. Options configure the parser
// itself.
type Config struct {
	Verbose bool `json:"verbose,omitempty"`
	Quiet   bool `json:"quiet,omitempty"`
	// Debug turns on parser diagnostics on stderr.
	Debug bool `json:"debug,omitempty"`

	// Format is the output format, json or yaml.
	Format string `json:"format,omitempty"`
	// Preset names the builtin options the configured Options apply onto.
	Preset string `json:"preset,omitempty"`
	// Separator splits input read from stdin into several commit messages.
	Separator string `json:"separator,omitempty"`
	// Backend selects how commit history is read: gitcli or gogit.
	Backend string `json:"backend,omitempty"`

	AllowedTypes  []string `json:"allowed_types,omitempty"`
	AllowedScopes []string `json:"allowed_scopes,omitempty"`

	Options Options       `json:"options,omitempty"`
	Release ReleasePolicy `json:"release,omitempty"`

	Term TerminalIO `json:"-"`
}

func New(overrides *Config) Config {
	return NewWithTerminalIO(overrides, nil)
}

func NewWithTerminalIO(overrides *Config, termio *TerminalIO) Config {
	cfg := GetDefaultConfig()
	if termio == nil {
		termio = &DefaultTermIO
	}
	cfg.Term = *termio

	if overrides != nil {
		cfg = cfg.Merge(overrides)
	}
	return cfg
}

func GetDefaultConfig() Config {
	return Config{
		Format:  "json",
		Backend: "gitcli",
		Options: GetDefault(),
		Release: GetDefaultReleasePolicy(),
	}
}

// Merge returns c with the non-empty values of other applied on top.
func (c Config) Merge(other *Config) Config {
	if other == nil {
		return c
	}
	o := *other
	o.Term = TerminalIO{}
	term := c.Term
	c.Term = TerminalIO{}

	opts := MergeOptions(c.Options, &o.Options)
	if err := mergo.Merge(&c, &o, mergo.WithOverride); err != nil {
		panic(err)
	}
	c.Options = opts
	c.Term = term
	if other.Term.Stdout != nil {
		c.Term = other.Term
	}
	return c
}

func (c Config) Validate() error {
	switch c.Format {
	case "json", "yaml":
	default:
		return errors.Newf("config: invalid format %q", c.Format)
	}
	switch c.Backend {
	case "gitcli", "gogit":
	default:
		return errors.Newf("config: invalid backend %q", c.Backend)
	}
	if _, err := c.Options.Resolve(); err != nil {
		return err
	}
	return nil
}

func (c Config) Printf(msg string, args ...interface{}) {
	if c.Quiet {
		return
	}
	fmt.Fprintf(c.Term.Stdout, msg+"\n", args...)
}

func (c Config) Errorf(msg string, args ...interface{}) {
	fmt.Fprintf(c.Term.Stderr, msg+"\n", args...)
}

// Debugf writes to stderr so it never mixes with parse output.
func (c Config) Debugf(msg string, args ...interface{}) {
	if !c.Verbose {
		return
	}
	c.Errorf(msg, args...)
}
