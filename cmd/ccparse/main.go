package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ghodss/yaml"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jeffrom/ccparse/commit"
	"github.com/jeffrom/ccparse/config"
	"github.com/jeffrom/ccparse/runner"
	"github.com/jeffrom/ccparse/vcs"
	"github.com/jeffrom/ccparse/vcs/gitcli"
	"github.com/jeffrom/ccparse/vcs/gogit"
)

// Version is overridden by go build -X
var Version string

const configFileName = "ccparse.yaml"

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(rawArgs []string) error {
	return runWithIO(rawArgs, nil)
}

func runWithIO(rawArgs []string, termio *config.TerminalIO) error {
	cfg := config.NewWithTerminalIO(nil, termio)
	flagCfg := &config.Config{}

	var help bool
	var version bool
	var cfgFile string
	var dir string
	var messages []string
	var gitQuery string
	var check bool
	var readStats bool
	var bump string
	var printConfig bool
	var noReferenceActions bool
	flags := pflag.NewFlagSet("ccparse", pflag.ContinueOnError)
	flags.SetOutput(cfg.Term.Stderr)
	flags.BoolVarP(&help, "help", "h", false, "show help")
	flags.BoolVarP(&version, "version", "V", false, "print version and exit")
	flags.StringArrayVarP(&messages, "message", "m", nil, "parse commit `message`")
	flags.StringVar(&flagCfg.Separator, "separator", "", "split stdin into several messages on `sep`")
	flags.StringVar(&gitQuery, "git", "", "parse commit history selected by `rev` (default HEAD)")
	flags.Lookup("git").NoOptDefVal = "HEAD"
	flags.StringVar(&flagCfg.Backend, "backend", "", "read history with `backend` gitcli or gogit")
	flags.StringVar(&dir, "dir", "", "read history from the repository in `dir`")
	flags.StringVarP(&flagCfg.Preset, "preset", "p", "", fmt.Sprintf("start from the `name`d preset (%s)", strings.Join(config.PresetNames(), ", ")))
	flags.StringVarP(&cfgFile, "config", "c", "", "specify config `file`")

	opts := &flagCfg.Options
	flags.StringVar(&opts.HeaderPattern, "header-pattern", "", "header `regexp`")
	flags.StringSliceVar(&opts.HeaderCorrespondence, "header-correspondence", nil, "header group `names`")
	flags.StringVar(&opts.MergePattern, "merge-pattern", "", "merge line `regexp`")
	flags.StringSliceVar(&opts.MergeCorrespondence, "merge-correspondence", nil, "merge group `names`")
	flags.StringArrayVar(&opts.ReferenceActions, "reference-action", nil, "keyword introducing issue references")
	flags.BoolVar(&noReferenceActions, "no-reference-actions", false, "find issue references without action keywords")
	flags.StringArrayVar(&opts.IssuePrefixes, "issue-prefix", nil, "issue reference `prefix`")
	flags.BoolVar(&opts.IssuePrefixesCaseSensitive, "issue-prefixes-case-sensitive", false, "match issue prefixes case-sensitively")
	flags.StringArrayVar(&opts.NoteKeywords, "note-keyword", nil, "note `keyword`, such as BREAKING CHANGE")
	flags.StringVar(&opts.FieldPattern, "field-pattern", "", "other field `regexp`")
	flags.StringVar(&opts.RevertPattern, "revert-pattern", "", "revert `regexp`")
	flags.StringSliceVar(&opts.RevertCorrespondence, "revert-correspondence", nil, "revert group `names`")
	flags.StringVar(&opts.CommentChar, "comment-char", "", "drop lines starting with `char`")

	flags.StringVarP(&flagCfg.Format, "format", "f", "", "output `format`, json or yaml")
	flags.BoolVarP(&check, "check", "C", false, "validate commit messages")
	flags.StringArrayVar(&flagCfg.AllowedTypes, "allowed-type", nil, "declare allowed commit `type`s")
	flags.StringArrayVar(&flagCfg.AllowedScopes, "allowed-scope", nil, "declare allowed scopes' `name`s")
	flags.BoolVarP(&readStats, "stats", "S", false, "print commit stats")
	flags.StringVar(&bump, "bump", "", "print the release following `version` (or latest tag)")
	flags.BoolVar(&printConfig, "print-config", false, "print configuration and exit")
	flags.BoolVarP(&flagCfg.Verbose, "verbose", "v", false, "print additional information")
	flags.BoolVar(&flagCfg.Debug, "debug", false, "print parser diagnostics")
	flags.BoolVarP(&flagCfg.Quiet, "quiet", "q", false, "print as little as necessary")

	if err := flags.Parse(rawArgs); err != nil {
		return err
	}
	var args []string
	if flags.NArg() > 0 {
		args = flags.Args()[1:]
	}

	if help {
		usage(cfg, flags)
		return nil
	}
	if version {
		cfg.Printf("%s", Version)
		return nil
	}

	if noReferenceActions {
		if len(opts.ReferenceActions) > 0 {
			return errors.New("--no-reference-actions and --reference-action can't be used together")
		}
		opts.ReferenceActions = []string{}
	}

	fileCfg, err := readConfigYAML(cfgFile)
	if err != nil {
		return err
	}
	cfg, err = mergeConfig(cfg, fileCfg, flagCfg)
	if err != nil {
		return err
	}
	applyChangedBools(flags, &cfg, flagCfg)
	if cfg.Verbose {
		b, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		cfg.Debugf("config: %s", string(b))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if printConfig {
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(cfg.Term.Stdout, string(b))
		return nil
	}
	// done setting up config

	logger := newLogger(cfg)
	defer logger.Sync()

	rnr, err := runner.New(cfg, newVCS(cfg, dir), runner.WithLogger(logger))
	if err != nil {
		return err
	}
	ctx := context.Background()

	var entries []*runner.Entry
	if flags.Lookup("git").Changed {
		entries, err = rnr.ReadHistory(ctx, gitQuery)
	} else {
		var msgs []string
		msgs, err = collectMessages(cfg, rnr, messages, args)
		if err != nil {
			return err
		}
		entries, err = rnr.ParseMessages(msgs)
	}
	if err != nil {
		return err
	}
	cfg.Debugf("parsed %d commit(s)", len(entries))

	switch {
	case check:
		if _, err := rnr.Check(entries); err != nil {
			cf := runner.CheckFailure{}
			if errors.As(err, &cf) {
				if err := cf.WriteFailure(cfg.Term.Stdout); err != nil {
					cfg.Errorf("failed to write invalid commit information: %v", err)
				}
			}
			return err
		}
		cfg.Printf("OK")
		return nil

	case readStats:
		return rnr.Stats(entries).TextSummary(cfg.Term.Stdout)

	case bump != "":
		res := rnr.Analyze(entries)
		if err := rnr.Bump(ctx, bump, res); err != nil {
			return err
		}
		if cfg.Quiet {
			fmt.Fprintln(cfg.Term.Stdout, res.Next.String())
			return nil
		}
		return writeOutput(cfg, res)
	}

	commits := make([]*commit.Commit, len(entries))
	for i, e := range entries {
		commits[i] = e.Commit
	}
	if len(commits) == 1 {
		return writeOutput(cfg, commits[0])
	}
	return writeOutput(cfg, commits)
}

// collectMessages gathers messages from --message, positional arguments and
// stdin. "-" reads stdin, which is also read when nothing else was given and
// stdin is not a terminal.
func collectMessages(cfg config.Config, rnr *runner.Runner, messages, args []string) ([]string, error) {
	msgs := append([]string(nil), messages...)
	readStdin := false
	for _, arg := range args {
		if arg == "-" {
			readStdin = true
			continue
		}
		msgs = append(msgs, arg)
	}
	if len(msgs) == 0 && cfg.Term.StdinIsPipe() {
		readStdin = true
	}

	if readStdin {
		if cfg.Term.Stdin == nil {
			return nil, errors.New("stdin is not available")
		}
		stdinMsgs, err := rnr.ReadMessages(cfg.Term.Stdin)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, stdinMsgs...)
	}
	if len(msgs) == 0 {
		return nil, errors.New("no commit messages given (see --help)")
	}
	return msgs, nil
}

// mergeConfig applies the preset, then the config file, then flags.
func mergeConfig(cfg config.Config, fileCfg, flagCfg *config.Config) (config.Config, error) {
	preset := cfg.Preset
	if fileCfg != nil && fileCfg.Preset != "" {
		preset = fileCfg.Preset
	}
	if flagCfg.Preset != "" {
		preset = flagCfg.Preset
	}
	base, err := config.GetPreset(preset)
	if err != nil {
		return cfg, err
	}
	cfg.Options = base
	cfg.Preset = preset

	cfg = cfg.Merge(fileCfg)
	cfg = cfg.Merge(flagCfg)
	return cfg, nil
}

// applyChangedBools sets the boolean flags given on the command line, which
// merging skips when they are false.
func applyChangedBools(flags *pflag.FlagSet, cfg *config.Config, flagCfg *config.Config) {
	bools := []struct {
		name string
		dst  *bool
		src  bool
	}{
		{"issue-prefixes-case-sensitive", &cfg.Options.IssuePrefixesCaseSensitive, flagCfg.Options.IssuePrefixesCaseSensitive},
		{"verbose", &cfg.Verbose, flagCfg.Verbose},
		{"debug", &cfg.Debug, flagCfg.Debug},
		{"quiet", &cfg.Quiet, flagCfg.Quiet},
	}
	for _, b := range bools {
		if fl := flags.Lookup(b.name); fl != nil && fl.Changed {
			*b.dst = b.src
		}
	}
}

func newVCS(cfg config.Config, dir string) vcs.Interface {
	if cfg.Backend == "gogit" {
		return gogit.New(cfg, dir)
	}
	return gitcli.New(cfg, dir)
}

func newLogger(cfg config.Config) *zap.Logger {
	if !cfg.Debug {
		return zap.NewNop()
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(cfg.Term.Stderr), zap.DebugLevel)
	return zap.New(core)
}

func writeOutput(cfg config.Config, v interface{}) error {
	var b []byte
	var err error
	switch cfg.Format {
	case "yaml":
		b, err = yaml.Marshal(v)
	default:
		if cfg.Term.StdoutIsTerminal() {
			b, err = json.MarshalIndent(v, "", "  ")
		} else {
			b, err = json.Marshal(v)
		}
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cfg.Term.Stdout, strings.TrimRight(string(b), "\n"))
	return err
}

func usage(cfg config.Config, flags *pflag.FlagSet) {
	fmt.Fprintf(cfg.Term.Stdout, `ccparse [message...]

Parse conventional commit messages into JSON.

FLAGS
%s

EXAMPLES

# parse a message
$ ccparse 'feat(api): add widgets'

# parse the commits since the last release tag
$ ccparse --git="$(git describe --tags --abbrev=0)..HEAD"

# parse messages from stdin, one per NUL byte
$ git log --format='%%B%%x00' | ccparse --separator "$(printf '\0')"

# validate the message about to be committed
$ ccparse --check --comment-char '#' - < .git/COMMIT_EDITMSG

# print the next version
$ ccparse --git=v1.4.0..HEAD --bump v1.4.0 -q
`, flags.FlagUsages())
}

// readConfigYAML reads p, or searches for ccparse.yaml from the working
// directory upward when p is empty. It returns nil when none is found.
func readConfigYAML(p string) (*config.Config, error) {
	if p != "" {
		return loadConfigYAML(p)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	for {
		cand := filepath.Join(wd, configFileName)
		if _, err := os.Stat(cand); err == nil {
			return loadConfigYAML(cand)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}

		parent := filepath.Dir(wd)
		if parent == wd {
			return nil, nil
		}
		wd = parent
	}
}

func loadConfigYAML(p string) (*config.Config, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg := &config.Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", p)
	}
	return cfg, nil
}
