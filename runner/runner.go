// Package runner ties parsing, release analysis and commit history together
// for command-line execution.
package runner

import (
	"context"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/jeffrom/ccparse/commit"
	"github.com/jeffrom/ccparse/config"
	"github.com/jeffrom/ccparse/release"
	"github.com/jeffrom/ccparse/vcs"
)

// hashField is the other-field used to carry a commit id through the parser,
// the way git log output is usually piped in: the message, then
// "-hash-" and the id on the following line.
const hashField = "-hash-"

type Runner struct {
	cfg      config.Config
	vcs      vcs.Interface
	opts     *config.Resolved
	parser   *commit.Parser
	analyzer *release.Analyzer
	logger   *zap.Logger
}

type Option func(r *Runner)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New returns a Runner for cfg. vcs may be nil when no history is read.
func New(cfg config.Config, vcs vcs.Interface, options ...Option) (*Runner, error) {
	opts, err := cfg.Options.Resolve()
	if err != nil {
		return nil, err
	}
	analyzer, err := release.NewAnalyzer(cfg.Release)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		cfg:      cfg,
		vcs:      vcs,
		opts:     opts,
		analyzer: analyzer,
		logger:   zap.NewNop(),
	}
	for _, o := range options {
		o(r)
	}
	r.parser = commit.NewParser(opts, commit.WithLogger(r.logger))
	return r, nil
}

func (r *Runner) Parser() *commit.Parser { return r.parser }

// Entry is a parsed commit message.
type Entry struct {
	// ID is the commit id when the message was read from history.
	ID     string
	Raw    string
	Commit *commit.Commit
}

// Title returns the first non-blank line of the raw message.
func (e *Entry) Title() string {
	for _, line := range strings.Split(e.Raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

func (r *Runner) ParseMessages(msgs []string) ([]*Entry, error) {
	entries := make([]*Entry, 0, len(msgs))
	for i, msg := range msgs {
		c, err := r.parser.Parse(msg)
		if err != nil {
			return nil, errors.Wrapf(err, "message %d", i+1)
		}
		entries = append(entries, &Entry{Raw: msg, Commit: c})
	}
	return entries, nil
}

// ReadMessages reads commit messages from rdr. When a separator is
// configured the input is split on it, and blank messages are skipped.
func (r *Runner) ReadMessages(rdr io.Reader) ([]string, error) {
	b, err := io.ReadAll(rdr)
	if err != nil {
		return nil, errors.Wrap(err, "runner: read messages")
	}
	raw := string(b)
	if r.cfg.Separator == "" {
		return []string{raw}, nil
	}

	var msgs []string
	for _, msg := range strings.Split(raw, r.cfg.Separator) {
		if strings.TrimSpace(msg) == "" {
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// ReadHistory parses the commits query selects, newest first. When the
// field pattern recognizes "-hash-", each commit id is appended to its
// message so it comes out as the hash field.
func (r *Runner) ReadHistory(ctx context.Context, query string) ([]*Entry, error) {
	if r.vcs == nil {
		return nil, errors.New("runner: no vcs configured")
	}
	commits, err := r.vcs.ReadCommits(ctx, query)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("read history", zap.String("query", query), zap.Int("commits", len(commits)))

	withHash := r.opts.FieldPattern != nil && r.opts.FieldPattern.MatchString(hashField)
	entries := make([]*Entry, 0, len(commits))
	for _, mc := range commits {
		msg := mc.Message()
		raw := msg
		if withHash {
			raw = msg + "\n" + hashField + "\n" + mc.ID
		}
		c, err := r.parser.Parse(raw)
		if err != nil {
			if errors.Is(err, commit.ErrInvalidInput) {
				r.logger.Debug("skipping empty commit message", zap.String("commit", mc.ShortID()))
				continue
			}
			return nil, errors.Wrapf(err, "commit %s", mc.ShortID())
		}
		entries = append(entries, &Entry{ID: mc.ID, Raw: msg, Commit: c})
	}
	return entries, nil
}

// Analyze classifies entries for release.
func (r *Runner) Analyze(entries []*Entry) *release.Result {
	commits := make([]*commit.Commit, len(entries))
	for i, e := range entries {
		commits[i] = e.Commit
	}
	res := r.analyzer.Analyze(commits)
	for i, ac := range res.Commits {
		ac.ID = entries[i].ID
	}
	return res
}

// Bump computes the next version of res from current. "latest" reads the
// current version from the repository's tags.
func (r *Runner) Bump(ctx context.Context, current string, res *release.Result) error {
	var v release.Version
	if current == "latest" {
		if r.vcs == nil {
			return errors.New("runner: no vcs configured")
		}
		tags, err := r.vcs.ReadTags(ctx, "")
		if err != nil {
			return err
		}
		latest, err := release.Latest(tags)
		if err != nil {
			return err
		}
		v.Version = latest
	} else {
		parsed, err := release.ParseVersion(current)
		if err != nil {
			return err
		}
		v.Version = parsed
	}
	r.logger.Debug("bump", zap.String("current", v.String()), zap.Stringer("release_type", res.Type))
	return res.Bump(v.Version)
}
