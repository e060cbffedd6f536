// Package ccparse parses conventional commit messages into structured
// records: header parts, body, footer, notes, issue references, mentions,
// reverts and user-defined fields.
//
// Related packages: config, commit, release, runner, model, vcs, vcs/gitcli,
// vcs/gogit
package ccparse

import (
	"github.com/jeffrom/ccparse/commit"
	"github.com/jeffrom/ccparse/config"
)

// Options configures the parser. Unset values take the conventional commit
// defaults.
//
// See "go doc github.com/jeffrom/ccparse/config Options" for more information.
type Options = config.Options

// Commit is a parsed commit message.
type Commit = commit.Commit

// Parse parses raw with opts applied over the default options. For parsing
// many messages, build a commit.Parser once instead.
func Parse(raw string, opts *Options) (*Commit, error) {
	resolved, err := config.NewOptions(opts).Resolve()
	if err != nil {
		return nil, err
	}
	return commit.Parse(raw, resolved)
}
