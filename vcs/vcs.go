// Package vcs abstracts reading commit history. Implementations live in
// gitcli, which shells out to git, and gogit, which reads the repository
// in-process.
package vcs

import (
	"context"
	"fmt"

	"github.com/jeffrom/ccparse/model"
)

type NotFoundError struct {
	Ref string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("vcs: ref %q not found", e.Ref)
}

func (e NotFoundError) Is(other error) bool {
	_, ok := other.(NotFoundError)
	return ok
}

type Interface interface {
	// ReadCommits returns the commits reachable from query, newest first.
	// query is a revision or a "from..to" range; empty means HEAD.
	ReadCommits(ctx context.Context, query string) ([]*model.Commit, error)
	// ReadTags returns the tags matching the glob query, or all tags when it
	// is empty.
	ReadTags(ctx context.Context, query string) ([]string, error)
	CurrentCommit(ctx context.Context) (string, error)
}
