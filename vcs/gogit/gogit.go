// Package gogit implements vcs.Interface by reading the repository with
// go-git, without a git binary.
package gogit

import (
	"context"
	"path"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/jeffrom/ccparse/config"
	"github.com/jeffrom/ccparse/model"
	"github.com/jeffrom/ccparse/vcs"
)

// Repo implements vcs.Interface on a repository opened with go-git.
type Repo struct {
	cfg  config.Config
	wd   string
	repo *git.Repository
}

func New(cfg config.Config, wd string) *Repo {
	return &Repo{
		cfg: cfg,
		wd:  wd,
	}
}

func (r *Repo) open() (*git.Repository, error) {
	if r.repo != nil {
		return r.repo, nil
	}
	wd := r.wd
	if wd == "" {
		wd = "."
	}
	repo, err := git.PlainOpenWithOptions(wd, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.Wrapf(err, "gogit: open %s", wd)
	}
	r.repo = repo
	return repo, nil
}

func (r *Repo) resolve(repo *git.Repository, rev string) (plumbing.Hash, error) {
	h, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		r.cfg.Debugf("gogit: resolve %q: %v", rev, err)
		return plumbing.ZeroHash, vcs.NotFoundError{Ref: rev}
	}
	return *h, nil
}

// ReadCommits walks history from query in committer time order. For a
// "from..to" query, commits reachable from from are left out, like git log.
func (r *Repo) ReadCommits(ctx context.Context, query string) ([]*model.Commit, error) {
	repo, err := r.open()
	if err != nil {
		return nil, err
	}

	from, to := "", query
	if before, after, ok := strings.Cut(query, ".."); ok {
		from, to = before, after
	}
	if to == "" {
		to = "HEAD"
	}

	head, err := r.resolve(repo, to)
	if err != nil {
		return nil, err
	}
	exclude := make(map[plumbing.Hash]bool)
	if from != "" {
		base, err := r.resolve(repo, from)
		if err != nil {
			return nil, err
		}
		err = r.walk(ctx, repo, base, func(c *object.Commit) error {
			exclude[c.Hash] = true
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	var commits []*model.Commit
	err = r.walk(ctx, repo, head, func(c *object.Commit) error {
		if exclude[c.Hash] {
			return nil
		}

		subject, body := model.SplitMessage(c.Message)
		commits = append(commits, &model.Commit{
			ID:             c.Hash.String(),
			Author:         c.Author.Name,
			AuthorEmail:    c.Author.Email,
			AuthorDate:     c.Author.When,
			Committer:      c.Committer.Name,
			CommitterEmail: c.Committer.Email,
			CommitterDate:  c.Committer.When,
			Subject:        subject,
			Body:           body,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commits, nil
}

func (r *Repo) walk(ctx context.Context, repo *git.Repository, from plumbing.Hash, fn func(c *object.Commit) error) error {
	iter, err := repo.Log(&git.LogOptions{From: from, Order: git.LogOrderCommitterTime})
	if err != nil {
		return errors.Wrap(err, "gogit: log")
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(c)
	})
	if err != nil {
		return errors.Wrap(err, "gogit: read commits")
	}
	return nil
}

func (r *Repo) ReadTags(ctx context.Context, query string) ([]string, error) {
	repo, err := r.open()
	if err != nil {
		return nil, err
	}
	iter, err := repo.Tags()
	if err != nil {
		return nil, errors.Wrap(err, "gogit: tags")
	}
	defer iter.Close()

	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if query != "" {
			if ok, _ := path.Match(query, name); !ok {
				return nil
			}
		}
		tags = append(tags, name)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "gogit: read tags")
	}
	return tags, nil
}

func (r *Repo) CurrentCommit(ctx context.Context) (string, error) {
	repo, err := r.open()
	if err != nil {
		return "", err
	}
	ref, err := repo.Head()
	if err != nil {
		return "", vcs.NotFoundError{Ref: "HEAD"}
	}
	return ref.Hash().String(), nil
}
