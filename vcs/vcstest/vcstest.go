// Package vcstest builds throwaway git repositories for tests.
package vcstest

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repo is a repository created in a temporary directory.
type Repo struct {
	Dir    string
	Hashes []string

	t    testing.TB
	repo *git.Repository
	when time.Time
}

// NewRepo creates a repository with one commit per message, oldest first.
func NewRepo(t testing.TB, msgs ...string) *Repo {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	r := &Repo{
		Dir:  dir,
		t:    t,
		repo: repo,
		when: time.Date(2020, 8, 17, 16, 26, 10, 0, time.FixedZone("", -7*60*60)),
	}
	for _, msg := range msgs {
		r.Commit(msg)
	}
	return r
}

// Commit commits a change to a file with msg and returns the commit hash.
func (r *Repo) Commit(msg string) string {
	r.t.Helper()
	return r.commit(msg, nil)
}

// CommitParents commits msg with the given parent hashes, so branches and
// merges can be built without checking anything out. HEAD moves to the new
// commit.
func (r *Repo) CommitParents(msg string, parents ...string) string {
	r.t.Helper()
	hashes := make([]plumbing.Hash, len(parents))
	for i, p := range parents {
		hashes[i] = plumbing.NewHash(p)
	}
	return r.commit(msg, hashes)
}

func (r *Repo) commit(msg string, parents []plumbing.Hash) string {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatal(err)
	}

	name := "file.txt"
	content := []byte(strconv.Itoa(len(r.Hashes)) + "\n")
	if err := os.WriteFile(filepath.Join(r.Dir, name), content, 0644); err != nil {
		r.t.Fatal(err)
	}
	if _, err := wt.Add(name); err != nil {
		r.t.Fatal(err)
	}

	r.when = r.when.Add(time.Minute)
	sig := &object.Signature{Name: "Test User", Email: "test@example.com", When: r.when}
	h, err := wt.Commit(msg, &git.CommitOptions{Author: sig, Committer: sig, Parents: parents})
	if err != nil {
		r.t.Fatal(err)
	}
	r.Hashes = append(r.Hashes, h.String())
	return h.String()
}

// Tag creates a lightweight tag on the latest commit.
func (r *Repo) Tag(name string) {
	r.t.Helper()
	if len(r.Hashes) == 0 {
		r.t.Fatal("vcstest: nothing to tag")
	}
	if _, err := r.repo.CreateTag(name, plumbing.NewHash(r.Hashes[len(r.Hashes)-1]), nil); err != nil {
		r.t.Fatal(err)
	}
}
