package runner

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/jeffrom/ccparse/release"
)

type CheckFailure struct {
	Failures []FailureEntry
}

type FailureEntry struct {
	commitID    string
	commitTitle string
	err         error
}

func (fe FailureEntry) Err() error { return fe.err }

func (cf CheckFailure) Error() string {
	return fmt.Sprintf("%d check(s) failed", len(cf.Failures))
}

func (cf CheckFailure) Is(other error) bool {
	_, ok := other.(CheckFailure)
	return ok
}

// WriteFailure writes the failures grouped by commit.
func (cf CheckFailure) WriteFailure(w io.Writer) error {
	if len(cf.Failures) == 0 {
		return nil
	}
	bw := bufio.NewWriter(w)

	var byCommit [][]FailureEntry
	for _, failure := range cf.Failures {
		found := false
		for i, prev := range byCommit {
			if sameCommit(prev[0], failure) {
				byCommit[i] = append(byCommit[i], failure)
				found = true
				break
			}
		}
		if !found {
			byCommit = append(byCommit, []FailureEntry{failure})
		}
	}

	for _, failures := range byCommit {
		title := failures[0].commitTitle
		if id := failures[0].commitID; id != "" {
			if len(id) > 8 {
				id = id[:8]
			}
			title = id + " " + title
		}
		bw.WriteString(title)
		bw.WriteString("\n")
		for _, failure := range failures {
			bw.WriteString("  ")
			bw.WriteString(failure.err.Error())
			bw.WriteString("\n")
		}
	}

	return bw.Flush()
}

func sameCommit(a, b FailureEntry) bool {
	if a.commitID != "" || b.commitID != "" {
		return a.commitID == b.commitID
	}
	return a.commitTitle == b.commitTitle
}

// Check lints entries: each needs a header matching the header pattern, and
// when allowed types or scopes are configured, its type and scope must be
// among them. All failures are returned together as a CheckFailure.
func (r *Runner) Check(entries []*Entry) ([]*release.Analyzed, error) {
	var failures []FailureEntry
	var acs []*release.Analyzed
	for _, e := range entries {
		ac := r.analyzer.Classify(e.Commit)
		ac.ID = e.ID
		acs = append(acs, ac)

		for _, err := range r.checkEntry(e, ac) {
			failures = append(failures, FailureEntry{commitID: e.ID, commitTitle: e.Title(), err: err})
		}
	}
	if len(failures) > 0 {
		return nil, CheckFailure{Failures: failures}
	}
	return acs, nil
}

func (r *Runner) checkEntry(e *Entry, ac *release.Analyzed) []error {
	var errs []error
	c := e.Commit
	if c.Header == nil {
		return append(errs, errors.New("commit has no header"))
	}
	if r.opts.HeaderPattern != nil && !r.opts.HeaderPattern.MatchString(*c.Header) {
		errs = append(errs, errors.Newf("header %q does not match %s", *c.Header, r.opts.HeaderPattern))
	}
	if ac.Scope != "" && len(r.cfg.AllowedScopes) > 0 && !inStrs(ac.Scope, r.cfg.AllowedScopes) {
		errs = append(errs, errors.Newf("scope %q is disallowed", ac.Scope))
	}
	if ac.CommitType != "" && len(r.cfg.AllowedTypes) > 0 && !inStrs(ac.CommitType, r.cfg.AllowedTypes) {
		errs = append(errs, errors.Newf("commit type %q is disallowed", ac.CommitType))
	}
	return errs
}

func inStrs(s string, cands []string) bool {
	for _, cand := range cands {
		if s == cand {
			return true
		}
	}
	return false
}
