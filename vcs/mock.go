package vcs

import (
	"context"
	"path"
	"time"

	"github.com/jeffrom/ccparse/model"
)

// Mock is an in-memory Interface for tests.
type Mock struct {
	t       time.Time
	tags    []string
	commits []*model.Commit
	queries []string
	missing []string
}

func NewMock() *Mock {
	return &Mock{
		t: time.Now(),
	}
}

func (m *Mock) SetTags(tags ...string) *Mock {
	m.tags = tags
	return m
}

// SetCommits sets the history, newest first. Commits without a committer
// date are given one a minute before the previous commit.
func (m *Mock) SetCommits(commits ...*model.Commit) *Mock {
	finalCommits := make([]*model.Commit, len(commits))
	for i, commit := range commits {
		c := *commit
		if c.CommitterDate.IsZero() {
			c.CommitterDate = m.t
			m.t = m.t.Add(-time.Minute)
		}
		finalCommits[i] = &c
	}
	m.commits = finalCommits
	return m
}

// SetMessages sets the history from raw commit messages, newest first.
func (m *Mock) SetMessages(msgs ...string) *Mock {
	commits := make([]*model.Commit, len(msgs))
	for i, msg := range msgs {
		subject, body := model.SplitMessage(msg)
		commits[i] = &model.Commit{
			ID:      fakeID(len(msgs) - i),
			Subject: subject,
			Body:    body,
		}
	}
	return m.SetCommits(commits...)
}

// SetMissing makes ReadCommits fail with a NotFoundError for refs.
func (m *Mock) SetMissing(refs ...string) *Mock {
	m.missing = refs
	return m
}

// Queries returns the queries ReadCommits was called with.
func (m *Mock) Queries() []string { return m.queries }

func (m *Mock) ReadCommits(ctx context.Context, query string) ([]*model.Commit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.queries = append(m.queries, query)
	for _, ref := range m.missing {
		if ref == query {
			return nil, NotFoundError{Ref: query}
		}
	}
	return m.commits, nil
}

func (m *Mock) ReadTags(ctx context.Context, query string) ([]string, error) {
	var tags []string
	for _, t := range m.tags {
		if query == "" {
			tags = append(tags, t)
			continue
		}
		if ok, _ := path.Match(query, t); ok {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

func (m *Mock) CurrentCommit(ctx context.Context) (string, error) {
	if len(m.commits) == 0 {
		return "", NotFoundError{Ref: "HEAD"}
	}
	return m.commits[0].ID, nil
}

func fakeID(n int) string {
	const hex = "0123456789abcdef"
	b := make([]byte, 40)
	for i := range b {
		b[i] = hex[(n+i)%len(hex)]
	}
	return string(b)
}
