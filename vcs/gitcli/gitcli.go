// Package gitcli implements vcs.Interface using the git commandline tool.
package gitcli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/jeffrom/ccparse/config"
	"github.com/jeffrom/ccparse/model"
	"github.com/jeffrom/ccparse/vcs"
)

// Git implements vcs.Interface using the git commandline tool.
type Git struct {
	cfg config.Config
	wd  string
}

func New(cfg config.Config, wd string) *Git {
	return &Git{
		cfg: cfg,
		wd:  wd,
	}
}

const expectedLogParts = 9

const logFormat = "--pretty=tformat:_START_%H_SEP_%aN_SEP_%ae_SEP_%ai_SEP_%cN_SEP_%ce_SEP_%ci_SEP_%s_SEP_%b_END_"

// gitISO8601 is the date format of git log's %ai and %ci:
// 2020-08-17 16:26:10 -0700
const gitISO8601 = "2006-01-02 15:04:05 -0700"

func (g *Git) ReadCommits(ctx context.Context, query string) ([]*model.Commit, error) {
	if query == "" {
		query = "HEAD"
	}
	args := []string{"log", logFormat, query, "--"}
	b, err := g.call(ctx, args)
	if err != nil {
		if isUnknownRevision(err) {
			return nil, vcs.NotFoundError{Ref: query}
		}
		return nil, err
	}
	return parseLog(b)
}

func parseLog(b []byte) ([]*model.Commit, error) {
	var commits []*model.Commit
	scanner := bufio.NewScanner(bytes.NewBuffer(b))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		s := scanner.Text()
		if s == "" {
			continue
		}
		parts := strings.Split(s, "_SEP_")
		if len(parts) != expectedLogParts {
			return nil, errors.Newf("gitcli: expected %d parts from git log, got %d", expectedLogParts, len(parts))
		}

		commitID := parts[0]
		if !strings.HasPrefix(commitID, "_START_") {
			return nil, errors.Newf("gitcli: unexpected git log line: %q", s)
		}
		commitID = strings.TrimPrefix(commitID, "_START_")

		// body can be multiple lines.
		var body string
		bodypart := parts[len(parts)-1]
		if strings.HasSuffix(bodypart, "_END_") {
			body = strings.TrimSuffix(bodypart, "_END_")
		} else {
			var bodyb strings.Builder
			bodyb.WriteString(bodypart)
			bodyb.WriteString("\n")
			for scanner.Scan() {
				bodyline := scanner.Text()
				if strings.HasSuffix(bodyline, "_END_") {
					bodyb.WriteString(strings.TrimSuffix(bodyline, "_END_"))
					break
				}
				bodyb.WriteString(bodyline)
				bodyb.WriteString("\n")
			}
			body = bodyb.String()
		}

		authorDate, err := time.Parse(gitISO8601, parts[3])
		if err != nil {
			return nil, errors.Wrap(err, "gitcli: author date")
		}
		committerDate, err := time.Parse(gitISO8601, parts[6])
		if err != nil {
			return nil, errors.Wrap(err, "gitcli: committer date")
		}

		commits = append(commits, &model.Commit{
			ID:             commitID,
			Author:         parts[1],
			AuthorEmail:    parts[2],
			AuthorDate:     authorDate,
			Committer:      parts[4],
			CommitterEmail: parts[5],
			CommitterDate:  committerDate,
			Subject:        parts[7],
			Body:           strings.TrimRight(body, "\n"),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "gitcli: read log")
	}
	return commits, nil
}

func (g *Git) ReadTags(ctx context.Context, query string) ([]string, error) {
	args := []string{
		"tag",
	}
	if query != "" {
		args = append(args, "-l", query)
	}
	b, err := g.call(ctx, args)
	if err != nil {
		return nil, err
	}
	var tags []string
	scanner := bufio.NewScanner(bytes.NewBuffer(b))
	for scanner.Scan() {
		if s := strings.TrimSpace(scanner.Text()); s != "" {
			tags = append(tags, s)
		}
	}
	return tags, nil
}

func (g *Git) CurrentCommit(ctx context.Context) (string, error) {
	b, err := g.call(ctx, []string{"rev-parse", "--verify", "HEAD"})
	if err != nil {
		return "", vcs.NotFoundError{Ref: "HEAD"}
	}
	return strings.TrimSpace(string(b)), nil
}
