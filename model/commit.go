// Package model contains the commit history records read from a vcs.
package model

import (
	"strings"
	"time"
)

// Commit is a commit read from history. Its message is split the way git
// splits it: the first line is the subject and the rest is the body.
type Commit struct {
	ID             string    `json:"commit"`
	Author         string    `json:"author,omitempty"`
	AuthorEmail    string    `json:"author_email,omitempty"`
	AuthorDate     time.Time `json:"author_date"`
	Committer      string    `json:"committer,omitempty"`
	CommitterEmail string    `json:"committer_email,omitempty"`
	CommitterDate  time.Time `json:"committer_date"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body,omitempty"`
}

func (c *Commit) ShortID() string {
	if len(c.ID) < 8 {
		return c.ID
	}
	return c.ID[:8]
}

// Message reassembles the full commit message.
func (c *Commit) Message() string {
	body := strings.Trim(c.Body, "\n")
	if body == "" {
		return c.Subject
	}
	return c.Subject + "\n\n" + body
}

// SplitMessage splits a raw commit message into its subject and body.
func SplitMessage(msg string) (string, string) {
	msg = strings.TrimLeft(msg, "\n")
	subject, body, _ := strings.Cut(msg, "\n")
	return strings.TrimSuffix(subject, "\r"), strings.Trim(body, "\r\n")
}
