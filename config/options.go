package config

import (
	"regexp"

	"github.com/cockroachdb/errors"
	"github.com/imdario/mergo"
)

// Options configures how commit messages are parsed. Patterns are Go regexp
// strings. A nil list means "use the default" when merged with NewOptions or
// MergeOptions, while a non-nil empty list explicitly disables that
// dimension.
type Options struct {
	// MergePattern matches merge headers such as GitHub or GitLab pull
	// request merges. When it matches, the next non-blank line is parsed as
	// the header.
	MergePattern        string   `json:"merge_pattern,omitempty"`
	MergeCorrespondence []string `json:"merge_correspondence,omitempty"`

	HeaderPattern        string   `json:"header_pattern,omitempty"`
	HeaderCorrespondence []string `json:"header_correspondence,omitempty"`

	// ReferenceActions are the case-insensitive keywords that introduce
	// issue references, like "closes". When empty, references are found
	// without an action.
	ReferenceActions           []string `json:"reference_actions,omitempty"`
	IssuePrefixes              []string `json:"issue_prefixes,omitempty"`
	IssuePrefixesCaseSensitive bool     `json:"issue_prefixes_case_sensitive,omitempty"`

	NoteKeywords []string `json:"note_keywords,omitempty"`

	// FieldPattern starts a user-defined field. Its first capture group names
	// the field, which collects every following line until the next match.
	FieldPattern string `json:"field_pattern,omitempty"`

	RevertPattern        string   `json:"revert_pattern,omitempty"`
	RevertCorrespondence []string `json:"revert_correspondence,omitempty"`

	// CommentChar drops lines starting with it. Empty keeps every line.
	CommentChar string `json:"comment_char,omitempty"`
}

// Resolved is a fully resolved configuration. It is what the commit parser
// consumes, and it is read-only once built.
type Resolved struct {
	MergePattern               *regexp.Regexp
	MergeCorrespondence        []string
	HeaderPattern              *regexp.Regexp
	HeaderCorrespondence       []string
	ReferenceActions           []string
	IssuePrefixes              []string
	IssuePrefixesCaseSensitive bool
	NoteKeywords               []string
	FieldPattern               *regexp.Regexp
	RevertPattern              *regexp.Regexp
	RevertCorrespondence       []string
	CommentChar                string
}

// NewOptions returns the default options with overrides applied.
func NewOptions(overrides *Options) Options {
	return MergeOptions(GetDefault(), overrides)
}

// MergeOptions applies each of overrides onto base in order. Non-empty
// values replace the base, and lists that are non-nil but empty clear it.
func MergeOptions(base Options, overrides ...*Options) Options {
	opts := base
	for _, o := range overrides {
		if o == nil {
			continue
		}
		if err := mergo.Merge(&opts, o, mergo.WithOverride); err != nil {
			panic(err)
		}

		restoreEmpty(&opts.MergeCorrespondence, o.MergeCorrespondence)
		restoreEmpty(&opts.HeaderCorrespondence, o.HeaderCorrespondence)
		restoreEmpty(&opts.ReferenceActions, o.ReferenceActions)
		restoreEmpty(&opts.IssuePrefixes, o.IssuePrefixes)
		restoreEmpty(&opts.NoteKeywords, o.NoteKeywords)
		restoreEmpty(&opts.RevertCorrespondence, o.RevertCorrespondence)
	}
	return opts
}

// mergo skips empty slices, so explicit empty lists need to be carried over
// by hand.
func restoreEmpty(dst *[]string, src []string) {
	if src != nil && len(src) == 0 {
		*dst = []string{}
	}
}

// Resolve compiles the patterns in o. No defaults are applied: an empty
// pattern stays unset.
func (o Options) Resolve() (*Resolved, error) {
	r := &Resolved{
		MergeCorrespondence:        o.MergeCorrespondence,
		HeaderCorrespondence:       o.HeaderCorrespondence,
		ReferenceActions:           o.ReferenceActions,
		IssuePrefixes:              o.IssuePrefixes,
		IssuePrefixesCaseSensitive: o.IssuePrefixesCaseSensitive,
		NoteKeywords:               o.NoteKeywords,
		RevertCorrespondence:       o.RevertCorrespondence,
		CommentChar:                o.CommentChar,
	}

	patterns := []struct {
		name string
		src  string
		dst  **regexp.Regexp
	}{
		{"merge_pattern", o.MergePattern, &r.MergePattern},
		{"header_pattern", o.HeaderPattern, &r.HeaderPattern},
		{"field_pattern", o.FieldPattern, &r.FieldPattern},
		{"revert_pattern", o.RevertPattern, &r.RevertPattern},
	}
	for _, p := range patterns {
		if p.src == "" {
			continue
		}
		re, err := regexp.Compile(p.src)
		if err != nil {
			return nil, errors.Wrapf(err, "config: invalid %s", p.name)
		}
		*p.dst = re
	}
	return r, nil
}
