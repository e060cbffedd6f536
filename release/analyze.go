package release

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/jeffrom/ccparse/commit"
	"github.com/jeffrom/ccparse/config"
)

// breakingHeaderRE matches the "type(scope)!:" shorthand for a breaking
// change.
var breakingHeaderRE = regexp.MustCompile(`^\w+(?:\([^)]*\))?!: `)

// Analyzer classifies parsed commits using a release policy.
type Analyzer struct {
	policy      config.ReleasePolicy
	commitTypes map[string]Type
	breaking    map[string]bool
	fallback    Type
}

func NewAnalyzer(policy config.ReleasePolicy) (*Analyzer, error) {
	a := &Analyzer{
		policy:      policy,
		commitTypes: make(map[string]Type, len(policy.CommitTypes)),
		breaking:    make(map[string]bool, len(policy.BreakingChangeTypes)),
		fallback:    Skip,
	}

	for name, rt := range policy.CommitTypes {
		t, err := TypeFromString(rt)
		if err != nil {
			return nil, errors.Wrapf(err, "release: commit type %q", name)
		}
		a.commitTypes[strings.ToLower(name)] = t
	}
	for _, title := range policy.BreakingChangeTypes {
		a.breaking[strings.ToUpper(strings.TrimSpace(title))] = true
	}
	if policy.FallbackReleaseType != "" {
		t, err := TypeFromString(policy.FallbackReleaseType)
		if err != nil {
			return nil, errors.Wrap(err, "release: fallback type")
		}
		a.fallback = t
	}
	return a, nil
}

// Analyzed is a parsed commit with its release classification.
type Analyzed struct {
	ID         string         `json:"id,omitempty"`
	Commit     *commit.Commit `json:"commit"`
	CommitType string         `json:"commit_type,omitempty"`
	Scope      string         `json:"scope,omitempty"`
	Breaking   bool           `json:"breaking,omitempty"`
	Type       Type           `json:"release_type"`
}

func (ac *Analyzed) ShortID() string {
	if len(ac.ID) < 8 {
		return ac.ID
	}
	return ac.ID[:8]
}

// Classify decides the release type c calls for. Breaking change notes, or
// a "type!:" header, make a major release. Otherwise the commit type is
// looked up in the policy, and unknown or missing types get the fallback.
func (a *Analyzer) Classify(c *commit.Commit) *Analyzed {
	ac := &Analyzed{
		Commit:     c,
		CommitType: c.Fields.Value(a.policy.TypeField),
		Scope:      c.Fields.Value(a.policy.ScopeField),
	}

	for _, note := range c.Notes {
		if a.breaking[strings.ToUpper(note.Title)] {
			ac.Breaking = true
			break
		}
	}
	if c.Header != nil && breakingHeaderRE.MatchString(*c.Header) {
		ac.Breaking = true
	}
	if ac.Breaking {
		ac.Type = Major
		return ac
	}

	if t, ok := a.commitTypes[strings.ToLower(ac.CommitType)]; ok && ac.CommitType != "" {
		ac.Type = t
		return ac
	}
	ac.Type = a.fallback
	return ac
}

// Analyze classifies each commit and returns the combined result.
func (a *Analyzer) Analyze(commits []*commit.Commit) *Result {
	res := &Result{Type: Skip}
	for _, c := range commits {
		res.Add(a.Classify(c))
	}
	return res
}
