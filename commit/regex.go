package commit

import (
	"regexp"
	"strings"

	"github.com/jeffrom/ccparse/config"
)

// MatcherKind tells how a Matcher behaves.
type MatcherKind int

const (
	// KindPattern matchers match a compiled pattern.
	KindPattern MatcherKind = iota
	// KindNever matchers never match. They stand in for a dimension that has
	// no keywords or prefixes configured.
	KindNever
	// KindCatchAll matchers treat a whole span as one sentence with no
	// action. They stand in for the reference sentence matcher when no
	// actions are configured.
	KindCatchAll
)

func (k MatcherKind) String() string {
	switch k {
	case KindPattern:
		return "pattern"
	case KindNever:
		return "never"
	case KindCatchAll:
		return "catch-all"
	default:
		return "<UNKNOWN>"
	}
}

// Matcher is one of the compiled matchers used while parsing.
type Matcher struct {
	Kind MatcherKind
	re   *regexp.Regexp
	// stop finds the end of a reference sentence: the next action keyword.
	stop *regexp.Regexp
	err  error
}

// Matchers are the matchers built from a configuration.
type Matchers struct {
	Notes          Matcher
	ReferenceParts Matcher
	References     Matcher
	Mentions       Matcher
}

var mentionsRE = regexp.MustCompile(`@([\w-]+)`)

// Compile builds the matchers for opts. It never fails: keyword or prefix
// lists that are empty, or that don't compile, produce a matcher that
// matches nothing (or the catch-all sentence matcher for reference
// actions). Err reports the compile error behind such a fallback.
func Compile(opts *config.Resolved) *Matchers {
	return &Matchers{
		Notes:          notesMatcher(opts.NoteKeywords),
		ReferenceParts: referencePartsMatcher(opts.IssuePrefixes, opts.IssuePrefixesCaseSensitive),
		References:     referencesMatcher(opts.ReferenceActions),
		Mentions:       Matcher{Kind: KindPattern, re: mentionsRE},
	}
}

func notesMatcher(keywords []string) Matcher {
	joined := join(keywords, "|")
	if joined == "" {
		return Matcher{Kind: KindNever}
	}
	return patternMatcher(`(?i)^[\s|*]*(` + joined + `)[:\s]+(.*)`)
}

func referencePartsMatcher(prefixes []string, caseSensitive bool) Matcher {
	joined := join(prefixes, "|")
	if joined == "" {
		return Matcher{Kind: KindNever}
	}
	flags := "(?i)"
	if caseSensitive {
		flags = ""
	}
	return patternMatcher(flags + `(?:.*?)??\s*([\w\-./]*?)??(` + joined + `)([\w-]*\d+)`)
}

func referencesMatcher(actions []string) Matcher {
	joined := join(actions, "|")
	if joined == "" {
		return Matcher{Kind: KindCatchAll}
	}
	m := patternMatcher(`(?i)(` + joined + `)\s+`)
	if m.Kind != KindPattern {
		return m
	}
	stop, err := regexp.Compile(`(?i)(?:` + joined + `)`)
	if err != nil {
		return Matcher{Kind: KindNever, err: err}
	}
	m.stop = stop
	return m
}

func patternMatcher(pattern string) Matcher {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Matcher{Kind: KindNever, err: err}
	}
	return Matcher{Kind: KindPattern, re: re}
}

// join trims each entry, drops empty ones and joins the rest with sep.
func join(l []string, sep string) string {
	var parts []string
	for _, s := range l {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep)
}

// Err returns the error that made a configured matcher fall back to
// matching nothing, if any.
func (m Matcher) Err() error { return m.err }

func (m Matcher) String() string {
	if m.Kind != KindPattern {
		return "<" + m.Kind.String() + ">"
	}
	return m.re.String()
}

// MatchString reports whether s contains a match. For the reference
// sentence matcher this means s holds at least one sentence.
func (m Matcher) MatchString(s string) bool {
	switch {
	case m.Kind == KindCatchAll || m.stop != nil:
		return len(m.sentences(s)) > 0
	case m.Kind == KindPattern:
		return m.re.MatchString(s)
	}
	return false
}

// FindStringSubmatch returns the leftmost match in s and its submatches, or
// nil.
func (m Matcher) FindStringSubmatch(s string) []string {
	if m.Kind != KindPattern {
		return nil
	}
	return m.re.FindStringSubmatch(s)
}

// FindAllStringSubmatch returns every successive, non-overlapping match in s.
func (m Matcher) FindAllStringSubmatch(s string) [][]string {
	if m.Kind != KindPattern {
		return nil
	}
	return m.re.FindAllStringSubmatch(s, -1)
}
