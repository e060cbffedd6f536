package config

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ReleasePolicy decides which release a parsed commit calls for.
type ReleasePolicy struct {
	// TypeField names the commit field holding the commit type, usually a
	// header correspondence name.
	TypeField string `json:"type_field,omitempty"`
	// ScopeField names the commit field holding the commit scope.
	ScopeField string `json:"scope_field,omitempty"`
	// BreakingChangeTypes are note titles that force a major release.
	BreakingChangeTypes []string          `json:"breaking_change_types,omitempty"`
	CommitTypes         map[string]string `json:"commit_types,omitempty"`
	// FallbackReleaseType is used for commits whose type is missing or not
	// listed in CommitTypes. Empty means such commits are skipped.
	FallbackReleaseType string `json:"fallback_type,omitempty"`
}

func (p ReleasePolicy) TextSummary(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if p.TypeField != "" {
		bw.WriteString(fmt.Sprintf("Type field: %s\n", p.TypeField))
	}
	if p.ScopeField != "" {
		bw.WriteString(fmt.Sprintf("Scope field: %s\n", p.ScopeField))
	}
	if len(p.BreakingChangeTypes) > 0 {
		bw.WriteString(fmt.Sprintf("Breaking change note(s): %s\n", strings.Join(p.BreakingChangeTypes, ", ")))
	}

	if len(p.CommitTypes) > 0 {
		keys := make([]string, 0, len(p.CommitTypes))
		for k := range p.CommitTypes {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		bw.WriteString("Commit types:\n")
		for _, k := range keys {
			bw.WriteString(fmt.Sprintf("  %16s: %-16s\n", k, p.CommitTypes[k]))
		}
	}

	if p.FallbackReleaseType != "" {
		bw.WriteString(fmt.Sprintf("Fallback release type: %s\n", p.FallbackReleaseType))
	}

	return bw.Flush()
}
