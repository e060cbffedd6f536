package config

const (
	DefaultHeaderPattern = `^(\w*)(?:\(([\w$.\-*/ ]*)\))?: (.*)$`
	DefaultFieldPattern  = `^-(.*?)-$`
	DefaultRevertPattern = `^Revert\s"([\s\S]*)"\s*This reverts commit (\w*)\.`
)

// GetDefault returns options for plain conventional commits.
func GetDefault() Options {
	return Options{
		HeaderPattern:        DefaultHeaderPattern,
		HeaderCorrespondence: []string{"type", "scope", "subject"},
		ReferenceActions: []string{
			"close",
			"closes",
			"closed",
			"fix",
			"fixes",
			"fixed",
			"resolve",
			"resolves",
			"resolved",
		},
		IssuePrefixes:        []string{"#"},
		NoteKeywords:         []string{"BREAKING CHANGE"},
		FieldPattern:         DefaultFieldPattern,
		RevertPattern:        DefaultRevertPattern,
		RevertCorrespondence: []string{"header", "hash"},
	}
}

// GetDefaultReleasePolicy maps conventional commit types to release types.
func GetDefaultReleasePolicy() ReleasePolicy {
	return ReleasePolicy{
		TypeField:           "type",
		ScopeField:          "scope",
		BreakingChangeTypes: []string{"BREAKING CHANGE", "BREAKING-CHANGE"},
		CommitTypes: map[string]string{
			"feat":        "MINOR",
			"fix":         "PATCH",
			"revert":      "PATCH",
			"cont":        "PATCH",
			"perf":        "PATCH",
			"improvement": "PATCH",
			"refactor":    "PATCH",
			"style":       "PATCH",
			"test":        "SKIP",
			"chore":       "SKIP",
			"docs":        "SKIP",
		},
		FallbackReleaseType: "PATCH",
	}
}
