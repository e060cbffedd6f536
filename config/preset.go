package config

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

type preset struct {
	name      string
	overrides Options
}

var builtinPresets = []preset{
	{name: "conventional"},
	{
		name: "conventionalcommits",
		overrides: Options{
			HeaderPattern: `^(\w*)(?:\((.*)\))?!?: (.*)$`,
			NoteKeywords:  []string{"BREAKING CHANGE", "BREAKING-CHANGE"},
		},
	},
	{
		name: "angular",
		overrides: Options{
			HeaderPattern: `^(\w*)(?:\((.*)\))?: (.*)$`,
			RevertPattern: `^(?:Revert|revert:)\s"?([\s\S]+?)"?\s*This reverts commit (\w*)\.`,
		},
	},
	{
		name: "github",
		overrides: Options{
			MergePattern:        `^Merge pull request #(\d+) from (.*)$`,
			MergeCorrespondence: []string{"id", "source"},
		},
	},
	{
		name: "gitlab",
		overrides: Options{
			MergePattern:        `^Merge branch '([^']+)' into '[^']+'$`,
			MergeCorrespondence: []string{"source"},
		},
	},
}

// PresetNames lists the builtin presets.
func PresetNames() []string {
	names := make([]string, len(builtinPresets))
	for i, p := range builtinPresets {
		names[i] = p.name
	}
	return names
}

// GetPreset returns the default options with the named preset applied. An
// empty name returns the defaults.
func GetPreset(name string) (Options, error) {
	if name == "" {
		return GetDefault(), nil
	}
	for _, p := range builtinPresets {
		if p.name == name {
			o := p.overrides
			return NewOptions(&o), nil
		}
	}
	return Options{}, errors.Newf("config: unknown preset %q (want one of: %s)", name, strings.Join(PresetNames(), ", "))
}

func (o Options) TextSummary(w io.Writer) error {
	bw := bufio.NewWriter(w)

	pattern := func(label, re string, names []string) {
		if re == "" {
			return
		}
		bw.WriteString(fmt.Sprintf("%s: %s\n", label, re))
		if len(names) > 0 {
			bw.WriteString(fmt.Sprintf("  fields: %s\n", strings.Join(names, ", ")))
		}
	}
	list := func(label string, l []string) {
		if len(l) == 0 {
			return
		}
		bw.WriteString(fmt.Sprintf("%s: %s\n", label, strings.Join(l, ", ")))
	}

	pattern("Merge pattern", o.MergePattern, o.MergeCorrespondence)
	pattern("Header pattern", o.HeaderPattern, o.HeaderCorrespondence)
	list("Reference actions", o.ReferenceActions)
	list("Issue prefixes", o.IssuePrefixes)
	if o.IssuePrefixesCaseSensitive {
		bw.WriteString("Issue prefixes are case sensitive\n")
	}
	list("Note keywords", o.NoteKeywords)
	pattern("Field pattern", o.FieldPattern, nil)
	pattern("Revert pattern", o.RevertPattern, o.RevertCorrespondence)
	if o.CommentChar != "" {
		bw.WriteString(fmt.Sprintf("Comment char: %q\n", o.CommentChar))
	}

	return bw.Flush()
}
