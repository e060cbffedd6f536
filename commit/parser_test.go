package commit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffrom/ccparse/config"
)

func testOptions() *config.Options {
	return &config.Options{
		RevertPattern:        `^Revert\s"([\s\S]*)"\s*This reverts commit (.*)\.$`,
		RevertCorrespondence: []string{"header", "hash"},
		FieldPattern:         `^-(.*?)-$`,
		HeaderPattern:        `^(\w*)(?:\(([\w$.\-* ]*)\))?: (.*)$`,
		HeaderCorrespondence: []string{"type", "scope", "subject"},
		NoteKeywords:         []string{"BREAKING AMEND"},
		IssuePrefixes:        []string{"#", "gh-"},
		ReferenceActions:     []string{"kill", "kills", "killed", "handle", "handles", "handled"},
	}
}

func mustParse(t testing.TB, raw string, overrides *config.Options) *Commit {
	t.Helper()
	opts, err := config.NewOptions(overrides).Resolve()
	require.NoError(t, err)
	c, err := NewParser(opts).Parse(raw)
	require.NoError(t, err)
	return c
}

func strp(s string) *string { return &s }

func ref(action, owner, repository *string, issue, raw, prefix string) *Reference {
	return &Reference{Action: action, Owner: owner, Repository: repository, Issue: issue, Raw: raw, Prefix: prefix}
}

func assertField(t testing.TB, c *Commit, name string, expected *string) {
	t.Helper()
	v, ok := c.Field(name)
	if !assert.True(t, ok, "expected field %q to be present", name) {
		return
	}
	assert.Equal(t, expected, v, "field %q", name)
}

const longMessage = "feat(scope): broadcast $destroy event on scope destruction\n" +
	"perf testing shows that in chrome this change adds 5-15% overhead\n" +
	"when destroying 10k nested scopes where each scope has a $destroy listener\n" +
	"BREAKING AMEND: some breaking change\n" +
	"Kills #1, #123\n" +
	"killed #25\n" +
	"handle #33, Closes #100, Handled #3 kills repo#77\n" +
	"kills stevemao/conventional-commits-parser#1"

func TestParseInvalidInput(t *testing.T) {
	opts, err := config.NewOptions(nil).Resolve()
	require.NoError(t, err)

	for _, raw := range []string{"", " \n ", "\t\r\n"} {
		_, err := Parse(raw, opts)
		assert.ErrorIs(t, err, ErrInvalidInput, "raw: %q", raw)
	}
}

func TestParseTrimExtraLines(t *testing.T) {
	c := mustParse(t,
		"\n\n\n\n\n\n\nfeat(scope): broadcast $destroy event on scope destruction\n\n\n"+
			"\n\n\nperf testing shows that in chrome this change adds 5-15% overhead\n"+
			"\n\n\nwhen destroying 10k nested scopes where each scope has a $destroy listener\n\n"+
			"\n\n\n\nBREAKING AMEND: some breaking change\n"+
			"\n\n\n\nBREAKING AMEND: An awesome breaking change\n\n\n```\ncode here\n```"+
			"\n\nKills #1\n"+
			"\n\n\nkilled #25\n\n\n\n\n",
		testOptions())

	assert.Nil(t, c.Merge)
	assert.Equal(t, strp("feat(scope): broadcast $destroy event on scope destruction"), c.Header)
	assert.Equal(t, strp("perf testing shows that in chrome this change adds 5-15% overhead\n\n\n\n"+
		"when destroying 10k nested scopes where each scope has a $destroy listener"), c.Body)
	assert.Equal(t, strp("BREAKING AMEND: some breaking change\n\n\n\n\n"+
		"BREAKING AMEND: An awesome breaking change\n\n\n```\ncode here\n```\n\nKills #1\n\n\n\nkilled #25"), c.Footer)
	assert.Equal(t, []*Note{
		{Title: "BREAKING AMEND", Text: "some breaking change"},
		{Title: "BREAKING AMEND", Text: "An awesome breaking change\n\n\n```\ncode here\n```"},
	}, c.Notes)
	assert.Equal(t, []*Reference{
		ref(strp("Kills"), nil, nil, "1", "#1", "#"),
		ref(strp("killed"), nil, nil, "25", "#25", "#"),
	}, c.References)
	assert.Equal(t, []string{}, c.Mentions)
	assert.Nil(t, c.Revert)
	assertField(t, c, "type", strp("feat"))
	assertField(t, c, "scope", strp("scope"))
	assertField(t, c, "subject", strp("broadcast $destroy event on scope destruction"))
}

func TestParseKeepSpaces(t *testing.T) {
	c := mustParse(t,
		" feat(scope): broadcast $destroy event on scope destruction \n"+
			" perf testing shows that in chrome this change adds 5-15% overhead \n\n"+
			" when destroying 10k nested scopes where each scope has a $destroy listener \n"+
			"         BREAKING AMEND: some breaking change         \n\n"+
			"   BREAKING AMEND: An awesome breaking change\n\n\n```\ncode here\n```"+
			"\n\n    Kills   #1\n",
		testOptions())

	assert.Equal(t, strp(" feat(scope): broadcast $destroy event on scope destruction "), c.Header)
	assert.Equal(t, strp(" perf testing shows that in chrome this change adds 5-15% overhead \n\n"+
		" when destroying 10k nested scopes where each scope has a $destroy listener "), c.Body)
	assert.Equal(t, strp("         BREAKING AMEND: some breaking change         \n\n"+
		"   BREAKING AMEND: An awesome breaking change\n\n\n```\ncode here\n```\n\n    Kills   #1"), c.Footer)
	assert.Equal(t, []*Note{
		{Title: "BREAKING AMEND", Text: "some breaking change         "},
		{Title: "BREAKING AMEND", Text: "An awesome breaking change\n\n\n```\ncode here\n```"},
	}, c.Notes)
	assert.Equal(t, []*Reference{ref(strp("Kills"), nil, nil, "1", "#1", "#")}, c.References)
	assertField(t, c, "type", nil)
	assertField(t, c, "scope", nil)
	assertField(t, c, "subject", nil)
}

func TestParseComments(t *testing.T) {
	tcs := []struct {
		name        string
		commentChar string
		raw         string
		header      *string
		body        *string
	}{
		{name: "hash comment", commentChar: "#", raw: "# comment"},
		{name: "hash indented", commentChar: "#", raw: " # non-comment", header: strp(" # non-comment")},
		{name: "hash between", commentChar: "#", raw: "header\n# comment\n\nbody", header: strp("header"), body: strp("body")},
		{name: "star comment", commentChar: "*", raw: "* comment"},
		{name: "star keeps hash", commentChar: "*", raw: "# non-comment", header: strp("# non-comment")},
		{name: "star indented", commentChar: "*", raw: " * non-comment", header: strp(" * non-comment")},
		{name: "star between", commentChar: "*", raw: "header\n* comment\n\nbody", header: strp("header"), body: strp("body")},
		{name: "disabled", raw: "# comment", header: strp("# comment")},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			o := testOptions()
			o.CommentChar = tc.commentChar
			c := mustParse(t, tc.raw, o)

			assert.Nil(t, c.Merge)
			assert.Equal(t, tc.header, c.Header)
			assert.Equal(t, tc.body, c.Body)
			assert.Nil(t, c.Footer)
			assert.Empty(t, c.Notes)
			assert.Empty(t, c.References)
			assert.Empty(t, c.Mentions)
			assert.Nil(t, c.Revert)
			assertField(t, c, "type", nil)
			assertField(t, c, "scope", nil)
			assertField(t, c, "subject", nil)
		})
	}
}

func TestParseScissor(t *testing.T) {
	c := mustParse(t,
		"this is some header before a scissors-line\n"+
			Scissor+"\n"+
			"this is a line that should be truncated\n",
		testOptions())
	assert.Nil(t, c.Body)
	assert.Nil(t, c.Footer)
	assert.Equal(t, strp("this is some header before a scissors-line"), c.Header)

	c = mustParse(t,
		"this is some header before a scissors-line\n"+
			"this is some body before a scissors-line\n"+
			Scissor+"\n"+
			"this is a line that should be truncated\n"+
			"Kills #1\n",
		testOptions())
	assert.Equal(t, strp("this is some body before a scissors-line"), c.Body)
	assert.Empty(t, c.References)

	c = mustParse(t, "header\n "+Scissor+"\nbody", testOptions())
	assert.Equal(t, strp(" "+Scissor+"\nbody"), c.Body)
}

func TestParseMentions(t *testing.T) {
	c := mustParse(t,
		"@Steve\n"+
			"@conventional-changelog @someone"+
			"\n"+
			"perf testing shows that in chrome this change adds 5-15% overhead\n"+
			"@this is\n"+
			"Kills #1 @Steve",
		&config.Options{
			HeaderPattern:        `^(\w*)(?:\(([\w$.\-* ]*)\))?: (.*)$`,
			HeaderCorrespondence: []string{"type", "scope", "subject"},
			MergePattern:         `^Merge pull request #(\d+) from (.*)$`,
			MergeCorrespondence:  []string{"issueId", "source"},
		})
	assert.Equal(t, []string{"Steve", "conventional-changelog", "someone", "this", "Steve"}, c.Mentions)
}

func TestParseMerge(t *testing.T) {
	headerOpts := func(pattern string, names ...string) *config.Options {
		return &config.Options{
			HeaderPattern:        `^(\w*)(?:\(([\w$.\-* ]*)\))?: (.*)$`,
			HeaderCorrespondence: []string{"type", "scope", "subject"},
			MergePattern:         pattern,
			MergeCorrespondence:  names,
		}
	}

	t.Run("general", func(t *testing.T) {
		c := mustParse(t, "Merge branch 'feature'\nHEADER", headerOpts(`^Merge branch '(\w+)'$`, "source", "issueId"))
		assert.Equal(t, strp("Merge branch 'feature'"), c.Merge)
		assert.Equal(t, strp("HEADER"), c.Header)
		assertField(t, c, "source", strp("feature"))
		assertField(t, c, "issueId", nil)
	})

	t.Run("github", func(t *testing.T) {
		c := mustParse(t,
			"Merge pull request #1 from user/feature/feature-name\n"+
				"\n"+
				"feat(scope): broadcast $destroy event on scope destruction\n"+
				"\n"+
				"perf testing shows that in chrome this change adds 5-15% overhead\n"+
				"when destroying 10k nested scopes where each scope has a $destroy listener",
			headerOpts(`^Merge pull request #(\d+) from (.*)$`, "issueId", "source"))

		assert.Equal(t, strp("feat(scope): broadcast $destroy event on scope destruction"), c.Header)
		assert.Equal(t, strp("Merge pull request #1 from user/feature/feature-name"), c.Merge)
		assert.Equal(t, strp("perf testing shows that in chrome this change adds 5-15% overhead\n"+
			"when destroying 10k nested scopes where each scope has a $destroy listener"), c.Body)
		assertField(t, c, "type", strp("feat"))
		assertField(t, c, "scope", strp("scope"))
		assertField(t, c, "subject", strp("broadcast $destroy event on scope destruction"))
		assertField(t, c, "issueId", strp("1"))
		assertField(t, c, "source", strp("user/feature/feature-name"))
	})

	t.Run("gitlab", func(t *testing.T) {
		c := mustParse(t,
			"Merge branch 'feature/feature-name' into 'master'\r\n"+
				"\r\n"+
				"feat(scope): broadcast $destroy event on scope destruction\r\n"+
				"\r\n"+
				"perf testing shows that in chrome this change adds 5-15% overhead\r\n"+
				"when destroying 10k nested scopes where each scope has a $destroy listener\r\n"+
				"\r\n"+
				"See merge request !1",
			headerOpts(`^Merge branch '([^']+)' into '[^']+'$`, "source"))

		assert.Equal(t, strp("feat(scope): broadcast $destroy event on scope destruction"), c.Header)
		assert.Equal(t, strp("Merge branch 'feature/feature-name' into 'master'"), c.Merge)
		assertField(t, c, "type", strp("feat"))
		assertField(t, c, "scope", strp("scope"))
		assertField(t, c, "source", strp("feature/feature-name"))
		assert.Equal(t, strp("perf testing shows that in chrome this change adds 5-15% overhead\n"+
			"when destroying 10k nested scopes where each scope has a $destroy listener\n\n"+
			"See merge request !1"), c.Body)
	})

	t.Run("empty group kept", func(t *testing.T) {
		c := mustParse(t, "Merge branch ''\nfeat: x", headerOpts(`^Merge branch '(\w*)'$`, "source"))
		assertField(t, c, "source", strp(""))
	})

	t.Run("no header after merge", func(t *testing.T) {
		c := mustParse(t, "Merge branch 'feature'\n\n   \n", headerOpts(`^Merge branch '(\w+)'$`, "source"))
		assert.Equal(t, strp("Merge branch 'feature'"), c.Merge)
		assert.Nil(t, c.Header)
		assert.Nil(t, c.Body)
		assertField(t, c, "type", nil)
		assertField(t, c, "source", strp("feature"))
	})

	t.Run("no match", func(t *testing.T) {
		c := mustParse(t, "feat: not a merge", headerOpts(`^Merge branch '(\w+)'$`, "source", "issueId"))
		assert.Nil(t, c.Merge)
		assert.Equal(t, strp("feat: not a merge"), c.Header)
		assertField(t, c, "source", nil)
		assertField(t, c, "issueId", nil)
	})
}

func TestParseHeader(t *testing.T) {
	t.Run("colon in scope", func(t *testing.T) {
		c := mustParse(t, "feat(ng:list): Allow custom separator", &config.Options{
			HeaderPattern:        `^(\w*)(?:\(([:\w$.\-* ]*)\))?: (.*)$`,
			HeaderCorrespondence: []string{"type", "scope", "subject"},
		})
		assertField(t, c, "scope", strp("ng:list"))
	})

	t.Run("null if not parsed", func(t *testing.T) {
		c := mustParse(t, "header", testOptions())
		assertField(t, c, "type", nil)
		assertField(t, c, "scope", nil)
		assertField(t, c, "subject", nil)
		assert.Nil(t, c.Body)
		assert.Nil(t, c.Footer)
	})

	t.Run("parse", func(t *testing.T) {
		c := mustParse(t, longMessage, testOptions())
		assertField(t, c, "type", strp("feat"))
		assertField(t, c, "scope", strp("scope"))
		assertField(t, c, "subject", strp("broadcast $destroy event on scope destruction"))
	})

	t.Run("empty group is null", func(t *testing.T) {
		c := mustParse(t, "feat: no scope", testOptions())
		assertField(t, c, "scope", nil)
	})

	t.Run("correspondence", func(t *testing.T) {
		c := mustParse(t, "scope(my subject): fix this", &config.Options{
			HeaderPattern:        `^(\w*)(?:\(([\w$.\-* ]*)\))?: (.*)$`,
			HeaderCorrespondence: []string{"scope", "subject", "type"},
		})
		assertField(t, c, "type", strp("fix this"))
		assertField(t, c, "scope", strp("scope"))
		assertField(t, c, "subject", strp("my subject"))
	})

	t.Run("undefined correspondence", func(t *testing.T) {
		c := mustParse(t, "scope(my subject): fix this", &config.Options{
			HeaderPattern:        `^(\w*)(?:\(([\w$.\-* ]*)\))?: (.*)$`,
			HeaderCorrespondence: []string{"scop", "subject"},
		})
		_, ok := c.Field("scope")
		assert.False(t, ok)
		assertField(t, c, "scop", strp("scope"))
	})

	t.Run("extra names are absent", func(t *testing.T) {
		c := mustParse(t, "feat: subject", &config.Options{
			HeaderPattern:        `^(\w*): (.*)$`,
			HeaderCorrespondence: []string{"type", "subject", "scope", " extra "},
		})
		assertField(t, c, "type", strp("feat"))
		assertField(t, c, "subject", strp("subject"))
		for _, name := range []string{"scope", "extra", " extra "} {
			_, ok := c.Field(name)
			assert.False(t, ok, "expected %q to be absent", name)
			assert.NotContains(t, c.Keys(), name)
		}
		assert.NotContains(t, c.Map(), "scope")
	})

	t.Run("extra names are null without a match", func(t *testing.T) {
		c := mustParse(t, "not conventional", &config.Options{
			HeaderPattern:        `^(\w*): (.*)$`,
			HeaderCorrespondence: []string{"type", "subject", "scope"},
		})
		assertField(t, c, "scope", nil)
	})
}

func TestParseHeaderReferences(t *testing.T) {
	tcs := []struct {
		name     string
		raw      string
		opts     func(o *config.Options)
		expected []*Reference
	}{
		{
			name:     "owner",
			raw:      "handled angular/angular.js#1",
			expected: []*Reference{ref(strp("handled"), strp("angular"), strp("angular.js"), "1", "angular/angular.js#1", "#")},
		},
		{
			name:     "repository",
			raw:      "handled angular.js#1",
			expected: []*Reference{ref(strp("handled"), nil, strp("angular.js"), "1", "angular.js#1", "#")},
		},
		{
			name:     "issue",
			raw:      "handled gh-1",
			expected: []*Reference{ref(strp("handled"), nil, nil, "1", "gh-1", "gh-")},
		},
		{
			name:     "without action",
			raw:      "This is gh-1",
			opts:     func(o *config.Options) { o.ReferenceActions = nil },
			expected: []*Reference{ref(nil, nil, nil, "1", "This is gh-1", "gh-")},
		},
		{
			name:     "no actions configured",
			raw:      "This is gh-1",
			opts:     func(o *config.Options) { o.ReferenceActions = []string{} },
			expected: []*Reference{ref(nil, nil, nil, "1", "This is gh-1", "gh-")},
		},
		{
			name:     "nested repository",
			raw:      "handles owner/group/repo#9",
			expected: []*Reference{ref(strp("handles"), strp("owner"), strp("group/repo"), "9", "owner/group/repo#9", "#")},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			o := testOptions()
			if tc.opts != nil {
				tc.opts(o)
			}
			c := mustParse(t, tc.raw, o)
			assert.Equal(t, tc.expected, c.References)
		})
	}
}

func TestParseBodyFooter(t *testing.T) {
	c := mustParse(t, longMessage, testOptions())

	assert.Equal(t, strp("perf testing shows that in chrome this change adds 5-15% overhead\n"+
		"when destroying 10k nested scopes where each scope has a $destroy listener"), c.Body)
	assert.Equal(t, strp("BREAKING AMEND: some breaking change\n"+
		"Kills #1, #123\n"+
		"killed #25\n"+
		"handle #33, Closes #100, Handled #3 kills repo#77\n"+
		"kills stevemao/conventional-commits-parser#1"), c.Footer)
	assert.Equal(t, []*Note{{Title: "BREAKING AMEND", Text: "some breaking change"}}, c.Notes)
}

func TestParseNotes(t *testing.T) {
	c := mustParse(t, "chore: some chore", nil)
	assert.Equal(t, []*Note{}, c.Notes)

	c = mustParse(t,
		"feat(scope): broadcast $destroy event on scope destruction\n"+
			"perf testing shows that in chrome this change adds 5-15% overhead\n"+
			"when destroying 10k nested scopes where each scope has a $destroy listener\n"+
			"BREAKING AMEND:\n"+
			"some breaking change\n"+
			"some other breaking change\n"+
			"Kills #1, #123\n"+
			"killed #25\n"+
			"handle #33, Closes #100, Handled #3",
		testOptions())
	assert.Equal(t, []*Note{{Title: "BREAKING AMEND", Text: "some breaking change\nsome other breaking change"}}, c.Notes)

	c = mustParse(t, "feat: x\n\n * breaking amend: lower case", testOptions())
	assert.Equal(t, []*Note{{Title: "breaking amend", Text: "lower case"}}, c.Notes)

	c = mustParse(t, "feat: x\n\nBREAKING CHANGE: default keyword", nil)
	assert.Equal(t, []*Note{{Title: "BREAKING CHANGE", Text: "default keyword"}}, c.Notes)

	o := testOptions()
	o.NoteKeywords = []string{}
	c = mustParse(t, "feat: x\n\nBREAKING AMEND: disabled", o)
	assert.Empty(t, c.Notes)
	assert.Equal(t, strp("BREAKING AMEND: disabled"), c.Body)
}

func TestParseReferences(t *testing.T) {
	c := mustParse(t, "chore: some chore", nil)
	assert.Equal(t, []*Reference{}, c.References)

	c = mustParse(t, longMessage, testOptions())
	assert.Equal(t, []*Reference{
		ref(strp("Kills"), nil, nil, "1", "#1", "#"),
		ref(strp("Kills"), nil, nil, "123", ", #123", "#"),
		ref(strp("killed"), nil, nil, "25", "#25", "#"),
		ref(strp("handle"), nil, nil, "33", "#33", "#"),
		ref(strp("handle"), nil, nil, "100", ", Closes #100", "#"),
		ref(strp("Handled"), nil, nil, "3", "#3", "#"),
		ref(strp("kills"), nil, strp("repo"), "77", "repo#77", "#"),
		ref(strp("kills"), strp("stevemao"), strp("conventional-commits-parser"), "1", "stevemao/conventional-commits-parser#1", "#"),
	}, c.References)
}

func TestParseHeaderReferencesFirst(t *testing.T) {
	c := mustParse(t, "fix: handles #2\n\nkills #1", testOptions())
	require.Len(t, c.References, 2)
	assert.Equal(t, "2", c.References[0].Issue)
	assert.Equal(t, "1", c.References[1].Issue)
	assert.Nil(t, c.Body)
	assert.Equal(t, strp("kills #1"), c.Footer)
}

func TestParseFooterAfterReferences(t *testing.T) {
	c := mustParse(t,
		"feat(scope): broadcast $destroy event on scope destruction\n"+
			"perf testing shows that in chrome this change adds 5-15% overhead\n"+
			"when destroying 10k nested scopes where each scope has a $destroy listener\n"+
			"Kills #1, #123\n"+
			"what\n"+
			"killed #25\n"+
			"handle #33, Closes #100, Handled #3\n"+
			"other",
		testOptions())
	assert.Equal(t, strp("Kills #1, #123\nwhat\nkilled #25\nhandle #33, Closes #100, Handled #3\nother"), c.Footer)

	c = mustParse(t,
		"feat(scope): broadcast $destroy event on scope destruction\n"+
			"perf testing shows that in chrome this change adds 5-15% overhead\n"+
			"when destroying 10k nested scopes where each scope has a $destroy listener\n"+
			"Kills #1, #123\n"+
			"BREAKING AMEND: some breaking change\n",
		testOptions())
	assert.Equal(t, []*Note{{Title: "BREAKING AMEND", Text: "some breaking change"}}, c.Notes)
	assert.Equal(t, []*Reference{
		ref(strp("Kills"), nil, nil, "1", "#1", "#"),
		ref(strp("Kills"), nil, nil, "123", ", #123", "#"),
	}, c.References)
	assert.Equal(t, strp("Kills #1, #123\nBREAKING AMEND: some breaking change"), c.Footer)
}

func TestParseOtherFields(t *testing.T) {
	t.Run("hash", func(t *testing.T) {
		c := mustParse(t, "My commit message\n-hash-\n9b1aff905b638aa274a5fc8f88662df446d374bd", testOptions())
		assertField(t, c, "hash", strp("9b1aff905b638aa274a5fc8f88662df446d374bd"))
		assert.Nil(t, c.Body)
	})

	t.Run("multiline", func(t *testing.T) {
		c := mustParse(t,
			"My commit message\n"+
				"-sideNotes-\n"+
				"It should warn the correct unfound file names.\n"+
				"Also it should continue if one file cannot be found.\n"+
				"Tests are added for these",
			testOptions())
		assertField(t, c, "sideNotes", strp("It should warn the correct unfound file names.\n"+
			"Also it should continue if one file cannot be found.\n"+
			"Tests are added for these"))
	})

	t.Run("committer name and email", func(t *testing.T) {
		c := mustParse(t, "My commit message\n-committerName-\nSteve Mao\n- committerEmail-\ntest@github.com", testOptions())
		assertField(t, c, "committerName", strp("Steve Mao"))
		assertField(t, c, " committerEmail", strp("test@github.com"))
	})

	t.Run("overwrites header", func(t *testing.T) {
		c := mustParse(t, "feat: subject\n-header-\nreplaced\n-type-\nother", testOptions())
		assert.Equal(t, strp("replaced"), c.Header)
		assertField(t, c, "header", strp("replaced"))
		assertField(t, c, "type", strp("other"))

		v, ok := c.Get("header")
		require.True(t, ok)
		assert.Equal(t, strp("replaced"), v)
	})

	t.Run("overwrites list fields", func(t *testing.T) {
		c := mustParse(t, "feat: subject\n\nkills #1\n-references-\nnone", testOptions())
		assert.Nil(t, c.References)
		v, ok := c.Get("references")
		require.True(t, ok)
		assert.Equal(t, strp("none"), v)
		assert.Contains(t, c.String(), `"references":"none"`)
	})

	t.Run("empty name closes field", func(t *testing.T) {
		c := mustParse(t, "feat: subject\n-note-\nin field\n--\nin body", testOptions())
		assertField(t, c, "note", strp("in field"))
		assert.Equal(t, strp("in body"), c.Body)
	})

	t.Run("leading blank line dropped", func(t *testing.T) {
		c := mustParse(t, "feat: subject\n-note-\n\nvalue\n", testOptions())
		assertField(t, c, "note", strp("value"))
	})
}

func TestParseRevert(t *testing.T) {
	c := mustParse(t,
		"Revert \"throw an error if a callback is passed to animate methods\"\n\n"+
			"This reverts commit 9bb4d6ccbe80b7704c6b7f53317ca8146bc103ca.",
		testOptions())
	require.NotNil(t, c.Revert)
	assert.Equal(t, []string{"header", "hash"}, c.Revert.Names())
	assert.Equal(t, "throw an error if a callback is passed to animate methods", c.Revert.Value("header"))
	assert.Equal(t, "9bb4d6ccbe80b7704c6b7f53317ca8146bc103ca", c.Revert.Value("hash"))

	c = mustParse(t, "Revert \"\"\n\nThis reverts commit .", testOptions())
	require.NotNil(t, c.Revert)
	for _, name := range []string{"header", "hash"} {
		v, ok := c.Revert.Get(name)
		assert.True(t, ok)
		assert.Nil(t, v)
	}

	c = mustParse(t, "feat: not a revert", testOptions())
	assert.Nil(t, c.Revert)
}

func TestParseEmptyAfterFiltering(t *testing.T) {
	o := testOptions()
	o.CommentChar = "#"
	o.MergePattern = `^Merge (.*)$`
	o.MergeCorrespondence = []string{"source"}
	c := mustParse(t, "# only a comment\n# another", o)

	assert.Nil(t, c.Header)
	assert.Nil(t, c.Body)
	assert.Nil(t, c.Footer)
	assert.Nil(t, c.Revert)
	assertField(t, c, "type", nil)
	assertField(t, c, "source", nil)
	assert.JSONEq(t, `{
		"type": null, "scope": null, "subject": null, "source": null,
		"merge": null, "header": null, "body": null, "footer": null,
		"notes": [], "references": [], "mentions": [], "revert": null
	}`, c.String())
}

func TestParseCommentCharMultiRune(t *testing.T) {
	o := testOptions()
	o.CommentChar = "//"
	c := mustParse(t, "header\n// kept", o)
	assert.Equal(t, strp("// kept"), c.Body)

	o.CommentChar = "é"
	c = mustParse(t, "header\né dropped\ne kept", o)
	assert.Equal(t, strp("e kept"), c.Body)
}

func TestParseJSON(t *testing.T) {
	c := mustParse(t, "fix(core): handle #3 @alice\n\nbody text\n\n-reviewer-\nbob", testOptions())
	expected := `{
		"type": "fix",
		"scope": "core",
		"subject": "handle #3 @alice",
		"merge": null,
		"header": "fix(core): handle #3 @alice",
		"body": "body text",
		"footer": null,
		"notes": [],
		"references": [{"action": "handle", "owner": null, "repository": null, "issue": "3", "raw": "#3", "prefix": "#"}],
		"mentions": ["alice"],
		"revert": null,
		"reviewer": "bob"
	}`
	assert.JSONEq(t, expected, c.String())

	keys := c.Keys()
	assert.Equal(t, []string{"type", "scope", "subject", "merge", "header", "body", "footer",
		"notes", "references", "mentions", "revert", "reviewer"}, keys)
	assert.True(t, strings.HasPrefix(c.String(), `{"type":"fix","scope":"core"`))
}

func TestParserReuse(t *testing.T) {
	opts, err := config.NewOptions(testOptions()).Resolve()
	require.NoError(t, err)
	p := NewParser(opts)

	first, err := p.Parse(longMessage)
	require.NoError(t, err)
	_, err = p.Parse("chore: other\n\n-hash-\nabc")
	require.NoError(t, err)
	again, err := p.Parse(longMessage)
	require.NoError(t, err)

	assert.Equal(t, first.String(), again.String())
	_, ok := again.Field("hash")
	assert.False(t, ok)
}

func TestParseNilPatterns(t *testing.T) {
	opts := &config.Resolved{
		HeaderCorrespondence: []string{"type"},
		IssuePrefixes:        []string{"#"},
	}
	c, err := Parse("feat: x\n\nsee #4\n-hash-\nabc", opts)
	require.NoError(t, err)

	assert.Equal(t, strp("feat: x"), c.Header)
	assertField(t, c, "type", nil)
	assert.Equal(t, strp("see #4\n-hash-\nabc"), c.Footer)
	assert.Nil(t, c.Revert)
	require.Len(t, c.References, 1)
	assert.Nil(t, c.References[0].Action)
	assert.Equal(t, "see #4", c.References[0].Raw)
}
