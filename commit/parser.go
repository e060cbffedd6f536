package commit

import (
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/jeffrom/ccparse/config"
)

// ErrInvalidInput is returned for a missing or blank commit message.
var ErrInvalidInput = errors.New("commit: expected a raw commit")

// Scissor is the line below which git ignores the rest of a commit message
// (git commit --verbose).
const Scissor = "# ------------------------ >8 ------------------------"

// Parser parses commit messages with a fixed configuration. It is safe for
// concurrent use.
type Parser struct {
	opts     *config.Resolved
	matchers *Matchers
	logger   *zap.Logger

	headerCorrespondence []string
	mergeCorrespondence  []string
	revertCorrespondence []string
}

type ParserOption func(p *Parser)

// WithLogger sets the logger parse diagnostics are written to.
func WithLogger(logger *zap.Logger) ParserOption {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMatchers uses matchers instead of compiling them from the options.
func WithMatchers(m *Matchers) ParserOption {
	return func(p *Parser) {
		if m != nil {
			p.matchers = m
		}
	}
}

func NewParser(opts *config.Resolved, options ...ParserOption) *Parser {
	p := &Parser{
		opts:                 opts,
		logger:               zap.NewNop(),
		headerCorrespondence: trimAll(opts.HeaderCorrespondence),
		mergeCorrespondence:  trimAll(opts.MergeCorrespondence),
		revertCorrespondence: trimAll(opts.RevertCorrespondence),
	}
	for _, o := range options {
		o(p)
	}
	if p.matchers == nil {
		p.matchers = Compile(opts)
	}

	for name, m := range map[string]Matcher{
		"notes":           p.matchers.Notes,
		"reference_parts": p.matchers.ReferenceParts,
		"references":      p.matchers.References,
	} {
		if err := m.Err(); err != nil {
			p.logger.Debug("matcher disabled", zap.String("matcher", name), zap.Error(err))
		}
	}
	return p
}

// Parse parses raw with opts. Callers parsing many messages should reuse a
// Parser instead.
func Parse(raw string, opts *config.Resolved) (*Commit, error) {
	return NewParser(opts).Parse(raw)
}

func (p *Parser) Matchers() *Matchers { return p.matchers }

// lineState is the state carried from line to line while classifying the
// lines after the header.
type lineState struct {
	isBody       bool
	continueNote bool
	currentField string

	body        string
	footer      string
	notes       []*Note
	references  []*Reference
	otherFields *Fields
}

// Parse parses a single commit message. The only error it returns is
// ErrInvalidInput.
func (p *Parser) Parse(raw string) (*Commit, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrInvalidInput
	}

	normalized := trimNewlines(raw)
	lines := truncateToScissor(splitLines(normalized))
	lines = filterComments(lines, p.opts.CommentChar)

	headerParts := NewFields()
	mergeParts := NewFields()
	if len(lines) == 0 {
		setNull(headerParts, p.headerCorrespondence)
		setNull(mergeParts, p.mergeCorrespondence)
		return assemble(headerParts, mergeParts, fixedFields{}, NewFields()), nil
	}

	merge, header, rest := p.parseMerge(lines, mergeParts)
	p.parseHeader(header, headerParts)

	st := &lineState{isBody: true, otherFields: NewFields()}
	if header != nil {
		st.references = append(st.references, ExtractReferences(*header, p.matchers)...)
	}
	for _, line := range rest {
		p.classify(st, line)
	}

	var mentions []string
	for _, m := range p.matchers.Mentions.FindAllStringSubmatch(normalized) {
		mentions = append(mentions, m[1])
	}

	for _, note := range st.notes {
		note.Text = trimNewlines(note.Text)
	}

	c := assemble(headerParts, mergeParts, fixedFields{
		merge:      merge,
		header:     header,
		body:       nonEmpty(trimNewlines(st.body)),
		footer:     nonEmpty(trimNewlines(st.footer)),
		notes:      st.notes,
		references: st.references,
		mentions:   mentions,
		revert:     p.parseRevert(normalized),
	}, st.otherFields)

	p.logger.Debug("parsed commit",
		zap.Int("lines", len(lines)),
		zap.Bool("merge", merge != nil),
		zap.Int("notes", len(st.notes)),
		zap.Int("references", len(st.references)),
		zap.Int("mentions", len(mentions)),
		zap.Int("fields", st.otherFields.Len()))
	return c, nil
}

// parseMerge pops the first line and checks it against the merge pattern.
// On a match, the header is the next non-blank line. It returns the merge
// line, the header, and the lines left to classify.
func (p *Parser) parseMerge(lines []string, mergeParts *Fields) (*string, *string, []string) {
	first, rest := lines[0], lines[1:]

	var loc []int
	if re := p.opts.MergePattern; re != nil {
		loc = re.FindStringSubmatchIndex(first)
	}
	if loc == nil {
		setNull(mergeParts, p.mergeCorrespondence)
		return nil, strPtr(first), rest
	}

	merge := strPtr(first[loc[0]:loc[1]])
	var header *string
	for len(rest) > 0 {
		line := rest[0]
		rest = rest[1:]
		if strings.TrimSpace(line) != "" {
			header = strPtr(line)
			break
		}
	}

	// unlike header and revert groups, an empty merge group is kept.
	for i, name := range p.mergeCorrespondence {
		var v *string
		if g := 2 * (i + 1); g+1 < len(loc) && loc[g] >= 0 {
			v = strPtr(first[loc[g]:loc[g+1]])
		}
		mergeParts.Set(name, v)
	}
	return merge, header, rest
}

// parseHeader assigns the header correspondence fields. A name past the last
// capture group of a matching header pattern is left absent.
func (p *Parser) parseHeader(header *string, headerParts *Fields) {
	var match []string
	if re := p.opts.HeaderPattern; re != nil && header != nil {
		match = re.FindStringSubmatch(*header)
	}
	if match == nil {
		setNull(headerParts, p.headerCorrespondence)
		return
	}

	for i, name := range p.headerCorrespondence {
		if i+1 >= len(match) {
			continue
		}
		headerParts.Set(name, nonEmpty(match[i+1]))
	}
}

// classify handles one line after the header. The first rule that applies
// wins:
//
//  1. a field pattern match starts a new other field
//  2. while an other field is open, the line is appended to it
//  3. a note keyword opens a new note
//  4. a line with references closes any open note
//  5. while a note is open, the line continues it
//  6. until the first note or reference the line is body, footer after
func (p *Parser) classify(st *lineState, line string) {
	if re := p.opts.FieldPattern; re != nil {
		if m := re.FindStringSubmatch(line); m != nil {
			st.currentField = ""
			if len(m) > 1 {
				st.currentField = m[1]
			}
			return
		}
		if st.currentField != "" {
			prev, _ := st.otherFields.Get(st.currentField)
			var s string
			if prev != nil {
				s = *prev
			}
			st.otherFields.Set(st.currentField, strPtr(appendLine(s, line)))
			return
		}
	}

	if m := p.matchers.Notes.FindStringSubmatch(line); m != nil {
		st.continueNote = true
		st.isBody = false
		st.footer = appendLine(st.footer, line)
		st.notes = append(st.notes, &Note{Title: m[1], Text: m[2]})
		return
	}

	if refs := ExtractReferences(line, p.matchers); len(refs) > 0 {
		st.isBody = false
		st.continueNote = false
		st.references = append(st.references, refs...)
		st.footer = appendLine(st.footer, line)
		return
	}

	if st.continueNote {
		last := st.notes[len(st.notes)-1]
		last.Text = appendLine(last.Text, line)
		st.footer = appendLine(st.footer, line)
		return
	}

	if st.isBody {
		st.body = appendLine(st.body, line)
	} else {
		st.footer = appendLine(st.footer, line)
	}
}

// parseRevert matches the revert pattern against the whole message. Empty
// or missing groups are nil.
func (p *Parser) parseRevert(normalized string) *Fields {
	re := p.opts.RevertPattern
	if re == nil {
		return nil
	}
	match := re.FindStringSubmatch(normalized)
	if match == nil {
		return nil
	}

	revert := NewFields()
	for i, name := range p.revertCorrespondence {
		var v *string
		if i+1 < len(match) {
			v = nonEmpty(match[i+1])
		}
		revert.Set(name, v)
	}
	return revert
}

// appendLine joins line onto src with a newline. An empty src is replaced
// by line.
func appendLine(src, line string) string {
	if src == "" {
		return line
	}
	return src + "\n" + line
}

func trimNewlines(s string) string {
	return strings.Trim(s, "\r\n")
}

func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func truncateToScissor(lines []string) []string {
	for i, line := range lines {
		if line == Scissor {
			return lines[:i]
		}
	}
	return lines
}

// filterComments drops lines whose first character is commentChar.
func filterComments(lines []string, commentChar string) []string {
	if commentChar == "" {
		return lines
	}
	res := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != "" {
			r, size := utf8.DecodeRuneInString(line)
			if line[:size] == commentChar && r != utf8.RuneError {
				continue
			}
		}
		res = append(res, line)
	}
	return res
}

func setNull(f *Fields, names []string) {
	for _, name := range names {
		f.Set(name, nil)
	}
}

func trimAll(l []string) []string {
	if l == nil {
		return nil
	}
	res := make([]string, len(l))
	for i, s := range l {
		res[i] = strings.TrimSpace(s)
	}
	return res
}
