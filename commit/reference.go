package commit

import (
	"strings"
	"unicode/utf8"
)

// sentence is a run of text that references share an action with.
type sentence struct {
	action *string
	text   string
}

// ExtractReferences returns the issue references in span, in the order they
// appear. Text is split into sentences at each reference action keyword; all
// references found in a sentence share its action. When span holds no
// sentence, the whole span is scanned as one sentence without an action.
func ExtractReferences(span string, m *Matchers) []*Reference {
	sentences := m.References.sentences(span)
	if len(sentences) == 0 {
		sentences = catchAll(span)
	}

	var refs []*Reference
	for _, s := range sentences {
		for _, part := range m.ReferenceParts.FindAllStringSubmatch(s.text) {
			refs = append(refs, newReference(s.action, part))
		}
	}
	return refs
}

// newReference builds a reference from a reference parts match: the full
// match, an optional owner/repository token, the prefix and the issue.
func newReference(action *string, part []string) *Reference {
	ref := &Reference{
		Action: action,
		Raw:    part[0],
		Prefix: part[2],
		Issue:  part[3],
	}

	ownerRepo := strings.Split(part[1], "/")
	if len(ownerRepo) > 1 {
		ref.Owner = strPtr(ownerRepo[0])
		ref.Repository = nonEmpty(strings.Join(ownerRepo[1:], "/"))
	} else {
		ref.Repository = nonEmpty(ownerRepo[0])
	}
	return ref
}

// sentences splits s at each action keyword that is followed by whitespace.
// A sentence runs from after that whitespace up to the next occurrence of
// any keyword, or the end of s. A sentence can't cross a line end; a
// keyword whose sentence would is skipped.
func (m Matcher) sentences(s string) []sentence {
	switch m.Kind {
	case KindCatchAll:
		return catchAll(s)
	case KindNever:
		return nil
	}

	var res []sentence
	for pos := 0; pos < len(s); {
		loc := m.re.FindStringSubmatchIndex(s[pos:])
		if loc == nil {
			break
		}
		start, textStart := pos+loc[0], pos+loc[1]

		end := len(s)
		if stop := m.stop.FindStringIndex(s[textStart:]); stop != nil {
			end = textStart + stop[0]
		}

		text := s[textStart:end]
		if strings.ContainsAny(text, "\r\n") {
			_, size := utf8.DecodeRuneInString(s[start:])
			pos = start + size
			continue
		}

		action := s[pos+loc[2] : pos+loc[3]]
		res = append(res, sentence{action: &action, text: text})
		pos = end
	}
	return res
}

// catchAll returns each line of s as a sentence without an action.
func catchAll(s string) []sentence {
	var res []sentence
	for _, line := range strings.FieldsFunc(s, isLineEnd) {
		res = append(res, sentence{text: line})
	}
	return res
}

func isLineEnd(r rune) bool {
	return r == '\n' || r == '\r'
}
