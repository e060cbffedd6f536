package commit

// fixedFields are the parts of a commit every parse produces.
type fixedFields struct {
	merge      *string
	header     *string
	body       *string
	footer     *string
	notes      []*Note
	references []*Reference
	mentions   []string
	revert     *Fields
}

// assemble builds a Commit by layering four groups of fields. On a name
// collision the later group wins:
//
//  1. header correspondence
//  2. merge correspondence
//  3. the fixed fields (merge, header, body, footer, notes, references,
//     mentions, revert)
//  4. other fields
//
// A name keeps the position where it was first assigned. An other field that
// shadows a fixed string field also replaces it on the Commit, and one that
// shadows a list or revert clears it.
func assemble(headerParts, mergeParts *Fields, fixed fixedFields, otherFields *Fields) *Commit {
	c := &Commit{
		Merge:      fixed.merge,
		Header:     fixed.header,
		Body:       fixed.body,
		Footer:     fixed.footer,
		Notes:      nonNilNotes(fixed.notes),
		References: nonNilReferences(fixed.references),
		Mentions:   nonNilStrings(fixed.mentions),
		Revert:     fixed.revert,
		Fields:     NewFields(),
	}

	seen := make(map[string]bool)
	addKey := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		c.keys = append(c.keys, name)
	}

	for _, layer := range []*Fields{headerParts, mergeParts} {
		for _, name := range layer.Names() {
			v, _ := layer.Get(name)
			c.Fields.Set(name, v)
			addKey(name)
		}
	}

	for _, name := range fixedNames {
		c.Fields.Delete(name)
		addKey(name)
	}

	for _, name := range otherFields.Names() {
		v, _ := otherFields.Get(name)
		c.Fields.Set(name, v)
		addKey(name)
		c.shadow(name, v)
	}

	return c
}

func (c *Commit) shadow(name string, v *string) {
	switch name {
	case "merge":
		c.Merge = v
	case "header":
		c.Header = v
	case "body":
		c.Body = v
	case "footer":
		c.Footer = v
	case "notes":
		c.Notes = nil
	case "references":
		c.References = nil
	case "mentions":
		c.Mentions = nil
	case "revert":
		c.Revert = nil
	}
}
