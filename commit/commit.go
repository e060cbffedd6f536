// Package commit parses commit messages into structured records.
//
// Parsing is driven entirely by a config.Resolved: patterns and keyword lists
// are compiled into Matchers once, then each message is classified line by
// line into header, body, footer, notes, references and user-defined fields.
package commit

import (
	"bytes"
	"encoding/json"
)

// Commit is a parsed commit message.
//
// Fields holds the dynamic string fields: header and merge correspondence
// values and other fields. When a commit is marshaled, the fixed and dynamic
// fields are flattened into a single object, with a later group overwriting
// an earlier one on a name collision: header correspondence, then merge
// correspondence, then the fixed fields, then other fields.
type Commit struct {
	Merge      *string      `json:"merge"`
	Header     *string      `json:"header"`
	Body       *string      `json:"body"`
	Footer     *string      `json:"footer"`
	Notes      []*Note      `json:"notes"`
	References []*Reference `json:"references"`
	Mentions   []string     `json:"mentions"`
	Revert     *Fields      `json:"revert"`
	Fields     *Fields      `json:"-"`

	// keys is the flattened key order, in the order each name was first
	// assigned during assembly.
	keys []string
}

type Note struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type Reference struct {
	Action     *string `json:"action"`
	Owner      *string `json:"owner"`
	Repository *string `json:"repository"`
	Issue      string  `json:"issue"`
	Raw        string  `json:"raw"`
	Prefix     string  `json:"prefix"`
}

var fixedNames = []string{
	"merge",
	"header",
	"body",
	"footer",
	"notes",
	"references",
	"mentions",
	"revert",
}

func isFixed(name string) bool {
	for _, n := range fixedNames {
		if n == name {
			return true
		}
	}
	return false
}

// Keys returns the names of the flattened record in order.
func (c *Commit) Keys() []string {
	if len(c.keys) > 0 {
		keys := make([]string, len(c.keys))
		copy(keys, c.keys)
		return keys
	}

	keys := append([]string{}, fixedNames...)
	for _, name := range c.Fields.Names() {
		if !isFixed(name) {
			keys = append(keys, name)
		}
	}
	return keys
}

// Get returns the value the flattened record holds for name. Dynamic fields
// are returned as *string.
func (c *Commit) Get(name string) (interface{}, bool) {
	if v, ok := c.Fields.Get(name); ok {
		return v, true
	}
	switch name {
	case "merge":
		return c.Merge, true
	case "header":
		return c.Header, true
	case "body":
		return c.Body, true
	case "footer":
		return c.Footer, true
	case "notes":
		return nonNilNotes(c.Notes), true
	case "references":
		return nonNilReferences(c.References), true
	case "mentions":
		return nonNilStrings(c.Mentions), true
	case "revert":
		return c.Revert, true
	}
	return nil, false
}

// Field returns the dynamic field name, reporting whether it is present.
func (c *Commit) Field(name string) (*string, bool) {
	return c.Fields.Get(name)
}

func (c *Commit) MarshalJSON() ([]byte, error) {
	b := &bytes.Buffer{}
	b.WriteByte('{')
	for i, name := range c.Keys() {
		if i > 0 {
			b.WriteByte(',')
		}
		v, _ := c.Get(name)
		if err := writeJSONPair(b, name, v); err != nil {
			return nil, err
		}
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// Map returns the flattened record as a plain map.
func (c *Commit) Map() map[string]interface{} {
	m := make(map[string]interface{})
	for _, name := range c.Keys() {
		m[name], _ = c.Get(name)
	}
	return m
}

func (c *Commit) String() string {
	b, err := json.Marshal(c)
	if err != nil {
		return err.Error()
	}
	return string(b)
}

func nonNilNotes(l []*Note) []*Note {
	if l == nil {
		return []*Note{}
	}
	return l
}

func nonNilReferences(l []*Reference) []*Reference {
	if l == nil {
		return []*Reference{}
	}
	return l
}

func nonNilStrings(l []string) []string {
	if l == nil {
		return []string{}
	}
	return l
}
