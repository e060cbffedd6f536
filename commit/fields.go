package commit

import (
	"bytes"
	"encoding/json"
)

// Fields is an ordered set of named, nullable strings. A name that was never
// set is absent, which is not the same as a name set to nil.
type Fields struct {
	names  []string
	values map[string]*string
}

func NewFields() *Fields {
	return &Fields{values: make(map[string]*string)}
}

// Set assigns value to name. A name keeps its original position when it is
// set again.
func (f *Fields) Set(name string, value *string) {
	if f.values == nil {
		f.values = make(map[string]*string)
	}
	if _, ok := f.values[name]; !ok {
		f.names = append(f.names, name)
	}
	f.values[name] = value
}

func (f *Fields) Get(name string) (*string, bool) {
	if f == nil {
		return nil, false
	}
	v, ok := f.values[name]
	return v, ok
}

// Value returns the value of name, or "" when it is nil or absent.
func (f *Fields) Value(name string) string {
	v, _ := f.Get(name)
	if v == nil {
		return ""
	}
	return *v
}

func (f *Fields) Has(name string) bool {
	_, ok := f.Get(name)
	return ok
}

func (f *Fields) Delete(name string) {
	if !f.Has(name) {
		return
	}
	delete(f.values, name)
	for i, n := range f.names {
		if n == name {
			f.names = append(f.names[:i:i], f.names[i+1:]...)
			break
		}
	}
}

func (f *Fields) Names() []string {
	if f == nil {
		return nil
	}
	names := make([]string, len(f.names))
	copy(names, f.names)
	return names
}

func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.names)
}

// Map returns the fields as a plain map. Nil values stay nil.
func (f *Fields) Map() map[string]*string {
	m := make(map[string]*string, f.Len())
	for _, name := range f.Names() {
		m[name], _ = f.Get(name)
	}
	return m
}

// MarshalJSON writes the fields as an object in insertion order.
func (f *Fields) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}
	b := &bytes.Buffer{}
	b.WriteByte('{')
	for i, name := range f.names {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := writeJSONPair(b, name, f.values[name]); err != nil {
			return nil, err
		}
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func writeJSONPair(b *bytes.Buffer, name string, value interface{}) error {
	k, err := json.Marshal(name)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	b.Write(k)
	b.WriteByte(':')
	b.Write(v)
	return nil
}

func strPtr(s string) *string { return &s }

// nonEmpty returns nil for the empty string.
func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
