// Package release decides which semantic version release a set of parsed
// commits calls for.
package release

import (
	"strings"

	"github.com/cockroachdb/errors"
)

type Type int

const (
	_ Type = iota

	Skip
	Patch
	Minor
	Major
)

func (t Type) String() string {
	switch t {
	case Skip:
		return "SKIP"
	case Patch:
		return "PATCH"
	case Minor:
		return "MINOR"
	case Major:
		return "MAJOR"
	case 0:
		return "<INVALID>"
	default:
		return "<UNKNOWN>"
	}
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// TypeFromString parses a release type name. Case is ignored.
func TypeFromString(s string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SKIP":
		return Skip, nil
	case "PATCH":
		return Patch, nil
	case "MINOR":
		return Minor, nil
	case "MAJOR":
		return Major, nil
	}
	return 0, errors.Newf("release: unknown release type %q", s)
}
