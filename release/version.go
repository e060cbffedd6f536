package release

import (
	"encoding/json"

	"github.com/blang/semver/v4"
)

// Result is the release a range of commits calls for: the highest release
// type among them.
type Result struct {
	Type    Type        `json:"release_type"`
	Commits []*Analyzed `json:"commits"`
	Current *Version    `json:"current,omitempty"`
	Next    *Version    `json:"next,omitempty"`
}

func (r *Result) Add(ac *Analyzed) {
	r.Commits = append(r.Commits, ac)
	if ac.Type > r.Type {
		r.Type = ac.Type
	}
}

// Counts returns how many commits call for each release type.
func (r *Result) Counts() map[Type]int {
	counts := make(map[Type]int)
	for _, ac := range r.Commits {
		counts[ac.Type]++
	}
	return counts
}

// Bump sets Current to current and Next to the version following it.
func (r *Result) Bump(current semver.Version) error {
	next, err := Bump(current, r.Type)
	if err != nil {
		return err
	}
	r.Current = &Version{Version: current}
	r.Next = &Version{Version: next}
	return nil
}

// Version is a semantic version that renders with a "v" prefix.
type Version struct {
	semver.Version
}

func (v *Version) String() string { return v.V() }

func (v *Version) V() string {
	return "v" + v.Version.String()
}

func (v *Version) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.V())
}

func (v *Version) Pre() []string {
	res := make([]string, len(v.Version.Pre))
	for i, part := range v.Version.Pre {
		res[i] = part.String()
	}
	return res
}
