package release

import (
	"strings"

	"github.com/blang/semver/v4"
	"github.com/cockroachdb/errors"
)

var ErrNoVersions = errors.New("release: no release versions found")

// ParseVersion parses a semantic version. A leading "v" is allowed.
func ParseVersion(s string) (semver.Version, error) {
	v, err := semver.Parse(strings.TrimPrefix(strings.TrimSpace(s), "v"))
	if err != nil {
		return semver.Version{}, errors.Wrapf(err, "release: invalid version %q", s)
	}
	return v, nil
}

// Latest returns the highest release version among tags. Tags that are not
// versions, and prereleases, are skipped.
func Latest(tags []string) (semver.Version, error) {
	var versions []semver.Version
	for _, t := range tags {
		v, err := ParseVersion(t)
		if err != nil {
			continue
		}
		if len(v.Pre) > 0 {
			continue
		}
		versions = append(versions, v)
	}

	semver.Sort(versions)
	if len(versions) > 0 {
		return versions[len(versions)-1], nil
	}
	return semver.Version{}, ErrNoVersions
}

// Bump returns the version following v for a release of type t. Prerelease
// and build metadata are dropped. A Skip release returns v unchanged.
func Bump(v semver.Version, t Type) (semver.Version, error) {
	if t == Skip {
		return v, nil
	}

	next := v
	next.Pre = nil
	next.Build = nil

	var err error
	switch t {
	case Patch:
		err = next.IncrementPatch()
	case Minor:
		err = next.IncrementMinor()
	case Major:
		err = next.IncrementMajor()
	default:
		return v, errors.Newf("release: can't bump a %s release", t)
	}
	if err != nil {
		return v, errors.Wrapf(err, "release: bump %s", v)
	}
	return next, nil
}
