// Package ir implements the core intermediate representation described in
// spec.md §3: packages and versions, names, numbers, the surface type
// language, declarations, fields, and the registration table.
package ir

import (
	"fmt"
	"strings"

	mmsemver "github.com/Masterminds/semver/v3"
	"golang.org/x/mod/semver"
)

// Version is a plain, declared SemVer version such as "1.0.0". It is
// validated and compared through golang.org/x/mod/semver, which the teacher
// repo already uses for its own SemVer literal (ast.SemVer). x/mod/semver
// requires the canonical "vMAJOR.MINOR.PATCH" form, so Version normalizes to
// and from that form internally and always displays without the "v".
type Version struct {
	raw string // canonical "vX.Y.Z[-pre][+build]" form
}

// ParseVersion validates and wraps a declared version string. The input may
// be given with or without a leading "v".
func ParseVersion(s string) (Version, error) {
	canon := s
	if !strings.HasPrefix(canon, "v") {
		canon = "v" + canon
	}

	if !semver.IsValid(canon) {
		return Version{}, fmt.Errorf("invalid semantic version %q", s)
	}

	return Version{raw: canon}, nil
}

// String renders the version without the "v" prefix, e.g. "1.2.3".
func (v Version) String() string {
	if v.raw == "" {
		return ""
	}

	return strings.TrimPrefix(v.raw, "v")
}

// IsZero reports whether this is the unset Version.
func (v Version) IsZero() bool { return v.raw == "" }

// Compare returns -1, 0, or +1 following SemVer precedence, matching
// spec.md §4.4's "pick the greatest version" requirement.
func (v Version) Compare(other Version) int {
	return semver.Compare(v.raw, other.raw)
}

// Range is a required-package version constraint such as "^1.2.0" or
// ">=1.0.0 <2.0.0". Masterminds/semver/v3 is used here specifically because
// golang.org/x/mod/semver has no notion of ranges, only exact-version
// comparison — the two libraries are complementary, not redundant.
type Range struct {
	constraint *mmsemver.Constraints
	raw        string
}

// ParseRange parses a SemVer range expression. An empty string means "any
// version", matching a RequiredPackage with no version constraint.
func ParseRange(s string) (Range, error) {
	if strings.TrimSpace(s) == "" {
		return Range{raw: ""}, nil
	}

	c, err := mmsemver.NewConstraint(s)
	if err != nil {
		return Range{}, fmt.Errorf("invalid version range %q: %w", s, err)
	}

	return Range{constraint: c, raw: s}, nil
}

// Satisfies reports whether v satisfies the range. An empty/unset Range
// satisfies every version.
func (r Range) Satisfies(v Version) bool {
	if r.constraint == nil {
		return true
	}

	mv, err := mmsemver.NewVersion(v.String())
	if err != nil {
		return false
	}

	return r.constraint.Check(mv)
}

func (r Range) String() string { return r.raw }

// IsZero reports whether this is the unconstrained Range.
func (r Range) IsZero() bool { return r.constraint == nil }
