package ir

import "strings"

// Package is an ordered sequence of identifier parts, e.g. "foo.bar.baz",
// per spec.md §3.
type Package struct {
	Parts []string
}

// NewPackage builds a Package from dot-separated parts.
func NewPackage(parts ...string) Package {
	return Package{Parts: append([]string(nil), parts...)}
}

// ParsePackage splits a dotted package string, e.g. "foo.bar.baz".
func ParsePackage(dotted string) Package {
	if dotted == "" {
		return Package{}
	}

	return NewPackage(strings.Split(dotted, ".")...)
}

func (p Package) String() string { return strings.Join(p.Parts, ".") }

// WithPrefix prepends the given prefix package (used for the manifest's
// package_prefix, spec.md §6).
func (p Package) WithPrefix(prefix Package) Package {
	if len(prefix.Parts) == 0 {
		return p
	}

	return Package{Parts: append(append([]string(nil), prefix.Parts...), p.Parts...)}
}

// Equal reports structural equality.
func (p Package) Equal(other Package) bool {
	if len(p.Parts) != len(other.Parts) {
		return false
	}

	for i := range p.Parts {
		if p.Parts[i] != other.Parts[i] {
			return false
		}
	}

	return true
}

// VersionedPackage pairs a Package with an optional resolved Version.
type VersionedPackage struct {
	Package Package
	Version Version // IsZero() if unversioned
}

func (vp VersionedPackage) String() string {
	if vp.Version.IsZero() {
		return vp.Package.String()
	}

	return vp.Package.String() + "@" + vp.Version.String()
}

// RequiredPackage pairs a Package with an optional Range used while
// resolving imports (spec.md §3, §4.4).
type RequiredPackage struct {
	Package Package
	Range   Range // IsZero() if unconstrained
}

func (rp RequiredPackage) String() string {
	if rp.Range.IsZero() {
		return rp.Package.String()
	}

	return rp.Package.String() + "@" + rp.Range.String()
}
