package ir

import "strings"

// Name is (package, optional_prefix, path) as described in spec.md §3. Path
// is a non-empty sequence of identifier parts addressing a declaration, or
// an inner declaration (e.g. ["Animal", "Dragon"] for a sub-type).
//
// Prefix records the use-alias the referring file wrote the name with. It
// drives import generation in back ends but carries no semantic weight: two
// Names are "equal under resolution" iff Package and Path match, which is
// exactly what Localize strips down to.
type Name struct {
	Package Package
	Prefix  string // "" if the name was not written through an alias
	Path    []string
}

// NewName builds a Name with no prefix.
func NewName(pkg Package, path ...string) Name {
	return Name{Package: pkg, Path: append([]string(nil), path...)}
}

// WithPrefix returns a copy of n carrying the given use-alias prefix.
func (n Name) WithPrefix(prefix string) Name {
	n.Prefix = prefix
	return n
}

// Localized is the part of a Name that participates in identity: the
// prefix is use-site UI information only, dropped before any hash or
// equality comparison in the registry (spec.md §3, §9 "Name identity
// without pointer identity").
//
// Package is stored pre-joined (rather than as a Package struct) so
// Localized stays a plain comparable value usable directly as a map key —
// Package itself holds a slice and so is not comparable.
type Localized struct {
	Package string
	Path    string // joined with "." for use as a map key
}

// Localize drops the prefix and joins both Package and Path into a single
// comparable value.
func (n Name) Localize() Localized {
	return Localized{Package: n.Package.String(), Path: strings.Join(n.Path, ".")}
}

// Key renders a Localized name as a single string suitable for use as a Go
// map key (Localized itself is already comparable and usable directly, but
// Key is convenient for log messages and diagnostics).
func (l Localized) Key() string {
	return l.Package + "#" + l.Path
}

func (n Name) String() string {
	var sb strings.Builder

	if n.Prefix != "" {
		sb.WriteString(n.Prefix)
		sb.WriteString("::")
	}

	sb.WriteString(n.Package.String())
	sb.WriteByte(':')
	sb.WriteString(strings.Join(n.Path, "."))

	return sb.String()
}

// WithChild appends a path segment, used when descending into an inner
// declaration (e.g. an interface sub-type or nested type).
func (n Name) WithChild(part string) Name {
	n.Path = append(append([]string(nil), n.Path...), part)
	return n
}

// Local is the last path segment — the declaration's own identifier,
// ignoring any owning outer declaration.
func (n Name) Local() string {
	if len(n.Path) == 0 {
		return ""
	}

	return n.Path[len(n.Path)-1]
}
