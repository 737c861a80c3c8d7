// Package env implements the cross-file compilation graph: resolving
// use-decls to source objects, parsing and lowering them, and merging their
// declarations into a single registry shared across a compiled package set
// (spec.md §4.4).
package env

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/reproto/reproto/ir"
)

// Candidate is one (version, source) pair a Resolver offers for a required
// package.
type Candidate struct {
	Version ir.Version
	Open    func() (io.ReadCloser, error)
}

// Resolver is the external contract every sub-resolver satisfies: given a
// required package, produce zero or more candidates. The chain resolver
// queries sub-resolvers in order and returns the first non-empty result,
// matching spec.md §4.4's "the first to return a match wins".
type Resolver interface {
	Resolve(pkg ir.Package) ([]Candidate, error)
}

// Chain queries its sub-resolvers in order, returning the first one that
// produces any candidates.
type Chain struct {
	Resolvers []Resolver
}

func NewChain(resolvers ...Resolver) *Chain {
	return &Chain{Resolvers: resolvers}
}

func (c *Chain) Resolve(pkg ir.Package) ([]Candidate, error) {
	for _, r := range c.Resolvers {
		candidates, err := r.Resolve(pkg)
		if err != nil {
			return nil, err
		}

		if len(candidates) > 0 {
			return candidates, nil
		}
	}

	return nil, nil
}

// PathResolver inspects <root>/<package-parts>/<last>.reproto and
// <root>/<package-parts>/<last>-<semver>.reproto on an afero filesystem,
// so callers can point it at an OS directory, an in-memory tree for tests,
// or anything else afero.Fs abstracts over.
type PathResolver struct {
	FS   afero.Fs
	Root string
}

func NewPathResolver(fs afero.Fs, root string) *PathResolver {
	return &PathResolver{FS: fs, Root: root}
}

func (p *PathResolver) Resolve(pkg ir.Package) ([]Candidate, error) {
	if len(pkg.Parts) == 0 {
		return nil, fmt.Errorf("cannot resolve an empty package")
	}

	dir := filepath.Join(append([]string{p.Root}, pkg.Parts[:len(pkg.Parts)-1]...)...)
	last := pkg.Parts[len(pkg.Parts)-1]

	var out []Candidate

	unversioned := filepath.Join(dir, last+".reproto")
	if exists, err := afero.Exists(p.FS, unversioned); err == nil && exists {
		out = append(out, Candidate{
			Version: ir.Version{},
			Open:    func() (io.ReadCloser, error) { return p.FS.Open(unversioned) },
		})
	}

	entries, err := afero.ReadDir(p.FS, dir)
	if err != nil {
		return out, nil //nolint:nilerr // a missing directory just means no versioned candidates
	}

	prefix := last + "-"

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".reproto" {
			continue
		}

		base := name[:len(name)-len(".reproto")]
		if len(base) <= len(prefix) || base[:len(prefix)] != prefix {
			continue
		}

		verStr := base[len(prefix):]

		v, err := ir.ParseVersion(verStr)
		if err != nil {
			continue
		}

		path := filepath.Join(dir, name)
		out = append(out, Candidate{
			Version: v,
			Open:    func() (io.ReadCloser, error) { return p.FS.Open(path) },
		})
	}

	return out, nil
}

// MemoryResolver serves candidates from an in-memory map keyed by package
// string, grounded on original_source's file_index.rs (an in-memory
// package→source index used by its test harness and REPL).
type MemoryResolver struct {
	files map[string]map[string]string // package string -> version string -> source
}

func NewMemoryResolver() *MemoryResolver {
	return &MemoryResolver{files: make(map[string]map[string]string)}
}

// Add registers source text under pkg at the given version ("" for an
// unversioned object).
func (m *MemoryResolver) Add(pkg ir.Package, version, source string) {
	byVersion, ok := m.files[pkg.String()]
	if !ok {
		byVersion = make(map[string]string)
		m.files[pkg.String()] = byVersion
	}

	byVersion[version] = source
}

func (m *MemoryResolver) Resolve(pkg ir.Package) ([]Candidate, error) {
	byVersion, ok := m.files[pkg.String()]
	if !ok {
		return nil, nil
	}

	versions := make([]string, 0, len(byVersion))
	for v := range byVersion {
		versions = append(versions, v)
	}

	sort.Strings(versions)

	out := make([]Candidate, 0, len(byVersion))

	for _, vs := range versions {
		source := byVersion[vs]

		v := ir.Version{}
		if vs != "" {
			parsed, err := ir.ParseVersion(vs)
			if err != nil {
				return nil, err
			}

			v = parsed
		}

		out = append(out, Candidate{
			Version: v,
			Open:    func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(source)), nil },
		})
	}

	return out, nil
}
