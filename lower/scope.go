// Package lower walks an ast.File in lexical order and produces ir
// declarations, per spec.md §4.3; registering them into an ir.Table is
// left to env.Environment.ProcessFile. It resolves
// nothing across files itself — that is the env package's job — but it
// does install use-decl aliases into a per-file Scope so later name
// references inside the same file can be qualified against them.
package lower

import "github.com/reproto/reproto/ir"

// Scope carries per-file lowering state: the use-decl aliases installed so
// far, the feature flags enabled by `#![feature(...)]`, and the package
// prefix (from CLI/manifest) prepended to the file's own declared package.
type Scope struct {
	PackagePrefix ir.Package
	FilePackage   ir.Package
	Aliases       map[string]ir.RequiredPackage
	Features      map[string]bool

	// endl is a syntactic-error-recovery flag; nothing in this package
	// sets or reads it.
	endl bool
}

// NewScope creates an empty scope rooted at the given package prefix and
// file package (prefix + the file's own declared package parts).
func NewScope(prefix, filePackage ir.Package) *Scope {
	return &Scope{
		PackagePrefix: prefix,
		FilePackage:   filePackage,
		Aliases:       make(map[string]ir.RequiredPackage),
		Features:      make(map[string]bool),
	}
}

// ResolveAlias returns the required package registered for an alias, if
// any use-decl installed one.
func (s *Scope) ResolveAlias(alias string) (ir.RequiredPackage, bool) {
	rp, ok := s.Aliases[alias]
	return rp, ok
}

// HasFeature reports whether the named feature was enabled by
// `#![feature(...)]` in this file.
func (s *Scope) HasFeature(name string) bool {
	return s.Features[name]
}

// QualifyName builds the fully-qualified Name for a bare identifier or
// dotted path declared directly in this file (no alias prefix).
func (s *Scope) QualifyName(path ...string) ir.Name {
	return ir.NewName(s.FilePackage, path...)
}
