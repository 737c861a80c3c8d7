package env

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/reproto/reproto/ir"
	"github.com/reproto/reproto/lower"
	"github.com/reproto/reproto/parser"
)

// UnresolvedType is returned by Lookup when a name has no registration.
type UnresolvedType struct {
	Name ir.Localized
}

func (e *UnresolvedType) Error() string {
	return fmt.Sprintf("unresolved type: %s", e.Name.Key())
}

// RegisteredTypeConflict is returned by ProcessFile when two files disagree
// about a qualified name (spec.md §4.4).
type RegisteredTypeConflict struct {
	Name ir.Localized
}

func (e *RegisteredTypeConflict) Error() string {
	return fmt.Sprintf("registered type conflict: %s declared in more than one file", e.Name.Key())
}

// Environment is the cross-file compilation graph described in spec.md
// §4.4: a package prefix, a resolver chain, a visited-imports cache, and
// the accumulated declaration/type registries.
type Environment struct {
	PackagePrefix ir.Package
	Resolver      Resolver
	Log           *logrus.Logger

	visited map[string]visitResult
	decls   map[ir.Localized]ir.Decl
	order   []ir.Localized
	types   *ir.Table

	// packageCache memoizes the import outcome (the satisfying versioned
	// package, or none) for a package@range key across repeated imports
	// of the same dependency within one
	// compilation, grounded on platinummonkey/spoke's use of
	// hashicorp/golang-lru for request-scoped memoization.
	packageCache *lru.Cache[string, visitResult]
}

type visitResult struct {
	satisfied ir.VersionedPackage
	ok        bool
}

// New creates an empty Environment. cacheSize bounds the resolved-package
// memoization cache; 256 is a reasonable default for a single compilation.
func New(prefix ir.Package, resolver Resolver, cacheSize int) (*Environment, error) {
	if cacheSize <= 0 {
		cacheSize = 256
	}

	cache, err := lru.New[string, visitResult](cacheSize)
	if err != nil {
		return nil, err
	}

	return &Environment{
		PackagePrefix: prefix,
		Resolver:      resolver,
		Log:           logrus.StandardLogger(),
		visited:       make(map[string]visitResult),
		decls:         make(map[ir.Localized]ir.Decl),
		types:         ir.NewTable(),
		packageCache:  cache,
	}, nil
}

// Types returns the registry of every registered declaration.
func (e *Environment) Types() *ir.Table { return e.types }

func visitKey(req ir.RequiredPackage) string {
	return req.Package.String() + "@" + req.Range.String()
}

// Import resolves required, picking the greatest version satisfying its
// range, and recursively processes the chosen file if not already visited
// (spec.md §4.4's import operation).
func (e *Environment) Import(required ir.RequiredPackage) (ir.VersionedPackage, error) {
	key := visitKey(required)

	if cached, ok := e.packageCache.Get(key); ok {
		if !cached.ok {
			return ir.VersionedPackage{}, fmt.Errorf("no package satisfies %s", required)
		}

		return cached.satisfied, nil
	}

	if v, ok := e.visited[key]; ok {
		if !v.ok {
			return ir.VersionedPackage{}, fmt.Errorf("no package satisfies %s", required)
		}

		return v.satisfied, nil
	}

	candidates, err := e.Resolver.Resolve(required.Package)
	if err != nil {
		return ir.VersionedPackage{}, err
	}

	var best *Candidate
	var bestVersion ir.Version

	for i := range candidates {
		c := candidates[i]

		if !required.Range.IsZero() && !c.Version.IsZero() && !required.Range.Satisfies(c.Version) {
			continue
		}

		if best == nil || c.Version.Compare(bestVersion) > 0 {
			cc := c
			best = &cc
			bestVersion = c.Version
		}
	}

	if best == nil {
		e.visited[key] = visitResult{ok: false}
		e.packageCache.Add(key, visitResult{ok: false})

		return ir.VersionedPackage{}, fmt.Errorf("no package satisfies %s", required)
	}

	vp := ir.VersionedPackage{Package: required.Package, Version: bestVersion}

	file, aliases, err := e.LoadObject(*best, bestVersion, required.Package)
	if err != nil {
		return ir.VersionedPackage{}, err
	}

	for _, dep := range aliases {
		if _, err := e.Import(dep); err != nil {
			return ir.VersionedPackage{}, err
		}
	}

	if err := e.ProcessFile(required.Package, file); err != nil {
		return ir.VersionedPackage{}, err
	}

	result := visitResult{satisfied: vp, ok: true}
	e.visited[key] = result
	e.packageCache.Add(key, result)

	e.Log.WithFields(logrus.Fields{"package": required.Package.String(), "version": bestVersion.String()}).Debug("resolved import")

	return vp, nil
}

// LoadObject reads and lowers the source a Candidate names, returning its
// LoweredFile and the use-decl aliases it installed. The caller (such as
// Import) is responsible for recursively importing those aliases before
// registering the file's own declarations.
func (e *Environment) LoadObject(c Candidate, version ir.Version, pkg ir.Package) (*lower.LoweredFile, map[string]ir.RequiredPackage, error) {
	r, err := c.Open()
	if err != nil {
		return nil, nil, err
	}

	defer r.Close()

	filename := pkg.String()
	if !version.IsZero() {
		filename += "@" + version.String()
	}

	parsed, err := parser.New(filename, r).Parse()
	if err != nil {
		return nil, nil, err
	}

	scope := lower.NewScope(e.PackagePrefix, pkg.WithPrefix(e.PackagePrefix))

	lowered, bag, err := lower.LowerFile(filename, parsed, scope)
	if err != nil {
		return nil, nil, err
	}

	if bag.HasErrors() {
		return nil, nil, fmt.Errorf("%s: %d lowering error(s), first: %s", filename, bag.Len(), bag.All()[0].Message)
	}

	return lowered, scope.Aliases, nil
}

// ProcessFile merges a lowered file's declarations into decls and
// registers every inner type into types, per spec.md §4.4. Duplicate
// qualified names across files produce a RegisteredTypeConflict.
func (e *Environment) ProcessFile(pkg ir.Package, file *lower.LoweredFile) error {
	for _, d := range file.Decls {
		key := d.DeclName().Localize()

		if _, exists := e.decls[key]; exists {
			return &RegisteredTypeConflict{Name: key}
		}

		e.decls[key] = d
		e.order = append(e.order, key)

		if err := ir.RegisterDecl(e.types, d, pkg.String()); err != nil {
			return err
		}
	}

	return nil
}

// Lookup strips the prefix already baked into name and returns the
// registration, or UnresolvedType if none exists.
func (e *Environment) Lookup(name ir.Localized) (ir.Registration, error) {
	reg, ok := e.types.Lookup(name)
	if !ok {
		return ir.Registration{}, &UnresolvedType{Name: name}
	}

	return reg, nil
}

// Decl returns the merged declaration registered under name.
func (e *Environment) Decl(name ir.Localized) (ir.Decl, bool) {
	d, ok := e.decls[name]
	return d, ok
}

// AllDecls returns every processed top-level declaration in file order.
func (e *Environment) AllDecls() []ir.Decl {
	out := make([]ir.Decl, 0, len(e.order))
	for _, key := range e.order {
		out = append(out, e.decls[key])
	}

	return out
}

// IsAssignableFrom implements spec.md §4.4's assignability rules used by
// default-value validation: numerics assign to same-kind wider types, any
// accepts everything, arrays/maps are covariant in their type arguments,
// and name-typed values require both target and source to resolve to the
// same registration.
func (e *Environment) IsAssignableFrom(target, source ir.Type) bool {
	if _, ok := target.(ir.AnyType); ok {
		return true
	}

	switch t := target.(type) {
	case ir.IntegerType:
		s, ok := source.(ir.IntegerType)
		return ok && integerWidthRank(s.Kind) <= integerWidthRank(t.Kind) && integerSigned(s.Kind) == integerSigned(t.Kind)
	case ir.FloatType:
		switch source.(type) {
		case ir.FloatType:
			return true
		}

		return false
	case ir.DoubleType:
		switch source.(type) {
		case ir.FloatType, ir.DoubleType:
			return true
		}

		return false
	case ir.ArrayType:
		s, ok := source.(ir.ArrayType)
		return ok && e.IsAssignableFrom(t.Inner, s.Inner)
	case ir.MapType:
		s, ok := source.(ir.MapType)
		return ok && e.IsAssignableFrom(t.Key, s.Key) && e.IsAssignableFrom(t.Value, s.Value)
	case ir.NameType:
		s, ok := source.(ir.NameType)
		if !ok {
			return false
		}

		return t.Name.Localize() == s.Name.Localize()
	default:
		return ir.TypeEqual(target, source)
	}
}

func integerWidthRank(k ir.IntegerKind) int {
	switch k {
	case ir.I32, ir.U32:
		return 32
	case ir.I64, ir.U64:
		return 64
	default:
		return 0
	}
}

func integerSigned(k ir.IntegerKind) bool {
	return k == ir.I32 || k == ir.I64
}
