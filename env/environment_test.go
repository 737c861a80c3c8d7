package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reproto/reproto/env"
	"github.com/reproto/reproto/ir"
	"github.com/reproto/reproto/lower"
)

func mustEnv(t *testing.T, resolver env.Resolver) *env.Environment {
	t.Helper()

	e, err := env.New(ir.Package{}, resolver, 0)
	require.NoError(t, err)

	return e
}

func TestImportUnversionedObject(t *testing.T) {
	mem := env.NewMemoryResolver()
	mem.Add(ir.ParsePackage("geo"), "", `
type Point {
	x: i32;
	y: i32;
}
`)

	e := mustEnv(t, mem)

	vp, err := e.Import(ir.RequiredPackage{Package: ir.ParsePackage("geo")})
	require.NoError(t, err)
	assert.Equal(t, "geo", vp.Package.String())

	reg, err := e.Lookup(ir.Name{Package: ir.ParsePackage("geo"), Path: []string{"Point"}}.Localize())
	require.NoError(t, err)
	assert.Equal(t, ir.KindType, reg.Kind)
}

func TestImportPicksGreatestSatisfyingVersion(t *testing.T) {
	mem := env.NewMemoryResolver()
	mem.Add(ir.ParsePackage("geo"), "1.0.0", `type Point { x: i32; }`)
	mem.Add(ir.ParsePackage("geo"), "1.5.0", `type Point { x: i32; y: i32; }`)
	mem.Add(ir.ParsePackage("geo"), "2.0.0", `type Point { x: i32; y: i32; z: i32; }`)

	e := mustEnv(t, mem)

	rng, err := ir.ParseRange("^1.0.0")
	require.NoError(t, err)

	vp, err := e.Import(ir.RequiredPackage{Package: ir.ParsePackage("geo"), Range: rng})
	require.NoError(t, err)
	assert.Equal(t, "1.5.0", vp.Version.String())
}

func TestImportNoSatisfyingVersionFails(t *testing.T) {
	mem := env.NewMemoryResolver()
	mem.Add(ir.ParsePackage("geo"), "1.0.0", `type Point { x: i32; }`)

	e := mustEnv(t, mem)

	rng, err := ir.ParseRange("^2.0.0")
	require.NoError(t, err)

	_, err = e.Import(ir.RequiredPackage{Package: ir.ParsePackage("geo"), Range: rng})
	assert.Error(t, err)
}

func TestImportRecursesThroughUseDecls(t *testing.T) {
	mem := env.NewMemoryResolver()
	mem.Add(ir.ParsePackage("geo"), "", `type Point { x: i32; y: i32; }`)
	mem.Add(ir.ParsePackage("shapes"), "", `
use geo;

type Circle {
	center: geo.Point;
	radius: double;
}
`)

	e := mustEnv(t, mem)

	_, err := e.Import(ir.RequiredPackage{Package: ir.ParsePackage("shapes")})
	require.NoError(t, err)

	assert.True(t, e.Types().Contains(ir.Name{Package: ir.ParsePackage("geo"), Path: []string{"Point"}}.Localize()),
		"expected geo.Point to be registered as a side effect of importing shapes")
}

func TestProcessFileRejectsCrossFileDuplicate(t *testing.T) {
	e := mustEnv(t, env.NewMemoryResolver())

	pkg := ir.ParsePackage("geo")
	name := ir.NewName(pkg, "Point")

	first := ir.NewTypeDecl(name, nil, nil, nil, nil, ir.NewAttributes(), ir.Span{})
	second := ir.NewTypeDecl(name, nil, nil, nil, nil, ir.NewAttributes(), ir.Span{})

	require.NoError(t, e.ProcessFile(pkg, &lower.LoweredFile{Package: pkg, Decls: []ir.Decl{first}}))

	err := e.ProcessFile(pkg, &lower.LoweredFile{Package: pkg, Decls: []ir.Decl{second}})
	require.Error(t, err)

	_, ok := err.(*env.RegisteredTypeConflict)
	assert.True(t, ok, "got %T, want *env.RegisteredTypeConflict", err)
}

func TestIsAssignableFromNumericWidening(t *testing.T) {
	e := mustEnv(t, env.NewMemoryResolver())

	assert.True(t, e.IsAssignableFrom(ir.IntegerType{Kind: ir.I64}, ir.IntegerType{Kind: ir.I32}),
		"expected i32 to be assignable to i64")
	assert.False(t, e.IsAssignableFrom(ir.IntegerType{Kind: ir.I32}, ir.IntegerType{Kind: ir.I64}),
		"expected i64 to not be assignable to i32")
	assert.False(t, e.IsAssignableFrom(ir.IntegerType{Kind: ir.U32}, ir.IntegerType{Kind: ir.I32}),
		"expected signed i32 to not be assignable to unsigned u32")
}

func TestIsAssignableFromAnyAcceptsEverything(t *testing.T) {
	e := mustEnv(t, env.NewMemoryResolver())

	assert.True(t, e.IsAssignableFrom(ir.AnyType{}, ir.StringType{}), "expected any to accept string")
}

func TestIsAssignableFromArraysCovariant(t *testing.T) {
	e := mustEnv(t, env.NewMemoryResolver())

	target := ir.ArrayType{Inner: ir.IntegerType{Kind: ir.I64}}
	source := ir.ArrayType{Inner: ir.IntegerType{Kind: ir.I32}}

	assert.True(t, e.IsAssignableFrom(target, source), "expected []i32 to be assignable to []i64")
}
