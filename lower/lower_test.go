package lower_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reproto/reproto/diagnostics"
	"github.com/reproto/reproto/ir"
	"github.com/reproto/reproto/lower"
	"github.com/reproto/reproto/parser"
)

func lowerSource(t *testing.T, src string) (*lower.LoweredFile, *diagnostics.Bag) {
	t.Helper()

	file, err := parser.New("test.reproto", strings.NewReader(src)).Parse()
	require.NoError(t, err, "parse")

	scope := lower.NewScope(ir.Package{}, ir.Package{})

	lf, bag, err := lower.LowerFile("test.reproto", file, scope)
	require.NoError(t, err, "lower")

	return lf, bag
}

func TestLowerFileRecordsVersionGateAndFeatures(t *testing.T) {
	lf, bag := lowerSource(t, `
#![reproto(version="^1.0.0")]
#![feature(strict_reserved, future_proof)]

type Point {
	x: i32;
	y: i32;
}
`)

	require.False(t, bag.HasErrors(), "diagnostics: %v", bag.All())
	assert.True(t, lf.HasVersionGate)
	assert.True(t, lf.Features["strict_reserved"])
	assert.True(t, lf.Features["future_proof"])
	assert.Len(t, lf.Decls, 1)
}

func TestLowerFileLowersArrayAndMapTypes(t *testing.T) {
	lf, bag := lowerSource(t, `
type Roster {
	names: [string];
	scores: {string: i32};
}
`)

	require.False(t, bag.HasErrors(), "diagnostics: %v", bag.All())
	require.Len(t, lf.Decls, 1)

	td, ok := lf.Decls[0].(*ir.TypeDecl)
	require.True(t, ok, "decl is %T, want *ir.TypeDecl", lf.Decls[0])
	require.Len(t, td.Fields, 2)

	namesType, ok := td.Fields[0].Type.(ir.ArrayType)
	require.True(t, ok, "names field type is %T, want ir.ArrayType", td.Fields[0].Type)
	assert.IsType(t, ir.StringType{}, namesType.Inner)

	scoresType, ok := td.Fields[1].Type.(ir.MapType)
	require.True(t, ok, "scores field type is %T, want ir.MapType", td.Fields[1].Type)
	assert.IsType(t, ir.StringType{}, scoresType.Key)
	assert.IsType(t, ir.IntegerType{}, scoresType.Value)
}

func TestLowerFileConsumesReservedAndTypeInfoAttributes(t *testing.T) {
	lf, bag := lowerSource(t, `
#[type_info(strategy="tagged", tag="kind")]
#[reserved(legacy_id, old_weight)]
interface Animal {
	name: string;

	type Dragon {
		fire_breathing: boolean;
	}

	type Horse {
		legs: u32;
	}
}
`)

	require.False(t, bag.HasErrors(), "diagnostics: %v", bag.All())
	require.Len(t, lf.Decls, 1)

	id, ok := lf.Decls[0].(*ir.InterfaceDecl)
	require.True(t, ok, "decl is %T, want *ir.InterfaceDecl", lf.Decls[0])
	assert.Equal(t, ir.StrategyTagged, id.Strategy.Kind)
	assert.Equal(t, "kind", id.Strategy.Tag)
	assert.Equal(t, []string{"legacy_id", "old_weight"}, id.Reserved)
	require.Len(t, id.SubTypes, 2)
	assert.Equal(t, "Dragon", id.SubTypes[0].DeclName().Local())
	assert.Equal(t, "Horse", id.SubTypes[1].DeclName().Local())
}

func TestLowerFileBindsUnusedHTTPArgumentAsRequest(t *testing.T) {
	lf, bag := lowerSource(t, `
service Greeter {
	#[http(path="/greet/{name}", method="POST")]
	greet(name: string, loud: boolean) -> string;
}
`)

	require.False(t, bag.HasErrors(), "diagnostics: %v", bag.All())
	require.Len(t, lf.Decls, 1)

	sd, ok := lf.Decls[0].(*ir.ServiceDecl)
	require.True(t, ok, "decl is %T, want *ir.ServiceDecl", lf.Decls[0])
	require.Len(t, sd.Endpoints, 1)

	ep := sd.Endpoints[0]
	require.NotNil(t, ep.HTTP)
	require.NotNil(t, ep.Request, "endpoint should bind its unconsumed argument as the request body")
	assert.IsType(t, ir.BooleanType{}, ep.Request)
}

func TestLowerFileLeavesRequestNilWhenEveryArgumentIsInPath(t *testing.T) {
	lf, bag := lowerSource(t, `
service Greeter {
	#[http(path="/greet/{name}", method="GET")]
	greet(name: string) -> stream string;
}
`)

	require.False(t, bag.HasErrors(), "diagnostics: %v", bag.All())
	require.Len(t, lf.Decls, 1)

	sd := lf.Decls[0].(*ir.ServiceDecl)
	ep := sd.Endpoints[0]
	assert.Nil(t, ep.Request)
}

func TestLowerFileRejectsMoreThanOneUnusedHTTPArgument(t *testing.T) {
	lf, bag := lowerSource(t, `
service Greeter {
	#[http(path="/greet/{name}", method="POST")]
	greet(name: string, loud: boolean, whisper: boolean) -> string;
}
`)

	require.True(t, bag.HasErrors(), "expected a diagnostic rejecting the ambiguous request body")
	assert.Empty(t, lf.Decls, "the offending service decl should be dropped, not partially lowered")
}

func TestLowerFileWarnsOnUnknownAttribute(t *testing.T) {
	_, bag := lowerSource(t, `
#[made_up_attribute(foo="bar")]
type Point {
	x: i32;
}
`)

	require.Len(t, bag.All(), 1)
	assert.Equal(t, "unknown-attribute", bag.All()[0].Code)
}

func TestLowerFileMergesSameFileDeclarations(t *testing.T) {
	lf, bag := lowerSource(t, `
type Point {
	x: i32;
}

type Point {
	y: i32;
}
`)

	require.False(t, bag.HasErrors(), "diagnostics: %v", bag.All())
	require.Len(t, lf.Decls, 1)

	td := lf.Decls[0].(*ir.TypeDecl)
	require.Len(t, td.Fields, 2)
	assert.Equal(t, "x", td.Fields[0].Identifier)
	assert.Equal(t, "y", td.Fields[1].Identifier)
}
