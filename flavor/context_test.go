package flavor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reproto/reproto/flavor"
	"github.com/reproto/reproto/ir"
	"github.com/reproto/reproto/manifest"
)

func buildTable(decls []ir.Decl, file string) *ir.Table {
	t := ir.NewTable()

	for _, d := range decls {
		if err := ir.RegisterDecl(t, d, file); err != nil {
			panic(err)
		}
	}

	return t
}

func TestTranslateRootPassesThroughUnderIdentity(t *testing.T) {
	pkg := ir.Package{}
	name := ir.NewName(pkg, "Point")

	fields := []ir.Field{
		{Identifier: "x", WireName: "x", Type: ir.IntegerType{Kind: ir.I32}, Required: true},
	}

	decl := ir.NewTypeDecl(name, fields, nil, nil, nil, ir.NewAttributes(), ir.Span{})
	table := buildTable([]ir.Decl{decl}, "point.reproto")

	ctx := flavor.NewContext(pkg, flavor.IdentityTranslator{}, []ir.Decl{decl}, table)

	out, err := ctx.Translate([]ir.Decl{decl})
	require.NoError(t, err)
	require.Len(t, out, 1)

	got, ok := out[0].(*ir.TypeDecl)
	require.True(t, ok, "out[0] is %T, want *ir.TypeDecl", out[0])

	assert.Equal(t, "Point", got.DeclName().Local())
	assert.Len(t, got.Fields, 1)
}

func TestTranslateDropsUnreferencedDeclarations(t *testing.T) {
	pkg := ir.Package{}

	reachable := ir.NewTypeDecl(ir.NewName(pkg, "Point"),
		[]ir.Field{{Identifier: "x", WireName: "x", Type: ir.IntegerType{Kind: ir.I32}, Required: true}},
		nil, nil, nil, ir.NewAttributes(), ir.Span{})

	dead := ir.NewTypeDecl(ir.NewName(pkg, "Unused"), nil, nil, nil, nil, ir.NewAttributes(), ir.Span{})

	table := buildTable([]ir.Decl{reachable, dead}, "f.reproto")
	ctx := flavor.NewContext(pkg, flavor.IdentityTranslator{}, []ir.Decl{reachable, dead}, table)

	out, err := ctx.Translate([]ir.Decl{reachable})
	require.NoError(t, err)
	assert.Len(t, out, 1, "dead decl must not appear")
}

func TestTranslateFollowsNameTypeReference(t *testing.T) {
	pkg := ir.Package{}

	pointName := ir.NewName(pkg, "Point")
	point := ir.NewTypeDecl(pointName,
		[]ir.Field{{Identifier: "x", WireName: "x", Type: ir.IntegerType{Kind: ir.I32}, Required: true}},
		nil, nil, nil, ir.NewAttributes(), ir.Span{})

	path := ir.NewTypeDecl(ir.NewName(pkg, "Path"),
		[]ir.Field{{Identifier: "start", WireName: "start", Type: ir.NameType{Name: pointName}, Required: true}},
		nil, nil, nil, ir.NewAttributes(), ir.Span{})

	table := buildTable([]ir.Decl{point, path}, "f.reproto")
	ctx := flavor.NewContext(pkg, flavor.IdentityTranslator{}, []ir.Decl{point, path}, table)

	out, err := ctx.Translate([]ir.Decl{path})
	require.NoError(t, err)

	translated, ok := out[0].(*ir.TypeDecl)
	require.True(t, ok, "out[0] is %T", out[0])

	nt, ok := translated.Fields[0].Type.(ir.NameType)
	require.True(t, ok, "field type is %T, want ir.NameType", translated.Fields[0].Type)

	assert.Equal(t, pointName.Localize(), nt.Name.Localize())
}

func TestTranslateFailsOnUnresolvedReference(t *testing.T) {
	pkg := ir.Package{}

	missing := ir.NewName(pkg, "Missing")
	path := ir.NewTypeDecl(ir.NewName(pkg, "Path"),
		[]ir.Field{{Identifier: "start", WireName: "start", Type: ir.NameType{Name: missing}, Required: true}},
		nil, nil, nil, ir.NewAttributes(), ir.Span{})

	table := buildTable([]ir.Decl{path}, "f.reproto")
	ctx := flavor.NewContext(pkg, flavor.IdentityTranslator{}, []ir.Decl{path}, table)

	_, err := ctx.Translate([]ir.Decl{path})
	assert.Error(t, err, "expected an UnresolvedDecl error")
}

func TestRenamingTranslatorConvertsFieldAndDeclIdentifiers(t *testing.T) {
	pkg := ir.Package{}

	decl := ir.NewTypeDecl(ir.NewName(pkg, "max_width"),
		[]ir.Field{{Identifier: "box_size", WireName: "box_size", Type: ir.IntegerType{Kind: ir.I32}, Required: true}},
		nil, nil, nil, ir.NewAttributes(), ir.Span{})

	table := buildTable([]ir.Decl{decl}, "f.reproto")

	translator := flavor.RenamingTranslator{
		FlavorTranslator: flavor.IdentityTranslator{},
		Source:           manifest.SourceSnake,
		Target:           manifest.UpperCamel,
	}

	ctx := flavor.NewContext(pkg, translator, []ir.Decl{decl}, table)

	out, err := ctx.Translate([]ir.Decl{decl})
	require.NoError(t, err)

	got := out[0].(*ir.TypeDecl)

	assert.Equal(t, "MaxWidth", got.DeclName().Local())
	assert.Equal(t, "BoxSize", got.Fields[0].Identifier)
	assert.Equal(t, "box_size", got.Fields[0].WireName, "wire name must stay unchanged")
}

func TestNoDatetimeTranslatorFailsOnDatetimeField(t *testing.T) {
	pkg := ir.Package{}

	decl := ir.NewTypeDecl(ir.NewName(pkg, "Event"),
		[]ir.Field{{Identifier: "at", WireName: "at", Type: ir.DatetimeType{}, Required: true}},
		nil, nil, nil, ir.NewAttributes(), ir.Span{})

	table := buildTable([]ir.Decl{decl}, "f.reproto")

	translator := flavor.NoDatetimeTranslator{FlavorTranslator: flavor.IdentityTranslator{}}
	ctx := flavor.NewContext(pkg, translator, []ir.Decl{decl}, table)

	_, err := ctx.Translate([]ir.Decl{decl})
	assert.ErrorIs(t, err, flavor.ErrNoDatetime)
}

func TestTranslateInterfaceSubTypes(t *testing.T) {
	pkg := ir.Package{}

	animalName := ir.NewName(pkg, "Animal")
	dragon := ir.NewSubType(ir.NewName(pkg, "Animal", "Dragon"), "", false, nil, nil, ir.NewAttributes(), ir.Span{})

	iface := ir.NewInterfaceDecl(animalName, nil, []*ir.SubType{dragon},
		ir.SubTypeStrategy{Kind: ir.StrategyTagged, Tag: "kind"}, nil, nil, nil, ir.NewAttributes(), ir.Span{})

	table := buildTable([]ir.Decl{iface}, "f.reproto")
	ctx := flavor.NewContext(pkg, flavor.IdentityTranslator{}, []ir.Decl{iface}, table)

	out, err := ctx.Translate([]ir.Decl{iface})
	require.NoError(t, err)

	got := out[0].(*ir.InterfaceDecl)

	require.Len(t, got.SubTypes, 1)
	assert.Equal(t, "Dragon", got.SubTypes[0].DeclName().Local())
}
