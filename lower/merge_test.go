package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reproto/reproto/ir"
)

func typeDeclWithFields(pkg ir.Package, name string, fields ...ir.Field) *ir.TypeDecl {
	return ir.NewTypeDecl(ir.NewName(pkg, name), fields, nil, nil, nil, ir.NewAttributes(), ir.Span{})
}

func TestMergeGroupSingleElementPassesThrough(t *testing.T) {
	decl := typeDeclWithFields(ir.Package{}, "Point")

	merged, err := mergeGroup([]ir.Decl{decl})
	require.NoError(t, err)
	assert.Same(t, decl, merged)
}

func TestMergeGroupUnionsTypeFieldsAcrossSameFileDecls(t *testing.T) {
	pkg := ir.Package{}

	first := typeDeclWithFields(pkg, "Point",
		ir.Field{Identifier: "x", WireName: "x", Type: ir.IntegerType{Kind: ir.I32}, Required: true})
	second := typeDeclWithFields(pkg, "Point",
		ir.Field{Identifier: "y", WireName: "y", Type: ir.IntegerType{Kind: ir.I32}, Required: true})

	merged, err := mergeGroup([]ir.Decl{first, second})
	require.NoError(t, err)

	td, ok := merged.(*ir.TypeDecl)
	require.True(t, ok, "merged is %T, want *ir.TypeDecl", merged)
	require.Len(t, td.Fields, 2)
	assert.Equal(t, "x", td.Fields[0].Identifier)
	assert.Equal(t, "y", td.Fields[1].Identifier)
}

func TestMergeGroupRejectsDuplicateFieldAcrossDecls(t *testing.T) {
	pkg := ir.Package{}

	first := typeDeclWithFields(pkg, "Point",
		ir.Field{Identifier: "x", WireName: "x", Type: ir.IntegerType{Kind: ir.I32}, Required: true})
	second := typeDeclWithFields(pkg, "Point",
		ir.Field{Identifier: "x", WireName: "x", Type: ir.StringType{}, Required: true})

	_, err := mergeGroup([]ir.Decl{first, second})
	assert.Error(t, err)
}

func TestMergeGroupRejectsMismatchedKinds(t *testing.T) {
	pkg := ir.Package{}

	typeDecl := typeDeclWithFields(pkg, "Point")
	tupleDecl := ir.NewTupleDecl(ir.NewName(pkg, "Point"), nil, nil, nil, nil, ir.NewAttributes(), ir.Span{})

	_, err := mergeGroup([]ir.Decl{typeDecl, tupleDecl})
	assert.Error(t, err)
}

func TestMergeGroupUnionsInterfaceSubTypesByName(t *testing.T) {
	pkg := ir.Package{}
	animalName := ir.NewName(pkg, "Animal")

	dragonA := ir.NewSubType(ir.NewName(pkg, "Animal", "Dragon"), "", false,
		[]ir.Field{{Identifier: "fire", WireName: "fire", Type: ir.BooleanType{}, Required: true}},
		nil, ir.NewAttributes(), ir.Span{})
	dragonB := ir.NewSubType(ir.NewName(pkg, "Animal", "Dragon"), "", false,
		[]ir.Field{{Identifier: "scales", WireName: "scales", Type: ir.BooleanType{}, Required: true}},
		nil, ir.NewAttributes(), ir.Span{})
	horse := ir.NewSubType(ir.NewName(pkg, "Animal", "Horse"), "", false, nil, nil, ir.NewAttributes(), ir.Span{})

	strategy := ir.SubTypeStrategy{Kind: ir.StrategyTagged, Tag: "kind"}

	first := ir.NewInterfaceDecl(animalName, nil, []*ir.SubType{dragonA, horse}, strategy, nil, nil, nil, ir.NewAttributes(), ir.Span{})
	second := ir.NewInterfaceDecl(animalName, nil, []*ir.SubType{dragonB}, strategy, nil, nil, nil, ir.NewAttributes(), ir.Span{})

	merged, err := mergeGroup([]ir.Decl{first, second})
	require.NoError(t, err)

	id, ok := merged.(*ir.InterfaceDecl)
	require.True(t, ok, "merged is %T, want *ir.InterfaceDecl", merged)
	require.Len(t, id.SubTypes, 2)

	dragon := id.SubTypes[0]
	assert.Equal(t, "Dragon", dragon.DeclName().Local())
	require.Len(t, dragon.Fields, 2, "Dragon's fields should union across both declarations")
}

func TestMergeGroupRejectsDuplicateEnumVariantValue(t *testing.T) {
	pkg := ir.Package{}
	enumName := ir.NewName(pkg, "Suit")

	v1 := ir.NewVariant(ir.NewName(pkg, "Suit", "Spades"), ir.StringValue{Value: "spades"}, nil, ir.NewAttributes(), ir.Span{})
	v2 := ir.NewVariant(ir.NewName(pkg, "Suit", "AlsoSpades"), ir.StringValue{Value: "spades"}, nil, ir.NewAttributes(), ir.Span{})

	first := ir.NewEnumDecl(enumName, ir.EnumType{Kind: ir.EnumBaseString}, []*ir.Variant{v1}, nil, ir.NewAttributes(), ir.Span{})
	second := ir.NewEnumDecl(enumName, ir.EnumType{Kind: ir.EnumBaseString}, []*ir.Variant{v2}, nil, ir.NewAttributes(), ir.Span{})

	_, err := mergeGroup([]ir.Decl{first, second})
	assert.Error(t, err)
}

func TestMergeGroupUnionsServiceEndpointsAndRejectsDuplicates(t *testing.T) {
	pkg := ir.Package{}
	svcName := ir.NewName(pkg, "Greeter")

	greet := ir.NewEndpoint(svcName.WithChild("greet"), nil, nil, false, nil, nil, nil, ir.NewAttributes(), ir.Span{})
	farewell := ir.NewEndpoint(svcName.WithChild("farewell"), nil, nil, false, nil, nil, nil, ir.NewAttributes(), ir.Span{})

	first := ir.NewServiceDecl(svcName, []*ir.Endpoint{greet}, nil, nil, ir.NewAttributes(), ir.Span{})
	second := ir.NewServiceDecl(svcName, []*ir.Endpoint{farewell}, nil, nil, ir.NewAttributes(), ir.Span{})

	merged, err := mergeGroup([]ir.Decl{first, second})
	require.NoError(t, err)

	sd, ok := merged.(*ir.ServiceDecl)
	require.True(t, ok, "merged is %T, want *ir.ServiceDecl", merged)
	assert.Len(t, sd.Endpoints, 2)

	dup := ir.NewServiceDecl(svcName, []*ir.Endpoint{greet}, nil, nil, ir.NewAttributes(), ir.Span{})
	_, err = mergeGroup([]ir.Decl{first, dup})
	assert.Error(t, err)
}
