package semck_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reproto/reproto/ir"
	"github.com/reproto/reproto/semck"
)

func typeDecl(name string, fields ...ir.Field) ir.Decl {
	return ir.NewTypeDecl(ir.NewName(ir.Package{}, name), fields, nil, nil, nil, ir.NewAttributes(), ir.Span{})
}

func field(ident string, required bool, ty ir.Type) ir.Field {
	return ir.Field{Identifier: ident, WireName: ident, Type: ty, Required: required}
}

func serviceDecl(name string, endpoints ...*ir.Endpoint) ir.Decl {
	return ir.NewServiceDecl(ir.NewName(ir.Package{}, name), endpoints, nil, nil, ir.NewAttributes(), ir.Span{})
}

func endpoint(name string, args []ir.Argument, response ir.Type) *ir.Endpoint {
	return ir.NewEndpoint(ir.NewName(ir.Package{}, name), args, response, false, nil, nil, nil, ir.NewAttributes(), ir.Span{})
}

func arg(ident string, ty ir.Type) ir.Argument {
	return ir.Argument{Identifier: ident, Type: ty}
}

func mustVersion(t *testing.T, s string) ir.Version {
	t.Helper()

	v, err := ir.ParseVersion(s)
	require.NoError(t, err, "ParseVersion(%q)", s)

	return v
}

func TestCheckMinorAllowsAddingOptionalField(t *testing.T) {
	from := []ir.Decl{typeDecl("Point", field("x", true, ir.IntegerType{Kind: ir.I32}))}
	to := []ir.Decl{typeDecl("Point",
		field("x", true, ir.IntegerType{Kind: ir.I32}),
		field("y", false, ir.IntegerType{Kind: ir.I32}),
	)}

	violations, err := semck.Check(mustVersion(t, "1.0.0"), mustVersion(t, "1.1.0"), from, to)
	require.NoError(t, err)
	require.Empty(t, violations)
}

func TestCheckMinorRejectsAddingRequiredField(t *testing.T) {
	from := []ir.Decl{typeDecl("Point", field("x", true, ir.IntegerType{Kind: ir.I32}))}
	to := []ir.Decl{typeDecl("Point",
		field("x", true, ir.IntegerType{Kind: ir.I32}),
		field("y", true, ir.IntegerType{Kind: ir.I32}),
	)}

	violations, err := semck.Check(mustVersion(t, "1.0.0"), mustVersion(t, "1.1.0"), from, to)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	require.Equal(t, semck.KindAddRequiredField, violations[0].Kind)
}

func TestCheckMinorRejectsFieldRemoval(t *testing.T) {
	from := []ir.Decl{typeDecl("Point",
		field("x", true, ir.IntegerType{Kind: ir.I32}),
		field("y", true, ir.IntegerType{Kind: ir.I32}),
	)}
	to := []ir.Decl{typeDecl("Point", field("x", true, ir.IntegerType{Kind: ir.I32}))}

	violations, err := semck.Check(mustVersion(t, "1.0.0"), mustVersion(t, "1.1.0"), from, to)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	require.Equal(t, semck.KindRemoveField, violations[0].Kind)
}

func TestCheckPatchRejectsAnyFieldAddition(t *testing.T) {
	from := []ir.Decl{typeDecl("Point", field("x", true, ir.IntegerType{Kind: ir.I32}))}
	to := []ir.Decl{typeDecl("Point",
		field("x", true, ir.IntegerType{Kind: ir.I32}),
		field("y", false, ir.IntegerType{Kind: ir.I32}),
	)}

	violations, err := semck.Check(mustVersion(t, "1.0.0"), mustVersion(t, "1.0.1"), from, to)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	require.Equal(t, semck.KindAddField, violations[0].Kind)
}

func TestCheckPatchRejectsModifierChange(t *testing.T) {
	from := []ir.Decl{typeDecl("Point", field("x", false, ir.IntegerType{Kind: ir.I32}))}
	to := []ir.Decl{typeDecl("Point", field("x", true, ir.IntegerType{Kind: ir.I32}))}

	violations, err := semck.Check(mustVersion(t, "1.0.0"), mustVersion(t, "1.0.1"), from, to)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	require.Equal(t, semck.KindFieldModifierChange, violations[0].Kind)
}

func TestCheckRejectsFieldTypeChange(t *testing.T) {
	from := []ir.Decl{typeDecl("Point", field("x", true, ir.IntegerType{Kind: ir.I32}))}
	to := []ir.Decl{typeDecl("Point", field("x", true, ir.StringType{}))}

	violations, err := semck.Check(mustVersion(t, "1.0.0"), mustVersion(t, "1.1.0"), from, to)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	require.Equal(t, semck.KindFieldTypeChange, violations[0].Kind)
}

func TestCheckMinorRejectsEndpointRequestArgumentTypeChange(t *testing.T) {
	from := []ir.Decl{serviceDecl("Greeter",
		endpoint("Greet", []ir.Argument{arg("name", ir.StringType{})}, nil),
	)}
	to := []ir.Decl{serviceDecl("Greeter",
		endpoint("Greet", []ir.Argument{arg("name", ir.IntegerType{Kind: ir.I32})}, nil),
	)}

	violations, err := semck.Check(mustVersion(t, "1.0.0"), mustVersion(t, "1.1.0"), from, to)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	require.Equal(t, semck.KindEndpointRequestChange, violations[0].Kind)
}

func TestCheckMinorRejectsEndpointRequestArgumentAddition(t *testing.T) {
	from := []ir.Decl{serviceDecl("Greeter",
		endpoint("Greet", []ir.Argument{arg("name", ir.StringType{})}, nil),
	)}
	to := []ir.Decl{serviceDecl("Greeter",
		endpoint("Greet", []ir.Argument{arg("name", ir.StringType{}), arg("loud", ir.BooleanType{})}, nil),
	)}

	violations, err := semck.Check(mustVersion(t, "1.0.0"), mustVersion(t, "1.1.0"), from, to)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	require.Equal(t, semck.KindEndpointRequestChange, violations[0].Kind)
}

func TestCheckMajorBumpIsUnconstrained(t *testing.T) {
	from := []ir.Decl{typeDecl("Point", field("x", true, ir.IntegerType{Kind: ir.I32}))}
	to := []ir.Decl{}

	violations, err := semck.Check(mustVersion(t, "1.0.0"), mustVersion(t, "2.0.0"), from, to)
	require.NoError(t, err)
	require.Empty(t, violations)
}
