package reproto_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reproto/reproto/backend/reproto"
	"github.com/reproto/reproto/ir"
	"github.com/reproto/reproto/lower"
	"github.com/reproto/reproto/parser"
)

// fieldShape is a Span/Attributes-free projection of ir.Field, letting
// go-cmp.Diff compare two field lists for the property spec.md §8 actually
// promises — shape equivalence, not span-for-span identity (re-parsed
// source always carries fresh spans).
type fieldShape struct {
	Identifier string
	Required   bool
	Type       string
}

type declShape struct {
	Name   string
	Fields []fieldShape
}

func shapeOf(decls []ir.Decl) []declShape {
	out := make([]declShape, 0, len(decls))

	for _, d := range decls {
		var fields []ir.Field

		switch v := d.(type) {
		case *ir.TypeDecl:
			fields = v.Fields
		case *ir.TupleDecl:
			fields = v.Fields
		}

		fs := make([]fieldShape, 0, len(fields))
		for _, f := range fields {
			fs = append(fs, fieldShape{Identifier: f.Identifier, Required: f.Required, Type: typeShape(f.Type)})
		}

		out = append(out, declShape{Name: d.DeclName().Local(), Fields: fs})
	}

	return out
}

func typeShape(t ir.Type) string {
	switch v := t.(type) {
	case ir.IntegerType:
		return string(v.Kind)
	case ir.StringType:
		return "string"
	case ir.BooleanType:
		return "boolean"
	default:
		return "?"
	}
}

// TestRoundTripThroughParseAndLower exercises spec.md §8's round-trip
// property end to end: an IR declaration rendered to reproto source text
// by this back end must re-parse and re-lower into a structurally
// equivalent declaration, modulo spans and comments.
func TestRoundTripThroughParseAndLower(t *testing.T) {
	pkg := ir.Package{}
	name := ir.NewName(pkg, "Point")

	fields := []ir.Field{
		{Identifier: "x", WireName: "x", Type: ir.IntegerType{Kind: ir.I32}, Required: true},
		{Identifier: "y", WireName: "y", Type: ir.IntegerType{Kind: ir.I32}, Required: false},
		{Identifier: "label", WireName: "label", Type: ir.StringType{}, Required: true},
	}

	original := []ir.Decl{ir.NewTypeDecl(name, fields, nil, nil, nil, ir.NewAttributes(), ir.Span{})}

	rendered := reproto.RenderFile(original)

	p := parser.New("point.reproto", strings.NewReader(rendered))

	file, err := p.Parse()
	if err != nil {
		t.Fatalf("re-parsing rendered source: %v\n%s", err, rendered)
	}

	scope := lower.NewScope(ir.Package{}, ir.Package{})

	lowered, bag, err := lower.LowerFile("point.reproto", file, scope)
	if err != nil {
		t.Fatalf("re-lowering rendered source: %v", err)
	}

	if bag.HasErrors() {
		t.Fatalf("re-lowering produced diagnostics: %v", bag.All())
	}

	want := shapeOf(original)
	got := shapeOf(lowered.Decls)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round-trip shape mismatch (-want +got):\n%s\nrendered:\n%s", diff, rendered)
	}
}
