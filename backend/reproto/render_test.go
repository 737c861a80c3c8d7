package reproto_test

import (
	"strings"
	"testing"

	"github.com/reproto/reproto/backend/reproto"
	"github.com/reproto/reproto/ir"
)

func TestRenderFileRendersAType(t *testing.T) {
	pkg := ir.Package{}
	name := ir.NewName(pkg, "Point")

	fields := []ir.Field{
		{Identifier: "x", WireName: "x", Type: ir.IntegerType{Kind: ir.I32}, Required: true},
		{Identifier: "y", WireName: "y", Type: ir.IntegerType{Kind: ir.I32}, Required: false},
	}

	decl := ir.NewTypeDecl(name, fields, nil, nil, []string{"A point in space."}, ir.NewAttributes(), ir.Span{})

	out := reproto.RenderFile([]ir.Decl{decl})

	for _, want := range []string{"/// A point in space.", "type Point {", "x: i32;", "y?: i32;"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered output missing %q, got:\n%s", want, out)
		}
	}
}

func TestRenderEnum(t *testing.T) {
	pkg := ir.Package{}
	name := ir.NewName(pkg, "Suit")

	variants := []*ir.Variant{
		ir.NewVariant(ir.NewName(pkg, "Suit", "Hearts"), ir.StringValue{Value: "hearts"}, nil, ir.NewAttributes(), ir.Span{}),
		ir.NewVariant(ir.NewName(pkg, "Suit", "Spades"), ir.StringValue{Value: "spades"}, nil, ir.NewAttributes(), ir.Span{}),
	}

	decl := ir.NewEnumDecl(name, ir.EnumType{Kind: ir.EnumBaseString}, variants, nil, ir.NewAttributes(), ir.Span{})

	out := reproto.RenderFile([]ir.Decl{decl})

	for _, want := range []string{"enum Suit as string {", `Hearts = "hearts";`, `Spades = "spades";`} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered output missing %q, got:\n%s", want, out)
		}
	}
}

func TestRenderInterfaceWithTaggedStrategy(t *testing.T) {
	pkg := ir.Package{}
	name := ir.NewName(pkg, "Animal")

	sub := ir.NewSubType(ir.NewName(pkg, "Animal", "Dragon"), "", false, nil, nil, ir.NewAttributes(), ir.Span{})
	decl := ir.NewInterfaceDecl(name, nil, []*ir.SubType{sub}, ir.SubTypeStrategy{Kind: ir.StrategyTagged, Tag: "kind"}, nil, nil, nil, ir.NewAttributes(), ir.Span{})

	out := reproto.RenderFile([]ir.Decl{decl})

	for _, want := range []string{`#[type_info(strategy = "tagged", tag = "kind")]`, "interface Animal {", "Dragon {"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered output missing %q, got:\n%s", want, out)
		}
	}
}
