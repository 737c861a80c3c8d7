package parser

import (
	"strings"
	"testing"

	"github.com/reproto/reproto/ast"
)

func parseString(t *testing.T, src string) *ast.File {
	t.Helper()

	f, err := New("test.reproto", strings.NewReader(src)).Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	return f
}

func TestParseSimpleType(t *testing.T) {
	f := parseString(t, `
type Foo {
	name: string;
	age?: u32;
}
`)

	if len(f.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(f.Decls))
	}

	td, ok := f.Decls[0].(*ast.TypeDecl)
	if !ok {
		t.Fatalf("expected *ast.TypeDecl, got %T", f.Decls[0])
	}

	if td.Identifier != "Foo" {
		t.Fatalf("expected Foo, got %s", td.Identifier)
	}

	if len(td.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(td.Fields))
	}

	if td.Fields[1].Modifier != ast.ModifierOptional {
		t.Fatalf("expected age to be optional")
	}
}

func TestParseUseDecl(t *testing.T) {
	f := parseString(t, `use foo.bar "^1.0" as fb;`)

	if len(f.Uses) != 1 {
		t.Fatalf("expected 1 use, got %d", len(f.Uses))
	}

	u := f.Uses[0]

	if strings.Join(u.Package, ".") != "foo.bar" {
		t.Fatalf("unexpected package: %v", u.Package)
	}

	if !u.HasRange || u.Range != "^1.0" {
		t.Fatalf("unexpected range: %+v", u)
	}

	if !u.HasAlias || u.Alias != "fb" {
		t.Fatalf("unexpected alias: %+v", u)
	}
}

func TestParseInterfaceWithSubTypes(t *testing.T) {
	f := parseString(t, `
#[type_info(strategy="tagged", tag="type")]
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

	iface, ok := f.Decls[0].(*ast.InterfaceDecl)
	if !ok {
		t.Fatalf("expected *ast.InterfaceDecl, got %T", f.Decls[0])
	}

	if len(iface.SubTypes) != 2 {
		t.Fatalf("expected 2 sub-types, got %d", len(iface.SubTypes))
	}

	if iface.SubTypes[0].Identifier != "Dragon" || iface.SubTypes[1].Identifier != "Horse" {
		t.Fatalf("unexpected sub-type order: %+v", iface.SubTypes)
	}

	if len(iface.Attributes) != 1 || iface.Attributes[0].Name != "type_info" {
		t.Fatalf("unexpected attributes: %+v", iface.Attributes)
	}
}

func TestParseEnum(t *testing.T) {
	f := parseString(t, `
enum Suit as string {
	Spades = "spades";
	Hearts = "hearts";
}
`)

	e, ok := f.Decls[0].(*ast.EnumDecl)
	if !ok {
		t.Fatalf("expected *ast.EnumDecl, got %T", f.Decls[0])
	}

	if e.Base == nil || e.Base.Name != "string" {
		t.Fatalf("expected string base, got %+v", e.Base)
	}

	if len(e.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(e.Variants))
	}
}

func TestParseServiceEndpoint(t *testing.T) {
	f := parseString(t, `
service Greeter {
	#[http(path="/greet/{name}", method="GET")]
	greet(name: string) -> stream string;
}
`)

	svc, ok := f.Decls[0].(*ast.ServiceDecl)
	if !ok {
		t.Fatalf("expected *ast.ServiceDecl, got %T", f.Decls[0])
	}

	if len(svc.Endpoints) != 1 {
		t.Fatalf("expected 1 endpoint, got %d", len(svc.Endpoints))
	}

	ep := svc.Endpoints[0]

	if ep.Identifier != "greet" || !ep.Streaming {
		t.Fatalf("unexpected endpoint: %+v", ep)
	}

	if len(ep.Attributes) != 1 || ep.Attributes[0].Name != "http" {
		t.Fatalf("unexpected attributes: %+v", ep.Attributes)
	}
}
