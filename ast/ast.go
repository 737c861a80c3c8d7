// Package ast holds the borrowed parse tree the parser package produces
// directly from a token.Lexer's token stream: one node shape per
// declaration kind, field, endpoint, and attribute named in spec.md §4.2.
// Nothing here is resolved against an environment; that is the lowerer's
// job (package lower).
package ast

import (
	"github.com/reproto/reproto/ir"
	"github.com/reproto/reproto/token"
)

// File is the top-level parse result for one source file: an optional
// file-level doc comment, its use-decls, and its top-level declarations.
type File struct {
	PackageDoc []string
	Attributes []*Attribute // file-scoped `#![...]` attributes
	Uses       []*UseDecl
	Decls      []Decl
	Span       token.Position
}

// UseDecl is `use package.path "range"? as alias?;`.
type UseDecl struct {
	Package  []string
	Range    string
	HasRange bool
	Alias    string
	HasAlias bool
	Span     token.Position
}

// Modifier is a field's required/optional marker.
type Modifier int

const (
	ModifierRequired Modifier = iota
	ModifierOptional
)

// TypeExpr is the surface syntax for a type reference, before the lowerer
// resolves NameRef against the environment and folds format/validate
// attributes into ir.StringType/BytesType/DatetimeType.
type TypeExpr interface {
	isTypeExpr()
}

type (
	ScalarType struct {
		Name string // "double", "float", "boolean", "string", "bytes", "datetime", "any", "i32", "i64", "u32", "u64"
		Span token.Position
	}
	ArrayTypeExpr struct {
		Inner TypeExpr
		Span  token.Position
	}
	MapTypeExpr struct {
		Key, Value TypeExpr
		Span       token.Position
	}
	NameRef struct {
		Path []string
		Span token.Position
	}
)

func (*ScalarType) isTypeExpr()    {}
func (*ArrayTypeExpr) isTypeExpr() {}
func (*MapTypeExpr) isTypeExpr()   {}
func (*NameRef) isTypeExpr()       {}

// Literal is a constant value written in source: an enum variant's value,
// a field's default, or an attribute argument.
type Literal interface {
	isLiteral()
}

type (
	StringLit struct {
		Value string
		Span  token.Position
	}
	NumberLit struct {
		Value ir.Number
		Span  token.Position
	}
	BoolLit struct {
		Value bool
		Span  token.Position
	}
	IdentLit struct {
		Value string
		Span  token.Position
	}
	ArrayLit struct {
		Values []Literal
		Span   token.Position
	}
)

func (*StringLit) isLiteral() {}
func (*NumberLit) isLiteral() {}
func (*BoolLit) isLiteral()   {}
func (*IdentLit) isLiteral()  {}
func (*ArrayLit) isLiteral()  {}

// Attribute is one `#[name(...)]` or `#![name(...)]` block. File is true
// for the `#!` bang form, which only appears at the head of a file.
type Attribute struct {
	File  bool
	Name  string
	Words []string
	Named map[string]Literal
	Span  token.Position
}

// Field is `identifier modifier : type (as "wire")? (= default)? ;`.
type Field struct {
	Identifier string
	Modifier   Modifier
	Type       TypeExpr
	WireAs     string
	HasWireAs  bool
	Default    Literal
	Comment    []string
	Attributes []*Attribute
	Span       token.Position
}

// Arg is one endpoint argument: `name: type`.
type Arg struct {
	Identifier string
	Type       TypeExpr
	Span       token.Position
}

// Endpoint is `identifier(arg, ...) -> stream? response?;`.
type Endpoint struct {
	Identifier string
	Args       []Arg
	Response   TypeExpr // nil if none
	Streaming  bool
	Comment    []string
	Attributes []*Attribute
	Span       token.Position
}

// Decl is implemented by the five top-level (and nestable) declaration
// node kinds.
type Decl interface {
	isDecl()
	DeclSpan() token.Position
}

type TypeDecl struct {
	Identifier string
	Fields     []*Field
	Inner      []Decl
	Comment    []string
	Attributes []*Attribute
	Span       token.Position
}

type TupleDecl struct {
	Identifier string
	Fields     []*Field
	Inner      []Decl
	Comment    []string
	Attributes []*Attribute
	Span       token.Position
}

type SubType struct {
	Identifier string
	WireName   string
	HasWireAs  bool
	Fields     []*Field
	Comment    []string
	Attributes []*Attribute
	Span       token.Position
}

type InterfaceDecl struct {
	Identifier string
	Fields     []*Field
	SubTypes   []*SubType
	Inner      []Decl
	Comment    []string
	Attributes []*Attribute
	Span       token.Position
}

type Variant struct {
	Identifier string
	Value      Literal // nil if the variant has no explicit value
	Comment    []string
	Attributes []*Attribute
	Span       token.Position
}

type EnumDecl struct {
	Identifier string
	Base       *ScalarType // nil defaults to string, resolved by the lowerer
	Variants   []*Variant
	Comment    []string
	Attributes []*Attribute
	Span       token.Position
}

type ServiceDecl struct {
	Identifier string
	Endpoints  []*Endpoint
	Inner      []Decl
	Comment    []string
	Attributes []*Attribute
	Span       token.Position
}

func (*TypeDecl) isDecl()      {}
func (*TupleDecl) isDecl()     {}
func (*InterfaceDecl) isDecl() {}
func (*EnumDecl) isDecl()      {}
func (*ServiceDecl) isDecl()   {}

func (d *TypeDecl) DeclSpan() token.Position      { return d.Span }
func (d *TupleDecl) DeclSpan() token.Position     { return d.Span }
func (d *InterfaceDecl) DeclSpan() token.Position { return d.Span }
func (d *EnumDecl) DeclSpan() token.Position      { return d.Span }
func (d *ServiceDecl) DeclSpan() token.Position   { return d.Span }
