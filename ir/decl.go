package ir

// DeclKind identifies which of the five declaration shapes (spec.md §3) a
// Decl is. The registration table (Table) stores it alongside each entry.
type DeclKind int

const (
	KindType DeclKind = iota
	KindTuple
	KindInterface
	KindEnum
	KindService
	// KindSubType and KindEnumVariant are registered too (spec.md §3:
	// "Every named declaration — including nested ones and enum variants
	// — is registered"), even though they are not top-level Decls.
	KindSubType
	KindEnumVariant
)

func (k DeclKind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindTuple:
		return "tuple"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindService:
		return "service"
	case KindSubType:
		return "sub-type"
	case KindEnumVariant:
		return "enum-variant"
	default:
		return "unknown"
	}
}

// Decl is implemented by every one of the five declaration kinds. Each has
// a name, identifier, comment block, attribute set, and (for the four
// nestable kinds: type, tuple, interface, service) a list of inner
// declarations, per spec.md §3.
type Decl interface {
	DeclName() Name
	DeclKind() DeclKind
	DeclComment() []string
	DeclAttributes() *Attributes
	DeclSpan() Span
	InnerDecls() []Decl
}

// base is embedded by every concrete Decl.
type base struct {
	Name_       Name
	Identifier  string
	Comment     []string
	Attributes_ *Attributes
	Span_       Span
}

func (b *base) DeclName() Name              { return b.Name_ }
func (b *base) DeclComment() []string       { return b.Comment }
func (b *base) DeclAttributes() *Attributes { return b.Attributes_ }
func (b *base) DeclSpan() Span              { return b.Span_ }

func newBase(name Name, comment []string, attrs *Attributes, span Span) base {
	return base{Name_: name, Identifier: name.Local(), Comment: comment, Attributes_: attrs, Span_: span}
}

// TypeDecl is an ordered set of fields serialized as a JSON object.
type TypeDecl struct {
	base
	Fields   []Field
	Inner    []Decl
	Reserved []string
}

func (d *TypeDecl) DeclKind() DeclKind  { return KindType }
func (d *TypeDecl) InnerDecls() []Decl  { return d.Inner }

// TupleDecl is a positional sequence of fields serialized as a JSON array.
type TupleDecl struct {
	base
	Fields   []Field
	Inner    []Decl
	Reserved []string
}

func (d *TupleDecl) DeclKind() DeclKind { return KindTuple }
func (d *TupleDecl) InnerDecls() []Decl { return d.Inner }

// SubTypeStrategyKind distinguishes the two dispatch mechanisms an
// interface may use, per spec.md §3.
type SubTypeStrategyKind int

const (
	StrategyTagged SubTypeStrategyKind = iota
	StrategyUntagged
)

// SubTypeStrategy is tagged{tag} or untagged.
type SubTypeStrategy struct {
	Kind SubTypeStrategyKind
	Tag  string // only meaningful when Kind == StrategyTagged
}

// SubType is one of an interface's named variants: its own fields plus an
// optional on-the-wire name (spec.md §3).
type SubType struct {
	base
	WireName    string
	HasWireName bool
	Fields      []Field
}

func (s *SubType) DeclKind() DeclKind { return KindSubType }
func (s *SubType) InnerDecls() []Decl { return nil }

// InterfaceDecl has fields shared by every sub-type, a set of named
// sub-types, and a sub-type strategy (spec.md §3).
type InterfaceDecl struct {
	base
	Fields   []Field // shared by every sub-type
	SubTypes []*SubType
	Strategy SubTypeStrategy
	Inner    []Decl
	Reserved []string
}

func (d *InterfaceDecl) DeclKind() DeclKind { return KindInterface }
func (d *InterfaceDecl) InnerDecls() []Decl { return d.Inner }

// Variant is one member of an enum: a typed base value, unique within the
// enum and assignable to the enum's base type (spec.md §3 invariant 6).
type Variant struct {
	base
	Value Value
}

func (v *Variant) DeclKind() DeclKind { return KindEnumVariant }
func (v *Variant) InnerDecls() []Decl { return nil }

// EnumDecl has a typed base (string or number) and a set of variants.
// Enums may not nest other declarations (spec.md §4.3).
type EnumDecl struct {
	base
	Base     EnumType
	Variants []*Variant
}

func (d *EnumDecl) DeclKind() DeclKind { return KindEnum }
func (d *EnumDecl) InnerDecls() []Decl { return nil }

// Argument is one endpoint parameter.
type Argument struct {
	Identifier string
	Type       Type
	Span       Span
}

// HTTPBinding is the endpoint's optional HTTP binding: method, path
// template, and accept media type (spec.md §3, §4.5).
type HTTPBinding struct {
	Method  string
	Path    *PathTemplate
	Accept  string
	Span    Span
}

// Endpoint has arguments, an optional response channel (with a streaming
// flag), and an optional HTTP binding (spec.md §3).
type Endpoint struct {
	base
	Arguments       []Argument
	Response        Type // nil if the endpoint has no response
	ResponseStreams bool
	// Request is the type of the one argument not consumed by the HTTP
	// path template, i.e. the request body (spec.md §4.5, §8 scenario 6).
	// Nil when every argument is bound into the path, or the endpoint has
	// no HTTP binding at all.
	Request Type
	HTTP    *HTTPBinding
}

func (e *Endpoint) DeclKind() DeclKind { return -1 } // endpoints are not independently registered
func (e *Endpoint) InnerDecls() []Decl { return nil }

// ServiceDecl is an ordered list of endpoints.
type ServiceDecl struct {
	base
	Endpoints []*Endpoint
	Inner     []Decl
}

func (d *ServiceDecl) DeclKind() DeclKind { return KindService }
func (d *ServiceDecl) InnerDecls() []Decl { return d.Inner }

// Constructors. Each concrete Decl's base is unexported, so other packages
// (principally lower) build these through the constructors below rather
// than struct literals.

func NewTypeDecl(name Name, fields []Field, inner []Decl, reserved []string, comment []string, attrs *Attributes, span Span) *TypeDecl {
	return &TypeDecl{base: newBase(name, comment, attrs, span), Fields: fields, Inner: inner, Reserved: reserved}
}

func NewTupleDecl(name Name, fields []Field, inner []Decl, reserved []string, comment []string, attrs *Attributes, span Span) *TupleDecl {
	return &TupleDecl{base: newBase(name, comment, attrs, span), Fields: fields, Inner: inner, Reserved: reserved}
}

func NewSubType(name Name, wireName string, hasWireName bool, fields []Field, comment []string, attrs *Attributes, span Span) *SubType {
	return &SubType{base: newBase(name, comment, attrs, span), WireName: wireName, HasWireName: hasWireName, Fields: fields}
}

func NewInterfaceDecl(name Name, fields []Field, subs []*SubType, strategy SubTypeStrategy, inner []Decl, reserved []string, comment []string, attrs *Attributes, span Span) *InterfaceDecl {
	return &InterfaceDecl{
		base:     newBase(name, comment, attrs, span),
		Fields:   fields,
		SubTypes: subs,
		Strategy: strategy,
		Inner:    inner,
		Reserved: reserved,
	}
}

func NewVariant(name Name, value Value, comment []string, attrs *Attributes, span Span) *Variant {
	return &Variant{base: newBase(name, comment, attrs, span), Value: value}
}

func NewEnumDecl(name Name, base_ EnumType, variants []*Variant, comment []string, attrs *Attributes, span Span) *EnumDecl {
	return &EnumDecl{base: newBase(name, comment, attrs, span), Base: base_, Variants: variants}
}

func NewEndpoint(name Name, args []Argument, response Type, streams bool, request Type, http *HTTPBinding, comment []string, attrs *Attributes, span Span) *Endpoint {
	return &Endpoint{
		base:            newBase(name, comment, attrs, span),
		Arguments:       args,
		Response:        response,
		ResponseStreams: streams,
		Request:         request,
		HTTP:            http,
	}
}

func NewServiceDecl(name Name, endpoints []*Endpoint, inner []Decl, comment []string, attrs *Attributes, span Span) *ServiceDecl {
	return &ServiceDecl{base: newBase(name, comment, attrs, span), Endpoints: endpoints, Inner: inner}
}
