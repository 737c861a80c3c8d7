// Package flavor implements the flavor translator described in spec.md
// §4.7: a pluggable per-back-end hook set plus a driver (Context) that
// walks a reachable-from-root declaration closure, translating each
// scalar/compound type, field, endpoint, and local name through those
// hooks while dropping anything never actually referenced.
//
// Every example back end (Go, JS, Python, Rust, Dart, Swift) in
// original_source implements the same small set of hooks and leans on
// shared defaults for everything it doesn't need to override; this package
// mirrors that split as FlavorTranslator (the hooks) plus the package-level
// DefaultTranslateXxx helpers (the defaults a translator embeds or calls
// into explicitly).
package flavor

import "github.com/reproto/reproto/ir"

// FlavorTranslator is the per-back-end translation contract, spec.md §4.7.
// Each method corresponds to one IR type constructor or one declaration
// shape; a back end implements only the ones whose target representation
// differs from the source, and otherwise delegates to another
// FlavorTranslator (typically IdentityTranslator) via embedding.
type FlavorTranslator interface {
	TranslateNumber(kind ir.IntegerKind) (ir.Type, error)
	TranslateFloat() (ir.Type, error)
	TranslateDouble() (ir.Type, error)
	TranslateBoolean() (ir.Type, error)
	TranslateString(s ir.StringType) (ir.Type, error)
	TranslateDatetime() (ir.Type, error)
	TranslateBytes() (ir.Type, error)
	TranslateAny() (ir.Type, error)
	TranslateArray(inner ir.Type) (ir.Type, error)
	TranslateMap(key, value ir.Type) (ir.Type, error)

	// TranslateName translates a reference to a declaration already
	// resolved to reg, in the context of the package the reference
	// appears in (from).
	TranslateName(from ir.Package, reg ir.Registration, name ir.Name) (ir.Type, error)

	TranslatePackage(pkg ir.Package) (ir.Package, error)

	// TranslateField translates one field, typically by delegating to
	// ctx.TranslateType(field.Type) and rebuilding the field around the
	// result (see DefaultTranslateField).
	TranslateField(ctx *Context, field ir.Field) (ir.Field, error)

	// TranslateEndpoint translates one service endpoint's arguments and
	// response channel.
	TranslateEndpoint(ctx *Context, ep *ir.Endpoint) (*ir.Endpoint, error)

	// TranslateLocalName translates a declaration's own name — as
	// opposed to TranslateName, which translates a *reference* to one.
	TranslateLocalName(ctx *Context, reg ir.Registration, name ir.Name) (ir.Name, error)

	// TranslateEnumType translates an enum's declared base type.
	TranslateEnumType(ctx *Context, enumType ir.EnumType) (ir.EnumType, error)
}

// DefaultTranslateField recurses into field.Type through ctx.TranslateType,
// leaving every other property of the field untouched. This is the
// identity arm of original_source's translator_defaults! macro's "field"
// case.
func DefaultTranslateField(ctx *Context, field ir.Field) (ir.Field, error) {
	translated, err := ctx.TranslateType(field.Type)
	if err != nil {
		return ir.Field{}, err
	}

	field.Type = translated

	return field, nil
}

// DefaultTranslateEndpoint recurses into every argument type and the
// (optional) response type, leaving the HTTP binding and streaming flag
// untouched.
func DefaultTranslateEndpoint(ctx *Context, ep *ir.Endpoint) (*ir.Endpoint, error) {
	args := make([]ir.Argument, len(ep.Arguments))

	for i, a := range ep.Arguments {
		t, err := ctx.TranslateType(a.Type)
		if err != nil {
			return nil, err
		}

		args[i] = ir.Argument{Identifier: a.Identifier, Type: t, Span: a.Span}
	}

	var response ir.Type

	if ep.Response != nil {
		t, err := ctx.TranslateType(ep.Response)
		if err != nil {
			return nil, err
		}

		response = t
	}

	var request ir.Type

	if ep.Request != nil {
		t, err := ctx.TranslateType(ep.Request)
		if err != nil {
			return nil, err
		}

		request = t
	}

	return ir.NewEndpoint(ep.DeclName(), args, response, ep.ResponseStreams, request, ep.HTTP, ep.DeclComment(), ep.DeclAttributes(), ep.DeclSpan()), nil
}

// DefaultTranslateLocalName leaves the name untouched — the identity arm
// of translator_defaults!'s "local_name" case.
func DefaultTranslateLocalName(_ *Context, _ ir.Registration, name ir.Name) (ir.Name, error) {
	return name, nil
}

// DefaultTranslateEnumType leaves the enum's base type untouched.
func DefaultTranslateEnumType(_ *Context, enumType ir.EnumType) (ir.EnumType, error) {
	return enumType, nil
}
