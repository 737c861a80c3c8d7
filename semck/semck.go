// Package semck checks two versions of a compiled package set against each
// other for semantic version violations, per spec.md §4.6. A minor bump may
// only add declarations, optional fields, enum variants, and endpoints; a
// patch bump may not change the public shape at all.
package semck

import (
	"fmt"

	"github.com/reproto/reproto/ir"
)

// Component names which SemVer component a Violation offends.
type Component int

const (
	Minor Component = iota
	Patch
)

func (c Component) String() string {
	switch c {
	case Minor:
		return "minor change violation"
	case Patch:
		return "patch change violation"
	default:
		return "unknown violation"
	}
}

// Kind enumerates every violation shape named in spec.md §4.6, grounded on
// original_source/lib/semck/src/lib.rs's Violation enum.
type Kind int

const (
	KindDeclRemoved Kind = iota
	KindDeclAdded
	KindRemoveField
	KindAddField
	KindAddRequiredField
	KindRemoveVariant
	KindAddVariant
	KindFieldTypeChange
	KindFieldNameChange
	KindVariantOrdinalChange
	KindFieldRequiredChange
	KindFieldModifierChange
	KindAddEndpoint
	KindRemoveEndpoint
	KindEndpointResponseChange
	KindEndpointRequestChange
)

// Violation is one semantic-version-incompatible change detected between
// two versions of the same declaration set.
type Violation struct {
	Component Component
	Kind      Kind
	Message   string
	FromSpan  ir.Span
	ToSpan    ir.Span // zero if the violation has no "to" side (e.g. a removal)
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Component, v.Message)
}

func violation(component Component, kind Kind, from ir.Span, to ir.Span, format string, args ...any) Violation {
	return Violation{Component: component, Kind: kind, Message: fmt.Sprintf(format, args...), FromSpan: from, ToSpan: to}
}

// namedFields returns the field list shared by the three field-bearing
// declaration kinds (type, tuple, interface — a SubType's own fields aren't
// walked here, only the fields shared across all its sub-types).
func namedFields(d ir.Decl) []ir.Field {
	switch v := d.(type) {
	case *ir.TypeDecl:
		return v.Fields
	case *ir.TupleDecl:
		return v.Fields
	case *ir.InterfaceDecl:
		return v.Fields
	default:
		return nil
	}
}

func namedVariants(d ir.Decl) []*ir.Variant {
	if e, ok := d.(*ir.EnumDecl); ok {
		return e.Variants
	}

	return nil
}

func namedEndpoints(d ir.Decl) map[string]*ir.Endpoint {
	s, ok := d.(*ir.ServiceDecl)
	if !ok {
		return nil
	}

	out := make(map[string]*ir.Endpoint, len(s.Endpoints))
	for _, ep := range s.Endpoints {
		out[ep.DeclName().Local()] = ep
	}

	return out
}

func declsByName(decls []ir.Decl) map[ir.Localized]ir.Decl {
	out := make(map[ir.Localized]ir.Decl, len(decls))
	for _, d := range decls {
		out[d.DeclName().Localize()] = d
	}

	return out
}

func fieldsByIdent(fields []ir.Field) map[string]ir.Field {
	out := make(map[string]ir.Field, len(fields))
	for _, f := range fields {
		out[f.Identifier] = f
	}

	return out
}

func argsByIdent(args []ir.Argument) map[string]ir.Argument {
	out := make(map[string]ir.Argument, len(args))
	for _, a := range args {
		out[a.Identifier] = a
	}

	return out
}

func variantsByIdent(variants []*ir.Variant) map[string]*ir.Variant {
	out := make(map[string]*ir.Variant, len(variants))
	for _, v := range variants {
		out[v.DeclName().Local()] = v
	}

	return out
}

// commonCheckField reports the two violations every component forbids
// outright: changing a field's type, or renaming it on the wire.
func commonCheckField(component Component, from, to ir.Field) []Violation {
	var out []Violation

	if !ir.TypeEqual(from.Type, to.Type) {
		out = append(out, violation(component, KindFieldTypeChange, from.Span, to.Span,
			"field %q changed type", from.Identifier))
	}

	if from.WireName != to.WireName {
		out = append(out, violation(component, KindFieldNameChange, from.Span, to.Span,
			"field %q wire name changed from %q to %q", from.Identifier, from.WireName, to.WireName))
	}

	return out
}

// commonCheckVariant reports a changed enum ordinal/value, forbidden at
// any component since it changes wire representation.
func commonCheckVariant(component Component, from, to *ir.Variant) []Violation {
	if fmt.Sprintf("%#v", from.Value) != fmt.Sprintf("%#v", to.Value) {
		return []Violation{violation(component, KindVariantOrdinalChange, from.DeclSpan(), to.DeclSpan(),
			"variant %q's value changed", from.DeclName().Local())}
	}

	return nil
}

// checkEndpointResponse reports a changed response channel (type or
// streaming flag), forbidden at every component like a request change.
func checkEndpointResponse(component Component, from, to *ir.Endpoint) []Violation {
	sameType := (from.Response == nil) == (to.Response == nil)
	if sameType && from.Response != nil {
		sameType = ir.TypeEqual(from.Response, to.Response)
	}

	if sameType && from.ResponseStreams == to.ResponseStreams {
		return nil
	}

	return []Violation{violation(component, KindEndpointResponseChange, from.DeclSpan(), to.DeclSpan(),
		"endpoint %q's response channel changed", from.DeclName().Local())}
}

// checkEndpointRequest reports a changed request channel: an argument added,
// removed, or retyped between versions. Arguments are compared by
// identifier/type the same way commonCheckField compares declaration
// fields, since a service-call argument list is the request's wire shape.
func checkEndpointRequest(component Component, from, to *ir.Endpoint) []Violation {
	var out []Violation

	fromArgs := argsByIdent(from.Arguments)
	toArgs := argsByIdent(to.Arguments)

	for ident, fa := range fromArgs {
		ta, ok := toArgs[ident]
		if !ok {
			out = append(out, violation(component, KindEndpointRequestChange, fa.Span, ir.Span{},
				"endpoint %q's request argument %q removed", from.DeclName().Local(), ident))
			continue
		}

		if !ir.TypeEqual(fa.Type, ta.Type) {
			out = append(out, violation(component, KindEndpointRequestChange, fa.Span, ta.Span,
				"endpoint %q's request argument %q changed type", from.DeclName().Local(), ident))
		}

		delete(toArgs, ident)
	}

	for ident, ta := range toArgs {
		out = append(out, violation(component, KindEndpointRequestChange, from.DeclSpan(), ta.Span,
			"endpoint %q's request argument %q added", from.DeclName().Local(), ident))
	}

	return out
}

// CheckMinor reports every violation a minor version bump forbids: field,
// variant, and endpoint removal; renaming or retyping anything that
// survives; and adding a new *required* field (new optional fields, new
// variants, and new endpoints are all permitted).
func CheckMinor(from, to []ir.Decl) []Violation {
	var out []Violation

	fromByName := declsByName(from)
	toByName := declsByName(to)

	for name, fromDecl := range fromByName {
		toDecl, ok := toByName[name]
		if !ok {
			out = append(out, violation(Minor, KindDeclRemoved, fromDecl.DeclSpan(), ir.Span{},
				"declaration %q removed", name.Key()))
			continue
		}

		fromFields := fieldsByIdent(namedFields(fromDecl))
		toFields := fieldsByIdent(namedFields(toDecl))

		for ident, ff := range fromFields {
			tf, ok := toFields[ident]
			if !ok {
				out = append(out, violation(Minor, KindRemoveField, ff.Span, ir.Span{}, "field %q removed", ident))
				continue
			}

			out = append(out, commonCheckField(Minor, ff, tf)...)
			delete(toFields, ident)

			if !ff.Required && tf.Required {
				out = append(out, violation(Minor, KindFieldRequiredChange, ff.Span, tf.Span,
					"field %q made required", ident))
			}
		}

		for _, tf := range toFields {
			if tf.Required {
				out = append(out, violation(Minor, KindAddRequiredField, tf.Span, ir.Span{},
					"required field %q added", tf.Identifier))
			}
		}

		fromVariants := variantsByIdent(namedVariants(fromDecl))
		toVariants := variantsByIdent(namedVariants(toDecl))

		for ident, fv := range fromVariants {
			tv, ok := toVariants[ident]
			if !ok {
				out = append(out, violation(Minor, KindRemoveVariant, fv.DeclSpan(), ir.Span{},
					"variant %q removed", ident))
				continue
			}

			out = append(out, commonCheckVariant(Minor, fv, tv)...)
		}

		fromEndpoints := namedEndpoints(fromDecl)
		toEndpoints := namedEndpoints(toDecl)

		for ident, fe := range fromEndpoints {
			te, ok := toEndpoints[ident]
			if !ok {
				out = append(out, violation(Minor, KindRemoveEndpoint, fe.DeclSpan(), ir.Span{},
					"endpoint %q removed", ident))
				continue
			}

			out = append(out, checkEndpointResponse(Minor, fe, te)...)
			out = append(out, checkEndpointRequest(Minor, fe, te)...)
		}
	}

	return out
}

// CheckPatch reports every violation a patch version bump forbids: any
// addition or removal of a field, variant, or endpoint, and any change to
// a field's required/optional modifier.
func CheckPatch(from, to []ir.Decl) []Violation {
	var out []Violation

	fromByName := declsByName(from)
	toByName := declsByName(to)

	for name, fromDecl := range fromByName {
		toDecl, ok := toByName[name]
		if !ok {
			out = append(out, violation(Patch, KindDeclRemoved, fromDecl.DeclSpan(), ir.Span{},
				"declaration %q removed", name.Key()))
			continue
		}

		delete(toByName, name)

		fromFields := fieldsByIdent(namedFields(fromDecl))
		toFields := fieldsByIdent(namedFields(toDecl))

		for ident, ff := range fromFields {
			tf, ok := toFields[ident]
			if !ok {
				out = append(out, violation(Patch, KindRemoveField, ff.Span, ir.Span{}, "field %q removed", ident))
				continue
			}

			out = append(out, commonCheckField(Patch, ff, tf)...)
			delete(toFields, ident)

			if ff.Required != tf.Required {
				out = append(out, violation(Patch, KindFieldModifierChange, ff.Span, tf.Span,
					"field %q's modifier changed", ident))
			}
		}

		for _, tf := range toFields {
			out = append(out, violation(Patch, KindAddField, tf.Span, ir.Span{}, "field %q added", tf.Identifier))
		}

		fromVariants := variantsByIdent(namedVariants(fromDecl))
		toVariants := variantsByIdent(namedVariants(toDecl))

		for ident, fv := range fromVariants {
			tv, ok := toVariants[ident]
			if !ok {
				out = append(out, violation(Patch, KindRemoveVariant, fv.DeclSpan(), ir.Span{},
					"variant %q removed", ident))
				continue
			}

			out = append(out, commonCheckVariant(Patch, fv, tv)...)
			delete(toVariants, ident)
		}

		for _, tv := range toVariants {
			out = append(out, violation(Patch, KindAddVariant, tv.DeclSpan(), ir.Span{},
				"variant %q added", tv.DeclName().Local()))
		}

		fromEndpoints := namedEndpoints(fromDecl)
		toEndpoints := namedEndpoints(toDecl)

		for ident, fe := range fromEndpoints {
			te, ok := toEndpoints[ident]
			if !ok {
				out = append(out, violation(Patch, KindRemoveEndpoint, fe.DeclSpan(), ir.Span{},
					"endpoint %q removed", ident))
				continue
			}

			out = append(out, checkEndpointResponse(Patch, fe, te)...)
			out = append(out, checkEndpointRequest(Patch, fe, te)...)
			delete(toEndpoints, ident)
		}

		for _, te := range toEndpoints {
			out = append(out, violation(Patch, KindAddEndpoint, te.DeclSpan(), ir.Span{},
				"endpoint %q added", te.DeclName().Local()))
		}
	}

	for _, toDecl := range toByName {
		out = append(out, violation(Patch, KindDeclAdded, toDecl.DeclSpan(), ir.Span{},
			"declaration %q added", toDecl.DeclName().Localize().Key()))
	}

	return out
}

// Check compares fromDecls (declared at fromVersion) against toDecls
// (declared at toVersion), choosing minor or patch rules by which SemVer
// component actually advanced. Two versions with the same major/minor/patch,
// or a major bump, are unconstrained: reproto treats a major bump as "no
// compatibility promised", matching original_source's check().
func Check(fromVersion, toVersion ir.Version, fromDecls, toDecls []ir.Decl) ([]Violation, error) {
	fv, err := coarseTriple(fromVersion)
	if err != nil {
		return nil, err
	}

	tv, err := coarseTriple(toVersion)
	if err != nil {
		return nil, err
	}

	if fv.major != tv.major {
		return nil, nil
	}

	if fv.minor < tv.minor {
		return CheckMinor(fromDecls, toDecls), nil
	}

	if fv.patch < tv.patch {
		return CheckPatch(fromDecls, toDecls), nil
	}

	return nil, nil
}

type triple struct{ major, minor, patch int }

func coarseTriple(v ir.Version) (triple, error) {
	var t triple

	n, err := fmt.Sscanf(v.String(), "%d.%d.%d", &t.major, &t.minor, &t.patch)
	if err != nil || n != 3 {
		return triple{}, fmt.Errorf("cannot decompose version %q into major.minor.patch", v.String())
	}

	return t, nil
}
