package lower

import (
	"fmt"

	"github.com/reproto/reproto/ast"
	"github.com/reproto/reproto/diagnostics"
	"github.com/reproto/reproto/ir"
)

func lowerFields(scope *Scope, fields []*ast.Field, bag *diagnostics.Bag) ([]ir.Field, error) {
	out := make([]ir.Field, 0, len(fields))
	seen := make(map[string]bool, len(fields))

	for _, f := range fields {
		if seen[f.Identifier] {
			return nil, fmt.Errorf("duplicate field %q", f.Identifier)
		}

		seen[f.Identifier] = true

		lf, err := lowerField(scope, f, bag)
		if err != nil {
			return nil, err
		}

		out = append(out, lf)
	}

	return out, nil
}

func lowerField(scope *Scope, f *ast.Field, bag *diagnostics.Bag) (ir.Field, error) {
	ty, err := lowerTypeExpr(scope, f.Type)
	if err != nil {
		return ir.Field{}, err
	}

	attrs, err := buildAttributes(f.Attributes)
	if err != nil {
		return ir.Field{}, err
	}

	ty, err = consumeFormat(attrs, ty)
	if err != nil {
		return ir.Field{}, err
	}

	ty, err = consumeValidate(attrs, ty)
	if err != nil {
		return ir.Field{}, err
	}

	for _, name := range attrs.Remaining() {
		bag.Warnf(spanOf(f.Span), "unknown-attribute", "unknown field attribute #[%s(...)] on %q", name, f.Identifier)
	}

	var def ir.Value

	if f.Default != nil {
		def, err = lowerLiteral(f.Default)
		if err != nil {
			return ir.Field{}, err
		}

		if !ir.AssignableTo(def, ty) {
			return ir.Field{}, fmt.Errorf("default value for field %q is not assignable to its type", f.Identifier)
		}
	}

	wireName := f.Identifier
	if f.HasWireAs {
		wireName = f.WireAs
	}

	return ir.Field{
		Identifier: f.Identifier,
		WireName:   wireName,
		HasWireAs:  f.HasWireAs,
		Type:       ty,
		Required:   f.Modifier == ast.ModifierRequired,
		Comment:    f.Comment,
		Attributes: attrs,
		Span:       spanOf(f.Span),
		Default:    def,
	}, nil
}

// consumeImportQuietly runs consumeImport purely for its side effect of
// removing #[import(...)] from the bag; the hint itself is surfaced to
// back ends via ir.Decl.DeclAttributes() remaining untouched would be
// wrong, so the core pipeline takes it here and currently discards it
// (no in-core back end consults it; back ends that want it can read it
// back off the original AST attribute list before lowering runs).
func consumeImportQuietly(attrs *ir.Attributes, bag *diagnostics.Bag, identifier string) {
	if _, _, err := consumeImport(attrs); err != nil {
		bag.Warnf(ir.Span{}, "attribute", "%v on %q", err, identifier)
	}
}

func lowerTypeDecl(scope *Scope, d *ast.TypeDecl, bag *diagnostics.Bag) (ir.Decl, error) {
	fields, err := lowerFields(scope, d.Fields, bag)
	if err != nil {
		return nil, err
	}

	inner, err := lowerInner(scope, d.Inner, bag)
	if err != nil {
		return nil, err
	}

	attrs, err := buildAttributes(d.Attributes)
	if err != nil {
		return nil, err
	}

	reserved, err := consumeReserved(attrs)
	if err != nil {
		return nil, err
	}

	consumeImportQuietly(attrs, bag, d.Identifier)

	for _, name := range attrs.Remaining() {
		bag.Warnf(spanOf(d.Span), "unknown-attribute", "unknown type attribute #[%s(...)] on %q", name, d.Identifier)
	}

	name := scope.QualifyName(d.Identifier)

	return ir.NewTypeDecl(name, fields, inner, reserved, d.Comment, attrs, spanOf(d.Span)), nil
}

func lowerTupleDecl(scope *Scope, d *ast.TupleDecl, bag *diagnostics.Bag) (ir.Decl, error) {
	fields, err := lowerFields(scope, d.Fields, bag)
	if err != nil {
		return nil, err
	}

	inner, err := lowerInner(scope, d.Inner, bag)
	if err != nil {
		return nil, err
	}

	attrs, err := buildAttributes(d.Attributes)
	if err != nil {
		return nil, err
	}

	reserved, err := consumeReserved(attrs)
	if err != nil {
		return nil, err
	}

	consumeImportQuietly(attrs, bag, d.Identifier)

	for _, name := range attrs.Remaining() {
		bag.Warnf(spanOf(d.Span), "unknown-attribute", "unknown tuple attribute #[%s(...)] on %q", name, d.Identifier)
	}

	name := scope.QualifyName(d.Identifier)

	return ir.NewTupleDecl(name, fields, inner, reserved, d.Comment, attrs, spanOf(d.Span)), nil
}

func lowerInterfaceDecl(scope *Scope, d *ast.InterfaceDecl, bag *diagnostics.Bag) (ir.Decl, error) {
	fields, err := lowerFields(scope, d.Fields, bag)
	if err != nil {
		return nil, err
	}

	inner, err := lowerInner(scope, d.Inner, bag)
	if err != nil {
		return nil, err
	}

	attrs, err := buildAttributes(d.Attributes)
	if err != nil {
		return nil, err
	}

	strategy, err := consumeTypeInfo(attrs)
	if err != nil {
		return nil, err
	}

	reserved, err := consumeReserved(attrs)
	if err != nil {
		return nil, err
	}

	consumeImportQuietly(attrs, bag, d.Identifier)

	for _, name := range attrs.Remaining() {
		bag.Warnf(spanOf(d.Span), "unknown-attribute", "unknown interface attribute #[%s(...)] on %q", name, d.Identifier)
	}

	ifaceName := scope.QualifyName(d.Identifier)

	subs := make([]*ir.SubType, 0, len(d.SubTypes))
	seenSub := make(map[string]bool, len(d.SubTypes))

	for _, st := range d.SubTypes {
		if seenSub[st.Identifier] {
			return nil, fmt.Errorf("duplicate sub-type %q on interface %q", st.Identifier, d.Identifier)
		}

		seenSub[st.Identifier] = true

		lowered, err := lowerSubType(scope, ifaceName, st, bag)
		if err != nil {
			return nil, err
		}

		subs = append(subs, lowered)
	}

	return ir.NewInterfaceDecl(ifaceName, fields, subs, strategy, inner, reserved, d.Comment, attrs, spanOf(d.Span)), nil
}

func lowerSubType(scope *Scope, ifaceName ir.Name, st *ast.SubType, bag *diagnostics.Bag) (*ir.SubType, error) {
	fields, err := lowerFields(scope, st.Fields, bag)
	if err != nil {
		return nil, err
	}

	attrs, err := buildAttributes(st.Attributes)
	if err != nil {
		return nil, err
	}

	for _, name := range attrs.Remaining() {
		bag.Warnf(spanOf(st.Span), "unknown-attribute", "unknown sub-type attribute #[%s(...)] on %q", name, st.Identifier)
	}

	wireName := st.Identifier
	if st.HasWireAs {
		wireName = st.WireName
	}

	name := ifaceName.WithChild(st.Identifier)

	return ir.NewSubType(name, wireName, st.HasWireAs, fields, st.Comment, attrs, spanOf(st.Span)), nil
}

func lowerEnumDecl(scope *Scope, d *ast.EnumDecl, bag *diagnostics.Bag) (ir.Decl, error) {
	base := ir.EnumType{Kind: ir.EnumBaseString}

	if d.Base != nil {
		switch d.Base.Name {
		case "string":
			base = ir.EnumType{Kind: ir.EnumBaseString}
		case "i32", "i64", "u32", "u64":
			kind := ir.IntegerKind(d.Base.Name)
			base = ir.EnumType{Kind: ir.EnumBaseNumber, Integer: kind}
		default:
			return nil, fmt.Errorf("enum base must be string or a numeric type, got %q", d.Base.Name)
		}
	}

	attrs, err := buildAttributes(d.Attributes)
	if err != nil {
		return nil, err
	}

	consumeImportQuietly(attrs, bag, d.Identifier)

	for _, name := range attrs.Remaining() {
		bag.Warnf(spanOf(d.Span), "unknown-attribute", "unknown enum attribute #[%s(...)] on %q", name, d.Identifier)
	}

	enumName := scope.QualifyName(d.Identifier)

	variants := make([]*ir.Variant, 0, len(d.Variants))
	seenValue := make(map[string]bool, len(d.Variants))
	seenIdent := make(map[string]bool, len(d.Variants))

	for _, v := range d.Variants {
		if seenIdent[v.Identifier] {
			return nil, fmt.Errorf("duplicate enum variant %q", v.Identifier)
		}

		seenIdent[v.Identifier] = true

		var value ir.Value

		if v.Value != nil {
			value, err = lowerLiteral(v.Value)
			if err != nil {
				return nil, err
			}
		} else if base.Kind == ir.EnumBaseString {
			value = ir.StringValue{Value: v.Identifier}
		} else {
			return nil, fmt.Errorf("enum variant %q requires an explicit value for a numeric base", v.Identifier)
		}

		key := fmt.Sprintf("%#v", value)
		if seenValue[key] {
			return nil, fmt.Errorf("duplicate enum variant value for %q", v.Identifier)
		}

		seenValue[key] = true

		vattrs, err := buildAttributes(v.Attributes)
		if err != nil {
			return nil, err
		}

		for _, name := range vattrs.Remaining() {
			bag.Warnf(spanOf(v.Span), "unknown-attribute", "unknown variant attribute #[%s(...)] on %q", name, v.Identifier)
		}

		variants = append(variants, ir.NewVariant(enumName.WithChild(v.Identifier), value, v.Comment, vattrs, spanOf(v.Span)))
	}

	return ir.NewEnumDecl(enumName, base, variants, d.Comment, attrs, spanOf(d.Span)), nil
}

func lowerServiceDecl(scope *Scope, d *ast.ServiceDecl, bag *diagnostics.Bag) (ir.Decl, error) {
	inner, err := lowerInner(scope, d.Inner, bag)
	if err != nil {
		return nil, err
	}

	attrs, err := buildAttributes(d.Attributes)
	if err != nil {
		return nil, err
	}

	consumeImportQuietly(attrs, bag, d.Identifier)

	for _, name := range attrs.Remaining() {
		bag.Warnf(spanOf(d.Span), "unknown-attribute", "unknown service attribute #[%s(...)] on %q", name, d.Identifier)
	}

	svcName := scope.QualifyName(d.Identifier)

	endpoints := make([]*ir.Endpoint, 0, len(d.Endpoints))
	seen := make(map[string]bool, len(d.Endpoints))

	for _, ep := range d.Endpoints {
		if seen[ep.Identifier] {
			return nil, fmt.Errorf("duplicate endpoint %q", ep.Identifier)
		}

		seen[ep.Identifier] = true

		lowered, err := lowerEndpoint(scope, svcName, ep, bag)
		if err != nil {
			return nil, err
		}

		endpoints = append(endpoints, lowered)
	}

	return ir.NewServiceDecl(svcName, endpoints, inner, d.Comment, attrs, spanOf(d.Span)), nil
}

func lowerEndpoint(scope *Scope, svcName ir.Name, ep *ast.Endpoint, bag *diagnostics.Bag) (*ir.Endpoint, error) {
	args := make([]ir.Argument, 0, len(ep.Args))

	for _, a := range ep.Args {
		ty, err := lowerTypeExpr(scope, a.Type)
		if err != nil {
			return nil, err
		}

		args = append(args, ir.Argument{Identifier: a.Identifier, Type: ty, Span: spanOf(a.Span)})
	}

	var response ir.Type

	if ep.Response != nil {
		ty, err := lowerTypeExpr(scope, ep.Response)
		if err != nil {
			return nil, err
		}

		response = ty
	}

	attrs, err := buildAttributes(ep.Attributes)
	if err != nil {
		return nil, err
	}

	http, err := consumeHTTP(attrs, args, response)
	if err != nil {
		return nil, err
	}

	for _, name := range attrs.Remaining() {
		bag.Warnf(spanOf(ep.Span), "unknown-attribute", "unknown endpoint attribute #[%s(...)] on %q", name, ep.Identifier)
	}

	name := svcName.WithChild(ep.Identifier)

	var request ir.Type

	if http != nil && http.Path != nil {
		if unused := http.Path.UnusedArguments(args); len(unused) == 1 {
			request = unused[0].Type
		}
	}

	return ir.NewEndpoint(name, args, response, ep.Streaming, request, http, ep.Comment, attrs, spanOf(ep.Span)), nil
}
