package lower

import (
	"fmt"

	"github.com/reproto/reproto/ast"
	"github.com/reproto/reproto/ir"
)

// buildAttributes converts the surface attribute list collected by the
// parser into the destructive "take" bag IR nodes carry (spec.md §4.3 step
// 2, §4.5). A second attribute with the same name on one node is rejected
// here, before any consumer runs.
func buildAttributes(attrs []*ast.Attribute) (*ir.Attributes, error) {
	bag := ir.NewAttributes()

	for _, a := range attrs {
		sel := ir.Selection{Span: ir.Span{Begin: a.Span.BeginPos, End: a.Span.EndPos}}
		sel.Words = append(sel.Words, a.Words...)

		if len(a.Named) > 0 {
			sel.Named = make(map[string]ir.Value, len(a.Named))

			for k, lit := range a.Named {
				v, err := lowerLiteral(lit)
				if err != nil {
					return nil, err
				}

				sel.Named[k] = v
			}
		}

		if bag.Contains(a.Name) {
			return nil, fmt.Errorf("duplicate attribute #[%s(...)] on the same node", a.Name)
		}

		bag.Add(a.Name, sel)
	}

	return bag, nil
}

// consumeReprotoVersion handles `#![reproto(version=...)]` at file scope,
// recording the required compiler version (spec.md §4.5).
func consumeReprotoVersion(bag *ir.Attributes) (ir.Range, bool, error) {
	sel, ok := bag.TakeSelection("reproto")
	if !ok {
		return ir.Range{}, false, nil
	}

	v, ok := sel.TakeNamed("version")
	if !ok {
		return ir.Range{}, false, fmt.Errorf("#![reproto(...)] requires a version argument")
	}

	sv, ok := v.(ir.StringValue)
	if !ok {
		return ir.Range{}, false, fmt.Errorf("#![reproto(version=...)] expects a string")
	}

	r, err := ir.ParseRange(sv.Value)
	if err != nil {
		return ir.Range{}, false, err
	}

	if !sel.Empty() {
		return ir.Range{}, false, fmt.Errorf("unexpected attribute argument in #![reproto(...)]")
	}

	return r, true, nil
}

// consumeFeatures handles `#![feature(w1, w2)]` at file scope.
func consumeFeatures(bag *ir.Attributes) (map[string]bool, error) {
	sel, ok := bag.TakeSelection("feature")
	if !ok {
		return nil, nil
	}

	features := make(map[string]bool, len(sel.Words))
	for _, w := range sel.Words {
		features[w] = true
	}

	sel.Words = nil

	if !sel.Empty() {
		return nil, fmt.Errorf("unexpected named argument in #![feature(...)]")
	}

	return features, nil
}

// consumeReserved handles `#[reserved(w1, ...)]` on a declaration.
func consumeReserved(bag *ir.Attributes) ([]string, error) {
	sel, ok := bag.TakeSelection("reserved")
	if !ok {
		return nil, nil
	}

	words := append([]string(nil), sel.Words...)
	sel.Words = nil

	if !sel.Empty() {
		return nil, fmt.Errorf("unexpected named argument in #[reserved(...)]")
	}

	return words, nil
}

// consumeTypeInfo handles `#[type_info(strategy=..., tag=...)]` on an
// interface, producing its SubTypeStrategy.
func consumeTypeInfo(bag *ir.Attributes) (ir.SubTypeStrategy, error) {
	sel, ok := bag.TakeSelection("type_info")
	if !ok {
		return ir.SubTypeStrategy{Kind: ir.StrategyTagged, Tag: "type"}, nil
	}

	strategy, ok := sel.TakeNamed("strategy")
	if !ok {
		return ir.SubTypeStrategy{}, fmt.Errorf("#[type_info(...)] requires a strategy argument")
	}

	sv, ok := strategy.(ir.StringValue)
	if !ok {
		return ir.SubTypeStrategy{}, fmt.Errorf("#[type_info(strategy=...)] expects a string")
	}

	switch sv.Value {
	case "untagged":
		if !sel.Empty() {
			return ir.SubTypeStrategy{}, fmt.Errorf("#[type_info(strategy=\"untagged\")] takes no other arguments")
		}

		return ir.SubTypeStrategy{Kind: ir.StrategyUntagged}, nil
	case "tagged":
		tag := "type"

		if tagVal, ok := sel.TakeNamed("tag"); ok {
			tsv, ok := tagVal.(ir.StringValue)
			if !ok {
				return ir.SubTypeStrategy{}, fmt.Errorf("#[type_info(tag=...)] expects a string")
			}

			tag = tsv.Value
		}

		if !sel.Empty() {
			return ir.SubTypeStrategy{}, fmt.Errorf("unexpected attribute argument in #[type_info(...)]")
		}

		return ir.SubTypeStrategy{Kind: ir.StrategyTagged, Tag: tag}, nil
	default:
		return ir.SubTypeStrategy{}, fmt.Errorf("unknown #[type_info(strategy=%q)]", sv.Value)
	}
}

// consumeFormat handles `#[format(datetime)]` / `#[format(bytes)]` on a
// string field, refining its type.
func consumeFormat(bag *ir.Attributes, base ir.Type) (ir.Type, error) {
	sel, ok := bag.TakeSelection("format")
	if !ok {
		return base, nil
	}

	if _, ok := base.(ir.StringType); !ok {
		return nil, fmt.Errorf("#[format(...)] only applies to string fields")
	}

	if sel.Word("datetime") {
		if !sel.Empty() {
			return nil, fmt.Errorf("unexpected attribute argument in #[format(datetime)]")
		}

		return ir.DatetimeType{}, nil
	}

	if sel.Word("bytes") {
		if !sel.Empty() {
			return nil, fmt.Errorf("unexpected attribute argument in #[format(bytes)]")
		}

		return ir.BytesType{}, nil
	}

	return nil, fmt.Errorf("unknown #[format(...)] argument")
}

// consumeValidate handles `#[validate(pattern="...")]` on a string field.
func consumeValidate(bag *ir.Attributes, base ir.Type) (ir.Type, error) {
	sel, ok := bag.TakeSelection("validate")
	if !ok {
		return base, nil
	}

	st, ok := base.(ir.StringType)
	if !ok {
		return nil, fmt.Errorf("#[validate(...)] only applies to string fields")
	}

	v, ok := sel.TakeNamed("pattern")
	if !ok {
		return nil, fmt.Errorf("#[validate(...)] requires a pattern argument")
	}

	sv, ok := v.(ir.StringValue)
	if !ok {
		return nil, fmt.Errorf("#[validate(pattern=...)] expects a string")
	}

	if !sel.Empty() {
		return nil, fmt.Errorf("unexpected attribute argument in #[validate(...)]")
	}

	pattern := sv.Value

	return ir.StringType{Pattern: &pattern}, nil
}

// consumeImport handles `#[import("...")]` on a declaration, a back-end
// hint that is otherwise opaque to the core pipeline.
func consumeImport(bag *ir.Attributes) (string, bool, error) {
	sel, ok := bag.TakeSelection("import")
	if !ok {
		return "", false, nil
	}

	if len(sel.Words) != 1 {
		return "", false, fmt.Errorf("#[import(...)] requires exactly one bare string argument")
	}

	sym := sel.Words[0]
	sel.Words = nil

	if !sel.Empty() {
		return "", false, fmt.Errorf("unexpected named argument in #[import(...)]")
	}

	return sym, true, nil
}

// consumeHTTP handles `#[http(path=..., method=..., accept=...)]` on an
// endpoint: it parses the path template, checks every `{arg}` against the
// endpoint's arguments, and enforces that `accept="text/plain"` is only
// used with a string response (spec.md §4.5).
func consumeHTTP(bag *ir.Attributes, args []ir.Argument, response ir.Type) (*ir.HTTPBinding, error) {
	sel, ok := bag.TakeSelection("http")
	if !ok {
		return nil, nil
	}

	pathVal, ok := sel.TakeNamed("path")
	if !ok {
		return nil, fmt.Errorf("#[http(...)] requires a path argument")
	}

	pathStr, ok := pathVal.(ir.StringValue)
	if !ok {
		return nil, fmt.Errorf("#[http(path=...)] expects a string")
	}

	tmpl, err := ir.ParsePathTemplate(pathStr.Value)
	if err != nil {
		return nil, err
	}

	if err := tmpl.ValidateArguments(args); err != nil {
		return nil, err
	}

	method := "GET"

	if methodVal, ok := sel.TakeNamed("method"); ok {
		mv, ok := methodVal.(ir.StringValue)
		if !ok {
			return nil, fmt.Errorf("#[http(method=...)] expects a string")
		}

		method = mv.Value
	}

	accept := ""

	if acceptVal, ok := sel.TakeNamed("accept"); ok {
		av, ok := acceptVal.(ir.StringValue)
		if !ok {
			return nil, fmt.Errorf("#[http(accept=...)] expects a string")
		}

		accept = av.Value

		if accept == "text/plain" {
			if _, ok := response.(ir.StringType); !ok {
				return nil, fmt.Errorf("#[http(accept=\"text/plain\")] requires a string response")
			}
		}
	}

	if !sel.Empty() {
		return nil, fmt.Errorf("unexpected attribute argument in #[http(...)]")
	}

	return &ir.HTTPBinding{Method: method, Path: tmpl, Accept: accept, Span: sel.Span}, nil
}
