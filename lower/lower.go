package lower

import (
	"fmt"

	"github.com/reproto/reproto/ast"
	"github.com/reproto/reproto/diagnostics"
	"github.com/reproto/reproto/ir"
	"github.com/reproto/reproto/token"
)

// LoweredFile is one source file after lowering: its effective package, the
// compiler-version constraint and feature flags it declared, and its
// top-level (already same-file-merged) declarations.
type LoweredFile struct {
	Package         ir.Package
	RequiredVersion ir.Range
	HasVersionGate  bool
	Features        map[string]bool
	Decls           []ir.Decl
}

// LowerFile walks file in lexical order, producing a LoweredFile plus a
// diagnostics.Bag carrying any non-fatal attribute-processing complaints
// (spec.md §4.3, §4.5). A declaration that fails to lower is reported in
// the bag and dropped. A hard error is returned only for malformed file
// attributes (e.g. a duplicated #![...]) and irreconcilable same-file merges.
func LowerFile(path string, file *ast.File, scope *Scope) (*LoweredFile, *diagnostics.Bag, error) {
	bag := diagnostics.NewBag(path)

	lf := &LoweredFile{Package: scope.FilePackage}

	fileAttrs, err := buildAttributes(file.Attributes)
	if err != nil {
		return nil, bag, err
	}

	rng, hasVersion, err := consumeReprotoVersion(fileAttrs)
	if err != nil {
		bag.Errorf(ir.Span{}, "attribute", "%v", err)
	} else {
		lf.RequiredVersion = rng
		lf.HasVersionGate = hasVersion
	}

	features, err := consumeFeatures(fileAttrs)
	if err != nil {
		bag.Errorf(ir.Span{}, "attribute", "%v", err)
	} else {
		scope.Features = features
		lf.Features = features
	}

	for _, name := range fileAttrs.Remaining() {
		bag.Warnf(ir.Span{}, "unknown-attribute", "unknown file attribute #![%s(...)]", name)
	}

	for _, use := range file.Uses {
		rp, err := lowerUse(use)
		if err != nil {
			bag.Errorf(spanOf(use.Span), "use", "%v", err)
			continue
		}

		alias := use.Alias
		if !use.HasAlias {
			alias = use.Package[len(use.Package)-1]
		}

		scope.Aliases[alias] = rp
	}

	byName := make(map[ir.Localized][]ir.Decl)
	var order []ir.Localized

	for _, d := range file.Decls {
		lowered, err := lowerTopDecl(scope, d, bag)
		if err != nil {
			bag.Errorf(spanOf(d.DeclSpan()), "lower", "%v", err)
			continue
		}

		key := lowered.DeclName().Localize()
		if _, seen := byName[key]; !seen {
			order = append(order, key)
		}

		byName[key] = append(byName[key], lowered)
	}

	for _, key := range order {
		group := byName[key]

		merged, err := mergeGroup(group)
		if err != nil {
			return nil, bag, err
		}

		lf.Decls = append(lf.Decls, merged)
	}

	return lf, bag, nil
}

func spanOf(p token.Position) ir.Span {
	return ir.Span{Begin: p.BeginPos, End: p.EndPos}
}

func lowerUse(use *ast.UseDecl) (ir.RequiredPackage, error) {
	pkg := ir.NewPackage(use.Package...)

	rng := ir.Range{}

	if use.HasRange {
		r, err := ir.ParseRange(use.Range)
		if err != nil {
			return ir.RequiredPackage{}, err
		}

		rng = r
	}

	return ir.RequiredPackage{Package: pkg, Range: rng}, nil
}

// lowerTopDecl dispatches lowering by the concrete ast.Decl kind.
func lowerTopDecl(scope *Scope, d ast.Decl, bag *diagnostics.Bag) (ir.Decl, error) {
	switch v := d.(type) {
	case *ast.TypeDecl:
		return lowerTypeDecl(scope, v, bag)
	case *ast.TupleDecl:
		return lowerTupleDecl(scope, v, bag)
	case *ast.InterfaceDecl:
		return lowerInterfaceDecl(scope, v, bag)
	case *ast.EnumDecl:
		return lowerEnumDecl(scope, v, bag)
	case *ast.ServiceDecl:
		return lowerServiceDecl(scope, v, bag)
	default:
		return nil, fmt.Errorf("unhandled declaration %T", d)
	}
}

func lowerInner(scope *Scope, inner []ast.Decl, bag *diagnostics.Bag) ([]ir.Decl, error) {
	out := make([]ir.Decl, 0, len(inner))

	for _, d := range inner {
		lowered, err := lowerTopDecl(scope, d, bag)
		if err != nil {
			return nil, err
		}

		out = append(out, lowered)
	}

	return out, nil
}
