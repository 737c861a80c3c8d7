package lower

import (
	"fmt"

	"github.com/reproto/reproto/ast"
	"github.com/reproto/reproto/ir"
)

// lowerTypeExpr converts a surface ast.TypeExpr into ir.Type. NameRef paths
// are qualified against the current scope's aliases (first path segment) or
// the file's own package if no alias matches; cross-file resolution of
// whether the name actually exists is the environment's job (spec.md §4.4).
func lowerTypeExpr(scope *Scope, expr ast.TypeExpr) (ir.Type, error) {
	switch t := expr.(type) {
	case *ast.ScalarType:
		return lowerScalarName(t.Name)
	case *ast.ArrayTypeExpr:
		inner, err := lowerTypeExpr(scope, t.Inner)
		if err != nil {
			return nil, err
		}

		return ir.ArrayType{Inner: inner}, nil
	case *ast.MapTypeExpr:
		key, err := lowerTypeExpr(scope, t.Key)
		if err != nil {
			return nil, err
		}

		value, err := lowerTypeExpr(scope, t.Value)
		if err != nil {
			return nil, err
		}

		return ir.MapType{Key: key, Value: value}, nil
	case *ast.NameRef:
		return lowerNameRef(scope, t)
	default:
		return nil, fmt.Errorf("unhandled type expression %T", expr)
	}
}

func lowerScalarName(name string) (ir.Type, error) {
	switch name {
	case "double":
		return ir.DoubleType{}, nil
	case "float":
		return ir.FloatType{}, nil
	case "boolean":
		return ir.BooleanType{}, nil
	case "string":
		return ir.StringType{}, nil
	case "bytes":
		return ir.BytesType{}, nil
	case "datetime":
		return ir.DatetimeType{}, nil
	case "any":
		return ir.AnyType{}, nil
	case "i32":
		return ir.IntegerType{Kind: ir.I32}, nil
	case "i64":
		return ir.IntegerType{Kind: ir.I64}, nil
	case "u32":
		return ir.IntegerType{Kind: ir.U32}, nil
	case "u64":
		return ir.IntegerType{Kind: ir.U64}, nil
	default:
		return nil, fmt.Errorf("unknown scalar type %q", name)
	}
}

// lowerNameRef qualifies a dotted TypeIdentifier path into an ir.Name. If
// the first path segment matches an installed use-decl alias, the
// reference is qualified against that package with the alias recorded as
// the Name's Prefix (dropped again by Localize, but kept for back ends that
// want to emit an import using the original alias). Otherwise the path is
// qualified against the file's own package.
func lowerNameRef(scope *Scope, ref *ast.NameRef) (ir.Type, error) {
	path := ref.Path

	if len(path) > 1 {
		if rp, ok := scope.ResolveAlias(path[0]); ok {
			name := ir.NewName(rp.Package, path[1:]...).WithPrefix(path[0])
			return ir.NameType{Name: name}, nil
		}
	}

	return ir.NameType{Name: scope.QualifyName(path...)}, nil
}
