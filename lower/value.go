package lower

import (
	"fmt"

	"github.com/reproto/reproto/ast"
	"github.com/reproto/reproto/ir"
)

// lowerLiteral constant-folds a surface ast.Literal into an ir.Value. This
// mirrors original_source's value_builder.rs, which distinguishes exactly
// these cases (string, number, boolean, array) plus a bare-identifier case
// used by enum variants and attribute arguments before they are resolved
// against a concrete type.
func lowerLiteral(lit ast.Literal) (ir.Value, error) {
	switch v := lit.(type) {
	case *ast.StringLit:
		return ir.StringValue{Value: v.Value}, nil
	case *ast.NumberLit:
		return ir.NumberValue{Value: v.Value}, nil
	case *ast.BoolLit:
		return ir.BoolValue{Value: v.Value}, nil
	case *ast.IdentLit:
		return ir.IdentValue{Value: v.Value}, nil
	case *ast.ArrayLit:
		values := make([]ir.Value, 0, len(v.Values))

		for _, elem := range v.Values {
			ev, err := lowerLiteral(elem)
			if err != nil {
				return nil, err
			}

			values = append(values, ev)
		}

		return ir.ArrayValue{Values: values}, nil
	default:
		return nil, fmt.Errorf("unhandled literal %T", lit)
	}
}
