package ir

// Value is a constant-folded literal: the result of evaluating an enum
// variant's value or a field's default constant. spec.md §1 scopes this as
// the only value interpretation the core performs ("constant folding
// required for enum variants and default constants"); the folding rules
// themselves are grounded on original_source's value_builder.rs, which
// distinguishes exactly these cases (string, number, boolean, array; here
// generalized with an identifier case for enum variant bare-word values).
type Value interface {
	isValue()
}

type (
	StringValue struct{ Value string }
	NumberValue struct{ Value Number }
	BoolValue   struct{ Value bool }
	ArrayValue  struct{ Values []Value }
	// IdentValue is a bare identifier used as an enum variant value or
	// attribute argument before it is resolved against a concrete type.
	IdentValue struct{ Value string }
)

func (StringValue) isValue() {}
func (NumberValue) isValue() {}
func (BoolValue) isValue()   {}
func (ArrayValue) isValue()  {}
func (IdentValue) isValue()  {}

// AssignableTo reports whether v may be folded into the given target type,
// following the same scalar/array/any rules as Environment.IsAssignableFrom
// (spec.md §4.4) but at the literal-value level used during lowering.
func AssignableTo(v Value, target Type) bool {
	switch target.(type) {
	case AnyType:
		return true
	}

	switch val := v.(type) {
	case StringValue:
		_, ok := target.(StringType)
		if ok {
			return true
		}

		_, ok = target.(DatetimeType)

		return ok
	case NumberValue:
		switch target.(type) {
		case IntegerType, FloatType, DoubleType:
			return true
		}

		return false
	case BoolValue:
		_, ok := target.(BooleanType)
		return ok
	case ArrayValue:
		at, ok := target.(ArrayType)
		if !ok {
			return false
		}

		for _, elem := range val.Values {
			if !AssignableTo(elem, at.Inner) {
				return false
			}
		}

		return true
	case IdentValue:
		// Bare identifiers are only meaningful as enum variant values or
		// name references; resolving those is the lowerer/environment's job.
		return true
	default:
		return false
	}
}
