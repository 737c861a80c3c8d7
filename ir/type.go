package ir

// IntegerKind enumerates the signed/unsigned integer widths named in
// spec.md §3: signed/unsigned, {32,64} width.
type IntegerKind string

const (
	I32 IntegerKind = "i32"
	I64 IntegerKind = "i64"
	U32 IntegerKind = "u32"
	U64 IntegerKind = "u64"
)

// Type is the surface type language from spec.md §3: scalars, arrays, maps,
// and name-references. It is a closed set of concrete implementations
// rather than a single struct, matching how the flavor translator (§4.7)
// dispatches one method per constructor.
type Type interface {
	isType()
}

type (
	// DoubleType is the IEEE-754 double scalar.
	DoubleType struct{}
	// FloatType is the IEEE-754 single scalar.
	FloatType struct{}
	// IntegerType is a signed or unsigned integer of a given width.
	IntegerType struct{ Kind IntegerKind }
	// BooleanType is the boolean scalar.
	BooleanType struct{}
	// StringType is the string scalar, optionally constrained by a
	// #[validate(pattern=...)] regular expression (spec.md §4.5).
	StringType struct{ Pattern *string }
	// BytesType is the bytes scalar, used when #[format(bytes)] refines a
	// string field (spec.md §4.5).
	BytesType struct{}
	// DatetimeType is the datetime scalar, used when #[format(datetime)]
	// refines a string field.
	DatetimeType struct{}
	// AnyType accepts any value; see Environment.IsAssignableFrom.
	AnyType struct{}
	// ArrayType is a homogeneous sequence.
	ArrayType struct{ Inner Type }
	// MapType is a key/value association.
	MapType struct {
		Key   Type
		Value Type
	}
	// NameType references a declared type, interface, tuple, or enum by
	// Name; it is resolved against the environment's registry.
	NameType struct{ Name Name }
)

func (DoubleType) isType()   {}
func (FloatType) isType()    {}
func (IntegerType) isType()  {}
func (BooleanType) isType()  {}
func (StringType) isType()   {}
func (BytesType) isType()    {}
func (DatetimeType) isType() {}
func (AnyType) isType()      {}
func (ArrayType) isType()    {}
func (MapType) isType()      {}
func (NameType) isType()     {}

// EnumBaseKind distinguishes the two bases an enum may declare
// (spec.md §3: "enum base must be string or a numeric type").
type EnumBaseKind int

const (
	EnumBaseString EnumBaseKind = iota
	EnumBaseNumber
)

// EnumType is the restricted type usable as an enum's base.
type EnumType struct {
	Kind    EnumBaseKind
	Integer IntegerKind // only meaningful when Kind == EnumBaseNumber
}

// TypeEqual compares two Types structurally, following names through
// Localize so alias prefixes don't affect equality (spec.md §3 invariant 3,
// §9 "Name identity without pointer identity").
func TypeEqual(a, b Type) bool {
	switch at := a.(type) {
	case DoubleType:
		_, ok := b.(DoubleType)
		return ok
	case FloatType:
		_, ok := b.(FloatType)
		return ok
	case IntegerType:
		bt, ok := b.(IntegerType)
		return ok && at.Kind == bt.Kind
	case BooleanType:
		_, ok := b.(BooleanType)
		return ok
	case StringType:
		_, ok := b.(StringType)
		return ok
	case BytesType:
		_, ok := b.(BytesType)
		return ok
	case DatetimeType:
		_, ok := b.(DatetimeType)
		return ok
	case AnyType:
		_, ok := b.(AnyType)
		return ok
	case ArrayType:
		bt, ok := b.(ArrayType)
		return ok && TypeEqual(at.Inner, bt.Inner)
	case MapType:
		bt, ok := b.(MapType)
		return ok && TypeEqual(at.Key, bt.Key) && TypeEqual(at.Value, bt.Value)
	case NameType:
		bt, ok := b.(NameType)
		return ok && at.Name.Localize() == bt.Name.Localize()
	default:
		return false
	}
}
