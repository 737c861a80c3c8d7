package flavor

import "github.com/reproto/reproto/ir"

// IdentityTranslator is the no-op flavor: every scalar, compound, field,
// endpoint, and name passes through unchanged. It mirrors the identity arms
// of original_source's translator_defaults! macro and is the translator a
// back end starts from, wrapping it (via embedding) to override only the
// hooks it actually needs to change.
type IdentityTranslator struct{}

func (IdentityTranslator) TranslateNumber(kind ir.IntegerKind) (ir.Type, error) {
	return ir.IntegerType{Kind: kind}, nil
}

func (IdentityTranslator) TranslateFloat() (ir.Type, error) { return ir.FloatType{}, nil }

func (IdentityTranslator) TranslateDouble() (ir.Type, error) { return ir.DoubleType{}, nil }

func (IdentityTranslator) TranslateBoolean() (ir.Type, error) { return ir.BooleanType{}, nil }

func (IdentityTranslator) TranslateString(s ir.StringType) (ir.Type, error) { return s, nil }

func (IdentityTranslator) TranslateDatetime() (ir.Type, error) { return ir.DatetimeType{}, nil }

func (IdentityTranslator) TranslateBytes() (ir.Type, error) { return ir.BytesType{}, nil }

func (IdentityTranslator) TranslateAny() (ir.Type, error) { return ir.AnyType{}, nil }

func (IdentityTranslator) TranslateArray(inner ir.Type) (ir.Type, error) {
	return ir.ArrayType{Inner: inner}, nil
}

func (IdentityTranslator) TranslateMap(key, value ir.Type) (ir.Type, error) {
	return ir.MapType{Key: key, Value: value}, nil
}

func (IdentityTranslator) TranslateName(_ ir.Package, _ ir.Registration, name ir.Name) (ir.Type, error) {
	return ir.NameType{Name: name}, nil
}

func (IdentityTranslator) TranslatePackage(pkg ir.Package) (ir.Package, error) { return pkg, nil }

func (IdentityTranslator) TranslateField(ctx *Context, field ir.Field) (ir.Field, error) {
	return DefaultTranslateField(ctx, field)
}

func (IdentityTranslator) TranslateEndpoint(ctx *Context, ep *ir.Endpoint) (*ir.Endpoint, error) {
	return DefaultTranslateEndpoint(ctx, ep)
}

func (IdentityTranslator) TranslateLocalName(ctx *Context, reg ir.Registration, name ir.Name) (ir.Name, error) {
	return DefaultTranslateLocalName(ctx, reg, name)
}

func (IdentityTranslator) TranslateEnumType(ctx *Context, enumType ir.EnumType) (ir.EnumType, error) {
	return DefaultTranslateEnumType(ctx, enumType)
}
