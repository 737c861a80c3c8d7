package flavor

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/reproto/reproto/ir"
)

// UnresolvedDecl mirrors env.UnresolvedType: a name the registry never saw,
// encountered while translating a type reference or a nested declaration.
type UnresolvedDecl struct{ Name ir.Localized }

func (e *UnresolvedDecl) Error() string {
	return fmt.Sprintf("flavor: unresolved declaration: %s", e.Name.Key())
}

// Context drives one translation pass over a declaration set (spec.md
// §4.7): it seeds a work-list from the caller's root declarations, and
// recursively translates whatever those roots actually reference, via
// Translator's hooks. A declaration never reached from a root — because
// nothing alive still names it — is never translated and never appears in
// the output, satisfying the "no reading unreachable declarations"
// property (spec.md §8).
type Context struct {
	From       ir.Package
	Translator FlavorTranslator
	Log        *logrus.Logger

	types       *ir.Table
	sourceDecls map[ir.Localized]ir.Decl

	translated map[ir.Localized]ir.Decl
	inflight   map[ir.Localized]bool
}

// NewContext builds a Context over sourceDecls (every top-level declaration
// compiled into the "from" package, including nested ones reachable
// through InnerDecls/SubTypes/Variants) and types (the registry those
// declarations were registered into).
func NewContext(from ir.Package, translator FlavorTranslator, sourceDecls []ir.Decl, types *ir.Table) *Context {
	indexed := make(map[ir.Localized]ir.Decl)
	indexDecls(sourceDecls, indexed)

	return &Context{
		From:        from,
		Translator:  translator,
		Log:         logrus.StandardLogger(),
		types:       types,
		sourceDecls: indexed,
		translated:  make(map[ir.Localized]ir.Decl),
		inflight:    make(map[ir.Localized]bool),
	}
}

// indexDecls recursively records every declaration — top-level, nested,
// interface sub-type, and enum variant — by its Localized name, mirroring
// ir.RegisterDecl's walk.
func indexDecls(decls []ir.Decl, out map[ir.Localized]ir.Decl) {
	for _, d := range decls {
		out[d.DeclName().Localize()] = d

		switch v := d.(type) {
		case *ir.InterfaceDecl:
			for _, sub := range v.SubTypes {
				out[sub.DeclName().Localize()] = sub
			}
		case *ir.EnumDecl:
			for _, variant := range v.Variants {
				out[variant.DeclName().Localize()] = variant
			}
		}

		indexDecls(d.InnerDecls(), out)
	}
}

// Translate translates every declaration in roots (and, transitively,
// whatever they reference), returning the translated roots in the same
// order they were given.
func (c *Context) Translate(roots []ir.Decl) ([]ir.Decl, error) {
	out := make([]ir.Decl, 0, len(roots))

	for _, d := range roots {
		name := d.DeclName().Localize()

		if _, ok := c.sourceDecls[name]; !ok {
			c.sourceDecls[name] = d
		}

		if err := c.ensure(name); err != nil {
			return nil, err
		}

		out = append(out, c.translated[name])
	}

	return out, nil
}

func (c *Context) lookup(name ir.Localized) (ir.Registration, error) {
	reg, ok := c.types.Lookup(name)
	if !ok {
		return ir.Registration{}, &UnresolvedDecl{Name: name}
	}

	return reg, nil
}

// ensure translates the declaration named name if it hasn't been already,
// memoizing the result. Cycles are structurally impossible at the
// declaration level (spec.md §4.4), but inflight still guards against one
// so a malformed input degrades into an error instead of infinite
// recursion.
func (c *Context) ensure(name ir.Localized) error {
	if _, ok := c.translated[name]; ok {
		return nil
	}

	if c.inflight[name] {
		return fmt.Errorf("flavor: cyclic reference through %s", name.Key())
	}

	src, ok := c.sourceDecls[name]
	if !ok {
		return &UnresolvedDecl{Name: name}
	}

	c.inflight[name] = true
	defer delete(c.inflight, name)

	translated, err := c.translateDecl(src)
	if err != nil {
		return err
	}

	c.translated[name] = translated
	c.Log.WithFields(logrus.Fields{"component": "flavor", "decl": name.Key()}).Debug("translated declaration")

	return nil
}

func (c *Context) translateDecl(d ir.Decl) (ir.Decl, error) {
	switch v := d.(type) {
	case *ir.TypeDecl:
		return c.translateTypeDecl(v)
	case *ir.TupleDecl:
		return c.translateTupleDecl(v)
	case *ir.InterfaceDecl:
		return c.translateInterfaceDecl(v)
	case *ir.SubType:
		return c.translateSubType(v)
	case *ir.EnumDecl:
		return c.translateEnumDecl(v)
	case *ir.ServiceDecl:
		return c.translateServiceDecl(v)
	case *ir.Variant:
		return v, nil
	default:
		return nil, fmt.Errorf("flavor: unsupported declaration kind %T", d)
	}
}

func (c *Context) translateLocalName(d ir.Decl) (ir.Name, error) {
	reg, err := c.lookup(d.DeclName().Localize())
	if err != nil {
		return ir.Name{}, err
	}

	return c.Translator.TranslateLocalName(c, reg, d.DeclName())
}

func (c *Context) translateFields(fields []ir.Field) ([]ir.Field, error) {
	out := make([]ir.Field, len(fields))

	for i, f := range fields {
		translated, err := c.Translator.TranslateField(c, f)
		if err != nil {
			return nil, err
		}

		out[i] = translated
	}

	return out, nil
}

func (c *Context) translateInner(inner []ir.Decl) ([]ir.Decl, error) {
	out := make([]ir.Decl, 0, len(inner))

	for _, d := range inner {
		name := d.DeclName().Localize()
		if err := c.ensure(name); err != nil {
			return nil, err
		}

		out = append(out, c.translated[name])
	}

	return out, nil
}

func (c *Context) translateTypeDecl(d *ir.TypeDecl) (ir.Decl, error) {
	name, err := c.translateLocalName(d)
	if err != nil {
		return nil, err
	}

	fields, err := c.translateFields(d.Fields)
	if err != nil {
		return nil, err
	}

	inner, err := c.translateInner(d.Inner)
	if err != nil {
		return nil, err
	}

	return ir.NewTypeDecl(name, fields, inner, d.Reserved, d.DeclComment(), d.DeclAttributes(), d.DeclSpan()), nil
}

func (c *Context) translateTupleDecl(d *ir.TupleDecl) (ir.Decl, error) {
	name, err := c.translateLocalName(d)
	if err != nil {
		return nil, err
	}

	fields, err := c.translateFields(d.Fields)
	if err != nil {
		return nil, err
	}

	inner, err := c.translateInner(d.Inner)
	if err != nil {
		return nil, err
	}

	return ir.NewTupleDecl(name, fields, inner, d.Reserved, d.DeclComment(), d.DeclAttributes(), d.DeclSpan()), nil
}

func (c *Context) translateSubType(s *ir.SubType) (ir.Decl, error) {
	name, err := c.translateLocalName(s)
	if err != nil {
		return nil, err
	}

	fields, err := c.translateFields(s.Fields)
	if err != nil {
		return nil, err
	}

	return ir.NewSubType(name, s.WireName, s.HasWireName, fields, s.DeclComment(), s.DeclAttributes(), s.DeclSpan()), nil
}

func (c *Context) translateInterfaceDecl(d *ir.InterfaceDecl) (ir.Decl, error) {
	name, err := c.translateLocalName(d)
	if err != nil {
		return nil, err
	}

	fields, err := c.translateFields(d.Fields)
	if err != nil {
		return nil, err
	}

	subs := make([]*ir.SubType, 0, len(d.SubTypes))

	for _, sub := range d.SubTypes {
		subName := sub.DeclName().Localize()
		if err := c.ensure(subName); err != nil {
			return nil, err
		}

		translatedSub, ok := c.translated[subName].(*ir.SubType)
		if !ok {
			return nil, fmt.Errorf("flavor: %s did not translate to a sub-type", subName.Key())
		}

		subs = append(subs, translatedSub)
	}

	inner, err := c.translateInner(d.Inner)
	if err != nil {
		return nil, err
	}

	return ir.NewInterfaceDecl(name, fields, subs, d.Strategy, inner, d.Reserved, d.DeclComment(), d.DeclAttributes(), d.DeclSpan()), nil
}

func (c *Context) translateEnumDecl(d *ir.EnumDecl) (ir.Decl, error) {
	name, err := c.translateLocalName(d)
	if err != nil {
		return nil, err
	}

	base, err := c.Translator.TranslateEnumType(c, d.Base)
	if err != nil {
		return nil, err
	}

	variants := make([]*ir.Variant, 0, len(d.Variants))

	for _, v := range d.Variants {
		vName, err := c.translateLocalName(v)
		if err != nil {
			return nil, err
		}

		variants = append(variants, ir.NewVariant(vName, v.Value, v.DeclComment(), v.DeclAttributes(), v.DeclSpan()))
	}

	return ir.NewEnumDecl(name, base, variants, d.DeclComment(), d.DeclAttributes(), d.DeclSpan()), nil
}

func (c *Context) translateServiceDecl(d *ir.ServiceDecl) (ir.Decl, error) {
	name, err := c.translateLocalName(d)
	if err != nil {
		return nil, err
	}

	endpoints := make([]*ir.Endpoint, 0, len(d.Endpoints))

	for _, ep := range d.Endpoints {
		translated, err := c.Translator.TranslateEndpoint(c, ep)
		if err != nil {
			return nil, err
		}

		endpoints = append(endpoints, translated)
	}

	inner, err := c.translateInner(d.Inner)
	if err != nil {
		return nil, err
	}

	return ir.NewServiceDecl(name, endpoints, inner, d.DeclComment(), d.DeclAttributes(), d.DeclSpan()), nil
}

// TranslateType recurses through t, dispatching one FlavorTranslator hook
// per constructor (spec.md §4.7) — the Go analogue of
// Translator::translate_type's match over RpType. A NameType reference
// also pulls the referenced declaration into the translated set via
// ensure, which is where dead-declaration dropping actually happens: types
// never named from a root are never looked up, so ensure never runs for
// them.
func (c *Context) TranslateType(t ir.Type) (ir.Type, error) {
	switch v := t.(type) {
	case ir.IntegerType:
		return c.Translator.TranslateNumber(v.Kind)
	case ir.FloatType:
		return c.Translator.TranslateFloat()
	case ir.DoubleType:
		return c.Translator.TranslateDouble()
	case ir.BooleanType:
		return c.Translator.TranslateBoolean()
	case ir.StringType:
		return c.Translator.TranslateString(v)
	case ir.DatetimeType:
		return c.Translator.TranslateDatetime()
	case ir.BytesType:
		return c.Translator.TranslateBytes()
	case ir.AnyType:
		return c.Translator.TranslateAny()
	case ir.ArrayType:
		inner, err := c.TranslateType(v.Inner)
		if err != nil {
			return nil, err
		}

		return c.Translator.TranslateArray(inner)
	case ir.MapType:
		key, err := c.TranslateType(v.Key)
		if err != nil {
			return nil, err
		}

		value, err := c.TranslateType(v.Value)
		if err != nil {
			return nil, err
		}

		return c.Translator.TranslateMap(key, value)
	case ir.NameType:
		localized := v.Name.Localize()

		reg, err := c.lookup(localized)
		if err != nil {
			return nil, err
		}

		if err := c.ensure(localized); err != nil {
			return nil, err
		}

		return c.Translator.TranslateName(c.From, reg, v.Name)
	default:
		return nil, fmt.Errorf("flavor: unsupported type %T", t)
	}
}
