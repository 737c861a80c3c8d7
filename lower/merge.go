package lower

import (
	"fmt"

	"github.com/reproto/reproto/ir"
)

// mergeGroup implements spec.md §4.3's same-file merge: when two or more
// declarations in one file share a qualified name, they must be the same
// kind, and are combined rather than rejected outright. A single-element
// group is returned unchanged.
func mergeGroup(group []ir.Decl) (ir.Decl, error) {
	if len(group) == 1 {
		return group[0], nil
	}

	kind := group[0].DeclKind()

	for _, d := range group[1:] {
		if d.DeclKind() != kind {
			return nil, fmt.Errorf("declaration %q is declared more than once with different kinds", group[0].DeclName())
		}
	}

	switch kind {
	case ir.KindType:
		return mergeTypeDecls(group)
	case ir.KindTuple:
		return mergeTupleDecls(group)
	case ir.KindInterface:
		return mergeInterfaceDecls(group)
	case ir.KindEnum:
		return mergeEnumDecls(group)
	case ir.KindService:
		return mergeServiceDecls(group)
	default:
		return nil, fmt.Errorf("declaration %q cannot be merged", group[0].DeclName())
	}
}

func mergeFieldSets(sets [][]ir.Field, owner string) ([]ir.Field, error) {
	var out []ir.Field
	seen := make(map[string]bool)

	for _, fields := range sets {
		for _, f := range fields {
			if seen[f.Identifier] {
				return nil, fmt.Errorf("duplicate field %q across merged declarations of %q", f.Identifier, owner)
			}

			seen[f.Identifier] = true
			out = append(out, f)
		}
	}

	return out, nil
}

func mergeInnerSets(sets [][]ir.Decl) []ir.Decl {
	var out []ir.Decl
	for _, inner := range sets {
		out = append(out, inner...)
	}

	return out
}

func mergeTypeDecls(group []ir.Decl) (ir.Decl, error) {
	first := group[0].(*ir.TypeDecl)

	var fieldSets [][]ir.Field
	var innerSets [][]ir.Decl
	var reserved []string

	for _, d := range group {
		td := d.(*ir.TypeDecl)
		fieldSets = append(fieldSets, td.Fields)
		innerSets = append(innerSets, td.Inner)
		reserved = append(reserved, td.Reserved...)
	}

	fields, err := mergeFieldSets(fieldSets, first.DeclName().String())
	if err != nil {
		return nil, err
	}

	return ir.NewTypeDecl(first.DeclName(), fields, mergeInnerSets(innerSets), reserved, first.DeclComment(), first.DeclAttributes(), first.DeclSpan()), nil
}

func mergeTupleDecls(group []ir.Decl) (ir.Decl, error) {
	first := group[0].(*ir.TupleDecl)

	var fieldSets [][]ir.Field
	var innerSets [][]ir.Decl
	var reserved []string

	for _, d := range group {
		td := d.(*ir.TupleDecl)
		fieldSets = append(fieldSets, td.Fields)
		innerSets = append(innerSets, td.Inner)
		reserved = append(reserved, td.Reserved...)
	}

	fields, err := mergeFieldSets(fieldSets, first.DeclName().String())
	if err != nil {
		return nil, err
	}

	return ir.NewTupleDecl(first.DeclName(), fields, mergeInnerSets(innerSets), reserved, first.DeclComment(), first.DeclAttributes(), first.DeclSpan()), nil
}

func mergeInterfaceDecls(group []ir.Decl) (ir.Decl, error) {
	first := group[0].(*ir.InterfaceDecl)

	var fieldSets [][]ir.Field
	var innerSets [][]ir.Decl
	var reserved []string
	subsByName := make(map[string]*ir.SubType)
	var subOrder []string

	for _, d := range group {
		id := d.(*ir.InterfaceDecl)
		fieldSets = append(fieldSets, id.Fields)
		innerSets = append(innerSets, id.Inner)
		reserved = append(reserved, id.Reserved...)

		for _, st := range id.SubTypes {
			local := st.DeclName().Local()

			existing, ok := subsByName[local]
			if !ok {
				subsByName[local] = st
				subOrder = append(subOrder, local)
				continue
			}

			merged, err := mergeSubType(existing, st)
			if err != nil {
				return nil, err
			}

			subsByName[local] = merged
		}
	}

	fields, err := mergeFieldSets(fieldSets, first.DeclName().String())
	if err != nil {
		return nil, err
	}

	subs := make([]*ir.SubType, 0, len(subOrder))
	for _, name := range subOrder {
		subs = append(subs, subsByName[name])
	}

	return ir.NewInterfaceDecl(first.DeclName(), fields, subs, first.Strategy, mergeInnerSets(innerSets), reserved, first.DeclComment(), first.DeclAttributes(), first.DeclSpan()), nil
}

// mergeSubType unions two same-named sub-types' fields, per spec.md §4.3's
// "per-sub-type merge".
func mergeSubType(a, b *ir.SubType) (*ir.SubType, error) {
	fields, err := mergeFieldSets([][]ir.Field{a.Fields, b.Fields}, a.DeclName().String())
	if err != nil {
		return nil, err
	}

	return ir.NewSubType(a.DeclName(), a.WireName, a.HasWireName, fields, a.DeclComment(), a.DeclAttributes(), a.DeclSpan()), nil
}

func mergeEnumDecls(group []ir.Decl) (ir.Decl, error) {
	first := group[0].(*ir.EnumDecl)

	var variants []*ir.Variant
	seen := make(map[string]bool)

	for _, d := range group {
		ed := d.(*ir.EnumDecl)

		for _, v := range ed.Variants {
			key := fmt.Sprintf("%#v", v.Value)
			if seen[key] {
				return nil, fmt.Errorf("duplicate enum variant value across merged declarations of %q", first.DeclName())
			}

			seen[key] = true
			variants = append(variants, v)
		}
	}

	return ir.NewEnumDecl(first.DeclName(), first.Base, variants, first.DeclComment(), first.DeclAttributes(), first.DeclSpan()), nil
}

func mergeServiceDecls(group []ir.Decl) (ir.Decl, error) {
	first := group[0].(*ir.ServiceDecl)

	var endpoints []*ir.Endpoint
	var innerSets [][]ir.Decl
	seen := make(map[string]bool)

	for _, d := range group {
		sd := d.(*ir.ServiceDecl)
		innerSets = append(innerSets, sd.Inner)

		for _, ep := range sd.Endpoints {
			local := ep.DeclName().Local()
			if seen[local] {
				return nil, fmt.Errorf("duplicate endpoint %q across merged declarations of %q", local, first.DeclName())
			}

			seen[local] = true
			endpoints = append(endpoints, ep)
		}
	}

	return ir.NewServiceDecl(first.DeclName(), endpoints, mergeInnerSets(innerSets), first.DeclComment(), first.DeclAttributes(), first.DeclSpan()), nil
}
