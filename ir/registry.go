package ir

import "fmt"

// Registration is one entry in a Table: the kind of declaration registered
// under a Localized name, its source span, and the path of the file that
// declared it (spec.md §3 invariants 2 and 3: every Localized name resolves
// to at most one registration, and every named declaration — including
// nested ones and enum variants — is registered).
type Registration struct {
	Name Localized
	Kind DeclKind
	Span Span
	File string
}

// Table is the flat registry of every named declaration across a package,
// keyed by Localized name. env.Environment fills it as it processes each
// lowered file, and it is consulted afterwards by the environment and the
// flavor translator — both need "does this name exist, and what kind is it"
// without re-walking the declaration tree.
type Table struct {
	entries map[Localized]Registration
	order   []Localized
}

// NewTable creates an empty registry.
func NewTable() *Table {
	return &Table{entries: make(map[Localized]Registration)}
}

// Register adds reg, reporting an error if the name is already taken — the
// direct enforcement of invariant 2 ("no two declarations may resolve to the
// same Localized name").
func (t *Table) Register(reg Registration) error {
	if existing, ok := t.entries[reg.Name]; ok {
		return fmt.Errorf("duplicate declaration %q: already registered in %s", reg.Name.Key(), existing.File)
	}

	t.entries[reg.Name] = reg
	t.order = append(t.order, reg.Name)

	return nil
}

// Lookup returns the registration for name, if any.
func (t *Table) Lookup(name Localized) (Registration, bool) {
	reg, ok := t.entries[name]
	return reg, ok
}

// Contains is a convenience wrapper around Lookup.
func (t *Table) Contains(name Localized) bool {
	_, ok := t.entries[name]
	return ok
}

// All returns every registration in insertion order, useful for deterministic
// diagnostics and for walking a package's full declaration set without
// re-deriving it from the AST.
func (t *Table) All() []Registration {
	out := make([]Registration, 0, len(t.order))

	for _, name := range t.order {
		out = append(out, t.entries[name])
	}

	return out
}

// Len reports how many declarations are registered.
func (t *Table) Len() int { return len(t.order) }

// RegisterDecl walks decl and its nested declarations (inner decls,
// interface sub-types, enum variants), registering each one under file.
// Top level callers invoke this once per top-level Decl in a parsed file.
func RegisterDecl(t *Table, decl Decl, file string) error {
	if err := t.Register(Registration{
		Name: decl.DeclName().Localize(),
		Kind: decl.DeclKind(),
		Span: decl.DeclSpan(),
		File: file,
	}); err != nil {
		return err
	}

	if iface, ok := decl.(*InterfaceDecl); ok {
		for _, sub := range iface.SubTypes {
			if err := t.Register(Registration{
				Name: sub.DeclName().Localize(),
				Kind: sub.DeclKind(),
				Span: sub.DeclSpan(),
				File: file,
			}); err != nil {
				return err
			}
		}
	}

	if enum, ok := decl.(*EnumDecl); ok {
		for _, v := range enum.Variants {
			if err := t.Register(Registration{
				Name: v.DeclName().Localize(),
				Kind: v.DeclKind(),
				Span: v.DeclSpan(),
				File: file,
			}); err != nil {
				return err
			}
		}
	}

	for _, inner := range decl.InnerDecls() {
		if err := RegisterDecl(t, inner, file); err != nil {
			return err
		}
	}

	return nil
}
