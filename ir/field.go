package ir

// Field is (identifier, wire-name, type, required?, field-as?, comment,
// attributes) per spec.md §3. WireName defaults to Identifier unless the
// source gave an explicit `as "..."` override, recorded in HasWireAs.
type Field struct {
	Identifier string
	WireName   string
	HasWireAs  bool
	Type       Type
	Required   bool
	Comment    []string
	Attributes *Attributes
	Span       Span

	// Default, if non-nil, is the constant-folded default value attached
	// by `= <literal>` in the source (original_source's value_builder.rs
	// supplies the folding rules this is built from).
	Default Value
}

// IsDiscriminating reports whether this field participates in untagged
// interface sub-type disambiguation: required and not a wildcard (`any`)
// type, per spec.md §3 and the Open Question in §9 about optional fields
// never participating even when present.
func (f Field) IsDiscriminating() bool {
	if !f.Required {
		return false
	}

	_, isAny := f.Type.(AnyType)

	return !isAny
}
