package ir

// Selection is the parsed body of one `#[name(...)]` or `#![name(...)]`
// attribute: a list of bare words and a map of named arguments, per
// spec.md §4.5's GLOSSARY entry for "Selection".
type Selection struct {
	Words []string
	Named map[string]Value
	Span  Span
}

// Word returns whether w was given as a bare word in the selection, and
// removes it so a later "leftover words" check only sees what nobody took.
func (s *Selection) Word(w string) bool {
	for i, have := range s.Words {
		if have == w {
			s.Words = append(s.Words[:i], s.Words[i+1:]...)
			return true
		}
	}

	return false
}

// TakeNamed returns and removes a named argument.
func (s *Selection) TakeNamed(name string) (Value, bool) {
	if s.Named == nil {
		return nil, false
	}

	v, ok := s.Named[name]
	if ok {
		delete(s.Named, name)
	}

	return v, ok
}

// Empty reports whether every word and named argument has been taken. Any
// consumer that doesn't call Word/TakeNamed for everything it allows will
// leave this false, which the attribute processor (spec.md §4.5) turns into
// an "unexpected attribute argument" diagnostic.
func (s *Selection) Empty() bool {
	return len(s.Words) == 0 && len(s.Named) == 0
}

// Attributes is the destructive "take" bag described in spec.md §4.5 and
// §9 ("Attribute 'take' protocol"): each recognized attribute consumer calls
// TakeSelection, which removes the entry from the map. Anything left over
// after every consumer has run is an "unknown attribute" diagnostic.
//
// This generalizes the teacher's util.AttributeList (a flat Add/Pop/Get/Set
// list of single key/value pairs) to a map of named, structured Selections,
// since reproto attributes carry word lists and named arguments rather than
// a single string value — but it keeps the same "consuming removes it"
// discipline the teacher's Pop enforces.
type Attributes struct {
	selections map[string]*Selection
	order      []string
}

// NewAttributes creates an empty Attributes bag.
func NewAttributes() *Attributes {
	return &Attributes{selections: make(map[string]*Selection)}
}

// Add installs a parsed selection under the given attribute name. Per
// spec.md §4.3, a second #[...] with the same name on the same node is a
// lowering error the caller should report separately; Add itself just
// overwrites, mirroring AttributeList.Set's last-writer-wins behavior.
func (a *Attributes) Add(name string, sel Selection) {
	if _, exists := a.selections[name]; !exists {
		a.order = append(a.order, name)
	}

	a.selections[name] = &sel
}

// TakeSelection removes and returns the selection registered for name, if
// any — the "take" half of the protocol.
func (a *Attributes) TakeSelection(name string) (*Selection, bool) {
	sel, ok := a.selections[name]
	if !ok {
		return nil, false
	}

	delete(a.selections, name)

	for i, n := range a.order {
		if n == name {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}

	return sel, true
}

// Contains reports whether name is currently registered in the bag
// (whether or not anything has taken it yet).
func (a *Attributes) Contains(name string) bool {
	_, ok := a.selections[name]
	return ok
}

// Remaining returns the names of attributes nobody has taken yet, in
// insertion order, so diagnostics stay deterministic.
func (a *Attributes) Remaining() []string {
	return append([]string(nil), a.order...)
}

// Len reports how many attribute names are still present.
func (a *Attributes) Len() int { return len(a.order) }
