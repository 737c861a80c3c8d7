package ir

import "github.com/reproto/reproto/token"

// Span is a source location carried on every IR node that can be the
// subject of a diagnostic: lexical/syntax spans from the parser survive
// lowering unchanged so diagnostics at any later stage (attribute misuse,
// semck violations, translation failures) point at real source text.
type Span struct {
	Begin token.Pos
	End   token.Pos
}

// Node adapts a Span to token.Node for use with token.PosError.
func (s Span) Node() token.Node { return token.NewNode(s.Begin, s.End) }

func NewSpan(begin, end token.Pos) Span { return Span{Begin: begin, End: end} }
