// Package diagnostics collects user-facing compiler messages — lexer,
// parser, lowerer, and semck failures alike — as spanned, severity-tagged
// records instead of raw errors, so a CLI front end can render them against
// source text the way token.Explain renders a single *token.PosError.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/reproto/reproto/ir"
	"github.com/reproto/reproto/token"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported message: its severity, the span it concerns,
// a human message, and an optional machine-readable code (e.g. an
// attribute-processing error code or a semck Violation kind name).
type Diagnostic struct {
	Severity Severity
	Span     ir.Span
	Message  string
	Code     string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Span.Begin, d.Severity, d.Message)
}

// Explain renders the diagnostic the way token.Explain renders a single
// *token.PosError: the message plus the offending source line with a caret
// under the span.
func (d Diagnostic) Explain() string {
	posErr := token.NewPosError(d.Span.Node(), fmt.Sprintf("%s: %s", d.Severity, d.Message))
	if d.Code != "" {
		posErr.SetHint("code: " + d.Code)
	}

	return token.Explain(posErr)
}

// Bag is an insertion-ordered, per-file collection of diagnostics. The
// lowerer appends to a Bag rather than aborting on the first error,
// matching §4.5's "reported but does not abort the file" for attribute
// errors; the lexer and parser return a *token.PosError instead, and semck
// returns its own Violation list.
type Bag struct {
	File    string
	entries []Diagnostic
}

// NewBag creates an empty diagnostic bag for the named file.
func NewBag(file string) *Bag {
	return &Bag{File: file}
}

// Add appends a diagnostic.
func (b *Bag) Add(d Diagnostic) {
	b.entries = append(b.entries, d)
}

// Errorf is a convenience wrapper for Add(Diagnostic{Severity: SeverityError, ...}).
func (b *Bag) Errorf(span ir.Span, code, format string, args ...interface{}) {
	b.Add(Diagnostic{Severity: SeverityError, Span: span, Code: code, Message: fmt.Sprintf(format, args...)})
}

// Warnf is the warning-severity counterpart of Errorf.
func (b *Bag) Warnf(span ir.Span, code, format string, args ...interface{}) {
	b.Add(Diagnostic{Severity: SeverityWarning, Span: span, Code: code, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (b *Bag) HasErrors() bool {
	for _, d := range b.entries {
		if d.Severity == SeverityError {
			return true
		}
	}

	return false
}

// All returns every diagnostic in insertion order.
func (b *Bag) All() []Diagnostic {
	return append([]Diagnostic(nil), b.entries...)
}

// Len reports how many diagnostics have been recorded.
func (b *Bag) Len() int { return len(b.entries) }

// Explain renders every diagnostic in the bag against source text, in
// insertion order, for a CLI front end to print.
func (b *Bag) Explain() string {
	sb := &strings.Builder{}

	for _, d := range b.entries {
		sb.WriteString(d.Explain())
	}

	return sb.String()
}
