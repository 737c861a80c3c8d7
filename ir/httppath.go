package ir

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// PathSegment is one element of a parsed HTTP path template: either a
// literal path component or a `{name}` argument placeholder bound to one of
// the endpoint's arguments (spec.md §4.5, the #[http(path="...")] table).
type PathSegment struct {
	Literal string
	Arg     string
	IsArg   bool
}

// PathTemplate is the parsed form of a #[http(path="...")] argument: a
// sequence of literal and argument segments, built once at lowering time so
// later stages (semck, the flavor translator's endpoint/request handling,
// and the reproto back end) never re-parse the raw string.
type PathTemplate struct {
	Raw      string
	Segments []PathSegment
}

// Arguments returns the names of every `{name}` placeholder in the
// template, in order of appearance.
func (p *PathTemplate) Arguments() []string {
	var out []string

	for _, seg := range p.Segments {
		if seg.IsArg {
			out = append(out, seg.Arg)
		}
	}

	return out
}

var pathLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Arg", Pattern: `\{[A-Za-z_][A-Za-z0-9_]*\}`},
	{Name: "Slash", Pattern: `/`},
	{Name: "Literal", Pattern: `[^/{}]+`},
})

// pathGrammar is the participle grammar feeding ParsePathTemplate: a bare
// sequence of slash/literal/arg tokens, generalizing the teacher's
// struct-tagged literal grammars (ast.go's String/Int/Bool/SemVer) to a
// small repeating grammar instead of a single-token one.
type pathGrammar struct {
	Parts []pathPart `@@*`
}

type pathPart struct {
	Slash   string `(  @Slash`
	Arg     string ` | @Arg`
	Literal string ` | @Literal )`
}

var pathParser = participle.MustBuild[pathGrammar](participle.Lexer(pathLexer))

// ParsePathTemplate parses the raw string given to #[http(path="...")] into
// a PathTemplate, validating that every `{name}` placeholder is a bare
// identifier. It does not check placeholders against the endpoint's actual
// arguments — that cross-check happens during lowering, once both the
// template and the argument list are available (spec.md §4.5).
func ParsePathTemplate(raw string) (*PathTemplate, error) {
	if !strings.HasPrefix(raw, "/") {
		return nil, fmt.Errorf("http path must start with \"/\", got %q", raw)
	}

	parsed, err := pathParser.ParseString("", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid http path %q: %w", raw, err)
	}

	tmpl := &PathTemplate{Raw: raw}
	seen := make(map[string]bool)

	for _, part := range parsed.Parts {
		switch {
		case part.Slash != "":
			tmpl.Segments = append(tmpl.Segments, PathSegment{Literal: "/"})
		case part.Arg != "":
			name := strings.TrimSuffix(strings.TrimPrefix(part.Arg, "{"), "}")

			if seen[name] {
				return nil, fmt.Errorf("invalid http path %q: duplicate argument {%s}", raw, name)
			}

			seen[name] = true
			tmpl.Segments = append(tmpl.Segments, PathSegment{Arg: name, IsArg: true})
		default:
			tmpl.Segments = append(tmpl.Segments, PathSegment{Literal: part.Literal})
		}
	}

	return tmpl, nil
}

// ValidateArguments checks that every `{name}` placeholder in the template
// names one of the endpoint's declared arguments, that the argument's type
// is not an array or a map (a named type is accepted), and that the
// arguments left over once the path is
// satisfied collapse into at most one request body — an endpoint can bind at
// most one unconsumed argument as its request.
func (p *PathTemplate) ValidateArguments(args []Argument) error {
	byName := make(map[string]Argument, len(args))
	for _, a := range args {
		byName[a.Identifier] = a
	}

	for _, name := range p.Arguments() {
		arg, ok := byName[name]
		if !ok {
			return fmt.Errorf("http path argument {%s} does not match any endpoint argument", name)
		}

		switch arg.Type.(type) {
		case ArrayType, MapType:
			return fmt.Errorf("http path argument {%s} must be a scalar type", name)
		}
	}

	if unused := p.UnusedArguments(args); len(unused) > 1 {
		names := make([]string, len(unused))
		for i, a := range unused {
			names[i] = a.Identifier
		}

		return fmt.Errorf("endpoint has %d arguments not bound in the path (%s); at most one can become the request body",
			len(unused), strings.Join(names, ", "))
	}

	return nil
}

// UnusedArguments returns the endpoint arguments, in declaration order, that
// no `{name}` placeholder in the template consumes — the candidate for the
// request body once ValidateArguments has confirmed there is at most one.
func (p *PathTemplate) UnusedArguments(args []Argument) []Argument {
	consumed := make(map[string]bool, len(p.Segments))
	for _, name := range p.Arguments() {
		consumed[name] = true
	}

	var out []Argument

	for _, a := range args {
		if !consumed[a.Identifier] {
			out = append(out, a)
		}
	}

	return out
}
