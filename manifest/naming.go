package manifest

import (
	"strings"
	"unicode"
)

// SourceCase names the casing convention an identifier is split back out of
// before being rejoined in a target convention, per original_source's
// naming.rs (CamelCase/SnakeCase as parse-side "Source"s).
type SourceCase int

const (
	SourceCamel SourceCase = iota
	SourceSnake
)

// Convention names one of the four output conventions original_source's
// FromNaming trait exposes.
type Convention int

const (
	LowerCamel Convention = iota
	UpperCamel
	LowerSnake
	UpperSnake
)

// ConvertIdent rewrites input (itself written in source's convention) into
// target's convention, used by the id_converter manifest option (spec.md
// §6) to rename fields/variants before a back end ever sees them.
func ConvertIdent(input string, source SourceCase, target Convention) string {
	words := splitWords(input, source)
	return joinWords(words, target)
}

func splitWords(input string, source SourceCase) []string {
	switch source {
	case SourceSnake:
		return strings.FieldsFunc(input, func(r rune) bool { return r == '_' })
	default:
		return splitCamelWords(input)
	}
}

// splitCamelWords breaks a camelCase/PascalCase identifier at every
// uppercase letter that follows a non-empty run, mirroring naming.rs's
// CamelCase::operate boundary rule ("peek: if next is uppercase, end word").
func splitCamelWords(input string) []string {
	var words []string

	var buf []rune

	runes := []rune(input)

	for i, r := range runes {
		buf = append(buf, r)

		if i+1 < len(runes) && unicode.IsUpper(runes[i+1]) && len(buf) > 0 {
			words = append(words, string(buf))
			buf = nil
		}
	}

	if len(buf) > 0 {
		words = append(words, string(buf))
	}

	return words
}

func joinWords(words []string, target Convention) string {
	out := make([]string, len(words))

	// Every convention here uppercases/lowercases a whole word uniformly
	// except the *Camel conventions, which only case the leading rune of
	// each word and lowercase the rest.
	for i, w := range words {
		switch target {
		case LowerCamel:
			if i == 0 {
				out[i] = lowerFirst(w)
			} else {
				out[i] = upperFirstRune(w)
			}
		case UpperCamel:
			out[i] = upperFirstRune(w)
		case LowerSnake:
			out[i] = strings.ToLower(w)
		case UpperSnake:
			out[i] = strings.ToUpper(w)
		default:
			out[i] = w
		}
	}

	sep := ""
	if target == LowerSnake || target == UpperSnake {
		sep = "_"
	}

	return strings.Join(out, sep)
}

func lowerFirst(w string) string {
	r := []rune(w)
	if len(r) == 0 {
		return w
	}

	return string(unicode.ToLower(r[0])) + strings.ToLower(string(r[1:]))
}

func upperFirstRune(w string) string {
	r := []rune(w)
	if len(r) == 0 {
		return w
	}

	return string(unicode.ToUpper(r[0])) + strings.ToLower(string(r[1:]))
}
