package token

import (
	"io"
	"strings"
	"testing"
)

func allTokens(t *testing.T, src string) []Token {
	t.Helper()

	l := NewLexer("test.reproto", strings.NewReader(src))

	var toks []Token

	for {
		tok, err := l.Token()
		if err == io.EOF {
			break
		}

		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}

		toks = append(toks, tok)
	}

	return toks
}

func TestLexerPunctuationAndKeywords(t *testing.T) {
	toks := allTokens(t, "type Foo { x: u32; }")

	wantTypes := []TokenType{
		TKeyword, TTypeIdentifier, TBraceOpen, TIdentifier, TColon, TKeyword, TSemicolon, TBraceClose,
	}

	if len(toks) != len(wantTypes) {
		t.Fatalf("got %d tokens, want %d: %#v", len(toks), len(wantTypes), toks)
	}

	for i, tok := range toks {
		if tok.TokenType() != wantTypes[i] {
			t.Errorf("token %d: got %s, want %s", i, tok.TokenType(), wantTypes[i])
		}
	}
}

func TestLexerIdentifierKeywordEscape(t *testing.T) {
	toks := allTokens(t, "_type")
	if len(toks) != 1 {
		t.Fatalf("got %d tokens, want 1", len(toks))
	}

	id, ok := toks[0].(*Identifier)
	if !ok {
		t.Fatalf("got %T, want *Identifier", toks[0])
	}

	if id.Value != "type" {
		t.Errorf("got %q, want %q", id.Value, "type")
	}
}

func TestLexerNumberDecimalZero(t *testing.T) {
	toks := allTokens(t, "42")

	num, ok := toks[0].(*Number)
	if !ok {
		t.Fatalf("got %T, want *Number", toks[0])
	}

	if num.Digits.String() != "42" || num.Decimal != 0 {
		t.Errorf("got digits=%s decimal=%d", num.Digits, num.Decimal)
	}
}

func TestLexerNumberFraction(t *testing.T) {
	toks := allTokens(t, "3.50")

	num := toks[0].(*Number)
	if num.Digits.String() != "350" || num.Decimal != 2 {
		t.Errorf("got digits=%s decimal=%d, want 350/2", num.Digits, num.Decimal)
	}
}

func TestLexerNumberNegativeExponent(t *testing.T) {
	toks := allTokens(t, "1.5e-2")

	num := toks[0].(*Number)
	if num.Digits.String() != "15" || num.Decimal != 3 {
		t.Errorf("got digits=%s decimal=%d, want 15/3", num.Digits, num.Decimal)
	}
}

func TestLexerNumberPositiveExponentConsumesDecimal(t *testing.T) {
	toks := allTokens(t, "1.5e2")

	num := toks[0].(*Number)
	if num.Digits.String() != "150" || num.Decimal != 0 {
		t.Errorf("got digits=%s decimal=%d, want 150/0", num.Digits, num.Decimal)
	}
}

func TestLexerStringEscapes(t *testing.T) {
	toks := allTokens(t, `"a\nbA"`)

	s := toks[0].(*String)
	if s.Value != "a\nbA" {
		t.Errorf("got %q, want %q", s.Value, "a\nbA")
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	l := NewLexer("test.reproto", strings.NewReader(`"abc`))

	_, err := l.Token()
	if err == nil {
		t.Fatal("expected an error")
	}

	var lexErr *LexError
	if !asLexError(err, &lexErr) {
		t.Fatalf("got %T, want *LexError", err)
	}

	if lexErr.Kind != ErrUnterminatedString {
		t.Errorf("got kind %s, want %s", lexErr.Kind, ErrUnterminatedString)
	}
}

func TestLexerDocComment(t *testing.T) {
	toks := allTokens(t, "/// first\n/// second\ntype")

	doc, ok := toks[0].(*DocComment)
	if !ok {
		t.Fatalf("got %T, want *DocComment", toks[0])
	}

	if len(doc.Lines) != 2 || doc.Lines[0] != "first" || doc.Lines[1] != "second" {
		t.Errorf("got %#v", doc.Lines)
	}
}

func TestLexerCodeBlock(t *testing.T) {
	toks := allTokens(t, "{{ raw <> stuff }}")

	if toks[0].TokenType() != TCodeOpen {
		t.Fatalf("got %s, want CodeOpen", toks[0].TokenType())
	}

	content, ok := toks[1].(*CodeContent)
	if !ok {
		t.Fatalf("got %T, want *CodeContent", toks[1])
	}

	if content.Value != " raw <> stuff " {
		t.Errorf("got %q", content.Value)
	}

	if toks[2].TokenType() != TCodeClose {
		t.Fatalf("got %s, want CodeClose", toks[2].TokenType())
	}
}

func TestLexerUnterminatedCodeBlock(t *testing.T) {
	l := NewLexer("test.reproto", strings.NewReader("{{ abc"))

	if _, err := l.Token(); err != nil {
		t.Fatalf("unexpected error on CodeOpen: %v", err)
	}

	_, err := l.Token()

	var lexErr *LexError
	if !asLexError(err, &lexErr) {
		t.Fatalf("got %T, want *LexError", err)
	}

	if lexErr.Kind != ErrUnterminatedCodeBlock {
		t.Errorf("got kind %s, want %s", lexErr.Kind, ErrUnterminatedCodeBlock)
	}
}

func asLexError(err error, target **LexError) bool {
	if le, ok := err.(*LexError); ok {
		*target = le
		return true
	}

	return false
}
