// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import "math/big"

// A Token is an interface for all possible token types produced by the Lexer.
type Token interface {
	TokenType() TokenType
	Pos() Position
}

// TokenType classifies a Token for diagnostics and for the parser's
// lookahead switch.
type TokenType string

const (
	TIdentifier         TokenType = "Identifier"
	TTypeIdentifier     TokenType = "TypeIdentifier"
	TKeyword            TokenType = "Keyword"
	TString             TokenType = "String"
	TNumber             TokenType = "Number"
	TDocComment         TokenType = "DocComment"
	TPackageDocComment  TokenType = "PackageDocComment"
	TCodeOpen           TokenType = "CodeOpen"
	TCodeContent        TokenType = "CodeContent"
	TCodeClose          TokenType = "CodeClose"
	TBraceOpen          TokenType = "BraceOpen"
	TBraceClose         TokenType = "BraceClose"
	TBracketOpen        TokenType = "BracketOpen"
	TBracketClose       TokenType = "BracketClose"
	TParenOpen          TokenType = "ParenOpen"
	TParenClose         TokenType = "ParenClose"
	TSemicolon          TokenType = "Semicolon"
	TColon              TokenType = "Colon"
	TDoubleColon        TokenType = "DoubleColon"
	TComma              TokenType = "Comma"
	TDot                TokenType = "Dot"
	TQuestion           TokenType = "Question"
	THash               TokenType = "Hash"
	TBang               TokenType = "Bang"
	TEquals             TokenType = "Equals"
	TArrow              TokenType = "Arrow"
	TEOF                TokenType = "EOF"
)

// base is embedded by every concrete token to satisfy Token.
type base struct {
	Position
	kind TokenType
}

func (b base) TokenType() TokenType { return b.kind }
func (b base) Pos() Position        { return b.Position }

func newBase(kind TokenType, begin, end Pos) base {
	return base{Position: Position{BeginPos: begin, EndPos: end}, kind: kind}
}

// Identifier is a lowercase-led identifier: [a-z_][0-9a-zA-Z_]*.
// A leading underscore is stripped to allow escaping a keyword, per spec.md §4.1.
type Identifier struct {
	base
	Value string
}

func NewIdentifier(value string, begin, end Pos) *Identifier {
	return &Identifier{base: newBase(TIdentifier, begin, end), Value: value}
}

// TypeIdentifier is an uppercase-led identifier naming a declaration.
type TypeIdentifier struct {
	base
	Value string
}

func NewTypeIdentifier(value string, begin, end Pos) *TypeIdentifier {
	return &TypeIdentifier{base: newBase(TTypeIdentifier, begin, end), Value: value}
}

// Keyword is one of the reserved words recognized in Normal mode
// (type, tuple, interface, enum, service, use, as, stream, the scalar type
// names, and the boolean literals true/false).
type Keyword struct {
	base
	Value string
}

func NewKeyword(value string, begin, end Pos) *Keyword {
	return &Keyword{base: newBase(TKeyword, begin, end), Value: value}
}

// String is a quoted string literal, already unescaped.
type String struct {
	base
	Value string
}

func NewString(value string, begin, end Pos) *String {
	return &String{base: newBase(TString, begin, end), Value: value}
}

// Number is a numeric literal represented losslessly as digits × 10^-decimal,
// per spec.md §3's Number data model.
type Number struct {
	base
	Digits  *big.Int
	Decimal uint
}

func NewNumber(digits *big.Int, decimal uint, begin, end Pos) *Number {
	return &Number{base: newBase(TNumber, begin, end), Digits: digits, Decimal: decimal}
}

// DocComment is the aggregate of one or more consecutive "///" lines.
type DocComment struct {
	base
	Lines []string
}

func NewDocComment(lines []string, begin, end Pos) *DocComment {
	return &DocComment{base: newBase(TDocComment, begin, end), Lines: lines}
}

// PackageDocComment is the aggregate of one or more consecutive "//!" lines
// at the head of a file.
type PackageDocComment struct {
	base
	Lines []string
}

func NewPackageDocComment(lines []string, begin, end Pos) *PackageDocComment {
	return &PackageDocComment{base: newBase(TPackageDocComment, begin, end), Lines: lines}
}

// CodeOpen is the "{{" that opens a code-block.
type CodeOpen struct{ base }

func NewCodeOpen(begin, end Pos) *CodeOpen { return &CodeOpen{newBase(TCodeOpen, begin, end)} }

// CodeContent is the raw, un-escaped text between "{{" and "}}".
type CodeContent struct {
	base
	Value string
}

func NewCodeContent(value string, begin, end Pos) *CodeContent {
	return &CodeContent{base: newBase(TCodeContent, begin, end), Value: value}
}

// CodeClose is the "}}" that closes a code-block.
type CodeClose struct{ base }

func NewCodeClose(begin, end Pos) *CodeClose { return &CodeClose{newBase(TCodeClose, begin, end)} }

// Punctuation tokens. Each is a single, unambiguous character of source.
type (
	BraceOpen    struct{ base }
	BraceClose   struct{ base }
	BracketOpen  struct{ base }
	BracketClose struct{ base }
	ParenOpen    struct{ base }
	ParenClose   struct{ base }
	Semicolon    struct{ base }
	Colon        struct{ base }
	DoubleColon  struct{ base }
	Comma        struct{ base }
	Dot          struct{ base }
	Question     struct{ base }
	Hash         struct{ base }
	Bang         struct{ base }
	Equals       struct{ base }
	Arrow        struct{ base }
)

func NewBraceOpen(b, e Pos) *BraceOpen       { return &BraceOpen{newBase(TBraceOpen, b, e)} }
func NewBraceClose(b, e Pos) *BraceClose     { return &BraceClose{newBase(TBraceClose, b, e)} }
func NewBracketOpen(b, e Pos) *BracketOpen   { return &BracketOpen{newBase(TBracketOpen, b, e)} }
func NewBracketClose(b, e Pos) *BracketClose { return &BracketClose{newBase(TBracketClose, b, e)} }
func NewParenOpen(b, e Pos) *ParenOpen       { return &ParenOpen{newBase(TParenOpen, b, e)} }
func NewParenClose(b, e Pos) *ParenClose     { return &ParenClose{newBase(TParenClose, b, e)} }
func NewSemicolon(b, e Pos) *Semicolon       { return &Semicolon{newBase(TSemicolon, b, e)} }
func NewColon(b, e Pos) *Colon               { return &Colon{newBase(TColon, b, e)} }
func NewDoubleColon(b, e Pos) *DoubleColon   { return &DoubleColon{newBase(TDoubleColon, b, e)} }
func NewComma(b, e Pos) *Comma               { return &Comma{newBase(TComma, b, e)} }
func NewDot(b, e Pos) *Dot                   { return &Dot{newBase(TDot, b, e)} }
func NewQuestion(b, e Pos) *Question         { return &Question{newBase(TQuestion, b, e)} }
func NewHash(b, e Pos) *Hash                 { return &Hash{newBase(THash, b, e)} }
func NewBang(b, e Pos) *Bang                 { return &Bang{newBase(TBang, b, e)} }
func NewEquals(b, e Pos) *Equals             { return &Equals{newBase(TEquals, b, e)} }
func NewArrow(b, e Pos) *Arrow               { return &Arrow{newBase(TArrow, b, e)} }
