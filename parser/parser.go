// Package parser turns a token.Lexer's token stream into an ast.File: a
// hand-written recursive-descent parser over the grammar in spec.md §4.2
// (file, use-decl, the five declaration kinds, field/endpoint syntax,
// attribute forms, and value literals). It mirrors the token-buffering
// architecture of the teacher's parser2.Decoder (a one-token lookahead
// buffer over a streaming lexer) rather than building on a parser
// generator, since reproto's grammar needs unbounded backtracking-free
// lookahead of at most one token everywhere it matters.
package parser

import (
	"fmt"
	"io"

	"github.com/reproto/reproto/ast"
	"github.com/reproto/reproto/token"
)

// Parser wraps a token.Lexer with one-token pushback, grounded on
// parser2.Decoder's buffering scheme.
type Parser struct {
	lex     *token.Lexer
	file    string
	peeked  token.Token
	hasPeek bool
}

// New creates a parser reading from r, identified as file in diagnostics.
func New(file string, r io.Reader) *Parser {
	return &Parser{lex: token.NewLexer(file, r), file: file}
}

func (p *Parser) next() (token.Token, error) {
	if p.hasPeek {
		p.hasPeek = false
		tok := p.peeked
		p.peeked = nil
		return tok, nil
	}

	return p.lex.Token()
}

func (p *Parser) peek() (token.Token, error) {
	if !p.hasPeek {
		tok, err := p.lex.Token()
		if err != nil {
			return nil, err
		}

		p.peeked = tok
		p.hasPeek = true
	}

	return p.peeked, nil
}

func (p *Parser) errorf(pos token.Position, format string, args ...interface{}) error {
	return token.NewPosError(nodeOf(pos), fmt.Sprintf(format, args...))
}

func nodeOf(pos token.Position) token.Node { return pos }

func posOf(begin, end token.Pos) token.Position {
	return token.Position{BeginPos: begin, EndPos: end}
}

// expectPunct consumes the next token and fails unless it has kind k,
// returning its position.
func (p *Parser) expectPunct(k token.TokenType) (token.Position, error) {
	tok, err := p.next()
	if err != nil {
		return token.Position{}, err
	}

	if tok.TokenType() != k {
		return token.Position{}, p.errorf(tok.Pos(), "expected %s, got %s", k, tok.TokenType())
	}

	return tok.Pos(), nil
}

func (p *Parser) at(k token.TokenType) (bool, error) {
	tok, err := p.peek()
	if err != nil {
		if err == io.EOF {
			return k == token.TEOF, nil
		}

		return false, err
	}

	return tok.TokenType() == k, nil
}

// Parse consumes the whole token stream and returns the parsed file.
func (p *Parser) Parse() (*ast.File, error) {
	f := &ast.File{}

	begin := p.lex.Pos()

	for {
		tok, err := p.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if tok.TokenType() == token.TPackageDocComment {
			dc, _ := p.next()
			f.PackageDoc = append(f.PackageDoc, dc.(*token.PackageDocComment).Lines...)
			continue
		}

		break
	}

	// The first #[...] (without "!") ends the file attributes; it belongs to
	// the first declaration and is handed over to it below.
	var pending []*ast.Attribute

	for {
		tok, err := p.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if tok.TokenType() != token.THash {
			break
		}

		attr, err := p.parseOneAttribute()
		if err != nil {
			return nil, err
		}

		if !attr.File {
			pending = append(pending, attr)
			break
		}

		f.Attributes = append(f.Attributes, attr)
	}

	for {
		ok, err := p.at(token.TEOF)
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}

		comment, err := p.consumeDocComment()
		if err != nil {
			return nil, err
		}

		attrs, err := p.parseAttributes()
		if err != nil {
			return nil, err
		}

		if pending != nil {
			attrs = append(pending, attrs...)
			pending = nil
		}

		kwTok, err := p.peek()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		kw, ok := kwTok.(*token.Keyword)
		if !ok {
			return nil, p.errorf(kwTok.Pos(), "expected declaration or use, got %s", kwTok.TokenType())
		}

		if kw.Value == "use" {
			use, err := p.parseUse()
			if err != nil {
				return nil, err
			}

			f.Uses = append(f.Uses, use)
			continue
		}

		decl, err := p.parseDecl(kw.Value, comment, attrs)
		if err != nil {
			return nil, err
		}

		f.Decls = append(f.Decls, decl)
	}

	end := p.lex.Pos()
	f.Span = posOf(begin, end)

	return f, nil
}

// consumeDocComment eats a leading /// doc comment, if present, returning
// its lines.
func (p *Parser) consumeDocComment() ([]string, error) {
	tok, err := p.peek()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if dc, ok := tok.(*token.DocComment); ok {
		p.next()
		return dc.Lines, nil
	}

	return nil, nil
}

func (p *Parser) parseUse() (*ast.UseDecl, error) {
	begin, err := p.expectKeyword("use")
	if err != nil {
		return nil, err
	}

	path, err := p.parseDottedPath()
	if err != nil {
		return nil, err
	}

	use := &ast.UseDecl{Package: path}

	ok, err := p.at(token.TString)
	if err != nil {
		return nil, err
	}

	if ok {
		tok, _ := p.next()
		use.Range = tok.(*token.String).Value
		use.HasRange = true
	}

	ok, err = p.atKeyword("as")
	if err != nil {
		return nil, err
	}

	if ok {
		p.next()

		ident, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}

		use.Alias = ident
		use.HasAlias = true
	}

	end, err := p.expectPunct(token.TSemicolon)
	if err != nil {
		return nil, err
	}

	use.Span = posOf(begin.BeginPos, end.EndPos)

	return use, nil
}

func (p *Parser) expectKeyword(word string) (token.Position, error) {
	tok, err := p.next()
	if err != nil {
		return token.Position{}, err
	}

	kw, ok := tok.(*token.Keyword)
	if !ok || kw.Value != word {
		return token.Position{}, p.errorf(tok.Pos(), "expected keyword %q", word)
	}

	return tok.Pos(), nil
}

func (p *Parser) atKeyword(word string) (bool, error) {
	tok, err := p.peek()
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}

	kw, ok := tok.(*token.Keyword)
	return ok && kw.Value == word, nil
}

func (p *Parser) expectIdentifier() (string, error) {
	tok, err := p.next()
	if err != nil {
		return "", err
	}

	id, ok := tok.(*token.Identifier)
	if !ok {
		return "", p.errorf(tok.Pos(), "expected identifier, got %s", tok.TokenType())
	}

	return id.Value, nil
}

func (p *Parser) expectTypeIdentifier() (string, error) {
	tok, err := p.next()
	if err != nil {
		return "", err
	}

	id, ok := tok.(*token.TypeIdentifier)
	if !ok {
		return "", p.errorf(tok.Pos(), "expected type identifier, got %s", tok.TokenType())
	}

	return id.Value, nil
}

// parseDottedPath parses identifier ("." identifier)*, used for use-decl
// package paths.
func (p *Parser) parseDottedPath() ([]string, error) {
	first, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	parts := []string{first}

	for {
		ok, err := p.at(token.TDot)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		p.next()

		part, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}

		parts = append(parts, part)
	}

	return parts, nil
}
