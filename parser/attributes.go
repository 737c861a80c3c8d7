package parser

import (
	"io"

	"github.com/reproto/reproto/ast"
	"github.com/reproto/reproto/ir"
	"github.com/reproto/reproto/token"
)

// parseAttributes consumes a run of `#[name(...)]` and `#![name(...)]`
// blocks preceding a declaration, field, or endpoint (spec.md §4.2).
func (p *Parser) parseAttributes() ([]*ast.Attribute, error) {
	var attrs []*ast.Attribute

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

		attrs = append(attrs, attr)
	}

	return attrs, nil
}

func (p *Parser) parseOneAttribute() (*ast.Attribute, error) {
	begin, err := p.expectPunct(token.THash)
	if err != nil {
		return nil, err
	}

	isFile := false

	ok, err := p.at(token.TBang)
	if err != nil {
		return nil, err
	}

	if ok {
		p.next()
		isFile = true
	}

	if _, err := p.expectPunct(token.TBracketOpen); err != nil {
		return nil, err
	}

	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	attr := &ast.Attribute{File: isFile, Name: name}

	ok, err = p.at(token.TParenOpen)
	if err != nil {
		return nil, err
	}

	if ok {
		p.next()

		if err := p.parseAttributeArgs(attr); err != nil {
			return nil, err
		}

		if _, err := p.expectPunct(token.TParenClose); err != nil {
			return nil, err
		}
	}

	end, err := p.expectPunct(token.TBracketClose)
	if err != nil {
		return nil, err
	}

	attr.Span = posOf(begin.BeginPos, end.EndPos)

	return attr, nil
}

// parseAttributeArgs parses a comma-separated list of bare words
// (`word`) and named arguments (`name=value`) into attr.
func (p *Parser) parseAttributeArgs(attr *ast.Attribute) error {
	for {
		ok, err := p.at(token.TParenClose)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		// A bare string, like `#[import("reflect")]`, is a positional word
		// argument; only a bare identifier can introduce a `name=value` pair.
		strOk, err := p.at(token.TString)
		if err != nil {
			return err
		}

		if strOk {
			tok, _ := p.next()
			attr.Words = append(attr.Words, tok.(*token.String).Value)
		} else {
			name, err := p.expectIdentifier()
			if err != nil {
				return err
			}

			isNamed, err := p.at(token.TEquals)
			if err != nil {
				return err
			}

			if isNamed {
				p.next()

				lit, err := p.parseLiteral()
				if err != nil {
					return err
				}

				if attr.Named == nil {
					attr.Named = make(map[string]ast.Literal)
				}

				attr.Named[name] = lit
			} else {
				attr.Words = append(attr.Words, name)
			}
		}

		ok, err = p.at(token.TComma)
		if err != nil {
			return err
		}

		if !ok {
			return nil
		}

		p.next()
	}
}

// parseLiteral parses a value literal: string, number, boolean identifier,
// bare identifier, or bracketed array (spec.md §4.2).
func (p *Parser) parseLiteral() (ast.Literal, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case *token.String:
		return &ast.StringLit{Value: v.Value, Span: v.Pos()}, nil
	case *token.Number:
		return &ast.NumberLit{Value: ir.Number{Digits: v.Digits, Decimal: v.Decimal}, Span: v.Pos()}, nil
	case *token.Identifier:
		switch v.Value {
		case "true":
			return &ast.BoolLit{Value: true, Span: v.Pos()}, nil
		case "false":
			return &ast.BoolLit{Value: false, Span: v.Pos()}, nil
		default:
			return &ast.IdentLit{Value: v.Value, Span: v.Pos()}, nil
		}
	case *token.Keyword:
		if v.Value == "true" || v.Value == "false" {
			return &ast.BoolLit{Value: v.Value == "true", Span: v.Pos()}, nil
		}

		return &ast.IdentLit{Value: v.Value, Span: v.Pos()}, nil
	case *token.BracketOpen:
		return p.parseArrayLiteral(v.Pos())
	default:
		return nil, p.errorf(tok.Pos(), "expected value literal, got %s", tok.TokenType())
	}
}

func (p *Parser) parseArrayLiteral(begin token.Position) (ast.Literal, error) {
	arr := &ast.ArrayLit{}

	for {
		ok, err := p.at(token.TBracketClose)
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}

		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}

		arr.Values = append(arr.Values, lit)

		ok, err = p.at(token.TComma)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		p.next()
	}

	end, err := p.expectPunct(token.TBracketClose)
	if err != nil {
		return nil, err
	}

	arr.Span = posOf(begin.BeginPos, end.EndPos)

	return arr, nil
}
