package parser

import (
	"github.com/reproto/reproto/ast"
	"github.com/reproto/reproto/token"
)

var scalarNames = map[string]bool{
	"double": true, "float": true, "boolean": true, "string": true,
	"bytes": true, "datetime": true, "any": true,
	"i32": true, "i64": true, "u32": true, "u64": true,
}

// parseField parses `identifier "?"? ":" type ("as" "wire")? ("=" default)? ";"`
// per spec.md §4.2. A trailing "?" marks the field optional; its absence
// means required.
func (p *Parser) parseField(comment []string, attrs []*ast.Attribute) (*ast.Field, error) {
	begin, err := p.expectIdentifierPos()
	if err != nil {
		return nil, err
	}

	f := &ast.Field{Identifier: begin.name, Modifier: ast.ModifierRequired, Comment: comment, Attributes: attrs}

	ok, err := p.at(token.TQuestion)
	if err != nil {
		return nil, err
	}

	if ok {
		p.next()
		f.Modifier = ast.ModifierOptional
	}

	if _, err := p.expectPunct(token.TColon); err != nil {
		return nil, err
	}

	ty, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}

	f.Type = ty

	asOk, err := p.atKeyword("as")
	if err != nil {
		return nil, err
	}

	if asOk {
		p.next()

		tok, err := p.next()
		if err != nil {
			return nil, err
		}

		str, ok := tok.(*token.String)
		if !ok {
			return nil, p.errorf(tok.Pos(), "expected string after \"as\", got %s", tok.TokenType())
		}

		f.WireAs = str.Value
		f.HasWireAs = true
	}

	endPos := begin.pos.EndPos

	ok, err = p.at(token.TEquals)
	if err != nil {
		return nil, err
	}

	if ok {
		p.next()

		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}

		f.Default = lit
	}

	ok, err = p.at(token.TSemicolon)
	if err != nil {
		return nil, err
	}

	if ok {
		semi, _ := p.next()
		endPos = semi.Pos().EndPos
	}

	f.Span = posOf(begin.pos.BeginPos, endPos)

	return f, nil
}

// parseScalarType parses one of the reserved scalar type keywords.
func (p *Parser) parseScalarType() (*ast.ScalarType, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}

	kw, ok := tok.(*token.Keyword)
	if !ok || !scalarNames[kw.Value] {
		return nil, p.errorf(tok.Pos(), "expected a scalar type, got %s", tok.TokenType())
	}

	return &ast.ScalarType{Name: kw.Value, Span: tok.Pos()}, nil
}

// parseTypeExpr parses a type reference: a scalar keyword, "[T]" array,
// "{K: V}" map, or a dotted TypeIdentifier path (spec.md §4.2).
func (p *Parser) parseTypeExpr() (ast.TypeExpr, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case *token.Keyword:
		if scalarNames[t.Value] {
			p.next()
			return &ast.ScalarType{Name: t.Value, Span: t.Pos()}, nil
		}

		return nil, p.errorf(t.Pos(), "expected a type, got keyword %q", t.Value)
	case *token.BracketOpen:
		p.next()

		inner, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}

		end, err := p.expectPunct(token.TBracketClose)
		if err != nil {
			return nil, err
		}

		return &ast.ArrayTypeExpr{Inner: inner, Span: posOf(t.Pos().BeginPos, end.EndPos)}, nil
	case *token.BraceOpen:
		p.next()

		key, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expectPunct(token.TColon); err != nil {
			return nil, err
		}

		value, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}

		end, err := p.expectPunct(token.TBraceClose)
		if err != nil {
			return nil, err
		}

		return &ast.MapTypeExpr{Key: key, Value: value, Span: posOf(t.Pos().BeginPos, end.EndPos)}, nil
	case *token.TypeIdentifier, *token.Identifier:
		return p.parseNameRef()
	default:
		return nil, p.errorf(tok.Pos(), "expected a type, got %s", tok.TokenType())
	}
}

// parseNameRef parses (Identifier ".")? TypeIdentifier ("." TypeIdentifier)*,
// addressing a (possibly nested, possibly cross-package) declaration, e.g.
// `Animal.Dragon` or `geo.Point`. A leading lowercase segment is a use-decl
// alias; every segment after the first dot must name a declaration, so it is
// always a TypeIdentifier.
func (p *Parser) parseNameRef() (*ast.NameRef, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}

	var firstName string

	switch v := tok.(type) {
	case *token.TypeIdentifier:
		firstName = v.Value
	case *token.Identifier:
		firstName = v.Value
	default:
		return nil, p.errorf(tok.Pos(), "expected a type name, got %s", tok.TokenType())
	}

	begin := tok.Pos()

	ref := &ast.NameRef{Path: []string{firstName}}
	end := begin.EndPos

	for {
		ok, err := p.at(token.TDot)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		p.next()

		part, err := p.expectTypeIdentifierPos()
		if err != nil {
			return nil, err
		}

		ref.Path = append(ref.Path, part.name)
		end = part.pos.EndPos
	}

	ref.Span = posOf(begin.BeginPos, end)

	return ref, nil
}
