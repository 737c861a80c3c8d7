package parser

import (
	"github.com/reproto/reproto/ast"
	"github.com/reproto/reproto/token"
)

// parseDecl dispatches on the keyword that opened the declaration. comment
// and attrs were already consumed by the caller (Parse), since both the
// doc-comment and the attribute run precede the keyword.
func (p *Parser) parseDecl(keyword string, comment []string, attrs []*ast.Attribute) (ast.Decl, error) {
	switch keyword {
	case "type":
		return p.parseTypeDecl(comment, attrs)
	case "tuple":
		return p.parseTupleDecl(comment, attrs)
	case "interface":
		return p.parseInterfaceDecl(comment, attrs)
	case "enum":
		return p.parseEnumDecl(comment, attrs)
	case "service":
		return p.parseServiceDecl(comment, attrs)
	default:
		tok, _ := p.peek()
		return nil, p.errorf(tok.Pos(), "expected a declaration (type, tuple, interface, enum, service), got %q", keyword)
	}
}

func (p *Parser) parseTypeDecl(comment []string, attrs []*ast.Attribute) (*ast.TypeDecl, error) {
	begin, err := p.expectKeyword("type")
	if err != nil {
		return nil, err
	}

	name, err := p.expectTypeIdentifier()
	if err != nil {
		return nil, err
	}

	d := &ast.TypeDecl{Identifier: name, Comment: comment, Attributes: attrs}

	end, err := p.parseBody(func(kw string, c []string, a []*ast.Attribute) error {
		if kw == "" {
			f, err := p.parseField(c, a)
			if err != nil {
				return err
			}

			d.Fields = append(d.Fields, f)
			return nil
		}

		inner, err := p.parseDecl(kw, c, a)
		if err != nil {
			return err
		}

		d.Inner = append(d.Inner, inner)
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.Span = posOf(begin.BeginPos, end)

	return d, nil
}

func (p *Parser) parseTupleDecl(comment []string, attrs []*ast.Attribute) (*ast.TupleDecl, error) {
	begin, err := p.expectKeyword("tuple")
	if err != nil {
		return nil, err
	}

	name, err := p.expectTypeIdentifier()
	if err != nil {
		return nil, err
	}

	d := &ast.TupleDecl{Identifier: name, Comment: comment, Attributes: attrs}

	end, err := p.parseBody(func(kw string, c []string, a []*ast.Attribute) error {
		if kw == "" {
			f, err := p.parseField(c, a)
			if err != nil {
				return err
			}

			d.Fields = append(d.Fields, f)
			return nil
		}

		inner, err := p.parseDecl(kw, c, a)
		if err != nil {
			return err
		}

		d.Inner = append(d.Inner, inner)
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.Span = posOf(begin.BeginPos, end)

	return d, nil
}

func (p *Parser) parseInterfaceDecl(comment []string, attrs []*ast.Attribute) (*ast.InterfaceDecl, error) {
	begin, err := p.expectKeyword("interface")
	if err != nil {
		return nil, err
	}

	name, err := p.expectTypeIdentifier()
	if err != nil {
		return nil, err
	}

	d := &ast.InterfaceDecl{Identifier: name, Comment: comment, Attributes: attrs}

	end, err := p.parseBody(func(kw string, c []string, a []*ast.Attribute) error {
		if kw == "" {
			f, err := p.parseField(c, a)
			if err != nil {
				return err
			}

			d.Fields = append(d.Fields, f)
			return nil
		}

		if kw == "type" {
			// A nested `type Name { ... }` block inside an interface body is a
			// sub-type: its fields are the variant-specific fields layered on
			// top of the shared fields above.
			st, err := p.parseSubType(c, a)
			if err != nil {
				return err
			}

			d.SubTypes = append(d.SubTypes, st)
			return nil
		}

		inner, err := p.parseDecl(kw, c, a)
		if err != nil {
			return err
		}

		d.Inner = append(d.Inner, inner)
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.Span = posOf(begin.BeginPos, end)

	return d, nil
}

func (p *Parser) parseSubType(comment []string, attrs []*ast.Attribute) (*ast.SubType, error) {
	if _, err := p.expectKeyword("type"); err != nil {
		return nil, err
	}

	name, err := p.expectTypeIdentifier()
	if err != nil {
		return nil, err
	}

	st := &ast.SubType{Identifier: name, Comment: comment, Attributes: attrs}

	// `type Name as "wire" { ... }` overrides the sub-type's wire name.
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

		wire, ok := tok.(*token.String)
		if !ok {
			return nil, p.errorf(tok.Pos(), "expected sub-type wire name string, got %s", tok.TokenType())
		}

		st.WireName = wire.Value
		st.HasWireAs = true
	}

	begin, err := p.expectPunct(token.TBraceOpen)
	if err != nil {
		return nil, err
	}

	for {
		ok, err := p.at(token.TBraceClose)
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}

		c, err := p.consumeDocComment()
		if err != nil {
			return nil, err
		}

		a, err := p.parseAttributes()
		if err != nil {
			return nil, err
		}

		f, err := p.parseField(c, a)
		if err != nil {
			return nil, err
		}

		st.Fields = append(st.Fields, f)
	}

	end, err := p.expectPunct(token.TBraceClose)
	if err != nil {
		return nil, err
	}

	st.Span = posOf(begin.BeginPos, end.EndPos)

	return st, nil
}

func (p *Parser) parseEnumDecl(comment []string, attrs []*ast.Attribute) (*ast.EnumDecl, error) {
	begin, err := p.expectKeyword("enum")
	if err != nil {
		return nil, err
	}

	name, err := p.expectTypeIdentifier()
	if err != nil {
		return nil, err
	}

	d := &ast.EnumDecl{Identifier: name, Comment: comment, Attributes: attrs}

	// `enum Name as <scalar> { ... }` names the base type explicitly.
	asOk, err := p.atKeyword("as")
	if err != nil {
		return nil, err
	}

	if asOk {
		p.next()

		scalar, err := p.parseScalarType()
		if err != nil {
			return nil, err
		}

		d.Base = scalar
	}

	if _, err := p.expectPunct(token.TBraceOpen); err != nil {
		return nil, err
	}

	for {
		ok, err := p.at(token.TBraceClose)
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}

		c, err := p.consumeDocComment()
		if err != nil {
			return nil, err
		}

		a, err := p.parseAttributes()
		if err != nil {
			return nil, err
		}

		v, err := p.parseVariant(c, a)
		if err != nil {
			return nil, err
		}

		d.Variants = append(d.Variants, v)
	}

	end, err := p.expectPunct(token.TBraceClose)
	if err != nil {
		return nil, err
	}

	d.Span = posOf(begin.BeginPos, end.EndPos)

	return d, nil
}

func (p *Parser) parseVariant(comment []string, attrs []*ast.Attribute) (*ast.Variant, error) {
	begin, err := p.expectTypeIdentifierPos()
	if err != nil {
		return nil, err
	}

	v := &ast.Variant{Identifier: begin.name, Comment: comment, Attributes: attrs}

	ok, err := p.at(token.TEquals)
	if err != nil {
		return nil, err
	}

	endPos := begin.pos.EndPos

	if ok {
		p.next()

		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}

		v.Value = lit
	}

	ok, err = p.at(token.TSemicolon)
	if err != nil {
		return nil, err
	}

	if ok {
		semi, _ := p.next()
		endPos = semi.Pos().EndPos
	}

	v.Span = posOf(begin.pos.BeginPos, endPos)

	return v, nil
}

type identPos struct {
	name string
	pos  token.Position
}

func (p *Parser) expectTypeIdentifierPos() (identPos, error) {
	tok, err := p.next()
	if err != nil {
		return identPos{}, err
	}

	id, ok := tok.(*token.TypeIdentifier)
	if !ok {
		return identPos{}, p.errorf(tok.Pos(), "expected enum variant name, got %s", tok.TokenType())
	}

	return identPos{name: id.Value, pos: id.Pos()}, nil
}

func (p *Parser) parseServiceDecl(comment []string, attrs []*ast.Attribute) (*ast.ServiceDecl, error) {
	begin, err := p.expectKeyword("service")
	if err != nil {
		return nil, err
	}

	name, err := p.expectTypeIdentifier()
	if err != nil {
		return nil, err
	}

	d := &ast.ServiceDecl{Identifier: name, Comment: comment, Attributes: attrs}

	end, err := p.parseBody(func(kw string, c []string, a []*ast.Attribute) error {
		if kw == "" {
			ep, err := p.parseEndpoint(c, a)
			if err != nil {
				return err
			}

			d.Endpoints = append(d.Endpoints, ep)
			return nil
		}

		inner, err := p.parseDecl(kw, c, a)
		if err != nil {
			return err
		}

		d.Inner = append(d.Inner, inner)
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.Span = posOf(begin.BeginPos, end)

	return d, nil
}

// parseBody parses `{ member* }` where each member is either a nested
// declaration (kw != "") or a field/endpoint (kw == ""), dispatching to
// handle for each. It returns the closing brace's end position.
func (p *Parser) parseBody(handle func(kw string, comment []string, attrs []*ast.Attribute) error) (token.Pos, error) {
	if _, err := p.expectPunct(token.TBraceOpen); err != nil {
		return token.Pos{}, err
	}

	for {
		ok, err := p.at(token.TBraceClose)
		if err != nil {
			return token.Pos{}, err
		}
		if ok {
			break
		}

		comment, err := p.consumeDocComment()
		if err != nil {
			return token.Pos{}, err
		}

		attrs, err := p.parseAttributes()
		if err != nil {
			return token.Pos{}, err
		}

		kw := ""

		tok, err := p.peek()
		if err != nil {
			return token.Pos{}, err
		}

		if k, ok := tok.(*token.Keyword); ok {
			switch k.Value {
			case "type", "tuple", "interface", "enum", "service":
				kw = k.Value
			}
		}

		if err := handle(kw, comment, attrs); err != nil {
			return token.Pos{}, err
		}
	}

	close, err := p.expectPunct(token.TBraceClose)
	if err != nil {
		return token.Pos{}, err
	}

	return close.EndPos, nil
}

func (p *Parser) parseEndpoint(comment []string, attrs []*ast.Attribute) (*ast.Endpoint, error) {
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	ep := &ast.Endpoint{Identifier: name, Comment: comment, Attributes: attrs}

	begin, err := p.expectPunct(token.TParenOpen)
	if err != nil {
		return nil, err
	}

	for {
		ok, err := p.at(token.TParenClose)
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}

		argBegin, err := p.expectIdentifierPos()
		if err != nil {
			return nil, err
		}

		if _, err := p.expectPunct(token.TColon); err != nil {
			return nil, err
		}

		ty, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}

		ep.Args = append(ep.Args, ast.Arg{
			Identifier: argBegin.name,
			Type:       ty,
			Span:       argBegin.pos,
		})

		ok, err = p.at(token.TComma)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		p.next()
	}

	if _, err := p.expectPunct(token.TParenClose); err != nil {
		return nil, err
	}

	endPos := begin.EndPos

	ok, err := p.at(token.TArrow)
	if err != nil {
		return nil, err
	}

	if ok {
		p.next()

		streamOk, _ := p.atKeyword("stream")
		if streamOk {
			p.next()
			ep.Streaming = true
		}

		ty, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}

		ep.Response = ty
	}

	ok, err = p.at(token.TSemicolon)
	if err != nil {
		return nil, err
	}

	if ok {
		semi, _ := p.next()
		endPos = semi.Pos().EndPos
	}

	ep.Span = posOf(begin.BeginPos, endPos)

	return ep, nil
}

func (p *Parser) expectIdentifierPos() (identPos, error) {
	tok, err := p.next()
	if err != nil {
		return identPos{}, err
	}

	id, ok := tok.(*token.Identifier)
	if !ok {
		return identPos{}, p.errorf(tok.Pos(), "expected identifier, got %s", tok.TokenType())
	}

	return identPos{name: id.Value, pos: id.Pos()}, nil
}
