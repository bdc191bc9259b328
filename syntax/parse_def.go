package syntax

import "ion/ast"

// function := 'fn' prototype block
func (p *Parser) parseFunction(attrs []ast.NodeID) (ast.NodeID, bool) {
	start := p.tok
	p.next()

	proto, ok := p.parsePrototype()
	if !ok {
		return ast.NoNode, false
	}

	body, ok := p.parseBlock()
	if !ok {
		return ast.NoNode, false
	}

	return p.tree.NewFunction(proto, body, attrs, p.spanFrom(start)), true
}

// extern := 'extern' prototype ';'
func (p *Parser) parseExtern(attrs []ast.NodeID) (ast.NodeID, bool) {
	start := p.tok
	p.next()

	proto, ok := p.parsePrototype()
	if !ok || !p.skipOver(TOK_SEMI) {
		return ast.NoNode, false
	}

	return p.tree.NewExtern(proto, attrs, p.spanFrom(start)), true
}

// global := 'global' 'IDENT' type ['=' literal] ';'
func (p *Parser) parseGlobal() (ast.NodeID, bool) {
	start := p.tok
	p.next()

	if !p.expect(TOK_IDENT) {
		return ast.NoNode, false
	}

	name := p.tok.Value
	p.next()

	typ, ok := p.parseType()
	if !ok {
		return ast.NoNode, false
	}

	value := ast.NoNode
	if p.is(TOK_ASSIGN) {
		p.next()

		if value, ok = p.parseLiteral(); !ok {
			return ast.NoNode, false
		}
	}

	if !p.skipOver(TOK_SEMI) {
		return ast.NoNode, false
	}

	return p.tree.NewGlobal(name, typ, value, p.spanFrom(start)), true
}

// prototype := 'IDENT' '(' [arg {',' arg}] ')' type
// arg := type 'IDENT'
func (p *Parser) parsePrototype() (ast.NodeID, bool) {
	start := p.tok
	if !p.expect(TOK_IDENT) {
		return ast.NoNode, false
	}

	name := p.tok.Value
	p.next()

	if !p.skipOver(TOK_LPAREN) {
		return ast.NoNode, false
	}

	var args []ast.Arg
	seen := make(map[string]struct{})
	for !p.is(TOK_RPAREN) {
		if len(args) > 0 && !p.skipOver(TOK_COMMA) {
			return ast.NoNode, false
		}

		typ, ok := p.parseType()
		if !ok || !p.expect(TOK_IDENT) {
			return ast.NoNode, false
		}

		if _, ok := seen[p.tok.Value]; ok {
			p.rejectWithMsg("argument `%s` declared multiple times", p.tok.Value)
			return ast.NoNode, false
		}

		seen[p.tok.Value] = struct{}{}
		args = append(args, ast.Arg{Name: p.tok.Value, Type: typ})
		p.next()
	}

	p.next()

	ret, ok := p.parseType()
	if !ok {
		return ast.NoNode, false
	}

	return p.tree.NewPrototype(name, args, ret, p.spanFrom(start)), true
}

// type := (builtin_type | 'IDENT') ['*']
func (p *Parser) parseType() (ast.NodeID, bool) {
	start := p.tok

	var typ ast.Type
	if builtin, ok := p.cls.BuiltInType(p.tok.Kind); ok {
		typ = builtin
	} else if p.is(TOK_IDENT) {
		typ = ast.Type{TypeKind: ast.TypeUserDefined, Name: p.tok.Value}
	} else {
		p.rejectWithMsg("expected a type not `%s`", p.tok.Value)
		return ast.NoNode, false
	}

	p.next()

	if p.is(TOK_STAR) {
		typ.Pointer = true
		p.next()
	}

	return p.tree.NewType(typ, p.spanFrom(start)), true
}
