package syntax

import (
	"errors"

	"ion/ast"
)

// knownAttributes is the set of attribute names the code generator
// understands.
var knownAttributes = map[string]struct{}{
	"inline":   {},
	"noinline": {},
	"cold":     {},
}

// module := ['module' 'IDENT' ';'] {top_level} 'EOF'
func (p *Parser) parseModule() {
	name := defaultModuleName(p.filePath)

	if p.is(TOK_MODULE) {
		p.next()

		if p.expect(TOK_IDENT) {
			name = p.tok.Value
			p.next()
			p.skipOver(TOK_SEMI)
		}
	}

	p.module = p.tree.NewModule(name)

	for !p.is(TOK_EOF) {
		start := p.tok

		if def, ok := p.parseTopLevel(); ok {
			p.declare(def)
		} else {
			msg := "malformed top level construct"
			if top, ok := p.notices.Top(); ok {
				msg = top.Message
			}

			p.tree.AddMarker(p.module, msg, p.spanFrom(start))
			p.recover()
		}
	}
}

// declare registers a top-level construct in the module.
func (p *Parser) declare(def ast.NodeID) {
	err := p.tree.DeclareTopLevel(p.module, def)

	var dse *ast.DuplicateSymbolError
	if errors.As(err, &dse) {
		p.errorOn(p.tree.Span(def), "symbol `%s` already defined", dse.Name)
	}
}

// recover skips tokens until the start of the next top level construct.
func (p *Parser) recover() {
	for {
		switch p.tok.Kind {
		case TOK_FN, TOK_EXTERN, TOK_GLOBAL, TOK_ATSIGN, TOK_EOF:
			return
		default:
			p.next()
		}
	}
}

// top_level := {attribute} (function | extern | global)
func (p *Parser) parseTopLevel() (ast.NodeID, bool) {
	attrs, ok := p.parseAttributes()
	if !ok {
		return ast.NoNode, false
	}

	switch p.tok.Kind {
	case TOK_FN:
		return p.parseFunction(attrs)
	case TOK_EXTERN:
		return p.parseExtern(attrs)
	case TOK_GLOBAL:
		if len(attrs) > 0 {
			p.warnOn(p.tree.Span(attrs[0]), "attributes have no effect on globals")
		}

		return p.parseGlobal()
	default:
		p.reject()
		return ast.NoNode, false
	}
}

// attribute := '@' 'IDENT'
func (p *Parser) parseAttributes() ([]ast.NodeID, bool) {
	var attrs []ast.NodeID

	for p.is(TOK_ATSIGN) {
		start := p.tok
		p.next()

		if !p.expect(TOK_IDENT) {
			return nil, false
		}

		name := p.tok.Value
		p.next()

		if _, ok := knownAttributes[name]; !ok {
			p.warnOn(p.spanFrom(start), "unknown attribute `%s`", name)
			continue
		}

		attrs = append(attrs, p.tree.NewAttribute(name, p.spanFrom(start)))
	}

	return attrs, true
}
