package parser

import (
	"github.com/raymyers/mini-cc/pkg/cabs"
	"github.com/raymyers/mini-cc/pkg/ctypes"
	"github.com/raymyers/mini-cc/pkg/lexer"
)

// isTypename reports whether the next token can start a declaration
func (p *Parser) isTypename() bool {
	t := p.peek()
	if t.Type == lexer.TokenIdent {
		return p.env.LookupTypedef(t.Literal) != nil
	}
	switch t.Type {
	case lexer.TokenInt_, lexer.TokenChar_, lexer.TokenVoid, lexer.TokenBool,
		lexer.TokenStruct, lexer.TokenTypeof:
		return true
	}
	return false
}

// declSpecifiers parses the type part of a declaration: a builtin type name,
// a typedef name, a typeof expression, or a struct specifier.
func (p *Parser) declSpecifiers() ctypes.Type {
	t := p.next()

	switch t.Type {
	case lexer.TokenIdent:
		if ty := p.env.LookupTypedef(t.Literal); ty != nil {
			return ty
		}
	case lexer.TokenVoid:
		return ctypes.Void()
	case lexer.TokenBool:
		return ctypes.Bool()
	case lexer.TokenChar_:
		return ctypes.Char()
	case lexer.TokenInt_:
		return ctypes.Int()
	case lexer.TokenTypeof:
		p.expect(lexer.TokenLParen)
		node := p.expr()
		p.expect(lexer.TokenRParen)
		return p.typeOf(node)
	case lexer.TokenStruct:
		return p.structSpecifier(t)
	}

	p.badToken(t, "typename expected")
	return nil
}

// structSpecifier parses a struct type after the `struct` keyword. A tagged
// reference reuses the registered handle, so a body seen later completes
// every earlier reference in place; layout is fixed the moment the body's
// closing brace is consumed.
func (p *Parser) structSpecifier(t lexer.Token) ctypes.Type {
	var tag string
	var ty *ctypes.Tstruct

	if p.peek().Type == lexer.TokenIdent {
		tag = p.ident().Literal
		ty = p.env.LookupTag(tag)
	}
	if ty == nil {
		ty = &ctypes.Tstruct{Tag: tag}
	}

	hasBody := p.consume(lexer.TokenLBrace)
	if hasBody {
		var fields []ctypes.Field
		for !p.consume(lexer.TokenRBrace) {
			name, fty, ftok := p.declarationType()
			p.checkComplete(ftok, fty)
			fields = append(fields, ctypes.Field{Name: name.Literal, Type: fty})
		}
		if len(fields) == 0 {
			p.badToken(t, "bad struct definition")
		}
		ty.Complete(fields)
	}

	if tag == "" && !hasBody {
		p.badToken(t, "bad struct definition")
	}
	if tag != "" {
		p.env.DeclareTag(tag, ty)
	}
	return ty
}

// declarator parses `* ... name [n]...` with optional parenthesized nesting,
// applied to a base type. `int (*x)[3]` declares x as a pointer to an array
// of three ints: the parenthesized inner declarator binds against whatever
// the outer suffix builds from the base.
func (p *Parser) declarator(base ctypes.Type) (lexer.Token, ctypes.Type) {
	name, build := p.declaratorShape()
	return name, build(base)
}

// declaratorShape parses the syntactic shape of a declarator and returns the
// declared name plus a function producing the declared type from a base type.
func (p *Parser) declaratorShape() (lexer.Token, func(ctypes.Type) ctypes.Type) {
	stars := 0
	for p.consume(lexer.TokenStar) {
		stars++
	}

	var name lexer.Token
	var inner func(ctypes.Type) ctypes.Type

	t := p.peek()
	switch {
	case t.Type == lexer.TokenIdent:
		name = p.ident()
	case p.consume(lexer.TokenLParen):
		name, inner = p.declaratorShape()
		p.expect(lexer.TokenRParen)
	default:
		p.badToken(t, "bad direct-declarator")
	}

	lens := p.arraySuffix()

	build := func(base ctypes.Type) ctypes.Type {
		for i := 0; i < stars; i++ {
			base = ctypes.Pointer(base)
		}
		for i := len(lens) - 1; i >= 0; i-- {
			base = ctypes.Array(base, lens[i])
		}
		if inner != nil {
			base = inner(base)
		}
		return base
	}
	return name, build
}

// arraySuffix parses `[n]` suffixes. An empty `[]` records -1, which is only
// meaningful for the outermost dimension.
func (p *Parser) arraySuffix() []int {
	var lens []int
	for p.consume(lexer.TokenLBracket) {
		if p.consume(lexer.TokenRBracket) {
			lens = append(lens, -1)
			continue
		}
		lens = append(lens, int(p.constExpr()))
		p.expect(lexer.TokenRBracket)
	}
	return lens
}

// readArray applies an array suffix to a type already carrying its pointers,
// used where the grammar splits the declarator apart (file-scope variables).
func (p *Parser) readArray(ty ctypes.Type) ctypes.Type {
	lens := p.arraySuffix()
	for i := len(lens) - 1; i >= 0; i-- {
		ty = ctypes.Array(ty, lens[i])
	}
	return ty
}

// declarationType parses `specifiers declarator ;` and returns the declared
// name and type without creating any binding. Used for typedef statements
// and struct members.
func (p *Parser) declarationType() (lexer.Token, ctypes.Type, lexer.Token) {
	t := p.peek()
	ty := p.declSpecifiers()
	name, ty := p.declarator(ty)
	p.expect(lexer.TokenSemicolon)
	return name, ty, t
}

// declaration parses a local variable declaration. An initialized
// declaration `T x = init;` lowers to the statement `x = init;`; without an
// initializer the declaration contributes no statement at all.
func (p *Parser) declaration() cabs.Stmt {
	ty := p.declSpecifiers()
	name, ty := p.declarator(ty)

	var init cabs.Expr
	t := p.peek()
	if p.consume(lexer.TokenAssign) {
		init = p.assign()
	}
	p.expect(lexer.TokenSemicolon)

	p.checkComplete(name, ty)
	v := &cabs.Var{Name: name.Literal, Ty: ty, IsLocal: true}
	p.env.DeclareVar(v)
	p.allocLocal(v)

	if init == nil {
		return &cabs.Null{}
	}
	lhs := &cabs.VarRef{Name: v.Name, Var: v, Ty: ty, Tok: name}
	return &cabs.ExprStmt{X: &cabs.Assign{Left: lhs, Right: init, Tok: t}, Tok: name}
}

// paramDeclaration parses one function parameter. Array parameters decay to
// pointers to their element type.
func (p *Parser) paramDeclaration() *cabs.Var {
	ty := p.declSpecifiers()
	name, ty := p.declarator(ty)
	if a, ok := ty.(ctypes.Tarray); ok {
		ty = ctypes.Pointer(a.Elem)
	}
	p.checkComplete(name, ty)
	return &cabs.Var{Name: name.Literal, Ty: ty, IsLocal: true}
}

// checkComplete rejects declaring storage with an incomplete struct type.
// Pointers to incomplete structs stay legal; only by-value uses need the
// layout to be fixed.
func (p *Parser) checkComplete(tok lexer.Token, ty ctypes.Type) {
	for {
		a, ok := ty.(ctypes.Tarray)
		if !ok {
			break
		}
		ty = a.Elem
	}
	if st, ok := ty.(*ctypes.Tstruct); ok && !st.Completed {
		p.badToken(tok, "incomplete type %s", st)
	}
}
