// Package parser implements a recursive descent parser for C.
//
// Variable, typedef and struct-tag names are resolved against lexical scope
// during the parse, and struct layout is fixed the moment a struct body
// closes. Remaining type checking is left to a later pass, so invalid
// expressions such as `1+2=3` are accepted here.
package parser

import (
	"fmt"

	"github.com/raymyers/mini-cc/pkg/cabs"
	"github.com/raymyers/mini-cc/pkg/ctypes"
	"github.com/raymyers/mini-cc/pkg/lexer"
	"github.com/raymyers/mini-cc/pkg/scope"
)

// Error is a fatal parse error bound to the token that triggered it
type Error struct {
	Tok lexer.Token
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Tok.Line, e.Tok.Column, e.Msg)
}

// bailout unwinds the parse on the first fatal error
type bailout struct {
	err *Error
}

// Parser parses C tokens into a cabs Program. All mutable pass state lives
// here, so independent Parser values never interfere.
type Parser struct {
	tokens []lexer.Token
	pos    int

	env  *scope.Env
	prog *cabs.Program

	// per-function state
	lvars []*cabs.Var

	// active control-flow contexts
	breaks    []cabs.Stmt
	continues []cabs.Stmt
	switches  []*cabs.Switch

	warnings []string
	nlabel   int
}

// New creates a new Parser, draining the lexer into a token slice so the
// grammar can push back a single token where it needs to.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		env:    scope.New(nil),
		prog:   &cabs.Program{},
		nlabel: 1,
	}
	for {
		tok := l.NextToken()
		p.tokens = append(p.tokens, tok)
		if tok.Type == lexer.TokenEOF {
			break
		}
	}
	return p
}

// Warnings returns the non-fatal diagnostics recorded during the parse
func (p *Parser) Warnings() []string {
	return p.warnings
}

// ParseProgram parses the whole token stream. The first fatal error aborts
// the pass and is returned; no partial program escapes.
func (p *Parser) ParseProgram() (prog *cabs.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			prog, err = nil, b.err
		}
	}()

	for !p.atEOF() {
		p.toplevel()
	}
	return p.prog, nil
}

//
// token cursor
//

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) next() lexer.Token {
	t := p.tokens[p.pos]
	if t.Type != lexer.TokenEOF {
		p.pos++
	}
	return t
}

func (p *Parser) unget() {
	p.pos--
}

func (p *Parser) consume(ty lexer.TokenType) bool {
	if p.tokens[p.pos].Type != ty {
		return false
	}
	p.pos++
	return true
}

func (p *Parser) expect(ty lexer.TokenType) lexer.Token {
	t := p.peek()
	if t.Type != ty {
		p.badToken(t, "%s expected", ty)
	}
	return p.next()
}

func (p *Parser) atEOF() bool {
	return p.peek().Type == lexer.TokenEOF
}

// ident consumes and returns an identifier token
func (p *Parser) ident() lexer.Token {
	t := p.next()
	if t.Type != lexer.TokenIdent {
		p.badToken(t, "identifier expected")
	}
	return t
}

//
// diagnostics
//

// badToken reports a fatal error at a token and aborts the parse
func (p *Parser) badToken(tok lexer.Token, format string, args ...any) {
	panic(bailout{&Error{Tok: tok, Msg: fmt.Sprintf(format, args...)}})
}

// warnToken records a non-fatal diagnostic; parsing continues
func (p *Parser) warnToken(tok lexer.Token, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.warnings = append(p.warnings, fmt.Sprintf("line %d, col %d: %s", tok.Line, tok.Column, msg))
}

//
// scope and storage
//

func (p *Parser) pushEnv() {
	p.env = scope.New(p.env)
}

func (p *Parser) popEnv() {
	if p.envDepthIsRoot() {
		// Popping the file-scope frame is a grammar bug, not a user error.
		p.badToken(p.peek(), "internal error: scope pop with no active frame")
	}
	p.env = p.env.Outer()
}

// envDepthIsRoot reports whether only the file-scope frame remains
func (p *Parser) envDepthIsRoot() bool {
	return p.env.Outer() == nil
}

func (p *Parser) allocLocal(v *cabs.Var) {
	if !v.IsLocal || p.envDepthIsRoot() {
		p.badToken(p.peek(), "internal error: local storage at file scope")
	}
	p.lvars = append(p.lvars, v)
}

func (p *Parser) allocGlobal(v *cabs.Var) {
	if v.IsLocal {
		p.badToken(p.peek(), "internal error: global storage for a local")
	}
	p.prog.GVars = append(p.prog.GVars, v)
}

//
// toplevel driver
//

func (p *Parser) toplevel() {
	isTypedef := p.consume(lexer.TokenTypedef)
	isExtern := p.consume(lexer.TokenExtern)

	ty := p.declSpecifiers()

	// A bare `struct S { ... };` declares the tag and nothing else.
	if p.consume(lexer.TokenSemicolon) {
		return
	}

	for p.consume(lexer.TokenStar) {
		ty = ctypes.Pointer(ty)
	}
	name := p.ident()

	// Function prototype or definition
	if p.consume(lexer.TokenLParen) {
		var params []*cabs.Var
		for !p.consume(lexer.TokenRParen) {
			if len(params) > 0 {
				p.expect(lexer.TokenComma)
			}
			params = append(params, p.paramDeclaration())
		}

		if p.consume(lexer.TokenSemicolon) {
			// Prototype: accepted but not retained for later stages.
			return
		}

		// Function definition
		p.lvars = nil
		p.breaks = nil
		p.continues = nil
		p.switches = nil

		funty := ctypes.Func(ty)
		p.env.DeclareVar(&cabs.Var{Name: name.Literal, Ty: funty})

		t := p.peek()
		def := &cabs.FunDef{Name: name.Literal, Params: params, Ty: funty, Tok: t}

		p.expect(lexer.TokenLBrace)
		if isTypedef {
			p.badToken(t, "typedef has function definition")
		}

		p.pushEnv()
		for _, param := range params {
			p.env.DeclareVar(param)
			p.allocLocal(param)
		}
		def.Body = p.compoundStmt(t)
		p.popEnv()

		p.prog.Funcs = append(p.prog.Funcs, &cabs.Function{
			Name:   name.Literal,
			Def:    def,
			LVars:  p.lvars,
			Blocks: []*cabs.BasicBlock{},
		})
		return
	}

	ty = p.readArray(ty)
	p.expect(lexer.TokenSemicolon)

	if isTypedef {
		p.env.DeclareTypedef(name.Literal, ty)
		return
	}

	// Global variable; extern suppresses storage in this translation unit.
	p.checkComplete(name, ty)
	v := &cabs.Var{Name: name.Literal, Ty: ty}
	p.env.DeclareVar(v)
	if !isExtern {
		p.allocGlobal(v)
	}
}
