package parser

import (
	"github.com/raymyers/mini-cc/pkg/cabs"
	"github.com/raymyers/mini-cc/pkg/lexer"
)

func (p *Parser) stmt() cabs.Stmt {
	t := p.next()

	switch t.Type {
	case lexer.TokenTypedef:
		name, ty, _ := p.declarationType()
		p.env.DeclareTypedef(name.Literal, ty)
		return &cabs.Null{}

	case lexer.TokenIf:
		node := &cabs.If{Tok: t}
		p.expect(lexer.TokenLParen)
		node.Cond = p.expr()
		p.expect(lexer.TokenRParen)
		node.Then = p.stmt()
		if p.consume(lexer.TokenElse) {
			node.Else = p.stmt()
		}
		return node

	case lexer.TokenFor:
		node := &cabs.For{Tok: t}
		p.expect(lexer.TokenLParen)
		p.pushEnv()
		p.breaks = append(p.breaks, node)
		p.continues = append(p.continues, node)

		if p.isTypename() {
			// A declaration in the init clause scopes to the loop.
			node.Init = p.declaration()
		} else if !p.consume(lexer.TokenSemicolon) {
			node.Init = p.exprStmt()
			p.expect(lexer.TokenSemicolon)
		}
		if !p.consume(lexer.TokenSemicolon) {
			node.Cond = p.expr()
			p.expect(lexer.TokenSemicolon)
		}
		if !p.consume(lexer.TokenRParen) {
			node.Inc = p.expr()
			p.expect(lexer.TokenRParen)
		}
		node.Body = p.stmt()

		p.breaks = p.breaks[:len(p.breaks)-1]
		p.continues = p.continues[:len(p.continues)-1]
		p.popEnv()
		return node

	case lexer.TokenWhile:
		// A while loop is a for loop with only a condition.
		node := &cabs.For{Tok: t}
		p.breaks = append(p.breaks, node)
		p.continues = append(p.continues, node)
		p.expect(lexer.TokenLParen)
		node.Cond = p.expr()
		p.expect(lexer.TokenRParen)
		node.Body = p.stmt()
		p.breaks = p.breaks[:len(p.breaks)-1]
		p.continues = p.continues[:len(p.continues)-1]
		return node

	case lexer.TokenDo:
		node := &cabs.DoWhile{Tok: t}
		p.breaks = append(p.breaks, node)
		p.continues = append(p.continues, node)
		node.Body = p.stmt()
		p.breaks = p.breaks[:len(p.breaks)-1]
		p.continues = p.continues[:len(p.continues)-1]
		p.expect(lexer.TokenWhile)
		p.expect(lexer.TokenLParen)
		node.Cond = p.expr()
		p.expect(lexer.TokenRParen)
		p.expect(lexer.TokenSemicolon)
		return node

	case lexer.TokenSwitch:
		node := &cabs.Switch{Tok: t}
		p.expect(lexer.TokenLParen)
		node.Cond = p.expr()
		p.expect(lexer.TokenRParen)
		p.breaks = append(p.breaks, node)
		p.switches = append(p.switches, node)
		node.Body = p.stmt()
		p.breaks = p.breaks[:len(p.breaks)-1]
		p.switches = p.switches[:len(p.switches)-1]
		return node

	case lexer.TokenCase:
		if len(p.switches) == 0 {
			p.badToken(t, "stray case")
		}
		node := &cabs.Case{Value: p.constExpr(), Tok: t}
		p.expect(lexer.TokenColon)
		node.Body = p.stmt()

		sw := p.switches[len(p.switches)-1]
		sw.Cases = append(sw.Cases, node)
		return node

	case lexer.TokenBreak:
		if len(p.breaks) == 0 {
			p.badToken(t, "stray break")
		}
		p.expect(lexer.TokenSemicolon)
		return &cabs.Break{Target: p.breaks[len(p.breaks)-1], Tok: t}

	case lexer.TokenContinue:
		if len(p.continues) == 0 {
			p.badToken(t, "stray continue")
		}
		p.expect(lexer.TokenSemicolon)
		// Legality is gated on the continue stack; the target comes from the
		// break stack, which switches push as well.
		return &cabs.Continue{Target: p.breaks[len(p.breaks)-1], Tok: t}

	case lexer.TokenReturn:
		node := &cabs.Return{X: p.expr(), Tok: t}
		p.expect(lexer.TokenSemicolon)
		return node

	case lexer.TokenLBrace:
		p.pushEnv()
		node := p.compoundStmt(t)
		p.popEnv()
		return node

	case lexer.TokenSemicolon:
		return &cabs.Null{}

	default:
		p.unget()
		if p.isTypename() {
			return p.declaration()
		}
		node := p.exprStmt()
		p.expect(lexer.TokenSemicolon)
		return node
	}
}

// compoundStmt parses block items after `{` has been consumed. The caller
// owns the scope frame, since function bodies share one with the parameters.
func (p *Parser) compoundStmt(t lexer.Token) *cabs.Block {
	node := &cabs.Block{Tok: t}
	for !p.consume(lexer.TokenRBrace) {
		node.Items = append(node.Items, p.stmt())
	}
	return node
}

// exprStmt wraps an expression as a statement; the terminator is consumed by
// the caller.
func (p *Parser) exprStmt() cabs.Stmt {
	t := p.peek()
	return &cabs.ExprStmt{X: p.expr(), Tok: t}
}
