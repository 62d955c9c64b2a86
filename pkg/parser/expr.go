package parser

import (
	"fmt"

	"github.com/raymyers/mini-cc/pkg/cabs"
	"github.com/raymyers/mini-cc/pkg/ctypes"
	"github.com/raymyers/mini-cc/pkg/lexer"
)

// expr parses a full expression including the comma operator
func (p *Parser) expr() cabs.Expr {
	lhs := p.assign()
	t := p.peek()
	if !p.consume(lexer.TokenComma) {
		return lhs
	}
	return &cabs.Binary{Op: cabs.OpComma, Left: lhs, Right: p.expr(), Tok: t}
}

// assign parses assignment expressions. Plain `=` keeps its own node kind;
// compound assignments are desugared on the spot.
func (p *Parser) assign() cabs.Expr {
	lhs := p.conditional()
	t := p.peek()

	switch {
	case p.consume(lexer.TokenAssign):
		return &cabs.Assign{Left: lhs, Right: p.assign(), Tok: t}
	case p.consume(lexer.TokenStarAssign):
		return p.newAssignEq(t, cabs.OpMul, lhs, p.assign())
	case p.consume(lexer.TokenSlashAssign):
		return p.newAssignEq(t, cabs.OpDiv, lhs, p.assign())
	case p.consume(lexer.TokenPercentAssign):
		return p.newAssignEq(t, cabs.OpMod, lhs, p.assign())
	case p.consume(lexer.TokenPlusAssign):
		return p.newAssignEq(t, cabs.OpAdd, lhs, p.assign())
	case p.consume(lexer.TokenMinusAssign):
		return p.newAssignEq(t, cabs.OpSub, lhs, p.assign())
	case p.consume(lexer.TokenShlAssign):
		return p.newAssignEq(t, cabs.OpShl, lhs, p.assign())
	case p.consume(lexer.TokenShrAssign):
		return p.newAssignEq(t, cabs.OpShr, lhs, p.assign())
	case p.consume(lexer.TokenAndAssign):
		return p.newAssignEq(t, cabs.OpBitAnd, lhs, p.assign())
	case p.consume(lexer.TokenXorAssign):
		return p.newAssignEq(t, cabs.OpBitXor, lhs, p.assign())
	case p.consume(lexer.TokenOrAssign):
		return p.newAssignEq(t, cabs.OpBitOr, lhs, p.assign())
	}
	return lhs
}

// conditional parses the ternary operator, right-associative
func (p *Parser) conditional() cabs.Expr {
	cond := p.logor()
	t := p.peek()
	if !p.consume(lexer.TokenQuestion) {
		return cond
	}
	node := &cabs.Conditional{Cond: cond, Tok: t}
	node.Then = p.expr()
	p.expect(lexer.TokenColon)
	node.Else = p.conditional()
	return node
}

func (p *Parser) logor() cabs.Expr {
	lhs := p.logand()
	for {
		t := p.peek()
		if !p.consume(lexer.TokenOr) {
			return lhs
		}
		lhs = &cabs.Binary{Op: cabs.OpLogOr, Left: lhs, Right: p.logand(), Tok: t}
	}
}

func (p *Parser) logand() cabs.Expr {
	lhs := p.bitor()
	for {
		t := p.peek()
		if !p.consume(lexer.TokenAnd) {
			return lhs
		}
		lhs = &cabs.Binary{Op: cabs.OpLogAnd, Left: lhs, Right: p.bitor(), Tok: t}
	}
}

func (p *Parser) bitor() cabs.Expr {
	lhs := p.bitxor()
	for {
		t := p.peek()
		if !p.consume(lexer.TokenPipe) {
			return lhs
		}
		lhs = &cabs.Binary{Op: cabs.OpBitOr, Left: lhs, Right: p.bitxor(), Tok: t}
	}
}

func (p *Parser) bitxor() cabs.Expr {
	lhs := p.bitand()
	for {
		t := p.peek()
		if !p.consume(lexer.TokenCaret) {
			return lhs
		}
		lhs = &cabs.Binary{Op: cabs.OpBitXor, Left: lhs, Right: p.bitand(), Tok: t}
	}
}

func (p *Parser) bitand() cabs.Expr {
	lhs := p.equality()
	for {
		t := p.peek()
		if !p.consume(lexer.TokenAmpersand) {
			return lhs
		}
		lhs = &cabs.Binary{Op: cabs.OpBitAnd, Left: lhs, Right: p.equality(), Tok: t}
	}
}

func (p *Parser) equality() cabs.Expr {
	lhs := p.relational()
	for {
		t := p.peek()
		switch {
		case p.consume(lexer.TokenEq):
			lhs = &cabs.Binary{Op: cabs.OpEq, Left: lhs, Right: p.relational(), Tok: t}
		case p.consume(lexer.TokenNe):
			lhs = &cabs.Binary{Op: cabs.OpNe, Left: lhs, Right: p.relational(), Tok: t}
		default:
			return lhs
		}
	}
}

// relational parses <, <=, > and >=. Greater-than forms are lowered by
// swapping the operands, so only OpLt and OpLe reach the AST.
func (p *Parser) relational() cabs.Expr {
	lhs := p.shift()
	for {
		t := p.peek()
		switch {
		case p.consume(lexer.TokenLt):
			lhs = &cabs.Binary{Op: cabs.OpLt, Left: lhs, Right: p.shift(), Tok: t}
		case p.consume(lexer.TokenLe):
			lhs = &cabs.Binary{Op: cabs.OpLe, Left: lhs, Right: p.shift(), Tok: t}
		case p.consume(lexer.TokenGt):
			lhs = &cabs.Binary{Op: cabs.OpLt, Left: p.shift(), Right: lhs, Tok: t}
		case p.consume(lexer.TokenGe):
			lhs = &cabs.Binary{Op: cabs.OpLe, Left: p.shift(), Right: lhs, Tok: t}
		default:
			return lhs
		}
	}
}

func (p *Parser) shift() cabs.Expr {
	lhs := p.add()
	for {
		t := p.peek()
		switch {
		case p.consume(lexer.TokenShl):
			lhs = &cabs.Binary{Op: cabs.OpShl, Left: lhs, Right: p.add(), Tok: t}
		case p.consume(lexer.TokenShr):
			lhs = &cabs.Binary{Op: cabs.OpShr, Left: lhs, Right: p.add(), Tok: t}
		default:
			return lhs
		}
	}
}

func (p *Parser) add() cabs.Expr {
	lhs := p.mul()
	for {
		t := p.peek()
		switch {
		case p.consume(lexer.TokenPlus):
			lhs = &cabs.Binary{Op: cabs.OpAdd, Left: lhs, Right: p.mul(), Tok: t}
		case p.consume(lexer.TokenMinus):
			lhs = &cabs.Binary{Op: cabs.OpSub, Left: lhs, Right: p.mul(), Tok: t}
		default:
			return lhs
		}
	}
}

func (p *Parser) mul() cabs.Expr {
	lhs := p.unary()
	for {
		t := p.peek()
		switch {
		case p.consume(lexer.TokenStar):
			lhs = &cabs.Binary{Op: cabs.OpMul, Left: lhs, Right: p.unary(), Tok: t}
		case p.consume(lexer.TokenSlash):
			lhs = &cabs.Binary{Op: cabs.OpDiv, Left: lhs, Right: p.unary(), Tok: t}
		case p.consume(lexer.TokenPercent):
			lhs = &cabs.Binary{Op: cabs.OpMod, Left: lhs, Right: p.unary(), Tok: t}
		default:
			return lhs
		}
	}
}

// unary parses prefix operators. Unary minus is lowered to `0 - x`, and
// prefix increment/decrement reuse the compound-assignment desugaring.
func (p *Parser) unary() cabs.Expr {
	t := p.peek()
	switch {
	case p.consume(lexer.TokenMinus):
		return &cabs.Binary{Op: cabs.OpSub, Left: p.newInt(0, t), Right: p.unary(), Tok: t}
	case p.consume(lexer.TokenStar):
		return &cabs.Deref{X: p.unary(), Tok: t}
	case p.consume(lexer.TokenAmpersand):
		return &cabs.AddrOf{X: p.unary(), Tok: t}
	case p.consume(lexer.TokenNot):
		return &cabs.Unary{Op: cabs.OpNot, X: p.unary(), Tok: t}
	case p.consume(lexer.TokenTilde):
		return &cabs.Unary{Op: cabs.OpBitNot, X: p.unary(), Tok: t}
	case p.consume(lexer.TokenSizeof):
		return p.newInt(int64(ctypes.Sizeof(p.typeOf(p.unary()))), t)
	case p.consume(lexer.TokenAlignof):
		return p.newInt(int64(ctypes.Alignof(p.typeOf(p.unary()))), t)
	case p.consume(lexer.TokenIncrement):
		return p.newAssignEq(t, cabs.OpAdd, p.unary(), p.newInt(1, t))
	case p.consume(lexer.TokenDecrement):
		return p.newAssignEq(t, cabs.OpSub, p.unary(), p.newInt(1, t))
	}
	return p.postfix()
}

// postfix parses postfix operators: calls are handled in primary, so this
// covers member access, arrow, indexing, and post-increment/decrement.
func (p *Parser) postfix() cabs.Expr {
	lhs := p.primary()
	for {
		t := p.peek()
		switch {
		case p.consume(lexer.TokenIncrement):
			lhs = p.newPostIncDec(t, lhs, 1)
		case p.consume(lexer.TokenDecrement):
			lhs = p.newPostIncDec(t, lhs, -1)
		case p.consume(lexer.TokenDot):
			lhs = &cabs.Member{X: lhs, Name: p.ident().Literal, Tok: t}
		case p.consume(lexer.TokenArrow):
			// p->name is lowered to (*p).name
			lhs = &cabs.Member{X: &cabs.Deref{X: lhs, Tok: t}, Name: p.ident().Literal, Tok: t}
		case p.consume(lexer.TokenLBracket):
			// a[i] is lowered to *(a + i)
			idx := p.assign()
			p.expect(lexer.TokenRBracket)
			sum := &cabs.Binary{Op: cabs.OpAdd, Left: lhs, Right: idx, Tok: t}
			lhs = &cabs.Deref{X: sum, Tok: t}
		default:
			return lhs
		}
	}
}

func (p *Parser) primary() cabs.Expr {
	t := p.next()

	switch t.Type {
	case lexer.TokenLParen:
		if p.consume(lexer.TokenLBrace) {
			return p.stmtExpr(t)
		}
		node := p.expr()
		p.expect(lexer.TokenRParen)
		return node
	case lexer.TokenInt:
		return p.newInt(t.Value, t)
	case lexer.TokenString:
		return p.stringLiteral(t)
	case lexer.TokenIdent:
		if p.consume(lexer.TokenLParen) {
			return p.functionCall(t)
		}
		return p.variableRef(t)
	}

	p.badToken(t, "primary expression expected")
	return nil
}

// stmtExpr parses a GNU statement expression after `({` has been consumed.
// The last statement must be an expression statement; its expression becomes
// the value of the whole form.
func (p *Parser) stmtExpr(t lexer.Token) cabs.Expr {
	var stmts []cabs.Stmt
	p.pushEnv()
	for {
		stmts = append(stmts, p.stmt())
		if p.consume(lexer.TokenRBrace) {
			break
		}
	}
	p.expect(lexer.TokenRParen)
	p.popEnv()

	last, ok := stmts[len(stmts)-1].(*cabs.ExprStmt)
	if !ok {
		p.badToken(t, "statement expression returning void")
	}
	return &cabs.StmtExpr{Stmts: stmts[:len(stmts)-1], X: last.X, Tok: t}
}

// functionCall parses call arguments after `name(` has been consumed. A call
// to an undeclared function is a warning, not an error; the callee is then
// assumed to return int.
func (p *Parser) functionCall(t lexer.Token) cabs.Expr {
	node := &cabs.Call{Name: t.Literal, Tok: t}

	v := p.env.LookupVar(t.Literal)
	if v != nil {
		if f, ok := v.Ty.(ctypes.Tfunction); ok {
			node.Ty = f
		}
	}
	if node.Ty == nil {
		p.warnToken(t, "undefined function: %s", t.Literal)
		node.Ty = ctypes.Func(ctypes.Int())
	}

	for !p.consume(lexer.TokenRParen) {
		if len(node.Args) > 0 {
			p.expect(lexer.TokenComma)
		}
		node.Args = append(node.Args, p.assign())
	}
	return node
}

func (p *Parser) variableRef(t lexer.Token) cabs.Expr {
	v := p.env.LookupVar(t.Literal)
	if v == nil {
		p.badToken(t, "undefined variable: %s", t.Literal)
	}
	return &cabs.VarRef{Name: t.Literal, Var: v, Ty: v.Ty, Tok: t}
}

// stringLiteral turns a string literal into an anonymous char-array global
// initialized with the decoded bytes, and yields a reference to it.
func (p *Parser) stringLiteral(t lexer.Token) cabs.Expr {
	ty := ctypes.Array(ctypes.Char(), t.Len)
	v := &cabs.Var{
		Name: fmt.Sprintf(".L.str%d", p.nlabel),
		Ty:   ty,
		Data: t.Str,
	}
	p.nlabel++
	p.allocGlobal(v)
	return &cabs.VarRef{Name: v.Name, Var: v, Ty: ty, Tok: t}
}

// constExpr evaluates a constant expression, which for now must literally be
// an integer constant after parsing.
func (p *Parser) constExpr() int64 {
	t := p.peek()
	node := p.expr()
	c, ok := node.(*cabs.Constant)
	if !ok {
		p.badToken(t, "constant expression expected")
	}
	return c.Value
}

func (p *Parser) newInt(value int64, t lexer.Token) *cabs.Constant {
	return &cabs.Constant{Value: value, Ty: ctypes.Int(), Tok: t}
}

//
// static expression typing
//

// typeOf infers the static type of a parsed expression. It exists for the
// operators that are folded at parse time (sizeof, _Alignof, typeof) and for
// the desugaring temporaries, which need the operand type before the
// semantic pass runs.
func (p *Parser) typeOf(e cabs.Expr) ctypes.Type {
	switch n := e.(type) {
	case *cabs.Constant:
		return n.Ty
	case *cabs.VarRef:
		return n.Ty
	case *cabs.Call:
		if f, ok := n.Ty.(ctypes.Tfunction); ok {
			return f.Return
		}
		return ctypes.Int()
	case *cabs.AddrOf:
		return ctypes.Pointer(p.typeOf(n.X))
	case *cabs.Deref:
		base := decay(p.typeOf(n.X))
		elem := ctypes.Elem(base)
		if elem == nil {
			p.badToken(n.Tok, "operand must be a pointer")
		}
		return elem
	case *cabs.Member:
		return p.memberType(n)
	case *cabs.Unary:
		// ! and ~ both yield int after promotion
		return ctypes.Int()
	case *cabs.Assign:
		return p.typeOf(n.Left)
	case *cabs.Conditional:
		return p.typeOf(n.Then)
	case *cabs.StmtExpr:
		return p.typeOf(n.X)
	case *cabs.Binary:
		return p.binaryType(n)
	}
	p.badToken(tokenOf(e), "cannot determine expression type")
	return nil
}

func (p *Parser) binaryType(n *cabs.Binary) ctypes.Type {
	switch n.Op {
	case cabs.OpComma:
		return p.typeOf(n.Right)
	case cabs.OpLt, cabs.OpLe, cabs.OpEq, cabs.OpNe, cabs.OpLogAnd, cabs.OpLogOr:
		return ctypes.Int()
	case cabs.OpAdd, cabs.OpSub:
		// Pointer arithmetic keeps the pointer operand's type, with arrays
		// decaying to pointers.
		lt := decay(p.typeOf(n.Left))
		if _, ok := lt.(ctypes.Tpointer); ok {
			return lt
		}
		rt := decay(p.typeOf(n.Right))
		if _, ok := rt.(ctypes.Tpointer); ok {
			return rt
		}
		return lt
	default:
		return p.typeOf(n.Left)
	}
}

func (p *Parser) memberType(n *cabs.Member) ctypes.Type {
	base := p.typeOf(n.X)
	st, ok := base.(*ctypes.Tstruct)
	if !ok {
		p.badToken(n.Tok, "member access on non-struct type %s", base)
	}
	if !st.Completed {
		p.badToken(n.Tok, "incomplete type %s", st)
	}
	f, ok := st.FindField(n.Name)
	if !ok {
		p.badToken(n.Tok, "%s has no member named %s", st, n.Name)
	}
	return f.Type
}

// decay converts an array type to a pointer to its element type
func decay(t ctypes.Type) ctypes.Type {
	if a, ok := t.(ctypes.Tarray); ok {
		return ctypes.Pointer(a.Elem)
	}
	return t
}

// tokenOf returns the source token an expression node was built from
func tokenOf(e cabs.Expr) lexer.Token {
	switch n := e.(type) {
	case *cabs.Constant:
		return n.Tok
	case *cabs.VarRef:
		return n.Tok
	case *cabs.Deref:
		return n.Tok
	case *cabs.AddrOf:
		return n.Tok
	case *cabs.Unary:
		return n.Tok
	case *cabs.Binary:
		return n.Tok
	case *cabs.Assign:
		return n.Tok
	case *cabs.Member:
		return n.Tok
	case *cabs.Conditional:
		return n.Tok
	case *cabs.Call:
		return n.Tok
	case *cabs.StmtExpr:
		return n.Tok
	}
	return lexer.Token{}
}
