package parser

import (
	"github.com/raymyers/mini-cc/pkg/cabs"
	"github.com/raymyers/mini-cc/pkg/ctypes"
	"github.com/raymyers/mini-cc/pkg/lexer"
)

// tmpName names the locals synthesized by desugaring. Source identifiers
// cannot contain a dot, so these never collide with user variables, and
// every temporary is reached through its Var pointer rather than by name.
const tmpName = ".tmp"

func (p *Parser) newTmp(ty ctypes.Type) *cabs.Var {
	v := &cabs.Var{Name: tmpName, Ty: ty, IsLocal: true}
	p.allocLocal(v)
	return v
}

func (p *Parser) refTmp(t lexer.Token, v *cabs.Var) *cabs.VarRef {
	return &cabs.VarRef{Name: v.Name, Var: v, Ty: v.Ty, Tok: t}
}

func (p *Parser) derefTmp(t lexer.Token, v *cabs.Var) *cabs.Deref {
	return &cabs.Deref{X: p.refTmp(t, v), Tok: t}
}

// newStmtExpr folds a sequence of expressions into a statement expression
// whose value is the last one.
func (p *Parser) newStmtExpr(t lexer.Token, exprs ...cabs.Expr) *cabs.StmtExpr {
	last := exprs[len(exprs)-1]
	var stmts []cabs.Stmt
	for _, e := range exprs[:len(exprs)-1] {
		stmts = append(stmts, &cabs.ExprStmt{X: e, Tok: t})
	}
	return &cabs.StmtExpr{Stmts: stmts, X: last, Tok: t}
}

// newPostIncDec desugars `e++` (delta 1) and `e--` (delta -1). For an
// operand of type T the result is
//
//	({ T *p = &e; T old = *p; *p = *p + delta; old; })
//
// so the operand lvalue is evaluated once and the pre-update value is the
// value of the expression.
func (p *Parser) newPostIncDec(t lexer.Token, e cabs.Expr, delta int64) cabs.Expr {
	ty := p.typeOf(e)
	ptr := p.newTmp(ctypes.Pointer(ty))
	old := p.newTmp(ty)

	return p.newStmtExpr(t,
		&cabs.Assign{Left: p.refTmp(t, ptr), Right: &cabs.AddrOf{X: e, Tok: t}, Tok: t},
		&cabs.Assign{Left: p.refTmp(t, old), Right: p.derefTmp(t, ptr), Tok: t},
		&cabs.Assign{
			Left: p.derefTmp(t, ptr),
			Right: &cabs.Binary{
				Op:    cabs.OpAdd,
				Left:  p.derefTmp(t, ptr),
				Right: p.newInt(delta, t),
				Tok:   t,
			},
			Tok: t,
		},
		p.refTmp(t, old),
	)
}

// newAssignEq desugars `lhs op= rhs` into
//
//	({ T *p = &lhs; *p = *p op rhs; })
//
// evaluating the lvalue once and yielding the updated value. Prefix
// increment and decrement reuse this with rhs fixed to 1.
func (p *Parser) newAssignEq(t lexer.Token, op cabs.BinaryOp, lhs, rhs cabs.Expr) cabs.Expr {
	ty := p.typeOf(lhs)
	ptr := p.newTmp(ctypes.Pointer(ty))

	return p.newStmtExpr(t,
		&cabs.Assign{Left: p.refTmp(t, ptr), Right: &cabs.AddrOf{X: lhs, Tok: t}, Tok: t},
		&cabs.Assign{
			Left: p.derefTmp(t, ptr),
			Right: &cabs.Binary{
				Op:    op,
				Left:  p.derefTmp(t, ptr),
				Right: rhs,
				Tok:   t,
			},
			Tok: t,
		},
	)
}
