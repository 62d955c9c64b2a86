// Package cabs defines the abstract syntax tree produced by the parser.
//
// Nodes are a closed set of variant kinds, each carrying only the fields its
// kind needs plus the token that introduced it. Types are attached eagerly
// only where they are statically known at parse time (constants, variable
// references, calls); the semantic pass fills in the rest.
package cabs

import (
	"github.com/raymyers/mini-cc/pkg/ctypes"
	"github.com/raymyers/mini-cc/pkg/lexer"
)

// Node is the base interface for all AST nodes
type Node interface {
	implCabsNode()
}

// Expr is the interface for all expression nodes
type Expr interface {
	Node
	implCabsExpr()
}

// Stmt is the interface for all statement nodes
type Stmt interface {
	Node
	implCabsStmt()
}

// BinaryOp represents binary operators. There is no greater-than operator:
// the parser lowers `a > b` to `b < a` and `a >= b` to `b <= a`.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLt
	OpLe
	OpEq
	OpNe
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl // <<
	OpShr // >>
	OpLogAnd
	OpLogOr
	OpComma
)

func (op BinaryOp) String() string {
	names := []string{"+", "-", "*", "/", "%", "<", "<=", "==", "!=", "&", "|", "^", "<<", ">>", "&&", "||", ","}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// UnaryOp represents the unary operators that keep a dedicated node.
// Unary minus is lowered to `0 - x`, and `*`/`&` have their own node kinds.
type UnaryOp int

const (
	OpNot    UnaryOp = iota // !
	OpBitNot                // ~
)

func (op UnaryOp) String() string {
	names := []string{"!", "~"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// Var represents one storage location: a global, a function local, or a
// compiler-synthesized temporary. Every node that names a variable holds a
// reference to the same Var.
type Var struct {
	Name    string
	Ty      ctypes.Type
	IsLocal bool
	Data    string // initial byte content for string-literal globals
}

// Constant represents an integer constant
type Constant struct {
	Value int64
	Ty    ctypes.Type
	Tok   lexer.Token
}

// VarRef represents a resolved reference to a variable
type VarRef struct {
	Name string
	Var  *Var
	Ty   ctypes.Type
	Tok  lexer.Token
}

// Deref represents a pointer dereference: *x
type Deref struct {
	X   Expr
	Tok lexer.Token
}

// AddrOf represents taking an address: &x
type AddrOf struct {
	X   Expr
	Tok lexer.Token
}

// Unary represents a unary expression (! or ~)
type Unary struct {
	Op  UnaryOp
	X   Expr
	Tok lexer.Token
}

// Binary represents a binary expression
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	Tok   lexer.Token
}

// Assign represents a plain assignment. Compound assignments never reach
// the AST; the parser desugars them into statement-expressions.
type Assign struct {
	Left  Expr
	Right Expr
	Tok   lexer.Token
}

// Member represents struct member access: s.name. Arrow access p->name is
// lowered to (*p).name.
type Member struct {
	X    Expr
	Name string
	Tok  lexer.Token
}

// Conditional represents the ternary operator: cond ? then : else
type Conditional struct {
	Cond Expr
	Then Expr
	Else Expr
	Tok  lexer.Token
}

// Call represents a function call by name. Ty is the callee's function
// type, or an assumed int-returning function type if the name is not
// declared as a function.
type Call struct {
	Name string
	Args []Expr
	Ty   ctypes.Type
	Tok  lexer.Token
}

// StmtExpr represents a GNU statement expression: ({ stmt; ...; expr; }).
// X is the final expression, whose value is the value of the whole form.
type StmtExpr struct {
	Stmts []Stmt
	X     Expr
	Tok   lexer.Token
}

// ExprStmt represents an expression statement
type ExprStmt struct {
	X   Expr
	Tok lexer.Token
}

// Null represents an empty statement
type Null struct{}

// Block represents a compound statement
type Block struct {
	Items []Stmt
	Tok   lexer.Token
}

// If represents an if statement with an optional else branch
type If struct {
	Cond Expr
	Then Stmt
	Else Stmt
	Tok  lexer.Token
}

// For represents a for loop. While loops share this representation with
// only Cond and Body set. Init, Cond and Inc are each independently
// omissible.
type For struct {
	Init Stmt
	Cond Expr
	Inc  Expr
	Body Stmt
	Tok  lexer.Token
}

// DoWhile represents a do-while loop
type DoWhile struct {
	Body Stmt
	Cond Expr
	Tok  lexer.Token
}

// Switch represents a switch statement. Cases aliases the case nodes that
// appear inside Body, in source order.
type Switch struct {
	Cond  Expr
	Body  Stmt
	Cases []*Case
	Tok   lexer.Token
}

// Case represents a case label with its statement
type Case struct {
	Value int64
	Body  Stmt
	Tok   lexer.Token
}

// Break represents a break statement. Target is the enclosing loop or
// switch node it exits.
type Break struct {
	Target Stmt
	Tok    lexer.Token
}

// Continue represents a continue statement. Target is the innermost break
// target at the point of the statement; loops push both target stacks, so
// outside a switch this is the enclosing loop.
type Continue struct {
	Target Stmt
	Tok    lexer.Token
}

// Return represents a return statement
type Return struct {
	X   Expr
	Tok lexer.Token
}

// FunDef is the function-definition node
type FunDef struct {
	Name   string
	Params []*Var
	Body   *Block
	Ty     ctypes.Type
	Tok    lexer.Token
}

// BasicBlock is a placeholder for the later control-flow lowering; the
// parser only allocates the empty per-function container.
type BasicBlock struct {
	ID int
}

// Function owns a function definition together with its locals, in
// declaration order and including desugaring temporaries.
type Function struct {
	Name   string
	Def    *FunDef
	LVars  []*Var
	Blocks []*BasicBlock
}

// Program is the parse result: globals and functions in declaration order
type Program struct {
	GVars []*Var
	Funcs []*Function
}

// Marker methods for interface implementation
func (*Constant) implCabsNode() {}
func (*Constant) implCabsExpr() {}

func (*VarRef) implCabsNode() {}
func (*VarRef) implCabsExpr() {}

func (*Deref) implCabsNode() {}
func (*Deref) implCabsExpr() {}

func (*AddrOf) implCabsNode() {}
func (*AddrOf) implCabsExpr() {}

func (*Unary) implCabsNode() {}
func (*Unary) implCabsExpr() {}

func (*Binary) implCabsNode() {}
func (*Binary) implCabsExpr() {}

func (*Assign) implCabsNode() {}
func (*Assign) implCabsExpr() {}

func (*Member) implCabsNode() {}
func (*Member) implCabsExpr() {}

func (*Conditional) implCabsNode() {}
func (*Conditional) implCabsExpr() {}

func (*Call) implCabsNode() {}
func (*Call) implCabsExpr() {}

func (*StmtExpr) implCabsNode() {}
func (*StmtExpr) implCabsExpr() {}

func (*ExprStmt) implCabsNode() {}
func (*ExprStmt) implCabsStmt() {}

func (*Null) implCabsNode() {}
func (*Null) implCabsStmt() {}

func (*Block) implCabsNode() {}
func (*Block) implCabsStmt() {}

func (*If) implCabsNode() {}
func (*If) implCabsStmt() {}

func (*For) implCabsNode() {}
func (*For) implCabsStmt() {}

func (*DoWhile) implCabsNode() {}
func (*DoWhile) implCabsStmt() {}

func (*Switch) implCabsNode() {}
func (*Switch) implCabsStmt() {}

func (*Case) implCabsNode() {}
func (*Case) implCabsStmt() {}

func (*Break) implCabsNode() {}
func (*Break) implCabsStmt() {}

func (*Continue) implCabsNode() {}
func (*Continue) implCabsStmt() {}

func (*Return) implCabsNode() {}
func (*Return) implCabsStmt() {}

func (*FunDef) implCabsNode() {}
