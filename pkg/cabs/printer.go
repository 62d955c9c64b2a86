// Package cabs provides AST printing functionality
package cabs

import (
	"fmt"
	"io"
	"strings"

	"github.com/raymyers/mini-cc/pkg/ctypes"
)

// Printer outputs the AST in a human-readable format
type Printer struct {
	w      io.Writer
	indent int
}

// NewPrinter creates a new AST printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, indent: 0}
}

// PrintProgram prints a complete program
func (p *Printer) PrintProgram(prog *Program) {
	for _, gv := range prog.GVars {
		p.printGlobal(gv)
	}
	for _, fn := range prog.Funcs {
		p.printFunction(fn)
		fmt.Fprintln(p.w)
	}
}

func (p *Printer) writeIndent() {
	fmt.Fprint(p.w, strings.Repeat("  ", p.indent))
}

func (p *Printer) printGlobal(v *Var) {
	if v.Data != "" {
		fmt.Fprintf(p.w, "%s %s = %q;\n", typeName(v.Ty), v.Name, v.Data)
		return
	}
	fmt.Fprintf(p.w, "%s %s;\n", typeName(v.Ty), v.Name)
}

func (p *Printer) printFunction(fn *Function) {
	def := fn.Def
	ret := ctypes.Type(nil)
	if f, ok := def.Ty.(ctypes.Tfunction); ok {
		ret = f.Return
	}
	fmt.Fprintf(p.w, "%s %s(", typeName(ret), def.Name)
	for i, param := range def.Params {
		if i > 0 {
			fmt.Fprint(p.w, ", ")
		}
		fmt.Fprintf(p.w, "%s %s", typeName(param.Ty), param.Name)
	}
	fmt.Fprintln(p.w, ")")
	p.printBlock(def.Body)
}

func typeName(t ctypes.Type) string {
	if t == nil {
		return "?"
	}
	return t.String()
}

func (p *Printer) printBlock(b *Block) {
	p.writeIndent()
	fmt.Fprintln(p.w, "{")
	p.indent++
	for _, stmt := range b.Items {
		p.printStmt(stmt)
	}
	p.indent--
	p.writeIndent()
	fmt.Fprintln(p.w, "}")
}

func (p *Printer) printStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *Block:
		p.printBlock(s)
		return
	case *Case:
		p.writeIndent()
		fmt.Fprintf(p.w, "case %d:\n", s.Value)
		p.indent++
		p.printStmt(s.Body)
		p.indent--
		return
	}

	p.writeIndent()
	switch s := stmt.(type) {
	case *Return:
		fmt.Fprint(p.w, "return")
		if s.X != nil {
			fmt.Fprint(p.w, " ")
			p.printExpr(s.X)
		}
		fmt.Fprintln(p.w, ";")
	case *ExprStmt:
		p.printExpr(s.X)
		fmt.Fprintln(p.w, ";")
	case *Null:
		fmt.Fprintln(p.w, ";")
	case *If:
		fmt.Fprint(p.w, "if (")
		p.printExpr(s.Cond)
		fmt.Fprintln(p.w, ")")
		p.indent++
		p.printStmt(s.Then)
		p.indent--
		if s.Else != nil {
			p.writeIndent()
			fmt.Fprintln(p.w, "else")
			p.indent++
			p.printStmt(s.Else)
			p.indent--
		}
	case *For:
		fmt.Fprint(p.w, "for (")
		if s.Init != nil {
			p.printInlineStmt(s.Init)
		}
		fmt.Fprint(p.w, "; ")
		if s.Cond != nil {
			p.printExpr(s.Cond)
		}
		fmt.Fprint(p.w, "; ")
		if s.Inc != nil {
			p.printExpr(s.Inc)
		}
		fmt.Fprintln(p.w, ")")
		p.indent++
		p.printStmt(s.Body)
		p.indent--
	case *DoWhile:
		fmt.Fprintln(p.w, "do")
		p.indent++
		p.printStmt(s.Body)
		p.indent--
		p.writeIndent()
		fmt.Fprint(p.w, "while (")
		p.printExpr(s.Cond)
		fmt.Fprintln(p.w, ");")
	case *Switch:
		fmt.Fprint(p.w, "switch (")
		p.printExpr(s.Cond)
		fmt.Fprintln(p.w, ")")
		p.indent++
		p.printStmt(s.Body)
		p.indent--
	case *Break:
		fmt.Fprintln(p.w, "break;")
	case *Continue:
		fmt.Fprintln(p.w, "continue;")
	default:
		fmt.Fprintf(p.w, "/* unknown stmt %T */;\n", stmt)
	}
}

// printInlineStmt prints a statement without indentation or the trailing
// newline, for for-loop init clauses.
func (p *Printer) printInlineStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *ExprStmt:
		p.printExpr(s.X)
	case *Null:
	default:
		fmt.Fprintf(p.w, "/* unknown init %T */", stmt)
	}
}

// ExprString renders a single expression, mainly for tests and debugging
func ExprString(expr Expr) string {
	var b strings.Builder
	p := NewPrinter(&b)
	p.printExpr(expr)
	return b.String()
}

func (p *Printer) printExpr(expr Expr) {
	switch e := expr.(type) {
	case *Constant:
		fmt.Fprintf(p.w, "%d", e.Value)
	case *VarRef:
		fmt.Fprint(p.w, e.Var.Name)
	case *Deref:
		fmt.Fprint(p.w, "*")
		p.printExpr(e.X)
	case *AddrOf:
		fmt.Fprint(p.w, "&")
		p.printExpr(e.X)
	case *Unary:
		fmt.Fprint(p.w, e.Op.String())
		p.printExpr(e.X)
	case *Binary:
		fmt.Fprint(p.w, "(")
		p.printExpr(e.Left)
		fmt.Fprintf(p.w, " %s ", e.Op.String())
		p.printExpr(e.Right)
		fmt.Fprint(p.w, ")")
	case *Assign:
		fmt.Fprint(p.w, "(")
		p.printExpr(e.Left)
		fmt.Fprint(p.w, " = ")
		p.printExpr(e.Right)
		fmt.Fprint(p.w, ")")
	case *Member:
		p.printExpr(e.X)
		fmt.Fprintf(p.w, ".%s", e.Name)
	case *Conditional:
		p.printExpr(e.Cond)
		fmt.Fprint(p.w, " ? ")
		p.printExpr(e.Then)
		fmt.Fprint(p.w, " : ")
		p.printExpr(e.Else)
	case *Call:
		fmt.Fprintf(p.w, "%s(", e.Name)
		for i, arg := range e.Args {
			if i > 0 {
				fmt.Fprint(p.w, ", ")
			}
			p.printExpr(arg)
		}
		fmt.Fprint(p.w, ")")
	case *StmtExpr:
		fmt.Fprint(p.w, "({ ")
		for _, s := range e.Stmts {
			if es, ok := s.(*ExprStmt); ok {
				p.printExpr(es.X)
				fmt.Fprint(p.w, "; ")
			}
		}
		p.printExpr(e.X)
		fmt.Fprint(p.w, "; })")
	default:
		fmt.Fprintf(p.w, "/* unknown expr %T */", expr)
	}
}
