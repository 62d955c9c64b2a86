package parser

import (
	"strings"
	"testing"

	"github.com/raymyers/mini-cc/pkg/cabs"
	"github.com/raymyers/mini-cc/pkg/ctypes"
	"github.com/raymyers/mini-cc/pkg/lexer"
)

func parseSource(t *testing.T, src string) (*cabs.Program, *Parser) {
	t.Helper()
	p := New(lexer.New(src))
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return prog, p
}

func parseError(t *testing.T, src string) *Error {
	t.Helper()
	p := New(lexer.New(src))
	_, err := p.ParseProgram()
	if err == nil {
		t.Fatal("expected a parse error, got none")
	}
	pe, ok := err.(*Error)
	if !ok {
		t.Fatalf("error has type %T, want *Error", err)
	}
	return pe
}

// returnExpr parses src and returns the expression of the last function's
// final return statement.
func returnExpr(t *testing.T, src string) cabs.Expr {
	t.Helper()
	prog, _ := parseSource(t, src)
	if len(prog.Funcs) == 0 {
		t.Fatal("no functions parsed")
	}
	items := prog.Funcs[len(prog.Funcs)-1].Def.Body.Items
	ret, ok := items[len(items)-1].(*cabs.Return)
	if !ok {
		t.Fatalf("last statement is %T, want *cabs.Return", items[len(items)-1])
	}
	return ret.X
}

func exprOf(t *testing.T, expr string) cabs.Expr {
	t.Helper()
	return returnExpr(t, "int main() { return "+expr+"; }")
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1+2*3", "(1 + (2 * 3))"},
		{"(1+2)*3", "((1 + 2) * 3)"},
		{"1-2-3", "((1 - 2) - 3)"},
		{"10/2%3", "((10 / 2) % 3)"},
		{"1<<2+3", "(1 << (2 + 3))"},
		{"1<2==3<4", "((1 < 2) == (3 < 4))"},
		{"1==2!=3", "((1 == 2) != 3)"},
		{"1&2|3^4", "((1 & 2) | (3 ^ 4))"},
		{"1&&2||3", "((1 && 2) || 3)"},
		{"!1", "!1"},
		{"~1", "~1"},
		{"1, 2", "(1 , 2)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := cabs.ExprString(exprOf(t, tt.input))
			if got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestRelationalSwap(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1<2", "(1 < 2)"},
		{"1<=2", "(1 <= 2)"},
		{"1>2", "(2 < 1)"},
		{"1>=2", "(2 <= 1)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := cabs.ExprString(exprOf(t, tt.input))
			if got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestUnaryMinusLowering(t *testing.T) {
	if got := cabs.ExprString(exprOf(t, "-5")); got != "(0 - 5)" {
		t.Errorf("got %s, want (0 - 5)", got)
	}
}

func TestTernaryRightAssociative(t *testing.T) {
	cond, ok := exprOf(t, "1 ? 2 : 3 ? 4 : 5").(*cabs.Conditional)
	if !ok {
		t.Fatal("expected a conditional node")
	}
	if _, ok := cond.Else.(*cabs.Conditional); !ok {
		t.Errorf("else branch is %T, want nested *cabs.Conditional", cond.Else)
	}
}

func TestIndexLowering(t *testing.T) {
	x := returnExpr(t, "int main() { int a[3]; return a[1]; }")
	deref, ok := x.(*cabs.Deref)
	if !ok {
		t.Fatalf("a[1] parsed as %T, want *cabs.Deref", x)
	}
	sum, ok := deref.X.(*cabs.Binary)
	if !ok || sum.Op != cabs.OpAdd {
		t.Fatalf("deref operand is not base + index: %s", cabs.ExprString(deref.X))
	}
}

func TestArrowLowering(t *testing.T) {
	src := `
struct P { int v; } g;
int main() {
  struct P *p;
  p = &g;
  return p->v;
}
`
	x := returnExpr(t, src)
	m, ok := x.(*cabs.Member)
	if !ok {
		t.Fatalf("p->v parsed as %T, want *cabs.Member", x)
	}
	if m.Name != "v" {
		t.Errorf("member name = %s, want v", m.Name)
	}
	if _, ok := m.X.(*cabs.Deref); !ok {
		t.Errorf("arrow base is %T, want *cabs.Deref", m.X)
	}
}

func TestPostIncrementDesugar(t *testing.T) {
	prog, _ := parseSource(t, "int main() { int x; x = 0; return x++; }")
	fn := prog.Funcs[0]

	items := fn.Def.Body.Items
	ret := items[len(items)-1].(*cabs.Return)
	se, ok := ret.X.(*cabs.StmtExpr)
	if !ok {
		t.Fatalf("x++ parsed as %T, want *cabs.StmtExpr", ret.X)
	}
	if len(se.Stmts) != 3 {
		t.Fatalf("statement expression has %d inner statements, want 3", len(se.Stmts))
	}

	// value of the form is the saved pre-update temporary
	old, ok := se.X.(*cabs.VarRef)
	if !ok || old.Var.Name != ".tmp" {
		t.Errorf("result expression = %s, want the saved temporary", cabs.ExprString(se.X))
	}

	// first inner statement captures the operand address
	first := se.Stmts[0].(*cabs.ExprStmt).X.(*cabs.Assign)
	if _, ok := first.Right.(*cabs.AddrOf); !ok {
		t.Errorf("first desugared step is %s, want an address capture", cabs.ExprString(first))
	}

	// x plus the pointer and old-value temporaries
	if len(fn.LVars) != 3 {
		t.Errorf("function has %d locals, want 3", len(fn.LVars))
	}
}

func TestCompoundAssignDesugar(t *testing.T) {
	prog, _ := parseSource(t, "int main() { int x; x = 1; return x += 2; }")
	fn := prog.Funcs[0]

	items := fn.Def.Body.Items
	ret := items[len(items)-1].(*cabs.Return)
	se, ok := ret.X.(*cabs.StmtExpr)
	if !ok {
		t.Fatalf("x += 2 parsed as %T, want *cabs.StmtExpr", ret.X)
	}
	if len(se.Stmts) != 1 {
		t.Fatalf("statement expression has %d inner statements, want 1", len(se.Stmts))
	}

	upd, ok := se.X.(*cabs.Assign)
	if !ok {
		t.Fatalf("result expression is %T, want *cabs.Assign", se.X)
	}
	if _, ok := upd.Left.(*cabs.Deref); !ok {
		t.Errorf("update target is %T, want a deref of the temporary", upd.Left)
	}
	rhs, ok := upd.Right.(*cabs.Binary)
	if !ok || rhs.Op != cabs.OpAdd {
		t.Errorf("update value = %s, want *.tmp + 2", cabs.ExprString(upd.Right))
	}

	// x plus the pointer temporary
	if len(fn.LVars) != 2 {
		t.Errorf("function has %d locals, want 2", len(fn.LVars))
	}
}

func TestPrefixIncrementDesugar(t *testing.T) {
	x := returnExpr(t, "int main() { int x; x = 0; return ++x; }")
	se, ok := x.(*cabs.StmtExpr)
	if !ok {
		t.Fatalf("++x parsed as %T, want *cabs.StmtExpr", x)
	}
	upd := se.X.(*cabs.Assign)
	rhs := upd.Right.(*cabs.Binary)
	if rhs.Op != cabs.OpAdd {
		t.Errorf("prefix increment op = %s, want +", rhs.Op)
	}
	c, ok := rhs.Right.(*cabs.Constant)
	if !ok || c.Value != 1 {
		t.Errorf("prefix increment delta = %s, want 1", cabs.ExprString(rhs.Right))
	}
}

func TestSizeof(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		value int64
	}{
		{"int", "int main() { int x; return sizeof x; }", 4},
		{"char", "int main() { char c; return sizeof(c); }", 1},
		{"pointer", "int main() { int *p; return sizeof p; }", 8},
		{"array", "int main() { int a[2][3]; return sizeof a; }", 24},
		{"array decays in arithmetic", "int main() { int a[10]; return sizeof(a + 1); }", 8},
		{"struct with padding", "int main() { struct S { char a; int b; char c; } s; return sizeof s; }", 12},
		{"alignof int", "int main() { int x; return _Alignof x; }", 4},
		{"alignof struct", "int main() { struct S { char a; int b; } s; return _Alignof s; }", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := returnExpr(t, tt.src).(*cabs.Constant)
			if !ok {
				t.Fatal("sizeof did not fold to a constant")
			}
			if c.Value != tt.value {
				t.Errorf("got %d, want %d", c.Value, tt.value)
			}
		})
	}
}

func TestParenthesizedDeclarator(t *testing.T) {
	// x is a pointer to an array of three ints
	c, ok := returnExpr(t, "int main() { int (*x)[3]; return sizeof *x; }").(*cabs.Constant)
	if !ok {
		t.Fatal("sizeof did not fold to a constant")
	}
	if c.Value != 12 {
		t.Errorf("sizeof *x = %d, want 12", c.Value)
	}
}

func TestTypeofSpecifier(t *testing.T) {
	c, ok := returnExpr(t, "int main() { char c; typeof(c) d; return sizeof d; }").(*cabs.Constant)
	if !ok {
		t.Fatal("sizeof did not fold to a constant")
	}
	if c.Value != 1 {
		t.Errorf("sizeof d = %d, want 1", c.Value)
	}
}

func TestTypedef(t *testing.T) {
	prog, _ := parseSource(t, "typedef int myint; myint x; int main() { return x; }")
	if len(prog.GVars) != 1 {
		t.Fatalf("got %d globals, want 1", len(prog.GVars))
	}
	if !ctypes.Equal(prog.GVars[0].Ty, ctypes.Int()) {
		t.Errorf("typedef'd global has type %s, want int", prog.GVars[0].Ty)
	}
}

func TestBlockScopedTypedef(t *testing.T) {
	c, ok := returnExpr(t, "int main() { typedef char t; t c; return sizeof c; }").(*cabs.Constant)
	if !ok {
		t.Fatal("sizeof did not fold to a constant")
	}
	if c.Value != 1 {
		t.Errorf("sizeof c = %d, want 1", c.Value)
	}
}

func TestShadowing(t *testing.T) {
	src := `
int main() {
  int x;
  x = 1;
  {
    int x;
    x = 2;
  }
  return x;
}
`
	prog, _ := parseSource(t, src)
	items := prog.Funcs[0].Def.Body.Items

	outer := items[1].(*cabs.ExprStmt).X.(*cabs.Assign).Left.(*cabs.VarRef).Var
	block := items[2].(*cabs.Block)
	inner := block.Items[1].(*cabs.ExprStmt).X.(*cabs.Assign).Left.(*cabs.VarRef).Var

	if outer == inner {
		t.Error("inner x resolved to the outer binding")
	}
	ret := items[3].(*cabs.Return).X.(*cabs.VarRef).Var
	if ret != outer {
		t.Error("x after the block did not resolve to the outer binding")
	}
}

func TestStructLayout(t *testing.T) {
	prog, _ := parseSource(t, "struct Point { int x; int y; } p; int main() { return p.x; }")
	st, ok := prog.GVars[0].Ty.(*ctypes.Tstruct)
	if !ok {
		t.Fatalf("global has type %T, want *ctypes.Tstruct", prog.GVars[0].Ty)
	}
	if !st.Completed {
		t.Fatal("struct not completed")
	}
	if st.Size != 8 || st.Align != 4 {
		t.Errorf("layout size=%d align=%d, want 8/4", st.Size, st.Align)
	}
	x, _ := st.FindField("x")
	y, _ := st.FindField("y")
	if x.Offset != 0 || y.Offset != 4 {
		t.Errorf("offsets x=%d y=%d, want 0/4", x.Offset, y.Offset)
	}
}

func TestBareStructDeclaration(t *testing.T) {
	prog, _ := parseSource(t, "struct Point { int x; int y; }; struct Point p; int main() { return p.y; }")
	st, ok := prog.GVars[0].Ty.(*ctypes.Tstruct)
	if !ok {
		t.Fatalf("p has type %T, want *ctypes.Tstruct", prog.GVars[0].Ty)
	}
	if st.Size != 8 || st.Align != 4 {
		t.Errorf("layout size=%d align=%d, want 8/4", st.Size, st.Align)
	}
}

func TestIncompleteStructCompletedInPlace(t *testing.T) {
	src := `
struct S *head;
struct S { int v; struct S *next; } node;
int main() { return node.v; }
`
	prog, _ := parseSource(t, src)

	headElem, ok := ctypes.Elem(prog.GVars[0].Ty).(*ctypes.Tstruct)
	if !ok {
		t.Fatal("head is not a struct pointer")
	}
	st, ok := prog.GVars[1].Ty.(*ctypes.Tstruct)
	if !ok {
		t.Fatal("node is not a struct")
	}
	if headElem != st {
		t.Error("forward reference and definition use different struct handles")
	}
	if !st.Completed || st.Size != 16 || st.Align != 8 {
		t.Errorf("layout size=%d align=%d completed=%v, want 16/8/true", st.Size, st.Align, st.Completed)
	}
}

func TestIncompleteStructByValueRejected(t *testing.T) {
	e := parseError(t, "struct S *p; struct S s;")
	if !strings.Contains(e.Msg, "incomplete type") {
		t.Errorf("got %q, want incomplete type error", e.Msg)
	}
}

func TestBadStructDefinitions(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty body", "struct E {} e;"},
		{"no tag no body", "int main() { struct *p; return 0; }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := parseError(t, tt.src)
			if !strings.Contains(e.Msg, "bad struct definition") {
				t.Errorf("got %q, want bad struct definition", e.Msg)
			}
		})
	}
}

func TestUnknownMember(t *testing.T) {
	// sizeof forces member typing at parse time
	e := parseError(t, "struct P { int x; } p; int main() { return sizeof p.y; }")
	if !strings.Contains(e.Msg, "no member named y") {
		t.Errorf("got %q, want unknown member error", e.Msg)
	}
}

func TestGlobalArrays(t *testing.T) {
	prog, _ := parseSource(t, "int a[10]; int m[2][3]; int u[];")
	if !ctypes.Equal(prog.GVars[0].Ty, ctypes.Array(ctypes.Int(), 10)) {
		t.Errorf("a has type %s, want int[10]", prog.GVars[0].Ty)
	}
	want := ctypes.Array(ctypes.Array(ctypes.Int(), 3), 2)
	if !ctypes.Equal(prog.GVars[1].Ty, want) {
		t.Errorf("m has type %s, want %s", prog.GVars[1].Ty, want)
	}
	if !ctypes.Equal(prog.GVars[2].Ty, ctypes.Array(ctypes.Int(), -1)) {
		t.Errorf("u has type %s, want int[]", prog.GVars[2].Ty)
	}
}

func TestExternHasNoStorage(t *testing.T) {
	prog, _ := parseSource(t, "extern int e; int main() { return e; }")
	if len(prog.GVars) != 0 {
		t.Errorf("extern declaration allocated storage: %d globals", len(prog.GVars))
	}
}

func TestStringLiteral(t *testing.T) {
	prog, _ := parseSource(t, `char *s; int main() { s = "hi"; return 0; }`)
	if len(prog.GVars) != 2 {
		t.Fatalf("got %d globals, want 2", len(prog.GVars))
	}
	lit := prog.GVars[1]
	if lit.Name != ".L.str1" {
		t.Errorf("literal global named %s, want .L.str1", lit.Name)
	}
	if lit.Data != "hi" {
		t.Errorf("literal data %q, want %q", lit.Data, "hi")
	}
	// length includes the NUL terminator
	if !ctypes.Equal(lit.Ty, ctypes.Array(ctypes.Char(), 3)) {
		t.Errorf("literal type %s, want char[3]", lit.Ty)
	}
}

func TestParamArrayDecay(t *testing.T) {
	prog, _ := parseSource(t, "int f(int a[4]) { return *a; }")
	param := prog.Funcs[0].Def.Params[0]
	if !ctypes.Equal(param.Ty, ctypes.Pointer(ctypes.Int())) {
		t.Errorf("param type %s, want int *", param.Ty)
	}
}

func TestParamsPrecedeLocals(t *testing.T) {
	prog, _ := parseSource(t, "int add(int a, int b) { int s; s = a + b; return s; }")
	lv := prog.Funcs[0].LVars
	if len(lv) != 3 || lv[0].Name != "a" || lv[1].Name != "b" || lv[2].Name != "s" {
		names := make([]string, len(lv))
		for i, v := range lv {
			names[i] = v.Name
		}
		t.Errorf("locals = %v, want [a b s]", names)
	}
}

func TestRecursionSeesOwnName(t *testing.T) {
	_, p := parseSource(t, "int fact(int n) { if (n < 2) return 1; return n * fact(n - 1); }")
	if len(p.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", p.Warnings())
	}
}

func TestUndefinedFunctionWarns(t *testing.T) {
	prog, p := parseSource(t, "int main() { return foo(); }")
	if len(p.Warnings()) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(p.Warnings()), p.Warnings())
	}
	if !strings.Contains(p.Warnings()[0], "undefined function: foo") {
		t.Errorf("warning %q does not name the function", p.Warnings()[0])
	}

	// the callee is assumed to return int
	ret := prog.Funcs[0].Def.Body.Items[0].(*cabs.Return)
	call := ret.X.(*cabs.Call)
	if !ctypes.Equal(call.Ty, ctypes.Func(ctypes.Int())) {
		t.Errorf("assumed callee type %s, want function returning int", call.Ty)
	}
}

func TestDefinedFunctionCallDoesNotWarn(t *testing.T) {
	_, p := parseSource(t, "int answer() { return 42; } int main() { return answer(); }")
	if len(p.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", p.Warnings())
	}
}

func TestPrototypeNotRetained(t *testing.T) {
	// Prototypes parse but leave no binding behind, so the call still warns.
	_, p := parseSource(t, "int put(int c); int main() { return put(65); }")
	if len(p.Warnings()) != 1 {
		t.Errorf("got %d warnings, want 1: %v", len(p.Warnings()), p.Warnings())
	}
}

func TestWhileIsAForLoop(t *testing.T) {
	prog, _ := parseSource(t, "int main() { int i; i = 0; while (i < 3) i = i + 1; return i; }")
	loop, ok := prog.Funcs[0].Def.Body.Items[2].(*cabs.For)
	if !ok {
		t.Fatal("while did not parse to a for node")
	}
	if loop.Init != nil || loop.Inc != nil {
		t.Error("while loop has init or increment clauses")
	}
	if loop.Cond == nil || loop.Body == nil {
		t.Error("while loop lost its condition or body")
	}
}

func TestDoWhile(t *testing.T) {
	prog, _ := parseSource(t, "int main() { int i; i = 0; do i = i + 1; while (i < 3); return i; }")
	if _, ok := prog.Funcs[0].Def.Body.Items[2].(*cabs.DoWhile); !ok {
		t.Error("do-while did not parse to a do-while node")
	}
}

func TestForInitDeclarationIsLoopScoped(t *testing.T) {
	e := parseError(t, "int main() { for (int i = 0; i < 3; i = i + 1) ; return i; }")
	if !strings.Contains(e.Msg, "undefined variable: i") {
		t.Errorf("got %q, want undefined variable error", e.Msg)
	}
}

func TestSwitchCollectsCases(t *testing.T) {
	src := `
int main() {
  int x;
  x = 1;
  switch (x) {
  case 1:
    break;
  case 2:
    break;
  }
  return x;
}
`
	prog, _ := parseSource(t, src)
	sw := prog.Funcs[0].Def.Body.Items[2].(*cabs.Switch)
	if len(sw.Cases) != 2 {
		t.Fatalf("switch collected %d cases, want 2", len(sw.Cases))
	}
	if sw.Cases[0].Value != 1 || sw.Cases[1].Value != 2 {
		t.Errorf("case values = %d, %d, want 1, 2", sw.Cases[0].Value, sw.Cases[1].Value)
	}

	// Cases alias the nodes inside the body
	body := sw.Body.(*cabs.Block)
	if sw.Cases[0] != body.Items[0].(*cabs.Case) {
		t.Error("collected case is not the body's case node")
	}

	// break inside the switch exits the switch
	br := sw.Cases[0].Body.(*cabs.Break)
	if br.Target != cabs.Stmt(sw) {
		t.Error("break target is not the enclosing switch")
	}
}

func TestContinueInLoopInsideSwitch(t *testing.T) {
	src := `
int main() {
  int i;
  i = 0;
  switch (i) {
  case 0:
    while (i < 3)
      continue;
  }
  return i;
}
`
	prog, _ := parseSource(t, src)
	sw := prog.Funcs[0].Def.Body.Items[2].(*cabs.Switch)
	loop, ok := sw.Cases[0].Body.(*cabs.For)
	if !ok {
		t.Fatalf("case body is %T, want the while loop", sw.Cases[0].Body)
	}
	cont := loop.Body.(*cabs.Continue)
	if cont.Target != cabs.Stmt(loop) {
		t.Error("continue did not target the enclosing loop")
	}
}

func TestStatementExpression(t *testing.T) {
	se, ok := exprOf(t, "({ 1; 2; })").(*cabs.StmtExpr)
	if !ok {
		t.Fatal("expected a statement expression node")
	}
	if len(se.Stmts) != 1 {
		t.Errorf("got %d inner statements, want 1", len(se.Stmts))
	}
	c, ok := se.X.(*cabs.Constant)
	if !ok || c.Value != 2 {
		t.Errorf("value = %s, want 2", cabs.ExprString(se.X))
	}
}

func TestStrayControlStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"break", "int main() { break; }", "stray break"},
		{"continue", "int main() { continue; }", "stray continue"},
		{"case", "int main() { case 1: return 0; }", "stray case"},
		{"continue in bare switch", "int main() { switch (1) { case 1: continue; } return 0; }", "stray continue"},
		{"void statement expression", "int main() { return ({ ; }); }", "statement expression returning void"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := parseError(t, tt.src)
			if !strings.Contains(e.Msg, tt.msg) {
				t.Errorf("got %q, want %q", e.Msg, tt.msg)
			}
		})
	}
}

func TestConstantExpressionRequired(t *testing.T) {
	e := parseError(t, "int main() { int a[1+2]; return 0; }")
	if !strings.Contains(e.Msg, "constant expression expected") {
		t.Errorf("got %q, want constant expression error", e.Msg)
	}
}

func TestUndefinedVariable(t *testing.T) {
	e := parseError(t, "int main() {\n  return x;\n}\n")
	if !strings.Contains(e.Msg, "undefined variable: x") {
		t.Errorf("got %q, want undefined variable error", e.Msg)
	}
	if e.Tok.Line != 2 {
		t.Errorf("error at line %d, want 2", e.Tok.Line)
	}
}

func TestDeclarationWithInitializerLowers(t *testing.T) {
	prog, _ := parseSource(t, "int main() { int x = 40 + 2; return x; }")
	items := prog.Funcs[0].Def.Body.Items
	es, ok := items[0].(*cabs.ExprStmt)
	if !ok {
		t.Fatalf("initialized declaration parsed as %T, want *cabs.ExprStmt", items[0])
	}
	if got := cabs.ExprString(es.X); got != "(x = (40 + 2))" {
		t.Errorf("lowered to %s, want (x = (40 + 2))", got)
	}
}

func TestDeclarationWithoutInitializerIsNull(t *testing.T) {
	prog, _ := parseSource(t, "int main() { int x; return 0; }")
	if _, ok := prog.Funcs[0].Def.Body.Items[0].(*cabs.Null); !ok {
		t.Error("bare declaration should contribute no statement")
	}
}

func TestCommaInArgumentsBindsToArguments(t *testing.T) {
	x := returnExpr(t, "int f(int a, int b) { return a + b; } int main() { return f(1, 2); }")
	call, ok := x.(*cabs.Call)
	if !ok {
		t.Fatalf("got %T, want *cabs.Call", x)
	}
	if len(call.Args) != 2 {
		t.Errorf("call has %d arguments, want 2", len(call.Args))
	}
}
