package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/dylon/rholang-go/ast"
	"github.com/dylon/rholang-go/parser"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// mustParse parses code and fails the test if there's an error.
func mustParse(t *testing.T, code string) []ast.AnnProc {
	t.Helper()
	procs, err := parser.New().Parse(code)
	if err != nil {
		t.Fatalf("Failed to parse:\n%s\nError: %v", code, err)
	}
	return procs
}

// parseOne parses code and returns its single top-level process.
func parseOne(t *testing.T, code string) ast.AnnProc {
	t.Helper()
	procs := mustParse(t, code)
	if len(procs) != 1 {
		t.Fatalf("Parse(%q) = %d processes; want 1", code, len(procs))
	}
	return procs[0]
}

// mustFail parses code expecting a batched failure.
func mustFail(t *testing.T, code string) *parser.ParsingFailure {
	t.Helper()
	_, err := parser.New().Parse(code)
	if err == nil {
		t.Fatalf("Parse(%q) succeeded; want failure", code)
	}
	var failure *parser.ParsingFailure
	if !errors.As(err, &failure) {
		t.Fatalf("Parse(%q) error = %T; want *ParsingFailure", code, err)
	}
	if len(failure.Errors) == 0 {
		t.Fatalf("Parse(%q): failure carries no errors", code)
	}
	return failure
}

// varName extracts the identifier behind a name, or "_" for the wildcard.
func varName(t *testing.T, n ast.AnnName) string {
	t.Helper()
	pv, ok := n.Name.(*ast.ProcVar)
	if !ok {
		t.Fatalf("name = %T; want *ast.ProcVar", n.Name)
	}
	return pv.Var.String()
}

// longValue extracts the value of an integer literal process.
func longValue(t *testing.T, p ast.AnnProc) int64 {
	t.Helper()
	lit, ok := p.Proc.(*ast.LongLiteral)
	if !ok {
		t.Fatalf("proc = %T; want *ast.LongLiteral", p.Proc)
	}
	return lit.Value
}

// assertRoundTrip renders the parsed process and checks the output.
func assertRoundTrip(t *testing.T, code, want string) {
	t.Helper()
	got := parseOne(t, code).String()
	if got != want {
		t.Errorf("render(%q)\n  got:  %s\n  want: %s", code, got, want)
	}
}

// ===========================================================================
// LITERALS AND LEAVES
// ===========================================================================

func TestEmptyInput(t *testing.T) {
	for _, code := range []string{"", "   \n\t ", "// just a comment\n", "/* all\ncomment */"} {
		procs, err := parser.New().Parse(code)
		if err != nil {
			t.Errorf("Parse(%q) error = %v; want nil", code, err)
		}
		if len(procs) != 0 {
			t.Errorf("Parse(%q) = %d processes; want 0", code, len(procs))
		}
	}
}

func TestNilLiteral(t *testing.T) {
	p := parseOne(t, "Nil")
	if _, ok := p.Proc.(*ast.Nil); !ok {
		t.Fatalf("proc = %T; want *ast.Nil", p.Proc)
	}
	want := ast.Span{Start: ast.Position{Line: 1, Column: 1}, End: ast.Position{Line: 1, Column: 4}}
	if p.Span != want {
		t.Errorf("span = %+v; want %+v", p.Span, want)
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		code  string
		check func(p ast.Proc) bool
	}{
		{"true", func(p ast.Proc) bool { b, ok := p.(*ast.BoolLiteral); return ok && b.Value }},
		{"false", func(p ast.Proc) bool { b, ok := p.(*ast.BoolLiteral); return ok && !b.Value }},
		{"42", func(p ast.Proc) bool { n, ok := p.(*ast.LongLiteral); return ok && n.Value == 42 }},
		{"0", func(p ast.Proc) bool { n, ok := p.(*ast.LongLiteral); return ok && n.Value == 0 }},
		{`"hello"`, func(p ast.Proc) bool { s, ok := p.(*ast.StringLiteral); return ok && s.Value == "hello" }},
		{`"say \"hi\""`, func(p ast.Proc) bool { s, ok := p.(*ast.StringLiteral); return ok && s.Value == `say \"hi\"` }},
		{"`rho:io:stdout`", func(p ast.Proc) bool { u, ok := p.(*ast.UriLiteral); return ok && u.Value == ast.Uri("rho:io:stdout") }},
		{"Bool", func(p ast.Proc) bool { s, ok := p.(*ast.SimpleTypeLiteral); return ok && s.Type == ast.SimpleTypeBool }},
		{"Int", func(p ast.Proc) bool { s, ok := p.(*ast.SimpleTypeLiteral); return ok && s.Type == ast.SimpleTypeInt }},
		{"String", func(p ast.Proc) bool { s, ok := p.(*ast.SimpleTypeLiteral); return ok && s.Type == ast.SimpleTypeString }},
		{"Uri", func(p ast.Proc) bool { s, ok := p.(*ast.SimpleTypeLiteral); return ok && s.Type == ast.SimpleTypeUri }},
		{"ByteArray", func(p ast.Proc) bool { s, ok := p.(*ast.SimpleTypeLiteral); return ok && s.Type == ast.SimpleTypeByteArray }},
	}
	for _, tt := range tests {
		p := parseOne(t, tt.code)
		if !tt.check(p.Proc) {
			t.Errorf("Parse(%q) = %T %+v; wrong leaf", tt.code, p.Proc, p.Proc)
		}
	}
}

func TestVariable(t *testing.T) {
	p := parseOne(t, "x")
	pv, ok := p.Proc.(*ast.ProcVar)
	if !ok {
		t.Fatalf("proc = %T; want *ast.ProcVar", p.Proc)
	}
	if pv.Var.Wildcard() || pv.Var.Id.Name != "x" {
		t.Errorf("var = %+v; want x", pv.Var)
	}
	if pv.Var.Id.Pos != (ast.Position{Line: 1, Column: 1}) {
		t.Errorf("pos = %+v; want 1:1", pv.Var.Id.Pos)
	}
}

func TestTopLevelProcessList(t *testing.T) {
	procs := mustParse(t, "Nil 42")
	if len(procs) != 2 {
		t.Fatalf("got %d processes; want 2", len(procs))
	}
	if _, ok := procs[0].Proc.(*ast.Nil); !ok {
		t.Errorf("procs[0] = %T; want *ast.Nil", procs[0].Proc)
	}
	if got := longValue(t, procs[1]); got != 42 {
		t.Errorf("procs[1] = %d; want 42", got)
	}
}

// ===========================================================================
// OPERATORS
// ===========================================================================

func TestParIsLeftAssociative(t *testing.T) {
	p := parseOne(t, "Nil | 1 | 2")
	outer, ok := p.Proc.(*ast.Par)
	if !ok {
		t.Fatalf("proc = %T; want *ast.Par", p.Proc)
	}
	inner, ok := outer.Left.Proc.(*ast.Par)
	if !ok {
		t.Fatalf("left = %T; want *ast.Par", outer.Left.Proc)
	}
	if _, ok := inner.Left.Proc.(*ast.Nil); !ok {
		t.Errorf("inner left = %T; want *ast.Nil", inner.Left.Proc)
	}
	if got := longValue(t, inner.Right); got != 1 {
		t.Errorf("inner right = %d; want 1", got)
	}
	if got := longValue(t, outer.Right); got != 2 {
		t.Errorf("outer right = %d; want 2", got)
	}
}

func TestBinaryPrecedence(t *testing.T) {
	p := parseOne(t, "1 + 2 * 3")
	add, ok := p.Proc.(*ast.BinaryExp)
	if !ok || add.Op != ast.BinaryOpAdd {
		t.Fatalf("proc = %T; want + expression", p.Proc)
	}
	if got := longValue(t, add.Left); got != 1 {
		t.Errorf("left = %d; want 1", got)
	}
	mult, ok := add.Right.Proc.(*ast.BinaryExp)
	if !ok || mult.Op != ast.BinaryOpMult {
		t.Fatalf("right = %T; want * expression", add.Right.Proc)
	}
	if longValue(t, mult.Left) != 2 || longValue(t, mult.Right) != 3 {
		t.Errorf("mult operands = %v, %v; want 2, 3", mult.Left.Proc, mult.Right.Proc)
	}
}

func TestLogicalPrecedence(t *testing.T) {
	p := parseOne(t, "true or false and true")
	or, ok := p.Proc.(*ast.BinaryExp)
	if !ok || or.Op != ast.BinaryOpOr {
		t.Fatalf("proc = %T; want or expression", p.Proc)
	}
	and, ok := or.Right.Proc.(*ast.BinaryExp)
	if !ok || and.Op != ast.BinaryOpAnd {
		t.Fatalf("right = %T; want and expression", or.Right.Proc)
	}
}

func TestBinaryOperatorTable(t *testing.T) {
	tests := []struct {
		code string
		op   ast.BinaryExpOp
	}{
		{"1 == 2", ast.BinaryOpEq},
		{"1 != 2", ast.BinaryOpNeq},
		{"1 < 2", ast.BinaryOpLt},
		{"1 <= 2", ast.BinaryOpLte},
		{"1 > 2", ast.BinaryOpGt},
		{"1 >= 2", ast.BinaryOpGte},
		{`"a" ++ "b"`, ast.BinaryOpConcat},
		{"a -- b", ast.BinaryOpDiff},
		{"1 - 2", ast.BinaryOpSub},
		{"1 / 2", ast.BinaryOpDiv},
		{"1 % 2", ast.BinaryOpMod},
		{`"s" %% "t"`, ast.BinaryOpInterpolation},
		{"x matches y", ast.BinaryOpMatches},
		{`1 /\ 2`, ast.BinaryOpConjunction},
		{`1 \/ 2`, ast.BinaryOpDisjunction},
	}
	for _, tt := range tests {
		p := parseOne(t, tt.code)
		exp, ok := p.Proc.(*ast.BinaryExp)
		if !ok {
			t.Errorf("Parse(%q) = %T; want *ast.BinaryExp", tt.code, p.Proc)
			continue
		}
		if exp.Op != tt.op {
			t.Errorf("Parse(%q) op = %v; want %v", tt.code, exp.Op, tt.op)
		}
	}
}

func TestUnaryExpressions(t *testing.T) {
	p := parseOne(t, "-7")
	neg, ok := p.Proc.(*ast.UnaryExp)
	if !ok || neg.Op != ast.UnaryOpNeg {
		t.Fatalf("proc = %T; want negation", p.Proc)
	}
	if lit := neg.Arg.(*ast.LongLiteral); lit.Value != 7 {
		t.Errorf("arg = %d; want 7", lit.Value)
	}

	p = parseOne(t, "not true")
	not, ok := p.Proc.(*ast.UnaryExp)
	if !ok || not.Op != ast.UnaryOpNot {
		t.Fatalf("proc = %T; want not expression", p.Proc)
	}

	p = parseOne(t, "~x")
	tilde, ok := p.Proc.(*ast.UnaryExp)
	if !ok || tilde.Op != ast.UnaryOpNegation {
		t.Fatalf("proc = %T; want ~ expression", p.Proc)
	}
}

func TestQuoteAndEval(t *testing.T) {
	p := parseOne(t, "@Nil")
	q, ok := p.Proc.(*ast.Quote)
	if !ok {
		t.Fatalf("proc = %T; want *ast.Quote", p.Proc)
	}
	if _, ok := q.Proc.(*ast.Nil); !ok {
		t.Errorf("quoted = %T; want *ast.Nil", q.Proc)
	}

	p = parseOne(t, "*x")
	ev, ok := p.Proc.(*ast.Eval)
	if !ok {
		t.Fatalf("proc = %T; want *ast.Eval", p.Proc)
	}
	if got := varName(t, ev.Name); got != "x" {
		t.Errorf("name = %q; want x", got)
	}
}

func TestMethodCall(t *testing.T) {
	p := parseOne(t, `"abc".length()`)
	m, ok := p.Proc.(*ast.Method)
	if !ok {
		t.Fatalf("proc = %T; want *ast.Method", p.Proc)
	}
	if m.Name.Name != "length" {
		t.Errorf("method name = %q; want length", m.Name.Name)
	}
	if s := m.Receiver.Proc.(*ast.StringLiteral); s.Value != "abc" {
		t.Errorf("receiver = %q; want abc", s.Value)
	}
	if len(m.Args) != 0 {
		t.Errorf("args = %d; want 0", len(m.Args))
	}
}

func TestMethodChain(t *testing.T) {
	p := parseOne(t, "x.slice(0, 2).length()")
	outer := p.Proc.(*ast.Method)
	if outer.Name.Name != "length" {
		t.Fatalf("outer method = %q; want length", outer.Name.Name)
	}
	inner, ok := outer.Receiver.Proc.(*ast.Method)
	if !ok {
		t.Fatalf("receiver = %T; want *ast.Method", outer.Receiver.Proc)
	}
	if inner.Name.Name != "slice" || len(inner.Args) != 2 {
		t.Errorf("inner = %q/%d args; want slice/2", inner.Name.Name, len(inner.Args))
	}
}

// ===========================================================================
// SENDS
// ===========================================================================

func TestSend(t *testing.T) {
	p := parseOne(t, "x!(1, 2)")
	s, ok := p.Proc.(*ast.Send)
	if !ok {
		t.Fatalf("proc = %T; want *ast.Send", p.Proc)
	}
	if s.SendType != ast.SendSingle {
		t.Errorf("send type = %v; want single", s.SendType)
	}
	if got := varName(t, s.Channel); got != "x" {
		t.Errorf("channel = %q; want x", got)
	}
	if len(s.Inputs) != 2 || longValue(t, s.Inputs[0]) != 1 || longValue(t, s.Inputs[1]) != 2 {
		t.Errorf("inputs = %v; want [1 2]", s.Inputs)
	}
}

func TestPersistentSend(t *testing.T) {
	p := parseOne(t, `x!!("a")`)
	s := p.Proc.(*ast.Send)
	if s.SendType != ast.SendMultiple {
		t.Errorf("send type = %v; want multiple", s.SendType)
	}
}

func TestSendOnQuotedChannel(t *testing.T) {
	p := parseOne(t, `@"chan"!(Nil)`)
	s := p.Proc.(*ast.Send)
	q, ok := s.Channel.Name.(*ast.Quote)
	if !ok {
		t.Fatalf("channel = %T; want *ast.Quote", s.Channel.Name)
	}
	if lit := q.Proc.(*ast.StringLiteral); lit.Value != "chan" {
		t.Errorf("quoted channel = %q; want chan", lit.Value)
	}
}

func TestSendSync(t *testing.T) {
	p := parseOne(t, "x!?(1).")
	s, ok := p.Proc.(*ast.SendSync)
	if !ok {
		t.Fatalf("proc = %T; want *ast.SendSync", p.Proc)
	}
	if len(s.Messages) != 1 || longValue(t, s.Messages[0]) != 1 {
		t.Errorf("messages = %v; want [1]", s.Messages)
	}
	if s.Cont.Proc != nil {
		t.Errorf("cont = %+v; want empty", s.Cont.Proc)
	}

	p = parseOne(t, "x!?(1); Nil")
	s = p.Proc.(*ast.SendSync)
	if s.Cont.Proc == nil {
		t.Fatal("cont = nil; want process")
	}
	if _, ok := s.Cont.Proc.Proc.(*ast.Nil); !ok {
		t.Errorf("cont = %T; want *ast.Nil", s.Cont.Proc.Proc)
	}
}

func TestSendSyncRequiresContinuation(t *testing.T) {
	failure := mustFail(t, "x!?(1)")
	if got := failure.Errors[0].Err; got != parser.MissingToken(".") {
		t.Errorf("error = %v; want missing %q", got, ".")
	}
}

// ===========================================================================
// CONSTRUCTS
// ===========================================================================

func TestHelloWorld(t *testing.T) {
	code := "new stdout(`rho:io:stdout`) in { stdout!(\"Hello, world!\") }"
	p := parseOne(t, code)
	n, ok := p.Proc.(*ast.New)
	if !ok {
		t.Fatalf("proc = %T; want *ast.New", p.Proc)
	}
	if len(n.Decls) != 1 {
		t.Fatalf("decls = %d; want 1", len(n.Decls))
	}
	d := n.Decls[0]
	if d.Id.Name != "stdout" {
		t.Errorf("decl name = %q; want stdout", d.Id.Name)
	}
	if d.Uri == nil || *d.Uri != ast.Uri("rho:io:stdout") {
		t.Errorf("decl uri = %v; want rho:io:stdout", d.Uri)
	}
	s, ok := n.Proc.Proc.(*ast.Send)
	if !ok {
		t.Fatalf("body = %T; want *ast.Send", n.Proc.Proc)
	}
	if got := varName(t, s.Channel); got != "stdout" {
		t.Errorf("channel = %q; want stdout", got)
	}
	if len(s.Inputs) != 1 {
		t.Fatalf("inputs = %d; want 1", len(s.Inputs))
	}
	if lit := s.Inputs[0].Proc.(*ast.StringLiteral); lit.Value != "Hello, world!" {
		t.Errorf("input = %q; want Hello, world!", lit.Value)
	}

	assertRoundTrip(t, code, "new stdout(`rho:io:stdout`) in {\n  stdout!(\"Hello, world!\")\n}")
}

func TestNewWithoutUri(t *testing.T) {
	p := parseOne(t, "new a, b in { Nil }")
	n := p.Proc.(*ast.New)
	if len(n.Decls) != 2 || n.Decls[0].Id.Name != "a" || n.Decls[1].Id.Name != "b" {
		t.Errorf("decls = %+v; want a, b", n.Decls)
	}
	if n.Decls[0].Uri != nil {
		t.Errorf("uri = %v; want nil", n.Decls[0].Uri)
	}
}

func TestNewTrailingPar(t *testing.T) {
	p := parseOne(t, "new x in { Nil } | 42")
	par, ok := p.Proc.(*ast.Par)
	if !ok {
		t.Fatalf("proc = %T; want *ast.Par", p.Proc)
	}
	if _, ok := par.Left.Proc.(*ast.New); !ok {
		t.Errorf("left = %T; want *ast.New", par.Left.Proc)
	}
	if got := longValue(t, par.Right); got != 42 {
		t.Errorf("right = %d; want 42", got)
	}
}

func TestDuplicateNameDecl(t *testing.T) {
	failure := mustFail(t, "new a, b, a in { Nil }")
	if len(failure.Errors) != 1 {
		t.Fatalf("errors = %d; want 1", len(failure.Errors))
	}
	dup, ok := failure.Errors[0].Err.(parser.DuplicateNameDecl)
	if !ok {
		t.Fatalf("error = %T; want DuplicateNameDecl", failure.Errors[0].Err)
	}
	if dup.First != (ast.Position{Line: 1, Column: 5}) {
		t.Errorf("first = %+v; want 1:5", dup.First)
	}
	if dup.Second != (ast.Position{Line: 1, Column: 11}) {
		t.Errorf("second = %+v; want 1:11", dup.Second)
	}

	// The partial tree still carries the declarations, in sorted order.
	if failure.PartialTree == nil {
		t.Fatal("partial tree = nil; want process")
	}
	n, ok := failure.PartialTree.Proc.(*ast.New)
	if !ok {
		t.Fatalf("partial = %T; want *ast.New", failure.PartialTree.Proc)
	}
	var names []string
	for _, d := range n.Decls {
		names = append(names, d.Id.Name)
	}
	if got := strings.Join(names, ","); got != "a,a,b" {
		t.Errorf("decl order = %s; want a,a,b", got)
	}
}

func TestForComprehension(t *testing.T) {
	p := parseOne(t, "for (x <- ch) { Nil }")
	f, ok := p.Proc.(*ast.ForComprehension)
	if !ok {
		t.Fatalf("proc = %T; want *ast.ForComprehension", p.Proc)
	}
	if len(f.Receipts) != 1 || len(f.Receipts[0].Binds) != 1 {
		t.Fatalf("receipts = %+v; want one receipt, one bind", f.Receipts)
	}
	b, ok := f.Receipts[0].Binds[0].(*ast.LinearBind)
	if !ok {
		t.Fatalf("bind = %T; want *ast.LinearBind", f.Receipts[0].Binds[0])
	}
	if len(b.LHS.Names) != 1 || varName(t, b.LHS.Names[0]) != "x" {
		t.Errorf("lhs = %+v; want x", b.LHS)
	}
	src, ok := b.RHS.(*ast.SimpleSource)
	if !ok {
		t.Fatalf("source = %T; want *ast.SimpleSource", b.RHS)
	}
	if got := varName(t, src.Name); got != "ch" {
		t.Errorf("channel = %q; want ch", got)
	}
	if _, ok := f.Proc.Proc.(*ast.Nil); !ok {
		t.Errorf("body = %T; want *ast.Nil", f.Proc.Proc)
	}
}

func TestForReceiptsAndBinds(t *testing.T) {
	p := parseOne(t, "for (x <- a & y <- b; z <= c) { Nil }")
	f := p.Proc.(*ast.ForComprehension)
	if len(f.Receipts) != 2 {
		t.Fatalf("receipts = %d; want 2", len(f.Receipts))
	}
	if len(f.Receipts[0].Binds) != 2 {
		t.Fatalf("first receipt binds = %d; want 2", len(f.Receipts[0].Binds))
	}
	second := f.Receipts[0].Binds[1].(*ast.LinearBind)
	if got := varName(t, second.LHS.Names[0]); got != "y" {
		t.Errorf("second bind lhs = %q; want y", got)
	}
	rep, ok := f.Receipts[1].Binds[0].(*ast.RepeatedBind)
	if !ok {
		t.Fatalf("second receipt bind = %T; want *ast.RepeatedBind", f.Receipts[1].Binds[0])
	}
	if got := varName(t, rep.RHS); got != "c" {
		t.Errorf("repeated channel = %q; want c", got)
	}
}

func TestForPeekBind(t *testing.T) {
	p := parseOne(t, "for (x <<- ch) { Nil }")
	f := p.Proc.(*ast.ForComprehension)
	peek, ok := f.Receipts[0].Binds[0].(*ast.PeekBind)
	if !ok {
		t.Fatalf("bind = %T; want *ast.PeekBind", f.Receipts[0].Binds[0])
	}
	if got := varName(t, peek.RHS); got != "ch" {
		t.Errorf("channel = %q; want ch", got)
	}
}

func TestForSourceVariants(t *testing.T) {
	p := parseOne(t, "for (x <- ch?!) { Nil }")
	f := p.Proc.(*ast.ForComprehension)
	b := f.Receipts[0].Binds[0].(*ast.LinearBind)
	if _, ok := b.RHS.(*ast.ReceiveSendSource); !ok {
		t.Fatalf("source = %T; want *ast.ReceiveSendSource", b.RHS)
	}

	p = parseOne(t, "for (x <- ch!?(1, 2)) { Nil }")
	f = p.Proc.(*ast.ForComprehension)
	b = f.Receipts[0].Binds[0].(*ast.LinearBind)
	sr, ok := b.RHS.(*ast.SendReceiveSource)
	if !ok {
		t.Fatalf("source = %T; want *ast.SendReceiveSource", b.RHS)
	}
	if len(sr.Inputs) != 2 || longValue(t, sr.Inputs[0]) != 1 || longValue(t, sr.Inputs[1]) != 2 {
		t.Errorf("source inputs = %v; want [1 2]", sr.Inputs)
	}
	if len(b.LHS.Names) != 1 || varName(t, b.LHS.Names[0]) != "x" {
		t.Errorf("lhs = %+v; want x", b.LHS)
	}
}

func TestForRemainderBinder(t *testing.T) {
	p := parseOne(t, "for (x, ...@rest <- ch) { Nil }")
	f := p.Proc.(*ast.ForComprehension)
	b := f.Receipts[0].Binds[0].(*ast.LinearBind)
	if len(b.LHS.Names) != 1 || varName(t, b.LHS.Names[0]) != "x" {
		t.Errorf("names = %+v; want [x]", b.LHS.Names)
	}
	if b.LHS.Remainder == nil || b.LHS.Remainder.String() != "rest" {
		t.Errorf("remainder = %v; want rest", b.LHS.Remainder)
	}
	if got := b.LHS.Arity(); got != 2 {
		t.Errorf("arity = %d; want 2", got)
	}
}

func TestContract(t *testing.T) {
	p := parseOne(t, "contract add(x, y, ...@rest) = { Nil }")
	c, ok := p.Proc.(*ast.Contract)
	if !ok {
		t.Fatalf("proc = %T; want *ast.Contract", p.Proc)
	}
	if got := varName(t, c.Name); got != "add" {
		t.Errorf("name = %q; want add", got)
	}
	if len(c.Formals.Names) != 2 {
		t.Fatalf("formals = %d; want 2", len(c.Formals.Names))
	}
	if varName(t, c.Formals.Names[0]) != "x" || varName(t, c.Formals.Names[1]) != "y" {
		t.Errorf("formals = %+v; want x, y", c.Formals.Names)
	}
	if c.Formals.Remainder == nil || c.Formals.Remainder.String() != "rest" {
		t.Errorf("remainder = %v; want rest", c.Formals.Remainder)
	}
}

func TestContractNoFormals(t *testing.T) {
	p := parseOne(t, "contract f() = { Nil }")
	c := p.Proc.(*ast.Contract)
	if got := c.Formals.Arity(); got != 0 {
		t.Errorf("arity = %d; want 0", got)
	}
}

func TestIfThenElse(t *testing.T) {
	p := parseOne(t, "if (true) Nil")
	cond, ok := p.Proc.(*ast.IfThenElse)
	if !ok {
		t.Fatalf("proc = %T; want *ast.IfThenElse", p.Proc)
	}
	if b := cond.Condition.Proc.(*ast.BoolLiteral); !b.Value {
		t.Errorf("condition = %v; want true", b.Value)
	}
	if cond.IfFalse != nil {
		t.Errorf("else = %+v; want nil", cond.IfFalse)
	}

	p = parseOne(t, "if (true) Nil else 42")
	cond = p.Proc.(*ast.IfThenElse)
	if cond.IfFalse == nil {
		t.Fatal("else = nil; want process")
	}
	if got := longValue(t, *cond.IfFalse); got != 42 {
		t.Errorf("else = %d; want 42", got)
	}
}

func TestIfElseChain(t *testing.T) {
	p := parseOne(t, "if (true) 1 else if (false) 2 else 3")
	outer := p.Proc.(*ast.IfThenElse)
	inner, ok := outer.IfFalse.Proc.(*ast.IfThenElse)
	if !ok {
		t.Fatalf("else = %T; want *ast.IfThenElse", outer.IfFalse.Proc)
	}
	if inner.IfFalse == nil || longValue(t, *inner.IfFalse) != 3 {
		t.Errorf("inner else = %+v; want 3", inner.IfFalse)
	}
}

func TestMatch(t *testing.T) {
	p := parseOne(t, "match x { 42 => 1 _ => 2 }")
	m, ok := p.Proc.(*ast.Match)
	if !ok {
		t.Fatalf("proc = %T; want *ast.Match", p.Proc)
	}
	pv, ok := m.Expression.Proc.(*ast.ProcVar)
	if !ok || pv.Var.String() != "x" {
		t.Errorf("expression = %v; want x", m.Expression.Proc)
	}
	if len(m.Cases) != 2 {
		t.Fatalf("cases = %d; want 2", len(m.Cases))
	}
	if got := longValue(t, m.Cases[0].Pattern); got != 42 {
		t.Errorf("first pattern = %d; want 42", got)
	}
	if got := longValue(t, m.Cases[0].Proc); got != 1 {
		t.Errorf("first body = %d; want 1", got)
	}
	wild, ok := m.Cases[1].Pattern.Proc.(*ast.ProcVar)
	if !ok || !wild.Var.Wildcard() {
		t.Errorf("second pattern = %+v; want wildcard", m.Cases[1].Pattern.Proc)
	}
}

func TestMatchVarRefPattern(t *testing.T) {
	p := parseOne(t, "match 1 { =x => Nil }")
	m := p.Proc.(*ast.Match)
	ref, ok := m.Cases[0].Pattern.Proc.(*ast.VarRef)
	if !ok {
		t.Fatalf("pattern = %T; want *ast.VarRef", m.Cases[0].Pattern.Proc)
	}
	if ref.Kind != ast.VarRefProc || ref.Var.Name != "x" {
		t.Errorf("ref = %+v; want =x", ref)
	}

	p = parseOne(t, "match 1 { =*x => Nil }")
	m = p.Proc.(*ast.Match)
	ref = m.Cases[0].Pattern.Proc.(*ast.VarRef)
	if ref.Kind != ast.VarRefName {
		t.Errorf("ref kind = %v; want name ref", ref.Kind)
	}
}

func TestLet(t *testing.T) {
	p := parseOne(t, "let x <- 42 in { Nil }")
	l, ok := p.Proc.(*ast.Let)
	if !ok {
		t.Fatalf("proc = %T; want *ast.Let", p.Proc)
	}
	if l.Concurrent {
		t.Error("concurrent = true; want false")
	}
	if len(l.Bindings) != 1 {
		t.Fatalf("bindings = %d; want 1", len(l.Bindings))
	}
	b, ok := l.Bindings[0].(*ast.SingleBinding)
	if !ok {
		t.Fatalf("binding = %T; want *ast.SingleBinding", l.Bindings[0])
	}
	if got := varName(t, b.LHS); got != "x" {
		t.Errorf("lhs = %q; want x", got)
	}
	if got := longValue(t, b.RHS); got != 42 {
		t.Errorf("rhs = %d; want 42", got)
	}
}

func TestLetConcurrent(t *testing.T) {
	p := parseOne(t, "let x <- 1 & y <- 2 in { Nil }")
	l := p.Proc.(*ast.Let)
	if !l.Concurrent {
		t.Error("concurrent = false; want true")
	}
	if len(l.Bindings) != 2 {
		t.Errorf("bindings = %d; want 2", len(l.Bindings))
	}
}

func TestLetRemainder(t *testing.T) {
	p := parseOne(t, "let x, ...rest <- 1, 2, 3 in { Nil }")
	l := p.Proc.(*ast.Let)
	if len(l.Bindings) != 2 {
		t.Fatalf("bindings = %d; want 2", len(l.Bindings))
	}
	single := l.Bindings[0].(*ast.SingleBinding)
	if varName(t, single.LHS) != "x" || longValue(t, single.RHS) != 1 {
		t.Errorf("first binding = %+v; want x <- 1", single)
	}
	multi, ok := l.Bindings[1].(*ast.MultipleBinding)
	if !ok {
		t.Fatalf("second binding = %T; want *ast.MultipleBinding", l.Bindings[1])
	}
	if multi.LHS.String() != "rest" {
		t.Errorf("remainder = %q; want rest", multi.LHS.String())
	}
	if len(multi.RHS) != 2 || longValue(t, multi.RHS[0]) != 2 || longValue(t, multi.RHS[1]) != 3 {
		t.Errorf("remainder procs = %v; want [2 3]", multi.RHS)
	}
}

func TestLetRemainderOnly(t *testing.T) {
	p := parseOne(t, "let ...r <- 1, 2 in Nil")
	l := p.Proc.(*ast.Let)
	if len(l.Bindings) != 1 {
		t.Fatalf("bindings = %d; want 1", len(l.Bindings))
	}
	multi := l.Bindings[0].(*ast.MultipleBinding)
	if multi.LHS.String() != "r" || len(multi.RHS) != 2 {
		t.Errorf("binding = %+v; want r <- [1 2]", multi)
	}
}

func TestLetMalformed(t *testing.T) {
	failure := mustFail(t, "let x, y <- 1 in { Nil }")
	want := parser.MalformedLetDecl{LHSArity: 2, RHSArity: 1}
	if got := failure.Errors[0].Err; got != want {
		t.Errorf("error = %v; want %v", got, want)
	}
	if failure.PartialTree == nil {
		t.Fatal("partial tree = nil; want best-effort let")
	}
	l, ok := failure.PartialTree.Proc.(*ast.Let)
	if !ok {
		t.Fatalf("partial = %T; want *ast.Let", failure.PartialTree.Proc)
	}
	if len(l.Bindings) != 1 {
		t.Errorf("bindings = %d; want 1 best-effort binding", len(l.Bindings))
	}
}

func TestBundleVariants(t *testing.T) {
	tests := []struct {
		code string
		typ  ast.BundleType
	}{
		{"bundle { Nil }", ast.BundleReadWrite},
		{"bundle+ { Nil }", ast.BundleWrite},
		{"bundle- { Nil }", ast.BundleRead},
		{"bundle0 { Nil }", ast.BundleEquiv},
	}
	for _, tt := range tests {
		p := parseOne(t, tt.code)
		b, ok := p.Proc.(*ast.Bundle)
		if !ok {
			t.Errorf("Parse(%q) = %T; want *ast.Bundle", tt.code, p.Proc)
			continue
		}
		if b.BundleType != tt.typ {
			t.Errorf("Parse(%q) type = %v; want %v", tt.code, b.BundleType, tt.typ)
		}
	}
}

// ===========================================================================
// COLLECTIONS
// ===========================================================================

func TestListVariants(t *testing.T) {
	p := parseOne(t, "[1, 2, 3]")
	l := p.Proc.(*ast.List)
	if len(l.Elements) != 3 || l.Remainder != nil {
		t.Errorf("list = %d elems, remainder %v; want 3, nil", len(l.Elements), l.Remainder)
	}

	p = parseOne(t, "[1, 2, ...rest]")
	l = p.Proc.(*ast.List)
	if len(l.Elements) != 2 {
		t.Fatalf("elements = %d; want 2", len(l.Elements))
	}
	if l.Remainder == nil || l.Remainder.String() != "rest" {
		t.Errorf("remainder = %v; want rest", l.Remainder)
	}

	p = parseOne(t, "[]")
	l = p.Proc.(*ast.List)
	if len(l.Elements) != 0 || l.Remainder != nil {
		t.Errorf("empty list = %+v; want no elements", l)
	}
}

func TestTupleVariants(t *testing.T) {
	p := parseOne(t, "(1, 2)")
	tup, ok := p.Proc.(*ast.Tuple)
	if !ok {
		t.Fatalf("proc = %T; want *ast.Tuple", p.Proc)
	}
	if len(tup.Elements) != 2 {
		t.Errorf("elements = %d; want 2", len(tup.Elements))
	}

	p = parseOne(t, "(1,)")
	tup = p.Proc.(*ast.Tuple)
	if len(tup.Elements) != 1 {
		t.Errorf("single tuple elements = %d; want 1", len(tup.Elements))
	}

	p = parseOne(t, "()")
	tup, ok = p.Proc.(*ast.Tuple)
	if !ok || len(tup.Elements) != 0 {
		t.Errorf("unit = %T with %v; want empty tuple", p.Proc, p.Proc)
	}

	// Parentheses around a single process group rather than build a tuple.
	p = parseOne(t, "(1)")
	if got := longValue(t, p); got != 1 {
		t.Errorf("grouped = %d; want 1", got)
	}
}

func TestSet(t *testing.T) {
	p := parseOne(t, "Set(1, 2, 3)")
	s, ok := p.Proc.(*ast.Set)
	if !ok {
		t.Fatalf("proc = %T; want *ast.Set", p.Proc)
	}
	if len(s.Elements) != 3 {
		t.Errorf("elements = %d; want 3", len(s.Elements))
	}

	p = parseOne(t, "Set()")
	s = p.Proc.(*ast.Set)
	if len(s.Elements) != 0 {
		t.Errorf("empty set elements = %d; want 0", len(s.Elements))
	}
}

func TestMapVariants(t *testing.T) {
	p := parseOne(t, `{1: "one", 2: "two"}`)
	m, ok := p.Proc.(*ast.Map)
	if !ok {
		t.Fatalf("proc = %T; want *ast.Map", p.Proc)
	}
	if len(m.Pairs) != 2 {
		t.Fatalf("pairs = %d; want 2", len(m.Pairs))
	}
	if longValue(t, m.Pairs[0].Key) != 1 || m.Pairs[0].Value.Proc.(*ast.StringLiteral).Value != "one" {
		t.Errorf("first pair = %+v; want 1: one", m.Pairs[0])
	}
	if longValue(t, m.Pairs[1].Key) != 2 {
		t.Errorf("second key = %v; want 2", m.Pairs[1].Key.Proc)
	}

	p = parseOne(t, "{}")
	m = p.Proc.(*ast.Map)
	if len(m.Pairs) != 0 || m.Remainder != nil {
		t.Errorf("empty map = %+v; want no pairs", m)
	}

	p = parseOne(t, `{1: "one", ...rest}`)
	m = p.Proc.(*ast.Map)
	if len(m.Pairs) != 1 {
		t.Fatalf("pairs = %d; want 1", len(m.Pairs))
	}
	if m.Remainder == nil || m.Remainder.String() != "rest" {
		t.Errorf("remainder = %v; want rest", m.Remainder)
	}
}

func TestBracedBlockIsNotMap(t *testing.T) {
	p := parseOne(t, "{ Nil | Nil }")
	if _, ok := p.Proc.(*ast.Par); !ok {
		t.Errorf("proc = %T; want *ast.Par from block", p.Proc)
	}
}

// ===========================================================================
// FAILURES AND RECOVERY
// ===========================================================================

func TestNumberOutOfRange(t *testing.T) {
	failure := mustFail(t, "9223372036854775808 | Nil")
	if got := failure.Errors[0].Err; got != (parser.NumberOutOfRange{}) {
		t.Fatalf("error = %v; want number out of range", got)
	}
	// The sibling branch of the par survives around the Bad placeholder.
	par, ok := failure.PartialTree.Proc.(*ast.Par)
	if !ok {
		t.Fatalf("partial = %T; want *ast.Par", failure.PartialTree.Proc)
	}
	if _, ok := par.Left.Proc.(*ast.Bad); !ok {
		t.Errorf("left = %T; want *ast.Bad", par.Left.Proc)
	}
	if _, ok := par.Right.Proc.(*ast.Nil); !ok {
		t.Errorf("right = %T; want *ast.Nil", par.Right.Proc)
	}
}

func TestMissingTokenMessage(t *testing.T) {
	failure := mustFail(t, "x!(1")
	if len(failure.Errors) != 1 {
		t.Fatalf("errors = %d; want 1", len(failure.Errors))
	}
	if got := failure.Errors[0].Error(); got != `missing ")" at 1:5` {
		t.Errorf("message = %q; want missing \")\" at 1:5", got)
	}
}

func TestUnexpectedClassification(t *testing.T) {
	failure := mustFail(t, "x!(1 y)")
	if got := failure.Errors[0].Err; got != parser.Unexpected('y') {
		t.Errorf("error = %v; want unexpected 'y'", got)
	}

	failure = mustFail(t, "x!(#)")
	if got := failure.Errors[0].Err; got != parser.Unexpected('#') {
		t.Errorf("error = %v; want unexpected '#'", got)
	}

	failure = mustFail(t, "x!(1 yz)")
	if got := failure.Errors[0].Err; got != parser.UnexpectedVar("yz") {
		t.Errorf("error = %v; want unexpected variable yz", got)
	}
	want := ast.Span{Start: ast.Position{Line: 1, Column: 6}, End: ast.Position{Line: 1, Column: 8}}
	if got := failure.Errors[0].Span; got != want {
		t.Errorf("span = %+v; want %+v", got, want)
	}
}

func TestErrorBatchingAcrossProcesses(t *testing.T) {
	failure := mustFail(t, "9223372036854775808\nnew b, b in { Nil }")
	if len(failure.Errors) != 2 {
		t.Fatalf("errors = %d; want 2", len(failure.Errors))
	}
	if _, ok := failure.Errors[0].Err.(parser.NumberOutOfRange); !ok {
		t.Errorf("first error = %T; want NumberOutOfRange", failure.Errors[0].Err)
	}
	if _, ok := failure.Errors[1].Err.(parser.DuplicateNameDecl); !ok {
		t.Errorf("second error = %T; want DuplicateNameDecl", failure.Errors[1].Err)
	}
	if !strings.HasPrefix(failure.Error(), "parsing failed with 2 errors") {
		t.Errorf("message = %q; want 2-error prefix", failure.Error())
	}
}

func TestFailureUnwrapsAnnotatedErrors(t *testing.T) {
	_, err := parser.New().Parse("x!(1")
	var ann parser.AnnError
	if !errors.As(err, &ann) {
		t.Fatalf("errors.As(AnnError) = false on %v", err)
	}
	if ann.Err != parser.MissingToken(")") {
		t.Errorf("unwrapped = %v; want missing token", ann.Err)
	}
}

func TestMalformedInputNeverPanics(t *testing.T) {
	inputs := []string{
		"{", "}", "(", ")", "((((((",
		"new", "new x", "new x in",
		"for", "for (x <-", "for (x <- ch)",
		"contract", "contract f(",
		"match x {", "match { }",
		"let", "let in", "let x <-",
		"if", "if (true",
		"bundle", "bundle+",
		"x!?(", "x!", "x!!",
		"[1, 2", "{1: }", "Set(1,",
		"@", "*", "=", "=*",
		"...x", "x.-", "a |", "| a",
		`"abc`, "`rho:io", "\"line\nbreak\"",
	}
	for _, code := range inputs {
		failure := mustFail(t, code)
		for _, e := range failure.Errors {
			if e.Err == nil {
				t.Errorf("Parse(%q): nil error in batch", code)
			}
		}
	}
}

func TestWhitespaceAndComments(t *testing.T) {
	p := parseOne(t, "x!( /* inline */ 1) // trailing")
	s := p.Proc.(*ast.Send)
	if len(s.Inputs) != 1 || longValue(t, s.Inputs[0]) != 1 {
		t.Errorf("inputs = %v; want [1]", s.Inputs)
	}
}

// ===========================================================================
// PUBLIC SURFACE
// ===========================================================================

func TestIsValidAgreesWithParse(t *testing.T) {
	inputs := []string{
		"Nil", "x!(1)", "", "// comment",
		"new stdout(`rho:io:stdout`) in { stdout!(\"hi\") }",
		"x!", "9223372036854775808", "new a, a in { Nil }",
		"(", "let x, y <- 1 in { Nil }",
	}
	p := parser.New()
	for _, code := range inputs {
		_, err := p.Parse(code)
		if got, want := p.IsValid(code), err == nil; got != want {
			t.Errorf("IsValid(%q) = %v; Parse error = %v", code, got, err)
		}
	}
}

func TestTreeString(t *testing.T) {
	p := parser.New()
	got, err := p.TreeString("Nil")
	if err != nil {
		t.Fatalf("TreeString error = %v", err)
	}
	if want := "Parse tree: (source_file (nil))"; got != want {
		t.Errorf("TreeString = %q; want %q", got, want)
	}

	if _, err := p.TreeString("x!("); err == nil {
		t.Error("TreeString on malformed input: error = nil; want failure")
	}
}

func TestPrettyTree(t *testing.T) {
	p := parser.New()
	got, err := p.PrettyTree("x!(1)")
	if err != nil {
		t.Fatalf("PrettyTree error = %v", err)
	}
	want := "source_file:\n" +
		"  send:\n" +
		"    var:\n" +
		"      text: \"x\"\n" +
		"    send_single:\n" +
		"      text: \"!\"\n" +
		"    inputs:\n" +
		"      long_literal:\n" +
		"        text: \"1\"\n"
	if got != want {
		t.Errorf("PrettyTree = %q; want %q", got, want)
	}

	if _, err := p.PrettyTree("x!("); err == nil {
		t.Error("PrettyTree on malformed input: error = nil; want failure")
	}
}

func TestDeterminism(t *testing.T) {
	code := "new stdout(`rho:io:stdout`) in { stdout!(\"Hello, world!\") | for (x <- stdout) { Nil } }"
	first := parseOne(t, code)
	second := parseOne(t, code)
	if first.String() != second.String() {
		t.Errorf("renders differ:\n%s\n%s", first.String(), second.String())
	}
	if first.Span != second.Span {
		t.Errorf("spans differ: %+v vs %+v", first.Span, second.Span)
	}

	bad := "new a, a in { Nil }"
	e1 := mustFail(t, bad).Error()
	e2 := mustFail(t, bad).Error()
	if e1 != e2 {
		t.Errorf("failure messages differ:\n%s\n%s", e1, e2)
	}
}

func TestSpans(t *testing.T) {
	p := parseOne(t, "x!(1)")
	want := ast.Span{Start: ast.Position{Line: 1, Column: 1}, End: ast.Position{Line: 1, Column: 6}}
	if p.Span != want {
		t.Errorf("send span = %+v; want %+v", p.Span, want)
	}
	s := p.Proc.(*ast.Send)
	want = ast.Span{Start: ast.Position{Line: 1, Column: 4}, End: ast.Position{Line: 1, Column: 5}}
	if s.Inputs[0].Span != want {
		t.Errorf("input span = %+v; want %+v", s.Inputs[0].Span, want)
	}

	p = parseOne(t, "new x in {\n  x!(Nil)\n}")
	n := p.Proc.(*ast.New)
	inner := n.Proc.Proc.(*ast.Send)
	wantInner := ast.Span{Start: ast.Position{Line: 2, Column: 3}, End: ast.Position{Line: 2, Column: 10}}
	if got := n.Proc.Span; got != wantInner {
		t.Errorf("body span = %+v; want %+v", got, wantInner)
	}
	if got := varName(t, inner.Channel); got != "x" {
		t.Errorf("channel = %q; want x", got)
	}
}

// ===========================================================================
// RENDER ROUND TRIPS
// ===========================================================================

func TestRenderRoundTrips(t *testing.T) {
	// Rendered output must reparse to a tree that renders identically.
	inputs := []string{
		"Nil",
		"x!(1, 2)",
		"x!?(1).",
		"x!?(1); Nil",
		"for (x, ...@rest <- ch) { x!(Nil) }",
		"contract add(x, y) = { x!(*y) }",
		"match x { 42 => 1 _ => 2 }",
		"let x <- 1 & y <- 2 in { Nil }",
		"new a, b in { a!(*b) | b!(*a) }",
		"bundle+ { x!(Nil) }",
		"[1, 2, ...rest]",
		"{1: \"one\", ...rest}",
		"(1, 2)",
		"Set(1, 2)",
		"if (x > 1) Nil else x!(1)",
		"@{Nil}!(true)",
		"-7 + 2 * 3",
	}
	for _, code := range inputs {
		rendered := parseOne(t, code).String()
		again := parseOne(t, rendered).String()
		if rendered != again {
			t.Errorf("render not a fixed point for %q:\nfirst:  %s\nsecond: %s", code, rendered, again)
		}
	}
}
