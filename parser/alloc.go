package parser

import (
	"strings"

	"github.com/dylon/rholang-go/ast"
)

// Shared immutable leaves. Every occurrence in any tree points at the same
// node; the guarantee that matters is value equality, and sharing makes the
// hot leaves free to allocate.
var (
	nilProc   = &ast.Nil{}
	badProc   = &ast.Bad{}
	trueProc  = &ast.BoolLiteral{Value: true}
	falseProc = &ast.BoolLiteral{Value: false}
	wildProc  = &ast.ProcVar{}
	zeroProc  = &ast.LongLiteral{}
	oneProc   = &ast.LongLiteral{Value: 1}
	emptyList = &ast.List{}
	unitProc  = &ast.Tuple{}
)

// nodeAllocator encapsulates typed arenas for all frequently allocated AST
// node types. Constructor methods arena-allocate and initialize nodes in a
// single call. One allocator serves one parse call; the returned tree keeps
// its chunks alive.
type nodeAllocator struct {
	// Slice backing arenas, separate from the per-element arenas so that
	// contiguous slice allocations don't fragment with individual node allocs.
	procSlice    miniArena[ast.AnnProc]
	nameSlice    miniArena[ast.AnnName]
	receiptSlice miniArena[ast.Receipt]
	bindSlice    miniArena[ast.Bind]
	caseSlice    miniArena[ast.Case]
	declSlice    miniArena[ast.NameDecl]
	letSlice     miniArena[ast.LetBinding]
	pairSlice    miniArena[ast.KeyValuePair]

	// Identifier-flavored nodes are the most frequent.
	procVar miniArena[ast.ProcVar]
	ids     miniArena[ast.Id]
	vars    miniArena[ast.Var]
	uris    miniArena[ast.Uri]

	// Literals.
	longLit miniArena[ast.LongLiteral]
	strLit  miniArena[ast.StringLiteral]
	uriLit  miniArena[ast.UriLiteral]
	typeLit miniArena[ast.SimpleTypeLiteral]
	varRef  miniArena[ast.VarRef]

	// Composite processes.
	par      miniArena[ast.Par]
	binExp   miniArena[ast.BinaryExp]
	unExp    miniArena[ast.UnaryExp]
	send     miniArena[ast.Send]
	sendSync miniArena[ast.SendSync]
	input    miniArena[ast.ForComprehension]
	match    miniArena[ast.Match]
	newProc  miniArena[ast.New]
	contract miniArena[ast.Contract]
	let      miniArena[ast.Let]
	ifElse   miniArena[ast.IfThenElse]
	bundle   miniArena[ast.Bundle]
	eval     miniArena[ast.Eval]
	quote    miniArena[ast.Quote]
	method   miniArena[ast.Method]

	// Collections.
	list  miniArena[ast.List]
	set   miniArena[ast.Set]
	tuple miniArena[ast.Tuple]
	mapp  miniArena[ast.Map]

	// Binds and sources.
	linBind  miniArena[ast.LinearBind]
	repBind  miniArena[ast.RepeatedBind]
	peekBind miniArena[ast.PeekBind]
	simple   miniArena[ast.SimpleSource]
	rsSource miniArena[ast.ReceiveSendSource]
	srSource miniArena[ast.SendReceiveSource]

	// Let bindings.
	singleBinding   miniArena[ast.SingleBinding]
	multipleBinding miniArena[ast.MultipleBinding]

	// Boxed annotated processes, for the optional slots (else branch, sync
	// send continuation).
	annProc miniArena[ast.AnnProc]
}

func newNodeAllocator() nodeAllocator {
	return nodeAllocator{
		// Slice backing arenas.
		procSlice:    *newArena[ast.AnnProc](256),
		nameSlice:    *newArena[ast.AnnName](128),
		receiptSlice: *newArena[ast.Receipt](32),
		bindSlice:    *newArena[ast.Bind](64),
		caseSlice:    *newArena[ast.Case](64),
		declSlice:    *newArena[ast.NameDecl](64),
		letSlice:     *newArena[ast.LetBinding](32),
		pairSlice:    *newArena[ast.KeyValuePair](64),

		// Identifiers.
		procVar: *newArena[ast.ProcVar](256),
		ids:     *newArena[ast.Id](64),
		vars:    *newArena[ast.Var](64),
		uris:    *newArena[ast.Uri](32),

		// Literals.
		longLit: *newArena[ast.LongLiteral](128),
		strLit:  *newArena[ast.StringLiteral](64),
		uriLit:  *newArena[ast.UriLiteral](32),
		typeLit: *newArena[ast.SimpleTypeLiteral](16),
		varRef:  *newArena[ast.VarRef](16),

		// Composites.
		par:      *newArena[ast.Par](128),
		binExp:   *newArena[ast.BinaryExp](128),
		unExp:    *newArena[ast.UnaryExp](32),
		send:     *newArena[ast.Send](128),
		sendSync: *newArena[ast.SendSync](16),
		input:    *newArena[ast.ForComprehension](64),
		match:    *newArena[ast.Match](32),
		newProc:  *newArena[ast.New](64),
		contract: *newArena[ast.Contract](32),
		let:      *newArena[ast.Let](16),
		ifElse:   *newArena[ast.IfThenElse](32),
		bundle:   *newArena[ast.Bundle](16),
		eval:     *newArena[ast.Eval](32),
		quote:    *newArena[ast.Quote](64),
		method:   *newArena[ast.Method](64),

		// Collections.
		list:  *newArena[ast.List](32),
		set:   *newArena[ast.Set](16),
		tuple: *newArena[ast.Tuple](16),
		mapp:  *newArena[ast.Map](16),

		// Binds and sources.
		linBind:  *newArena[ast.LinearBind](64),
		repBind:  *newArena[ast.RepeatedBind](16),
		peekBind: *newArena[ast.PeekBind](16),
		simple:   *newArena[ast.SimpleSource](64),
		rsSource: *newArena[ast.ReceiveSendSource](8),
		srSource: *newArena[ast.SendReceiveSource](8),

		// Let bindings.
		singleBinding:   *newArena[ast.SingleBinding](32),
		multipleBinding: *newArena[ast.MultipleBinding](8),

		// Boxes.
		annProc: *newArena[ast.AnnProc](32),
	}
}

// CopyProcs allocates a contiguous []AnnProc from the arena and copies src
// into it. The returned slice's backing array lives in arena memory.
func (a *nodeAllocator) CopyProcs(src []ast.AnnProc) []ast.AnnProc {
	if len(src) == 0 {
		return nil
	}
	dst := a.procSlice.makeSlice(len(src))
	copy(dst, src)
	return dst
}

// CopyNames allocates a contiguous []AnnName from the arena and copies src
// into it.
func (a *nodeAllocator) CopyNames(src []ast.AnnName) []ast.AnnName {
	if len(src) == 0 {
		return nil
	}
	dst := a.nameSlice.makeSlice(len(src))
	copy(dst, src)
	return dst
}

func (a *nodeAllocator) CopyDecls(src []ast.NameDecl) []ast.NameDecl {
	if len(src) == 0 {
		return nil
	}
	dst := a.declSlice.makeSlice(len(src))
	copy(dst, src)
	return dst
}

// Box copies one annotated process into arena memory and returns its
// address, for the optional pointer slots.
func (a *nodeAllocator) Box(p ast.AnnProc) *ast.AnnProc {
	n := a.annProc.make()
	*n = p
	return n
}

// ---------------------------------------------------------------------------
// Identifiers / literals
// ---------------------------------------------------------------------------

func (a *nodeAllocator) ProcVar(v ast.Var) *ast.ProcVar {
	if v.Id == nil {
		return wildProc
	}
	n := a.procVar.make()
	*n = ast.ProcVar{Var: v}
	return n
}

func (a *nodeAllocator) Id(name string, pos ast.Position) *ast.Id {
	n := a.ids.make()
	*n = ast.Id{Name: name, Pos: pos}
	return n
}

func (a *nodeAllocator) Var(v ast.Var) *ast.Var {
	n := a.vars.make()
	*n = v
	return n
}

func (a *nodeAllocator) LongLiteral(value int64) *ast.LongLiteral {
	switch value {
	case 0:
		return zeroProc
	case 1:
		return oneProc
	}
	n := a.longLit.make()
	*n = ast.LongLiteral{Value: value}
	return n
}

// StringLiteral strips the surrounding double quotes; escape sequences in
// the body are kept verbatim. Exactly one delimiter comes off each end so
// a body ending in an escaped quote survives intact.
func (a *nodeAllocator) StringLiteral(raw string) *ast.StringLiteral {
	body := strings.TrimPrefix(raw, `"`)
	body = strings.TrimSuffix(body, `"`)
	n := a.strLit.make()
	*n = ast.StringLiteral{Value: body}
	return n
}

func (a *nodeAllocator) UriLiteral(raw string) *ast.UriLiteral {
	n := a.uriLit.make()
	*n = ast.UriLiteral{Value: ast.UriFromLiteral(raw)}
	return n
}

func (a *nodeAllocator) Uri(raw string) *ast.Uri {
	n := a.uris.make()
	*n = ast.UriFromLiteral(raw)
	return n
}

func (a *nodeAllocator) SimpleTypeLiteral(t ast.SimpleType) *ast.SimpleTypeLiteral {
	n := a.typeLit.make()
	*n = ast.SimpleTypeLiteral{Type: t}
	return n
}

func (a *nodeAllocator) VarRef(kind ast.VarRefKind, v ast.Id) *ast.VarRef {
	n := a.varRef.make()
	*n = ast.VarRef{Kind: kind, Var: v}
	return n
}

// ---------------------------------------------------------------------------
// Composite processes
// ---------------------------------------------------------------------------

func (a *nodeAllocator) Par(left, right ast.AnnProc) *ast.Par {
	n := a.par.make()
	*n = ast.Par{Left: left, Right: right}
	return n
}

func (a *nodeAllocator) BinaryExp(op ast.BinaryExpOp, left, right ast.AnnProc) *ast.BinaryExp {
	n := a.binExp.make()
	*n = ast.BinaryExp{Op: op, Left: left, Right: right}
	return n
}

func (a *nodeAllocator) UnaryExp(op ast.UnaryExpOp, arg ast.Proc) *ast.UnaryExp {
	n := a.unExp.make()
	*n = ast.UnaryExp{Op: op, Arg: arg}
	return n
}

func (a *nodeAllocator) Send(channel ast.AnnName, st ast.SendType, inputs []ast.AnnProc) *ast.Send {
	n := a.send.make()
	*n = ast.Send{Channel: channel, SendType: st, Inputs: a.CopyProcs(inputs)}
	return n
}

func (a *nodeAllocator) SendSync(channel ast.AnnName, messages []ast.AnnProc, cont ast.SyncSendCont) *ast.SendSync {
	n := a.sendSync.make()
	*n = ast.SendSync{Channel: channel, Messages: a.CopyProcs(messages), Cont: cont}
	return n
}

func (a *nodeAllocator) ForComprehension(receipts []ast.Receipt, body ast.AnnProc) *ast.ForComprehension {
	n := a.input.make()
	*n = ast.ForComprehension{Receipts: receipts, Proc: body}
	return n
}

func (a *nodeAllocator) Match(expr ast.AnnProc, cases []ast.Case) *ast.Match {
	n := a.match.make()
	*n = ast.Match{Expression: expr, Cases: cases}
	return n
}

func (a *nodeAllocator) New(decls []ast.NameDecl, body ast.AnnProc) *ast.New {
	n := a.newProc.make()
	*n = ast.New{Decls: decls, Proc: body}
	return n
}

func (a *nodeAllocator) Contract(name ast.AnnName, formals ast.Names, body ast.AnnProc) *ast.Contract {
	n := a.contract.make()
	*n = ast.Contract{Name: name, Formals: formals, Body: body}
	return n
}

func (a *nodeAllocator) Let(bindings []ast.LetBinding, body ast.AnnProc, concurrent bool) *ast.Let {
	n := a.let.make()
	*n = ast.Let{Bindings: bindings, Body: body, Concurrent: concurrent}
	return n
}

func (a *nodeAllocator) IfThenElse(cond, ifTrue ast.AnnProc, ifFalse *ast.AnnProc) *ast.IfThenElse {
	n := a.ifElse.make()
	*n = ast.IfThenElse{Condition: cond, IfTrue: ifTrue, IfFalse: ifFalse}
	return n
}

func (a *nodeAllocator) Bundle(t ast.BundleType, body ast.AnnProc) *ast.Bundle {
	n := a.bundle.make()
	*n = ast.Bundle{BundleType: t, Proc: body}
	return n
}

func (a *nodeAllocator) Eval(name ast.AnnName) *ast.Eval {
	n := a.eval.make()
	*n = ast.Eval{Name: name}
	return n
}

func (a *nodeAllocator) Quote(proc ast.Proc) *ast.Quote {
	n := a.quote.make()
	*n = ast.Quote{Proc: proc}
	return n
}

func (a *nodeAllocator) Method(receiver ast.AnnProc, name ast.Id, args []ast.AnnProc) *ast.Method {
	n := a.method.make()
	*n = ast.Method{Receiver: receiver, Name: name, Args: a.CopyProcs(args)}
	return n
}

// ---------------------------------------------------------------------------
// Collections
// ---------------------------------------------------------------------------

func (a *nodeAllocator) List(elements []ast.AnnProc, remainder *ast.Var) *ast.List {
	if len(elements) == 0 && remainder == nil {
		return emptyList
	}
	n := a.list.make()
	*n = ast.List{Elements: a.CopyProcs(elements), Remainder: remainder}
	return n
}

func (a *nodeAllocator) Set(elements []ast.AnnProc, remainder *ast.Var) *ast.Set {
	n := a.set.make()
	*n = ast.Set{Elements: a.CopyProcs(elements), Remainder: remainder}
	return n
}

func (a *nodeAllocator) Tuple(elements []ast.AnnProc) *ast.Tuple {
	if len(elements) == 0 {
		return unitProc
	}
	n := a.tuple.make()
	*n = ast.Tuple{Elements: a.CopyProcs(elements)}
	return n
}

// Map reconstitutes key/value pairs from a flat operand run laid out as
// key, value, key, value, ...
func (a *nodeAllocator) Map(flat []ast.AnnProc, remainder *ast.Var) *ast.Map {
	n := a.mapp.make()
	var pairs []ast.KeyValuePair
	if len(flat) > 0 {
		pairs = a.pairSlice.makeSlice(len(flat) / 2)
		for i := range pairs {
			pairs[i] = ast.KeyValuePair{Key: flat[2*i], Value: flat[2*i+1]}
		}
	}
	*n = ast.Map{Pairs: pairs, Remainder: remainder}
	return n
}

// ---------------------------------------------------------------------------
// Binds, sources, and let bindings
// ---------------------------------------------------------------------------

func (a *nodeAllocator) NameSlice(n int) []ast.AnnName {
	return a.nameSlice.makeSlice(n)
}

func (a *nodeAllocator) ReceiptSlice(n int) []ast.Receipt {
	return a.receiptSlice.makeSlice(n)
}

func (a *nodeAllocator) BindSlice(n int) []ast.Bind {
	return a.bindSlice.makeSlice(n)
}

func (a *nodeAllocator) CaseSlice(n int) []ast.Case {
	return a.caseSlice.makeSlice(n)
}

func (a *nodeAllocator) LetBindingSlice(n int) []ast.LetBinding {
	return a.letSlice.makeSlice(n)
}

func (a *nodeAllocator) LinearBind(lhs ast.Names, rhs ast.Source) *ast.LinearBind {
	n := a.linBind.make()
	*n = ast.LinearBind{LHS: lhs, RHS: rhs}
	return n
}

func (a *nodeAllocator) RepeatedBind(lhs ast.Names, rhs ast.AnnName) *ast.RepeatedBind {
	n := a.repBind.make()
	*n = ast.RepeatedBind{LHS: lhs, RHS: rhs}
	return n
}

func (a *nodeAllocator) PeekBind(lhs ast.Names, rhs ast.AnnName) *ast.PeekBind {
	n := a.peekBind.make()
	*n = ast.PeekBind{LHS: lhs, RHS: rhs}
	return n
}

func (a *nodeAllocator) SimpleSource(name ast.AnnName) *ast.SimpleSource {
	n := a.simple.make()
	*n = ast.SimpleSource{Name: name}
	return n
}

func (a *nodeAllocator) ReceiveSendSource(name ast.AnnName) *ast.ReceiveSendSource {
	n := a.rsSource.make()
	*n = ast.ReceiveSendSource{Name: name}
	return n
}

func (a *nodeAllocator) SendReceiveSource(name ast.AnnName, inputs []ast.AnnProc) *ast.SendReceiveSource {
	n := a.srSource.make()
	*n = ast.SendReceiveSource{Name: name, Inputs: a.CopyProcs(inputs)}
	return n
}

func (a *nodeAllocator) SingleBinding(lhs ast.AnnName, rhs ast.AnnProc) *ast.SingleBinding {
	n := a.singleBinding.make()
	*n = ast.SingleBinding{LHS: lhs, RHS: rhs}
	return n
}

func (a *nodeAllocator) MultipleBinding(lhs ast.Var, rhs []ast.AnnProc) *ast.MultipleBinding {
	n := a.multipleBinding.make()
	*n = ast.MultipleBinding{LHS: lhs, RHS: a.CopyProcs(rhs)}
	return n
}
