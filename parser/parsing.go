package parser

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/dylon/rholang-go/ast"
	"github.com/dylon/rholang-go/cst"
)

// driver rewrites one top-level concrete syntax node into an annotated
// process. The walk is iterative: a cursor descends into composites while
// an explicit continuation stack holds the pending sibling evaluations and
// the consume step that will assemble each composite, so input depth never
// translates into goroutine stack depth.
type driver struct {
	src   string
	alloc *nodeAllocator
	procs procStack
	conts []step
	errs  []AnnError
}

// run drives the subtree to completion. Afterwards exactly one process is
// on the stack; recovered error regions contribute Bad placeholders rather
// than unbalancing the operand count.
func (d *driver) run(root *cst.Node) {
	node := root
	for {
		for node != nil {
			node = d.classify(node)
		}
		if len(d.conts) == 0 {
			return
		}
		top := d.conts[len(d.conts)-1]
		switch s := top.(type) {
		case *evalDelayed:
			d.conts = d.conts[:len(d.conts)-1]
			if s.node == nil {
				d.pushBad(s.at)
			} else {
				node = s.node
			}
		case *evalList:
			if c := s.parent.NamedChild(s.next); c != nil {
				s.next++
				node = c
			} else {
				d.conts = d.conts[:len(d.conts)-1]
			}
		default:
			d.conts = d.conts[:len(d.conts)-1]
			d.combine(top)
		}
	}
}

func (d *driver) pushCont(s step) {
	d.conts = append(d.conts, s)
}

// eval schedules a node for later classification; a nil node becomes a Bad
// placeholder at the fallback span.
func (d *driver) eval(n *cst.Node, at ast.Span) {
	d.pushCont(&evalDelayed{node: n, at: at})
}

func (d *driver) pushBad(at ast.Span) {
	d.procs.push(badProc, at)
}

// descend hands a child back to the parse loop; an empty slot degrades to
// a Bad placeholder so the pending consume stays balanced.
func (d *driver) descend(n *cst.Node, at ast.Span) *cst.Node {
	if n == nil {
		d.pushBad(at)
		return nil
	}
	return n
}

func (d *driver) recordErr(err ParsingError, span ast.Span) {
	d.errs = append(d.errs, AnnError{Err: err, Span: span})
}

// ---------------------------------------------------------------------------
// Classification
// ---------------------------------------------------------------------------

// classify dispatches one node: leaves push a finished process and return
// nil, composites push their consume step plus pending evaluations and
// return the child to descend into, grouping nodes pass straight through.
func (d *driver) classify(n *cst.Node) *cst.Node {
	span := spanOf(n)
	if n.IsMissing() {
		d.pushBad(span)
		return nil
	}
	switch n.Kind() {
	case cst.KindBlock, cst.KindCollection:
		return d.descend(n.NamedChild(0), span)

	case cst.KindNil:
		d.procs.push(nilProc, span)
	case cst.KindUnit:
		d.procs.push(unitProc, span)
	case cst.KindWildcard:
		d.procs.push(wildProc, span)
	case cst.KindVar:
		d.procs.push(d.alloc.ProcVar(ast.Var{Id: d.alloc.Id(n.Text(d.src), span.Start)}), span)
	case cst.KindBoolLiteral:
		if n.Text(d.src) == "true" {
			d.procs.push(trueProc, span)
		} else {
			d.procs.push(falseProc, span)
		}
	case cst.KindLongLiteral:
		value, err := strconv.ParseInt(n.Text(d.src), 10, 64)
		if err != nil {
			d.recordErr(NumberOutOfRange{}, span)
			d.pushBad(span)
			break
		}
		d.procs.push(d.alloc.LongLiteral(value), span)
	case cst.KindStringLiteral:
		d.procs.push(d.alloc.StringLiteral(n.Text(d.src)), span)
	case cst.KindUriLiteral:
		d.procs.push(d.alloc.UriLiteral(n.Text(d.src)), span)
	case cst.KindSimpleType:
		d.procs.push(d.alloc.SimpleTypeLiteral(simpleTypeOf(n.Text(d.src))), span)
	case cst.KindVarRef:
		d.classifyVarRef(n, span)
	case cst.KindError:
		d.pushBad(span)

	case cst.KindPar:
		d.pushCont(&consumePar{span: span})
		d.eval(n.NamedChild(1), span)
		return d.descend(n.NamedChild(0), span)
	case cst.KindOr, cst.KindAnd, cst.KindMatches, cst.KindEq, cst.KindNeq,
		cst.KindLt, cst.KindLte, cst.KindGt, cst.KindGte, cst.KindConcat,
		cst.KindDiff, cst.KindAdd, cst.KindSub, cst.KindInterpolation,
		cst.KindMult, cst.KindDiv, cst.KindMod, cst.KindDisjunction,
		cst.KindConjunction:
		d.pushCont(&consumeBinaryExp{op: binaryOpOf(n.Kind()), span: span})
		d.eval(n.NamedChild(1), span)
		return d.descend(n.NamedChild(0), span)

	case cst.KindNot:
		return d.classifyUnary(n, ast.UnaryOpNot, span)
	case cst.KindNeg:
		return d.classifyUnary(n, ast.UnaryOpNeg, span)
	case cst.KindNegation:
		return d.classifyUnary(n, ast.UnaryOpNegation, span)

	case cst.KindQuote:
		d.pushCont(&consumeQuote{span: span})
		return d.descend(n.NamedChild(0), span)
	case cst.KindEval:
		d.pushCont(&consumeEval{span: span})
		return d.descend(n.NamedChild(0), span)

	case cst.KindMethod:
		return d.classifyMethod(n, span)
	case cst.KindList:
		d.pushCont(&consumeList{
			arity:        n.NamedChildCount(),
			hasRemainder: fieldChild(n, cst.FieldRemainder) != nil,
			span:         span,
		})
		d.pushCont(&evalList{parent: n})
	case cst.KindSet:
		d.pushCont(&consumeSet{
			arity:        n.NamedChildCount(),
			hasRemainder: fieldChild(n, cst.FieldRemainder) != nil,
			span:         span,
		})
		d.pushCont(&evalList{parent: n})
	case cst.KindTuple:
		d.pushCont(&consumeTuple{arity: n.NamedChildCount(), span: span})
		d.pushCont(&evalList{parent: n})
	case cst.KindMap:
		d.classifyMap(n, span)

	case cst.KindSend:
		return d.classifySend(n, span)
	case cst.KindSendSync:
		return d.classifySendSync(n, span)
	case cst.KindNew:
		d.pushCont(&consumeNew{decls: d.nameDecls(n), span: span})
		return d.descend(n.ChildByField(cst.FieldProc), span)
	case cst.KindContract:
		return d.classifyContract(n, span)
	case cst.KindIfElse:
		if alt := n.ChildByField(cst.FieldAlternative); alt != nil {
			d.pushCont(&consumeIfThenElse{span: span})
			d.eval(alt, span)
		} else {
			d.pushCont(&consumeIfThen{span: span})
		}
		d.eval(n.ChildByField(cst.FieldConsequence), span)
		return d.descend(n.ChildByField(cst.FieldCondition), span)
	case cst.KindInput:
		return d.classifyFor(n, span)
	case cst.KindMatch:
		return d.classifyMatch(n, span)
	case cst.KindLet:
		return d.classifyLet(n, span)
	case cst.KindBundle:
		d.pushCont(&consumeBundle{typ: bundleTypeOf(n), span: span})
		return d.descend(n.ChildByField(cst.FieldProc), span)

	default:
		panic(fmt.Sprintf("bug: no classification for node kind %q", n.KindName()))
	}
	return nil
}

func (d *driver) classifyUnary(n *cst.Node, op ast.UnaryExpOp, span ast.Span) *cst.Node {
	d.pushCont(&consumeUnaryExp{op: op, span: span})
	return d.descend(n.NamedChild(0), span)
}

func (d *driver) classifyVarRef(n *cst.Node, span ast.Span) {
	v := n.Child(1)
	if v == nil {
		d.pushBad(span)
		return
	}
	kind := ast.VarRefProc
	if k := n.NamedChild(0); k != nil && k.Text(d.src) == "=*" {
		kind = ast.VarRefName
	}
	d.procs.push(d.alloc.VarRef(kind, ast.Id{Name: v.Text(d.src), Pos: startOf(v)}), span)
}

func (d *driver) classifyMethod(n *cst.Node, span ast.Span) *cst.Node {
	var id ast.Id
	if name := n.ChildByField(cst.FieldName); name != nil {
		id = ast.Id{Name: name.Text(d.src), Pos: startOf(name)}
	}
	args := n.ChildByField(cst.FieldArgs)
	arity := 0
	if args != nil {
		arity = args.NamedChildCount()
	}
	d.pushCont(&consumeMethod{id: id, arity: arity, span: span})
	if args != nil {
		d.pushCont(&evalList{parent: args})
	}
	return d.descend(n.ChildByField(cst.FieldReceiver), span)
}

// classifyMap schedules the remainder first, then each pair's key and
// value in source order.
func (d *driver) classifyMap(n *cst.Node, span ast.Span) {
	var pairs []*cst.Node
	for i := 0; i < n.ChildCount(); i++ {
		if c := n.Child(i); c.Kind() == cst.KindKeyValuePair {
			pairs = append(pairs, c)
		}
	}
	remainder := fieldChild(n, cst.FieldRemainder)
	d.pushCont(&consumeMap{arity: len(pairs), hasRemainder: remainder != nil, span: span})
	for i := len(pairs) - 1; i >= 0; i-- {
		at := spanOf(pairs[i])
		d.eval(pairs[i].ChildByField(cst.FieldValue), at)
		d.eval(pairs[i].ChildByField(cst.FieldKey), at)
	}
	if remainder != nil {
		d.eval(remainder, span)
	}
}

func (d *driver) classifySend(n *cst.Node, span ast.Span) *cst.Node {
	sendType := ast.SendSingle
	if st := n.ChildByField(cst.FieldSendType); st != nil && st.Kind() == cst.KindSendMultiple {
		sendType = ast.SendMultiple
	}
	inputs := n.ChildByField(cst.FieldInputs)
	arity := 0
	if inputs != nil {
		arity = inputs.NamedChildCount()
	}
	d.pushCont(&consumeSend{sendType: sendType, arity: arity, span: span})
	if inputs != nil {
		d.pushCont(&evalList{parent: inputs})
	}
	return d.descend(n.ChildByField(cst.FieldChannel), span)
}

func (d *driver) classifySendSync(n *cst.Node, span ast.Span) *cst.Node {
	inputs := n.ChildByField(cst.FieldInputs)
	arity := 0
	if inputs != nil {
		arity = inputs.NamedChildCount()
	}
	var contProc *cst.Node
	if cont := n.ChildByField(cst.FieldCont); cont != nil {
		if choice := cont.NamedChild(0); choice != nil && choice.Kind() == cst.KindNonEmptyCont {
			contProc = choice.NamedChild(0)
		}
	}
	d.pushCont(&consumeSendSync{arity: arity, hasCont: contProc != nil, span: span})
	if contProc != nil {
		d.eval(contProc, span)
	}
	if inputs != nil {
		d.pushCont(&evalList{parent: inputs})
	}
	return d.descend(n.ChildByField(cst.FieldChannel), span)
}

func (d *driver) classifyContract(n *cst.Node, span ast.Span) *cst.Node {
	formals := n.ChildByField(cst.FieldFormals)
	arity, hasCont := 0, false
	if formals != nil {
		arity = formals.NamedChildCount()
		hasCont = fieldChild(formals, cst.FieldCont) != nil
	}
	d.pushCont(&consumeContract{arity: arity, hasCont: hasCont, span: span})
	if formals != nil {
		d.pushCont(&evalList{parent: formals})
	}
	d.eval(n.ChildByField(cst.FieldProc), span)
	return d.descend(n.ChildByField(cst.FieldName), span)
}

func (d *driver) classifyFor(n *cst.Node, span ast.Span) *cst.Node {
	var receipts []receiptDesc
	var work []step
	if receiptsNode := n.ChildByField(cst.FieldReceipts); receiptsNode != nil {
		for i := 0; i < receiptsNode.NamedChildCount(); i++ {
			r := receiptsNode.NamedChild(i)
			if r.Kind() != cst.KindReceipt {
				continue
			}
			var desc receiptDesc
			for j := 0; j < r.NamedChildCount(); j++ {
				b := r.NamedChild(j)
				switch b.Kind() {
				case cst.KindLinearBind, cst.KindRepeatedBind, cst.KindPeekBind:
					bd := d.bindWork(b, &work)
					desc.binds = append(desc.binds, bd)
					desc.len += bd.arity()
				}
			}
			receipts = append(receipts, desc)
		}
	}
	d.pushCont(&consumeFor{receipts: receipts, span: span})
	for i := len(work) - 1; i >= 0; i-- {
		d.pushCont(work[i])
	}
	return d.descend(n.ChildByField(cst.FieldProc), span)
}

// bindWork records one bind's operand footprint and appends its evaluation
// steps in source order: the channel, a send-receive source's inputs, then
// the bound names.
func (d *driver) bindWork(b *cst.Node, work *[]step) bindDesc {
	var lhs, rhs *cst.Node
	if first := b.NamedChild(0); first != nil && first.Kind() == cst.KindNames {
		lhs = first
		rhs = b.NamedChild(1)
	} else {
		rhs = b.NamedChild(0)
	}

	desc := bindDesc{kind: b.Kind()}
	at := spanOf(b)

	channel := rhs
	var srInputs *cst.Node
	if b.Kind() == cst.KindLinearBind {
		channel = nil
		if rhs != nil {
			desc.source.kind = rhs.Kind()
			channel = sourceChannel(rhs)
			if rhs.Kind() == cst.KindSendReceiveSource {
				srInputs = rhs.ChildByField(cst.FieldInputs)
			}
		}
	}
	*work = append(*work, &evalDelayed{node: channel, at: at})
	if srInputs != nil {
		desc.source.inputs = srInputs.NamedChildCount()
		*work = append(*work, &evalList{parent: srInputs})
	}
	if lhs != nil {
		desc.nameCount = lhs.NamedChildCount()
		desc.hasRemainder = fieldChild(lhs, cst.FieldCont) != nil
		*work = append(*work, &evalList{parent: lhs})
	}
	return desc
}

// sourceChannel picks the channel name out of a receive source node.
func sourceChannel(src *cst.Node) *cst.Node {
	for i := 0; i < src.NamedChildCount(); i++ {
		c := src.NamedChild(i)
		switch c.Kind() {
		case cst.KindVar, cst.KindWildcard, cst.KindQuote:
			return c
		}
	}
	return nil
}

func (d *driver) classifyMatch(n *cst.Node, span ast.Span) *cst.Node {
	var cases []*cst.Node
	if casesNode := n.ChildByField(cst.FieldCases); casesNode != nil {
		for i := 0; i < casesNode.ChildCount(); i++ {
			if c := casesNode.Child(i); c.Kind() == cst.KindCase {
				cases = append(cases, c)
			}
		}
	}
	d.pushCont(&consumeMatch{arity: len(cases), span: span})
	for i := len(cases) - 1; i >= 0; i-- {
		at := spanOf(cases[i])
		d.eval(cases[i].NamedChild(1), at)
		d.eval(cases[i].NamedChild(0), at)
	}
	return d.descend(n.ChildByField(cst.FieldExpression), span)
}

func (d *driver) classifyLet(n *cst.Node, span ast.Span) *cst.Node {
	declsNode := n.ChildByField(cst.FieldDecls)
	var decls []letDecl
	var work []step
	if declsNode != nil {
		for i := 0; i < declsNode.ChildCount(); i++ {
			c := declsNode.Child(i)
			if c.Kind() != cst.KindDecl {
				continue
			}
			lhs, rhs := c.NamedChild(0), c.NamedChild(1)
			ld := letDecl{span: spanOf(c)}
			if lhs != nil {
				ld.lhsArity = lhs.NamedChildCount()
				ld.lhsHasCont = fieldChild(lhs, cst.FieldCont) != nil
				work = append(work, &evalList{parent: lhs})
			}
			if rhs != nil {
				ld.rhsArity = rhs.NamedChildCount()
				work = append(work, &evalList{parent: rhs})
			}
			if !(ld.lhsArity == ld.rhsArity || (ld.lhsHasCont && ld.lhsArity <= ld.rhsArity)) {
				d.recordErr(MalformedLetDecl{LHSArity: ld.lhsArity, RHSArity: ld.rhsArity}, ld.span)
			}
			decls = append(decls, ld)
		}
	}
	d.pushCont(&consumeLet{
		decls:      decls,
		concurrent: declsNode != nil && declsNode.Kind() == cst.KindConcDecls,
		span:       span,
	})
	for i := len(work) - 1; i >= 0; i-- {
		d.pushCont(work[i])
	}
	return d.descend(n.ChildByField(cst.FieldProc), span)
}

// nameDecls reads a new binder's declarations eagerly, sorts them by name
// then position, and reports adjacent duplicates with the textually
// earlier occurrence first.
func (d *driver) nameDecls(n *cst.Node) []ast.NameDecl {
	declsNode := n.ChildByField(cst.FieldDecls)
	if declsNode == nil {
		return nil
	}
	var decls []ast.NameDecl
	for i := 0; i < declsNode.ChildCount(); i++ {
		c := declsNode.Child(i)
		if c.Kind() != cst.KindNameDecl {
			continue
		}
		v := c.NamedChild(0)
		if v == nil || (v.Kind() != cst.KindVar && v.Kind() != cst.KindWildcard) {
			continue
		}
		decl := ast.NameDecl{Id: ast.Id{Name: v.Text(d.src), Pos: startOf(v)}}
		if uri := fieldChild(c, cst.FieldUri); uri != nil {
			decl.Uri = d.alloc.Uri(uri.Text(d.src))
		}
		decls = append(decls, decl)
	}
	slices.SortFunc(decls, func(a, b ast.NameDecl) int {
		if c := strings.Compare(a.Id.Name, b.Id.Name); c != 0 {
			return c
		}
		return comparePos(a.Id.Pos, b.Id.Pos)
	})
	for i := 1; i < len(decls); i++ {
		if decls[i].Id.Name == decls[i-1].Id.Name {
			d.recordErr(DuplicateNameDecl{
				First:  decls[i-1].Id.Pos,
				Second: decls[i].Id.Pos,
			}, spanOf(declsNode))
		}
	}
	return d.alloc.CopyDecls(decls)
}

// ---------------------------------------------------------------------------
// Combination
// ---------------------------------------------------------------------------

// combine pops a finished composite's operands and pushes the assembled
// process. Operand slices alias the stack and are fully consumed before
// the push.
func (d *driver) combine(s step) {
	switch c := s.(type) {
	case *consumePar:
		ops := d.procs.popN(2)
		d.procs.push(d.alloc.Par(ops[0], ops[1]), c.span)
	case *consumeBinaryExp:
		ops := d.procs.popN(2)
		d.procs.push(d.alloc.BinaryExp(c.op, ops[0], ops[1]), c.span)
	case *consumeUnaryExp:
		ops := d.procs.popN(1)
		d.procs.push(d.alloc.UnaryExp(c.op, ops[0].Proc), c.span)
	case *consumeQuote:
		ops := d.procs.popN(1)
		d.procs.push(d.alloc.Quote(ops[0].Proc), c.span)
	case *consumeEval:
		ops := d.procs.popN(1)
		d.procs.push(d.alloc.Eval(d.toName(ops[0])), c.span)
	case *consumeMethod:
		ops := d.procs.popN(c.arity + 1)
		d.procs.push(d.alloc.Method(ops[0], c.id, ops[1:]), c.span)
	case *consumeList:
		elements, remainder := d.splitRemainder(d.procs.popN(c.arity), c.hasRemainder)
		d.procs.push(d.alloc.List(elements, remainder), c.span)
	case *consumeSet:
		elements, remainder := d.splitRemainder(d.procs.popN(c.arity), c.hasRemainder)
		d.procs.push(d.alloc.Set(elements, remainder), c.span)
	case *consumeTuple:
		d.procs.push(d.alloc.Tuple(d.procs.popN(c.arity)), c.span)
	case *consumeMap:
		n := 2 * c.arity
		if c.hasRemainder {
			n++
		}
		ops := d.procs.popN(n)
		var remainder *ast.Var
		if c.hasRemainder {
			remainder = d.alloc.Var(toVar(ops[0]))
			ops = ops[1:]
		}
		d.procs.push(d.alloc.Map(ops, remainder), c.span)
	case *consumeSend:
		ops := d.procs.popN(c.arity + 1)
		d.procs.push(d.alloc.Send(d.toName(ops[0]), c.sendType, ops[1:]), c.span)
	case *consumeSendSync:
		n := c.arity + 1
		if c.hasCont {
			n++
		}
		ops := d.procs.popN(n)
		var cont ast.SyncSendCont
		if c.hasCont {
			cont.Proc = d.alloc.Box(ops[len(ops)-1])
			ops = ops[:len(ops)-1]
		}
		d.procs.push(d.alloc.SendSync(d.toName(ops[0]), ops[1:], cont), c.span)
	case *consumeNew:
		ops := d.procs.popN(1)
		d.procs.push(d.alloc.New(c.decls, ops[0]), c.span)
	case *consumeContract:
		ops := d.procs.popN(c.arity + 2)
		d.procs.push(d.alloc.Contract(d.toName(ops[0]), d.toNames(ops[2:], c.hasCont), ops[1]), c.span)
	case *consumeIfThen:
		ops := d.procs.popN(2)
		d.procs.push(d.alloc.IfThenElse(ops[0], ops[1], nil), c.span)
	case *consumeIfThenElse:
		ops := d.procs.popN(3)
		d.procs.push(d.alloc.IfThenElse(ops[0], ops[1], d.alloc.Box(ops[2])), c.span)
	case *consumeFor:
		d.combineFor(c)
	case *consumeMatch:
		ops := d.procs.popN(2*c.arity + 1)
		cases := d.alloc.CaseSlice(c.arity)
		for i := range cases {
			cases[i] = ast.Case{Pattern: ops[1+2*i], Proc: ops[2+2*i]}
		}
		d.procs.push(d.alloc.Match(ops[0], cases), c.span)
	case *consumeLet:
		d.combineLet(c)
	case *consumeBundle:
		ops := d.procs.popN(1)
		d.procs.push(d.alloc.Bundle(c.typ, ops[0]), c.span)
	default:
		panic(fmt.Sprintf("bug: no combination for continuation %T", s))
	}
}

func (d *driver) combineFor(c *consumeFor) {
	total := 1
	for _, r := range c.receipts {
		total += r.len
	}
	ops := d.procs.popN(total)
	body := ops[0]
	run := ops[1:]
	receipts := d.alloc.ReceiptSlice(len(c.receipts))
	for i, rd := range c.receipts {
		binds := d.alloc.BindSlice(len(rd.binds))
		for j, bd := range rd.binds {
			binds[j] = d.bindOf(bd, run[:bd.arity()])
			run = run[bd.arity():]
		}
		receipts[i] = ast.Receipt{Binds: binds}
	}
	d.procs.push(d.alloc.ForComprehension(receipts, body), c.span)
}

// bindOf assembles one receive bind from its operand run: the channel,
// then a send-receive source's inputs, then the bound names.
func (d *driver) bindOf(bd bindDesc, ops []ast.AnnProc) ast.Bind {
	channel := d.toName(ops[0])
	rest := ops[1:]
	names := d.toNames(rest[bd.source.inputs:], bd.hasRemainder)
	switch bd.kind {
	case cst.KindRepeatedBind:
		return d.alloc.RepeatedBind(names, channel)
	case cst.KindPeekBind:
		return d.alloc.PeekBind(names, channel)
	}
	var source ast.Source
	switch bd.source.kind {
	case cst.KindReceiveSendSource:
		source = d.alloc.ReceiveSendSource(channel)
	case cst.KindSendReceiveSource:
		source = d.alloc.SendReceiveSource(channel, rest[:bd.source.inputs])
	default:
		source = d.alloc.SimpleSource(channel)
	}
	return d.alloc.LinearBind(names, source)
}

func (d *driver) combineLet(c *consumeLet) {
	total := 1
	for _, ld := range c.decls {
		total += ld.lhsArity + ld.rhsArity
	}
	ops := d.procs.popN(total)
	body := ops[0]
	run := ops[1:]
	bindings := d.alloc.LetBindingSlice(bindingCount(c.decls))
	next := 0
	for _, ld := range c.decls {
		lhs := run[:ld.lhsArity]
		rhs := run[ld.lhsArity : ld.lhsArity+ld.rhsArity]
		run = run[ld.lhsArity+ld.rhsArity:]
		next += d.letBindings(bindings[next:], ld, lhs, rhs)
	}
	d.procs.push(d.alloc.Let(bindings[:next], body, c.concurrent), c.span)
}

func bindingCount(decls []letDecl) int {
	total := 0
	for _, ld := range decls {
		switch {
		case ld.lhsHasCont && ld.rhsArity > ld.lhsArity:
			total += ld.lhsArity
		case ld.lhsArity < ld.rhsArity:
			total += ld.lhsArity
		default:
			total += ld.rhsArity
		}
	}
	return total
}

// letBindings zips one declaration's names with its processes. A remainder
// binder soaks up surplus processes as a MultipleBinding; any other
// imbalance was reported during classification and binds best-effort.
func (d *driver) letBindings(dst []ast.LetBinding, ld letDecl, lhs, rhs []ast.AnnProc) int {
	if ld.lhsHasCont && ld.rhsArity > ld.lhsArity {
		n := ld.lhsArity - 1
		for i := 0; i < n; i++ {
			dst[i] = d.alloc.SingleBinding(d.toName(lhs[i]), rhs[i])
		}
		dst[n] = d.alloc.MultipleBinding(toVar(lhs[n]), rhs[n:])
		return ld.lhsArity
	}
	n := ld.lhsArity
	if ld.rhsArity < n {
		n = ld.rhsArity
	}
	for i := 0; i < n; i++ {
		dst[i] = d.alloc.SingleBinding(d.toName(lhs[i]), rhs[i])
	}
	return n
}

// ---------------------------------------------------------------------------
// Narrowing
// ---------------------------------------------------------------------------

// toName narrows an operand in channel position. Bad operands, already
// reported, degrade to a wildcard placeholder; anything else that is not a
// name is a driver bug.
func (d *driver) toName(op ast.AnnProc) ast.AnnName {
	switch p := op.Proc.(type) {
	case *ast.ProcVar:
		return ast.AnnName{Name: p, Span: op.Span}
	case *ast.Quote:
		return ast.AnnName{Name: p, Span: op.Span}
	case *ast.Bad:
		return ast.AnnName{Name: wildProc, Span: op.Span}
	}
	panic(fmt.Sprintf("bug: expected a name, got %T", op.Proc))
}

// toVar narrows an operand in binder position.
func toVar(op ast.AnnProc) ast.Var {
	switch p := op.Proc.(type) {
	case *ast.ProcVar:
		return p.Var
	case *ast.Bad:
		return ast.Var{}
	}
	panic(fmt.Sprintf("bug: expected a variable, got %T", op.Proc))
}

// toNames assembles a Names from an operand run, splitting off the
// trailing remainder binder when present.
func (d *driver) toNames(ops []ast.AnnProc, hasRemainder bool) ast.Names {
	var remainder *ast.Var
	if hasRemainder && len(ops) > 0 {
		remainder = d.alloc.Var(toVar(ops[len(ops)-1]))
		ops = ops[:len(ops)-1]
	}
	names := d.alloc.NameSlice(len(ops))
	for i, op := range ops {
		names[i] = d.toName(op)
	}
	return ast.Names{Names: names, Remainder: remainder}
}

// splitRemainder peels the trailing remainder binder off a collection's
// operand run.
func (d *driver) splitRemainder(ops []ast.AnnProc, hasRemainder bool) ([]ast.AnnProc, *ast.Var) {
	if !hasRemainder || len(ops) == 0 {
		return ops, nil
	}
	return ops[:len(ops)-1], d.alloc.Var(toVar(ops[len(ops)-1]))
}

// ---------------------------------------------------------------------------
// Tables and positions
// ---------------------------------------------------------------------------

func binaryOpOf(k cst.KindID) ast.BinaryExpOp {
	switch k {
	case cst.KindOr:
		return ast.BinaryOpOr
	case cst.KindAnd:
		return ast.BinaryOpAnd
	case cst.KindMatches:
		return ast.BinaryOpMatches
	case cst.KindEq:
		return ast.BinaryOpEq
	case cst.KindNeq:
		return ast.BinaryOpNeq
	case cst.KindLt:
		return ast.BinaryOpLt
	case cst.KindLte:
		return ast.BinaryOpLte
	case cst.KindGt:
		return ast.BinaryOpGt
	case cst.KindGte:
		return ast.BinaryOpGte
	case cst.KindConcat:
		return ast.BinaryOpConcat
	case cst.KindDiff:
		return ast.BinaryOpDiff
	case cst.KindAdd:
		return ast.BinaryOpAdd
	case cst.KindSub:
		return ast.BinaryOpSub
	case cst.KindInterpolation:
		return ast.BinaryOpInterpolation
	case cst.KindMult:
		return ast.BinaryOpMult
	case cst.KindDiv:
		return ast.BinaryOpDiv
	case cst.KindMod:
		return ast.BinaryOpMod
	case cst.KindDisjunction:
		return ast.BinaryOpDisjunction
	case cst.KindConjunction:
		return ast.BinaryOpConjunction
	}
	panic(fmt.Sprintf("bug: not a binary operator kind %q", k.Name()))
}

func bundleTypeOf(n *cst.Node) ast.BundleType {
	if bt := n.ChildByField(cst.FieldBundleType); bt != nil {
		switch bt.Kind() {
		case cst.KindBundleWrite:
			return ast.BundleWrite
		case cst.KindBundleRead:
			return ast.BundleRead
		case cst.KindBundleEquiv:
			return ast.BundleEquiv
		}
	}
	return ast.BundleReadWrite
}

func simpleTypeOf(text string) ast.SimpleType {
	switch text {
	case "Bool":
		return ast.SimpleTypeBool
	case "Int":
		return ast.SimpleTypeInt
	case "String":
		return ast.SimpleTypeString
	case "Uri":
		return ast.SimpleTypeUri
	}
	return ast.SimpleTypeByteArray
}

// fieldChild returns the child filling the grammar field, or nil when the
// field is absent or only a missing-token stand-in.
func fieldChild(n *cst.Node, f cst.FieldID) *cst.Node {
	c := n.ChildByField(f)
	if c == nil || c.IsMissing() {
		return nil
	}
	return c
}

func posOf(p cst.Point) ast.Position {
	return ast.Position{Line: p.Row + 1, Column: p.Column + 1}
}

func startOf(n *cst.Node) ast.Position {
	return posOf(n.Range().StartPoint)
}

func spanOf(n *cst.Node) ast.Span {
	r := n.Range()
	return ast.Span{Start: posOf(r.StartPoint), End: posOf(r.EndPoint)}
}

func comparePos(a, b ast.Position) int {
	if a == b {
		return 0
	}
	if a.Before(b) {
		return -1
	}
	return 1
}
