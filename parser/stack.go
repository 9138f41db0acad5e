package parser

import (
	"fmt"

	"github.com/dylon/rholang-go/ast"
	"github.com/dylon/rholang-go/cst"
)

// procStack holds the annotated processes built so far. Composite nodes
// consume their operands from the top of this stack once every child has
// been evaluated.
type procStack struct {
	ops []ast.AnnProc
}

func (s *procStack) push(p ast.Proc, span ast.Span) {
	s.ops = append(s.ops, ast.AnnProc{Proc: p, Span: span})
}

func (s *procStack) len() int {
	return len(s.ops)
}

// popN removes the top n entries and returns them in push order. The
// returned slice aliases the stack's backing array and must be copied
// before the stack grows again.
func (s *procStack) popN(n int) []ast.AnnProc {
	if len(s.ops) < n {
		panic(fmt.Sprintf("bug: process stack underflow!!! need %d operands, have %d", n, len(s.ops)))
	}
	top := s.ops[len(s.ops)-n:]
	s.ops = s.ops[:len(s.ops)-n]
	return top
}

// toProc asserts that exactly one process remains and returns it.
func (s *procStack) toProc() ast.AnnProc {
	if len(s.ops) != 1 {
		panic(fmt.Sprintf("bug: parsing finished prematurely, %d processes remain on the stack", len(s.ops)))
	}
	return s.ops[0]
}

// toProcPartial returns the topmost process, if any. Used to salvage a
// partial tree when parsing fails.
func (s *procStack) toProcPartial() (ast.AnnProc, bool) {
	if len(s.ops) == 0 {
		return ast.AnnProc{}, false
	}
	return s.ops[len(s.ops)-1], true
}

// step is one pending continuation. Eval steps schedule a subtree for
// classification; consume steps pop finished operands and assemble a
// composite node.
type step interface {
	_step()
}

type (
	// evalDelayed schedules a single syntax node. When the grammar slot is
	// empty the drain pushes a Bad placeholder at `at` instead, keeping the
	// pending consume's operand count balanced.
	evalDelayed struct {
		node *cst.Node
		at   ast.Span
	}

	// evalList walks the named children of parent one at a time, keeping
	// its own cursor so siblings are evaluated left to right.
	evalList struct {
		parent *cst.Node
		next   int
	}

	consumePar struct {
		span ast.Span
	}

	consumeBinaryExp struct {
		op   ast.BinaryExpOp
		span ast.Span
	}

	consumeUnaryExp struct {
		op   ast.UnaryExpOp
		span ast.Span
	}

	consumeQuote struct {
		span ast.Span
	}

	consumeEval struct {
		span ast.Span
	}

	consumeMethod struct {
		id    ast.Id
		arity int
		span  ast.Span
	}

	consumeList struct {
		arity        int
		hasRemainder bool
		span         ast.Span
	}

	consumeSet struct {
		arity        int
		hasRemainder bool
		span         ast.Span
	}

	consumeTuple struct {
		arity int
		span  ast.Span
	}

	consumeMap struct {
		arity        int
		hasRemainder bool
		span         ast.Span
	}

	consumeSend struct {
		sendType ast.SendType
		arity    int
		span     ast.Span
	}

	consumeSendSync struct {
		arity   int
		hasCont bool
		span    ast.Span
	}

	consumeNew struct {
		decls []ast.NameDecl
		span  ast.Span
	}

	consumeContract struct {
		arity   int
		hasCont bool
		span    ast.Span
	}

	consumeIfThen struct {
		span ast.Span
	}

	consumeIfThenElse struct {
		span ast.Span
	}

	consumeFor struct {
		receipts []receiptDesc
		span     ast.Span
	}

	consumeMatch struct {
		arity int
		span  ast.Span
	}

	consumeLet struct {
		decls      []letDecl
		concurrent bool
		span       ast.Span
	}

	consumeBundle struct {
		typ  ast.BundleType
		span ast.Span
	}
)

func (*evalDelayed) _step()       {}
func (*evalList) _step()          {}
func (*consumePar) _step()        {}
func (*consumeBinaryExp) _step()  {}
func (*consumeUnaryExp) _step()   {}
func (*consumeQuote) _step()      {}
func (*consumeEval) _step()       {}
func (*consumeMethod) _step()     {}
func (*consumeList) _step()       {}
func (*consumeSet) _step()        {}
func (*consumeTuple) _step()      {}
func (*consumeMap) _step()        {}
func (*consumeSend) _step()       {}
func (*consumeSendSync) _step()   {}
func (*consumeNew) _step()        {}
func (*consumeContract) _step()   {}
func (*consumeIfThen) _step()     {}
func (*consumeIfThenElse) _step() {}
func (*consumeFor) _step()        {}
func (*consumeMatch) _step()      {}
func (*consumeLet) _step()        {}
func (*consumeBundle) _step()     {}

// sourceDesc records how many stack operands a receive source will have
// produced by the time its receipt is assembled: the channel itself plus
// one per sent input for send-receive sources.
type sourceDesc struct {
	kind   cst.KindID
	inputs int
}

func (d sourceDesc) arity() int {
	return 1 + d.inputs
}

// bindDesc records the operand footprint of one bind inside a receipt.
type bindDesc struct {
	kind         cst.KindID
	source       sourceDesc
	nameCount    int
	hasRemainder bool
}

func (d bindDesc) arity() int {
	return d.source.arity() + d.nameCount
}

// receiptDesc records the binds of one receipt and their combined operand
// count.
type receiptDesc struct {
	binds []bindDesc
	len   int
}

// letDecl records the shape of one declaration inside a let. Arities
// count every named child, the continuation variable included.
type letDecl struct {
	lhsArity   int
	lhsHasCont bool
	rhsArity   int
	span       ast.Span
}
