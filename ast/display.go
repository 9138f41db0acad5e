package ast

import (
	"strconv"
	"strings"
)

// String renders the process as Rholang source text. The output reparses to
// the same structure but makes no attempt to preserve original layout.
func (p AnnProc) String() string {
	s := &state{
		out:    &strings.Builder{},
		proc:   p.Proc,
		parent: &state{},
	}
	gen(s)
	return s.out.String()
}

func (n AnnName) String() string {
	s := &state{
		out:    &strings.Builder{},
		parent: &state{},
	}
	genName(s, n)
	return s.out.String()
}

type state struct {
	out    *strings.Builder
	proc   Proc
	parent *state
	indent int
}

func (s *state) wrap(proc Proc) *state {
	return &state{
		out:    s.out,
		proc:   proc,
		parent: s,
		indent: s.indent,
	}
}

func (s *state) line() {
	s.out.WriteString("\n")
}

func (s *state) lineAndPad() {
	s.line()
	s.out.WriteString(strings.Repeat("  ", s.indent))
}

// block renders { body } with the body indented on its own line.
func (s *state) block(body AnnProc) {
	s.out.WriteString("{")
	s.indent++
	s.lineAndPad()
	gen(s.wrap(body.Proc))
	s.indent--
	s.lineAndPad()
	s.out.WriteString("}")
}

func (op BinaryExpOp) precedence() int {
	switch op {
	case BinaryOpDisjunction:
		return 2
	case BinaryOpConjunction:
		return 3
	case BinaryOpOr:
		return 4
	case BinaryOpAnd:
		return 5
	case BinaryOpMatches, BinaryOpEq, BinaryOpNeq:
		return 6
	case BinaryOpLt, BinaryOpLte, BinaryOpGt, BinaryOpGte:
		return 7
	case BinaryOpConcat, BinaryOpDiff, BinaryOpAdd, BinaryOpSub:
		return 8
	}
	return 9
}

// grouped reports whether the process needs bracketing when it appears as a
// tightly binding operand.
func grouped(p Proc) bool {
	switch p.(type) {
	case *Par, *BinaryExp, *UnaryExp, *Send, *SendSync, *IfThenElse, *New, *Let, *ForComprehension, *Match, *Contract, *Bundle:
		return true
	}
	return false
}

func gen(s *state) {
	switch n := s.proc.(type) {
	case nil:
	case *Nil:
		s.out.WriteString("Nil")
	case *Bad:
		s.out.WriteString("<bad>")
	case *BoolLiteral:
		s.out.WriteString(strconv.FormatBool(n.Value))
	case *LongLiteral:
		s.out.WriteString(strconv.FormatInt(n.Value, 10))
	case *StringLiteral:
		s.out.WriteString("\"" + n.Value + "\"")
	case *UriLiteral:
		s.out.WriteString(n.Value.String())
	case *SimpleTypeLiteral:
		s.out.WriteString(n.Type.String())
	case *ProcVar:
		s.out.WriteString(n.Var.String())
	case *VarRef:
		s.out.WriteString(n.Kind.String() + n.Var.Name)
	case *Par:
		if pn, ok := s.parent.proc.(*Par); ok && pn.Right.Proc == Proc(n) {
			s.out.WriteString("{")
			defer s.out.WriteString("}")
		} else if _, ok := s.parent.proc.(*BinaryExp); ok {
			s.out.WriteString("(")
			defer s.out.WriteString(")")
		}
		gen(s.wrap(n.Left.Proc))
		s.out.WriteString(" | ")
		gen(s.wrap(n.Right.Proc))
	case *BinaryExp:
		if pn, ok := s.parent.proc.(*BinaryExp); ok {
			prec, parentPrec := n.Op.precedence(), pn.Op.precedence()
			if prec < parentPrec || prec == parentPrec && pn.Right.Proc == Proc(n) {
				s.out.WriteString("(")
				defer s.out.WriteString(")")
			}
		}
		gen(s.wrap(n.Left.Proc))
		s.out.WriteString(" " + n.Op.String() + " ")
		gen(s.wrap(n.Right.Proc))
	case *UnaryExp:
		s.out.WriteString(n.Op.String())
		if n.Op == UnaryOpNot {
			s.out.WriteString(" ")
		}
		if grouped(n.Arg) {
			s.out.WriteString("(")
			gen(s.wrap(n.Arg))
			s.out.WriteString(")")
		} else {
			gen(s.wrap(n.Arg))
		}
	case *Quote:
		s.out.WriteString("@")
		if grouped(n.Proc) {
			s.out.WriteString("{")
			gen(s.wrap(n.Proc))
			s.out.WriteString("}")
		} else {
			gen(s.wrap(n.Proc))
		}
	case *Eval:
		s.out.WriteString("*")
		genName(s, n.Name)
	case *Method:
		if grouped(n.Receiver.Proc) {
			s.out.WriteString("(")
			gen(s.wrap(n.Receiver.Proc))
			s.out.WriteString(")")
		} else {
			gen(s.wrap(n.Receiver.Proc))
		}
		s.out.WriteString("." + n.Name.Name + "(")
		genProcs(s, n.Args)
		s.out.WriteString(")")
	case *Send:
		genName(s, n.Channel)
		s.out.WriteString(n.SendType.String() + "(")
		genProcs(s, n.Inputs)
		s.out.WriteString(")")
	case *SendSync:
		genName(s, n.Channel)
		s.out.WriteString("!?(")
		genProcs(s, n.Messages)
		s.out.WriteString(")")
		if n.Cont.Proc == nil {
			s.out.WriteString(".")
		} else {
			s.out.WriteString("; ")
			gen(s.wrap(n.Cont.Proc.Proc))
		}
	case *IfThenElse:
		s.out.WriteString("if (")
		gen(s.wrap(n.Condition.Proc))
		s.out.WriteString(") ")
		s.block(n.IfTrue)
		if n.IfFalse != nil {
			s.out.WriteString(" else ")
			s.block(*n.IfFalse)
		}
	case *New:
		s.out.WriteString("new ")
		for i, d := range n.Decls {
			if i > 0 {
				s.out.WriteString(", ")
			}
			s.out.WriteString(d.String())
		}
		s.out.WriteString(" in ")
		s.block(n.Proc)
	case *Contract:
		s.out.WriteString("contract ")
		genName(s, n.Name)
		s.out.WriteString("(")
		genNames(s, n.Formals)
		s.out.WriteString(") = ")
		s.block(n.Body)
	case *Let:
		sep := " ; "
		if n.Concurrent {
			sep = " & "
		}
		s.out.WriteString("let ")
		for i, b := range n.Bindings {
			if i > 0 {
				s.out.WriteString(sep)
			}
			genLetBinding(s, b)
		}
		s.out.WriteString(" in ")
		s.block(n.Body)
	case *ForComprehension:
		s.out.WriteString("for (")
		for i, r := range n.Receipts {
			if i > 0 {
				s.out.WriteString(" ; ")
			}
			for j, b := range r.Binds {
				if j > 0 {
					s.out.WriteString(" & ")
				}
				genBind(s, b)
			}
		}
		s.out.WriteString(") ")
		s.block(n.Proc)
	case *Match:
		s.out.WriteString("match ")
		gen(s.wrap(n.Expression.Proc))
		s.out.WriteString(" {")
		s.indent++
		for _, c := range n.Cases {
			s.lineAndPad()
			gen(s.wrap(c.Pattern.Proc))
			s.out.WriteString(" => ")
			s.block(c.Proc)
		}
		s.indent--
		s.lineAndPad()
		s.out.WriteString("}")
	case *Bundle:
		s.out.WriteString(n.BundleType.String() + " ")
		s.block(n.Proc)
	case *List:
		s.out.WriteString("[")
		genProcs(s, n.Elements)
		genRemainder(s, n.Remainder, len(n.Elements) > 0)
		s.out.WriteString("]")
	case *Set:
		s.out.WriteString("Set(")
		genProcs(s, n.Elements)
		genRemainder(s, n.Remainder, len(n.Elements) > 0)
		s.out.WriteString(")")
	case *Tuple:
		s.out.WriteString("(")
		genProcs(s, n.Elements)
		if len(n.Elements) == 1 {
			s.out.WriteString(",")
		}
		s.out.WriteString(")")
	case *Map:
		s.out.WriteString("{")
		for i, kv := range n.Pairs {
			if i > 0 {
				s.out.WriteString(", ")
			}
			gen(s.wrap(kv.Key.Proc))
			s.out.WriteString(": ")
			gen(s.wrap(kv.Value.Proc))
		}
		genRemainder(s, n.Remainder, len(n.Pairs) > 0)
		s.out.WriteString("}")
	}
}

func genProcs(s *state, procs []AnnProc) {
	for i, p := range procs {
		if i > 0 {
			s.out.WriteString(", ")
		}
		gen(s.wrap(p.Proc))
	}
}

func genRemainder(s *state, rem *Var, hasElems bool) {
	if rem == nil {
		return
	}
	if hasElems {
		s.out.WriteString(", ")
	}
	s.out.WriteString("..." + rem.String())
}

func genName(s *state, n AnnName) {
	switch name := n.Name.(type) {
	case *ProcVar:
		s.out.WriteString(name.Var.String())
	case *Quote:
		gen(s.wrap(name))
	}
}

func genNames(s *state, names Names) {
	for i, n := range names.Names {
		if i > 0 {
			s.out.WriteString(", ")
		}
		genName(s, n)
	}
	if names.Remainder != nil {
		if len(names.Names) > 0 {
			s.out.WriteString(", ")
		}
		s.out.WriteString("...@" + names.Remainder.String())
	}
}

func genBind(s *state, b Bind) {
	switch bind := b.(type) {
	case *LinearBind:
		genNames(s, bind.LHS)
		s.out.WriteString(" <- ")
		genSource(s, bind.RHS)
	case *RepeatedBind:
		genNames(s, bind.LHS)
		s.out.WriteString(" <= ")
		genName(s, bind.RHS)
	case *PeekBind:
		genNames(s, bind.LHS)
		s.out.WriteString(" <<- ")
		genName(s, bind.RHS)
	}
}

func genSource(s *state, src Source) {
	switch source := src.(type) {
	case *SimpleSource:
		genName(s, source.Name)
	case *ReceiveSendSource:
		genName(s, source.Name)
		s.out.WriteString("?!")
	case *SendReceiveSource:
		genName(s, source.Name)
		s.out.WriteString("!?(")
		genProcs(s, source.Inputs)
		s.out.WriteString(")")
	}
}

func genLetBinding(s *state, b LetBinding) {
	switch bind := b.(type) {
	case *SingleBinding:
		genName(s, bind.LHS)
		s.out.WriteString(" <- ")
		gen(s.wrap(bind.RHS.Proc))
	case *MultipleBinding:
		s.out.WriteString("..." + bind.LHS.String() + " <- ")
		genProcs(s, bind.RHS)
	}
}
