package cst

import "github.com/dylon/rholang-go/token"

// Parse builds the concrete syntax tree for src. A tree is always returned;
// unparsable regions become error nodes and absent tokens become zero-width
// missing nodes.
func Parse(src string) *Tree {
	p := &parser{src: src}
	s := &scanner{src: src}
	for {
		l := s.next()
		p.lex = append(p.lex, l)
		if l.tok == token.Eof {
			break
		}
	}
	return &Tree{root: p.parseSourceFile(), src: src}
}

type parser struct {
	src string
	lex []lexeme
	pos int
}

func (p *parser) cur() lexeme {
	return p.lex[p.pos]
}

func (p *parser) tok() token.Token {
	return p.cur().tok
}

// advance consumes the current lexeme as an anonymous token leaf. At the end
// of input it returns a zero-width leaf without consuming.
func (p *parser) advance() *Node {
	l := p.cur()
	if l.tok != token.Eof {
		p.pos++
	}
	return &Node{kind: kindForToken(l.tok), r: rangeOf(l)}
}

// leaf consumes the current lexeme as a named node.
func (p *parser) leaf(kind KindID) *Node {
	n := p.advance()
	n.kind = kind
	return n
}

// expect consumes the expected token, or fabricates a zero-width missing
// node in its place.
func (p *parser) expect(t token.Token) *Node {
	if p.tok() == t {
		return p.advance()
	}
	return p.missing(t)
}

func (p *parser) missing(t token.Token) *Node {
	l := p.cur()
	return &Node{
		kind:     kindForToken(t),
		missing:  true,
		hasError: true,
		r:        Range{StartByte: l.start, EndByte: l.start, StartPoint: l.startPoint, EndPoint: l.startPoint},
	}
}

// errNode consumes one lexeme into an ERROR node.
func (p *parser) errNode() *Node {
	return node(KindError, p.advance())
}

func rangeOf(l lexeme) Range {
	return Range{StartByte: l.start, EndByte: l.end, StartPoint: l.startPoint, EndPoint: l.endPoint}
}

// node assembles a parent from its children, computing the range and the
// subtree error flag. Nil children are dropped.
func node(kind KindID, children ...*Node) *Node {
	n := &Node{kind: kind, hasError: kind == KindError}
	for _, c := range children {
		if c == nil {
			continue
		}
		c.parent = n
		n.children = append(n.children, c)
		n.hasError = n.hasError || c.hasError
	}
	if len(n.children) > 0 {
		first, last := n.children[0], n.children[len(n.children)-1]
		n.r = Range{
			StartByte:  first.r.StartByte,
			EndByte:    last.r.EndByte,
			StartPoint: first.r.StartPoint,
			EndPoint:   last.r.EndPoint,
		}
	}
	return n
}

func field(f FieldID, n *Node) *Node {
	if n != nil {
		n.field = f
	}
	return n
}

func nameish(n *Node) bool {
	switch n.kind {
	case KindVar, KindWildcard, KindQuote:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// Processes
// ---------------------------------------------------------------------------

func (p *parser) parseSourceFile() *Node {
	var children []*Node
	for p.tok() != token.Eof {
		start := p.pos
		children = append(children, p.parseProc(1))
		if p.pos == start {
			children = append(children, p.errNode())
		}
	}
	return node(KindSourceFile, children...)
}

// parseProc parses a process at the given minimum operator precedence.
// minPrec 1 admits par; construct bodies use 2 so that a trailing par
// attaches to the whole construct.
func (p *parser) parseProc(minPrec int) *Node {
	left := p.parseUnary()
	for {
		prec := p.tok().Precedence()
		if prec == 0 || prec < minPrec {
			return left
		}
		kind := kindForBinary(p.tok())
		op := p.advance()
		right := p.parseProc(prec + 1)
		left = node(kind, left, op, right)
	}
}

func (p *parser) parseUnary() *Node {
	switch p.tok() {
	case token.Not:
		kw := p.advance()
		return node(KindNot, kw, p.parseUnary())
	case token.Minus:
		op := p.advance()
		return node(KindNeg, op, p.parseUnary())
	case token.Negation:
		op := p.advance()
		return node(KindNegation, op, p.parseProc(4))
	case token.Quote:
		at := p.advance()
		return p.parsePostfix(node(KindQuote, at, p.quoteOperand()))
	case token.Multiply:
		op := p.advance()
		return node(KindEval, op, p.parseName())
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *parser) quoteOperand() *Node {
	switch p.tok() {
	case token.Minus, token.Not, token.Negation, token.Quote, token.Multiply:
		return p.parseUnary()
	}
	return p.parsePrimary()
}

// parsePostfix applies method calls and, on names, send forms.
func (p *parser) parsePostfix(n *Node) *Node {
	for {
		switch p.tok() {
		case token.Period:
			dot := p.advance()
			var name *Node
			if p.tok() == token.Identifier {
				name = p.leaf(KindVar)
			} else {
				name = p.missing(token.Identifier)
			}
			args := p.parseProcWrapper(KindArgs)
			n = node(KindMethod, field(FieldReceiver, n), dot, field(FieldName, name), field(FieldArgs, args))
		case token.Send, token.SendMultiple:
			if !nameish(n) {
				return n
			}
			stKind := KindSendSingle
			if p.tok() == token.SendMultiple {
				stKind = KindSendMultiple
			}
			st := node(stKind, p.advance())
			inputs := p.parseProcWrapper(KindInputs)
			return node(KindSend, field(FieldChannel, n), field(FieldSendType, st), field(FieldInputs, inputs))
		case token.SendReceive:
			if !nameish(n) {
				return n
			}
			bang := p.advance()
			inputs := field(FieldInputs, p.parseProcWrapper(KindInputs))
			cont := field(FieldCont, p.parseSyncCont())
			return node(KindSendSync, field(FieldChannel, n), bang, inputs, cont)
		default:
			return n
		}
	}
}

// parseProcWrapper parses a parenthesized, comma-separated process list into
// a wrapper node of the given kind.
func (p *parser) parseProcWrapper(kind KindID) *Node {
	children := []*Node{p.expect(token.LeftParenthesis)}
	for p.tok() != token.RightParenthesis && p.tok() != token.Eof {
		children = append(children, p.parseProc(1))
		if p.tok() == token.Comma {
			children = append(children, p.advance())
			continue
		}
		if p.tok() != token.RightParenthesis && p.tok() != token.Eof {
			children = append(children, p.errNode())
		}
	}
	children = append(children, p.expect(token.RightParenthesis))
	return node(kind, children...)
}

func (p *parser) parseSyncCont() *Node {
	switch p.tok() {
	case token.Period:
		return node(KindSyncSendCont, node(KindEmptyCont, p.advance()))
	case token.Semicolon:
		semi := p.advance()
		return node(KindSyncSendCont, node(KindNonEmptyCont, semi, p.parseProc(2)))
	}
	return node(KindSyncSendCont, node(KindEmptyCont, p.missing(token.Period)))
}

// ---------------------------------------------------------------------------
// Primaries
// ---------------------------------------------------------------------------

func (p *parser) parsePrimary() *Node {
	switch p.tok() {
	case token.NilKeyword:
		return p.leaf(KindNil)
	case token.Boolean:
		return p.leaf(KindBoolLiteral)
	case token.Number:
		return p.leaf(KindLongLiteral)
	case token.String:
		return p.leaf(KindStringLiteral)
	case token.Uri:
		return p.leaf(KindUriLiteral)
	case token.BoolType, token.IntType, token.StringType, token.UriType, token.ByteArrayType:
		return p.leaf(KindSimpleType)
	case token.Identifier:
		return p.leaf(KindVar)
	case token.Wildcard:
		return p.leaf(KindWildcard)
	case token.Assign, token.AssignStar:
		return p.parseVarRef()
	case token.LeftParenthesis:
		return p.parseParenthesized()
	case token.LeftBracket:
		lb := p.advance()
		return node(KindCollection, p.parseListLike(KindList, token.RightBracket, []*Node{lb}))
	case token.SetKeyword:
		kw := p.advance()
		lp := p.expect(token.LeftParenthesis)
		return node(KindCollection, p.parseListLike(KindSet, token.RightParenthesis, []*Node{kw, lp}))
	case token.LeftBrace:
		return p.parseBraced()
	case token.New:
		return p.parseNew()
	case token.For:
		return p.parseFor()
	case token.Contract:
		return p.parseContract()
	case token.If:
		return p.parseIf()
	case token.Match:
		return p.parseMatch()
	case token.Let:
		return p.parseLet()
	case token.Bundle, token.BundleWrite, token.BundleRead, token.BundleEquiv:
		return p.parseBundle()
	}
	return p.errNode()
}

func (p *parser) parseVarRef() *Node {
	kind := node(KindVarRefKind, p.advance())
	var v *Node
	if p.tok() == token.Identifier {
		v = p.leaf(KindVar)
	} else {
		v = p.missing(token.Identifier)
	}
	return node(KindVarRef, kind, v)
}

// parseParenthesized handles unit, tuples, and transparent grouping.
func (p *parser) parseParenthesized() *Node {
	lp := p.advance()
	if p.tok() == token.RightParenthesis {
		return node(KindUnit, lp, p.advance())
	}
	first := p.parseProc(1)
	if p.tok() == token.Comma {
		children := []*Node{lp, first}
		for p.tok() == token.Comma {
			children = append(children, p.advance())
			if p.tok() == token.RightParenthesis {
				break
			}
			children = append(children, p.parseProc(1))
		}
		children = append(children, p.expect(token.RightParenthesis))
		return node(KindCollection, node(KindTuple, children...))
	}
	if p.tok() != token.RightParenthesis {
		return node(KindBlock, lp, first, p.missing(token.RightParenthesis))
	}
	p.advance()
	return first
}

// parseListLike parses the elements of a list or set, with an optional
// trailing remainder binder.
func (p *parser) parseListLike(kind KindID, closer token.Token, children []*Node) *Node {
	for p.tok() != closer && p.tok() != token.Eof {
		if p.tok() == token.Ellipsis {
			children = p.parseRemainder(children)
			break
		}
		children = append(children, p.parseProc(1))
		if p.tok() == token.Comma {
			children = append(children, p.advance())
			continue
		}
		if p.tok() != closer && p.tok() != token.Eof && p.tok() != token.Ellipsis {
			children = append(children, p.errNode())
		}
	}
	children = append(children, p.expect(closer))
	return node(kind, children...)
}

func (p *parser) parseRemainder(children []*Node) []*Node {
	children = append(children, p.advance())
	if p.tok() == token.Quote {
		children = append(children, p.advance())
	}
	return append(children, field(FieldRemainder, p.parseVarOrWildcard()))
}

func (p *parser) parseVarOrWildcard() *Node {
	switch p.tok() {
	case token.Identifier:
		return p.leaf(KindVar)
	case token.Wildcard:
		return p.leaf(KindWildcard)
	}
	return p.missing(token.Identifier)
}

// parseBraced disambiguates blocks from map literals.
func (p *parser) parseBraced() *Node {
	lb := p.advance()
	if p.tok() == token.RightBrace {
		return node(KindCollection, node(KindMap, lb, p.advance()))
	}
	if p.tok() == token.Ellipsis {
		children := p.parseRemainder([]*Node{lb})
		children = append(children, p.expect(token.RightBrace))
		return node(KindCollection, node(KindMap, children...))
	}
	first := p.parseProc(1)
	if p.tok() == token.Colon {
		return p.parseMap(lb, first)
	}
	rb := p.expect(token.RightBrace)
	return node(KindBlock, lb, first, rb)
}

func (p *parser) parseMap(lb, firstKey *Node) *Node {
	children := []*Node{lb, p.parsePair(firstKey)}
	for p.tok() != token.RightBrace && p.tok() != token.Eof {
		if p.tok() != token.Comma {
			children = append(children, p.errNode())
			continue
		}
		children = append(children, p.advance())
		if p.tok() == token.Ellipsis {
			children = p.parseRemainder(children)
			break
		}
		children = append(children, p.parsePair(p.parseProc(1)))
	}
	children = append(children, p.expect(token.RightBrace))
	return node(KindCollection, node(KindMap, children...))
}

// parsePair finishes a key_value_pair whose key has been parsed.
func (p *parser) parsePair(key *Node) *Node {
	colon := p.expect(token.Colon)
	value := p.parseProc(1)
	return node(KindKeyValuePair, field(FieldKey, key), colon, field(FieldValue, value))
}

// ---------------------------------------------------------------------------
// Names
// ---------------------------------------------------------------------------

// parseName parses a channel-position name: a variable, the wildcard, or a
// quoted process.
func (p *parser) parseName() *Node {
	switch p.tok() {
	case token.Identifier:
		return p.leaf(KindVar)
	case token.Wildcard:
		return p.leaf(KindWildcard)
	case token.Quote:
		at := p.advance()
		return node(KindQuote, at, p.quoteOperand())
	}
	return p.missing(token.Identifier)
}

// parseNames parses a comma-separated name list with an optional remainder
// binder under the cont field.
func (p *parser) parseNames() *Node {
	var children []*Node
	for {
		if p.tok() == token.Ellipsis {
			children = append(children, p.advance())
			if p.tok() == token.Quote {
				children = append(children, p.advance())
			}
			children = append(children, field(FieldCont, p.parseVarOrWildcard()))
			break
		}
		children = append(children, p.parseName())
		if p.tok() != token.Comma {
			break
		}
		children = append(children, p.advance())
	}
	return node(KindNames, children...)
}

// ---------------------------------------------------------------------------
// Constructs
// ---------------------------------------------------------------------------

func (p *parser) parseNew() *Node {
	kw := p.advance()
	decls := field(FieldDecls, p.parseDecls())
	in := p.expect(token.In)
	body := field(FieldProc, p.parseProc(2))
	return node(KindNew, kw, decls, in, body)
}

func (p *parser) parseDecls() *Node {
	children := []*Node{p.parseNameDecl()}
	for p.tok() == token.Comma {
		children = append(children, p.advance())
		children = append(children, p.parseNameDecl())
	}
	return node(KindDecls, children...)
}

func (p *parser) parseNameDecl() *Node {
	v := p.parseVarOrWildcard()
	if p.tok() != token.LeftParenthesis {
		return node(KindNameDecl, v)
	}
	lp := p.advance()
	var uri *Node
	if p.tok() == token.Uri {
		uri = p.leaf(KindUriLiteral)
	} else {
		uri = p.missing(token.Uri)
	}
	rp := p.expect(token.RightParenthesis)
	return node(KindNameDecl, v, lp, field(FieldUri, uri), rp)
}

func (p *parser) parseFor() *Node {
	kw := p.advance()
	lp := p.expect(token.LeftParenthesis)
	receipts := field(FieldReceipts, p.parseReceipts())
	rp := p.expect(token.RightParenthesis)
	body := field(FieldProc, p.parseBlockStrict())
	return node(KindInput, kw, lp, receipts, rp, body)
}

func (p *parser) parseReceipts() *Node {
	children := []*Node{p.parseReceipt()}
	for p.tok() == token.Semicolon {
		children = append(children, p.advance())
		children = append(children, p.parseReceipt())
	}
	return node(KindReceipts, children...)
}

func (p *parser) parseReceipt() *Node {
	children := []*Node{p.parseBind()}
	for p.tok() == token.ParAnd {
		children = append(children, p.advance())
		children = append(children, p.parseBind())
	}
	return node(KindReceipt, children...)
}

func (p *parser) parseBind() *Node {
	var names *Node
	switch p.tok() {
	case token.Identifier, token.Wildcard, token.Quote, token.Ellipsis:
		names = p.parseNames()
	}
	switch p.tok() {
	case token.Bind:
		arrow := p.advance()
		return node(KindLinearBind, names, arrow, p.parseSource())
	case token.LessOrEqual:
		arrow := p.advance()
		return node(KindRepeatedBind, names, arrow, p.parseName())
	case token.PeekBind:
		arrow := p.advance()
		return node(KindPeekBind, names, arrow, p.parseName())
	}
	return node(KindLinearBind, names, p.missing(token.Bind), p.parseSource())
}

func (p *parser) parseSource() *Node {
	name := p.parseName()
	switch p.tok() {
	case token.ReceiveSend:
		return node(KindReceiveSendSource, name, p.advance())
	case token.SendReceive:
		bang := p.advance()
		inputs := field(FieldInputs, p.parseProcWrapper(KindInputs))
		return node(KindSendReceiveSource, name, bang, inputs)
	}
	return node(KindSimpleSource, name)
}

func (p *parser) parseContract() *Node {
	kw := p.advance()
	name := field(FieldName, p.parseName())
	lp := p.expect(token.LeftParenthesis)
	var formals *Node
	if p.tok() != token.RightParenthesis && p.tok() != token.Eof {
		formals = field(FieldFormals, p.parseNames())
	}
	rp := p.expect(token.RightParenthesis)
	eq := p.expect(token.Assign)
	body := field(FieldProc, p.parseBlockStrict())
	return node(KindContract, kw, name, lp, formals, rp, eq, body)
}

func (p *parser) parseIf() *Node {
	kw := p.advance()
	lp := p.expect(token.LeftParenthesis)
	cond := field(FieldCondition, p.parseProc(1))
	rp := p.expect(token.RightParenthesis)
	cons := field(FieldConsequence, p.parseProc(2))
	if p.tok() != token.Else {
		return node(KindIfElse, kw, lp, cond, rp, cons)
	}
	els := p.advance()
	alt := field(FieldAlternative, p.parseProc(2))
	return node(KindIfElse, kw, lp, cond, rp, cons, els, alt)
}

func (p *parser) parseMatch() *Node {
	kw := p.advance()
	expr := field(FieldExpression, p.parseProc(2))
	cases := field(FieldCases, p.parseCases())
	return node(KindMatch, kw, expr, cases)
}

func (p *parser) parseCases() *Node {
	children := []*Node{p.expect(token.LeftBrace)}
	for p.tok() != token.RightBrace && p.tok() != token.Eof {
		start := p.pos
		children = append(children, p.parseCase())
		if p.pos == start {
			children = append(children, p.errNode())
		}
	}
	children = append(children, p.expect(token.RightBrace))
	return node(KindCases, children...)
}

func (p *parser) parseCase() *Node {
	pat := field(FieldPattern, p.parseProc(1))
	arrow := p.expect(token.Arrow)
	body := field(FieldProc, p.parseProc(2))
	return node(KindCase, pat, arrow, body)
}

func (p *parser) parseLet() *Node {
	kw := p.advance()
	children := []*Node{p.parseDecl()}
	declsKind := KindLinearDecls
	if p.tok() == token.ParAnd {
		declsKind = KindConcDecls
	}
	for p.tok() == token.Semicolon || p.tok() == token.ParAnd {
		children = append(children, p.advance())
		children = append(children, p.parseDecl())
	}
	decls := field(FieldDecls, node(declsKind, children...))
	in := p.expect(token.In)
	body := field(FieldProc, p.parseProc(2))
	return node(KindLet, kw, decls, in, body)
}

func (p *parser) parseDecl() *Node {
	lhs := p.parseNames()
	arrow := p.expect(token.Bind)
	rhs := p.parseDeclRhs()
	return node(KindDecl, lhs, arrow, rhs)
}

func (p *parser) parseDeclRhs() *Node {
	children := []*Node{p.parseProc(2)}
	for p.tok() == token.Comma {
		children = append(children, p.advance())
		children = append(children, p.parseProc(2))
	}
	return node(KindProcs, children...)
}

func (p *parser) parseBundle() *Node {
	kind := KindBundleReadWrite
	switch p.tok() {
	case token.BundleWrite:
		kind = KindBundleWrite
	case token.BundleRead:
		kind = KindBundleRead
	case token.BundleEquiv:
		kind = KindBundleEquiv
	}
	bt := field(FieldBundleType, node(kind, p.advance()))
	body := field(FieldProc, p.parseBlockStrict())
	return node(KindBundle, bt, body)
}

// parseBlockStrict parses a braced process, fabricating the braces when
// absent so that construct bodies always recover.
func (p *parser) parseBlockStrict() *Node {
	lb := p.expect(token.LeftBrace)
	proc := p.parseProc(1)
	rb := p.expect(token.RightBrace)
	return node(KindBlock, lb, proc, rb)
}
