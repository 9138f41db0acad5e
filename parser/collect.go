package parser

import (
	"sync"

	"github.com/dylon/rholang-go/cst"
	"github.com/dylon/rholang-go/token"
)

// The one structural query this package needs: every error node and every
// missing-token node, in document order.
const errQuerySrc = "(ERROR) @error-node (MISSING) @missing-node"

var (
	errQueryOnce sync.Once
	errQuery     *cst.Query
)

func errorQuery() *cst.Query {
	errQueryOnce.Do(func() {
		q, err := cst.NewQuery(errQuerySrc)
		if err != nil {
			panic("bug: error query failed to compile: " + err.Error())
		}
		errQuery = q
	})
	return errQuery
}

var identifierKind = cst.KindAnonBase + cst.KindID(token.Identifier)

// collectErrors appends one annotated error per malformed region under
// root. Error nodes directly nested inside another error node are folded
// into their parent's report.
func collectErrors(root *cst.Node, src string, into *[]AnnError) {
	for _, capture := range errorQuery().Captures(root) {
		n := capture.Node
		if capture.Name == "missing-node" {
			*into = append(*into, AnnError{Err: MissingToken(n.KindName()), Span: spanOf(n)})
			continue
		}
		if parent := n.Parent(); parent != nil && parent.IsError() {
			continue
		}
		*into = append(*into, AnnError{Err: classifyError(n, src), Span: spanOf(n)})
	}
}

// classifyError picks the most specific description for an error node: a
// single stray byte, a misplaced identifier, or the region's structure.
func classifyError(n *cst.Node, src string) ParsingError {
	text := n.Text(src)
	if len(text) == 1 {
		return Unexpected(text[0])
	}
	if n.ChildCount() == 1 && n.Child(0).Kind() == identifierKind {
		return UnexpectedVar(text)
	}
	return SyntaxError{Sexp: n.Sexp()}
}
