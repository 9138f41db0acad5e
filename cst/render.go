package cst

import (
	"strconv"
	"strings"
)

// Sexp renders the named structure of the subtree as an s-expression, with
// field prefixes on tagged children. Error and missing nodes are included.
func (n *Node) Sexp() string {
	var b strings.Builder
	writeSexp(&b, n)
	return b.String()
}

func writeSexp(b *strings.Builder, n *Node) {
	if n.missing {
		b.WriteString("(MISSING \"")
		b.WriteString(n.KindName())
		b.WriteString("\")")
		return
	}
	b.WriteString("(")
	b.WriteString(n.KindName())
	for _, c := range n.children {
		if !c.IsNamed() && !c.missing {
			continue
		}
		b.WriteString(" ")
		if c.field != FieldNone {
			b.WriteString(c.field.Name())
			b.WriteString(": ")
		}
		writeSexp(b, c)
	}
	b.WriteString(")")
}

// PrettyTree renders the named subtree as an indented kind outline; leaves
// carry their source text.
func PrettyTree(n *Node, src string) string {
	var b strings.Builder
	writePretty(&b, n, src, 0)
	return b.String()
}

func writePretty(b *strings.Builder, n *Node, src string, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteString(n.KindName())
	b.WriteString(":\n")
	if n.NamedChildCount() == 0 {
		b.WriteString(indent)
		b.WriteString("  text: ")
		b.WriteString(strconv.Quote(n.Text(src)))
		b.WriteString("\n")
		return
	}
	for _, c := range n.children {
		if c.IsNamed() {
			writePretty(b, c, src, depth+1)
		}
	}
}
