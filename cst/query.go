package cst

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Query is a compiled structural pattern over node kinds. Patterns are
// s-expression pairs of the form "(kind) @capture"; the special kinds ERROR
// and MISSING match error and missing nodes. A compiled query is immutable
// and safe for concurrent use.
type Query struct {
	patterns []queryPattern
}

type queryPattern struct {
	capture string
	missing bool
	kind    KindID
}

// Capture pairs a matched node with the capture name that bound it.
type Capture struct {
	Name string
	Node *Node
}

// NewQuery compiles a pattern source.
func NewQuery(src string) (*Query, error) {
	fields := strings.Fields(src)
	if len(fields) == 0 {
		return nil, fmt.Errorf("cst: empty query")
	}
	var q Query
	for i := 0; i < len(fields); i += 2 {
		pat := fields[i]
		if !strings.HasPrefix(pat, "(") || !strings.HasSuffix(pat, ")") {
			return nil, fmt.Errorf("cst: malformed query pattern %q", pat)
		}
		if i+1 >= len(fields) || !strings.HasPrefix(fields[i+1], "@") {
			return nil, fmt.Errorf("cst: pattern %q lacks a capture name", pat)
		}
		p := queryPattern{capture: strings.TrimPrefix(fields[i+1], "@")}
		switch name := pat[1 : len(pat)-1]; name {
		case "MISSING":
			p.missing = true
		case "ERROR":
			p.kind = KindError
		default:
			k, ok := kindByName(name)
			if !ok {
				return nil, fmt.Errorf("cst: unknown node kind %q", name)
			}
			p.kind = k
		}
		q.patterns = append(q.patterns, p)
	}
	return &q, nil
}

// Captures walks the subtree in document order and returns every node a
// pattern matches.
func (q *Query) Captures(root *Node) []Capture {
	var out []Capture
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, p := range q.patterns {
			if p.match(n) {
				out = append(out, Capture{Name: p.capture, Node: n})
				break
			}
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(root)
	return out
}

func (p queryPattern) match(n *Node) bool {
	if p.missing {
		return n.missing
	}
	return n.kind == p.kind && !n.missing
}

func kindByName(name string) (KindID, bool) {
	i := slices.Index(kindNames[:], name)
	if i < 0 {
		return KindNone, false
	}
	return KindID(i), true
}
