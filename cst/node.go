package cst

// Point is a 0-based row and byte column in the source.
type Point struct {
	Row    int
	Column int
}

// Range is the source extent of a node, in byte offsets and points.
type Range struct {
	StartByte  int
	EndByte    int
	StartPoint Point
	EndPoint   Point
}

// Node is one vertex of the concrete syntax tree. Nodes are immutable after
// parsing.
type Node struct {
	kind     KindID
	field    FieldID
	missing  bool
	hasError bool
	r        Range
	parent   *Node
	children []*Node
}

// Tree is the result of parsing one source text. A tree is always produced;
// malformed regions surface as error and missing nodes.
type Tree struct {
	root *Node
	src  string
}

func (t *Tree) Root() *Node {
	return t.root
}

func (t *Tree) Source() string {
	return t.src
}

func (n *Node) Kind() KindID {
	return n.kind
}

func (n *Node) KindName() string {
	return n.kind.Name()
}

// IsNamed reports whether the node is a grammar rule node. Error nodes are
// named; missing nodes are anonymous token stand-ins and are not, so child
// iteration skips them.
func (n *Node) IsNamed() bool {
	return n.kind.Named() && !n.missing
}

func (n *Node) IsError() bool {
	return n.kind == KindError
}

func (n *Node) IsMissing() bool {
	return n.missing
}

// HasError reports whether the node or any descendant is an error or missing
// node.
func (n *Node) HasError() bool {
	return n.hasError
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Field returns the grammar field this node fills in its parent, or
// FieldNone.
func (n *Node) Field() FieldID {
	return n.field
}

func (n *Node) Range() Range {
	return n.r
}

func (n *Node) ChildCount() int {
	return len(n.children)
}

func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

func (n *Node) NamedChildCount() int {
	count := 0
	for _, c := range n.children {
		if c.IsNamed() {
			count++
		}
	}
	return count
}

func (n *Node) NamedChild(i int) *Node {
	for _, c := range n.children {
		if c.IsNamed() {
			if i == 0 {
				return c
			}
			i--
		}
	}
	return nil
}

// ChildByField returns the first child tagged with the field, or nil.
func (n *Node) ChildByField(f FieldID) *Node {
	for _, c := range n.children {
		if c.field == f {
			return c
		}
	}
	return nil
}

// Text returns the byte-exact source slice the node covers.
func (n *Node) Text(src string) string {
	return src[n.r.StartByte:n.r.EndByte]
}
