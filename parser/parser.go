package parser

import (
	"github.com/dylon/rholang-go/ast"
	"github.com/dylon/rholang-go/cst"
)

// Parser turns Rholang source text into annotated abstract syntax trees.
// A Parser holds no per-call state and is safe for concurrent use.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse builds one annotated process per top-level process in code.
// Parsing is total: it never stops at the first problem, and every error
// found anywhere in the source is batched into a single *ParsingFailure.
// On failure the returned slice is nil. Empty input parses to zero
// processes.
func (p *Parser) Parse(code string) ([]ast.AnnProc, error) {
	procs, _, err := p.parse(code)
	return procs, err
}

// IsValid reports whether code parses cleanly. It agrees with Parse: any
// syntactic or semantic error makes the source invalid.
func (p *Parser) IsValid(code string) bool {
	_, _, err := p.parse(code)
	return err == nil
}

// TreeString renders the concrete syntax tree of valid code as an
// s-expression. Malformed code returns the *ParsingFailure instead.
func (p *Parser) TreeString(code string) (string, error) {
	_, tree, err := p.parse(code)
	if err != nil {
		return "", err
	}
	return "Parse tree: " + tree.Root().Sexp(), nil
}

// PrettyTree renders the concrete syntax tree of valid code as an
// indented kind tree with leaf text.
func (p *Parser) PrettyTree(code string) (string, error) {
	_, tree, err := p.parse(code)
	if err != nil {
		return "", err
	}
	return cst.PrettyTree(tree.Root(), code), nil
}

// parse drives every top-level process through a fresh driver sharing one
// allocator. Failures accumulate across processes; the last partial tree
// is kept so callers can still show structure for malformed source.
func (p *Parser) parse(code string) ([]ast.AnnProc, *cst.Tree, error) {
	tree := cst.Parse(code)
	root := tree.Root()
	alloc := newNodeAllocator()

	var procs []ast.AnnProc
	var errs []AnnError
	var partial *ast.AnnProc
	for i := 0; i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		d := driver{src: code, alloc: &alloc}
		d.run(child)
		if child.HasError() {
			collectErrors(child, code, &d.errs)
		}
		if len(d.errs) > 0 {
			errs = append(errs, d.errs...)
			if top, ok := d.procs.toProcPartial(); ok {
				partial = alloc.Box(top)
			}
			continue
		}
		procs = append(procs, d.procs.toProc())
	}
	if len(errs) > 0 {
		return nil, tree, &ParsingFailure{PartialTree: partial, Errors: errs}
	}
	return procs, tree, nil
}
