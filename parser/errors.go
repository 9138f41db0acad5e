package parser

import (
	"fmt"
	"strings"

	"github.com/dylon/rholang-go/ast"
)

// ParsingError is a single diagnostic produced while turning source text
// into an AST. The set of kinds is closed.
type ParsingError interface {
	error
	_parsingError()
}

type (
	// SyntaxError is a structural error carrying a debug rendering of the
	// offending region.
	SyntaxError struct {
		Sexp string
	}

	// MissingToken reports a token the grammar required but the source
	// omitted, by its grammar name.
	MissingToken string

	// Unexpected reports a single stray character.
	Unexpected rune

	// UnexpectedVar reports a bare identifier in a position where no
	// variable can occur.
	UnexpectedVar string

	// NumberOutOfRange reports an integer literal outside the signed
	// 64-bit range.
	NumberOutOfRange struct{}

	// DuplicateNameDecl reports two declarations of the same name inside
	// one new binder. First is always the textually earlier occurrence.
	DuplicateNameDecl struct {
		First  ast.Position
		Second ast.Position
	}

	// MalformedLetDecl reports a let declaration whose sides cannot be
	// zipped.
	MalformedLetDecl struct {
		LHSArity int
		RHSArity int
	}
)

func (e SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.Sexp)
}

func (e MissingToken) Error() string {
	return fmt.Sprintf("missing %q", string(e))
}

func (e Unexpected) Error() string {
	return fmt.Sprintf("unexpected character %q", rune(e))
}

func (e UnexpectedVar) Error() string {
	return fmt.Sprintf("unexpected variable %q", string(e))
}

func (NumberOutOfRange) Error() string {
	return "number out of range"
}

func (e DuplicateNameDecl) Error() string {
	return fmt.Sprintf("duplicate name declaration (first at %d:%d, second at %d:%d)",
		e.First.Line, e.First.Column, e.Second.Line, e.Second.Column)
}

func (e MalformedLetDecl) Error() string {
	return fmt.Sprintf("malformed let declaration: %d names bound to %d processes",
		e.LHSArity, e.RHSArity)
}

func (SyntaxError) _parsingError()       {}
func (MissingToken) _parsingError()      {}
func (Unexpected) _parsingError()        {}
func (UnexpectedVar) _parsingError()     {}
func (NumberOutOfRange) _parsingError()  {}
func (DuplicateNameDecl) _parsingError() {}
func (MalformedLetDecl) _parsingError()  {}

// AnnError is a parsing error annotated with its source span.
type AnnError struct {
	Err  ParsingError
	Span ast.Span
}

func (e AnnError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Err.Error(), e.Span.Start.Line, e.Span.Start.Column)
}

// ParsingFailure is the batched outcome of parsing malformed source. The
// driver never stops on the first error; everything found in one pass is
// reported together. Errors is never empty. PartialTree holds whatever
// could still be built, for callers that want to show structure anyway.
type ParsingFailure struct {
	PartialTree *ast.AnnProc
	Errors      []AnnError
}

func (f *ParsingFailure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parsing failed with %d error", len(f.Errors))
	if len(f.Errors) != 1 {
		b.WriteByte('s')
	}
	for _, e := range f.Errors {
		b.WriteString("\n\t")
		b.WriteString(e.Error())
	}
	return b.String()
}

// Unwrap exposes the individual annotated errors to errors.Is and
// errors.As.
func (f *ParsingFailure) Unwrap() []error {
	errs := make([]error, len(f.Errors))
	for i := range f.Errors {
		errs[i] = f.Errors[i]
	}
	return errs
}
