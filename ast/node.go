package ast

// Position is a 1-based line and column in the source text.
type Position struct {
	Line   int
	Column int
}

// Before reports whether p comes strictly before other in the source.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// Span is the source region a node was built from, from Start up to End.
type Span struct {
	Start Position
	End   Position
}

type (
	// Proc is implemented by every process node.
	Proc interface {
		_proc()
	}

	// AnnProc is a process annotated with its source span.
	AnnProc struct {
		Proc Proc
		Span Span
	}

	// Name is a value usable in channel position: a process variable or a
	// quoted process.
	Name interface {
		_name()
	}

	// AnnName is a name annotated with its source span.
	AnnName struct {
		Name Name
		Span Span
	}
)
