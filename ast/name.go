package ast

import "strings"

type (
	// Id is an identifier with the position of its first character.
	Id struct {
		Name string
		Pos  Position
	}

	// Var is a binder: a named identifier, or the wildcard when Id is nil.
	Var struct {
		Id *Id
	}

	// Names is the left-hand side of a bind or a contract's formals: zero
	// or more names plus an optional remainder binder.
	Names struct {
		Names     []AnnName
		Remainder *Var
	}

	// NameDecl is one declaration of a new binding, optionally backed by a
	// URI.
	NameDecl struct {
		Id  Id
		Uri *Uri
	}
)

// Uri is the body of a backtick-delimited URI literal, without the
// delimiters.
type Uri string

// UriFromLiteral strips the backtick delimiters from a raw literal.
func UriFromLiteral(lit string) Uri {
	return Uri(strings.Trim(lit, "`"))
}

func (u Uri) String() string {
	return "`" + string(u) + "`"
}

// Wildcard reports whether the var is the anonymous binder.
func (v Var) Wildcard() bool {
	return v.Id == nil
}

func (v Var) String() string {
	if v.Id == nil {
		return "_"
	}
	return v.Id.Name
}

func (id Id) String() string {
	return id.Name
}

// Arity returns the number of names bound, counting the remainder.
func (n Names) Arity() int {
	if n.Remainder != nil {
		return len(n.Names) + 1
	}
	return len(n.Names)
}

func (d NameDecl) String() string {
	if d.Uri != nil {
		return d.Id.Name + "(" + d.Uri.String() + ")"
	}
	return d.Id.Name
}
