package ast

type (
	// Nil is the inert process.
	Nil struct{}

	// Bad marks a subtree that could not be parsed. It stands in for the
	// malformed region so that the rest of the tree can still be built.
	Bad struct{}

	BoolLiteral struct {
		Value bool
	}

	LongLiteral struct {
		Value int64
	}

	// StringLiteral holds the body of a double-quoted literal. Escape
	// sequences are kept verbatim.
	StringLiteral struct {
		Value string
	}

	UriLiteral struct {
		Value Uri
	}

	SimpleTypeLiteral struct {
		Type SimpleType
	}

	// ProcVar is a variable (or wildcard) in process position. It doubles
	// as the variable form of Name.
	ProcVar struct {
		Var Var
	}

	// VarRef is a bound-variable reference pattern, =x or =*x.
	VarRef struct {
		Kind VarRefKind
		Var  Id
	}

	Par struct {
		Left  AnnProc
		Right AnnProc
	}

	IfThenElse struct {
		Condition AnnProc
		IfTrue    AnnProc
		IfFalse   *AnnProc
	}

	Send struct {
		Channel  AnnName
		SendType SendType
		Inputs   []AnnProc
	}

	// SendSync is the synchronous send N!?(inputs) followed by either "."
	// or "; P".
	SendSync struct {
		Channel  AnnName
		Messages []AnnProc
		Cont     SyncSendCont
	}

	ForComprehension struct {
		Receipts []Receipt
		Proc     AnnProc
	}

	Match struct {
		Expression AnnProc
		Cases      []Case
	}

	New struct {
		Decls []NameDecl
		Proc  AnnProc
	}

	Contract struct {
		Name    AnnName
		Formals Names
		Body    AnnProc
	}

	Let struct {
		Bindings   []LetBinding
		Body       AnnProc
		Concurrent bool
	}

	Bundle struct {
		BundleType BundleType
		Proc       AnnProc
	}

	// Eval dereferences a name back into a process, *N.
	Eval struct {
		Name AnnName
	}

	// Quote lifts a process into a name, @P. It also occurs in process
	// position inside patterns. The quoted process carries no span of its
	// own; the enclosing annotation covers it.
	Quote struct {
		Proc Proc
	}

	Method struct {
		Receiver AnnProc
		Name     Id
		Args     []AnnProc
	}

	UnaryExp struct {
		Op  UnaryExpOp
		Arg Proc
	}

	BinaryExp struct {
		Op    BinaryExpOp
		Left  AnnProc
		Right AnnProc
	}

	// Collection is implemented by the four collection processes.
	Collection interface {
		Proc
		_collection()
	}

	List struct {
		Elements  []AnnProc
		Remainder *Var
	}

	Tuple struct {
		Elements []AnnProc
	}

	Set struct {
		Elements  []AnnProc
		Remainder *Var
	}

	Map struct {
		Pairs     []KeyValuePair
		Remainder *Var
	}

	KeyValuePair struct {
		Key   AnnProc
		Value AnnProc
	}
)

func (*Nil) _proc()               {}
func (*Bad) _proc()               {}
func (*BoolLiteral) _proc()       {}
func (*LongLiteral) _proc()       {}
func (*StringLiteral) _proc()     {}
func (*UriLiteral) _proc()        {}
func (*SimpleTypeLiteral) _proc() {}
func (*ProcVar) _proc()           {}
func (*VarRef) _proc()            {}
func (*Par) _proc()               {}
func (*IfThenElse) _proc()        {}
func (*Send) _proc()              {}
func (*SendSync) _proc()          {}
func (*ForComprehension) _proc()  {}
func (*Match) _proc()             {}
func (*New) _proc()               {}
func (*Contract) _proc()          {}
func (*Let) _proc()               {}
func (*Bundle) _proc()            {}
func (*Eval) _proc()              {}
func (*Quote) _proc()             {}
func (*Method) _proc()            {}
func (*UnaryExp) _proc()          {}
func (*BinaryExp) _proc()         {}
func (*List) _proc()              {}
func (*Tuple) _proc()             {}
func (*Set) _proc()               {}
func (*Map) _proc()               {}

func (*List) _collection()  {}
func (*Tuple) _collection() {}
func (*Set) _collection()   {}
func (*Map) _collection()   {}

func (*ProcVar) _name() {}
func (*Quote) _name()   {}
