package ast

type (
	// Receipt is one semicolon-separated group of binds in a for
	// comprehension.
	Receipt struct {
		Binds []Bind
	}

	// Bind is a single channel binding inside a receipt.
	Bind interface {
		_bind()
	}

	// LinearBind consumes one message: names <- source.
	LinearBind struct {
		LHS Names
		RHS Source
	}

	// RepeatedBind consumes persistently: names <= channel.
	RepeatedBind struct {
		LHS Names
		RHS AnnName
	}

	// PeekBind reads without consuming: names <<- channel.
	PeekBind struct {
		LHS Names
		RHS AnnName
	}

	// Source is the right-hand side of a linear bind.
	Source interface {
		_source()
	}

	SimpleSource struct {
		Name AnnName
	}

	// ReceiveSendSource is the N?! form.
	ReceiveSendSource struct {
		Name AnnName
	}

	// SendReceiveSource is the N!?(inputs) form.
	SendReceiveSource struct {
		Name   AnnName
		Inputs []AnnProc
	}

	// Case is one pattern arm of a match.
	Case struct {
		Pattern AnnProc
		Proc    AnnProc
	}

	// LetBinding is one declaration of a let.
	LetBinding interface {
		_letBinding()
	}

	// SingleBinding binds one name to one process.
	SingleBinding struct {
		LHS AnnName
		RHS AnnProc
	}

	// MultipleBinding binds a remainder var to the processes left over
	// after the named bindings.
	MultipleBinding struct {
		LHS Var
		RHS []AnnProc
	}

	// SyncSendCont is the continuation of a synchronous send. A nil Proc
	// is the empty continuation ".".
	SyncSendCont struct {
		Proc *AnnProc
	}
)

func (*LinearBind) _bind()   {}
func (*RepeatedBind) _bind() {}
func (*PeekBind) _bind()     {}

func (*SimpleSource) _source()      {}
func (*ReceiveSendSource) _source() {}
func (*SendReceiveSource) _source() {}

func (*SingleBinding) _letBinding()   {}
func (*MultipleBinding) _letBinding() {}
