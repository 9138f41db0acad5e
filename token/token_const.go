package token

const (
	Undetermined Token = iota

	Skip

	Illegal
	Eof
	Comment

	String
	Number
	Uri

	Plus           // +
	Minus          // -
	Multiply       // *
	Slash          // /
	Remainder      // %
	Interpolation  // %%
	Concat         // ++
	Diff           // --
	Equal          // ==
	NotEqual       // !=
	Less           // <
	LessOrEqual    // <=
	Greater        // >
	GreaterOrEqual // >=
	Conjunction    // /\
	Disjunction    // \/
	Negation       // ~

	Par          // |
	ParAnd       // &
	Send         // !
	SendMultiple // !!
	SendReceive  // !?
	ReceiveSend  // ?!
	Bind         // <-
	PeekBind     // <<-
	Arrow        // =>
	Assign       // =
	AssignStar   // =*
	Quote        // @
	Ellipsis     // ...

	LeftParenthesis // (
	LeftBracket     // [
	LeftBrace       // {
	Comma           // ,
	Period          // .

	RightParenthesis // )
	RightBracket     // ]
	RightBrace       // }
	Semicolon        // ;
	Colon            // :

	Wildcard // _

	Identifier

	Boolean
	NilKeyword

	New
	In
	For
	Contract
	If
	Else
	Match
	Let
	Not
	And
	Or
	Matches
	SetKeyword

	Bundle      // bundle
	BundleWrite // bundle+
	BundleRead  // bundle-
	BundleEquiv // bundle0

	BoolType
	IntType
	StringType
	UriType
	ByteArrayType
)

var token2string = [...]string{
	Illegal:          "Illegal",
	Eof:              "Eof",
	Comment:          "Comment",
	String:           "String",
	Number:           "Number",
	Uri:              "Uri",
	Plus:             "+",
	Minus:            "-",
	Multiply:         "*",
	Slash:            "/",
	Remainder:        "%",
	Interpolation:    "%%",
	Concat:           "++",
	Diff:             "--",
	Equal:            "==",
	NotEqual:         "!=",
	Less:             "<",
	LessOrEqual:      "<=",
	Greater:          ">",
	GreaterOrEqual:   ">=",
	Conjunction:      "/\\",
	Disjunction:      "\\/",
	Negation:         "~",
	Par:              "|",
	ParAnd:           "&",
	Send:             "!",
	SendMultiple:     "!!",
	SendReceive:      "!?",
	ReceiveSend:      "?!",
	Bind:             "<-",
	PeekBind:         "<<-",
	Arrow:            "=>",
	Assign:           "=",
	AssignStar:       "=*",
	Quote:            "@",
	Ellipsis:         "...",
	LeftParenthesis:  "(",
	LeftBracket:      "[",
	LeftBrace:        "{",
	Comma:            ",",
	Period:           ".",
	RightParenthesis: ")",
	RightBracket:     "]",
	RightBrace:       "}",
	Semicolon:        ";",
	Colon:            ":",
	Wildcard:         "_",
	Identifier:       "Identifier",
	Boolean:          "Boolean",
	NilKeyword:       "Nil",
	New:              "new",
	In:               "in",
	For:              "for",
	Contract:         "contract",
	If:               "if",
	Else:             "else",
	Match:            "match",
	Let:              "let",
	Not:              "not",
	And:              "and",
	Or:               "or",
	Matches:          "matches",
	SetKeyword:       "Set",
	Bundle:           "bundle",
	BundleWrite:      "bundle+",
	BundleRead:       "bundle-",
	BundleEquiv:      "bundle0",
	BoolType:         "Bool",
	IntType:          "Int",
	StringType:       "String",
	UriType:          "Uri",
	ByteArrayType:    "ByteArray",
}

var keywordTable = map[string]Token{
	"Nil":       NilKeyword,
	"true":      Boolean,
	"false":     Boolean,
	"new":       New,
	"in":        In,
	"for":       For,
	"contract":  Contract,
	"if":        If,
	"else":      Else,
	"match":     Match,
	"let":       Let,
	"not":       Not,
	"and":       And,
	"or":        Or,
	"matches":   Matches,
	"Set":       SetKeyword,
	"bundle":    Bundle,
	"bundle0":   BundleEquiv,
	"Bool":      BoolType,
	"Int":       IntType,
	"String":    StringType,
	"Uri":       UriType,
	"ByteArray": ByteArrayType,
}
