package cst

import "github.com/dylon/rholang-go/token"

// KindID identifies a node kind. Named grammar rules occupy the low range,
// anonymous token kinds follow from KindAnonBase, one per lexical token.
type KindID uint16

const (
	KindNone KindID = iota

	KindSourceFile
	KindBlock

	KindNil
	KindUnit
	KindWildcard
	KindVar
	KindBoolLiteral
	KindLongLiteral
	KindStringLiteral
	KindUriLiteral
	KindSimpleType

	KindPar
	KindOr
	KindAnd
	KindMatches
	KindEq
	KindNeq
	KindLt
	KindLte
	KindGt
	KindGte
	KindConcat
	KindDiff
	KindAdd
	KindSub
	KindInterpolation
	KindMult
	KindDiv
	KindMod
	KindDisjunction
	KindConjunction

	KindNot
	KindNeg
	KindNegation

	KindQuote
	KindEval
	KindMethod
	KindArgs

	KindCollection
	KindList
	KindSet
	KindTuple
	KindMap
	KindKeyValuePair

	KindSend
	KindSendSingle
	KindSendMultiple
	KindInputs
	KindSendSync
	KindSyncSendCont
	KindEmptyCont
	KindNonEmptyCont

	KindNew
	KindDecls
	KindNameDecl

	KindContract
	KindIfElse

	KindInput
	KindReceipts
	KindReceipt
	KindLinearBind
	KindRepeatedBind
	KindPeekBind
	KindSimpleSource
	KindReceiveSendSource
	KindSendReceiveSource
	KindNames

	KindMatch
	KindCases
	KindCase

	KindLet
	KindLinearDecls
	KindConcDecls
	KindDecl
	KindProcs

	KindBundle
	KindBundleWrite
	KindBundleRead
	KindBundleEquiv
	KindBundleReadWrite

	KindVarRef
	KindVarRefKind

	KindError

	// KindAnonBase is the first anonymous kind; anonymous kind ids are
	// KindAnonBase plus the lexical token value.
	KindAnonBase
)

var kindNames = [...]string{
	KindNone:              "none",
	KindSourceFile:        "source_file",
	KindBlock:             "block",
	KindNil:               "nil",
	KindUnit:              "unit",
	KindWildcard:          "wildcard",
	KindVar:               "var",
	KindBoolLiteral:       "bool_literal",
	KindLongLiteral:       "long_literal",
	KindStringLiteral:     "string_literal",
	KindUriLiteral:        "uri_literal",
	KindSimpleType:        "simple_type",
	KindPar:               "par",
	KindOr:                "or",
	KindAnd:               "and",
	KindMatches:           "matches",
	KindEq:                "eq",
	KindNeq:               "neq",
	KindLt:                "lt",
	KindLte:               "lte",
	KindGt:                "gt",
	KindGte:               "gte",
	KindConcat:            "concat",
	KindDiff:              "diff",
	KindAdd:               "add",
	KindSub:               "sub",
	KindInterpolation:     "interpolation",
	KindMult:              "mult",
	KindDiv:               "div",
	KindMod:               "mod",
	KindDisjunction:       "disjunction",
	KindConjunction:       "conjunction",
	KindNot:               "not",
	KindNeg:               "neg",
	KindNegation:          "negation",
	KindQuote:             "quote",
	KindEval:              "eval",
	KindMethod:            "method",
	KindArgs:              "args",
	KindCollection:        "collection",
	KindList:              "list",
	KindSet:               "set",
	KindTuple:             "tuple",
	KindMap:               "map",
	KindKeyValuePair:      "key_value_pair",
	KindSend:              "send",
	KindSendSingle:        "send_single",
	KindSendMultiple:      "send_multiple",
	KindInputs:            "inputs",
	KindSendSync:          "send_sync",
	KindSyncSendCont:      "sync_send_cont",
	KindEmptyCont:         "empty_cont",
	KindNonEmptyCont:      "non_empty_cont",
	KindNew:               "new",
	KindDecls:             "decls",
	KindNameDecl:          "name_decl",
	KindContract:          "contract",
	KindIfElse:            "ifElse",
	KindInput:             "input",
	KindReceipts:          "receipts",
	KindReceipt:           "receipt",
	KindLinearBind:        "linear_bind",
	KindRepeatedBind:      "repeated_bind",
	KindPeekBind:          "peek_bind",
	KindSimpleSource:      "simple_source",
	KindReceiveSendSource: "receive_send_source",
	KindSendReceiveSource: "send_receive_source",
	KindNames:             "names",
	KindMatch:             "match",
	KindCases:             "cases",
	KindCase:              "case",
	KindLet:               "let",
	KindLinearDecls:       "linear_decls",
	KindConcDecls:         "conc_decls",
	KindDecl:              "decl",
	KindProcs:             "procs",
	KindBundle:            "bundle",
	KindBundleWrite:       "bundle_write",
	KindBundleRead:        "bundle_read",
	KindBundleEquiv:       "bundle_equiv",
	KindBundleReadWrite:   "bundle_read_write",
	KindVarRef:            "var_ref",
	KindVarRefKind:        "var_ref_kind",
	KindError:             "ERROR",
}

// Name returns the kind's grammar name. Anonymous kinds are named by their
// token text.
func (k KindID) Name() string {
	if k < KindAnonBase {
		return kindNames[k]
	}
	return token.Token(k - KindAnonBase).String()
}

// Named reports whether the kind is a grammar rule rather than a bare token.
func (k KindID) Named() bool {
	return k > KindNone && k < KindAnonBase
}

// kindForToken returns the anonymous kind for a lexical token.
func kindForToken(t token.Token) KindID {
	return KindAnonBase + KindID(t)
}

// kindForBinary maps an infix operator token to its node kind.
func kindForBinary(t token.Token) KindID {
	switch t {
	case token.Par:
		return KindPar
	case token.Or:
		return KindOr
	case token.And:
		return KindAnd
	case token.Matches:
		return KindMatches
	case token.Equal:
		return KindEq
	case token.NotEqual:
		return KindNeq
	case token.Less:
		return KindLt
	case token.LessOrEqual:
		return KindLte
	case token.Greater:
		return KindGt
	case token.GreaterOrEqual:
		return KindGte
	case token.Concat:
		return KindConcat
	case token.Diff:
		return KindDiff
	case token.Plus:
		return KindAdd
	case token.Minus:
		return KindSub
	case token.Interpolation:
		return KindInterpolation
	case token.Multiply:
		return KindMult
	case token.Slash:
		return KindDiv
	case token.Remainder:
		return KindMod
	case token.Disjunction:
		return KindDisjunction
	case token.Conjunction:
		return KindConjunction
	}
	return KindError
}
