package token

import (
	"strconv"
)

// Token is the set of lexical tokens in Rholang.
type Token int

// String returns the string corresponding to the token.
func (t Token) String() string {
	if t == 0 {
		return "UNKNOWN"
	}
	if t < Token(len(token2string)) {
		return token2string[t]
	}
	return "token(" + strconv.Itoa(int(t)) + ")"
}

// Precedence returns the binding power of a binary process operator, or 0
// for tokens that do not combine two processes. Higher binds tighter.
func (t Token) Precedence() int {
	switch t {
	case Par:
		return 1
	case Disjunction:
		return 2
	case Conjunction:
		return 3
	case Or:
		return 4
	case And:
		return 5
	case Matches, Equal, NotEqual:
		return 6
	case Less, LessOrEqual, Greater, GreaterOrEqual:
		return 7
	case Concat, Diff, Plus, Minus:
		return 8
	case Interpolation, Multiply, Slash, Remainder:
		return 9
	}
	return 0
}

// LiteralKeyword returns the keyword token for literal, or 0 if the literal
// is an ordinary identifier.
func LiteralKeyword(literal string) (Token, bool) {
	if t, exists := keywordTable[literal]; exists {
		return t, true
	}
	return 0, false
}

// SimpleType reports whether the token names one of the built-in type
// literals (Bool, Int, String, Uri, ByteArray).
func SimpleType(t Token) bool {
	return t >= BoolType && t <= ByteArrayType
}

// BundleKind reports whether the token is one of the bundle constructors.
func BundleKind(t Token) bool {
	return t >= Bundle && t <= BundleEquiv
}
