package cst

import "github.com/dylon/rholang-go/token"

// lexeme is one scanned token with its source extent.
type lexeme struct {
	tok        token.Token
	start      int
	end        int
	startPoint Point
	endPoint   Point
}

type scanner struct {
	src    string
	offset int
	point  Point
}

type byteHandler func(s *scanner) token.Token

var byteHandlers = [256]byteHandler{
	' ':  skip,
	'\t': skip,
	'\r': skip,
	'\n': skip,
	'"':  stringLiteral,
	'`':  uriLiteral,
	'_':  underscore,
	'(':  punct1(token.LeftParenthesis),
	')':  punct1(token.RightParenthesis),
	'[':  punct1(token.LeftBracket),
	']':  punct1(token.RightBracket),
	'{':  punct1(token.LeftBrace),
	'}':  punct1(token.RightBrace),
	',':  punct1(token.Comma),
	';':  punct1(token.Semicolon),
	':':  punct1(token.Colon),
	'*':  punct1(token.Multiply),
	'~':  punct1(token.Negation),
	'@':  punct1(token.Quote),
	'&':  punct1(token.ParAnd),
	'|':  punct1(token.Par),
	'+':  punct2('+', token.Concat, token.Plus),
	'%':  punct2('%', token.Interpolation, token.Remainder),
	'-':  minus,
	'.':  period,
	'/':  slash,
	'\\': backslash,
	'<':  less,
	'>':  punct2('=', token.GreaterOrEqual, token.Greater),
	'!':  bang,
	'=':  equals,
	'?':  question,
}

func init() {
	for b := 'a'; b <= 'z'; b++ {
		byteHandlers[b] = identifier
	}
	for b := 'A'; b <= 'Z'; b++ {
		byteHandlers[b] = identifier
	}
	for b := '0'; b <= '9'; b++ {
		byteHandlers[b] = number
	}
}

// next returns the next non-trivia lexeme, or an Eof lexeme at the end of
// the source.
func (s *scanner) next() lexeme {
	for {
		if s.offset >= len(s.src) {
			return lexeme{token.Eof, s.offset, s.offset, s.point, s.point}
		}
		start, startPoint := s.offset, s.point
		h := byteHandlers[s.src[s.offset]]
		if h == nil {
			s.adv()
			return lexeme{token.Illegal, start, s.offset, startPoint, s.point}
		}
		tok := h(s)
		if tok == token.Skip {
			continue
		}
		return lexeme{tok, start, s.offset, startPoint, s.point}
	}
}

// adv consumes one byte, tracking the row and column of the cursor.
func (s *scanner) adv() {
	if s.src[s.offset] == '\n' {
		s.point.Row++
		s.point.Column = 0
	} else {
		s.point.Column++
	}
	s.offset++
}

func (s *scanner) peekAt(i int) byte {
	if s.offset+i < len(s.src) {
		return s.src[s.offset+i]
	}
	return 0
}

func identChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_' || b == '\''
}

func skip(s *scanner) token.Token {
	s.adv()
	return token.Skip
}

func punct1(t token.Token) byteHandler {
	return func(s *scanner) token.Token {
		s.adv()
		return t
	}
}

// punct2 builds a handler for a one-byte token that doubles into another
// when followed by next.
func punct2(next byte, double, single token.Token) byteHandler {
	return func(s *scanner) token.Token {
		s.adv()
		if s.peekAt(0) == next {
			s.adv()
			return double
		}
		return single
	}
}

func identifier(s *scanner) token.Token {
	start := s.offset
	for s.offset < len(s.src) && identChar(s.src[s.offset]) {
		s.adv()
	}
	word := s.src[start:s.offset]
	t, ok := token.LiteralKeyword(word)
	if !ok {
		return token.Identifier
	}
	if t == token.Bundle {
		switch s.peekAt(0) {
		case '+':
			s.adv()
			return token.BundleWrite
		case '-':
			s.adv()
			return token.BundleRead
		}
	}
	return t
}

func number(s *scanner) token.Token {
	for s.offset < len(s.src) && s.src[s.offset] >= '0' && s.src[s.offset] <= '9' {
		s.adv()
	}
	return token.Number
}

func underscore(s *scanner) token.Token {
	if identChar(s.peekAt(1)) {
		return identifier(s)
	}
	s.adv()
	return token.Wildcard
}

// stringLiteral scans a double-quoted literal. Escape sequences are skipped
// but not interpreted; the token text keeps its delimiters. A newline or the
// end of input before the closing quote yields Illegal.
func stringLiteral(s *scanner) token.Token {
	s.adv()
	for s.offset < len(s.src) {
		switch s.src[s.offset] {
		case '\\':
			s.adv()
			if s.offset < len(s.src) {
				s.adv()
			}
		case '"':
			s.adv()
			return token.String
		case '\n':
			return token.Illegal
		default:
			s.adv()
		}
	}
	return token.Illegal
}

// uriLiteral scans a backtick-delimited literal. No escapes.
func uriLiteral(s *scanner) token.Token {
	s.adv()
	for s.offset < len(s.src) {
		switch s.src[s.offset] {
		case '`':
			s.adv()
			return token.Uri
		case '\n':
			return token.Illegal
		default:
			s.adv()
		}
	}
	return token.Illegal
}

func minus(s *scanner) token.Token {
	s.adv()
	if s.peekAt(0) == '-' {
		s.adv()
		return token.Diff
	}
	return token.Minus
}

func period(s *scanner) token.Token {
	if s.peekAt(1) == '.' && s.peekAt(2) == '.' {
		s.adv()
		s.adv()
		s.adv()
		return token.Ellipsis
	}
	s.adv()
	return token.Period
}

func slash(s *scanner) token.Token {
	switch s.peekAt(1) {
	case '/':
		for s.offset < len(s.src) && s.src[s.offset] != '\n' {
			s.adv()
		}
		return token.Skip
	case '*':
		s.adv()
		s.adv()
		for s.offset < len(s.src) {
			if s.src[s.offset] == '*' && s.peekAt(1) == '/' {
				s.adv()
				s.adv()
				return token.Skip
			}
			s.adv()
		}
		return token.Skip
	case '\\':
		s.adv()
		s.adv()
		return token.Conjunction
	}
	s.adv()
	return token.Slash
}

func backslash(s *scanner) token.Token {
	if s.peekAt(1) == '/' {
		s.adv()
		s.adv()
		return token.Disjunction
	}
	s.adv()
	return token.Illegal
}

func less(s *scanner) token.Token {
	s.adv()
	switch s.peekAt(0) {
	case '-':
		s.adv()
		return token.Bind
	case '=':
		s.adv()
		return token.LessOrEqual
	case '<':
		if s.peekAt(1) == '-' {
			s.adv()
			s.adv()
			return token.PeekBind
		}
	}
	return token.Less
}

func bang(s *scanner) token.Token {
	s.adv()
	switch s.peekAt(0) {
	case '!':
		s.adv()
		return token.SendMultiple
	case '=':
		s.adv()
		return token.NotEqual
	case '?':
		s.adv()
		return token.SendReceive
	}
	return token.Send
}

func equals(s *scanner) token.Token {
	s.adv()
	switch s.peekAt(0) {
	case '=':
		s.adv()
		return token.Equal
	case '>':
		s.adv()
		return token.Arrow
	case '*':
		s.adv()
		return token.AssignStar
	}
	return token.Assign
}

func question(s *scanner) token.Token {
	s.adv()
	if s.peekAt(0) == '!' {
		s.adv()
		return token.ReceiveSend
	}
	return token.Illegal
}
