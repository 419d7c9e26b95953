package parser

import "fmt"

type tokenType int

const (
	tokWord tokenType = iota
	tokLParen
	tokRParen
	tokComma
	tokEquals
	tokEOF
)

func (t tokenType) String() string {
	switch t {
	case tokWord:
		return "word"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokEquals:
		return "'='"
	case tokEOF:
		return "end of statement"
	default:
		return "unknown"
	}
}

// token is a lexeme with its byte span in the source, so callers can slice raw text.
type token struct {
	typ  tokenType
	text string
	pos  int
	end  int
}

func (t token) String() string {
	if t.typ == tokWord {
		return fmt.Sprintf("%q", t.text)
	}
	return t.typ.String()
}

type lexer struct {
	src string
	pos int
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

func (l *lexer) next() token {
	l.skipWhitespace()
	if l.pos >= len(l.src) {
		return token{typ: tokEOF, pos: len(l.src), end: len(l.src)}
	}

	start := l.pos
	ch := l.src[l.pos]
	switch ch {
	case '(':
		l.pos++
		return token{typ: tokLParen, text: "(", pos: start, end: l.pos}
	case ')':
		l.pos++
		return token{typ: tokRParen, text: ")", pos: start, end: l.pos}
	case ',':
		l.pos++
		return token{typ: tokComma, text: ",", pos: start, end: l.pos}
	case '=':
		l.pos++
		return token{typ: tokEquals, text: "=", pos: start, end: l.pos}
	}

	for l.pos < len(l.src) && isWordByte(l.src[l.pos]) {
		l.pos++
	}
	return token{typ: tokWord, text: l.src[start:l.pos], pos: start, end: l.pos}
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
}

// tokenize splits src into tokens, always terminated by a tokEOF.
func tokenize(src string) []token {
	l := newLexer(src)
	var toks []token
	for {
		t := l.next()
		toks = append(toks, t)
		if t.typ == tokEOF {
			return toks
		}
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f'
}

func isWordByte(ch byte) bool {
	if isSpace(ch) {
		return false
	}
	switch ch {
	case '(', ')', ',', '=':
		return false
	}
	return true
}
