// Package lexer turns source bytes into a stream of tokens, and
// eagerly buffers that stream so the parser can look ahead cheaply.
package lexer

import (
	"strings"

	"github.com/skx/minic/charstream"
	"github.com/skx/minic/token"
)

// Lexer produces tokens from a character stream, one at a time, with
// a single token of lookahead.
type Lexer struct {
	input *charstream.Stream
}

// New returns a Lexer reading source, reporting fatal errors as
// originating from filename.
func New(filename, source string) *Lexer {
	return &Lexer{input: charstream.New(filename, source)}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdent(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n'
}

// Next returns the next token in the stream. Calling Next after EOF
// has been reached repeatedly returns the EOF sentinel.
func (l *Lexer) Next() token.Token {
	l.skipWhitespace()

	if l.input.Eof() {
		return l.tok(token.EOF, "")
	}

	ch := l.input.Peek()

	if ch == '/' && l.input.PeekAhead(1) == '/' {
		l.skipComment()
		return l.Next()
	}

	switch {
	case isIdentStart(ch):
		return l.readIdentifier()
	case isDigit(ch):
		return l.readInteger()
	case ch == '"':
		return l.readEscaped('"', token.StringLiteral)
	case ch == '\'':
		return l.readEscaped('\'', token.CharacterLiteral)
	}

	switch ch {
	case '(':
		return l.single(token.LeftParen)
	case ')':
		return l.single(token.RightParen)
	case '[':
		return l.single(token.LeftBracket)
	case ']':
		return l.single(token.RightBracket)
	case '{':
		return l.single(token.LeftBrace)
	case '}':
		return l.single(token.RightBrace)
	case ',':
		return l.single(token.Comma)
	case ';':
		return l.single(token.Semicolon)
	case '~':
		return l.single(token.BinaryNot)
	case '+':
		return l.maybeEquals('+', token.Plus, token.AddAssign)
	case '-':
		return l.maybeEquals('-', token.Minus, token.SubAssign)
	case '*':
		return l.maybeEquals('*', token.Asterisk, token.MulAssign)
	case '/':
		return l.maybeEquals('/', token.Slash, token.DivAssign)
	case '%':
		return l.maybeEquals('%', token.Percent, token.ModAssign)
	case '^':
		return l.maybeEquals('^', token.Caret, token.XorAssign)
	case '=':
		return l.maybeEquals('=', token.Assign, token.Equal)
	case '!':
		return l.maybeEquals('!', token.LogicalNot, token.NotEqual)
	case '&':
		return l.readAmpersand()
	case '|':
		return l.readPipe()
	case '<':
		return l.readAngle('<', token.Less, token.LessEqual, token.ShiftLeft, token.ShiftLeftAssign)
	case '>':
		return l.readAngle('>', token.Greater, token.GreaterEqual, token.ShiftRight, token.ShiftRightAssign)
	}

	l.input.Die("unexpected character")
	return token.Token{}
}

func (l *Lexer) skipWhitespace() {
	for !l.input.Eof() && isWhitespace(l.input.Peek()) {
		l.input.Next()
	}
}

func (l *Lexer) skipComment() {
	for !l.input.Eof() && l.input.Peek() != '\n' {
		l.input.Next()
	}
	if !l.input.Eof() {
		l.input.Next()
	}
}

func (l *Lexer) readIdentifier() token.Token {
	var b strings.Builder
	for !l.input.Eof() && isIdent(l.input.Peek()) {
		b.WriteByte(l.input.Next())
	}
	text := b.String()
	return l.tok(token.LookupIdentifier(text), text)
}

func (l *Lexer) readInteger() token.Token {
	var b strings.Builder
	for !l.input.Eof() && isDigit(l.input.Peek()) {
		b.WriteByte(l.input.Next())
	}
	return l.tok(token.IntegerLiteral, b.String())
}

// readEscaped consumes a quote-delimited literal. The raw text
// (escapes un-expanded, quotes excluded) becomes the token's text.
// Termination is the matching quote, a newline, or EOF - all three
// are accepted here; the semantic analyzer is responsible for
// rejecting whatever shape turns out to be invalid.
func (l *Lexer) readEscaped(quote byte, kind token.Kind) token.Token {
	l.input.Next() // opening quote

	var b strings.Builder
	escaped := false
	for !l.input.Eof() {
		ch := l.input.Next()
		if ch == '\n' {
			break
		}
		if escaped {
			b.WriteByte(ch)
			escaped = false
			continue
		}
		if ch == '\\' {
			b.WriteByte(ch)
			escaped = true
			continue
		}
		if ch == quote {
			break
		}
		b.WriteByte(ch)
	}
	return l.tok(kind, b.String())
}

func (l *Lexer) single(kind token.Kind) token.Token {
	ch := l.input.Next()
	return l.tok(kind, string(ch))
}

// maybeEquals consumes ch, then if the next byte is '=' also consumes
// it and returns withEquals; otherwise returns plain.
func (l *Lexer) maybeEquals(ch byte, plain, withEquals token.Kind) token.Token {
	l.input.Next()
	if !l.input.Eof() && l.input.Peek() == '=' {
		l.input.Next()
		return l.tok(withEquals, string(ch)+"=")
	}
	return l.tok(plain, string(ch))
}

func (l *Lexer) readAmpersand() token.Token {
	l.input.Next()
	switch {
	case !l.input.Eof() && l.input.Peek() == '&':
		l.input.Next()
		return l.tok(token.LogicalAnd, "&&")
	case !l.input.Eof() && l.input.Peek() == '=':
		l.input.Next()
		return l.tok(token.AndAssign, "&=")
	default:
		return l.tok(token.Ampersand, "&")
	}
}

// readPipe lexes '|', '||' and '|='. A bare '|' is the bitwise-OR
// operator, not an error: the grammar's bitwise-OR precedence level
// depends on it.
func (l *Lexer) readPipe() token.Token {
	l.input.Next()
	switch {
	case !l.input.Eof() && l.input.Peek() == '|':
		l.input.Next()
		return l.tok(token.LogicalOr, "||")
	case !l.input.Eof() && l.input.Peek() == '=':
		l.input.Next()
		return l.tok(token.OrAssign, "|=")
	default:
		return l.tok(token.Pipe, "|")
	}
}

// readAngle lexes '<' or '>' and their compound forms: plain, plain=,
// double, double=.
func (l *Lexer) readAngle(ch byte, plain, plainEq, double, doubleEq token.Kind) token.Token {
	l.input.Next()
	if l.input.Eof() {
		return l.tok(plain, string(ch))
	}
	switch l.input.Peek() {
	case '=':
		l.input.Next()
		return l.tok(plainEq, string(ch)+"=")
	case ch:
		l.input.Next()
		if !l.input.Eof() && l.input.Peek() == '=' {
			l.input.Next()
			return l.tok(doubleEq, string(ch)+string(ch)+"=")
		}
		return l.tok(double, string(ch)+string(ch))
	default:
		return l.tok(plain, string(ch))
	}
}

// tok builds a token carrying the stream's current position: the
// 0-indexed column just past the last byte consumed, which is that
// byte's 1-indexed column.
func (l *Lexer) tok(kind token.Kind, text string) token.Token {
	return token.Token{Kind: kind, Text: text, Line: l.input.Line(), Column: l.input.Column()}
}
