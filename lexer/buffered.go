package lexer

import (
	"github.com/skx/minic/diag"
	"github.com/skx/minic/token"
)

// BufferedStream eagerly drains a Lexer into a random-access sequence
// of tokens, so the parser can peek any distance ahead without
// re-lexing. The cursor only moves forward.
type BufferedStream struct {
	tokens   []token.Token
	cursor   int
	reporter *diag.Reporter
}

// NewBufferedStream lexes source to completion and returns a
// BufferedStream over the result. Lexical errors terminate the
// process from within this call, via the same diagnostic path as
// New's Lexer.
func NewBufferedStream(filename, source string) *BufferedStream {
	l := New(filename, source)

	var tokens []token.Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &BufferedStream{
		tokens:   tokens,
		reporter: diag.New(filename, source),
	}
}

// Peek returns the token at the cursor without advancing.
func (b *BufferedStream) Peek() token.Token {
	return b.tokens[b.cursor]
}

// PeekAhead returns the token n positions past the cursor, clamped to
// the final (EOF) token if that would run past the end.
func (b *BufferedStream) PeekAhead(n int) token.Token {
	pos := b.cursor + n
	if pos >= len(b.tokens) {
		return b.tokens[len(b.tokens)-1]
	}
	return b.tokens[pos]
}

// Next returns the token at the cursor and advances it. Calling Next
// once the stream is at EOF keeps returning the EOF token.
func (b *BufferedStream) Next() token.Token {
	tok := b.Peek()
	if tok.Kind != token.EOF {
		b.cursor++
	}
	return tok
}

// Eof reports whether the cursor is at the EOF token.
func (b *BufferedStream) Eof() bool {
	return b.Peek().Kind == token.EOF
}

// SetExitForTesting overrides the process-exit behavior invoked by
// Die, so callers in other packages can observe a death's exit code
// without terminating the test binary. Production code never calls
// this.
func (b *BufferedStream) SetExitForTesting(exit func(code int)) {
	b.reporter.Exit = exit
}

// Die renders a fatal parse diagnostic pointing at tok and terminates
// the process with exit code 2. The caret column is tok's last-byte
// column minus its text length, recovering the position of its first
// byte.
func (b *BufferedStream) Die(message string, tok token.Token) {
	column := tok.Column - len(tok.Text)
	if column < 0 {
		column = tok.Column
	}
	b.reporter.Die(2, tok.Line, column, message)
}
