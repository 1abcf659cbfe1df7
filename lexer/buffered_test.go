package lexer

import (
	"testing"

	"github.com/skx/minic/token"
)

func TestBufferedStreamPeekAndNext(t *testing.T) {
	b := NewBufferedStream("test.c", "int x;")

	if b.Peek().Kind != token.Int {
		t.Fatalf("Peek() = %v, want Int", b.Peek().Kind)
	}
	// Peek must not advance.
	if b.Peek().Kind != token.Int {
		t.Fatalf("second Peek() = %v, want Int (cursor should not move)", b.Peek().Kind)
	}

	if got := b.Next(); got.Kind != token.Int {
		t.Errorf("Next() = %v, want Int", got.Kind)
	}
	if got := b.Next(); got.Kind != token.Identifier {
		t.Errorf("Next() = %v, want Identifier", got.Kind)
	}
	if got := b.Next(); got.Kind != token.Semicolon {
		t.Errorf("Next() = %v, want Semicolon", got.Kind)
	}
	if !b.Eof() {
		t.Errorf("expected Eof() after draining all real tokens")
	}
}

func TestBufferedStreamPeekAheadClampsToEOF(t *testing.T) {
	b := NewBufferedStream("test.c", "x")

	if got := b.PeekAhead(50); got.Kind != token.EOF {
		t.Errorf("PeekAhead(50) = %v, want EOF", got.Kind)
	}
}

func TestBufferedStreamNextAtEofIsIdempotent(t *testing.T) {
	b := NewBufferedStream("test.c", "")
	first := b.Next()
	second := b.Next()
	if first.Kind != token.EOF || second.Kind != token.EOF {
		t.Errorf("expected repeated EOF, got %v then %v", first.Kind, second.Kind)
	}
}

func TestBufferedStreamDieExitsWithCode2(t *testing.T) {
	b := NewBufferedStream("test.c", "int 123x;")
	tok := b.PeekAhead(1) // the malformed integer literal

	var gotCode int
	b.reporter.Exit = func(code int) { gotCode = code }

	b.Die("expected identifier, encountered IntegerLiteral instead", tok)

	if gotCode != 2 {
		t.Errorf("exit code = %d, want 2", gotCode)
	}
}
