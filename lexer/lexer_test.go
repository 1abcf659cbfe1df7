package lexer

import (
	"testing"

	"github.com/skx/minic/token"
)

func lexAll(t *testing.T, source string) []token.Token {
	t.Helper()
	l := New("test.c", source)
	var out []token.Token
	for {
		tok := l.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexKeywordsAndIdentifiers(t *testing.T) {
	toks := lexAll(t, "if else while return break continue int foo")
	want := []token.Kind{
		token.If, token.Else, token.While, token.Return, token.Break,
		token.Continue, token.Int, token.Identifier, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexSkipsWhitespaceAndComments(t *testing.T) {
	toks := lexAll(t, "  x // trailing comment\n  y")
	got := kinds(toks)
	want := []token.Kind{token.Identifier, token.Identifier, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if toks[0].Text != "x" || toks[1].Text != "y" {
		t.Errorf("got texts %q, %q, want x, y", toks[0].Text, toks[1].Text)
	}
}

func TestLexTwoCharacterOperators(t *testing.T) {
	tests := []struct {
		source string
		want   token.Kind
	}{
		{"==", token.Equal},
		{"!=", token.NotEqual},
		{"&&", token.LogicalAnd},
		{"||", token.LogicalOr},
		{">=", token.GreaterEqual},
		{"<=", token.LessEqual},
		{"+=", token.AddAssign},
		{"-=", token.SubAssign},
		{"*=", token.MulAssign},
		{"/=", token.DivAssign},
		{"%=", token.ModAssign},
		{"&=", token.AndAssign},
		{"|=", token.OrAssign},
		{"^=", token.XorAssign},
		{"<<", token.ShiftLeft},
		{">>", token.ShiftRight},
		{"<<=", token.ShiftLeftAssign},
		{">>=", token.ShiftRightAssign},
	}

	for _, test := range tests {
		toks := lexAll(t, test.source)
		if len(toks) != 2 {
			t.Fatalf("%q: got %d tokens, want 2 (operator + EOF): %v", test.source, len(toks), toks)
		}
		if toks[0].Kind != test.want {
			t.Errorf("%q: kind = %v, want %v", test.source, toks[0].Kind, test.want)
		}
		if toks[0].Text != test.source {
			t.Errorf("%q: text = %q, want %q", test.source, toks[0].Text, test.source)
		}
	}
}

func TestLexAmbiguousOperatorsAreRawTokens(t *testing.T) {
	toks := lexAll(t, "* & + -")
	want := []token.Kind{token.Asterisk, token.Ampersand, token.Plus, token.Minus, token.EOF}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexIntegerLiteral(t *testing.T) {
	toks := lexAll(t, "12345")
	if toks[0].Kind != token.IntegerLiteral || toks[0].Text != "12345" {
		t.Errorf("got %+v, want IntegerLiteral 12345", toks[0])
	}
}

func TestLexStringLiteralKeepsEscapesRaw(t *testing.T) {
	toks := lexAll(t, `"hi\n"`)
	if toks[0].Kind != token.StringLiteral {
		t.Fatalf("kind = %v, want StringLiteral", toks[0].Kind)
	}
	if toks[0].Text != `hi\n` {
		t.Errorf("text = %q, want %q", toks[0].Text, `hi\n`)
	}
}

func TestLexCharacterLiteral(t *testing.T) {
	toks := lexAll(t, `'\q'`)
	if toks[0].Kind != token.CharacterLiteral || toks[0].Text != `\q` {
		t.Errorf("got %+v, want CharacterLiteral \\q", toks[0])
	}
}

func TestLexStringLiteralTerminatedByNewline(t *testing.T) {
	toks := lexAll(t, "\"unterminated\nx")
	if toks[0].Kind != token.StringLiteral {
		t.Fatalf("kind = %v, want StringLiteral", toks[0].Kind)
	}
	if toks[0].Text != "unterminated" {
		t.Errorf("text = %q, want %q", toks[0].Text, "unterminated")
	}
	if toks[1].Kind != token.Identifier || toks[1].Text != "x" {
		t.Errorf("expected lexing to resume after the embedded newline, got %+v", toks[1])
	}
}

func TestLexPunctuation(t *testing.T) {
	toks := lexAll(t, "(){}[],;~!")
	want := []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.LeftBracket, token.RightBracket, token.Comma, token.Semicolon,
		token.BinaryNot, token.LogicalNot, token.EOF,
	}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexEofIsRepeatable(t *testing.T) {
	l := New("test.c", "")
	first := l.Next()
	second := l.Next()
	if first.Kind != token.EOF || second.Kind != token.EOF {
		t.Errorf("expected repeated EOF, got %v then %v", first.Kind, second.Kind)
	}
}

func TestLexTokenPositionIsLastByte(t *testing.T) {
	toks := lexAll(t, "abc")
	// "abc" occupies columns 1-3 (1-indexed source); Next() leaves the
	// cursor's Column() at the position of the last consumed byte.
	if toks[0].Column != 3 {
		t.Errorf("column = %d, want 3 (position of the last byte of \"abc\")", toks[0].Column)
	}
}
