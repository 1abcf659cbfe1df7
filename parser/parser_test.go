package parser

import (
	"testing"

	"github.com/skx/minic/ast"
	"github.com/skx/minic/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseExpr(t *testing.T, source string) ast.Expression {
	t.Helper()
	p := New("test.c", "int main(){return "+source+";}")
	prog := p.Parse()
	require.Len(t, prog.Functions, 1)

	body := prog.Functions[0].Body.Statements
	require.Len(t, body, 1)

	ret, ok := body[0].(*ast.Return)
	require.True(t, ok, "expected Return statement, got %T", body[0])
	return ret.Value
}

func TestParseSimpleFunction(t *testing.T) {
	p := New("test.c", "int main(){return 0;}")
	prog := p.Parse()

	require.Len(t, prog.Functions, 1)
	fn := prog.Functions[0]
	assert.Equal(t, "main", fn.Name)
	assert.Equal(t, 0, fn.ReturnType.PointerDepth)
}

func TestParseParameters(t *testing.T) {
	p := New("test.c", "int add(int a, int* b){return a;}")
	prog := p.Parse()
	fn := prog.Functions[0]

	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, "a", fn.Parameters[0].Name)
	assert.Equal(t, 0, fn.Parameters[0].Type.PointerDepth)
	assert.Equal(t, "b", fn.Parameters[1].Name)
	assert.Equal(t, 1, fn.Parameters[1].Type.PointerDepth)
}

func TestParseAssignmentRightAssociative(t *testing.T) {
	// a = b = c should parse as a = (b = c).
	expr := parseExpr(t, "a = b = c")

	outer, ok := expr.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, ast.Assign, outer.Op)

	left, ok := outer.Left.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "a", left.Name)

	inner, ok := outer.Right.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, ast.Assign, inner.Op)

	innerLeft, ok := inner.Left.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "b", innerLeft.Name)
}

func TestParseOperatorPrecedence(t *testing.T) {
	// 1 + 2 * 3 < 5 && 4 groups as ((1 + (2*3)) < 5) && 4
	expr := parseExpr(t, "1 + 2 * 3 < 5 && 4")

	and, ok := expr.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, ast.LogicalAnd, and.Op)

	lt, ok := and.Left.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, ast.Lt, lt.Op)

	add, ok := lt.Left.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, ast.Add, add.Op)

	mul, ok := add.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.Mul, mul.Op)
}

func TestParseUnaryChain(t *testing.T) {
	expr := parseExpr(t, "*&x")

	outer, ok := expr.(*ast.Unary)
	require.True(t, ok)
	require.Equal(t, ast.ValueOf, outer.Op)

	inner, ok := outer.Operand.(*ast.Unary)
	require.True(t, ok)
	assert.Equal(t, ast.AddressOf, inner.Op)
}

func TestParseIndexingSuffix(t *testing.T) {
	expr := parseExpr(t, "a[0]")

	idx, ok := expr.(*ast.Indexing)
	require.True(t, ok)

	_, ok = idx.Array.(*ast.Identifier)
	assert.True(t, ok, "expected Array to be an Identifier, got %#v", idx.Array)

	_, ok = idx.Index.(*ast.IntegerLiteral)
	assert.True(t, ok, "expected Index to be an IntegerLiteral, got %#v", idx.Index)
}

func TestParseCallWithArguments(t *testing.T) {
	expr := parseExpr(t, "add(1, 2)")

	call, ok := expr.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "add", call.Name)
	assert.Len(t, call.Args, 2)
}

func TestParseIntTypeQuirkYieldsZeroLiteral(t *testing.T) {
	// A bare type in expression position is the legacy quirk: it
	// parses as the integer literal 0.
	expr := parseExpr(t, "int")

	lit, ok := expr.(*ast.IntegerLiteral)
	require.True(t, ok)
	assert.Equal(t, int64(0), lit.Value)
}

func TestParseCompoundAssignmentOperators(t *testing.T) {
	tests := []struct {
		source string
		want   ast.BinaryOp
	}{
		{"a += 1", ast.AddAssign},
		{"a -= 1", ast.SubAssign},
		{"a <<= 1", ast.ShlAssign},
		{"a >>= 1", ast.ShrAssign},
		{"a |= 1", ast.OrAssign},
		{"a ^= 1", ast.XorAssign},
	}

	for _, test := range tests {
		expr := parseExpr(t, test.source)
		bin, ok := expr.(*ast.Binary)
		require.True(t, ok, test.source)
		assert.Equal(t, test.want, bin.Op, test.source)
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	p := New("test.c", "int main(){if(1){return 1;} return 0;}")
	prog := p.Parse()
	body := prog.Functions[0].Body.Statements
	require.Len(t, body, 2)

	_, ok := body[0].(*ast.Conditional)
	assert.True(t, ok, "expected first statement to be Conditional, got %T", body[0])
}

func TestParseWhileBreakContinue(t *testing.T) {
	p := New("test.c", "int main(){while(1){break; continue;} return 0;}")
	prog := p.Parse()
	loop := prog.Functions[0].Body.Statements[0].(*ast.While)
	body := loop.Body.(*ast.Compound).Statements

	_, ok := body[0].(*ast.Break)
	assert.True(t, ok, "expected Break, got %T", body[0])

	_, ok = body[1].(*ast.Continue)
	assert.True(t, ok, "expected Continue, got %T", body[1])
}

func TestParseVarDeclWithInitializer(t *testing.T) {
	p := New("test.c", "int main(){int x = 5; return x;}")
	prog := p.Parse()
	decl := prog.Functions[0].Body.Statements[0].(*ast.VarDecl)
	assert.Equal(t, "x", decl.Name)
	assert.NotNil(t, decl.Init)
}

func TestParseExpectFailureDiesWithCode2(t *testing.T) {
	p := New("test.c", "int")

	var gotCode int
	p.input.SetExitForTesting(func(code int) { gotCode = code })

	// The next token is Int, not Identifier: expect must die rather
	// than consume it silently.
	p.expect(token.Identifier)

	assert.Equal(t, 2, gotCode)
}
