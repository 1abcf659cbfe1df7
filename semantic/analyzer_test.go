package semantic

import (
	"testing"

	"github.com/skx/minic/ast"
	"github.com/skx/minic/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyze(t *testing.T, source string) (*ast.Program, []int) {
	t.Helper()
	prog := parser.New("test.c", source).Parse()

	a := New("test.c", source)
	var codes []int
	a.reporter.Exit = func(code int) { codes = append(codes, code) }

	a.Analyze(prog)
	return prog, codes
}

func TestAnalyzeAcceptsSimpleFunction(t *testing.T) {
	_, codes := analyze(t, "int main(){return 0;}")
	assert.Empty(t, codes)
}

func TestAnalyzeDiesOnMissingReturn(t *testing.T) {
	_, codes := analyze(t, "int main(){int x = 1;}")
	require.NotEmpty(t, codes)
	assert.Equal(t, 3, codes[0])
}

func TestAnalyzeDiesOnReservedFunctionName(t *testing.T) {
	_, codes := analyze(t, "int sizeof(int x){return x;}")
	require.NotEmpty(t, codes)
	assert.Equal(t, 3, codes[0])
}

func TestAnalyzeDiesOnFunctionRedefinition(t *testing.T) {
	_, codes := analyze(t, "int f(){return 0;} int f(){return 1;}")
	require.NotEmpty(t, codes)
	assert.Equal(t, 3, codes[0])
}

func TestAnalyzeDiesOnUnknownIdentifier(t *testing.T) {
	_, codes := analyze(t, "int main(){return missing;}")
	require.NotEmpty(t, codes)
	assert.Equal(t, 3, codes[0])
}

func TestAnalyzeDiesOnBreakOutsideLoop(t *testing.T) {
	_, codes := analyze(t, "int main(){break; return 0;}")
	require.NotEmpty(t, codes)
	assert.Equal(t, 3, codes[0])
}

func TestAnalyzeAcceptsBreakInsideWhile(t *testing.T) {
	_, codes := analyze(t, "int main(){while(1){break;} return 0;}")
	assert.Empty(t, codes)
}

func TestAnalyzeDiesOnVariableRedefinitionInSameScope(t *testing.T) {
	_, codes := analyze(t, "int main(){int x = 1; int x = 2; return x;}")
	require.NotEmpty(t, codes)
	assert.Equal(t, 3, codes[0])
}

func TestAnalyzeAllowsShadowingInNestedScope(t *testing.T) {
	_, codes := analyze(t, "int main(){int x = 1; if(x){int x = 2; x = x;} return x;}")
	assert.Empty(t, codes)
}

func TestAnalyzeDiesOnPointerMultiplication(t *testing.T) {
	_, codes := analyze(t, "int main(){int* p; return p * p;}")
	require.NotEmpty(t, codes)
	assert.Equal(t, 3, codes[0])
}

func TestAnalyzeAllowsPointerPlusInt(t *testing.T) {
	_, codes := analyze(t, "int main(){int* p; return p + 1;}")
	assert.Empty(t, codes)
}

func TestAnalyzeDiesOnAssigningToRvalue(t *testing.T) {
	_, codes := analyze(t, "int main(){1 = 2; return 0;}")
	require.NotEmpty(t, codes)
	assert.Equal(t, 3, codes[0])
}

func TestAnalyzeDesugarsIndexingIntoPointerArithmetic(t *testing.T) {
	prog, codes := analyze(t, "int main(){int* p; return p[1];}")
	require.Empty(t, codes)

	ret := prog.Functions[0].Body.Statements[1].(*ast.Return)
	unary, ok := ret.Value.(*ast.Unary)
	require.True(t, ok, "expected desugared Unary, got %T", ret.Value)
	assert.Equal(t, ast.ValueOf, unary.Op)

	sum, ok := unary.Operand.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.Add, sum.Op)
}

func TestAnalyzeDesugarsCompoundAssignment(t *testing.T) {
	prog, codes := analyze(t, "int main(){int x = 1; x += 2; return x;}")
	require.Empty(t, codes)

	stmt := prog.Functions[0].Body.Statements[1].(*ast.ExpressionStmt)
	assign, ok := stmt.Expr.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.Assign, assign.Op)

	rhs, ok := assign.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.Add, rhs.Op)
}
