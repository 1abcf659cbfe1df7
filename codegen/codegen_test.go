package codegen_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/skx/minic/codegen"
	"github.com/skx/minic/parser"
	"github.com/skx/minic/semantic"
)

// compile runs source through the real parser and analyzer, then
// generates assembly for the result. It is the same pipeline
// compiler.Compile drives, minus its panic recovery and optional debug
// header, so a snapshot here reflects exactly what a user's source
// would produce.
func compile(t *testing.T, source string) string {
	t.Helper()

	prog := parser.New("snapshot.c", source).Parse()

	analyzer := semantic.New("snapshot.c", source)
	analyzer.Analyze(prog)

	return codegen.New().Generate(prog)
}

func TestGenerateNestedCalls(t *testing.T) {
	asm := compile(t, `int sq(int x){return x*x;} int main(){return sq(5);}`)
	snaps.MatchSnapshot(t, asm)
}

func TestGenerateWhileIfBreak(t *testing.T) {
	asm := compile(t, `int main(){int i=0; while(i<10){ if(i==5){break;} i=i+1;} return i;}`)
	snaps.MatchSnapshot(t, asm)
}

func TestGenerateStringLiteralPointerWalk(t *testing.T) {
	asm := compile(t, `int puts(int* s){while(*s){putchar(*s); s=s+1;} return 0;} int main(){puts("hi\n"); return 0;}`)
	snaps.MatchSnapshot(t, asm)
}

func TestGenerateCompoundAssignmentDesugars(t *testing.T) {
	asm := compile(t, `int main(){int i=0; i+=3; return i;}`)
	snaps.MatchSnapshot(t, asm)
}

func TestGenerateIndexingDesugarsToPointerArithmetic(t *testing.T) {
	asm := compile(t, `int main(int* a){return a[3];}`)
	snaps.MatchSnapshot(t, asm)
}

func TestGenerateSeventhArgumentReadsCallerStack(t *testing.T) {
	asm := compile(t, `int sum7(int a,int b,int c,int d,int e,int f,int g){return a+g;} int main(){return sum7(1,2,3,4,5,6,7);}`)
	snaps.MatchSnapshot(t, asm)
}

func TestGenerateSizeofString(t *testing.T) {
	asm := compile(t, `int main(){return sizeof("abc");}`)
	snaps.MatchSnapshot(t, asm)
}

func TestGeneratePrologueHasFrameAlignment(t *testing.T) {
	asm := compile(t, `int main(){int a; int b; int c; return a+b+c;}`)
	snaps.MatchSnapshot(t, asm)
}
