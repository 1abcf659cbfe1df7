// Package codegen lowers a validated, desugared ast.Program into
// x86-64 System V AT&T-syntax assembly text, ready to hand to an
// external assembler. It assumes the tree has already passed
// semantic.Analyzer.Analyze: every expression carries a ReturnType,
// every Indexing and compound-assignment node has been rewritten, and
// every function body contains at least one top-level Return.
package codegen

import (
	"fmt"
	"strings"

	"github.com/skx/minic/ast"
	"github.com/skx/minic/symtable"
)

// Generator holds the mutable state threaded through one program's
// worth of code generation: the output buffer and the monotonically
// increasing label counter used for string pool entries and control
// flow.
type Generator struct {
	out   strings.Builder
	label int
}

// New returns a Generator ready to emit assembly.
func New() *Generator {
	return &Generator{}
}

// Generate lowers prog to assembly text. String pooling runs first
// over the whole program, emitting every literal's data before any
// function's code, then each function is emitted in declaration
// order.
func (g *Generator) Generate(prog *ast.Program) string {
	for _, fn := range prog.Functions {
		g.packStringsStatement(fn.Body)
	}

	global := symtable.New()
	for _, fn := range prog.Functions {
		global.AddFunction(fn.Name, fn.ReturnType, fn.Parameters)
	}
	for _, fn := range prog.Functions {
		g.genFunction(fn, global)
	}

	return g.out.String()
}

func (g *Generator) emit(format string, args ...any) {
	fmt.Fprintf(&g.out, format, args...)
}

func (g *Generator) nextLabel() int {
	l := g.label
	g.label++
	return l
}
