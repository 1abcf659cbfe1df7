package codegen

import (
	"github.com/skx/minic/ast"
	"github.com/skx/minic/symtable"
)

// genFunction emits fn's label, prologue, parameter spill, and body.
// global carries every function's signature, so calls anywhere in the
// body can be lowered regardless of declaration order.
func (g *Generator) genFunction(fn *ast.Function, global *symtable.Scope) {
	name := mangle(fn.Name)
	g.emit(".globl  %s\n", name)
	g.emit("%s:\n", name)

	fn.FrameSize = computeFrameSize(fn)
	g.emit("    pushq   %%rbp\n")
	g.emit("    movq    %%rsp, %%rbp\n")
	g.emit("    subq    $%d, %%rsp\n", fn.FrameSize)
	g.emit("    andq    $-16, %%rsp\n")

	scope := global.NewChild()
	for i, param := range fn.Parameters {
		if i >= 6 {
			break
		}
		sym := scope.Add(param.Name, param.Type)
		g.emit("    movq    %s, %d(%%rbp)\n", argRegisters[i], sym.Offset)
	}
	for i := 6; i < len(fn.Parameters); i++ {
		scope.AddAt(fn.Parameters[i].Name, fn.Parameters[i].Type, (i-6)*8+16)
	}

	for _, stmt := range fn.Body.Statements {
		g.genStatement(stmt, scope)
	}
}
