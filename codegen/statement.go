package codegen

import (
	"strconv"

	"github.com/skx/minic/ast"
	"github.com/skx/minic/symtable"
)

// genStatement lowers stmt. scope's frame-offset cursor is consumed
// the same way computeFrameSize consumed a throwaway copy of it
// during the earlier measuring pass, so slot assignment here is
// guaranteed to stay inside the space that pass reserved.
func (g *Generator) genStatement(stmt ast.Statement, scope *symtable.Scope) {
	switch s := stmt.(type) {
	case *ast.Compound:
		child := scope.NewChild()
		for _, inner := range s.Statements {
			g.genStatement(inner, child)
		}

	case *ast.Conditional:
		l0 := g.nextLabel()
		g.genExpression(s.Condition, scope)
		g.emit("    cmpq    $0, %%rax\n")
		g.emit("    je      L%d\n", l0)
		g.genStatement(s.Then, scope.NewChild())
		g.emit("L%d:\n", l0)

	case *ast.While:
		l0 := g.nextLabel()
		l1 := g.nextLabel()
		g.emit("L%d:\n", l0)
		g.genExpression(s.Condition, scope)
		g.emit("    cmpq    $0, %%rax\n")
		g.emit("    je      L%d\n", l1)
		g.genStatement(s.Body, scope.NewLoopChild(labelName(l1), labelName(l0)))
		g.emit("    jmp     L%d\n", l0)
		g.emit("L%d:\n", l1)

	case *ast.Return:
		g.genExpression(s.Value, scope)
		g.emit("    movq    %%rbp, %%rsp\n")
		g.emit("    popq    %%rbp\n")
		g.emit("    retq\n")

	case *ast.VarDecl:
		sym := scope.Add(s.Name, s.Type)
		if s.Init != nil {
			g.genExpression(s.Init, scope)
			g.emit("    movq    %%rax, %d(%%rbp)\n", sym.Offset)
		}

	case *ast.ExpressionStmt:
		g.genExpression(s.Expr, scope)

	case *ast.Break:
		g.emit("    jmp     %s\n", scope.BreakLabel)

	case *ast.Continue:
		g.emit("    jmp     %s\n", scope.ContinueLabel)

	case *ast.NoOp:
		// Nothing to emit.

	default:
		panic("codegen: genStatement: unhandled statement node")
	}
}

func labelName(n int) string {
	return "L" + strconv.Itoa(n)
}

// computeFrameSize re-walks fn's parameters and body in a throwaway
// scope, mirroring exactly the slot assignment genFunction will
// perform for real (spilled parameters first, continuing the same
// offset cursor into the body's locals, so the two never collide), to
// find the lowest %rbp offset anything ends up at. The result is
// rounded up to a multiple of 8 per spec.md's prologue layout.
func computeFrameSize(fn *ast.Function) int {
	scope := symtable.New()
	lowest := 0
	for i, param := range fn.Parameters {
		if i >= 6 {
			break
		}
		sym := scope.Add(param.Name, param.Type)
		if sym.Offset < lowest {
			lowest = sym.Offset
		}
	}
	measureStatement(fn.Body, scope, &lowest)

	highest := -lowest
	if remainder := highest % 8; remainder != 0 {
		highest += 8 - remainder
	}
	return highest
}

func measureStatement(stmt ast.Statement, scope *symtable.Scope, lowest *int) {
	switch s := stmt.(type) {
	case *ast.Compound:
		child := scope.NewChild()
		for _, inner := range s.Statements {
			measureStatement(inner, child, lowest)
		}
	case *ast.Conditional:
		measureStatement(s.Then, scope.NewChild(), lowest)
	case *ast.While:
		measureStatement(s.Body, scope.NewChild(), lowest)
	case *ast.VarDecl:
		sym := scope.Add(s.Name, s.Type)
		if sym.Offset < *lowest {
			*lowest = sym.Offset
		}
	}
}
