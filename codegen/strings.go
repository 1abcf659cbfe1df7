package codegen

import "github.com/skx/minic/ast"

// packStringsStatement visits every StringLiteral reachable from
// stmt, assigning it a fresh data label and emitting its backing
// storage: one `.quad` per byte of the expanded text, zero-terminated.
// Strings are laid out as 64-bit words, not packed bytes, so pointer
// arithmetic over a string (scaled by 8 elsewhere) stays consistent.
func (g *Generator) packStringsStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Compound:
		for _, child := range s.Statements {
			g.packStringsStatement(child)
		}
	case *ast.VarDecl:
		if s.Init != nil {
			g.packStringsExpression(s.Init)
		}
	case *ast.ExpressionStmt:
		g.packStringsExpression(s.Expr)
	case *ast.Conditional:
		g.packStringsExpression(s.Condition)
		g.packStringsStatement(s.Then)
	case *ast.While:
		g.packStringsExpression(s.Condition)
		g.packStringsStatement(s.Body)
	case *ast.Return:
		g.packStringsExpression(s.Value)
	}
}

func (g *Generator) packStringsExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		label := g.nextLabel()
		e.StringLabel = label
		g.emit("S%d:\n", label)
		for i := 0; i < len(e.Expanded); i++ {
			g.emit("    .quad   %d\n", e.Expanded[i])
		}
		g.emit("    .quad   0\n")
	case *ast.Call:
		for _, arg := range e.Args {
			g.packStringsExpression(arg)
		}
	case *ast.Binary:
		g.packStringsExpression(e.Left)
		g.packStringsExpression(e.Right)
	case *ast.Unary:
		g.packStringsExpression(e.Operand)
	}
}
