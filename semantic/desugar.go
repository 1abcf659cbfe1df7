package semantic

import "github.com/skx/minic/ast"

// desugarStatement walks stmt in place, rewriting every nested
// expression via desugarExpression and recursing into nested
// statements. It runs only after validateStatement has accepted the
// whole program, per spec.md §4.6 Pass B.
func desugarStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Compound:
		for i, child := range s.Statements {
			desugarStatement(child)
			s.Statements[i] = child
		}

	case *ast.VarDecl:
		if s.Init != nil {
			s.Init = desugarExpression(s.Init)
		}

	case *ast.ExpressionStmt:
		s.Expr = desugarExpression(s.Expr)

	case *ast.Conditional:
		s.Condition = desugarExpression(s.Condition)
		desugarStatement(s.Then)

	case *ast.While:
		s.Condition = desugarExpression(s.Condition)
		desugarStatement(s.Body)

	case *ast.Return:
		s.Value = desugarExpression(s.Value)

	case *ast.Break, *ast.Continue, *ast.NoOp:
		// Nothing to desugar.
	}
}

// desugarExpression rewrites expr and its subexpressions, replacing
// indexing and compound-assignment nodes with the plain expressions
// they mean, and returns the (possibly new) root node. Every other
// node type recurses into its children in place and returns itself.
func desugarExpression(expr ast.Expression) ast.Expression {
	switch e := expr.(type) {
	case *ast.IntegerLiteral, *ast.StringLiteral, *ast.CharacterLiteral, *ast.Identifier:
		return e

	case *ast.Indexing:
		e.Array = desugarExpression(e.Array)
		e.Index = desugarExpression(e.Index)
		sum := &ast.Binary{
			ExprMeta: ast.ExprMeta{Line: e.Line, Column: e.Column},
			Op:       ast.Add,
			Left:     e.Array,
			Right:    e.Index,
		}
		sum.ReturnType = arrayPointerType(e)
		deref := &ast.Unary{
			ExprMeta: ast.ExprMeta{Line: e.Line, Column: e.Column, ReturnType: e.ReturnType},
			Op:       ast.ValueOf,
			Operand:  sum,
		}
		return deref

	case *ast.Call:
		for i, arg := range e.Args {
			e.Args[i] = desugarExpression(arg)
		}
		return e

	case *ast.Binary:
		e.Left = desugarExpression(e.Left)
		e.Right = desugarExpression(e.Right)
		if e.Op.IsCompoundAssign() {
			underlying := e.Op.Underlying()
			rhs := &ast.Binary{
				ExprMeta: ast.ExprMeta{Line: e.Line, Column: e.Column},
				Op:       underlying,
				Left:     e.Left,
				Right:    e.Right,
			}
			assign := &ast.Binary{
				ExprMeta: ast.ExprMeta{Line: e.Line, Column: e.Column, ReturnType: e.Left.Base().ReturnType},
				Op:       ast.Assign,
				Left:     e.Left,
				Right:    rhs,
			}
			rhs.ReturnType = assign.ReturnType
			return assign
		}
		return e

	case *ast.Unary:
		e.Operand = desugarExpression(e.Operand)
		return e

	default:
		panic("semantic: desugarExpression: unhandled expression node")
	}
}

// arrayPointerType returns the pointer type of the array side of an
// indexing expression being desugared, i.e. the original indexing
// node's type with one extra level of pointer depth restored.
func arrayPointerType(e *ast.Indexing) *ast.Type {
	depth := 0
	if e.ReturnType != nil {
		depth = e.ReturnType.PointerDepth + 1
	}
	typ := ast.Type{PointerDepth: depth}
	return &typ
}
