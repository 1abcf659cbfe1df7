package semantic

import (
	"github.com/skx/minic/ast"
	"github.com/skx/minic/symtable"
)

// validateStatement checks stmt against spec.md §4.6's statement
// rules, recursing into any nested statements with whatever new scope
// the statement introduces. Loop-exit label assignment happens later,
// during the code generator's own walk, not here; this pass only
// checks that Break and Continue appear where a loop is actually in
// scope.
func (a *Analyzer) validateStatement(stmt ast.Statement, scope *symtable.Scope) {
	switch s := stmt.(type) {
	case *ast.Compound:
		a.validateCompound(s, scope.NewChild())

	case *ast.VarDecl:
		a.validateVarDecl(s, scope)

	case *ast.ExpressionStmt:
		a.validateExpression(s.Expr, scope)

	case *ast.Conditional:
		a.validateExpression(s.Condition, scope)
		conditionType := a.exprType(s.Condition, scope)
		if !conditionType.ConvertibleTo(ast.Type{}) {
			line, column := s.Condition.Pos()
			a.die(line, column, "cannot convert condition expression to 'int'")
		}
		a.validateStatement(s.Then, scope.NewChild())

	case *ast.While:
		a.validateExpression(s.Condition, scope)
		conditionType := a.exprType(s.Condition, scope)
		if !conditionType.ConvertibleTo(ast.Type{}) {
			line, column := s.Condition.Pos()
			a.die(line, column, "cannot convert condition expression to 'int'")
		}
		a.validateStatement(s.Body, scope.NewLoopChild("", ""))

	case *ast.Return:
		a.validateExpression(s.Value, scope)
		returnSym, ok := scope.Fetch(reservedReturn)
		if !ok {
			panic("semantic: validateStatement: no __return__ symbol in scope")
		}
		valueType := a.exprType(s.Value, scope)
		if !valueType.ConvertibleTo(returnSym.Type) {
			line, column := s.Value.Pos()
			a.die(line, column, "cannot convert return expression to '"+returnSym.Type.String()+"'")
		}

	case *ast.Break:
		if !scope.InLoop {
			a.die(s.Line, s.Column, "'break' statement not in a loop")
		}

	case *ast.Continue:
		if !scope.InLoop {
			a.die(s.Line, s.Column, "'continue' statement not in a loop")
		}

	case *ast.NoOp:
		// Nothing to validate.

	default:
		panic("semantic: validateStatement: unhandled statement node")
	}
}

func (a *Analyzer) validateCompound(compound *ast.Compound, scope *symtable.Scope) {
	for _, stmt := range compound.Statements {
		a.validateStatement(stmt, scope)
	}
}

func (a *Analyzer) validateVarDecl(decl *ast.VarDecl, scope *symtable.Scope) {
	if isReserved(decl.Name) {
		a.die(decl.Line, decl.Column, "cannot declare variable with reserved identifier '"+decl.Name+"'")
		return
	}
	if scope.ExistsLocally(decl.Name) {
		a.die(decl.Line, decl.Column, "redefinition of variable '"+decl.Name+"'")
		return
	}
	if decl.Init != nil {
		a.validateExpression(decl.Init, scope)
		initType := a.exprType(decl.Init, scope)
		if !initType.ConvertibleTo(decl.Type) {
			line, column := decl.Init.Pos()
			a.die(line, column, "cannot convert initializer expression to '"+decl.Type.String()+"'")
		}
	}
	scope.Add(decl.Name, decl.Type)
}
