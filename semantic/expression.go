package semantic

import (
	"github.com/skx/minic/ast"
	"github.com/skx/minic/symtable"
)

// exprType returns expr's return type, computing and caching it in
// the node's ExprMeta on the way. It assumes expr has already been
// validated; callers that haven't validated an identifier or call
// target yet must not rely on the type this returns for it.
func (a *Analyzer) exprType(expr ast.Expression, scope *symtable.Scope) ast.Type {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return a.setType(e, ast.Type{})
	case *ast.StringLiteral:
		return a.setType(e, ast.Type{PointerDepth: 1})
	case *ast.CharacterLiteral:
		return a.setType(e, ast.Type{})
	case *ast.Identifier:
		if sym, ok := scope.Fetch(e.Name); ok {
			return a.setType(e, sym.Type)
		}
		a.die(e.Line, e.Column, "unknown identifier '"+e.Name+"'")
		return a.setType(e, ast.Type{})
	case *ast.Indexing:
		arrayType := a.exprType(e.Array, scope)
		return a.setType(e, ast.Type{PointerDepth: arrayType.PointerDepth - 1})
	case *ast.Call:
		if sym, ok := scope.Fetch(e.Name); ok {
			return a.setType(e, sym.Type)
		}
		// Undeclared callees are accepted as forward references; an
		// undeclared call's type defaults to int.
		return a.setType(e, ast.Type{})
	case *ast.Binary:
		return a.binaryType(e, scope)
	case *ast.Unary:
		return a.unaryType(e, scope)
	default:
		panic("semantic: exprType: unhandled expression node")
	}
}

func (a *Analyzer) setType(expr ast.Expression, typ ast.Type) ast.Type {
	expr.Base().ReturnType = &typ
	return typ
}

func (a *Analyzer) binaryType(e *ast.Binary, scope *symtable.Scope) ast.Type {
	switch e.Op {
	case ast.Add, ast.Sub, ast.Mul, ast.Div, ast.Mod:
		left := a.exprType(e.Left, scope)
		right := a.exprType(e.Right, scope)
		depth := left.PointerDepth
		if right.PointerDepth > depth {
			depth = right.PointerDepth
		}
		return a.setType(e, ast.Type{PointerDepth: depth})
	case ast.Assign, ast.AddAssign, ast.SubAssign, ast.MulAssign, ast.DivAssign, ast.ModAssign,
		ast.AndAssign, ast.OrAssign, ast.XorAssign, ast.ShlAssign, ast.ShrAssign:
		return a.setType(e, a.exprType(e.Left, scope))
	default:
		// Logical, relational, equality, bitwise and shift operators
		// all produce int.
		a.exprType(e.Left, scope)
		a.exprType(e.Right, scope)
		return a.setType(e, ast.Type{})
	}
}

func (a *Analyzer) unaryType(e *ast.Unary, scope *symtable.Scope) ast.Type {
	operand := a.exprType(e.Operand, scope)
	switch e.Op {
	case ast.ValueOf:
		return a.setType(e, ast.Type{PointerDepth: operand.PointerDepth - 1})
	case ast.AddressOf:
		return a.setType(e, ast.Type{PointerDepth: operand.PointerDepth + 1})
	case ast.Positive, ast.Negative, ast.BinaryNot:
		return a.setType(e, operand)
	default: // LogicalNot
		return a.setType(e, ast.Type{})
	}
}

// isLvalue reports whether expr may appear on the left of an
// assignment or be the operand of address-of: an Identifier, an
// Indexing, or a value-of unary expression.
func isLvalue(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.Identifier, *ast.Indexing:
		return true
	case *ast.Unary:
		return e.Op == ast.ValueOf
	default:
		return false
	}
}

// validateExpression checks expr and its subexpressions against every
// rule in spec.md §4.6 Pass A, expanding literal escapes along the
// way. It always computes expr's type as a side effect (via
// exprType), even when validation fails, so callers can keep walking
// without special-casing a partial type.
func (a *Analyzer) validateExpression(expr ast.Expression, scope *symtable.Scope) {
	defer a.exprType(expr, scope)

	switch e := expr.(type) {
	case *ast.CharacterLiteral:
		expanded, ok := a.expandLiteral(e.Text, e.Line, e.Column, len(e.Text))
		if ok {
			if len(expanded) != 1 {
				a.die(e.Line, e.Column, "multi-character character literal")
			} else {
				e.Byte = expanded[0]
			}
		}

	case *ast.StringLiteral:
		expanded, ok := a.expandLiteral(e.Text, e.Line, e.Column, len(e.Text))
		if ok {
			e.Expanded = expanded
		}

	case *ast.Identifier:
		if isReserved(e.Name) {
			a.die(e.Line, e.Column, "cannot refer to reserved identifier '"+e.Name+"'")
			return
		}
		if !scope.Exists(e.Name) {
			a.die(e.Line, e.Column, "unknown identifier '"+e.Name+"'")
		}

	case *ast.Indexing:
		a.validateExpression(e.Array, scope)
		a.validateExpression(e.Index, scope)
		indexType := a.exprType(e.Index, scope)
		if !indexType.ConvertibleTo(ast.Type{}) {
			a.die(e.Line, e.Column, "cannot convert index expression to 'int'")
		}

	case *ast.Call:
		a.validateCall(e, scope)

	case *ast.Binary:
		a.validateBinary(e, scope)

	case *ast.Unary:
		a.validateUnary(e, scope)
	}
}

// expandLiteral resolves text's escapes, dying at exit code 3 (not 1,
// unlike the lexical phase) if one is unrecognized. column is the
// node's recorded position, the 0-indexed column just past its
// closing quote; since text excludes both quotes, the first byte of
// text sits at column-len(text)-1.
func (a *Analyzer) expandLiteral(text string, line, column, length int) (string, bool) {
	baseColumn := column - length - 1
	return expandEscapes(text, baseColumn, func(col int, message string) {
		a.die(line, col, message)
	})
}

func (a *Analyzer) validateCall(e *ast.Call, scope *symtable.Scope) {
	for _, arg := range e.Args {
		a.validateExpression(arg, scope)
	}

	sym, ok := scope.Fetch(e.Name)
	if !ok {
		// Forward reference to an as-yet-undeclared function: accepted.
		return
	}
	if !sym.IsFunction {
		a.die(e.Line, e.Column, "called variable '"+e.Name+"' is not a function")
		return
	}
	if len(sym.Parameters) != len(e.Args) {
		a.die(e.Line, e.Column, "no matching function call to '"+e.Name+"'")
		return
	}
	for i, arg := range e.Args {
		argType := a.exprType(arg, scope)
		if !argType.ConvertibleTo(sym.Parameters[i].Type) {
			line, column := arg.Pos()
			a.die(line, column, "cannot convert parameter expression to '"+sym.Parameters[i].Type.String()+"'")
		}
	}
}

// validateBinary checks e against the rule bucket its operator falls
// into. Compound-assignment operators (`+=` and friends) are still
// present at this point - desugaring is Pass B - so they are checked
// under the rules of their underlying plain operator, plus the
// assignment-target rule.
func (a *Analyzer) validateBinary(e *ast.Binary, scope *symtable.Scope) {
	a.validateExpression(e.Left, scope)
	a.validateExpression(e.Right, scope)

	leftType := a.exprType(e.Left, scope)
	rightType := a.exprType(e.Right, scope)

	isAssignment := e.Op == ast.Assign || e.Op.IsCompoundAssign()
	underlying := e.Op
	if e.Op.IsCompoundAssign() {
		underlying = e.Op.Underlying()
	}

	switch underlying {
	case ast.Add, ast.Sub, ast.Mul, ast.Div, ast.Mod, ast.Assign, ast.Eq, ast.Ne:
		if !rightType.ConvertibleTo(leftType) {
			a.die(e.Line, e.Column, "invalid operands to binary expression")
			return
		}
		if isAssignment && !isLvalue(e.Left) {
			line, column := e.Left.Pos()
			a.die(line, column, "expression is not assignable")
			return
		}
		a.validatePointerArithmetic(e, underlying, leftType, rightType)

	case ast.BitAnd, ast.BitOr, ast.BitXor, ast.Shl, ast.Shr:
		if leftType.IsPointer() || rightType.IsPointer() {
			a.die(e.Line, e.Column, "invalid operands to binary expression")
			return
		}
		if isAssignment && !isLvalue(e.Left) {
			line, column := e.Left.Pos()
			a.die(line, column, "expression is not assignable")
		}

	default:
		// Logical and the remaining relational operators: both sides
		// must convert to int.
		if !leftType.ConvertibleTo(ast.Type{}) || !rightType.ConvertibleTo(ast.Type{}) {
			a.die(e.Line, e.Column, "invalid operands to binary expression")
		}
	}
}

// validatePointerArithmetic enforces the pointer-arithmetic
// restrictions on plain `+ - * / %`, given the underlying operator of
// e (itself, or what a compound-assignment form desugars to).
func (a *Analyzer) validatePointerArithmetic(e *ast.Binary, underlying ast.BinaryOp, leftType, rightType ast.Type) {
	switch {
	case leftType.IsPointer():
		switch underlying {
		case ast.Mul, ast.Div, ast.Mod:
			a.die(e.Line, e.Column, "invalid operands to binary expression")
		case ast.Add:
			if rightType.IsPointer() {
				a.die(e.Line, e.Column, "invalid operands to binary expression")
			}
		}
	case rightType.IsPointer():
		switch underlying {
		case ast.Sub, ast.Mul, ast.Div, ast.Mod:
			a.die(e.Line, e.Column, "invalid operands to binary expression")
		}
	}
}

func (a *Analyzer) validateUnary(e *ast.Unary, scope *symtable.Scope) {
	a.validateExpression(e.Operand, scope)
	operandType := a.exprType(e.Operand, scope)

	switch e.Op {
	case ast.ValueOf:
		if operandType.PointerDepth < 1 {
			a.die(e.Line, e.Column, "cannot dereference expression of non-pointer type")
		}
	case ast.Positive, ast.Negative, ast.BinaryNot:
		if operandType.IsPointer() {
			a.die(e.Line, e.Column, "wrong type argument to unary operator")
		}
	case ast.AddressOf:
		if !isLvalue(e.Operand) {
			line, column := e.Operand.Pos()
			a.die(line, column, "cannot take the address of an rvalue")
		}
	}
	// LogicalNot has no additional restriction: any type converts to int.
}
