package parser

import (
	"github.com/skx/minic/ast"
	"github.com/skx/minic/token"
)

func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

// parseAssignment is right-associative: it collects the chain of
// operands joined by assignment operators left to right, then folds
// from the right so `a = b = c` becomes `a = (b = c)`.
func (p *Parser) parseAssignment() ast.Expression {
	operands := []ast.Expression{p.parseLogicalOr()}
	var ops []ast.BinaryOp

	for isAssignOp(p.input.Peek().Kind) {
		ops = append(ops, assignOpFor(p.input.Next().Kind))
		operands = append(operands, p.parseLogicalOr())
	}

	node := operands[len(operands)-1]
	for i := len(ops) - 1; i >= 0; i-- {
		left := operands[i]
		line, column := left.Pos()
		node = &ast.Binary{
			ExprMeta: ast.ExprMeta{Line: line, Column: column},
			Op:       ops[i],
			Left:     left,
			Right:    node,
		}
	}
	return node
}

func isAssignOp(kind token.Kind) bool {
	switch kind {
	case token.Assign, token.AddAssign, token.SubAssign, token.MulAssign,
		token.DivAssign, token.ModAssign, token.AndAssign, token.OrAssign,
		token.XorAssign, token.ShiftLeftAssign, token.ShiftRightAssign:
		return true
	default:
		return false
	}
}

func assignOpFor(kind token.Kind) ast.BinaryOp {
	switch kind {
	case token.Assign:
		return ast.Assign
	case token.AddAssign:
		return ast.AddAssign
	case token.SubAssign:
		return ast.SubAssign
	case token.MulAssign:
		return ast.MulAssign
	case token.DivAssign:
		return ast.DivAssign
	case token.ModAssign:
		return ast.ModAssign
	case token.AndAssign:
		return ast.AndAssign
	case token.OrAssign:
		return ast.OrAssign
	case token.XorAssign:
		return ast.XorAssign
	case token.ShiftLeftAssign:
		return ast.ShlAssign
	case token.ShiftRightAssign:
		return ast.ShrAssign
	default:
		return -1
	}
}

// binaryLevel implements one left-associative binary precedence
// level: parse one operand with next, then fold in operator/operand
// pairs while the next token is one of kinds.
func (p *Parser) binaryLevel(next func() ast.Expression, table map[token.Kind]ast.BinaryOp) ast.Expression {
	node := next()
	for {
		op, ok := table[p.input.Peek().Kind]
		if !ok {
			return node
		}
		tok := p.input.Next()
		right := next()
		node = &ast.Binary{
			ExprMeta: ast.ExprMeta{Line: tok.Line, Column: tok.Column},
			Op:       op,
			Left:     node,
			Right:    right,
		}
	}
}

var logicalOrTable = map[token.Kind]ast.BinaryOp{token.LogicalOr: ast.LogicalOr}
var logicalAndTable = map[token.Kind]ast.BinaryOp{token.LogicalAnd: ast.LogicalAnd}
var bitwiseOrTable = map[token.Kind]ast.BinaryOp{token.Pipe: ast.BitOr}
var bitwiseXorTable = map[token.Kind]ast.BinaryOp{token.Caret: ast.BitXor}
var bitwiseAndTable = map[token.Kind]ast.BinaryOp{token.Ampersand: ast.BitAnd}
var equalityTable = map[token.Kind]ast.BinaryOp{token.Equal: ast.Eq, token.NotEqual: ast.Ne}
var relationalTable = map[token.Kind]ast.BinaryOp{
	token.Less: ast.Lt, token.Greater: ast.Gt,
	token.LessEqual: ast.Le, token.GreaterEqual: ast.Ge,
}
var shiftTable = map[token.Kind]ast.BinaryOp{token.ShiftLeft: ast.Shl, token.ShiftRight: ast.Shr}
var additiveTable = map[token.Kind]ast.BinaryOp{token.Plus: ast.Add, token.Minus: ast.Sub}
var multiplicativeTable = map[token.Kind]ast.BinaryOp{
	token.Asterisk: ast.Mul, token.Slash: ast.Div, token.Percent: ast.Mod,
}

func (p *Parser) parseLogicalOr() ast.Expression {
	return p.binaryLevel(p.parseLogicalAnd, logicalOrTable)
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	return p.binaryLevel(p.parseBitwiseOr, logicalAndTable)
}

func (p *Parser) parseBitwiseOr() ast.Expression {
	return p.binaryLevel(p.parseBitwiseXor, bitwiseOrTable)
}

func (p *Parser) parseBitwiseXor() ast.Expression {
	return p.binaryLevel(p.parseBitwiseAnd, bitwiseXorTable)
}

func (p *Parser) parseBitwiseAnd() ast.Expression {
	return p.binaryLevel(p.parseEquality, bitwiseAndTable)
}

func (p *Parser) parseEquality() ast.Expression {
	return p.binaryLevel(p.parseRelational, equalityTable)
}

func (p *Parser) parseRelational() ast.Expression {
	return p.binaryLevel(p.parseShift, relationalTable)
}

func (p *Parser) parseShift() ast.Expression {
	return p.binaryLevel(p.parseAdditive, shiftTable)
}

func (p *Parser) parseAdditive() ast.Expression {
	return p.binaryLevel(p.parseMultiplicative, additiveTable)
}

func (p *Parser) parseMultiplicative() ast.Expression {
	return p.binaryLevel(p.parseUnary, multiplicativeTable)
}

// parseUnary handles the six prefix operators, recursing on the same
// level so `!!x` and `*&x` both parse. A bare type (`int` plus zero
// or more `*`) encountered here - i.e. never followed by anything a
// unary or primary expression would produce - is a quirk inherited
// from the source language: it parses as the integer literal 0.
func (p *Parser) parseUnary() ast.Expression {
	peek := p.input.Peek()

	var op ast.UnaryOp
	switch peek.Kind {
	case token.Asterisk:
		op = ast.ValueOf
	case token.Ampersand:
		op = ast.AddressOf
	case token.Plus:
		op = ast.Positive
	case token.Minus:
		op = ast.Negative
	case token.LogicalNot:
		op = ast.LogicalNot
	case token.BinaryNot:
		op = ast.BinaryNot
	case token.Int:
		p.input.Next()
		for p.input.Peek().Kind == token.Asterisk {
			p.input.Next()
		}
		return &ast.IntegerLiteral{ExprMeta: ast.ExprMeta{Line: peek.Line, Column: peek.Column}, Value: 0}
	default:
		return p.parsePrimary()
	}

	p.input.Next()
	operand := p.parseUnary()
	return &ast.Unary{
		ExprMeta: ast.ExprMeta{Line: peek.Line, Column: peek.Column},
		Op:       op,
		Operand:  operand,
	}
}
