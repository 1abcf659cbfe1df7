package parser

import (
	"strconv"

	"github.com/skx/minic/ast"
	"github.com/skx/minic/token"
)

// parsePrimary parses a literal, identifier, call, or parenthesized
// expression, then layers zero or more `[ expression ]` indexing
// suffixes on top.
func (p *Parser) parsePrimary() ast.Expression {
	node := p.parseAtom()
	for p.input.Peek().Kind == token.LeftBracket {
		open := p.input.Next()
		index := p.parseExpression()
		p.expect(token.RightBracket)
		node = &ast.Indexing{
			ExprMeta: ast.ExprMeta{Line: open.Line, Column: open.Column},
			Array:    node,
			Index:    index,
		}
	}
	return node
}

func (p *Parser) parseAtom() ast.Expression {
	peek := p.input.Peek()
	meta := ast.ExprMeta{Line: peek.Line, Column: peek.Column}

	switch peek.Kind {
	case token.IntegerLiteral:
		tok := p.input.Next()
		value, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			p.input.Die("malformed integer literal", tok)
		}
		return &ast.IntegerLiteral{ExprMeta: meta, Value: value}

	case token.StringLiteral:
		tok := p.input.Next()
		return &ast.StringLiteral{ExprMeta: meta, Text: tok.Text}

	case token.CharacterLiteral:
		tok := p.input.Next()
		return &ast.CharacterLiteral{ExprMeta: meta, Text: tok.Text}

	case token.Identifier:
		name := p.input.Next().Text
		if p.input.Peek().Kind == token.LeftParen {
			return p.parseCallArgs(name, meta)
		}
		return &ast.Identifier{ExprMeta: meta, Name: name}

	case token.LeftParen:
		p.input.Next()
		inner := p.parseExpression()
		p.expect(token.RightParen)
		return inner

	default:
		p.die("expected literal")
		return nil
	}
}

func (p *Parser) parseCallArgs(name string, meta ast.ExprMeta) ast.Expression {
	p.expect(token.LeftParen)
	var args []ast.Expression
	for p.input.Peek().Kind != token.RightParen {
		args = append(args, p.parseExpression())
		if p.input.Peek().Kind != token.RightParen {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RightParen)
	return &ast.Call{ExprMeta: meta, Name: name, Args: args}
}
