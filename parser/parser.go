// Package parser implements a recursive-descent, operator-precedence
// parser that turns a buffered token stream into an ast.Program. It
// performs no semantic validation; that is the semantic package's
// job.
package parser

import (
	"github.com/skx/minic/ast"
	"github.com/skx/minic/lexer"
	"github.com/skx/minic/token"
)

// Parser consumes a BufferedStream and produces an ast.Program.
type Parser struct {
	input *lexer.BufferedStream
}

// New returns a Parser reading source, reporting fatal errors as
// originating from filename.
func New(filename, source string) *Parser {
	return &Parser{input: lexer.NewBufferedStream(filename, source)}
}

// Parse consumes the entire token stream and returns the resulting
// program. Parse errors terminate the process with exit code 2 from
// within this call.
func (p *Parser) Parse() *ast.Program {
	var functions []*ast.Function
	for !p.input.Eof() {
		functions = append(functions, p.parseFunction())
	}
	return &ast.Program{Functions: functions}
}

func (p *Parser) die(message string) {
	p.input.Die(message, p.input.Peek())
}

// expect consumes and returns the next token if its kind matches;
// otherwise it dies with "expected <kind>, encountered <kind> instead".
func (p *Parser) expect(kind token.Kind) token.Token {
	peek := p.input.Peek()
	if peek.Kind != kind {
		p.input.Die("expected "+kind.String()+", encountered "+peek.Kind.String()+" instead", peek)
	}
	return p.input.Next()
}

func (p *Parser) parseType() ast.Type {
	p.expect(token.Int)
	depth := 0
	for p.input.Peek().Kind == token.Asterisk {
		p.input.Next()
		depth++
	}
	return ast.Type{PointerDepth: depth}
}

func (p *Parser) parseIdentifierName() string {
	return p.expect(token.Identifier).Text
}

func (p *Parser) parseParameters() []ast.Parameter {
	var params []ast.Parameter
	p.expect(token.LeftParen)
	for p.input.Peek().Kind != token.RightParen {
		typ := p.parseType()
		name := p.parseIdentifierName()
		params = append(params, ast.Parameter{Type: typ, Name: name})
		if p.input.Peek().Kind != token.RightParen {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RightParen)
	return params
}

func (p *Parser) parseFunction() *ast.Function {
	peek := p.input.Peek()
	returnType := p.parseType()
	name := p.parseIdentifierName()
	params := p.parseParameters()
	body := p.parseCompound()
	return &ast.Function{
		Line:       peek.Line,
		Column:     peek.Column,
		Name:       name,
		ReturnType: returnType,
		Parameters: params,
		Body:       body,
	}
}

func (p *Parser) parseCompound() *ast.Compound {
	open := p.expect(token.LeftBrace)
	var statements []ast.Statement
	for p.input.Peek().Kind != token.RightBrace {
		statements = append(statements, p.parseStatement())
	}
	p.expect(token.RightBrace)
	return &ast.Compound{
		StmtMeta:   ast.StmtMeta{Line: open.Line, Column: open.Column},
		Statements: statements,
	}
}

func (p *Parser) parseStatement() ast.Statement {
	peek := p.input.Peek()
	meta := ast.StmtMeta{Line: peek.Line, Column: peek.Column}

	switch peek.Kind {
	case token.LeftBrace:
		return p.parseCompound()

	case token.If:
		p.input.Next()
		p.expect(token.LeftParen)
		condition := p.parseExpression()
		p.expect(token.RightParen)
		then := p.parseStatement()
		return &ast.Conditional{StmtMeta: meta, Condition: condition, Then: then}

	case token.While:
		p.input.Next()
		p.expect(token.LeftParen)
		condition := p.parseExpression()
		p.expect(token.RightParen)
		body := p.parseStatement()
		return &ast.While{StmtMeta: meta, Condition: condition, Body: body}

	case token.Return:
		p.input.Next()
		value := p.parseExpression()
		p.expect(token.Semicolon)
		return &ast.Return{StmtMeta: meta, Value: value}

	case token.Break:
		p.input.Next()
		p.expect(token.Semicolon)
		return &ast.Break{StmtMeta: meta}

	case token.Continue:
		p.input.Next()
		p.expect(token.Semicolon)
		return &ast.Continue{StmtMeta: meta}

	case token.Int:
		typ := p.parseType()
		name := p.parseIdentifierName()
		var init ast.Expression
		if p.input.Peek().Kind == token.Assign {
			p.input.Next()
			init = p.parseExpression()
		}
		p.expect(token.Semicolon)
		return &ast.VarDecl{StmtMeta: meta, Name: name, Type: typ, Init: init}

	case token.Semicolon:
		p.input.Next()
		return &ast.NoOp{StmtMeta: meta}

	default:
		expr := p.parseExpression()
		p.expect(token.Semicolon)
		return &ast.ExpressionStmt{StmtMeta: meta, Expr: expr}
	}
}
