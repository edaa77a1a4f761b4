// Package parser reads the indentation-structured surface syntax into the
// same node sequence the wire codec produces.
package parser

import (
	"io"
	"strconv"

	"github.com/ztrue/tracerr"

	"github.com/pontaoski/nodewalk/ast"
	"github.com/pontaoski/nodewalk/errors"
	"github.com/pontaoski/nodewalk/lexer"
	"github.com/pontaoski/nodewalk/types"
)

type Parser struct {
	l     *lexer.Lexer
	nodes []ast.Node
}

func NewParser(l *lexer.Lexer) Parser {
	return Parser{l: l}
}

// Parse reads a whole program from r. Syntax errors carry the position of
// the offending token.
func Parse(r io.Reader, filename string) ([]ast.Node, error) {
	p := NewParser(lexer.NewLexer(r, filename))
	if err := p.Parse(); err != nil {
		return nil, err
	}
	return p.Nodes(), nil
}

func (p *Parser) Nodes() []ast.Node {
	return p.nodes
}

func (p *Parser) Parse() (err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if ok {
				err = tracerr.Wrap(rerr)
			} else {
				panic(r)
			}
		}
	}()
	for {
		if p.l.PeekIs(types.EOF) {
			return
		}
		if p.l.PeekIs(types.EOS) {
			p.l.LexExpecting(types.EOS)
			continue
		}

		p.nodes = append(p.nodes, p.parseStatement())
	}
}

func (p *Parser) parseStatement() ast.Node {
	if p.l.PeekIs(types.WHILE) {
		return p.parseWhile()
	}

	node := p.parseSimple()
	p.l.LexExpecting(types.EOS)
	return node
}

// parseWhile handles both the indented block form and the single line form
// "while cond: stmt".
func (p *Parser) parseWhile() ast.Node {
	p.l.LexExpecting(types.WHILE)
	cond := p.parseExpression()
	p.l.LexExpecting(types.COLON)

	body := []ast.Node{}
	if !p.l.PeekIs(types.EOS) {
		body = append(body, p.parseSimple())
		p.l.LexExpecting(types.EOS)
		return ast.WhileLoop{Condition: cond, Body: body}
	}

	p.l.LexExpecting(types.EOS)
	p.l.LexExpecting(types.INDENT)
	for !p.l.PeekIs(types.DEDENT) {
		if p.l.PeekIs(types.EOS) {
			p.l.LexExpecting(types.EOS)
			continue
		}
		if p.l.PeekIs(types.EOF) {
			break
		}

		body = append(body, p.parseStatement())
	}
	p.l.LexExpecting(types.DEDENT)

	return ast.WhileLoop{Condition: cond, Body: body}
}

// parseSimple parses an assignment or an expression that has a node form.
func (p *Parser) parseSimple() ast.Node {
	if p.l.PeekIs(types.IDENT) {
		if next, _ := p.l.PeekAt(1); next.Kind == types.ASSIGN {
			_, name := p.l.LexExpecting(types.IDENT)
			p.l.LexExpecting(types.ASSIGN)
			return ast.Assignment{
				Name:  name,
				Value: p.parseExpression(),
			}
		}
	}

	tok, _ := p.l.Peek()
	expr := p.parseExpression()
	node, ok := expr.(ast.Node)
	if !ok {
		panic(errors.NotAStatement{Location: tok.Location})
	}
	return node
}

// parseExpression parses at most one comparison; comparisons don't chain.
func (p *Parser) parseExpression() ast.Expression {
	left := p.parseAdditive()

	if ok, _, lit := p.l.PeekIsWithRet(types.LESS, types.GREATER, types.EQUALS, types.NOTEQUALS); ok {
		p.l.Lex()
		return ast.Comparison{
			Left:  left,
			Op:    ast.Operator(lit),
			Right: p.parseAdditive(),
		}
	}

	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	expr := p.parseTerm()
	for {
		ok, _, lit := p.l.PeekIsWithRet(types.PLUS, types.MINUS)
		if !ok {
			return expr
		}
		p.l.Lex()
		expr = ast.BinaryOperation{
			Left:  expr,
			Op:    ast.Operator(lit),
			Right: p.parseTerm(),
		}
	}
}

func (p *Parser) parseTerm() ast.Expression {
	expr := p.parseUnary()
	for {
		ok, _, lit := p.l.PeekIsWithRet(types.STAR, types.SLASH)
		if !ok {
			return expr
		}
		p.l.Lex()
		expr = ast.BinaryOperation{
			Left:  expr,
			Op:    ast.Operator(lit),
			Right: p.parseUnary(),
		}
	}
}

// parseUnary folds a minus in front of a number literal and otherwise
// rewrites -x as 0 - x, since nodes have no unary form.
func (p *Parser) parseUnary() ast.Expression {
	if !p.l.PeekIs(types.MINUS) {
		return p.parseExpressionLeaf()
	}

	p.l.LexExpecting(types.MINUS)
	operand := p.parseUnary()
	switch v := operand.(type) {
	case ast.Integer:
		return -v
	case ast.Float:
		return -v
	}

	return ast.BinaryOperation{
		Left:  ast.Integer(0),
		Op:    ast.Subtract,
		Right: operand,
	}
}

func (p *Parser) parseExpressionLeaf() ast.Expression {
	tok, lit := p.l.LexExpecting(
		types.INT, types.FLOAT, types.STRING, types.IDENT, types.LPAREN,
		types.TRUE, types.FALSE, types.NONE,
	)

	switch tok.Kind {
	case types.INT:
		parsed, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			panic(errors.BadLiteral{Literal: lit, Location: tok.Location})
		}
		return ast.Integer(parsed)
	case types.FLOAT:
		parsed, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			panic(errors.BadLiteral{Literal: lit, Location: tok.Location})
		}
		return ast.Float(parsed)
	case types.STRING:
		return ast.String(lit)
	case types.TRUE:
		return ast.Boolean(true)
	case types.FALSE:
		return ast.Boolean(false)
	case types.NONE:
		return ast.Null{}
	case types.LPAREN:
		expr := p.parseExpression()
		p.l.LexExpecting(types.RPAREN)
		return expr
	case types.IDENT:
		if !p.l.PeekIs(types.LPAREN) {
			return ast.String(lit)
		}

		p.l.LexExpecting(types.LPAREN)
		args := []ast.Expression{}

		if !p.l.PeekIs(types.RPAREN) {
			for {
				args = append(args, p.parseExpression())

				if p.l.PeekIs(types.RPAREN) {
					break
				}

				p.l.LexExpecting(types.COMMA)
				if p.l.PeekIs(types.RPAREN) {
					break
				}
			}
		}
		p.l.LexExpecting(types.RPAREN)

		return ast.FunctionCall{
			Name: lit,
			Args: args,
		}
	}

	panic("unhandled")
}
