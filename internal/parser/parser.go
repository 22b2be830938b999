package parser

import (
	"github.com/conchlang/conch/internal/ast"
	"github.com/conchlang/conch/internal/diag"
	"github.com/conchlang/conch/internal/token"
)

// precedence is a level on the Pratt ladder. Higher binds tighter.
type precedence int

const (
	lowest precedence = iota
	assignPrec
	orElsePrec
	booleanOrPrec
	booleanAndPrec
	boolEquivPrec
	boolLtGtPrec
	rangePrec
	addSubPrec
	mulDivPrec
	prefixPrec
	callPrec
)

var precedences = map[token.Kind]precedence{
	token.ASSIGN: assignPrec, token.PLUS_ASSIGN: assignPrec, token.MINUS_ASSIGN: assignPrec,
	token.STAR_ASSIGN: assignPrec, token.SLASH_ASSIGN: assignPrec, token.PERCENT_ASSIGN: assignPrec,
	token.AND_ASSIGN: assignPrec, token.OR_ASSIGN: assignPrec, token.XOR_ASSIGN: assignPrec,
	token.SHL_ASSIGN: assignPrec, token.SHR_ASSIGN: assignPrec, token.NOT_ASSIGN: assignPrec,

	token.ORELSE: orElsePrec,
	token.BOOLEAN_OR: booleanOrPrec,
	token.BOOLEAN_AND: booleanAndPrec,
	token.EQ: boolEquivPrec, token.NEQ: boolEquivPrec,
	token.LT: boolLtGtPrec, token.LTEQ: boolLtGtPrec, token.GT: boolLtGtPrec, token.GTEQ: boolLtGtPrec,
	token.IS: boolLtGtPrec, token.IN: boolLtGtPrec,
	token.DOT_DOT: rangePrec, token.DOT_DOT_EQ: rangePrec,
	token.PLUS: addSubPrec, token.MINUS: addSubPrec,
	token.OR: addSubPrec, token.AND: addSubPrec, token.XOR: addSubPrec,
	token.STAR: mulDivPrec, token.SLASH: mulDivPrec, token.PERCENT: mulDivPrec,
	token.STAR_STAR: mulDivPrec, token.SHL: mulDivPrec, token.SHR: mulDivPrec,

	token.LPAREN: callPrec, token.LBRACKET: callPrec, token.COLON_COLON: callPrec, token.WITH: callPrec,
}

type prefixFn func(p *Parser) ast.Expr
type infixFn func(p *Parser, left ast.Expr) ast.Expr

// Parser consumes a token stream and builds an AST via Pratt expression
// parsing plus a statement dispatcher driven by the current token kind.
type Parser struct {
	stream TokenStream
	diags  []diag.Diagnostic

	prefixFns map[token.Kind]prefixFn
	infixFns  map[token.Kind]infixFn
}

// New builds a parser over a finished token vector.
func New(tokens []token.Token) *Parser {
	p := &Parser{stream: NewTokenStream(tokens)}
	p.prefixFns = make(map[token.Kind]prefixFn)
	p.infixFns = make(map[token.Kind]infixFn)
	p.registerPrefix()
	p.registerInfix()
	return p
}

// ParseFile parses the whole token stream into a File. Per the error
// recovery policy, if any diagnostic was produced the statement list is
// cleared before returning — the AST is considered invalid as a whole.
func (p *Parser) ParseFile() (*ast.File, []diag.Diagnostic) {
	startTok := p.cur()
	var stmts []ast.Stmt
	for !p.stream.IsEOF() {
		if p.cur().Kind == token.SEMICOLON {
			p.advance()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		} else if !p.stream.IsEOF() {
			p.advance()
		}
		if p.peekIsSemicolon() {
			p.advance()
		}
	}
	if len(p.diags) > 0 {
		stmts = nil
	}
	return ast.NewFile(startTok, stmts), p.diags
}

// peekIsSemicolon reports (without consuming) whether the current token is a
// semicolon. Statement parsers leave the cursor on the token after the
// statement, and a trailing semicolon after any statement is optional, so
// ParseFile uses this to find a stray ';' and swallow it.
func (p *Parser) peekIsSemicolon() bool {
	return p.cur().Kind == token.SEMICOLON
}

func (p *Parser) cur() token.Token { return p.stream.Cur() }
func (p *Parser) advance() token.Token {
	return p.stream.Advance()
}

func (p *Parser) curPrecedence() precedence {
	if pr, ok := precedences[p.cur().Kind]; ok {
		return pr
	}
	return lowest
}

// expect asserts the current token has the given kind; on success it
// advances past it and returns the consumed token. On failure it emits the
// canonical "Expected token <KIND>, found <KIND>" diagnostic and does not
// advance.
func (p *Parser) expect(kind token.Kind) (token.Token, bool) {
	if p.cur().Kind == kind {
		tok := p.cur()
		p.advance()
		return tok, true
	}
	p.errorAt(diag.UnexpectedToken, p.cur(), "Expected token %s, found %s", kind, p.cur().Kind)
	return p.cur(), false
}

func (p *Parser) errorAt(category diag.Category, tok token.Token, format string, args ...any) {
	pos := diag.Position{Line: tok.Line, Col: tok.Col}
	p.diags = append(p.diags, diag.New(category, pos, format, args...))
}
