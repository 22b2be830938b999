package parser

import (
	"strconv"
	"strings"

	"github.com/conchlang/conch/internal/ast"
	"github.com/conchlang/conch/internal/diag"
	"github.com/conchlang/conch/internal/token"
)

// parseExpression is the Pratt driver: look up a prefix handler for the
// current token, then keep folding infix operators whose precedence
// strictly exceeds prec.
func (p *Parser) parseExpression(prec precedence) ast.Expr {
	prefix, ok := p.prefixFns[p.cur().Kind]
	if !ok {
		p.errorAt(diag.NoPrefixParseFunction, p.cur(), "No prefix parse function for %s found", p.cur().Kind)
		return nil
	}
	left := prefix(p)
	if left == nil {
		return nil
	}
	for !p.stream.IsEOF() && prec < p.curPrecedence() {
		infix, ok := p.infixFns[p.cur().Kind]
		if !ok {
			return left
		}
		left = infix(p, left)
		if left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) registerPrefix() {
	m := p.prefixFns
	m[token.IDENT] = parseIdentifier
	for _, k := range []token.Kind{token.INT_2, token.INT_8, token.INT_10, token.INT_16,
		token.UINT_2, token.UINT_8, token.UINT_10, token.UINT_16,
		token.SIZE_2, token.SIZE_8, token.SIZE_10, token.SIZE_16} {
		m[k] = parseIntLiteral
	}
	m[token.FLOAT] = parseFloatLiteral
	m[token.STRING] = parseStringLiteral
	m[token.MULTILINE_STRING] = parseStringLiteral
	m[token.CHARACTER] = parseCharacterLiteral
	m[token.TRUE] = parseBoolLiteral
	m[token.FALSE] = parseBoolLiteral
	m[token.NIL] = parseNilLiteral
	m[token.CONTINUE] = parseContinueLiteral
	m[token.BANG] = parsePrefixExpr
	m[token.NOT] = parsePrefixExpr
	m[token.MINUS] = parsePrefixExpr
	m[token.TYPEOF] = parsePrefixExpr
	m[token.LPAREN] = parseGroupedExpr
	m[token.IF] = parseIfExpr
	m[token.MATCH] = parseMatchExpr
	m[token.FN] = parseFnExprOrType
	m[token.STRUCT] = parseStructLiteralExpr
	m[token.ENUM] = parseEnumLiteralExpr
	m[token.LBRACKET] = parseArrayLiteral
	m[token.FOR] = parseForExpr
	m[token.WHILE] = parseWhileExpr
	m[token.DO] = parseDoWhileExpr
	m[token.LOOP] = parseLoopExpr
}

func (p *Parser) registerInfix() {
	m := p.infixFns
	binaryKinds := []token.Kind{
		token.PLUS, token.MINUS, token.STAR, token.STAR_STAR, token.SLASH, token.PERCENT,
		token.AND, token.OR, token.XOR, token.SHL, token.SHR,
		token.LT, token.LTEQ, token.GT, token.GTEQ, token.EQ, token.NEQ,
		token.BOOLEAN_AND, token.BOOLEAN_OR, token.IS, token.IN,
		token.DOT_DOT, token.DOT_DOT_EQ,
	}
	for _, k := range binaryKinds {
		m[k] = parseInfixExpr
	}
	assignKinds := []token.Kind{
		token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN, token.SLASH_ASSIGN,
		token.PERCENT_ASSIGN, token.AND_ASSIGN, token.OR_ASSIGN, token.XOR_ASSIGN,
		token.SHL_ASSIGN, token.SHR_ASSIGN, token.NOT_ASSIGN,
	}
	for _, k := range assignKinds {
		m[k] = parseAssignmentExpr
	}
	m[token.LPAREN] = parseCallExprPlain
	m[token.WITH] = parseCallWithGenerics
	m[token.LBRACKET] = parseIndexExpr
	m[token.COLON_COLON] = parseNamespaceExpr
	m[token.ORELSE] = parseInfixExpr
}

func parseIdentifier(p *Parser) ast.Expr {
	tok := p.cur()
	p.advance()
	return ast.NewIdentifier(tok)
}

func parseIntLiteral(p *Parser) ast.Expr {
	tok := p.cur()
	p.advance()
	base, _ := token.Base(tok.Kind)
	suffixLen := 0
	lit := tok.Literal
	// Only u/U/z/Z ever form a suffix; none of the four are valid digits in
	// any supported base, so scanning for them specifically (rather than any
	// trailing letter) avoids eating real digits off a hex literal like
	// 0xFFFFFFFFFFFFFFFF, whose trailing hex digits are themselves letters.
	for i := len(lit) - 1; i >= 0 && suffixLen < 2; i-- {
		c := lit[i]
		if c == 'u' || c == 'U' || c == 'z' || c == 'Z' {
			suffixLen++
		} else {
			break
		}
	}
	digits := lit[:len(lit)-suffixLen]
	digits = strings.ReplaceAll(digits, "_", "")
	switch base {
	case 2:
		digits = strings.TrimPrefix(strings.TrimPrefix(digits, "0b"), "0B")
	case 8:
		digits = strings.TrimPrefix(strings.TrimPrefix(digits, "0o"), "0O")
	case 16:
		digits = strings.TrimPrefix(strings.TrimPrefix(digits, "0x"), "0X")
	}
	value, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			cat := diag.SignedIntegerOverflow
			switch {
			case token.IsUnsignedInteger(tok.Kind):
				cat = diag.UnsignedIntegerOverflow
			case token.IsSizeInteger(tok.Kind):
				cat = diag.SizeIntegerOverflow
			}
			p.errorAt(cat, tok, "%s", cat.String())
		} else {
			p.errorAt(diag.MalformedIntegerStr, tok, "MALFORMED_INTEGER_STR")
		}
		return nil
	}
	if token.IsSignedInteger(tok.Kind) && value > 1<<63-1 {
		p.errorAt(diag.SignedIntegerOverflow, tok, "SIGNED_INTEGER_OVERFLOW")
		return nil
	}
	return ast.NewIntLiteral(tok, int64(value))
}

func parseFloatLiteral(p *Parser) ast.Expr {
	tok := p.cur()
	p.advance()
	lit := strings.ReplaceAll(tok.Literal, "_", "")
	value, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			p.errorAt(diag.FloatOverflow, tok, "FLOAT_OVERFLOW")
		} else {
			p.errorAt(diag.MalformedFloatStr, tok, "MALFORMED_FLOAT_STR")
		}
		return nil
	}
	return ast.NewFloatLiteral(tok, value)
}

func parseStringLiteral(p *Parser) ast.Expr {
	tok := p.cur()
	p.advance()
	value, err := token.PromoteString(tok)
	if err != nil {
		p.errorAt(diag.NonStringToken, tok, "NON_STRING_TOKEN")
		return nil
	}
	return ast.NewStringLiteral(tok, value)
}

func parseCharacterLiteral(p *Parser) ast.Expr {
	tok := p.cur()
	p.advance()
	inner := tok.Literal
	if len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}
	var b byte
	if strings.HasPrefix(inner, "\\") && len(inner) >= 2 {
		escapes := map[byte]byte{'n': '\n', 'r': '\r', 't': '\t', '\\': '\\', '\'': '\'', '"': '"', '0': 0}
		if v, ok := escapes[inner[1]]; ok {
			b = v
		} else {
			b = inner[1]
		}
	} else if len(inner) >= 1 {
		b = inner[0]
	}
	return ast.NewByteLiteral(tok, b)
}

func parseBoolLiteral(p *Parser) ast.Expr {
	tok := p.cur()
	p.advance()
	return ast.NewBoolLiteral(tok, tok.Kind == token.TRUE)
}

func parseNilLiteral(p *Parser) ast.Expr {
	tok := p.cur()
	p.advance()
	return ast.NewNilLiteral(tok)
}

func parseContinueLiteral(p *Parser) ast.Expr {
	tok := p.cur()
	p.advance()
	return ast.NewContinueLiteral(tok)
}

func parsePrefixExpr(p *Parser) ast.Expr {
	tok := p.cur()
	p.advance()
	operand := p.parseExpression(prefixPrec)
	if operand == nil {
		p.errorAt(diag.PrefixMissingOperand, tok, "PREFIX_MISSING_OPERAND")
		return nil
	}
	return ast.NewPrefixExpr(tok, tok.Kind, operand)
}

func parseGroupedExpr(p *Parser) ast.Expr {
	p.advance() // consume '('
	expr := p.parseExpression(lowest)
	if expr == nil {
		return nil
	}
	if _, ok := p.expect(token.RPAREN); !ok {
		return nil
	}
	return expr
}

func parseInfixExpr(p *Parser, left ast.Expr) ast.Expr {
	tok := p.cur()
	prec := precedences[tok.Kind]
	p.advance()
	right := p.parseExpression(prec)
	if right == nil {
		p.errorAt(diag.InfixMissingRHS, tok, "INFIX_MISSING_RHS")
		return nil
	}
	return ast.NewInfixExpr(tok, left, tok.Kind, right)
}

func parseAssignmentExpr(p *Parser, left ast.Expr) ast.Expr {
	tok := p.cur()
	p.advance()
	right := p.parseExpression(assignPrec)
	if right == nil {
		p.errorAt(diag.InfixMissingRHS, tok, "INFIX_MISSING_RHS")
		return nil
	}
	return ast.NewAssignmentExpr(tok, left, tok.Kind, right)
}

func parseIndexExpr(p *Parser, left ast.Expr) ast.Expr {
	tok := p.cur()
	p.advance() // consume '['
	index := p.parseExpression(lowest)
	if index == nil {
		return nil
	}
	if _, ok := p.expect(token.RBRACKET); !ok {
		return nil
	}
	return ast.NewIndexExpr(tok, left, index)
}

func parseNamespaceExpr(p *Parser, left ast.Expr) ast.Expr {
	tok := p.cur()
	p.advance() // consume '::'
	nameTok, ok := p.expect(token.IDENT)
	if !ok {
		return nil
	}
	return ast.NewNamespaceExpr(tok, left, ast.NewIdentifier(nameTok))
}

func parseCallExprPlain(p *Parser, left ast.Expr) ast.Expr {
	tok := p.cur()
	args := p.parseCallArgs()
	if args == nil && p.stream.IsEOF() {
		return nil
	}
	return ast.NewCallExpr(tok, left, args, nil)
}

func parseCallWithGenerics(p *Parser, left ast.Expr) ast.Expr {
	tok := p.cur()
	p.advance() // consume 'with'
	if p.cur().Kind != token.LT {
		p.errorAt(diag.MissingWithClause, tok, "MISSING_WITH_CLAUSE")
		return nil
	}
	p.advance() // consume '<'
	var generics []ast.TypeExpr
	for p.cur().Kind != token.GT {
		t := p.parseTypeExpr()
		if t == nil {
			return nil
		}
		generics = append(generics, t)
		if p.cur().Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.GT); !ok {
		return nil
	}
	if _, ok := p.expect(token.LPAREN); !ok {
		return nil
	}
	args := p.parseCallArgsAfterLParen()
	return ast.NewCallExpr(tok, left, args, generics)
}

// parseCallArgs is invoked with the current token positioned on '(' (the
// token that dispatched the call infix handler).
func (p *Parser) parseCallArgs() []ast.CallArg {
	p.advance() // consume '('
	return p.parseCallArgsAfterLParen()
}

func (p *Parser) parseCallArgsAfterLParen() []ast.CallArg {
	var args []ast.CallArg
	for p.cur().Kind != token.RPAREN {
		isRef := false
		if p.cur().Kind == token.REF {
			isRef = true
			p.advance()
		}
		e := p.parseExpression(assignPrec)
		if e == nil {
			return nil
		}
		args = append(args, ast.CallArg{IsRef: isRef, Expr: e})
		if p.cur().Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RPAREN); !ok {
		return nil
	}
	return args
}
