package parser

import (
	"github.com/conchlang/conch/internal/ast"
	"github.com/conchlang/conch/internal/diag"
	"github.com/conchlang/conch/internal/token"
)

func parseIfExpr(p *Parser) ast.Expr {
	tok := p.cur()
	p.advance() // consume 'if'
	if _, ok := p.expect(token.LPAREN); !ok {
		return nil
	}
	cond := p.parseExpression(lowest)
	if cond == nil {
		return nil
	}
	if _, ok := p.expect(token.RPAREN); !ok {
		return nil
	}
	cons := p.parseStatement()
	if cons == nil {
		return nil
	}
	var alt ast.Stmt
	if p.cur().Kind == token.ELSE {
		p.advance()
		alt = p.parseStatement()
		if alt == nil {
			return nil
		}
	}
	return ast.NewIfExpr(tok, cond, cons, alt)
}

func parseMatchExpr(p *Parser) ast.Expr {
	tok := p.cur()
	p.advance() // consume 'match'
	scrutinee := p.parseExpression(lowest)
	if scrutinee == nil {
		return nil
	}
	if _, ok := p.expect(token.LBRACE); !ok {
		return nil
	}
	var arms []ast.MatchArm
	for p.cur().Kind != token.RBRACE {
		pattern := p.parseExpression(lowest)
		if pattern == nil {
			return nil
		}
		if _, ok := p.expect(token.FAT_ARROW); !ok {
			return nil
		}
		dispatch := p.parseMatchDispatch()
		if dispatch == nil {
			return nil
		}
		arms = append(arms, ast.MatchArm{Pattern: pattern, Dispatch: dispatch})
		if p.cur().Kind == token.SEMICOLON {
			p.advance()
		}
		if p.cur().Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if len(arms) == 0 {
		p.errorAt(diag.ArmlessMatchExpr, tok, "ARMLESS_MATCH_EXPR")
		return nil
	}
	if _, ok := p.expect(token.RBRACE); !ok {
		return nil
	}
	var catchAll ast.Stmt
	if p.cur().Kind == token.ELSE {
		p.advance()
		if k := p.cur().Kind; nonExprStmtStarts[k] || k == token.RETURN || k == token.BREAK {
			p.errorAt(diag.IllegalMatchCatchAll, tok, "ILLEGAL_MATCH_CATCH_ALL")
			return nil
		}
		catchAll = p.parseExprStatement()
		if catchAll == nil {
			return nil
		}
		if _, ok := catchAll.(*ast.ExprStmt); !ok {
			p.errorAt(diag.IllegalMatchCatchAll, tok, "ILLEGAL_MATCH_CATCH_ALL")
			return nil
		}
	}
	return ast.NewMatchExpr(tok, scrutinee, arms, catchAll)
}

// nonExprStmtStarts holds the token kinds that begin a statement other than
// an expression or jump statement.
var nonExprStmtStarts = map[token.Kind]bool{
	token.VAR: true, token.CONST: true, token.COMPTIME: true, token.PRIVATE: true,
	token.EXTERN: true, token.EXPORT: true, token.STATIC: true,
	token.TYPE: true, token.IMPL: true, token.IMPORT: true,
	token.LBRACE: true, token.UNDERSCORE: true,
}

// parseMatchDispatch parses one arm's right-hand side: either an
// expression or a jump/expression statement. Any other statement kind is
// ILLEGAL_MATCH_ARM.
func (p *Parser) parseMatchDispatch() ast.Stmt {
	tok := p.cur()
	switch tok.Kind {
	case token.RETURN, token.BREAK, token.CONTINUE:
		return p.parseJumpStmt()
	default:
		if nonExprStmtStarts[tok.Kind] {
			p.errorAt(diag.IllegalMatchArm, tok, "ILLEGAL_MATCH_ARM")
			return nil
		}
		stmt := p.parseExprStatement()
		if stmt == nil {
			return nil
		}
		return stmt
	}
}

func parseForExpr(p *Parser) ast.Expr {
	tok := p.cur()
	p.advance() // consume 'for'
	if _, ok := p.expect(token.LPAREN); !ok {
		return nil
	}
	var iterables []ast.Expr
	for p.cur().Kind != token.RPAREN {
		e := p.parseExpression(assignPrec)
		if e == nil {
			return nil
		}
		iterables = append(iterables, e)
		if p.cur().Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RPAREN); !ok {
		return nil
	}
	if len(iterables) == 0 {
		p.errorAt(diag.ForMissingIterables, tok, "FOR_MISSING_ITERABLES")
		return nil
	}
	var captures []ast.ForCapture
	if p.cur().Kind == token.COLON {
		p.advance()
		if _, ok := p.expect(token.LPAREN); !ok {
			return nil
		}
		for p.cur().Kind != token.RPAREN {
			cap, ok := p.parseForCapture()
			if !ok {
				return nil
			}
			captures = append(captures, cap)
			if p.cur().Kind == token.COMMA {
				p.advance()
				continue
			}
			break
		}
		if _, ok := p.expect(token.RPAREN); !ok {
			return nil
		}
		if len(captures) != len(iterables) {
			p.errorAt(diag.ForIterableCaptureMismatch, tok, "FOR_ITERABLE_CAPTURE_MISMATCH")
			return nil
		}
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	if len(body.Stmts) == 0 {
		p.errorAt(diag.EmptyForLoop, tok, "EMPTY_FOR_LOOP")
		return nil
	}
	elseStmt, ok := p.parseOptionalLoopElse()
	if !ok {
		return nil
	}
	return ast.NewForExpr(tok, iterables, captures, body, elseStmt)
}

func (p *Parser) parseForCapture() (ast.ForCapture, bool) {
	if p.cur().Kind == token.UNDERSCORE {
		p.advance()
		return ast.ForCapture{Discard: true}, true
	}
	isRef := false
	if p.cur().Kind == token.REF {
		isRef = true
		p.advance()
	}
	nameTok, ok := p.expect(token.IDENT)
	if !ok {
		return ast.ForCapture{}, false
	}
	return ast.ForCapture{IsRef: isRef, Identifier: nameTok.Literal}, true
}

// parseOptionalLoopElse parses a trailing `else (block|expr-stmt)` shared
// by for/while. A declaration/type/impl/import statement in else position
// is ILLEGAL_LOOP_NON_BREAK.
func (p *Parser) parseOptionalLoopElse() (ast.Stmt, bool) {
	if p.cur().Kind != token.ELSE {
		return nil, true
	}
	tok := p.cur()
	p.advance()
	stmt := p.parseStatement()
	if stmt == nil {
		return nil, false
	}
	switch stmt.(type) {
	case *ast.DeclStmt, *ast.TypeDeclStmt, *ast.ImplStmt, *ast.ImportStmt:
		p.errorAt(diag.IllegalLoopNonBreak, tok, "ILLEGAL_LOOP_NON_BREAK")
		return nil, false
	}
	return stmt, true
}

func parseWhileExpr(p *Parser) ast.Expr {
	tok := p.cur()
	p.advance() // consume 'while'
	if _, ok := p.expect(token.LPAREN); !ok {
		return nil
	}
	var cond ast.Expr
	if p.cur().Kind != token.RPAREN {
		cond = p.parseExpression(lowest)
		if cond == nil {
			return nil
		}
	}
	if _, ok := p.expect(token.RPAREN); !ok {
		return nil
	}
	if cond == nil {
		p.errorAt(diag.WhileMissingCondition, tok, "WHILE_MISSING_CONDITION")
		return nil
	}
	var cont ast.Expr
	if p.cur().Kind == token.COLON {
		p.advance()
		if _, ok := p.expect(token.LPAREN); !ok {
			return nil
		}
		if p.cur().Kind != token.RPAREN {
			cont = p.parseExpression(lowest)
			if cont == nil {
				return nil
			}
		}
		if _, ok := p.expect(token.RPAREN); !ok {
			return nil
		}
		if cont == nil {
			p.errorAt(diag.ImproperWhileContinuation, tok, "IMPROPER_WHILE_CONTINUATION")
			return nil
		}
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	elseStmt, ok := p.parseOptionalLoopElse()
	if !ok {
		return nil
	}
	return ast.NewWhileExpr(tok, cond, cont, body, elseStmt)
}

func parseDoWhileExpr(p *Parser) ast.Expr {
	tok := p.cur()
	p.advance() // consume 'do'
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	if _, ok := p.expect(token.WHILE); !ok {
		return nil
	}
	if _, ok := p.expect(token.LPAREN); !ok {
		return nil
	}
	cond := p.parseExpression(lowest)
	if cond == nil {
		return nil
	}
	if _, ok := p.expect(token.RPAREN); !ok {
		return nil
	}
	return ast.NewDoWhileExpr(tok, body, cond)
}

func parseLoopExpr(p *Parser) ast.Expr {
	tok := p.cur()
	p.advance() // consume 'loop'
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return ast.NewLoopExpr(tok, body)
}
