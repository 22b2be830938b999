package parser

import (
	"github.com/conchlang/conch/internal/ast"
	"github.com/conchlang/conch/internal/diag"
	"github.com/conchlang/conch/internal/token"
)

// parseStatement dispatches on the current token kind per the statement
// table: declaration keywords, `type`, jump keywords, `impl`, `import`,
// `{` (block), `_` (discard), `;` (no-op), otherwise an expression
// statement.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur().Kind {
	case token.VAR, token.CONST, token.COMPTIME, token.PRIVATE, token.EXTERN, token.EXPORT, token.STATIC:
		return p.parseDeclStmt()
	case token.TYPE:
		return p.parseTypeDeclStmt()
	case token.BREAK, token.RETURN, token.CONTINUE:
		return p.parseJumpStmt()
	case token.IMPL:
		return p.parseImplStmt()
	case token.IMPORT:
		return p.parseImportStmt()
	case token.LBRACE:
		return p.parseBlock()
	case token.UNDERSCORE:
		return p.parseDiscardStmt()
	case token.SEMICOLON:
		p.advance()
		return nil
	default:
		return p.parseExprStatement()
	}
}

func (p *Parser) parseBlock() *ast.BlockStmt {
	tok, ok := p.expect(token.LBRACE)
	if !ok {
		return nil
	}
	var stmts []ast.Stmt
	for p.cur().Kind != token.RBRACE && !p.stream.IsEOF() {
		if p.cur().Kind == token.SEMICOLON {
			p.advance()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.cur().Kind == token.SEMICOLON {
			p.advance()
		}
	}
	if _, ok := p.expect(token.RBRACE); !ok {
		return nil
	}
	return ast.NewBlockStmt(tok, stmts)
}

var modifierFlags = map[token.Kind]ast.DeclModifier{
	token.VAR: ast.ModVariable, token.CONST: ast.ModConstant, token.COMPTIME: ast.ModComptime,
	token.PRIVATE: ast.ModPrivate, token.EXTERN: ast.ModExtern, token.EXPORT: ast.ModExport,
	token.STATIC: ast.ModStatic,
}

// parseDeclStmt parses `<modifiers> name [: type] [= init];`.
func (p *Parser) parseDeclStmt() ast.Stmt {
	tok := p.cur()
	var mods ast.DeclModifier
	for {
		flag, ok := modifierFlags[p.cur().Kind]
		if !ok {
			break
		}
		mods |= flag
		p.advance()
	}
	if !validModifiers(mods) {
		p.errorAt(diag.IllegalDeclModifiers, tok, "ILLEGAL_DECL_MODIFIERS")
		return nil
	}
	nameTok, ok := p.expect(token.IDENT)
	if !ok {
		return nil
	}
	var typ ast.TypeExpr
	switch p.cur().Kind {
	case token.COLON:
		p.advance()
		typeofTok := p.cur()
		t := p.parseTypeExpr()
		if t == nil {
			return nil
		}
		if _, isTypeof := t.(*ast.TypeofType); isTypeof {
			p.errorAt(diag.IllegalDeclConstruct, typeofTok, "ILLEGAL_DECL_CONSTRUCT")
			return nil
		}
		typ = t
	case token.WALRUS:
		typ = ast.NewImplicitType(p.cur())
		p.advance()
	default:
		p.errorAt(diag.UnexpectedToken, p.cur(), "Expected token %s, found %s", token.COLON, p.cur().Kind)
		return nil
	}
	var init ast.Expr
	if _, isImplicit := typ.(*ast.ImplicitType); isImplicit {
		init = p.parseExpression(lowest)
		if init == nil {
			return nil
		}
	} else if p.cur().Kind == token.ASSIGN {
		p.advance()
		init = p.parseExpression(lowest)
		if init == nil {
			return nil
		}
	}
	return ast.NewDeclStmt(tok, nameTok.Literal, typ, init, mods)
}

// validModifiers enforces the declaration modifier well-formedness constraints.
func validModifiers(mods ast.DeclModifier) bool {
	kindBits := 0
	for _, f := range []ast.DeclModifier{ast.ModVariable, ast.ModConstant, ast.ModComptime} {
		if mods&f != 0 {
			kindBits++
		}
	}
	if kindBits != 1 {
		return false
	}
	if mods&ast.ModExtern != 0 && mods&ast.ModComptime != 0 {
		return false
	}
	if mods&ast.ModExtern != 0 && mods&ast.ModExport != 0 {
		return false
	}
	visBits := 0
	for _, f := range []ast.DeclModifier{ast.ModPrivate, ast.ModExtern, ast.ModExport} {
		if mods&f != 0 {
			visBits++
		}
	}
	return visBits <= 1
}

// parseTypeDeclStmt parses `type Name = <value>`.
func (p *Parser) parseTypeDeclStmt() ast.Stmt {
	tok := p.cur()
	p.advance() // consume 'type'
	nameTok, ok := p.expect(token.IDENT)
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.ASSIGN); !ok {
		return nil
	}
	if primitiveTypeKinds[p.cur().Kind] {
		primTok := p.cur()
		p.advance()
		return ast.NewTypeDeclStmt(tok, nameTok.Literal, ast.NewPrimitiveType(primTok, primTok.Kind, false), true)
	}
	if p.cur().Kind == token.TYPEOF {
		typeofTok := p.cur()
		val := p.parseTypeExpr()
		if val == nil {
			p.errorAt(diag.MalformedTypeDecl, tok, "MALFORMED_TYPE_DECL")
			return nil
		}
		if tt, ok := val.(*ast.TypeofType); ok {
			switch tt.Expr.(type) {
			case *ast.StructLiteral, *ast.EnumLiteral, *ast.FunctionLiteral:
				p.errorAt(diag.RedundantTypeIntrospection, typeofTok, "REDUNDANT_TYPE_INTROSPECTION")
				return nil
			}
		}
		return ast.NewTypeDeclStmt(tok, nameTok.Literal, val, false)
	}
	val := p.parseTypeExpr()
	if val == nil {
		p.errorAt(diag.MalformedTypeDecl, tok, "MALFORMED_TYPE_DECL")
		return nil
	}
	return ast.NewTypeDeclStmt(tok, nameTok.Literal, val, false)
}

var jumpKinds = map[token.Kind]ast.JumpKind{
	token.RETURN: ast.JumpReturn, token.BREAK: ast.JumpBreak, token.CONTINUE: ast.JumpContinue,
}

// parseJumpStmt parses `return [expr];`, `break [expr];`, or `continue;`
// (a value is forbidden for continue).
func (p *Parser) parseJumpStmt() ast.Stmt {
	tok := p.cur()
	kind := jumpKinds[tok.Kind]
	p.advance()
	var value ast.Expr
	if kind != ast.JumpContinue && p.cur().Kind != token.SEMICOLON && p.cur().Kind != token.RBRACE && !p.stream.IsEOF() {
		value = p.parseExpression(lowest)
		if value == nil {
			return nil
		}
	}
	return ast.NewJumpStmt(tok, kind, value)
}

// parseExprStatement parses a bare expression statement; HasSemicolon
// records whether a ';' immediately follows it (the ';' itself is left for
// the caller to consume) so the analyzer can distinguish tail-expression
// position.
func (p *Parser) parseExprStatement() ast.Stmt {
	tok := p.cur()
	expr := p.parseExpression(lowest)
	if expr == nil {
		return nil
	}
	hasSemi := false
	if p.cur().Kind == token.SEMICOLON {
		hasSemi = true
	}
	return ast.NewExprStmt(tok, expr, hasSemi)
}

// parseDiscardStmt parses `_ = expr;`.
func (p *Parser) parseDiscardStmt() ast.Stmt {
	tok := p.cur()
	p.advance() // consume '_'
	if _, ok := p.expect(token.ASSIGN); !ok {
		return nil
	}
	value := p.parseExpression(lowest)
	if value == nil {
		return nil
	}
	return ast.NewDiscardStmt(tok, value)
}

// parseImportStmt parses `import ident[;]` (standard) or
// `import "path" as ident[;]` (user).
func (p *Parser) parseImportStmt() ast.Stmt {
	tok := p.cur()
	p.advance() // consume 'import'
	switch p.cur().Kind {
	case token.IDENT:
		nameTok := p.cur()
		p.advance()
		return ast.NewImportStmt(tok, false, nameTok.Literal, "", "")
	case token.STRING:
		pathTok := p.cur()
		p.advance()
		path, err := token.PromoteString(pathTok)
		if err != nil {
			p.errorAt(diag.NonStringToken, pathTok, "NON_STRING_TOKEN")
			return nil
		}
		if p.cur().Kind != token.AS {
			p.errorAt(diag.UserImportMissingAlias, tok, "USER_IMPORT_MISSING_ALIAS")
			return nil
		}
		p.advance() // consume 'as'
		aliasTok, ok := p.expect(token.IDENT)
		if !ok {
			return nil
		}
		return ast.NewImportStmt(tok, true, "", path, aliasTok.Literal)
	default:
		p.errorAt(diag.UnexpectedToken, p.cur(), "Unexpected token %s", p.cur().Kind)
		return nil
	}
}

// parseImplStmt parses `impl Name [<generics>] block`.
func (p *Parser) parseImplStmt() ast.Stmt {
	tok := p.cur()
	p.advance() // consume 'impl'
	nameTok, ok := p.expect(token.IDENT)
	if !ok {
		return nil
	}
	generics := p.parseOptionalGenericNames()
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	if len(body.Stmts) == 0 {
		p.errorAt(diag.EmptyImplBlock, tok, "EMPTY_IMPL_BLOCK")
		return nil
	}
	return ast.NewImplStmt(tok, nameTok.Literal, generics, body)
}
