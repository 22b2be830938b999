package parser

import (
	"github.com/conchlang/conch/internal/ast"
	"github.com/conchlang/conch/internal/diag"
	"github.com/conchlang/conch/internal/token"
)

// parseFnExprOrType parses `fn [<generics>] (params) -> returnType [block]`.
// The return type is introduced by `->`; a `:` in that position is an
// unexpected-token error.
// With a trailing block it is a function literal; without one, a function
// type (used e.g. as a declaration's type expression).
func parseFnExprOrType(p *Parser) ast.Expr {
	tok := p.cur()
	p.advance() // consume 'fn'
	generics := p.parseOptionalGenericNames()
	params, ok := p.parseParamList()
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.ARROW); !ok {
		return nil
	}
	ret := p.parseTypeExpr()
	if ret == nil {
		return nil
	}
	var body *ast.BlockStmt
	if p.cur().Kind == token.LBRACE {
		body = p.parseBlock()
		if body == nil {
			return nil
		}
	}
	return ast.NewFunctionLiteral(tok, generics, params, ret, body)
}

func parseStructLiteralExpr(p *Parser) ast.Expr {
	lit := p.parseStructLiteral()
	if lit == nil {
		return nil
	}
	return lit
}

// parseStructLiteral parses `[packed] struct [<generics>] { member, ... }`.
// Each member is `name: type [= default]`; a declaration modifier such as
// `var` or `const` before a member name is an unexpected-token error.
func (p *Parser) parseStructLiteral() *ast.StructLiteral {
	tok := p.cur()
	packed := false
	if tok.Kind == token.PACKED {
		packed = true
		p.advance()
		tok = p.cur()
	}
	if _, ok := p.expect(token.STRUCT); !ok {
		return nil
	}
	generics := p.parseOptionalGenericNames()
	if _, ok := p.expect(token.LBRACE); !ok {
		return nil
	}
	var members []ast.StructMember
	for p.cur().Kind != token.RBRACE {
		nameTok, ok := p.expect(token.IDENT)
		if !ok {
			return nil
		}
		if _, ok := p.expect(token.COLON); !ok {
			return nil
		}
		if p.cur().Kind == token.WALRUS {
			p.errorAt(diag.StructMemberNotExplicit, nameTok, "STRUCT_MEMBER_NOT_EXPLICIT")
			return nil
		}
		typ := p.parseTypeExpr()
		if typ == nil {
			return nil
		}
		var def ast.Expr
		if p.cur().Kind == token.ASSIGN {
			p.advance()
			def = p.parseExpression(assignPrec)
			if def == nil {
				return nil
			}
		}
		members = append(members, ast.StructMember{Name: nameTok.Literal, Type: typ, Default: def})
		if p.cur().Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if len(members) == 0 {
		p.errorAt(diag.EmptyStruct, tok, "EMPTY_STRUCT")
		return nil
	}
	if _, ok := p.expect(token.RBRACE); !ok {
		return nil
	}
	return ast.NewStructLiteral(tok, generics, members, packed)
}

func parseEnumLiteralExpr(p *Parser) ast.Expr {
	lit := p.parseEnumLiteral()
	if lit == nil {
		return nil
	}
	return lit
}

// parseEnumLiteral parses `enum { name [= expr], ... }`.
func (p *Parser) parseEnumLiteral() *ast.EnumLiteral {
	tok := p.cur()
	if _, ok := p.expect(token.ENUM); !ok {
		return nil
	}
	if _, ok := p.expect(token.LBRACE); !ok {
		return nil
	}
	var variants []ast.EnumVariant
	for p.cur().Kind != token.RBRACE {
		nameTok, ok := p.expect(token.IDENT)
		if !ok {
			return nil
		}
		var value ast.Expr
		if p.cur().Kind == token.ASSIGN {
			p.advance()
			value = p.parseExpression(assignPrec)
			if value == nil {
				return nil
			}
		}
		variants = append(variants, ast.EnumVariant{Name: nameTok.Literal, Value: value})
		if p.cur().Kind == token.COMMA {
			p.advance()
			continue
		}
		if p.cur().Kind != token.RBRACE {
			p.errorAt(diag.MissingTrailingComma, p.cur(), "MISSING_TRAILING_COMMA")
			return nil
		}
		break
	}
	if len(variants) == 0 {
		p.errorAt(diag.EnumMissingVariants, tok, "ENUM_MISSING_VARIANTS")
		return nil
	}
	if _, ok := p.expect(token.RBRACE); !ok {
		return nil
	}
	return ast.NewEnumLiteral(tok, variants)
}

// parseArrayLiteral parses `[<size>]{ item, ... }`.
func parseArrayLiteral(p *Parser) ast.Expr {
	tok := p.cur()
	p.advance() // consume '['
	inferredSize := false
	var size ast.Expr
	switch p.cur().Kind {
	case token.UNDERSCORE:
		inferredSize = true
		p.advance()
	case token.SIZE_2, token.SIZE_8, token.SIZE_10, token.SIZE_16:
		sizeLit := parseIntLiteral(p)
		if sizeLit == nil {
			return nil
		}
		size = sizeLit
	case token.RBRACKET:
		p.errorAt(diag.MissingArraySizeToken, p.cur(), "MISSING_ARRAY_SIZE_TOKEN")
		return nil
	default:
		if token.IsInteger(p.cur().Kind) {
			p.errorAt(diag.UnexpectedArraySizeToken, p.cur(), "UNEXPECTED_ARRAY_SIZE_TOKEN")
			return nil
		}
		p.errorAt(diag.MissingArraySizeToken, p.cur(), "MISSING_ARRAY_SIZE_TOKEN")
		return nil
	}
	if _, ok := p.expect(token.RBRACKET); !ok {
		return nil
	}
	if _, ok := p.expect(token.LBRACE); !ok {
		return nil
	}
	var items []ast.Expr
	for p.cur().Kind != token.RBRACE {
		item := p.parseExpression(assignPrec)
		if item == nil {
			return nil
		}
		items = append(items, item)
		if p.cur().Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RBRACE); !ok {
		return nil
	}
	if !inferredSize {
		if lit, ok := size.(*ast.IntLiteral); ok {
			if lit.Value == 0 {
				p.errorAt(diag.EmptyArray, tok, "EMPTY_ARRAY")
				return nil
			}
			if int(lit.Value) != len(items) {
				p.errorAt(diag.IncorrectExplicitArraySize, tok, "INCORRECT_EXPLICIT_ARRAY_SIZE")
				return nil
			}
		}
	} else if len(items) == 0 {
		p.errorAt(diag.EmptyArray, tok, "EMPTY_ARRAY")
		return nil
	}
	return ast.NewArrayLiteral(tok, inferredSize, size, items)
}
