package parser

import (
	"github.com/conchlang/conch/internal/ast"
	"github.com/conchlang/conch/internal/diag"
	"github.com/conchlang/conch/internal/token"
)

var primitiveTypeKinds = map[token.Kind]bool{
	token.INT_TYPE: true, token.UINT_TYPE: true, token.SIZE_TYPE: true, token.BYTE_TYPE: true,
	token.FLOAT_TYPE: true, token.STRING_TYPE: true, token.BOOL_TYPE: true, token.VOID_TYPE: true,
}

// parseTypeExpr parses an explicit type expression. The implicit (`:=`)
// form is handled by callers directly, never from here.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	tok := p.cur()
	var t ast.TypeExpr
	switch {
	case primitiveTypeKinds[tok.Kind]:
		p.advance()
		t = ast.NewPrimitiveType(tok, tok.Kind, false)
	case tok.Kind == token.IDENT:
		p.advance()
		var generics []ast.TypeExpr
		if p.cur().Kind == token.LT {
			p.advance()
			for p.cur().Kind != token.GT {
				g := p.parseTypeExpr()
				if g == nil {
					return nil
				}
				generics = append(generics, g)
				if p.cur().Kind == token.COMMA {
					p.advance()
					continue
				}
				break
			}
			if _, ok := p.expect(token.GT); !ok {
				return nil
			}
		}
		t = ast.NewNamedType(tok, tok.Literal, generics, false)
	case tok.Kind == token.FN:
		t = p.parseFnType()
	case tok.Kind == token.STRUCT:
		lit := p.parseStructLiteral()
		if lit == nil {
			return nil
		}
		t = ast.NewStructTypeExpr(lit, false)
	case tok.Kind == token.ENUM:
		lit := p.parseEnumLiteral()
		if lit == nil {
			return nil
		}
		t = ast.NewEnumTypeExpr(lit, false)
	case tok.Kind == token.LBRACKET:
		t = p.parseArrayType()
	case tok.Kind == token.TYPEOF:
		p.advance()
		e := p.parseExpression(prefixPrec)
		if e == nil {
			return nil
		}
		t = ast.NewTypeofType(tok, e, false)
	default:
		p.errorAt(diag.UnexpectedToken, tok, "Unexpected token %s in type position", tok.Kind)
		return nil
	}
	if t == nil {
		return nil
	}
	if p.cur().Kind == token.WHAT {
		p.advance()
		t = withNullable(t)
	}
	return t
}

// withNullable rebuilds a type expression with its nullable flag set; type
// nodes keep the flag as an unexported field precisely so construction is
// the only place it can be set, which keeps this helper a single small
// switch instead of letting every call site poke at node internals.
func withNullable(t ast.TypeExpr) ast.TypeExpr {
	switch n := t.(type) {
	case *ast.PrimitiveType:
		return ast.NewPrimitiveType(n.StartToken(), n.Kind, true)
	case *ast.NamedType:
		return ast.NewNamedType(n.StartToken(), n.Name, n.Generics, true)
	case *ast.FunctionType:
		return ast.NewFunctionType(n.StartToken(), n.Generics, n.Params, n.ReturnType, true)
	case *ast.ArrayType:
		return ast.NewArrayType(n.StartToken(), n.Dims, n.Inner, true)
	case *ast.TypeofType:
		return ast.NewTypeofType(n.StartToken(), n.Expr, true)
	case *ast.StructTypeExpr:
		return ast.NewStructTypeExpr(n.Literal, true)
	case *ast.EnumTypeExpr:
		return ast.NewEnumTypeExpr(n.Literal, true)
	default:
		return t
	}
}

func (p *Parser) parseFnType() ast.TypeExpr {
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
	return ast.NewFunctionType(tok, generics, params, ret, false)
}

// parseOptionalGenericNames parses `<name, name, ...>`, or nothing if the
// next token isn't `<`. An explicit empty list `<>` is EMPTY_GENERIC_LIST.
func (p *Parser) parseOptionalGenericNames() []string {
	if p.cur().Kind != token.LT {
		return nil
	}
	ltTok := p.cur()
	p.advance()
	if p.cur().Kind == token.GT {
		p.errorAt(diag.EmptyGenericList, ltTok, "EMPTY_GENERIC_LIST")
		p.advance()
		return nil
	}
	var names []string
	for {
		nameTok, ok := p.expect(token.IDENT)
		if !ok {
			return names
		}
		names = append(names, nameTok.Literal)
		if p.cur().Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.GT)
	return names
}

// parseParamList parses `(ident: type [= default], ...)`. The implicit
// `:=` type form is forbidden here.
func (p *Parser) parseParamList() ([]ast.FuncParam, bool) {
	if _, ok := p.expect(token.LPAREN); !ok {
		return nil, false
	}
	var params []ast.FuncParam
	seenDefault := false
	for p.cur().Kind != token.RPAREN {
		nameTok, ok := p.expect(token.IDENT)
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.COLON); !ok {
			return nil, false
		}
		if p.cur().Kind == token.WALRUS {
			p.errorAt(diag.ImplicitFnParamType, nameTok, "IMPLICIT_FN_PARAM_TYPE")
			return nil, false
		}
		typ := p.parseTypeExpr()
		if typ == nil {
			return nil, false
		}
		var def ast.Expr
		if p.cur().Kind == token.ASSIGN {
			p.advance()
			def = p.parseExpression(assignPrec)
			if def == nil {
				return nil, false
			}
			seenDefault = true
		} else if seenDefault {
			p.errorAt(diag.MalformedFunctionLiteral, nameTok, "MALFORMED_FUNCTION_LITERAL")
			return nil, false
		}
		params = append(params, ast.FuncParam{Name: nameTok.Literal, Type: typ, Default: def})
		if p.cur().Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RPAREN); !ok {
		return nil, false
	}
	return params, true
}

// parseArrayType parses `[dim, dim, ...]inner`.
func (p *Parser) parseArrayType() ast.TypeExpr {
	tok := p.cur()
	p.advance() // consume '['
	var dims []ast.ArrayDim
	for p.cur().Kind != token.RBRACKET {
		dim, ok := p.parseArrayDim()
		if !ok {
			return nil
		}
		dims = append(dims, dim)
		if p.cur().Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RBRACKET); !ok {
		return nil
	}
	inner := p.parseTypeExpr()
	if inner == nil {
		return nil
	}
	return ast.NewArrayType(tok, dims, inner, false)
}

func (p *Parser) parseArrayDim() (ast.ArrayDim, bool) {
	if p.cur().Kind == token.DOT_DOT || p.cur().Kind == token.DOT_DOT_EQ {
		inclusive := p.cur().Kind == token.DOT_DOT_EQ
		p.advance()
		return ast.ArrayDim{IsRange: true, Inclusive: inclusive}, true
	}
	size := p.parseExpression(rangePrec)
	if size == nil {
		return ast.ArrayDim{}, false
	}
	return ast.ArrayDim{Size: size}, true
}
