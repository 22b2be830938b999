// Package sema implements the semantic analyzer: the AST walk that resolves
// identifiers against a lexically nested symbol table, propagates and
// checks types, and enforces the language's well-formedness rules
// (const-ness, nullability, assignability, enum/struct shape, arithmetic
// domains). It is the last of the three front-end stages; it consumes the
// parser's AST and produces a diagnostic list.
package sema

import (
	"github.com/conchlang/conch/internal/ast"
	"github.com/conchlang/conch/internal/diag"
	"github.com/conchlang/conch/internal/semctx"
	"github.com/conchlang/conch/internal/token"
	"github.com/conchlang/conch/internal/types"
)

// Checker holds the diagnostic vector threaded through one complete analysis
// run; Check creates a fresh root context for each run.
type Checker struct {
	diags []diag.Diagnostic
}

// NewChecker builds an analyzer ready to walk one parsed file.
func NewChecker() *Checker {
	return &Checker{}
}

// Check analyzes every top-level statement of file against a fresh root
// context. The analyzed-type slot design note is implemented literally:
// rather than depositing a result into a context out-slot and requiring
// callers to remember to move it, every analyze routine returns its
// resulting type directly, so there is no leak to recover from. Any type
// a statement produces but nobody claims is released here, at the
// boundary, keeping reference counts balanced.
func (c *Checker) Check(file *ast.File) []diag.Diagnostic {
	root := semctx.NewRoot()
	defer root.Close()
	for _, stmt := range file.Stmts {
		t := c.analyzeStmt(stmt, root)
		t.Release()
	}
	return c.diags
}

func (c *Checker) error(category diag.Category, tok token.Token, format string, args ...any) {
	pos := diag.Position{Line: tok.Line, Col: tok.Col}
	c.diags = append(c.diags, diag.New(category, pos, format, args...))
}

// ---- Statements -----------------------------------------------------------

// analyzeStmt dispatches on the statement's concrete kind and returns the
// type it deposits upward, if any (nil for statements that produce none).
func (c *Checker) analyzeStmt(stmt ast.Stmt, ctx *semctx.Scope) *types.Type {
	switch s := stmt.(type) {
	case *ast.DeclStmt:
		c.analyzeDecl(s, ctx)
		return nil
	case *ast.TypeDeclStmt:
		return nil
	case *ast.JumpStmt:
		if s.Value != nil {
			t := c.analyzeExpr(s.Value, ctx)
			t.Release()
		}
		return nil
	case *ast.ExprStmt:
		t := c.analyzeExpr(s.Expr, ctx)
		if s.HasSemicolon {
			t.Release()
			return nil
		}
		return t
	case *ast.DiscardStmt:
		t := c.analyzeExpr(s.Value, ctx)
		t.Release()
		return nil
	case *ast.BlockStmt:
		return c.analyzeBlock(s, ctx)
	case *ast.ImportStmt, *ast.ImplStmt:
		// Not yet fully specified; these stubs emit no diagnostics.
		return nil
	default:
		return nil
	}
}

// analyzeBlock creates a child context, analyzes its statements in source
// order, and releases every statement's deposited type except the last —
// a tail expression statement without a trailing semicolon is the block's
// own value, per the block tail-expression typing rule.
func (c *Checker) analyzeBlock(block *ast.BlockStmt, ctx *semctx.Scope) *types.Type {
	child := ctx.Nested()
	defer child.Close()
	var tail *types.Type
	for i, stmt := range block.Stmts {
		t := c.analyzeStmt(stmt, child)
		if i == len(block.Stmts)-1 {
			tail = t
		} else {
			t.Release()
		}
	}
	return tail
}

func (c *Checker) analyzeDecl(d *ast.DeclStmt, ctx *semctx.Scope) {
	var declared *types.Type
	if d.Type != nil {
		if _, implicit := d.Type.(*ast.ImplicitType); !implicit {
			declared = c.resolveTypeExpr(d.Type)
		}
	}
	var initType *types.Type
	if d.Init != nil {
		initType = c.analyzeExpr(d.Init, ctx)
	}
	isConst := d.Modifiers&(ast.ModConstant|ast.ModComptime) != 0

	var final *types.Type
	switch {
	case declared != nil && initType != nil:
		if !types.Assignable(declared, initType) {
			c.error(diag.TypeMismatch, d.StartToken(), "TYPE_MISMATCH")
		}
		final = declared
		initType.Release()
	case declared != nil:
		final = declared
	case initType != nil:
		final = initType.Retain()
		initType.Release()
		final.IsConst = isConst
	default:
		final = types.NewPrimitive(types.Void, isConst, false, true)
	}
	final.IsConst = isConst

	if ctx.HasLocal(d.Name) {
		c.error(diag.RedefinitionOfIdentifier, d.StartToken(), "REDEFINITION_OF_IDENTIFIER")
		final.Release()
		return
	}
	ctx.Declare(d.Name, final)
}

// ---- Expressions ------------------------------------------------------

func (c *Checker) analyzeExpr(expr ast.Expr, ctx *semctx.Scope) *types.Type {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return c.analyzeIntLiteral(e)
	case *ast.FloatLiteral:
		return types.NewPrimitive(types.FloatingPoint, true, false, true)
	case *ast.BoolLiteral:
		return types.NewPrimitive(types.Bool, true, false, true)
	case *ast.ByteLiteral:
		return types.NewPrimitive(types.ByteInteger, true, false, true)
	case *ast.StringLiteral:
		return types.NewPrimitive(types.Str, true, false, true)
	case *ast.NilLiteral:
		return types.NewPrimitive(types.NilTag, true, true, true)
	case *ast.ContinueLiteral:
		return types.NewPrimitive(types.Void, true, false, true)
	case *ast.Identifier:
		return c.analyzeIdentifier(e, ctx)
	case *ast.PrefixExpr:
		return c.analyzePrefix(e, ctx)
	case *ast.InfixExpr:
		return c.analyzeInfix(e, ctx)
	case *ast.AssignmentExpr:
		return c.analyzeAssignment(e, ctx)
	case *ast.IndexExpr:
		return c.analyzeIndex(e, ctx)
	case *ast.NamespaceExpr:
		return c.analyzeNamespace(e, ctx)
	case *ast.CallExpr:
		return c.analyzeCall(e, ctx)
	case *ast.IfExpr:
		return c.analyzeIf(e, ctx)
	case *ast.MatchExpr:
		return c.analyzeMatch(e, ctx)
	case *ast.ForExpr:
		return c.analyzeFor(e, ctx)
	case *ast.WhileExpr:
		return c.analyzeWhile(e, ctx)
	case *ast.DoWhileExpr:
		return c.analyzeDoWhile(e, ctx)
	case *ast.LoopExpr:
		c.analyzeBlock(e.Body, ctx).Release()
		return types.NewPrimitive(types.Void, true, false, true)
	case *ast.FunctionLiteral:
		return c.analyzeFunctionLiteral(e, ctx)
	case *ast.StructLiteral:
		return c.analyzeStructLiteral(e, ctx)
	case *ast.EnumLiteral:
		return c.analyzeEnumLiteral(e, ctx)
	case *ast.ArrayLiteral:
		return c.analyzeArrayLiteral(e, ctx)
	default:
		return types.NewPrimitive(types.Void, true, false, true)
	}
}

func (c *Checker) analyzeIntLiteral(lit *ast.IntLiteral) *types.Type {
	tag := types.SignedInteger
	switch {
	case token.IsUnsignedInteger(lit.Kind):
		tag = types.UnsignedInteger
	case token.IsSizeInteger(lit.Kind):
		tag = types.SizeInteger
	}
	return types.NewPrimitive(tag, true, false, true)
}

func (c *Checker) analyzeIdentifier(id *ast.Identifier, ctx *semctx.Scope) *types.Type {
	t, ok := ctx.Find(id.Name)
	if !ok {
		c.error(diag.UnknownIdentifier, id.StartToken(), "UNKNOWN_IDENTIFIER")
		return types.NewPrimitive(types.Void, true, false, true)
	}
	return t.Retain()
}

func (c *Checker) analyzePrefix(p *ast.PrefixExpr, ctx *semctx.Scope) *types.Type {
	operand := c.analyzeExpr(p.Operand, ctx)
	defer operand.Release()

	switch p.Op {
	case token.BANG:
		if operand.Valued && (operand.IsPrimitive() || operand.Nullable) {
			return types.NewPrimitive(types.Bool, true, false, true)
		}
		c.error(diag.IllegalPrefixOperand, p.StartToken(), "ILLEGAL_PREFIX_OPERAND")
	case token.NOT:
		if operand.Valued && !operand.Nullable && operand.IsInteger() {
			return types.NewPrimitive(operand.Tag, true, false, true)
		}
		c.error(diag.IllegalPrefixOperand, p.StartToken(), "ILLEGAL_PREFIX_OPERAND")
	case token.MINUS:
		if operand.Valued && !operand.Nullable && operand.IsArithmetic() {
			return types.NewPrimitive(operand.Tag, true, false, true)
		}
		c.error(diag.IllegalPrefixOperand, p.StartToken(), "ILLEGAL_PREFIX_OPERAND")
	case token.TYPEOF:
		return types.NewPrimitive(types.Void, true, false, false)
	}
	return types.NewPrimitive(types.Void, true, false, true)
}

var arithFamily = map[token.Kind]bool{
	token.PLUS: true, token.STAR: true, token.PERCENT: true,
	token.SHL: true, token.SHR: true, token.AND: true, token.OR: true, token.XOR: true,
}

var arithFallbackFamily = map[token.Kind]bool{token.MINUS: true, token.SLASH: true}

var comparisonFamily = map[token.Kind]bool{
	token.LT: true, token.LTEQ: true, token.GT: true, token.GTEQ: true,
	token.EQ: true, token.NEQ: true,
}

var logicalFamily = map[token.Kind]bool{token.BOOLEAN_AND: true, token.BOOLEAN_OR: true}
var rangeFamily = map[token.Kind]bool{token.DOT_DOT: true, token.DOT_DOT_EQ: true}

// analyzeInfix implements the infix family dispatch. Both operands are
// analyzed (and their temporaries released) regardless of which family
// applies, since every exit path must release what it read.
func (c *Checker) analyzeInfix(n *ast.InfixExpr, ctx *semctx.Scope) *types.Type {
	lhs := c.analyzeExpr(n.Left, ctx)
	rhs := c.analyzeExpr(n.Right, ctx)
	defer lhs.Release()
	defer rhs.Release()

	illegalSide := func() *types.Type {
		if !lhs.Valued || lhs.Nullable {
			c.error(diag.IllegalLHSInfixOperand, n.StartToken(), "ILLEGAL_LHS_INFIX_OPERAND")
		} else if !rhs.Valued || rhs.Nullable {
			c.error(diag.IllegalRHSInfixOperand, n.StartToken(), "ILLEGAL_RHS_INFIX_OPERAND")
		}
		return types.NewPrimitive(types.Void, true, false, true)
	}

	switch {
	case n.Op == token.ORELSE:
		if !lhs.Valued || !lhs.Nullable {
			return illegalSide()
		}
		if !rhs.Valued || rhs.Nullable {
			return illegalSide()
		}
		nonNullLHS := *lhs
		nonNullLHS.Nullable = false
		if !types.Equal(&nonNullLHS, rhs) {
			c.error(diag.TypeMismatch, n.StartToken(), "TYPE_MISMATCH")
			return types.NewPrimitive(types.Void, true, false, true)
		}
		return types.NewPrimitive(rhs.Tag, true, false, true)
	case n.Op == token.IS:
		return types.NewPrimitive(types.Bool, true, false, true)
	case n.Op == token.IN:
		return types.NewPrimitive(types.Bool, true, false, true)
	}

	if !lhs.Valued || lhs.Nullable || !rhs.Valued || rhs.Nullable {
		return illegalSide()
	}

	switch {
	case rangeFamily[n.Op]:
		if lhs.Tag == types.SizeInteger && rhs.Tag == types.SizeInteger {
			inner := lhs.Retain()
			arr := types.NewArrayType(types.ArrayRange, inner)
			return &types.Type{Tag: types.Array, IsConst: true, Valued: true, ArrayType: arr}
		}
		c.error(diag.TypeMismatch, n.StartToken(), "TYPE_MISMATCH")
	case logicalFamily[n.Op]:
		if lhs.Tag == types.Bool && rhs.Tag == types.Bool {
			return types.NewPrimitive(types.Bool, true, false, true)
		}
		c.error(diag.TypeMismatch, n.StartToken(), "TYPE_MISMATCH")
	case comparisonFamily[n.Op]:
		if lhs.IsArithmetic() && rhs.IsArithmetic() && lhs.Tag == rhs.Tag {
			return types.NewPrimitive(types.Bool, true, false, true)
		}
		c.error(diag.TypeMismatch, n.StartToken(), "TYPE_MISMATCH")
	case arithFamily[n.Op]:
		if lhs.Tag == rhs.Tag && (lhs.IsInteger() || (lhs.Tag == types.FloatingPoint && (n.Op == token.PLUS || n.Op == token.STAR))) {
			return types.NewPrimitive(lhs.Tag, true, false, true)
		}
		c.error(diag.TypeMismatch, n.StartToken(), "TYPE_MISMATCH")
	case arithFallbackFamily[n.Op]:
		if lhs.IsArithmetic() && rhs.IsArithmetic() && lhs.Tag == rhs.Tag {
			return types.NewPrimitive(lhs.Tag, true, false, true)
		}
		c.error(diag.TypeMismatch, n.StartToken(), "TYPE_MISMATCH")
	default:
		c.error(diag.TypeMismatch, n.StartToken(), "TYPE_MISMATCH")
	}
	return types.NewPrimitive(types.Void, true, false, true)
}

func (c *Checker) analyzeAssignment(n *ast.AssignmentExpr, ctx *semctx.Scope) *types.Type {
	lhs := c.analyzeExpr(n.LHS, ctx)
	rhs := c.analyzeExpr(n.RHS, ctx)
	defer lhs.Release()
	defer rhs.Release()

	if lhs.IsConst {
		c.error(diag.AssignmentToConstant, n.StartToken(), "ASSIGNMENT_TO_CONSTANT")
		return types.NewPrimitive(types.Void, true, false, true)
	}

	if n.Op == token.ASSIGN {
		if !types.Assignable(lhs, rhs) {
			c.error(diag.TypeMismatch, n.StartToken(), "TYPE_MISMATCH")
		}
		return types.NewPrimitive(lhs.Tag, false, lhs.Nullable, true)
	}

	if !lhs.Valued || lhs.Nullable || !rhs.Valued || rhs.Nullable {
		c.error(diag.TypeMismatch, n.StartToken(), "TYPE_MISMATCH")
		return types.NewPrimitive(types.Void, true, false, true)
	}
	if n.Op == token.NOT_ASSIGN {
		if lhs.IsInteger() && lhs.Tag == rhs.Tag {
			return types.NewPrimitive(lhs.Tag, false, false, true)
		}
		c.error(diag.TypeMismatch, n.StartToken(), "TYPE_MISMATCH")
		return types.NewPrimitive(types.Void, true, false, true)
	}
	if lhs.Tag != rhs.Tag {
		c.error(diag.TypeMismatch, n.StartToken(), "TYPE_MISMATCH")
	}
	return types.NewPrimitive(lhs.Tag, false, false, true)
}

func (c *Checker) analyzeIndex(n *ast.IndexExpr, ctx *semctx.Scope) *types.Type {
	arr := c.analyzeExpr(n.Array, ctx)
	idx := c.analyzeExpr(n.Index, ctx)
	defer arr.Release()
	defer idx.Release()

	if arr.Tag != types.Array || arr.Nullable || arr.ArrayType == nil {
		c.error(diag.NonArrayIndexTarget, n.StartToken(), "NON_ARRAY_INDEX_TARGET")
		return types.NewPrimitive(types.Void, true, false, true)
	}
	if idx.Tag != types.SizeInteger || idx.Nullable {
		c.error(diag.UnexpectedArrayIndexType, n.StartToken(), "UNEXPECTED_ARRAY_INDEX_TYPE")
		return types.NewPrimitive(types.Void, true, false, true)
	}
	inner := arr.ArrayType.Inner.Retain()
	inner.IsConst = arr.IsConst
	return inner
}

func (c *Checker) analyzeNamespace(n *ast.NamespaceExpr, ctx *semctx.Scope) *types.Type {
	outer := c.analyzeExpr(n.Outer, ctx)
	defer outer.Release()

	if outer.Tag != types.Enum || outer.EnumType == nil {
		c.error(diag.IllegalOuterNamespace, n.StartToken(), "ILLEGAL_OUTER_NAMESPACE")
		return types.NewPrimitive(types.Void, true, false, true)
	}
	if !outer.EnumType.Variants[n.Inner.Name] {
		c.error(diag.UnknownEnumVariant, n.StartToken(), "UNKNOWN_ENUM_VARIANT")
		return types.NewPrimitive(types.Void, true, false, true)
	}
	result := &types.Type{Tag: types.Enum, IsConst: true, Valued: true, EnumType: outer.EnumType}
	return result.Retain()
}

func (c *Checker) analyzeCall(n *ast.CallExpr, ctx *semctx.Scope) *types.Type {
	callee := c.analyzeExpr(n.Callee, ctx)
	defer callee.Release()
	for _, arg := range n.Args {
		c.analyzeExpr(arg.Expr, ctx).Release()
	}
	if callee.Tag == types.Function && callee.FunctionType != nil {
		return callee.FunctionType.Return.Retain()
	}
	return types.NewPrimitive(types.Void, true, false, true)
}

func (c *Checker) analyzeIf(n *ast.IfExpr, ctx *semctx.Scope) *types.Type {
	c.analyzeExpr(n.Cond, ctx).Release()
	consType := c.analyzeStmt(n.Consequence, ctx)
	if n.Alternate != nil {
		altType := c.analyzeStmt(n.Alternate, ctx)
		altType.Release()
	}
	return consType
}

func (c *Checker) analyzeMatch(n *ast.MatchExpr, ctx *semctx.Scope) *types.Type {
	c.analyzeExpr(n.Scrutinee, ctx).Release()
	var last *types.Type
	for _, arm := range n.Arms {
		c.analyzeExpr(arm.Pattern, ctx).Release()
		t := c.analyzeStmt(arm.Dispatch, ctx)
		t.Release()
		last = nil
	}
	if n.CatchAll != nil {
		last = c.analyzeStmt(n.CatchAll, ctx)
	}
	return last
}

func (c *Checker) analyzeFor(n *ast.ForExpr, ctx *semctx.Scope) *types.Type {
	for _, it := range n.Iterables {
		c.analyzeExpr(it, ctx).Release()
	}
	child := ctx.Nested()
	for _, cap := range n.Captures {
		if cap.Discard {
			continue
		}
		child.Declare(cap.Identifier, types.NewPrimitive(types.Void, false, true, true))
	}
	body := c.analyzeBlock(n.Body, child)
	body.Release()
	child.Close()
	if n.Else != nil {
		c.analyzeStmt(n.Else, ctx).Release()
	}
	return types.NewPrimitive(types.Void, true, false, true)
}

func (c *Checker) analyzeWhile(n *ast.WhileExpr, ctx *semctx.Scope) *types.Type {
	c.analyzeExpr(n.Cond, ctx).Release()
	if n.Continuation != nil {
		c.analyzeExpr(n.Continuation, ctx).Release()
	}
	c.analyzeBlock(n.Body, ctx).Release()
	if n.Else != nil {
		c.analyzeStmt(n.Else, ctx).Release()
	}
	return types.NewPrimitive(types.Void, true, false, true)
}

func (c *Checker) analyzeDoWhile(n *ast.DoWhileExpr, ctx *semctx.Scope) *types.Type {
	c.analyzeBlock(n.Body, ctx).Release()
	c.analyzeExpr(n.Cond, ctx).Release()
	return types.NewPrimitive(types.Void, true, false, true)
}

func (c *Checker) analyzeFunctionLiteral(n *ast.FunctionLiteral, ctx *semctx.Scope) *types.Type {
	var params []*types.Type
	child := ctx.Nested()
	for _, p := range n.Params {
		pt := c.resolveTypeExpr(p.Type)
		child.Declare(p.Name, pt.Retain())
		params = append(params, pt)
	}
	ret := c.resolveTypeExpr(n.ReturnType)
	if n.Body != nil {
		c.analyzeBlock(n.Body, child).Release()
	}
	child.Close()
	return &types.Type{Tag: types.Function, IsConst: true, Valued: true,
		FunctionType: &types.FunctionType{Params: params, Return: ret}}
}

func (c *Checker) analyzeStructLiteral(n *ast.StructLiteral, ctx *semctx.Scope) *types.Type {
	members := make(map[string]*types.Type, len(n.Members))
	for _, m := range n.Members {
		if _, isImplicit := m.Type.(*ast.ImplicitType); isImplicit {
			c.error(diag.StructMemberNotExplicit, n.StartToken(), "STRUCT_MEMBER_NOT_EXPLICIT")
			continue
		}
		members[m.Name] = c.resolveTypeExpr(m.Type)
	}
	st := types.NewStructType("", n.Generics, members, nil)
	return &types.Type{Tag: types.Struct, IsConst: true, Valued: false, StructType: st}
}

// analyzeEnumLiteral implements the enum-variant well-formedness rules:
// no shadowing across the variant set or the parent context, and every
// explicit value must be a constant non-null valued signed-integer
// literal.
func (c *Checker) analyzeEnumLiteral(n *ast.EnumLiteral, ctx *semctx.Scope) *types.Type {
	seen := map[string]bool{}
	variants := map[string]bool{}
	for _, v := range n.Variants {
		if seen[v.Name] || ctx.HasLocal(v.Name) {
			c.error(diag.RedefinitionOfIdentifier, n.StartToken(), "REDEFINITION_OF_IDENTIFIER")
			continue
		}
		seen[v.Name] = true
		variants[v.Name] = true
		if v.Value == nil {
			continue
		}
		lit, ok := v.Value.(*ast.IntLiteral)
		if !ok {
			c.error(diag.NonConstEnumVariant, n.StartToken(), "NON_CONST_ENUM_VARIANT")
			continue
		}
		if !token.IsSignedInteger(lit.Kind) {
			c.error(diag.NonSignedEnumVariant, n.StartToken(), "NON_SIGNED_ENUM_VARIANT")
		}
	}
	return &types.Type{Tag: types.Enum, IsConst: true, Valued: false, EnumType: types.NewEnumType("", variants)}
}

func (c *Checker) analyzeArrayLiteral(n *ast.ArrayLiteral, ctx *semctx.Scope) *types.Type {
	var inner *types.Type
	for _, item := range n.Items {
		t := c.analyzeExpr(item, ctx)
		if inner == nil {
			inner = t
		} else {
			t.Release()
		}
	}
	if inner == nil {
		inner = types.NewPrimitive(types.Void, true, false, true)
	}
	arr := types.NewArrayType(types.ArraySingleDim, inner)
	arr.Length = len(n.Items)
	return &types.Type{Tag: types.Array, IsConst: true, Valued: true, ArrayType: arr}
}

// ---- Type expressions ---------------------------------------------------

var primitiveTag = map[token.Kind]types.Tag{
	token.INT_TYPE: types.SignedInteger, token.UINT_TYPE: types.UnsignedInteger,
	token.SIZE_TYPE: types.SizeInteger, token.BYTE_TYPE: types.ByteInteger,
	token.FLOAT_TYPE: types.FloatingPoint, token.STRING_TYPE: types.Str,
	token.BOOL_TYPE: types.Bool, token.VOID_TYPE: types.Void,
}

// resolveTypeExpr converts a parsed type expression into the semantic type
// it denotes, independent of any value flowing through it.
func (c *Checker) resolveTypeExpr(t ast.TypeExpr) *types.Type {
	if t == nil {
		return types.NewPrimitive(types.Void, false, false, true)
	}
	switch n := t.(type) {
	case *ast.PrimitiveType:
		tag, ok := primitiveTag[n.Kind]
		if !ok {
			tag = types.Void
		}
		return types.NewPrimitive(tag, false, n.Nullable(), true)
	case *ast.ArrayType:
		inner := c.resolveTypeExpr(n.Inner)
		kind := types.ArraySingleDim
		if len(n.Dims) > 1 {
			kind = types.ArrayMultiDim
		}
		if len(n.Dims) == 1 && n.Dims[0].IsRange {
			kind = types.ArrayRange
		}
		arr := types.NewArrayType(kind, inner)
		if len(n.Dims) == 1 && n.Dims[0].IsRange {
			arr.Inclusive = n.Dims[0].Inclusive
		}
		return &types.Type{Tag: types.Array, Nullable: n.Nullable(), Valued: true, ArrayType: arr}
	case *ast.FunctionType:
		var params []*types.Type
		for _, p := range n.Params {
			params = append(params, c.resolveTypeExpr(p.Type))
		}
		ret := c.resolveTypeExpr(n.ReturnType)
		return &types.Type{Tag: types.Function, Nullable: n.Nullable(), Valued: true,
			FunctionType: &types.FunctionType{Params: params, Return: ret}}
	case *ast.StructTypeExpr:
		st := types.NewStructType("", n.Literal.Generics, map[string]*types.Type{}, nil)
		for _, m := range n.Literal.Members {
			st.Members[m.Name] = c.resolveTypeExpr(m.Type)
		}
		return &types.Type{Tag: types.Struct, Nullable: n.Nullable(), Valued: true, StructType: st}
	case *ast.EnumTypeExpr:
		variants := map[string]bool{}
		for _, v := range n.Literal.Variants {
			variants[v.Name] = true
		}
		return &types.Type{Tag: types.Enum, Nullable: n.Nullable(), Valued: true, EnumType: types.NewEnumType("", variants)}
	case *ast.NamedType:
		return types.NewPrimitive(types.Void, false, n.Nullable(), true)
	case *ast.TypeofType:
		return types.NewPrimitive(types.Void, true, n.Nullable(), false)
	default:
		return types.NewPrimitive(types.Void, false, false, true)
	}
}
