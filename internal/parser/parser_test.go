package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conchlang/conch/internal/ast"
	"github.com/conchlang/conch/internal/lexer"
	"github.com/conchlang/conch/internal/parser"
	"github.com/conchlang/conch/internal/token"
)

func parseOK(t *testing.T, src string) *ast.File {
	t.Helper()
	lx := lexer.New()
	toks, lexDiags := lx.Lex(src)
	require.Empty(t, lexDiags)
	p := parser.New(toks)
	file, diags := p.ParseFile()
	require.Empty(t, diags, "unexpected parse diagnostics for %q", src)
	return file
}

func exprStmt(t *testing.T, file *ast.File, i int) ast.Expr {
	t.Helper()
	require.Greater(t, len(file.Stmts), i)
	es, ok := file.Stmts[i].(*ast.ExprStmt)
	require.True(t, ok, "stmt %d is not an ExprStmt: %T", i, file.Stmts[i])
	return es.Expr
}

// TestPrecedenceMulBindsTighterThanAdd exercises the addSubPrec/mulDivPrec
// boundary of the ladder: `1 + 2 * 3` must parse as `1 + (2 * 3)`.
func TestPrecedenceMulBindsTighterThanAdd(t *testing.T) {
	file := parseOK(t, "1 + 2 * 3;")
	infix := exprStmt(t, file, 0).(*ast.InfixExpr)
	assert.Equal(t, token.PLUS, infix.Op)
	assert.IsType(t, &ast.IntLiteral{}, infix.Left)
	rhs, ok := infix.Right.(*ast.InfixExpr)
	require.True(t, ok)
	assert.Equal(t, token.STAR, rhs.Op)
}

// TestPrecedenceRangeBindsLooserThanAddButTighterThanComparison exercises the
// rangePrec level sitting between boolLtGtPrec and addSubPrec:
// `a < 1 .. 2 + 3` must parse as `a < (1 .. (2 + 3))`.
func TestPrecedenceRangeBindsLooserThanAddButTighterThanComparison(t *testing.T) {
	file := parseOK(t, "a < 1 .. 2 + 3;")
	cmp := exprStmt(t, file, 0).(*ast.InfixExpr)
	assert.Equal(t, token.LT, cmp.Op)
	rangeExpr, ok := cmp.Right.(*ast.InfixExpr)
	require.True(t, ok)
	assert.Equal(t, token.DOT_DOT, rangeExpr.Op)
	sum, ok := rangeExpr.Right.(*ast.InfixExpr)
	require.True(t, ok)
	assert.Equal(t, token.PLUS, sum.Op)
}

// TestPrecedenceBooleanAndBindsTighterThanOr: `a || b && c` must parse as
// `a || (b && c)`.
func TestPrecedenceBooleanAndBindsTighterThanOr(t *testing.T) {
	file := parseOK(t, "a || b && c;")
	or := exprStmt(t, file, 0).(*ast.InfixExpr)
	assert.Equal(t, token.BOOLEAN_OR, or.Op)
	and, ok := or.Right.(*ast.InfixExpr)
	require.True(t, ok)
	assert.Equal(t, token.BOOLEAN_AND, and.Op)
}

// TestPrecedenceOrElseIsLooserThanBooleanOr: `a || b orelse c` must parse as
// `(a || b) orelse c`.
func TestPrecedenceOrElseIsLooserThanBooleanOr(t *testing.T) {
	file := parseOK(t, "a || b orelse c;")
	orElse := exprStmt(t, file, 0).(*ast.InfixExpr)
	assert.Equal(t, token.ORELSE, orElse.Op)
	lhs, ok := orElse.Left.(*ast.InfixExpr)
	require.True(t, ok)
	assert.Equal(t, token.BOOLEAN_OR, lhs.Op)
}

// TestPrecedenceAssignmentIsLoosestBindingForm: `x = a || b` parses with the
// whole disjunction as the assignment's RHS, not `(x = a) || b`.
func TestPrecedenceAssignmentIsLoosestBindingForm(t *testing.T) {
	file := parseOK(t, "x = a || b;")
	assign := exprStmt(t, file, 0).(*ast.AssignmentExpr)
	assert.Equal(t, token.ASSIGN, assign.Op)
	_, ok := assign.RHS.(*ast.InfixExpr)
	assert.True(t, ok)
}

// TestPrecedenceCallBindsTighterThanPrefix: `-f(x)` must parse as `-(f(x))`.
func TestPrecedenceCallBindsTighterThanPrefix(t *testing.T) {
	file := parseOK(t, "-f(x);")
	prefix := exprStmt(t, file, 0).(*ast.PrefixExpr)
	assert.Equal(t, token.MINUS, prefix.Op)
	_, ok := prefix.Operand.(*ast.CallExpr)
	assert.True(t, ok)
}

// TestGroupedExprOverridesPrecedence: `(1 + 2) * 3` must parse with the sum
// as the multiplication's left operand.
func TestGroupedExprOverridesPrecedence(t *testing.T) {
	file := parseOK(t, "(1 + 2) * 3;")
	mul := exprStmt(t, file, 0).(*ast.InfixExpr)
	assert.Equal(t, token.STAR, mul.Op)
	_, ok := mul.Left.(*ast.InfixExpr)
	assert.True(t, ok)
}

// TestNamespaceThenIndexChain exercises the trailing-operator family sharing
// callPrec: `Color::Red[0]` resolves left to right as `(Color::Red)[0]`
// without needing explicit grouping.
func TestNamespaceThenIndexChain(t *testing.T) {
	file := parseOK(t, "Color::Red[0];")
	idx, ok := exprStmt(t, file, 0).(*ast.IndexExpr)
	require.True(t, ok)
	ns, ok := idx.Array.(*ast.NamespaceExpr)
	require.True(t, ok)
	assert.Equal(t, "Color", ns.Outer.(*ast.Identifier).Name)
	assert.Equal(t, "Red", ns.Inner.Name)
}

// TestIntLiteralHexDigitsNotEatenAsSuffix locks in the parser's digit/suffix
// split: only a trailing run of u/U/z/Z counts as a suffix, so a hex literal
// whose final digits happen to be the letter F is not truncated before
// conversion. 0xFFFFFFFFFFFFFFFF genuinely exceeds int64 range, so the
// correct outcome is a signed-overflow diagnostic on the full 16-digit
// value, not silent acceptance of a shortened one.
func TestIntLiteralHexDigitsNotEatenAsSuffix(t *testing.T) {
	lx := lexer.New()
	toks, lexDiags := lx.Lex("0xFFFFFFFFFFFFFFFF;")
	require.Empty(t, lexDiags)
	p := parser.New(toks)
	_, diags := p.ParseFile()
	require.Len(t, diags, 1)
	assert.Equal(t, "SIGNED_INTEGER_OVERFLOW", diags[0].Category.String())
}

// TestIntLiteralHexWithinRangeKeepsAllDigits confirms a hex literal whose
// trailing digits are letters parses to its full value when that value fits.
func TestIntLiteralHexWithinRangeKeepsAllDigits(t *testing.T) {
	file := parseOK(t, "0xFF;")
	lit := exprStmt(t, file, 0).(*ast.IntLiteral)
	assert.Equal(t, token.INT_16, lit.Kind)
	assert.Equal(t, int64(0xFF), lit.Value)
}

func TestIntLiteralWithSizeSuffix(t *testing.T) {
	file := parseOK(t, "42z;")
	lit := exprStmt(t, file, 0).(*ast.IntLiteral)
	assert.Equal(t, token.SIZE_10, lit.Kind)
	assert.Equal(t, int64(42), lit.Value)
}

func TestIntLiteralWithUnsignedSizeSuffix(t *testing.T) {
	file := parseOK(t, "42uz;")
	lit := exprStmt(t, file, 0).(*ast.IntLiteral)
	assert.Equal(t, token.SIZE_10, lit.Kind)
	assert.Equal(t, int64(42), lit.Value)
}

// TestDeclStmtWalrus exercises `var x := 1;`-style implicit typing.
func TestDeclStmtWalrus(t *testing.T) {
	file := parseOK(t, "var x := 1;")
	decl, ok := file.Stmts[0].(*ast.DeclStmt)
	require.True(t, ok)
	assert.Equal(t, "x", decl.Name)
	_, isImplicit := decl.Type.(*ast.ImplicitType)
	assert.True(t, isImplicit)
	require.NotNil(t, decl.Init)
}

func TestDeclStmtExplicitTypeAndConst(t *testing.T) {
	file := parseOK(t, "const y: int = 1;")
	decl, ok := file.Stmts[0].(*ast.DeclStmt)
	require.True(t, ok)
	assert.Equal(t, "y", decl.Name)
	require.NotNil(t, decl.Type)
	assert.True(t, decl.Modifiers&ast.ModConstant != 0)
	require.NotNil(t, decl.Init)
}

func TestIfExprParsesConditionAndBranches(t *testing.T) {
	file := parseOK(t, "if (a) { 1; } else { 2; }")
	ifExpr, ok := exprStmt(t, file, 0).(*ast.IfExpr)
	require.True(t, ok)
	_, ok = ifExpr.Cond.(*ast.Identifier)
	assert.True(t, ok)
	require.NotNil(t, ifExpr.Consequence)
	require.NotNil(t, ifExpr.Alternate)
}

func TestWhileExprParsesConditionAndBody(t *testing.T) {
	file := parseOK(t, "while (a < 10) { a = a + 1; }")
	whileExpr, ok := exprStmt(t, file, 0).(*ast.WhileExpr)
	require.True(t, ok)
	_, ok = whileExpr.Cond.(*ast.InfixExpr)
	assert.True(t, ok)
	require.NotNil(t, whileExpr.Body)
}

func TestForExprParsesCaptureAndIterable(t *testing.T) {
	file := parseOK(t, "for (items) : (x) { x; }")
	forExpr, ok := exprStmt(t, file, 0).(*ast.ForExpr)
	require.True(t, ok)
	require.Len(t, forExpr.Captures, 1)
	assert.Equal(t, "x", forExpr.Captures[0].Identifier)
	require.Len(t, forExpr.Iterables, 1)
}

func TestCallExprWithGenerics(t *testing.T) {
	file := parseOK(t, "make with<int>(1);")
	call, ok := exprStmt(t, file, 0).(*ast.CallExpr)
	require.True(t, ok)
	require.Len(t, call.Generics, 1)
	require.Len(t, call.Args, 1)
}

func TestCallExprWithRefArg(t *testing.T) {
	file := parseOK(t, "mutate(ref x);")
	call, ok := exprStmt(t, file, 0).(*ast.CallExpr)
	require.True(t, ok)
	require.Len(t, call.Args, 1)
	assert.True(t, call.Args[0].IsRef)
}

func TestNoPrefixParseFunctionDiagnostic(t *testing.T) {
	lx := lexer.New()
	toks, lexDiags := lx.Lex(") ;")
	require.Empty(t, lexDiags)
	p := parser.New(toks)
	_, diags := p.ParseFile()
	require.NotEmpty(t, diags)
}

func TestParseFileClearsStmtsOnAnyDiagnostic(t *testing.T) {
	lx := lexer.New()
	toks, lexDiags := lx.Lex("1; )")
	require.Empty(t, lexDiags)
	p := parser.New(toks)
	file, diags := p.ParseFile()
	require.NotEmpty(t, diags)
	assert.Empty(t, file.Stmts, "a malformed file's statement list must be discarded as a whole")
}
