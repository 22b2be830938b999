package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conchlang/conch/internal/ast"
	"github.com/conchlang/conch/internal/lexer"
	"github.com/conchlang/conch/internal/parser"
	"github.com/conchlang/conch/internal/token"
)

func parseFile(t *testing.T, src string) *ast.File {
	t.Helper()
	lx := lexer.New()
	toks, lexDiags := lx.Lex(src)
	require.Empty(t, lexDiags)
	p := parser.New(toks)
	file, diags := p.ParseFile()
	require.Empty(t, diags, "unexpected parse diagnostics for %q", src)
	return file
}

// TestReconstructRoundTripIsIdempotent locks in the reconstruction
// round-trip property: printing a parsed file, reparsing the printed text,
// and printing again must reach a fixed point on the first cycle. Token
// positions necessarily differ between the two parses, so the comparison is
// over the printed text rather than the AST values themselves.
func TestReconstructRoundTripIsIdempotent(t *testing.T) {
	cases := []string{
		"var x := 1 + 2 * 3;",
		"const y: int = 1;",
		"if (a) { 1; } else { 2; }",
		"while (i < 10) { i = i + 1; }",
		"for (items) : (x) { x; }",
		"var f := fn(a: int) -> int { a + 1 };",
		"var s := struct { x: int, y: int };",
		"var Color := enum { Red, Blue };",
		"var nums := [_]{ 1, 2, 3 };",
		"x::Red[0];",
	}
	for _, src := range cases {
		file1 := parseFile(t, src)
		out1 := ast.Reconstruct(file1, false)

		file2 := parseFile(t, out1)
		out2 := ast.Reconstruct(file2, false)

		if diff := cmp.Diff(out1, out2); diff != "" {
			t.Errorf("reconstruction not idempotent for %q (-first +second):\n%s", src, diff)
		}
	}
}

// TestReconstructGroupExpressionsMakesPrecedenceExplicit exercises the
// GroupExpressions mode used by precedence round-trip tests: every
// prefix/infix expression is fully parenthesized, so reparsing the grouped
// output must reproduce the exact same operator tree shape as the original,
// with no reliance on the ladder to recover it.
func TestReconstructGroupExpressionsMakesPrecedenceExplicit(t *testing.T) {
	file := parseFile(t, "1 + 2 * 3;")
	grouped := ast.Reconstruct(file, true)

	reparsed := parseFile(t, grouped)
	stmt, ok := reparsed.Stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	outer, ok := stmt.Expr.(*ast.InfixExpr)
	require.True(t, ok)
	assert.Equal(t, token.PLUS, outer.Op)
	inner, ok := outer.Right.(*ast.InfixExpr)
	require.True(t, ok)
	assert.Equal(t, token.STAR, inner.Op)
}
