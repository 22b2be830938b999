package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conchlang/conch/internal/lexer"
	"github.com/conchlang/conch/internal/token"
)

func lexOK(t *testing.T, input string) []token.Token {
	t.Helper()
	lx := lexer.New()
	toks, diags := lx.Lex(input)
	require.Empty(t, diags)
	return toks
}

func TestLexKeywordsAndIdents(t *testing.T) {
	toks := lexOK(t, "var x enum struct typeof")
	kinds := []token.Kind{token.VAR, token.IDENT, token.ENUM, token.STRUCT, token.TYPEOF, token.END}
	require.Len(t, toks, len(kinds))
	for i, k := range kinds {
		assert.Equal(t, k, toks[i].Kind, "token %d", i)
	}
}

func TestLexIntegerLiteralBases(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"42", token.INT_10},
		{"0b1010", token.INT_2},
		{"0o755", token.INT_8},
		{"0xFF", token.INT_16},
		{"42u", token.UINT_10},
		{"42z", token.SIZE_10},
		{"0xFFFFFFFFFFFFFFFF", token.INT_16},
	}
	for _, tt := range tests {
		toks := lexOK(t, tt.input)
		require.GreaterOrEqual(t, len(toks), 2)
		assert.Equal(t, tt.kind, toks[0].Kind, "input %q", tt.input)
		assert.Equal(t, tt.input, toks[0].Literal, "input %q", tt.input)
	}
}

func TestLexFloatLiterals(t *testing.T) {
	tests := []string{"3.14", "2.5e5", "1.5e-3"}
	for _, in := range tests {
		toks := lexOK(t, in)
		assert.Equal(t, token.FLOAT, toks[0].Kind)
		assert.Equal(t, in, toks[0].Literal)
	}
}

func TestLexStringWithDoubledQuoteEscape(t *testing.T) {
	toks := lexOK(t, `"she said ""hi"""`)
	assert.Equal(t, token.STRING, toks[0].Kind)
	promoted, err := token.PromoteString(toks[0])
	require.NoError(t, err)
	assert.Equal(t, `she said ""hi""`, promoted)
}

func TestLexMultilineString(t *testing.T) {
	toks := lexOK(t, "\\first line\n\\second line")
	require.Equal(t, token.MULTILINE_STRING, toks[0].Kind)
	promoted, err := token.PromoteString(toks[0])
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line", promoted)
}

func TestLexComments(t *testing.T) {
	toks := lexOK(t, "var x /* a block */ = 1; // trailing")
	var sawIdent bool
	comments := 0
	for _, tok := range toks {
		if tok.Kind == token.COMMENT {
			comments++
		}
		if tok.Kind == token.IDENT && tok.Literal == "x" {
			sawIdent = true
		}
	}
	assert.Equal(t, 2, comments)
	assert.True(t, sawIdent)
}

func TestLexOperatorsAndPunctuation(t *testing.T) {
	toks := lexOK(t, "+ - * ** / % == != <= >= && || :: .. ..=")
	kinds := []token.Kind{
		token.PLUS, token.MINUS, token.STAR, token.STAR_STAR, token.SLASH, token.PERCENT,
		token.EQ, token.NEQ, token.LTEQ, token.GTEQ, token.BOOLEAN_AND, token.BOOLEAN_OR,
		token.COLON_COLON, token.DOT_DOT, token.DOT_DOT_EQ, token.END,
	}
	require.Len(t, toks, len(kinds))
	for i, k := range kinds {
		assert.Equal(t, k, toks[i].Kind, "token %d", i)
	}
}

func TestLexIllegalNonASCIIByte(t *testing.T) {
	lx := lexer.New()
	toks, diags := lx.Lex("var café")
	require.NotEmpty(t, diags)
	var sawIllegal bool
	for _, tok := range toks {
		if tok.Kind == token.ILLEGAL {
			sawIllegal = true
		}
	}
	assert.True(t, sawIllegal)
}

func TestLexUnderscoreDiscardVersusIdentifier(t *testing.T) {
	toks := lexOK(t, "_ _foo")
	assert.Equal(t, token.UNDERSCORE, toks[0].Kind)
	assert.Equal(t, token.IDENT, toks[1].Kind)
}

func TestLexAlwaysEndsWithEND(t *testing.T) {
	toks := lexOK(t, "")
	require.Len(t, toks, 1)
	assert.Equal(t, token.END, toks[0].Kind)
}

func TestLexPositions(t *testing.T) {
	toks := lexOK(t, "var\nx")
	require.GreaterOrEqual(t, len(toks), 2)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
}
