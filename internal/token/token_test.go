package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conchlang/conch/internal/token"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "PLUS", token.PLUS.String())
	assert.Equal(t, "IDENT", token.IDENT.String())
	assert.Contains(t, token.Kind(9999).String(), "Kind(")
}

func TestBase(t *testing.T) {
	tests := []struct {
		kind     token.Kind
		wantBase int
		wantOK   bool
	}{
		{token.INT_2, 2, true},
		{token.UINT_8, 8, true},
		{token.SIZE_16, 16, true},
		{token.INT_10, 10, true},
		{token.IDENT, 0, false},
	}
	for _, tt := range tests {
		base, ok := token.Base(tt.kind)
		assert.Equal(t, tt.wantOK, ok)
		if tt.wantOK {
			assert.Equal(t, tt.wantBase, base)
		}
	}
}

func TestIntegerFamilyPredicates(t *testing.T) {
	assert.True(t, token.IsSignedInteger(token.INT_16))
	assert.False(t, token.IsSignedInteger(token.UINT_16))
	assert.True(t, token.IsUnsignedInteger(token.UINT_2))
	assert.True(t, token.IsSizeInteger(token.SIZE_10))
	assert.True(t, token.IsInteger(token.SIZE_10))
	assert.False(t, token.IsInteger(token.FLOAT))
}

func TestIntegerSuffixLength(t *testing.T) {
	assert.Equal(t, 0, token.IntegerSuffixLength(""))
	assert.Equal(t, 1, token.IntegerSuffixLength("u"))
	assert.Equal(t, 1, token.IntegerSuffixLength("z"))
	assert.Equal(t, 2, token.IntegerSuffixLength("uz"))
	assert.Equal(t, 2, token.IntegerSuffixLength("UZ"))
	assert.Equal(t, 0, token.IntegerSuffixLength("q"))
}

func TestKindForSuffix(t *testing.T) {
	assert.Equal(t, token.INT_10, token.KindForSuffix(10, ""))
	assert.Equal(t, token.UINT_16, token.KindForSuffix(16, "u"))
	assert.Equal(t, token.SIZE_2, token.KindForSuffix(2, "z"))
	assert.Equal(t, token.SIZE_8, token.KindForSuffix(8, "uz"))
}

func TestPromoteStringStandard(t *testing.T) {
	tok := token.Token{Kind: token.STRING, Literal: `"hello"`}
	s, err := token.PromoteString(tok)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}

func TestPromoteStringMultiline(t *testing.T) {
	tok := token.Token{Kind: token.MULTILINE_STRING, Literal: "\\first\n\\second"}
	s, err := token.PromoteString(tok)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", s)
}

func TestPromoteStringRejectsOtherKinds(t *testing.T) {
	_, err := token.PromoteString(token.Token{Kind: token.IDENT, Literal: "x"})
	assert.ErrorIs(t, err, token.ErrNonStringToken)
}

func TestPromoteStringShortLiteral(t *testing.T) {
	_, err := token.PromoteString(token.Token{Kind: token.STRING, Literal: `"`})
	assert.ErrorIs(t, err, token.ErrUnexpectedChar)
}
