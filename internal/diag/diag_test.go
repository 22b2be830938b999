package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conchlang/conch/internal/diag"
)

func TestErrorAppendsPositionSuffix(t *testing.T) {
	d := diag.New(diag.UnknownIdentifier, diag.Position{Line: 3, Col: 7}, "UNKNOWN_IDENTIFIER")
	assert.Equal(t, "UNKNOWN_IDENTIFIER [Ln 3, Col 7]", d.Error())
	assert.Equal(t, d.Error(), d.String())
}

func TestNewFormatsMessageArgs(t *testing.T) {
	d := diag.New(diag.UnexpectedToken, diag.Position{Line: 1, Col: 1}, "Expected token %s, found %s", "IDENT", "SEMICOLON")
	assert.Equal(t, "Expected token IDENT, found SEMICOLON [Ln 1, Col 1]", d.Error())
}

func TestCategoryStringKnownOverflowFamily(t *testing.T) {
	assert.Equal(t, "SIGNED_INTEGER_OVERFLOW", diag.SignedIntegerOverflow.String())
	assert.Equal(t, "UNSIGNED_INTEGER_OVERFLOW", diag.UnsignedIntegerOverflow.String())
	assert.Equal(t, "SIZE_OVERFLOW", diag.SizeIntegerOverflow.String())
	assert.Equal(t, "FLOAT_OVERFLOW", diag.FloatOverflow.String())
	assert.Equal(t, "MALFORMED_INTEGER_STR", diag.MalformedIntegerStr.String())
	assert.Equal(t, "MALFORMED_FLOAT_STR", diag.MalformedFloatStr.String())
}

// TestCategoryStringFallsBackForUnnamedCategories locks in the fallback
// rendering for every category outside the small overflow/malformed-literal
// family that has a canonical taxonomy name.
func TestCategoryStringFallsBackForUnnamedCategories(t *testing.T) {
	assert.Equal(t, "Category(0)", diag.AllocationFailed.String())
	got := diag.TypeMismatch.String()
	assert.Contains(t, got, "Category(")
}

func TestDiagnosticSatisfiesErrorInterface(t *testing.T) {
	var err error = diag.New(diag.UnknownIdentifier, diag.Position{Line: 1, Col: 1}, "x")
	assert.EqualError(t, err, "x [Ln 1, Col 1]")
}
