package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conchlang/conch/internal/types"
)

func TestEqualPrimitives(t *testing.T) {
	a := types.NewPrimitive(types.SignedInteger, false, false, true)
	b := types.NewPrimitive(types.SignedInteger, true, false, true)
	assert.True(t, types.Equal(a, b), "IsConst must not affect type_equal")

	c := types.NewPrimitive(types.UnsignedInteger, false, false, true)
	assert.False(t, types.Equal(a, c))
}

func TestEqualNilableAgainstNilTag(t *testing.T) {
	nullableInt := types.NewPrimitive(types.SignedInteger, false, true, true)
	nilType := types.NewPrimitive(types.NilTag, false, false, true)
	assert.True(t, types.Equal(nullableInt, nilType))

	nonNullInt := types.NewPrimitive(types.SignedInteger, false, false, true)
	assert.False(t, types.Equal(nonNullInt, nilType))
}

func TestAssignableNullableFromNonNullable(t *testing.T) {
	lhs := types.NewPrimitive(types.SignedInteger, false, true, true)
	rhs := types.NewPrimitive(types.SignedInteger, false, false, true)
	assert.True(t, types.Assignable(lhs, rhs))
}

func TestAssignableNonNullableFromNullableFails(t *testing.T) {
	lhs := types.NewPrimitive(types.SignedInteger, false, false, true)
	rhs := types.NewPrimitive(types.SignedInteger, false, true, true)
	assert.False(t, types.Assignable(lhs, rhs))
}

func TestAssignableNilToNullable(t *testing.T) {
	lhs := types.NewPrimitive(types.SignedInteger, false, true, true)
	rhs := types.NewPrimitive(types.NilTag, false, false, true)
	assert.True(t, types.Assignable(lhs, rhs))

	nonNullable := types.NewPrimitive(types.SignedInteger, false, false, true)
	assert.False(t, types.Assignable(nonNullable, rhs))
}

func TestEnumTypeReferenceCounting(t *testing.T) {
	enumType := types.NewEnumType("Color", map[string]bool{"Red": true, "Blue": true})
	original := &types.Type{Tag: types.Enum, Valued: true, EnumType: enumType}

	retained := original.Retain()
	require.NotNil(t, retained)
	assert.Same(t, enumType, retained.EnumType)

	retained.Release()
	original.Release()
}

func TestArrayTypeReleaseCascadesToInner(t *testing.T) {
	inner := types.NewPrimitive(types.SignedInteger, false, false, true)
	arr := types.NewArrayType(types.ArraySingleDim, inner)
	arr.Length = 3
	outer := &types.Type{Tag: types.Array, Valued: true, ArrayType: arr}

	// Single owner: releasing drops the array descriptor to zero and cascades
	// into releasing its inner type.
	outer.Release()
}

func TestArrayEqualBySingleDimLength(t *testing.T) {
	inner := types.NewPrimitive(types.SignedInteger, false, false, true)
	a := &types.Type{Tag: types.Array, Valued: true, ArrayType: types.NewArrayType(types.ArraySingleDim, inner)}
	a.ArrayType.Length = 5
	b := &types.Type{Tag: types.Array, Valued: true, ArrayType: types.NewArrayType(types.ArraySingleDim, inner)}
	b.ArrayType.Length = 5
	assert.True(t, types.Equal(a, b))

	b.ArrayType.Length = 6
	assert.False(t, types.Equal(a, b))
}

func TestIsArithmeticAndIsInteger(t *testing.T) {
	signed := types.NewPrimitive(types.SignedInteger, false, false, true)
	assert.True(t, signed.IsArithmetic())
	assert.True(t, signed.IsInteger())

	nullableSigned := types.NewPrimitive(types.SignedInteger, false, true, true)
	assert.False(t, nullableSigned.IsArithmetic())

	str := types.NewPrimitive(types.Str, false, false, true)
	assert.True(t, str.IsPrimitive())
	assert.False(t, str.IsArithmetic())
}
