package semctx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conchlang/conch/internal/semctx"
	"github.com/conchlang/conch/internal/types"
)

func TestDeclareAndFindLocal(t *testing.T) {
	root := semctx.NewRoot()
	defer root.Close()

	intType := types.NewPrimitive(types.SignedInteger, false, false, true)
	root.Declare("x", intType)

	got, ok := root.Find("x")
	require.True(t, ok)
	assert.Same(t, intType, got)
	assert.True(t, root.HasLocal("x"))
}

func TestFindWalksParentChain(t *testing.T) {
	root := semctx.NewRoot()
	defer root.Close()

	intType := types.NewPrimitive(types.SignedInteger, false, false, true)
	root.Declare("x", intType)

	child := root.Nested()
	defer child.Close()

	got, ok := child.Find("x")
	require.True(t, ok)
	assert.Same(t, intType, got)
	assert.False(t, child.HasLocal("x"), "x is bound in the parent, not directly in child")
}

func TestNestedShadowsParent(t *testing.T) {
	root := semctx.NewRoot()
	defer root.Close()

	outer := types.NewPrimitive(types.SignedInteger, false, false, true)
	root.Declare("x", outer)

	child := root.Nested()
	defer child.Close()

	inner := types.NewPrimitive(types.Str, false, false, true)
	child.Declare("x", inner)

	got, ok := child.Find("x")
	require.True(t, ok)
	assert.Same(t, inner, got)

	parentGot, _ := root.Find("x")
	assert.Same(t, outer, parentGot)
}

func TestFindMissingReturnsFalse(t *testing.T) {
	root := semctx.NewRoot()
	defer root.Close()

	_, ok := root.Find("nonexistent")
	assert.False(t, ok)
}

func TestParentOfRootIsNil(t *testing.T) {
	root := semctx.NewRoot()
	defer root.Close()
	assert.Nil(t, root.Parent())

	child := root.Nested()
	defer child.Close()
	assert.Same(t, root, child.Parent())
}

func TestCloseReleasesHeldTypes(t *testing.T) {
	root := semctx.NewRoot()

	enumType := types.NewEnumType("Color", map[string]bool{"Red": true})
	bound := &types.Type{Tag: types.Enum, Valued: true, EnumType: enumType}
	root.Declare("c", bound)

	// Close must not panic and must drop the scope's bindings.
	root.Close()
	_, ok := root.Find("c")
	assert.False(t, ok)
}
