package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/twied/noumenon/value"
)

func TestDefineAndLookup(t *testing.T) {
	s := New(nil)
	assert.True(t, s.Define("x", value.Int{Value: 1}))
	v, ok := s.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, value.Int{Value: 1}, v)
}

func TestDefineRefusesRedefinitionInSameScope(t *testing.T) {
	s := New(nil)
	assert.True(t, s.Define("x", value.Int{Value: 1}))
	assert.False(t, s.Define("x", value.Int{Value: 2}))
	v, _ := s.Lookup("x")
	assert.Equal(t, value.Int{Value: 1}, v, "prior value stands")
}

func TestShadowingAcrossScopesIsAllowed(t *testing.T) {
	outer := New(nil)
	outer.Define("x", value.Int{Value: 1})
	inner := New(outer)
	assert.True(t, inner.Define("x", value.Int{Value: 2}))
	v, _ := inner.Lookup("x")
	assert.Equal(t, value.Int{Value: 2}, v)
	v, _ = outer.Lookup("x")
	assert.Equal(t, value.Int{Value: 1}, v)
}

func TestLookupWalksChain(t *testing.T) {
	outer := New(nil)
	outer.Define("x", value.Int{Value: 42})
	inner := New(outer)
	v, ok := inner.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, value.Int{Value: 42}, v)
}

func TestLookupMissingReturnsFalse(t *testing.T) {
	s := New(nil)
	_, ok := s.Lookup("missing")
	assert.False(t, ok)
}

func TestAssignFindsOwningScope(t *testing.T) {
	outer := New(nil)
	outer.Define("x", value.Int{Value: 1})
	inner := New(outer)
	assert.True(t, inner.Assign("x", value.Int{Value: 99}))
	v, _ := outer.Lookup("x")
	assert.Equal(t, value.Int{Value: 99}, v)
}

func TestAssignMissingReturnsFalse(t *testing.T) {
	s := New(nil)
	assert.False(t, s.Assign("missing", value.Int{Value: 1}))
}

func TestRoot(t *testing.T) {
	root := New(nil)
	mid := New(root)
	leaf := New(mid)
	assert.Same(t, root, leaf.Root())
}
