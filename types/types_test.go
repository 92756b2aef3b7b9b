package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnify(t *testing.T) {
	u32 := Type{Base: U32}
	any := Type{Base: Any}

	got, ok := Unify(u32, u32)
	assert.True(t, ok)
	assert.Equal(t, u32, got)

	got, ok = Unify(any, u32)
	assert.True(t, ok)
	assert.Equal(t, u32, got)

	got, ok = Unify(u32, any)
	assert.True(t, ok)
	assert.Equal(t, u32, got)

	got, ok = Unify(any, any)
	assert.True(t, ok)
	assert.Equal(t, any, got)

	_, ok = Unify(u32, Type{Base: I32})
	assert.False(t, ok)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "u8", Type{Base: U8}.String())
	assert.Equal(t, "u8*", Type{Base: U8, PtrDepth: 1}.String())
	assert.Equal(t, "char**", Type{Base: Char, PtrDepth: 2}.String())
}

func TestSize(t *testing.T) {
	assert.Equal(t, 1, Type{Base: U8}.Size())
	assert.Equal(t, 2, Type{Base: I16}.Size())
	assert.Equal(t, 4, Type{Base: U32}.Size())
	assert.Equal(t, 8, Type{Base: I64}.Size())
	assert.Equal(t, 8, Type{Base: U8, PtrDepth: 1}.Size())
}

func TestDerefRef(t *testing.T) {
	p := Type{Base: U8, PtrDepth: 1}
	d, ok := p.Deref()
	assert.True(t, ok)
	assert.Equal(t, Type{Base: U8}, d)

	_, ok = d.Deref()
	assert.False(t, ok)

	assert.Equal(t, p, d.Ref())
}

func TestIsSignedAndInteger(t *testing.T) {
	assert.True(t, Type{Base: I32}.IsSigned())
	assert.False(t, Type{Base: U32}.IsSigned())
	assert.False(t, Type{Base: U32, PtrDepth: 1}.IsSigned())
	assert.True(t, Type{Base: Any}.IsInteger())
	assert.False(t, Type{Base: F64}.IsInteger())
}

func TestOperationPredicates(t *testing.T) {
	assert.True(t, Eq.IsComparison())
	assert.False(t, Add.IsComparison())
	assert.True(t, LogAnd.IsLogical())
	assert.False(t, BitAnd.IsLogical())
}
