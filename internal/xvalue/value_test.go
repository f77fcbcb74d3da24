package xvalue_test

import (
	"testing"

	"github.com/oxhq/xpathlang/internal/xhost/xhosttest"
	"github.com/oxhq/xpathlang/internal/xstypes"
	"github.com/oxhq/xpathlang/internal/xvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strType() *xstypes.AtomicType { return xstypes.Default().MustLookup("string") }

func TestConcatFlattensNestedSequences(t *testing.T) {
	a := xvalue.NewAtomic(strType(), "a")
	b := xvalue.NewAtomic(strType(), "b")
	c := xvalue.NewAtomic(strType(), "c")

	got := xvalue.Concat(a, xvalue.Sequence{b, c})
	assert.Equal(t, xvalue.Sequence{a, b, c}, got)
}

func TestAsSequenceWrapsSingleItem(t *testing.T) {
	a := xvalue.NewAtomic(strType(), "a")
	assert.Equal(t, xvalue.Sequence{a}, xvalue.AsSequence(a))
	assert.Equal(t, xvalue.Empty, xvalue.AsSequence(nil))
}

func TestUnwrapCollapsesLengthOneSequence(t *testing.T) {
	a := xvalue.NewAtomic(strType(), "a")
	wrapped := xvalue.Sequence{xvalue.Sequence{a}}
	assert.Equal(t, a, xvalue.Unwrap(wrapped))

	multi := xvalue.Sequence{a, a}
	assert.Equal(t, multi, xvalue.Unwrap(multi))
}

func TestLenAndIsEmpty(t *testing.T) {
	assert.True(t, xvalue.IsEmpty(xvalue.Empty))
	assert.True(t, xvalue.IsEmpty(nil))
	assert.Equal(t, 2, xvalue.Len(xvalue.Sequence{xvalue.NewAtomic(strType(), "a"), xvalue.NewAtomic(strType(), "b")}))
}

func TestMapPutGetPreservesInsertionOrderAndLastWriteWins(t *testing.T) {
	m := xvalue.NewMap()
	a := xvalue.NewAtomic(strType(), "a")
	one := xvalue.NewAtomic(xstypes.Default().MustLookup("integer"), 1.0)
	three := xvalue.NewAtomic(xstypes.Default().MustLookup("integer"), 3.0)

	m.Put("key:a", a, one)
	b := xvalue.NewAtomic(strType(), "b")
	two := xvalue.NewAtomic(xstypes.Default().MustLookup("integer"), 2.0)
	m.Put("key:b", b, two)
	m.Put("key:a", a, three) // duplicate key, last write wins

	require.Equal(t, 2, m.Size())
	v, ok := m.Get("key:a")
	require.True(t, ok)
	assert.Equal(t, three, v)

	keys := m.Keys()
	require.Len(t, keys, 2)
	assert.Equal(t, a, keys[0])
	assert.Equal(t, b, keys[1])
}

func TestArrayGetIsOneIndexed(t *testing.T) {
	items := []xvalue.Value{
		xvalue.NewAtomic(xstypes.Default().MustLookup("integer"), 10.0),
		xvalue.NewAtomic(xstypes.Default().MustLookup("integer"), 20.0),
		xvalue.NewAtomic(xstypes.Default().MustLookup("integer"), 30.0),
	}
	arr := xvalue.NewArray(items)

	v, ok := arr.Get(2)
	require.True(t, ok)
	assert.Equal(t, items[1], v)

	_, ok = arr.Get(0)
	assert.False(t, ok)
	_, ok = arr.Get(4)
	assert.False(t, ok)
}

func TestArrayFlattenDeepFlattensNestedArrays(t *testing.T) {
	inner := xvalue.NewArray([]xvalue.Value{xvalue.NewAtomic(strType(), "x"), xvalue.NewAtomic(strType(), "y")})
	outer := xvalue.NewArray([]xvalue.Value{inner, xvalue.NewAtomic(strType(), "z")})

	flat := outer.Flatten()
	require.Len(t, flat, 3)
}

func TestAtomizeNodeYieldsUntypedAtomic(t *testing.T) {
	reg := xstypes.Default()
	node := xhosttest.NewElement("p", "")
	node.AppendChild(xhosttest.NewText("hi"))
	out, err := xvalue.Atomize(reg, xvalue.NodeValue{Node: node})
	require.NoError(t, err)
	require.Len(t, out, 1)
	a, ok := out[0].(xvalue.Atomic)
	require.True(t, ok)
	assert.Equal(t, "untypedAtomic", a.Type.Name)
	assert.Equal(t, "hi", a.Raw)

	_, err = xvalue.Atomize(reg, &xvalue.Map{})
	require.Error(t, err)
}

func TestAtomicKeyUnifiesNumericSubtypes(t *testing.T) {
	reg := xstypes.Default()
	intVal := xvalue.NewAtomic(reg.MustLookup("integer"), 1.0)
	doubleVal := xvalue.NewAtomic(reg.MustLookup("double"), 1.0)

	assert.Equal(t, xvalue.AtomicKey(reg, intVal), xvalue.AtomicKey(reg, doubleVal))
}
