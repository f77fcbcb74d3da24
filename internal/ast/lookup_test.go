package ast_test

import (
	"testing"

	"github.com/oxhq/xpathlang/internal/ast"
	"github.com/oxhq/xpathlang/internal/xstypes"
	"github.com/oxhq/xpathlang/internal/xvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMap(t *testing.T, reg *xstypes.Registry) *xvalue.Map {
	t.Helper()
	m := xvalue.NewMap()
	keyA := xvalue.NewAtomic(reg.MustLookup("string"), "a")
	m.Put(xvalue.AtomicKey(reg, keyA), keyA, xvalue.NewAtomic(reg.MustLookup("integer"), 1.0))
	keyB := xvalue.NewAtomic(reg.MustLookup("string"), "b")
	m.Put(xvalue.AtomicKey(reg, keyB), keyB, xvalue.NewAtomic(reg.MustLookup("integer"), 2.0))
	return m
}

func TestLookupMapByKeyReturnsBoundValue(t *testing.T) {
	reg := xstypes.Default()
	ctx := typesTestContext()
	m := sampleMap(t, reg)
	node := &ast.Lookup{Base: val{v: m}, KeySpec: lit(reg.MustLookup("string"), "a")}

	v, err := node.Evaluate(ctx)
	require.NoError(t, err)
	seq := xvalue.AsSequence(v)
	require.Len(t, seq, 1)
	assert.Equal(t, 1.0, seq[0].(xvalue.Atomic).Raw)
}

func TestLookupMapMissingKeyReturnsEmpty(t *testing.T) {
	reg := xstypes.Default()
	ctx := typesTestContext()
	m := sampleMap(t, reg)
	node := &ast.Lookup{Base: val{v: m}, KeySpec: lit(reg.MustLookup("string"), "missing")}

	v, err := node.Evaluate(ctx)
	require.NoError(t, err)
	assert.True(t, xvalue.IsEmpty(v))
}

func TestLookupMapWildcardReturnsAllValuesInOrder(t *testing.T) {
	reg := xstypes.Default()
	ctx := typesTestContext()
	m := sampleMap(t, reg)
	node := &ast.Lookup{Base: val{v: m}}

	v, err := node.Evaluate(ctx)
	require.NoError(t, err)
	seq := xvalue.AsSequence(v)
	require.Len(t, seq, 2)
	assert.Equal(t, 1.0, seq[0].(xvalue.Atomic).Raw)
	assert.Equal(t, 2.0, seq[1].(xvalue.Atomic).Raw)
}

func TestLookupArrayByIndex(t *testing.T) {
	reg := xstypes.Default()
	ctx := typesTestContext()
	arr := xvalue.NewArray([]xvalue.Value{
		xvalue.NewAtomic(reg.MustLookup("integer"), 10.0),
		xvalue.NewAtomic(reg.MustLookup("integer"), 20.0),
	})
	node := &ast.Lookup{Base: val{v: arr}, KeySpec: lit(reg.MustLookup("integer"), 2.0)}

	v, err := node.Evaluate(ctx)
	require.NoError(t, err)
	seq := xvalue.AsSequence(v)
	require.Len(t, seq, 1)
	assert.Equal(t, 20.0, seq[0].(xvalue.Atomic).Raw)
}

func TestLookupArrayOutOfBoundsRaisesFOAY0001(t *testing.T) {
	reg := xstypes.Default()
	ctx := typesTestContext()
	arr := xvalue.NewArray([]xvalue.Value{xvalue.NewAtomic(reg.MustLookup("integer"), 10.0)})
	node := &ast.Lookup{Base: val{v: arr}, KeySpec: lit(reg.MustLookup("integer"), 5.0)}

	_, err := node.Evaluate(ctx)
	require.Error(t, err)
}

func TestLookupArrayWildcardDeepFlattensNestedArrays(t *testing.T) {
	reg := xstypes.Default()
	ctx := typesTestContext()
	inner := xvalue.NewArray([]xvalue.Value{xvalue.NewAtomic(reg.MustLookup("integer"), 2.0)})
	outer := xvalue.NewArray([]xvalue.Value{xvalue.NewAtomic(reg.MustLookup("integer"), 1.0), inner})
	node := &ast.Lookup{Base: val{v: outer}}

	v, err := node.Evaluate(ctx)
	require.NoError(t, err)
	seq := xvalue.AsSequence(v)
	require.Len(t, seq, 2)
}

func TestLookupUnaryFormRequiresContextItem(t *testing.T) {
	ctx := typesTestContext()
	node := &ast.Lookup{KeySpec: lit(ctx.Registry.MustLookup("string"), "a")}

	_, err := node.Evaluate(ctx)
	require.Error(t, err)
}

func TestLookupUnaryFormUsesContextItem(t *testing.T) {
	reg := xstypes.Default()
	ctx := typesTestContext()
	m := sampleMap(t, reg)
	itemCtx := ctx.WithContextItem(m, 1, 1)
	node := &ast.Lookup{KeySpec: lit(reg.MustLookup("string"), "b")}

	v, err := node.Evaluate(itemCtx)
	require.NoError(t, err)
	seq := xvalue.AsSequence(v)
	require.Len(t, seq, 1)
	assert.Equal(t, 2.0, seq[0].(xvalue.Atomic).Raw)
}

func TestLookupOnNonMapNonArrayIsTypeError(t *testing.T) {
	reg := xstypes.Default()
	ctx := typesTestContext()
	node := &ast.Lookup{Base: lit(reg.MustLookup("integer"), 1.0), KeySpec: lit(reg.MustLookup("string"), "a")}

	_, err := node.Evaluate(ctx)
	require.Error(t, err)
}
