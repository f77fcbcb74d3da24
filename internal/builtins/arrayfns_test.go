package builtins_test

import (
	"testing"

	"github.com/oxhq/xpathlang/internal/builtins"
	"github.com/oxhq/xpathlang/internal/xvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayFunctions(t *testing.T) {
	r := builtins.NewDefaultRegistry()
	a := xvalue.NewArray([]xvalue.Value{integer(1), integer(2), integer(3)})

	t.Run("size and get", func(t *testing.T) {
		assert.Equal(t, float64(3), rawNumber(t, callFn(t, r, "size", 1, a)))
		assert.Equal(t, float64(2), rawNumber(t, callFn(t, r, "get", 2, a, integer(2))))
	})

	t.Run("get out of bounds errors", func(t *testing.T) {
		fn, ok := r.Resolve(builtins.ArrayNamespace, "get", 2)
		require.True(t, ok)
		_, err := fn.Call(testContext(), []xvalue.Value{a, integer(9)})
		assert.Error(t, err)
	})

	t.Run("put replaces a member", func(t *testing.T) {
		fn, ok := r.Resolve(builtins.ArrayNamespace, "put", 3)
		require.True(t, ok)
		v, err := fn.Call(testContext(), []xvalue.Value{a, integer(1), integer(99)})
		require.NoError(t, err)
		out := v.(*xvalue.Array)
		got, _ := out.Get(1)
		assert.Equal(t, float64(99), rawNumber(t, got))
		orig, _ := a.Get(1)
		assert.Equal(t, float64(1), rawNumber(t, orig), "original array must be unchanged")
	})

	t.Run("append grows by one member", func(t *testing.T) {
		fn, ok := r.Resolve(builtins.ArrayNamespace, "append", 2)
		require.True(t, ok)
		v, err := fn.Call(testContext(), []xvalue.Value{a, integer(4)})
		require.NoError(t, err)
		out := v.(*xvalue.Array)
		assert.Equal(t, 4, out.Len())
	})

	t.Run("flatten descends into nested arrays", func(t *testing.T) {
		nested := xvalue.NewArray([]xvalue.Value{integer(10), integer(20)})
		outer := xvalue.NewArray([]xvalue.Value{integer(1), nested})
		fn, ok := r.Resolve(builtins.ArrayNamespace, "flatten", 1)
		require.True(t, ok)
		v, err := fn.Call(testContext(), []xvalue.Value{outer})
		require.NoError(t, err)
		out := asSeq(t, v)
		require.Len(t, out, 3)
		assert.Equal(t, float64(1), rawNumber(t, out[0]))
		assert.Equal(t, float64(10), rawNumber(t, out[1]))
		assert.Equal(t, float64(20), rawNumber(t, out[2]))
	})

	t.Run("head, tail, reverse", func(t *testing.T) {
		fnHead, _ := r.Resolve(builtins.ArrayNamespace, "head", 1)
		h, err := fnHead.Call(testContext(), []xvalue.Value{a})
		require.NoError(t, err)
		assert.Equal(t, float64(1), rawNumber(t, h))

		fnTail, _ := r.Resolve(builtins.ArrayNamespace, "tail", 1)
		tl, err := fnTail.Call(testContext(), []xvalue.Value{a})
		require.NoError(t, err)
		assert.Equal(t, 2, tl.(*xvalue.Array).Len())

		fnRev, _ := r.Resolve(builtins.ArrayNamespace, "reverse", 1)
		rv, err := fnRev.Call(testContext(), []xvalue.Value{a})
		require.NoError(t, err)
		first, _ := rv.(*xvalue.Array).Get(1)
		assert.Equal(t, float64(3), rawNumber(t, first))
	})

	t.Run("insert-before and remove", func(t *testing.T) {
		fnIns, _ := r.Resolve(builtins.ArrayNamespace, "insert-before", 3)
		v, err := fnIns.Call(testContext(), []xvalue.Value{a, integer(2), integer(42)})
		require.NoError(t, err)
		ins := v.(*xvalue.Array)
		require.Equal(t, 4, ins.Len())
		second, _ := ins.Get(2)
		assert.Equal(t, float64(42), rawNumber(t, second))

		fnRem, _ := r.Resolve(builtins.ArrayNamespace, "remove", 2)
		v, err = fnRem.Call(testContext(), []xvalue.Value{a, integer(2)})
		require.NoError(t, err)
		rem := v.(*xvalue.Array)
		require.Equal(t, 2, rem.Len())
		first, _ := rem.Get(1)
		second, _ = rem.Get(2)
		assert.Equal(t, float64(1), rawNumber(t, first))
		assert.Equal(t, float64(3), rawNumber(t, second))
	})

	t.Run("subarray", func(t *testing.T) {
		fn, ok := r.Resolve(builtins.ArrayNamespace, "subarray", 2)
		require.True(t, ok)
		v, err := fn.Call(testContext(), []xvalue.Value{a, integer(2)})
		require.NoError(t, err)
		out := v.(*xvalue.Array)
		require.Equal(t, 2, out.Len())
		first, _ := out.Get(1)
		assert.Equal(t, float64(2), rawNumber(t, first))
	})

	t.Run("for-each maps over members", func(t *testing.T) {
		double := xvalue.Function{
			Arity: 1,
			Call: func(args []xvalue.Value) (xvalue.Value, error) {
				f := args[0].(xvalue.Atomic).Raw.(float64)
				return integer(int(f) * 2), nil
			},
		}
		fn, ok := r.Resolve(builtins.ArrayNamespace, "for-each", 2)
		require.True(t, ok)
		v, err := fn.Call(testContext(), []xvalue.Value{a, double})
		require.NoError(t, err)
		out := v.(*xvalue.Array)
		first, _ := out.Get(1)
		assert.Equal(t, float64(2), rawNumber(t, first))
	})
}
