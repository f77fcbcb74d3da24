package builtins_test

import (
	"testing"

	"github.com/oxhq/xpathlang/internal/builtins"
	"github.com/oxhq/xpathlang/internal/xvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMap(t *testing.T, pairs ...xvalue.Value) *xvalue.Map {
	t.Helper()
	require.True(t, len(pairs)%2 == 0, "pairs must alternate key, value")
	m := xvalue.NewMap()
	ctx := testContext()
	for i := 0; i < len(pairs); i += 2 {
		key, _, err := builtins.TestMapKeyOf(ctx, pairs[i])
		require.NoError(t, err)
		m.Put(key, pairs[i], pairs[i+1])
	}
	return m
}

func TestMapFunctions(t *testing.T) {
	r := builtins.NewDefaultRegistry()

	t.Run("size, keys, get, contains", func(t *testing.T) {
		m := newTestMap(t, str("a"), integer(1), str("b"), integer(2))
		assert.Equal(t, float64(2), rawNumber(t, callFnNS(t, r, builtins.MapNamespace, "size", 1, m)))

		got := callFnNS(t, r, builtins.MapNamespace, "get", 2, m, str("a"))
		assert.Equal(t, float64(1), rawNumber(t, got))

		assert.True(t, rawBool(t, callFnNS(t, r, builtins.MapNamespace, "contains", 2, m, str("a"))))
		assert.False(t, rawBool(t, callFnNS(t, r, builtins.MapNamespace, "contains", 2, m, str("z"))))
	})

	t.Run("get on a missing key returns the empty sequence", func(t *testing.T) {
		m := newTestMap(t, str("a"), integer(1))
		v := callFnNS(t, r, builtins.MapNamespace, "get", 2, m, str("missing"))
		assert.True(t, xvalue.IsEmpty(v))
	})

	t.Run("put adds or overwrites a key", func(t *testing.T) {
		m := newTestMap(t, str("a"), integer(1))
		fn, ok := r.Resolve(builtins.MapNamespace, "put", 3)
		require.True(t, ok)
		v, err := fn.Call(testContext(), []xvalue.Value{m, str("a"), integer(99)})
		require.NoError(t, err)
		out, ok := v.(*xvalue.Map)
		require.True(t, ok)
		assert.Equal(t, 1, out.Size())
	})

	t.Run("remove drops a key", func(t *testing.T) {
		m := newTestMap(t, str("a"), integer(1), str("b"), integer(2))
		fn, ok := r.Resolve(builtins.MapNamespace, "remove", 2)
		require.True(t, ok)
		v, err := fn.Call(testContext(), []xvalue.Value{m, str("a")})
		require.NoError(t, err)
		out := v.(*xvalue.Map)
		assert.Equal(t, 1, out.Size())
	})

	t.Run("merge combines maps, later entries winning by default", func(t *testing.T) {
		a := newTestMap(t, str("x"), integer(1))
		b := newTestMap(t, str("x"), integer(2), str("y"), integer(3))
		fn, ok := r.Resolve(builtins.MapNamespace, "merge", 1)
		require.True(t, ok)
		v, err := fn.Call(testContext(), []xvalue.Value{xvalue.Sequence{a, b}})
		require.NoError(t, err)
		out := v.(*xvalue.Map)
		assert.Equal(t, 2, out.Size())
		got, _ := out.Get(mustKey(t, str("x")))
		assert.Equal(t, float64(2), rawNumber(t, got))
	})

	t.Run("merge rejects duplicates when requested", func(t *testing.T) {
		a := newTestMap(t, str("x"), integer(1))
		b := newTestMap(t, str("x"), integer(2))
		opts := newTestMap(t, str("duplicates"), str("reject"))
		fn, ok := r.Resolve(builtins.MapNamespace, "merge", 2)
		require.True(t, ok)
		_, err := fn.Call(testContext(), []xvalue.Value{xvalue.Sequence{a, b}, opts})
		assert.Error(t, err)
	})
}

func mustKey(t *testing.T, v xvalue.Value) string {
	t.Helper()
	k, _, err := builtins.TestMapKeyOf(testContext(), v)
	require.NoError(t, err)
	return k
}
