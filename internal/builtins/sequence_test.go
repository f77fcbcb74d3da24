package builtins_test

import (
	"testing"

	"github.com/oxhq/xpathlang/internal/builtins"
	"github.com/oxhq/xpathlang/internal/xvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asSeq(t *testing.T, v xvalue.Value) xvalue.Sequence {
	t.Helper()
	s, ok := v.(xvalue.Sequence)
	require.True(t, ok, "expected a Sequence, got %T", v)
	return s
}

func TestSequenceFunctions(t *testing.T) {
	r := builtins.NewDefaultRegistry()

	t.Run("distinct-values dedupes by atomized equality", func(t *testing.T) {
		v := callFn(t, r, "distinct-values", 1, seq(integer(1), integer(2), integer(1), integer(3)))
		out := asSeq(t, v)
		require.Len(t, out, 3)
	})

	t.Run("index-of finds every matching position", func(t *testing.T) {
		v := callFn(t, r, "index-of", 2, seq(str("a"), str("b"), str("a")), str("a"))
		out := asSeq(t, v)
		require.Len(t, out, 2)
		assert.Equal(t, float64(1), rawNumber(t, out[0]))
		assert.Equal(t, float64(3), rawNumber(t, out[1]))
	})

	t.Run("insert-before splices at a 1-based position", func(t *testing.T) {
		v := callFn(t, r, "insert-before", 3, seq(str("a"), str("c")), integer(2), seq(str("b")))
		out := asSeq(t, v)
		require.Len(t, out, 3)
		assert.Equal(t, "a", rawString(t, out[0]))
		assert.Equal(t, "b", rawString(t, out[1]))
		assert.Equal(t, "c", rawString(t, out[2]))
	})

	t.Run("remove drops the item at position", func(t *testing.T) {
		v := callFn(t, r, "remove", 2, seq(str("a"), str("b"), str("c")), integer(2))
		out := asSeq(t, v)
		require.Len(t, out, 2)
		assert.Equal(t, "a", rawString(t, out[0]))
		assert.Equal(t, "c", rawString(t, out[1]))
	})

	t.Run("reverse", func(t *testing.T) {
		v := callFn(t, r, "reverse", 1, seq(integer(1), integer(2), integer(3)))
		out := asSeq(t, v)
		require.Len(t, out, 3)
		assert.Equal(t, float64(3), rawNumber(t, out[0]))
	})

	t.Run("subsequence two-arg", func(t *testing.T) {
		v := callFn(t, r, "subsequence", 2, seq(integer(1), integer(2), integer(3), integer(4)), num(2))
		out := asSeq(t, v)
		require.Len(t, out, 3)
		assert.Equal(t, float64(2), rawNumber(t, out[0]))
	})

	t.Run("subsequence three-arg", func(t *testing.T) {
		v := callFn(t, r, "subsequence", 3, seq(integer(1), integer(2), integer(3), integer(4)), num(2), num(2))
		out := asSeq(t, v)
		require.Len(t, out, 2)
		assert.Equal(t, float64(2), rawNumber(t, out[0]))
		assert.Equal(t, float64(3), rawNumber(t, out[1]))
	})

	t.Run("head and tail", func(t *testing.T) {
		head := callFn(t, r, "head", 1, seq(integer(1), integer(2), integer(3)))
		assert.Equal(t, float64(1), rawNumber(t, head))
		tail := callFn(t, r, "tail", 1, seq(integer(1), integer(2), integer(3)))
		out := asSeq(t, tail)
		require.Len(t, out, 2)
		assert.Equal(t, float64(2), rawNumber(t, out[0]))
	})

	t.Run("sort by atomized value", func(t *testing.T) {
		v := callFn(t, r, "sort", 1, seq(str("banana"), str("apple"), str("cherry")))
		out := asSeq(t, v)
		require.Len(t, out, 3)
		assert.Equal(t, "apple", rawString(t, out[0]))
		assert.Equal(t, "banana", rawString(t, out[1]))
		assert.Equal(t, "cherry", rawString(t, out[2]))
	})

	t.Run("sort with a custom comparator", func(t *testing.T) {
		descending := xvalue.Function{
			Name:  "descending",
			Arity: 2,
			Call: func(args []xvalue.Value) (xvalue.Value, error) {
				a := args[0].(xvalue.Atomic).Raw.(float64)
				b := args[1].(xvalue.Atomic).Raw.(float64)
				return boolean(a > b), nil
			},
		}
		v := callFn(t, r, "sort", 2, seq(integer(1), integer(3), integer(2)), descending)
		out := asSeq(t, v)
		require.Len(t, out, 3)
		assert.Equal(t, float64(3), rawNumber(t, out[0]))
		assert.Equal(t, float64(2), rawNumber(t, out[1]))
		assert.Equal(t, float64(1), rawNumber(t, out[2]))
	})

	t.Run("empty and exists", func(t *testing.T) {
		assert.True(t, rawBool(t, callFn(t, r, "empty", 1, seq())))
		assert.False(t, rawBool(t, callFn(t, r, "exists", 1, seq())))
		assert.True(t, rawBool(t, callFn(t, r, "exists", 1, seq(integer(1)))))
	})
}
