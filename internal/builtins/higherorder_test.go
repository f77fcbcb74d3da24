package builtins_test

import (
	"testing"

	"github.com/oxhq/xpathlang/internal/builtins"
	"github.com/oxhq/xpathlang/internal/xvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doubleFn() xvalue.Function {
	return xvalue.Function{
		Name:  "double",
		Arity: 1,
		Call: func(args []xvalue.Value) (xvalue.Value, error) {
			f := args[0].(xvalue.Atomic).Raw.(float64)
			return integer(int(f) * 2), nil
		},
	}
}

func isEvenFn() xvalue.Function {
	return xvalue.Function{
		Name:  "is-even",
		Arity: 1,
		Call: func(args []xvalue.Value) (xvalue.Value, error) {
			f := args[0].(xvalue.Atomic).Raw.(float64)
			return boolean(int(f)%2 == 0), nil
		},
	}
}

func addFn() xvalue.Function {
	return xvalue.Function{
		Name:  "add",
		Arity: 2,
		Call: func(args []xvalue.Value) (xvalue.Value, error) {
			a := args[0].(xvalue.Atomic).Raw.(float64)
			b := args[1].(xvalue.Atomic).Raw.(float64)
			return integer(int(a) + int(b)), nil
		},
	}
}

func TestHigherOrderFunctions(t *testing.T) {
	r := builtins.NewDefaultRegistry()
	input := seq(integer(1), integer(2), integer(3), integer(4))

	t.Run("for-each applies the function to every item", func(t *testing.T) {
		fn, ok := r.Resolve(builtins.FnNamespace, "for-each", 2)
		require.True(t, ok)
		v, err := fn.Call(testContext(), []xvalue.Value{input, doubleFn()})
		require.NoError(t, err)
		out := asSeq(t, v)
		require.Len(t, out, 4)
		assert.Equal(t, float64(2), rawNumber(t, out[0]))
		assert.Equal(t, float64(8), rawNumber(t, out[3]))
	})

	t.Run("map is an alias for for-each", func(t *testing.T) {
		fn, ok := r.Resolve(builtins.FnNamespace, "map", 2)
		require.True(t, ok)
		v, err := fn.Call(testContext(), []xvalue.Value{input, doubleFn()})
		require.NoError(t, err)
		assert.Len(t, asSeq(t, v), 4)
	})

	t.Run("filter keeps items with a true predicate", func(t *testing.T) {
		fn, ok := r.Resolve(builtins.FnNamespace, "filter", 2)
		require.True(t, ok)
		v, err := fn.Call(testContext(), []xvalue.Value{input, isEvenFn()})
		require.NoError(t, err)
		out := asSeq(t, v)
		require.Len(t, out, 2)
		assert.Equal(t, float64(2), rawNumber(t, out[0]))
		assert.Equal(t, float64(4), rawNumber(t, out[1]))
	})

	t.Run("fold-left accumulates left to right", func(t *testing.T) {
		fn, ok := r.Resolve(builtins.FnNamespace, "fold-left", 3)
		require.True(t, ok)
		v, err := fn.Call(testContext(), []xvalue.Value{input, integer(0), addFn()})
		require.NoError(t, err)
		assert.Equal(t, float64(10), rawNumber(t, v))
	})

	t.Run("fold-right accumulates right to left", func(t *testing.T) {
		concatFn := xvalue.Function{
			Arity: 2,
			Call: func(args []xvalue.Value) (xvalue.Value, error) {
				item := rawNumberFromAtomic(args[0])
				acc := args[1].(xvalue.Atomic).Raw.(string)
				return str(itoa(item) + acc), nil
			},
		}
		fn, ok := r.Resolve(builtins.FnNamespace, "fold-right", 3)
		require.True(t, ok)
		v, err := fn.Call(testContext(), []xvalue.Value{input, str(""), concatFn})
		require.NoError(t, err)
		assert.Equal(t, "1234", rawString(t, v))
	})

	t.Run("for-each-pair zips two sequences", func(t *testing.T) {
		fn, ok := r.Resolve(builtins.FnNamespace, "for-each-pair", 3)
		require.True(t, ok)
		v, err := fn.Call(testContext(), []xvalue.Value{seq(integer(1), integer(2)), seq(integer(10), integer(20), integer(30)), addFn()})
		require.NoError(t, err)
		out := asSeq(t, v)
		require.Len(t, out, 2)
		assert.Equal(t, float64(11), rawNumber(t, out[0]))
		assert.Equal(t, float64(22), rawNumber(t, out[1]))
	})
}

func rawNumberFromAtomic(v xvalue.Value) float64 {
	return v.(xvalue.Atomic).Raw.(float64)
}

func itoa(f float64) string {
	digits := "0123456789"
	n := int(f)
	if n == 0 {
		return "0"
	}
	return string(digits[n])
}
