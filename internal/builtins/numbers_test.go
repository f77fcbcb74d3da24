package builtins_test

import (
	"testing"

	"github.com/oxhq/xpathlang/internal/builtins"
	"github.com/oxhq/xpathlang/internal/xvalue"
	"github.com/stretchr/testify/assert"
)

func TestNumberFunctions(t *testing.T) {
	r := builtins.NewDefaultRegistry()

	t.Run("number coerces a numeric string", func(t *testing.T) {
		v := callFn(t, r, "number", 1, str("42.5"))
		assert.Equal(t, 42.5, rawNumber(t, v))
	})

	t.Run("sum adds a sequence", func(t *testing.T) {
		v := callFn(t, r, "sum", 1, seq(integer(1), integer(2), integer(3)))
		assert.Equal(t, float64(6), rawNumber(t, v))
	})

	t.Run("sum of empty sequence uses the default", func(t *testing.T) {
		v := callFn(t, r, "sum", 2, seq(), num(-1))
		assert.Equal(t, float64(-1), rawNumber(t, v))
	})

	t.Run("avg", func(t *testing.T) {
		v := callFn(t, r, "avg", 1, seq(integer(1), integer(2), integer(3)))
		assert.Equal(t, float64(2), rawNumber(t, v))
		assert.True(t, xvalue.IsEmpty(callFn(t, r, "avg", 1, seq())))
	})

	t.Run("min and max", func(t *testing.T) {
		v := callFn(t, r, "min", 1, seq(integer(3), integer(1), integer(2)))
		assert.Equal(t, float64(1), rawNumber(t, v))
		v = callFn(t, r, "max", 1, seq(integer(3), integer(1), integer(2)))
		assert.Equal(t, float64(3), rawNumber(t, v))
	})

	t.Run("floor", func(t *testing.T) {
		v := callFn(t, r, "floor", 1, num(1.75))
		assert.Equal(t, float64(1), rawNumber(t, v))
	})

	t.Run("ceiling", func(t *testing.T) {
		v := callFn(t, r, "ceiling", 1, num(1.25))
		assert.Equal(t, float64(2), rawNumber(t, v))
	})

	t.Run("round ties toward positive infinity", func(t *testing.T) {
		v := callFn(t, r, "round", 1, num(2.5))
		assert.Equal(t, float64(3), rawNumber(t, v))
		v = callFn(t, r, "round", 1, num(-2.5))
		assert.Equal(t, float64(-2), rawNumber(t, v))
	})

	t.Run("round-half-to-even", func(t *testing.T) {
		v := callFn(t, r, "round-half-to-even", 1, num(2.5))
		assert.Equal(t, float64(2), rawNumber(t, v))
		v = callFn(t, r, "round-half-to-even", 1, num(3.5))
		assert.Equal(t, float64(4), rawNumber(t, v))
	})

	t.Run("abs", func(t *testing.T) {
		v := callFn(t, r, "abs", 1, num(-7.5))
		assert.Equal(t, float64(7.5), rawNumber(t, v))
	})
}

func TestBooleanFunctions(t *testing.T) {
	r := builtins.NewDefaultRegistry()

	t.Run("boolean effective value", func(t *testing.T) {
		v := callFn(t, r, "boolean", 1, str("non-empty"))
		assert.True(t, rawBool(t, v))
		v = callFn(t, r, "boolean", 1, str(""))
		assert.False(t, rawBool(t, v))
	})

	t.Run("not negates", func(t *testing.T) {
		v := callFn(t, r, "not", 1, boolean(true))
		assert.False(t, rawBool(t, v))
	})

	t.Run("true and false literals", func(t *testing.T) {
		assert.True(t, rawBool(t, callFn(t, r, "true", 0)))
		assert.False(t, rawBool(t, callFn(t, r, "false", 0)))
	})
}
