package builtins_test

import (
	"math"
	"testing"

	"github.com/oxhq/xpathlang/internal/builtins"
	"github.com/stretchr/testify/assert"
)

func TestMathFunctions(t *testing.T) {
	r := builtins.NewDefaultRegistry()

	t.Run("pi", func(t *testing.T) {
		v := callFnNS(t, r, builtins.MathNamespace, "pi", 0)
		assert.InDelta(t, math.Pi, rawNumber(t, v), 1e-12)
	})

	t.Run("sqrt", func(t *testing.T) {
		v := callFnNS(t, r, builtins.MathNamespace, "sqrt", 1, num(9))
		assert.Equal(t, float64(3), rawNumber(t, v))
	})

	t.Run("sin of zero", func(t *testing.T) {
		v := callFnNS(t, r, builtins.MathNamespace, "sin", 1, num(0))
		assert.InDelta(t, 0, rawNumber(t, v), 1e-12)
	})

	t.Run("pow", func(t *testing.T) {
		v := callFnNS(t, r, builtins.MathNamespace, "pow", 2, num(2), num(10))
		assert.Equal(t, float64(1024), rawNumber(t, v))
	})

	t.Run("atan2", func(t *testing.T) {
		v := callFnNS(t, r, builtins.MathNamespace, "atan2", 2, num(0), num(1))
		assert.InDelta(t, 0, rawNumber(t, v), 1e-12)
	})

	t.Run("exp10", func(t *testing.T) {
		v := callFnNS(t, r, builtins.MathNamespace, "exp10", 1, num(2))
		assert.Equal(t, float64(100), rawNumber(t, v))
	})
}
