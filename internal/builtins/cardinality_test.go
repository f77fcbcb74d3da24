package builtins_test

import (
	"testing"

	"github.com/oxhq/xpathlang/internal/builtins"
	"github.com/oxhq/xpathlang/internal/xerrors"
	"github.com/oxhq/xpathlang/internal/xvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callFnExpectErr(t *testing.T, r *builtins.Registry, local string, arity int, args ...xvalue.Value) *xerrors.Error {
	t.Helper()
	fn, ok := r.Resolve(builtins.FnNamespace, local, arity)
	require.Truef(t, ok, "fn:%s/%d not registered", local, arity)
	_, err := fn.Call(testContext(), args)
	require.Error(t, err)
	var xerr *xerrors.Error
	require.ErrorAs(t, err, &xerr)
	return xerr
}

func TestCardinalityFunctions(t *testing.T) {
	r := builtins.NewDefaultRegistry()

	t.Run("zero-or-one accepts 0 or 1 items", func(t *testing.T) {
		v := callFn(t, r, "zero-or-one", 1, seq())
		assert.Equal(t, 0, xvalue.Len(v))
		v = callFn(t, r, "zero-or-one", 1, seq(integer(1)))
		assert.Equal(t, float64(1), rawNumber(t, v))
	})

	t.Run("zero-or-one rejects 2+ items", func(t *testing.T) {
		xerr := callFnExpectErr(t, r, "zero-or-one", 1, seq(integer(1), integer(2)))
		assert.Equal(t, xerrors.FORG0003, xerr.Code)
	})

	t.Run("one-or-more rejects the empty sequence", func(t *testing.T) {
		xerr := callFnExpectErr(t, r, "one-or-more", 1, seq())
		assert.Equal(t, xerrors.FORG0004, xerr.Code)
	})

	t.Run("one-or-more accepts a non-empty sequence", func(t *testing.T) {
		v := callFn(t, r, "one-or-more", 1, seq(integer(1)))
		assert.Equal(t, 1, xvalue.Len(v))
	})

	t.Run("exactly-one rejects anything but one item", func(t *testing.T) {
		xerr := callFnExpectErr(t, r, "exactly-one", 1, seq())
		assert.Equal(t, xerrors.FORG0005, xerr.Code)
		xerr = callFnExpectErr(t, r, "exactly-one", 1, seq(integer(1), integer(2)))
		assert.Equal(t, xerrors.FORG0005, xerr.Code)
	})

	t.Run("unordered is the identity", func(t *testing.T) {
		v := callFn(t, r, "unordered", 1, seq(integer(3), integer(1), integer(2)))
		out := asSeq(t, v)
		require.Len(t, out, 3)
		assert.Equal(t, float64(3), rawNumber(t, out[0]))
	})
}
