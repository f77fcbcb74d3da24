package builtins_test

import (
	"testing"

	"github.com/oxhq/xpathlang/internal/builtins"
	"github.com/oxhq/xpathlang/internal/xvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callFn(t *testing.T, r *builtins.Registry, local string, arity int, args ...xvalue.Value) xvalue.Value {
	t.Helper()
	return callFnNS(t, r, builtins.FnNamespace, local, arity, args...)
}

func callFnNS(t *testing.T, r *builtins.Registry, namespace, local string, arity int, args ...xvalue.Value) xvalue.Value {
	t.Helper()
	fn, ok := r.Resolve(namespace, local, arity)
	require.Truef(t, ok, "%s#%s/%d not registered", namespace, local, arity)
	v, err := fn.Call(testContext(), args)
	require.NoError(t, err)
	return v
}

func rawString(t *testing.T, v xvalue.Value) string {
	t.Helper()
	a, ok := v.(xvalue.Atomic)
	require.True(t, ok, "expected an atomic value, got %T", v)
	s, ok := a.Raw.(string)
	require.True(t, ok, "expected a string atomic, got %T", a.Raw)
	return s
}

func rawBool(t *testing.T, v xvalue.Value) bool {
	t.Helper()
	a, ok := v.(xvalue.Atomic)
	require.True(t, ok, "expected an atomic value, got %T", v)
	b, ok := a.Raw.(bool)
	require.True(t, ok, "expected a boolean atomic, got %T", a.Raw)
	return b
}

func rawNumber(t *testing.T, v xvalue.Value) float64 {
	t.Helper()
	a, ok := v.(xvalue.Atomic)
	require.True(t, ok, "expected an atomic value, got %T", v)
	f, ok := a.Raw.(float64)
	require.True(t, ok, "expected a numeric atomic, got %T", a.Raw)
	return f
}

func TestStringFunctionsTable(t *testing.T) {
	r := builtins.NewDefaultRegistry()

	t.Run("concat", func(t *testing.T) {
		v := callFn(t, r, "concat", 2, str("foo"), str("bar"))
		assert.Equal(t, "foobar", rawString(t, v))
	})

	t.Run("contains", func(t *testing.T) {
		v := callFn(t, r, "contains", 2, str("hello world"), str("wor"))
		assert.True(t, rawBool(t, v))
	})

	t.Run("starts-with", func(t *testing.T) {
		v := callFn(t, r, "starts-with", 2, str("hello"), str("he"))
		assert.True(t, rawBool(t, v))
	})

	t.Run("ends-with", func(t *testing.T) {
		v := callFn(t, r, "ends-with", 2, str("hello"), str("lo"))
		assert.True(t, rawBool(t, v))
	})

	t.Run("substring two-arg", func(t *testing.T) {
		v := callFn(t, r, "substring", 2, str("motorcar"), num(6))
		assert.Equal(t, "car", rawString(t, v))
	})

	t.Run("substring three-arg", func(t *testing.T) {
		v := callFn(t, r, "substring", 3, str("motorcar"), num(1), num(5))
		assert.Equal(t, "motor", rawString(t, v))
	})

	t.Run("substring-before", func(t *testing.T) {
		v := callFn(t, r, "substring-before", 2, str("tattoo"), str("attoo"))
		assert.Equal(t, "t", rawString(t, v))
	})

	t.Run("substring-after", func(t *testing.T) {
		v := callFn(t, r, "substring-after", 2, str("tattoo"), str("tat"))
		assert.Equal(t, "too", rawString(t, v))
	})

	t.Run("string-length", func(t *testing.T) {
		v := callFn(t, r, "string-length", 1, str("xpath"))
		assert.Equal(t, float64(5), rawNumber(t, v))
	})

	t.Run("normalize-space", func(t *testing.T) {
		v := callFn(t, r, "normalize-space", 1, str("  a   b  c "))
		assert.Equal(t, "a b c", rawString(t, v))
	})

	t.Run("translate", func(t *testing.T) {
		v := callFn(t, r, "translate", 3, str("bar"), str("abc"), str("ABC"))
		assert.Equal(t, "BAr", rawString(t, v))
	})

	t.Run("upper-case", func(t *testing.T) {
		v := callFn(t, r, "upper-case", 1, str("xPath"))
		assert.Equal(t, "XPATH", rawString(t, v))
	})

	t.Run("lower-case", func(t *testing.T) {
		v := callFn(t, r, "lower-case", 1, str("XPath"))
		assert.Equal(t, "xpath", rawString(t, v))
	})

	t.Run("string-join", func(t *testing.T) {
		v := callFn(t, r, "string-join", 2, seq(str("a"), str("b"), str("c")), str(", "))
		assert.Equal(t, "a, b, c", rawString(t, v))
	})

	t.Run("tokenize", func(t *testing.T) {
		v := callFn(t, r, "tokenize", 2, str("a, b,  c"), str(",\\s*"))
		out, ok := v.(xvalue.Sequence)
		require.True(t, ok)
		require.Len(t, out, 3)
		assert.Equal(t, "a", rawString(t, out[0]))
		assert.Equal(t, "b", rawString(t, out[1]))
		assert.Equal(t, "c", rawString(t, out[2]))
	})

	t.Run("matches", func(t *testing.T) {
		v := callFn(t, r, "matches", 2, str("abc123"), str("^[a-z]+[0-9]+$"))
		assert.True(t, rawBool(t, v))
	})

	t.Run("replace", func(t *testing.T) {
		v := callFn(t, r, "replace", 3, str("abc123"), str("[0-9]+"), str("#"))
		assert.Equal(t, "abc#", rawString(t, v))
	})
}
