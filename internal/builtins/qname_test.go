package builtins_test

import (
	"testing"

	"github.com/oxhq/xpathlang/internal/builtins"
	"github.com/oxhq/xpathlang/internal/xhost/xhosttest"
	"github.com/oxhq/xpathlang/internal/xstypes"
	"github.com/oxhq/xpathlang/internal/xvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQNameFunctions(t *testing.T) {
	r := builtins.NewDefaultRegistry()

	t.Run("QName builds a namespaced name from a lexical string", func(t *testing.T) {
		v := callFn(t, r, "QName", 2, str("http://example.com/ns"), str("ex:thing"))
		a, ok := v.(xvalue.Atomic)
		require.True(t, ok)
		q, ok := a.Raw.(xstypes.QName)
		require.True(t, ok)
		assert.Equal(t, "ex", q.Prefix)
		assert.Equal(t, "thing", q.Local)
		assert.Equal(t, "http://example.com/ns", q.Namespace)
	})

	t.Run("prefix/local/namespace accessors round-trip a QName", func(t *testing.T) {
		qv := callFn(t, r, "QName", 2, str("urn:ex"), str("p:item"))
		assert.Equal(t, "p", rawString(t, callFn(t, r, "prefix-from-QName", 1, qv)))
		assert.Equal(t, "item", rawString(t, callFn(t, r, "local-name-from-QName", 1, qv)))
		assert.Equal(t, "urn:ex", rawString(t, callFn(t, r, "namespace-uri-from-QName", 1, qv)))
	})

	t.Run("prefix-from-QName is empty for an unprefixed name", func(t *testing.T) {
		qv := callFn(t, r, "QName", 1, str("item"))
		v := callFn(t, r, "prefix-from-QName", 1, qv)
		assert.True(t, xvalue.IsEmpty(v))
	})

	t.Run("resolve-QName resolves against the dynamic context's namespaces", func(t *testing.T) {
		fn, ok := r.Resolve(builtins.FnNamespace, "resolve-QName", 2)
		require.True(t, ok)
		ctx := testContext()
		ctx.Namespaces["ex"] = "http://example.com/ns"
		node := xhosttest.NewElement("root", "")
		v, err := fn.Call(ctx, []xvalue.Value{str("ex:thing"), xvalue.NodeValue{Node: node}})
		require.NoError(t, err)
		a := v.(xvalue.Atomic)
		q := a.Raw.(xstypes.QName)
		assert.Equal(t, "http://example.com/ns", q.Namespace)
	})

	t.Run("namespace-uri-for-prefix looks up a bound prefix", func(t *testing.T) {
		fn, ok := r.Resolve(builtins.FnNamespace, "namespace-uri-for-prefix", 2)
		require.True(t, ok)
		ctx := testContext()
		ctx.Namespaces["ex"] = "http://example.com/ns"
		node := xhosttest.NewElement("root", "")
		v, err := fn.Call(ctx, []xvalue.Value{str("ex"), xvalue.NodeValue{Node: node}})
		require.NoError(t, err)
		assert.Equal(t, "http://example.com/ns", rawString(t, v))
	})

	t.Run("in-scope-prefixes lists bound prefixes in sorted order", func(t *testing.T) {
		fn, ok := r.Resolve(builtins.FnNamespace, "in-scope-prefixes", 1)
		require.True(t, ok)
		ctx := testContext()
		ctx.Namespaces["b"] = "urn:b"
		ctx.Namespaces["a"] = "urn:a"
		node := xhosttest.NewElement("root", "")
		v, err := fn.Call(ctx, []xvalue.Value{xvalue.NodeValue{Node: node}})
		require.NoError(t, err)
		out := asSeq(t, v)
		require.Len(t, out, 2)
		assert.Equal(t, "a", rawString(t, out[0]))
		assert.Equal(t, "b", rawString(t, out[1]))
	})
}
