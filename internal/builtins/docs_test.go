package builtins_test

import (
	"testing"

	"github.com/oxhq/xpathlang/internal/builtins"
	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xerrors"
	"github.com/oxhq/xpathlang/internal/xhost"
	"github.com/oxhq/xpathlang/internal/xhost/xhosttest"
	"github.com/oxhq/xpathlang/internal/xvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocFunctions(t *testing.T) {
	r := builtins.NewDefaultRegistry()
	doc := xhosttest.NewElement("root", "")

	ctxWithDoc := func() *evalctx.Dynamic {
		ctx := testContext()
		ctx.AvailableDocuments = map[string]xhost.Node{"file:///a.xml": doc}
		ctx.AvailableCollections = map[string][]xhost.Node{"urn:coll": {doc}}
		ctx.DefaultCollection = "urn:coll"
		return ctx
	}

	t.Run("doc returns the node for a known URI", func(t *testing.T) {
		fn, ok := r.Resolve(builtins.FnNamespace, "doc", 1)
		require.True(t, ok)
		v, err := fn.Call(ctxWithDoc(), []xvalue.Value{str("file:///a.xml")})
		require.NoError(t, err)
		nv, ok := v.(xvalue.NodeValue)
		require.True(t, ok)
		assert.Equal(t, doc, nv.Node)
	})

	t.Run("doc returns the empty sequence for an unknown URI", func(t *testing.T) {
		fn, ok := r.Resolve(builtins.FnNamespace, "doc", 1)
		require.True(t, ok)
		v, err := fn.Call(ctxWithDoc(), []xvalue.Value{str("file:///missing.xml")})
		require.NoError(t, err)
		assert.True(t, xvalue.IsEmpty(v))
	})

	t.Run("doc rejects an empty URI", func(t *testing.T) {
		fn, ok := r.Resolve(builtins.FnNamespace, "doc", 1)
		require.True(t, ok)
		_, err := fn.Call(ctxWithDoc(), []xvalue.Value{str("")})
		require.Error(t, err)
		var xerr *xerrors.Error
		require.ErrorAs(t, err, &xerr)
		assert.Equal(t, xerrors.FODC0005, xerr.Code)
	})

	t.Run("doc-available never errors", func(t *testing.T) {
		fn, ok := r.Resolve(builtins.FnNamespace, "doc-available", 1)
		require.True(t, ok)
		v, err := fn.Call(ctxWithDoc(), []xvalue.Value{str("file:///a.xml")})
		require.NoError(t, err)
		assert.True(t, rawBool(t, v))

		v, err = fn.Call(ctxWithDoc(), []xvalue.Value{str("file:///missing.xml")})
		require.NoError(t, err)
		assert.False(t, rawBool(t, v))
	})

	t.Run("collection falls back to the default collection", func(t *testing.T) {
		fn, ok := r.Resolve(builtins.FnNamespace, "collection", 0)
		require.True(t, ok)
		v, err := fn.Call(ctxWithDoc(), nil)
		require.NoError(t, err)
		out := asSeq(t, v)
		require.Len(t, out, 1)
	})
}
