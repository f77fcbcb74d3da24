package builtins_test

import (
	"testing"

	"github.com/oxhq/xpathlang/internal/builtins"
	"github.com/oxhq/xpathlang/internal/xerrors"
	"github.com/oxhq/xpathlang/internal/xhost/xhosttest"
	"github.com/oxhq/xpathlang/internal/xvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeSetFunctions(t *testing.T) {
	r := builtins.NewDefaultRegistry()

	t.Run("count", func(t *testing.T) {
		v := callFn(t, r, "count", 1, seq(integer(1), integer(2), integer(3)))
		assert.Equal(t, float64(3), rawNumber(t, v))
	})

	t.Run("position and last require an active focus", func(t *testing.T) {
		fn, ok := r.Resolve(builtins.FnNamespace, "position", 0)
		require.True(t, ok)
		_, err := fn.Call(testContext(), nil)
		require.Error(t, err)
		var xerr *xerrors.Error
		require.ErrorAs(t, err, &xerr)
		assert.Equal(t, xerrors.XPDY0002, xerr.Code)

		lastFn, ok := r.Resolve(builtins.FnNamespace, "last", 0)
		require.True(t, ok)
		_, err = lastFn.Call(testContext(), nil)
		require.Error(t, err)
		require.ErrorAs(t, err, &xerr)
		assert.Equal(t, xerrors.XPDY0002, xerr.Code)
	})

	t.Run("position and last report the focus", func(t *testing.T) {
		ctx := testContext()
		ctx.Position, ctx.Size = 2, 5
		posFn, _ := r.Resolve(builtins.FnNamespace, "position", 0)
		v, err := posFn.Call(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, float64(2), rawNumber(t, v))

		lastFn, _ := r.Resolve(builtins.FnNamespace, "last", 0)
		v, err = lastFn.Call(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, float64(5), rawNumber(t, v))
	})

	t.Run("name, local-name, namespace-uri", func(t *testing.T) {
		node := xhosttest.NewElement("item", "urn:ex")
		nameFn, _ := r.Resolve(builtins.FnNamespace, "name", 1)
		v, err := nameFn.Call(testContext(), []xvalue.Value{xvalue.NodeValue{Node: node}})
		require.NoError(t, err)
		assert.Equal(t, "item", rawString(t, v))

		localFn, _ := r.Resolve(builtins.FnNamespace, "local-name", 1)
		v, err = localFn.Call(testContext(), []xvalue.Value{xvalue.NodeValue{Node: node}})
		require.NoError(t, err)
		assert.Equal(t, "item", rawString(t, v))

		nsFn, _ := r.Resolve(builtins.FnNamespace, "namespace-uri", 1)
		v, err = nsFn.Call(testContext(), []xvalue.Value{xvalue.NodeValue{Node: node}})
		require.NoError(t, err)
		assert.Equal(t, "urn:ex", rawString(t, v))
	})

	t.Run("root walks up to the document node", func(t *testing.T) {
		root := xhosttest.NewElement("root", "")
		child := xhosttest.NewElement("child", "")
		root.AppendChild(child)
		fn, _ := r.Resolve(builtins.FnNamespace, "root", 1)
		v, err := fn.Call(testContext(), []xvalue.Value{xvalue.NodeValue{Node: child}})
		require.NoError(t, err)
		nv := v.(xvalue.NodeValue)
		assert.Equal(t, root, nv.Node)
	})

	t.Run("id finds attributes named id among the document", func(t *testing.T) {
		root := xhosttest.NewElement("root", "")
		target := xhosttest.NewElement("item", "")
		target.SetAttr(xhosttest.NewAttr("id", "", "target-1"))
		root.AppendChild(target)

		ctx := testContext()
		ctx.ContextNode = target

		fn, _ := r.Resolve(builtins.FnNamespace, "id", 1)
		v, err := fn.Call(ctx, []xvalue.Value{str("target-1")})
		require.NoError(t, err)
		out := asSeq(t, v)
		require.Len(t, out, 1)
		assert.Equal(t, target, out[0].(xvalue.NodeValue).Node)
	})

	t.Run("lang matches a case-insensitive language prefix", func(t *testing.T) {
		root := xhosttest.NewElement("root", "")
		root.SetAttr(xhosttest.NewAttr("lang", "http://www.w3.org/XML/1998/namespace", "en-US"))
		ctx := testContext()
		ctx.ContextNode = root

		fn, _ := r.Resolve(builtins.FnNamespace, "lang", 1)
		v, err := fn.Call(ctx, []xvalue.Value{str("en")})
		require.NoError(t, err)
		assert.True(t, rawBool(t, v))

		v, err = fn.Call(ctx, []xvalue.Value{str("fr")})
		require.NoError(t, err)
		assert.False(t, rawBool(t, v))
	})
}
