package evalctx_test

import (
	"testing"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xhost/xhosttest"
	"github.com/oxhq/xpathlang/internal/xstypes"
	"github.com/oxhq/xpathlang/internal/xvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseContext() *evalctx.Dynamic {
	return &evalctx.Dynamic{
		Variables:  make(map[xstypes.QName]xvalue.Value),
		Registry:   xstypes.Default(),
		Annotations: evalctx.NewTypeAnnotations(),
	}
}

func TestWithContextItemUpdatesPositionAndSize(t *testing.T) {
	d := baseContext()
	elem := xhosttest.NewElement("foo", "")
	derived := d.WithContextItem(xvalue.NodeValue{Node: elem}, 2, 5)

	assert.Equal(t, 2, derived.Position)
	assert.Equal(t, 5, derived.Size)
	assert.Equal(t, elem, derived.ContextNode)
	assert.Nil(t, d.ContextNode, "original context must be untouched")
}

func TestWithVariableShadowsWithoutMutatingParent(t *testing.T) {
	d := baseContext()
	name := xstypes.QName{Local: "x"}
	d.Variables[name] = xvalue.NewAtomic(xstypes.Default().MustLookup("string"), "outer")

	derived := d.WithVariable(name, xvalue.NewAtomic(xstypes.Default().MustLookup("string"), "inner"))

	outer := d.Variables[name].(xvalue.Atomic)
	inner := derived.Variables[name].(xvalue.Atomic)
	assert.Equal(t, "outer", outer.Raw)
	assert.Equal(t, "inner", inner.Raw)
}

func TestTypeAnnotationsRoundTripAndClear(t *testing.T) {
	ann := evalctx.NewTypeAnnotations()
	node := xhosttest.NewElement("foo", "")
	strType := xstypes.Default().MustLookup("string")

	_, ok := ann.TypeOf(node)
	require.False(t, ok)

	ann.Annotate(node, strType)
	got, ok := ann.TypeOf(node)
	require.True(t, ok)
	assert.Equal(t, strType, got)

	ann.ClearAnnotations(node)
	_, ok = ann.TypeOf(node)
	assert.False(t, ok)
}
