package xpath_test

import (
	"testing"

	xpath "github.com/oxhq/xpathlang"
	"github.com/oxhq/xpathlang/internal/xhost/xhosttest"
	"github.com/oxhq/xpathlang/internal/xstypes"
	"github.com/oxhq/xpathlang/internal/xvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBook() *xhosttest.Elem {
	root := xhosttest.NewElement("catalog", "")
	book := xhosttest.NewElement("book", "")
	book.SetAttr(xhosttest.NewAttr("id", "", "bk101"))
	book.AppendChild(xhosttest.NewText("Go in Practice"))
	root.AppendChild(book)
	return root
}

func TestEvaluateArithmeticNeedsNoContext(t *testing.T) {
	v, err := xpath.Evaluate("1 + 2", nil, xpath.Options{Version: xpath.V2_0})
	require.NoError(t, err)
	seq := xvalue.AsSequence(v)
	require.Len(t, seq, 1)
	a, ok := seq[0].(xvalue.Atomic)
	require.True(t, ok)
	assert.Equal(t, float64(3), a.Raw)
}

func TestEvaluateRelativePathAgainstContext(t *testing.T) {
	root := sampleBook()
	v, err := xpath.Evaluate("child::book", root, xpath.Options{Version: xpath.V3_1})
	require.NoError(t, err)
	seq := xvalue.AsSequence(v)
	require.Len(t, seq, 1)
	nv, ok := seq[0].(xvalue.NodeValue)
	require.True(t, ok)
	assert.Equal(t, "book", nv.Node.LocalName())
}

func TestEvaluateRelativePathWithoutContextFailsDynamically(t *testing.T) {
	_, err := xpath.Evaluate("child::book", nil, xpath.Options{Version: xpath.V3_1})
	require.Error(t, err)
}

func TestEvaluateUsesSuppliedVariables(t *testing.T) {
	name := xstypes.QName{Local: "n"}
	reg := xstypes.Default()
	v, err := xpath.Evaluate("$n", nil, xpath.Options{
		Version:   xpath.V2_0,
		Variables: map[xstypes.QName]xvalue.Value{name: xvalue.NewAtomic(reg.MustLookup("integer"), float64(7))},
	})
	require.NoError(t, err)
	seq := xvalue.AsSequence(v)
	require.Len(t, seq, 1)
	a, ok := seq[0].(xvalue.Atomic)
	require.True(t, ok)
	assert.Equal(t, float64(7), a.Raw)
}

func TestParseReturnsASTWithoutEvaluating(t *testing.T) {
	node, err := xpath.Parse("1 + 2", xpath.Options{Version: xpath.V1_0})
	require.NoError(t, err)
	assert.Equal(t, "1 + 2", node.String())
}

func TestParseRejectsVersionGatedSyntax(t *testing.T) {
	_, err := xpath.Parse("let $x := 1 return $x", xpath.Options{Version: xpath.V1_0})
	require.Error(t, err)
}
