package ast_test

import (
	"testing"

	"github.com/oxhq/xpathlang/internal/ast"
	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xstypes"
	"github.com/oxhq/xpathlang/internal/xvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typesTestContext() *evalctx.Dynamic {
	return &evalctx.Dynamic{
		Variables:   make(map[xstypes.QName]xvalue.Value),
		Registry:    xstypes.Default(),
		Annotations: evalctx.NewTypeAnnotations(),
	}
}

// val wraps an already-computed value as an ast.Node, for tests that need
// an operand with a specific typed Atomic rather than a re-parsed literal.
type val struct{ v xvalue.Value }

func (n val) Evaluate(*evalctx.Dynamic) (xvalue.Value, error) { return n.v, nil }
func (n val) String() string                                  { return "(val)" }

func lit(t *xstypes.AtomicType, raw any) ast.Node {
	return val{v: xvalue.NewAtomic(t, raw)}
}

func TestCastAsConvertsSingleton(t *testing.T) {
	ctx := typesTestContext()
	str := ctx.Registry.MustLookup("string")
	node := &ast.CastAs{Operand: lit(str, "42"), TargetType: "integer"}

	v, err := node.Evaluate(ctx)
	require.NoError(t, err)
	a := v.(xvalue.Atomic)
	assert.Equal(t, "integer", a.Type.Name)
	assert.Equal(t, 42.0, a.Raw)
}

func TestCastAsEmptySequenceRequiresOptionalMarker(t *testing.T) {
	ctx := typesTestContext()
	node := &ast.CastAs{Operand: &ast.SequenceExpr{}, TargetType: "integer"}

	_, err := node.Evaluate(ctx)
	require.Error(t, err)
}

func TestCastAsEmptySequenceWithOptionalMarkerYieldsEmpty(t *testing.T) {
	ctx := typesTestContext()
	node := &ast.CastAs{Operand: &ast.SequenceExpr{}, TargetType: "integer", Optional: true}

	v, err := node.Evaluate(ctx)
	require.NoError(t, err)
	assert.True(t, xvalue.IsEmpty(v))
}

func TestCastableAsFalseOnBadLexicalForm(t *testing.T) {
	ctx := typesTestContext()
	str := ctx.Registry.MustLookup("string")
	node := &ast.CastableAs{Operand: lit(str, "not-a-number"), TargetType: "integer"}

	v, err := node.Evaluate(ctx)
	require.NoError(t, err)
	a := v.(xvalue.Atomic)
	assert.Equal(t, false, a.Raw)
}

func TestCastableAsTrueOnGoodLexicalForm(t *testing.T) {
	ctx := typesTestContext()
	str := ctx.Registry.MustLookup("string")
	node := &ast.CastableAs{Operand: lit(str, "42"), TargetType: "integer"}

	v, err := node.Evaluate(ctx)
	require.NoError(t, err)
	a := v.(xvalue.Atomic)
	assert.Equal(t, true, a.Raw)
}

func TestInstanceOfMatchesCardinalityAndType(t *testing.T) {
	ctx := typesTestContext()
	intType := ctx.Registry.MustLookup("integer")
	node := &ast.InstanceOf{
		Operand: lit(intType, 3.0),
		Type:    ast.SequenceType{Item: ast.ItemType{Kind: ast.ItemAtomic, AtomicName: "integer"}, Occurrence: ast.OccOne},
	}

	v, err := node.Evaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, true, v.(xvalue.Atomic).Raw)
}

func TestInstanceOfFailsOnCardinalityMismatch(t *testing.T) {
	ctx := typesTestContext()
	intType := ctx.Registry.MustLookup("integer")
	node := &ast.InstanceOf{
		Operand: &ast.SequenceExpr{Items: []ast.Node{lit(intType, 1.0), lit(intType, 2.0)}},
		Type:    ast.SequenceType{Item: ast.ItemType{Kind: ast.ItemAtomic, AtomicName: "integer"}, Occurrence: ast.OccOne},
	}

	v, err := node.Evaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, false, v.(xvalue.Atomic).Raw)
}

func TestTreatAsPassesThroughOnMatch(t *testing.T) {
	ctx := typesTestContext()
	intType := ctx.Registry.MustLookup("integer")
	node := &ast.TreatAs{
		Operand: lit(intType, 7.0),
		Type:    ast.SequenceType{Item: ast.ItemType{Kind: ast.ItemAtomic, AtomicName: "integer"}, Occurrence: ast.OccOne},
	}

	v, err := node.Evaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v.(xvalue.Atomic).Raw)
}

func TestTreatAsErrorsOnMismatch(t *testing.T) {
	ctx := typesTestContext()
	strType := ctx.Registry.MustLookup("string")
	node := &ast.TreatAs{
		Operand: lit(strType, "hi"),
		Type:    ast.SequenceType{Item: ast.ItemType{Kind: ast.ItemAtomic, AtomicName: "integer"}, Occurrence: ast.OccOne},
	}

	_, err := node.Evaluate(ctx)
	require.Error(t, err)
}

func TestUnionItemTypeFlattensAndDedupes(t *testing.T) {
	a := ast.ItemType{Kind: ast.ItemAtomic, AtomicName: "integer"}
	b := ast.ItemType{Kind: ast.ItemAtomic, AtomicName: "string"}
	nested := ast.NewUnionItemType(a, b)
	flattened := ast.NewUnionItemType(nested, a)

	assert.Len(t, flattened.Members, 2)
}
