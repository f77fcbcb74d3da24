package ast_test

import (
	"testing"

	"github.com/oxhq/xpathlang/internal/ast"
	"github.com/oxhq/xpathlang/internal/xstypes"
	"github.com/oxhq/xpathlang/internal/xvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringTemplateInterpolatesSingleValue(t *testing.T) {
	reg := xstypes.Default()
	ctx := typesTestContext()
	node := &ast.StringTemplate{
		Segments: []string{"count: ", ""},
		Exprs:    []ast.Node{lit(reg.MustLookup("integer"), 3.0)},
	}

	v, err := node.Evaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "count: 3", v.(xvalue.Atomic).Raw)
}

func TestStringTemplateEmptySequenceHoleIsEmptyString(t *testing.T) {
	ctx := typesTestContext()
	node := &ast.StringTemplate{
		Segments: []string{"[", "]"},
		Exprs:    []ast.Node{&ast.SequenceExpr{}},
	}

	v, err := node.Evaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "[]", v.(xvalue.Atomic).Raw)
}

func TestStringTemplateJoinsMultiItemHoleWithSpace(t *testing.T) {
	reg := xstypes.Default()
	ctx := typesTestContext()
	node := &ast.StringTemplate{
		Segments: []string{"", ""},
		Exprs: []ast.Node{&ast.SequenceExpr{Items: []ast.Node{
			lit(reg.MustLookup("integer"), 1.0),
			lit(reg.MustLookup("integer"), 2.0),
		}}},
	}

	v, err := node.Evaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1 2", v.(xvalue.Atomic).Raw)
}

func TestStringTemplateNoHolesReturnsLiteralText(t *testing.T) {
	ctx := typesTestContext()
	node := &ast.StringTemplate{Segments: []string{"plain text"}}

	v, err := node.Evaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "plain text", v.(xvalue.Atomic).Raw)
}
