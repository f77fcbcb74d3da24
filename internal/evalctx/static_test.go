package evalctx_test

import (
	"testing"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSignaturePicksMatchingArity(t *testing.T) {
	s := evalctx.NewStatic()
	s.RegisterFunctionSignature(evalctx.FunctionSignature{
		Namespace: s.DefaultFunctionNamespace, Local: "substring", MinArgs: 2, MaxArgs: 2,
	})
	s.RegisterFunctionSignature(evalctx.FunctionSignature{
		Namespace: s.DefaultFunctionNamespace, Local: "substring", MinArgs: 3, MaxArgs: 3,
	})

	sig, ok := s.ResolveSignature(s.DefaultFunctionNamespace, "substring", 3)
	require.True(t, ok)
	assert.Equal(t, 3, sig.MinArgs)

	_, ok = s.ResolveSignature(s.DefaultFunctionNamespace, "substring", 5)
	assert.False(t, ok)
}

func TestValidateStaticContextFlagsBadArityAndCollation(t *testing.T) {
	s := evalctx.NewStatic()
	s.RegisterFunctionSignature(evalctx.FunctionSignature{Namespace: "x", Local: "bad", MinArgs: 3, MaxArgs: 1})
	s.DefaultCollation = "http://example.com/unknown-collation"

	errs := s.ValidateStaticContext()
	assert.Len(t, errs, 2)
}

func TestApplySchemaToStaticContext(t *testing.T) {
	s := evalctx.NewStatic()
	s.ApplySchemaToStaticContext(evalctx.SchemaImport{
		TargetNamespace: "http://example.com/ns",
		Elements:        map[string]string{"order": "OrderType"},
		Attributes:      map[string]string{"id": "xs:ID"},
	})

	assert.Equal(t, "http://example.com/ns", s.DefaultTypeNamespace)
	assert.Equal(t, "OrderType", s.ElementDeclarations["order"])
	assert.Equal(t, "xs:ID", s.AttributeDeclarations["id"])
}

func TestParseMinimalXSDExtractsDeclarations(t *testing.T) {
	xsd := []byte(`<schema targetNamespace="http://example.com/ns">
  <element name="order" type="OrderType"/>
  <attribute name="id" type="xs:ID"/>
</schema>`)

	imp, err := evalctx.ParseMinimalXSD(xsd)
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/ns", imp.TargetNamespace)
	assert.Equal(t, "OrderType", imp.Elements["order"])
	assert.Equal(t, "xs:ID", imp.Attributes["id"])
}
