package builtins_test

import (
	"time"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xstypes"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

func testContext() *evalctx.Dynamic {
	reg := xstypes.Default()
	return &evalctx.Dynamic{
		Variables:        make(map[xstypes.QName]xvalue.Value),
		Namespaces:       make(map[string]string),
		Registry:         reg,
		Annotations:      evalctx.NewTypeAnnotations(),
		CurrentDateTime:  time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC),
		DefaultCollation: "http://www.w3.org/2005/xpath-functions/collation/codepoint",
	}
}

func str(s string) xvalue.Value {
	return xvalue.NewAtomic(xstypes.Default().MustLookup("string"), s)
}

func num(f float64) xvalue.Value {
	return xvalue.NewAtomic(xstypes.Default().MustLookup("double"), f)
}

func integer(n int) xvalue.Value {
	return xvalue.NewAtomic(xstypes.Default().MustLookup("integer"), float64(n))
}

func boolean(b bool) xvalue.Value {
	return xvalue.NewAtomic(xstypes.Default().MustLookup("boolean"), b)
}

func seq(vs ...xvalue.Value) xvalue.Sequence {
	return xvalue.Sequence(vs)
}
