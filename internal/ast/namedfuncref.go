package ast

import (
	"strconv"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xerrors"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// NamedFunctionRef is the `name#arity` literal function reference, 3.0+
// (spec.md §3: a function item constructed from a known name without
// invoking it, for passing to higher-order builtins like fn:sort).
type NamedFunctionRef struct {
	Namespace string
	Local     string
	Arity     int
}

func (n *NamedFunctionRef) String() string {
	return n.Local + "#" + strconv.Itoa(n.Arity)
}

func (n *NamedFunctionRef) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	if ctx.Functions == nil {
		return nil, xerrors.New(xerrors.XPST0017, "no function registry configured")
	}
	fn, ok := ctx.Functions.Resolve(n.Namespace, n.Local, n.Arity)
	if !ok {
		return nil, xerrors.New(xerrors.XPST0017, "unresolved function %s#%d", n.Local, n.Arity)
	}
	return xvalue.Function{
		Name:  n.Local,
		Arity: n.Arity,
		Call: func(args []xvalue.Value) (xvalue.Value, error) {
			return fn.Call(ctx, args)
		},
	}, nil
}
