package ast

import (
	"strings"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xerrors"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// FunctionCall resolves and invokes a function by (namespace, local-name,
// arity) (spec.md §3, "FunctionCall").
type FunctionCall struct {
	Namespace string
	Local     string
	Args      []Node
}

func (n *FunctionCall) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return n.Local + "(" + strings.Join(parts, ", ") + ")"
}

func (n *FunctionCall) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	if ctx.Functions == nil {
		return nil, xerrors.New(xerrors.XPST0017, "no function registry configured")
	}
	fn, ok := ctx.Functions.Resolve(n.Namespace, n.Local, len(n.Args))
	if !ok {
		return nil, xerrors.New(xerrors.XPST0017, "unresolved function %s (arity %d)", n.Local, len(n.Args)).
			WithContext("function", n.Local).WithContext("arity", len(n.Args))
	}
	args := make([]xvalue.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := a.Evaluate(ctx)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return fn.Call(ctx, args)
}

// AsFunctionItem returns a first-class xvalue.Function that, when called,
// invokes this call's resolved function with the supplied args (used by
// Arrow's right-hand side and by higher-order builtins that accept a
// FunctionCall-shaped reference, e.g. `fn:sort(..., my:cmp#2)`-style named
// function references are represented identically to a zero-arg call whose
// Evaluate closes over the context).
func (n *FunctionCall) AsFunctionItem(ctx *evalctx.Dynamic) (xvalue.Function, error) {
	if ctx.Functions == nil {
		return xvalue.Function{}, xerrors.New(xerrors.XPST0017, "no function registry configured")
	}
	fn, ok := ctx.Functions.Resolve(n.Namespace, n.Local, len(n.Args))
	if !ok {
		return xvalue.Function{}, xerrors.New(xerrors.XPST0017, "unresolved function %s (arity %d)", n.Local, len(n.Args))
	}
	return xvalue.Function{
		Name:  n.Local,
		Arity: len(n.Args),
		Call: func(args []xvalue.Value) (xvalue.Value, error) {
			return fn.Call(ctx, args)
		},
	}, nil
}
