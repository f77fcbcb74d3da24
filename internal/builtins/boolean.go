package builtins

import (
	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// registerBoolean wires fn:boolean/fn:not/fn:true/fn:false (spec.md §4.4).
func registerBoolean(r *Registry) {
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "boolean", MinArgs: 1, MaxArgs: 1, Call: fnBoolean}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "not", MinArgs: 1, MaxArgs: 1, Call: fnNot}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "true", MinArgs: 0, MaxArgs: 0, Call: fnTrue}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "false", MinArgs: 0, MaxArgs: 0, Call: fnFalse}))
}

func fnBoolean(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	b, err := argBoolean(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	return newBoolean(ctx, b), nil
}

func fnNot(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	b, err := argBoolean(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	return newBoolean(ctx, !b), nil
}

func fnTrue(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	return newBoolean(ctx, true), nil
}

func fnFalse(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	return newBoolean(ctx, false), nil
}
