package builtins

import (
	"github.com/oxhq/xpathlang/internal/ast"
	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// registerHigherOrder wires the 3.0+ higher-order sequence functions
// (spec.md §4.4's "higher-order" list): fn:for-each ("map" in the spec's
// own naming, fn:filter, fn:fold-left, fn:fold-right, fn:for-each-pair.
// Each function argument arrives already evaluated to an xvalue.Function
// (an InlineFunction, NamedFunctionRef, or DynamicCall result), never an
// ast.Node, so this package needs no dependency on internal/parser and
// only a one-directional dependency on internal/ast for EffectiveBoolean.
func registerHigherOrder(r *Registry) {
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "map", MinArgs: 2, MaxArgs: 2, Call: fnForEach}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "for-each", MinArgs: 2, MaxArgs: 2, Call: fnForEach}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "filter", MinArgs: 2, MaxArgs: 2, Call: fnFilter}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "fold-left", MinArgs: 3, MaxArgs: 3, Call: fnFoldLeft}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "fold-right", MinArgs: 3, MaxArgs: 3, Call: fnFoldRight}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "for-each-pair", MinArgs: 3, MaxArgs: 3, Call: fnForEachPair}))
}

func fnForEach(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	seq := xvalue.AsSequence(args[0])
	fn, err := requireFunction(args[1])
	if err != nil {
		return nil, err
	}
	out := make(xvalue.Sequence, 0, len(seq))
	for _, item := range seq {
		v, err := fn.Call([]xvalue.Value{item})
		if err != nil {
			return nil, err
		}
		out = append(out, xvalue.AsSequence(v)...)
	}
	return out, nil
}

func fnFilter(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	seq := xvalue.AsSequence(args[0])
	fn, err := requireFunction(args[1])
	if err != nil {
		return nil, err
	}
	var out xvalue.Sequence
	for _, item := range seq {
		v, err := fn.Call([]xvalue.Value{item})
		if err != nil {
			return nil, err
		}
		keep, err := ast.EffectiveBoolean(ctx, v)
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, item)
		}
	}
	return out, nil
}

func fnFoldLeft(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	seq := xvalue.AsSequence(args[0])
	acc := args[1]
	fn, err := requireFunction(args[2])
	if err != nil {
		return nil, err
	}
	for _, item := range seq {
		acc, err = fn.Call([]xvalue.Value{acc, item})
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func fnFoldRight(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	seq := xvalue.AsSequence(args[0])
	acc := args[1]
	fn, err := requireFunction(args[2])
	if err != nil {
		return nil, err
	}
	for i := len(seq) - 1; i >= 0; i-- {
		var err error
		acc, err = fn.Call([]xvalue.Value{seq[i], acc})
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func fnForEachPair(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	a := xvalue.AsSequence(args[0])
	b := xvalue.AsSequence(args[1])
	fn, err := requireFunction(args[2])
	if err != nil {
		return nil, err
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make(xvalue.Sequence, 0, n)
	for i := 0; i < n; i++ {
		v, err := fn.Call([]xvalue.Value{a[i], b[i]})
		if err != nil {
			return nil, err
		}
		out = append(out, xvalue.AsSequence(v)...)
	}
	return out, nil
}
