package builtins

import (
	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xerrors"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// registerCardinality wires the 2.0 cardinality-checking functions
// (spec.md §4.4): zero-or-one, one-or-more, exactly-one, unordered.
func registerCardinality(r *Registry) {
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "zero-or-one", MinArgs: 1, MaxArgs: 1, Call: fnZeroOrOne}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "one-or-more", MinArgs: 1, MaxArgs: 1, Call: fnOneOrMore}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "exactly-one", MinArgs: 1, MaxArgs: 1, Call: fnExactlyOne}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "unordered", MinArgs: 1, MaxArgs: 1, Call: fnUnordered}))
}

func fnZeroOrOne(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	seq := xvalue.AsSequence(args[0])
	if len(seq) > 1 {
		return nil, xerrors.New(xerrors.FORG0003, "fn:zero-or-one called with a sequence of length %d", len(seq))
	}
	return args[0], nil
}

func fnOneOrMore(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	seq := xvalue.AsSequence(args[0])
	if len(seq) == 0 {
		return nil, xerrors.New(xerrors.FORG0004, "fn:one-or-more called with an empty sequence")
	}
	return args[0], nil
}

func fnExactlyOne(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	seq := xvalue.AsSequence(args[0])
	if len(seq) != 1 {
		return nil, xerrors.New(xerrors.FORG0005, "fn:exactly-one called with a sequence of length %d", len(seq))
	}
	return args[0], nil
}

// fnUnordered returns its argument unchanged: this engine's internal
// sequence order is already deterministic (no parallel/unordered
// evaluation strategy exists to reorder against), so fn:unordered is the
// identity function, which still satisfies its one real invariant (same
// item multiset as the input, spec.md §8's "unordered() permutation
// property").
func fnUnordered(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	return args[0], nil
}
