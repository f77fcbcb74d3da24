package builtins

import (
	"math"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xstypes"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// registerNumbers wires fn:number and the 1.0 aggregate/rounding functions,
// the 2.0 fn:avg/fn:min/fn:max aggregates, plus 3.0's fn:abs (spec.md §4.4).
func registerNumbers(r *Registry) {
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "number", MinArgs: 0, MaxArgs: 1, Call: fnNumber}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "sum", MinArgs: 1, MaxArgs: 2, Call: fnSum}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "avg", MinArgs: 1, MaxArgs: 1, Call: fnAvg}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "min", MinArgs: 1, MaxArgs: 2, Call: fnMin}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "max", MinArgs: 1, MaxArgs: 2, Call: fnMax}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "floor", MinArgs: 1, MaxArgs: 1, Call: fnFloor}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "ceiling", MinArgs: 1, MaxArgs: 1, Call: fnCeiling}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "round", MinArgs: 1, MaxArgs: 2, Call: fnRound}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "round-half-to-even", MinArgs: 1, MaxArgs: 2, Call: fnRoundHalfToEven}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "abs", MinArgs: 1, MaxArgs: 1, Call: fnAbs}))
}

// fnAvg is fn:sum divided by the item count; the empty sequence yields the
// empty sequence rather than raising or defaulting to zero (spec.md's
// fn:avg, distinct from fn:sum's default-to-zero empty-sequence rule).
func fnAvg(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	items, err := atomizeItems(ctx, args[0])
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return xvalue.Empty, nil
	}
	total := 0.0
	rank := xstypes.RankInteger
	for _, item := range items {
		a, ok := item.(xvalue.Atomic)
		if !ok {
			return nil, typeErr("fn:avg operand must atomize to atomic values")
		}
		f, r := numericValueAndRank(a)
		total += f
		rank = xstypes.PromoteRank(rank, r)
	}
	return xvalue.NewAtomic(ctx.Registry.MustLookup(xstypes.RankTypeName(rank)), total/float64(len(items))), nil
}

// fnMin and fnMax share this comparison loop; the optional second argument
// is a collation URI, accepted but unused since atomized comparison here
// always proceeds by numeric/codepoint value (spec.md's default collation).
func minMaxFold(ctx *evalctx.Dynamic, args []xvalue.Value, wantMax bool) (xvalue.Value, error) {
	items, err := atomizeItems(ctx, args[0])
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return xvalue.Empty, nil
	}
	first, ok := items[0].(xvalue.Atomic)
	if !ok {
		return nil, typeErr("fn:min/fn:max operand must atomize to atomic values")
	}
	if s, ok := first.Raw.(string); ok && first.Type != nil && first.Type.Name == "string" {
		best := items[0]
		for _, item := range items[1:] {
			a, _ := item.(xvalue.Atomic)
			t, ok := a.Raw.(string)
			if !ok {
				return nil, typeErr("fn:min/fn:max cannot compare a string with a non-string value")
			}
			if (wantMax && t > s) || (!wantMax && t < s) {
				s, best = t, item
			}
		}
		return best, nil
	}
	bestF, bestRank := numericValueAndRank(first)
	for _, item := range items[1:] {
		a, ok := item.(xvalue.Atomic)
		if !ok {
			return nil, typeErr("fn:min/fn:max operand must atomize to atomic values")
		}
		f, r := numericValueAndRank(a)
		if (wantMax && f > bestF) || (!wantMax && f < bestF) {
			bestF = f
		}
		bestRank = xstypes.PromoteRank(bestRank, r)
	}
	return xvalue.NewAtomic(ctx.Registry.MustLookup(xstypes.RankTypeName(bestRank)), bestF), nil
}

func fnMin(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	return minMaxFold(ctx, args, false)
}

func fnMax(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	return minMaxFold(ctx, args, true)
}

func fnNumber(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	var f float64
	var err error
	if len(args) == 1 {
		f, err = argNumber(ctx, args, 0)
	} else {
		s, serr := stringValue(ctx, ctx.ContextItem)
		if serr != nil {
			return nil, serr
		}
		f, err = argNumber(ctx, []xvalue.Value{newString(ctx, s)}, 0)
	}
	if err != nil {
		return nil, err
	}
	return newDouble(ctx, f), nil
}

// fnSum adds the atomized items of args[0], promoting through the same
// ladder arithmetic uses, with an optional zero-sequence default
// (args[1], spec.md's 2.0 two-argument fn:sum).
func fnSum(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	items, err := atomizeItems(ctx, args[0])
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		if len(args) == 2 {
			return args[1], nil
		}
		return newInteger(ctx, 0), nil
	}
	total := 0.0
	rank := xstypes.RankInteger
	for _, item := range items {
		a, ok := item.(xvalue.Atomic)
		if !ok {
			return nil, typeErr("fn:sum operand must atomize to atomic values")
		}
		f, r := numericValueAndRank(a)
		total += f
		rank = xstypes.PromoteRank(rank, r)
	}
	return xvalue.NewAtomic(ctx.Registry.MustLookup(xstypes.RankTypeName(rank)), total), nil
}

func numericValueAndRank(a xvalue.Atomic) (float64, int) {
	f, _ := a.Raw.(float64)
	if a.Type != nil && xstypes.IsNumericType(a.Type.Name) {
		return f, xstypes.NumericRank(a.Type.Name)
	}
	return f, xstypes.RankDouble
}

func fnFloor(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	f, err := argNumber(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	return newDouble(ctx, math.Floor(f)), nil
}

func fnCeiling(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	f, err := argNumber(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	return newDouble(ctx, math.Ceil(f)), nil
}

// fnRound implements fn:round's "nearest integer, ties round toward
// positive infinity" rule, with an optional precision digit count (2.0+
// two-argument form).
func fnRound(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	f, err := argNumber(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	precision := 0
	if len(args) == 2 {
		precision, err = argInt(ctx, args, 1)
		if err != nil {
			return nil, err
		}
	}
	scale := math.Pow(10, float64(precision))
	return newDouble(ctx, math.Floor(f*scale+0.5)/scale), nil
}

// fnRoundHalfToEven implements fn:round-half-to-even: banker's rounding at
// the given precision (default 0), 2.0+.
func fnRoundHalfToEven(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	f, err := argNumber(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	precision := 0
	if len(args) == 2 {
		precision, err = argInt(ctx, args, 1)
		if err != nil {
			return nil, err
		}
	}
	scale := math.Pow(10, float64(precision))
	scaled := f * scale
	floor := math.Floor(scaled)
	diff := scaled - floor
	var rounded float64
	switch {
	case diff < 0.5:
		rounded = floor
	case diff > 0.5:
		rounded = floor + 1
	default:
		if math.Mod(floor, 2) == 0 {
			rounded = floor
		} else {
			rounded = floor + 1
		}
	}
	return newDouble(ctx, rounded/scale), nil
}

func fnAbs(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	items, err := atomizeItems(ctx, args[0])
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return xvalue.Empty, nil
	}
	a, ok := items[0].(xvalue.Atomic)
	if !ok {
		return nil, typeErr("fn:abs operand must atomize to an atomic value")
	}
	f, rank := numericValueAndRank(a)
	return xvalue.NewAtomic(ctx.Registry.MustLookup(xstypes.RankTypeName(rank)), math.Abs(f)), nil
}
