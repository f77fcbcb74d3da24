package builtins

import (
	"math"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// registerMath wires the math: namespace function family (spec.md §4.4's
// "XPath 3.0 math (math:pi, math:sqrt, math:sin, …)", supplemented per
// SPEC_FULL.md with the remaining trigonometric/exponential functions).
func registerMath(r *Registry) {
	must(r.Register(evalctx.Function{Namespace: MathNamespace, Local: "pi", MinArgs: 0, MaxArgs: 0, Call: mathConst(math.Pi)}))
	must(r.Register(evalctx.Function{Namespace: MathNamespace, Local: "sqrt", MinArgs: 1, MaxArgs: 1, Call: mathUnary(math.Sqrt)}))
	must(r.Register(evalctx.Function{Namespace: MathNamespace, Local: "sin", MinArgs: 1, MaxArgs: 1, Call: mathUnary(math.Sin)}))
	must(r.Register(evalctx.Function{Namespace: MathNamespace, Local: "cos", MinArgs: 1, MaxArgs: 1, Call: mathUnary(math.Cos)}))
	must(r.Register(evalctx.Function{Namespace: MathNamespace, Local: "tan", MinArgs: 1, MaxArgs: 1, Call: mathUnary(math.Tan)}))
	must(r.Register(evalctx.Function{Namespace: MathNamespace, Local: "asin", MinArgs: 1, MaxArgs: 1, Call: mathUnary(math.Asin)}))
	must(r.Register(evalctx.Function{Namespace: MathNamespace, Local: "acos", MinArgs: 1, MaxArgs: 1, Call: mathUnary(math.Acos)}))
	must(r.Register(evalctx.Function{Namespace: MathNamespace, Local: "atan", MinArgs: 1, MaxArgs: 1, Call: mathUnary(math.Atan)}))
	must(r.Register(evalctx.Function{Namespace: MathNamespace, Local: "exp", MinArgs: 1, MaxArgs: 1, Call: mathUnary(math.Exp)}))
	must(r.Register(evalctx.Function{Namespace: MathNamespace, Local: "exp10", MinArgs: 1, MaxArgs: 1, Call: mathUnary(func(f float64) float64 { return math.Pow(10, f) })}))
	must(r.Register(evalctx.Function{Namespace: MathNamespace, Local: "log", MinArgs: 1, MaxArgs: 1, Call: mathUnary(math.Log)}))
	must(r.Register(evalctx.Function{Namespace: MathNamespace, Local: "log10", MinArgs: 1, MaxArgs: 1, Call: mathUnary(math.Log10)}))
	must(r.Register(evalctx.Function{Namespace: MathNamespace, Local: "pow", MinArgs: 2, MaxArgs: 2, Call: mathPow}))
	must(r.Register(evalctx.Function{Namespace: MathNamespace, Local: "atan2", MinArgs: 2, MaxArgs: 2, Call: mathAtan2}))
}

func mathConst(f float64) func(*evalctx.Dynamic, []xvalue.Value) (xvalue.Value, error) {
	return func(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
		return newDouble(ctx, f), nil
	}
}

// mathUnary lifts a float64->float64 Go math function into a math:
// built-in whose argument coerces via the same operand rules arithmetic
// uses, returning the empty sequence for an empty-sequence argument.
func mathUnary(f func(float64) float64) func(*evalctx.Dynamic, []xvalue.Value) (xvalue.Value, error) {
	return func(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
		if xvalue.IsEmpty(args[0]) {
			return xvalue.Empty, nil
		}
		x, err := argNumber(ctx, args, 0)
		if err != nil {
			return nil, err
		}
		return newDouble(ctx, f(x)), nil
	}
}

func mathPow(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	if xvalue.IsEmpty(args[0]) {
		return xvalue.Empty, nil
	}
	base, err := argNumber(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	exp, err := argNumber(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	return newDouble(ctx, math.Pow(base, exp)), nil
}

func mathAtan2(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	y, err := argNumber(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	x, err := argNumber(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	return newDouble(ctx, math.Atan2(y, x)), nil
}
