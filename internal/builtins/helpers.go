package builtins

import (
	"math"
	"strconv"
	"strings"

	"github.com/oxhq/xpathlang/internal/ast"
	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xerrors"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// argString atomizes args[i] and converts its first item (or the context
// item, for the zero-argument forms of string/normalize-space/etc.) to its
// string value, per spec.md §4.1's "operand string coercion".
func argString(ctx *evalctx.Dynamic, args []xvalue.Value, i int) (string, error) {
	var v xvalue.Value
	if i < len(args) {
		v = args[i]
	} else {
		v = ctx.ContextItem
	}
	return stringValue(ctx, v)
}

// stringValue computes the XPath string value of v: the empty sequence
// stringifies to "", a node stringifies via TextContent, and an atomic
// value casts through its type's string representation.
func stringValue(ctx *evalctx.Dynamic, v xvalue.Value) (string, error) {
	atomized, err := xvalue.Atomize(ctx.Registry, v)
	if err != nil {
		return "", err
	}
	if len(atomized) == 0 {
		return "", nil
	}
	a, ok := atomized[0].(xvalue.Atomic)
	if !ok {
		return "", typeErr("argument must atomize to a single atomic value")
	}
	if a.Type == nil {
		if s, ok := a.Raw.(string); ok {
			return s, nil
		}
		return "", typeErr("untyped value has no string representation")
	}
	cast, err := a.Type.Cast(a.Raw)
	if err != nil {
		return "", err
	}
	s, ok := cast.(string)
	if !ok {
		return "", typeErr("value of type %s has no string representation", a.Type.Name)
	}
	return s, nil
}

// argNumber atomizes args[i] and converts it to a float64, per the
// arithmetic-operand coercion rule (non-numeric strings yield NaN).
func argNumber(ctx *evalctx.Dynamic, args []xvalue.Value, i int) (float64, error) {
	atomized, err := xvalue.Atomize(ctx.Registry, args[i])
	if err != nil {
		return 0, err
	}
	if len(atomized) == 0 {
		return math.NaN(), nil
	}
	a, ok := atomized[0].(xvalue.Atomic)
	if !ok {
		return 0, typeErr("argument must atomize to a single atomic value")
	}
	switch raw := a.Raw.(type) {
	case float64:
		return raw, nil
	case bool:
		if raw {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return math.NaN(), nil
		}
		return f, nil
	default:
		return math.NaN(), nil
	}
}

// argBoolean computes the effective boolean value of args[i], delegating to
// ast.EffectiveBoolean (FORG0006 on an undefined EBV).
func argBoolean(ctx *evalctx.Dynamic, args []xvalue.Value, i int) (bool, error) {
	return ast.EffectiveBoolean(ctx, args[i])
}

// argInt rounds argNumber(args, i) to an int, per fn:substring's
// "round to nearest, ties away from zero" position-argument rule — callers
// that need different rounding call argNumber directly.
func argInt(ctx *evalctx.Dynamic, args []xvalue.Value, i int) (int, error) {
	f, err := argNumber(ctx, args, i)
	if err != nil {
		return 0, err
	}
	return int(roundHalfAwayFromZero(f)), nil
}

func roundHalfAwayFromZero(f float64) float64 {
	if math.IsNaN(f) {
		return f
	}
	if f >= 0 {
		return math.Floor(f + 0.5)
	}
	return math.Ceil(f - 0.5)
}

// newString wraps s as an xs:string Atomic.
func newString(ctx *evalctx.Dynamic, s string) xvalue.Value {
	return xvalue.NewAtomic(ctx.Registry.MustLookup("string"), s)
}

// newBoolean wraps b as an xs:boolean Atomic.
func newBoolean(ctx *evalctx.Dynamic, b bool) xvalue.Value {
	return xvalue.NewAtomic(ctx.Registry.MustLookup("boolean"), b)
}

// newDouble wraps f as an xs:double Atomic.
func newDouble(ctx *evalctx.Dynamic, f float64) xvalue.Value {
	return xvalue.NewAtomic(ctx.Registry.MustLookup("double"), f)
}

// newInteger wraps n as an xs:integer Atomic.
func newInteger(ctx *evalctx.Dynamic, n int) xvalue.Value {
	return xvalue.NewAtomic(ctx.Registry.MustLookup("integer"), float64(n))
}

func typeErr(format string, args ...any) error {
	return xerrors.New(xerrors.XPTY0004, format, args...)
}

// atomizeItems is a small helper many sequence functions need: atomize v
// and return its items (never a nested Sequence).
func atomizeItems(ctx *evalctx.Dynamic, v xvalue.Value) ([]xvalue.Value, error) {
	atomized, err := xvalue.Atomize(ctx.Registry, v)
	if err != nil {
		return nil, err
	}
	out := make([]xvalue.Value, len(atomized))
	for i, a := range atomized {
		out[i] = a
	}
	return out, nil
}

// requireFunction type-asserts v (already atomized-free: a function item is
// never atomizable) to xvalue.Function, raising XPTY0004 otherwise.
func requireFunction(v xvalue.Value) (xvalue.Function, error) {
	item := xvalue.Unwrap(v)
	fn, ok := item.(xvalue.Function)
	if !ok {
		return xvalue.Function{}, typeErr("argument must be a function item, got %T", item)
	}
	return fn, nil
}
