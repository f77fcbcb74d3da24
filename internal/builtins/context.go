package builtins

import (
	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xstypes"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// registerContext wires the 2.0 context-access functions (spec.md §4.4):
// current-dateTime, current-date, current-time, implicit-timezone. All four
// read ctx.CurrentDateTime, fixed once per evaluation per spec.md §4.6's
// "stable within one evaluation" requirement (no two calls in the same
// query can observe different clock readings).
func registerContext(r *Registry) {
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "current-dateTime", MinArgs: 0, MaxArgs: 0, Call: fnCurrentDateTime}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "current-date", MinArgs: 0, MaxArgs: 0, Call: fnCurrentDate}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "current-time", MinArgs: 0, MaxArgs: 0, Call: fnCurrentTime}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "implicit-timezone", MinArgs: 0, MaxArgs: 0, Call: fnImplicitTimezone}))
}

func nowAsDateTime(ctx *evalctx.Dynamic) xstypes.DateTime {
	t := ctx.CurrentDateTime
	_, offsetSeconds := t.Zone()
	return xstypes.DateTime{
		Year: t.Year(), Month: int(t.Month()), Day: t.Day(),
		Hour: t.Hour(), Minute: t.Minute(), Second: float64(t.Second()),
		HasTimezone: true, TZOffsetMinutes: offsetSeconds / 60,
	}
}

func fnCurrentDateTime(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	return xvalue.NewAtomic(ctx.Registry.MustLookup("dateTime"), nowAsDateTime(ctx)), nil
}

func fnCurrentDate(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	d := nowAsDateTime(ctx)
	d.Hour, d.Minute, d.Second = 0, 0, 0
	return xvalue.NewAtomic(ctx.Registry.MustLookup("date"), d), nil
}

func fnCurrentTime(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	d := nowAsDateTime(ctx)
	d.Year, d.Month, d.Day = 0, 0, 0
	return xvalue.NewAtomic(ctx.Registry.MustLookup("time"), d), nil
}

func fnImplicitTimezone(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	_, offsetSeconds := ctx.CurrentDateTime.Zone()
	return xvalue.NewAtomic(ctx.Registry.MustLookup("duration"), xstypes.Duration{
		Negative: offsetSeconds < 0,
		Minutes:  abs(offsetSeconds / 60),
	}), nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
