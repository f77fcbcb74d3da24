package ast

import (
	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// LogicalOp distinguishes and/or.
type LogicalOp int

const (
	OpAnd LogicalOp = iota
	OpOr
)

func (op LogicalOp) String() string {
	if op == OpAnd {
		return "and"
	}
	return "or"
}

// Logical is a short-circuiting and/or expression (spec.md §3, "Logical").
type Logical struct {
	Op          LogicalOp
	Left, Right Node
}

func (n *Logical) String() string {
	return n.Left.String() + " " + n.Op.String() + " " + n.Right.String()
}

func (n *Logical) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	boolType := ctx.Registry.MustLookup("boolean")
	lv, err := n.Left.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	lb, err := EffectiveBoolean(ctx, lv)
	if err != nil {
		return nil, err
	}
	if n.Op == OpAnd && !lb {
		return xvalue.NewAtomic(boolType, false), nil
	}
	if n.Op == OpOr && lb {
		return xvalue.NewAtomic(boolType, true), nil
	}
	rv, err := n.Right.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	rb, err := EffectiveBoolean(ctx, rv)
	if err != nil {
		return nil, err
	}
	return xvalue.NewAtomic(boolType, rb), nil
}

// StringConcat is the 3.0+ `||` operator (spec.md §3, "StringConcat").
type StringConcat struct {
	Left, Right Node
}

func (n *StringConcat) String() string {
	return n.Left.String() + " || " + n.Right.String()
}

func (n *StringConcat) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	lv, err := n.Left.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	rv, err := n.Right.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	ls, err := concatOperandString(ctx, lv)
	if err != nil {
		return nil, err
	}
	rs, err := concatOperandString(ctx, rv)
	if err != nil {
		return nil, err
	}
	return xvalue.NewAtomic(ctx.Registry.MustLookup("string"), ls+rs), nil
}

func concatOperandString(ctx *evalctx.Dynamic, v xvalue.Value) (string, error) {
	seq, err := xvalue.Atomize(ctx.Registry, v)
	if err != nil {
		return "", err
	}
	if len(seq) == 0 {
		return "", nil
	}
	a := seq[0].(xvalue.Atomic)
	s, err := ctx.Registry.MustLookup("string").Cast(a.Raw)
	if err != nil {
		return "", err
	}
	return s.(string), nil
}

// SimpleMap is the 3.0+ `!` operator (spec.md §3, "SimpleMap"): for each
// item of Left bound as the context item, evaluate Right and concatenate
// results preserving order.
type SimpleMap struct {
	Left, Right Node
}

func (n *SimpleMap) String() string {
	return n.Left.String() + " ! " + n.Right.String()
}

func (n *SimpleMap) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	lv, err := n.Left.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	items := xvalue.AsSequence(lv)
	var out xvalue.Sequence
	for i, item := range items {
		itemCtx := ctx.WithContextItem(item, i+1, len(items))
		rv, err := n.Right.Evaluate(itemCtx)
		if err != nil {
			return nil, err
		}
		out = xvalue.Concat(out, rv)
	}
	return out, nil
}

// Arrow is the 3.0+ `=>` operator (spec.md §3, "Arrow"): `e => f(args)` is
// semantically `f(e, args)`.
type Arrow struct {
	Source Node
	Call   *FunctionCall
}

func (n *Arrow) String() string {
	return n.Source.String() + " => " + n.Call.String()
}

func (n *Arrow) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	sv, err := n.Source.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	call := &FunctionCall{
		Namespace: n.Call.Namespace,
		Local:     n.Call.Local,
		Args:      append([]Node{&precomputed{value: sv}}, n.Call.Args...),
	}
	return call.Evaluate(ctx)
}

// precomputed wraps an already-evaluated value as a Node, used internally
// by Arrow to splice the piped-in source value as the first argument.
type precomputed struct {
	value xvalue.Value
}

func (p *precomputed) Evaluate(*evalctx.Dynamic) (xvalue.Value, error) { return p.value, nil }
func (p *precomputed) String() string                                  { return "(...)" }
