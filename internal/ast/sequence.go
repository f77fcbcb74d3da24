package ast

import (
	"math"
	"strings"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// SequenceExpr is the comma operator (spec.md §3, "Sequence: `,` with
// flattening"). Named to avoid colliding with xvalue.Sequence.
type SequenceExpr struct {
	Items []Node
}

func (n *SequenceExpr) String() string {
	parts := make([]string, len(n.Items))
	for i, it := range n.Items {
		parts[i] = it.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (n *SequenceExpr) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	vals := make([]xvalue.Value, len(n.Items))
	for i, it := range n.Items {
		v, err := it.Evaluate(ctx)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return xvalue.Concat(vals...), nil
}

// Range is the `m to n` expression (spec.md §3, "Range").
type Range struct {
	From, To Node
}

func (n *Range) String() string {
	return n.From.String() + " to " + n.To.String()
}

func (n *Range) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	fv, err := n.From.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	tv, err := n.To.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	ff, fEmpty, _, err := numericOperand(ctx, fv)
	if err != nil {
		return nil, err
	}
	tf, tEmpty, _, err := numericOperand(ctx, tv)
	if err != nil {
		return nil, err
	}
	if fEmpty || tEmpty {
		return xvalue.Empty, nil
	}
	if ff != math.Trunc(ff) || tf != math.Trunc(tf) {
		return nil, typeErr("range bounds must be integers")
	}
	if ff > tf {
		return xvalue.Empty, nil
	}
	intType := ctx.Registry.MustLookup("integer")
	out := make(xvalue.Sequence, 0, int(tf-ff)+1)
	for i := ff; i <= tf; i++ {
		out = append(out, xvalue.NewAtomic(intType, i))
	}
	return out, nil
}
