package ast

import (
	"strings"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// StringTemplate evaluates a backtick-delimited string template, 3.0+
// (spec.md §3, "StringTemplate"). Segments holds the literal text between
// expression holes, with len(Segments) == len(Exprs)+1. Each expression's
// result sequence is atomized, each item cast to its string value, and the
// items joined with a single space; an empty sequence contributes the
// empty string.
type StringTemplate struct {
	Segments []string
	Exprs    []Node
}

func (n *StringTemplate) String() string {
	var b strings.Builder
	b.WriteString("`")
	for i, seg := range n.Segments {
		b.WriteString(seg)
		if i < len(n.Exprs) {
			b.WriteString("{")
			b.WriteString(n.Exprs[i].String())
			b.WriteString("}")
		}
	}
	b.WriteString("`")
	return b.String()
}

func (n *StringTemplate) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	var out strings.Builder
	for i, seg := range n.Segments {
		out.WriteString(seg)
		if i < len(n.Exprs) {
			v, err := n.Exprs[i].Evaluate(ctx)
			if err != nil {
				return nil, err
			}
			s, err := n.holeString(ctx, v)
			if err != nil {
				return nil, err
			}
			out.WriteString(s)
		}
	}
	return xvalue.NewAtomic(ctx.Registry.MustLookup("string"), out.String()), nil
}

func (n *StringTemplate) holeString(ctx *evalctx.Dynamic, v xvalue.Value) (string, error) {
	seq, err := xvalue.Atomize(ctx.Registry, v)
	if err != nil {
		return "", err
	}
	if len(seq) == 0 {
		return "", nil
	}
	parts := make([]string, len(seq))
	strType := ctx.Registry.MustLookup("string")
	for i, item := range seq {
		a := item.(xvalue.Atomic)
		s, err := strType.Cast(a.Raw)
		if err != nil {
			return "", err
		}
		parts[i] = s.(string)
	}
	return strings.Join(parts, " "), nil
}
