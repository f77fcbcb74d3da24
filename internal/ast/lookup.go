package ast

import (
	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xerrors"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// Lookup implements the `?` postfix/unary lookup operator on maps and
// arrays (spec.md §3/§4.5, "Lookup ?"). Base is nil for the unary form
// `?key`, which looks up against the context item. KeySpec is nil for the
// wildcard form `?*`.
type Lookup struct {
	Base    Node
	KeySpec Node
}

func (n *Lookup) String() string {
	key := "*"
	if n.KeySpec != nil {
		key = n.KeySpec.String()
	}
	if n.Base == nil {
		return "?" + key
	}
	return n.Base.String() + "?" + key
}

func (n *Lookup) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	var targets xvalue.Sequence
	if n.Base == nil {
		if ctx.ContextItem == nil {
			return nil, xerrors.New(xerrors.XPDY0002, "unary lookup requires a context item")
		}
		targets = xvalue.AsSequence(ctx.ContextItem)
	} else {
		bv, err := n.Base.Evaluate(ctx)
		if err != nil {
			return nil, err
		}
		targets = xvalue.AsSequence(bv)
	}

	var out xvalue.Sequence
	for _, item := range targets {
		vals, err := n.lookupOne(ctx, item)
		if err != nil {
			return nil, err
		}
		out = append(out, vals...)
	}
	return out, nil
}

func (n *Lookup) lookupOne(ctx *evalctx.Dynamic, item xvalue.Value) (xvalue.Sequence, error) {
	switch t := item.(type) {
	case *xvalue.Map:
		if n.KeySpec == nil {
			return xvalue.Sequence(t.Values()), nil
		}
		key, err := n.atomicKey(ctx, t)
		if err != nil {
			return nil, err
		}
		if v, ok := t.Get(key); ok {
			return xvalue.AsSequence(v), nil
		}
		return nil, nil
	case *xvalue.Array:
		if n.KeySpec == nil {
			return t.Flatten(), nil
		}
		kv, err := n.KeySpec.Evaluate(ctx)
		if err != nil {
			return nil, err
		}
		seq, err := xvalue.Atomize(ctx.Registry, kv)
		if err != nil {
			return nil, err
		}
		if len(seq) != 1 {
			return nil, typeErr("array lookup key must atomize to a single item")
		}
		idxType := ctx.Registry.MustLookup("integer")
		raw, err := idxType.Cast(seq[0].(xvalue.Atomic).Raw)
		if err != nil {
			return nil, xerrors.New(xerrors.FOAY0001, "array lookup key is not an integer")
		}
		idx := int(raw.(float64))
		v, ok := t.Get(idx)
		if !ok {
			return nil, xerrors.New(xerrors.FOAY0001, "array index %d out of bounds (length %d)", idx, t.Len())
		}
		return xvalue.AsSequence(v), nil
	default:
		return nil, xerrors.New(xerrors.XPTY0004, "? lookup requires a map or array operand")
	}
}

// atomicKey evaluates n.KeySpec and normalizes it for map lookup identity,
// matching the normalization MapConstructor applies on insertion.
func (n *Lookup) atomicKey(ctx *evalctx.Dynamic, m *xvalue.Map) (string, error) {
	kv, err := n.KeySpec.Evaluate(ctx)
	if err != nil {
		return "", err
	}
	seq, err := xvalue.Atomize(ctx.Registry, kv)
	if err != nil {
		return "", err
	}
	if len(seq) != 1 {
		return "", typeErr("map lookup key must atomize to a single item")
	}
	return xvalue.AtomicKey(ctx.Registry, seq[0].(xvalue.Atomic)), nil
}
