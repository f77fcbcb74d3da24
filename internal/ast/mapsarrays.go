package ast

import (
	"strings"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// MapEntryExpr is one key/value pair of a map constructor.
type MapEntryExpr struct {
	Key   Node
	Value Node
}

// MapConstructor builds an xvalue.Map, `map{ k1: v1, k2: v2, ... }`
// (spec.md §3/§4.5, "Map constructor"). Duplicate keys keep the last
// write, matching xvalue.Map.Put's semantics.
type MapConstructor struct {
	Entries []MapEntryExpr
}

func (n *MapConstructor) String() string {
	parts := make([]string, len(n.Entries))
	for i, e := range n.Entries {
		parts[i] = e.Key.String() + ": " + e.Value.String()
	}
	return "map{" + strings.Join(parts, ", ") + "}"
}

func (n *MapConstructor) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	out := xvalue.NewMap()
	for _, entry := range n.Entries {
		kv, err := entry.Key.Evaluate(ctx)
		if err != nil {
			return nil, err
		}
		keySeq, err := xvalue.Atomize(ctx.Registry, kv)
		if err != nil {
			return nil, err
		}
		if len(keySeq) != 1 {
			return nil, typeErr("map key must atomize to a single item")
		}
		keyAtomic := keySeq[0].(xvalue.Atomic)

		vv, err := entry.Value.Evaluate(ctx)
		if err != nil {
			return nil, err
		}
		out.Put(xvalue.AtomicKey(ctx.Registry, keyAtomic), keyAtomic, vv)
	}
	return out, nil
}

// ArrayConstructor builds an xvalue.Array. Square form `[e1, e2, ...]`
// treats each member expression as a single array entry; curly form
// `array{ expr }` flattens expr's resulting sequence into one entry per
// item (spec.md §3/§4.5, "Array constructor").
type ArrayConstructor struct {
	Members []Node
	Curly   bool
}

func (n *ArrayConstructor) String() string {
	parts := make([]string, len(n.Members))
	for i, m := range n.Members {
		parts[i] = m.String()
	}
	if n.Curly {
		return "array{" + strings.Join(parts, ", ") + "}"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (n *ArrayConstructor) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	if n.Curly {
		var items []xvalue.Value
		for _, m := range n.Members {
			v, err := m.Evaluate(ctx)
			if err != nil {
				return nil, err
			}
			items = append(items, xvalue.AsSequence(v)...)
		}
		return xvalue.NewArray(items), nil
	}
	items := make([]xvalue.Value, len(n.Members))
	for i, m := range n.Members {
		v, err := m.Evaluate(ctx)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return xvalue.NewArray(items), nil
}
