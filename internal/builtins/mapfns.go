package builtins

import (
	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// registerMap wires the map: namespace function family (SPEC_FULL.md's
// supplemented "map:merge, map:keys, map:get, map:put, map:remove,
// map:size" list, plus map:contains/map:for-each which round out the same
// family per the W3C array/map function module).
func registerMap(r *Registry) {
	must(r.Register(evalctx.Function{Namespace: MapNamespace, Local: "merge", MinArgs: 1, MaxArgs: 2, Call: mapMerge}))
	must(r.Register(evalctx.Function{Namespace: MapNamespace, Local: "keys", MinArgs: 1, MaxArgs: 1, Call: mapKeys}))
	must(r.Register(evalctx.Function{Namespace: MapNamespace, Local: "get", MinArgs: 2, MaxArgs: 2, Call: mapGet}))
	must(r.Register(evalctx.Function{Namespace: MapNamespace, Local: "put", MinArgs: 3, MaxArgs: 3, Call: mapPut}))
	must(r.Register(evalctx.Function{Namespace: MapNamespace, Local: "remove", MinArgs: 2, MaxArgs: 2, Call: mapRemove}))
	must(r.Register(evalctx.Function{Namespace: MapNamespace, Local: "size", MinArgs: 1, MaxArgs: 1, Call: mapSize}))
	must(r.Register(evalctx.Function{Namespace: MapNamespace, Local: "contains", MinArgs: 2, MaxArgs: 2, Call: mapContains}))
	must(r.Register(evalctx.Function{Namespace: MapNamespace, Local: "for-each", MinArgs: 2, MaxArgs: 2, Call: mapForEach}))
}

func requireMap(v xvalue.Value) (*xvalue.Map, error) {
	item := xvalue.Unwrap(v)
	m, ok := item.(*xvalue.Map)
	if !ok {
		return nil, typeErr("argument must be a map, got %T", item)
	}
	return m, nil
}

func mapKeyOf(ctx *evalctx.Dynamic, v xvalue.Value) (string, xvalue.Value, error) {
	items, err := atomizeItems(ctx, v)
	if err != nil {
		return "", nil, err
	}
	if len(items) != 1 {
		return "", nil, typeErr("map key must atomize to a single atomic value")
	}
	a, ok := items[0].(xvalue.Atomic)
	if !ok {
		return "", nil, typeErr("map key must be atomic")
	}
	return xvalue.AtomicKey(ctx.Registry, a), items[0], nil
}

// mapMerge combines the given maps; the optional second argument is an
// options map whose "duplicates" entry selects the collision strategy
// ("reject", "use-first", "use-last"/"combine" default, "use-any" treated
// as use-last).
func mapMerge(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	strategy := "use-last"
	if len(args) == 2 {
		opts, err := requireMap(args[1])
		if err != nil {
			return nil, err
		}
		optKey, _, err := mapKeyOf(ctx, newString(ctx, "duplicates"))
		if err != nil {
			return nil, err
		}
		if v, ok := opts.Get(optKey); ok {
			s, err := argString(ctx, []xvalue.Value{v}, 0)
			if err != nil {
				return nil, err
			}
			strategy = s
		}
	}

	out := xvalue.NewMap()
	for _, item := range xvalue.AsSequence(args[0]) {
		m, err := requireMap(item)
		if err != nil {
			return nil, err
		}
		for _, k := range m.Keys() {
			key, _, err := mapKeyOf(ctx, k)
			if err != nil {
				return nil, err
			}
			v, _ := m.Get(key)
			if _, exists := out.Get(key); exists {
				switch strategy {
				case "reject":
					return nil, typeErr("map:merge: duplicate key with duplicates=\"reject\"")
				case "use-first":
					continue
				}
			}
			out.Put(key, k, v)
		}
	}
	return out, nil
}

func mapKeys(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	m, err := requireMap(args[0])
	if err != nil {
		return nil, err
	}
	keys := m.Keys()
	out := make(xvalue.Sequence, len(keys))
	copy(out, keys)
	return out, nil
}

func mapGet(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	m, err := requireMap(args[0])
	if err != nil {
		return nil, err
	}
	key, _, err := mapKeyOf(ctx, args[1])
	if err != nil {
		return nil, err
	}
	v, ok := m.Get(key)
	if !ok {
		return xvalue.Empty, nil
	}
	return v, nil
}

func mapPut(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	m, err := requireMap(args[0])
	if err != nil {
		return nil, err
	}
	key, keyVal, err := mapKeyOf(ctx, args[1])
	if err != nil {
		return nil, err
	}
	out := xvalue.NewMap()
	for _, k := range m.Keys() {
		kk, orig, _ := mapKeyOf(ctx, k)
		if kk == key {
			continue
		}
		v, _ := m.Get(kk)
		out.Put(kk, orig, v)
	}
	out.Put(key, keyVal, args[2])
	return out, nil
}

func mapRemove(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	m, err := requireMap(args[0])
	if err != nil {
		return nil, err
	}
	key, _, err := mapKeyOf(ctx, args[1])
	if err != nil {
		return nil, err
	}
	return m.Remove(key), nil
}

func mapSize(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	m, err := requireMap(args[0])
	if err != nil {
		return nil, err
	}
	return newInteger(ctx, m.Size()), nil
}

func mapContains(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	m, err := requireMap(args[0])
	if err != nil {
		return nil, err
	}
	key, _, err := mapKeyOf(ctx, args[1])
	if err != nil {
		return nil, err
	}
	_, ok := m.Get(key)
	return newBoolean(ctx, ok), nil
}

func mapForEach(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	m, err := requireMap(args[0])
	if err != nil {
		return nil, err
	}
	fn, err := requireFunction(args[1])
	if err != nil {
		return nil, err
	}
	keys := m.Keys()
	var out xvalue.Sequence
	for _, k := range keys {
		kk, _, err := mapKeyOf(ctx, k)
		if err != nil {
			return nil, err
		}
		v, _ := m.Get(kk)
		result, err := fn.Call([]xvalue.Value{k, v})
		if err != nil {
			return nil, err
		}
		out = append(out, xvalue.AsSequence(result)...)
	}
	return out, nil
}
