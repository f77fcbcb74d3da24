package builtins

import (
	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xerrors"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// registerDocs wires fn:doc/fn:doc-available/fn:collection (spec.md §4.4
// and §4.1's "fn:doc / fn:collection" note: pure lookups against the
// dynamic context's document/collection maps, no I/O performed here).
func registerDocs(r *Registry) {
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "doc", MinArgs: 1, MaxArgs: 1, Call: fnDoc}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "doc-available", MinArgs: 1, MaxArgs: 1, Call: fnDocAvailable}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "collection", MinArgs: 0, MaxArgs: 1, Call: fnCollection}))
}

func fnDoc(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	uri, err := argString(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	if uri == "" {
		return nil, xerrors.New(xerrors.FODC0005, "fn:doc called with an empty URI")
	}
	node, ok := ctx.AvailableDocuments[uri]
	if !ok {
		return xvalue.Empty, nil
	}
	return xvalue.NodeValue{Node: node}, nil
}

func fnDocAvailable(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	uri, err := argString(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	if uri == "" {
		return newBoolean(ctx, false), nil
	}
	_, ok := ctx.AvailableDocuments[uri]
	return newBoolean(ctx, ok), nil
}

func fnCollection(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	uri := ctx.DefaultCollection
	if len(args) == 1 {
		var err error
		uri, err = argString(ctx, args, 0)
		if err != nil {
			return nil, err
		}
	}
	nodes, ok := ctx.AvailableCollections[uri]
	if !ok {
		return xvalue.Empty, nil
	}
	out := make(xvalue.Sequence, len(nodes))
	for i, n := range nodes {
		out[i] = xvalue.NodeValue{Node: n}
	}
	return out, nil
}
