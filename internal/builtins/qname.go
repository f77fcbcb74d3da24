package builtins

import (
	"sort"
	"strings"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xstypes"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// registerQName wires the 2.0 QName functions (spec.md §4.4).
func registerQName(r *Registry) {
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "QName", MinArgs: 1, MaxArgs: 2, Call: fnQName}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "resolve-QName", MinArgs: 2, MaxArgs: 2, Call: fnResolveQName}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "prefix-from-QName", MinArgs: 1, MaxArgs: 1, Call: fnPrefixFromQName}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "local-name-from-QName", MinArgs: 1, MaxArgs: 1, Call: fnLocalNameFromQName}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "namespace-uri-from-QName", MinArgs: 1, MaxArgs: 1, Call: fnNamespaceURIFromQName}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "in-scope-prefixes", MinArgs: 1, MaxArgs: 1, Call: fnInScopePrefixes}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "namespace-uri-for-prefix", MinArgs: 2, MaxArgs: 2, Call: fnNamespaceURIForPrefix}))
}

func newQName(ctx *evalctx.Dynamic, q xstypes.QName) xvalue.Value {
	return xvalue.NewAtomic(ctx.Registry.MustLookup("QName"), q)
}

func qnameArg(ctx *evalctx.Dynamic, args []xvalue.Value, i int) (xstypes.QName, error) {
	items, err := atomizeItems(ctx, args[i])
	if err != nil {
		return xstypes.QName{}, err
	}
	if len(items) != 1 {
		return xstypes.QName{}, typeErr("argument must atomize to a single QName")
	}
	a, ok := items[0].(xvalue.Atomic)
	if !ok {
		return xstypes.QName{}, typeErr("argument must be an atomic QName")
	}
	qnameType := ctx.Registry.MustLookup("QName")
	cast, err := qnameType.Cast(a.Raw)
	if err != nil {
		return xstypes.QName{}, err
	}
	q, ok := cast.(xstypes.QName)
	if !ok {
		return xstypes.QName{}, typeErr("value does not cast to xs:QName")
	}
	return q, nil
}

// fnQName constructs a QName from a namespace URI (possibly "") and a
// lexical QName string, per spec.md's `fn:QName(uri, local)`.
func fnQName(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	uri := ""
	var err error
	if len(args) == 2 {
		uri, err = argString(ctx, args, 0)
		if err != nil {
			return nil, err
		}
	}
	lexical, err := argString(ctx, args, len(args)-1)
	if err != nil {
		return nil, err
	}
	prefix, local, _ := strings.Cut(lexical, ":")
	if local == "" {
		local = prefix
		prefix = ""
	}
	return newQName(ctx, xstypes.QName{Prefix: prefix, Local: local, Namespace: uri}), nil
}

// fnResolveQName resolves a lexical QName string against the in-scope
// namespaces recorded on ctx (populated from the static parse-time
// namespace table, spec.md §4.6).
func fnResolveQName(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	lexical, err := argString(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	prefix, local, hasPrefix := strings.Cut(lexical, ":")
	if !hasPrefix {
		local = prefix
		prefix = ""
	}
	uri := ctx.Namespaces[prefix]
	return newQName(ctx, xstypes.QName{Prefix: prefix, Local: local, Namespace: uri}), nil
}

func fnPrefixFromQName(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	q, err := qnameArg(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	if q.Prefix == "" {
		return xvalue.Empty, nil
	}
	return newString(ctx, q.Prefix), nil
}

func fnLocalNameFromQName(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	q, err := qnameArg(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	return newString(ctx, q.Local), nil
}

func fnNamespaceURIFromQName(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	q, err := qnameArg(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	return newString(ctx, q.Namespace), nil
}

// fnInScopePrefixes lists, sorted, the prefixes bound in the dynamic
// context's static namespace table (spec.md §4.6). It does not read the
// node's own namespace declarations; the argument is only checked to be a
// node or the empty sequence.
func fnInScopePrefixes(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	_, err := nodeArg(ctx, args)
	if err != nil {
		return nil, err
	}
	prefixes := make([]string, 0, len(ctx.Namespaces))
	for p := range ctx.Namespaces {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	out := make(xvalue.Sequence, len(prefixes))
	for i, p := range prefixes {
		out[i] = newString(ctx, p)
	}
	return out, nil
}

func fnNamespaceURIForPrefix(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	prefix, err := argString(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	if _, err := nodeArg(ctx, args[1:]); err != nil {
		return nil, err
	}
	uri, ok := ctx.Namespaces[prefix]
	if !ok || uri == "" {
		return xvalue.Empty, nil
	}
	return newString(ctx, uri), nil
}
