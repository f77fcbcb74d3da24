package builtins

import (
	"strings"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xerrors"
	"github.com/oxhq/xpathlang/internal/xhost"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// registerNodeSet wires the 1.0 node-set/context functions (spec.md §4.4).
func registerNodeSet(r *Registry) {
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "count", MinArgs: 1, MaxArgs: 1, Call: fnCount}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "position", MinArgs: 0, MaxArgs: 0, Call: fnPosition}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "last", MinArgs: 0, MaxArgs: 0, Call: fnLast}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "name", MinArgs: 0, MaxArgs: 1, Call: fnName}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "local-name", MinArgs: 0, MaxArgs: 1, Call: fnLocalName}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "namespace-uri", MinArgs: 0, MaxArgs: 1, Call: fnNamespaceURI}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "id", MinArgs: 1, MaxArgs: 1, Call: fnID}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "lang", MinArgs: 1, MaxArgs: 1, Call: fnLang}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "root", MinArgs: 0, MaxArgs: 1, Call: fnRoot}))
}

func fnCount(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	return newInteger(ctx, xvalue.Len(args[0])), nil
}

func fnPosition(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	if ctx.Size == 0 {
		return nil, xerrors.New(xerrors.XPDY0002, "fn:position called outside a focus")
	}
	return newInteger(ctx, ctx.Position), nil
}

func fnLast(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	if ctx.Size == 0 {
		return nil, xerrors.New(xerrors.XPDY0002, "fn:last called outside a focus")
	}
	return newInteger(ctx, ctx.Size), nil
}

func nodeArg(ctx *evalctx.Dynamic, args []xvalue.Value) (xhost.Node, error) {
	var v xvalue.Value
	if len(args) == 1 {
		v = xvalue.Unwrap(args[0])
	} else {
		v = ctx.ContextItem
	}
	if xvalue.IsEmpty(v) {
		return nil, nil
	}
	nv, ok := v.(xvalue.NodeValue)
	if !ok {
		return nil, typeErr("argument must be a node")
	}
	return nv.Node, nil
}

func fnName(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	n, err := nodeArg(ctx, args)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return newString(ctx, ""), nil
	}
	return newString(ctx, n.NodeName()), nil
}

func fnLocalName(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	n, err := nodeArg(ctx, args)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return newString(ctx, ""), nil
	}
	return newString(ctx, n.LocalName()), nil
}

func fnNamespaceURI(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	n, err := nodeArg(ctx, args)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return newString(ctx, ""), nil
	}
	return newString(ctx, n.NamespaceURI()), nil
}

// fnID resolves fn:id(string+): each whitespace-separated token in the
// argument's string value is looked up as an "id"-named attribute value
// among the context node's document, per spec.md §4.4 (this engine has no
// DTD/schema ID typing, so "id" is the attribute's local name by
// convention, matching the teacher's schema-agnostic posture elsewhere).
func fnID(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	if ctx.ContextNode == nil {
		return nil, xerrors.New(xerrors.XPDY0002, "fn:id requires a context node")
	}
	s, err := argString(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	root := ctx.ContextNode
	for root.Parent() != nil {
		root = root.Parent()
	}
	wanted := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		wanted[tok] = true
	}
	var out []xhost.Node
	var walk func(n xhost.Node)
	walk = func(n xhost.Node) {
		for _, attr := range n.Attributes() {
			if attr.LocalName() == "id" && wanted[attr.TextContent()] {
				out = append(out, n)
				break
			}
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(root)
	seq := make(xvalue.Sequence, len(out))
	for i, n := range out {
		seq[i] = xvalue.NodeValue{Node: n}
	}
	return seq, nil
}

// fnLang reports whether the context node (or its nearest xml:lang
// ancestor) matches the given language, per XPath 1.0's case-insensitive
// prefix match rule (e.g. lang("en") matches xml:lang="en-US").
func fnLang(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	if ctx.ContextNode == nil {
		return nil, xerrors.New(xerrors.XPDY0002, "fn:lang requires a context node")
	}
	want, err := argString(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	want = strings.ToLower(want)
	for n := ctx.ContextNode; n != nil; n = n.Parent() {
		for _, attr := range n.Attributes() {
			if attr.LocalName() == "lang" && attr.NamespaceURI() == "http://www.w3.org/XML/1998/namespace" {
				have := strings.ToLower(attr.TextContent())
				return newBoolean(ctx, have == want || strings.HasPrefix(have, want+"-")), nil
			}
		}
	}
	return newBoolean(ctx, false), nil
}

func fnRoot(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	n, err := nodeArg(ctx, args)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return xvalue.Empty, nil
	}
	for n.Parent() != nil {
		n = n.Parent()
	}
	return xvalue.NodeValue{Node: n}, nil
}
