package builtins

import (
	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xerrors"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// registerArray wires the array: namespace function family (SPEC_FULL.md's
// supplemented "array:size, array:get, array:put, array:append,
// array:flatten" list, plus join, head, tail, reverse, insert-before,
// remove, subarray and for-each from the W3C array module). array:filter,
// array:fold-left, array:fold-right and array:sort are not registered.
func registerArray(r *Registry) {
	must(r.Register(evalctx.Function{Namespace: ArrayNamespace, Local: "size", MinArgs: 1, MaxArgs: 1, Call: arraySize}))
	must(r.Register(evalctx.Function{Namespace: ArrayNamespace, Local: "get", MinArgs: 2, MaxArgs: 2, Call: arrayGet}))
	must(r.Register(evalctx.Function{Namespace: ArrayNamespace, Local: "put", MinArgs: 3, MaxArgs: 3, Call: arrayPut}))
	must(r.Register(evalctx.Function{Namespace: ArrayNamespace, Local: "append", MinArgs: 2, MaxArgs: 2, Call: arrayAppend}))
	must(r.Register(evalctx.Function{Namespace: ArrayNamespace, Local: "flatten", MinArgs: 1, MaxArgs: 1, Call: arrayFlatten}))
	must(r.Register(evalctx.Function{Namespace: ArrayNamespace, Local: "join", MinArgs: 1, MaxArgs: 1, Call: arrayJoin}))
	must(r.Register(evalctx.Function{Namespace: ArrayNamespace, Local: "head", MinArgs: 1, MaxArgs: 1, Call: arrayHead}))
	must(r.Register(evalctx.Function{Namespace: ArrayNamespace, Local: "tail", MinArgs: 1, MaxArgs: 1, Call: arrayTail}))
	must(r.Register(evalctx.Function{Namespace: ArrayNamespace, Local: "reverse", MinArgs: 1, MaxArgs: 1, Call: arrayReverse}))
	must(r.Register(evalctx.Function{Namespace: ArrayNamespace, Local: "insert-before", MinArgs: 3, MaxArgs: 3, Call: arrayInsertBefore}))
	must(r.Register(evalctx.Function{Namespace: ArrayNamespace, Local: "remove", MinArgs: 2, MaxArgs: 2, Call: arrayRemove}))
	must(r.Register(evalctx.Function{Namespace: ArrayNamespace, Local: "subarray", MinArgs: 2, MaxArgs: 3, Call: arraySubarray}))
	must(r.Register(evalctx.Function{Namespace: ArrayNamespace, Local: "for-each", MinArgs: 2, MaxArgs: 2, Call: arrayForEach}))
}

func requireArray(v xvalue.Value) (*xvalue.Array, error) {
	item := xvalue.Unwrap(v)
	a, ok := item.(*xvalue.Array)
	if !ok {
		return nil, typeErr("argument must be an array, got %T", item)
	}
	return a, nil
}

func arraySize(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	a, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	return newInteger(ctx, a.Len()), nil
}

func arrayGet(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	a, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	idx, err := argInt(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	v, ok := a.Get(idx)
	if !ok {
		return nil, xerrors.New(xerrors.FOAY0001, "array:get index %d out of bounds (size %d)", idx, a.Len())
	}
	return v, nil
}

func arrayPut(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	a, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	idx, err := argInt(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	out, ok := a.Put(idx, args[2])
	if !ok {
		return nil, xerrors.New(xerrors.FOAY0001, "array:put index %d out of bounds (size %d)", idx, a.Len())
	}
	return out, nil
}

func arrayAppend(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	a, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	return a.Append(args[1]), nil
}

func arrayFlatten(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	var out xvalue.Sequence
	for _, item := range xvalue.AsSequence(args[0]) {
		if a, ok := xvalue.Unwrap(item).(*xvalue.Array); ok {
			out = append(out, a.Flatten()...)
		} else {
			out = append(out, item)
		}
	}
	return out, nil
}

func arrayJoin(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	var items []xvalue.Value
	for _, item := range xvalue.AsSequence(args[0]) {
		a, err := requireArray(item)
		if err != nil {
			return nil, err
		}
		items = append(items, a.Items()...)
	}
	return xvalue.NewArray(items), nil
}

func arrayHead(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	a, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	v, ok := a.Get(1)
	if !ok {
		return nil, xerrors.New(xerrors.FOAY0001, "array:head called on an empty array")
	}
	return v, nil
}

func arrayTail(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	a, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	items := a.Items()
	if len(items) == 0 {
		return nil, xerrors.New(xerrors.FOAY0001, "array:tail called on an empty array")
	}
	return xvalue.NewArray(items[1:]), nil
}

func arrayReverse(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	a, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	items := a.Items()
	out := make([]xvalue.Value, len(items))
	for i, v := range items {
		out[len(items)-1-i] = v
	}
	return xvalue.NewArray(out), nil
}

func arrayInsertBefore(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	a, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	pos, err := argInt(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	items := a.Items()
	if pos < 1 || pos > len(items)+1 {
		return nil, xerrors.New(xerrors.FOAY0001, "array:insert-before position %d out of bounds (size %d)", pos, len(items))
	}
	out := make([]xvalue.Value, 0, len(items)+1)
	out = append(out, items[:pos-1]...)
	out = append(out, args[2])
	out = append(out, items[pos-1:]...)
	return xvalue.NewArray(out), nil
}

func arrayRemove(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	a, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	pos, err := argInt(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	items := a.Items()
	if pos < 1 || pos > len(items) {
		return nil, xerrors.New(xerrors.FOAY0001, "array:remove position %d out of bounds (size %d)", pos, len(items))
	}
	out := make([]xvalue.Value, 0, len(items)-1)
	out = append(out, items[:pos-1]...)
	out = append(out, items[pos:]...)
	return xvalue.NewArray(out), nil
}

func arraySubarray(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	a, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	start, err := argInt(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	items := a.Items()
	length := len(items) - start + 1
	if len(args) == 3 {
		length, err = argInt(ctx, args, 2)
		if err != nil {
			return nil, err
		}
	}
	if start < 1 || length < 0 || start+length-1 > len(items)+1 {
		return nil, xerrors.New(xerrors.FOAY0001, "array:subarray range [%d, %d) out of bounds (size %d)", start, start+length, len(items))
	}
	end := start + length - 1
	if end > len(items) {
		end = len(items)
	}
	if end < start-1 {
		end = start - 1
	}
	return xvalue.NewArray(items[start-1 : end]), nil
}

func arrayForEach(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	a, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	fn, err := requireFunction(args[1])
	if err != nil {
		return nil, err
	}
	items := a.Items()
	out := make([]xvalue.Value, len(items))
	for i, item := range items {
		v, err := fn.Call([]xvalue.Value{item})
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return xvalue.NewArray(out), nil
}
