package ast

import (
	"strings"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xerrors"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// DynamicCall invokes a function-item-valued expression with an argument
// list, 3.0+ (spec.md §3, "DynamicFunctionCall": `$f(args)` where $f
// evaluates to an xvalue.Function rather than naming one statically).
type DynamicCall struct {
	Target Node
	Args   []Node
}

func (n *DynamicCall) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return n.Target.String() + "(" + strings.Join(parts, ", ") + ")"
}

func (n *DynamicCall) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	tv, err := n.Target.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	fn, ok := tv.(xvalue.Function)
	if !ok {
		return nil, xerrors.New(xerrors.XPTY0004, "dynamic call target is not a function item")
	}
	if fn.Arity != len(n.Args) {
		return nil, xerrors.New(xerrors.XPTY0004, "function %s expects %d arguments, got %d", fn.Name, fn.Arity, len(n.Args))
	}
	args := make([]xvalue.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := a.Evaluate(ctx)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return fn.Call(args)
}
