package ast

import (
	"strings"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xerrors"
	"github.com/oxhq/xpathlang/internal/xstypes"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// Param is one declared parameter of an InlineFunction, with an optional
// declared type. Calls check arity by parameter count alone; arguments are
// neither checked against nor coerced to Type.
type Param struct {
	Name xstypes.QName
	Type *SequenceType
}

// InlineFunction constructs a first-class function item from an anonymous
// `function($a, $b) { body }` expression, 3.0+ (spec.md §3,
// "InlineFunction"). It closes over the dynamic context in effect where it
// is constructed, so free variable references inside Body resolve against
// the surrounding scope rather than the caller's.
type InlineFunction struct {
	Params []Param
	Body   Node
}

func (n *InlineFunction) String() string {
	parts := make([]string, len(n.Params))
	for i, p := range n.Params {
		parts[i] = "$" + qnameString(p.Name)
	}
	return "function(" + strings.Join(parts, ", ") + ") { " + n.Body.String() + " }"
}

func (n *InlineFunction) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	closure := ctx
	params := n.Params
	body := n.Body
	return xvalue.Function{
		Name:  "",
		Arity: len(params),
		Call: func(args []xvalue.Value) (xvalue.Value, error) {
			if len(args) != len(params) {
				return nil, xerrors.New(xerrors.XPTY0004, "inline function expects %d arguments, got %d", len(params), len(args))
			}
			callCtx := closure
			for i, p := range params {
				callCtx = callCtx.WithVariable(p.Name, args[i])
			}
			return body.Evaluate(callCtx)
		},
	}, nil
}
