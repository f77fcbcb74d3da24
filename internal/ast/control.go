package ast

import (
	"strings"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xstypes"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// If is a conditional expression (spec.md §3, "If").
type If struct {
	Cond, Then, Else Node
}

func (n *If) String() string {
	return "if (" + n.Cond.String() + ") then " + n.Then.String() + " else " + n.Else.String()
}

func (n *If) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	cv, err := n.Cond.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	ok, err := EffectiveBoolean(ctx, cv)
	if err != nil {
		return nil, err
	}
	if ok {
		return n.Then.Evaluate(ctx)
	}
	return n.Else.Evaluate(ctx)
}

// Binding is one name/initializer pair shared by Let and For.
type Binding struct {
	Name xstypes.QName
	Expr Node
}

// Let evaluates its bindings left-to-right, each seeing earlier bindings,
// then evaluates Return under the extended environment (spec.md §3, "Let").
type Let struct {
	Bindings []Binding
	Return   Node
}

func (n *Let) String() string {
	var b strings.Builder
	b.WriteString("let ")
	for i, bind := range n.Bindings {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("$" + qnameString(bind.Name) + " := " + bind.Expr.String())
	}
	b.WriteString(" return ")
	b.WriteString(n.Return.String())
	return b.String()
}

func (n *Let) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	cur := ctx
	for _, bind := range n.Bindings {
		v, err := bind.Expr.Evaluate(cur)
		if err != nil {
			return nil, err
		}
		cur = cur.WithVariable(bind.Name, v)
	}
	return n.Return.Evaluate(cur)
}

// For is the Cartesian-product iteration expression (spec.md §3, "For").
type For struct {
	Bindings []Binding
	Return   Node
}

func (n *For) String() string {
	var b strings.Builder
	b.WriteString("for ")
	for i, bind := range n.Bindings {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("$" + qnameString(bind.Name) + " in " + bind.Expr.String())
	}
	b.WriteString(" return ")
	b.WriteString(n.Return.String())
	return b.String()
}

func (n *For) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	var out xvalue.Sequence
	err := forRecurse(ctx, n.Bindings, n.Return, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func forRecurse(ctx *evalctx.Dynamic, bindings []Binding, ret Node, out *xvalue.Sequence) error {
	if len(bindings) == 0 {
		v, err := ret.Evaluate(ctx)
		if err != nil {
			return err
		}
		*out = xvalue.Concat(*out, v)
		return nil
	}
	head, rest := bindings[0], bindings[1:]
	hv, err := head.Expr.Evaluate(ctx)
	if err != nil {
		return err
	}
	for _, item := range xvalue.AsSequence(hv) {
		next := ctx.WithVariable(head.Name, item)
		if err := forRecurse(next, rest, ret, out); err != nil {
			return err
		}
	}
	return nil
}

// QuantifierKind distinguishes some/every.
type QuantifierKind int

const (
	QuantifierSome QuantifierKind = iota
	QuantifierEvery
)

// Quantified is a some/every expression (spec.md §3, "Quantified").
type Quantified struct {
	Kind       QuantifierKind
	Bindings   []Binding
	Satisfies  Node
}

func (n *Quantified) String() string {
	kw := "some"
	if n.Kind == QuantifierEvery {
		kw = "every"
	}
	var b strings.Builder
	b.WriteString(kw + " ")
	for i, bind := range n.Bindings {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("$" + qnameString(bind.Name) + " in " + bind.Expr.String())
	}
	b.WriteString(" satisfies ")
	b.WriteString(n.Satisfies.String())
	return b.String()
}

func (n *Quantified) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	boolType := ctx.Registry.MustLookup("boolean")
	result, err := quantifiedRecurse(ctx, n.Bindings, n.Satisfies, n.Kind == QuantifierEvery)
	if err != nil {
		return nil, err
	}
	return xvalue.NewAtomic(boolType, result), nil
}

func quantifiedRecurse(ctx *evalctx.Dynamic, bindings []Binding, satisfies Node, every bool) (bool, error) {
	if len(bindings) == 0 {
		v, err := satisfies.Evaluate(ctx)
		if err != nil {
			return false, err
		}
		return EffectiveBoolean(ctx, v)
	}
	head, rest := bindings[0], bindings[1:]
	hv, err := head.Expr.Evaluate(ctx)
	if err != nil {
		return false, err
	}
	for _, item := range xvalue.AsSequence(hv) {
		next := ctx.WithVariable(head.Name, item)
		ok, err := quantifiedRecurse(next, rest, satisfies, every)
		if err != nil {
			return false, err
		}
		if every && !ok {
			return false, nil // short-circuit
		}
		if !every && ok {
			return true, nil // short-circuit
		}
	}
	return every, nil
}
