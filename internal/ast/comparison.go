package ast

import (
	"fmt"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xhost"
	"github.com/oxhq/xpathlang/internal/xstypes"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// CompareKind distinguishes the three families of comparison operator.
type CompareKind int

const (
	CompareGeneral CompareKind = iota
	CompareValue
	CompareNode
)

// CompareOp is the specific operator within its family.
type CompareOp int

const (
	OpEq CompareOp = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpIs
	OpPrecedes // <<
	OpFollows  // >>
)

var compareOpText = map[CompareKind]map[CompareOp]string{
	CompareGeneral: {OpEq: "=", OpNe: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">="},
	CompareValue:   {OpEq: "eq", OpNe: "ne", OpLt: "lt", OpLe: "le", OpGt: "gt", OpGe: "ge"},
	CompareNode:    {OpIs: "is", OpPrecedes: "<<", OpFollows: ">>"},
}

// Comparison is a general, value, or node comparison (spec.md §3, "Comparison").
type Comparison struct {
	Kind        CompareKind
	Op          CompareOp
	Left, Right Node
}

func (n *Comparison) String() string {
	return fmt.Sprintf("%s %s %s", n.Left.String(), compareOpText[n.Kind][n.Op], n.Right.String())
}

func (n *Comparison) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	lv, err := n.Left.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	rv, err := n.Right.Evaluate(ctx)
	if err != nil {
		return nil, err
	}

	boolType := ctx.Registry.MustLookup("boolean")

	switch n.Kind {
	case CompareGeneral:
		result, err := generalCompare(ctx, n.Op, lv, rv)
		if err != nil {
			return nil, err
		}
		return xvalue.NewAtomic(boolType, result), nil
	case CompareValue:
		result, empty, err := valueCompare(ctx, n.Op, lv, rv)
		if err != nil {
			return nil, err
		}
		if empty {
			return xvalue.Empty, nil
		}
		return xvalue.NewAtomic(boolType, result), nil
	case CompareNode:
		result, empty, err := nodeCompare(n.Op, lv, rv)
		if err != nil {
			return nil, err
		}
		if empty {
			return xvalue.Empty, nil
		}
		return xvalue.NewAtomic(boolType, result), nil
	}
	return nil, typeErr("unknown comparison kind")
}

// generalCompare existentially compares the Cartesian product of the
// atomized operand sequences, coercing each pair numerically if either side
// is numeric, else comparing as strings (spec.md §4.5).
func generalCompare(ctx *evalctx.Dynamic, op CompareOp, lv, rv xvalue.Value) (bool, error) {
	lSeq, err := xvalue.Atomize(ctx.Registry, lv)
	if err != nil {
		return false, err
	}
	rSeq, err := xvalue.Atomize(ctx.Registry, rv)
	if err != nil {
		return false, err
	}
	for _, l := range lSeq {
		la := l.(xvalue.Atomic)
		for _, r := range rSeq {
			ra := r.(xvalue.Atomic)
			ok, err := compareAtomicPair(ctx, op, la, ra)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
	}
	return false, nil
}

// valueCompare requires exactly one atomic value on each side.
func valueCompare(ctx *evalctx.Dynamic, op CompareOp, lv, rv xvalue.Value) (result bool, empty bool, err error) {
	lSeq, err := xvalue.Atomize(ctx.Registry, lv)
	if err != nil {
		return false, false, err
	}
	rSeq, err := xvalue.Atomize(ctx.Registry, rv)
	if err != nil {
		return false, false, err
	}
	if len(lSeq) == 0 || len(rSeq) == 0 {
		return false, true, nil
	}
	if len(lSeq) > 1 || len(rSeq) > 1 {
		return false, false, typeErr("value comparison requires exactly one atomic value per operand")
	}
	ok, err := compareAtomicPair(ctx, op, lSeq[0].(xvalue.Atomic), rSeq[0].(xvalue.Atomic))
	return ok, false, err
}

func nodeCompare(op CompareOp, lv, rv xvalue.Value) (result bool, empty bool, err error) {
	lSeq := xvalue.AsSequence(lv)
	rSeq := xvalue.AsSequence(rv)
	if len(lSeq) == 0 || len(rSeq) == 0 {
		return false, true, nil
	}
	if len(lSeq) > 1 || len(rSeq) > 1 {
		return false, false, typeErr("node comparison requires exactly one node per operand")
	}
	ln, ok := lSeq[0].(xvalue.NodeValue)
	if !ok {
		return false, false, typeErr("node comparison operand is not a node")
	}
	rn, ok := rSeq[0].(xvalue.NodeValue)
	if !ok {
		return false, false, typeErr("node comparison operand is not a node")
	}
	switch op {
	case OpIs:
		return ln.Node == rn.Node, false, nil
	case OpPrecedes:
		return xhost.Compare(ln.Node, rn.Node) < 0, false, nil
	case OpFollows:
		return xhost.Compare(ln.Node, rn.Node) > 0, false, nil
	}
	return false, false, typeErr("unknown node comparison operator")
}

// compareAtomicPair compares two atomic values numerically if either is
// numeric, else lexically as strings, per spec.md's general/value
// comparison semantics.
func compareAtomicPair(ctx *evalctx.Dynamic, op CompareOp, l, r xvalue.Atomic) (bool, error) {
	lNumeric := l.Type != nil && xstypes.IsNumericType(l.Type.Name)
	rNumeric := r.Type != nil && xstypes.IsNumericType(r.Type.Name)
	lUntyped := l.Type != nil && (l.Type.Name == "untypedAtomic" || l.Type.Name == "string")
	rUntyped := r.Type != nil && (r.Type.Name == "untypedAtomic" || r.Type.Name == "string")

	if (lNumeric || rNumeric) && !(lUntyped && rUntyped) {
		lf := toNumber(l)
		rf := toNumber(r)
		return applyOrdering(op, compareFloat(lf, rf)), nil
	}

	ls, err := stringOf(ctx, l)
	if err != nil {
		return false, err
	}
	rs, err := stringOf(ctx, r)
	if err != nil {
		return false, err
	}
	return applyOrdering(op, compareStrings(ls, rs)), nil
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func applyOrdering(op CompareOp, cmp int) bool {
	switch op {
	case OpEq:
		return cmp == 0
	case OpNe:
		return cmp != 0
	case OpLt:
		return cmp < 0
	case OpLe:
		return cmp <= 0
	case OpGt:
		return cmp > 0
	case OpGe:
		return cmp >= 0
	}
	return false
}

func stringOf(ctx *evalctx.Dynamic, a xvalue.Atomic) (string, error) {
	s, err := ctx.Registry.MustLookup("string").Cast(a.Raw)
	if err != nil {
		return "", err
	}
	str, ok := s.(string)
	if !ok {
		return "", typeErr("cannot compare value as a string")
	}
	return str, nil
}
