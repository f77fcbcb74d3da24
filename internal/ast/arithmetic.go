package ast

import (
	"math"
	"strconv"
	"strings"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xerrors"
	"github.com/oxhq/xpathlang/internal/xstypes"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// ArithOp enumerates the binary arithmetic operators.
type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
	OpDiv
	OpIdiv
	OpMod
)

func (op ArithOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "div"
	case OpIdiv:
		return "idiv"
	case OpMod:
		return "mod"
	default:
		return "?"
	}
}

// Arithmetic is a binary arithmetic expression (spec.md §3, "Arithmetic").
type Arithmetic struct {
	Op          ArithOp
	Left, Right Node
}

func (n *Arithmetic) String() string {
	return n.Left.String() + " " + n.Op.String() + " " + n.Right.String()
}

func (n *Arithmetic) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	lv, err := n.Left.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	rv, err := n.Right.Evaluate(ctx)
	if err != nil {
		return nil, err
	}

	lf, lEmpty, lRank, err := numericOperand(ctx, lv)
	if err != nil {
		return nil, err
	}
	rf, rEmpty, rRank, err := numericOperand(ctx, rv)
	if err != nil {
		return nil, err
	}
	if lEmpty || rEmpty {
		return xvalue.Empty, nil
	}

	var result float64
	resultType := xstypes.RankTypeName(xstypes.PromoteRank(lRank, rRank))

	switch n.Op {
	case OpAdd:
		result = lf + rf
	case OpSub:
		result = lf - rf
	case OpMul:
		result = lf * rf
	case OpDiv:
		result = lf / rf // IEEE 754: yields ±Inf or NaN for division by zero
	case OpIdiv:
		if rf == 0 {
			return nil, xerrors.New(xerrors.XPDY0002, "integer division by zero")
		}
		result = math.Trunc(lf / rf)
		resultType = "integer"
	case OpMod:
		if rf == 0 {
			return nil, xerrors.New(xerrors.XPDY0002, "modulo by zero")
		}
		result = math.Mod(lf, rf)
	}

	return xvalue.NewAtomic(ctx.Registry.MustLookup(resultType), result), nil
}

// Unary is a unary +/- expression (spec.md §3, "Unary").
type Unary struct {
	Negative bool
	Operand  Node
}

func (n *Unary) String() string {
	if n.Negative {
		return "-" + n.Operand.String()
	}
	return "+" + n.Operand.String()
}

func (n *Unary) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	v, err := n.Operand.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	f, empty, rank, err := numericOperand(ctx, v)
	if err != nil {
		return nil, err
	}
	if empty {
		return xvalue.Empty, nil
	}
	if n.Negative {
		f = -f
	}
	return xvalue.NewAtomic(ctx.Registry.MustLookup(xstypes.RankTypeName(rank)), f), nil
}

// numericOperand atomizes v, takes its first item (spec.md §4.5: "atomize
// operand sequences by taking the first item and applying atomization"),
// and coerces it to a float64 plus the numeric promotion rank it
// contributes. A non-numeric string coerces to NaN rather than erroring.
func numericOperand(ctx *evalctx.Dynamic, v xvalue.Value) (f float64, empty bool, rank int, err error) {
	atomized, err := xvalue.Atomize(ctx.Registry, v)
	if err != nil {
		return 0, false, 0, err
	}
	if len(atomized) == 0 {
		return 0, true, 0, nil
	}
	item, ok := atomized[0].(xvalue.Atomic)
	if !ok {
		return 0, false, 0, typeErr("arithmetic operand must atomize to an atomic value")
	}
	return toNumber(item), false, numericRankOf(item), nil
}

func toNumber(a xvalue.Atomic) float64 {
	switch raw := a.Raw.(type) {
	case float64:
		return raw
	case bool:
		if raw {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// numericRankOf reports the promotion rank an atomic value contributes to
// arithmetic: its own numeric rank if it is a numeric type, otherwise
// double — matching "untypedAtomic promotes to double for arithmetic" and
// extending the same treatment to strings/booleans coerced into numbers.
func numericRankOf(a xvalue.Atomic) int {
	if a.Type != nil && xstypes.IsNumericType(a.Type.Name) {
		return xstypes.NumericRank(a.Type.Name)
	}
	return xstypes.RankDouble
}
