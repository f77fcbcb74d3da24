package ast

import (
	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xhost"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// SetOp distinguishes union/intersect/except.
type SetOp int

const (
	SetUnion SetOp = iota
	SetIntersect
	SetExcept
)

func (op SetOp) String() string {
	switch op {
	case SetUnion:
		return "|"
	case SetIntersect:
		return "intersect"
	default:
		return "except"
	}
}

// SetExpr is a Union/Intersect/Except node-set expression (spec.md §3).
type SetExpr struct {
	Op          SetOp
	Left, Right Node
}

func (n *SetExpr) String() string {
	return n.Left.String() + " " + n.Op.String() + " " + n.Right.String()
}

func (n *SetExpr) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	lv, err := n.Left.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	rv, err := n.Right.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	lNodes, err := nodesOf(lv)
	if err != nil {
		return nil, err
	}
	rNodes, err := nodesOf(rv)
	if err != nil {
		return nil, err
	}

	var result []xhost.Node
	switch n.Op {
	case SetUnion:
		result = append(append([]xhost.Node{}, lNodes...), rNodes...)
	case SetIntersect:
		rSet := nodeSet(rNodes)
		for _, node := range lNodes {
			if rSet[node] {
				result = append(result, node)
			}
		}
	case SetExcept:
		rSet := nodeSet(rNodes)
		for _, node := range lNodes {
			if !rSet[node] {
				result = append(result, node)
			}
		}
	}

	ordered := xhost.SortAndDedup(result)
	out := make(xvalue.Sequence, len(ordered))
	for i, node := range ordered {
		out[i] = xvalue.NodeValue{Node: node}
	}
	return out, nil
}

func nodesOf(v xvalue.Value) ([]xhost.Node, error) {
	var out []xhost.Node
	for _, item := range xvalue.AsSequence(v) {
		nv, ok := item.(xvalue.NodeValue)
		if !ok {
			return nil, typeErr("union/intersect/except operands must be node sequences")
		}
		out = append(out, nv.Node)
	}
	return out, nil
}

func nodeSet(nodes []xhost.Node) map[xhost.Node]bool {
	set := make(map[xhost.Node]bool, len(nodes))
	for _, n := range nodes {
		set[n] = true
	}
	return set
}
