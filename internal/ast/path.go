package ast

import (
	"strings"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xhost"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// Step is one axis/nodeTest/predicates unit of a LocationPath (spec.md §3,
// "Step").
type Step struct {
	Axis       Axis
	Test       NodeTest
	Predicates []Node
}

func (s *Step) String() string {
	var b strings.Builder
	b.WriteString(string(s.Axis))
	b.WriteString("::")
	b.WriteString(s.Test.String())
	for _, p := range s.Predicates {
		b.WriteString("[")
		b.WriteString(p.String())
		b.WriteString("]")
	}
	return b.String()
}

// evaluate applies this step against every node in from, returning the
// concatenated, not-yet-deduplicated result (LocationPath dedupes/sorts
// once over the whole path, matching spec.md §4.5's "Path expression").
func (s *Step) evaluate(ctx *evalctx.Dynamic, from []xhost.Node) ([]xhost.Node, error) {
	var out []xhost.Node
	for _, node := range from {
		candidates := axisNodes(node, s.Axis)
		var matched []xhost.Node
		for _, c := range candidates {
			if s.Test.Matches(c, s.Axis) {
				matched = append(matched, c)
			}
		}
		filtered, err := applyPredicates(ctx, matched, s.Predicates)
		if err != nil {
			return nil, err
		}
		out = append(out, filtered...)
	}
	return out, nil
}

// applyPredicates filters candidates through each predicate in turn, each
// evaluated with a fresh position/size over the surviving candidate set at
// that point (spec.md §4.5, "A step applies ... predicates left-to-right,
// each with fresh position/size").
func applyPredicates(ctx *evalctx.Dynamic, candidates []xhost.Node, predicates []Node) ([]xhost.Node, error) {
	cur := candidates
	for _, pred := range predicates {
		var next []xhost.Node
		size := len(cur)
		for i, node := range cur {
			itemCtx := ctx.WithContextItem(xvalue.NodeValue{Node: node}, i+1, size)
			v, err := pred.Evaluate(itemCtx)
			if err != nil {
				return nil, err
			}
			ok, err := matchesPredicate(itemCtx, v, i+1)
			if err != nil {
				return nil, err
			}
			if ok {
				next = append(next, node)
			}
		}
		cur = next
	}
	return cur, nil
}

// matchesPredicate implements the numeric-predicate special case: a bare
// numeric result selects the position-th candidate, anything else uses EBV
// (spec.md §4.5, "Predicate").
func matchesPredicate(ctx *evalctx.Dynamic, v xvalue.Value, position int) (bool, error) {
	seq := xvalue.AsSequence(v)
	if len(seq) == 1 {
		if a, ok := seq[0].(xvalue.Atomic); ok && a.Type != nil && isNumericLeaf(a) {
			f := toNumber(a)
			return int(f) == position && f == float64(int(f)), nil
		}
	}
	return EffectiveBoolean(ctx, v)
}

func isNumericLeaf(a xvalue.Atomic) bool {
	_, ok := a.Raw.(float64)
	return ok
}

// LocationPath is a sequence of steps, optionally absolute (spec.md §3,
// "LocationPath").
type LocationPath struct {
	Absolute bool
	Steps    []*Step
}

func (n *LocationPath) String() string {
	parts := make([]string, len(n.Steps))
	for i, s := range n.Steps {
		parts[i] = s.String()
	}
	joined := strings.Join(parts, "/")
	if n.Absolute {
		return "/" + joined
	}
	return joined
}

func (n *LocationPath) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	var from []xhost.Node
	if n.Absolute {
		root := ctx.ContextNode
		if root == nil {
			return nil, dynErr("absolute path requires a context node")
		}
		for root.Parent() != nil {
			root = root.Parent()
		}
		from = []xhost.Node{root}
	} else {
		if ctx.ContextNode == nil {
			return nil, dynErr("relative path requires a context node")
		}
		from = []xhost.Node{ctx.ContextNode}
	}

	for _, step := range n.Steps {
		next, err := step.evaluate(ctx, from)
		if err != nil {
			return nil, err
		}
		from = next
	}

	ordered := xhost.SortAndDedup(from)
	out := make(xvalue.Sequence, len(ordered))
	for i, node := range ordered {
		out[i] = xvalue.NodeValue{Node: node}
	}
	return out, nil
}

// PathCombine chains Steps onto an arbitrary Base expression's result
// (e.g. `$var/child::foo`, `(1, 2)/self::node()`), for paths whose first
// component is not itself an axis step. LocationPath alone covers the
// common case of a path built entirely from axis steps.
type PathCombine struct {
	Base  Node
	Steps []*Step
}

func (n *PathCombine) String() string {
	parts := make([]string, len(n.Steps))
	for i, s := range n.Steps {
		parts[i] = s.String()
	}
	return n.Base.String() + "/" + strings.Join(parts, "/")
}

func (n *PathCombine) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	bv, err := n.Base.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	var from []xhost.Node
	for _, item := range xvalue.AsSequence(bv) {
		nv, ok := item.(xvalue.NodeValue)
		if !ok {
			return nil, typeErr("path step requires a node sequence on its left side")
		}
		from = append(from, nv.Node)
	}

	for _, step := range n.Steps {
		next, err := step.evaluate(ctx, from)
		if err != nil {
			return nil, err
		}
		from = next
	}

	ordered := xhost.SortAndDedup(from)
	out := make(xvalue.Sequence, len(ordered))
	for i, node := range ordered {
		out[i] = xvalue.NodeValue{Node: node}
	}
	return out, nil
}

// Filter applies predicates to an arbitrary (not necessarily path) primary
// expression (spec.md §3, "Filter: primary + predicates").
type Filter struct {
	Primary    Node
	Predicates []Node
}

func (n *Filter) String() string {
	var b strings.Builder
	b.WriteString(n.Primary.String())
	for _, p := range n.Predicates {
		b.WriteString("[")
		b.WriteString(p.String())
		b.WriteString("]")
	}
	return b.String()
}

func (n *Filter) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	pv, err := n.Primary.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	items := xvalue.AsSequence(pv)
	cur := items
	for _, pred := range n.Predicates {
		var next xvalue.Sequence
		size := len(cur)
		for i, item := range cur {
			itemCtx := ctx.WithContextItem(item, i+1, size)
			v, err := pred.Evaluate(itemCtx)
			if err != nil {
				return nil, err
			}
			ok, err := matchesPredicate(itemCtx, v, i+1)
			if err != nil {
				return nil, err
			}
			if ok {
				next = append(next, item)
			}
		}
		cur = next
	}
	return cur, nil
}
