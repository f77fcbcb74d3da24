package stream

import (
	"github.com/oxhq/xpathlang/internal/ast"
)

// streamableFunctions is the 1.0/2.0 "streamable" core the spec names
// explicitly: functions whose arguments determine their posture rather
// than escalating it (spec.md §4.7).
var streamableFunctions = map[string]bool{
	"string": true, "concat": true, "contains": true, "boolean": true,
	"not": true, "true": true, "false": true, "count": true,
	"empty": true, "exists": true,
}

// aggregateFunctions always force Consuming posture: computing them
// requires the whole input materialized before a result exists.
var aggregateFunctions = map[string]bool{
	"sum": true, "avg": true, "min": true, "max": true,
}

// Analyze classifies node per spec.md §4.7: a pure fold with no side
// effects and no dependency on any dynamic context. Unrecognized node
// types (a host-supplied ast.Node implementation this package has no
// case for) classify Consuming, the conservative middle ground between
// assuming safety (Grounded) and assuming the worst (Roaming).
func Analyze(node ast.Node) Classification {
	switch n := node.(type) {
	case nil:
		return motionlessClassification()

	case *ast.Literal, *ast.VariableRef, *ast.ContextItem, *ast.NamedFunctionRef:
		return motionlessClassification()

	case *ast.Arithmetic:
		return combineAll([]Classification{Analyze(n.Left), Analyze(n.Right)})
	case *ast.Unary:
		return Analyze(n.Operand)
	case *ast.Logical:
		return combineAll([]Classification{Analyze(n.Left), Analyze(n.Right)})
	case *ast.StringConcat:
		return combineAll([]Classification{Analyze(n.Left), Analyze(n.Right)})
	case *ast.Comparison:
		return combineAll([]Classification{Analyze(n.Left), Analyze(n.Right)})
	case *ast.Arrow:
		return combineAll([]Classification{Analyze(n.Source), analyzeArgs(n.Call.Args)})

	case *ast.SimpleMap:
		return analyzePathLike(n.Left, []Classification{Analyze(n.Right)})

	case *ast.If:
		return combineAll([]Classification{Analyze(n.Cond), Analyze(n.Then), Analyze(n.Else)})
	case *ast.Let:
		return combineAll(append(bindingClassifications(n.Bindings), Analyze(n.Return)))
	case *ast.For:
		// A for-binding's iteration can observe every item of its source
		// before the return expression produces anything for the last one,
		// so the binding's own posture already accounts for that; the loop
		// itself adds no extra navigation beyond what Return does per item.
		return combineAll(append(bindingClassifications(n.Bindings), Analyze(n.Return)))
	case *ast.Quantified:
		return combineAll(append(bindingClassifications(n.Bindings), Analyze(n.Satisfies)))

	case *ast.SetExpr:
		// Union/intersect/except merge two node-sets into a new one sorted
		// in document order, which requires materializing both sides.
		return consuming(combineAll([]Classification{Analyze(n.Left), Analyze(n.Right)}).MemoryFootprint + 0.1)
	case *ast.SequenceExpr:
		return combineAll(analyzeAll(n.Items))
	case *ast.Range:
		return combineAll([]Classification{Analyze(n.From), Analyze(n.To)})

	case *ast.Lookup:
		if n.Base == nil {
			return Analyze(n.KeySpec)
		}
		return combineAll([]Classification{Analyze(n.Base), Analyze(n.KeySpec)})
	case *ast.MapConstructor:
		var cs []Classification
		for _, e := range n.Entries {
			cs = append(cs, Analyze(e.Key), Analyze(e.Value))
		}
		return combineAll(cs)
	case *ast.ArrayConstructor:
		return combineAll(analyzeAll(n.Members))
	case *ast.DynamicCall:
		return combineAll(append([]Classification{Analyze(n.Target)}, analyzeAll(n.Args)...))
	case *ast.InlineFunction:
		return motionlessClassification()
	case *ast.StringTemplate:
		return combineAll(analyzeAll(n.Exprs))

	case *ast.CastAs:
		return Analyze(n.Operand)
	case *ast.CastableAs:
		return Analyze(n.Operand)
	case *ast.TreatAs:
		return Analyze(n.Operand)
	case *ast.InstanceOf:
		return Analyze(n.Operand)

	case *ast.FunctionCall:
		return analyzeFunctionCall(n.Local, n.Args)

	case *ast.LocationPath:
		return analyzeLocationPath(n.Absolute, n.Steps)
	case *ast.PathCombine:
		return analyzePathLike(n.Base, stepClassifications(n.Steps))
	case *ast.Filter:
		// Any predicate forces Consuming: evaluating `e[pred]` requires
		// knowing every candidate's position/last before any result can be
		// emitted downstream (spec.md §4.7's "filter expressions with
		// predicates").
		base := Analyze(n.Primary)
		if len(n.Predicates) == 0 {
			return base
		}
		return consuming(combineAll(append([]Classification{base}, analyzeAll(n.Predicates)...)).MemoryFootprint + 0.2)

	default:
		return consuming(0.5)
	}
}

func analyzeAll(nodes []ast.Node) []Classification {
	out := make([]Classification, len(nodes))
	for i, n := range nodes {
		out[i] = Analyze(n)
	}
	return out
}

func analyzeArgs(args []ast.Node) Classification {
	return combineAll(analyzeAll(args))
}

func bindingClassifications(bindings []ast.Binding) []Classification {
	out := make([]Classification, len(bindings))
	for i, b := range bindings {
		out[i] = Analyze(b.Expr)
	}
	return out
}

func stepClassifications(steps []*ast.Step) []Classification {
	out := make([]Classification, len(steps))
	for i, s := range steps {
		out[i] = analyzeStep(s)
	}
	return out
}

// analyzeStep classifies one axis step (plus its predicates) per the
// per-axis posture table in spec.md §4.7.
func analyzeStep(s *ast.Step) Classification {
	var base Classification
	switch s.Axis {
	case ast.AxisSelf:
		base = motionlessClassification()
	case ast.AxisChild, ast.AxisDescendant, ast.AxisDescendantOrSelf, ast.AxisAttribute, ast.AxisNamespace:
		base = grounded(0.2)
	case ast.AxisParent, ast.AxisAncestor, ast.AxisAncestorOrSelf:
		base = consuming(0.6)
	case ast.AxisFollowing, ast.AxisPreceding, ast.AxisFollowingSibling, ast.AxisPrecedingSibling:
		base = roaming("axis " + string(s.Axis) + " has unbounded, direction-free navigation")
	default:
		base = consuming(0.5)
	}
	if len(s.Predicates) == 0 {
		return base
	}
	preds := analyzeAll(s.Predicates)
	combined := combineAll(append([]Classification{base}, preds...))
	if combined.Posture < Consuming {
		return consuming(combined.MemoryFootprint + 0.1)
	}
	return combined
}

// analyzeLocationPath folds a step chain; an absolute path always roams
// since it seeks the document root regardless of the current streaming
// position (spec.md §4.7's "absolute paths starting from /").
func analyzeLocationPath(absolute bool, steps []*ast.Step) Classification {
	if absolute {
		return roaming("absolute path requires seeking the document root")
	}
	return combineAll(stepClassifications(steps))
}

// analyzePathLike folds an arbitrary base expression together with a step
// chain, shared by PathCombine and SimpleMap's left-hand navigation.
func analyzePathLike(base ast.Node, rest []Classification) Classification {
	return combineAll(append([]Classification{Analyze(base)}, rest...))
}

// analyzeFunctionCall classifies a named function call: an aggregate
// forces Consuming regardless of its argument's posture, a streamable
// function passes through its arguments' worst posture, and any other
// function escalates a Grounded argument posture to Consuming while passing
// Motionless, Consuming and Roaming through unchanged (this engine has no
// cross-package visibility into an arbitrary extension function's own
// streamability).
func analyzeFunctionCall(local string, args []ast.Node) Classification {
	argClass := analyzeArgs(args)
	switch {
	case aggregateFunctions[local]:
		return consuming(argClass.MemoryFootprint + 0.3)
	case streamableFunctions[local]:
		return argClass
	default:
		if argClass.Posture == Motionless {
			return argClass
		}
		if argClass.Posture <= Grounded {
			return consuming(argClass.MemoryFootprint + 0.2)
		}
		return argClass
	}
}
