// Package ast defines the XPath expression tree: one type per grammar
// variant from spec.md §3, each evaluating itself against a dynamic context
// and rendering its own canonical source form. The AST is the single
// source of truth — there is no parallel "IR" (spec.md §4.3).
//
// This package depends on evalctx and xvalue but never on internal/builtins
// or internal/parser: function-call resolution goes through the
// evalctx.Dynamic.Functions interface so a function registry implementation
// can import ast without ast importing it back (DESIGN NOTES, dependency
// injection posture).
package ast

import (
	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// Node is implemented by every expression-tree variant.
type Node interface {
	// Evaluate computes this node's value against ctx.
	Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error)
	// String renders the canonical source form; re-lexing and re-parsing
	// it reproduces a structurally equivalent tree (spec.md §4.3).
	String() string
}

// EffectiveBoolean computes the effective boolean value of v per spec.md
// §4.5: empty→false; single boolean→self; single numeric→non-zero-non-NaN;
// single string→non-empty; single node→true; anything else (including a
// multi-item sequence whose first item is not a node) raises FORG0006.
func EffectiveBoolean(ctx *evalctx.Dynamic, v xvalue.Value) (bool, error) {
	seq := xvalue.AsSequence(v)
	if len(seq) == 0 {
		return false, nil
	}
	if _, ok := seq[0].(xvalue.NodeValue); ok {
		return true, nil
	}
	if len(seq) > 1 {
		return false, ebvError("effective boolean value is undefined for a sequence of more than one item whose first item is not a node")
	}
	switch item := seq[0].(type) {
	case xvalue.Atomic:
		return atomicEBV(ctx, item)
	default:
		return false, ebvError("effective boolean value is undefined for this item type")
	}
}

func atomicEBV(ctx *evalctx.Dynamic, a xvalue.Atomic) (bool, error) {
	boolType := ctx.Registry.MustLookup("boolean")
	if boolType.Validate(a.Raw) && a.Type != nil && a.Type.Name == "boolean" {
		return a.Raw.(bool), nil
	}
	if a.Type != nil && (a.Type.Name == "string" || a.Type.Name == "untypedAtomic" || a.Type.Name == "anyURI") {
		s, _ := a.Type.Cast(a.Raw)
		str, _ := s.(string)
		return str != "", nil
	}
	if a.Type != nil {
		if f, ok := a.Raw.(float64); ok {
			return f != 0 && f == f, nil // f == f excludes NaN
		}
	}
	return false, ebvError("effective boolean value is undefined for this atomic type")
}
