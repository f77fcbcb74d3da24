// Package xvalue implements the XPath dynamic value model: atomic values,
// nodes, sequences, maps, and arrays, per spec.md §3 ("Value"). Every value
// in the evaluator flows through this package's Value interface so a
// single-item sequence and its item stay interchangeable under XPath's
// sequence-of-one identity (DESIGN NOTES §9).
package xvalue

import (
	"github.com/oxhq/xpathlang/internal/xhost"
	"github.com/oxhq/xpathlang/internal/xstypes"
)

// Value is implemented by every runtime XPath value: Atomic, NodeValue,
// Sequence, *Map, *Array.
type Value interface {
	isValue()
}

// Atomic is a single atomic value tagged with its XML Schema type.
type Atomic struct {
	Type *xstypes.AtomicType
	Raw  any
}

func (Atomic) isValue() {}

// NodeValue wraps a host node as an XPath item.
type NodeValue struct {
	Node xhost.Node
}

func (NodeValue) isValue() {}

// Sequence is a finite ordered, possibly empty, list of items. Sequences
// never nest — comma concatenation and every builder in this package
// flattens nested sequences on construction (spec.md §3 invariant).
type Sequence []Value

func (Sequence) isValue() {}

// Empty is the canonical empty sequence value.
var Empty = Sequence{}

// NewAtomic builds an Atomic value of the named registry type without
// casting; callers that need casting should go through xstypes.AtomicType.Cast
// first and wrap the result.
func NewAtomic(t *xstypes.AtomicType, raw any) Atomic {
	return Atomic{Type: t, Raw: raw}
}

// Concat flattens and concatenates any number of values into a single
// Sequence, per spec.md §4.5 ("Sequence comma... flattens").
func Concat(vs ...Value) Sequence {
	out := make(Sequence, 0, len(vs))
	for _, v := range vs {
		switch t := v.(type) {
		case nil:
			continue
		case Sequence:
			out = append(out, t...)
		default:
			out = append(out, t)
		}
	}
	return out
}

// AsSequence views any Value as a Sequence, per the sequence-of-one
// identity: a bare item becomes a length-1 sequence, a Sequence passes
// through, and nil becomes empty.
func AsSequence(v Value) Sequence {
	switch t := v.(type) {
	case nil:
		return Empty
	case Sequence:
		return t
	default:
		return Sequence{t}
	}
}

// Unwrap collapses a length-1 Sequence to its sole item (recursively, in
// case of doubly-wrapped values); a Sequence of any other length, or a
// non-sequence Value, is returned unchanged.
func Unwrap(v Value) Value {
	for {
		seq, ok := v.(Sequence)
		if !ok || len(seq) != 1 {
			return v
		}
		v = seq[0]
	}
}

// Len reports the item count of v treated as a sequence.
func Len(v Value) int {
	return len(AsSequence(v))
}

// IsEmpty reports whether v is the empty sequence.
func IsEmpty(v Value) bool {
	return Len(v) == 0
}
