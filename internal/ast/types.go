package ast

import (
	"strings"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xerrors"
	"github.com/oxhq/xpathlang/internal/xstypes"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// Occurrence is the cardinality marker of a SequenceType (spec.md §3,
// "SequenceType").
type Occurrence int

const (
	OccOne        Occurrence = iota // no marker
	OccOptional                     // ?
	OccZeroOrMore                   // *
	OccOneOrMore                    // +
)

func (o Occurrence) String() string {
	switch o {
	case OccOptional:
		return "?"
	case OccZeroOrMore:
		return "*"
	case OccOneOrMore:
		return "+"
	default:
		return ""
	}
}

// ItemKind distinguishes the forms an ItemType may take.
type ItemKind int

const (
	ItemAtomic ItemKind = iota
	ItemKindTest
	ItemFunctionTest
	ItemMapTest
	ItemArrayTest
	ItemUnion
	ItemAny // item() — matches any item, atomic or node
)

// ItemType is one member of a SequenceType's item constraint (spec.md §3:
// "named atomic type, kind test..., function test, map test, array test, or
// UnionItemType").
type ItemType struct {
	Kind       ItemKind
	AtomicName string     // for ItemAtomic
	Test       NodeTest   // for ItemKindTest
	Members    []ItemType // for ItemUnion: ≥2 members, flattened+deduped
}

// NewUnionItemType flattens nested unions and deduplicates members by their
// rendered form, per spec.md's "flatten and deduplicate on construction".
func NewUnionItemType(members ...ItemType) ItemType {
	var flat []ItemType
	seen := make(map[string]bool)
	var add func(it ItemType)
	add = func(it ItemType) {
		if it.Kind == ItemUnion {
			for _, m := range it.Members {
				add(m)
			}
			return
		}
		key := it.String()
		if !seen[key] {
			seen[key] = true
			flat = append(flat, it)
		}
	}
	for _, m := range members {
		add(m)
	}
	return ItemType{Kind: ItemUnion, Members: flat}
}

func (it ItemType) String() string {
	switch it.Kind {
	case ItemAtomic:
		return it.AtomicName
	case ItemKindTest:
		return it.Test.String()
	case ItemFunctionTest:
		return "function(*)"
	case ItemMapTest:
		return "map(*)"
	case ItemArrayTest:
		return "array(*)"
	case ItemUnion:
		parts := make([]string, len(it.Members))
		for i, m := range it.Members {
			parts[i] = m.String()
		}
		return "(" + strings.Join(parts, " | ") + ")"
	case ItemAny:
		return "item()"
	default:
		return "item()"
	}
}

// Matches reports whether a single item satisfies it.
func (it ItemType) Matches(reg *xstypes.Registry, item xvalue.Value) bool {
	switch it.Kind {
	case ItemAtomic:
		a, ok := item.(xvalue.Atomic)
		if !ok {
			return false
		}
		t, found := reg.Lookup(it.AtomicName)
		if !found {
			return false
		}
		return a.Type != nil && a.Type.IsDerivedFrom(t)
	case ItemKindTest:
		nv, ok := item.(xvalue.NodeValue)
		if !ok {
			return false
		}
		return it.Test.Matches(nv.Node, AxisChild)
	case ItemFunctionTest:
		_, ok := item.(xvalue.Function)
		return ok
	case ItemMapTest:
		_, ok := item.(*xvalue.Map)
		return ok
	case ItemArrayTest:
		_, ok := item.(*xvalue.Array)
		return ok
	case ItemUnion:
		for _, m := range it.Members {
			if m.Matches(reg, item) {
				return true
			}
		}
		return false
	default:
		return true // item() matches anything
	}
}

// SequenceType is an (itemType, occurrence) pair (spec.md §3, "SequenceType").
// EmptySequence marks the special `empty-sequence()` type, which matches
// only the empty sequence regardless of Item/Occurrence.
type SequenceType struct {
	Item          ItemType
	Occurrence    Occurrence
	EmptySequence bool
}

func (st SequenceType) String() string {
	if st.EmptySequence {
		return "empty-sequence()"
	}
	return st.Item.String() + st.Occurrence.String()
}

// Matches reports whether v's cardinality and item types satisfy st.
func (st SequenceType) Matches(reg *xstypes.Registry, v xvalue.Value) bool {
	seq := xvalue.AsSequence(v)
	if st.EmptySequence {
		return len(seq) == 0
	}
	switch st.Occurrence {
	case OccOne:
		if len(seq) != 1 {
			return false
		}
	case OccOptional:
		if len(seq) > 1 {
			return false
		}
	case OccOneOrMore:
		if len(seq) == 0 {
			return false
		}
	}
	for _, item := range seq {
		if !st.Item.Matches(reg, item) {
			return false
		}
	}
	return true
}

// CastAs converts operand to TargetType, requiring a singleton value unless
// Optional allows the empty sequence through (spec.md §4.5: "cast as on
// empty sequence is allowed only when the ? occurrence marker is used").
type CastAs struct {
	Operand    Node
	TargetType string
	Optional   bool
}

func (n *CastAs) String() string {
	marker := ""
	if n.Optional {
		marker = "?"
	}
	return n.Operand.String() + " cast as " + n.TargetType + marker
}

func (n *CastAs) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	v, err := n.Operand.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	seq, err := xvalue.Atomize(ctx.Registry, v)
	if err != nil {
		return nil, err
	}
	if len(seq) == 0 {
		if n.Optional {
			return xvalue.Empty, nil
		}
		return nil, xerrors.New(xerrors.XPTY0004, "cannot cast empty sequence to %s without '?'", n.TargetType)
	}
	if len(seq) > 1 {
		return nil, xerrors.New(xerrors.XPTY0004, "cast as requires a single item, got a sequence of %d", len(seq))
	}
	target, ok := ctx.Registry.Lookup(n.TargetType)
	if !ok {
		return nil, xerrors.New(xerrors.XPST0003, "unknown target type %s", n.TargetType)
	}
	a := seq[0].(xvalue.Atomic)
	cast, err := target.Cast(a.Raw)
	if err != nil {
		return nil, err
	}
	return xvalue.NewAtomic(target, cast), nil
}

// CastableAs reports whether CastAs would succeed, as a boolean, never
// propagating the underlying cast error (spec.md §7: "castable as converts
// a failed cast into false").
type CastableAs struct {
	Operand    Node
	TargetType string
	Optional   bool
}

func (n *CastableAs) String() string {
	marker := ""
	if n.Optional {
		marker = "?"
	}
	return n.Operand.String() + " castable as " + n.TargetType + marker
}

func (n *CastableAs) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	cast := &CastAs{Operand: n.Operand, TargetType: n.TargetType, Optional: n.Optional}
	_, err := cast.Evaluate(ctx)
	return xvalue.NewAtomic(ctx.Registry.MustLookup("boolean"), err == nil), nil
}

// TreatAs asserts operand's dynamic type matches Type without converting
// it, raising XPTY0004 on mismatch (spec.md §3, "TreatAs").
type TreatAs struct {
	Operand Node
	Type    SequenceType
}

func (n *TreatAs) String() string {
	return n.Operand.String() + " treat as " + n.Type.String()
}

func (n *TreatAs) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	v, err := n.Operand.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	if !n.Type.Matches(ctx.Registry, v) {
		return nil, xerrors.New(xerrors.XPTY0004, "value does not match declared type %s", n.Type.String())
	}
	return v, nil
}

// InstanceOf reports whether operand's dynamic value matches Type, as a
// boolean (spec.md §3, "InstanceOf").
type InstanceOf struct {
	Operand Node
	Type    SequenceType
}

func (n *InstanceOf) String() string {
	return n.Operand.String() + " instance of " + n.Type.String()
}

func (n *InstanceOf) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	v, err := n.Operand.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	return xvalue.NewAtomic(ctx.Registry.MustLookup("boolean"), n.Type.Matches(ctx.Registry, v)), nil
}
