package xvalue

import (
	"fmt"

	"github.com/oxhq/xpathlang/internal/xerrors"
	"github.com/oxhq/xpathlang/internal/xstypes"
)

// Atomize reduces v to a Sequence of Atomic values, per the fn:data /
// atomization rules: nodes contribute their typed value (here, their string
// value cast to untypedAtomic, since this module has no schema-validation
// pipeline attached to host nodes), atomics pass through unchanged, and maps
// or arrays are a type error (XPTY0004) since atomization is only defined
// over nodes and atomic values.
func Atomize(reg *xstypes.Registry, v Value) (Sequence, error) {
	out := make(Sequence, 0, Len(v))
	for _, item := range AsSequence(v) {
		switch t := item.(type) {
		case Atomic:
			out = append(out, t)
		case NodeValue:
			untyped := reg.MustLookup("untypedAtomic")
			out = append(out, NewAtomic(untyped, t.Node.TextContent()))
		case *Map:
			return nil, xerrors.New(xerrors.XPTY0004, "a map cannot be atomized")
		case *Array:
			return nil, xerrors.New(xerrors.XPTY0004, "an array cannot be atomized")
		case Function:
			return nil, xerrors.New(xerrors.XPTY0004, "a function item cannot be atomized")
		default:
			return nil, xerrors.New(xerrors.XPTY0004, "value of type %T cannot be atomized", item)
		}
	}
	return out, nil
}

// AtomicKey produces the normalized string form used for map-key identity
// (atomized equality, spec.md §3): numeric types of any subtype compare by
// their double-promoted value so 1, 1.0 and xs:byte(1) all collide,
// everything else by its Clark-form type name plus cast-to-string
// representation.
func AtomicKey(reg *xstypes.Registry, a Atomic) string {
	if a.Type == nil {
		return fmt.Sprintf("untyped:%v", a.Raw)
	}
	if xstypes.IsNumericType(a.Type.Name) {
		if double, ok := reg.Lookup("double"); ok {
			if v, err := double.Cast(a.Raw); err == nil {
				return fmt.Sprintf("numeric:%v", v)
			}
		}
	}
	s, err := a.Type.Cast(a.Raw)
	if err != nil {
		return fmt.Sprintf("%s:%v", a.Type.Clark(), a.Raw)
	}
	return fmt.Sprintf("%s:%v", a.Type.Clark(), s)
}
