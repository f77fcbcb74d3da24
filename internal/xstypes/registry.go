// Package xstypes implements the XML Schema atomic type lattice consumed by
// the XPath evaluator: the nineteen primitive types, their derived integer
// subtypes, casting, structural validation, and numeric promotion.
//
// The registry is built once and handed out as immutable *AtomicType
// pointers (interned, per DESIGN NOTES §9) — no AtomicType is ever mutated
// after NewRegistry returns, and the base/primitive DAG is acyclic by
// construction.
package xstypes

import "sync"

// AtomicType describes one node in the XML Schema atomic type lattice.
type AtomicType struct {
	Name      string
	Namespace string
	Base      *AtomicType // direct base type, nil for anyAtomicType
	Primitive *AtomicType // primitive root; equal to self for primitives

	validate func(v any) bool
	cast     func(v any) (any, error)
}

// Validate reports whether v is a structurally valid value of this type.
func (t *AtomicType) Validate(v any) bool {
	if t.validate == nil {
		return true
	}
	return t.validate(v)
}

// Cast converts v into this type's canonical representation, or returns a
// *xerrors.Error with code FORG0001/XPTY0004.
func (t *AtomicType) Cast(v any) (any, error) {
	if t.cast == nil {
		return v, nil
	}
	return t.cast(v)
}

// Clark returns the {namespace}localName Clark-notation form of the type.
func (t *AtomicType) Clark() string {
	return "{" + t.Namespace + "}" + t.Name
}

// IsDerivedFrom reports whether t equals base or descends from it along the
// Base chain.
func (t *AtomicType) IsDerivedFrom(base *AtomicType) bool {
	for cur := t; cur != nil; cur = cur.Base {
		if cur == base {
			return true
		}
	}
	return false
}

const xsNamespace = "http://www.w3.org/2001/XMLSchema"

// Registry is a process-wide, read-only map of local type name to
// *AtomicType.
type Registry struct {
	byName map[string]*AtomicType
}

// Lookup returns the type registered under name, or (nil, false).
func (r *Registry) Lookup(name string) (*AtomicType, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// MustLookup panics if name is not registered; reserved for wiring code
// that references the registry's own compile-time constants.
func (r *Registry) MustLookup(name string) *AtomicType {
	t, ok := r.byName[name]
	if !ok {
		panic("xstypes: unknown type " + name)
	}
	return t
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide default registry, built once.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewRegistry()
	})
	return defaultReg
}

// NewRegistry constructs a fresh, fully-populated type registry. Hosts that
// need an isolated registry (e.g. for schema-derived types layered on top)
// can call this directly instead of using Default().
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]*AtomicType)}

	def := func(name string, base *AtomicType, validate func(any) bool, cast func(any) (any, error)) *AtomicType {
		t := &AtomicType{Name: name, Namespace: xsNamespace, Base: base, validate: validate, cast: cast}
		if base == nil {
			t.Primitive = t
		} else {
			t.Primitive = base.Primitive
		}
		r.byName[name] = t
		return t
	}

	anyAtomic := def("anyAtomicType", nil, func(any) bool { return true }, func(v any) (any, error) { return v, nil })

	str := def("string", anyAtomic, validateString, castToString)
	boolean := def("boolean", anyAtomic, validateBoolean, castToBoolean)
	decimal := def("decimal", anyAtomic, validateDecimal, castToDecimal)
	float := def("float", anyAtomic, validateFloat, castToFloat)
	double := def("double", anyAtomic, validateFloat, castToDouble)
	duration := def("duration", anyAtomic, validateDuration, castToDuration)
	dateTime := def("dateTime", anyAtomic, validateDateTime, castToDateTime)
	date := def("date", anyAtomic, validateDate, castToDate)
	time_ := def("time", anyAtomic, validateTime, castToTime)
	gYearMonth := def("gYearMonth", anyAtomic, validateGYearMonth, castToGYearMonth)
	gYear := def("gYear", anyAtomic, validateGYear, castToGYear)
	gMonthDay := def("gMonthDay", anyAtomic, validateGMonthDay, castToGMonthDay)
	gDay := def("gDay", anyAtomic, validateGDay, castToGDay)
	gMonth := def("gMonth", anyAtomic, validateGMonth, castToGMonth)
	hexBinary := def("hexBinary", anyAtomic, validateHexBinary, castToHexBinary)
	base64Binary := def("base64Binary", anyAtomic, validateBase64Binary, castToBase64Binary)
	anyURI := def("anyURI", anyAtomic, func(v any) bool { _, ok := v.(string); return ok }, castToAnyURI)
	qname := def("QName", anyAtomic, validateQName, castToQName)
	untypedAtomic := def("untypedAtomic", anyAtomic, func(any) bool { return true }, castToUntypedAtomic)

	_ = date // referenced below as base for nothing further, kept for symmetry

	integer := def("integer", decimal, validateInteger, castToIntegerRanged("integer", nil, nil))
	nonPositiveInteger := def("nonPositiveInteger", integer, validateInteger, castToIntegerRanged("nonPositiveInteger", nil, big0()))
	negativeInteger := def("negativeInteger", nonPositiveInteger, validateInteger, castToIntegerRanged("negativeInteger", nil, bigN1()))
	long := def("long", integer, validateInteger, castToIntegerRanged("long", ptrI64(-9223372036854775808), ptrI64(9223372036854775807)))
	intT := def("int", long, validateInteger, castToIntegerRanged("int", ptrI64(-2147483648), ptrI64(2147483647)))
	short := def("short", intT, validateInteger, castToIntegerRanged("short", ptrI64(-32768), ptrI64(32767)))
	byteT := def("byte", short, validateInteger, castToIntegerRanged("byte", ptrI64(-128), ptrI64(127)))
	nonNegativeInteger := def("nonNegativeInteger", integer, validateInteger, castToIntegerRanged("nonNegativeInteger", big0(), nil))
	unsignedLong := def("unsignedLong", nonNegativeInteger, validateInteger, castToIntegerRanged("unsignedLong", big0(), nil))
	unsignedInt := def("unsignedInt", unsignedLong, validateInteger, castToIntegerRanged("unsignedInt", big0(), ptrI64(4294967295)))
	unsignedShort := def("unsignedShort", unsignedInt, validateInteger, castToIntegerRanged("unsignedShort", big0(), ptrI64(65535)))
	_ = def("unsignedByte", unsignedShort, validateInteger, castToIntegerRanged("unsignedByte", big0(), ptrI64(255)))
	_ = def("positiveInteger", nonNegativeInteger, validateInteger, castToIntegerRanged("positiveInteger", big1(), nil))
	_ = byteT

	// date derives from dateTime's primitive family per spec.md §3 ("date
	// derived from dateTime"); keep the explicit primitive link.
	date.Primitive = dateTime.Primitive

	_ = str
	_ = boolean
	_ = float
	_ = double
	_ = duration
	_ = time_
	_ = gYearMonth
	_ = gYear
	_ = gMonthDay
	_ = gDay
	_ = gMonth
	_ = hexBinary
	_ = base64Binary
	_ = anyURI
	_ = qname
	_ = untypedAtomic

	return r
}

// IsNumericType reports whether name is one of the numeric primitive or
// derived types.
func IsNumericType(name string) bool {
	switch name {
	case "decimal", "float", "double",
		"integer", "nonPositiveInteger", "negativeInteger", "long", "int", "short", "byte",
		"nonNegativeInteger", "unsignedLong", "unsignedInt", "unsignedShort", "unsignedByte",
		"positiveInteger":
		return true
	default:
		return false
	}
}

// XSType returns the Clark-notation {namespace}localName for a built-in XML
// Schema type name.
func XSType(name string) string {
	return "{" + xsNamespace + "}" + name
}

// IsInstanceOf reports whether value (already an xstypes-cast Go value
// produced by AtomicType.Cast) validates against the named type.
func IsInstanceOf(reg *Registry, value any, typeName string) bool {
	t, ok := reg.Lookup(typeName)
	if !ok {
		return false
	}
	return t.Validate(value)
}

func big0() *int64 { v := int64(0); return &v }
func big1() *int64 { v := int64(1); return &v }
func bigN1() *int64 { v := int64(-1); return &v }
func ptrI64(v int64) *int64 { return &v }
