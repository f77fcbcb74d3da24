package evalctx

import (
	"fmt"

	"github.com/oxhq/xpathlang/internal/xstypes"
)

// FunctionSignature describes a known function for static resolution and
// validation, independent of its runtime implementation.
type FunctionSignature struct {
	Namespace string
	Local     string
	MinArgs   int
	MaxArgs   int // -1 means unbounded
}

// sigKey identifies a signature by namespace/local-name/arity-agnostic lookup;
// arity is checked against Min/MaxArgs separately once the candidate is
// found, matching the way one function name commonly covers several
// arities (e.g. substring/2 and substring/3).
type sigKey struct {
	namespace string
	local     string
}

// SchemaImport is the structured form accepted by ImportSchema, or produced
// by parsing a minimal XSD text.
type SchemaImport struct {
	TargetNamespace string
	Elements        map[string]string // element local name -> type name
	Attributes      map[string]string // attribute local name -> type name
}

// Static is the static context consulted by the parser and by static
// analysis (spec.md §4.6, "Static context"): declarations known before any
// value flows, as opposed to Dynamic's runtime state.
type Static struct {
	DefaultFunctionNamespace string
	DefaultTypeNamespace     string
	Collations               map[string]bool
	DefaultCollation         string

	VariableTypes   map[xstypes.QName]string // declared static type name, if any
	ContextItemType string

	SchemaTypes           map[string]*xstypes.AtomicType
	ElementDeclarations   map[string]string // element local name -> type name
	AttributeDeclarations map[string]string // attribute local name -> type name

	signatures map[sigKey][]FunctionSignature
}

// NewStatic builds a Static context with the XPath function namespace and
// the Unicode codepoint collation as defaults.
func NewStatic() *Static {
	return &Static{
		DefaultFunctionNamespace: "http://www.w3.org/2005/xpath-functions",
		DefaultTypeNamespace:     "http://www.w3.org/2001/XMLSchema",
		Collations:               map[string]bool{"http://www.w3.org/2005/xpath-functions/collation/codepoint": true},
		DefaultCollation:         "http://www.w3.org/2005/xpath-functions/collation/codepoint",
		VariableTypes:            make(map[xstypes.QName]string),
		SchemaTypes:              make(map[string]*xstypes.AtomicType),
		ElementDeclarations:      make(map[string]string),
		AttributeDeclarations:    make(map[string]string),
		signatures:               make(map[sigKey][]FunctionSignature),
	}
}

// RegisterFunctionSignature records sig for static resolution.
func (s *Static) RegisterFunctionSignature(sig FunctionSignature) {
	k := sigKey{namespace: sig.Namespace, local: sig.Local}
	s.signatures[k] = append(s.signatures[k], sig)
}

// RegisterVariableType records the static type name of a variable name.
func (s *Static) RegisterVariableType(name xstypes.QName, typeName string) {
	s.VariableTypes[name] = typeName
}

// IsReservedFunctionName reports whether namespace/local names a function
// reserved by the language itself (a subset used by the lexer/parser to
// gate keyword-like constructs; the full list lives with the lexer, this is
// the static context's own bookkeeping of registered names).
func (s *Static) IsReservedFunctionName(namespace, local string) bool {
	k := sigKey{namespace: namespace, local: local}
	_, ok := s.signatures[k]
	return ok
}

// ResolveSignature finds a registered signature accepting arity argument
// count for (namespace, local), or (nil, false).
func (s *Static) ResolveSignature(namespace, local string, arity int) (*FunctionSignature, bool) {
	k := sigKey{namespace: namespace, local: local}
	for i := range s.signatures[k] {
		sig := s.signatures[k][i]
		if arity >= sig.MinArgs && (sig.MaxArgs < 0 || arity <= sig.MaxArgs) {
			return &sig, true
		}
	}
	return nil, false
}

// ValidateStaticContext returns the list of structural problems found in s:
// a maxArgs below minArgs for any registered signature, or a default
// collation absent from the known collations set.
func (s *Static) ValidateStaticContext() []error {
	var errs []error
	for k, sigs := range s.signatures {
		for _, sig := range sigs {
			if sig.MaxArgs >= 0 && sig.MaxArgs < sig.MinArgs {
				errs = append(errs, fmt.Errorf("function %s:%s declares maxArgs %d < minArgs %d", k.namespace, k.local, sig.MaxArgs, sig.MinArgs))
			}
		}
	}
	if s.DefaultCollation != "" && !s.Collations[s.DefaultCollation] {
		errs = append(errs, fmt.Errorf("default collation %q is not among the declared collations", s.DefaultCollation))
	}
	return errs
}

// ApplySchemaToStaticContext populates DefaultTypeNamespace,
// ElementDeclarations, and AttributeDeclarations from imp.
func (s *Static) ApplySchemaToStaticContext(imp SchemaImport) {
	if imp.TargetNamespace != "" {
		s.DefaultTypeNamespace = imp.TargetNamespace
	}
	for name, typ := range imp.Elements {
		s.ElementDeclarations[name] = typ
	}
	for name, typ := range imp.Attributes {
		s.AttributeDeclarations[name] = typ
	}
}
