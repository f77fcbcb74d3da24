// Package evalctx implements the dynamic and static evaluation contexts
// (spec.md §4.6, "Dynamic context" / "Static context"): the bag of state an
// AST node consults to evaluate, and the bag of declarations the parser and
// static analyzer consult before any evaluation happens.
package evalctx

import (
	"sync"
	"time"

	"github.com/oxhq/xpathlang/internal/xhost"
	"github.com/oxhq/xpathlang/internal/xstypes"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// Functions is the interface through which function calls are resolved.
// internal/builtins implements it; internal/ast only depends on this
// interface, never on internal/builtins, to avoid an import cycle (a
// built-in like fn:filter needs to re-enter evaluation of an inline
// function, and the dynamic context is how it gets there).
type Functions interface {
	// Resolve looks up a function by namespace, local name, and arity.
	// ok is false when no such function is registered (XPST0017).
	Resolve(namespace, local string, arity int) (Function, bool)
}

// Function is a callable built-in or extension function.
type Function struct {
	Namespace string
	Local     string
	MinArgs   int
	MaxArgs   int // -1 means unbounded
	Call      func(ctx *Dynamic, args []xvalue.Value) (xvalue.Value, error)
}

// Dynamic is the dynamic evaluation context threaded through Evaluate
// calls. Per spec.md's lifecycle note, contexts propagate copy-on-adjust:
// WithContextItem/WithVariable return a derived copy sharing most fields.
type Dynamic struct {
	ContextNode xhost.Node
	ContextItem xvalue.Value // the full context item, node or atomic
	Position    int
	Size        int

	Variables  map[xstypes.QName]xvalue.Value
	Functions  Functions
	Namespaces map[string]string // prefix -> URI, in scope at the static point of use

	CurrentDateTime time.Time
	BaseURI         string
	DefaultCollation string

	AvailableDocuments   map[string]xhost.Node
	AvailableCollections map[string][]xhost.Node
	DefaultCollection    string

	Registry    *xstypes.Registry
	Annotations *TypeAnnotations
}

// WithContextItem returns a derived context positioned at item, the i-th of
// size, sharing every other field (copy-on-adjust, spec.md §4.6).
func (d *Dynamic) WithContextItem(item xvalue.Value, position, size int) *Dynamic {
	cp := *d
	cp.ContextItem = item
	cp.Position = position
	cp.Size = size
	if nv, ok := item.(xvalue.NodeValue); ok {
		cp.ContextNode = nv.Node
	} else {
		cp.ContextNode = nil
	}
	return &cp
}

// WithVariable returns a derived context with name bound to value, shadowing
// any existing binding (used for let/for/quantified-expression scoping).
func (d *Dynamic) WithVariable(name xstypes.QName, value xvalue.Value) *Dynamic {
	cp := *d
	cp.Variables = make(map[xstypes.QName]xvalue.Value, len(d.Variables)+1)
	for k, v := range d.Variables {
		cp.Variables[k] = v
	}
	cp.Variables[name] = value
	return &cp
}

// TypeAnnotations is the weak-map-style node-type annotation table from
// spec.md §4.6: a side table keyed by node identity rather than a field
// stored on the node itself, since xhost.Node is an externally-owned
// interface the core cannot add fields to.
type TypeAnnotations struct {
	mu    sync.RWMutex
	types map[xhost.Node]*xstypes.AtomicType
}

// NewTypeAnnotations builds an empty annotation table.
func NewTypeAnnotations() *TypeAnnotations {
	return &TypeAnnotations{types: make(map[xhost.Node]*xstypes.AtomicType)}
}

// Annotate records node's dynamic type.
func (a *TypeAnnotations) Annotate(node xhost.Node, t *xstypes.AtomicType) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.types[node] = t
}

// TypeOf returns node's recorded type, or (nil, false) if unannotated.
func (a *TypeAnnotations) TypeOf(node xhost.Node) (*xstypes.AtomicType, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	t, ok := a.types[node]
	return t, ok
}

// ClearAnnotations is the host's release hook: once a node leaves scope (its
// document is discarded), the host calls this so the annotation table does
// not hold it forever, standing in for a real weak map.
func (a *TypeAnnotations) ClearAnnotations(node xhost.Node) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.types, node)
}
