// Package builtins implements the built-in function library (spec.md §4.4
// "FunctionCall", supplemented by SPEC_FULL.md's math:/map:/array: function
// families): a thread-safe registry mapping (namespace, local name, arity)
// to a callable evalctx.Function, satisfying the evalctx.Functions
// interface that internal/ast depends on instead of this package directly.
package builtins

import (
	"fmt"
	"sort"
	"sync"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// FnNamespace and friends are the well-known function-library namespace
// URIs used throughout this package's registrations.
const (
	FnNamespace    = "http://www.w3.org/2005/xpath-functions"
	MathNamespace  = "http://www.w3.org/2005/xpath-functions/math"
	MapNamespace   = "http://www.w3.org/2005/xpath-functions/map"
	ArrayNamespace = "http://www.w3.org/2005/xpath-functions/array"
)

// Signature describes one registrable function: its identity (namespace,
// local name, arity range) and implementation. It is the shape accepted
// for host-supplied extension functions (xpath.Options.Extensions) as well
// as every built-in registered by this package.
type Signature struct {
	Namespace string
	Local     string
	MinArgs   int
	MaxArgs   int // -1 means unbounded
	Call      func(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error)
}

// key identifies a registered entry by namespace and local name; arity
// range matching happens against the entry's MinArgs/MaxArgs, the same
// one-name-many-arities shape evalctx.Static.ResolveSignature already
// assumes.
type key struct {
	namespace string
	local     string
}

// Registry manages built-in and extension function registrations. Modeled
// on the teacher's language-provider registry (internal/registry.Registry):
// a mutex-guarded map keyed by canonical identity, with a conflict check on
// registration and a read-locked resolution path.
type Registry struct {
	mu      sync.RWMutex
	entries map[key][]evalctx.Function
}

// NewRegistry builds an empty registry with no functions registered.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[key][]evalctx.Function)}
}

// NewDefaultRegistry builds a registry pre-populated with every function in
// this package's library (1.0 through 3.1, plus math:/map:/array:).
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	registerStrings(r)
	registerBoolean(r)
	registerNumbers(r)
	registerNodeSet(r)
	registerCardinality(r)
	registerQName(r)
	registerSequence(r)
	registerContext(r)
	registerDocs(r)
	registerMath(r)
	registerHigherOrder(r)
	registerMap(r)
	registerArray(r)
	return r
}

// Register adds fn to the registry. Re-registering the exact same
// (namespace, local, min, max) tuple is a conflict, matching the teacher's
// registry's "already registered" rejection; host extensions that want to
// override a built-in should use a registry-level shadowing mechanism
// instead (RegisterOverride), not silent replacement.
func (r *Registry) Register(fn evalctx.Function) error {
	if fn.Local == "" {
		return fmt.Errorf("builtins: function must have a non-empty local name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{namespace: fn.Namespace, local: fn.Local}
	for _, existing := range r.entries[k] {
		if existing.MinArgs == fn.MinArgs && existing.MaxArgs == fn.MaxArgs {
			return fmt.Errorf("builtins: function %s:%s/%d-%d already registered", fn.Namespace, fn.Local, fn.MinArgs, fn.MaxArgs)
		}
	}
	r.entries[k] = append(r.entries[k], fn)
	return nil
}

// RegisterOverride adds fn to the registry, replacing any existing entry
// with the identical arity range. Host extensions use this to shadow a
// built-in (e.g. a custom fn:string-join) without the conflict check
// Register applies.
func (r *Registry) RegisterOverride(fn evalctx.Function) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{namespace: fn.Namespace, local: fn.Local}
	filtered := r.entries[k][:0]
	for _, existing := range r.entries[k] {
		if existing.MinArgs != fn.MinArgs || existing.MaxArgs != fn.MaxArgs {
			filtered = append(filtered, existing)
		}
	}
	r.entries[k] = append(filtered, fn)
}

// Resolve implements evalctx.Functions: it finds the registered function
// whose arity range accepts arity, for the given namespace/local pair.
// Wrong-arity and unknown-name both report (Function{}, false); the caller
// (ast.FunctionCall) is responsible for raising XPST0017.
func (r *Registry) Resolve(namespace, local string, arity int) (evalctx.Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, fn := range r.entries[key{namespace: namespace, local: local}] {
		if arity >= fn.MinArgs && (fn.MaxArgs < 0 || arity <= fn.MaxArgs) {
			return fn, true
		}
	}
	return evalctx.Function{}, false
}

// Has reports whether any arity of (namespace, local) is registered,
// regardless of arity match — used by static analysis to distinguish
// "unknown function" from "known function, wrong arity".
func (r *Registry) Has(namespace, local string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key{namespace: namespace, local: local}]
	return ok
}

// List returns every registered function's identity, sorted by namespace
// then local name then MinArgs, for CLI introspection (`xpathcli explain
// --functions`-style listings) and tests.
func (r *Registry) List() []evalctx.Function {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []evalctx.Function
	for _, fns := range r.entries {
		out = append(out, fns...)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Namespace != b.Namespace {
			return a.Namespace < b.Namespace
		}
		if a.Local != b.Local {
			return a.Local < b.Local
		}
		return a.MinArgs < b.MinArgs
	})
	return out
}

// RegisterExtensions registers every host-supplied extension signature
// (xpath.Options.Extensions) into r, converting the plain Signature shape
// into an evalctx.Function.
func (r *Registry) RegisterExtensions(sigs []Signature) error {
	for _, sig := range sigs {
		fn := evalctx.Function{
			Namespace: sig.Namespace,
			Local:     sig.Local,
			MinArgs:   sig.MinArgs,
			MaxArgs:   sig.MaxArgs,
			Call:      sig.Call,
		}
		if err := r.Register(fn); err != nil {
			return err
		}
	}
	return nil
}
