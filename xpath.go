// Package xpath is the public entry point for this module: it wires the
// lexer, versioned parser, static/dynamic evaluation contexts, built-in
// function library, and streamability analyzer behind the two functions a
// caller actually needs, Evaluate and Parse (spec.md §6, "External
// interfaces").
package xpath

import (
	"sync"
	"time"

	"github.com/oxhq/xpathlang/internal/ast"
	"github.com/oxhq/xpathlang/internal/builtins"
	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/lexer"
	"github.com/oxhq/xpathlang/internal/parser"
	"github.com/oxhq/xpathlang/internal/warn"
	"github.com/oxhq/xpathlang/internal/xhost"
	"github.com/oxhq/xpathlang/internal/xstypes"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// Version selects which grammar and keyword set the parser applies
// (spec.md §4.4). It re-exports lexer.Version so callers never need to
// import internal/lexer directly.
type Version = lexer.Version

const (
	V1_0 = lexer.V1_0
	V2_0 = lexer.V2_0
	V3_0 = lexer.V3_0
	V3_1 = lexer.V3_1
)

// Options configures both parsing and evaluation (spec.md §6). Every field
// is optional except Version, whose zero value is V1_0 (Version's own
// zero value); callers wanting the full language should set
// Options.Version explicitly, usually to V3_1.
type Options struct {
	Version     Version
	Namespaces  map[string]string
	Variables   map[xstypes.QName]xvalue.Value
	Documents   map[string]xhost.Node
	Collections map[string][]xhost.Node

	// DefaultCollection names the entry of Collections returned by the
	// zero-argument fn:collection() call.
	DefaultCollection string
	// BaseURI seeds the dynamic context's base URI, consulted by
	// fn:resolve-uri and fn:doc's relative resolution.
	BaseURI string
	// DefaultCollation names the collation used for untagged string
	// comparisons; empty defaults to the Unicode codepoint collation.
	DefaultCollation string
	// CurrentDateTime pins fn:current-dateTime() and friends; the zero
	// value defaults to time.Now() at Evaluate time.
	CurrentDateTime time.Time

	// Warnings receives non-fatal diagnostics emitted during parsing: the
	// namespace-axis deprecation (XPWD0001); no 1.0-compatibility-mode
	// warning is emitted. A nil value is replaced with a no-op collector.
	Warnings warn.Collector

	// Extensions registers additional host-supplied functions alongside
	// the built-in library, in the same Signature shape builtins.Registry
	// itself is populated from.
	Extensions []builtins.Signature

	// EnableNamespaceAxis permits the deprecated namespace:: axis
	// (XPWD0001); off by default.
	EnableNamespaceAxis bool
}

// defaultRegistry is built once and shared (read-only after construction)
// across every Evaluate/Parse call that registers no Extensions, avoiding
// re-registering several hundred built-ins on every call.
var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *builtins.Registry
)

func sharedFunctionRegistry() *builtins.Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = builtins.NewDefaultRegistry()
	})
	return defaultRegistry
}

// functionRegistry returns the shared built-in registry, or a fresh copy
// layered with opts.Extensions when the caller supplied any (Extensions are
// rare enough that per-call registration cost is acceptable, and it keeps
// the shared registry itself immutable).
func functionRegistry(opts Options) (evalctx.Functions, error) {
	if len(opts.Extensions) == 0 {
		return sharedFunctionRegistry(), nil
	}
	r := builtins.NewDefaultRegistry()
	if err := r.RegisterExtensions(opts.Extensions); err != nil {
		return nil, err
	}
	return r, nil
}

func staticContext(opts Options, registry evalctx.Functions) *evalctx.Static {
	static := evalctx.NewStatic()
	if r, ok := registry.(*builtins.Registry); ok {
		for _, fn := range r.List() {
			static.RegisterFunctionSignature(evalctx.FunctionSignature{
				Namespace: fn.Namespace,
				Local:     fn.Local,
				MinArgs:   fn.MinArgs,
				MaxArgs:   fn.MaxArgs,
			})
		}
	}
	return static
}

// defaultNamespaces merges the implicit prefix bindings every XPath context
// carries (xml, xs, fn, map, array) with any host-supplied overrides,
// mirroring parser.Options.namespaces() so Parse and Evaluate agree on
// prefix resolution.
func defaultNamespaces(overrides map[string]string) map[string]string {
	ns := map[string]string{
		"xml":   "http://www.w3.org/XML/1998/namespace",
		"xs":    "http://www.w3.org/2001/XMLSchema",
		"fn":    "http://www.w3.org/2005/xpath-functions",
		"map":   "http://www.w3.org/2005/xpath-functions/map",
		"array": "http://www.w3.org/2005/xpath-functions/array",
	}
	for k, v := range overrides {
		ns[k] = v
	}
	return ns
}

func parserOptions(opts Options, static *evalctx.Static) parser.Options {
	warnings := opts.Warnings
	if warnings == nil {
		warnings = warn.NewNoop()
	}
	return parser.Options{
		Namespaces:          opts.Namespaces,
		Warnings:            warnings,
		Static:              static,
		EnableNamespaceAxis: opts.EnableNamespaceAxis,
	}
}

// Parse lexes and parses expression for opts.Version, returning its AST
// root without evaluating it.
func Parse(expression string, opts Options) (ast.Node, error) {
	registry, err := functionRegistry(opts)
	if err != nil {
		return nil, err
	}
	static := staticContext(opts, registry)
	p := parser.New(opts.Version, parserOptions(opts, static))
	return p.Parse(expression)
}

// Evaluate parses expression and evaluates it against context (spec.md §6).
// A nil context is valid for expressions that never dereference the
// context item (e.g. pure literals, `1 + 2`); anything that does dereference
// it (a relative path, `.`) fails dynamically with XPDY0002 from within the
// AST node itself, the same way every other dynamic error surfaces.
func Evaluate(expression string, context xhost.Node, opts Options) (xvalue.Value, error) {
	node, err := Parse(expression, opts)
	if err != nil {
		return nil, err
	}

	registry, err := functionRegistry(opts)
	if err != nil {
		return nil, err
	}

	now := opts.CurrentDateTime
	if now.IsZero() {
		now = time.Now()
	}

	var contextItem xvalue.Value
	if context != nil {
		contextItem = xvalue.NodeValue{Node: context}
	}

	collation := opts.DefaultCollation
	if collation == "" {
		collation = "http://www.w3.org/2005/xpath-functions/collation/codepoint"
	}

	dyn := &evalctx.Dynamic{
		ContextNode:          context,
		ContextItem:          contextItem,
		Position:             1,
		Size:                 1,
		Variables:            opts.Variables,
		Functions:            registry,
		Namespaces:           defaultNamespaces(opts.Namespaces),
		CurrentDateTime:      now,
		BaseURI:              opts.BaseURI,
		DefaultCollation:     collation,
		AvailableDocuments:   opts.Documents,
		AvailableCollections: opts.Collections,
		DefaultCollection:    opts.DefaultCollection,
		Registry:             xstypes.Default(),
		Annotations:          evalctx.NewTypeAnnotations(),
	}
	if dyn.Variables == nil {
		dyn.Variables = make(map[xstypes.QName]xvalue.Value)
	}

	return node.Evaluate(dyn)
}
