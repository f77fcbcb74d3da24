package parser

import (
	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/lexer"
	"github.com/oxhq/xpathlang/internal/warn"
)

// Options configures a Parser (spec.md §4.4, "Parser options").
type Options struct {
	// Namespaces maps prefix to namespace URI, in scope at parse time, used
	// to resolve QName prefixes in node tests, function names, and type
	// names. A nil map means no prefixes are bound except the implicit
	// ones (xml, xs, fn, map, array).
	Namespaces map[string]string

	// ExtensionNames lists host-registered extension function local names,
	// passed through to the lexer (it does not change scanning, only
	// documents intent — see lexer.Options).
	ExtensionNames []string

	// Warnings receives non-fatal diagnostics: the parser emits the
	// namespace-axis deprecation (XPWD0001) and no 1.0-compatibility-mode
	// warning. Defaults to a no-op collector when nil.
	Warnings warn.Collector

	// Static is stored on the Parser; the parser does not check
	// function-call arity against its signatures.
	Static *evalctx.Static

	// EnableNamespaceAxis permits the deprecated namespace:: axis; off by
	// default matches most hosts' posture (spec.md §4.2, XPWD0001).
	EnableNamespaceAxis bool
}

func (o Options) namespaces() map[string]string {
	ns := map[string]string{
		"xml": "http://www.w3.org/XML/1998/namespace",
		"xs":  "http://www.w3.org/2001/XMLSchema",
		"fn":  "http://www.w3.org/2005/xpath-functions",
		"map": "http://www.w3.org/2005/xpath-functions/map",
		"array": "http://www.w3.org/2005/xpath-functions/array",
	}
	for k, v := range o.Namespaces {
		ns[k] = v
	}
	return ns
}

func (o Options) warnings() warn.Collector {
	if o.Warnings != nil {
		return o.Warnings
	}
	return warn.NewNoop()
}

func (o Options) lexerOptions() lexer.Options {
	return lexer.Options{ExtensionNames: o.ExtensionNames}
}
