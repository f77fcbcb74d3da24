package parser

import "github.com/oxhq/xpathlang/internal/lexer"

// Features is the composition-over-inheritance switchboard (DESIGN NOTES
// §9): rather than four parallel grammars, the parser has one grammar
// whose productions consult these flags, and NewV1/NewV2/NewV3/NewV31 just
// populate different flag sets (spec.md §4.4, "one parser implementation,
// version-gated by feature flags").
type Features struct {
	AllowForLetQuantified bool // for/let/some/every (2.0+)
	AllowRange            bool // `to` (2.0+)
	AllowCastFamily       bool // cast/castable/treat/instance of (2.0+)
	AllowStringConcat     bool // `||` (3.0+)
	AllowSimpleMap        bool // `!` (3.0+)
	AllowArrow            bool // `=>` (3.0+)
	AllowStringTemplate   bool // `` `...` `` (3.0+)
	AllowInlineFunction   bool // `function(...) { ... }` (3.0+)
	AllowNamedFunctionRef bool // `name#arity` (3.0+)
	AllowSwitch           bool // `switch` (3.0+)
	AllowMapConstructor   bool // `map{...}` (3.1+)
	AllowArrayConstructor bool // `array{...}` / `[...]` (3.1+)
	AllowLookup           bool // `?` (3.1+)

	XPath10CompatibilityMode bool
	EnableNamespaceAxis      bool
}

// featuresForVersion returns the cumulative feature set for version: each
// generation is a strict superset of the previous one's expression forms
// (spec.md §1, "versions are additive for expression syntax").
func featuresForVersion(v lexer.Version) Features {
	f := Features{EnableNamespaceAxis: true}
	if v.AtLeast(lexer.V2_0) {
		f.AllowForLetQuantified = true
		f.AllowRange = true
		f.AllowCastFamily = true
	}
	if v.AtLeast(lexer.V3_0) {
		f.AllowStringConcat = true
		f.AllowSimpleMap = true
		f.AllowArrow = true
		f.AllowStringTemplate = true
		f.AllowInlineFunction = true
		f.AllowNamedFunctionRef = true
		f.AllowSwitch = true
	}
	if v.AtLeast(lexer.V3_1) {
		f.AllowMapConstructor = true
		f.AllowArrayConstructor = true
		f.AllowLookup = true
	}
	return f
}
