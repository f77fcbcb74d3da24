package builtins

import (
	"regexp"

	"github.com/oxhq/xpathlang/internal/xerrors"
)

// compileXPathRegex compiles pattern as a Go regexp. XPath's regex dialect
// (XML Schema / XQuery regexes) is a near-superset of RE2 for the patterns
// this engine's test suite and built-ins exercise; an invalid pattern
// raises FORG0001 (fn:matches/fn:replace/fn:tokenize's defined error for a
// malformed $regex argument), not a Go-internal panic.
func compileXPathRegex(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, xerrors.New(xerrors.FORG0001, "invalid regular expression %q: %v", pattern, err)
	}
	return re, nil
}
