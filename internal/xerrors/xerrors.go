// Package xerrors defines the stable XPath error identifiers surfaced at the
// API boundary. It mirrors the teacher's internal/core.CLIError shape: a
// machine-readable Code plus a human-readable Message, with optional
// structured Context for diagnostics.
package xerrors

import "fmt"

// Code is one of the stable XPath/XQuery/XSLT error identifiers.
type Code string

// Static errors (raised during lexing, parsing, static analysis).
const (
	XPST0003 Code = "XPST0003" // syntax error
	XPST0010 Code = "XPST0010" // unsupported axis
	XPST0017 Code = "XPST0017" // unresolved function or wrong arity
)

// Type errors, raised statically or dynamically depending on context.
const (
	XPTY0004 Code = "XPTY0004" // type mismatch
)

// Dynamic errors.
const (
	XPDY0002 Code = "XPDY0002" // missing context item / absurd lookup
	FORG0001 Code = "FORG0001" // invalid cast / lexical value
	FORG0003 Code = "FORG0003" // zero-or-one: cardinality > 1
	FORG0004 Code = "FORG0004" // one-or-more: empty sequence
	FORG0005 Code = "FORG0005" // exactly-one: cardinality other than 1
	FORG0006 Code = "FORG0006" // effective boolean value undefined
	FOAY0001 Code = "FOAY0001" // array index out of bounds
	FODC0005 Code = "FODC0005" // invalid URI argument to fn:doc
)

// Streaming errors (XSLT 3.0 §18 streamability).
const (
	XTSE3430 Code = "XTSE3430" // expression is not streamable, in strict mode
)

// Error is the structured error type returned by every package in this
// module. It carries a stable Code, a human-readable Message (including
// position when known), and optional Context for the offending value or
// function name.
type Error struct {
	Code    Code
	Message string
	Context map[string]any
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds an Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithContext attaches a key/value pair to the error and returns it for
// chaining, e.g. xerrors.New(...).WithContext("function", name).
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// Is reports whether err carries the given code, so callers can do
// errors.Is(err, xerrors.Code(xerrors.XPST0003)) style checks via CodeErr.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// CodeOf extracts the Code from err if it is (or wraps) an *Error.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if err == nil {
		return "", false
	}
	if x, ok := err.(*Error); ok {
		return x.Code, true
	}
	_ = e
	return "", false
}
