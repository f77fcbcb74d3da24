package ast

import "github.com/oxhq/xpathlang/internal/xhost"

// TestKind distinguishes the node-test forms (spec.md §3, "NodeTest").
type TestKind int

const (
	TestWildcard  TestKind = iota // *
	TestName                      // prefix:local, or *:local, or local:*
	TestElement                   // element(name?, type?)
	TestAttribute                 // attribute(name?, type?)
	TestText                      // text()
	TestNodeKind                  // node()
	TestComment                   // comment()
	TestPI                        // processing-instruction(literal?)
	TestDocument                  // document-node(elementTest?)
)

// NodeTest filters candidate nodes during step evaluation.
type NodeTest struct {
	Kind TestKind

	// For TestName: Namespace/Local identify the required name; either may
	// be the wildcard marker "*" (WildcardNamespace / WildcardLocal).
	Namespace         string
	Local             string
	WildcardNamespace bool
	WildcardLocal     bool

	// For TestPI: optional literal target name; empty means unconstrained.
	PITarget string

	// For TestElement/TestAttribute: optional name constraint, reusing
	// Namespace/Local/Wildcard* above; TypeName is advisory only (this
	// engine performs no schema validation against it).
	TypeName string
}

// Matches reports whether candidate satisfies the test, given the axis
// principal node type (attribute:: and namespace:: steps test against
// attribute/namespace nodes by default with a bare `*`/name test; every
// other axis tests against element/text/etc. nodes).
func (t NodeTest) Matches(candidate xhost.Node, axis Axis) bool {
	switch t.Kind {
	case TestWildcard:
		return matchesPrincipalType(candidate, axis)
	case TestName:
		if !matchesPrincipalType(candidate, axis) {
			return false
		}
		if !t.WildcardLocal && candidate.LocalName() != t.Local {
			return false
		}
		if !t.WildcardNamespace && candidate.NamespaceURI() != t.Namespace {
			return false
		}
		return true
	case TestElement:
		if candidate.NodeType() != xhost.TypeElement {
			return false
		}
		return t.Local == "" || t.WildcardLocal || candidate.LocalName() == t.Local
	case TestAttribute:
		if candidate.NodeType() != xhost.TypeAttribute {
			return false
		}
		return t.Local == "" || t.WildcardLocal || candidate.LocalName() == t.Local
	case TestText:
		return candidate.NodeType() == xhost.TypeText
	case TestComment:
		return candidate.NodeType() == xhost.TypeComment
	case TestPI:
		if candidate.NodeType() != xhost.TypeProcessingInstruction {
			return false
		}
		return t.PITarget == "" || candidate.NodeName() == t.PITarget
	case TestDocument:
		return candidate.NodeType() == xhost.TypeDocument
	case TestNodeKind:
		return true
	default:
		return false
	}
}

// matchesPrincipalType reports whether candidate is of the axis's
// principal node kind: attribute for attribute::, namespace for
// namespace::, element otherwise (spec.md's wildcard/name tests implicitly
// restrict to the axis's principal node kind).
func matchesPrincipalType(candidate xhost.Node, axis Axis) bool {
	switch axis {
	case AxisAttribute:
		return candidate.NodeType() == xhost.TypeAttribute
	case AxisNamespace:
		return candidate.NodeType() == xhost.TypeNamespace
	default:
		return candidate.NodeType() == xhost.TypeElement
	}
}

func (t NodeTest) String() string {
	switch t.Kind {
	case TestWildcard:
		return "*"
	case TestName:
		ns := t.Namespace
		if t.WildcardNamespace {
			ns = "*"
		}
		local := t.Local
		if t.WildcardLocal {
			local = "*"
		}
		if ns == "" {
			return local
		}
		return ns + ":" + local
	case TestElement:
		if t.Local == "" {
			return "element()"
		}
		return "element(" + t.Local + ")"
	case TestAttribute:
		if t.Local == "" {
			return "attribute()"
		}
		return "attribute(" + t.Local + ")"
	case TestText:
		return "text()"
	case TestNodeKind:
		return "node()"
	case TestComment:
		return "comment()"
	case TestPI:
		if t.PITarget == "" {
			return "processing-instruction()"
		}
		return "processing-instruction(" + t.PITarget + ")"
	case TestDocument:
		return "document-node()"
	default:
		return "?"
	}
}
