package ast

import "github.com/oxhq/xpathlang/internal/xhost"

// Axis identifies one of the thirteen XPath axes (spec.md §3, "Step: axis
// ∈ 13 axes").
type Axis string

const (
	AxisChild              Axis = "child"
	AxisDescendant         Axis = "descendant"
	AxisDescendantOrSelf   Axis = "descendant-or-self"
	AxisParent             Axis = "parent"
	AxisAncestor           Axis = "ancestor"
	AxisAncestorOrSelf     Axis = "ancestor-or-self"
	AxisFollowingSibling   Axis = "following-sibling"
	AxisPrecedingSibling   Axis = "preceding-sibling"
	AxisFollowing          Axis = "following"
	AxisPreceding          Axis = "preceding"
	AxisAttribute          Axis = "attribute"
	AxisNamespace          Axis = "namespace"
	AxisSelf               Axis = "self"
)

// IsReverse reports whether axis enumerates nodes in reverse document
// order, per the XPath axis definitions (ancestor, ancestor-or-self,
// preceding, preceding-sibling).
func (a Axis) IsReverse() bool {
	switch a {
	case AxisAncestor, AxisAncestorOrSelf, AxisPreceding, AxisPrecedingSibling:
		return true
	default:
		return false
	}
}

// axisNodes enumerates the nodes reachable from node along axis, in the
// axis's natural order (forward axes: document order; reverse axes:
// reverse document order).
func axisNodes(node xhost.Node, axis Axis) []xhost.Node {
	switch axis {
	case AxisSelf:
		return []xhost.Node{node}
	case AxisChild:
		return node.Children()
	case AxisAttribute:
		return node.Attributes()
	case AxisNamespace:
		return namespaceAxisNodes(node)
	case AxisParent:
		if p := node.Parent(); p != nil {
			return []xhost.Node{p}
		}
		return nil
	case AxisDescendant:
		var out []xhost.Node
		collectDescendants(node, &out)
		return out
	case AxisDescendantOrSelf:
		out := []xhost.Node{node}
		collectDescendants(node, &out)
		return out
	case AxisAncestor:
		var out []xhost.Node
		for p := node.Parent(); p != nil; p = p.Parent() {
			out = append(out, p)
		}
		return out
	case AxisAncestorOrSelf:
		out := []xhost.Node{node}
		for p := node.Parent(); p != nil; p = p.Parent() {
			out = append(out, p)
		}
		return out
	case AxisFollowingSibling:
		var out []xhost.Node
		for s := node.NextSibling(); s != nil; s = s.NextSibling() {
			out = append(out, s)
		}
		return out
	case AxisPrecedingSibling:
		var out []xhost.Node
		for s := node.PreviousSibling(); s != nil; s = s.PreviousSibling() {
			out = append(out, s)
		}
		return out
	case AxisFollowing:
		return followingNodes(node)
	case AxisPreceding:
		return precedingNodes(node)
	default:
		return nil
	}
}

func collectDescendants(node xhost.Node, out *[]xhost.Node) {
	for _, c := range node.Children() {
		*out = append(*out, c)
		collectDescendants(c, out)
	}
}

// followingNodes returns every node after node in document order, excluding
// its own descendants and ancestors, per the XPath `following::` axis.
func followingNodes(node xhost.Node) []xhost.Node {
	var out []xhost.Node
	ancestorsAndSelf := map[xhost.Node]bool{node: true}
	for p := node.Parent(); p != nil; p = p.Parent() {
		ancestorsAndSelf[p] = true
	}
	root := node
	for root.Parent() != nil {
		root = root.Parent()
	}
	var walk func(n xhost.Node, passed *bool)
	walk = func(n xhost.Node, passed *bool) {
		if n == node {
			*passed = true
			return
		}
		if *passed && !ancestorsAndSelf[n] {
			out = append(out, n)
		}
		for _, c := range n.Children() {
			walk(c, passed)
		}
	}
	passed := false
	walk(root, &passed)
	return out
}

// precedingNodes returns every node before node in document order,
// excluding ancestors, in reverse document order.
func precedingNodes(node xhost.Node) []xhost.Node {
	ancestorsAndSelf := map[xhost.Node]bool{node: true}
	for p := node.Parent(); p != nil; p = p.Parent() {
		ancestorsAndSelf[p] = true
	}
	root := node
	for root.Parent() != nil {
		root = root.Parent()
	}
	var all []xhost.Node
	var walk func(n xhost.Node)
	walk = func(n xhost.Node) {
		all = append(all, n)
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(root)

	var out []xhost.Node
	for _, n := range all {
		if n == node {
			break
		}
		if !ancestorsAndSelf[n] {
			out = append(out, n)
		}
	}
	// reverse into document order descending
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}

// namespaceAxisNodes synthesizes namespace nodes (nodeType=13) for every
// prefix bound in node's in-scope namespaces, honoring shadowing by nearer
// declarations and always including `xml`. This module's minimal xhost.Node
// implementation does not carry a dedicated namespace-declaration accessor,
// so hosts that want `namespace::` to reflect anything beyond `xml` must
// supply it through their own Node.Attributes()-based xmlns convention;
// this walks attributes named with an "xmlns" local-name prefix.
func namespaceAxisNodes(node xhost.Node) []xhost.Node {
	seen := map[string]string{"xml": "http://www.w3.org/XML/1998/namespace"}
	for cur := node; cur != nil; cur = cur.Parent() {
		for _, attr := range cur.Attributes() {
			prefix, uri, ok := xmlnsDeclaration(attr)
			if !ok {
				continue
			}
			if _, bound := seen[prefix]; !bound {
				seen[prefix] = uri
			}
		}
	}
	out := make([]xhost.Node, 0, len(seen))
	for prefix, uri := range seen {
		out = append(out, &namespaceNode{prefix: prefix, uri: uri, parent: node})
	}
	return out
}

func xmlnsDeclaration(attr xhost.Node) (prefix, uri string, ok bool) {
	name := attr.NodeName()
	const xmlns = "xmlns"
	switch {
	case name == xmlns:
		return "", attr.TextContent(), true
	case len(name) > len(xmlns)+1 && name[:len(xmlns)+1] == xmlns+":":
		return name[len(xmlns)+1:], attr.TextContent(), true
	default:
		return "", "", false
	}
}

// namespaceNode implements xhost.NamespaceNode for synthesized namespace
// axis results.
type namespaceNode struct {
	prefix string
	uri    string
	parent xhost.Node
}

func (n *namespaceNode) NodeType() int          { return xhost.TypeNamespace }
func (n *namespaceNode) NodeName() string       { return n.prefix }
func (n *namespaceNode) LocalName() string      { return n.prefix }
func (n *namespaceNode) NamespaceURI() string   { return n.uri }
func (n *namespaceNode) TextContent() string    { return n.uri }
func (n *namespaceNode) Parent() xhost.Node     { return n.parent }
func (n *namespaceNode) Children() []xhost.Node { return nil }
func (n *namespaceNode) Attributes() []xhost.Node { return nil }
func (n *namespaceNode) PreviousSibling() xhost.Node { return nil }
func (n *namespaceNode) NextSibling() xhost.Node     { return nil }
func (n *namespaceNode) DocumentOrderKey() int64     { return 0 }
func (n *namespaceNode) Prefix() string              { return n.prefix }
