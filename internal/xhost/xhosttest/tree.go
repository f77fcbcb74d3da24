// Package xhosttest provides a minimal in-memory xhost.Node implementation
// used by this module's own test suite and by the CLI demo. It is not part
// of the public API — real hosts supply their own Node implementation over
// their existing document tree.
package xhosttest

import "github.com/oxhq/xpathlang/internal/xhost"

// Elem is a simple in-memory element/document/text node.
type Elem struct {
	Type      int
	Name      string
	Local     string
	NS        string
	Text      string
	Parent_   *Elem
	Kids      []*Elem
	Attrs     []*Elem
	orderKey  int64
}

var nextOrderKey int64

// NewDocument builds a document node wrapping root as its sole child.
func NewDocument(root *Elem) *Elem {
	doc := &Elem{Type: xhost.TypeDocument, Name: "#document"}
	doc.AppendChild(root)
	return doc
}

// NewElement creates an unattached element node.
func NewElement(local, ns string) *Elem {
	nextOrderKey++
	return &Elem{Type: xhost.TypeElement, Name: local, Local: local, NS: ns, orderKey: nextOrderKey}
}

// NewText creates a text node with the given content.
func NewText(s string) *Elem {
	nextOrderKey++
	return &Elem{Type: xhost.TypeText, Text: s, orderKey: nextOrderKey}
}

// NewAttr creates an attribute node.
func NewAttr(local, ns, value string) *Elem {
	nextOrderKey++
	return &Elem{Type: xhost.TypeAttribute, Name: local, Local: local, NS: ns, Text: value, orderKey: nextOrderKey}
}

// AppendChild attaches child under e, setting its parent link.
func (e *Elem) AppendChild(child *Elem) *Elem {
	child.Parent_ = e
	e.Kids = append(e.Kids, child)
	return e
}

// SetAttr attaches an attribute node under e.
func (e *Elem) SetAttr(attr *Elem) *Elem {
	attr.Parent_ = e
	e.Attrs = append(e.Attrs, attr)
	return e
}

func (e *Elem) NodeType() int          { return e.Type }
func (e *Elem) NodeName() string       { return e.Name }
func (e *Elem) LocalName() string      { return e.Local }
func (e *Elem) NamespaceURI() string   { return e.NS }
func (e *Elem) TextContent() string {
	if e.Type == xhost.TypeText || e.Type == xhost.TypeAttribute {
		return e.Text
	}
	var out string
	for _, k := range e.Kids {
		out += k.TextContent()
	}
	return out
}

func (e *Elem) Parent() xhost.Node {
	if e.Parent_ == nil {
		return nil
	}
	return e.Parent_
}

func (e *Elem) Children() []xhost.Node {
	out := make([]xhost.Node, len(e.Kids))
	for i, k := range e.Kids {
		out[i] = k
	}
	return out
}

func (e *Elem) Attributes() []xhost.Node {
	out := make([]xhost.Node, len(e.Attrs))
	for i, a := range e.Attrs {
		out[i] = a
	}
	return out
}

func (e *Elem) PreviousSibling() xhost.Node {
	return e.siblingAt(-1)
}

func (e *Elem) NextSibling() xhost.Node {
	return e.siblingAt(1)
}

func (e *Elem) siblingAt(delta int) xhost.Node {
	if e.Parent_ == nil {
		return nil
	}
	for i, k := range e.Parent_.Kids {
		if k == e {
			j := i + delta
			if j >= 0 && j < len(e.Parent_.Kids) {
				return e.Parent_.Kids[j]
			}
			return nil
		}
	}
	return nil
}

func (e *Elem) DocumentOrderKey() int64 { return e.orderKey }
