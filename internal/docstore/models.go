package docstore

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/oxhq/xpathlang/internal/xhost"
	"github.com/oxhq/xpathlang/internal/xhost/xhosttest"
)

// NodeSpec is a structured, XML-parser-free description of one node in a
// demo document tree: the caller builds the tree directly (element/text/
// attribute nodes and their children) rather than handing the store raw
// markup to parse.
type NodeSpec struct {
	Type  string     `json:"type"` // "element", "text", or "attr"
	Local string     `json:"local,omitempty"`
	NS    string     `json:"ns,omitempty"`
	Text  string     `json:"text,omitempty"`
	Attrs []NodeSpec `json:"attrs,omitempty"`
	Kids  []NodeSpec `json:"kids,omitempty"`
}

// Build rehydrates spec into an in-memory xhost.Node tree using the same
// xhosttest helper this module's own test suite relies on.
func (spec NodeSpec) Build() *xhosttest.Elem {
	switch spec.Type {
	case "text":
		return xhosttest.NewText(spec.Text)
	case "attr":
		return xhosttest.NewAttr(spec.Local, spec.NS, spec.Text)
	default:
		el := xhosttest.NewElement(spec.Local, spec.NS)
		for _, a := range spec.Attrs {
			el.SetAttr(a.Build())
		}
		for _, k := range spec.Kids {
			el.AppendChild(k.Build())
		}
		return el
	}
}

// Document is the gorm-persisted row backing one named document: its
// structured tree and namespace table, stored as JSON blobs the way the
// teacher's models.Stage stores ScopeAST/ConfidenceFactors.
type Document struct {
	Name       string         `gorm:"primaryKey;type:varchar(255)"`
	Root       datatypes.JSON `gorm:"type:jsonb"`
	Namespaces datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
}

func (Document) TableName() string { return "documents" }

// Loaded is a rehydrated document: its root node plus the namespace table
// it was registered with.
type Loaded struct {
	Root       xhost.Node
	Namespaces map[string]string
}

// Rehydrate decodes d's stored JSON back into a traversable node tree.
func (d Document) Rehydrate() (Loaded, error) {
	var spec NodeSpec
	if err := json.Unmarshal(d.Root, &spec); err != nil {
		return Loaded{}, err
	}
	var ns map[string]string
	if len(d.Namespaces) > 0 {
		if err := json.Unmarshal(d.Namespaces, &ns); err != nil {
			return Loaded{}, err
		}
	}
	return Loaded{Root: spec.Build(), Namespaces: ns}, nil
}

func marshalJSON(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
