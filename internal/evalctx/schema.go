package evalctx

import "encoding/xml"

// xsdSchema models just enough of the XML Schema document element to
// extract top-level element/attribute declarations for ParseMinimalXSD;
// this is not a validating schema processor.
type xsdSchema struct {
	TargetNamespace string    `xml:"targetNamespace,attr"`
	Elements        []xsdDecl `xml:"element"`
	Attributes      []xsdDecl `xml:"attribute"`
}

type xsdDecl struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

// ParseMinimalXSD extracts a SchemaImport from a minimal XSD document: its
// targetNamespace and top-level element/attribute declarations, per spec.md
// §4.6 ("a minimal XSD text from which targetNamespace and top-level
// element/attribute declarations are extracted").
func ParseMinimalXSD(xsd []byte) (SchemaImport, error) {
	var doc xsdSchema
	if err := xml.Unmarshal(xsd, &doc); err != nil {
		return SchemaImport{}, err
	}
	imp := SchemaImport{
		TargetNamespace: doc.TargetNamespace,
		Elements:        make(map[string]string, len(doc.Elements)),
		Attributes:      make(map[string]string, len(doc.Attributes)),
	}
	for _, e := range doc.Elements {
		imp.Elements[e.Name] = e.Type
	}
	for _, a := range doc.Attributes {
		imp.Attributes[a.Name] = a.Type
	}
	return imp, nil
}
