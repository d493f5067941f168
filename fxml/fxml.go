// Package fxml reads markup documents into a raw element tree. No semantic
// resolution happens here: element names, attributes, and comments are kept
// as written so the compiler can interpret them against type metadata.
package fxml

// Attribute is a single name="value" pair, in document order.
type Attribute struct {
	Name  string
	Value string
}

// Element is one markup element. Comments interleaved inside the element are
// preserved verbatim; the compiler reads generic-argument annotations out of
// them.
type Element struct {
	Name       string
	Attributes []Attribute
	Children   []*Element
	Comments   []string
}

// Attribute returns the value of the named attribute and whether it was
// present.
func (e *Element) Attribute(name string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Document is one parsed markup file: its import declarations, the root
// element, and the class name derived from the file name.
type Document struct {
	Path      string
	ClassName string
	Imports   []string
	Root      *Element
}
