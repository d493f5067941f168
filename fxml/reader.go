package fxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ParseError reports malformed markup.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse markup: %v", e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// fxNamespace is the namespace URI documents bind the fx prefix to.
const fxNamespace = "http://javafx.com/fxml"

// Read parses the markup file at path.
func Read(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse parses markup from r. The name is used for error reporting and for
// deriving the class name; it may be a file path.
func Parse(r io.Reader, name string) (*Document, error) {
	doc := &Document{
		Path:      name,
		ClassName: classNameFor(name),
	}

	dec := xml.NewDecoder(r)
	var stack []*Element
	importsOpen := true

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Path: name, Err: err}
		}

		switch t := tok.(type) {
		case xml.ProcInst:
			switch t.Target {
			case "xml":
				// The XML declaration does not end the import run.
			case "import":
				if importsOpen {
					doc.Imports = append(doc.Imports, strings.TrimSpace(string(t.Inst)))
				}
			default:
				importsOpen = false
			}
		case xml.StartElement:
			importsOpen = false
			el := &Element{Name: qualify(t.Name)}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				el.Attributes = append(el.Attributes, Attribute{
					Name:  qualify(a.Name),
					Value: a.Value,
				})
			}
			if len(stack) == 0 {
				if doc.Root != nil {
					return nil, &ParseError{Path: name, Err: fmt.Errorf("multiple root elements")}
				}
				doc.Root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, &ParseError{Path: name, Err: fmt.Errorf("unbalanced end element %s", qualify(t.Name))}
			}
			stack = stack[:len(stack)-1]
		case xml.Comment:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.Comments = append(top.Comments, string(t))
			} else {
				importsOpen = false
			}
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				importsOpen = false
			}
		}
	}

	if doc.Root == nil {
		return nil, &ParseError{Path: name, Err: fmt.Errorf("document has no root element")}
	}
	return doc, nil
}

// qualify rebuilds the author-visible element or attribute name. The fx
// prefix is kept whether or not the document bound it to the fxml namespace.
func qualify(n xml.Name) string {
	switch n.Space {
	case "":
		return n.Local
	case "fx", fxNamespace:
		return "fx:" + n.Local
	default:
		return n.Space + ":" + n.Local
	}
}

var nonWord = regexp.MustCompile(`\W`)

func classNameFor(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return nonWord.ReplaceAllString(base, "_")
}
