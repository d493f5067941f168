package format

import (
	"encoding/json"
	"io"

	"github.com/fxmlkit/fxc/compiler"
	"github.com/fxmlkit/fxc/fxml"
)

// TreeEncoder dumps a raw markup document as JSON, before semantic
// resolution.
type TreeEncoder struct {
	w   io.Writer
	doc *fxml.Document
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(doc *fxml.Document) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildDocument(), "", "  ")
}

type treeDocument struct {
	Path      string      `json:"path"`
	ClassName string      `json:"className"`
	Imports   []string    `json:"imports,omitempty"`
	Root      treeElement `json:"root"`
}

type treeElement struct {
	Name       string          `json:"name"`
	Attributes []treeAttribute `json:"attributes,omitempty"`
	Comments   []string        `json:"comments,omitempty"`
	Children   []treeElement   `json:"children,omitempty"`
}

type treeAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (e *TreeEncoder) buildDocument() treeDocument {
	return treeDocument{
		Path:      e.doc.Path,
		ClassName: e.doc.ClassName,
		Imports:   e.doc.Imports,
		Root:      buildElement(e.doc.Root),
	}
}

func buildElement(el *fxml.Element) treeElement {
	result := treeElement{
		Name:     el.Name,
		Comments: el.Comments,
	}
	for _, attr := range el.Attributes {
		result.Attributes = append(result.Attributes, treeAttribute{Name: attr.Name, Value: attr.Value})
	}
	for _, child := range el.Children {
		result.Children = append(result.Children, buildElement(child))
	}
	return result
}

// GraphEncoder dumps a processed document's node graph as JSON. Shared
// subgraphs appear once; later references carry only the node's ref.
type GraphEncoder struct {
	w    io.Writer
	doc  *compiler.Document
	seen map[compiler.Node]bool
}

func NewGraphEncoder(w io.Writer) *GraphEncoder {
	return &GraphEncoder{w: w}
}

func (e *GraphEncoder) Encode(doc *compiler.Document) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *GraphEncoder) MarshalText() ([]byte, error) {
	e.seen = make(map[compiler.Node]bool)
	return json.MarshalIndent(e.buildDocument(), "", "  ")
}

type graphDocument struct {
	ClassName  string       `json:"className"`
	Imports    []string     `json:"imports,omitempty"`
	Controller string       `json:"controller,omitempty"`
	Resources  bool         `json:"resources,omitempty"`
	Root       *graphNode   `json:"root"`
	Fields     []graphField `json:"fields,omitempty"`
}

type graphNode struct {
	Kind       string          `json:"kind"`
	Ref        string          `json:"ref,omitempty"`
	Type       string          `json:"type,omitempty"`
	Member     string          `json:"member,omitempty"`
	Method     string          `json:"method,omitempty"`
	Property   string          `json:"property,omitempty"`
	Value      string          `json:"value,omitempty"`
	Internal   bool            `json:"internal,omitempty"`
	Shared     bool            `json:"shared,omitempty"`
	Generics   []string        `json:"generics,omitempty"`
	Properties []graphProperty `json:"properties,omitempty"`
	Children   []*graphNode    `json:"children,omitempty"`
}

type graphProperty struct {
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	Method     string `json:"method,omitempty"`
	Owner      string `json:"owner,omitempty"`
	Collection bool   `json:"collection,omitempty"`
	Type       string `json:"type,omitempty"`
	Value      string `json:"value"`
}

type graphField struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Internal bool   `json:"internal,omitempty"`
}

func (e *GraphEncoder) buildDocument() graphDocument {
	doc := graphDocument{
		ClassName: e.doc.ClassName,
		Imports:   e.doc.Imports,
		Resources: e.doc.Resources,
		Root:      e.buildNode(e.doc.Root),
	}
	if e.doc.Controller != nil {
		doc.Controller = e.doc.Controller.ClassName
	}
	for _, f := range e.doc.Fields {
		doc.Fields = append(doc.Fields, graphField{Type: f.Type, Name: f.Name, Internal: f.Internal})
	}
	return doc
}

func (e *GraphEncoder) buildNode(n compiler.Node) *graphNode {
	switch t := n.(type) {
	case *compiler.ObjectNode:
		if e.seen[n] {
			return &graphNode{Kind: "object", Ref: t.ID, Shared: true}
		}
		e.seen[n] = true
		result := &graphNode{
			Kind:     "object",
			Ref:      t.ID,
			Type:     t.Class.Name,
			Internal: t.Internal,
			Generics: t.Generics,
		}
		for _, p := range t.Properties {
			result.Properties = append(result.Properties, buildProperty(p))
		}
		for _, child := range t.Children {
			result.Children = append(result.Children, e.buildNode(child))
		}
		return result
	case *compiler.ValueNode:
		if e.seen[n] {
			return &graphNode{Kind: "value", Ref: t.ID, Shared: true}
		}
		e.seen[n] = true
		return &graphNode{Kind: "value", Ref: t.ID, Type: t.Class.Name, Value: t.Value, Internal: t.Internal}
	case *compiler.ConstantNode:
		return &graphNode{Kind: "constant", Type: t.Class.Name, Member: t.Member}
	case *compiler.StaticMethodNode:
		result := &graphNode{Kind: "static", Type: t.Class.Name, Method: t.Method}
		for _, child := range t.Children {
			result.Children = append(result.Children, e.buildNode(child))
		}
		return result
	case *compiler.WrapperNode:
		result := &graphNode{Kind: "wrapper", Property: t.Property}
		for _, child := range t.Children {
			result.Children = append(result.Children, e.buildNode(child))
		}
		return result
	}
	return nil
}

func buildProperty(p compiler.Property) graphProperty {
	switch t := p.(type) {
	case *compiler.ObjectProperty:
		return graphProperty{
			Kind:       "object",
			Name:       t.Name,
			Method:     t.Method,
			Collection: t.Collection,
			Type:       t.Type.String(),
			Value:      t.Value,
		}
	case *compiler.StaticProperty:
		return graphProperty{
			Kind:   "static",
			Name:   t.Name,
			Owner:  t.Owner.Name,
			Method: t.Method,
			Type:   t.Type.String(),
			Value:  t.Value,
		}
	case *compiler.ConstructorProperty:
		return graphProperty{
			Kind:  "constructor",
			Name:  t.Name,
			Type:  t.Type.String(),
			Value: t.Value,
		}
	}
	return graphProperty{}
}
