package compiler

import (
	"sort"
	"strings"

	"github.com/fxmlkit/fxc/fxml"
	"github.com/fxmlkit/fxc/introspect"
)

// Options configures semantic resolution.
type Options struct {
	// PreserveIdentity lists type names whose instances must never be
	// merged by deduplication, even when structurally identical. Subtypes
	// are covered through assignability. Nil selects DefaultPreserveIdentity.
	PreserveIdentity []string
}

// DefaultPreserveIdentity covers scene-membership types: sharing one
// instance across several parents changes observable behavior.
var DefaultPreserveIdentity = []string{
	"javafx.scene.Node",
	"javafx.scene.Scene",
}

// FieldDecl is one generated field.
type FieldDecl struct {
	Type     string
	Name     string
	Internal bool
	Generics []string
}

// MethodDecl is one method signature extracted from a method-reference
// value. Generics maps the functional interface's type-parameter names to
// the concrete types they were instantiated with.
type MethodDecl struct {
	Name       string
	Parameters []introspect.Type
	ReturnType introspect.Type
	Generics   map[string]string
}

// Document is the processed form of one markup file, ready for code
// generation. Its node graph is immutable.
type Document struct {
	Imports    []string
	Fields     []FieldDecl
	Methods    []MethodDecl
	Root       Node
	ClassName  string
	Controller *Controller
	Resources  bool
}

// Process converts a raw markup document into its resolved, deduplicated
// form.
func Process(reg *introspect.Registry, doc *fxml.Document, opts Options) (*Document, error) {
	conv := &converter{reg: reg, imports: doc.Imports}
	root, err := conv.convert(doc.Root, true)
	if err != nil {
		return nil, err
	}

	preserve := opts.PreserveIdentity
	if preserve == nil {
		preserve = DefaultPreserveIdentity
	}
	root = dedup(root, reg, preserve)

	d := &Document{
		Imports:   sortedImports(doc.Imports),
		Root:      root,
		ClassName: doc.ClassName,
	}

	if err := d.extract(reg, root); err != nil {
		return nil, err
	}

	if conv.controller != "" {
		ctrl, err := resolveController(reg, conv.controller)
		if err != nil {
			return nil, err
		}
		d.Controller = ctrl
	}
	return d, nil
}

// extract walks the unique nodes of the graph in document order, collecting
// field declarations, method signatures, and resource-bundle usage.
func (d *Document) extract(reg *introspect.Registry, root Node) error {
	var walkErr error
	walkUnique(root, func(n Node) {
		if walkErr != nil {
			return
		}
		switch t := n.(type) {
		case *ObjectNode:
			if t.ID != RootID {
				d.Fields = append(d.Fields, FieldDecl{
					Type:     t.Class.SimpleName,
					Name:     t.ID,
					Internal: t.Internal,
					Generics: t.Generics,
				})
			}
			for _, p := range t.Properties {
				if err := d.extractProperty(reg, p); err != nil {
					walkErr = err
					return
				}
			}
		case *ValueNode:
			d.Fields = append(d.Fields, FieldDecl{
				Type:     t.Class.SimpleName,
				Name:     t.ID,
				Internal: t.Internal,
			})
			if strings.HasPrefix(t.Value, ResourcePrefix) {
				d.Resources = true
			}
		}
	})
	return walkErr
}

func (d *Document) extractProperty(reg *introspect.Registry, p Property) error {
	value, paramType := propertyValue(p)
	switch {
	case strings.HasPrefix(value, ResourcePrefix):
		d.Resources = true
	case strings.HasPrefix(value, RefPrefix):
		decl, err := methodDeclFor(reg, p.PropertyName(), paramType, value[len(RefPrefix):])
		if err != nil {
			return err
		}
		d.addMethod(decl)
	}
	return nil
}

// methodDeclFor derives the signature a method reference must satisfy from
// the functional interface the property expects.
func methodDeclFor(reg *introspect.Registry, property string, ifaceType introspect.Type, name string) (MethodDecl, error) {
	iface, ok := reg.Lookup(ifaceType.Name)
	if !ok || !iface.IsInterface() {
		return MethodDecl{}, &FunctionalInterfaceError{Type: ifaceType.Name, Property: property}
	}
	sam, ok := reg.FunctionalMethod(iface)
	if !ok {
		return MethodDecl{}, &FunctionalInterfaceError{Type: ifaceType.Name, Property: property}
	}

	generics := make(map[string]string)
	for i, param := range iface.TypeParameters {
		if i < len(ifaceType.TypeArguments) {
			generics[param] = ifaceType.TypeArguments[i].Name
		} else {
			generics[param] = "java.lang.Object"
		}
	}

	decl := MethodDecl{
		Name:       name,
		ReturnType: substituteType(sam.ReturnType, generics),
		Generics:   generics,
	}
	for _, p := range sam.Parameters {
		decl.Parameters = append(decl.Parameters, substituteType(p.Type, generics))
	}
	return decl, nil
}

func substituteType(t introspect.Type, generics map[string]string) introspect.Type {
	if concrete, ok := generics[t.Name]; ok {
		return introspect.Type{Name: concrete, ArrayDepth: t.ArrayDepth}
	}
	result := introspect.Type{Name: t.Name, ArrayDepth: t.ArrayDepth}
	for _, arg := range t.TypeArguments {
		result.TypeArguments = append(result.TypeArguments, substituteType(arg, generics))
	}
	return result
}

func (d *Document) addMethod(decl MethodDecl) {
	key := decl.Name
	for _, p := range decl.Parameters {
		key += "|" + p.Erasure().String()
	}
	for _, existing := range d.Methods {
		existingKey := existing.Name
		for _, p := range existing.Parameters {
			existingKey += "|" + p.Erasure().String()
		}
		if existingKey == key {
			return
		}
	}
	d.Methods = append(d.Methods, decl)
}

func propertyValue(p Property) (string, introspect.Type) {
	switch t := p.(type) {
	case *ObjectProperty:
		return t.Value, t.Type
	case *StaticProperty:
		return t.Value, t.Type
	case *ConstructorProperty:
		return t.Value, t.Type
	}
	return "", introspect.Type{}
}

// walkUnique visits every distinct node reachable from root exactly once,
// in document (depth-first, pre-order) order. Deduplicated subtrees are
// visited at their first occurrence only.
func walkUnique(root Node, visit func(Node)) {
	seen := make(map[Node]bool)
	var walk func(Node)
	walk = func(n Node) {
		if seen[n] {
			return
		}
		seen[n] = true
		visit(n)
		for _, child := range childrenOf(n) {
			walk(child)
		}
	}
	walk(root)
}

func sortedImports(imports []string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, imp := range imports {
		if !seen[imp] {
			seen[imp] = true
			result = append(result, imp)
		}
	}
	sort.Strings(result)
	return result
}
