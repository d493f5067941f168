package compiler

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/fxmlkit/fxc/fxml"
	"github.com/fxmlkit/fxc/introspect"
)

var log = commonlog.GetLogger("fxc.compiler")

// Reserved markup vocabulary.
const (
	rootElement    = "fx:root"
	idAttribute    = "fx:id"
	valueAttribute = "fx:value"
	constAttribute = "fx:constant"
	ctrlAttribute  = "fx:controller"
	typeAttribute  = "type"
)

// Reserved value prefixes.
const (
	RefPrefix      = "#" // method reference by name
	ResourcePrefix = "%" // resource-bundle key lookup
	RawPrefix      = "$" // raw passthrough expression
)

// RootID is the identifier bound to the document root. It is never
// reassigned and the root never participates in deduplication.
const RootID = "this"

// converter turns a raw element tree into the typed node graph. One
// converter serves one document; the identifier sequence lives here so
// conversions of independent documents never share state.
type converter struct {
	reg        *introspect.Registry
	imports    []string
	seq        int
	controller string
}

func (c *converter) nextID() string {
	id := fmt.Sprintf("$internal$%d", c.seq)
	c.seq++
	return id
}

func (c *converter) convert(el *fxml.Element, root bool) (Node, error) {
	if root {
		if name, ok := el.Attribute(ctrlAttribute); ok {
			c.controller = name
		}
	}

	if el.Name == rootElement {
		return c.convertRoot(el)
	}

	if owner, member, ok := splitStaticName(el.Name); ok {
		return c.convertStatic(el, owner, member)
	}

	class, err := c.findType(el.Name)
	if err != nil {
		return nil, err
	}
	if class == nil {
		children, err := c.convertChildren(el)
		if err != nil {
			return nil, err
		}
		return &WrapperNode{Property: el.Name, Children: children}, nil
	}

	id, explicit := el.Attribute(idAttribute)
	internal := !explicit
	if !explicit {
		id = c.nextID()
	}
	if root {
		// The document root is always the self reference.
		id = RootID
		internal = true
	}

	if value, ok := el.Attribute(valueAttribute); ok {
		return &ValueNode{Internal: internal, ID: id, Class: class, Value: value}, nil
	}

	if member, ok := el.Attribute(constAttribute); ok {
		field := class.Field(member)
		if field == nil {
			return nil, &TypeResolutionError{
				Name:   class.Name,
				Reason: fmt.Sprintf("no field named %s", member),
			}
		}
		if !field.IsStatic {
			return nil, &TypeResolutionError{
				Name:   class.Name,
				Reason: fmt.Sprintf("field %s is not static", member),
			}
		}
		return &ConstantNode{Class: class, Member: member, MemberType: field.Type}, nil
	}

	return c.convertObject(el, class, id, internal, root)
}

func (c *converter) convertRoot(el *fxml.Element) (Node, error) {
	typeName, ok := el.Attribute(typeAttribute)
	if !ok {
		return nil, &TypeResolutionError{
			Name:   rootElement,
			Reason: "missing required type attribute",
		}
	}
	class, err := c.findType(typeName)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, &TypeResolutionError{Name: typeName, Reason: "unknown type"}
	}
	node, err := c.convertObject(el, class, RootID, true, true)
	if err != nil {
		return nil, err
	}
	return node, nil
}

func (c *converter) convertStatic(el *fxml.Element, ownerName, member string) (Node, error) {
	owner, err := c.findType(ownerName)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, &TypeResolutionError{Name: ownerName, Reason: "unknown type"}
	}
	children, err := c.convertChildren(el)
	if err != nil {
		return nil, err
	}
	return &StaticMethodNode{Class: owner, Method: member, Children: children}, nil
}

func (c *converter) convertObject(el *fxml.Element, class *introspect.Class, id string, internal, root bool) (Node, error) {
	generics, err := genericsFrom(el, class.Name)
	if err != nil {
		return nil, err
	}

	var properties []Property
	for _, attr := range el.Attributes {
		if attr.Name == idAttribute || (root && attr.Name == ctrlAttribute) {
			continue
		}
		if el.Name == rootElement && attr.Name == typeAttribute {
			continue
		}
		prop, err := c.resolveProperty(class, attr.Name, attr.Value)
		if err != nil {
			return nil, err
		}
		if prop != nil {
			properties = append(properties, prop)
		}
	}

	children, err := c.convertChildren(el)
	if err != nil {
		return nil, err
	}

	return &ObjectNode{
		Internal:   internal,
		ID:         id,
		Class:      class,
		Properties: properties,
		Children:   children,
		Generics:   generics,
	}, nil
}

func (c *converter) convertChildren(el *fxml.Element) ([]Node, error) {
	var children []Node
	for _, child := range el.Children {
		node, err := c.convert(child, false)
		if err != nil {
			return nil, err
		}
		children = append(children, node)
	}
	return children, nil
}

// findType resolves a type name against the document's imports: exact import
// first, then a single unambiguous wildcard match, then the java.lang
// fallback. A nil class with a nil error means the name does not denote a
// type at all.
func (c *converter) findType(name string) (*introspect.Class, error) {
	if strings.Contains(name, ".") {
		if class, ok := c.reg.Lookup(name); ok {
			return class, nil
		}
		return nil, nil
	}

	for _, imp := range c.imports {
		if strings.HasSuffix(imp, ".*") {
			continue
		}
		if imp == name || strings.HasSuffix(imp, "."+name) {
			class, ok := c.reg.Lookup(imp)
			if !ok {
				return nil, &TypeResolutionError{
					Name:   name,
					Reason: fmt.Sprintf("import %s names an unknown type", imp),
				}
			}
			return class, nil
		}
	}

	var candidates []*introspect.Class
	for _, imp := range c.imports {
		pkg, ok := strings.CutSuffix(imp, ".*")
		if !ok {
			continue
		}
		if class, ok := c.reg.Lookup(pkg + "." + name); ok {
			candidates = append(candidates, class)
		}
	}
	if len(candidates) > 1 {
		names := make([]string, len(candidates))
		for i, cand := range candidates {
			names[i] = cand.Name
		}
		return nil, &TypeResolutionError{
			Name:   name,
			Reason: "ambiguous wildcard imports: " + strings.Join(names, ", "),
		}
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	if class, ok := c.reg.Lookup("java.lang." + name); ok {
		return class, nil
	}
	return nil, nil
}

// splitStaticName splits Owner.member element names. The member must start
// lowercase; a fully dotted name with an uppercase tail is a qualified type
// name, not a static-method reference.
func splitStaticName(name string) (owner, member string, ok bool) {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return "", "", false
	}
	member = name[i+1:]
	if member[0] >= 'A' && member[0] <= 'Z' {
		return "", "", false
	}
	return name[:i], member, true
}

var genericComment = regexp.MustCompile(`^generic\s+(\d+)\s*:\s*([\w$.]+)$`)

// genericsFrom extracts generic type arguments from an element's comment
// annotations. Indices must form a contiguous run starting at 0.
func genericsFrom(el *fxml.Element, typeName string) ([]string, error) {
	type annotation struct {
		index int
		name  string
	}
	var annotations []annotation
	for _, comment := range el.Comments {
		m := genericComment.FindStringSubmatch(strings.TrimSpace(comment))
		if m == nil {
			continue
		}
		index, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		annotations = append(annotations, annotation{index: index, name: m[2]})
	}
	if len(annotations) == 0 {
		return nil, nil
	}
	sort.Slice(annotations, func(i, j int) bool {
		return annotations[i].index < annotations[j].index
	})
	names := make([]string, len(annotations))
	for i, a := range annotations {
		if a.index != i {
			indices := make([]int, len(annotations))
			for j, b := range annotations {
				indices[j] = b.index
			}
			return nil, &GenericIndexError{Type: typeName, Indices: indices}
		}
		names[i] = a.name
	}
	return names, nil
}
