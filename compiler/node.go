package compiler

import "github.com/fxmlkit/fxc/introspect"

// Node is one vertex of the resolved object graph. The hierarchy is closed:
// the five variants below are the only implementations, and every consumer
// switches over all of them. Nodes are immutable once built; deduplication
// replaces subtrees instead of mutating them.
type Node interface {
	node()
}

// ObjectNode constructs a new instance of Class, optionally parameterized
// with the Generics type arguments.
type ObjectNode struct {
	Internal   bool
	ID         string
	Class      *introspect.Class
	Properties []Property
	Children   []Node
	Generics   []string
}

// ValueNode holds a raw literal converted into an instance of Class.
type ValueNode struct {
	Internal bool
	ID       string
	Class    *introspect.Class
	Value    string
}

// ConstantNode references a static constant field declared on Class.
type ConstantNode struct {
	Class      *introspect.Class
	Member     string
	MemberType introspect.Type
}

// StaticMethodNode represents Class.setX(target, argument) applied to the
// enclosing node, with the children as candidate arguments.
type StaticMethodNode struct {
	Class    *introspect.Class
	Method   string
	Children []Node
}

// WrapperNode groups children under a property name without itself being a
// constructed object.
type WrapperNode struct {
	Property string
	Children []Node
}

func (*ObjectNode) node()       {}
func (*ValueNode) node()        {}
func (*ConstantNode) node()     {}
func (*StaticMethodNode) node() {}
func (*WrapperNode) node()      {}

// childrenOf returns the child slice of nodes that carry one.
func childrenOf(n Node) []Node {
	switch t := n.(type) {
	case *ObjectNode:
		return t.Children
	case *StaticMethodNode:
		return t.Children
	case *WrapperNode:
		return t.Children
	default:
		return nil
	}
}

// Property is one attribute binding resolved against type metadata.
type Property interface {
	property()
	PropertyName() string
}

// ObjectProperty applies a value through an instance accessor. When
// Collection is false, Method is a single-parameter setter; when true,
// Method is a zero-parameter getter returning a collection the encoded value
// is appended to, and Type is the collection's element type.
type ObjectProperty struct {
	Name       string
	Method     string
	Collection bool
	Type       introspect.Type
	Value      string
}

// StaticProperty applies a value through a two-parameter static setter
// declared on Owner, passing the enclosing node as the first argument.
type StaticProperty struct {
	Name   string
	Owner  *introspect.Class
	Method string
	Type   introspect.Type
	Value  string
}

// ConstructorProperty binds a value to a named constructor argument.
type ConstructorProperty struct {
	Name  string
	Value string
	Type  introspect.Type
}

func (*ObjectProperty) property()      {}
func (*StaticProperty) property()      {}
func (*ConstructorProperty) property() {}

func (p *ObjectProperty) PropertyName() string      { return p.Name }
func (p *StaticProperty) PropertyName() string      { return p.Name }
func (p *ConstructorProperty) PropertyName() string { return p.Name }
