package compiler

import (
	"hash"
	"hash/fnv"
	"io"
	"strconv"

	"github.com/fxmlkit/fxc/introspect"
)

// dedup merges structurally identical internal nodes until the graph stops
// changing. Three independent passes run per round: constants, values, then
// objects. Merged duplicates are replaced by the first structurally equal
// node encountered, so shared subtrees become pointer-identical and the tree
// turns into a DAG. Explicitly identified nodes and the root never merge;
// object nodes whose class is assignable to a preserved type are kept
// distinct as well.
func dedup(root Node, reg *introspect.Registry, preserve []string) Node {
	for {
		changed := false
		for _, kind := range []mergeKind{mergeConstants, mergeValues, mergeObjects} {
			m := &merger{
				reg:       reg,
				preserve:  preserve,
				kind:      kind,
				buckets:   make(map[uint64][]Node),
				rewritten: make(map[Node]Node),
			}
			root = m.rewrite(root)
			changed = changed || m.changed
		}
		if !changed {
			return root
		}
	}
}

type mergeKind int

const (
	mergeConstants mergeKind = iota
	mergeValues
	mergeObjects
)

type merger struct {
	reg      *introspect.Registry
	preserve []string
	kind     mergeKind
	// buckets is a two-level structural map: hash first, then candidate
	// comparison within the bucket. No reliance on pointer identity.
	buckets   map[uint64][]Node
	rewritten map[Node]Node
	changed   bool
}

func (m *merger) rewrite(n Node) Node {
	if done, ok := m.rewritten[n]; ok {
		return done
	}
	result := m.rewriteChildren(n)
	if m.eligible(result) {
		h := structuralHash(result)
		merged := false
		for _, candidate := range m.buckets[h] {
			if candidate != result && nodesEqual(candidate, result) {
				result = candidate
				m.changed = true
				merged = true
				break
			}
		}
		if !merged {
			m.buckets[h] = append(m.buckets[h], result)
		}
	}
	m.rewritten[n] = result
	return result
}

// rewriteChildren rebuilds a node whose children changed; nodes are never
// mutated in place.
func (m *merger) rewriteChildren(n Node) Node {
	children := childrenOf(n)
	if len(children) == 0 {
		return n
	}
	replaced := make([]Node, len(children))
	changed := false
	for i, child := range children {
		replaced[i] = m.rewrite(child)
		if replaced[i] != child {
			changed = true
		}
	}
	if !changed {
		return n
	}
	m.changed = true
	switch t := n.(type) {
	case *ObjectNode:
		clone := *t
		clone.Children = replaced
		return &clone
	case *StaticMethodNode:
		clone := *t
		clone.Children = replaced
		return &clone
	case *WrapperNode:
		clone := *t
		clone.Children = replaced
		return &clone
	default:
		return n
	}
}

func (m *merger) eligible(n Node) bool {
	switch t := n.(type) {
	case *ConstantNode:
		return m.kind == mergeConstants
	case *ValueNode:
		return m.kind == mergeValues && t.Internal
	case *ObjectNode:
		if m.kind != mergeObjects || !t.Internal || t.ID == RootID {
			return false
		}
		for _, name := range m.preserve {
			if m.reg.AssignableTo(t.Class.Name, name) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// nodesEqual is structural equality as deduplication sees it: internal
// object and value nodes compare by content with identifiers ignored, while
// explicitly identified nodes are only equal to themselves.
func nodesEqual(a, b Node) bool {
	if a == b {
		return true
	}
	switch x := a.(type) {
	case *ObjectNode:
		y, ok := b.(*ObjectNode)
		if !ok || !x.Internal || !y.Internal || x.ID == RootID || y.ID == RootID {
			return false
		}
		if x.Class != y.Class || !stringSlicesEqual(x.Generics, y.Generics) {
			return false
		}
		if len(x.Properties) != len(y.Properties) || len(x.Children) != len(y.Children) {
			return false
		}
		for i := range x.Properties {
			if !propertiesEqual(x.Properties[i], y.Properties[i]) {
				return false
			}
		}
		for i := range x.Children {
			if !nodesEqual(x.Children[i], y.Children[i]) {
				return false
			}
		}
		return true
	case *ValueNode:
		y, ok := b.(*ValueNode)
		return ok && x.Internal && y.Internal && x.Class == y.Class && x.Value == y.Value
	case *ConstantNode:
		y, ok := b.(*ConstantNode)
		return ok && x.Class == y.Class && x.Member == y.Member &&
			typesEqual(x.MemberType, y.MemberType)
	case *StaticMethodNode:
		y, ok := b.(*StaticMethodNode)
		if !ok || x.Class != y.Class || x.Method != y.Method || len(x.Children) != len(y.Children) {
			return false
		}
		for i := range x.Children {
			if !nodesEqual(x.Children[i], y.Children[i]) {
				return false
			}
		}
		return true
	case *WrapperNode:
		y, ok := b.(*WrapperNode)
		if !ok || x.Property != y.Property || len(x.Children) != len(y.Children) {
			return false
		}
		for i := range x.Children {
			if !nodesEqual(x.Children[i], y.Children[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func propertiesEqual(a, b Property) bool {
	switch x := a.(type) {
	case *ObjectProperty:
		y, ok := b.(*ObjectProperty)
		return ok && x.Name == y.Name && x.Method == y.Method &&
			x.Collection == y.Collection && typesEqual(x.Type, y.Type) && x.Value == y.Value
	case *StaticProperty:
		y, ok := b.(*StaticProperty)
		return ok && x.Name == y.Name && x.Owner == y.Owner && x.Method == y.Method &&
			typesEqual(x.Type, y.Type) && x.Value == y.Value
	case *ConstructorProperty:
		y, ok := b.(*ConstructorProperty)
		return ok && x.Name == y.Name && x.Value == y.Value && typesEqual(x.Type, y.Type)
	}
	return false
}

func typesEqual(a, b introspect.Type) bool {
	return a.String() == b.String()
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func structuralHash(n Node) uint64 {
	h := fnv.New64a()
	hashNode(h, n)
	return h.Sum64()
}

func hashNode(h hash.Hash64, n Node) {
	switch t := n.(type) {
	case *ObjectNode:
		io.WriteString(h, "object|"+t.Class.Name)
		if !t.Internal || t.ID == RootID {
			io.WriteString(h, "|id="+t.ID)
		}
		for _, g := range t.Generics {
			io.WriteString(h, "|g="+g)
		}
		for _, p := range t.Properties {
			hashProperty(h, p)
		}
		for _, child := range t.Children {
			hashNode(h, child)
		}
	case *ValueNode:
		io.WriteString(h, "value|"+t.Class.Name+"|"+t.Value)
		if !t.Internal {
			io.WriteString(h, "|id="+t.ID)
		}
	case *ConstantNode:
		io.WriteString(h, "constant|"+t.Class.Name+"|"+t.Member+"|"+t.MemberType.String())
	case *StaticMethodNode:
		io.WriteString(h, "static|"+t.Class.Name+"|"+t.Method)
		for _, child := range t.Children {
			hashNode(h, child)
		}
	case *WrapperNode:
		io.WriteString(h, "wrapper|"+t.Property)
		for _, child := range t.Children {
			hashNode(h, child)
		}
	}
	io.WriteString(h, ";")
}

func hashProperty(h hash.Hash64, p Property) {
	switch t := p.(type) {
	case *ObjectProperty:
		io.WriteString(h, "p|"+t.Name+"|"+t.Method+"|"+strconv.FormatBool(t.Collection)+"|"+t.Type.String()+"|"+t.Value)
	case *StaticProperty:
		io.WriteString(h, "s|"+t.Owner.Name+"|"+t.Name+"|"+t.Method+"|"+t.Type.String()+"|"+t.Value)
	case *ConstructorProperty:
		io.WriteString(h, "c|"+t.Name+"|"+t.Type.String()+"|"+t.Value)
	}
}
