package introspect

import (
	"sort"
	"sync"
)

// Registry indexes class metadata by fully qualified name. It is read-mostly:
// registration happens while loading metadata tables, lookups happen
// concurrently from document compilations. Derived queries (assignability)
// are memoized with insert-if-absent semantics so repeated lookups never
// recompute.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*Class

	assignable sync.Map // "from|to" -> bool
}

func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]*Class)}
}

// Register adds a class to the registry, filling in SimpleName, Package, and
// omitted visibilities (public) so metadata tables can leave defaults out.
// Registering a name twice keeps the first entry.
func (r *Registry) Register(c *Class) {
	if c.SimpleName == "" {
		c.SimpleName = simpleName(c.Name)
	}
	if c.Package == "" {
		c.Package = packageOf(c.Name)
	}
	if c.Kind == "" {
		c.Kind = ClassKindClass
	}
	if c.Visibility == "" {
		c.Visibility = VisibilityPublic
	}
	for i := range c.Constructors {
		if c.Constructors[i].Visibility == "" {
			c.Constructors[i].Visibility = VisibilityPublic
		}
	}
	for i := range c.Fields {
		if c.Fields[i].Visibility == "" {
			c.Fields[i].Visibility = VisibilityPublic
		}
	}
	for i := range c.Methods {
		if c.Methods[i].Visibility == "" {
			c.Methods[i].Visibility = VisibilityPublic
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.classes[c.Name]; ok {
		return
	}
	r.classes[c.Name] = c
}

// Lookup returns the class registered under the fully qualified name.
func (r *Registry) Lookup(name string) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[name]
	return c, ok
}

// Names returns every registered class name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AssignableTo reports whether a value of type from can be assigned to a slot
// of type to. The relation is reflexive, follows superclasses and interfaces,
// and treats a primitive and its wrapper as interchangeable. Unknown types
// are only assignable to themselves and to java.lang.Object.
func (r *Registry) AssignableTo(from, to string) bool {
	from = Boxed(from)
	to = Boxed(to)
	if from == to {
		return true
	}
	if to == "java.lang.Object" {
		return true
	}
	key := from + "|" + to
	if v, ok := r.assignable.Load(key); ok {
		return v.(bool)
	}
	result := r.assignableWalk(from, to, make(map[string]bool))
	actual, _ := r.assignable.LoadOrStore(key, result)
	return actual.(bool)
}

func (r *Registry) assignableWalk(from, to string, seen map[string]bool) bool {
	if from == to {
		return true
	}
	if seen[from] {
		return false
	}
	seen[from] = true
	c, ok := r.Lookup(from)
	if !ok {
		return false
	}
	if c.SuperClass != "" && r.assignableWalk(c.SuperClass, to, seen) {
		return true
	}
	for _, iface := range c.Interfaces {
		if r.assignableWalk(iface, to, seen) {
			return true
		}
	}
	return false
}

// Ancestors returns the class and each of its superclasses, most derived
// first. Unknown superclass names end the walk.
func (r *Registry) Ancestors(name string) []*Class {
	var chain []*Class
	seen := make(map[string]bool)
	for name != "" && !seen[name] {
		seen[name] = true
		c, ok := r.Lookup(name)
		if !ok {
			break
		}
		chain = append(chain, c)
		name = c.SuperClass
	}
	return chain
}

// FunctionalMethod returns the single abstract method of an interface. The
// second result is false when the class is not an interface or declares zero
// or several abstract methods.
func (r *Registry) FunctionalMethod(c *Class) (*Method, bool) {
	if !c.IsInterface() {
		return nil, false
	}
	var found *Method
	for i := range c.Methods {
		if !c.Methods[i].IsAbstract {
			continue
		}
		if found != nil {
			return nil, false
		}
		found = &c.Methods[i]
	}
	if found == nil {
		return nil, false
	}
	return found, true
}

// IsCollection reports whether the named type is a java.util.Collection.
func (r *Registry) IsCollection(name string) bool {
	return r.AssignableTo(name, "java.util.Collection")
}

// IsObservable reports whether the named type is an observable (bindable)
// list, which supports bulk addition.
func (r *Registry) IsObservable(name string) bool {
	return r.AssignableTo(name, "javafx.collections.ObservableList")
}

func simpleName(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i+1:]
		}
	}
	return name
}

func packageOf(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i]
		}
	}
	return ""
}
