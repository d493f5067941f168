package compiler

import (
	"github.com/fxmlkit/fxc/introspect"
)

// resolveProperty binds one attribute against the target class. Resolution
// tries, in order: a single-parameter setter, a collection getter, and a
// named constructor argument. Dotted names resolve a static setter on the
// named owner instead. Unresolvable or ambiguous bindings are logged and
// dropped (nil, nil).
func (c *converter) resolveProperty(target *introspect.Class, name, value string) (Property, error) {
	if owner, member, ok := splitStaticName(name); ok {
		return c.resolveStaticProperty(target, owner, member, value)
	}

	switch setters := c.reg.FindSetters(target, name); len(setters) {
	case 0:
		// Fall through to the collection-getter strategy.
	case 1:
		return &ObjectProperty{
			Name:   name,
			Method: setters[0].Name,
			Type:   setters[0].Parameters[0].Type,
			Value:  value,
		}, nil
	default:
		c.dropProperty(target, name, "multiple setters match")
		return nil, nil
	}

	if getter := c.reg.FindCollectionGetter(target, name); getter != nil {
		return &ObjectProperty{
			Name:       name,
			Method:     getter.Name,
			Collection: true,
			Type:       elementType(getter.ReturnType),
			Value:      value,
		}, nil
	}

	types := namedConstructorArgumentTypes(target, name)
	switch len(types) {
	case 1:
		return &ConstructorProperty{Name: name, Value: value, Type: types[0]}, nil
	case 0:
		c.dropProperty(target, name, "no setter, collection getter, or constructor argument")
	default:
		c.dropProperty(target, name, "constructor argument type is ambiguous")
	}
	return nil, nil
}

func (c *converter) resolveStaticProperty(target *introspect.Class, ownerName, member, value string) (Property, error) {
	owner, err := c.findType(ownerName)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		c.dropProperty(target, ownerName+"."+member, "unknown owner type")
		return nil, nil
	}

	switch setters := c.reg.FindStaticSetters(owner, member, target.Name); len(setters) {
	case 1:
		return &StaticProperty{
			Name:   member,
			Owner:  owner,
			Method: setters[0].Name,
			Type:   setters[0].Parameters[1].Type,
			Value:  value,
		}, nil
	case 0:
		c.dropProperty(target, ownerName+"."+member, "no matching static setter")
	default:
		c.dropProperty(target, ownerName+"."+member, "multiple static setters match")
	}
	return nil, nil
}

func (c *converter) dropProperty(target *introspect.Class, name, reason string) {
	err := &PropertyResolutionError{Type: target.Name, Property: name, Reason: reason}
	log.Warningf("dropping property: %s", err.Error())
}

// namedConstructorArgumentTypes collects the distinct declared types bound
// to a parameter name across the public constructors whose parameters are
// all name-bound.
func namedConstructorArgumentTypes(target *introspect.Class, name string) []introspect.Type {
	seen := make(map[string]bool)
	var types []introspect.Type
	for _, ctor := range target.Constructors {
		if ctor.Visibility != introspect.VisibilityPublic || !ctor.AllNamed() {
			continue
		}
		for _, p := range ctor.Parameters {
			if p.Name != name {
				continue
			}
			key := p.Type.String()
			if !seen[key] {
				seen[key] = true
				types = append(types, p.Type)
			}
		}
	}
	return types
}

// elementType returns the single type argument of a parameterized collection
// type, defaulting to java.lang.Object for raw collections.
func elementType(t introspect.Type) introspect.Type {
	if len(t.TypeArguments) == 1 {
		return t.TypeArguments[0]
	}
	return introspect.Type{Name: "java.lang.Object"}
}
