package introspect

import "strings"

// Bean-style accessor derivation: the first character of the property name
// is upper-cased, the rest is kept as written.

func SetterName(property string) string {
	return "set" + Capitalize(property)
}

func GetterName(property string) string {
	return "get" + Capitalize(property)
}

func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FindSetters returns the non-static single-parameter setters for a property
// on the class or any superclass, one per distinct parameter type. Overrides
// count once.
func (r *Registry) FindSetters(class *Class, property string) []*Method {
	wanted := SetterName(property)
	seen := make(map[string]bool)
	var setters []*Method
	for _, ancestor := range r.Ancestors(class.Name) {
		for _, m := range ancestor.MethodsByName(wanted) {
			if m.IsStatic || len(m.Parameters) != 1 {
				continue
			}
			key := m.Parameters[0].Type.Erasure().String()
			if seen[key] {
				continue
			}
			seen[key] = true
			setters = append(setters, m)
		}
	}
	return setters
}

// FindCollectionGetter returns the first non-static zero-parameter getter
// for a property returning a collection type, searching the class and its
// superclasses.
func (r *Registry) FindCollectionGetter(class *Class, property string) *Method {
	wanted := GetterName(property)
	for _, ancestor := range r.Ancestors(class.Name) {
		for _, m := range ancestor.MethodsByName(wanted) {
			if m.IsStatic || len(m.Parameters) != 0 {
				continue
			}
			if r.IsCollection(m.ReturnType.Name) {
				return m
			}
		}
	}
	return nil
}

// FindStaticSetters returns the two-parameter static setters for a property
// declared on owner whose first parameter accepts the target type.
func (r *Registry) FindStaticSetters(owner *Class, property, target string) []*Method {
	wanted := SetterName(property)
	var setters []*Method
	for _, m := range owner.MethodsByName(wanted) {
		if !m.IsStatic || len(m.Parameters) != 2 {
			continue
		}
		if !r.AssignableTo(target, m.Parameters[0].Type.Name) {
			continue
		}
		setters = append(setters, m)
	}
	return setters
}
