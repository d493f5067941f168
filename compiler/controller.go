package compiler

import (
	"github.com/fxmlkit/fxc/introspect"
)

// Controller describes the externally supplied type whose members satisfy
// method references found in the markup.
type Controller struct {
	ClassName string
	Class     *introspect.Class
	Fields    []ControllerField
	Methods   []ControllerMethod
}

type ControllerField struct {
	Visibility introspect.Visibility
	Name       string
	Type       introspect.Type
}

type ControllerMethod struct {
	Visibility introspect.Visibility
	Name       string
	ReturnType introspect.Type
	Parameters []introspect.Type
}

// resolveController looks up the controller type and gathers the non-static
// members of the type and every ancestor. Overridden methods keep the most
// derived declaration.
func resolveController(reg *introspect.Registry, name string) (*Controller, error) {
	class, ok := reg.Lookup(name)
	if !ok {
		return nil, &ControllerResolutionError{Name: name, Reason: "unknown type"}
	}
	if class.IsAbstract {
		return nil, &ControllerResolutionError{Name: name, Reason: "type is abstract"}
	}

	ctrl := &Controller{ClassName: name, Class: class}
	seenField := make(map[string]bool)
	seenMethod := make(map[string]bool)
	for _, ancestor := range reg.Ancestors(name) {
		for _, f := range ancestor.Fields {
			if f.IsStatic || f.IsFinal || seenField[f.Name] {
				continue
			}
			seenField[f.Name] = true
			ctrl.Fields = append(ctrl.Fields, ControllerField{
				Visibility: f.Visibility,
				Name:       f.Name,
				Type:       f.Type,
			})
		}
		for _, m := range ancestor.Methods {
			if m.IsStatic {
				continue
			}
			key := methodKey(m)
			if seenMethod[key] {
				continue
			}
			seenMethod[key] = true
			cm := ControllerMethod{
				Visibility: m.Visibility,
				Name:       m.Name,
				ReturnType: m.ReturnType,
			}
			for _, p := range m.Parameters {
				cm.Parameters = append(cm.Parameters, p.Type)
			}
			ctrl.Methods = append(ctrl.Methods, cm)
		}
	}
	return ctrl, nil
}

func methodKey(m introspect.Method) string {
	key := m.Name
	for _, p := range m.Parameters {
		key += "|" + p.Type.Erasure().String()
	}
	return key
}
