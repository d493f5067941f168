package introspect

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// The metadata table format is a JSON document produced ahead of time from
// the target object model. Field names mirror the in-memory model so a table
// can be written by hand for small object models.

type tableFile struct {
	Classes []tableClass `json:"classes"`
}

type tableClass struct {
	Name           string             `json:"name"`
	SuperClass     string             `json:"superClass,omitempty"`
	Interfaces     []string           `json:"interfaces,omitempty"`
	Kind           string             `json:"kind,omitempty"`
	Visibility     string             `json:"visibility,omitempty"`
	Abstract       bool               `json:"abstract,omitempty"`
	TypeParameters []string           `json:"typeParameters,omitempty"`
	Constructors   []tableConstructor `json:"constructors,omitempty"`
	Fields         []tableField       `json:"fields,omitempty"`
	Methods        []tableMethod      `json:"methods,omitempty"`
}

type tableConstructor struct {
	Visibility string           `json:"visibility,omitempty"`
	Parameters []tableParameter `json:"parameters,omitempty"`
}

type tableParameter struct {
	Name  string    `json:"name,omitempty"`
	Type  tableType `json:"type"`
	Named bool      `json:"named,omitempty"`
}

type tableField struct {
	Name       string    `json:"name"`
	Type       tableType `json:"type"`
	Visibility string    `json:"visibility,omitempty"`
	Static     bool      `json:"static,omitempty"`
	Final      bool      `json:"final,omitempty"`
}

type tableMethod struct {
	Name           string           `json:"name"`
	ReturnType     tableType        `json:"returnType"`
	Parameters     []tableParameter `json:"parameters,omitempty"`
	Visibility     string           `json:"visibility,omitempty"`
	Static         bool             `json:"static,omitempty"`
	Abstract       bool             `json:"abstract,omitempty"`
	TypeParameters []string         `json:"typeParameters,omitempty"`
}

type tableType struct {
	Name          string      `json:"name"`
	ArrayDepth    int         `json:"arrayDepth,omitempty"`
	TypeArguments []tableType `json:"typeArguments,omitempty"`
}

// LoadFile reads a JSON metadata table from path into the registry.
func (r *Registry) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open metadata table: %w", err)
	}
	defer f.Close()
	if err := r.Load(f); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads a JSON metadata table into the registry.
func (r *Registry) Load(rd io.Reader) error {
	var table tableFile
	if err := json.NewDecoder(rd).Decode(&table); err != nil {
		return fmt.Errorf("decode metadata table: %w", err)
	}
	for _, tc := range table.Classes {
		if tc.Name == "" {
			return fmt.Errorf("metadata table: class entry without a name")
		}
		r.Register(classFromTable(tc))
	}
	return nil
}

func classFromTable(tc tableClass) *Class {
	c := &Class{
		Name:           tc.Name,
		SuperClass:     tc.SuperClass,
		Interfaces:     tc.Interfaces,
		Kind:           ClassKind(tc.Kind),
		Visibility:     visibilityFromTable(tc.Visibility),
		IsAbstract:     tc.Abstract,
		TypeParameters: tc.TypeParameters,
	}
	if c.Kind == "" {
		c.Kind = ClassKindClass
	}
	for _, ctor := range tc.Constructors {
		c.Constructors = append(c.Constructors, Constructor{
			Visibility: visibilityFromTable(ctor.Visibility),
			Parameters: parametersFromTable(ctor.Parameters),
		})
	}
	for _, f := range tc.Fields {
		c.Fields = append(c.Fields, Field{
			Name:       f.Name,
			Type:       typeFromTable(f.Type),
			Visibility: visibilityFromTable(f.Visibility),
			IsStatic:   f.Static,
			IsFinal:    f.Final,
		})
	}
	for _, m := range tc.Methods {
		c.Methods = append(c.Methods, Method{
			Name:           m.Name,
			ReturnType:     typeFromTable(m.ReturnType),
			Parameters:     parametersFromTable(m.Parameters),
			Visibility:     visibilityFromTable(m.Visibility),
			IsStatic:       m.Static,
			IsAbstract:     m.Abstract,
			TypeParameters: m.TypeParameters,
		})
	}
	return c
}

func parametersFromTable(params []tableParameter) []Parameter {
	result := make([]Parameter, len(params))
	for i, p := range params {
		result[i] = Parameter{
			Name:  p.Name,
			Type:  typeFromTable(p.Type),
			Named: p.Named,
		}
	}
	return result
}

func typeFromTable(tt tableType) Type {
	t := Type{Name: tt.Name, ArrayDepth: tt.ArrayDepth}
	for _, arg := range tt.TypeArguments {
		t.TypeArguments = append(t.TypeArguments, typeFromTable(arg))
	}
	if t.Name == "" {
		t.Name = "void"
	}
	return t
}

func visibilityFromTable(v string) Visibility {
	switch v {
	case "", "public":
		return VisibilityPublic
	case "protected":
		return VisibilityProtected
	case "private":
		return VisibilityPrivate
	default:
		return VisibilityPackage
	}
}
