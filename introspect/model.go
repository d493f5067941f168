package introspect

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
)

// Rank orders visibilities from most to least public. Lower is more public.
func (v Visibility) Rank() int {
	switch v {
	case VisibilityPublic:
		return 0
	case VisibilityProtected:
		return 1
	case VisibilityPackage:
		return 2
	default:
		return 3
	}
}

type ClassKind string

const (
	ClassKindClass     ClassKind = "class"
	ClassKindInterface ClassKind = "interface"
	ClassKindEnum      ClassKind = "enum"
)

// Class describes a type of the target object model. Instances come from a
// metadata table precompiled ahead of time, not from live reflection.
type Class struct {
	Name           string
	SimpleName     string
	Package        string
	SuperClass     string
	Interfaces     []string
	Kind           ClassKind
	Visibility     Visibility
	IsAbstract     bool
	TypeParameters []string
	Constructors   []Constructor
	Fields         []Field
	Methods        []Method
}

type Constructor struct {
	Visibility Visibility
	Parameters []Parameter
}

// AllNamed reports whether every parameter carries a named-argument binding.
// A zero-parameter constructor is vacuously all-named.
func (c Constructor) AllNamed() bool {
	for _, p := range c.Parameters {
		if !p.Named {
			return false
		}
	}
	return true
}

type Parameter struct {
	Name  string
	Type  Type
	Named bool
}

type Field struct {
	Name       string
	Type       Type
	Visibility Visibility
	IsStatic   bool
	IsFinal    bool
}

type Method struct {
	Name           string
	ReturnType     Type
	Parameters     []Parameter
	Visibility     Visibility
	IsStatic       bool
	IsAbstract     bool
	TypeParameters []string
}

// Method returns the first declared method with the given name, or nil.
func (c *Class) Method(name string) *Method {
	for i := range c.Methods {
		if c.Methods[i].Name == name {
			return &c.Methods[i]
		}
	}
	return nil
}

// MethodsByName returns every declared method with the given name.
func (c *Class) MethodsByName(name string) []*Method {
	var methods []*Method
	for i := range c.Methods {
		if c.Methods[i].Name == name {
			methods = append(methods, &c.Methods[i])
		}
	}
	return methods
}

// Field returns the declared field with the given name, or nil.
func (c *Class) Field(name string) *Field {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return &c.Fields[i]
		}
	}
	return nil
}

func (c *Class) IsInterface() bool {
	return c.Kind == ClassKindInterface
}

func (c *Class) IsEnum() bool {
	return c.Kind == ClassKindEnum
}
