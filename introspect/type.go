package introspect

import "strings"

// Type is a reference to a Java type as it appears in a member signature,
// optionally parameterized and optionally an array.
type Type struct {
	Name          string
	ArrayDepth    int
	TypeArguments []Type
}

func (t Type) String() string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	if len(t.TypeArguments) > 0 {
		sb.WriteString("<")
		for i, a := range t.TypeArguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.String())
		}
		sb.WriteString(">")
	}
	for i := 0; i < t.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

func (t Type) IsPrimitive() bool {
	if t.ArrayDepth > 0 {
		return false
	}
	switch t.Name {
	case "boolean", "byte", "char", "short", "int", "long", "float", "double":
		return true
	}
	return false
}

func (t Type) IsArray() bool {
	return t.ArrayDepth > 0
}

func (t Type) IsVoid() bool {
	return t.Name == "void" && t.ArrayDepth == 0
}

// Erasure drops type arguments, keeping name and array depth.
func (t Type) Erasure() Type {
	return Type{Name: t.Name, ArrayDepth: t.ArrayDepth}
}

// SimpleName returns the last dot-separated component of the type name.
func (t Type) SimpleName() string {
	name := t.Name
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i+1:]
		}
	}
	return name
}

// boxed maps primitive names to their wrapper class names.
var boxed = map[string]string{
	"boolean": "java.lang.Boolean",
	"byte":    "java.lang.Byte",
	"char":    "java.lang.Character",
	"short":   "java.lang.Short",
	"int":     "java.lang.Integer",
	"long":    "java.lang.Long",
	"float":   "java.lang.Float",
	"double":  "java.lang.Double",
}

// Boxed returns the wrapper class name for a primitive type name, or the
// name unchanged.
func Boxed(name string) string {
	if b, ok := boxed[name]; ok {
		return b
	}
	return name
}
