package format

import (
	"fmt"
	"strings"

	"github.com/fxmlkit/fxc/compiler"
	"github.com/fxmlkit/fxc/introspect"
)

// literal encodes an attribute value as a Java expression of the given
// declared type.
func (e *JavaEncoder) literal(t introspect.Type, value string) (string, error) {
	switch {
	case strings.HasPrefix(value, compiler.ResourcePrefix):
		return "resources.getString(" + quote(value[1:]) + ")", nil
	case strings.HasPrefix(value, compiler.RefPrefix):
		return "this::" + value[1:], nil
	case strings.HasPrefix(value, compiler.RawPrefix):
		return value[1:], nil
	case strings.HasPrefix(value, `\`):
		value = value[1:]
	}

	switch t.Name {
	case "java.lang.String", "String":
		return quote(value), nil
	case "boolean", "java.lang.Boolean":
		return value, nil
	case "int", "java.lang.Integer":
		return value, nil
	case "long", "java.lang.Long":
		return value + "L", nil
	case "short", "java.lang.Short":
		return "(short) " + value, nil
	case "byte", "java.lang.Byte":
		return "(byte) " + value, nil
	case "double", "java.lang.Double":
		return floatingLiteral("Double", value, ""), nil
	case "float", "java.lang.Float":
		return floatingLiteral("Float", value, "F"), nil
	case "char", "java.lang.Character":
		return quoteChar(value)
	}

	class, ok := e.reg.Lookup(t.Name)
	if !ok {
		return "", fmt.Errorf("encoding %q: unknown type %s", value, t.Name)
	}
	if class.IsEnum() {
		return class.SimpleName + "." + value, nil
	}
	if hasSingleStringConstructor(class) {
		return "new " + class.SimpleName + "(" + quote(value) + ")", nil
	}
	if valueOfParameter(class) != nil {
		return class.SimpleName + ".valueOf(" + quote(value) + ")", nil
	}
	return "", fmt.Errorf("encoding %q: no literal form for type %s", value, t.Name)
}

// valueExpression builds the initializer for an explicit leaf value.
func (e *JavaEncoder) valueExpression(v *compiler.ValueNode) (string, error) {
	value := v.Value
	switch {
	case strings.HasPrefix(value, compiler.ResourcePrefix):
		return "resources.getString(" + quote(value[1:]) + ")", nil
	case strings.HasPrefix(value, compiler.RawPrefix):
		return value[1:], nil
	case strings.HasPrefix(value, `\`):
		value = value[1:]
	}
	if v.Class.Name == "java.lang.String" {
		return quote(value), nil
	}
	if param := valueOfParameter(v.Class); param != nil {
		if param.Name == "java.lang.String" || param.Name == "String" {
			return v.Class.SimpleName + ".valueOf(" + quote(value) + ")", nil
		}
	}
	return e.literal(introspect.Type{Name: v.Class.Name}, value)
}

// floatingLiteral maps the textual infinity and NaN spellings onto the boxed
// type's constants and normalizes plain numbers to have a decimal point.
func floatingLiteral(boxed, value, suffix string) string {
	switch value {
	case "Infinity":
		return boxed + ".POSITIVE_INFINITY"
	case "-Infinity":
		return boxed + ".NEGATIVE_INFINITY"
	case "NaN":
		return boxed + ".NaN"
	}
	if !strings.ContainsAny(value, ".eE") {
		value += ".0"
	}
	return value + suffix
}

func hasSingleStringConstructor(class *introspect.Class) bool {
	count := 0
	match := false
	for _, ctor := range class.Constructors {
		if ctor.Visibility != introspect.VisibilityPublic {
			continue
		}
		count++
		if len(ctor.Parameters) == 1 {
			name := ctor.Parameters[0].Type.Name
			match = name == "java.lang.String" || name == "String"
		}
	}
	return count == 1 && match
}

// valueOfParameter returns the parameter type of the class's static
// single-argument valueOf factory, or nil when there is none.
func valueOfParameter(class *introspect.Class) *introspect.Type {
	for _, m := range class.MethodsByName("valueOf") {
		if m.IsStatic && len(m.Parameters) == 1 && m.Visibility == introspect.VisibilityPublic {
			return &m.Parameters[0].Type
		}
	}
	return nil
}

// zeroValue is the Java default for an unbound constructor parameter.
func zeroValue(t introspect.Type) string {
	switch t.Name {
	case "boolean":
		return "false"
	case "char":
		return "(char) 0"
	case "float":
		return "0.0F"
	case "double":
		return "0.0"
	case "long":
		return "0L"
	case "int", "short", "byte":
		return "0"
	}
	return "null"
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		sb.WriteString(escapeRune(r, '"'))
	}
	sb.WriteByte('"')
	return sb.String()
}

func quoteChar(s string) (string, error) {
	runes := []rune(s)
	if len(runes) != 1 {
		return "", fmt.Errorf("encoding %q: not a single character", s)
	}
	return "'" + escapeRune(runes[0], '\'') + "'", nil
}

func escapeRune(r, delimiter rune) string {
	switch r {
	case delimiter:
		return `\` + string(delimiter)
	case '\\':
		return `\\`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	}
	return string(r)
}
