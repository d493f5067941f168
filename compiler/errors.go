package compiler

import (
	"fmt"
	"strings"
)

// TypeResolutionError reports an unknown or ambiguous type name. Fatal for
// the document being compiled.
type TypeResolutionError struct {
	Name   string
	Reason string
}

func (e *TypeResolutionError) Error() string {
	return fmt.Sprintf("resolve type %s: %s", e.Name, e.Reason)
}

// PropertyResolutionError reports a property that could not be bound to a
// setter, collection getter, constructor argument, or static setter. It is
// recoverable: the resolver logs it and drops the property.
type PropertyResolutionError struct {
	Type     string
	Property string
	Reason   string
}

func (e *PropertyResolutionError) Error() string {
	return fmt.Sprintf("property %s on %s: %s", e.Property, e.Type, e.Reason)
}

// GenericIndexError reports generic-argument comment annotations whose
// indices do not form a contiguous run starting at zero.
type GenericIndexError struct {
	Type    string
	Indices []int
}

func (e *GenericIndexError) Error() string {
	parts := make([]string, len(e.Indices))
	for i, idx := range e.Indices {
		parts[i] = fmt.Sprintf("%d", idx)
	}
	return fmt.Sprintf("generic annotations on %s: indices {%s} are not contiguous from 0",
		e.Type, strings.Join(parts, ", "))
}

// ConstructorMatchError reports that no public all-named constructor covers
// the named arguments a node requires.
type ConstructorMatchError struct {
	Type     string
	Required []string
}

func (e *ConstructorMatchError) Error() string {
	return fmt.Sprintf("no constructor of %s accepts named arguments {%s}",
		e.Type, strings.Join(e.Required, ", "))
}

// FunctionalInterfaceError reports a method-reference value bound to a
// property whose type is not a single-abstract-method interface.
type FunctionalInterfaceError struct {
	Type     string
	Property string
}

func (e *FunctionalInterfaceError) Error() string {
	return fmt.Sprintf("property %s: %s is not a functional interface", e.Property, e.Type)
}

// ControllerResolutionError reports a missing or abstract controller type.
type ControllerResolutionError struct {
	Name   string
	Reason string
}

func (e *ControllerResolutionError) Error() string {
	return fmt.Sprintf("controller %s: %s", e.Name, e.Reason)
}
