package format

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/fxmlkit/fxc/compiler"
	"github.com/fxmlkit/fxc/introspect"
)

// Options configures generated source.
type Options struct {
	// Package is the package the generated class is declared in. Empty
	// means the default package.
	Package string
	// Implements lists extra interfaces the generated class implements.
	Implements []string
}

// JavaEncoder writes a processed document as a Java class that rebuilds the
// same object graph without the markup file. Output is deterministic for
// identical inputs.
type JavaEncoder struct {
	w    io.Writer
	reg  *introspect.Registry
	opts Options
	doc  *compiler.Document
}

func NewJavaEncoder(w io.Writer, reg *introspect.Registry, opts Options) *JavaEncoder {
	return &JavaEncoder{w: w, reg: reg, opts: opts}
}

func (e *JavaEncoder) Encode(doc *compiler.Document) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JavaEncoder) MarshalText() ([]byte, error) {
	doc := e.doc

	statements, err := e.constructorStatements()
	if err != nil {
		return nil, err
	}
	methods, abstract, err := e.methodBlocks()
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	if e.opts.Package != "" {
		fmt.Fprintf(&sb, "package %s;\n\n", e.opts.Package)
	}
	for _, imp := range doc.Imports {
		fmt.Fprintf(&sb, "import %s;\n", imp)
	}
	if len(doc.Imports) > 0 {
		sb.WriteString("\n")
	}

	e.writeClassDeclaration(&sb, abstract)
	sb.WriteString(" {\n")
	e.writeFields(&sb)

	fmt.Fprintf(&sb, "    public %s(%s) {\n", doc.ClassName, strings.Join(e.constructorParameters(), ", "))
	for _, stmt := range statements {
		sb.WriteString("        ")
		sb.WriteString(stmt)
		sb.WriteString("\n")
	}
	sb.WriteString("    }\n")

	for _, method := range methods {
		sb.WriteString("\n")
		sb.WriteString(method)
	}

	sb.WriteString("}\n")
	return []byte(sb.String()), nil
}

func (e *JavaEncoder) writeClassDeclaration(sb *strings.Builder, abstract bool) {
	sb.WriteString("public ")
	if abstract {
		sb.WriteString("abstract ")
	}
	sb.WriteString("class ")
	sb.WriteString(e.doc.ClassName)
	if root, ok := e.doc.Root.(*compiler.ObjectNode); ok {
		sb.WriteString(" extends ")
		sb.WriteString(typeWithGenerics(root.Class.SimpleName, root.Generics))
	}
	if len(e.opts.Implements) > 0 {
		sb.WriteString(" implements ")
		sb.WriteString(strings.Join(e.opts.Implements, ", "))
	}
}

func (e *JavaEncoder) writeFields(sb *strings.Builder) {
	fields := append([]compiler.FieldDecl(nil), e.doc.Fields...)
	sort.SliceStable(fields, func(i, j int) bool {
		if fields[i].Internal != fields[j].Internal {
			return !fields[i].Internal
		}
		return fields[i].Name < fields[j].Name
	})
	for _, f := range fields {
		visibility := "protected"
		if f.Internal {
			visibility = "private"
		}
		fmt.Fprintf(sb, "    %s final %s %s;\n", visibility, typeWithGenerics(f.Type, f.Generics), f.Name)
	}
	if e.doc.Controller != nil {
		fmt.Fprintf(sb, "    private final %s controller;\n", e.doc.Controller.ClassName)
	}
	if len(fields) > 0 || e.doc.Controller != nil {
		sb.WriteString("\n")
	}
}

func (e *JavaEncoder) constructorParameters() []string {
	var params []string
	if e.doc.Resources {
		params = append(params, "java.util.ResourceBundle resources")
	}
	if e.doc.Controller != nil {
		params = append(params, e.doc.Controller.ClassName+" controller")
	}
	return params
}

func (e *JavaEncoder) constructorStatements() ([]string, error) {
	var stmts []string

	if root, ok := e.doc.Root.(*compiler.ObjectNode); ok {
		args, err := e.constructorArguments(root)
		if err != nil {
			return nil, err
		}
		if len(args) > 0 {
			stmts = append(stmts, "super("+strings.Join(args, ", ")+");")
		}
	}
	if e.doc.Controller != nil {
		stmts = append(stmts, "this.controller = controller;")
	}

	var walkErr error
	walkNodes(e.doc.Root, func(n compiler.Node) {
		if walkErr != nil {
			return
		}
		walkErr = e.instantiate(&stmts, n)
	})
	if walkErr != nil {
		return nil, walkErr
	}

	walkNodes(e.doc.Root, func(n compiler.Node) {
		if walkErr != nil {
			return
		}
		if obj, ok := n.(*compiler.ObjectNode); ok {
			walkErr = e.applyProperties(&stmts, obj)
		}
	})
	if walkErr != nil {
		return nil, walkErr
	}

	walkNodes(e.doc.Root, func(n compiler.Node) {
		if walkErr != nil {
			return
		}
		if obj, ok := n.(*compiler.ObjectNode); ok {
			walkErr = e.wireChildren(&stmts, obj)
		}
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return stmts, nil
}

func (e *JavaEncoder) instantiate(stmts *[]string, n compiler.Node) error {
	switch t := n.(type) {
	case *compiler.ObjectNode:
		if t.ID == compiler.RootID {
			return nil
		}
		args, err := e.constructorArguments(t)
		if err != nil {
			return err
		}
		*stmts = append(*stmts, fmt.Sprintf("this.%s = new %s(%s);",
			t.ID, typeWithGenerics(t.Class.SimpleName, t.Generics), strings.Join(args, ", ")))
	case *compiler.ValueNode:
		expr, err := e.valueExpression(t)
		if err != nil {
			return err
		}
		*stmts = append(*stmts, fmt.Sprintf("this.%s = %s;", t.ID, expr))
	}
	return nil
}

// constructorArguments picks the minimal public all-named constructor that
// covers the node's named arguments; unbound parameters get the zero value
// of their declared type.
func (e *JavaEncoder) constructorArguments(n *compiler.ObjectNode) ([]string, error) {
	required := make(map[string]*compiler.ConstructorProperty)
	for _, p := range n.Properties {
		if cp, ok := p.(*compiler.ConstructorProperty); ok {
			required[cp.Name] = cp
		}
	}

	var best *introspect.Constructor
	for i := range n.Class.Constructors {
		ctor := &n.Class.Constructors[i]
		if ctor.Visibility != introspect.VisibilityPublic || !ctor.AllNamed() {
			continue
		}
		if !coversRequired(ctor, required) {
			continue
		}
		if best == nil || len(ctor.Parameters) < len(best.Parameters) {
			best = ctor
		}
	}
	if best == nil {
		if len(n.Class.Constructors) == 0 && len(required) == 0 {
			return nil, nil
		}
		names := make([]string, 0, len(required))
		for name := range required {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, &compiler.ConstructorMatchError{Type: n.Class.Name, Required: names}
	}

	args := make([]string, len(best.Parameters))
	for i, param := range best.Parameters {
		if cp, ok := required[param.Name]; ok {
			value, err := e.literal(param.Type, cp.Value)
			if err != nil {
				return nil, err
			}
			args[i] = value
		} else {
			args[i] = zeroValue(param.Type)
		}
	}
	return args, nil
}

func coversRequired(ctor *introspect.Constructor, required map[string]*compiler.ConstructorProperty) bool {
	names := make(map[string]bool, len(ctor.Parameters))
	for _, p := range ctor.Parameters {
		names[p.Name] = true
	}
	for name := range required {
		if !names[name] {
			return false
		}
	}
	return true
}

func (e *JavaEncoder) applyProperties(stmts *[]string, n *compiler.ObjectNode) error {
	target := e.expression(n)
	props := append([]compiler.Property(nil), n.Properties...)
	sort.SliceStable(props, func(i, j int) bool {
		return props[i].PropertyName() < props[j].PropertyName()
	})
	for _, p := range props {
		switch t := p.(type) {
		case *compiler.ObjectProperty:
			value, err := e.literal(t.Type, t.Value)
			if err != nil {
				return err
			}
			if t.Collection {
				*stmts = append(*stmts, fmt.Sprintf("%s.%s().add(%s);", target, t.Method, value))
			} else {
				*stmts = append(*stmts, fmt.Sprintf("%s.%s(%s);", target, t.Method, value))
			}
		case *compiler.StaticProperty:
			value, err := e.literal(t.Type, t.Value)
			if err != nil {
				return err
			}
			*stmts = append(*stmts, fmt.Sprintf("%s.%s(%s, %s);", t.Owner.SimpleName, t.Method, target, value))
		}
	}
	return nil
}

func (e *JavaEncoder) wireChildren(stmts *[]string, parent *compiler.ObjectNode) error {
	parentExpr := e.expression(parent)
	for _, child := range parent.Children {
		switch t := child.(type) {
		case *compiler.ObjectNode, *compiler.ValueNode, *compiler.ConstantNode:
			e.wireChild(stmts, parent, parentExpr, child)
		case *compiler.WrapperNode:
			e.wireWrapper(stmts, parent, parentExpr, t)
		case *compiler.StaticMethodNode:
			e.wireStatic(stmts, parent, parentExpr, t)
		}
	}
	return nil
}

// wireChild adds a direct child to the parent's children collection when the
// parent has one and the child satisfies its element type.
func (e *JavaEncoder) wireChild(stmts *[]string, parent *compiler.ObjectNode, parentExpr string, child compiler.Node) {
	getter := e.reg.FindCollectionGetter(parent.Class, "children")
	if getter == nil {
		return
	}
	if !e.reg.AssignableTo(nodeTypeName(child), elementTypeName(getter.ReturnType)) {
		return
	}
	*stmts = append(*stmts, fmt.Sprintf("%s.%s().add(%s);", parentExpr, getter.Name, e.expression(child)))
}

// wireWrapper binds grouped children: a unique single-argument setter when
// the group has exactly one child, otherwise the property's collection
// getter, bulk-adding when the collection is observable.
func (e *JavaEncoder) wireWrapper(stmts *[]string, parent *compiler.ObjectNode, parentExpr string, wrapper *compiler.WrapperNode) {
	var exprs []string
	for _, child := range wrapper.Children {
		if expr := e.expression(child); expr != "" {
			exprs = append(exprs, expr)
		}
	}
	if len(exprs) == 0 {
		return
	}

	if len(wrapper.Children) == 1 {
		if setters := e.reg.FindSetters(parent.Class, wrapper.Property); len(setters) == 1 {
			*stmts = append(*stmts, fmt.Sprintf("%s.%s(%s);", parentExpr, setters[0].Name, exprs[0]))
			return
		}
	}

	getter := e.reg.FindCollectionGetter(parent.Class, wrapper.Property)
	if getter == nil {
		return
	}
	if e.reg.IsObservable(getter.ReturnType.Name) {
		*stmts = append(*stmts, fmt.Sprintf("%s.%s().addAll(%s);", parentExpr, getter.Name, strings.Join(exprs, ", ")))
		return
	}
	for _, expr := range exprs {
		*stmts = append(*stmts, fmt.Sprintf("%s.%s().add(%s);", parentExpr, getter.Name, expr))
	}
}

// wireStatic invokes the owner's matching two-argument static setter, if one
// exists for the argument types. No match produces no statement.
func (e *JavaEncoder) wireStatic(stmts *[]string, parent *compiler.ObjectNode, parentExpr string, node *compiler.StaticMethodNode) {
	var argExpr, argType string
	for _, child := range node.Children {
		if expr := e.expression(child); expr != "" {
			argExpr = expr
			argType = nodeTypeName(child)
			break
		}
	}
	if argExpr == "" {
		return
	}
	for _, setter := range e.reg.FindStaticSetters(node.Class, node.Method, parent.Class.Name) {
		if e.reg.AssignableTo(argType, setter.Parameters[1].Type.Name) {
			*stmts = append(*stmts, fmt.Sprintf("%s.%s(%s, %s);", node.Class.SimpleName, setter.Name, parentExpr, argExpr))
			return
		}
	}
}

func (e *JavaEncoder) methodBlocks() ([]string, bool, error) {
	var blocks []string
	abstract := false
	for _, decl := range e.doc.Methods {
		match := e.matchControllerMethod(decl)
		block, isAbstract := e.methodBlock(decl, match)
		blocks = append(blocks, block)
		abstract = abstract || isAbstract
	}
	return blocks, abstract, nil
}

// matchControllerMethod picks, among name- and type-compatible controller
// methods, the most public one; ties go to the largest parameter count.
func (e *JavaEncoder) matchControllerMethod(decl compiler.MethodDecl) *compiler.ControllerMethod {
	if e.doc.Controller == nil {
		return nil
	}
	var candidates []*compiler.ControllerMethod
	for i := range e.doc.Controller.Methods {
		m := &e.doc.Controller.Methods[i]
		if m.Name != decl.Name {
			continue
		}
		if len(m.Parameters) != 0 && !parametersCompatible(e.reg, decl.Parameters, m.Parameters) {
			continue
		}
		candidates = append(candidates, m)
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := candidates[i].Visibility.Rank(), candidates[j].Visibility.Rank()
		if ri != rj {
			return ri < rj
		}
		return len(candidates[i].Parameters) > len(candidates[j].Parameters)
	})
	return candidates[0]
}

func parametersCompatible(reg *introspect.Registry, args, params []introspect.Type) bool {
	if len(args) != len(params) {
		return false
	}
	for i := range args {
		if !reg.AssignableTo(args[i].Name, params[i].Name) {
			return false
		}
	}
	return true
}

func (e *JavaEncoder) methodBlock(decl compiler.MethodDecl, match *compiler.ControllerMethod) (string, bool) {
	names := parameterNames(decl.Parameters)
	params := make([]string, len(decl.Parameters))
	for i, t := range decl.Parameters {
		params[i] = t.String() + " " + names[i]
	}
	signature := fmt.Sprintf("%s %s(%s)", decl.ReturnType.String(), decl.Name, strings.Join(params, ", "))

	var sb strings.Builder
	if match == nil {
		fmt.Fprintf(&sb, "    protected abstract %s;\n", signature)
		return sb.String(), true
	}

	var args []string
	if len(match.Parameters) == len(decl.Parameters) {
		args = names
	}
	call := fmt.Sprintf("this.controller.%s(%s)", decl.Name, strings.Join(args, ", "))

	fmt.Fprintf(&sb, "    public %s {\n", signature)
	if match.Visibility == introspect.VisibilityPublic {
		if decl.ReturnType.IsVoid() {
			fmt.Fprintf(&sb, "        %s;\n", call)
		} else {
			fmt.Fprintf(&sb, "        return %s;\n", call)
		}
	} else {
		e.writeReflectiveCall(&sb, decl, match, names)
	}
	sb.WriteString("    }\n")
	return sb.String(), false
}

// writeReflectiveCall dispatches to a non-public controller method through
// the reflective handle mechanism.
func (e *JavaEncoder) writeReflectiveCall(sb *strings.Builder, decl compiler.MethodDecl, match *compiler.ControllerMethod, names []string) {
	classArgs := make([]string, 0, len(match.Parameters)+1)
	classArgs = append(classArgs, quote(decl.Name))
	for _, p := range match.Parameters {
		classArgs = append(classArgs, p.Erasure().String()+".class")
	}
	invokeArgs := append([]string{"this.controller"}, names[:len(match.Parameters)]...)

	sb.WriteString("        try {\n")
	fmt.Fprintf(sb, "            java.lang.reflect.Method method = this.controller.getClass().getDeclaredMethod(%s);\n",
		strings.Join(classArgs, ", "))
	sb.WriteString("            method.setAccessible(true);\n")
	if decl.ReturnType.IsVoid() {
		fmt.Fprintf(sb, "            method.invoke(%s);\n", strings.Join(invokeArgs, ", "))
	} else {
		fmt.Fprintf(sb, "            return (%s) method.invoke(%s);\n",
			introspect.Boxed(decl.ReturnType.Name), strings.Join(invokeArgs, ", "))
	}
	sb.WriteString("        } catch (ReflectiveOperationException e) {\n")
	sb.WriteString("            throw new RuntimeException(e);\n")
	sb.WriteString("        }\n")
}

// parameterNames derives readable parameter names from the parameter types,
// falling back to positional names for primitives and collisions.
func parameterNames(params []introspect.Type) []string {
	names := make([]string, len(params))
	used := make(map[string]bool)
	for i, t := range params {
		name := ""
		if !t.IsPrimitive() {
			name = strcase.ToLowerCamel(t.SimpleName())
		}
		if name == "" || used[name] {
			name = fmt.Sprintf("arg%d", i)
		}
		used[name] = true
		names[i] = name
	}
	return names
}

func (e *JavaEncoder) expression(n compiler.Node) string {
	switch t := n.(type) {
	case *compiler.ObjectNode:
		if t.ID == compiler.RootID {
			return "this"
		}
		return "this." + t.ID
	case *compiler.ValueNode:
		return "this." + t.ID
	case *compiler.ConstantNode:
		return t.Class.SimpleName + "." + t.Member
	}
	return ""
}

func nodeTypeName(n compiler.Node) string {
	switch t := n.(type) {
	case *compiler.ObjectNode:
		return t.Class.Name
	case *compiler.ValueNode:
		return t.Class.Name
	case *compiler.ConstantNode:
		return t.MemberType.Name
	}
	return ""
}

func elementTypeName(collection introspect.Type) string {
	if len(collection.TypeArguments) == 1 {
		return collection.TypeArguments[0].Name
	}
	return "java.lang.Object"
}

func typeWithGenerics(name string, generics []string) string {
	if len(generics) == 0 {
		return name
	}
	return name + "<" + strings.Join(generics, ", ") + ">"
}

// walkNodes visits every distinct node in document order.
func walkNodes(root compiler.Node, visit func(compiler.Node)) {
	seen := make(map[compiler.Node]bool)
	var walk func(compiler.Node)
	walk = func(n compiler.Node) {
		if seen[n] {
			return
		}
		seen[n] = true
		visit(n)
		for _, child := range childNodes(n) {
			walk(child)
		}
	}
	walk(root)
}

func childNodes(n compiler.Node) []compiler.Node {
	switch t := n.(type) {
	case *compiler.ObjectNode:
		return t.Children
	case *compiler.StaticMethodNode:
		return t.Children
	case *compiler.WrapperNode:
		return t.Children
	default:
		return nil
	}
}
