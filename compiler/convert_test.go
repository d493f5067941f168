package compiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/fxmlkit/fxc/fxml"
	"github.com/fxmlkit/fxc/introspect"
)

func parseDocument(t *testing.T, markup string) *fxml.Document {
	t.Helper()
	doc, err := fxml.Parse(strings.NewReader(markup), "test.fxml")
	if err != nil {
		t.Fatalf("parse markup: %v", err)
	}
	return doc
}

func TestFindTypePrecedence(t *testing.T) {
	c := &converter{
		reg: introspect.Builtins(),
		imports: []string{
			"javafx.scene.control.Label",
			"javafx.scene.layout.*",
		},
	}

	label, err := c.findType("Label")
	if err != nil || label == nil {
		t.Fatalf("findType(Label) = %v, %v", label, err)
	}
	if label.Name != "javafx.scene.control.Label" {
		t.Errorf("Label resolved to %q", label.Name)
	}

	hbox, err := c.findType("HBox")
	if err != nil || hbox == nil {
		t.Fatalf("findType(HBox) = %v, %v", hbox, err)
	}
	if hbox.Name != "javafx.scene.layout.HBox" {
		t.Errorf("HBox resolved to %q", hbox.Name)
	}

	str, err := c.findType("String")
	if err != nil || str == nil {
		t.Fatalf("findType(String) = %v, %v", str, err)
	}
	if str.Name != "java.lang.String" {
		t.Errorf("String resolved to %q", str.Name)
	}

	none, err := c.findType("notAType")
	if err != nil || none != nil {
		t.Errorf("findType(notAType) = %v, %v; want nil, nil", none, err)
	}
}

func TestFindTypeAmbiguousWildcard(t *testing.T) {
	reg := introspect.Builtins()
	reg.Register(&introspect.Class{Name: "com.first.Chart", SuperClass: "java.lang.Object"})
	reg.Register(&introspect.Class{Name: "com.second.Chart", SuperClass: "java.lang.Object"})

	c := &converter{reg: reg, imports: []string{"com.first.*", "com.second.*"}}
	_, err := c.findType("Chart")
	var typeErr *TypeResolutionError
	if !errors.As(err, &typeErr) {
		t.Fatalf("findType(Chart) = %v, want *TypeResolutionError", err)
	}
	if typeErr.Name != "Chart" {
		t.Errorf("error names %q, want Chart", typeErr.Name)
	}
}

func TestFindTypeUnknownImport(t *testing.T) {
	c := &converter{reg: introspect.Builtins(), imports: []string{"com.example.Missing"}}
	_, err := c.findType("Missing")
	var typeErr *TypeResolutionError
	if !errors.As(err, &typeErr) {
		t.Fatalf("findType(Missing) = %v, want *TypeResolutionError", err)
	}
}

func TestSplitStaticName(t *testing.T) {
	cases := []struct {
		name   string
		owner  string
		member string
		ok     bool
	}{
		{"HBox.hgrow", "HBox", "hgrow", true},
		{"javafx.scene.layout.GridPane.rowIndex", "javafx.scene.layout.GridPane", "rowIndex", true},
		{"javafx.scene.Node", "", "", false},
		{"hgrow", "", "", false},
		{"HBox.", "", "", false},
		{".hgrow", "", "", false},
	}
	for _, tc := range cases {
		owner, member, ok := splitStaticName(tc.name)
		if owner != tc.owner || member != tc.member || ok != tc.ok {
			t.Errorf("splitStaticName(%q) = %q, %q, %v; want %q, %q, %v",
				tc.name, owner, member, ok, tc.owner, tc.member, tc.ok)
		}
	}
}

func TestGenericsFromComments(t *testing.T) {
	el := &fxml.Element{
		Name: "ComboBox",
		Comments: []string{
			" generic 1: java.lang.String ",
			"generic 0: java.lang.Integer",
			"plain comment",
		},
	}
	generics, err := genericsFrom(el, "javafx.scene.control.ComboBox")
	if err != nil {
		t.Fatalf("genericsFrom: %v", err)
	}
	if len(generics) != 2 || generics[0] != "java.lang.Integer" || generics[1] != "java.lang.String" {
		t.Errorf("generics = %v, want [java.lang.Integer java.lang.String]", generics)
	}
}

func TestGenericsFromGap(t *testing.T) {
	el := &fxml.Element{
		Name: "ComboBox",
		Comments: []string{
			"generic 0: java.lang.String",
			"generic 2: java.lang.Integer",
		},
	}
	_, err := genericsFrom(el, "javafx.scene.control.ComboBox")
	var indexErr *GenericIndexError
	if !errors.As(err, &indexErr) {
		t.Fatalf("genericsFrom = %v, want *GenericIndexError", err)
	}
	if len(indexErr.Indices) != 2 || indexErr.Indices[0] != 0 || indexErr.Indices[1] != 2 {
		t.Errorf("Indices = %v, want [0 2]", indexErr.Indices)
	}
}

func TestConvertRootBinding(t *testing.T) {
	doc := parseDocument(t, `<?import javafx.scene.layout.HBox?>
<HBox fx:id="outer"/>`)
	c := &converter{reg: introspect.Builtins(), imports: doc.Imports}
	node, err := c.convert(doc.Root, true)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	root, ok := node.(*ObjectNode)
	if !ok {
		t.Fatalf("convert returned %T, want *ObjectNode", node)
	}
	if root.ID != RootID || !root.Internal {
		t.Errorf("root ID = %q internal = %v, want %q internal", root.ID, root.Internal, RootID)
	}
}

func TestConvertExplicitAndInternalIDs(t *testing.T) {
	doc := parseDocument(t, `<?import javafx.scene.layout.HBox?>
<?import javafx.scene.control.Label?>
<HBox xmlns:fx="http://javafx.com/fxml">
  <Label fx:id="title"/>
  <Label/>
</HBox>`)
	c := &converter{reg: introspect.Builtins(), imports: doc.Imports}
	node, err := c.convert(doc.Root, true)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	root := node.(*ObjectNode)
	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(root.Children))
	}

	explicit := root.Children[0].(*ObjectNode)
	if explicit.ID != "title" || explicit.Internal {
		t.Errorf("first child ID = %q internal = %v, want title explicit", explicit.ID, explicit.Internal)
	}

	internal := root.Children[1].(*ObjectNode)
	if !internal.Internal || internal.ID == "" {
		t.Errorf("second child ID = %q internal = %v, want generated internal", internal.ID, internal.Internal)
	}
}

func TestConvertValueNode(t *testing.T) {
	doc := parseDocument(t, `<?import javafx.scene.Group?>
<Group xmlns:fx="http://javafx.com/fxml">
  <Double fx:value="3.14"/>
</Group>`)
	c := &converter{reg: introspect.Builtins(), imports: doc.Imports}
	node, err := c.convert(doc.Root, true)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	root := node.(*ObjectNode)
	value, ok := root.Children[0].(*ValueNode)
	if !ok {
		t.Fatalf("child is %T, want *ValueNode", root.Children[0])
	}
	if value.Class.Name != "java.lang.Double" || value.Value != "3.14" {
		t.Errorf("value = %s %q, want java.lang.Double 3.14", value.Class.Name, value.Value)
	}
	if !value.Internal {
		t.Error("value without fx:id should be internal")
	}
}

func TestConvertConstantNode(t *testing.T) {
	doc := parseDocument(t, `<?import javafx.scene.Group?>
<?import javafx.scene.paint.Color?>
<Group xmlns:fx="http://javafx.com/fxml">
  <Color fx:constant="RED"/>
</Group>`)
	c := &converter{reg: introspect.Builtins(), imports: doc.Imports}
	node, err := c.convert(doc.Root, true)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	root := node.(*ObjectNode)
	constant, ok := root.Children[0].(*ConstantNode)
	if !ok {
		t.Fatalf("child is %T, want *ConstantNode", root.Children[0])
	}
	if constant.Member != "RED" || constant.MemberType.Name != "javafx.scene.paint.Color" {
		t.Errorf("constant = %s %s, want RED javafx.scene.paint.Color", constant.Member, constant.MemberType.Name)
	}
}

func TestConvertConstantUnknownField(t *testing.T) {
	doc := parseDocument(t, `<?import javafx.scene.paint.Color?>
<Color xmlns:fx="http://javafx.com/fxml" fx:constant="MAGENTA"/>`)
	c := &converter{reg: introspect.Builtins(), imports: doc.Imports}
	_, err := c.convert(doc.Root, true)
	var typeErr *TypeResolutionError
	if !errors.As(err, &typeErr) {
		t.Fatalf("convert = %v, want *TypeResolutionError", err)
	}
}

func TestConvertWrapperFallback(t *testing.T) {
	doc := parseDocument(t, `<?import javafx.scene.layout.VBox?>
<?import javafx.geometry.Insets?>
<VBox xmlns:fx="http://javafx.com/fxml">
  <padding>
    <Insets topRightBottomLeft="4"/>
  </padding>
</VBox>`)
	c := &converter{reg: introspect.Builtins(), imports: doc.Imports}
	node, err := c.convert(doc.Root, true)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	root := node.(*ObjectNode)
	wrapper, ok := root.Children[0].(*WrapperNode)
	if !ok {
		t.Fatalf("child is %T, want *WrapperNode", root.Children[0])
	}
	if wrapper.Property != "padding" || len(wrapper.Children) != 1 {
		t.Errorf("wrapper = %q with %d children, want padding with 1", wrapper.Property, len(wrapper.Children))
	}
}

func TestConvertStaticMethodNode(t *testing.T) {
	doc := parseDocument(t, `<?import javafx.scene.layout.HBox?>
<?import javafx.scene.control.Button?>
<?import javafx.scene.layout.Priority?>
<HBox xmlns:fx="http://javafx.com/fxml">
  <Button>
    <HBox.hgrow>
      <Priority fx:constant="ALWAYS"/>
    </HBox.hgrow>
  </Button>
</HBox>`)
	c := &converter{reg: introspect.Builtins(), imports: doc.Imports}
	node, err := c.convert(doc.Root, true)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	root := node.(*ObjectNode)
	button := root.Children[0].(*ObjectNode)
	static, ok := button.Children[0].(*StaticMethodNode)
	if !ok {
		t.Fatalf("button child is %T, want *StaticMethodNode", button.Children[0])
	}
	if static.Class.Name != "javafx.scene.layout.HBox" || static.Method != "hgrow" {
		t.Errorf("static = %s.%s, want javafx.scene.layout.HBox.hgrow", static.Class.Name, static.Method)
	}
}

func TestConvertFxRootRequiresType(t *testing.T) {
	doc := parseDocument(t, `<fx:root xmlns:fx="http://javafx.com/fxml"/>`)
	c := &converter{reg: introspect.Builtins(), imports: nil}
	_, err := c.convert(doc.Root, true)
	var typeErr *TypeResolutionError
	if !errors.As(err, &typeErr) {
		t.Fatalf("convert = %v, want *TypeResolutionError", err)
	}
}

func TestConvertFxRoot(t *testing.T) {
	doc := parseDocument(t, `<?import javafx.scene.layout.VBox?>
<fx:root xmlns:fx="http://javafx.com/fxml" type="VBox" spacing="8"/>`)
	c := &converter{reg: introspect.Builtins(), imports: doc.Imports}
	node, err := c.convert(doc.Root, true)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	root := node.(*ObjectNode)
	if root.Class.Name != "javafx.scene.layout.VBox" || root.ID != RootID {
		t.Errorf("root = %s %q, want javafx.scene.layout.VBox this", root.Class.Name, root.ID)
	}
	if len(root.Properties) != 1 || root.Properties[0].PropertyName() != "spacing" {
		t.Errorf("properties = %v, want single spacing binding", root.Properties)
	}
}

func TestConvertCapturesController(t *testing.T) {
	doc := parseDocument(t, `<?import javafx.scene.layout.HBox?>
<HBox xmlns:fx="http://javafx.com/fxml" fx:controller="com.example.MainController"/>`)
	c := &converter{reg: introspect.Builtins(), imports: doc.Imports}
	node, err := c.convert(doc.Root, true)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if c.controller != "com.example.MainController" {
		t.Errorf("controller = %q, want com.example.MainController", c.controller)
	}
	root := node.(*ObjectNode)
	if len(root.Properties) != 0 {
		t.Errorf("fx:controller leaked into properties: %v", root.Properties)
	}
}
