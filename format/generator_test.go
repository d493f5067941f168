package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fxmlkit/fxc/compiler"
	"github.com/fxmlkit/fxc/fxml"
	"github.com/fxmlkit/fxc/introspect"
)

func generate(t *testing.T, reg *introspect.Registry, markup string, opts Options) string {
	t.Helper()
	doc, err := fxml.Parse(strings.NewReader(markup), "test.fxml")
	if err != nil {
		t.Fatalf("parse markup: %v", err)
	}
	processed, err := compiler.Process(reg, doc, compiler.Options{})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	var buf bytes.Buffer
	if err := NewJavaEncoder(&buf, reg, opts).Encode(processed); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.String()
}

func TestGenerateSimpleDocument(t *testing.T) {
	got := generate(t, introspect.Builtins(), `<?import javafx.scene.layout.HBox?>
<?import javafx.scene.control.Label?>
<HBox xmlns:fx="http://javafx.com/fxml" spacing="10">
  <Label fx:id="title" text="Hello"/>
</HBox>`, Options{Package: "com.example"})

	want := `package com.example;

import javafx.scene.control.Label;
import javafx.scene.layout.HBox;

public class test extends HBox {
    protected final Label title;

    public test() {
        this.title = new Label();
        this.setSpacing(10.0);
        this.title.setText("Hello");
        this.getChildren().add(this.title);
    }
}
`
	if got != want {
		t.Errorf("generated source mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateSuperArguments(t *testing.T) {
	got := generate(t, introspect.Builtins(), `<?import javafx.geometry.Insets?>
<Insets xmlns:fx="http://javafx.com/fxml" top="1" right="2" bottom="3" left="4"/>`, Options{})

	want := `import javafx.geometry.Insets;

public class test extends Insets {
    public test() {
        super(1.0, 2.0, 3.0, 4.0);
    }
}
`
	if got != want {
		t.Errorf("generated source mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateWrapperSetterAndDefaultedConstructor(t *testing.T) {
	got := generate(t, introspect.Builtins(), `<?import javafx.scene.layout.VBox?>
<?import javafx.geometry.Insets?>
<VBox xmlns:fx="http://javafx.com/fxml">
  <padding>
    <Insets top="5"/>
  </padding>
</VBox>`, Options{})

	if !strings.Contains(got, "this.$internal$0 = new Insets(5.0, 0.0, 0.0, 0.0);") {
		t.Errorf("missing defaulted constructor call in:\n%s", got)
	}
	if !strings.Contains(got, "this.setPadding(this.$internal$0);") {
		t.Errorf("missing wrapper setter call in:\n%s", got)
	}
	if !strings.Contains(got, "private final Insets $internal$0;") {
		t.Errorf("missing internal field in:\n%s", got)
	}
}

func TestGenerateObservableBulkAdd(t *testing.T) {
	got := generate(t, introspect.Builtins(), `<?import javafx.scene.control.Label?>
<Label xmlns:fx="http://javafx.com/fxml">
  <styleClass>
    <String fx:value="big"/>
    <String fx:value="bold"/>
  </styleClass>
</Label>`, Options{})

	if !strings.Contains(got, "this.getStyleClass().addAll(this.$internal$0, this.$internal$1);") {
		t.Errorf("missing bulk add in:\n%s", got)
	}
	if !strings.Contains(got, `this.$internal$0 = "big";`) {
		t.Errorf("missing string value init in:\n%s", got)
	}
}

func TestGenerateStaticSetterWiring(t *testing.T) {
	got := generate(t, introspect.Builtins(), `<?import javafx.scene.layout.HBox?>
<?import javafx.scene.layout.Priority?>
<?import javafx.scene.control.Button?>
<HBox xmlns:fx="http://javafx.com/fxml">
  <Button fx:id="ok">
    <HBox.hgrow>
      <Priority fx:constant="ALWAYS"/>
    </HBox.hgrow>
  </Button>
</HBox>`, Options{})

	if !strings.Contains(got, "HBox.setHgrow(this.ok, Priority.ALWAYS);") {
		t.Errorf("missing static setter call in:\n%s", got)
	}
}

func TestGenerateStaticSetterGateSkips(t *testing.T) {
	got := generate(t, introspect.Builtins(), `<?import javafx.scene.layout.HBox?>
<?import javafx.scene.control.Button?>
<HBox xmlns:fx="http://javafx.com/fxml">
  <Button>
    <HBox.hgrow>
      <String fx:value="not a priority"/>
    </HBox.hgrow>
  </Button>
</HBox>`, Options{})

	if strings.Contains(got, "setHgrow") {
		t.Errorf("mismatched static setter was not skipped:\n%s", got)
	}
}

func methodTestRegistry() *introspect.Registry {
	reg := introspect.Builtins()
	actionEvent := introspect.Type{Name: "javafx.event.ActionEvent"}
	void := introspect.Type{Name: "void"}

	reg.Register(&introspect.Class{
		Name:         "com.example.MainController",
		SuperClass:   "java.lang.Object",
		Constructors: []introspect.Constructor{{}},
		Methods: []introspect.Method{
			{
				Name:       "save",
				ReturnType: void,
				Parameters: []introspect.Parameter{{Name: "event", Type: actionEvent}},
			},
		},
	})
	reg.Register(&introspect.Class{
		Name:         "com.example.PrivateController",
		SuperClass:   "java.lang.Object",
		Constructors: []introspect.Constructor{{}},
		Methods: []introspect.Method{
			{
				Name:       "save",
				ReturnType: void,
				Parameters: []introspect.Parameter{{Name: "event", Type: actionEvent}},
				Visibility: introspect.VisibilityPrivate,
			},
		},
	})
	return reg
}

func TestGenerateDirectDispatch(t *testing.T) {
	got := generate(t, methodTestRegistry(), `<?import javafx.scene.layout.HBox?>
<?import javafx.scene.control.Button?>
<HBox xmlns:fx="http://javafx.com/fxml" fx:controller="com.example.MainController">
  <Button onAction="#save"/>
</HBox>`, Options{})

	if !strings.Contains(got, "public test(com.example.MainController controller) {") {
		t.Errorf("missing controller constructor parameter in:\n%s", got)
	}
	if !strings.Contains(got, "this.controller = controller;") {
		t.Errorf("missing controller assignment in:\n%s", got)
	}
	if !strings.Contains(got, "public void save(javafx.event.ActionEvent actionEvent) {") {
		t.Errorf("missing delegating method in:\n%s", got)
	}
	if !strings.Contains(got, "this.controller.save(actionEvent);") {
		t.Errorf("missing direct dispatch in:\n%s", got)
	}
	if strings.Contains(got, "abstract") {
		t.Errorf("matched handler produced abstract output:\n%s", got)
	}
	if !strings.Contains(got, "this.setOnAction(this::save);") {
		t.Errorf("missing method reference binding in:\n%s", got)
	}
}

func TestGenerateReflectiveDispatch(t *testing.T) {
	got := generate(t, methodTestRegistry(), `<?import javafx.scene.layout.HBox?>
<?import javafx.scene.control.Button?>
<HBox xmlns:fx="http://javafx.com/fxml" fx:controller="com.example.PrivateController">
  <Button onAction="#save"/>
</HBox>`, Options{})

	if !strings.Contains(got, `getDeclaredMethod("save", javafx.event.ActionEvent.class)`) {
		t.Errorf("missing reflective lookup in:\n%s", got)
	}
	if !strings.Contains(got, "method.setAccessible(true);") {
		t.Errorf("missing setAccessible in:\n%s", got)
	}
	if !strings.Contains(got, "catch (ReflectiveOperationException e)") {
		t.Errorf("missing exception handling in:\n%s", got)
	}
}

func TestGenerateAbstractStub(t *testing.T) {
	got := generate(t, introspect.Builtins(), `<?import javafx.scene.layout.HBox?>
<?import javafx.scene.control.Button?>
<HBox xmlns:fx="http://javafx.com/fxml">
  <Button onAction="#save"/>
</HBox>`, Options{})

	if !strings.Contains(got, "public abstract class test extends HBox {") {
		t.Errorf("missing abstract class declaration in:\n%s", got)
	}
	if !strings.Contains(got, "protected abstract void save(javafx.event.ActionEvent actionEvent);") {
		t.Errorf("missing abstract stub in:\n%s", got)
	}
}

func TestGenerateImplements(t *testing.T) {
	got := generate(t, introspect.Builtins(), `<?import javafx.scene.layout.HBox?>
<HBox xmlns:fx="http://javafx.com/fxml"/>`, Options{Implements: []string{"java.io.Serializable"}})

	if !strings.Contains(got, "public class test extends HBox implements java.io.Serializable {") {
		t.Errorf("missing implements clause in:\n%s", got)
	}
}

func TestGenerateResourceBundleParameter(t *testing.T) {
	got := generate(t, introspect.Builtins(), `<?import javafx.scene.layout.HBox?>
<?import javafx.scene.control.Label?>
<HBox xmlns:fx="http://javafx.com/fxml">
  <Label text="%greeting"/>
</HBox>`, Options{})

	if !strings.Contains(got, "public test(java.util.ResourceBundle resources) {") {
		t.Errorf("missing resources parameter in:\n%s", got)
	}
	if !strings.Contains(got, `setText(resources.getString("greeting"));`) {
		t.Errorf("missing resource lookup in:\n%s", got)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	const markup = `<?import javafx.scene.layout.HBox?>
<?import javafx.scene.control.Label?>
<?import javafx.scene.control.Button?>
<HBox xmlns:fx="http://javafx.com/fxml" spacing="4">
  <Label fx:id="b" text="two"/>
  <Label fx:id="a" text="one"/>
  <Button text="go"/>
</HBox>`

	reg := introspect.Builtins()
	first := generate(t, reg, markup, Options{Package: "com.example"})
	second := generate(t, reg, markup, Options{Package: "com.example"})
	if first != second {
		t.Error("repeated generation produced different output")
	}

	// Explicit fields sort before internal ones, by name within each group.
	aIndex := strings.Index(first, "protected final Label a;")
	bIndex := strings.Index(first, "protected final Label b;")
	internalIndex := strings.Index(first, "private final Button $internal$")
	if aIndex == -1 || bIndex == -1 || internalIndex == -1 {
		t.Fatalf("missing field declarations in:\n%s", first)
	}
	if !(aIndex < bIndex && bIndex < internalIndex) {
		t.Errorf("field order wrong in:\n%s", first)
	}
}
