package fxml

import (
	"errors"
	"strings"
	"testing"
)

const sampleDocument = `<?xml version="1.0" encoding="UTF-8"?>
<?import javafx.scene.layout.HBox?>
<?import javafx.scene.control.*?>

<HBox xmlns:fx="http://javafx.com/fxml" fx:id="box" spacing="10">
  <!-- generic 0: java.lang.String -->
  <Label text="hi"/>
</HBox>
`

func TestParseImports(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleDocument), "sample.fxml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"javafx.scene.layout.HBox", "javafx.scene.control.*"}
	if len(doc.Imports) != len(want) {
		t.Fatalf("Imports = %v, want %v", doc.Imports, want)
	}
	for i := range want {
		if doc.Imports[i] != want[i] {
			t.Errorf("Imports[%d] = %q, want %q", i, doc.Imports[i], want[i])
		}
	}
}

func TestParseImportsStopAtRoot(t *testing.T) {
	const input = `<?import a.B?>
<a.B/>
<?import c.D?>
`
	doc, err := Parse(strings.NewReader(input), "doc.fxml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Imports) != 1 || doc.Imports[0] != "a.B" {
		t.Errorf("Imports = %v, want [a.B]", doc.Imports)
	}
}

func TestParseAttributes(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleDocument), "sample.fxml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Root.Name != "HBox" {
		t.Errorf("Root.Name = %q, want %q", doc.Root.Name, "HBox")
	}
	if id, ok := doc.Root.Attribute("fx:id"); !ok || id != "box" {
		t.Errorf("fx:id = %q, %v; want box, true", id, ok)
	}
	for _, attr := range doc.Root.Attributes {
		if strings.Contains(attr.Name, "xmlns") {
			t.Errorf("namespace declaration leaked into attributes: %q", attr.Name)
		}
	}
}

func TestParseComments(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleDocument), "sample.fxml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Root.Comments) != 1 {
		t.Fatalf("Root.Comments = %v, want one entry", doc.Root.Comments)
	}
	if got := strings.TrimSpace(doc.Root.Comments[0]); got != "generic 0: java.lang.String" {
		t.Errorf("comment = %q, want %q", got, "generic 0: java.lang.String")
	}
}

func TestClassNameFromPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"main.fxml", "main"},
		{"/tmp/my-view.fxml", "my_view"},
		{"some dir/login form.fxml", "login_form"},
	}
	for _, tc := range cases {
		doc, err := Parse(strings.NewReader(`<a.B/>`), tc.path)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.path, err)
		}
		if doc.ClassName != tc.want {
			t.Errorf("ClassName for %q = %q, want %q", tc.path, doc.ClassName, tc.want)
		}
	}
}

func TestParseNoRoot(t *testing.T) {
	_, err := Parse(strings.NewReader(`<?import a.B?>`), "empty.fxml")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Parse = %v, want *ParseError", err)
	}
	if parseErr.Path != "empty.fxml" {
		t.Errorf("Path = %q, want %q", parseErr.Path, "empty.fxml")
	}
}

func TestParseMultipleRoots(t *testing.T) {
	_, err := Parse(strings.NewReader("<a.B/>\n<c.D/>"), "two.fxml")
	if err == nil {
		t.Fatal("Parse accepted two root elements")
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse(strings.NewReader(`<a.B><c.D></a.B>`), "bad.fxml")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Parse = %v, want *ParseError", err)
	}
}
