package fxc

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fxmlkit/fxc/introspect"
)

const mainMarkup = `<?import javafx.scene.layout.HBox?>
<?import javafx.scene.control.Label?>
<HBox xmlns:fx="http://javafx.com/fxml" spacing="8">
  <Label fx:id="title" text="Hello"/>
</HBox>
`

func writeMarkup(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestCompile(t *testing.T) {
	dir := t.TempDir()
	path := writeMarkup(t, dir, "main_view.fxml", mainMarkup)

	result := Compile(introspect.Builtins(), path, Options{Package: "com.example"})
	if result.Err != nil {
		t.Fatalf("Compile: %v", result.Err)
	}
	if result.ClassName != "main_view" {
		t.Errorf("ClassName = %q, want main_view", result.ClassName)
	}
	source := string(result.Source)
	if !strings.Contains(source, "package com.example;") {
		t.Errorf("missing package declaration in:\n%s", source)
	}
	if !strings.Contains(source, "public class main_view extends HBox {") {
		t.Errorf("missing class declaration in:\n%s", source)
	}
}

func TestCompileMissingFile(t *testing.T) {
	result := Compile(introspect.Builtins(), filepath.Join(t.TempDir(), "absent.fxml"), Options{})
	if result.Err == nil {
		t.Fatal("Compile of missing file succeeded")
	}
}

func TestCompileAllIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeMarkup(t, dir, "good.fxml", mainMarkup)
	bad := writeMarkup(t, dir, "bad.fxml", "<unclosed")
	alsoGood := writeMarkup(t, dir, "also_good.fxml", mainMarkup)

	reg := introspect.Builtins()
	results := CompileAll(context.Background(), reg, []string{good, bad, alsoGood}, Options{Jobs: 2})
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Err != nil {
		t.Errorf("results[0].Err = %v, want nil", results[0].Err)
	}
	if results[1].Err == nil {
		t.Error("results[1].Err = nil, want parse error")
	}
	if results[2].Err != nil {
		t.Errorf("results[2].Err = %v, want nil", results[2].Err)
	}
	if results[0].Path != good || results[2].Path != alsoGood {
		t.Error("results out of input order")
	}
}

func TestCompileAllCancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeMarkup(t, dir, "view.fxml", mainMarkup)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := CompileAll(ctx, introspect.Builtins(), []string{path}, Options{})
	if results[0].Err == nil {
		t.Error("compilation under a cancelled context succeeded")
	}
}

func TestCompileConcurrentSharedRegistry(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 8)
	for i := range paths {
		paths[i] = writeMarkup(t, dir, "view"+string(rune('a'+i))+".fxml", mainMarkup)
	}

	reg := introspect.Builtins()
	results := CompileAll(context.Background(), reg, paths, Options{Jobs: 4})
	for i, result := range results {
		if result.Err != nil {
			t.Errorf("results[%d].Err = %v, want nil", i, result.Err)
		}
	}
}

func TestDumpStages(t *testing.T) {
	dir := t.TempDir()
	path := writeMarkup(t, dir, "view.fxml", mainMarkup)
	reg := introspect.Builtins()

	var raw bytes.Buffer
	if err := Dump(reg, path, "raw", Options{}, &raw); err != nil {
		t.Fatalf("Dump raw: %v", err)
	}
	if !strings.Contains(raw.String(), `"className": "view"`) {
		t.Errorf("raw dump missing class name:\n%s", raw.String())
	}

	var graph bytes.Buffer
	if err := Dump(reg, path, "graph", Options{}, &graph); err != nil {
		t.Fatalf("Dump graph: %v", err)
	}
	if !strings.Contains(graph.String(), `"ref": "title"`) {
		t.Errorf("graph dump missing field ref:\n%s", graph.String())
	}

	if err := Dump(reg, path, "tokens", Options{}, &bytes.Buffer{}); err == nil {
		t.Error("unknown stage accepted")
	}
}
