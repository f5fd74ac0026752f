package feeders

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestYamlFeeder_Read(t *testing.T) {
	path := writeTemp(t, "blockstatus.yaml", `
display:
  useLore: true
  freeToBreakText: "§aFree"
blacklisted-blocks:
  - minecraft:stone
  - 42
`)

	doc, err := NewYamlFeeder(path).Read()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	display, ok := doc["display"].(map[string]any)
	if !ok {
		t.Fatalf("Expected display to be a map, got %T", doc["display"])
	}
	if display["useLore"] != true {
		t.Errorf("Expected useLore to be true, got %v", display["useLore"])
	}
	if display["freeToBreakText"] != "§aFree" {
		t.Errorf("Expected freeToBreakText to be '§aFree', got %v", display["freeToBreakText"])
	}

	want := []any{"minecraft:stone", 42}
	if !reflect.DeepEqual(doc["blacklisted-blocks"], want) {
		t.Errorf("Expected %v, got %v", want, doc["blacklisted-blocks"])
	}
}

func TestYamlFeeder_EmptyFile(t *testing.T) {
	doc, err := NewYamlFeeder(writeTemp(t, "empty.yaml", "")).Read()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if doc == nil || len(doc) != 0 {
		t.Errorf("Expected an empty document, got %v", doc)
	}
}

func TestYamlFeeder_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewYamlFeeder(filepath.Join(t.TempDir(), "absent.yaml")).Read()
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Expected fs.ErrNotExist, got %v", err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := NewYamlFeeder(writeTemp(t, "bad.yaml", "display: [unclosed\n")).Read()
		if !errors.Is(err, ErrMalformedDocument) {
			t.Errorf("Expected ErrMalformedDocument, got %v", err)
		}
	})

	t.Run("not a mapping", func(t *testing.T) {
		_, err := NewYamlFeeder(writeTemp(t, "list.yaml", "- minecraft:stone\n")).Read()
		if !errors.Is(err, ErrMalformedDocument) {
			t.Errorf("Expected ErrMalformedDocument, got %v", err)
		}
	})
}
