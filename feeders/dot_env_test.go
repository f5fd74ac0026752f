package feeders

import (
	"errors"
	"io/fs"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDotEnvFeeder_Read(t *testing.T) {
	path := writeTemp(t, "blockstatus.env", `
# server overrides
BLOCKSTATUS_USE_LORE=true
BLOCKSTATUS_BLACKLISTED_CLAIM_BLOCKS=minecraft:dirt,minecraft:grass_block
`)

	doc, err := NewDotEnvFeeder(path).Read()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	display, ok := doc["display"].(map[string]any)
	if !ok || display["useLore"] != "true" {
		t.Errorf("Expected useLore 'true', got %v", doc["display"])
	}
	want := []any{"minecraft:dirt", "minecraft:grass_block"}
	if !reflect.DeepEqual(doc["blacklisted-claim-blocks"], want) {
		t.Errorf("Expected %v, got %v", want, doc["blacklisted-claim-blocks"])
	}
}

func TestDotEnvFeeder_MissingFile(t *testing.T) {
	_, err := NewDotEnvFeeder(filepath.Join(t.TempDir(), "absent.env")).Read()
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist, got %v", err)
	}
}
