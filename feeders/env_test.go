package feeders

import (
	"reflect"
	"testing"
)

func TestEnvFeeder(t *testing.T) {
	t.Run("read environment variables", func(t *testing.T) {
		t.Setenv(EnvUseAdvancedTooltip, "false")
		t.Setenv(EnvFreeInClaimsText, "§bClaims")
		t.Setenv(EnvBreakBlocks, "minecraft:stone, ,minecraft:dirt ")

		doc, err := NewEnvFeeder().Read()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		wantDisplay := map[string]any{
			"useAdvancedTooltip": "false",
			"freeInClaimsText":   "§bClaims",
		}
		if !reflect.DeepEqual(doc["display"], wantDisplay) {
			t.Errorf("Expected display %v, got %v", wantDisplay, doc["display"])
		}

		wantBreaks := []any{"minecraft:stone", "minecraft:dirt"}
		if !reflect.DeepEqual(doc["blacklisted-blocks"], wantBreaks) {
			t.Errorf("Expected %v, got %v", wantBreaks, doc["blacklisted-blocks"])
		}
		if _, ok := doc["blacklisted-claim-blocks"]; ok {
			t.Error("Expected unset claim list to be absent")
		}
	})

	t.Run("missing environment variables", func(t *testing.T) {
		doc, err := NewEnvFeeder().Read()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(doc) != 0 {
			t.Errorf("Expected an empty document, got %v", doc)
		}
	})
}

func TestSplitList(t *testing.T) {
	tests := map[string][]any{
		"a":          {"a"},
		"a,b":        {"a", "b"},
		" a , b ,, ": {"a", "b"},
		",":          nil,
	}
	for in, want := range tests {
		if got := splitList(in); !reflect.DeepEqual(got, want) {
			t.Errorf("splitList(%q) = %v, want %v", in, got, want)
		}
	}
}
