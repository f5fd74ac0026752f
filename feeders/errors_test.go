package feeders

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestErrorWrappers(t *testing.T) {
	cause := errors.New("line 3: bad indent")

	err := wrapMalformedError("YAML", "cfg.yaml", cause)
	if !errors.Is(err, ErrMalformedDocument) || !errors.Is(err, cause) {
		t.Fatalf("Expected malformed error to wrap both sentinels, got %v", err)
	}
	if !strings.Contains(err.Error(), "cfg.yaml") {
		t.Errorf("Expected path in message, got %q", err.Error())
	}

	err = wrapReadError("cfg.yaml", fs.ErrNotExist)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Expected read error to wrap fs.ErrNotExist, got %v", err)
	}
	if errors.Is(err, ErrMalformedDocument) {
		t.Error("Read errors are not malformed documents")
	}
}
