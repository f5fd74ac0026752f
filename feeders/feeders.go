// Package feeders reads configuration documents for the block status
// resolver. Every feeder returns the whole document as a generic map and
// leaves section-by-section decoding to the loader, so one broken section
// never takes the rest of the document with it.
//
// File feeders wrap fs.ErrNotExist when the file is missing and
// ErrMalformedDocument when it cannot be parsed.
package feeders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source produces a configuration document. A source built from several
// layers may return a partial document together with an error describing
// the layers it left out.
type Source interface {
	Read() (map[string]any, error)
}

// ForFile picks a feeder by file extension.
func ForFile(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYamlFeeder(path), nil
	case ".json":
		return NewJSONFeeder(path), nil
	case ".toml":
		return NewTomlFeeder(path), nil
	case ".env":
		return NewDotEnvFeeder(path), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, path)
	}
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapReadError(path, err)
	}
	return data, nil
}

// normalize turns the map[any]any nodes some decoders produce into
// map[string]any, recursively.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = normalize(child)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[fmt.Sprint(k)] = normalize(child)
		}
		return out
	case []any:
		for i, child := range t {
			t[i] = normalize(child)
		}
		return t
	default:
		return v
	}
}

func ensureDocument(doc map[string]any) map[string]any {
	if doc == nil {
		return map[string]any{}
	}
	return normalize(doc).(map[string]any)
}
