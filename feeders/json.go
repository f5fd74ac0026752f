package feeders

import (
	"bytes"
	"encoding/json"
)

// JSONFeeder reads a JSON document from Path.
type JSONFeeder struct {
	Path string
}

// NewJSONFeeder creates a JSONFeeder for filePath.
func NewJSONFeeder(filePath string) JSONFeeder {
	return JSONFeeder{Path: filePath}
}

// Read parses the file. An empty or whitespace-only file is an empty document.
func (j JSONFeeder) Read() (map[string]any, error) {
	data, err := readFile(j.Path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, wrapMalformedError("JSON", j.Path, err)
	}
	return ensureDocument(doc), nil
}
