package feeders

import (
	"gopkg.in/yaml.v3"
)

// YamlFeeder reads a YAML document from Path.
type YamlFeeder struct {
	Path string
}

// NewYamlFeeder creates a YamlFeeder for filePath.
func NewYamlFeeder(filePath string) YamlFeeder {
	return YamlFeeder{Path: filePath}
}

// Read parses the file. An empty file is an empty document.
func (y YamlFeeder) Read() (map[string]any, error) {
	data, err := readFile(y.Path)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, wrapMalformedError("YAML", y.Path, err)
	}
	return ensureDocument(doc), nil
}
