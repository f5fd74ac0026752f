package feeders

import (
	"github.com/BurntSushi/toml"
)

// TomlFeeder reads a TOML document from Path.
type TomlFeeder struct {
	Path string
}

// NewTomlFeeder creates a TomlFeeder for filePath.
func NewTomlFeeder(filePath string) TomlFeeder {
	return TomlFeeder{Path: filePath}
}

// Read parses the file.
func (t TomlFeeder) Read() (map[string]any, error) {
	data, err := readFile(t.Path)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, wrapMalformedError("TOML", t.Path, err)
	}
	return ensureDocument(doc), nil
}
