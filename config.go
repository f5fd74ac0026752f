package blockstatus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/golobby/cast"
	"gopkg.in/yaml.v3"
)

const (
	tagDefault = "default"
	tagDesc    = "desc"
)

// Supported document formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatTOML = "toml"
)

// DisplayConfig controls how labels are shown. A blank text falls back to
// the category's built-in label.
type DisplayConfig struct {
	UseAdvancedTooltip bool   `yaml:"useAdvancedTooltip" json:"useAdvancedTooltip" toml:"useAdvancedTooltip" default:"true" desc:"Append the label to the item tooltip"`
	UseLore            bool   `yaml:"useLore" json:"useLore" toml:"useLore" default:"false" desc:"Show the label as a lore line instead"`
	BlockForBlockText  string `yaml:"blockForBlockText" json:"blockForBlockText" toml:"blockForBlockText" default:"§cBlock for Block" desc:"Label for blocks not listed below"`
	FreeToBreakText    string `yaml:"freeToBreakText" json:"freeToBreakText" toml:"freeToBreakText" default:"§aFree to Break" desc:"Label for blacklisted-blocks"`
	FreeInClaimsText   string `yaml:"freeInClaimsText" json:"freeInClaimsText" toml:"freeInClaimsText" default:"§bFree in Claims" desc:"Label for blacklisted-claim-blocks"`
}

// Label returns the configured text for c, or its built-in label when blank.
func (d DisplayConfig) Label(c Category) string {
	var text string
	switch c {
	case ExplicitBreak:
		text = d.FreeToBreakText
	case ExplicitClaim:
		text = d.FreeInClaimsText
	default:
		text = d.BlockForBlockText
	}
	if text == "" {
		return c.DefaultLabel()
	}
	return text
}

// Config is the decoded configuration document.
type Config struct {
	Display     DisplayConfig `yaml:"display" json:"display" toml:"display" desc:"Tooltip display settings"`
	BreakBlocks []string      `yaml:"blacklisted-blocks" json:"blacklisted-blocks" toml:"blacklisted-blocks" desc:"Blocks that are free to break (namespace:path)"`
	ClaimBlocks []string      `yaml:"blacklisted-claim-blocks" json:"blacklisted-claim-blocks" toml:"blacklisted-claim-blocks" desc:"Blocks that are free to break inside claims (namespace:path)"`
}

// DefaultConfig returns the built-in configuration: default labels and
// empty block lists.
func DefaultConfig() *Config {
	cfg := &Config{
		BreakBlocks: []string{},
		ClaimBlocks: []string{},
	}
	if err := processDefaults(reflect.ValueOf(cfg).Elem()); err != nil {
		// The tags are fixed at compile time; failing here is a programming error.
		panic(err)
	}
	return cfg
}

// processDefaults sets every zero field carrying a default tag.
func processDefaults(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct {
			if err := processDefaults(field); err != nil {
				return err
			}
			continue
		}

		defaultVal, ok := fieldType.Tag.Lookup(tagDefault)
		if !ok || !field.IsZero() {
			continue
		}
		value, err := cast.FromType(defaultVal, field.Type())
		if err != nil {
			return fmt.Errorf("failed to set default value for %s: %w", fieldType.Name, err)
		}
		field.Set(reflect.ValueOf(value).Convert(field.Type()))
	}
	return nil
}

// FormatFromPath maps a file extension to a document format, or "" if unknown.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return ""
	}
}

// GenerateDefaultConfig renders DefaultConfig as a document in format.
// YAML output carries a comment above each key.
func GenerateDefaultConfig(format string) ([]byte, error) {
	cfg := DefaultConfig()

	switch strings.ToLower(format) {
	case FormatYAML:
		var node yaml.Node
		if err := node.Encode(cfg); err != nil {
			return nil, fmt.Errorf("failed to marshal to YAML: %w", err)
		}
		annotateNode(&node, reflect.TypeOf(*cfg))
		data, err := yaml.Marshal(&node)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal to YAML: %w", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal to JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("failed to marshal to TOML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// annotateNode copies desc tags onto the matching mapping keys as head comments.
func annotateNode(node *yaml.Node, t reflect.Type) {
	if node.Kind != yaml.MappingNode || t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		for j := 0; j < t.NumField(); j++ {
			f := t.Field(j)
			name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
			if name != key.Value {
				continue
			}
			if desc := f.Tag.Get(tagDesc); desc != "" {
				key.HeadComment = desc
			}
			annotateNode(value, f.Type)
		}
	}
}

// WriteDefaultConfig writes GenerateDefaultConfig(format) to path, creating
// parent directories. An empty format is derived from the extension.
func WriteDefaultConfig(path, format string) error {
	if format == "" {
		format = FormatFromPath(path)
	}
	data, err := GenerateDefaultConfig(format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file to %s: %w", path, err)
	}
	return nil
}
