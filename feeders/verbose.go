package feeders

import (
	"fmt"
	"reflect"
	"slices"
)

// DebugLogger is the part of a structured logger VerboseFeeder needs.
type DebugLogger interface {
	Debug(msg string, args ...any)
}

// VerboseFeeder wraps a Source and logs what it read. It is how the CLI's
// --verbose flag shows which layer supplied which sections.
type VerboseFeeder struct {
	Source
	name   string
	logger DebugLogger
}

// NewVerboseFeeder wraps source. name labels the log lines; a nil logger
// makes the wrapper transparent.
func NewVerboseFeeder(name string, source Source, logger DebugLogger) *VerboseFeeder {
	return &VerboseFeeder{Source: source, name: name, logger: logger}
}

// Read implements Source.
func (f *VerboseFeeder) Read() (map[string]any, error) {
	if f.logger == nil {
		return f.Source.Read()
	}

	f.logger.Debug("Feeder: reading", "feeder", f.name, "sourceType", reflect.TypeOf(f.Source))
	doc, err := f.Source.Read()
	if err != nil {
		f.logger.Debug("Feeder: read failed", "feeder", f.name, "error", err)
		if doc == nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	f.logger.Debug("Feeder: read document", "feeder", f.name, "keys", keys)

	for _, k := range keys {
		if section, ok := doc[k].(map[string]any); ok {
			f.logger.Debug("Feeder: section", "feeder", f.name, "section", k, "fields", len(section))
		} else if list, ok := doc[k].([]any); ok {
			f.logger.Debug("Feeder: section", "feeder", f.name, "section", k, "entries", len(list))
		} else {
			f.logger.Debug("Feeder: section", "feeder", f.name, "section", k, "type", fmt.Sprintf("%T", doc[k]))
		}
	}
	return doc, err
}
