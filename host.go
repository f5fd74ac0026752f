package blockstatus

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// HostRegistry is the host's block registry, as far as classification needs it.
type HostRegistry interface {
	// Resolve parses raw and reports whether the host knows the block.
	Resolve(raw string) (BlockID, bool)

	// IsPlaceable reports whether id is a known block that can be placed.
	IsPlaceable(id BlockID) bool

	// All lists every known block, placeable or not.
	All() []BlockID
}

// ItemBlockResolver maps an item to the block it places, if any.
type ItemBlockResolver interface {
	BlockOf(item string) (BlockID, bool)
}

// ItemBlockFunc adapts a function to ItemBlockResolver.
type ItemBlockFunc func(item string) (BlockID, bool)

// BlockOf implements ItemBlockResolver.
func (f ItemBlockFunc) BlockOf(item string) (BlockID, bool) {
	return f(item)
}

// StaticRegistry is a fixed HostRegistry, useful for tools and tests.
// It is not safe to Register while other goroutines read it.
type StaticRegistry struct {
	placeable map[BlockID]bool
	order     []BlockID
}

// NewStaticRegistry creates a registry in which every id is placeable.
func NewStaticRegistry(ids ...BlockID) *StaticRegistry {
	r := &StaticRegistry{placeable: make(map[BlockID]bool, len(ids))}
	for _, id := range ids {
		r.Register(id, true)
	}
	return r
}

// Register adds id, or updates its placeable flag if already present.
func (r *StaticRegistry) Register(id BlockID, placeable bool) {
	if _, ok := r.placeable[id]; !ok {
		r.order = append(r.order, id)
	}
	r.placeable[id] = placeable
}

// Resolve implements HostRegistry.
func (r *StaticRegistry) Resolve(raw string) (BlockID, bool) {
	id, err := ParseBlockID(raw)
	if err != nil {
		return "", false
	}
	_, ok := r.placeable[id]
	return id, ok
}

// IsPlaceable implements HostRegistry.
func (r *StaticRegistry) IsPlaceable(id BlockID) bool {
	return r.placeable[id]
}

// All implements HostRegistry, in registration order.
func (r *StaticRegistry) All() []BlockID {
	return slices.Clone(r.order)
}

// BlockOf treats every placeable block as having an item of the same name.
func (r *StaticRegistry) BlockOf(item string) (BlockID, bool) {
	id, ok := r.Resolve(item)
	if !ok || !r.IsPlaceable(id) {
		return "", false
	}
	return id, true
}

// PlaceableIDs returns the placeable blocks of reg as strings, the form
// Populate takes.
func PlaceableIDs(reg HostRegistry) []string {
	all := reg.All()
	out := make([]string, 0, len(all))
	for _, id := range all {
		if reg.IsPlaceable(id) {
			out = append(out, string(id))
		}
	}
	return out
}

// LoadRegistryFile reads a list of placeable block ids. .json files hold an
// array of strings, .yaml/.yml files a sequence, anything else one id per
// line with # comments and blank lines ignored.
func LoadRegistryFile(path string) (*StaticRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file %s: %w", path, err)
	}

	var raw []string
	switch FormatFromPath(path) {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: registry file %s: %w", ErrParse, path, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: registry file %s: %w", ErrParse, path, err)
		}
	default:
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			raw = append(raw, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to scan registry file %s: %w", path, err)
		}
	}

	reg := NewStaticRegistry()
	for i, entry := range raw {
		id, err := ParseBlockID(entry)
		if err != nil {
			return nil, fmt.Errorf("registry file %s entry %d: %w", path, i+1, err)
		}
		reg.Register(id, true)
	}
	return reg, nil
}
