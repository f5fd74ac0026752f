package blockstatus

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultNamespace is assumed for identifiers written without a namespace,
// so "stone" and ":stone" both parse as "minecraft:stone".
const DefaultNamespace = "minecraft"

// BlockID is a canonical namespace:path key naming a block type in the
// host's registry. Two BlockIDs are equal only if their strings are equal.
type BlockID string

// ParseBlockID validates raw and returns its canonical form.
// The namespace may contain [a-z0-9_.-] and the path [a-z0-9_./-].
func ParseBlockID(raw string) (BlockID, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: empty identifier", ErrParse)
	}

	namespace, path, found := strings.Cut(raw, ":")
	if !found {
		namespace, path = DefaultNamespace, raw
	} else if namespace == "" {
		namespace = DefaultNamespace
	}

	if path == "" {
		return "", fmt.Errorf("%w: %q has an empty path", ErrParse, raw)
	}
	if i := strings.IndexFunc(namespace, invalidNamespaceRune); i >= 0 {
		r, _ := utf8.DecodeRuneInString(namespace[i:])
		return "", fmt.Errorf("%w: %q has invalid namespace character %q", ErrParse, raw, r)
	}
	if i := strings.IndexFunc(path, invalidPathRune); i >= 0 {
		r, _ := utf8.DecodeRuneInString(path[i:])
		return "", fmt.Errorf("%w: %q has invalid path character %q", ErrParse, raw, r)
	}

	return BlockID(namespace + ":" + path), nil
}

// MustParseBlockID is ParseBlockID for identifiers known at compile time.
// It panics on malformed input.
func MustParseBlockID(raw string) BlockID {
	id, err := ParseBlockID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// Namespace returns the part before the colon.
func (id BlockID) Namespace() string {
	ns, _, _ := strings.Cut(string(id), ":")
	return ns
}

// Path returns the part after the colon.
func (id BlockID) Path() string {
	_, path, _ := strings.Cut(string(id), ":")
	return path
}

func (id BlockID) String() string {
	return string(id)
}

func invalidNamespaceRune(r rune) bool {
	return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' || r == '.' || r == '-')
}

func invalidPathRune(r rune) bool {
	return invalidNamespaceRune(r) && r != '/'
}
