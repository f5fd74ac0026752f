package feeders

import (
	"fmt"
	"os"

	"github.com/golobby/config/v3/pkg/feeder"
)

// DotEnvFeeder reads BLOCKSTATUS_* assignments from a .env file.
type DotEnvFeeder struct {
	Path string
}

// NewDotEnvFeeder creates a DotEnvFeeder for filePath.
func NewDotEnvFeeder(filePath string) DotEnvFeeder {
	return DotEnvFeeder{Path: filePath}
}

// Read parses the file. The existence check comes first because golobby
// flattens the open error and fs.ErrNotExist would be lost.
func (d DotEnvFeeder) Read() (map[string]any, error) {
	if _, err := os.Stat(d.Path); err != nil {
		return nil, wrapReadError(d.Path, err)
	}

	var e envDocument
	if err := (feeder.DotEnv{Path: d.Path}).Feed(&e); err != nil {
		return nil, wrapMalformedError("dotenv", d.Path, fmt.Errorf("%w: %w", ErrEnvFeederFailed, err))
	}
	return e.document(), nil
}
