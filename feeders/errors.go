package feeders

import (
	"errors"
	"fmt"
)

// Static errors shared by every feeder.
var (
	// ErrMalformedDocument is wrapped when a file was read but could not be parsed.
	ErrMalformedDocument = errors.New("malformed config document")

	// ErrUnsupportedExtension is returned by ForFile for unknown file types.
	ErrUnsupportedExtension = errors.New("unsupported config file extension")

	// ErrEnvFeederFailed is wrapped when golobby's env decoding fails.
	ErrEnvFeederFailed = errors.New("env feeder failed")
)

func wrapMalformedError(format, path string, err error) error {
	return fmt.Errorf("%w: %s file %s: %w", ErrMalformedDocument, format, path, err)
}

func wrapReadError(path string, err error) error {
	return fmt.Errorf("failed to read config file %s: %w", path, err)
}
