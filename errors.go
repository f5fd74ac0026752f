package blockstatus

import (
	"errors"
)

// Diagnostic errors. Everything on the load path is recovered locally, so
// these show up wrapped inside a Diagnostic rather than returned from Populate.
var (
	ErrParse                 = errors.New("parse error")
	ErrUnknownIdentifier     = errors.New("unknown or non-placeable identifier")
	ErrConflictingIdentifier = errors.New("identifier listed as both break and claim")
	ErrConfigMissing         = errors.New("config source missing")
	ErrConfigUnreadable      = errors.New("config source unreadable")
	ErrConfigMalformed       = errors.New("config malformed")
)

// Setup errors, returned to the caller that wired things together.
var (
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrConfigSourceNil   = errors.New("config source is nil")
	ErrNoConfigLoader    = errors.New("resolver has no config loader")
	ErrNoHostRegistry    = errors.New("resolver has no host registry")
	ErrReloaderNil       = errors.New("reload target is nil")
	ErrInvalidSchedule   = errors.New("invalid reload schedule")
	ErrWatcherStarted    = errors.New("watcher already started")
)

// Observer errors
var (
	ErrObserverNil               = errors.New("observer is nil")
	ErrObserverAlreadyRegistered = errors.New("observer already registered")
)
