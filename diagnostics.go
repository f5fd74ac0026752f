package blockstatus

import (
	"errors"
	"fmt"
)

// Config sections named in diagnostics.
const (
	SectionDocument    = "document"
	SectionDisplay     = "display"
	SectionBreakBlocks = "blacklisted-blocks"
	SectionClaimBlocks = "blacklisted-claim-blocks"
	SectionKnown       = "known-placeable"
)

// Diagnostic records one recovered problem. Err wraps one of ErrParse,
// ErrUnknownIdentifier, ErrConflictingIdentifier, ErrConfigMissing,
// ErrConfigUnreadable or ErrConfigMalformed.
type Diagnostic struct {
	Section string `json:"section"`
	Entry   string `json:"entry,omitempty"`
	Err     error  `json:"-"`
}

func (d Diagnostic) Error() string {
	if d.Entry == "" {
		return fmt.Sprintf("%s: %v", d.Section, d.Err)
	}
	return fmt.Sprintf("%s: %q: %v", d.Section, d.Entry, d.Err)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Report collects the diagnostics and counts of one load or populate.
// A nil *Report reads as empty.
type Report struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
	Break       int          `json:"break"`
	Claim       int          `json:"claim"`
	Known       int          `json:"known"`
}

// Add appends d.
func (r *Report) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// Merge appends the diagnostics of other. Counts are left alone.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
}

// Len returns the number of diagnostics.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Diagnostics)
}

// Count returns how many diagnostics match target with errors.Is.
func (r *Report) Count(target error) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, d := range r.Diagnostics {
		if errors.Is(d, target) {
			n++
		}
	}
	return n
}

// Err joins every diagnostic into one error, or returns nil when there are none.
func (r *Report) Err() error {
	if r.Len() == 0 {
		return nil
	}
	errs := make([]error, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		errs[i] = d
	}
	return errors.Join(errs...)
}
