package blockstatus

import (
	"fmt"
	"slices"
	"time"
)

type idSet map[BlockID]struct{}

func (s idSet) contains(id BlockID) bool {
	_, ok := s[id]
	return ok
}

func (s idSet) ids() []BlockID {
	out := make([]BlockID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// placeableSet is the set of blocks that may be categorized. It is either
// materialized from Populate's input or backed by the host registry, so a
// registry-driven snapshot never copies the host's block list.
type placeableSet interface {
	contains(id BlockID) bool
	ids() []BlockID
}

type registrySet struct {
	reg HostRegistry
}

func (s registrySet) contains(id BlockID) bool {
	return s.reg.IsPlaceable(id)
}

func (s registrySet) ids() []BlockID {
	var out []BlockID
	for _, id := range s.reg.All() {
		if s.reg.IsPlaceable(id) {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// Snapshot is one immutable state of the category registry. The two explicit
// sets are disjoint; every other identifier is Default.
type Snapshot struct {
	explicitBreak idSet
	explicitClaim idSet
	known         placeableSet
	labels        map[Category]string
	display       DisplayConfig
	report        *Report
	loadedAt      time.Time
	generation    uint64
}

func emptySnapshot() *Snapshot {
	display := DefaultConfig().Display
	return &Snapshot{
		explicitBreak: idSet{},
		explicitClaim: idSet{},
		known:         idSet{},
		labels:        labelsFor(display),
		display:       display,
		report:        &Report{},
		loadedAt:      time.Now(),
	}
}

func labelsFor(display DisplayConfig) map[Category]string {
	labels := make(map[Category]string, 3)
	for _, c := range Categories() {
		labels[c] = display.Label(c)
	}
	return labels
}

// Classify returns the category of id: explicit-break, then explicit-claim,
// then default. Identifiers the host does not know are Default too.
func (s *Snapshot) Classify(id BlockID) Category {
	if s.explicitBreak.contains(id) {
		return ExplicitBreak
	}
	if s.explicitClaim.contains(id) {
		return ExplicitClaim
	}
	return Default
}

// Label returns the display text for c.
func (s *Snapshot) Label(c Category) string {
	if label, ok := s.labels[c]; ok {
		return label
	}
	return c.DefaultLabel()
}

// IsKnown reports whether id was in the placeable set this snapshot was built from.
func (s *Snapshot) IsKnown(id BlockID) bool {
	return s.known.contains(id)
}

// Members lists the identifiers of c in sorted order. Default members are
// computed from the placeable set on each call.
func (s *Snapshot) Members(c Category) []BlockID {
	switch c {
	case ExplicitBreak:
		return s.explicitBreak.ids()
	case ExplicitClaim:
		return s.explicitClaim.ids()
	default:
		return slices.DeleteFunc(s.known.ids(), func(id BlockID) bool {
			return s.Classify(id) != Default
		})
	}
}

// Len returns len(Members(c)) without sorting the explicit sets.
func (s *Snapshot) Len(c Category) int {
	switch c {
	case ExplicitBreak:
		return len(s.explicitBreak)
	case ExplicitClaim:
		return len(s.explicitClaim)
	default:
		return len(s.Members(Default))
	}
}

// Display returns the display options the snapshot was built with.
func (s *Snapshot) Display() DisplayConfig { return s.display }

// Report returns the diagnostics and counts of the load that built the snapshot.
func (s *Snapshot) Report() *Report { return s.report }

// LoadedAt returns when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// Generation counts published snapshots; the empty initial snapshot is 0.
func (s *Snapshot) Generation() uint64 { return s.generation }

type buildInput struct {
	breakIDs []string
	claimIDs []string
	known    placeableSet
	display  DisplayConfig
	carry    *Report
}

// buildSnapshot validates the explicit lists against the placeable set.
// Claim entries are admitted first, so an identifier listed in both groups
// ends up in explicit-claim only.
func buildSnapshot(in buildInput, logger Logger) *Snapshot {
	report := &Report{}
	report.Merge(in.carry)

	s := &Snapshot{
		explicitBreak: idSet{},
		explicitClaim: idSet{},
		known:         in.known,
		labels:        labelsFor(in.display),
		display:       in.display,
		report:        report,
		loadedAt:      time.Now(),
	}

	for _, raw := range in.claimIDs {
		if id, ok := s.admit(SectionClaimBlocks, raw, logger); ok {
			s.explicitClaim[id] = struct{}{}
		}
	}
	for _, raw := range in.breakIDs {
		id, ok := s.admit(SectionBreakBlocks, raw, logger)
		if !ok {
			continue
		}
		if s.explicitClaim.contains(id) {
			s.skip(SectionBreakBlocks, raw, fmt.Errorf("%w: %s stays in %s", ErrConflictingIdentifier, id, SectionClaimBlocks), logger)
			continue
		}
		s.explicitBreak[id] = struct{}{}
	}

	report.Break = len(s.explicitBreak)
	report.Claim = len(s.explicitClaim)
	report.Known = len(in.known.ids())
	return s
}

func (s *Snapshot) admit(section, raw string, logger Logger) (BlockID, bool) {
	id, err := ParseBlockID(raw)
	if err != nil {
		s.skip(section, raw, err, logger)
		return "", false
	}
	if !s.known.contains(id) {
		s.skip(section, raw, fmt.Errorf("%w: %s", ErrUnknownIdentifier, id), logger)
		return "", false
	}
	return id, true
}

func (s *Snapshot) skip(section, raw string, err error, logger Logger) {
	s.report.Add(Diagnostic{Section: section, Entry: raw, Err: err})
	logger.Warn("Skipping block entry", "section", section, "entry", raw, "error", err)
}

// parseKnown materializes Populate's placeable list.
func parseKnown(raw []string, report *Report, logger Logger) idSet {
	known := make(idSet, len(raw))
	for _, entry := range raw {
		id, err := ParseBlockID(entry)
		if err != nil {
			report.Add(Diagnostic{Section: SectionKnown, Entry: entry, Err: err})
			logger.Debug("Ignoring malformed placeable identifier", "entry", entry, "error", err)
			continue
		}
		known[id] = struct{}{}
	}
	return known
}
