package blockstatus

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// CategoryChange is one block whose category differs between two snapshots.
type CategoryChange struct {
	ID  BlockID  `json:"id"`
	Old Category `json:"old"`
	New Category `json:"new"`
}

// LabelChange is one category whose display text differs.
type LabelChange struct {
	Category Category `json:"category"`
	Old      string   `json:"old"`
	New      string   `json:"new"`
}

// SnapshotDiff describes what a reload changed. Only blocks that were
// explicit in either snapshot are compared; the default group is whatever
// is left over and is not listed.
type SnapshotDiff struct {
	// Added were Default and are now explicit.
	Added []CategoryChange `json:"added,omitempty"`

	// Moved switched between explicit-break and explicit-claim.
	Moved []CategoryChange `json:"moved,omitempty"`

	// Removed were explicit and are now Default.
	Removed []CategoryChange `json:"removed,omitempty"`

	Labels []LabelChange `json:"labels,omitempty"`

	FromGeneration uint64    `json:"fromGeneration"`
	ToGeneration   uint64    `json:"toGeneration"`
	Timestamp      time.Time `json:"timestamp"`

	// DiffID correlates log lines about the same diff.
	DiffID string `json:"diffId"`
}

// DiffSnapshots compares two snapshots. A nil snapshot is treated as empty.
// Entries are sorted by identifier.
func DiffSnapshots(prev, next *Snapshot) *SnapshotDiff {
	if prev == nil {
		prev = emptySnapshot()
	}
	if next == nil {
		next = emptySnapshot()
	}

	diff := &SnapshotDiff{
		FromGeneration: prev.generation,
		ToGeneration:   next.generation,
		Timestamp:      time.Now(),
		DiffID:         uuid.NewString(),
	}

	seen := idSet{}
	for _, set := range []idSet{prev.explicitBreak, prev.explicitClaim, next.explicitBreak, next.explicitClaim} {
		for id := range set {
			seen[id] = struct{}{}
		}
	}
	for _, id := range seen.ids() {
		was, is := prev.Classify(id), next.Classify(id)
		if was == is {
			continue
		}
		change := CategoryChange{ID: id, Old: was, New: is}
		switch {
		case was == Default:
			diff.Added = append(diff.Added, change)
		case is == Default:
			diff.Removed = append(diff.Removed, change)
		default:
			diff.Moved = append(diff.Moved, change)
		}
	}

	for _, c := range Categories() {
		if was, is := prev.Label(c), next.Label(c); was != is {
			diff.Labels = append(diff.Labels, LabelChange{Category: c, Old: was, New: is})
		}
	}
	return diff
}

// HasChanges reports whether anything a player would see changed.
func (d *SnapshotDiff) HasChanges() bool {
	return len(d.Added)+len(d.Moved)+len(d.Removed)+len(d.Labels) > 0
}

// ChangedIDs lists every block whose category changed, sorted.
func (d *SnapshotDiff) ChangedIDs() []BlockID {
	out := make([]BlockID, 0, len(d.Added)+len(d.Moved)+len(d.Removed))
	for _, group := range [][]CategoryChange{d.Added, d.Moved, d.Removed} {
		for _, c := range group {
			out = append(out, c.ID)
		}
	}
	slices.Sort(out)
	return out
}
