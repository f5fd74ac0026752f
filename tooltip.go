package blockstatus

import (
	"strings"
)

// FormattingCode introduces a legacy formatting code in display texts.
const FormattingCode = '§'

// Line is one label to append to an item's tooltip.
type Line struct {
	Text string
	// Lore asks the host to render the line as item lore rather than as an
	// advanced tooltip line.
	Lore bool
}

// Annotator turns block identifiers into tooltip lines using whatever
// snapshot the Resolver currently publishes.
type Annotator struct {
	resolver *Resolver
}

// NewAnnotator creates an Annotator over r.
func NewAnnotator(r *Resolver) *Annotator {
	return &Annotator{resolver: r}
}

// Annotate returns the line for id. It reports false when both
// useAdvancedTooltip and useLore are off.
func (a *Annotator) Annotate(id BlockID) (Line, bool) {
	snap := a.resolver.Snapshot()
	display := snap.Display()
	if !display.UseAdvancedTooltip && !display.UseLore {
		return Line{}, false
	}
	return Line{
		Text: snap.Label(snap.Classify(id)),
		Lore: display.UseLore,
	}, true
}

// Callback returns the function a host registers for tooltip rendering. Items
// that do not place a block get no lines.
func (a *Annotator) Callback(items ItemBlockResolver) func(item string) []Line {
	return func(item string) []Line {
		id, ok := items.BlockOf(item)
		if !ok {
			return nil
		}
		line, ok := a.Annotate(id)
		if !ok {
			return nil
		}
		return []Line{line}
	}
}

// StripFormatting removes § codes, leaving the plain text.
func StripFormatting(text string) string {
	if !strings.ContainsRune(text, FormattingCode) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	skip := false
	for _, r := range text {
		switch {
		case skip:
			skip = false
		case r == FormattingCode:
			skip = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
