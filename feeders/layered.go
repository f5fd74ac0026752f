package feeders

import (
	"errors"
	"io/fs"
	"strings"
)

// Layered merges a base source with overlays applied in order. Nested maps
// are merged key by key, anything else is replaced by the later value.
//
// A layer that fails is left out and the rest are still merged. Read then
// returns the merged document together with a LayerErrors listing what was
// left out. Missing overlays are skipped without an error so an optional
// .env file can be layered without checking for it first; a missing base is
// reported.
type Layered struct {
	base     Source
	overlays []Source
}

// LayerErrors is returned by Layered.Read when some layers failed. Each
// element keeps the original error, so errors.Is works per layer.
type LayerErrors []error

func (e LayerErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "config layers skipped: " + strings.Join(msgs, "; ")
}

func (e LayerErrors) Unwrap() []error { return e }

// NewLayered creates a Layered source.
func NewLayered(base Source, overlays ...Source) *Layered {
	return &Layered{base: base, overlays: overlays}
}

// Read implements Source. The document is nil only when no layer could be
// read at all.
func (l *Layered) Read() (map[string]any, error) {
	var (
		doc  map[string]any
		errs LayerErrors
	)

	base, err := l.base.Read()
	if err != nil {
		errs = append(errs, err)
	} else {
		doc = base
	}

	for _, overlay := range l.overlays {
		od, err := overlay.Read()
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if doc == nil {
			doc = map[string]any{}
		}
		merge(doc, od)
	}

	if len(errs) > 0 {
		return doc, errs
	}
	return doc, nil
}

func merge(dst, src map[string]any) {
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]any)
		dstMap, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			merge(dstMap, srcMap)
			continue
		}
		dst[k] = v
	}
}
