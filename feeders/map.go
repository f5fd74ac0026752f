package feeders

// MapFeeder serves a document held in memory. Hosts that already parsed
// their config, and tests, feed through it.
type MapFeeder map[string]any

// Read returns a deep copy, so callers may merge into it freely.
func (m MapFeeder) Read() (map[string]any, error) {
	doc, _ := deepCopy(map[string]any(m)).(map[string]any)
	return ensureDocument(doc), nil
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = deepCopy(child)
		}
		return out
	case map[any]any:
		out := make(map[any]any, len(t))
		for k, child := range t {
			out[k] = deepCopy(child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = deepCopy(child)
		}
		return out
	default:
		return v
	}
}
