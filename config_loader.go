package blockstatus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/GoCodeAlone/blockstatus/feeders"
	"github.com/golobby/cast"
)

// ConfigSource produces a raw configuration document. The feeders package
// has implementations for files, the environment and in-memory maps.
//
// Implementations should wrap fs.ErrNotExist for a missing source and
// feeders.ErrMalformedDocument for one that cannot be parsed; anything else
// is reported as unreadable. A non-nil document returned with an error is
// used as is, and each error joined into it becomes a document diagnostic.
type ConfigSource interface {
	Read() (map[string]any, error)
}

// ConfigLoader turns some configuration source into a Config. It never
// fails: problems are recovered and described in the returned Report.
type ConfigLoader interface {
	LoadConfig(ctx context.Context) (*Config, *Report)
}

// Older documents used these names; the canonical key wins when both exist.
var legacyKeys = map[string]string{
	SectionBreakBlocks:  "freeToBreakBlocks",
	SectionClaimBlocks:  "freeInClaimsBlocks",
	"blockForBlockText": "BlockForBlockText",
}

// Loader is the ConfigLoader for a ConfigSource.
type Loader struct {
	source     ConfigSource
	logger     Logger
	subject    Subject
	createPath string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLoaderLogger sets the logger for diagnostics.
func WithLoaderLogger(logger Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = loggerOrNop(logger)
	}
}

// WithLoaderSubject publishes config.loaded and config.fallback events.
func WithLoaderSubject(subject Subject) LoaderOption {
	return func(l *Loader) {
		l.subject = subject
	}
}

// WithCreateIfMissing writes the default document to path when the source
// reports it missing. Loading still continues with defaults.
func WithCreateIfMissing(path string) LoaderOption {
	return func(l *Loader) {
		l.createPath = path
	}
}

// NewLoader creates a Loader reading from source.
func NewLoader(source ConfigSource, opts ...LoaderOption) *Loader {
	l := &Loader{
		source: source,
		logger: NopLogger{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewFileLoader creates a Loader for a YAML, JSON, TOML or .env file, chosen
// by extension.
func NewFileLoader(path string, opts ...LoaderOption) (*Loader, error) {
	source, err := feeders.ForFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	return NewLoader(source, opts...), nil
}

// LoadConfig implements ConfigLoader.
func (l *Loader) LoadConfig(ctx context.Context) (*Config, *Report) {
	cfg := DefaultConfig()
	report := &Report{}

	doc, errs := l.read()
	for _, err := range errs {
		report.Add(Diagnostic{Section: SectionDocument, Err: err})
		if errors.Is(err, ErrConfigMissing) && l.createPath != "" {
			l.createDefault()
		}
	}
	if doc == nil {
		l.logger.Warn("Using built-in configuration", "error", report.Err())
		emitDiagnostics(ctx, l.subject, l.logger, EventTypeConfigFallback, report.Diagnostics)
		return cfg, report
	}
	if len(errs) > 0 {
		l.logger.Warn("Loading the configuration layers that could be read", "skipped", len(errs))
	}

	l.decodeDisplay(doc, &cfg.Display, report)
	cfg.BreakBlocks = l.decodeList(doc, SectionBreakBlocks, report)
	cfg.ClaimBlocks = l.decodeList(doc, SectionClaimBlocks, report)

	l.logger.Info("Configuration loaded",
		"breakEntries", len(cfg.BreakBlocks),
		"claimEntries", len(cfg.ClaimBlocks),
		"diagnostics", report.Len(),
	)
	emitDiagnostics(ctx, l.subject, l.logger, EventTypeConfigFallback, report.Diagnostics)
	emitEvent(ctx, l.subject, l.logger, EventTypeConfigLoaded, map[string]int{
		"breakEntries": len(cfg.BreakBlocks),
		"claimEntries": len(cfg.ClaimBlocks),
		"diagnostics":  report.Len(),
	})
	return cfg, report
}

// read returns the document and its failures, each classified into one of
// the three document-level errors. Layered sources report one error per
// failed layer.
func (l *Loader) read() (map[string]any, []error) {
	if l.source == nil {
		return nil, []error{fmt.Errorf("%w: %w", ErrConfigMissing, ErrConfigSourceNil)}
	}

	doc, err := l.source.Read()
	if err == nil {
		return doc, nil
	}

	var layers feeders.LayerErrors
	if !errors.As(err, &layers) {
		layers = feeders.LayerErrors{err}
	}
	errs := make([]error, 0, len(layers))
	for _, layerErr := range layers {
		errs = append(errs, classifyReadError(layerErr))
	}
	return doc, errs
}

func classifyReadError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrConfigMissing, err)
	case errors.Is(err, feeders.ErrMalformedDocument):
		return fmt.Errorf("%w: %w", ErrConfigMalformed, err)
	default:
		return fmt.Errorf("%w: %w", ErrConfigUnreadable, err)
	}
}

func (l *Loader) createDefault() {
	if err := WriteDefaultConfig(l.createPath, ""); err != nil {
		l.logger.Warn("Could not create default configuration", "path", l.createPath, "error", err)
		return
	}
	l.logger.Info("Created default configuration", "path", l.createPath)
}

// lookup finds key or its legacy spelling in m.
func lookup(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	if legacy, ok := legacyKeys[key]; ok {
		v, ok := m[legacy]
		return v, ok
	}
	return nil, false
}

type displayField struct {
	key string
	set func(d *DisplayConfig, v any) error
}

var displayFields = []displayField{
	{"useAdvancedTooltip", func(d *DisplayConfig, v any) (err error) { d.UseAdvancedTooltip, err = toBool(v); return }},
	{"useLore", func(d *DisplayConfig, v any) (err error) { d.UseLore, err = toBool(v); return }},
	{"blockForBlockText", func(d *DisplayConfig, v any) (err error) { d.BlockForBlockText, err = toText(v); return }},
	{"freeToBreakText", func(d *DisplayConfig, v any) (err error) { d.FreeToBreakText, err = toText(v); return }},
	{"freeInClaimsText", func(d *DisplayConfig, v any) (err error) { d.FreeInClaimsText, err = toText(v); return }},
}

// decodeDisplay fills display field by field. A bad field keeps its default;
// a display section that is not a map keeps the whole section's defaults.
func (l *Loader) decodeDisplay(doc map[string]any, display *DisplayConfig, report *Report) {
	raw, ok := doc[SectionDisplay]
	if !ok || raw == nil {
		return
	}
	section, ok := raw.(map[string]any)
	if !ok {
		l.sectionMalformed(SectionDisplay, fmt.Sprintf("expected a map, got %T", raw), report)
		return
	}

	for _, f := range displayFields {
		v, ok := lookup(section, f.key)
		if !ok {
			continue
		}
		candidate := *display
		if err := f.set(&candidate, v); err != nil {
			report.Add(Diagnostic{Section: SectionDisplay, Entry: f.key, Err: err})
			l.logger.Warn("Ignoring display setting", "key", f.key, "error", err)
			continue
		}
		*display = candidate
	}
}

// decodeList returns the string entries of a block list. Anything else is
// skipped: a decoder has already rewritten unquoted numbers (1e3, 0x10), so
// their original text is gone. The diagnostic points at the entry's index.
func (l *Loader) decodeList(doc map[string]any, section string, report *Report) []string {
	raw, ok := lookup(doc, section)
	if !ok || raw == nil {
		return []string{}
	}

	var items []any
	switch t := raw.(type) {
	case []any:
		items = t
	case []string:
		for _, s := range t {
			items = append(items, s)
		}
	default:
		l.sectionMalformed(section, fmt.Sprintf("expected a list, got %T", raw), report)
		return []string{}
	}

	out := make([]string, 0, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		default:
			err := fmt.Errorf("%w: entry %d is %T, not a quoted identifier", ErrParse, i, item)
			report.Add(Diagnostic{Section: section, Entry: fmt.Sprintf("[%d]", i), Err: err})
			l.logger.Warn("Skipping block entry", "section", section, "index", i, "error", err)
		}
	}
	return out
}

func (l *Loader) sectionMalformed(section, reason string, report *Report) {
	err := fmt.Errorf("%w: %s", ErrConfigMalformed, reason)
	report.Add(Diagnostic{Section: section, Err: err})
	l.logger.Warn("Using defaults for config section", "section", section, "error", err)
}

// toBool accepts booleans and the strings strconv.ParseBool understands.
func toBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		parsed, err := cast.FromString(t, "bool")
		if err != nil {
			return false, fmt.Errorf("%w: %q is not a boolean", ErrParse, t)
		}
		return parsed.(bool), nil
	default:
		return false, fmt.Errorf("%w: %T is not a boolean", ErrParse, v)
	}
}

func toText(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %T is not text", ErrParse, v)
	}
	return s, nil
}
