package blockstatus

import (
	"context"
	"sync"
	"sync/atomic"
)

// Resolver answers which category a block belongs to. Reads go through an
// atomically published *Snapshot and never block; Populate, Apply and Reload
// are serialized and swap in a fully built replacement.
type Resolver struct {
	current atomic.Pointer[Snapshot]

	mu         sync.Mutex
	generation uint64

	loader   ConfigLoader
	registry HostRegistry
	logger   Logger
	subject  Subject
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger for diagnostics.
func WithLogger(logger Logger) Option {
	return func(r *Resolver) {
		r.logger = loggerOrNop(logger)
	}
}

// WithSubject publishes registry and entry events to subject.
func WithSubject(subject Subject) Option {
	return func(r *Resolver) {
		r.subject = subject
	}
}

// WithConfigLoader sets the loader Reload reads from.
func WithConfigLoader(loader ConfigLoader) Option {
	return func(r *Resolver) {
		r.loader = loader
	}
}

// WithHostRegistry sets the registry Reload validates against.
func WithHostRegistry(registry HostRegistry) Option {
	return func(r *Resolver) {
		r.registry = registry
	}
}

// NewResolver creates a Resolver holding an empty snapshot: no explicit
// blocks and the built-in labels.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{logger: NopLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	r.current.Store(emptySnapshot())
	return r
}

// Populate replaces the explicit sets. Entries that do not parse or are not
// in knownPlaceable are skipped and reported; nothing here fails. The
// current display options are kept.
func (r *Resolver) Populate(breakIDs, claimIDs, knownPlaceable []string) *Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	carry := &Report{}
	known := parseKnown(knownPlaceable, carry, r.logger)
	snap := buildSnapshot(buildInput{
		breakIDs: breakIDs,
		claimIDs: claimIDs,
		known:    known,
		display:  r.current.Load().display,
		carry:    carry,
	}, r.logger)

	r.publish(context.Background(), snap, 0, EventTypeRegistryPopulated)
	return snap.report
}

// Apply publishes a snapshot built from cfg, validating entries against reg.
// A nil cfg means DefaultConfig; a nil reg rejects every explicit entry.
func (r *Resolver) Apply(cfg *Config, reg HostRegistry) *Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.buildFromConfig(cfg, nil, reg)
	r.publish(context.Background(), snap, 0, EventTypeRegistryPopulated)
	return snap.report
}

// Reload loads the configuration through the configured ConfigLoader and
// publishes it. The first call is the initial load. Configuration problems
// only show up in the Report; the error is for missing wiring or a context
// cancelled before the swap, in which case the previous snapshot stays.
func (r *Resolver) Reload(ctx context.Context) (*Report, error) {
	if r.loader == nil {
		return nil, ErrNoConfigLoader
	}
	if r.registry == nil {
		return nil, ErrNoHostRegistry
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, loadReport := r.loader.LoadConfig(ctx)
	snap := r.buildFromConfig(cfg, loadReport, r.registry)

	if err := ctx.Err(); err != nil {
		r.logger.Warn("Reload cancelled, keeping previous block categories", "error", err)
		return nil, err
	}

	r.publish(ctx, snap, loadReport.Len(), EventTypeRegistryReloaded)
	return snap.report, nil
}

func (r *Resolver) buildFromConfig(cfg *Config, carry *Report, reg HostRegistry) *Snapshot {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	var known placeableSet = idSet{}
	if reg != nil {
		known = registrySet{reg: reg}
	}
	return buildSnapshot(buildInput{
		breakIDs: cfg.BreakBlocks,
		claimIDs: cfg.ClaimBlocks,
		known:    known,
		display:  cfg.Display,
		carry:    carry,
	}, r.logger)
}

// publish must be called with r.mu held. carried is the number of leading
// diagnostics that came from the loader and were already announced by it.
func (r *Resolver) publish(ctx context.Context, snap *Snapshot, carried int, eventType string) {
	r.generation++
	snap.generation = r.generation
	r.current.Store(snap)

	rep := snap.report
	r.logger.Info("Block categories loaded",
		"generation", snap.generation,
		"break", rep.Break,
		"claim", rep.Claim,
		"known", rep.Known,
		"diagnostics", rep.Len(),
	)

	if carried <= len(rep.Diagnostics) {
		emitDiagnostics(ctx, r.subject, r.logger, EventTypeEntrySkipped, rep.Diagnostics[carried:])
	}
	emitEvent(ctx, r.subject, r.logger, eventType, PopulatedEvent{
		Generation:  snap.generation,
		Break:       rep.Break,
		Claim:       rep.Claim,
		Known:       rep.Known,
		Diagnostics: rep.Len(),
	})
}

// Snapshot returns the currently published snapshot.
func (r *Resolver) Snapshot() *Snapshot {
	return r.current.Load()
}

// Classify returns the category of id in the current snapshot.
func (r *Resolver) Classify(id BlockID) Category {
	return r.current.Load().Classify(id)
}

// ClassifyString parses raw first; malformed identifiers are Default.
func (r *Resolver) ClassifyString(raw string) Category {
	id, err := ParseBlockID(raw)
	if err != nil {
		return Default
	}
	return r.Classify(id)
}

// LabelFor returns the display text for c in the current snapshot.
func (r *Resolver) LabelFor(c Category) string {
	return r.current.Load().Label(c)
}
