package blockstatus

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
)

// ReloadScheduler reloads on a cron schedule, for hosts whose config lives
// somewhere file notifications do not reach (network shares, some containers).
// Specs use the standard five fields or descriptors such as "@every 30s".
type ReloadScheduler struct {
	spec   string
	target Reloader
	logger Logger
	cron   *cron.Cron

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// NewReloadScheduler validates spec and prepares the schedule. Nothing runs
// until Start.
func NewReloadScheduler(spec string, target Reloader, logger Logger) (*ReloadScheduler, error) {
	if target == nil {
		return nil, ErrReloaderNil
	}

	s := &ReloadScheduler{
		spec:   spec,
		target: target,
		logger: loggerOrNop(logger),
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		ctx:    context.Background(),
	}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidSchedule, spec, err)
	}
	return s, nil
}

// Start begins polling. Reloads get a context derived from ctx.
func (s *ReloadScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("Scheduled block status reloads", "spec", s.spec)
}

// Stop halts the schedule and waits for a running reload to return.
func (s *ReloadScheduler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	<-s.cron.Stop().Done()
}

func (s *ReloadScheduler) run() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	report, err := s.target.Reload(ctx)
	if err != nil {
		s.logger.Error("Scheduled reload failed", "spec", s.spec, "error", err)
		return
	}
	s.logger.Debug("Scheduled reload finished", "diagnostics", report.Len())
}
