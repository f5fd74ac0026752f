package blockstatus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type countingReloader struct {
	calls atomic.Int32
	err   error
}

func (c *countingReloader) Reload(context.Context) (*Report, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return &Report{}, nil
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "blockstatus.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display: {}\n"), 0o600))

	target := &countingReloader{}
	reloaded := make(chan struct{}, 10)
	w, err := NewWatcher(path, target,
		WithDebounce(50*time.Millisecond),
		WithWatcherLogger(&testLogger{t: t}),
		WithReloadHook(func(*Report, error) { reloaded <- struct{}{} }),
	)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer func() { require.NoError(t, w.Stop()) }()

	// A burst of writes is one reload.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("blacklisted-blocks: [stone]\n"), 0o600))
	}

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after the config file changed")
	}
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), target.calls.Load())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "blockstatus.yaml")
	target := &countingReloader{}

	w, err := NewWatcher(path, target, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o600))
	time.Sleep(150 * time.Millisecond)
	require.NoError(t, w.Stop())

	assert.Equal(t, int32(0), target.calls.Load())
}

func TestWatcher_ReloadErrorReachesHook(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "blockstatus.json")
	boom := errors.New("registry unavailable")
	errs := make(chan error, 10)

	w, err := NewWatcher(path, &countingReloader{err: boom},
		WithDebounce(10*time.Millisecond),
		WithReloadHook(func(_ *Report, err error) { errs <- err }),
	)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer func() { require.NoError(t, w.Stop()) }()

	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	select {
	case got := <-errs:
		assert.ErrorIs(t, got, boom)
	case <-time.After(5 * time.Second):
		t.Fatal("reload hook was not called")
	}
}

func TestWatcher_Lifecycle(t *testing.T) {
	defer goleak.VerifyNone(t)

	_, err := NewWatcher("blockstatus.yaml", nil)
	assert.ErrorIs(t, err, ErrReloaderNil)

	w, err := NewWatcher(filepath.Join(t.TempDir(), "blockstatus.yaml"), &countingReloader{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	assert.ErrorIs(t, w.Start(ctx), ErrWatcherStarted)

	cancel()
	require.NoError(t, w.Stop())
	assert.NoError(t, w.Stop(), "stopping twice is harmless")
}

func TestWatcher_StartFailsForMissingDirectory(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := NewWatcher(filepath.Join(t.TempDir(), "absent", "blockstatus.yaml"), &countingReloader{})
	require.NoError(t, err)

	assert.Error(t, w.Start(context.Background()))
	require.NoError(t, w.Stop())
}

func TestWatcher_WithResolver(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "blockstatus.yaml")
	require.NoError(t, os.WriteFile(path, []byte("blacklisted-blocks: []\n"), 0o600))

	loader, err := NewFileLoader(path)
	require.NoError(t, err)
	r := NewResolver(WithConfigLoader(loader), WithHostRegistry(NewStaticRegistry(ids("minecraft:stone")...)))
	_, err = r.Reload(context.Background())
	require.NoError(t, err)
	require.Equal(t, Default, r.Classify("minecraft:stone"))

	w, err := NewWatcher(path, r, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer func() { require.NoError(t, w.Stop()) }()

	require.NoError(t, os.WriteFile(path, []byte("blacklisted-blocks: [stone]\n"), 0o600))

	assert.Eventually(t, func() bool {
		return r.Classify("minecraft:stone") == ExplicitBreak
	}, 5*time.Second, 20*time.Millisecond)
}
