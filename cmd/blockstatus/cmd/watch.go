package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/GoCodeAlone/blockstatus"
	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/spf13/cobra"
)

// NewWatchCommand creates the 'watch' command
func NewWatchCommand(verbose *bool) *cobra.Command {
	var (
		flags sourceFlags
		poll  string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload the configuration whenever it changes",
		Long: `Watch the configuration file and print a summary after every reload,
until interrupted. Use --poll with a cron spec such as "@every 30s" where
file change notifications are unavailable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, &flags, *verbose, poll)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&poll, "poll", "", "Also reload on this cron schedule, e.g. \"@every 30s\"")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, flags *sourceFlags, verbose bool, poll string) error {
	hub := blockstatus.NewEventHub(nil)
	r, logger, err := setup(cmd, flags, verbose, blockstatus.WithSubject(hub))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	// Reloads are serialized by the resolver, so prev needs no lock.
	var prev *blockstatus.Snapshot
	summary := blockstatus.NewFunctionalObserver("cli-summary", func(_ context.Context, event cloudevents.Event) error {
		var data blockstatus.PopulatedEvent
		if err := event.DataAs(&data); err != nil {
			return err
		}
		fmt.Fprintf(out, "generation %d: %d free to break, %d free in claims, %d problem(s)\n",
			data.Generation, data.Break, data.Claim, data.Diagnostics)

		current := r.Snapshot()
		if prev != nil {
			printDiff(out, blockstatus.DiffSnapshots(prev, current))
		}
		prev = current
		return nil
	})
	if err := hub.RegisterObserver(summary, blockstatus.EventTypeRegistryReloaded); err != nil {
		return err
	}

	if _, err := r.Reload(ctx); err != nil {
		return err
	}

	w, err := blockstatus.NewWatcher(flags.configPath, r,
		blockstatus.WithWatcherLogger(logger),
		blockstatus.WithWatcherSubject(hub),
	)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		_ = w.Stop()
		return err
	}
	defer func() { _ = w.Stop() }()

	if poll != "" {
		s, err := blockstatus.NewReloadScheduler(poll, r, logger)
		if err != nil {
			return err
		}
		s.Start(ctx)
		defer s.Stop()
	}

	fmt.Fprintf(out, "Watching %s, press Ctrl+C to stop\n", flags.configPath)
	<-ctx.Done()
	return nil
}

func printDiff(w io.Writer, diff *blockstatus.SnapshotDiff) {
	for _, group := range []struct {
		sign    string
		changes []blockstatus.CategoryChange
	}{{"+", diff.Added}, {"~", diff.Moved}, {"-", diff.Removed}} {
		for _, c := range group.changes {
			fmt.Fprintf(w, "  %s %s: %s -> %s\n", group.sign, c.ID, c.Old, c.New)
		}
	}
	for _, l := range diff.Labels {
		fmt.Fprintf(w, "  label %s: %q -> %q\n", l.Category, blockstatus.StripFormatting(l.Old), blockstatus.StripFormatting(l.New))
	}
}
