package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/GoCodeAlone/blockstatus"
	"github.com/spf13/cobra"
)

// ErrDiagnostics is returned by check --strict when the load was not clean.
var ErrDiagnostics = errors.New("configuration has diagnostics")

// NewCheckCommand creates the 'check' command
func NewCheckCommand(verbose *bool) *cobra.Command {
	var (
		flags  sourceFlags
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Load a configuration and report what was kept and what was skipped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := setup(cmd, &flags, *verbose)
			if err != nil {
				return err
			}
			report, err := r.Reload(cmd.Context())
			if err != nil {
				return err
			}

			printReport(cmd.OutOrStdout(), r.Snapshot(), report)
			if strict && report.Len() > 0 {
				return fmt.Errorf("%w: %d", ErrDiagnostics, report.Len())
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any entry was skipped or a default was used")

	return cmd
}

func printReport(w io.Writer, snap *blockstatus.Snapshot, report *blockstatus.Report) {
	fmt.Fprintf(w, "Placeable blocks:  %d\n", report.Known)
	fmt.Fprintf(w, "Free to break:     %d\n", snap.Len(blockstatus.ExplicitBreak))
	fmt.Fprintf(w, "Free in claims:    %d\n", snap.Len(blockstatus.ExplicitClaim))
	fmt.Fprintf(w, "Block for block:   %d\n", snap.Len(blockstatus.Default))

	if report.Len() == 0 {
		fmt.Fprintln(w, "No problems found.")
		return
	}
	fmt.Fprintf(w, "\n%d problem(s):\n", report.Len())
	for _, d := range report.Diagnostics {
		fmt.Fprintf(w, "  - %s\n", d.Error())
	}
}
