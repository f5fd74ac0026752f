package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/GoCodeAlone/blockstatus"
	"github.com/spf13/cobra"
)

// NewClassifyCommand creates the 'classify' command
func NewClassifyCommand(verbose *bool) *cobra.Command {
	var (
		flags sourceFlags
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "classify [block ids...]",
		Short: "Show the category and label of blocks",
		Long: `Show the category and the tooltip label of each block, as the game would.
Identifiers without a namespace are looked up under "minecraft".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := setup(cmd, &flags, *verbose)
			if err != nil {
				return err
			}
			if _, err := r.Reload(cmd.Context()); err != nil {
				return err
			}

			snap := r.Snapshot()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, raw := range args {
				id, err := blockstatus.ParseBlockID(raw)
				if err != nil {
					fmt.Fprintf(tw, "%s\tinvalid\t%s\n", raw, err)
					continue
				}
				category := snap.Classify(id)
				note := ""
				if !snap.IsKnown(id) {
					note = "\t(not placeable)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s%s\n", id, category, RenderLabel(snap.Label(category), plain), note)
			}
			return tw.Flush()
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "Strip § formatting codes instead of rendering colors")

	return cmd
}
