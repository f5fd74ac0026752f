package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/GoCodeAlone/blockstatus"
	"github.com/spf13/cobra"
)

// ErrConfigExists is returned by init when the target exists and --force is not set.
var ErrConfigExists = errors.New("configuration file already exists")

// NewInitCommand creates the 'init' command
func NewInitCommand() *cobra.Command {
	var (
		format string
		out    string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a configuration file holding the default labels and empty block
lists. The format is taken from --format, or from the file extension.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = blockstatus.FormatFromPath(out)
			}
			if format == "" {
				format = blockstatus.FormatYAML
			}

			if !force {
				if _, err := os.Stat(out); err == nil {
					return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, out)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("failed to check %s: %w", out, err)
				}
			}

			if err := blockstatus.WriteDefaultConfig(out, format); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default %s configuration to %s\n", format, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Document format: yaml, json or toml")
	cmd.Flags().StringVarP(&out, "out", "o", "blockstatus.yaml", "Where to write the configuration")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
