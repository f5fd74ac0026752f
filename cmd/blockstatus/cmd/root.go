package cmd

import (
	"fmt"
	"os"

	"github.com/GoCodeAlone/blockstatus"
	"github.com/GoCodeAlone/blockstatus/feeders"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// OsExit is swapped out by tests.
var OsExit = os.Exit

// Version information
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// PrintVersion prints version information
func PrintVersion() string {
	return fmt.Sprintf("blockstatus v%s (commit: %s, built on: %s)", Version, Commit, Date)
}

// NewRootCommand creates the root command for the blockstatus CLI
func NewRootCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "blockstatus",
		Short: "Block status - inspect block category configurations",
		Long: `Block status checks and previews the configuration that decides which
blocks are free to break, free in claims, or protected.

Configurations may be YAML, JSON, TOML or .env files. BLOCKSTATUS_*
environment variables are layered on top of the file.`,
		Version:       PrintVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output, including what each config source supplied")

	cmd.AddCommand(NewInitCommand())
	cmd.AddCommand(NewCheckCommand(&verbose))
	cmd.AddCommand(NewClassifyCommand(&verbose))
	cmd.AddCommand(NewWatchCommand(&verbose))

	return cmd
}

// sourceFlags are shared by every command that loads a configuration.
type sourceFlags struct {
	configPath   string
	registryPath string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "blockstatus.yaml", "Configuration file (yaml, json, toml or .env)")
	cmd.Flags().StringVarP(&f.registryPath, "registry", "r", "", "File listing the placeable blocks (json, yaml or one id per line)")
	_ = cmd.MarkFlagRequired("registry")
}

// newLogger writes human-readable logs to the command's stderr.
func newLogger(cmd *cobra.Command, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(cmd.ErrOrStderr()),
		level,
	)
	return zap.New(core)
}

// setup builds the resolver the way a host would: file source with an
// environment overlay, the registry file as the host registry.
func setup(cmd *cobra.Command, flags *sourceFlags, verbose bool, opts ...blockstatus.Option) (*blockstatus.Resolver, blockstatus.Logger, error) {
	logger := blockstatus.NewZapLogger(newLogger(cmd, verbose))

	file, err := feeders.ForFile(flags.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", blockstatus.ErrUnsupportedFormat, err)
	}
	var env feeders.Source = feeders.NewEnvFeeder()
	if verbose {
		file = feeders.NewVerboseFeeder(flags.configPath, file, logger)
		env = feeders.NewVerboseFeeder("environment", env, logger)
	}
	loader := blockstatus.NewLoader(feeders.NewLayered(file, env), blockstatus.WithLoaderLogger(logger))

	registry, err := blockstatus.LoadRegistryFile(flags.registryPath)
	if err != nil {
		return nil, nil, err
	}

	opts = append([]blockstatus.Option{
		blockstatus.WithLogger(logger),
		blockstatus.WithConfigLoader(loader),
		blockstatus.WithHostRegistry(registry),
	}, opts...)
	return blockstatus.NewResolver(opts...), logger, nil
}
