// Package commands implements the reclint subcommands.
package commands

import (
	"log/slog"
	"os"

	"github.com/reclint-labs/reclint/internal/cli/config"
	"github.com/reclint-labs/reclint/internal/cli/output"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext assembles the config, logger, and renderer for a command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.Output)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables. The fallback matters for commands constructed
// outside the root command, e.g. in tests.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	sort := os.Getenv("RECLINT_SORT")
	if sort == "" {
		sort = config.DefaultSort
	}
	return &config.Config{
		Sort:    sort,
		Output:  os.Getenv("RECLINT_OUTPUT"),
		Verbose: os.Getenv("RECLINT_VERBOSE") == "true",
	}
}

// targetDir resolves the optional positional DIR argument, defaulting to
// the current directory.
func targetDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
