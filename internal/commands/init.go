package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
)

func init() {
	Register(&InitCmd{})
}

// InitCmd implements the init command.
type InitCmd struct {
	force bool
}

func (c *InitCmd) Name() string       { return "init" }
func (c *InitCmd) Aliases() []string  { return nil }
func (c *InitCmd) Synopsis() string   { return "Write a default config.yaml" }
func (c *InitCmd) Usage() string      { return "taskpad init [common flags] [--force]" }
func (c *InitCmd) NeedsService() bool { return false }

func (c *InitCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *InitCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if cfg.HasSettings() && !c.force {
		fmt.Fprintf(errOut, "error: %s already exists (use --force to overwrite)\n", cfg.SettingsPath())
		return exitcode.UserError
	}

	if err := config.WriteSettings(cfg.SettingsPath(), config.DefaultSettings()); err != nil {
		fmt.Fprintf(errOut, "error: failed to write settings: %v\n", err)
		return exitcode.ConfigError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "wrote %s\n", cfg.SettingsPath())
	}
	return exitcode.Success
}
