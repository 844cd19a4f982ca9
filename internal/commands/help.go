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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskpad help" }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskpad                                         List all tasks
  taskpad list [common flags] [--category <name>] List tasks, optionally in one category
  taskpad add [common flags] [--category <name>] [--remind <HH:MM|RFC3339>] <description...>
  taskpad create ...                              Same as add
  taskpad toggle [common flags] [--id <id>] <n>   Flip a task between open and completed
  taskpad rm [common flags] [--id <id>] <n>       Delete a task and cancel its reminder
  taskpad categories [common flags]
  taskpad watch [common flags] [--interval <d>]   Deliver reminders until interrupted
  taskpad init [common flags] [--force]           Write a default config.yaml
  taskpad login [common flags]
  taskpad logout [common flags]
  taskpad help
  taskpad version

Categories: Work, Personal, Shopping, Health (All selects every task).
Task numbers are the positions printed by list.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
