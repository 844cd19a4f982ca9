package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/output"
	"taskpad/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskpad` (no args) and `taskpad list --category <name>`.
// Rows are numbered by their position in the full list, so the numbers
// printed under a category filter still work with toggle and rm.
type ListCmd struct {
	category string
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "taskpad list [--category <name>|All]" }
func (c *ListCmd) NeedsService() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.category, "category", service.All, "")
	fs.StringVar(&c.category, "c", service.All, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	filter := service.All
	if c.category != "" && !strings.EqualFold(c.category, service.All) {
		cat, err := service.ParseCategory(c.category)
		if err != nil {
			fmt.Fprintf(errOut, "error: unknown category: %s\n", c.category)
			return exitcode.UserError
		}
		filter = string(cat)
	}

	tasks := svc.FilterByCategory(ctx, filter)
	pos := positions(svc.Tasks())

	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	if filter != service.All {
		output.FormatHeader(out, filter)
	}
	for _, t := range tasks {
		output.FormatTask(out, pos[t.ID], t)
	}
	return exitcode.Success
}
