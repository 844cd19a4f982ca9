package commands

import (
	"context"
	"flag"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/output"
	"taskpad/internal/service"
)

func init() {
	Register(&CategoriesCmd{})
}

// CategoriesCmd implements the categories command.
type CategoriesCmd struct{}

func (c *CategoriesCmd) Name() string       { return "categories" }
func (c *CategoriesCmd) Aliases() []string  { return nil }
func (c *CategoriesCmd) Synopsis() string   { return "Print the categories with task counts" }
func (c *CategoriesCmd) Usage() string      { return "taskpad categories [common flags]" }
func (c *CategoriesCmd) NeedsService() bool { return true }

func (c *CategoriesCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CategoriesCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	tasks := svc.Tasks()
	for _, cat := range service.Categories {
		open, total := 0, 0
		for _, t := range tasks {
			if !t.InCategory(cat) {
				continue
			}
			total++
			if !t.Completed {
				open++
			}
		}
		output.FormatCategory(out, cat, open, total)
	}
	return exitcode.Success
}
