package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
	"taskpad/internal/taskstore"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	category string
	remind   string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskpad add [--category <name>] [--remind <HH:MM|RFC3339>] <description...>"
}
func (c *AddCmd) NeedsService() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.category, "category", "", "")
	fs.StringVar(&c.category, "c", "", "")
	fs.StringVar(&c.remind, "remind", "", "")
	fs.StringVar(&c.remind, "r", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	draft := service.Draft{Description: strings.Join(args, " ")}

	if c.category != "" {
		cat, err := service.ParseCategory(c.category)
		if err != nil {
			fmt.Fprintf(errOut, "error: unknown category: %s\n", c.category)
			return exitcode.UserError
		}
		draft.Category = &cat
	}

	if c.remind != "" {
		at, err := parseRemind(c.remind, time.Now())
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		draft.Reminder = &at
	}

	_, err := svc.AddTask(ctx, draft)
	switch {
	case errors.Is(err, taskstore.ErrEmptyDescription):
		fmt.Fprintln(errOut, "error: description required")
		return exitcode.UserError
	case errors.Is(err, taskstore.ErrNotPersisted):
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.BackendError
	case err != nil:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// parseRemind accepts a time of day, meaning today in now's location,
// or a full RFC 3339 timestamp.
func parseRemind(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("15:04", s, now.Location()); err == nil {
		y, m, d := now.Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, now.Location()), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid reminder time: %s (want HH:MM or RFC3339)", s)
}
