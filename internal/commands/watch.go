package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
)

func init() {
	Register(&WatchCmd{})
}

// DefaultWatchInterval is how often watch re-reads the task list.
const DefaultWatchInterval = 5 * time.Second

// WatchCmd implements the watch command. It arms reminders for every open
// task with a future reminder and keeps running until interrupted, which is
// what lets in-process reminders fire. The list is re-read every interval so
// tasks added, completed or removed by other invocations are followed.
type WatchCmd struct {
	interval time.Duration
}

func (c *WatchCmd) Name() string       { return "watch" }
func (c *WatchCmd) Aliases() []string  { return nil }
func (c *WatchCmd) Synopsis() string   { return "Deliver reminders until interrupted" }
func (c *WatchCmd) Usage() string      { return "taskpad watch [--interval <duration>] [common flags]" }
func (c *WatchCmd) NeedsService() bool { return true }

func (c *WatchCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.DurationVar(&c.interval, "interval", DefaultWatchInterval, "")
}

func (c *WatchCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	interval := c.interval
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	n := svc.ScheduleReminders(ctx, time.Now())
	if !cfg.Quiet {
		fmt.Fprintf(out, "watching %d reminder(s), press Ctrl-C to stop\n", n)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return exitcode.Success
		case <-ticker.C:
			svc.Load(ctx)
			if n := svc.ScheduleReminders(ctx, time.Now()); n > 0 && !cfg.Quiet {
				fmt.Fprintf(out, "armed %d new reminder(s)\n", n)
			}
		}
	}
}
