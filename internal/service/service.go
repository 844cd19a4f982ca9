// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"time"
)

// Service defines the interface for task list operations.
type Service interface {
	// Load re-reads the persisted list and makes it the current list.
	// Read and decode failures are logged, never returned.
	Load(ctx context.Context) []Task

	// Tasks returns a copy of the current list in insertion order.
	Tasks() []Task

	// AddTask validates the draft, appends a new task and persists the list.
	// Returns the created task. A failed write still returns the task along
	// with an error wrapping the store's not-persisted error.
	AddTask(ctx context.Context, d Draft) (Task, error)

	// RemoveTask deletes the task with the given id.
	// No-op if no task matches.
	RemoveTask(ctx context.Context, id string) error

	// ToggleCompletion flips the completed flag of the task with the given id.
	// No-op if no task matches.
	ToggleCompletion(ctx context.Context, id string) error

	// FilterByCategory re-reads the persisted list and returns the tasks in
	// the given category, or all of them for the "All" filter.
	FilterByCategory(ctx context.Context, filter string) []Task

	// ScheduleReminders arms reminders for open tasks due after now and
	// cancels armed reminders whose task was removed or completed.
	// Returns the number of reminders scheduled.
	ScheduleReminders(ctx context.Context, now time.Time) int

	// Wait blocks until pending notification dispatches finish.
	Wait()
}
