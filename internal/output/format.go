// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskpad/internal/service"
)

const (
	// Separator is the separator line around section headers.
	Separator = "------------"

	// ReminderLayout is how reminder times are shown, in the reminder's own zone.
	ReminderLayout = "2006-01-02 15:04"
)

// FormatTask formats one task row.
// Format: "{N:>4}  [x] {DESCRIPTION}" followed by "  #{CATEGORY}" and
// "  @ {REMINDER}" when set.
func FormatTask(w io.Writer, num int, task service.Task) {
	box := "[ ]"
	if task.Completed {
		box = "[x]"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%4d  %s %s", num, box, normalizeDescription(task.Description))
	if task.Category != nil {
		fmt.Fprintf(&b, "  #%s", *task.Category)
	}
	if task.Reminder != nil {
		fmt.Fprintf(&b, "  @ %s", task.Reminder.Format(ReminderLayout))
	}
	fmt.Fprintln(w, b.String())
}

// FormatHeader formats a section header such as a category name.
func FormatHeader(w io.Writer, title string) {
	fmt.Fprintln(w, Separator)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, Separator)
}

// FormatCategory formats a category with its open and total task counts.
func FormatCategory(w io.Writer, c service.Category, open, total int) {
	fmt.Fprintf(w, "%-10s %d open / %d total\n", c, open, total)
}

// normalizeDescription keeps a task on one line.
// Empty or whitespace-only descriptions become "(untitled)".
func normalizeDescription(desc string) string {
	desc = strings.ReplaceAll(desc, "\r", " ")
	desc = strings.ReplaceAll(desc, "\n", " ")
	if strings.TrimSpace(desc) == "" {
		return "(untitled)"
	}
	return desc
}
