package commands

import (
	"fmt"

	"taskpad/internal/service"
)

// findTask resolves ref against the full task list.
func findTask(tasks []service.Task, ref TaskRef) (service.Task, error) {
	if ref.ID != "" {
		for _, t := range tasks {
			if t.ID == ref.ID {
				return t, nil
			}
		}
		return service.Task{}, fmt.Errorf("task not found: %s", ref.ID)
	}
	if ref.Pos < 1 || ref.Pos > len(tasks) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", ref.Pos)
	}
	return tasks[ref.Pos-1], nil
}

// positions maps task ids to their 1-based position in tasks.
func positions(tasks []service.Task) map[string]int {
	pos := make(map[string]int, len(tasks))
	for i, t := range tasks {
		pos[t.ID] = i + 1
	}
	return pos
}
