// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"errors"
	"strings"
	"time"
)

// Category is one of a fixed set of task labels.
type Category string

// Fixed category set.
const (
	Work     Category = "Work"
	Personal Category = "Personal"
	Shopping Category = "Shopping"
	Health   Category = "Health"
)

// All is the filter sentinel that selects every task.
const All = "All"

// Categories lists the fixed category set in display order.
var Categories = []Category{Work, Personal, Shopping, Health}

// ErrUnknownCategory is returned when a category name is not in the fixed set.
var ErrUnknownCategory = errors.New("unknown category")

// ParseCategory resolves a category name (case-insensitive, trimmed).
func ParseCategory(name string) (Category, error) {
	name = strings.TrimSpace(name)
	for _, c := range Categories {
		if strings.EqualFold(string(c), name) {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

// Task represents a single task item.
// Field names are the persisted layout.
type Task struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Category    *Category  `json:"category"`
	Reminder    *time.Time `json:"reminder"`
	Completed   bool       `json:"completed"`
}

// InCategory reports whether the task carries category c.
func (t Task) InCategory(c Category) bool {
	return t.Category != nil && *t.Category == c
}

// Draft holds user input for a task that has not been created yet.
type Draft struct {
	Description string
	Category    *Category
	Reminder    *time.Time
}
