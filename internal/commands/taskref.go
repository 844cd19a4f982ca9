package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// TaskRef addresses one task, either by its 1-based position in the full
// list as printed by `taskpad list` or by its id.
type TaskRef struct {
	Pos int
	ID  string
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef builds a reference from the positional args and the --id flag.
// Exactly one of them must be given.
func ParseTaskRef(args []string, id string) (TaskRef, error) {
	id = strings.TrimSpace(id)
	switch {
	case id != "" && len(args) > 0:
		return TaskRef{}, errors.New("cannot use both --id and a task number")
	case id != "":
		return TaskRef{ID: id}, nil
	case len(args) == 0:
		return TaskRef{}, ErrTaskRefRequired
	case len(args) > 1:
		return TaskRef{}, fmt.Errorf("unexpected argument: %s", args[1])
	}

	if !isAllDigits(args[0]) {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", args[0])
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", args[0])
	}
	return TaskRef{Pos: n}, nil
}

func (r TaskRef) String() string {
	if r.ID != "" {
		return "id " + r.ID
	}
	return strconv.Itoa(r.Pos)
}

// isAllDigits reports whether s is a non-empty run of ASCII digits.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
