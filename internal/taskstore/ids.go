package taskstore

import (
	"strconv"
	"time"
)

// idGen hands out ids derived from the wall clock in milliseconds.
// Ids are strictly increasing: a clock that stalls or steps back yields last+1.
type idGen struct {
	last int64
}

func (g *idGen) next(now time.Time) string {
	n := now.UnixMilli()
	if n <= g.last {
		n = g.last + 1
	}
	g.last = n
	return strconv.FormatInt(n, 10)
}

// observe raises the floor so new ids sort after an existing one.
// Ids that are not base-10 integers are ignored.
func (g *idGen) observe(id string) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err == nil && n > g.last {
		g.last = n
	}
}
