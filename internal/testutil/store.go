package testutil

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"taskpad/internal/kv"
	"taskpad/internal/notify"
	"taskpad/internal/taskstore"
)

// Clock is a manual time source. Each call to Now advances it by Step.
type Clock struct {
	mu   sync.Mutex
	t    time.Time
	Step time.Duration
}

// NewClock starts a clock at t that advances one second per reading.
func NewClock(t time.Time) *Clock {
	return &Clock{t: t, Step: time.Second}
}

// Now returns the current reading and advances the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(c.Step)
	return now
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewStore builds a taskstore.Store over store and gw with a fixed clock
// and a silent logger. Pending notifications are awaited on cleanup.
func NewStore(t *testing.T, store kv.Store, gw *FakeGateway, opts ...taskstore.Option) *taskstore.Store {
	t.Helper()
	clock := NewClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	base := []taskstore.Option{
		taskstore.WithLogger(DiscardLogger()),
		taskstore.WithClock(clock.Now),
	}
	var g notify.Gateway
	if gw != nil {
		g = gw
	}
	s := taskstore.New(store, g, append(base, opts...)...)
	t.Cleanup(s.Wait)
	return s
}
