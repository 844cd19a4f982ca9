package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Local prints notifications to a writer and schedules reminders with
// in-process timers. Scheduled reminders only fire while the process runs.
type Local struct {
	mu      sync.Mutex
	out     io.Writer
	enabled bool
	logger  *slog.Logger
	pending map[string]*localHandle
}

// NewLocal creates a Local gateway writing to out.
// enabled decides what Permission reports.
func NewLocal(out io.Writer, enabled bool, logger *slog.Logger) *Local {
	if logger == nil {
		logger = slog.Default()
	}
	return &Local{
		out:     out,
		enabled: enabled,
		logger:  logger,
		pending: make(map[string]*localHandle),
	}
}

// Permission implements Gateway.
func (l *Local) Permission(ctx context.Context) (Permission, error) {
	if l.enabled {
		return Granted, nil
	}
	return Denied, nil
}

// NotifyImmediate implements Gateway.
func (l *Local) NotifyImmediate(ctx context.Context, msg Message) error {
	if !l.enabled {
		return ErrPermissionDenied
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.write(msg)
}

// ScheduleAt implements Gateway. A time that is not in the future is
// delivered before ScheduleAt returns.
func (l *Local) ScheduleAt(ctx context.Context, at time.Time, msg Message) (Handle, error) {
	if !l.enabled {
		return nil, ErrPermissionDenied
	}

	h := &localHandle{id: uuid.NewString(), key: msg.Key, gw: l}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !at.After(time.Now()) {
		l.logger.Debug("reminder already due", "handle", h.id, "key", msg.Key, "at", at)
		return h, l.write(msg)
	}
	l.pending[h.id] = h
	h.timer = time.AfterFunc(time.Until(at), func() { l.fire(h.id, msg) })

	l.logger.Debug("reminder scheduled", "handle", h.id, "key", msg.Key, "at", at)
	return h, nil
}

// CancelKey implements KeyCanceler.
func (l *Local) CancelKey(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, h := range l.pending {
		if h.key == key {
			h.timer.Stop()
			delete(l.pending, id)
		}
	}
	return nil
}

// Pending returns the number of reminders that have not fired yet.
func (l *Local) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

func (l *Local) fire(id string, msg Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.pending[id]; !ok {
		return // cancelled
	}
	delete(l.pending, id)
	if err := l.write(msg); err != nil {
		l.logger.Warn("failed to deliver reminder", "key", msg.Key, "err", err)
	}
}

// write must be called with l.mu held.
func (l *Local) write(msg Message) error {
	_, err := fmt.Fprintf(l.out, "[%s] %s\n", msg.Title, msg.Body)
	return err
}

type localHandle struct {
	id    string
	key   string
	timer *time.Timer
	gw    *Local
}

func (h *localHandle) ID() string { return h.id }

func (h *localHandle) Cancel(ctx context.Context) error {
	h.gw.mu.Lock()
	defer h.gw.mu.Unlock()
	if _, ok := h.gw.pending[h.id]; ok {
		h.timer.Stop()
		delete(h.gw.pending, h.id)
	}
	return nil
}
