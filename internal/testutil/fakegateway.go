// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskpad/internal/notify"
)

// Scheduled is a reminder recorded by FakeGateway.
type Scheduled struct {
	ID        string
	At        time.Time
	Message   notify.Message
	Cancelled bool
}

// FakeGateway is an in-memory notify.Gateway that records every call.
type FakeGateway struct {
	mu        sync.Mutex
	nextID    int
	immediate []notify.Message
	scheduled []*Scheduled

	// Perm is returned by Permission.
	Perm notify.Permission

	// PermissionChecks counts Permission calls.
	PermissionChecks int

	// Error injection for testing
	PermissionErr error
	NotifyErr     error
	ScheduleErr   error
	CancelErr     error
}

// NewFakeGateway creates a FakeGateway that grants permission.
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{Perm: notify.Granted}
}

// Permission implements notify.Gateway.
func (f *FakeGateway) Permission(ctx context.Context) (notify.Permission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PermissionChecks++
	if f.PermissionErr != nil {
		return notify.Denied, f.PermissionErr
	}
	return f.Perm, nil
}

// NotifyImmediate implements notify.Gateway.
func (f *FakeGateway) NotifyImmediate(ctx context.Context, msg notify.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.NotifyErr != nil {
		return f.NotifyErr
	}
	f.immediate = append(f.immediate, msg)
	return nil
}

// ScheduleAt implements notify.Gateway.
func (f *FakeGateway) ScheduleAt(ctx context.Context, at time.Time, msg notify.Message) (notify.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ScheduleErr != nil {
		return nil, f.ScheduleErr
	}
	f.nextID++
	s := &Scheduled{ID: fmt.Sprintf("reminder-%d", f.nextID), At: at, Message: msg}
	f.scheduled = append(f.scheduled, s)
	return &fakeHandle{gw: f, s: s}, nil
}

// Immediate returns the notifications sent so far.
func (f *FakeGateway) Immediate() []notify.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]notify.Message, len(f.immediate))
	copy(out, f.immediate)
	return out
}

// Scheduled returns copies of the reminders scheduled so far.
func (f *FakeGateway) Scheduled() []Scheduled {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Scheduled, len(f.scheduled))
	for i, s := range f.scheduled {
		out[i] = *s
	}
	return out
}

type fakeHandle struct {
	gw *FakeGateway
	s  *Scheduled
}

func (h *fakeHandle) ID() string { return h.s.ID }

func (h *fakeHandle) Cancel(ctx context.Context) error {
	h.gw.mu.Lock()
	defer h.gw.mu.Unlock()
	if h.gw.CancelErr != nil {
		return h.gw.CancelErr
	}
	h.s.Cancelled = true
	return nil
}
