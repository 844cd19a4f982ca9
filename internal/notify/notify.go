// Package notify defines the notification gateway contract and its local implementation.
package notify

import (
	"context"
	"errors"
	"time"
)

// Permission is the host's answer to a notification permission request.
type Permission int

const (
	Denied Permission = iota
	Granted
)

func (p Permission) String() string {
	if p == Granted {
		return "granted"
	}
	return "denied"
}

// ErrPermissionDenied is returned when a send is attempted without permission.
var ErrPermissionDenied = errors.New("notification permission denied")

// Message is the content of one notification.
type Message struct {
	Title string
	Body  string

	// Key identifies what the notification is about, e.g. a task id.
	// Gateways that implement KeyCanceler use it to find the notification later.
	Key string
}

// Handle refers to a scheduled notification.
type Handle interface {
	ID() string
	Cancel(ctx context.Context) error
}

// Gateway delivers notifications through the host's notification service.
type Gateway interface {
	// Permission requests or re-checks notification permission.
	Permission(ctx context.Context) (Permission, error)

	// NotifyImmediate shows a notification now.
	NotifyImmediate(ctx context.Context, msg Message) error

	// ScheduleAt arranges for msg to be shown at the given time.
	ScheduleAt(ctx context.Context, at time.Time, msg Message) (Handle, error)
}

// KeyCanceler is implemented by gateways that can cancel a scheduled
// notification by its message key without holding the Handle.
type KeyCanceler interface {
	CancelKey(ctx context.Context, key string) error
}

// Nop is a Gateway that never has permission.
type Nop struct{}

func (Nop) Permission(ctx context.Context) (Permission, error) { return Denied, nil }

func (Nop) NotifyImmediate(ctx context.Context, msg Message) error { return ErrPermissionDenied }

func (Nop) ScheduleAt(ctx context.Context, at time.Time, msg Message) (Handle, error) {
	return nil, ErrPermissionDenied
}
