// Package taskstore owns the task list and keeps it in sync with a key/value store.
//
// Every mutation rewrites the whole list through the key/value store before
// returning. Callers only ever receive copies of the list.
package taskstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"taskpad/internal/kv"
	"taskpad/internal/notify"
	"taskpad/internal/service"
)

// Key is the single key the task list is stored under.
const Key = "tasks"

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock sets the time source used for ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithPermissionDenied registers fn to be called the first time the
// notification gateway reports that permission is denied.
func WithPermissionDenied(fn func(error)) Option {
	return func(s *Store) { s.onDenied = fn }
}

// Store implements service.Service on top of a kv.Store and a notify.Gateway.
type Store struct {
	mu        sync.Mutex
	kv        kv.Store
	gw        notify.Gateway
	logger    *slog.Logger
	now       func() time.Time
	ids       idGen
	tasks     []service.Task
	reminders map[string]notify.Handle // task id -> scheduled reminder

	wg         sync.WaitGroup
	deniedOnce sync.Once
	onDenied   func(error)
}

var _ service.Service = (*Store)(nil)

// New creates a Store with an empty list. Call Load to hydrate it.
// A nil gateway behaves like notify.Nop.
func New(store kv.Store, gw notify.Gateway, opts ...Option) *Store {
	if gw == nil {
		gw = notify.Nop{}
	}
	s := &Store{
		kv:        store,
		gw:        gw,
		logger:    slog.Default(),
		now:       time.Now,
		reminders: make(map[string]notify.Handle),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load implements service.Service.
func (s *Store) Load(ctx context.Context) []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.load(ctx))
}

// Tasks implements service.Service.
func (s *Store) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks)
}

// Save replaces the current list with tasks and writes it through.
// The in-memory list is replaced even when the write fails; the returned
// error then wraps ErrNotPersisted.
func (s *Store) Save(ctx context.Context, tasks []service.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, cloneTasks(tasks))
}

// AddTask implements service.Service.
func (s *Store) AddTask(ctx context.Context, d service.Draft) (service.Task, error) {
	desc, err := ValidateDescription(d.Description)
	if err != nil {
		return service.Task{}, err
	}
	category, err := validateCategory(d.Category)
	if err != nil {
		return service.Task{}, err
	}

	s.mu.Lock()
	task := service.Task{
		ID:          s.ids.next(s.now()),
		Description: desc,
		Category:    category,
		Reminder:    cloneTime(d.Reminder),
	}
	next := append(cloneTasks(s.tasks), task)
	saveErr := s.save(ctx, next)
	s.mu.Unlock()

	s.logger.Debug("task added", "id", task.ID)
	s.dispatch(ctx, cloneTask(task))
	return task, saveErr
}

// RemoveTask implements service.Service.
func (s *Store) RemoveTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]service.Task, 0, len(s.tasks))
	var removed *service.Task
	for i, t := range s.tasks {
		if t.ID == id {
			removed = &s.tasks[i]
			continue
		}
		next = append(next, t)
	}
	if removed != nil && removed.Reminder != nil {
		s.cancelReminder(ctx, id)
	}
	return s.save(ctx, next)
}

// ToggleCompletion implements service.Service.
func (s *Store) ToggleCompletion(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneTasks(s.tasks)
	for i := range next {
		if next[i].ID == id {
			next[i].Completed = !next[i].Completed
		}
	}
	return s.save(ctx, next)
}

// FilterByCategory implements service.Service.
// Both the "All" filter and category filters re-read the durable store;
// the in-memory list is refreshed with the full durable list.
func (s *Store) FilterByCategory(ctx context.Context, filter string) []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.load(ctx)
	if filter == service.All {
		return cloneTasks(tasks)
	}

	var out []service.Task
	for _, t := range tasks {
		if t.InCategory(service.Category(filter)) {
			out = append(out, cloneTask(t))
		}
	}
	return out
}

// ScheduleReminders implements service.Service.
// Tasks that already have a reminder armed by this store are skipped. Gateways
// that keep reminders outside the process have earlier copies cancelled first.
// Armed reminders whose task is gone or completed are cancelled.
func (s *Store) ScheduleReminders(ctx context.Context, now time.Time) int {
	s.cancelStale(ctx)
	if !s.permitted(ctx) {
		return 0
	}

	s.mu.Lock()
	var due []service.Task
	for _, t := range s.tasks {
		if t.Completed || t.Reminder == nil || !t.Reminder.After(now) {
			continue
		}
		if _, ok := s.reminders[t.ID]; ok {
			continue
		}
		due = append(due, cloneTask(t))
	}
	s.mu.Unlock()

	kc, _ := s.gw.(notify.KeyCanceler)
	n := 0
	for _, t := range due {
		if kc != nil {
			if err := kc.CancelKey(ctx, t.ID); err != nil {
				s.logger.Warn("failed to cancel earlier reminder", "id", t.ID, "err", err)
			}
		}
		if s.schedule(ctx, t) {
			n++
		}
	}
	return n
}

// cancelStale drops armed reminders whose task left the list or was completed.
func (s *Store) cancelStale(ctx context.Context) {
	s.mu.Lock()
	stale := make(map[string]notify.Handle)
	for id, h := range s.reminders {
		if t, ok := s.lookup(id); !ok || t.Completed {
			stale[id] = h
			delete(s.reminders, id)
		}
	}
	s.mu.Unlock()

	for id, h := range stale {
		s.logger.Debug("cancelling stale reminder", "id", id)
		if err := h.Cancel(ctx); err != nil {
			s.logger.Warn("failed to cancel reminder", "id", id, "err", err)
		}
	}
}

// Wait implements service.Service.
func (s *Store) Wait() {
	s.wg.Wait()
}

// Close waits for pending notifications and closes the key/value store.
func (s *Store) Close() error {
	s.wg.Wait()
	return s.kv.Close()
}

// load must be called with s.mu held.
func (s *Store) load(ctx context.Context) []service.Task {
	data, err := s.kv.Get(ctx, Key)
	if errors.Is(err, kv.ErrNotFound) {
		s.tasks = nil
		return s.tasks
	}
	if err != nil {
		s.logger.Error("failed to load tasks", "err", err)
		return s.tasks
	}

	var tasks []service.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		s.logger.Error("stored tasks are unreadable, starting empty", "err", err)
		s.tasks = nil
		return s.tasks
	}

	s.tasks = s.dedupe(tasks)
	for _, t := range s.tasks {
		s.ids.observe(t.ID)
	}
	return s.tasks
}

// save must be called with s.mu held. tasks must not be shared with callers.
func (s *Store) save(ctx context.Context, tasks []service.Task) error {
	if tasks == nil {
		tasks = []service.Task{}
	}
	s.tasks = tasks

	data, err := json.Marshal(tasks)
	if err != nil {
		s.logger.Error("failed to encode tasks", "err", err)
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	if err := s.kv.Set(ctx, Key, data); err != nil {
		s.logger.Error("failed to save tasks", "err", err)
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return nil
}

// dedupe drops tasks whose id was already seen, keeping the first.
func (s *Store) dedupe(tasks []service.Task) []service.Task {
	seen := make(map[string]bool, len(tasks))
	out := tasks[:0]
	for _, t := range tasks {
		if seen[t.ID] {
			s.logger.Warn("dropping task with duplicate id", "id", t.ID)
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}

// dispatch sends the creation notification and schedules the reminder
// without blocking the caller. Wait blocks until it is done.
func (s *Store) dispatch(ctx context.Context, task service.Task) {
	ctx = context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if !s.permitted(ctx) {
			return
		}
		if err := s.gw.NotifyImmediate(ctx, createdMessage(task)); err != nil {
			s.logger.Warn("failed to send notification", "id", task.ID, "err", err)
		}
		if task.Reminder != nil {
			s.schedule(ctx, task)
		}
	}()
}

// permitted re-checks notification permission. A denial is reported once.
func (s *Store) permitted(ctx context.Context) bool {
	p, err := s.gw.Permission(ctx)
	if err != nil {
		s.logger.Warn("failed to check notification permission", "err", err)
		return false
	}
	if p != notify.Granted {
		s.deniedOnce.Do(func() {
			s.logger.Warn("notification permission denied, skipping notifications")
			if s.onDenied != nil {
				s.onDenied(notify.ErrPermissionDenied)
			}
		})
		return false
	}
	return true
}

// schedule arms the reminder for task and records its handle.
// If the task was removed in the meantime the reminder is cancelled again.
func (s *Store) schedule(ctx context.Context, task service.Task) bool {
	h, err := s.gw.ScheduleAt(ctx, *task.Reminder, reminderMessage(task))
	if err != nil {
		s.logger.Warn("failed to schedule reminder", "id", task.ID, "err", err)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.contains(task.ID) {
		if err := h.Cancel(ctx); err != nil {
			s.logger.Warn("failed to cancel reminder", "id", task.ID, "err", err)
		}
		return false
	}
	s.reminders[task.ID] = h
	return true
}

// cancelReminder must be called with s.mu held.
func (s *Store) cancelReminder(ctx context.Context, id string) {
	if h, ok := s.reminders[id]; ok {
		delete(s.reminders, id)
		if err := h.Cancel(ctx); err != nil {
			s.logger.Warn("failed to cancel reminder", "id", id, "err", err)
		}
		return
	}
	if kc, ok := s.gw.(notify.KeyCanceler); ok {
		if err := kc.CancelKey(ctx, id); err != nil {
			s.logger.Warn("failed to cancel reminder", "id", id, "err", err)
		}
	}
}

func (s *Store) contains(id string) bool {
	_, ok := s.lookup(id)
	return ok
}

func (s *Store) lookup(id string) (service.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

func cloneTasks(tasks []service.Task) []service.Task {
	if tasks == nil {
		return nil
	}
	out := make([]service.Task, len(tasks))
	for i, t := range tasks {
		out[i] = cloneTask(t)
	}
	return out
}

func cloneTask(t service.Task) service.Task {
	if t.Category != nil {
		c := *t.Category
		t.Category = &c
	}
	t.Reminder = cloneTime(t.Reminder)
	return t
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
