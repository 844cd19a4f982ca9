// Package googletasks mirrors task reminders into a Google Tasks list.
//
// Each reminder becomes a Google task whose due date is the reminder time and
// whose notes end with a marker line naming the taskpad task it belongs to.
package googletasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"taskpad/internal/config"
	"taskpad/internal/notify"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// PageSize is the number of tasks fetched per page.
	PageSize = 100

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// MarkerPrefix starts the notes line that links a Google task to a taskpad task.
	MarkerPrefix = "taskpad:"

	// Scope is the OAuth scope for Google Tasks.
	Scope = "https://www.googleapis.com/auth/tasks"
)

// Client implements notify.Gateway and notify.KeyCanceler on Google Tasks.
type Client struct {
	svc      *tasks.Service
	cfg      *config.Config
	logger   *slog.Logger
	listName string

	mu     sync.Mutex
	listID string
}

var (
	_ notify.Gateway     = (*Client)(nil)
	_ notify.KeyCanceler = (*Client)(nil)
)

// New creates a Google Tasks gateway for the list named in settings.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Client, error) {
	oc, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := ReadToken(cfg.TokenPath())
	if err != nil {
		return nil, err
	}

	// Refreshed tokens are not written back; login does that.
	httpClient := oauth2.NewClient(ctx, oc.TokenSource(ctx, token))

	c, err := NewWithHTTPClient(ctx, httpClient, cfg.Settings.Notifications.List, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	c.cfg = cfg
	return c, nil
}

// NewWithHTTPClient creates a gateway on a custom HTTP client. Extra options
// such as option.WithEndpoint are passed to the API client.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, listName string, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{svc: svc, logger: logger, listName: strings.TrimSpace(listName)}, nil
}

// Permission implements notify.Gateway. It is granted while the OAuth
// client and token files are present, so a logout takes effect immediately.
func (c *Client) Permission(ctx context.Context) (notify.Permission, error) {
	if c.cfg != nil && (!c.cfg.HasOAuthClient() || !c.cfg.HasToken()) {
		return notify.Denied, nil
	}
	return notify.Granted, nil
}

// NotifyImmediate implements notify.Gateway. Google Tasks has no push
// notification, so the message is only logged.
func (c *Client) NotifyImmediate(ctx context.Context, msg notify.Message) error {
	c.logger.Info("immediate notification not supported by google tasks", "title", msg.Title, "key", msg.Key)
	return nil
}

// ScheduleAt implements notify.Gateway by inserting a task due at the given time.
func (c *Client) ScheduleAt(ctx context.Context, at time.Time, msg notify.Message) (notify.Handle, error) {
	listID, err := c.resolveListID(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	task := &tasks.Task{
		Title: msg.Title,
		Notes: notes(msg),
		Due:   at.UTC().Format(time.RFC3339),
	}
	created, err := c.svc.Tasks.Insert(listID, task).Context(ctx).Do()
	if err != nil {
		return nil, wrapError(err)
	}

	c.logger.Debug("reminder mirrored", "list", listID, "task", created.Id, "key", msg.Key)
	return &handle{c: c, listID: listID, taskID: created.Id}, nil
}

// CancelKey implements notify.KeyCanceler. Every task in the list carrying
// the marker for key is deleted.
func (c *Client) CancelKey(ctx context.Context, key string) error {
	listID, err := c.resolveListID(ctx)
	if err != nil {
		return err
	}

	ids, err := c.findMarked(ctx, listID, key)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := c.deleteTask(ctx, listID, id); err != nil {
			return err
		}
	}
	return nil
}

// ResolveList finds a list ID by title (case-insensitive, trimmed).
func (c *Client) ResolveList(ctx context.Context, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	var matches []string
	err := c.svc.Tasklists.List().MaxResults(100).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			if strings.EqualFold(strings.TrimSpace(list.Title), name) {
				matches = append(matches, list.Id)
			}
		}
		return nil
	})
	if err != nil {
		return "", wrapError(err)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("list not found: %s", name)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous list name: %s", name)
	}
}

func (c *Client) resolveListID(ctx context.Context) (string, error) {
	if c.listName == "" {
		return DefaultListID, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listID != "" {
		return c.listID, nil
	}
	id, err := c.ResolveList(ctx, c.listName)
	if err != nil {
		return "", err
	}
	c.listID = id
	return id, nil
}

func (c *Client) findMarked(ctx context.Context, listID, key string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	marker := MarkerPrefix + key
	var ids []string
	err := c.svc.Tasks.List(listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, t := range resp.Items {
				if hasMarker(t.Notes, marker) {
					ids = append(ids, t.Id)
				}
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	return ids, nil
}

func (c *Client) deleteTask(ctx context.Context, listID, taskID string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if err := c.svc.Tasks.Delete(listID, taskID).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	c.logger.Debug("mirrored reminder deleted", "list", listID, "task", taskID)
	return nil
}

type handle struct {
	c      *Client
	listID string
	taskID string
}

func (h *handle) ID() string { return h.taskID }

func (h *handle) Cancel(ctx context.Context) error {
	return h.c.deleteTask(ctx, h.listID, h.taskID)
}

func notes(msg notify.Message) string {
	marker := MarkerPrefix + msg.Key
	if msg.Body == "" {
		return marker
	}
	return msg.Body + "\n\n" + marker
}

func hasMarker(notes, marker string) bool {
	for _, line := range strings.Split(notes, "\n") {
		if strings.TrimSpace(line) == marker {
			return true
		}
	}
	return false
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "context deadline exceeded"):
		return fmt.Errorf("request timed out")
	case strings.Contains(errStr, "401"), strings.Contains(errStr, "403"):
		return fmt.Errorf("token expired or revoked (run: taskpad login)")
	case strings.Contains(errStr, "404"):
		return fmt.Errorf("not found")
	}
	return err
}
