package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"taskpad/internal/backend/googletasks"
	"taskpad/internal/config"
	"taskpad/internal/kv"
	"taskpad/internal/notify"
	"taskpad/internal/service"
	"taskpad/internal/taskstore"
)

// NewLogger returns the text logger used on stderr: warnings and errors
// only, everything with debug.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// OpenService is the default ServiceFactory. It opens the configured
// key/value store, picks the notification gateway and loads the task list.
func OpenService(ctx context.Context, cfg *config.Config, out, errOut io.Writer) (service.Service, error) {
	logger := NewLogger(errOut, cfg.Debug)

	store, err := kv.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("storage error: %w", err)
	}

	gw, err := openGateway(ctx, cfg, out, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	opts := []taskstore.Option{taskstore.WithLogger(logger)}
	if cfg.Settings.Notifications.Enabled && !cfg.Quiet {
		opts = append(opts, taskstore.WithPermissionDenied(func(err error) {
			fmt.Fprintf(errOut, "warning: %v, notifications are off\n", err)
		}))
	}

	s := taskstore.New(store, gw, opts...)
	s.Load(ctx)
	return s, nil
}

func openGateway(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) (notify.Gateway, error) {
	n := cfg.Settings.Notifications
	if !n.Enabled {
		return notify.Nop{}, nil
	}

	switch n.Backend {
	case "", config.BackendLocal:
		return notify.NewLocal(out, true, logger), nil
	case config.BackendGoogleTasks:
		gw, err := googletasks.New(ctx, cfg, logger)
		if err != nil {
			// Without credentials there is no permission; the store reports it.
			logger.Warn("google tasks unavailable", "err", err)
			return notify.Nop{}, nil
		}
		return gw, nil
	default:
		return nil, fmt.Errorf("unknown notification backend: %s", n.Backend)
	}
}
