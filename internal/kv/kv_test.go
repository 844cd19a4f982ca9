package kv_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"taskpad/internal/config"
	"taskpad/internal/kv"
	"taskpad/internal/testutil"
)

// exercise runs the contract every backend must satisfy.
func exercise(t *testing.T, s kv.Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "tasks"); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}

	if err := s.Set(ctx, "tasks", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Set: unexpected error: %v", err)
	}
	got, err := s.Get(ctx, "tasks")
	if err != nil {
		t.Fatalf("Get: unexpected error: %v", err)
	}
	if string(got) != `[{"id":"1"}]` {
		t.Errorf("expected stored value, got %q", got)
	}

	if err := s.Set(ctx, "tasks", []byte(`[]`)); err != nil {
		t.Fatalf("Set: unexpected error: %v", err)
	}
	got, _ = s.Get(ctx, "tasks")
	if string(got) != `[]` {
		t.Errorf("expected overwritten value, got %q", got)
	}

	if _, err := s.Get(ctx, "other"); !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("expected ErrNotFound for other key, got %v", err)
	}
}

func TestMemory(t *testing.T) {
	exercise(t, kv.NewMemory())
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.json")
	s := kv.NewFile(path, testutil.DiscardLogger())
	exercise(t, s)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %o", info.Mode().Perm())
	}

	// A second handle on the same path sees the data.
	got, err := kv.NewFile(path, testutil.DiscardLogger()).Get(context.Background(), "tasks")
	if err != nil || string(got) != `[]` {
		t.Errorf("expected persisted value, got %q (%v)", got, err)
	}
}

func TestFile_CorruptDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("{oops"), 0600); err != nil {
		t.Fatal(err)
	}
	s := kv.NewFile(path, testutil.DiscardLogger())

	if _, err := s.Get(ctx, "tasks"); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unreadable file, got %v", err)
	}
	if data, err := os.ReadFile(path + kv.CorruptSuffix); err != nil || string(data) != "{oops" {
		t.Errorf("expected unreadable file kept aside, got %q (%v)", data, err)
	}

	if err := s.Set(ctx, "tasks", []byte(`[]`)); err != nil {
		t.Fatalf("Set after unreadable file: %v", err)
	}
	if got, err := s.Get(ctx, "tasks"); err != nil || string(got) != `[]` {
		t.Errorf("expected stored value, got %q (%v)", got, err)
	}
}

func TestSQLite(t *testing.T) {
	ctx := context.Background()
	s, err := kv.OpenSQL(ctx, kv.DialectSQLite, filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("OpenSQL: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	exercise(t, s)
}

func TestPostgres(t *testing.T) {
	dsn := os.Getenv("TASKPAD_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("TASKPAD_TEST_PG_DSN not set (integration test)")
	}

	ctx := context.Background()
	s, err := kv.OpenSQL(ctx, kv.DialectPostgres, dsn)
	if err != nil {
		t.Fatalf("OpenSQL: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	// The table may hold rows from earlier runs.
	key := fmt.Sprintf("tasks-%d", time.Now().UnixNano())
	if _, err := s.Get(ctx, key); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for fresh key, got %v", err)
	}
	if err := s.Set(ctx, key, []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, key, []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, key)
	if err != nil || string(got) != `[]` {
		t.Errorf("expected overwritten value, got %q (%v)", got, err)
	}
}

func TestOpen_SelectsBackend(t *testing.T) {
	ctx := context.Background()
	logger := testutil.DiscardLogger()

	cfg := &config.Config{Dir: t.TempDir(), Settings: config.DefaultSettings()}
	s, err := kv.Open(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("Open(file): %v", err)
	}
	f, ok := s.(*kv.File)
	if !ok {
		t.Fatalf("expected *kv.File, got %T", s)
	}
	if want := filepath.Join(cfg.Dir, config.DefaultDataFile); f.Path() != want {
		t.Errorf("expected path %s, got %s", want, f.Path())
	}

	cfg.Settings.Storage.Driver = kv.DriverMemory
	if s, err := kv.Open(ctx, cfg, logger); err != nil {
		t.Errorf("Open(memory): %v", err)
	} else if _, ok := s.(*kv.Memory); !ok {
		t.Errorf("expected *kv.Memory, got %T", s)
	}

	cfg.Settings.Storage.Driver = kv.DriverSQLite
	cfg.Settings.Storage.Path = "db/custom.db"
	cfg.Dir = filepath.Join(cfg.Dir, "cfg")
	if err := os.MkdirAll(filepath.Join(cfg.Dir, "db"), 0700); err != nil {
		t.Fatal(err)
	}
	s, err = kv.Open(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("Open(sqlite): %v", err)
	}
	s.Close()
	if _, err := os.Stat(filepath.Join(cfg.Dir, "db", "custom.db")); err != nil {
		t.Errorf("expected sqlite file under config dir: %v", err)
	}

	cfg.Settings.Storage = config.StorageSettings{Driver: kv.DriverPostgres}
	if _, err := kv.Open(ctx, cfg, logger); err == nil {
		t.Error("expected error for postgres without dsn")
	}

	cfg.Settings.Storage = config.StorageSettings{Driver: "bolt"}
	if _, err := kv.Open(ctx, cfg, logger); err == nil {
		t.Error("expected error for unknown driver")
	}
}
