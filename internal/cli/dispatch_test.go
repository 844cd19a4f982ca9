package cli_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskpad/internal/cli"
	"taskpad/internal/commands"
	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/kv"
	"taskpad/internal/service"
	"taskpad/internal/testutil"
)

// testFactory hands out one in-memory store backed by gw.
func testFactory(t *testing.T, gw *testutil.FakeGateway) cli.ServiceFactory {
	svc := testutil.NewStore(t, kv.NewMemory(), gw)
	return func(ctx context.Context, cfg *config.Config, out, errOut io.Writer) (service.Service, error) {
		return svc, nil
	}
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = d.Run(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), code
}

func TestDispatcher_Errors(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(t, nil))
	dir := t.TempDir()

	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"unknown command", []string{"unknowncmd"}, "error: unknown command: unknowncmd\n"},
		{"flag before command", []string{"--quiet"}, "error: unknown command: --quiet\n"},
		{"unknown flag", []string{"help", "--unknown"}, "error: unknown flag: -unknown\n"},
		{"missing flag value", []string{"list", "--config", dir, "--category"}, "error: flag needs an argument: -category\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := run(t, d, tt.args...)
			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stdout != "" || stderr != tt.stderr {
				t.Errorf("unexpected output %q / %q", stdout, stderr)
			}
		})
	}
}

func TestDispatcher_HelpAndVersion(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(t, nil))
	dir := t.TempDir()

	stdout, stderr, code := run(t, d, "help", "--config", dir)
	if code != exitcode.Success || stderr != "" || !strings.Contains(stdout, "Usage:") {
		t.Errorf("unexpected help result %d %q %q", code, stdout, stderr)
	}

	stdout, _, code = run(t, d, "version", "--config", dir)
	if code != exitcode.Success || stdout != "taskpad 0.1.0\n" {
		t.Errorf("unexpected version result %d %q", code, stdout)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	gw := testutil.NewFakeGateway()
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(t, gw))

	if _, stderr, code := run(t, d, "add", "--quiet", "Test", "Task"); code != exitcode.Success {
		t.Fatalf("add failed: %d %s", code, stderr)
	}

	stdout, _, code := run(t, d)
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if !strings.HasSuffix(stdout, "  [ ] Test Task\n") {
		t.Errorf("unexpected listing %q", stdout)
	}
	if len(gw.Immediate()) != 1 {
		t.Errorf("expected one creation notification, got %d", len(gw.Immediate()))
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config, out, errOut io.Writer) (service.Service, error) {
		return nil, errors.New("storage error: disk on fire")
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, factory)

	_, stderr, code := run(t, d, "list", "--config", t.TempDir())

	if code != exitcode.BackendError || stderr != "error: storage error: disk on fire\n" {
		t.Errorf("unexpected result %d %q", code, stderr)
	}
}

func TestDispatcher_InvalidSettings(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte("storage: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(t, nil))

	_, stderr, code := run(t, d, "list", "--config", dir)

	if code != exitcode.ConfigError || !strings.HasPrefix(stderr, "error: ") {
		t.Errorf("unexpected result %d %q", code, stderr)
	}
}

// The default factory persists to tasks.json under the config directory
// and prints local notifications.
func TestDispatcher_DefaultFactory(t *testing.T) {
	dir := t.TempDir()
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, stderr, code := run(t, d, "add", "--config", dir, "--quiet", "-c", "work", "Write", "report")
	if code != exitcode.Success {
		t.Fatalf("add failed: %d %s", code, stderr)
	}
	if stdout != "[New Task Added!] Your task \"Write report\" has been created.\n" {
		t.Errorf("unexpected notification output %q", stdout)
	}

	data, err := os.ReadFile(filepath.Join(dir, config.DefaultDataFile))
	if err != nil {
		t.Fatalf("expected data file: %v", err)
	}
	if !strings.Contains(string(data), "Write report") {
		t.Errorf("expected task in data file, got %s", data)
	}

	stdout, _, code = run(t, d, "list", "--config", dir, "--category", "Work")
	if code != exitcode.Success {
		t.Fatalf("list failed: %d", code)
	}
	if !strings.Contains(stdout, "   1  [ ] Write report  #Work\n") {
		t.Errorf("unexpected listing %q", stdout)
	}

	if _, _, code := run(t, d, "toggle", "--config", dir, "--quiet", "1"); code != exitcode.Success {
		t.Fatalf("toggle failed: %d", code)
	}
	if _, _, code := run(t, d, "delete", "--config", dir, "--quiet", "1"); code != exitcode.Success {
		t.Fatalf("delete failed: %d", code)
	}
	stdout, _, _ = run(t, d, "list", "--config", dir)
	if stdout != "no tasks found\n" {
		t.Errorf("expected empty list, got %q", stdout)
	}
}

func TestDispatcher_DefaultFactoryUnknownBackend(t *testing.T) {
	dir := t.TempDir()
	settings := config.DefaultSettings()
	settings.Notifications.Backend = "carrier-pigeon"
	if err := config.WriteSettings(filepath.Join(dir, config.SettingsFile), settings); err != nil {
		t.Fatal(err)
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, stderr, code := run(t, d, "list", "--config", dir)

	if code != exitcode.BackendError || stderr != "error: unknown notification backend: carrier-pigeon\n" {
		t.Errorf("unexpected result %d %q", code, stderr)
	}
}
