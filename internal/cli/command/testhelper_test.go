package command

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	corecmd "github.com/yndnr/respkv/internal/core/command"
	"github.com/yndnr/respkv/internal/server/respserver"
	"github.com/yndnr/respkv/internal/storage/memory"
)

// startServer runs a respserver on a loopback port for the test.
func startServer(t *testing.T) string {
	t.Helper()
	cfg := respserver.DefaultConfig()
	cfg.Address = "127.0.0.1:0"

	srv := respserver.New(cfg, corecmd.NewExecutor(memory.New()),
		respserver.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, srv.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv.Addr().String()
}

// testEnv runs the CLI app with an isolated config file.
type testEnv struct {
	t          *testing.T
	server     string
	configPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("RESPKV_SERVER", "")
	t.Setenv("RESPKV_CLI_CONFIG", "")
	return &testEnv{
		t:          t,
		server:     startServer(t),
		configPath: filepath.Join(t.TempDir(), "cli.yaml"),
	}
}

// run executes the app with --server and --config prepended.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	full := []string{"respkv-cli", "--config", e.configPath}
	if e.server != "" {
		full = append(full, "--server", e.server)
	}
	return runApp(full, "")
}

func runApp(args []string, stdin string) (string, error) {
	var out bytes.Buffer
	app := App()
	app.Writer = &out
	app.ErrWriter = io.Discard
	app.Reader = strings.NewReader(stdin)
	err := app.Run(args)
	return out.String(), err
}
