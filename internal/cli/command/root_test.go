package command

import (
	"flag"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	cliconfig "github.com/yndnr/respkv/internal/cli/config"
	"github.com/yndnr/respkv/internal/cli/output"
)

func TestApp(t *testing.T) {
	app := App()
	assert.Equal(t, "respkv-cli", app.Name)
	assert.NotEmpty(t, app.Usage)
	assert.NotEmpty(t, app.Version)

	names := make(map[string]bool)
	for _, cmd := range app.Commands {
		names[cmd.Name] = true
	}
	for _, name := range []string{"get", "set", "delete", "flush", "mget", "mset", "exec", "repl", "config"} {
		assert.True(t, names[name], "missing command %s", name)
	}
}

func TestApp_GlobalFlags(t *testing.T) {
	flags := make(map[string]bool)
	for _, f := range App().Flags {
		flags[f.Names()[0]] = true
	}
	for _, name := range []string{"server", "output", "timeout", "config"} {
		assert.True(t, flags[name], "missing flag %s", name)
	}
}

func contextWith(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range globalFlags() {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(&cli.App{Name: "test"}, set, nil)
}

func TestResolveSettings_Defaults(t *testing.T) {
	t.Setenv("RESPKV_SERVER", "")
	path := filepath.Join(t.TempDir(), "cli.yaml")

	s, err := ResolveSettings(contextWith(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:31337", s.Server)
	assert.Equal(t, output.FormatText, s.Output)
	assert.Equal(t, 5*time.Second, s.Timeout)
	assert.Equal(t, path, s.ConfigPath)
}

func TestResolveSettings_FileThenFlags(t *testing.T) {
	t.Setenv("RESPKV_SERVER", "")
	path := filepath.Join(t.TempDir(), "cli.yaml")
	cfg := cliconfig.Default()
	cfg.Server = "10.1.1.1:7000"
	cfg.Output = "yaml"
	require.NoError(t, cliconfig.Save(cfg, path))

	s, err := ResolveSettings(contextWith(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, "10.1.1.1:7000", s.Server)
	assert.Equal(t, output.FormatYAML, s.Output)

	s, err = ResolveSettings(contextWith(t, "--config", path, "-s", "localhost:1", "-o", "json", "--timeout", "1s"))
	require.NoError(t, err)
	assert.Equal(t, "localhost:1", s.Server)
	assert.Equal(t, output.FormatJSON, s.Output)
	assert.Equal(t, time.Second, s.Timeout)
}

func TestResolveSettings_Env(t *testing.T) {
	t.Setenv("RESPKV_SERVER", "envhost:9")
	s, err := ResolveSettings(contextWith(t, "--config", filepath.Join(t.TempDir(), "cli.yaml")))
	require.NoError(t, err)
	assert.Equal(t, "envhost:9", s.Server)
}

func TestResolveSettings_BadOutput(t *testing.T) {
	_, err := ResolveSettings(contextWith(t, "--config", filepath.Join(t.TempDir(), "cli.yaml"), "-o", "xml"))
	assert.Error(t, err)
}
