package command

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/yndnr/respkv/internal/cli/config"
	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/internal/infra/buildinfo"
	"github.com/yndnr/respkv/pkg/client"
)

const settingsKey = "settings"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "respkv-cli",
		Usage:   "respkv command-line client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			GetCommand(),
			SetCommand(),
			DeleteCommand(),
			FlushCommand(),
			MGetCommand(),
			MSetCommand(),
			ExecCommand(),
			REPLCommand(),
			ConfigCommand(),
		},
		Before: func(c *cli.Context) error {
			s, err := ResolveSettings(c)
			if err != nil {
				return err
			}
			if c.App.Metadata == nil {
				c.App.Metadata = make(map[string]any)
			}
			c.App.Metadata[settingsKey] = s
			return nil
		},
	}
}

// globalFlags returns the global CLI flags. Empty values fall back to
// the CLI config file.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "server address host:port (default from config, " + client.DefaultAddr + ")",
			EnvVars: []string{"RESPKV_SERVER"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: text, json, yaml",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "per-request timeout",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "CLI config file",
			EnvVars: []string{"RESPKV_CLI_CONFIG"},
			Value:   cliconfig.DefaultConfigPath(),
		},
	}
}

// Settings are the effective global options of one invocation.
type Settings struct {
	Server     string
	Output     output.Format
	Timeout    time.Duration
	ConfigPath string
	Config     *cliconfig.CLIConfig
}

// ResolveSettings merges flags and environment over the CLI config file.
func ResolveSettings(c *cli.Context) (*Settings, error) {
	path := c.String("config")
	cfg, err := cliconfig.Load(path)
	if err != nil {
		return nil, err
	}

	s := &Settings{
		Server:     cfg.Server,
		Timeout:    cfg.Timeout,
		ConfigPath: path,
		Config:     cfg,
	}
	if v := c.String("server"); v != "" {
		s.Server = v
	}
	if c.IsSet("timeout") {
		s.Timeout = c.Duration("timeout")
	}

	format := cfg.Output
	if v := c.String("output"); v != "" {
		format = v
	}
	if s.Output, err = output.ParseFormat(format); err != nil {
		return nil, err
	}
	return s, nil
}

// settingsFrom returns the settings stored by Before, resolving them
// when the context was built without running the app.
func settingsFrom(c *cli.Context) (*Settings, error) {
	if s, ok := c.App.Metadata[settingsKey].(*Settings); ok {
		return s, nil
	}
	return ResolveSettings(c)
}

// newClient builds a client for the effective server.
func newClient(s *Settings) *client.Client {
	var opts []client.Option
	if s.Timeout > 0 {
		opts = append(opts, client.WithDialTimeout(s.Timeout))
	}
	return client.New(s.Server, opts...)
}

func writer(c *cli.Context) io.Writer {
	if c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
