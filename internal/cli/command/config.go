package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/yndnr/respkv/internal/cli/config"
	"github.com/yndnr/respkv/internal/cli/output"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective CLI configuration",
				Action: configShow,
			},
			{
				Name:      "set",
				Usage:     "Set a CLI configuration key",
				ArgsUsage: "KEY VALUE",
				Action:    configSet,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	s, err := settingsFrom(c)
	if err != nil {
		return err
	}

	m := s.Config.Map()
	m["server"] = s.Server
	m["output"] = string(s.Output)
	m["timeout"] = s.Timeout.String()
	m["config_file"] = s.ConfigPath
	return output.NewFormatter(s.Output).Format(writer(c), m)
}

func configSet(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("config set requires KEY VALUE (keys: %v)", cliconfig.Keys)
	}
	path := c.String("config")

	// Start from the file alone so flag overrides are not persisted.
	cfg, err := cliconfig.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.Set(c.Args().Get(0), c.Args().Get(1)); err != nil {
		return err
	}
	if err := cliconfig.Save(cfg, path); err != nil {
		return err
	}
	fmt.Fprintf(writer(c), "%s = %s (saved to %s)\n", c.Args().Get(0), c.Args().Get(1), path)
	return nil
}
