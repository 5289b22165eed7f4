package command

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/internal/cli/repl"
)

// REPLCommand returns the interactive mode subcommand.
func REPLCommand() *cli.Command {
	return &cli.Command{
		Name:   "repl",
		Usage:  "Start an interactive session",
		Action: runREPL,
	}
}

func runREPL(c *cli.Context) error {
	s, err := settingsFrom(c)
	if err != nil {
		return err
	}

	history := repl.NewHistory(s.Config.HistoryFile)
	if err := history.Load(); err != nil {
		PrintError("load history: %v", err)
	}

	in := c.App.Reader
	if in == nil {
		in = os.Stdin
	}
	out := writer(c)
	fmt.Fprintf(out, "Connected to %s. Type help for commands.\n", s.Server)

	r := repl.New(newClient(s),
		repl.WithIO(in, out),
		repl.WithFormatter(output.NewFormatter(s.Output)),
		repl.WithHistory(history),
		repl.WithTimeout(s.Timeout),
	)

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	runErr := r.Run(ctx)
	if err := history.Save(); err != nil {
		PrintError("save history: %v", err)
	}
	return runErr
}
