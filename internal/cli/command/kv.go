package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/pkg/client"
	"github.com/yndnr/respkv/pkg/resp"
)

// GetCommand returns the get subcommand.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Get the value of a key",
		ArgsUsage: "KEY",
		Action:    func(c *cli.Context) error { return sendFixed(c, "GET", 1) },
	}
}

// SetCommand returns the set subcommand.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Set a key to a value",
		ArgsUsage: "KEY VALUE",
		Action:    func(c *cli.Context) error { return sendFixed(c, "SET", 2) },
	}
}

// DeleteCommand returns the delete subcommand.
func DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"del"},
		Usage:     "Delete a key",
		ArgsUsage: "KEY",
		Action:    func(c *cli.Context) error { return sendFixed(c, "DELETE", 1) },
	}
}

// FlushCommand returns the flush subcommand.
func FlushCommand() *cli.Command {
	return &cli.Command{
		Name:   "flush",
		Usage:  "Remove every key",
		Action: func(c *cli.Context) error { return sendFixed(c, "FLUSH", 0) },
	}
}

// MGetCommand returns the mget subcommand.
func MGetCommand() *cli.Command {
	return &cli.Command{
		Name:      "mget",
		Usage:     "Get the values of several keys",
		ArgsUsage: "KEY [KEY...]",
		Action:    mget,
	}
}

// MSetCommand returns the mset subcommand.
func MSetCommand() *cli.Command {
	return &cli.Command{
		Name:      "mset",
		Usage:     "Set several keys",
		ArgsUsage: "KEY VALUE [KEY VALUE...]",
		Action:    mset,
	}
}

// ExecCommand returns the exec subcommand, which sends raw arguments.
func ExecCommand() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "Send a raw command",
		ArgsUsage: "COMMAND [ARG...]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("exec requires a command")
			}
			return send(c, c.Args().Slice()...)
		},
	}
}

func sendFixed(c *cli.Context, name string, nargs int) error {
	if c.NArg() != nargs {
		return fmt.Errorf("%s requires %d argument(s), got %d", c.Command.Name, nargs, c.NArg())
	}
	return send(c, append([]string{name}, c.Args().Slice()...)...)
}

// send executes args and prints the reply. Error replies are printed and
// also returned so the process exits non-zero.
func send(c *cli.Context, args ...string) error {
	s, err := settingsFrom(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, s)
	defer cancel()

	v, err := newClient(s).Execute(ctx, args...)
	var se *client.ServerError
	if err != nil && !errors.As(err, &se) {
		return err
	}
	if ferr := output.NewFormatter(s.Output).Format(writer(c), v); ferr != nil {
		return ferr
	}
	return err
}

func mget(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("mget requires at least one key")
	}
	s, err := settingsFrom(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, s)
	defer cancel()

	keys := c.Args().Slice()
	values, err := newClient(s).MGet(ctx, keys...)
	if err != nil {
		return err
	}

	rows := make([]output.KeyValue, len(keys))
	for i, k := range keys {
		v := resp.Null()
		if i < len(values) {
			v = values[i]
		}
		rows[i] = output.KeyValue{Key: k, Value: v}
	}
	return output.NewFormatter(s.Output).Format(writer(c), rows)
}

func mset(c *cli.Context) error {
	if c.NArg() == 0 || c.NArg()%2 != 0 {
		return fmt.Errorf("mset requires KEY VALUE pairs")
	}
	s, err := settingsFrom(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, s)
	defer cancel()

	n, err := newClient(s).MSet(ctx, c.Args().Slice()...)
	if err != nil {
		return err
	}
	return output.NewFormatter(s.Output).Format(writer(c), resp.Int(n))
}

func requestContext(c *cli.Context, s *Settings) (context.Context, context.CancelFunc) {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if s.Timeout > 0 {
		return context.WithTimeout(ctx, s.Timeout)
	}
	return context.WithCancel(ctx)
}
