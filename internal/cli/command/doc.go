// Package command provides the respkv-cli command tree.
//
// It uses urfave/cli/v2 for parsing. Every key/value subcommand opens
// one connection through pkg/client, sends a single request and prints
// the reply with the selected output format. The repl subcommand starts
// an interactive session.
package command
