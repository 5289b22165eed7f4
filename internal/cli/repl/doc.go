// Package repl provides the interactive mode of respkv-cli.
//
// Each input line is split on whitespace and sent as one request. The
// reply is printed with the configured output formatter. The built-in
// words help, exit and quit are handled locally.
package repl
