// Package main provides the entry point for respkv-cli.
//
// Usage:
//
//	respkv-cli set name bob
//	respkv-cli -o json mget name age
//	respkv-cli --server 10.0.0.5:31337 repl
//
// The default server and output format come from ~/.respkv/cli.yaml and
// can be overridden with --server (or RESPKV_SERVER) and --output.
package main
