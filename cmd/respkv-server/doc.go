// Package main provides the entry point for respkv-server.
//
// The server keeps a string key/value map in memory and serves it over
// RESP on TCP. An optional admin HTTP listener exposes /health, /ready,
// /version and Prometheus /metrics.
//
// Usage:
//
//	respkv-server [flags]
//	respkv-server --config /etc/respkv/server.yaml
//	respkv-server --addr 0.0.0.0:31337 --max-connections 256
//
// Configuration is layered: built-in defaults, the YAML file, RESPKV_*
// environment variables, then command-line flags.
package main
