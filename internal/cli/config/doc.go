// Package config defines the respkv-cli configuration file.
//
// The file lives at ~/.respkv/cli.yaml by default and supplies the
// default server address, output format and request timeout. Command
// line flags and the RESPKV_SERVER environment variable take precedence.
package config
