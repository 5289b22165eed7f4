package config

import (
	"time"

	"github.com/yndnr/respkv/pkg/client"
)

// CLIConfig is the configuration for respkv-cli.
type CLIConfig struct {
	Server  string        `yaml:"server"`
	Output  string        `yaml:"output"` // text, json, yaml
	Timeout time.Duration `yaml:"timeout"`

	// HistoryFile is the REPL history location. Empty means ~/.respkv/history.
	HistoryFile string `yaml:"history_file,omitempty"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server:  client.DefaultAddr,
		Output:  "text",
		Timeout: client.DefaultDialTimeout,
	}
}
