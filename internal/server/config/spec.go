package config

import "time"

// ServerConfig is the root configuration for respkv-server.
type ServerConfig struct {
	Server   ServerSection   `koanf:"server"`
	Protocol ProtocolSection `koanf:"protocol"`
	Log      LogSection      `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	RESP  RESPConfig  `koanf:"resp"`
	Admin AdminConfig `koanf:"admin"`
}

// RESPConfig configures the RESP listener.
type RESPConfig struct {
	Addr string `koanf:"addr"`

	// MaxConnections caps concurrently served clients. Clients beyond the
	// cap wait in the listen backlog.
	MaxConnections int `koanf:"max_connections"`

	// Zero disables the corresponding deadline.
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`

	// RateLimit is requests per second per client IP. Zero disables limiting.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`
}

// AdminConfig configures the HTTP admin endpoint (/health, /ready, /metrics).
type AdminConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// ProtocolSection bounds what the frame decoder accepts. Zero means
// unlimited.
type ProtocolSection struct {
	MaxBulkLen       int  `koanf:"max_bulk_len"`
	MaxArrayLen      int  `koanf:"max_array_len"`
	MaxDepth         int  `koanf:"max_depth"`
	StrictTerminator bool `koanf:"strict_terminator"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`

	// File enables rotated file output instead of stderr.
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`
}
