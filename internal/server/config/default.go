package config

// Default configuration values.
const (
	DefaultRESPAddr       = "127.0.0.1:31337"
	DefaultMaxConnections = 64
	DefaultRateBurst      = 10

	DefaultAdminAddr = "127.0.0.1:31338"

	// DefaultMaxBulkLen matches the Redis proto-max-bulk-len default.
	DefaultMaxBulkLen = 512 << 20

	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	DefaultLogMaxSizeMB  = 100
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			RESP: RESPConfig{
				Addr:           DefaultRESPAddr,
				MaxConnections: DefaultMaxConnections,
				RateBurst:      DefaultRateBurst,
			},
			Admin: AdminConfig{
				Enabled: false,
				Addr:    DefaultAdminAddr,
			},
		},
		Protocol: ProtocolSection{
			MaxBulkLen: DefaultMaxBulkLen,
		},
		Log: LogSection{
			Level:      DefaultLogLevel,
			Format:     DefaultLogFormat,
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
			MaxAgeDays: DefaultLogMaxAgeDays,
		},
	}
}
