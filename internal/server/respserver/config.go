package respserver

import (
	"time"

	"github.com/yndnr/respkv/pkg/resp"
)

// Config holds the RESP server configuration.
type Config struct {
	// Address is the TCP listen address.
	Address string
	// MaxConnections caps concurrently served connections.
	MaxConnections int

	// ReadTimeout bounds reading one frame once its first byte arrived.
	// IdleTimeout bounds the wait for the next frame. WriteTimeout bounds
	// writing one reply. Zero disables each of them.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// RateLimit is the sustained number of requests per second allowed per
	// client IP, with bursts of RateBurst. Zero disables rate limiting.
	RateLimit float64
	RateBurst int

	Protocol ProtocolLimits
}

// ProtocolLimits bounds decoded frames. Zero means unlimited.
type ProtocolLimits struct {
	MaxBulkLen       int
	MaxArrayLen      int
	MaxDepth         int
	StrictTerminator bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Address:        "127.0.0.1:31337",
		MaxConnections: 64,
		RateBurst:      10,
	}
}

func (c *Config) decoderOptions() []resp.DecoderOption {
	var opts []resp.DecoderOption
	if c.Protocol.MaxBulkLen > 0 {
		opts = append(opts, resp.WithMaxBulkLen(c.Protocol.MaxBulkLen))
	}
	if c.Protocol.MaxArrayLen > 0 {
		opts = append(opts, resp.WithMaxArrayLen(c.Protocol.MaxArrayLen))
	}
	if c.Protocol.MaxDepth > 0 {
		opts = append(opts, resp.WithMaxDepth(c.Protocol.MaxDepth))
	}
	if c.Protocol.StrictTerminator {
		opts = append(opts, resp.WithStrictTerminator())
	}
	return opts
}
