package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/yndnr/respkv/internal/telemetry/logger"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyProtocol(&cfg.Protocol); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyServer(cfg *ServerSection) error {
	if err := verifyAddr("server.resp.addr", cfg.RESP.Addr); err != nil {
		return err
	}
	if cfg.RESP.MaxConnections < 1 {
		return errors.New("server.resp.max_connections must be at least 1")
	}
	if cfg.RESP.ReadTimeout < 0 || cfg.RESP.WriteTimeout < 0 || cfg.RESP.IdleTimeout < 0 {
		return errors.New("server.resp timeouts must not be negative")
	}
	if cfg.RESP.RateLimit < 0 {
		return errors.New("server.resp.rate_limit must not be negative")
	}
	if cfg.RESP.RateLimit > 0 && cfg.RESP.RateBurst < 1 {
		return errors.New("server.resp.rate_burst must be at least 1 when rate limiting is enabled")
	}

	if !cfg.Admin.Enabled {
		return nil
	}
	if err := verifyAddr("server.admin.addr", cfg.Admin.Addr); err != nil {
		return err
	}
	if cfg.Admin.Addr == cfg.RESP.Addr {
		return fmt.Errorf("server.admin.addr conflicts with server.resp.addr (%s)", cfg.RESP.Addr)
	}
	return nil
}

func verifyProtocol(cfg *ProtocolSection) error {
	if cfg.MaxBulkLen < 0 || cfg.MaxArrayLen < 0 || cfg.MaxDepth < 0 {
		return errors.New("protocol limits must not be negative")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if !logger.ValidLevel(cfg.Level) {
		return fmt.Errorf("log.level %q is invalid (debug, info, warn, error)", cfg.Level)
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
	default:
		return fmt.Errorf("log.format %q is invalid (json, text)", cfg.Format)
	}
	if cfg.MaxSizeMB < 0 || cfg.MaxBackups < 0 || cfg.MaxAgeDays < 0 {
		return errors.New("log rotation settings must not be negative")
	}
	return nil
}

func verifyAddr(key, addr string) error {
	if addr == "" {
		return fmt.Errorf("%s is required", key)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("%s %q is invalid: %w", key, addr, err)
	}
	return nil
}
