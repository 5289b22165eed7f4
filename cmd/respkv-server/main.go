package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/core/command"
	"github.com/yndnr/respkv/internal/infra/buildinfo"
	"github.com/yndnr/respkv/internal/infra/confloader"
	"github.com/yndnr/respkv/internal/infra/shutdown"
	"github.com/yndnr/respkv/internal/server/adminserver"
	"github.com/yndnr/respkv/internal/server/config"
	"github.com/yndnr/respkv/internal/server/respserver"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "respkv-server",
		Usage:   "in-memory key/value server speaking RESP",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to configuration file",
				EnvVars: []string{"RESPKV_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "RESP listen address (overrides server.resp.addr)",
			},
			&cli.IntFlag{
				Name:  "max-connections",
				Usage: "concurrent connection cap (overrides server.resp.max_connections)",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c.String("config"), flagOverrides(c))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return run(c.Context, cfg, c.String("config"))
		},
	}
}

// flagOverrides returns the dotted config keys set on the command line.
func flagOverrides(c *cli.Context) map[string]any {
	m := make(map[string]any)
	if c.IsSet("addr") {
		m["server.resp.addr"] = c.String("addr")
	}
	if c.IsSet("max-connections") {
		m["server.resp.max_connections"] = c.Int("max-connections")
	}
	return m
}

// loadConfig layers defaults, file, environment and flag overrides.
func loadConfig(configFile string, overrides map[string]any) (*config.ServerConfig, error) {
	cfg := config.Default()

	var opts []confloader.Option
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}
	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if len(overrides) > 0 {
		if err := loader.LoadMap(overrides); err != nil {
			return nil, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("unmarshal overrides: %w", err)
		}
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	return logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
		File: logger.FileConfig{
			Path:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		},
	})
}

func respConfig(cfg *config.ServerConfig) *respserver.Config {
	r := cfg.Server.RESP
	return &respserver.Config{
		Address:        r.Addr,
		MaxConnections: r.MaxConnections,
		ReadTimeout:    r.ReadTimeout,
		WriteTimeout:   r.WriteTimeout,
		IdleTimeout:    r.IdleTimeout,
		RateLimit:      r.RateLimit,
		RateBurst:      r.RateBurst,
		Protocol: respserver.ProtocolLimits{
			MaxBulkLen:       cfg.Protocol.MaxBulkLen,
			MaxArrayLen:      cfg.Protocol.MaxArrayLen,
			MaxDepth:         cfg.Protocol.MaxDepth,
			StrictTerminator: cfg.Protocol.StrictTerminator,
		},
	}
}

// run starts the listeners and blocks until a signal or ctx ends.
func run(ctx context.Context, cfg *config.ServerConfig, configFile string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)
	slogger := log.Slog()

	log.Info("starting respkv-server", append(buildinfo.Get().LogAttrs(), "config", configFile)...)

	store := memory.New()
	reg := metric.NewRegistry()
	reg.MustRegister(metric.NewStoreCollector(store))
	exec := command.NewExecutor(store,
		command.WithObserver(reg),
		command.WithLogger(slogger),
	)

	srv := respserver.New(respConfig(cfg), exec,
		respserver.WithLogger(slogger),
		respserver.WithMetrics(reg),
	)

	handler := shutdown.NewHandler(shutdownTimeout, shutdown.WithLogger(slogger))
	// Hooks run in reverse order: listeners stop before the log is closed.
	handler.OnShutdown("logger", func(context.Context) error { return log.Close() })

	if err := srv.Start(ctx); err != nil {
		_ = log.Close()
		return fmt.Errorf("start resp server: %w", err)
	}
	handler.OnShutdown("resp server", srv.Shutdown)

	if cfg.Server.Admin.Enabled {
		admin := adminserver.New(cfg.Server.Admin.Addr, adminserver.NewRouter(&adminserver.RouterConfig{
			Metrics: reg,
			Ready:   srv.Running,
			Logger:  slogger,
		}), slogger)
		if err := admin.Start(); err != nil {
			_ = handler.Shutdown()
			return fmt.Errorf("start admin server: %w", err)
		}
		handler.OnShutdown("admin server", admin.Shutdown)
	}

	if configFile != "" {
		w, err := watchConfig(configFile, slogger)
		if err != nil {
			log.Warn("config watch disabled", "error", err)
		} else {
			handler.OnShutdown("config watcher", func(context.Context) error { return w.Stop() })
		}
	}

	log.Info("server started", "resp", srv.Addr().String())
	if err := handler.Wait(ctx); err != nil {
		return err
	}
	slogger.Info("server stopped")
	return nil
}
