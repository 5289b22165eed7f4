package main

import (
	"log/slog"

	"github.com/yndnr/respkv/internal/infra/confloader"
	"github.com/yndnr/respkv/internal/telemetry/logger"
)

// watchConfig reloads path on change and applies the settings that can
// change without a restart. Only log.level is live; other keys are read
// at startup.
func watchConfig(path string, log *slog.Logger) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return nil, err
	}
	w.OnChange(func(string) { applyReload(path, log) })
	w.StartAsync()
	return w, nil
}

func applyReload(path string, log *slog.Logger) {
	cfg, err := loadConfig(path, nil)
	if err != nil {
		log.Error("config reload rejected", "path", path, "error", err)
		return
	}
	prev := logger.GetLevel()
	logger.SetLevel(cfg.Log.Level)
	if next := logger.GetLevel(); next != prev {
		log.Info("log level changed", "from", prev, "to", next)
	}
}
