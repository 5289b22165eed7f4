package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newBufferLogger(t *testing.T, level, format string) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := New(Config{Level: level, Format: format, Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return l, &buf
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log %q: %v", buf.String(), err)
	}
	return entry
}

func TestLogger_JSONFields(t *testing.T) {
	l, buf := newBufferLogger(t, "debug", "json")

	l.Info("connection accepted", "remote", "127.0.0.1:5000")

	entry := decodeEntry(t, buf)
	if entry["msg"] != "connection accepted" {
		t.Errorf("msg = %v, want %q", entry["msg"], "connection accepted")
	}
	if entry["remote"] != "127.0.0.1:5000" {
		t.Errorf("remote = %v", entry["remote"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", entry["level"])
	}
}

func TestLogger_With(t *testing.T) {
	l, buf := newBufferLogger(t, "info", "json")

	l.With("component", "respserver").Info("started")

	entry := decodeEntry(t, buf)
	if entry["component"] != "respserver" {
		t.Errorf("component = %v, want respserver", entry["component"])
	}
}

func TestLogger_TextFormat(t *testing.T) {
	l, buf := newBufferLogger(t, "info", "text")

	l.Info("listening", "addr", "127.0.0.1:31337")

	out := buf.String()
	if !strings.Contains(out, "listening") || !strings.Contains(out, "addr=127.0.0.1:31337") {
		t.Errorf("unexpected text output: %s", out)
	}
}

func TestLogger_LevelFilteringAndSetLevel(t *testing.T) {
	l, buf := newBufferLogger(t, "warn", "json")

	l.Debug("debug message")
	l.Info("info message")
	if buf.Len() > 0 {
		t.Fatalf("debug/info should be filtered at warn, got %s", buf.String())
	}

	SetLevel("debug")
	defer SetLevel("info")

	l.Debug("debug after change")
	if buf.Len() == 0 {
		t.Error("debug should be logged after SetLevel(debug)")
	}
	if got := GetLevel(); got != "debug" {
		t.Errorf("GetLevel() = %q, want debug", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "debug"},
		{"INFO", "info"},
		{"warning", "warn"},
		{"ERROR", "error"},
		{"invalid", "info"},
		{"", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			SetLevel(tt.input)
			if got := GetLevel(); got != tt.expected {
				t.Errorf("SetLevel(%q); GetLevel() = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
	SetLevel("info")
}

func TestValidLevel(t *testing.T) {
	for _, lvl := range []string{"debug", "INFO", "warn", "warning", "error"} {
		if !ValidLevel(lvl) {
			t.Errorf("ValidLevel(%q) = false", lvl)
		}
	}
	for _, lvl := range []string{"", "trace", "fatal"} {
		if ValidLevel(lvl) {
			t.Errorf("ValidLevel(%q) = true", lvl)
		}
	}
}

func TestSetDefault_PackageFunctions(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	l, buf := newBufferLogger(t, "debug", "json")
	SetDefault(l)

	for name, fn := range map[string]func(string, ...any){
		"Debug": Debug, "Info": Info, "Warn": Warn, "Error": Error,
	} {
		buf.Reset()
		fn("hello")
		if buf.Len() == 0 {
			t.Errorf("%s() produced no output", name)
		}
	}

	if Default().Slog() != l.Slog() {
		t.Error("Default() should return the logger passed to SetDefault")
	}
}

func TestLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "respkv.log")

	l, err := New(Config{
		Level:  "info",
		Format: "json",
		File:   FileConfig{Path: path, MaxSizeMB: 1, MaxBackups: 1},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.Info("to file")
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `"msg":"to file"`) {
		t.Errorf("log file content = %s", data)
	}
}

func TestLogger_CloseWithoutFile(t *testing.T) {
	l, _ := newBufferLogger(t, "info", "json")
	if err := l.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != "info" || cfg.Format != "json" || cfg.Output == nil {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}
