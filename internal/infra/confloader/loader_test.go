package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	Server struct {
		RESP struct {
			Addr           string        `koanf:"addr"`
			MaxConnections int           `koanf:"max_connections"`
			ReadTimeout    time.Duration `koanf:"read_timeout"`
		} `koanf:"resp"`
	} `koanf:"server"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
	internal string
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "respkv.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}

	l = NewLoader(WithEnvPrefix("TEST_"), WithConfigFile("/path/to/config.yaml"))
	if l.envPrefix != "TEST_" {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, "TEST_")
	}
	if l.filePath != "/path/to/config.yaml" {
		t.Errorf("filePath = %q", l.filePath)
	}
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  resp:
    addr: "0.0.0.0:31337"
    max_connections: 8
`)

	l := NewLoader()
	if err := l.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if addr, _ := l.Lookup("server.resp.addr"); addr != "0.0.0.0:31337" {
		t.Errorf("server.resp.addr = %v", addr)
	}
	if n, ok := l.Lookup("server.resp.max_connections"); !ok || n != 8 {
		t.Errorf("server.resp.max_connections = %v, want 8", n)
	}
}

func TestLoader_LoadFile_Errors(t *testing.T) {
	l := NewLoader()
	if err := l.LoadFile("/nonexistent/config.yaml"); err == nil {
		t.Error("LoadFile() should return error for nonexistent file")
	}
	if err := l.LoadFile(""); err != nil {
		t.Errorf("LoadFile(\"\") should not error, got: %v", err)
	}
}

func TestLoader_Load_KeepsDefaults(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\n")

	var cfg testConfig
	cfg.Server.RESP.Addr = "127.0.0.1:31337"
	cfg.Server.RESP.MaxConnections = 64

	l := NewLoader(WithConfigFile(path))
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Server.RESP.Addr != "127.0.0.1:31337" || cfg.Server.RESP.MaxConnections != 64 {
		t.Errorf("defaults lost: %+v", cfg.Server.RESP)
	}
}

func TestLoader_Load_EnvUnderscoreKeys(t *testing.T) {
	t.Setenv("RESPKV_SERVER_RESP_MAX_CONNECTIONS", "12")
	t.Setenv("RESPKV_SERVER_RESP_READ_TIMEOUT", "5s")

	var cfg testConfig
	if err := NewLoader().Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.RESP.MaxConnections != 12 {
		t.Errorf("MaxConnections = %d, want 12", cfg.Server.RESP.MaxConnections)
	}
	if cfg.Server.RESP.ReadTimeout != 5*time.Second {
		t.Errorf("ReadTimeout = %v, want 5s", cfg.Server.RESP.ReadTimeout)
	}
}

func TestLoader_Load_Priority(t *testing.T) {
	path := writeConfig(t, "server:\n  resp:\n    addr: \"from-file:1\"\n")
	t.Setenv("RESPKV_SERVER_RESP_ADDR", "from-env:2")

	var cfg testConfig
	l := NewLoader(WithConfigFile(path))
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.RESP.Addr != "from-env:2" {
		t.Errorf("Addr = %q, env should override file", cfg.Server.RESP.Addr)
	}

	// Flags are applied after Load and override env.
	if err := l.LoadMap(map[string]any{"server.resp.addr": "from-flag:3"}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.Server.RESP.Addr != "from-flag:3" {
		t.Errorf("Addr = %q, flag should override env", cfg.Server.RESP.Addr)
	}
}

func TestLoader_EnvFallback(t *testing.T) {
	t.Setenv("MYAPP_SERVER_PORT", "9090")

	l := NewLoader(WithEnvPrefix("MYAPP_"))
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if port, _ := l.Lookup("server.port"); port != "9090" {
		t.Errorf("server.port = %v, want %q", port, "9090")
	}
}

func TestLoader_LoadMap(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{"server.resp.addr": "localhost:3000", "debug": true}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	if addr, _ := l.Lookup("server.resp.addr"); addr != "localhost:3000" {
		t.Errorf("server.resp.addr = %v", addr)
	}
	if debug, _ := l.Lookup("debug"); debug != true {
		t.Error("debug should be true")
	}
	if len(l.All()) < 2 {
		t.Errorf("All() = %v", l.All())
	}
	if _, ok := l.Lookup("missing"); ok {
		t.Error("Lookup(missing) should report not found")
	}
}

func TestStructKeys(t *testing.T) {
	keys := StructKeys(&testConfig{})
	want := []string{
		"server.resp.addr",
		"server.resp.max_connections",
		"server.resp.read_timeout",
		"log.level",
	}
	if len(keys) != len(want) {
		t.Fatalf("StructKeys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}

	if StructKeys(42) != nil {
		t.Error("StructKeys(non-struct) should be nil")
	}
}
