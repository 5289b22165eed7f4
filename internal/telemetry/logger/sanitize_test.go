package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestReplaceAttr_SensitiveKeys(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.Info("config loaded", "admin_password", "hunter2", "key", "user:1", "empty_secret", "")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	if entry["admin_password"] != redactedValue {
		t.Errorf("admin_password = %v, want redacted", entry["admin_password"])
	}
	if entry["key"] != "user:1" {
		t.Errorf("store keys must not be redacted, got %v", entry["key"])
	}
	if entry["empty_secret"] != "" {
		t.Errorf("empty values stay empty, got %v", entry["empty_secret"])
	}
}

func TestReplaceAttr_Group(t *testing.T) {
	a := slog.Group("auth", slog.String("client_secret", "abc"), slog.String("user", "bob"))
	attrs := replaceAttr(nil, a).Value.Group()

	if attrs[0].Value.String() != redactedValue {
		t.Errorf("nested secret not redacted: %v", attrs[0])
	}
	if attrs[1].Value.String() != "bob" {
		t.Errorf("nested non-secret changed: %v", attrs[1])
	}
}

func TestReplaceAttr_NonString(t *testing.T) {
	a := slog.Int("token_count", 3)
	if got := replaceAttr(nil, a); got.Value.Int64() != 3 {
		t.Errorf("non-string attribute changed: %v", got)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"unicode", "héllo", "héllo"},
		{"crlf", "a\r\nb", `a\r\nb`},
		{"binary", "\x00\xff", `\x00\xff`},
		{"long", strings.Repeat("x", MaxValueLen+10), strings.Repeat("x", MaxValueLen) + "...(266 bytes)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitize_AppliedToRecords(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "text", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	l.Info("reply", "value", "line1\nline2")

	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("a payload newline must not split the log line: %q", buf.String())
	}
}

func TestIsSensitiveKey(t *testing.T) {
	tests := map[string]bool{
		"password":   true,
		"AuthHeader": true,
		"api_token":  true,
		"key":        false,
		"remote":     false,
	}
	for key, want := range tests {
		if got := IsSensitiveKey(key); got != want {
			t.Errorf("IsSensitiveKey(%q) = %v, want %v", key, got, want)
		}
	}
}
