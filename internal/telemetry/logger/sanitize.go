package logger

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Attribute keys whose values are hidden.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"credential",
	"auth",
}

const redactedValue = "***REDACTED***"

// MaxValueLen is the longest string attribute logged verbatim. Stored
// values can be arbitrarily large, so longer strings are truncated.
const MaxValueLen = 256

// replaceAttr hides sensitive attributes and makes the rest safe to log.
func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		s := a.Value.String()
		if s != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
		if needsSanitize(s) {
			return slog.String(a.Key, Sanitize(s))
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = replaceAttr(nil, attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	return a
}

// Sanitize makes a client-supplied value safe for a log line: binary data
// and control characters are escaped and the result is truncated to
// MaxValueLen bytes of the original.
func Sanitize(s string) string {
	if !needsSanitize(s) {
		return s
	}
	orig := len(s)
	truncated := orig > MaxValueLen
	if truncated {
		s = s[:MaxValueLen]
	}
	if !printable(s) {
		q := strconv.QuoteToASCII(s)
		s = q[1 : len(q)-1]
	}
	if truncated {
		s += "...(" + strconv.Itoa(orig) + " bytes)"
	}
	return s
}

func needsSanitize(s string) bool {
	return len(s) > MaxValueLen || !printable(s)
}

func printable(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// IsSensitiveKey reports whether a key name suggests secret content.
func IsSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(key, pattern) {
			return true
		}
	}
	return false
}
