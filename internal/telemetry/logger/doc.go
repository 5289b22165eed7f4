// Package logger provides structured logging for respkv.
//
// It wraps log/slog with JSON or text output, a process-wide level that
// can change at runtime, optional lumberjack file rotation, and attribute
// hygiene: secrets are masked, and client payloads that are binary or
// oversized are escaped and truncated before they reach the log.
//
// Records logged with a context tagged by WithConnID carry a conn_id
// attribute, so code below the connection loop needs no logger of its own.
package logger
