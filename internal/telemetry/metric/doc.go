// Package metric provides Prometheus metrics for respkv.
//
// A Registry owns its own prometheus.Registry so tests and embedded servers
// never collide on the default registerer. Metrics include:
//
//   - command counts and latency by command name and outcome
//   - active and accepted connections
//   - protocol errors and rate-limited requests
//   - the number of keys held by the store
//
// Metrics are exposed by the admin server at /metrics.
package metric
