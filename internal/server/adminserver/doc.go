// Package adminserver exposes the operational HTTP endpoints of
// respkv-server:
//
//	GET /health   liveness, always 200 while the process runs
//	GET /ready    200 once the RESP listener is serving, 503 otherwise
//	GET /version  build information
//	GET /metrics  Prometheus exposition
//
// It uses net/http from the standard library; the data plane is RESP
// and this listener carries no user traffic.
package adminserver
