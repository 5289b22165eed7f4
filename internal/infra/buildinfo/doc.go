// Package buildinfo exposes respkv build information.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/respkv/internal/infra/buildinfo.Version=v1.0.0"
//
// When they are not set, Get falls back to the module and VCS data the Go
// toolchain embeds in the binary.
package buildinfo
