// Package confloader loads respkv configuration with koanf.
//
// Priority (highest to lowest):
//
//  1. Command-line flags (LoadMap after Load)
//  2. Environment variables (RESPKV_ prefix)
//  3. Configuration file (YAML)
//  4. Values already present in the target struct
//
// Environment variable names are resolved against the koanf tags of the
// target struct, so RESPKV_SERVER_RESP_MAX_CONNECTIONS maps to
// server.resp.max_connections even though the key itself contains an
// underscore. A Watcher reports changes to the configuration file so the
// caller can reload it.
package confloader
