// Package output renders respkv-cli results.
//
// Three formats are supported:
//
//   - text: redis-cli style ("(integer) 1", "(nil)", numbered arrays)
//   - json: indented JSON
//   - yaml: YAML via gopkg.in/yaml.v3
//
// Reply frames are converted with Native before JSON/YAML encoding, so
// errors become {"error": "..."} objects and Null becomes null.
package output
