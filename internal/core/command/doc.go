// Package command provides the command table and the request/response
// pipeline for respkv.
//
// The Executor turns one decoded request frame into one response Value:
//
//   - a ByteString request is split on whitespace (manual clients)
//   - any other non-array request is rejected
//   - the first element, uppercased, selects an entry of the fixed table
//   - the handler runs against the Store and its result is returned
//
// Supported commands: GET, SET, DELETE, FLUSH, MGET, MSET.
//
// Handlers never block; each call on the Store is atomic, so no handler
// can observe another connection's partially applied command.
package command
