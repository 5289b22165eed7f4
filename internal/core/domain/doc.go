// Package domain defines the error taxonomy shared by the command layer
// and the connection loop.
//
// A CommandError is a well-formed request that cannot be executed (empty
// request, unknown command, wrong arity). It is always reported to the
// peer as an error frame and never closes the connection.
//
// Framing failures belong to the codec and live in pkg/resp
// (resp.ErrDisconnected, resp.ProtocolError, resp.ErrEncoding).
package domain
