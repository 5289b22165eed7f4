// Package resp implements the RESP-style frame codec used by respkv.
//
// A frame is a single type-tagged value on a byte stream:
//
//   - '+' simple string, read back as a ByteString
//   - '-' error message
//   - ':' signed 64-bit integer
//   - '$' length-prefixed bulk string ($-1 is Null)
//   - '*' array of nested frames (*-1 is decoded as Null)
//
// Decoder reads exactly one frame per call and never consumes bytes past
// the end of that frame. Encoding always builds the complete frame in
// memory first, so a failed encode never leaves a partial frame on the wire.
//
// The package only depends on the standard library and is shared by the
// server and the client stub.
package resp
