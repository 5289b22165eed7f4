// Package respserver serves the key-value command set over RESP.
//
// Each accepted TCP connection is handled by its own goroutine, which
// decodes one frame at a time, executes it and writes exactly one reply
// frame before reading the next. Connections are capped by a weighted
// semaphore acquired before Accept, so clients over the cap wait in the
// listen backlog instead of being refused.
//
// A malformed frame is answered with "-ERR protocol error: <msg>". The
// connection stays open when the decoder could realign on the next frame
// and is closed when the stream position is lost.
package respserver
