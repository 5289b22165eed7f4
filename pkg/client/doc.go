// Package client is a minimal respkv client.
//
// Every Execute dials a fresh TCP connection, sends one request, reads one
// reply and closes the connection:
//
//	c := client.New("127.0.0.1:31337")
//	_, err := c.Set(ctx, "greeting", "hello")
//	v, found, err := c.Get(ctx, "greeting")
package client
