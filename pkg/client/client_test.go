package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/respkv/internal/core/command"
	"github.com/yndnr/respkv/internal/server/respserver"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/pkg/resp"
)

func startServer(t *testing.T) *Client {
	t.Helper()
	cfg := respserver.DefaultConfig()
	cfg.Address = "127.0.0.1:0"
	srv := respserver.New(cfg, command.NewExecutor(memory.New()),
		respserver.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, srv.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return New(srv.Addr().String(), WithDialTimeout(time.Second))
}

func TestClient_Execute(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	v, err := c.Execute(ctx, "SET", "k", "v")
	require.NoError(t, err)
	assert.Equal(t, resp.Int(1), v)

	v, err = c.Execute(ctx, "GET", "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v.Str())

	v, err = c.Execute(ctx, "GET", "missing")
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestClient_ServerError(t *testing.T) {
	c := startServer(t)

	v, err := c.Execute(context.Background(), "NOPE")
	var se *ServerError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.Message, "unknown command")
	assert.Equal(t, resp.KindError, v.Kind())
}

func TestClient_Helpers(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", "1"))

	val, found, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "1", val)

	_, found, err = c.Get(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, found)

	n, err := c.MSet(ctx, "b", "2", "c", "3")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	vals, err := c.MGet(ctx, "a", "x", "c")
	require.NoError(t, err)
	require.Len(t, vals, 3)
	assert.Equal(t, "1", vals[0].Str())
	assert.True(t, vals[1].IsNull())
	assert.Equal(t, "3", vals[2].Str())

	require.NoError(t, c.Delete(ctx, "a"))
	require.NoError(t, c.Delete(ctx, "a"), "DELETE succeeds for absent keys")

	n, err = c.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = c.MSet(ctx, "odd")
	var se *ServerError
	assert.True(t, errors.As(err, &se))
}

func TestClient_OneConnectionPerRequest(t *testing.T) {
	c := startServer(t)
	d := &countingDialer{}
	c = New(c.Addr(), WithDialer(d))

	for i := 0; i < 3; i++ {
		_, err := c.Execute(context.Background(), "FLUSH")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, d.n)
}

func TestClient_DialError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = New(addr).Execute(context.Background(), "GET", "k")
	assert.Error(t, err)
}

func TestClient_ContextCancel(t *testing.T) {
	// A server that accepts but never replies.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	release := make(chan struct{})
	defer close(release)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		<-release
		conn.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = New(ln.Addr().String()).Execute(ctx, "GET", "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestNew_Defaults(t *testing.T) {
	c := New("")
	assert.Equal(t, DefaultAddr, c.Addr())
	assert.Equal(t, DefaultDialTimeout, c.dialTimeout)
}

type countingDialer struct {
	n int
	d net.Dialer
}

func (c *countingDialer) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	c.n++
	return c.d.DialContext(ctx, network, addr)
}
