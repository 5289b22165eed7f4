package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/yndnr/respkv/pkg/resp"
)

// DefaultAddr is the address respkv-server listens on by default.
const DefaultAddr = "127.0.0.1:31337"

// DefaultDialTimeout bounds connection setup when the context has no
// earlier deadline.
const DefaultDialTimeout = 5 * time.Second

// ErrUnexpectedReply is returned by the typed helpers when the server
// answers with a frame of the wrong kind.
var ErrUnexpectedReply = errors.New("client: unexpected reply")

// ServerError is an error frame sent by the server.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// Dialer opens connections. *net.Dialer implements it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Client sends requests to one server.
type Client struct {
	addr        string
	dialer      Dialer
	dialTimeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithDialTimeout sets the connection timeout.
func WithDialTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.dialTimeout = d
	}
}

// WithDialer replaces the default *net.Dialer.
func WithDialer(d Dialer) Option {
	return func(c *Client) {
		if d != nil {
			c.dialer = d
		}
	}
}

// New creates a client for addr. An empty addr uses DefaultAddr.
func New(addr string, opts ...Option) *Client {
	if addr == "" {
		addr = DefaultAddr
	}
	c := &Client{
		addr:        addr,
		dialer:      &net.Dialer{},
		dialTimeout: DefaultDialTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Addr returns the server address.
func (c *Client) Addr() string {
	return c.addr
}

// Execute sends args as one request and returns the reply. An error reply
// is returned both as the Value and as a *ServerError.
func (c *Client) Execute(ctx context.Context, args ...string) (resp.Value, error) {
	return c.Do(ctx, resp.Strings(args...))
}

// Do sends an arbitrary request frame and returns the reply.
func (c *Client) Do(ctx context.Context, req resp.Value) (resp.Value, error) {
	frame, err := resp.Encode(req)
	if err != nil {
		return resp.Value{}, err
	}

	dialCtx := ctx
	if c.dialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, c.dialTimeout)
		defer cancel()
	}
	conn, err := c.dialer.DialContext(dialCtx, "tcp", c.addr)
	if err != nil {
		return resp.Value{}, fmt.Errorf("dial %s: %w", c.addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	// Unblock I/O when ctx is cancelled without a deadline.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	if _, err := conn.Write(frame); err != nil {
		return resp.Value{}, c.ioError(ctx, "write", err)
	}

	v, err := resp.NewDecoder(conn).Decode()
	if err != nil {
		return resp.Value{}, c.ioError(ctx, "read", err)
	}
	if v.Kind() == resp.KindError {
		return v, &ServerError{Message: v.Err()}
	}
	return v, nil
}

func (c *Client) ioError(ctx context.Context, op string, err error) error {
	// The only deadlines set on conn come from ctx.
	if errors.Is(err, os.ErrDeadlineExceeded) {
		<-ctx.Done()
		return ctx.Err()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%s %s: %w", op, c.addr, err)
}
