package respserver

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"runtime/debug"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/respkv/internal/core/domain"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/pkg/resp"
)

// conn is one client connection. All of its state is owned by the
// goroutine running serve.
type conn struct {
	srv     *Server
	netConn net.Conn
	id      string
	br      *bufio.Reader
	dec     *resp.Decoder
	w       *resp.Writer
	limiter *rate.Limiter
	logger  *slog.Logger
}

func newConn(s *Server, c net.Conn) *conn {
	id := ulid.Make().String()
	br := bufio.NewReader(c)
	cn := &conn{
		srv:     s,
		netConn: c,
		id:      id,
		br:      br,
		dec:     resp.NewDecoder(br, s.decOpts...),
		w:       resp.NewWriter(c),
		logger:  s.logger.With("conn_id", id, "remote", c.RemoteAddr().String()),
	}
	if s.limiter != nil {
		cn.limiter = s.limiter.get(c.RemoteAddr())
	}
	return cn
}

// serve runs the read, execute, reply loop until the peer disconnects,
// the stream becomes unusable, or the server shuts down.
func (c *conn) serve(ctx context.Context) {
	ctx = logger.WithConnID(ctx, c.id)
	m := c.srv.metrics
	if m != nil {
		m.ConnectionsActive.Inc()
		defer m.ConnectionsActive.Dec()
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("panic while serving connection",
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
		_ = c.netConn.Close()
		c.logger.Debug("connection closed")
	}()

	c.logger.Debug("connection accepted")

	for {
		if err := c.awaitFrame(); err != nil {
			c.logReadError(err)
			return
		}

		req, err := c.dec.Decode()
		if err != nil {
			if !c.handleDecodeError(err) {
				return
			}
			continue
		}

		var reply resp.Value
		if c.limiter != nil && !c.limiter.Allow() {
			if m != nil {
				m.RateLimited.Inc()
			}
			reply = resp.Error(domain.ErrRateLimited.Error())
		} else {
			reply = c.srv.handler.Respond(ctx, req)
		}

		if err := c.write(reply); err != nil {
			if errors.Is(err, resp.ErrEncoding) {
				c.logger.Error("reply cannot be encoded", "reply", reply.String(), "error", err)
			} else {
				c.logger.Debug("write failed", "error", err)
			}
			return
		}
	}
}

// awaitFrame applies the idle and read deadlines. With neither configured
// it is a no-op and Decode blocks for as long as the peer stays silent.
func (c *conn) awaitFrame() error {
	cfg := c.srv.cfg
	if cfg.IdleTimeout <= 0 && cfg.ReadTimeout <= 0 {
		return nil
	}

	// Frames already buffered are served without waiting.
	if c.br.Buffered() == 0 {
		var idle time.Time
		if cfg.IdleTimeout > 0 {
			idle = time.Now().Add(cfg.IdleTimeout)
		}
		if err := c.netConn.SetReadDeadline(idle); err != nil {
			return err
		}
		if _, err := c.br.Peek(1); err != nil {
			return err
		}
	}

	var deadline time.Time
	if cfg.ReadTimeout > 0 {
		deadline = time.Now().Add(cfg.ReadTimeout)
	}
	return c.netConn.SetReadDeadline(deadline)
}

// handleDecodeError reports whether the connection can keep going.
func (c *conn) handleDecodeError(err error) bool {
	var pe *resp.ProtocolError
	if !errors.As(err, &pe) {
		c.logReadError(err)
		return false
	}

	if c.srv.metrics != nil {
		c.srv.metrics.ProtocolErrors.Inc()
	}
	c.logger.Warn("malformed frame", "error", pe.Msg, "desync", pe.Desync)

	if werr := c.write(resp.Error("ERR protocol error: " + pe.Msg)); werr != nil {
		c.logger.Debug("write failed", "error", werr)
		return false
	}
	return !pe.Desync
}

func (c *conn) write(v resp.Value) error {
	if wt := c.srv.cfg.WriteTimeout; wt > 0 {
		if err := c.netConn.SetWriteDeadline(time.Now().Add(wt)); err != nil {
			return err
		}
	}
	return c.w.WriteValue(v)
}

func (c *conn) logReadError(err error) {
	var ne net.Error
	switch {
	case errors.Is(err, resp.ErrDisconnected), errors.Is(err, io.EOF):
		c.logger.Debug("client disconnected")
	case errors.Is(err, net.ErrClosed):
		// Closed by Shutdown.
	case errors.As(err, &ne) && ne.Timeout():
		c.logger.Debug("connection timed out", "error", err)
	default:
		c.logger.Debug("connection read error", "error", err)
	}
}
