package respserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/yndnr/respkv/internal/telemetry/metric"
	"github.com/yndnr/respkv/pkg/resp"
)

// ErrServerStarted is returned by Start on a server that is already running.
var ErrServerStarted = errors.New("respserver: already started")

// Handler turns one decoded request into one reply. Request errors are
// reported as error Values, never as Go errors.
type Handler interface {
	Respond(ctx context.Context, req resp.Value) resp.Value
}

// Server accepts RESP connections and serves them with a Handler.
type Server struct {
	cfg     *Config
	handler Handler
	logger  *slog.Logger
	metrics *metric.Registry
	limiter *ipLimiter
	decOpts []resp.DecoderOption

	sem *semaphore.Weighted
	ln  net.Listener

	ctx    context.Context
	cancel context.CancelFunc

	running atomic.Bool
	wg      sync.WaitGroup

	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records connection metrics in reg.
func WithMetrics(reg *metric.Registry) Option {
	return func(s *Server) {
		s.metrics = reg
	}
}

// New creates a RESP server. A nil cfg uses DefaultConfig.
func New(cfg *Config, handler Handler, opts ...Option) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	maxConns := cfg.MaxConnections
	if maxConns <= 0 {
		maxConns = DefaultConfig().MaxConnections
	}

	s := &Server{
		cfg:     cfg,
		handler: handler,
		logger:  slog.Default(),
		decOpts: cfg.decoderOptions(),
		sem:     semaphore.NewWeighted(int64(maxConns)),
		conns:   make(map[net.Conn]struct{}),
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		s.limiter = newIPLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "respserver")
	return s
}

// Start binds the listener and serves connections in the background until
// Shutdown is called or ctx is done.
func (s *Server) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrServerStarted
	}

	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		s.running.Store(false)
		return err
	}
	s.serve(ctx, ln)
	return nil
}

// Serve serves connections accepted on ln in the background. Like Start it
// may be called once per running period; a second call returns
// ErrServerStarted and leaves ln untouched.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrServerStarted
	}
	s.serve(ctx, ln)
	return nil
}

func (s *Server) serve(ctx context.Context, ln net.Listener) {
	s.ln = ln
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.logger.Info("resp server listening",
		"address", ln.Addr().String(),
		"max_connections", s.cfg.MaxConnections,
	)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.acceptLoop()
	}()

	// Stop accepting when the parent context ends.
	go func() {
		<-s.ctx.Done()
		_ = ln.Close()
	}()
}

// Addr returns the bound listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown stops accepting, closes every open connection and waits for
// the connection goroutines to exit or ctx to end.
func (s *Server) Shutdown(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	s.cancel()
	var firstErr error
	if err := s.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		firstErr = err
	}

	s.mu.Lock()
	for c := range s.conns {
		_ = c.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.logger.Info("resp server stopped")
	return firstErr
}

func (s *Server) acceptLoop() {
	var backoff time.Duration
	for {
		// Hold a slot before accepting so excess clients stay queued in
		// the kernel backlog.
		if err := s.sem.Acquire(s.ctx, 1); err != nil {
			return
		}

		c, err := s.ln.Accept()
		if err != nil {
			s.sem.Release(1)
			if !s.running.Load() || errors.Is(err, net.ErrClosed) || s.ctx.Err() != nil {
				return
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				backoff = nextBackoff(backoff)
				s.logger.Warn("accept error, retrying", "error", err, "backoff", backoff)
				time.Sleep(backoff)
				continue
			}
			s.logger.Error("accept failed", "error", err)
			return
		}
		backoff = 0

		if !s.track(c) {
			_ = c.Close()
			s.sem.Release(1)
			return
		}
		if s.metrics != nil {
			s.metrics.ConnectionsAccepted.Inc()
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.sem.Release(1)
			defer s.untrack(c)
			newConn(s, c).serve(s.ctx)
		}()
	}
}

// track registers c for Shutdown. It fails once shutdown started.
func (s *Server) track(c net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running.Load() {
		return false
	}
	s.conns[c] = struct{}{}
	return true
}

func (s *Server) untrack(c net.Conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
}

// ActiveConnections returns the number of connections being served.
func (s *Server) ActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

func nextBackoff(d time.Duration) time.Duration {
	if d == 0 {
		return 5 * time.Millisecond
	}
	d *= 2
	if d > time.Second {
		d = time.Second
	}
	return d
}

// Running reports whether the server is accepting connections.
func (s *Server) Running() bool {
	return s.running.Load() && s.ctx != nil && s.ctx.Err() == nil
}
