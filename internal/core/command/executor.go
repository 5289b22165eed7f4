package command

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/yndnr/respkv/internal/core/domain"
	"github.com/yndnr/respkv/pkg/resp"
)

// Outcomes reported to an Observer.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Observer receives one call per executed request.
type Observer interface {
	ObserveCommand(name, outcome string, elapsed time.Duration)
}

// Executor maps requests to command handlers.
type Executor struct {
	store    Store
	observer Observer
	logger   *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithObserver sets the Observer notified after each request.
func WithObserver(o Observer) Option {
	return func(e *Executor) {
		e.observer = o
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewExecutor creates an Executor over store.
func NewExecutor(store Store, opts ...Option) *Executor {
	e := &Executor{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Handle executes one decoded request. Request-level problems are
// returned as *domain.CommandError.
func (e *Executor) Handle(ctx context.Context, req resp.Value) (resp.Value, error) {
	start := time.Now()
	name, result, err := e.dispatch(req)

	if e.observer != nil {
		outcome := OutcomeOK
		if err != nil {
			outcome = OutcomeError
		}
		if name == "" || !Lookup(name) {
			name = "unknown"
		}
		e.observer.ObserveCommand(name, outcome, time.Since(start))
	}

	if err != nil {
		e.logger.DebugContext(ctx, "command rejected", "command", name, "error", err)
		return resp.Value{}, err
	}
	return result, nil
}

// Respond is Handle with CommandErrors converted to error Values, ready to
// be encoded for the peer.
func (e *Executor) Respond(ctx context.Context, req resp.Value) resp.Value {
	v, err := e.Handle(ctx, req)
	if err == nil {
		return v
	}
	var ce *domain.CommandError
	if errors.As(err, &ce) {
		return resp.Error(ce.Error())
	}
	e.logger.ErrorContext(ctx, "command failed", "error", err)
	return resp.Error(domain.CodeGeneric + " internal error")
}

func (e *Executor) dispatch(req resp.Value) (string, resp.Value, error) {
	args, err := requestArgs(req)
	if err != nil {
		return "", resp.Value{}, err
	}

	if args[0].Kind() != resp.KindString {
		return "", resp.Value{}, domain.ErrInvalidCommandName
	}
	name := normalizeCommandName(args[0].Bytes())

	ent, ok := table[Name(name)]
	if !ok {
		return name, resp.Value{}, domain.UnknownCommand(name)
	}

	params := args[1:]
	if err := ent.checkArity(Name(name), len(params)); err != nil {
		return name, resp.Value{}, err
	}

	v, err := ent.handler(e.store, params)
	return name, v, err
}

// requestArgs coerces a request into a non-empty argument list.
func requestArgs(req resp.Value) ([]resp.Value, error) {
	var args []resp.Value

	switch req.Kind() {
	case resp.KindArray:
		args = req.Elems()
	case resp.KindString:
		for _, f := range strings.Fields(req.Str()) {
			args = append(args, resp.String(f))
		}
	default:
		return nil, domain.ErrRequestNotList
	}

	if len(args) == 0 {
		return nil, domain.ErrRequestEmpty
	}
	return args, nil
}

func normalizeCommandName(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	// Uppercase ASCII without allocating for already uppercased tokens.
	if bytes.ContainsAny(b, "abcdefghijklmnopqrstuvwxyz") {
		return strings.ToUpper(string(b))
	}
	return string(b)
}
