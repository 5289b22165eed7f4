package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

func newHandler(format string, w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	var h slog.Handler
	switch strings.ToLower(format) {
	case "text", "console":
		h = slog.NewTextHandler(w, opts)
	default:
		h = slog.NewJSONHandler(w, opts)
	}
	return &connHandler{Handler: h}
}

// connHandler adds the connection ID carried by the record's context.
// Loggers that already carry a conn_id attribute get none added.
type connHandler struct {
	slog.Handler
	hasConnID bool
}

func (h *connHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.hasConnID {
		if id := ConnIDFromContext(ctx); id != "" {
			r.AddAttrs(slog.String(connIDAttr, id))
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *connHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	has := h.hasConnID
	for _, a := range attrs {
		if a.Key == connIDAttr {
			has = true
		}
	}
	return &connHandler{Handler: h.Handler.WithAttrs(attrs), hasConnID: has}
}

func (h *connHandler) WithGroup(name string) slog.Handler {
	return &connHandler{Handler: h.Handler.WithGroup(name), hasConnID: h.hasConnID}
}
