// Package shutdown coordinates graceful shutdown of respkv-server.
//
// Components register named hooks as they start. When SIGINT/SIGTERM
// arrives (or the wait context ends) the hooks run in reverse
// registration order under a shared deadline:
//
//	h := shutdown.NewHandler(10*time.Second, shutdown.WithLogger(log))
//	h.OnShutdown("resp", srv.Shutdown)
//	err := h.Wait(ctx)
package shutdown
