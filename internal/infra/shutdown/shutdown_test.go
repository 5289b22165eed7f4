package shutdown

import (
	"context"
	"errors"
	"sync"
	"syscall"
	"testing"
	"time"
)

func recordingHandler(t *testing.T) (*Handler, func() []string) {
	t.Helper()
	h := NewHandler(time.Second, WithSignals(syscall.SIGUSR1))

	var (
		mu    sync.Mutex
		order []string
	)
	for _, name := range []string{"watcher", "admin", "resp"} {
		name := name
		h.OnShutdown(name, func(ctx context.Context) error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil
		})
	}
	return h, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), order...)
	}
}

func assertOrder(t *testing.T, got []string) {
	t.Helper()
	want := []string{"resp", "admin", "watcher"}
	if len(got) != len(want) {
		t.Fatalf("hook order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("hook order = %v, want %v", got, want)
			return
		}
	}
}

func TestHandler_Wait_ContextCancel(t *testing.T) {
	h, order := recordingHandler(t)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- h.Wait(ctx) }()

	select {
	case <-h.Done():
		t.Fatal("Done closed before shutdown")
	default:
	}

	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Wait() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not return")
	}
	<-h.Done()
	assertOrder(t, order())
}

func TestHandler_Wait_Signal(t *testing.T) {
	h, order := recordingHandler(t)

	errCh := make(chan error, 1)
	go func() { errCh <- h.Wait(context.Background()) }()
	time.Sleep(50 * time.Millisecond)

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatalf("Kill() error = %v", err)
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Wait() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not return after signal")
	}
	assertOrder(t, order())
}

func TestHandler_Shutdown_JoinsErrors(t *testing.T) {
	h := NewHandler(time.Second)
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	ran := 0
	h.OnShutdown("a", func(context.Context) error { ran++; return errA })
	h.OnShutdown("ok", func(context.Context) error { ran++; return nil })
	h.OnShutdown("b", func(context.Context) error { ran++; return errB })

	err := h.Shutdown()
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Shutdown() error = %v, want both hook errors", err)
	}
	if ran != 3 {
		t.Errorf("ran %d hooks, want 3 (a failing hook must not stop the rest)", ran)
	}

	// Second call does not rerun hooks.
	if err2 := h.Shutdown(); err2 != err {
		t.Errorf("second Shutdown() = %v, want %v", err2, err)
	}
	if ran != 3 {
		t.Errorf("hooks reran: %d", ran)
	}
}

func TestHandler_HookDeadline(t *testing.T) {
	h := NewHandler(20 * time.Millisecond)
	h.OnShutdown("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	start := time.Now()
	err := h.Shutdown()
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Shutdown() error = %v, want deadline exceeded", err)
	}
	if time.Since(start) > time.Second {
		t.Error("hook deadline was not applied")
	}
}

func TestHandler_ConcurrentRegistration(t *testing.T) {
	h := NewHandler(time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.OnShutdown("noop", func(context.Context) error { return nil })
		}()
	}
	wg.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.hooks) != 50 {
		t.Errorf("expected 50 hooks, got %d", len(h.hooks))
	}
}
