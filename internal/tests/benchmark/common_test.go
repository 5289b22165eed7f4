package benchmark

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"testing"
	"time"

	"github.com/yndnr/respkv/internal/core/command"
	"github.com/yndnr/respkv/internal/server/respserver"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/pkg/resp"
)

// KeyCounts defines the store sizes used for benchmarking.
var KeyCounts = []int{1000, 10000, 100000}

// ValueSizes defines the value sizes in bytes.
var ValueSizes = []int{16, 256, 4096}

func prefillStore(store *memory.Store, n, size int) []string {
	keys := make([]string, n)
	value := resp.Bytes(make([]byte, size))
	for i := range keys {
		keys[i] = fmt.Sprintf("key:%d", i)
		store.Set(keys[i], value)
	}
	return keys
}

// startServer runs a quiet respserver on a loopback port.
func startServer(b *testing.B, store *memory.Store) string {
	b.Helper()
	cfg := respserver.DefaultConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.MaxConnections = 256

	srv := respserver.New(cfg, command.NewExecutor(store),
		respserver.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err := srv.Start(context.Background()); err != nil {
		b.Fatalf("start server: %v", err)
	}
	b.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv.Addr().String()
}

// reportMemory reports heap usage after a benchmark.
func reportMemory(b *testing.B, prefix string) {
	runtime.GC()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.HeapAlloc)/(1024*1024), prefix+"_heap_MB")
}
