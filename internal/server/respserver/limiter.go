package respserver

import (
	"net"
	"sync"
	"time"

	"github.com/bluele/gcache"
	"golang.org/x/time/rate"
)

const (
	limiterCacheSize = 1024
	limiterTTL       = time.Hour
)

// ipLimiter hands out one token bucket per client IP. Buckets live in an
// LRU so a scan from many addresses cannot grow memory without bound.
type ipLimiter struct {
	cache gcache.Cache
	mu    sync.Mutex
	r     rate.Limit
	b     int
}

func newIPLimiter(r rate.Limit, b int) *ipLimiter {
	return &ipLimiter{
		cache: gcache.New(limiterCacheSize).LRU().Build(),
		r:     r,
		b:     b,
	}
}

// get returns the limiter for remote, creating it on first use.
func (l *ipLimiter) get(remote net.Addr) *rate.Limiter {
	ip := hostOf(remote)

	l.mu.Lock()
	defer l.mu.Unlock()

	if v, err := l.cache.Get(ip); err == nil {
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(l.r, l.b)
	_ = l.cache.SetWithExpire(ip, lim, limiterTTL)
	return lim
}

func hostOf(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP.String()
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
