package respserver

import (
	"net"
	"testing"

	"golang.org/x/time/rate"
)

func TestIPLimiter_SharedPerIP(t *testing.T) {
	l := newIPLimiter(rate.Limit(1), 1)

	a := l.get(&net.TCPAddr{IP: net.ParseIP("10.0.0.1"), Port: 1000})
	b := l.get(&net.TCPAddr{IP: net.ParseIP("10.0.0.1"), Port: 2000})
	c := l.get(&net.TCPAddr{IP: net.ParseIP("10.0.0.2"), Port: 1000})

	if a != b {
		t.Error("connections from the same IP must share a limiter")
	}
	if a == c {
		t.Error("different IPs must not share a limiter")
	}

	if !a.Allow() {
		t.Fatal("first request should pass")
	}
	if b.Allow() {
		t.Error("burst of 1 is shared across connections from one IP")
	}
	if !c.Allow() {
		t.Error("other IP has its own bucket")
	}
}

func TestHostOf(t *testing.T) {
	tests := []struct {
		name string
		addr net.Addr
		want string
	}{
		{"tcp", &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 5}, "127.0.0.1"},
		{"unix", &net.UnixAddr{Name: "/tmp/sock", Net: "unix"}, "/tmp/sock"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hostOf(tt.addr); got != tt.want {
				t.Errorf("hostOf() = %q, want %q", got, tt.want)
			}
		})
	}
}
