package web

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	loginLimiterSize = 4096
	loginLimiterTTL  = 30 * time.Minute
)

// loginLimiter keeps one token bucket per client IP. Idle buckets expire.
type loginLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newLoginLimiter(rps float64, burst int) *loginLimiter {
	if burst < 1 {
		burst = 1
	}
	return &loginLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](loginLimiterSize, nil, loginLimiterTTL),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

func (l *loginLimiter) allow(ip string) bool {
	if l.rate <= 0 {
		return true
	}
	l.mu.Lock()
	limiter, ok := l.limiters.Get(ip)
	if !ok {
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters.Add(ip, limiter)
	}
	l.mu.Unlock()
	return limiter.Allow()
}

// clientIP is the host part of RemoteAddr, which chi's RealIP middleware has
// already replaced with the proxied address when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
