package web

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	nonceField      = "nonce"
	submitGuardSize = 10_000
	submitGuardTTL  = time.Hour
)

// submitGuard remembers form nonces that have been submitted so that a form
// posted twice is only processed once.
type submitGuard struct {
	mu   sync.Mutex
	seen *expirable.LRU[string, struct{}]
}

func newSubmitGuard(size int, ttl time.Duration) *submitGuard {
	return &submitGuard{seen: expirable.NewLRU[string, struct{}](size, nil, ttl)}
}

func newNonce() string {
	return uuid.NewString()
}

// claim records nonce and reports whether it was unused. An empty nonce is
// always accepted.
func (g *submitGuard) claim(nonce string) bool {
	if nonce == "" {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.seen.Contains(nonce) {
		return false
	}
	g.seen.Add(nonce, struct{}{})
	return true
}
