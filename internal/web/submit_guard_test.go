package web

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubmitGuard_ClaimOnce(t *testing.T) {
	g := newSubmitGuard(10, time.Hour)
	n := newNonce()

	assert.True(t, g.claim(n))
	assert.False(t, g.claim(n))
	assert.True(t, g.claim(newNonce()))
}

func TestSubmitGuard_EmptyNonceAlwaysAccepted(t *testing.T) {
	g := newSubmitGuard(10, time.Hour)
	assert.True(t, g.claim(""))
	assert.True(t, g.claim(""))
}

func TestSubmitGuard_Expiry(t *testing.T) {
	g := newSubmitGuard(10, 20*time.Millisecond)
	assert.True(t, g.claim("a"))
	assert.Eventually(t, func() bool { return g.claim("a") }, time.Second, 10*time.Millisecond)
}

func TestLoginLimiter_BurstThenDeny(t *testing.T) {
	l := newLoginLimiter(0.001, 2)

	assert.True(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.2"), "buckets are per IP")
}

func TestLoginLimiter_Disabled(t *testing.T) {
	l := newLoginLimiter(0, 1)
	for range 10 {
		assert.True(t, l.allow("10.0.0.1"))
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/login", nil)
	r.RemoteAddr = "192.0.2.7:5123"
	assert.Equal(t, "192.0.2.7", clientIP(r))

	r.RemoteAddr = "192.0.2.8"
	assert.Equal(t, "192.0.2.8", clientIP(r))
}
