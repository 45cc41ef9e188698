// Package auth holds the signed-in user and API token for a browser session.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/vbonduro/pantraqa/internal/domain"
)

const (
	sessionKeyUser  = "auth.user"
	sessionKeyToken = "auth.token"
)

// State is the auth state of one request. The zero value is anonymous.
type State struct {
	User  *domain.User
	Token string
}

func (s State) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// Holder reads and writes State through the session manager. It makes no
// network calls.
type Holder struct {
	sessions *scs.SessionManager
	logger   *slog.Logger
	now      func() time.Time
}

func NewHolder(sessions *scs.SessionManager, logger *slog.Logger) *Holder {
	return &Holder{sessions: sessions, logger: logger, now: time.Now}
}

// Load returns the stored state. A JWT whose exp has passed, or user data
// that cannot be decoded, clears the session and yields the anonymous state.
func (h *Holder) Load(ctx context.Context) State {
	token := h.sessions.GetString(ctx, sessionKeyToken)
	data := h.sessions.GetBytes(ctx, sessionKeyUser)
	if token == "" || len(data) == 0 {
		return State{}
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		h.logger.Warn("discarding unreadable session user", "error", err)
		h.clear(ctx)
		return State{}
	}

	if tokenExpired(token, h.now()) {
		h.logger.Info("session token expired", "user_id", user.ID)
		h.clear(ctx)
		return State{}
	}

	return State{User: &user, Token: token}
}

// Login stores user and token. The session token is renewed first so a
// pre-login session id cannot be reused.
func (h *Holder) Login(ctx context.Context, user domain.User, token string) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session user: %w", err)
	}
	if err := h.sessions.RenewToken(ctx); err != nil {
		return fmt.Errorf("failed to renew session: %w", err)
	}
	h.sessions.Put(ctx, sessionKeyUser, data)
	h.sessions.Put(ctx, sessionKeyToken, token)
	return nil
}

// Logout discards the whole session.
func (h *Holder) Logout(ctx context.Context) error {
	if err := h.sessions.Destroy(ctx); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

func (h *Holder) clear(ctx context.Context) {
	h.sessions.Remove(ctx, sessionKeyUser)
	h.sessions.Remove(ctx, sessionKeyToken)
}

// tokenExpired reports whether token is a JWT with an exp claim before now.
// The signature is not checked: the API does that on every call. Tokens that
// are not JWTs never expire here.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}
