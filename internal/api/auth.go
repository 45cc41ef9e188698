package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vbonduro/pantraqa/internal/domain"
)

// Session is the body returned by login and registration.
type Session struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

type RegisterRequest struct {
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	return c.authenticate(ctx, "/auth/login", body)
}

func (c *Client) Register(ctx context.Context, r RegisterRequest) (*Session, error) {
	return c.authenticate(ctx, "/auth/register", r)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodPost, path, nil, body, &s); err != nil {
		return nil, err
	}
	if s.Token == "" || s.User.Email == "" {
		return nil, fmt.Errorf("POST %s: %w: missing user or token", path, ErrMalformedResponse)
	}
	return &s, nil
}
