package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vbonduro/pantraqa/internal/domain"
)

// ListUsers returns every account. The response also carries password hashes;
// domain.User has no field for them so they are dropped on decode.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) ChangeUserRole(ctx context.Context, id int64, role domain.Role) error {
	body := map[string]domain.Role{"role": role}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/%d/change-userrole", id), nil, body, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/%d", id), nil, nil, nil)
}
