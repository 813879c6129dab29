package swms

import (
	"context"
	"net/http"
)

// Me returns the profile of the session's own account.
func (c *Client) Me(ctx context.Context) (User, error) {
	var out User
	err := c.do(ctx, call{method: http.MethodGet, endpoint: "/users/me", path: "/users/me", out: &out})
	return out, err
}

// ListUsers returns every account. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	err := c.do(ctx, call{method: http.MethodGet, endpoint: "/api/users", path: "/api/users", out: &out})
	return out, err
}

// GetUser returns one account. Admin only.
func (c *Client) GetUser(ctx context.Context, id int64) (User, error) {
	var out User
	err := c.do(ctx, call{method: http.MethodGet, endpoint: "/api/users/{id}", path: idPath("/api/users", id), out: &out})
	return out, err
}

// DeleteUser removes an account together with its tasks and attendance.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, call{method: http.MethodDelete, endpoint: "/api/users/{id}", path: idPath("/api/users", id)})
}
